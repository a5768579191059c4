package main

import "video-trim-service/cmd"

func main() {
	cmd.Execute()
}
