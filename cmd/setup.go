package cmd

import (
	"fmt"
	"os"
	"strconv"

	"video-trim-service/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command guides you through setting up the server listener, the
output directory, tool paths and the retention limit.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, "config/config.yaml")
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	fmt.Println("Welcome to video-trim-service setup!")
	fmt.Println()

	cfg := config.Default()

	if err := promptServer(prompter, cfg); err != nil {
		return err
	}

	if err := promptPaths(prompter, cfg); err != nil {
		return err
	}

	if err := promptTools(prompter, cfg); err != nil {
		return err
	}

	if err := promptRetention(prompter, cfg); err != nil {
		return err
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println()
	fmt.Printf("Configuration saved to %s\n", configPath)
	return nil
}

func promptServer(prompter Prompter, cfg *config.Config) error {
	host, err := prompter.Input("Host to listen on?", cfg.Server.Host)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if host == "" {
		return fmt.Errorf("host is required")
	}
	cfg.Server.Host = host

	portValue, err := prompter.Input("Port to listen on?", strconv.Itoa(cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	port, err := strconv.Atoi(portValue)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("port must be a number between 1 and 65535")
	}
	cfg.Server.Port = port

	return nil
}

func promptPaths(prompter Prompter, cfg *config.Config) error {
	output, err := prompter.Input("Where should trimmed videos go?", cfg.Paths.OutputDirectory)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if output == "" {
		return fmt.Errorf("output directory is required")
	}
	cfg.Paths.OutputDirectory = output

	return nil
}

func promptTools(prompter Prompter, cfg *config.Config) error {
	ytdlp, err := prompter.Input("Path to the yt-dlp binary?", cfg.Tools.YtDlpPath)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if ytdlp == "" {
		return fmt.Errorf("yt-dlp path is required")
	}
	cfg.Tools.YtDlpPath = ytdlp

	ffmpeg, err := prompter.Input("Path to the ffmpeg binary?", cfg.Tools.FFmpegPath)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if ffmpeg == "" {
		return fmt.Errorf("ffmpeg path is required")
	}
	cfg.Tools.FFmpegPath = ffmpeg

	return nil
}

func promptRetention(prompter Prompter, cfg *config.Config) error {
	maxValue, err := prompter.Input("How many trimmed files to keep?", strconv.Itoa(cfg.Retention.MaxFiles))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	maxFiles, err := strconv.Atoi(maxValue)
	if err != nil || maxFiles < 1 {
		return fmt.Errorf("retention limit must be a positive number")
	}
	cfg.Retention.MaxFiles = maxFiles

	return nil
}
