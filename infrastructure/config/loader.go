package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Paths     PathsConfig     `yaml:"paths"`
	Tools     ToolsConfig     `yaml:"tools"`
	Retention RetentionConfig `yaml:"retention"`
	Download  DownloadConfig  `yaml:"download"`
}

// ServerConfig contains HTTP listener settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// PathsConfig contains directory paths for media processing. The output
// directory is explicit configuration so tests and deployments can isolate it.
type PathsConfig struct {
	OutputDirectory string `yaml:"output_directory"`
}

// ToolsConfig contains paths to the external tools
type ToolsConfig struct {
	YtDlpPath  string `yaml:"ytdlp_path"`
	FFmpegPath string `yaml:"ffmpeg_path"`
}

// RetentionConfig controls output directory pruning
type RetentionConfig struct {
	MaxFiles int `yaml:"max_files"`
}

// DownloadConfig contains yt-dlp tuning knobs; zero values fall back to the
// adapter defaults
type DownloadConfig struct {
	FormatSelector       string `yaml:"format_selector"`
	SocketTimeoutSeconds int    `yaml:"socket_timeout_seconds"`
	Retries              int    `yaml:"retries"`
	ConcurrentFragments  int    `yaml:"concurrent_fragments"`
	ThrottledRate        string `yaml:"throttled_rate"`
}

// Default returns the configuration used when no config file is present
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8000,
		},
		Paths: PathsConfig{
			OutputDirectory: filepath.Join(os.TempDir(), "video-trimmer"),
		},
		Tools: ToolsConfig{
			YtDlpPath:  "yt-dlp",
			FFmpegPath: "ffmpeg",
		},
		Retention: RetentionConfig{
			MaxFiles: 10,
		},
	}
}

// Load reads and parses the configuration from the specified YAML file,
// applied on top of the defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
