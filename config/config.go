package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/calebmur/uamwatch/public/analyzer"
)

// Config represents the application configuration
type Config struct {
	General struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Version     string `yaml:"version"`
	} `yaml:"general"`

	Logging struct {
		Level   string `yaml:"level"`
		Verbose bool   `yaml:"verbose"`
	} `yaml:"logging"`

	Input struct {
		LogPath       string `yaml:"logPath"`
		PersonnelPath string `yaml:"personnelPath"`
		AssetsPath    string `yaml:"assetsPath"`
		RequestsPath  string `yaml:"requestsPath"`
	} `yaml:"input"`

	Output struct {
		Dir string `yaml:"dir"`
	} `yaml:"output"`

	Detection analyzer.Thresholds `yaml:"detection"`
}

// LoadConfig loads configuration from a file
func LoadConfig(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %v", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %v", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %v", err)
	}

	setDefaults(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	return config, nil
}

// setDefaults fills in default values for missing configuration. Detection
// thresholds have no defaults; every option must be supplied.
func setDefaults(config *Config) {
	if config.General.Name == "" {
		config.General.Name = "UAMWatch"
	}
	if config.General.Version == "" {
		config.General.Version = "0.1.0"
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	if config.Input.LogPath == "" {
		config.Input.LogPath = "data/uam_logs.jsonl"
	}
	if config.Input.PersonnelPath == "" {
		config.Input.PersonnelPath = "data/hr_records.csv"
	}
	if config.Input.AssetsPath == "" {
		config.Input.AssetsPath = "data/sensitive_assets.csv"
	}
	if config.Input.RequestsPath == "" {
		config.Input.RequestsPath = "data/access_requests.csv"
	}

	if config.Output.Dir == "" {
		config.Output.Dir = "data"
	}
}

// validateConfig checks if the configuration is valid
func validateConfig(config *Config) error {
	return config.Detection.Validate()
}

// SaveConfig writes the configuration to a file
func SaveConfig(config *Config, path string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %v", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write configuration: %v", err)
	}

	return nil
}

// CreateDefaultConfig generates a default configuration file with the
// stock detection thresholds
func CreateDefaultConfig(path string) error {
	failedLoginWindow := 10
	failedLoginThreshold := 3
	offHoursStart := 22
	offHoursEnd := 6
	dailyFileAccessThreshold := 5
	largeTransferBytes := int64(50_000_000)
	usbExfilWindow := 15

	config := &Config{}
	config.General.Name = "UAMWatch"
	config.General.Description = "Rule-based insider threat detection over UAM event logs"
	config.General.Version = "0.1.0"
	config.Logging.Level = "info"
	config.Detection = analyzer.Thresholds{
		FailedLoginWindowMinutes: &failedLoginWindow,
		FailedLoginThreshold:     &failedLoginThreshold,
		OffHoursStart:            &offHoursStart,
		OffHoursEnd:              &offHoursEnd,
		DailyFileAccessThreshold: &dailyFileAccessThreshold,
		LargeTransferBytes:       &largeTransferBytes,
		USBExfilWindowMinutes:    &usbExfilWindow,
	}
	setDefaults(config)

	return SaveConfig(config, path)
}
