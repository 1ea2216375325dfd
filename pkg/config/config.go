package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Config represents the application configuration.
type Config struct {
	Applicant  ApplicantConfig `json:"applicant"`
	GroqAPIKey string          `json:"groq_api_key"`
	Models     ModelsConfig    `json:"models,omitempty"`
	Defaults   DefaultConfig   `json:"defaults"`
}

// ApplicantConfig holds the contact fields substituted into generated letters.
type ApplicantConfig struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	CityPostal string `json:"city_postal"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	LinkedIn   string `json:"linkedin,omitempty"`
}

// ModelsConfig holds model selection for generation.
type ModelsConfig struct {
	Generation string `json:"generation,omitempty"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir string `json:"output_dir"`
}

// GetGenerationModel returns the generation model or default if not specified.
func (c *Config) GetGenerationModel() (model string) {
	if c.Models.Generation != "" {
		model = c.Models.Generation
		return model
	}
	model = "llama3-70b-8192" // Default Groq model
	return model
}

// Load reads configuration from file with environment variable overrides.
func Load(configPath string) (cfg Config, err error) {
	// Pick up a local .env file if one exists
	_ = godotenv.Load()

	// Determine config file location
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return cfg, err
		}
		path = filepath.Join(homeDir, ".cover-tailor", "config.json")
	}

	// Read config file
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'cover-tailor init' to create)", path)
			return cfg, err
		}
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	// Parse JSON
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}

	// Override with environment variable if set
	if apiKey := os.Getenv("GROQ_API_KEY"); apiKey != "" {
		cfg.GroqAPIKey = apiKey
	}

	// Validate required fields
	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Validate checks that all required configuration is present.
func (c *Config) Validate() (err error) {
	if c.Applicant.Name == "" {
		err = errors.New("applicant.name is required in config")
		return err
	}

	if c.Applicant.Email == "" {
		err = errors.New("applicant.email is required in config")
		return err
	}

	if c.GroqAPIKey == "" {
		err = errors.New("groq_api_key is required (set in config or GROQ_API_KEY env var)")
		return err
	}

	// Set default output_dir if not specified
	if c.Defaults.OutputDir == "" {
		c.Defaults.OutputDir = "./output"
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	// Determine config file location
	path := configPath
	if path == "" {
		var homeDir string
		homeDir, err = os.UserHomeDir()
		if err != nil {
			err = errors.Wrap(err, "failed to get user home directory")
			return err
		}
		path = filepath.Join(homeDir, ".cover-tailor", "config.json")
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	// Check if file already exists
	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Config{
		Applicant: ApplicantConfig{
			Name:       "Your Name",
			Address:    "123 Main St",
			CityPostal: "Anytown, 00000",
			Email:      "you@example.com",
			Phone:      "555-555-5555",
			LinkedIn:   "www.linkedin.com/in/your-handle",
		},
		GroqAPIKey: "gsk_...",
		Defaults: DefaultConfig{
			OutputDir: "./output",
		},
	}

	// Write to file
	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
