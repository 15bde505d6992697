// Package config loads toolkit configuration from a YAML file overridden by
// environment variables. All knobs are explicit here; no package reads
// process-wide state on its own.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "github.com/Hemantdhake/shopping-behavior-pipeline/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	InputFile string `yaml:"input_file" envconfig:"INPUT_FILE"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR"`
}

// PipelineConfig is the full configuration surface of the preprocessing
// pipeline.
type PipelineConfig struct {
	HandleOutliers     bool     `yaml:"handle_outliers" envconfig:"HANDLE_OUTLIERS"`
	OutlierMethod      string   `yaml:"outlier_method" envconfig:"OUTLIER_METHOD" validate:"oneof=iqr"`
	OutlierMultiplier  float64  `yaml:"outlier_multiplier" envconfig:"OUTLIER_MULTIPLIER" validate:"gt=0"`
	OutlierAction      string   `yaml:"outlier_action" envconfig:"OUTLIER_ACTION" validate:"oneof=cap remove"`
	OutlierColumns     []string `yaml:"outlier_columns" envconfig:"OUTLIER_COLUMNS"`
	EncodeCategoricals bool     `yaml:"encode_categoricals" envconfig:"ENCODE_CATEGORICALS"`
	OneHotColumns      []string `yaml:"onehot_columns" envconfig:"ONEHOT_COLUMNS"`
	LabelColumns       []string `yaml:"label_columns" envconfig:"LABEL_COLUMNS"`
	DropFirst          bool     `yaml:"drop_first" envconfig:"DROP_FIRST"`
}

// Load loads configuration from the given YAML file (skipped when the path
// is empty or the file does not exist) and then from SHOP_* environment
// variables, which take precedence.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, cfg); err != nil {
				return nil, apperrors.NewConfigError("failed to load config file", err).
					WithContext("file", configFile)
			}
		}
	}

	if err := envconfig.Process("SHOP", cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against the struct validation tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return apperrors.NewConfigError("config validation failed", err)
	}
	return nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/preprocess.log",
		},
		Paths: PathsConfig{
			OutputDir: "outputs",
		},
		Pipeline: PipelineConfig{
			HandleOutliers:    true,
			OutlierMethod:     "iqr",
			OutlierMultiplier: 1.5,
			OutlierAction:     "cap",
			OutlierColumns: []string{
				"Purchase Amount (USD)",
				"Previous Purchases",
				"Age",
				"Review Rating",
			},
			EncodeCategoricals: false,
			OneHotColumns:      []string{"Gender", "Category", "Season", "Size", "Payment Method"},
			LabelColumns:       []string{"Subscription Status", "Discount Applied", "Promo Code Used"},
			DropFirst:          true,
		},
	}
}
