// config.go: settings struct and functions to load and save the Tanka
// analyzer configuration.
package conf

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tphakala/tanka/internal/errors"
)

//go:embed config.yaml
var configFiles embed.FS

// LogConfig holds file logging settings.
type LogConfig struct {
	Enabled    bool   // true to enable JSON file logging
	Path       string // path to the log file
	Level      string // minimum level: debug, info, warn, error
	MaxSizeMB  int    // rotate when the log file exceeds this size
	MaxBackups int    // rotated files to keep
	MaxAgeDays int    // days to keep rotated files
}

// BoxConfig describes one HaikuBox device.
type BoxConfig struct {
	Name     string // device name, also the filename prefix of its daily CSVs
	Location string // opaque location label carried into reports
	Enabled  bool   // false to skip the box during analysis
}

// AnalysisConfig holds the analysis engine settings.
type AnalysisConfig struct {
	ScoreThreshold float64  // minimum confidence score to include (0.0 to 1.0)
	TopN           int      // number of top species to report
	ExcludeSpecies []string // species names excluded from analysis
	LookbackDays   int      // days of history consulted for new-bird detection
	CombineExact   bool     // true to combine multi-file results from full species maps
	IncludeTime    bool     // true to include hourly activity and species time ranges
}

// TimezoneConfig holds the fixed offset of box local time relative to UTC.
type TimezoneConfig struct {
	UTCOffsetHours int // e.g. -8 for US Pacific standard time
}

// Settings contains all application settings.
type Settings struct {
	Debug bool // true to enable debug level logging

	Main struct {
		Name string    // analyzer instance name
		Log  LogConfig // file logging settings
	}

	Boxes []BoxConfig // configured HaikuBox devices

	Downloads struct {
		Dir string // directory holding the per-UTC-day CSV files
	}

	Output struct {
		AnalysisDir string // directory for persisted analysis JSON artifacts
		Save        bool   // true to persist the analysis artifact after each run
	}

	Analysis AnalysisConfig

	Timezone TimezoneConfig
}

// EnabledBoxes returns the boxes enabled for analysis, in config order.
func (s *Settings) EnabledBoxes() []BoxConfig {
	var enabled []BoxConfig
	for _, box := range s.Boxes {
		if box.Enabled {
			enabled = append(enabled, box)
		}
	}
	return enabled
}

// BoxByName returns the configured box with the given name.
func (s *Settings) BoxByName(name string) (BoxConfig, bool) {
	for _, box := range s.Boxes {
		if box.Name == name {
			return box, true
		}
	}
	return BoxConfig{}, false
}

// Load reads the configuration file and environment variables into a new
// Settings instance.
func Load() (*Settings, error) {
	settings := &Settings{}

	// Initialize viper and read config
	if err := initViper(); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	// Unmarshal the config into settings
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	// Validate settings
	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	return settings, nil
}

// initViper initializes viper with default values and reads the configuration file.
func initViper() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Get OS specific config paths
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}

	// Assign config paths to Viper
	for _, path := range configPaths {
		viper.AddConfigPath(path)
	}

	// Set default values for each configuration parameter
	// function defined in defaults.go
	setDefaultConfig()

	// Read configuration file
	err = viper.ReadInConfig()
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// Config file not found, create config with defaults
			return createDefaultConfig()
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	return nil
}

// createDefaultConfig creates a default config file and writes it to the default config path
func createDefaultConfig() error {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return fmt.Errorf("error getting default config paths: %w", err)
	}
	configPath := filepath.Join(configPaths[0], "config.yaml")
	defaultConfig := getDefaultConfig()

	// Create directories for config file
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating directories for config file: %w", err)
	}

	// Write default config file
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("error writing default config file: %w", err)
	}

	fmt.Println("Created default config file at:", configPath)
	return viper.ReadInConfig()
}

// getDefaultConfig reads the default configuration from the embedded config.yaml file.
func getDefaultConfig() string {
	data, err := fs.ReadFile(configFiles, "config.yaml")
	if err != nil {
		log.Fatalf("Error reading config file: %v", err)
	}
	return string(data)
}

// SaveYAMLConfig writes the given settings to configPath as YAML. The write
// goes through a temporary file in the same directory so the replacement is
// atomic on most filesystems.
func SaveYAMLConfig(configPath string, settings *Settings) error {
	yamlData, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("error marshaling settings to YAML: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(configPath), "config-*.yaml")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	tempFileName := tempFile.Name()
	// Ensure the temporary file is removed in case of any failure
	defer os.Remove(tempFileName)

	if _, err := tempFile.Write(yamlData); err != nil {
		tempFile.Close()
		return fmt.Errorf("error writing to temporary file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("error closing temporary file: %w", err)
	}

	if err := os.Rename(tempFileName, configPath); err != nil {
		return fmt.Errorf("error replacing config file: %w", err)
	}

	return nil
}
