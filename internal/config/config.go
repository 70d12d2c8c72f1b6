package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Project    ProjectConfig     `yaml:"project"`
	Venv       VenvConfig        `yaml:"venv"`
	Packager   PackagerConfig    `yaml:"packager"`
	Output     OutputConfig      `yaml:"output"`
	Build      BuildConfig       `yaml:"build"`
	Watch      WatchConfig       `yaml:"watch,omitempty"`
	Monitoring *MonitoringConfig `yaml:"monitoring,omitempty"`
	History    *HistoryConfig    `yaml:"history,omitempty"`
}

// ProjectConfig describes the application being packaged
type ProjectConfig struct {
	Name       string     `yaml:"name"`
	EntryPoint string     `yaml:"entry_point"`
	Icon       string     `yaml:"icon,omitempty"`
	DataFiles  []DataFile `yaml:"data_files,omitempty"`
}

// DataFile is an extra file bundled into the executable.
// Dest is the in-bundle directory ("." for the bundle root).
type DataFile struct {
	Source string `yaml:"source"`
	Dest   string `yaml:"dest"`
}

// ExecutableName returns the produced binary name for the given GOOS.
func (p ProjectConfig) ExecutableName(goos string) string {
	if goos == "windows" {
		return p.Name + ".exe"
	}
	return p.Name
}

// ArchiveName returns the distributable archive name.
func (p ProjectConfig) ArchiveName() string {
	return p.Name + ".zip"
}

// VenvConfig describes the isolated Python environment
type VenvConfig struct {
	Dir          string `yaml:"dir,omitempty"`
	Python       string `yaml:"python,omitempty"` // host interpreter; auto-detected when empty
	Requirements string `yaml:"requirements,omitempty"`
}

// PackagerConfig holds PyInstaller invocation options
type PackagerConfig struct {
	OneFile   *bool    `yaml:"onefile,omitempty"`
	Windowed  *bool    `yaml:"windowed,omitempty"`
	ExtraArgs []string `yaml:"extra_args,omitempty"`
}

// OutputConfig represents output configuration
type OutputConfig struct {
	BuildDir string `yaml:"build_dir,omitempty"`
	DistDir  string `yaml:"dist_dir,omitempty"`
	Archive  *bool  `yaml:"archive,omitempty"` // zip the executable after packaging
	Clean    *bool  `yaml:"clean,omitempty"`   // clean build/dist before packaging
}

// FailureMode selects how the pipeline reacts to a failed stage.
type FailureMode string

const (
	// FailureBestEffort records stage failures as warnings and keeps going,
	// matching the behavior of the legacy build script.
	FailureBestEffort FailureMode = "besteffort"
	// FailureStrict aborts the pipeline on the first failed stage.
	FailureStrict FailureMode = "strict"
)

// RetryBackoffMode enumerates backoff strategies for transient failures.
type RetryBackoffMode string

const (
	RetryBackoffFixed       RetryBackoffMode = "fixed"
	RetryBackoffLinear      RetryBackoffMode = "linear"
	RetryBackoffExponential RetryBackoffMode = "exponential"
)

// BuildConfig holds pipeline-level behavior knobs
type BuildConfig struct {
	FailureMode       FailureMode      `yaml:"failure_mode,omitempty"`
	MaxRetries        int              `yaml:"max_retries,omitempty"`
	RetryBackoff      RetryBackoffMode `yaml:"retry_backoff,omitempty"`
	RetryInitialDelay string           `yaml:"retry_initial_delay,omitempty"` // e.g. "1s"
	RetryMaxDelay     string           `yaml:"retry_max_delay,omitempty"`     // e.g. "30s"
}

// WatchConfig holds watch-mode behavior
type WatchConfig struct {
	Debounce string   `yaml:"debounce,omitempty"` // e.g. "2s"
	Interval string   `yaml:"interval,omitempty"` // optional periodic rebuild, e.g. "30m"
	Paths    []string `yaml:"paths,omitempty"`    // extra paths to watch
}

// MonitoringConfig enables the Prometheus metrics endpoint (watch mode only)
type MonitoringConfig struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr,omitempty"`
}

// HistoryConfig enables the SQLite build-history store
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// Load loads configuration from the specified file
func Load(configPath string) (*Config, error) {
	// Load .env file if it exists
	if err := loadEnvFiles(); err != nil {
		// Don't fail if .env doesn't exist, just note it
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Project: ProjectConfig{
			Name:       "NOAARadarDownloader",
			EntryPoint: "noaa_radar_downloader.py",
			Icon:       "radar_icon.ico",
			DataFiles: []DataFile{
				{Source: "LICENSE", Dest: "."},
			},
		},
		Venv: VenvConfig{
			Dir:          "venv",
			Requirements: "requirements.txt",
		},
		Output: OutputConfig{
			BuildDir: "build",
			DistDir:  "dist",
		},
		Build: BuildConfig{
			FailureMode: FailureBestEffort,
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
