package config

import (
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/carebridge/symptom-triage/triage"
	"github.com/carebridge/symptom-triage/triage/flow"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Triage   TriageConfig   `mapstructure:"triage"`
	Flow     FlowConfig     `mapstructure:"flow"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Audit    AuditConfig    `mapstructure:"audit"`
}

// DatabaseConfig stores database connection details.
type DatabaseConfig struct {
	DSN  string `mapstructure:"dsn"`
	Type string `mapstructure:"type"`
	// Embedded-only configuration
	LibSQLDataDir string `mapstructure:"libsql_data_dir"` // Directory for database files
}

// TriageConfig stores application-level configurations.
type TriageConfig struct {
	DataDir  string         `mapstructure:"dataDir"`
	Database DatabaseConfig `mapstructure:"database"`
}

// FlowConfig bounds the question flow so intake stays short.
type FlowConfig struct {
	MaxPainQuestions    int `mapstructure:"max_pain_questions"`    // Structured pain questions per episode
	MaxOptionalSymptom  int `mapstructure:"max_optional_symptom"`  // Optional template questions per episode
	MaxGeneralQuestions int `mapstructure:"max_general_questions"` // General fallback questions per episode
	MaxTotalQuestions   int `mapstructure:"max_total_questions"`   // Hard cap across all flows
	SevereSeverity      int `mapstructure:"severe_severity"`       // Severity at which intake shortens
	SevereMinAsked      int `mapstructure:"severe_min_asked"`      // Minimum questions before severe shortcut
	MinAskedForEnough   int `mapstructure:"min_asked_for_enough"`  // Minimum questions before guidance
}

// PipelineConfig stores intake pipeline configurations.
type PipelineConfig struct {
	// Telemetry
	EnableTracing bool `mapstructure:"enable_tracing"` // Enable structured logging/tracing

	// Memory extraction
	MemoryExtraction bool `mapstructure:"memory_extraction"` // Surface memory candidates for confirmation

	// Persistence
	PersistEpisodes bool `mapstructure:"persist_episodes"` // Store episodes in the embedded database
}

// AuditConfig stores safety audit harness configurations.
type AuditConfig struct {
	Concurrency    int  `mapstructure:"concurrency"`     // Max concurrent audit cases
	ValidateSchema bool `mapstructure:"validate_schema"` // Validate serialized guidance against the response schema
}

// Limits maps the flow section onto the controller's limit set.
func (f FlowConfig) Limits() flow.Limits {
	return flow.Limits{
		MaxPainQuestions:    f.MaxPainQuestions,
		MaxOptionalSymptom:  f.MaxOptionalSymptom,
		MaxGeneralQuestions: f.MaxGeneralQuestions,
		MaxTotalQuestions:   f.MaxTotalQuestions,
		SevereSeverity:      f.SevereSeverity,
		SevereMinAsked:      f.SevereMinAsked,
		MinAskedForEnough:   f.MinAskedForEnough,
	}
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("..")
		viper.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		viper.AddConfigPath(internal.DefaultConfigPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Set default values
	viper.SetDefault("triage.dataDir", internal.DefaultDataDir)
	viper.SetDefault("triage.database.dsn", internal.DefaultDatabaseDSN)
	viper.SetDefault("triage.database.type", internal.DefaultDatabaseType)

	// LibSQL embedded defaults only
	viper.SetDefault("triage.database.libsql_data_dir", internal.DefaultDataDir)

	// Flow defaults (mirror flow.DefaultLimits)
	viper.SetDefault("flow.max_pain_questions", 4)
	viper.SetDefault("flow.max_optional_symptom", 2)
	viper.SetDefault("flow.max_general_questions", 3)
	viper.SetDefault("flow.max_total_questions", 6)
	viper.SetDefault("flow.severe_severity", 8)
	viper.SetDefault("flow.severe_min_asked", 2)
	viper.SetDefault("flow.min_asked_for_enough", 3)

	// Pipeline defaults
	viper.SetDefault("pipeline.enable_tracing", true)
	viper.SetDefault("pipeline.memory_extraction", true)
	viper.SetDefault("pipeline.persist_episodes", true)

	// Audit defaults
	viper.SetDefault("audit.concurrency", 4)
	viper.SetDefault("audit.validate_schema", true)

	viper.AutomaticEnv()
	// Replace dots with underscores in env var names e.g. triage.database.dsn becomes TRIAGE_DATABASE_DSN
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; defaults apply. Not an error the
			// application should halt on.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &AppConfig, nil
}
