package config

import (
	"os"
	"path/filepath"
	"testing"

	internal "github.com/carebridge/symptom-triage/triage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// ConfigTestSuite tests the config package functionality
type ConfigTestSuite struct {
	suite.Suite
	tempDir string
	origDir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) SetupTest() {
	// Save original directory
	var err error
	suite.origDir, err = os.Getwd()
	require.NoError(suite.T(), err)

	// Create temporary directory for testing
	tempDir, err := os.MkdirTemp("", "triage-config-test-*")
	require.NoError(suite.T(), err)
	suite.tempDir = tempDir

	// Change to temp directory
	err = os.Chdir(tempDir)
	require.NoError(suite.T(), err)
}

func (suite *ConfigTestSuite) TearDownTest() {
	// Change back to original directory
	if suite.origDir != "" {
		os.Chdir(suite.origDir)
	}

	// Clean up temporary directory
	if suite.tempDir != "" {
		os.RemoveAll(suite.tempDir)
	}
}

func (suite *ConfigTestSuite) TestLoadConfigWithDefaults() {
	// Load config without config file (should use defaults)
	cfg, err := LoadConfig("")

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), cfg)

	// Test default values
	assert.Equal(suite.T(), internal.DefaultDataDir, cfg.Triage.DataDir)
	assert.Equal(suite.T(), internal.DefaultDatabaseDSN, cfg.Triage.Database.DSN)
	assert.Equal(suite.T(), internal.DefaultDatabaseType, cfg.Triage.Database.Type)

	assert.Equal(suite.T(), 4, cfg.Flow.MaxPainQuestions)
	assert.Equal(suite.T(), 6, cfg.Flow.MaxTotalQuestions)
	assert.Equal(suite.T(), 8, cfg.Flow.SevereSeverity)

	assert.True(suite.T(), cfg.Pipeline.EnableTracing)
	assert.True(suite.T(), cfg.Pipeline.MemoryExtraction)
	assert.True(suite.T(), cfg.Pipeline.PersistEpisodes)

	assert.Equal(suite.T(), 4, cfg.Audit.Concurrency)
	assert.True(suite.T(), cfg.Audit.ValidateSchema)
}

func (suite *ConfigTestSuite) TestLoadConfigWithFile() {
	// Create a test config file
	configContent := `
triage:
  dataDir: "./test-data"
  database:
    dsn: "episodes-test.db"
    type: "libsql"
flow:
  max_total_questions: 4
  max_pain_questions: 3
pipeline:
  persist_episodes: false
audit:
  concurrency: 2
`

	configFile := filepath.Join(suite.tempDir, "config.yaml")
	err := os.WriteFile(configFile, []byte(configContent), 0o644)
	require.NoError(suite.T(), err)

	// Load config from file
	cfg, err := LoadConfig(configFile)

	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), cfg)

	// Test that values were loaded from file
	assert.Equal(suite.T(), "./test-data", cfg.Triage.DataDir)
	assert.Equal(suite.T(), "episodes-test.db", cfg.Triage.Database.DSN)
	assert.Equal(suite.T(), 4, cfg.Flow.MaxTotalQuestions)
	assert.Equal(suite.T(), 3, cfg.Flow.MaxPainQuestions)
	assert.False(suite.T(), cfg.Pipeline.PersistEpisodes)
	assert.Equal(suite.T(), 2, cfg.Audit.Concurrency)

	// Defaults still cover sections the file leaves out
	assert.Equal(suite.T(), 3, cfg.Flow.MaxGeneralQuestions)
	assert.True(suite.T(), cfg.Audit.ValidateSchema)
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidFile() {
	// Explicit non-existent path should error rather than fall back to defaults
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigMalformedFile() {
	// Create a malformed config file
	malformedContent := `
triage:
  dataDir: "./test-data"
  invalid_yaml: [unclosed bracket
`

	configFile := filepath.Join(suite.tempDir, "malformed.yaml")
	err := os.WriteFile(configFile, []byte(malformedContent), 0o644)
	require.NoError(suite.T(), err)

	// Load config from malformed file
	cfg, err := LoadConfig(configFile)

	// Should return error for malformed YAML
	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), cfg)
}

func (suite *ConfigTestSuite) TestFlowLimits() {
	cfg, err := LoadConfig("")
	require.NoError(suite.T(), err)

	limits := cfg.Flow.Limits()
	assert.Equal(suite.T(), cfg.Flow.MaxPainQuestions, limits.MaxPainQuestions)
	assert.Equal(suite.T(), cfg.Flow.MaxOptionalSymptom, limits.MaxOptionalSymptom)
	assert.Equal(suite.T(), cfg.Flow.MaxGeneralQuestions, limits.MaxGeneralQuestions)
	assert.Equal(suite.T(), cfg.Flow.MaxTotalQuestions, limits.MaxTotalQuestions)
	assert.Equal(suite.T(), cfg.Flow.SevereSeverity, limits.SevereSeverity)
	assert.Equal(suite.T(), cfg.Flow.SevereMinAsked, limits.SevereMinAsked)
	assert.Equal(suite.T(), cfg.Flow.MinAskedForEnough, limits.MinAskedForEnough)
}

func (suite *ConfigTestSuite) TestAppConfigGlobal() {
	// Test that AppConfig global variable is set after loading
	cfg, err := LoadConfig("")
	require.NoError(suite.T(), err)

	// AppConfig should be set
	assert.Equal(suite.T(), cfg.Triage.Database.DSN, AppConfig.Triage.Database.DSN)
}

// TestConfigTypes tests the configuration type definitions
func TestConfigTypes(t *testing.T) {
	config := Config{}

	assert.IsType(t, TriageConfig{}, config.Triage)
	assert.IsType(t, FlowConfig{}, config.Flow)
	assert.IsType(t, PipelineConfig{}, config.Pipeline)
	assert.IsType(t, AuditConfig{}, config.Audit)

	dbConfig := DatabaseConfig{}
	assert.IsType(t, "", dbConfig.DSN)
	assert.IsType(t, "", dbConfig.Type)
}

// BenchmarkLoadConfig benchmarks config loading performance
func BenchmarkLoadConfig(b *testing.B) {
	for i := 0; i < b.N; i++ {
		cfg, err := LoadConfig("")
		if err != nil {
			b.Fatal(err)
		}
		_ = cfg
	}
}
