package config_test

import (
	"testing"

	"github.com/abhisek/knowtest/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() config.Config {
	return config.Config{
		DataDir:         "data",
		Store:           config.StoreSQLite,
		PassThreshold:   3,
		FailThreshold:   3,
		ExhaustedPolicy: config.ExhaustEnd,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_ZeroThresholds(t *testing.T) {
	cfg := validConfig()
	cfg.PassThreshold = 0
	cfg.FailThreshold = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pass threshold")
	assert.Contains(t, err.Error(), "fail threshold")
}

func TestValidate_UnknownStore(t *testing.T) {
	cfg := validConfig()
	cfg.Store = "postgres"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown store "postgres"`)
}

func TestValidate_UnknownPolicy(t *testing.T) {
	cfg := validConfig()
	cfg.ExhaustedPolicy = "loop"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exhausted policy")
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"KNOWTEST_DATA_DIR", "KNOWTEST_STORE", "KNOWTEST_DB", "KNOWTEST_STATE_DIR",
		"KNOWTEST_PASS_THRESHOLD", "KNOWTEST_FAIL_THRESHOLD", "KNOWTEST_EXHAUSTED_POLICY",
	} {
		t.Setenv(k, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, config.StoreSQLite, cfg.Store)
	assert.Equal(t, 3, cfg.PassThreshold)
	assert.Equal(t, 3, cfg.FailThreshold)
	assert.Equal(t, config.ExhaustEnd, cfg.ExhaustedPolicy)
	assert.Empty(t, cfg.DBPath)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("KNOWTEST_STORE", "FILE")
	t.Setenv("KNOWTEST_STATE_DIR", "/tmp/knowtest")
	t.Setenv("KNOWTEST_PASS_THRESHOLD", "2")
	t.Setenv("KNOWTEST_FAIL_THRESHOLD", "4")
	t.Setenv("KNOWTEST_EXHAUSTED_POLICY", "recycle")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StoreFile, cfg.Store)
	assert.Equal(t, "/tmp/knowtest", cfg.StateDir)
	assert.Equal(t, 2, cfg.PassThreshold)
	assert.Equal(t, 4, cfg.FailThreshold)
	assert.Equal(t, config.ExhaustRecycle, cfg.ExhaustedPolicy)
}

func TestLoad_BadInt(t *testing.T) {
	t.Setenv("KNOWTEST_PASS_THRESHOLD", "three")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KNOWTEST_PASS_THRESHOLD")
}
