package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
jwt_secret: test-secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, 1000, cfg.Moderation.MaxCommentLength)
	assert.Equal(t, 0.85, cfg.Moderation.SimilarityThreshold)
	assert.Equal(t, 3, cfg.Moderation.PromotionalWarnRepeats)
	assert.Equal(t, 6, cfg.Moderation.RepetitionHideRepeats)
	assert.Equal(t, 0.4, cfg.Moderation.AbuseWarnRate)
	assert.Equal(t, "SafeSpace Moderation System", cfg.Mail.FromName)
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
port: 9000
env: Production
database:
  host: db.internal
  user: safespace
  password: s3cret
  name: moderation
redis:
  host: cache.internal
  password: rpass
  db: 2
moderation:
  max_comment_length: 500
  similarity_threshold: 0.9
  abuse_suspend_rate: 0.7
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, 500, cfg.Moderation.MaxCommentLength)
	assert.Equal(t, 0.9, cfg.Moderation.SimilarityThreshold)
	assert.Equal(t, 0.7, cfg.Moderation.AbuseSuspendRate)
	// untouched sections keep defaults
	assert.Equal(t, 5, cfg.Moderation.RepetitionWarnRepeats)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `
port: 8000
databse:
  host: oops
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config file")
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	path := writeConfig(t, `
port: 70000
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestDSNValue(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.internal",
		Port:     3307,
		User:     "safespace",
		Password: "s3cret",
		Name:     "moderation",
		Charset:  "utf8mb4",
		Loc:      "Local",
	}
	dsn := db.DSNValue()
	assert.Contains(t, dsn, "safespace:s3cret@tcp(db.internal:3307)/moderation?")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")

	explicit := DatabaseConfig{DSN: "root:pw@tcp(localhost:3306)/x"}
	assert.Equal(t, "root:pw@tcp(localhost:3306)/x", explicit.DSNValue())
}

func TestRedisURLValue(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380, Password: "rpass", DB: 2}
	assert.Equal(t, "redis://:rpass@cache.internal:6380/2", r.URLValue())

	tls := RedisConfig{Host: "cache.internal", Port: 6379, TLS: true}
	assert.Equal(t, "rediss://cache.internal:6379/0", tls.URLValue())

	explicit := RedisConfig{URL: "cache.internal:6379/1"}
	assert.Equal(t, "redis://cache.internal:6379/1", explicit.URLValue())
}
