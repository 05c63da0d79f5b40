package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

const minimal = `
app:
  port: 9090
openai:
  provider: mock
jwt:
  secret: s
s3:
  presign_ttl_seconds: 300
`

func TestLoadDefaultsAndDerived(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Minute, cfg.PresignTTL)
	assert.Equal(t, 5*time.Minute, cfg.SignedURLCacheTTL)
	assert.Equal(t, 30*time.Second, cfg.SchedulerInterval)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.False(t, cfg.StorageEnabled())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "7070")
	t.Setenv("OPENAI_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("AWS_BUCKET", "media")

	cfg, err := Load(writeConfig(t, minimal))
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.App.Port)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.StorageEnabled())
}

func TestLoadRequiresAPIKeyForOpenAI(t *testing.T) {
	t.Setenv("OPENAI_PROVIDER", "openai")
	_, err := Load(writeConfig(t, minimal))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("OPENAI_PROVIDER", "mock")
	t.Setenv("JWT_SECRET", "from-env")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "from-env", cfg.JWT.Secret)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		c := &Config{}
		c.App.Port = 1
		c.OpenAI.Provider = "mock"
		c.JWT.Secret = "s"
		c.Store.Driver = "memory"
		return c
	}
	assert.NoError(t, base().Validate())

	c := base()
	c.JWT.Secret = ""
	assert.Error(t, c.Validate())

	c = base()
	c.Store.Driver = "mongo"
	assert.ErrorContains(t, c.Validate(), "MONGO_URI")

	c = base()
	c.OpenAI.Provider = "anthropic"
	assert.Error(t, c.Validate())
}
