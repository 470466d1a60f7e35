package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"SERVICE_NAME", "SERVER_PORT", "LOG_LEVEL", "DATABASE_URL",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"KAFKA_BROKERS", "KAFKA_CART_TOPIC", "SCHEMA_BOOTSTRAP_LENIENT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PASSWORD", "s3cr3t")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "cart", cfg.ServiceName)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "Market", cfg.DBName)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "cart_events", cfg.KafkaCartTopic)
	assert.Nil(t, cfg.KafkaBrokers)
	assert.False(t, cfg.SchemaBootstrapLenient)
}

func TestLoadConfig_MissingPassword(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
}

func TestLoadConfig_DatabaseURLSkipsPassword(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://app:pw@db:5432/shop?sslmode=disable")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "postgres://app:pw@db:5432/shop?sslmode=disable", cfg.DSN())
	assert.NotContains(t, cfg.RedactedDSN(), "pw@")
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PASSWORD", "x")
	t.Setenv("SERVER_PORT", "70000")

	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestConfig_DSNHidesPasswordWhenRedacted(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_PASSWORD", "p@ss word")
	t.Setenv("DB_HOST", "pg")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("SCHEMA_BOOTSTRAP_LENIENT", "true")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(cfg.DSN(), "postgres://postgres:"))
	assert.Contains(t, cfg.DSN(), "@pg:5432/Market")
	assert.Contains(t, cfg.DSN(), "sslmode=disable")
	assert.NotContains(t, cfg.RedactedDSN(), "p%40ss")
	assert.Contains(t, cfg.RedactedDSN(), "xxxxx")
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.SchemaBootstrapLenient)
}

func TestConfig_RedactedDSNKeywordValue(t *testing.T) {
	tests := []struct {
		name string
		dsn  string
	}{
		{name: "keyword value", dsn: "host=db user=postgres password=s3cret dbname=Market sslmode=disable"},
		{name: "quoted password", dsn: "host=db port=5433 user=app password='s3cret with space' dbname=shop"},
		{name: "url", dsn: "postgresql://app:s3cret@db:5432/shop?sslmode=disable"},
		{name: "unparseable", dsn: "host=db password=s3cret port=notaport"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{DatabaseURL: tt.dsn}
			redacted := cfg.RedactedDSN()
			assert.NotContains(t, redacted, "s3cret")
			assert.NotEmpty(t, redacted)
		})
	}

	cfg := &Config{DatabaseURL: "host=db port=5433 user=app password=s3cret dbname=shop"}
	assert.Equal(t, "postgres://app:xxxxx@db:5433/shop", cfg.RedactedDSN())
}

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a", "b"}, CSV(" a ,, b "))
}
