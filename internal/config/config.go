package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	KafkaBrokers   []string
	KafkaCartTopic string

	// SchemaBootstrapLenient keeps the service starting when the cart table
	// cannot be created.
	SchemaBootstrapLenient bool
}

func LoadConfig(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("Notice: %s file not found: %v. Using system environment variables", envFile, err)
		}
	}

	cfg := &Config{
		ServiceName: EnvDefault("SERVICE_NAME", "cart"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    os.Getenv("LOG_LEVEL"),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      EnvDefault("DB_HOST", "localhost"),
		DBPort:      EnvDefault("DB_PORT", "5432"),
		DBUser:      EnvDefault("DB_USER", "postgres"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      EnvDefault("DB_NAME", "Market"),
		DBSSLMode:   EnvDefault("DB_SSLMODE", "disable"),

		KafkaBrokers:   CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaCartTopic: EnvDefault("KAFKA_CART_TOPIC", "cart_events"),

		SchemaBootstrapLenient: EnvBoolDefault("SCHEMA_BOOTSTRAP_LENIENT", false),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.ServerPort)
	}
	if c.DatabaseURL != "" {
		return nil
	}
	return NonEmpty(c.DBPassword, "DB_PASSWORD")
}

// DSN returns the connection string for the storage engine. DATABASE_URL wins
// over the individual DB_* variables.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.dsnURL().String()
}

// RedactedDSN is DSN with the password masked, safe for logs. DATABASE_URL
// may be a URL or a keyword/value string.
func (c *Config) RedactedDSN() string {
	if c.DatabaseURL == "" {
		return c.dsnURL().Redacted()
	}
	if strings.HasPrefix(c.DatabaseURL, "postgres://") || strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		u, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return unparseableDSN
		}
		return u.Redacted()
	}

	pc, err := pgconn.ParseConfig(c.DatabaseURL)
	if err != nil {
		return unparseableDSN
	}
	u := &url.URL{
		Scheme: "postgres",
		User:   url.User(pc.User),
		Host:   net.JoinHostPort(pc.Host, strconv.Itoa(int(pc.Port))),
		Path:   "/" + pc.Database,
	}
	if pc.Password != "" {
		u.User = url.UserPassword(pc.User, pc.Password)
	}
	return u.Redacted()
}

const unparseableDSN = "<unparseable DATABASE_URL>"

func (c *Config) dsnURL() *url.URL {
	q := url.Values{}
	q.Set("sslmode", c.DBSSLMode)
	return &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: q.Encode(),
	}
}

func (c *Config) Addr() string {
	return ":" + strconv.Itoa(c.ServerPort)
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
