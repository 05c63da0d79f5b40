package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConf struct {
	Env             string `mapstructure:"env"`
	Port            int    `mapstructure:"port"`
	ReadTimeoutSec  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSec int    `mapstructure:"write_timeout_seconds"`
	IdleTimeoutSec  int    `mapstructure:"idle_timeout_seconds"`
	ShutdownSecond  int    `mapstructure:"shutdown_seconds"`
	BodyLimitMB     int    `mapstructure:"body_limit_mb"`
	CORSOrigins     string `mapstructure:"cors_origins"`
}

type StoreConf struct {
	Driver string `mapstructure:"driver"` // memory | mongo
	Seed   bool   `mapstructure:"seed"`
}

type MongoConf struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type OpenAIConf struct {
	Provider   string `mapstructure:"provider"` // openai | mock
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	Model      string `mapstructure:"model"`
	TimeoutSec int    `mapstructure:"timeout_seconds"`
}

type JWTConf struct {
	Secret     string `mapstructure:"secret"`
	TTLMinutes int    `mapstructure:"ttl_minutes"`
	HashCost   int    `mapstructure:"password_hash_cost"`
}

type AWSConf struct {
	Region   string `mapstructure:"region"`
	Bucket   string `mapstructure:"bucket"`
	Endpoint string `mapstructure:"endpoint"`
}

type S3Conf struct {
	PublicRead bool `mapstructure:"public_read"`
	PresignTTL int  `mapstructure:"presign_ttl_seconds"`
}

type RedisConf struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	SignedTTL int    `mapstructure:"signed_url_cache_ttl_seconds"`
}

type KafkaConf struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type SchedulerConf struct {
	Enabled         bool `mapstructure:"enabled"`
	IntervalSeconds int  `mapstructure:"interval_seconds"`
}

type RateLimitConf struct {
	AuthPerMinute int `mapstructure:"auth_per_minute"`
	Burst         int `mapstructure:"burst"`
}

type Config struct {
	App       AppConf       `mapstructure:"app"`
	Store     StoreConf     `mapstructure:"store"`
	Mongo     MongoConf     `mapstructure:"mongo"`
	OpenAI    OpenAIConf    `mapstructure:"openai"`
	JWT       JWTConf       `mapstructure:"jwt"`
	AWS       AWSConf       `mapstructure:"aws"`
	S3        S3Conf        `mapstructure:"s3"`
	Redis     RedisConf     `mapstructure:"redis"`
	Kafka     KafkaConf     `mapstructure:"kafka"`
	Scheduler SchedulerConf `mapstructure:"scheduler"`
	RateLimit RateLimitConf `mapstructure:"ratelimit"`
	Log       struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`

	// derived
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	OpenAITimeout     time.Duration
	TokenTTL          time.Duration
	PresignTTL        time.Duration
	SignedURLCacheTTL time.Duration
	SchedulerInterval time.Duration
}

var defaults = map[string]any{
	"app.env":                            "development",
	"app.port":                           8080,
	"app.read_timeout_seconds":           30,
	"app.write_timeout_seconds":          90,
	"app.idle_timeout_seconds":           120,
	"app.shutdown_seconds":               15,
	"app.body_limit_mb":                  55,
	"app.cors_origins":                   "*",
	"store.driver":                       "memory",
	"store.seed":                         true,
	"mongo.uri":                          "",
	"mongo.database":                     "contentflow",
	"openai.provider":                    "openai",
	"openai.api_key":                     "",
	"openai.base_url":                    "",
	"openai.model":                       "gpt-4o-mini",
	"openai.timeout_seconds":             60,
	"jwt.secret":                         "",
	"jwt.ttl_minutes":                    60 * 24,
	"jwt.password_hash_cost":             10,
	"aws.region":                         "us-east-1",
	"aws.bucket":                         "",
	"aws.endpoint":                       "",
	"s3.public_read":                     false,
	"s3.presign_ttl_seconds":             600,
	"redis.addr":                         "",
	"redis.password":                     "",
	"redis.db":                           0,
	"redis.signed_url_cache_ttl_seconds": 0,
	"kafka.brokers":                      []string{},
	"kafka.topic":                        "contentflow.events",
	"scheduler.enabled":                  true,
	"scheduler.interval_seconds":         30,
	"ratelimit.auth_per_minute":          20,
	"ratelimit.burst":                    5,
	"log.level":                          "info",
}

// Load reads the YAML file at path, then lets environment variables
// override any key (openai.api_key -> OPENAI_API_KEY). A .env file in the
// working directory is loaded first. A missing config file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.derive()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) derive() {
	if c.App.ShutdownSecond == 0 {
		c.App.ShutdownSecond = 15
	}
	c.ReadTimeout = time.Duration(c.App.ReadTimeoutSec) * time.Second
	c.WriteTimeout = time.Duration(c.App.WriteTimeoutSec) * time.Second
	c.IdleTimeout = time.Duration(c.App.IdleTimeoutSec) * time.Second
	c.ShutdownTimeout = time.Duration(c.App.ShutdownSecond) * time.Second
	c.OpenAITimeout = time.Duration(c.OpenAI.TimeoutSec) * time.Second
	c.TokenTTL = time.Duration(c.JWT.TTLMinutes) * time.Minute
	if c.S3.PresignTTL == 0 {
		c.S3.PresignTTL = 600
	}
	c.PresignTTL = time.Duration(c.S3.PresignTTL) * time.Second
	if c.Redis.SignedTTL == 0 {
		c.Redis.SignedTTL = c.S3.PresignTTL
	}
	c.SignedURLCacheTTL = time.Duration(c.Redis.SignedTTL) * time.Second
	if c.Scheduler.IntervalSeconds <= 0 {
		c.Scheduler.IntervalSeconds = 30
	}
	c.SchedulerInterval = time.Duration(c.Scheduler.IntervalSeconds) * time.Second
	c.Kafka.Brokers = compact(c.Kafka.Brokers)
}

func compact(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (c *Config) Validate() error {
	switch c.OpenAI.Provider {
	case "openai":
		if c.OpenAI.APIKey == "" {
			return errors.New("OPENAI_API_KEY is required when openai.provider is openai")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown openai.provider %q", c.OpenAI.Provider)
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.Store.Driver {
	case "memory":
	case "mongo":
		if c.Mongo.URI == "" {
			return errors.New("MONGO_URI is required when store.driver is mongo")
		}
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}
	if c.App.Port <= 0 {
		return fmt.Errorf("invalid app.port %d", c.App.Port)
	}
	return nil
}

func (c *Config) Development() bool { return c.App.Env == "development" }

func (c *Config) StorageEnabled() bool { return c.AWS.Bucket != "" }
