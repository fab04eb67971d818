package config

import (
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"club-auth"`

	Server  ServerConfig
	Auth    AuthConfig
	DB      DBConfig
	Redis   RedisConfig
	Email   EmailConfig
	Cleanup CleanupConfig
	Jaeger  *JaegerConfig
}

type ServerConfig struct {
	Mode   string `env:"SERVER_MODE"   envDefault:"dev"`
	Scheme string `env:"SERVER_SCHEME" envDefault:"http"`
	Domain string `env:"SERVER_DOMAIN" envDefault:"localhost"`
	Port   int    `env:"SERVER_PORT"   envDefault:"8080"`
}

type AuthConfig struct {
	Issuer          string        `env:"AUTH_ISSUER"           envDefault:"club-auth"`
	AccessSecret    string        `env:"AUTH_ACCESS_SECRET,notEmpty"`
	RefreshSecret   string        `env:"AUTH_REFRESH_SECRET,notEmpty"`
	AccessDuration  time.Duration `env:"AUTH_ACCESS_DURATION"  envDefault:"15m"`
	RefreshDuration time.Duration `env:"AUTH_REFRESH_DURATION" envDefault:"168h"`
	RotateRefresh   bool          `env:"AUTH_ROTATE_REFRESH"   envDefault:"false"`
}

type DBConfig struct {
	Host     string        `env:"DB_HOST"     envDefault:"localhost"`
	Port     int           `env:"DB_PORT"     envDefault:"5432"`
	User     string        `env:"DB_USER"     envDefault:"postgres"`
	Password string        `env:"DB_PASSWORD" envDefault:"postgres"`
	Database string        `env:"DB_DATABASE" envDefault:"club_auth"`
	Timeout  time.Duration `env:"DB_TIMEOUT"  envDefault:"5s"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
}

type EmailConfig struct {
	Enabled bool   `env:"EMAIL_ENABLED" envDefault:"false"`
	Server  string `env:"EMAIL_SERVER"  envDefault:"smtp.gmail.com"`
	Port    int    `env:"EMAIL_PORT"    envDefault:"587"`
	User    string `env:"EMAIL_USER"    envDefault:""`
	Pass    string `env:"EMAIL_PASS"    envDefault:""`
	Admin   string `env:"EMAIL_ADMIN"   envDefault:""`
}

type CleanupConfig struct {
	Interval  time.Duration `env:"CLEANUP_INTERVAL"  envDefault:"1h"`
	Retention time.Duration `env:"CLEANUP_RETENTION" envDefault:"720h"`
}

type JaegerConfig struct {
	Sampler  JaegerSamplerConfig
	Reporter JaegerReporterConfig
}

type JaegerSamplerConfig struct {
	Type  string `env:"JAEGER_SAMPLER_TYPE"  envDefault:"const"`
	Param int    `env:"JAEGER_SAMPLER_PARAM" envDefault:"1"`
}

type JaegerReporterConfig struct {
	LogSpans           bool   `env:"JAEGER_REPORTER_LOG_SPANS"  envDefault:"false"`
	LocalAgentHostPort string `env:"JAEGER_AGENT_HOST_PORT"     envDefault:"localhost:6831"`
}

func MustLoad(path string) Config {
	if err := godotenv.Load(path); err != nil {
		zap.L().Info("No env file found, relying on process environment", zap.String("path", path))
	}

	conf := Config{Jaeger: &JaegerConfig{}}
	if err := env.Parse(&conf); err != nil {
		zap.L().Fatal("failed to parse config", zap.Error(err))
	}

	return conf
}
