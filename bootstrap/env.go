package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Env struct {
	AppEnv                 string `mapstructure:"APP_ENV"`
	ServerAddress          string `mapstructure:"SERVER_ADDRESS"`
	ContextTimeout         int    `mapstructure:"CONTEXT_TIMEOUT"`
	DBHost                 string `mapstructure:"DB_HOST"`
	DBPort                 string `mapstructure:"DB_PORT"`
	DBUser                 string `mapstructure:"DB_USER"`
	DBPass                 string `mapstructure:"DB_PASS"`
	DBName                 string `mapstructure:"DB_NAME"`
	AccessTokenExpiryHour  int    `mapstructure:"ACCESS_TOKEN_EXPIRY_HOUR"`
	AccessTokenSecret      string `mapstructure:"ACCESS_TOKEN_SECRET"`
	RedisAddr              string `mapstructure:"REDIS_ADDR"`
	RedisPassword          string `mapstructure:"REDIS_PASSWORD"`
	StorageEndpoint        string `mapstructure:"STORAGE_ENDPOINT"`
	StorageRegion          string `mapstructure:"STORAGE_REGION"`
	StorageBucket          string `mapstructure:"STORAGE_BUCKET"`
	StorageAccessKeyID     string `mapstructure:"STORAGE_ACCESS_KEY_ID"`
	StorageSecretAccessKey string `mapstructure:"STORAGE_SECRET_ACCESS_KEY"`
	StoragePublicURL       string `mapstructure:"STORAGE_PUBLIC_URL"`
	CORSAllowedOrigins     string `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LoginRatePerMinute     int    `mapstructure:"LOGIN_RATE_PER_MINUTE"`
}

var envKeys = []string{
	"APP_ENV", "SERVER_ADDRESS", "CONTEXT_TIMEOUT",
	"DB_HOST", "DB_PORT", "DB_USER", "DB_PASS", "DB_NAME",
	"ACCESS_TOKEN_EXPIRY_HOUR", "ACCESS_TOKEN_SECRET",
	"REDIS_ADDR", "REDIS_PASSWORD",
	"STORAGE_ENDPOINT", "STORAGE_REGION", "STORAGE_BUCKET",
	"STORAGE_ACCESS_KEY_ID", "STORAGE_SECRET_ACCESS_KEY", "STORAGE_PUBLIC_URL",
	"CORS_ALLOWED_ORIGINS", "LOGIN_RATE_PER_MINUTE",
}

// NewEnv 读取 .env，环境变量优先。path 为空时只使用环境变量
func NewEnv(path string) (*Env, error) {
	v := viper.New()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("CONTEXT_TIMEOUT", 10)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "27017")
	v.SetDefault("DB_NAME", "releases")
	v.SetDefault("ACCESS_TOKEN_EXPIRY_HOUR", 12)
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("LOGIN_RATE_PER_MINUTE", 10)

	// Unmarshal 只认识已知的 key，AutomaticEnv 需要逐个绑定
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read %s: %w", path, err)
			}
		}
	}

	env := &Env{}
	if err := v.Unmarshal(env); err != nil {
		return nil, fmt.Errorf("environment can't be loaded: %w", err)
	}
	return env, env.validate()
}

func (env *Env) validate() error {
	if env.AccessTokenSecret == "" {
		return fmt.Errorf("ACCESS_TOKEN_SECRET is required")
	}
	if env.ContextTimeout <= 0 {
		return fmt.Errorf("CONTEXT_TIMEOUT must be positive")
	}
	return nil
}

func (env *Env) IsDevelopment() bool {
	return env.AppEnv == "development"
}

func (env *Env) Timeout() time.Duration {
	return time.Duration(env.ContextTimeout) * time.Second
}

func (env *Env) AccessTokenExpiry() time.Duration {
	return time.Duration(env.AccessTokenExpiryHour) * time.Hour
}

// AllowedOrigins 逗号分隔
func (env *Env) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(env.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
