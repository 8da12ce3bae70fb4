package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string
	}
	DB struct {
		Path string
	}
	JWT struct {
		Secret string
		TTL    time.Duration
	}
	OTP struct {
		TTL time.Duration
	}
	RateLimit struct {
		Max    int
		Window time.Duration
	}
	Razorpay struct {
		KeyID     string
		KeySecret string
	}
	Upload struct {
		Dir     string
		BaseURL string
	}
	ShutdownTimeout time.Duration
}

// Load reads config.yaml (when present) and the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("Server.Port", "5000")
	v.SetDefault("DB.Path", "desidine.db")
	v.SetDefault("JWT.Secret", "desidine_dev_secret")
	v.SetDefault("JWT.TTL", 7*24*time.Hour)
	v.SetDefault("OTP.TTL", 5*time.Minute)
	v.SetDefault("RateLimit.Max", 100)
	v.SetDefault("RateLimit.Window", 15*time.Minute)
	v.SetDefault("Razorpay.KeyID", "rzp_test_dummy")
	v.SetDefault("Razorpay.KeySecret", "dummysecret")
	v.SetDefault("Upload.Dir", "public/uploads")
	v.SetDefault("Upload.BaseURL", "/public/uploads")
	v.SetDefault("ShutdownTimeout", 10*time.Second)

	v.AutomaticEnv()

	// Config file is optional; env and defaults are enough to run.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
