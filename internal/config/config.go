package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Path string
	}
	Auth struct {
		AccessSecret  string
		RefreshSecret string
		AccessExpiry  string
		RefreshExpiry string
	}
	Storage struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	_ = godotenv.Load() // optional .env overlay

	v := viper.New()
	v.SetEnvPrefix("BLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// token settings keep their historical unprefixed names
	_ = v.BindEnv("auth.accesssecret", "JWT_SECRET")
	_ = v.BindEnv("auth.refreshsecret", "JWT_REFRESH_SECRET")
	_ = v.BindEnv("auth.accessexpiry", "ACCESS_TOKEN_EXPIRY")
	_ = v.BindEnv("auth.refreshexpiry", "REFRESH_TOKEN_EXPIRY")

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("database.path", "data/blog.db")
	v.SetDefault("auth.accesssecret", "")
	v.SetDefault("auth.refreshsecret", "")
	v.SetDefault("auth.accessexpiry", "15m")
	v.SetDefault("auth.refreshexpiry", "7d")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "avatars")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// ParseExpiry parses a token lifetime string. On top of the units understood
// by time.ParseDuration it accepts a day ("7d") or week ("2w") suffix.
func ParseExpiry(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if unit := s[len(s)-1]; unit == 'd' || unit == 'w' {
		n, err := strconv.ParseFloat(s[:len(s)-1], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		hours := n * 24
		if unit == 'w' {
			hours *= 7
		}
		return time.Duration(hours * float64(time.Hour)), nil
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}
