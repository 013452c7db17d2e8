package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

type AppConfig struct {
	Name string
	Env  string
	Port string

	DatabaseURL   string
	RedisAddr     string
	RedisPassword string

	// TemplateAPIURL points at a remote template API. Empty means the
	// built-in templates are served.
	TemplateAPIURL       string
	TemplateCacheTTL     time.Duration
	TemplateFetchTimeout time.Duration
	TemplateFetchRetries int

	// SessionTTL is how long an untouched preview session is kept.
	SessionTTL time.Duration

	// Warnings lists the values that were rejected in favour of defaults.
	// The caller logs them once a logger exists.
	Warnings []string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		appConfig = FromEnv(os.Getenv)
	})
	return appConfig
}

// FromEnv builds a config from getenv without caching it.
func FromEnv(getenv func(string) string) *AppConfig {
	c := &AppConfig{}
	env := getenv("APP_ENV")
	if env == "" {
		env = "development"
		c.warn("APP_ENV not set, defaulting to %s", env)
	}
	name := getenv("APP_NAME")
	if name == "" {
		name = "resume-studio"
	}
	port := getenv("PORT")
	if port == "" {
		port = "3000"
	}
	c.Name = name
	c.Env = env
	c.Port = port
	c.DatabaseURL = getenv("DATABASE_URL")
	c.RedisAddr = getenv("REDIS_ADDR")
	c.RedisPassword = getenv("REDIS_PASSWORD")
	c.TemplateAPIURL = getenv("TEMPLATE_API_URL")
	c.TemplateCacheTTL = c.duration(getenv, "TEMPLATE_CACHE_TTL", 10*time.Minute)
	c.TemplateFetchTimeout = c.duration(getenv, "TEMPLATE_FETCH_TIMEOUT", 10*time.Second)
	c.TemplateFetchRetries = c.number(getenv, "TEMPLATE_FETCH_RETRIES", 2)
	c.SessionTTL = c.duration(getenv, "SESSION_TTL", 30*time.Minute)
	return c
}

func (c *AppConfig) IsProduction() bool { return c.Env == "production" }

func (c *AppConfig) warn(format string, args ...interface{}) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

func (c *AppConfig) duration(getenv func(string) string, key string, def time.Duration) time.Duration {
	s := getenv(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		c.warn("invalid %s %q, using %s", key, s, def)
		return def
	}
	return d
}

func (c *AppConfig) number(getenv func(string) string, key string, def int) int {
	s := getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		c.warn("invalid %s %q, using %d", key, s, def)
		return def
	}
	return n
}
