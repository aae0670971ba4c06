package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
)

// Config carries the process-level settings read once at startup. Backend
// DSNs (DB_URL, REDIS_URL) stay with their adapters, which read the
// environment themselves.
type Config struct {
	Port      int
	JWTSecret string
	// AllowedOrigins feeds CORS; empty means the storefront dev origins.
	AllowedOrigins []string
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:      3000,
		JWTSecret: os.Getenv("JWT_SECRET"),
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET environment variable is not set")
	}
	if v := strings.TrimSpace(os.Getenv("HTTP_PORT")); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p <= 0 {
			return nil, fmt.Errorf("config: invalid HTTP_PORT %q", v)
		}
		cfg.Port = p
	}
	if v := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}
	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// CorsConfig builds the CORS policy for the storefront frontend.
func (c *Config) CorsConfig() cors.Config {
	origins := c.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Connection-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
}
