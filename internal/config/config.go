package config

import (
	"fmt"  // DSN formatting
	"time" // Durations

	"github.com/caarlos0/env/v10" // Env tag parsing
	"github.com/joho/godotenv"    // For loading .env files
)

// Session store backends
const (
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

// Config holds the application configuration
type Config struct {
	AppPort        string        `env:"APP_PORT" envDefault:"8080"`                                       // Application port
	DBUser         string        `env:"DB_USER" envDefault:"root"`                                        // Database user
	DBPassword     string        `env:"DB_PASSWORD"`                                                      // Database password
	DBHost         string        `env:"DB_HOST" envDefault:"127.0.0.1"`                                   // Database host
	DBPort         string        `env:"DB_PORT" envDefault:"3306"`                                        // Database port
	DBName         string        `env:"DB_NAME" envDefault:"shop"`                                        // Database name
	JWTSecret      string        `env:"JWT_SECRET,required,notEmpty"`                                     // JWT secret key
	JWTTTL         time.Duration `env:"JWT_TTL" envDefault:"6h"`                                          // Token lifetime
	DeluxeSecret   string        `env:"DELUXE_SECRET,required,notEmpty"`                                  // Key for deluxe token derivation
	RedisAddr      string        `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`                           // Redis server address
	RedisPass      string        `env:"REDIS_PASS"`                                                       // Redis password
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`                                          // Redis database number
	SessionBackend string        `env:"SESSION_BACKEND" envDefault:"redis"`                               // redis or memory
	CORSOrigins    []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:4200"` // Allowed CORS origins
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" envDefault:"5"`                                    // Sustained rate for limited routes
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"10"`                                 // Burst for limited routes
	IsProd         bool          `env:"IS_PROD" envDefault:"false"`                                       // Is production environment
}

// LoadConfig loads configuration from the environment, reading .env first when present
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	switch cfg.SessionBackend {
	case SessionBackendRedis, SessionBackendMemory:
	default:
		return nil, fmt.Errorf("unknown SESSION_BACKEND %q", cfg.SessionBackend)
	}
	return cfg, nil
}

// DSN builds the MySQL data source name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}
