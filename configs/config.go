package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv    string
	DBDriver  string
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	RedisAddr     string
	StatsCacheTTL time.Duration

	StrictOrderTransitions bool

	DemoOwnerUsername string
	DemoOwnerPassword string
}

// LoadConfig reads .env when there is one; the real environment wins.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("cannot read .env: %v", err)
	}

	return &Config{
		AppEnv:                 getEnv("APP_ENV", "development"),
		DBDriver:               getEnv("DB_DRIVER", "sqlite"),
		DBSource:               getEnv("DB_SOURCE", "food-cart.db"),
		Port:                   getEnv("PORT", "8000"),
		JWTSecret:              getEnv("JWT_SECRET", "changeme"),
		JWTTTL:                 getDuration("JWT_TTL", 24*time.Hour),
		RedisAddr:              getEnv("REDIS_ADDR", ""),
		StatsCacheTTL:          getDuration("STATS_CACHE_TTL", time.Minute),
		StrictOrderTransitions: getBool("STRICT_ORDER_TRANSITIONS", false),
		DemoOwnerUsername:      getEnv("DEMO_OWNER_USERNAME", ""),
		DemoOwnerPassword:      getEnv("DEMO_OWNER_PASSWORD", ""),
	}
}

func (c *Config) IsProduction() bool { return c.AppEnv == "production" }

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("bad %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("bad %s=%q, using %t", key, v, fallback)
		return fallback
	}
	return b
}
