package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Port   string
	Mongo  MongoConfig
	JWT    JWTConfig
	Server ServerConfig
}

type MongoConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type ServerConfig struct {
	StoreTimeout  time.Duration
	PropertyOrder string // asc | desc
	MaxPhotoBytes int64
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file loaded, using process environment")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() (Config, error) {
	cfg := Config{
		Port: getEnv("PORT", "5000"),
		Mongo: MongoConfig{
			URI:            mongoURI(),
			Database:       getEnv("DB_NAME", "rent-property"),
			ConnectTimeout: getEnvDuration("CONNECT_TIMEOUT", 10*time.Second),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			TTL:    getEnvDuration("TOKEN_TTL", 24*time.Hour),
		},
		Server: ServerConfig{
			StoreTimeout:  getEnvDuration("STORE_TIMEOUT", 10*time.Second),
			PropertyOrder: strings.ToLower(getEnv("PROPERTY_ORDER", "asc")),
			MaxPhotoBytes: getEnvInt64("MAX_PHOTO_BYTES", 5<<20),
		},
	}

	if cfg.Mongo.URI == "" {
		return cfg, fmt.Errorf("MONGO_URI (or DB_USER, DB_PASS and DB_HOST) is required")
	}
	if cfg.JWT.Secret == "" {
		return cfg, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Server.PropertyOrder != "asc" && cfg.Server.PropertyOrder != "desc" {
		return cfg, fmt.Errorf("PROPERTY_ORDER must be asc or desc, got %q", cfg.Server.PropertyOrder)
	}
	return cfg, nil
}

// mongoURI prefers MONGO_URI and otherwise composes an Atlas SRV string.
func mongoURI() string {
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		return uri
	}
	user, pass, host := os.Getenv("DB_USER"), os.Getenv("DB_PASS"), os.Getenv("DB_HOST")
	if user == "" || pass == "" || host == "" {
		return ""
	}
	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(user, pass),
		Host:     host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func getEnvInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}
