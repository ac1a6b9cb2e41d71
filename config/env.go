// Package config holds the application's environment configuration.
//
// Values are resolved in order: process environment, .env file (loaded once
// via godotenv), built-in defaults.
package config

import (
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

const (
	defaultAppPort   = "8080"
	defaultAppEnv    = "local"
	defaultMongoURI  = "mongodb://localhost:27017"
	defaultMongoDB   = "pawvilla"
	defaultRedisAddr = "localhost:6379"
	defaultJWTSecret = "change-me-in-production"
)

var (
	loadOnce sync.Once

	defaults = map[string]string{
		"APP_PORT":           defaultAppPort,
		"APP_ENV":            defaultAppEnv,
		"MONGO_URI":          defaultMongoURI,
		"MONGO_DB":           defaultMongoDB,
		"REDIS_ADDR":         defaultRedisAddr,
		"REDIS_PASSWORD":     "",
		"JWT_SECRET":         defaultJWTSecret,
		"COOKIE_SECURE":      "false",
		"ORDER_MISSING_ITEM": "skip",
		"STORAGE_DISK":       "local",
		"STORAGE_LOCAL_ROOT": "storage",
		"STORAGE_URL":        "http://localhost:8080/storage",
		"S3_REGION":          "us-east-1",
	}
)

// Load reads the .env file once. A missing file is not an error; the
// process environment and defaults still apply.
func Load() error {
	var err error
	loadOnce.Do(func() {
		if e := godotenv.Load(); e != nil && !os.IsNotExist(e) {
			err = e
		}
	})
	return err
}

// Get reads a config key, falling back to the built-in default and then to
// the supplied fallback.
func Get(key, fallback string) string {
	_ = Load()
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	if v, ok := defaults[key]; ok && v != "" {
		return v
	}
	return fallback
}

func AppPort() string { return Get("APP_PORT", defaultAppPort) }
func AppEnv() string  { return Get("APP_ENV", defaultAppEnv) }

func MongoURI() string      { return Get("MONGO_URI", defaultMongoURI) }
func MongoDB() string       { return Get("MONGO_DB", defaultMongoDB) }
func RedisAddr() string     { return Get("REDIS_ADDR", defaultRedisAddr) }
func RedisPassword() string { return Get("REDIS_PASSWORD", "") }

func JWTSecret() string { return Get("JWT_SECRET", defaultJWTSecret) }

// CookieSecure reports whether session cookies should carry the Secure flag.
func CookieSecure() bool {
	return strings.EqualFold(Get("COOKIE_SECURE", "false"), "true")
}

// OrderMissingItemPolicy is "skip" (drop unresolvable line items) or "fail"
// (reject the whole order). Anything unrecognised falls back to "skip".
func OrderMissingItemPolicy() string {
	if p := strings.ToLower(Get("ORDER_MISSING_ITEM", "skip")); p == "fail" {
		return p
	}
	return "skip"
}

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageDefault() string   { return Get("STORAGE_DISK", "local") }
func StorageLocalRoot() string { return Get("STORAGE_LOCAL_ROOT", "storage") }
func StorageURL() string       { return Get("STORAGE_URL", "http://localhost:8080/storage") }

func StorageS3Bucket() string   { return Get("S3_BUCKET", "") }
func StorageS3Region() string   { return Get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { return Get("S3_KEY", "") }
func StorageS3Secret() string   { return Get("S3_SECRET", "") }
func StorageS3Endpoint() string { return Get("S3_ENDPOINT", "") }
func StorageS3URL() string      { return Get("S3_URL", "") }

// ── Log sink ─────────────────────────────────────────────────────────────────

func LogMongoURI() string { return Get("LOG_MONGO_URI", "") }
func LogMongoDB() string  { return Get("LOG_MONGO_DB", MongoDB()) }
