package config // package config loads application configuration from environment variables

import (
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types

	"github.com/joho/godotenv"   // godotenv populates the environment from a local .env file
	"github.com/sirupsen/logrus" // logrus reports configuration errors and halts execution
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations and costs.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	LogLevel     string // logrus level name (debug, info, warn, error)
	DBUser       string // database username
	DBPass       string // database password (optional)
	DBHost       string // database host address
	DBPort       string // database port number
	DBName       string // database name
	DBMigrate    bool   // apply the embedded schema at startup
	JWTSecret    string // secret used to sign JWTs
	AccessTTLMin int    // access token time‑to‑live in minutes
	BcryptCost   int    // bcrypt cost for password hashing

	// SerializeCapacity wraps the room capacity check and the booking
	// write in one transaction holding a row lock on the room.
	SerializeCapacity bool
}

// Load reads an optional .env file and then builds a Config from the
// environment.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	// A missing .env is normal in containers; real env vars win either way.
	_ = godotenv.Load()
	return Config{
		Env:               must("APP_ENV"),
		Port:              must("APP_PORT"),
		LogLevel:          envStr("LOG_LEVEL", "info"),
		DBUser:            must("DB_USER"),
		DBPass:            os.Getenv("DB_PASS"), // empty allowed
		DBHost:            must("DB_HOST"),
		DBPort:            must("DB_PORT"),
		DBName:            must("DB_NAME"),
		DBMigrate:         envBool("DB_MIGRATE", false),
		JWTSecret:         must("JWT_SECRET"),
		AccessTTLMin:      mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:        mustInt("BCRYPT_COST"),
		SerializeCapacity: envBool("BOOKING_SERIALIZE_CAPACITY", true),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		logrus.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		logrus.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
