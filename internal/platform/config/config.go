// Package config builds runtime configuration from environment variables so
// main stays lean.
package config

import (
	"os"
	"strings"
	"time"
)

// Store backends selectable through IDENTITY_STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string

	// StoreBackend selects the credential store: memory, redis, or postgres.
	StoreBackend string
	PostgresDSN  string
	Redis        RedisConfig

	// KafkaBrokers enables the Kafka event sink when non-empty.
	KafkaBrokers []string
	KafkaTopic   string

	// MintVerifyKey is the hex-encoded ed25519 public key for mint
	// signatures. Empty leaves signature checking permissive.
	MintVerifyKey string
	// StrictProofs enables digest proof verification.
	StrictProofs bool
}

// RedisConfig captures Redis client tuning. URL empty means Redis is not
// configured.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("IDENTITY_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default; override in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}
	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "identity-service"
	}
	jwtAudience := os.Getenv("JWT_AUDIENCE")
	if jwtAudience == "" {
		jwtAudience = "identity-clients"
	}

	backend := os.Getenv("IDENTITY_STORE_BACKEND")
	if backend == "" {
		backend = BackendMemory
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = "identity.events"
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		JWTIssuer:     jwtIssuer,
		JWTAudience:   jwtAudience,
		StoreBackend:  backend,
		PostgresDSN:   os.Getenv("POSTGRES_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		KafkaBrokers:  brokers,
		KafkaTopic:    topic,
		MintVerifyKey: os.Getenv("MINT_VERIFY_KEY"),
		StrictProofs:  os.Getenv("STRICT_PROOFS") == "true",
	}
}
