package config

import (
	"os"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	DatabaseURL     string
	KafkaBrokers    string
	AuditTopic      string
	ShutdownTimeout time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
// An empty DatabaseURL selects the in-memory stores; an empty KafkaBrokers
// selects the in-memory audit sink.
func FromEnv() Server {
	addr := os.Getenv("CONSENTD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	auditTopic := os.Getenv("CONSENTD_AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "consentd.audit"
	}

	shutdown := 10 * time.Second
	if raw := os.Getenv("CONSENTD_SHUTDOWN_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			shutdown = d
		}
	}

	return Server{
		Addr:            addr,
		DatabaseURL:     os.Getenv("CONSENTD_DATABASE_URL"),
		KafkaBrokers:    os.Getenv("CONSENTD_KAFKA_BROKERS"),
		AuditTopic:      auditTopic,
		ShutdownTimeout: shutdown,
	}
}
