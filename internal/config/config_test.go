package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "STORE_DRIVER", "KAFKA_BROKERS", "JWT_TTL", "RATE_LIMIT_PER_MINUTE", "KAFKA_GROUP_ID", "METRICS_PORT", "TRUSTED_PROXIES"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.HTTPPort != "3000" {
		t.Errorf("Expected default port 3000, got %s", cfg.HTTPPort)
	}
	if cfg.StoreDriver != "postgres" {
		t.Errorf("Expected default driver postgres, got %s", cfg.StoreDriver)
	}
	if len(cfg.KafkaBrokers) != 0 {
		t.Errorf("Expected no brokers, got %v", cfg.KafkaBrokers)
	}
	if cfg.JWTTTL != time.Hour {
		t.Errorf("Expected 1h token ttl, got %v", cfg.JWTTTL)
	}
	if cfg.RateLimit != 100 {
		t.Errorf("Expected rate limit 100, got %d", cfg.RateLimit)
	}
	if cfg.KafkaGroupID != "confusion-eventlog" {
		t.Errorf("Expected default consumer group, got %s", cfg.KafkaGroupID)
	}
	if cfg.MetricsPort != "9100" {
		t.Errorf("Expected default metrics port 9100, got %s", cfg.MetricsPort)
	}
	if len(cfg.TrustedProxies) != 0 {
		t.Errorf("Expected no trusted proxies, got %v", cfg.TrustedProxies)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8443")
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")
	t.Setenv("JWT_TTL", "15m")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "not-a-number")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("KAFKA_GROUP_ID", "audit")
	t.Setenv("METRICS_PORT", "9200")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.168.1.1")

	cfg := Load()

	if cfg.HTTPPort != "8443" {
		t.Errorf("Expected port 8443, got %s", cfg.HTTPPort)
	}
	if cfg.StoreDriver != "mongo" {
		t.Errorf("Expected mongo driver, got %s", cfg.StoreDriver)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "k2:9092" {
		t.Errorf("Expected two trimmed brokers, got %v", cfg.KafkaBrokers)
	}
	if cfg.JWTTTL != 15*time.Minute {
		t.Errorf("Expected 15m ttl, got %v", cfg.JWTTTL)
	}
	if cfg.RateLimit != 100 {
		t.Errorf("Expected fallback rate limit, got %d", cfg.RateLimit)
	}
	if cfg.KafkaGroupID != "audit" {
		t.Errorf("Expected consumer group audit, got %s", cfg.KafkaGroupID)
	}
	if cfg.MetricsPort != "9200" {
		t.Errorf("Expected metrics port 9200, got %s", cfg.MetricsPort)
	}
	if len(cfg.TrustedProxies) != 2 || cfg.TrustedProxies[1] != "192.168.1.1" {
		t.Errorf("Expected two trusted proxies, got %v", cfg.TrustedProxies)
	}
	if cfg.IsDevelopment() {
		t.Error("Expected production environment")
	}
}
