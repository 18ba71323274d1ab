package config

import (
	"testing"
	"time"

	"transcribe_billing/internal/domain/pricing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.StorageDriver != StorageDynamoDB || cfg.OrdersTable != "orders" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.PaymentVerifyTimeout != 15*time.Second || cfg.OrderCreateMaxAttempts != 10 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	pc := cfg.PricingConfig()
	if pc.ActiveVersion != pricing.VersionCrossTab || pc.MinimumChargeMinor != 200 || pc.SingleSpeakerPolicy != pricing.SingleSpeakerReject {
		t.Fatalf("unexpected pricing config: %+v", pc)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("PRICING_VERSION", "v1-additive")
	t.Setenv("SINGLE_SPEAKER_POLICY", "two_speaker_tier")
	t.Setenv("PAYMENT_VERIFY_TIMEOUT", "3s")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("MERCADOPAGO_MOCK", "yes")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StorageDriver != StorageMemory || cfg.PaymentVerifyTimeout != 3*time.Second {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.PricingConfig().ActiveVersion != pricing.VersionAdditive {
		t.Fatalf("expected additive version")
	}
	if b := cfg.Brokers(); len(b) != 2 || b[1] != "kafka-2:9092" {
		t.Fatalf("unexpected brokers: %v", b)
	}
	if !cfg.PaymentMockEnabled() {
		t.Fatalf("expected mock mode")
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown driver":         {"STORAGE_DRIVER": "mongo"},
		"postgres without url":   {"STORAGE_DRIVER": "postgres", "DATABASE_URL": ""},
		"unknown version":        {"STORAGE_DRIVER": "memory", "PRICING_VERSION": "v3"},
		"unknown speaker policy": {"STORAGE_DRIVER": "memory", "SINGLE_SPEAKER_POLICY": "round"},
		"bad minimum":            {"STORAGE_DRIVER": "memory", "MINIMUM_CHARGE_MINOR": "abc"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
