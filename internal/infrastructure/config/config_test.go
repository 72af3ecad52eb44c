package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ServerPort != "8080" {
			t.Fatalf("expected default port, got %s", cfg.ServerPort)
		}
		if cfg.AWSRegion != "us-east-1" || cfg.Currency != "CAD" {
			t.Fatalf("unexpected defaults: %+v", cfg)
		}
	})

	t.Run("environment override", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9999")
		cfg, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ServerPort != "9999" {
			t.Fatalf("expected env override, got %s", cfg.ServerPort)
		}
	})
}

func TestDefaultPolicy(t *testing.T) {
	policy := DefaultPolicy()

	t.Run("scoring weights budget", func(t *testing.T) {
		s := policy.Scoring
		weights := s.WeightStepCoverage + s.WeightInspectionCoverage + s.WeightCheckpointCoverage +
			s.WeightCodeReferences + s.WeightPaymentStructure + s.WeightWarrantyTerms
		if math.Abs(weights-1.0) > 1e-9 {
			t.Fatalf("expected base weights to sum to 1.00, got %v", weights)
		}
	})

	t.Run("known categories carry rates and defaults", func(t *testing.T) {
		for _, name := range []string{"painting", "moving", "cleaning", "flooring"} {
			cat, ok := policy.Pricing.Categories[name]
			if !ok {
				t.Fatalf("missing category %s", name)
			}
			if cat.MinRate <= 0 || cat.MaxRate < cat.MinRate {
				t.Fatalf("bad rates for %s: %+v", name, cat)
			}
		}
	})

	t.Run("escrow percentages", func(t *testing.T) {
		if policy.Escrow.DepositPercent != 0.10 || policy.Escrow.PlatformFeePercent != 0.10 {
			t.Fatalf("unexpected escrow policy: %+v", policy.Escrow)
		}
	})
}

func TestLoadPolicy(t *testing.T) {
	t.Run("empty file keeps defaults", func(t *testing.T) {
		policy, err := LoadPolicy("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if policy.Escrow.DepositPercent != 0.10 {
			t.Fatalf("expected defaults, got %+v", policy.Escrow)
		}
	})

	t.Run("yaml overlay", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "policy.yaml")
		yaml := []byte("escrow:\n  deposit_percent: 0.15\npricing:\n  city_multipliers:\n    ottawa: 1.05\n")
		if err := os.WriteFile(file, yaml, 0o600); err != nil {
			t.Fatalf("write policy: %v", err)
		}

		policy, err := LoadPolicy(file)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if policy.Escrow.DepositPercent != 0.15 {
			t.Fatalf("expected overlay, got %+v", policy.Escrow)
		}
		if policy.Pricing.CityMultipliers["ottawa"] != 1.05 {
			t.Fatalf("expected merged multiplier, got %+v", policy.Pricing.CityMultipliers)
		}
		// Untouched sections keep their defaults.
		if policy.Scoring.HighThreshold != 0.75 {
			t.Fatalf("expected default scoring, got %+v", policy.Scoring)
		}
	})
}
