// Package config centralizes service configuration. Environment variables
// (plus an optional .env file) are loaded with Viper into Config; the
// category pricing tables and scoring policy live in explicit structures
// with in-code defaults, overridable from a YAML policy file, and are
// passed into the use cases at construction instead of living as
// process-wide state.
package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the environment-driven settings of the service.
type Config struct {
	ServerPort       string `mapstructure:"SERVER_PORT"`
	AWSRegion        string `mapstructure:"AWS_REGION"`
	DynamoDBEndpoint string `mapstructure:"DYNAMODB_ENDPOINT"`
	RabbitMQURL      string `mapstructure:"RABBITMQ_URL"`
	EventExchange    string `mapstructure:"EVENT_EXCHANGE"`
	MPAccessToken    string `mapstructure:"MERCADOPAGO_ACCESS_TOKEN"`
	Currency         string `mapstructure:"CURRENCY"`
	PolicyFile       string `mapstructure:"PRICING_CONFIG_FILE"`
}

// Load reads environment configuration from the given path.
func Load(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("EVENT_EXCHANGE", "renomarket.events")
	v.SetDefault("CURRENCY", "CAD")

	for _, key := range []string{
		"SERVER_PORT", "AWS_REGION", "DYNAMODB_ENDPOINT", "RABBITMQ_URL",
		"EVENT_EXCHANGE", "MERCADOPAGO_ACCESS_TOKEN", "CURRENCY", "PRICING_CONFIG_FILE",
	} {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("[config] optional .env not readable, using environment values: %v", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// CategoryPricing is the static pricing table entry for one job category.
type CategoryPricing struct {
	MinRate      float64            `mapstructure:"min_rate" json:"min_rate"`
	MaxRate      float64            `mapstructure:"max_rate" json:"max_rate"`
	DefaultHours float64            `mapstructure:"default_hours" json:"default_hours"`
	HourRule     string             `mapstructure:"hour_rule" json:"hour_rule"`
	Defaults     map[string]float64 `mapstructure:"defaults" json:"defaults"`
}

// PricingConfig is the full pricing policy consumed by the estimator.
type PricingConfig struct {
	Categories      map[string]CategoryPricing `mapstructure:"categories" json:"categories"`
	CityMultipliers map[string]float64         `mapstructure:"city_multipliers" json:"city_multipliers"`
	FallbackHours   float64                    `mapstructure:"fallback_hours" json:"fallback_hours"`
	FallbackMinRate float64                    `mapstructure:"fallback_min_rate" json:"fallback_min_rate"`
	FallbackMaxRate float64                    `mapstructure:"fallback_max_rate" json:"fallback_max_rate"`
}

// ScoringConfig is the scope-confidence policy: factor weights, per-factor
// expectation baselines and tier thresholds. Weights sum to 1.00.
type ScoringConfig struct {
	WeightStepCoverage       float64 `mapstructure:"weight_step_coverage" json:"weight_step_coverage"`
	WeightInspectionCoverage float64 `mapstructure:"weight_inspection_coverage" json:"weight_inspection_coverage"`
	WeightCheckpointCoverage float64 `mapstructure:"weight_checkpoint_coverage" json:"weight_checkpoint_coverage"`
	WeightCodeReferences     float64 `mapstructure:"weight_code_references" json:"weight_code_references"`
	WeightPaymentStructure   float64 `mapstructure:"weight_payment_structure" json:"weight_payment_structure"`
	WeightWarrantyTerms      float64 `mapstructure:"weight_warranty_terms" json:"weight_warranty_terms"`
	WeightBCINBonus          float64 `mapstructure:"weight_bcin_bonus" json:"weight_bcin_bonus"`

	ExpectedSteps       int `mapstructure:"expected_steps" json:"expected_steps"`
	ExpectedInspections int `mapstructure:"expected_inspections" json:"expected_inspections"`
	ExpectedCheckpoints int `mapstructure:"expected_checkpoints" json:"expected_checkpoints"`

	HoldbackMin float64 `mapstructure:"holdback_min" json:"holdback_min"`
	HoldbackMax float64 `mapstructure:"holdback_max" json:"holdback_max"`

	HighThreshold   float64 `mapstructure:"high_threshold" json:"high_threshold"`
	MediumThreshold float64 `mapstructure:"medium_threshold" json:"medium_threshold"`
}

// EscrowConfig is the deposit and platform-fee policy.
type EscrowConfig struct {
	DepositPercent     float64 `mapstructure:"deposit_percent" json:"deposit_percent"`
	PlatformFeePercent float64 `mapstructure:"platform_fee_percent" json:"platform_fee_percent"`
	Currency           string  `mapstructure:"currency" json:"currency"`
}

// Policy bundles the three reviewable policy tables.
type Policy struct {
	Pricing PricingConfig `mapstructure:"pricing" json:"pricing"`
	Scoring ScoringConfig `mapstructure:"scoring" json:"scoring"`
	Escrow  EscrowConfig  `mapstructure:"escrow" json:"escrow"`
}

// DefaultPolicy returns the built-in policy tables. Reload policy: the
// policy is read once at startup; changing it means restarting the service,
// which keeps every in-flight request on a single consistent version.
func DefaultPolicy() Policy {
	return Policy{
		Pricing: PricingConfig{
			FallbackHours:   4,
			FallbackMinRate: 35,
			FallbackMaxRate: 60,
			CityMultipliers: map[string]float64{
				"toronto":   1.15,
				"vancouver": 1.2,
				"montreal":  0.95,
				"calgary":   1.0,
			},
			Categories: map[string]CategoryPricing{
				"painting": {
					MinRate: 45, MaxRate: 75, DefaultHours: 6, HourRule: "painting",
					Defaults: map[string]float64{"squareFootage": 300, "numberOfRooms": 1, "coatsNeeded": 1},
				},
				"moving": {
					MinRate: 40, MaxRate: 65, DefaultHours: 5, HourRule: "moving",
					Defaults: map[string]float64{"numberOfRooms": 1, "floorNumber": 0, "distanceKm": 0},
				},
				"cleaning": {
					MinRate: 30, MaxRate: 50, DefaultHours: 3, HourRule: "cleaning",
					Defaults: map[string]float64{"squareFootage": 300, "numberOfBathrooms": 1},
				},
				"flooring": {
					MinRate: 50, MaxRate: 90, DefaultHours: 8, HourRule: "",
					Defaults: map[string]float64{"squareFootage": 300},
				},
			},
		},
		Scoring: ScoringConfig{
			WeightStepCoverage:       0.40,
			WeightInspectionCoverage: 0.20,
			WeightCheckpointCoverage: 0.15,
			WeightCodeReferences:     0.10,
			WeightPaymentStructure:   0.10,
			WeightWarrantyTerms:      0.05,
			WeightBCINBonus:          0.05,
			ExpectedSteps:            8,
			ExpectedInspections:      2,
			ExpectedCheckpoints:      2,
			HoldbackMin:              5,
			HoldbackMax:              15,
			HighThreshold:            0.75,
			MediumThreshold:          0.45,
		},
		Escrow: EscrowConfig{
			DepositPercent:     0.10,
			PlatformFeePercent: 0.10,
			Currency:           "CAD",
		},
	}
}

// LoadPolicy returns the default policy, overlaid with the YAML policy file
// when one is configured. An unreadable file is a startup error, not a
// silent fallback.
func LoadPolicy(file string) (Policy, error) {
	policy := DefaultPolicy()
	if strings.TrimSpace(file) == "" {
		return policy, nil
	}

	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return Policy{}, err
	}
	if err := v.Unmarshal(&policy); err != nil {
		return Policy{}, err
	}
	return policy, nil
}
