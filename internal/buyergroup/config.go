package buyergroup

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable cut point in the engine. The same engine serves
// every target company; per-company drivers adjust these values rather than
// forking the pipeline.
type Config struct {
	// Title inference thresholds (used when no title field resolves).
	SeniorConnectionsMin int `yaml:"senior_connections_min"`
	SeniorFollowersMin   int `yaml:"senior_followers_min"`
	MidConnectionsMin    int `yaml:"mid_connections_min"`

	// Enrichment confidence per title resolution path.
	DirectTitleConfidence   float64 `yaml:"direct_title_confidence"`
	InferredTitleConfidence float64 `yaml:"inferred_title_confidence"`

	// Seniority network fallback (connections+followers totals).
	SeniorNetworkMin int `yaml:"senior_network_min"`
	MidNetworkMin    int `yaml:"mid_network_min"`

	// Influence score shape.
	NetworkDivisor     float64 `yaml:"network_divisor"`
	NetworkScoreCap    float64 `yaml:"network_score_cap"`
	RecommendationUnit float64 `yaml:"recommendation_unit"`
	RecommendationCap  float64 `yaml:"recommendation_cap"`

	// Flight risk shape.
	FlightRiskBaseline    float64 `yaml:"flight_risk_baseline"`
	HighTurnoverIncrement float64 `yaml:"high_turnover_increment"`
	NoActivityIncrement   float64 `yaml:"no_activity_increment"`

	// Role assignment cut points.
	DecisionMakerPowerMin     float64 `yaml:"decision_maker_power_min"`
	DecisionMakerInfluenceMin float64 `yaml:"decision_maker_influence_min"`
	ChampionInfluenceMin      float64 `yaml:"champion_influence_min"`
	ChampionDeptInfluenceMin  float64 `yaml:"champion_dept_influence_min"`
	ChampionPowerMin          float64 `yaml:"champion_power_min"`
	BlockerInfluenceMax       float64 `yaml:"blocker_influence_max"`
	StakeholderInfluenceMin   float64 `yaml:"stakeholder_influence_min"`

	// Group building.
	MinGroupSize            int     `yaml:"min_group_size"`
	PriorityHighInfluence   float64 `yaml:"priority_high_influence"`
	PriorityHighPower       float64 `yaml:"priority_high_power"`
	PriorityMediumInfluence float64 `yaml:"priority_medium_influence"`
	PriorityMediumPower     float64 `yaml:"priority_medium_power"`

	// Clock supplies the report timestamp; tests pin it for byte-identical
	// output. Nil means time.Now.
	Clock func() time.Time `yaml:"-"`
}

// DefaultConfig returns the production cut points. Where the historical
// analysis variants disagreed, both alternatives survive as separate fields
// (e.g. DecisionMakerPowerMin and DecisionMakerInfluenceMin).
func DefaultConfig() Config {
	return Config{
		SeniorConnectionsMin: 500,
		SeniorFollowersMin:   1000,
		MidConnectionsMin:    200,

		DirectTitleConfidence:   0.8,
		InferredTitleConfidence: 0.3,

		SeniorNetworkMin: 2000,
		MidNetworkMin:    1000,

		NetworkDivisor:     1000.0,
		NetworkScoreCap:    10.0,
		RecommendationUnit: 0.5,
		RecommendationCap:  5.0,

		FlightRiskBaseline:    0.5,
		HighTurnoverIncrement: 0.1,
		NoActivityIncrement:   0.2,

		DecisionMakerPowerMin:     0.6,
		DecisionMakerInfluenceMin: 8.0,
		ChampionInfluenceMin:      6.0,
		ChampionDeptInfluenceMin:  5.0,
		ChampionPowerMin:          0.4,
		BlockerInfluenceMax:       3.0,
		StakeholderInfluenceMin:   4.0,

		MinGroupSize:            3,
		PriorityHighInfluence:   20.0,
		PriorityHighPower:       0.4,
		PriorityMediumInfluence: 8.0,
		PriorityMediumPower:     0.25,
	}
}

// Validate rejects configurations that would break engine invariants.
func (c Config) Validate() error {
	if c.MinGroupSize < 1 {
		return fmt.Errorf("min_group_size must be at least 1, got %d", c.MinGroupSize)
	}
	if c.DirectTitleConfidence < 0 || c.DirectTitleConfidence > 1 {
		return fmt.Errorf("direct_title_confidence must be in [0,1], got %g", c.DirectTitleConfidence)
	}
	if c.InferredTitleConfidence < 0 || c.InferredTitleConfidence > 1 {
		return fmt.Errorf("inferred_title_confidence must be in [0,1], got %g", c.InferredTitleConfidence)
	}
	if c.NetworkDivisor <= 0 {
		return fmt.Errorf("network_divisor must be positive, got %g", c.NetworkDivisor)
	}
	if c.NetworkScoreCap < 0 || c.RecommendationCap < 0 {
		return fmt.Errorf("score caps must be non-negative")
	}
	if c.FlightRiskBaseline < 0 || c.FlightRiskBaseline > 1 {
		return fmt.Errorf("flight_risk_baseline must be in [0,1], got %g", c.FlightRiskBaseline)
	}
	if c.PriorityHighInfluence < c.PriorityMediumInfluence {
		return fmt.Errorf("priority_high_influence (%g) below priority_medium_influence (%g)", c.PriorityHighInfluence, c.PriorityMediumInfluence)
	}
	if c.PriorityHighPower < c.PriorityMediumPower {
		return fmt.Errorf("priority_high_power (%g) below priority_medium_power (%g)", c.PriorityHighPower, c.PriorityMediumPower)
	}
	return nil
}

func (c Config) now() time.Time {
	if c.Clock != nil {
		return c.Clock()
	}
	return time.Now()
}

// LoadConfig reads YAML overrides from path on top of the defaults. Only keys
// present in the file are changed.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}
