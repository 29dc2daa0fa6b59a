package buyergroup

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	doc := "min_group_size: 2\nflight_risk_baseline: 0.4\nchampion_influence_min: 7.5\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MinGroupSize != 2 {
		t.Fatalf("min_group_size: expected 2, got %d", cfg.MinGroupSize)
	}
	if !almostEqual(cfg.FlightRiskBaseline, 0.4) {
		t.Fatalf("flight_risk_baseline: expected 0.4, got %g", cfg.FlightRiskBaseline)
	}
	if !almostEqual(cfg.ChampionInfluenceMin, 7.5) {
		t.Fatalf("champion_influence_min: expected 7.5, got %g", cfg.ChampionInfluenceMin)
	}
	// Keys absent from the file keep their defaults.
	def := DefaultConfig()
	if cfg.SeniorConnectionsMin != def.SeniorConnectionsMin {
		t.Fatalf("senior_connections_min drifted to %d", cfg.SeniorConnectionsMin)
	}
	if !almostEqual(cfg.PriorityHighInfluence, def.PriorityHighInfluence) {
		t.Fatalf("priority_high_influence drifted to %g", cfg.PriorityHighInfluence)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte("min_group_size: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected validation error for min_group_size 0")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateCutPointOrdering(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PriorityHighInfluence = 5
	cfg.PriorityMediumInfluence = 10
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when high cut sits below medium cut")
	}

	cfg = DefaultConfig()
	cfg.NetworkDivisor = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero network divisor")
	}

	cfg = DefaultConfig()
	cfg.InferredTitleConfidence = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for out-of-range confidence")
	}
}
