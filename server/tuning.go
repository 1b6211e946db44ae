package main

import (
	"encoding/json"
	"fmt"
	"os"

	"seafling/internal/sim"
)

// LoadTuning returns the default combat tuning with the fields present in
// the JSON file at path overriding it. An empty path returns the defaults.
func LoadTuning(path string) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read tuning: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse tuning %s: %w", path, err)
	}
	if err := validateTuning(&cfg); err != nil {
		return cfg, fmt.Errorf("tuning %s: %w", path, err)
	}
	return cfg, nil
}

// validateTuning rejects values the simulation cannot step with
func validateTuning(cfg *sim.Config) error {
	switch {
	case cfg.ShipMaxHP <= 0:
		return fmt.Errorf("shipMaxHp must be positive, got %v", cfg.ShipMaxHP)
	case cfg.PlayerGravity <= 0 || cfg.EnemyGravity <= 0:
		return fmt.Errorf("gravity must be positive, got %v/%v", cfg.PlayerGravity, cfg.EnemyGravity)
	case cfg.RepairInterval <= 0:
		return fmt.Errorf("repairInterval must be positive, got %d", cfg.RepairInterval)
	case cfg.MainCooldown < 0:
		return fmt.Errorf("mainCooldown must not be negative, got %d", cfg.MainCooldown)
	}
	return nil
}
