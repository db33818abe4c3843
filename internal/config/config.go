// Package config holds the gameplay tuning constants for the world core.
// Values are loadable from YAML so balance changes never require a rebuild.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the balance constants consumed by the simulation core.
type Tuning struct {
	// Calendar
	DayLength  int `yaml:"day_length"`  // world-clock units in half a day/night cycle base
	StoreTurns int `yaml:"store_turns"` // underground day-counter period base

	// Energy
	MoveEnergy int `yaml:"move_energy"` // energy needed to act once

	// Food
	FoodValue int `yaml:"food_value"` // digestion scale constant

	// Monsters
	LevelMonsterMax    int `yaml:"level_monster_max"`    // live monster ceiling per level
	AllocMonsterChance int `yaml:"alloc_monster_chance"` // 1-in-N spawn roll per tick
	MaxSight           int `yaml:"max_sight"`            // sight radius, spawn distance base

	// Levels
	MaxDepth  int `yaml:"max_depth"`  // deepest generatable level
	StairSkip int `yaml:"stair_skip"` // levels skipped per stair for deep descent

	// Misc
	LifeDrainPercent int  `yaml:"life_drain_percent"` // experience drain scale
	NotifyRecharge   bool `yaml:"notify_recharge"`    // notify all recharges, not just "!!" items
	CoverTracksStep  int  `yaml:"cover_tracks_step"`  // noise increment while covering tracks
}

// Default returns the stock tuning values.
func Default() *Tuning {
	return &Tuning{
		DayLength:          1250,
		StoreTurns:         1000,
		MoveEnergy:         100,
		FoodValue:          100,
		LevelMonsterMax:    1024,
		AllocMonsterChance: 500,
		MaxSight:           20,
		MaxDepth:           128,
		StairSkip:          1,
		LifeDrainPercent:   2,
		NotifyRecharge:     false,
		CoverTracksStep:    4,
	}
}

// Load reads tuning overrides from a YAML file on top of the defaults.
func Load(path string) (*Tuning, error) {
	t := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("failed to parse tuning file: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate rejects values the simulation cannot run with.
func (t *Tuning) Validate() error {
	if t.DayLength <= 0 {
		return fmt.Errorf("day_length must be positive, got %d", t.DayLength)
	}
	if t.MoveEnergy <= 0 {
		return fmt.Errorf("move_energy must be positive, got %d", t.MoveEnergy)
	}
	if t.FoodValue <= 0 {
		return fmt.Errorf("food_value must be positive, got %d", t.FoodValue)
	}
	if t.AllocMonsterChance <= 0 {
		return fmt.Errorf("alloc_monster_chance must be positive, got %d", t.AllocMonsterChance)
	}
	if t.StairSkip <= 0 {
		return fmt.Errorf("stair_skip must be positive, got %d", t.StairSkip)
	}
	return nil
}
