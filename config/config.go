/*
 * config.go, part of gochem.
 *
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 * goChem is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

// Package config loads the tunable parameters of the structure core (bond
// perception thresholds, state tracking and logging) from a YAML file and
// MOLCORE_* environment variables.
package config

import (
	"fmt"

	"go.uber.org/zap"

	chem "github.com/wkpark/jmol-sub011"
	"github.com/wkpark/jmol-sub011/perceive"
)

// BondingConfig holds the covalent bond perception parameters, in Å.
type BondingConfig struct {
	Tolerance    float64 `mapstructure:"tolerance"`
	MinDistance  float64 `mapstructure:"min_distance"`
	MaxBondCount int     `mapstructure:"max_bond_count"`
	Diameter     int     `mapstructure:"diameter"`
}

// HBondConfig holds the hydrogen bond perception parameters. Distances in
// Å, angles in degrees.
type HBondConfig struct {
	DistanceMaximum      float64 `mapstructure:"distance_maximum"`
	AngleMinimum         float64 `mapstructure:"angle_minimum"`
	HXDistanceMinimum    float64 `mapstructure:"hx_distance_minimum"`
	HXDistanceMaximum    float64 `mapstructure:"hx_distance_maximum"`
	HeavyDistanceMinimum float64 `mapstructure:"heavy_distance_minimum"`
	Backbone             bool    `mapstructure:"backbone"`
	Diameter             int     `mapstructure:"diameter"`
}

// StateConfig controls the per-atom change tracking and bond-list pooling
// of new Stores.
type StateConfig struct {
	Preserve     bool `mapstructure:"preserve"`
	BondListPool bool `mapstructure:"bond_list_pool"`
}

// LogConfig holds the logger parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`  //debug, info, warn or error
	Format string `mapstructure:"format"` //json or console
}

type Config struct {
	Bonding BondingConfig `mapstructure:"bonding"`
	HBonds  HBondConfig   `mapstructure:"hbonds"`
	State   StateConfig   `mapstructure:"state"`
	Log     LogConfig     `mapstructure:"log"`
}

// Default returns the configuration with every parameter at its default.
func Default() *Config {
	b, h := perceive.DefaultBonding(), perceive.DefaultHBonds()
	return &Config{
		Bonding: BondingConfig{
			Tolerance:    b.Tolerance,
			MinDistance:  b.MinDistance,
			MaxBondCount: b.MaxBondCount,
			Diameter:     int(b.Mad),
		},
		HBonds: HBondConfig{
			DistanceMaximum:      h.DistanceMaximum,
			AngleMinimum:         h.AngleMinimum,
			HXDistanceMinimum:    h.HXDistanceMinimum,
			HXDistanceMaximum:    h.HXDistanceMaximum,
			HeavyDistanceMinimum: h.HeavyDistanceMinimum,
			Backbone:             h.Backbone,
			Diameter:             int(h.Mad),
		},
		State: StateConfig{Preserve: true, BondListPool: true},
		Log:   LogConfig{Level: "info", Format: "json"},
	}
}

// Validate returns the first inconsistency found in c, or nil.
func (c *Config) Validate() error {
	b, h := c.Bonding, c.HBonds
	if b.Tolerance < 0 {
		return fmt.Errorf("config: bonding.tolerance must be ≥ 0, got %g", b.Tolerance)
	}
	if b.MinDistance < 0 {
		return fmt.Errorf("config: bonding.min_distance must be ≥ 0, got %g", b.MinDistance)
	}
	if b.MaxBondCount < 1 {
		return fmt.Errorf("config: bonding.max_bond_count must be ≥ 1, got %d", b.MaxBondCount)
	}
	if h.DistanceMaximum <= 0 {
		return fmt.Errorf("config: hbonds.distance_maximum must be > 0, got %g", h.DistanceMaximum)
	}
	if h.AngleMinimum < 0 || h.AngleMinimum > 180 {
		return fmt.Errorf("config: hbonds.angle_minimum %g is out of range [0, 180]", h.AngleMinimum)
	}
	if h.HXDistanceMinimum < 0 || h.HXDistanceMaximum < h.HXDistanceMinimum {
		return fmt.Errorf("config: hbonds.hx_distance range [%g, %g] is invalid", h.HXDistanceMinimum, h.HXDistanceMaximum)
	}
	if h.HeavyDistanceMinimum < 0 || h.HeavyDistanceMinimum > h.DistanceMaximum {
		return fmt.Errorf("config: hbonds.heavy_distance_minimum %g is out of range [0, %g]", h.HeavyDistanceMinimum, h.DistanceMaximum)
	}
	for _, d := range []int{b.Diameter, h.Diameter} {
		if d < 0 || d > 0x7fff {
			return fmt.Errorf("config: diameter %d is out of range [0, 32767]", d)
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}
	return nil
}

// BondingParams returns the covalent perception parameters.
func (c *Config) BondingParams() perceive.BondingParams {
	return perceive.BondingParams{
		Tolerance:    c.Bonding.Tolerance,
		MinDistance:  c.Bonding.MinDistance,
		MaxBondCount: c.Bonding.MaxBondCount,
		Mad:          int16(c.Bonding.Diameter),
	}
}

// HBondParams returns the hydrogen bond perception parameters.
func (c *Config) HBondParams() perceive.HBondParams {
	h := c.HBonds
	return perceive.HBondParams{
		DistanceMaximum:      h.DistanceMaximum,
		AngleMinimum:         h.AngleMinimum,
		HXDistanceMinimum:    h.HXDistanceMinimum,
		HXDistanceMaximum:    h.HXDistanceMaximum,
		HeavyDistanceMinimum: h.HeavyDistanceMinimum,
		Backbone:             h.Backbone,
		Mad:                  int16(h.Diameter),
	}
}

// StoreOptions returns the options to create a Store with this
// configuration, logging to log.
func (c *Config) StoreOptions(log *zap.Logger) []chem.Option {
	return []chem.Option{
		chem.WithLogger(log),
		chem.WithPreserveState(c.State.Preserve),
		chem.WithBondListPool(c.State.BondListPool),
	}
}
