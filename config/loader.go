/*
 * loader.go, part of gochem.
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

package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const envPrefix = "MOLCORE"

//newViper returns a viper with every key defaulted, so that MOLCORE_*
//variables (MOLCORE_BONDING_TOLERANCE for bonding.tolerance) override
//them even when no file sets the key.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	d := Default()
	defaults := map[string]any{
		"bonding.tolerance":             d.Bonding.Tolerance,
		"bonding.min_distance":          d.Bonding.MinDistance,
		"bonding.max_bond_count":        d.Bonding.MaxBondCount,
		"bonding.diameter":              d.Bonding.Diameter,
		"hbonds.distance_maximum":       d.HBonds.DistanceMaximum,
		"hbonds.angle_minimum":          d.HBonds.AngleMinimum,
		"hbonds.hx_distance_minimum":    d.HBonds.HXDistanceMinimum,
		"hbonds.hx_distance_maximum":    d.HBonds.HXDistanceMaximum,
		"hbonds.heavy_distance_minimum": d.HBonds.HeavyDistanceMinimum,
		"hbonds.backbone":               d.HBonds.Backbone,
		"hbonds.diameter":               d.HBonds.Diameter,
		"state.preserve":                d.State.Preserve,
		"state.bond_list_pool":          d.State.BondListPool,
		"log.level":                     d.Log.Level,
		"log.format":                    d.Log.Format,
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return v
}

// Load reads the YAML file at path, applies MOLCORE_* environment
// overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", path, err)
	}
	return unmarshal(v)
}

// LoadFromEnv builds a Config from MOLCORE_<SECTION>_<FIELD> environment
// variables and defaults alone.
func LoadFromEnv() (*Config, error) {
	return unmarshal(newViper())
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// NewLogger builds the zap logger described by c, writing to stderr.
func NewLogger(c LogConfig) (*zap.Logger, error) {
	enc := zap.NewProductionEncoderConfig()
	encoding := "json"
	if c.Format == "console" {
		enc = zap.NewDevelopmentEncoderConfig()
		encoding = "console"
	}
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	zc := zap.Config{
		Level:            zap.NewAtomicLevelAt(parseLevel(c.Level)),
		Development:      c.Format == "console",
		Encoding:         encoding,
		EncoderConfig:    enc,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("config: failed to build logger: %w", err)
	}
	return l, nil
}
