// Copyright (c) 2012-2016 The go-diff authors. All rights reserved.
// https://github.com/sergi/go-diff
// See the included LICENSE file for license details.
//
// go-diff is a Go implementation of Google's Diff, Match, and Patch library
// Original library is Copyright (c) 2006 Google Inc.
// http://code.google.com/p/google-diff-match-patch/

// Package config loads the tuning parameters of the diff, match and patch
// engine from a config file, the environment and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/di-graph/go-dmp/diffmatchpatch"
)

const (
	// DefaultConfigName is the base name of the config file, without extension.
	DefaultConfigName = "dmp"
	// DefaultConfigDir is the directory under $HOME/.config searched for the config file.
	DefaultConfigDir = "dmp"
	// EnvPrefix prefixes every environment variable, e.g. DMP_DIFF_TIMEOUT.
	EnvPrefix = "DMP"
)

// Config holds every tunable of a DiffMatchPatch.
type Config struct {
	DiffTimeout          time.Duration `mapstructure:"diff_timeout"`
	DiffEditCost         int           `mapstructure:"diff_edit_cost"`
	MatchThreshold       float64       `mapstructure:"match_threshold"`
	MatchDistance        int           `mapstructure:"match_distance"`
	PatchDeleteThreshold float64       `mapstructure:"patch_delete_threshold"`
	PatchMargin          int           `mapstructure:"patch_margin"`
	MatchMaxBits         int           `mapstructure:"match_max_bits"`

	// Workers bounds the number of pairs diffed at once by the batch command.
	Workers int `mapstructure:"workers"`
}

// Default returns the configuration matching diffmatchpatch.New.
func Default() *Config {
	dmp := diffmatchpatch.New()
	return &Config{
		DiffTimeout:          dmp.DiffTimeout,
		DiffEditCost:         dmp.DiffEditCost,
		MatchThreshold:       dmp.MatchThreshold,
		MatchDistance:        dmp.MatchDistance,
		PatchDeleteThreshold: dmp.PatchDeleteThreshold,
		PatchMargin:          dmp.PatchMargin,
		MatchMaxBits:         dmp.MatchMaxBits,
		Workers:              4,
	}
}

// New returns a viper instance set up with the defaults, search paths and
// environment binding used by Load. Callers may bind flags to it before
// calling Decode.
func New(path string) *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault("diff_timeout", d.DiffTimeout)
	v.SetDefault("diff_edit_cost", d.DiffEditCost)
	v.SetDefault("match_threshold", d.MatchThreshold)
	v.SetDefault("match_distance", d.MatchDistance)
	v.SetDefault("patch_delete_threshold", d.PatchDeleteThreshold)
	v.SetDefault("patch_margin", d.PatchMargin)
	v.SetDefault("match_max_bits", d.MatchMaxBits)
	v.SetDefault("workers", d.Workers)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(getConfigDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Decode reads the config file, if any, and unmarshals v into a validated Config.
// A missing config file is not an error unless it was named explicitly.
func Decode(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := Default()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Load loads configuration from the file at path (or the default search
// paths when path is empty) and the environment.
func Load(path string) (*Config, error) {
	return Decode(New(path))
}

// Validate reports the first parameter outside its meaningful range.
func (c *Config) Validate() error {
	switch {
	case c.DiffEditCost < 0:
		return fmt.Errorf("diff_edit_cost must not be negative, got %d", c.DiffEditCost)
	case c.MatchThreshold < 0 || c.MatchThreshold > 1:
		return fmt.Errorf("match_threshold must be within [0, 1], got %v", c.MatchThreshold)
	case c.MatchDistance < 0:
		return fmt.Errorf("match_distance must not be negative, got %d", c.MatchDistance)
	case c.PatchDeleteThreshold < 0 || c.PatchDeleteThreshold > 1:
		return fmt.Errorf("patch_delete_threshold must be within [0, 1], got %v", c.PatchDeleteThreshold)
	case c.PatchMargin < 0:
		return fmt.Errorf("patch_margin must not be negative, got %d", c.PatchMargin)
	case c.MatchMaxBits < 1 || c.MatchMaxBits > strconv.IntSize-1:
		return fmt.Errorf("match_max_bits must be within [1, %d], got %d", strconv.IntSize-1, c.MatchMaxBits)
	case c.MatchMaxBits <= 2*c.PatchMargin:
		// Patches are split into chunks of match_max_bits that carry
		// patch_margin of context on both sides.
		return fmt.Errorf("match_max_bits (%d) must exceed twice patch_margin (%d)", c.MatchMaxBits, c.PatchMargin)
	case c.Workers < 1:
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

// NewDiffMatchPatch returns an engine tuned by c.
func (c *Config) NewDiffMatchPatch() *diffmatchpatch.DiffMatchPatch {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = c.DiffTimeout
	dmp.DiffEditCost = c.DiffEditCost
	dmp.MatchThreshold = c.MatchThreshold
	dmp.MatchDistance = c.MatchDistance
	dmp.PatchDeleteThreshold = c.PatchDeleteThreshold
	dmp.PatchMargin = c.PatchMargin
	dmp.MatchMaxBits = c.MatchMaxBits
	return dmp
}

// getConfigDir returns the path to the config directory
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".config", DefaultConfigDir)
}
