// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.


package utils

import (
	"encoding/hex"

	"github.com/0xsoniclabs/montecarlo/logger"
	"github.com/0xsoniclabs/montecarlo/stochastic"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// ArgumentMode determines the positional arguments a command accepts.
type ArgumentMode int

const (
	NoArgs ArgumentMode = iota
	OneArg
)

// Config represents the parsed command line of a single command.
type Config struct {
	AppName     string
	CommandName string

	Argument      string  // positional argument (experiment name or matrix file)
	Confidence    float64 // confidence level of intervals
	Growth        float64 // growth factor of the sample-size search
	Key           string  // hex key of a keyed source; empty selects the seeded generator
	LogLevel      string  // level of the logging
	MaxAttempts   int     // rejection trials per accepted sample
	MaxIterations int     // cap of the sample-size search
	Output        string  // path of the JSON report
	Samples       int     // sample size of a single estimate
	Seed          uint64  // seed of the pseudo-random source
	Sizes         []int   // sample sizes of a convergence curve
	Start         int     // initial sample size of a search
	Steps         int     // transitions of a Markov walk
	Target        float64 // target half-width of a search
}

// NewConfig creates and validates a configuration from the command line.
func NewConfig(ctx *cli.Context, mode ArgumentMode) (*Config, error) {
	cfg := createConfigFromFlags(ctx)
	if err := cfg.setArguments(ctx, mode); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// createConfigFromFlags returns Config instance with user specified values or the default ones
func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		AppName:       ctx.App.HelpName,
		Confidence:    getFlagValue(ctx, ConfidenceFlag).(float64),
		Growth:        getFlagValue(ctx, GrowthFlag).(float64),
		Key:           getFlagValue(ctx, KeyFlag).(string),
		LogLevel:      getFlagValue(ctx, logger.LogLevelFlag).(string),
		MaxAttempts:   getFlagValue(ctx, MaxAttemptsFlag).(int),
		MaxIterations: getFlagValue(ctx, MaxIterationsFlag).(int),
		Output:        getFlagValue(ctx, OutputFlag).(string),
		Samples:       getFlagValue(ctx, SamplesFlag).(int),
		Seed:          getFlagValue(ctx, SeedFlag).(uint64),
		Sizes:         getFlagValue(ctx, SizesFlag).([]int),
		Start:         getFlagValue(ctx, StartFlag).(int),
		Steps:         getFlagValue(ctx, StepsFlag).(int),
		Target:        getFlagValue(ctx, TargetFlag).(float64),
	}
	if ctx.Command != nil {
		cfg.CommandName = ctx.Command.Name
	}
	return cfg
}

// getFlagValue returns value specified by user if flag is present in cli context, otherwise return default flag value
func getFlagValue(ctx *cli.Context, flag interface{}) interface{} {
	var cmdFlags []cli.Flag
	if ctx.Command != nil {
		cmdFlags = ctx.Command.Flags
	}
	for _, cmdFlag := range cmdFlags {
		switch f := flag.(type) {
		case cli.IntFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Int(f.Name)
			}
		case cli.Uint64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Uint64(f.Name)
			}
		case cli.Float64Flag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Float64(f.Name)
			}
		case cli.StringFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.String(f.Name)
			}
		case cli.PathFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.Path(f.Name)
			}
		case cli.IntSliceFlag:
			if cmdFlag.Names()[0] == f.Name {
				return ctx.IntSlice(f.Name)
			}
		}
	}

	// If flag not found, return the default value of the flag
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value
	case cli.Uint64Flag:
		return f.Value
	case cli.Float64Flag:
		return f.Value
	case cli.StringFlag:
		return f.Value
	case cli.PathFlag:
		return f.Value
	case cli.IntSliceFlag:
		if f.Value == nil {
			return []int{}
		}
		return f.Value.Value()
	}
	return nil
}

// setArguments checks the positional arguments against the mode.
func (cfg *Config) setArguments(ctx *cli.Context, mode ArgumentMode) error {
	args := ctx.Args()
	switch mode {
	case NoArgs:
		if args.Len() != 0 {
			return errors.Wrapf(stochastic.ErrInvalidArgument, "command takes no arguments, got %d", args.Len())
		}
	case OneArg:
		if args.Len() != 1 {
			return errors.Wrapf(stochastic.ErrInvalidArgument, "command requires exactly one argument, got %d", args.Len())
		}
		cfg.Argument = args.First()
	default:
		return errors.Wrapf(stochastic.ErrInvalidArgument, "unknown argument mode %d", mode)
	}
	return nil
}

// validate rejects parameters no estimator can work with.
func (cfg *Config) validate() error {
	if cfg.Samples < 2 {
		return errors.Wrapf(stochastic.ErrInvalidSampleSize, "--%v must be at least 2 (%d)", SamplesFlag.Name, cfg.Samples)
	}
	if !(cfg.Confidence > 0 && cfg.Confidence < 1) {
		return errors.Wrapf(stochastic.ErrInvalidConfidence, "--%v must be in (0,1) (%v)", ConfidenceFlag.Name, cfg.Confidence)
	}
	if cfg.MaxAttempts < 1 {
		return errors.Wrapf(stochastic.ErrInvalidArgument, "--%v must be positive (%d)", MaxAttemptsFlag.Name, cfg.MaxAttempts)
	}
	if !(cfg.Target > 0) {
		return errors.Wrapf(stochastic.ErrInvalidArgument, "--%v must be positive (%v)", TargetFlag.Name, cfg.Target)
	}
	if cfg.MaxIterations < 1 {
		return errors.Wrapf(stochastic.ErrInvalidArgument, "--%v must be positive (%d)", MaxIterationsFlag.Name, cfg.MaxIterations)
	}
	if !(cfg.Growth > 1) {
		return errors.Wrapf(stochastic.ErrInvalidArgument, "--%v must be greater than one (%v)", GrowthFlag.Name, cfg.Growth)
	}
	if cfg.Start < 2 {
		return errors.Wrapf(stochastic.ErrInvalidSampleSize, "--%v must be at least 2 (%d)", StartFlag.Name, cfg.Start)
	}
	if cfg.Steps < 0 {
		return errors.Wrapf(stochastic.ErrInvalidSampleSize, "--%v must not be negative (%d)", StepsFlag.Name, cfg.Steps)
	}
	if cfg.Key != "" {
		if _, err := cfg.SourceKey(); err != nil {
			return err
		}
	}
	for _, n := range cfg.Sizes {
		if n < 2 {
			return errors.Wrapf(stochastic.ErrInvalidSampleSize, "--%v must only contain sizes of at least 2 (%d)", SizesFlag.Name, n)
		}
	}
	return nil
}

// SourceKey decodes the key of a keyed source.
func (cfg *Config) SourceKey() (*[32]byte, error) {
	raw, err := hex.DecodeString(cfg.Key)
	if err != nil {
		return nil, errors.Wrapf(stochastic.ErrInvalidArgument, "--%v is not hexadecimal: %v", KeyFlag.Name, err)
	}
	var key [32]byte
	if len(raw) != len(key) {
		return nil, errors.Wrapf(stochastic.ErrInvalidArgument, "--%v must have %d bytes, got %d", KeyFlag.Name, len(key), len(raw))
	}
	copy(key[:], raw)
	return &key, nil
}
