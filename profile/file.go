package profile

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/strata/types"
)

type fileConfig struct {
	Profiles map[string]profileConfig `yaml:"profiles"`
}

type profileConfig struct {
	Consistency       string `yaml:"consistency"`
	SerialConsistency string `yaml:"serial_consistency"`
	PageSize          *int   `yaml:"page_size"`
	Trace             *bool  `yaml:"trace"`
	Timeout           string `yaml:"timeout"`
	Idempotent        *bool  `yaml:"idempotent"`
}

// Load parses execution profiles from YAML.
//
// Consistency levels use the textual names accepted by
// types.ParseConsistency; timeouts use Go duration syntax such as "12s".
//
// Parameters:
//   - r: YAML document with a top-level profiles mapping
//
// Returns:
//   - map[string]*types.Profile: Parsed profiles keyed by name
//   - error: Parse or validation failure
func Load(r io.Reader) (map[string]*types.Profile, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}

	profiles := make(map[string]*types.Profile, len(cfg.Profiles))
	for name, pc := range cfg.Profiles {
		p, err := pc.build()
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		profiles[name] = p
	}

	return profiles, nil
}

// LoadFile parses execution profiles from a YAML file.
//
// Parameters:
//   - path: Path to the YAML file
//
// Returns:
//   - map[string]*types.Profile: Parsed profiles keyed by name
//   - error: Read, parse, or validation failure
func LoadFile(path string) (map[string]*types.Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open profiles file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

func (pc profileConfig) build() (*types.Profile, error) {
	var opts []types.ProfileOption

	if pc.Consistency != "" {
		c, err := types.ParseConsistency(pc.Consistency)
		if err != nil {
			return nil, fmt.Errorf("invalid consistency: %w", err)
		}
		opts = append(opts, types.WithConsistency(c))
	}
	if pc.SerialConsistency != "" {
		c, err := types.ParseConsistency(pc.SerialConsistency)
		if err != nil {
			return nil, fmt.Errorf("invalid serial_consistency: %w", err)
		}
		opts = append(opts, types.WithSerialConsistency(c))
	}
	if pc.PageSize != nil {
		if *pc.PageSize <= 0 {
			return nil, &types.InvalidArgumentError{Detail: "page_size must be positive"}
		}
		opts = append(opts, types.WithPageSize(*pc.PageSize))
	}
	if pc.Trace != nil {
		opts = append(opts, types.WithTrace(*pc.Trace))
	}
	if pc.Timeout != "" {
		d, err := time.ParseDuration(pc.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout: %w", err)
		}
		if d <= 0 {
			return nil, &types.InvalidArgumentError{Detail: "timeout must be positive"}
		}
		opts = append(opts, types.WithRequestTimeout(d))
	}
	if pc.Idempotent != nil {
		opts = append(opts, types.WithIdempotent(*pc.Idempotent))
	}

	return types.NewProfile(opts...), nil
}
