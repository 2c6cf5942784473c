// Package config loads the harness configuration: where the simulation
// program and record corpora live, and which parameter domains to sweep.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/roach88/percregress/internal/params"
)

// DefaultFile is read when no config path is given and it exists.
const DefaultFile = "percregress.yaml"

// Config is the harness configuration. Paths are used as given, relative to
// the working directory.
type Config struct {
	// Program is the simulation executable.
	Program string `yaml:"program"`

	// BuildDir is passed to make -C before a verify run.
	BuildDir string `yaml:"build_dir"`

	// Make is the make executable; empty disables the build step.
	Make string `yaml:"make"`

	ScratchDir   string `yaml:"scratch_dir"`
	AutomatedDir string `yaml:"automated_dir"`
	ExpectedDir  string `yaml:"expected_dir"`

	// Timeout bounds a single simulation run. Zero means no limit.
	Timeout time.Duration `yaml:"timeout"`

	// Domains overrides the parameter sweep. Axes left out keep their
	// default values.
	Domains *Domains `yaml:"domains,omitempty"`
}

// Domains lists explicit values per axis. The unset sentinel is always
// added in front.
type Domains struct {
	Grid        []int     `yaml:"grid,omitempty"`
	Seed        []float64 `yaml:"seed,omitempty"`
	Rho         []float64 `yaml:"rho,omitempty"`
	MaxClusters []int     `yaml:"max_clusters,omitempty"`
}

// Default returns the layout the harness historically ran in: invoked from
// the tests directory, next to ../code.
func Default() *Config {
	return &Config{
		Program:      "../code/main.out",
		BuildDir:     "../code/",
		Make:         "make",
		ScratchDir:   "tmp_output",
		AutomatedDir: "automated",
		ExpectedDir:  "expected",
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Resolve loads path, or DefaultFile when path is empty and the file
// exists, or falls back to Default.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		return Load(DefaultFile)
	}
	return Default(), nil
}

// Validate checks the values a run cannot start without.
func (c *Config) Validate() error {
	if c.Program == "" {
		return fmt.Errorf("program is required")
	}
	switch filepath.Clean(c.ScratchDir) {
	case "", ".", "..", string(filepath.Separator):
		return fmt.Errorf("scratch_dir %q is not a usable scratch directory", c.ScratchDir)
	}
	if c.AutomatedDir == "" {
		return fmt.Errorf("automated_dir is required")
	}
	if c.ExpectedDir == "" {
		return fmt.Errorf("expected_dir is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must be non-negative, got %s", c.Timeout)
	}
	if c.Domains != nil {
		return c.Domains.validate()
	}
	return nil
}

// Records store grid and rho under a schema, so values it would reject are
// refused here rather than producing unreadable records.
func (d *Domains) validate() error {
	for i, g := range d.Grid {
		if g < 0 {
			return fmt.Errorf("domains.grid[%d]: must be non-negative, got %d", i, g)
		}
	}
	for i, r := range d.Rho {
		if r < 0 || r > 1 {
			return fmt.Errorf("domains.rho[%d]: must be within [0, 1], got %s", i, params.FormatNumber(r))
		}
	}
	return nil
}

// ParamDomains returns the sweep domains, substituting the default axis for
// any axis the config leaves out.
func (c *Config) ParamDomains() params.Domains {
	def := params.DefaultDomains()
	if c.Domains == nil {
		return def
	}
	d := params.NewDomains(c.Domains.Grid, c.Domains.Seed, c.Domains.Rho, c.Domains.MaxClusters)
	if len(c.Domains.Grid) == 0 {
		d.Grid = def.Grid
	}
	if len(c.Domains.Seed) == 0 {
		d.Seed = def.Seed
	}
	if len(c.Domains.Rho) == 0 {
		d.Rho = def.Rho
	}
	if len(c.Domains.MaxClusters) == 0 {
		d.MaxClusters = def.MaxClusters
	}
	return d
}
