// Package config holds the settings of the karon command line tool.
//
// Settings are read from a YAML file. Values missing from the file keep
// their defaults:
//
//	id_field: Sample Name
//	parent_field: Parent Sample Name
//	contact_field: Contact  # column set from "contact=file" inputs
//	header_row: 1           # row naming the columns
//	leading: [Sample Name, Parent Sample Name]
//	match:
//	  lower: true
//	  trim: true
//	keys: []            # fields to process; empty means all
//	reductions: [mean]  # mean, median, std
//	format: json        # json or yaml
//	store: karon.db
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/csm-adapt/karon/graph"
	"github.com/csm-adapt/karon/sample"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of a karon run.
type Config struct {
	IDField     string   `yaml:"id_field"`
	ParentField string   `yaml:"parent_field"`
	Contact     string   `yaml:"contact_field"`
	HeaderRow   int      `yaml:"header_row"`
	Leading     []string `yaml:"leading"`
	Match       Match    `yaml:"match"`
	Keys        []string `yaml:"keys"`
	Reductions  []string `yaml:"reductions"`
	Format      string   `yaml:"format"`
	Store       string   `yaml:"store"`
}

// Match configures how sample identifiers are compared.
type Match struct {
	Lower bool `yaml:"lower"`
	Trim  bool `yaml:"trim"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		IDField:     "Sample Name",
		ParentField: "Parent Sample Name",
		Contact:     "Contact",
		HeaderRow:   1,
		Leading:     []string{"Sample Name", "Parent Sample Name"},
		Match:       Match{Lower: true, Trim: true},
		Reductions:  []string{"mean"},
		Format:      "json",
		Store:       "karon.db",
	}
}

// Load reads the configuration file at path over the defaults. An empty path
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.IDField) == "" {
		errs = append(errs, errors.New("id_field must not be empty"))
	}
	if strings.TrimSpace(c.ParentField) == "" {
		errs = append(errs, errors.New("parent_field must not be empty"))
	}
	if c.IDField == c.ParentField {
		errs = append(errs, fmt.Errorf("id_field and parent_field are both %q", c.IDField))
	}
	if strings.TrimSpace(c.Contact) == "" {
		errs = append(errs, errors.New("contact_field must not be empty"))
	}
	if c.HeaderRow < 1 {
		errs = append(errs, fmt.Errorf("header_row must be at least 1, is %d", c.HeaderRow))
	}
	if _, err := c.Reducers(); err != nil {
		errs = append(errs, err)
	}
	if _, err := graph.ParseFormat(c.Format); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Comparator returns the identifier comparison configured by Match, or nil
// for plain equality.
func (c *Config) Comparator() func(a, b string) bool {
	var transforms []func(string) string
	if c.Match.Lower {
		transforms = append(transforms, sample.Lower)
	}
	if c.Match.Trim {
		transforms = append(transforms, sample.Trim)
	}
	if len(transforms) == 0 {
		return nil
	}
	return sample.StrCmp(transforms...)
}

// Reducers maps the configured reduction names to sample reductions.
func (c *Config) Reducers() ([]func(string) sample.Reduction, error) {
	var reducers []func(string) sample.Reduction
	for _, name := range c.Reductions {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "mean":
			reducers = append(reducers, sample.Mean)
		case "median":
			reducers = append(reducers, sample.Median)
		case "std":
			reducers = append(reducers, sample.Std)
		default:
			return nil, fmt.Errorf("unknown reduction %q", name)
		}
	}
	return reducers, nil
}

// DocumentFormat returns the configured graph document format.
func (c *Config) DocumentFormat() graph.Format {
	f, _ := graph.ParseFormat(c.Format)
	return f
}
