// Package config loads .doxy2js.yaml project settings
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v2"

	"doxy2js/pkg/assemble"
	"doxy2js/pkg/generator"
	"doxy2js/pkg/validate"
)

// DefaultFile is the configuration file looked up in the working directory
const DefaultFile = ".doxy2js.yaml"

// Config represents the structure of a .doxy2js.yaml configuration file
type Config struct {
	Module     string   `yaml:"module"`               // Module (namespace) to document
	InputDir   string   `yaml:"inputdir"`             // Directory of Doxygen XML files
	Custom     string   `yaml:"custom,omitempty"`     // Customization JSON
	Typemaps   string   `yaml:"typemaps,omitempty"`   // SWIG typemaps directory
	ImageDir   string   `yaml:"imagedir,omitempty"`   // Link prefix for images
	Strict     bool     `yaml:"strict,omitempty"`     // Leave out members of unknown type
	Formats    []string `yaml:"formats,omitempty"`    // Output formats
	OutDir     string   `yaml:"outdir,omitempty"`     // Root of the generated files
	EnumPrefix string   `yaml:"enumPrefix,omitempty"` // Regexp stripped from enum member names
	AllowTypes []string `yaml:"allowTypes,omitempty"` // Opaque types accepted as valid
}

// Default returns the settings used when no file or flag says otherwise
func Default() *Config {
	return &Config{
		InputDir:   "xml",
		ImageDir:   "images",
		Formats:    append([]string(nil), generator.Formats...),
		OutDir:     "jsdoc",
		AllowTypes: append([]string(nil), validate.DefaultAllowTypes...),
	}
}

// Load reads a configuration file over the defaults. A missing file yields the defaults
// when optional is true.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()

	content, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// EnumPrefixRegexp returns the compiled enum prefix, defaulting to ^<MODULE>_
func (c *Config) EnumPrefixRegexp() (*regexp.Regexp, error) {
	if c.EnumPrefix == "" {
		return regexp.Compile("^" + regexp.QuoteMeta(strings.ToUpper(c.Module)) + "_")
	}
	re, err := regexp.Compile(c.EnumPrefix)
	if err != nil {
		return nil, fmt.Errorf("invalid enumPrefix %q: %w", c.EnumPrefix, err)
	}
	return re, nil
}

// Validate reports the first setting that cannot work
func (c *Config) Validate() error {
	if c.Module == "" {
		return errors.New("no module given")
	}
	if c.InputDir == "" {
		return errors.New("no input directory given")
	}
	if len(c.Formats) == 0 {
		return errors.New("no output formats given")
	}
	for _, f := range c.Formats {
		if _, err := generator.New(f); err != nil {
			return err
		}
	}
	if _, err := c.EnumPrefixRegexp(); err != nil {
		return err
	}
	return nil
}

// AssembleOptions converts the settings into pipeline options
func (c *Config) AssembleOptions() (assemble.Options, error) {
	prefix, err := c.EnumPrefixRegexp()
	if err != nil {
		return assemble.Options{}, err
	}
	return assemble.Options{
		Module:     c.Module,
		InputDir:   c.InputDir,
		Custom:     c.Custom,
		Typemaps:   c.Typemaps,
		ImageDir:   c.ImageDir,
		Strict:     c.Strict,
		EnumPrefix: prefix,
		AllowTypes: c.AllowTypes,
	}, nil
}
