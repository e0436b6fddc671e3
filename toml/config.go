// Package toml loads build configuration from TOML files.
package toml

import (
	"errors"
	"os"

	"github.com/fwojciec/wcdoc"
	"github.com/pelletier/go-toml/v2"
)

// DefaultConcurrency is the number of documents written in parallel.
const DefaultConcurrency = 4

// Config is the contents of a wcdoc.toml file.
//
//	records = "build/wcdoc.json"
//	out = "docs/api"
//	concurrency = 8
//
//	[[extension]]
//	family = "vue"
//	pattern = '^\.\./vue-onsenui/'
type Config struct {
	Records     string      `toml:"records"`
	Out         string      `toml:"out"`
	Concurrency int         `toml:"concurrency"`
	Extensions  []Extension `toml:"extension"`
}

// Extension is one classification rule. Rules are evaluated in file order.
type Extension struct {
	Family  string `toml:"family"`
	Pattern string `toml:"pattern"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{Concurrency: DefaultConcurrency}
}

// LoadConfig reads path. An empty path or a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, wcdoc.Errorf(wcdoc.EINVALID, "parse %s: %s", path, err)
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	return cfg, nil
}

// Classifier compiles the configured extension rules. Without any rules
// the default binding layers are used.
func (c *Config) Classifier() (*wcdoc.Classifier, error) {
	if len(c.Extensions) == 0 {
		return wcdoc.NewClassifier(wcdoc.DefaultExtensionRules()...), nil
	}

	rules := make([]wcdoc.ExtensionRule, 0, len(c.Extensions))
	for _, ext := range c.Extensions {
		rule, err := wcdoc.ParseExtensionRule(ext.Family, ext.Pattern)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return wcdoc.NewClassifier(rules...), nil
}
