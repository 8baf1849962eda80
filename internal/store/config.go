package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DragosCt10/trading-tracker/internal/match"
)

type Config struct {
	Import struct {
		SampleCap      int     `yaml:"sample_cap"`
		MinConfidence  float64 `yaml:"min_confidence"`
		MinHeaderScore float64 `yaml:"min_header_score"`
		HintBonus      float64 `yaml:"hint_bonus"`
		CombinedMin    float64 `yaml:"combined_min"`
		MarketMinLen   int     `yaml:"market_min_len"`
		MarketMaxLen   int     `yaml:"market_max_len"`
		MaxCandidates  int     `yaml:"max_candidates"`
		KeepUnmapped   bool    `yaml:"keep_unmapped"`
		// ExtraSymbols extends the known-instruments set with the
		// user's watchlist; ExtraSynonyms extends a field's header
		// synonyms, keyed by canonical field.
		ExtraSymbols  []string            `yaml:"extra_symbols"`
		ExtraSynonyms map[string][]string `yaml:"extra_synonyms"`
	} `yaml:"import"`
	Log struct {
		Level    string `yaml:"level"`
		Format   string `yaml:"format"`
		Detailed bool   `yaml:"detailed"`
		Tracing  bool   `yaml:"tracing"`
	} `yaml:"log"`
}

func Default() *Config {
	var c Config
	o := match.DefaultOptions()
	c.Import.SampleCap = o.SampleCap
	c.Import.MinConfidence = o.MinConfidence
	c.Import.MinHeaderScore = o.MinHeaderScore
	c.Import.HintBonus = o.HintBonus
	c.Import.CombinedMin = o.CombinedMin
	c.Import.MarketMinLen = o.MarketMinLen
	c.Import.MarketMaxLen = o.MarketMaxLen
	c.Import.MaxCandidates = o.MaxCandidates
	c.Log.Level = "INFO"
	c.Log.Format = "json"
	c.Log.Tracing = true
	return &c
}

func (c *Config) Validate() error {
	if c.Import.SampleCap <= 0 {
		return fmt.Errorf("import.sample_cap must be positive, got %d", c.Import.SampleCap)
	}
	if c.Import.MinConfidence <= 0 || c.Import.MinConfidence > 1 {
		return fmt.Errorf("import.min_confidence must be in (0,1], got %.2f", c.Import.MinConfidence)
	}
	if c.Import.MinHeaderScore <= 0 || c.Import.MinHeaderScore > 1 {
		return fmt.Errorf("import.min_header_score must be in (0,1], got %.2f", c.Import.MinHeaderScore)
	}
	if c.Import.CombinedMin <= 0 || c.Import.CombinedMin > 1 {
		return fmt.Errorf("import.combined_min must be in (0,1], got %.2f", c.Import.CombinedMin)
	}
	if c.Import.MarketMinLen > c.Import.MarketMaxLen {
		return fmt.Errorf("import.market_min_len %d exceeds market_max_len %d",
			c.Import.MarketMinLen, c.Import.MarketMaxLen)
	}
	if c.Log.Format != "json" && c.Log.Format != "text" {
		return fmt.Errorf("log.format must be 'json' or 'text', got '%s'", c.Log.Format)
	}
	return nil
}

// LoadConfig reads a yaml config, filling unset values with defaults.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	if c.Import.SampleCap == 0 {
		c.Import.SampleCap = match.DefaultOptions().SampleCap
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// MatchOptions bridges the config into the matcher's tuning knobs.
func (c *Config) MatchOptions() match.Options {
	return match.Options{
		MinConfidence:  c.Import.MinConfidence,
		MinHeaderScore: c.Import.MinHeaderScore,
		HintBonus:      c.Import.HintBonus,
		SampleCap:      c.Import.SampleCap,
		CombinedMin:    c.Import.CombinedMin,
		MarketMinLen:   c.Import.MarketMinLen,
		MarketMaxLen:   c.Import.MarketMaxLen,
		MaxCandidates:  c.Import.MaxCandidates,
		ExtraSymbols:   c.Import.ExtraSymbols,
		ExtraSynonyms:  c.Import.ExtraSynonyms,
	}
}
