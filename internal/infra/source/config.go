package source

import (
	"fmt"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"
)

// FeedConfig defines one RSS/Atom feed source.
type FeedConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// APIConfig defines one JSON API source.
type APIConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// BoardConfig defines one DOM-scraped board source.
type BoardConfig struct {
	Name      string         `yaml:"name"`
	URL       string         `yaml:"url"`
	Selectors BoardSelectors `yaml:"selectors"`
}

// Config is the full source configuration loaded from sources.yaml.
// Presets name reusable site subsets that /search accepts via ?preset=.
type Config struct {
	Feeds   []FeedConfig        `yaml:"feeds"`
	APIs    []APIConfig         `yaml:"apis"`
	Boards  []BoardConfig       `yaml:"boards"`
	Presets map[string][]string `yaml:"presets"`
}

// LoadConfig reads and validates the source configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse sources config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sources config: %w", err)
	}
	return &cfg, nil
}

// Validate checks that every source has a unique name and a URL, boards have
// an item selector, and presets only reference known sources.
func (c *Config) Validate() error {
	if len(c.Feeds)+len(c.APIs)+len(c.Boards) == 0 {
		return fmt.Errorf("no sources configured")
	}

	names := make(map[string]bool)
	check := func(kind, name, url string) error {
		if name == "" {
			return fmt.Errorf("%s source with empty name", kind)
		}
		if url == "" {
			return fmt.Errorf("%s source %q has no url", kind, name)
		}
		if names[name] {
			return fmt.Errorf("duplicate source name %q", name)
		}
		names[name] = true
		return nil
	}

	for _, f := range c.Feeds {
		if err := check("feed", f.Name, f.URL); err != nil {
			return err
		}
	}
	for _, a := range c.APIs {
		if err := check("api", a.Name, a.URL); err != nil {
			return err
		}
	}
	for _, b := range c.Boards {
		if err := check("board", b.Name, b.URL); err != nil {
			return err
		}
		if b.Selectors.Item == "" || b.Selectors.Title == "" {
			return fmt.Errorf("board source %q needs item and title selectors", b.Name)
		}
	}

	for preset, sites := range c.Presets {
		if len(sites) == 0 {
			return fmt.Errorf("preset %q is empty", preset)
		}
		for _, site := range sites {
			if !names[site] {
				return fmt.Errorf("preset %q references unknown source %q", preset, site)
			}
		}
	}

	return nil
}

// Sites returns the names referenced by a preset, or nil if unknown.
func (c *Config) Sites(preset string) []string {
	if c.Presets == nil {
		return nil
	}
	return c.Presets[preset]
}

// BuildRegistry constructs the adapter registry in configuration order:
// feeds, then APIs, then boards. The feed HTTP client is shared; board
// adapters fetch through the per-call session instead.
func BuildRegistry(cfg *Config, feedClient *http.Client) *Registry {
	adapters := make([]Adapter, 0, len(cfg.Feeds)+len(cfg.APIs)+len(cfg.Boards))
	for _, f := range cfg.Feeds {
		adapters = append(adapters, NewFeedAdapter(f.Name, f.URL, feedClient))
	}
	for _, a := range cfg.APIs {
		adapters = append(adapters, NewAPIAdapter(a.Name, a.URL, feedClient))
	}
	for _, b := range cfg.Boards {
		adapters = append(adapters, NewBoardAdapter(b.Name, b.URL, b.Selectors))
	}
	return NewRegistry(adapters...)
}
