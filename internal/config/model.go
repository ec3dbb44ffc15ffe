package config

import "fmt"

// DefaultTag is assigned to targets whose tags field is absent.
const DefaultTag = "default"

// Target is one probe unit. Module and URL are opaque to the service.
type Target struct {
	Module string   `yaml:"module"`
	URL    string   `yaml:"url"`
	Tags   []string `yaml:"tags"`
}

// Endpoint is a probing location.
type Endpoint struct {
	Address string `yaml:"address"`
	Geohash string `yaml:"geohash"`
	Name    string `yaml:"name"`
}

// Config is the loaded discovery document. It is never mutated after Load.
type Config struct {
	Targets   []Target   `yaml:"target"`
	Endpoints []Endpoint `yaml:"endpoint"`
}

// Summary describes the document size for startup logging.
func (c Config) Summary() string {
	seen := make(map[string]struct{})
	for _, t := range c.Targets {
		for _, tag := range t.Tags {
			seen[tag] = struct{}{}
		}
	}
	return fmt.Sprintf("%d targets, %d endpoints, %d tags", len(c.Targets), len(c.Endpoints), len(seen))
}
