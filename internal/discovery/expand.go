package discovery

import (
	"github.com/prometheus/common/model"

	"github.com/eugenenazirov/blackbox-sd/internal/config"
)

// tagIndex buckets target URLs by tag and remembers first-seen tag order.
type tagIndex struct {
	order   []string
	buckets map[string][]string
}

func newTagIndex(targets []config.Target) *tagIndex {
	idx := &tagIndex{buckets: make(map[string][]string)}
	for _, t := range targets {
		for _, tag := range t.Tags {
			if _, ok := idx.buckets[tag]; !ok {
				idx.order = append(idx.order, tag)
			}
			// Duplicate tags on one target append the URL again.
			idx.buckets[tag] = append(idx.buckets[tag], t.URL)
		}
	}
	return idx
}

// Expand builds the discovery groups for cfg. It never fails and returns an
// empty, non-nil slice when there are no targets or no endpoints.
func Expand(cfg config.Config) []Group {
	if len(cfg.Endpoints) == 0 || len(cfg.Targets) == 0 {
		return []Group{}
	}

	idx := newTagIndex(cfg.Targets)
	groups := make([]Group, 0, len(cfg.Endpoints)*len(idx.order))
	for _, ep := range cfg.Endpoints {
		for _, tag := range idx.order {
			urls := idx.buckets[tag]
			groups = append(groups, Group{
				Targets: append(make([]string, 0, len(urls)), urls...),
				Labels: model.LabelSet{
					EndpointURLLabel:     model.LabelValue(ep.Address),
					EndpointNameLabel:    model.LabelValue(ep.Name),
					EndpointGeohashLabel: model.LabelValue(ep.Geohash),
					TagLabel:             model.LabelValue(tag),
				},
			})
		}
	}
	return groups
}

// Tags returns the distinct tags of cfg in first-seen order.
func Tags(cfg config.Config) []string {
	return append([]string{}, newTagIndex(cfg.Targets).order...)
}
