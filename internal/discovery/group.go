package discovery

import "github.com/prometheus/common/model"

// Reserved label names attached to every emitted group.
const (
	EndpointURLLabel     model.LabelName = "__endpoint__url"
	EndpointNameLabel    model.LabelName = "__endpoint__name"
	EndpointGeohashLabel model.LabelName = "__endpoint__geohash"
	TagLabel             model.LabelName = "__target__tag"
)

// Group is one file_sd entry: a list of target addresses sharing a label set.
type Group struct {
	Targets []string       `json:"targets"`
	Labels  model.LabelSet `json:"labels"`
}
