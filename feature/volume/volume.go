package volume

import (
	"docker-up/core/mapper"
	"docker-up/core/resource"
)

// Descriptor is the volume resource kind. /volumes wraps its array in Volumes.
var Descriptor = resource.Descriptor{
	Name:      "volume",
	IDField:   "Name",
	ListField: "Volumes",
}

// Mapper converts stack volumes.
type Mapper struct{}

var fromConfig = mapper.PopulateFields(map[string]mapper.Field{
	"Name":       mapper.NamespacedName(),
	"Labels":     mapper.NamespacedLabels("labels"),
	"Driver":     mapper.Prop("driver"),
	"DriverOpts": mapper.StringMap("driver_opts"),
})

var fromInspect = mapper.PickFields(map[string]string{
	"Name":       "Name",
	"Labels":     "Labels",
	"Driver":     "Driver",
	"DriverOpts": "Options",
})

// FromConfig implements mapper.Mapper.
func (Mapper) FromConfig(d mapper.Declared) (resource.Document, error) {
	return fromConfig(d)
}

// FromInspect implements mapper.Mapper.
func (Mapper) FromInspect(state resource.Document) resource.Document {
	return fromInspect(state)
}
