package network

import (
	"docker-up/core/mapper"
	"docker-up/core/resource"
)

// Descriptor is the network resource kind. /networks returns a bare array.
var Descriptor = resource.Descriptor{
	Name:    "network",
	IDField: "Id",
}

// Mapper converts stack networks.
type Mapper struct{}

var fromConfig = mapper.PopulateFields(map[string]mapper.Field{
	"Name":       mapper.NamespacedName(),
	"Labels":     mapper.NamespacedLabels("labels"),
	"Driver":     mapper.Prop("driver"),
	"Attachable": mapper.Prop("attachable"),
	"Internal":   mapper.Prop("internal"),
	"Options":    mapper.StringMap("driver_opts"),
})

var fromInspect = mapper.PickFields(mapper.Same("Name", "Labels", "Driver", "Attachable", "Internal", "Options"))

// FromConfig implements mapper.Mapper.
func (Mapper) FromConfig(d mapper.Declared) (resource.Document, error) {
	return fromConfig(d)
}

// FromInspect implements mapper.Mapper.
func (Mapper) FromInspect(state resource.Document) resource.Document {
	return fromInspect(state)
}
