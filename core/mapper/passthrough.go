package mapper

import (
	"docker-up/core/resource"
	"docker-up/core/utils"
)

// Passthrough maps kinds that have no dedicated mapper. The declared fields
// are the payload; Name and Labels are namespaced when present or omitted.
type Passthrough struct{}

// FromConfig implements Mapper.
func (Passthrough) FromConfig(d Declared) (resource.Document, error) {
	doc := make(resource.Document, len(d.Spec)+2)
	for k, v := range d.Spec {
		doc[k] = v
	}
	if utils.ToString(doc["Name"]) == "" {
		doc["Name"] = Name(d.Namespace, d.Name)
	}
	labels, err := NamespacedLabels("Labels")(d)
	if err != nil {
		return nil, err
	}
	doc["Labels"] = labels
	return doc, nil
}

// FromInspect returns the Spec of swarm objects and the state itself otherwise.
func (Passthrough) FromInspect(state resource.Document) resource.Document {
	if spec := utils.ToMap(state["Spec"]); spec != nil {
		return spec
	}
	return state
}
