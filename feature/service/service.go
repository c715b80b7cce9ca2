package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"docker-up/core/mapper"
	"docker-up/core/resource"
	"docker-up/core/utils"
)

// Descriptor is the service resource kind.
var Descriptor = resource.Descriptor{
	Name:      "service",
	HasUpdate: true,
	IDField:   "ID",
}

// Mapper converts stack services.
type Mapper struct{}

var fromConfig = mapper.PopulateFields(map[string]mapper.Field{
	"Name":                               mapper.NamespacedName(),
	"Labels":                             mapper.NamespacedLabels("labels"),
	"TaskTemplate.ContainerSpec.Image":   mapper.Prop("image"),
	"TaskTemplate.ContainerSpec.Command": mapper.StringSlice("command"),
	"TaskTemplate.ContainerSpec.Args":    mapper.StringSlice("args"),
	"TaskTemplate.ContainerSpec.Env":     env,
	"TaskTemplate.Networks":              networks,
	"TaskTemplate.Placement.Constraints": mapper.StringSlice("constraints"),
	"Mode.Replicated.Replicas":           replicas,
	"EndpointSpec.Ports":                 ports,
})

var fromInspect = mapper.PickFields(map[string]string{
	"Name":                               "Spec.Name",
	"Labels":                             "Spec.Labels",
	"TaskTemplate.ContainerSpec.Image":   "Spec.TaskTemplate.ContainerSpec.Image",
	"TaskTemplate.ContainerSpec.Command": "Spec.TaskTemplate.ContainerSpec.Command",
	"TaskTemplate.ContainerSpec.Args":    "Spec.TaskTemplate.ContainerSpec.Args",
	"TaskTemplate.ContainerSpec.Env":     "Spec.TaskTemplate.ContainerSpec.Env",
	"TaskTemplate.Placement.Constraints": "Spec.TaskTemplate.Placement.Constraints",
	"Mode":                               "Spec.Mode",
	"EndpointSpec.Ports":                 "Spec.EndpointSpec.Ports",
})

// FromConfig implements mapper.Mapper.
func (Mapper) FromConfig(d mapper.Declared) (resource.Document, error) {
	if utils.ToString(d.Get("image")) == "" {
		return nil, fmt.Errorf("service %q: image is required", d.Name)
	}
	return fromConfig(d)
}

// FromInspect implements mapper.Mapper. The image digest pinned by the
// daemon is dropped so a tag compares equal to its resolved form.
func (Mapper) FromInspect(state resource.Document) resource.Document {
	picked := fromInspect(state)
	if image, ok := utils.Lookup(picked, "TaskTemplate.ContainerSpec.Image"); ok {
		utils.Set(picked, "TaskTemplate.ContainerSpec.Image", stripDigest(utils.ToString(image)))
	}
	return picked
}

// WriteOnlyFields implements mapper.WriteOnly. Inspect reports network
// targets as ids, not the names sent on create.
func (Mapper) WriteOnlyFields() []string {
	return []string{"TaskTemplate.Networks"}
}

func stripDigest(image string) string {
	if i := strings.Index(image, "@sha256:"); i >= 0 {
		return image[:i]
	}
	return image
}

// env accepts a list of KEY=VALUE strings or a mapping.
func env(d mapper.Declared) (any, error) {
	raw := d.Get("env")
	if raw == nil {
		return nil, nil
	}
	if m := utils.ToMap(raw); m != nil {
		out := make([]string, 0, len(m))
		for k, v := range m {
			out = append(out, k+"="+utils.ToString(v))
		}
		sort.Strings(out)
		return out, nil
	}
	return utils.ToStringSlice(raw), nil
}

func networks(d mapper.Declared) (any, error) {
	names := utils.ToStringSlice(d.Get("networks"))
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]any, 0, len(names))
	for _, name := range names {
		out = append(out, map[string]any{"Target": mapper.Name(d.Namespace, name)})
	}
	return out, nil
}

func replicas(d mapper.Declared) (any, error) {
	raw := d.Get("replicas")
	if raw == nil {
		return uint64(1), nil
	}
	n := utils.ToInt(raw)
	if n < 0 || (n == 0 && utils.ToString(raw) != "0") {
		return nil, fmt.Errorf("invalid replicas: %v", raw)
	}
	return uint64(n), nil
}

// ports accepts "published:target[/protocol]" strings or mappings with
// published, target and protocol keys.
func ports(d mapper.Declared) (any, error) {
	raw, ok := d.Get("ports").([]any)
	if !ok {
		if d.Get("ports") != nil {
			return nil, fmt.Errorf("ports must be a list, given: %T", d.Get("ports"))
		}
		return nil, nil
	}

	out := make([]any, 0, len(raw))
	for _, item := range raw {
		port, err := parsePort(item)
		if err != nil {
			return nil, err
		}
		out = append(out, port)
	}
	return out, nil
}

func parsePort(item any) (map[string]any, error) {
	var published, target, protocol string
	if m := utils.ToMap(item); m != nil {
		published = utils.ToString(m["published"])
		target = utils.ToString(m["target"])
		protocol = utils.ToString(m["protocol"])
	} else {
		spec := utils.ToString(item)
		spec, protocol, _ = strings.Cut(spec, "/")
		var found bool
		published, target, found = strings.Cut(spec, ":")
		if !found {
			published, target = "", published
		}
	}
	if protocol == "" {
		protocol = "tcp"
	}

	targetPort, err := strconv.ParseUint(target, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid target port %q: %w", target, err)
	}
	port := map[string]any{
		"Protocol":    protocol,
		"TargetPort":  targetPort,
		"PublishMode": "ingress",
	}
	if published != "" {
		publishedPort, err := strconv.ParseUint(published, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid published port %q: %w", published, err)
		}
		port["PublishedPort"] = publishedPort
	}
	return port, nil
}
