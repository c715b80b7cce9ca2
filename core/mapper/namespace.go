package mapper

import "docker-up/core/utils"

// NamespaceLabel marks every resource owned by a stack.
const NamespaceLabel = "com.docker.stack.namespace"

// Name returns the namespaced name of a stack entry.
func Name(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "_" + name
}

// Labels returns a copy of labels with the namespace label set.
// Values are stringified since the Engine only accepts string labels.
func Labels(namespace string, labels map[string]any) map[string]any {
	out := make(map[string]any, len(labels)+1)
	for k, v := range labels {
		out[k] = utils.ToString(v)
	}
	if namespace != "" {
		out[NamespaceLabel] = namespace
	}
	return out
}

// InNamespace reports whether a remote state carries the namespace label.
func InNamespace(state map[string]any, namespace string) bool {
	labels := utils.ToMap(state["Labels"])
	if labels == nil {
		spec := utils.ToMap(state["Spec"])
		labels = utils.ToMap(spec["Labels"])
	}
	return utils.ToString(labels[NamespaceLabel]) == namespace
}
