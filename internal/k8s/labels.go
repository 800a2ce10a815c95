package k8s

import "github.com/hupe1980/k8sdeployer/internal/version"

// Label keys stamped on generated objects.
const (
	LabelApp       = "app"
	LabelName      = "app.kubernetes.io/name"
	LabelInstance  = "app.kubernetes.io/instance"
	LabelPartOf    = "app.kubernetes.io/part-of"
	LabelManagedBy = "app.kubernetes.io/managed-by"
	LabelVersion   = "app.kubernetes.io/version"
)

// SelectorLabels are the labels a Service and Deployment selector match on.
func SelectorLabels(microservice, component string) map[string]string {
	return map[string]string{
		LabelApp: QualifiedName(microservice, component),
	}
}

// ComponentLabels are the selector labels plus the recommended
// app.kubernetes.io labels. image may be empty; when its tag is a semantic
// version it becomes the version label.
func ComponentLabels(microservice, component, image string) map[string]string {
	labels := SelectorLabels(microservice, component)
	labels[LabelName] = component
	labels[LabelInstance] = QualifiedName(microservice, component)
	labels[LabelPartOf] = microservice
	labels[LabelManagedBy] = version.Name

	if v, ok := ImageVersion(image); ok {
		labels[LabelVersion] = v
	}

	return labels
}
