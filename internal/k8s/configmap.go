package k8s

import (
	"maps"

	corev1 "k8s.io/api/core/v1"

	"github.com/hupe1980/k8sdeployer/internal/output"
)

// ConfigMap holds plaintext configuration rendered verbatim.
type ConfigMap struct {
	Base

	Data map[string]string
}

// NewConfigMap returns the ConfigMap for a component.
func NewConfigMap(microservice, component string, data map[string]string) *ConfigMap {
	return &ConfigMap{
		Base: NewBase(ResourceName(microservice, component, SuffixConfigMap), microservice, component),
		Data: data,
	}
}

func (c *ConfigMap) Kind() string { return KindConfigMap }

// Object returns the typed core/v1 ConfigMap.
func (c *ConfigMap) Object() *corev1.ConfigMap {
	return &corev1.ConfigMap{
		TypeMeta:   typeMeta(configMapGVK),
		ObjectMeta: c.objectMeta(ComponentLabels(c.microservice, c.component, "")),
		Data:       maps.Clone(c.Data),
	}
}

func (c *ConfigMap) RenderManifest() ([]byte, error) {
	return output.SerializeObject(c.Object())
}
