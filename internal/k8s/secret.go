package k8s

import (
	corev1 "k8s.io/api/core/v1"

	"github.com/hupe1980/k8sdeployer/internal/output"
)

// Secret holds plaintext key/value pairs. Values are base64 encoded when
// rendered; keys are kept as-is.
type Secret struct {
	Base

	Data map[string]string
}

// NewSecret returns the Secret for a component.
func NewSecret(microservice, component string, data map[string]string) *Secret {
	return &Secret{
		Base: NewBase(ResourceName(microservice, component, SuffixSecret), microservice, component),
		Data: data,
	}
}

func (s *Secret) Kind() string { return KindSecret }

// Object returns the typed core/v1 Secret. The byte values are encoded to
// base64 on serialization.
func (s *Secret) Object() *corev1.Secret {
	data := make(map[string][]byte, len(s.Data))
	for k, v := range s.Data {
		data[k] = []byte(v)
	}

	return &corev1.Secret{
		TypeMeta:   typeMeta(secretGVK),
		ObjectMeta: s.objectMeta(ComponentLabels(s.microservice, s.component, "")),
		Type:       corev1.SecretTypeOpaque,
		Data:       data,
	}
}

func (s *Secret) RenderManifest() ([]byte, error) {
	return output.SerializeObject(s.Object())
}
