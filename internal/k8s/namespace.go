package k8s

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/hupe1980/k8sdeployer/internal/output"
)

// Namespace is the isolation scope holding every object of a microservice.
// It has no owning component.
type Namespace struct {
	Base
}

// NewNamespace returns the Namespace resource for a microservice, named
// "namespace-{microservice}".
func NewNamespace(microservice string) *Namespace {
	return &Namespace{
		Base: NewBase("namespace-"+microservice, microservice, ""),
	}
}

func (n *Namespace) Kind() string { return KindNamespace }

// Object returns the typed core/v1 Namespace. Namespaces are cluster
// scoped, so only the name is rendered.
func (n *Namespace) Object() *corev1.Namespace {
	return &corev1.Namespace{
		TypeMeta:   typeMeta(namespaceGVK),
		ObjectMeta: metav1.ObjectMeta{Name: n.ObjectName()},
	}
}

func (n *Namespace) RenderManifest() ([]byte, error) {
	return output.SerializeObject(n.Object())
}
