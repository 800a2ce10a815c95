// Package k8s models the Kubernetes objects generated for a microservice.
//
// Each kind (Deployment, Service, Namespace, Secret, ConfigMap) embeds [Base]
// and renders itself from the typed k8s.io/api structs. Base alone cannot
// be rendered; its RenderManifest reports [ErrNotImplemented].
package k8s

import (
	"errors"
	"fmt"
	"maps"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// ErrNotImplemented is returned when a resource without a concrete kind is
// asked to render itself.
var ErrNotImplemented = errors.New("render not implemented")

// Metadata keys set by the deployer when linking resources.
const (
	MetaNamespace = "namespace"
	MetaName      = "name"
)

// Resource is a generated Kubernetes object.
type Resource interface {
	// Name is the logical resource name, unique within one generation run.
	Name() string

	// Kind is the Kubernetes kind, empty for Base.
	Kind() string

	// Microservice is the owning microservice.
	Microservice() string

	// Component is the owning component; empty for the Namespace.
	Component() string

	// Metadata returns a copy of the linked metadata.
	Metadata() map[string]string

	// SetMetadata stores a metadata value such as MetaNamespace.
	SetMetadata(key, value string)

	// RenderManifest returns the canonical YAML document for the object.
	RenderManifest() ([]byte, error)
}

var _ Resource = (*Base)(nil)

// Base holds the state shared by every kind.
type Base struct {
	name         string
	microservice string
	component    string
	metadata     map[string]string
}

// NewBase returns a Base for the given logical name and owner.
func NewBase(name, microservice, component string) Base {
	return Base{
		name:         name,
		microservice: microservice,
		component:    component,
		metadata:     make(map[string]string),
	}
}

func (b *Base) Name() string         { return b.name }
func (b *Base) Kind() string         { return "" }
func (b *Base) Microservice() string { return b.microservice }
func (b *Base) Component() string    { return b.component }

func (b *Base) Metadata() map[string]string {
	return maps.Clone(b.metadata)
}

func (b *Base) SetMetadata(key, value string) {
	if b.metadata == nil {
		b.metadata = make(map[string]string)
	}

	b.metadata[key] = value
}

// RenderManifest always fails: only concrete kinds know their manifest.
func (b *Base) RenderManifest() ([]byte, error) {
	return nil, fmt.Errorf("%w for resource %q", ErrNotImplemented, b.name)
}

// ObjectName is metadata.name as rendered: the linked name, or the logical
// name before linking.
func (b *Base) ObjectName() string {
	if n := b.metadata[MetaName]; n != "" {
		return n
	}

	return b.name
}

// objectMeta builds the rendered metadata for a namespaced object.
func (b *Base) objectMeta(labels map[string]string) metav1.ObjectMeta {
	return metav1.ObjectMeta{
		Name:      b.ObjectName(),
		Namespace: b.metadata[MetaNamespace],
		Labels:    labels,
	}
}

// QualifiedName joins a microservice and component the way object names are
// formed: "orders" + "api" → "orders-api".
func QualifiedName(microservice, component string) string {
	return microservice + "-" + component
}

// ResourceName is the logical name of a component resource:
// "orders", "api", "deployment" → "orders-api-deployment".
func ResourceName(microservice, component, suffix string) string {
	return QualifiedName(microservice, component) + "-" + suffix
}
