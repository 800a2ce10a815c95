package deployer

import "github.com/hupe1980/k8sdeployer/internal/k8s"

type indexKey struct {
	kind      string
	component string
}

// index looks up generated resources by kind and owning component.
type index struct {
	byKey map[indexKey]k8s.Resource
}

func newIndex() *index {
	return &index{byKey: make(map[indexKey]k8s.Resource)}
}

func (i *index) add(r k8s.Resource) {
	i.byKey[indexKey{kind: r.Kind(), component: r.Component()}] = r
}

func (i *index) get(kind, component string) (k8s.Resource, bool) {
	r, ok := i.byKey[indexKey{kind: kind, component: component}]
	return r, ok
}
