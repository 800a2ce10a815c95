// Package parser reads multi-document YAML streams of Kubernetes objects,
// such as the output of "generate --stdout".
package parser

import (
	"errors"
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime/schema"
	sigsyaml "sigs.k8s.io/yaml"

	"github.com/hupe1980/k8sdeployer/internal/yamlutil"
)

// ErrDuplicateObject is returned when a stream holds the same object twice.
var ErrDuplicateObject = errors.New("duplicate object")

// Document is one Kubernetes object read from a stream.
type Document struct {
	GVK       schema.GroupVersionKind
	Name      string
	Namespace string
	Object    *unstructured.Unstructured
}

// Key identifies the object within a stream: "Kind/namespace/name", or
// "Kind/name" for cluster-scoped objects.
func (d *Document) Key() string {
	if d.Namespace == "" {
		return d.GVK.Kind + "/" + d.Name
	}

	return d.GVK.Kind + "/" + d.Namespace + "/" + d.Name
}

// Parse splits data into documents and parses each one. Documents without
// apiVersion or kind are skipped; an object appearing twice is an error.
func Parse(data []byte) ([]*Document, error) {
	var docs []*Document

	seen := map[string]bool{}

	for i, raw := range yamlutil.SplitDocuments(data) {
		doc, err := ParseDocument(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing document %d: %w", i+1, err)
		}

		if doc == nil {
			continue
		}

		if seen[doc.Key()] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateObject, doc.Key())
		}

		seen[doc.Key()] = true
		docs = append(docs, doc)
	}

	return docs, nil
}

// ParseDocument parses a single YAML document. It returns nil without an
// error when the document lacks apiVersion or kind.
func ParseDocument(raw []byte) (*Document, error) {
	var obj map[string]interface{}
	if err := sigsyaml.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("unmarshaling YAML: %w", err)
	}

	if obj == nil {
		return nil, nil
	}

	apiVersion, _ := obj["apiVersion"].(string)
	kind, _ := obj["kind"].(string)

	if apiVersion == "" || kind == "" {
		return nil, nil
	}

	u := &unstructured.Unstructured{Object: obj}

	return &Document{
		GVK:       schema.FromAPIVersionAndKind(apiVersion, kind),
		Name:      u.GetName(),
		Namespace: u.GetNamespace(),
		Object:    u,
	}, nil
}
