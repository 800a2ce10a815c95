package k8s

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentLabels(t *testing.T) {
	labels := ComponentLabels("orders", "api", "orders:1.2.0")

	assert.Equal(t, map[string]string{
		LabelApp:       "orders-api",
		LabelName:      "api",
		LabelInstance:  "orders-api",
		LabelPartOf:    "orders",
		LabelManagedBy: "k8sdeployer",
		LabelVersion:   "1.2.0",
	}, labels)
}

func TestComponentLabels_NoVersionForNonSemverTag(t *testing.T) {
	labels := ComponentLabels("orders", "api", "orders:main")
	assert.NotContains(t, labels, LabelVersion)
}

func TestSelectorLabels(t *testing.T) {
	assert.Equal(t, map[string]string{"app": "orders-api"}, SelectorLabels("orders", "api"))
}
