package yamlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDocuments(t *testing.T) {
	tests := []struct {
		name string
		data string
		want int
	}{
		{"empty", "", 0},
		{"single doc", "apiVersion: v1\nkind: Service\n", 1},
		{"two docs", "apiVersion: v1\nkind: Service\n---\napiVersion: apps/v1\nkind: Deployment\n", 2},
		{"leading separator", "---\napiVersion: v1\nkind: Namespace\n", 1},
		{"trailing separator", "apiVersion: v1\nkind: Service\n---\n", 1},
		{"separator with trailing spaces", "apiVersion: v1\n---   \napiVersion: apps/v1\n", 2},
		{"empty doc between separators", "apiVersion: v1\n---\n\n---\napiVersion: apps/v1\n", 2},
		{"only separators", "---\n---\n---\n", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, SplitDocuments([]byte(tt.data)), tt.want)
		})
	}
}

func TestSplitDocuments_PreservesContent(t *testing.T) {
	docs := SplitDocuments([]byte("---\nkind: Namespace\n---\nkind: Secret\ndata:\n  DB_NAME: b3JkZXJzX2Ri\n"))
	require.Len(t, docs, 2)
	assert.Equal(t, "\nkind: Namespace\n", string(docs[0]))
	assert.Contains(t, string(docs[1]), "DB_NAME: b3JkZXJzX2Ri")
}
