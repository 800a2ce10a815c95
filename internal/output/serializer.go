package output

import (
	"bytes"
	"fmt"

	"k8s.io/apimachinery/pkg/runtime"
	sigsyaml "sigs.k8s.io/yaml"
)

// Serialize converts an object map to canonical YAML bytes: keys sorted,
// nil values and empty maps removed, trailing newline ensured.
func Serialize(obj map[string]interface{}) ([]byte, error) {
	yamlBytes, err := sigsyaml.Marshal(deepCleanMap(obj))
	if err != nil {
		return nil, fmt.Errorf("serializing YAML: %w", err)
	}

	if len(yamlBytes) > 0 && yamlBytes[len(yamlBytes)-1] != '\n' {
		yamlBytes = append(yamlBytes, '\n')
	}

	return yamlBytes, nil
}

// SerializeObject converts a typed Kubernetes object to canonical YAML.
// Zero-valued fields such as creationTimestamp and status are dropped.
func SerializeObject(obj runtime.Object) ([]byte, error) {
	u, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, fmt.Errorf("converting %T to unstructured: %w", obj, err)
	}

	return Serialize(u)
}

// JoinDocuments concatenates YAML documents into one multi-document stream.
func JoinDocuments(docs [][]byte) []byte {
	var buf bytes.Buffer

	for _, doc := range docs {
		buf.WriteString("---\n")
		buf.Write(doc)

		if len(doc) > 0 && doc[len(doc)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}

	return buf.Bytes()
}

func deepCleanMap(m map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(m))

	for k, v := range m {
		if cleaned := deepCleanValue(v); cleaned != nil {
			result[k] = cleaned
		}
	}

	return result
}

func deepCleanValue(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case map[string]interface{}:
		cleaned := deepCleanMap(val)
		if len(cleaned) == 0 {
			return nil
		}

		return cleaned
	case []interface{}:
		result := make([]interface{}, 0, len(val))

		for _, item := range val {
			if cleaned := deepCleanValue(item); cleaned != nil {
				result = append(result, cleaned)
			}
		}

		return result
	default:
		return v
	}
}
