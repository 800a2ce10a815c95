package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, input string) *Configuration {
	t.Helper()

	cfg, err := Parse([]byte(input), FormatJSON)
	require.NoError(t, err)

	return cfg
}

func fields(findings []Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Field)
	}

	return out
}

func TestValidate_Valid(t *testing.T) {
	result := Validate(parse(t, ordersJSON))

	assert.False(t, result.HasErrors())
	assert.False(t, result.HasWarnings())
	assert.NoError(t, result.Err())
	assert.Equal(t, "Validation passed: no issues found.\n", result.Format())
}

func TestValidate_MissingRequired(t *testing.T) {
	result := Validate(&Configuration{Resources: []ComponentConfig{{ComponentName: "api"}}})

	require.True(t, result.HasErrors())
	assert.ElementsMatch(t, []string{
		"MICROSERVICE_NAME",
		"resources[0].docker_image",
		"resources[0].replicas",
	}, fields(result.Errors()))
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{
			"invalid microservice name",
			`{"MICROSERVICE_NAME": "Orders_Svc", "resources": []}`,
			"MICROSERVICE_NAME",
		},
		{
			"invalid component name",
			`{"MICROSERVICE_NAME": "orders", "resources": [{"component_name": "API", "docker_image": "a:1", "replicas": 1}]}`,
			"resources[0].component_name",
		},
		{
			"zero replicas",
			`{"MICROSERVICE_NAME": "orders", "resources": [{"component_name": "api", "docker_image": "a:1", "replicas": 0}]}`,
			"resources[0].replicas",
		},
		{
			"port out of range",
			`{"MICROSERVICE_NAME": "orders", "resources": [{"component_name": "api", "docker_image": "a:1", "replicas": 1, "port": 70000}]}`,
			"resources[0].port",
		},
		{
			"duplicate components",
			`{"MICROSERVICE_NAME": "orders", "resources": [
				{"component_name": "api", "docker_image": "a:1", "replicas": 1},
				{"component_name": "api", "docker_image": "b:1", "replicas": 1}]}`,
			"resources",
		},
		{
			"reference with both kinds",
			`{"MICROSERVICE_NAME": "orders", "resources": [{"component_name": "api", "docker_image": "a:1", "replicas": 1,
				"related_resources": [{"secret": "api", "configmap": "api"}]}]}`,
			"resources[0].related_resources[0]",
		},
		{
			"invalid data key",
			`{"MICROSERVICE_NAME": "orders", "resources": [{"component_name": "api", "docker_image": "a:1", "replicas": 1,
				"config": {"bad key": "x"}}]}`,
			"resources[0].config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(parse(t, tt.input))

			require.True(t, result.HasErrors())
			assert.Contains(t, fields(result.Errors()), tt.field)
			assert.ErrorIs(t, result.Err(), ErrInvalid)
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	input := `{"MICROSERVICE_NAME": "orders", "resources": [
		{"component_name": "api", "docker_image": "orders", "replicas": 1,
		 "config": {"1ST_KEY": "x=1"},
		 "related_resources": [{"secret": "missing"}, {"secret": "worker"}, {"configmap": "worker"}]},
		{"component_name": "worker", "docker_image": "worker:1.0", "replicas": 1}
	]}`

	result := Validate(parse(t, input))

	assert.False(t, result.HasErrors())
	require.True(t, result.HasWarnings())
	assert.ElementsMatch(t, []string{
		"resources[0].docker_image",
		"resources[0].config",
		"resources[0].related_resources[0]",
		"resources[0].related_resources[1]",
		"resources[0].related_resources[2]",
	}, fields(result.Warnings()))

	out := result.Format()
	assert.Contains(t, out, "Warnings (5):")
	assert.NotContains(t, out, "Errors")
}

func TestValidate_NoComponents(t *testing.T) {
	result := Validate(parse(t, `{"MICROSERVICE_NAME": "orders", "resources": []}`))

	assert.False(t, result.HasErrors())
	assert.Equal(t, []string{"resources"}, fields(result.Warnings()))
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "[error] port: bad", Finding{Severity: SeverityError, Field: "port", Message: "bad"}.Error())
}
