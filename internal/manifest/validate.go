package manifest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/hupe1980/k8sdeployer/internal/k8s"
)

// Severity indicates how serious a validation finding is.
type Severity int

const (
	// SeverityError means no manifests can be generated.
	SeverityError Severity = iota
	// SeverityWarning means the manifests are generated but may not work.
	SeverityWarning
)

// String returns the severity name.
func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}

	return "warning"
}

// Finding is a single validation issue.
type Finding struct {
	Severity Severity
	Field    string
	Message  string
}

// Error implements the error interface.
func (f Finding) Error() string {
	return fmt.Sprintf("[%s] %s: %s", f.Severity, f.Field, f.Message)
}

// ValidationResult holds all findings from a validation run.
type ValidationResult struct {
	Findings []Finding
}

// Errors returns only error-severity findings.
func (r *ValidationResult) Errors() []Finding {
	return lo.Filter(r.Findings, func(f Finding, _ int) bool { return f.Severity == SeverityError })
}

// Warnings returns only warning-severity findings.
func (r *ValidationResult) Warnings() []Finding {
	return lo.Filter(r.Findings, func(f Finding, _ int) bool { return f.Severity == SeverityWarning })
}

// HasErrors returns true if any error-severity findings exist.
func (r *ValidationResult) HasErrors() bool {
	return lo.SomeBy(r.Findings, func(f Finding) bool { return f.Severity == SeverityError })
}

// HasWarnings returns true if any warning-severity findings exist.
func (r *ValidationResult) HasWarnings() bool {
	return lo.SomeBy(r.Findings, func(f Finding) bool { return f.Severity == SeverityWarning })
}

// Err returns the error findings as a single error wrapping ErrInvalid, or
// nil when there are none.
func (r *ValidationResult) Err() error {
	errs := r.Errors()
	if len(errs) == 0 {
		return nil
	}

	msgs := lo.Map(errs, func(f Finding, _ int) string { return f.Field + ": " + f.Message })

	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

// Format returns a human-readable listing of all findings.
func (r *ValidationResult) Format() string {
	if len(r.Findings) == 0 {
		return "Validation passed: no issues found.\n"
	}

	var sb strings.Builder

	write := func(title string, findings []Finding) {
		if len(findings) == 0 {
			return
		}

		if sb.Len() > 0 {
			sb.WriteString("\n")
		}

		_, _ = fmt.Fprintf(&sb, "%s (%d):\n", title, len(findings))

		for _, f := range findings {
			_, _ = fmt.Fprintf(&sb, "  - %s: %s\n", f.Field, f.Message)
		}
	}

	write("Errors", r.Errors())
	write("Warnings", r.Warnings())

	return sb.String()
}

// Validate checks a configuration whose required fields are present for
// problems that would produce unusable manifests.
func Validate(cfg *Configuration) *ValidationResult {
	v := &validator{cfg: cfg}
	v.validate()

	return &v.result
}

type validator struct {
	cfg    *Configuration
	result ValidationResult
}

func (v *validator) addError(field, msg string) {
	v.result.Findings = append(v.result.Findings, Finding{Severity: SeverityError, Field: field, Message: msg})
}

func (v *validator) addWarning(field, msg string) {
	v.result.Findings = append(v.result.Findings, Finding{Severity: SeverityWarning, Field: field, Message: msg})
}

func (v *validator) validate() {
	if err := v.cfg.CheckRequired(); err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			field, msg, _ := strings.Cut(line, ": ")
			v.addError(field, msg)
		}

		return
	}

	for _, msg := range validation.IsDNS1123Label(v.cfg.MicroserviceName) {
		v.addError("MICROSERVICE_NAME", msg)
	}

	if len(v.cfg.Resources) == 0 {
		v.addWarning("resources", "no components defined; only the namespace is generated")
	}

	dups := lo.FindDuplicatesBy(v.cfg.Resources, func(c ComponentConfig) string { return c.ComponentName })
	for _, d := range dups {
		v.addError("resources", fmt.Sprintf("component %q is defined more than once; generated names would collide", d.ComponentName))
	}

	for i := range v.cfg.Resources {
		v.validateComponent(fmt.Sprintf("resources[%d]", i), &v.cfg.Resources[i])
	}
}

func (v *validator) validateComponent(path string, c *ComponentConfig) {
	for _, msg := range validation.IsDNS1123Label(c.ComponentName) {
		v.addError(path+".component_name", msg)
	}

	objectName := k8s.QualifiedName(v.cfg.MicroserviceName, c.ComponentName)
	if c.HasService() {
		for _, msg := range validation.IsDNS1035Label(objectName) {
			v.addError(path+".component_name", fmt.Sprintf("service name %q: %s", objectName, msg))
		}
	} else {
		for _, msg := range validation.IsDNS1123Label(objectName) {
			v.addError(path+".component_name", fmt.Sprintf("object name %q: %s", objectName, msg))
		}
	}

	if *c.Replicas < 1 {
		v.addError(path+".replicas", fmt.Sprintf("must be a positive integer, got %d", *c.Replicas))
	}

	if c.Port != nil {
		for _, msg := range validation.IsValidPortNum(int(*c.Port)) {
			v.addError(path+".port", msg)
		}
	}

	if k8s.HasLatestTag(c.DockerImage) {
		v.addWarning(path+".docker_image", fmt.Sprintf("image %q uses the latest tag; pin a version", c.DockerImage))
	}

	v.validateData(path+".db_secrets", c.DBSecrets)
	v.validateData(path+".config", c.Config)

	for j, ref := range c.RelatedResources {
		v.validateReference(fmt.Sprintf("%s.related_resources[%d]", path, j), ref)
	}
}

func (v *validator) validateData(path string, data map[string]string) {
	keys := lo.Keys(data)
	slices.Sort(keys)

	for _, key := range keys {
		for _, msg := range validation.IsConfigMapKey(key) {
			v.addError(path, fmt.Sprintf("key %q: %s", key, msg))
		}

		if len(validation.IsEnvVarName(key)) > 0 {
			v.addWarning(path, fmt.Sprintf("key %q is not a valid environment variable name and is skipped by envFrom", key))
		}
	}
}

func (v *validator) validateReference(path string, ref RelatedResource) {
	if (ref.Secret == "") == (ref.ConfigMap == "") {
		v.addError(path, "exactly one of secret or configmap must be set")
		return
	}

	target, ok := v.cfg.Component(ref.Component())
	if !ok {
		v.addWarning(path, fmt.Sprintf("component %q is not defined in this configuration", ref.Component()))
		return
	}

	switch {
	case ref.Secret != "" && !target.HasSecret():
		v.addWarning(path, fmt.Sprintf("component %q has no db_secrets; no Secret is generated for it", ref.Secret))
	case ref.ConfigMap != "" && !target.HasConfigMap():
		v.addWarning(path, fmt.Sprintf("component %q has no config; no ConfigMap is generated for it", ref.ConfigMap))
	}
}
