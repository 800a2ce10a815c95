// Package manifest holds the declarative description of a microservice that
// drives manifest generation: how it is decoded, checked, and enriched with
// credentials from a dotenv file.
package manifest

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration problems.
var (
	ErrMissingField     = errors.New("missing required field")
	ErrUnknownComponent = errors.New("unknown component")
	ErrInvalid          = errors.New("invalid configuration")
)

// FieldError reports a problem with one configuration field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Configuration describes one microservice and its components.
type Configuration struct {
	MicroserviceName string            `json:"MICROSERVICE_NAME" yaml:"MICROSERVICE_NAME"`
	Resources        []ComponentConfig `json:"resources" yaml:"resources"`
}

// ComponentConfig describes one component of the microservice.
type ComponentConfig struct {
	ComponentName    string            `json:"component_name" yaml:"component_name"`
	DockerImage      string            `json:"docker_image" yaml:"docker_image"`
	Replicas         *int32            `json:"replicas" yaml:"replicas"`
	Port             *int32            `json:"port,omitempty" yaml:"port,omitempty"`
	DBSecrets        map[string]string `json:"db_secrets,omitempty" yaml:"db_secrets,omitempty"`
	Config           map[string]string `json:"config,omitempty" yaml:"config,omitempty"`
	RelatedResources []RelatedResource `json:"related_resources,omitempty" yaml:"related_resources,omitempty"`
}

// HasService reports whether the component exposes a port.
func (c *ComponentConfig) HasService() bool { return c.Port != nil }

// HasSecret reports whether db_secrets was given, even when empty.
func (c *ComponentConfig) HasSecret() bool { return c.DBSecrets != nil }

// HasConfigMap reports whether config has at least one entry.
func (c *ComponentConfig) HasConfigMap() bool { return len(c.Config) > 0 }

// RelatedResource references another component's Secret or ConfigMap.
// Exactly one field is set.
type RelatedResource struct {
	Secret    string `json:"secret,omitempty" yaml:"secret,omitempty"`
	ConfigMap string `json:"configmap,omitempty" yaml:"configmap,omitempty"`
}

// Component returns the referenced component name.
func (r RelatedResource) Component() string {
	if r.Secret != "" {
		return r.Secret
	}

	return r.ConfigMap
}

// Component returns the component with the given name.
func (c *Configuration) Component(name string) (*ComponentConfig, bool) {
	for i := range c.Resources {
		if c.Resources[i].ComponentName == name {
			return &c.Resources[i], true
		}
	}

	return nil, false
}

// CheckRequired reports every missing required field, joined into one error.
func (c *Configuration) CheckRequired() error {
	var errs []error

	if c.MicroserviceName == "" {
		errs = append(errs, &FieldError{Field: "MICROSERVICE_NAME", Err: ErrMissingField})
	}

	if c.Resources == nil {
		errs = append(errs, &FieldError{Field: "resources", Err: ErrMissingField})
	}

	for i, comp := range c.Resources {
		prefix := fmt.Sprintf("resources[%d]", i)

		if comp.ComponentName == "" {
			errs = append(errs, &FieldError{Field: prefix + ".component_name", Err: ErrMissingField})
		}

		if comp.DockerImage == "" {
			errs = append(errs, &FieldError{Field: prefix + ".docker_image", Err: ErrMissingField})
		}

		if comp.Replicas == nil {
			errs = append(errs, &FieldError{Field: prefix + ".replicas", Err: ErrMissingField})
		}
	}

	return errors.Join(errs...)
}
