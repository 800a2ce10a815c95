// Package deployer turns a microservice configuration into the linked set of
// Kubernetes resources that describe it.
package deployer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hupe1980/k8sdeployer/internal/k8s"
	"github.com/hupe1980/k8sdeployer/internal/manifest"
)

// ErrUnresolvedReference is returned in strict mode when a related-resource
// entry names a component that produces no matching Secret or ConfigMap.
var ErrUnresolvedReference = errors.New("unresolved related resource")

// Deployer builds resources for one configuration.
type Deployer struct {
	cfg    *manifest.Configuration
	logger *slog.Logger
	strict bool
}

// Option configures a Deployer.
type Option func(*Deployer)

// WithLogger sets the logger used for linking diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Deployer) {
		d.logger = logger
	}
}

// WithStrict makes unresolved references fail generation instead of being
// logged.
func WithStrict(strict bool) Option {
	return func(d *Deployer) {
		d.strict = strict
	}
}

// New returns a Deployer for cfg. The configuration is used as given; any
// environment-derived values must be merged into it beforehand.
func New(cfg *manifest.Configuration, opts ...Option) *Deployer {
	d := &Deployer{
		cfg:    cfg,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// MicroserviceName returns the configured microservice name.
func (d *Deployer) MicroserviceName() string {
	return d.cfg.MicroserviceName
}

// GenerateResources builds the Namespace followed by each component's
// Deployment, Service, Secret and ConfigMap in configuration order, then
// links namespace and name metadata and resolves related resources.
func (d *Deployer) GenerateResources() ([]k8s.Resource, error) {
	if err := d.cfg.CheckRequired(); err != nil {
		return nil, err
	}

	ms := d.cfg.MicroserviceName
	idx := newIndex()
	resources := []k8s.Resource{k8s.NewNamespace(ms)}

	var deployments []*k8s.Deployment

	for i, c := range d.cfg.Resources {
		dep := k8s.NewDeployment(ms, c.ComponentName, c.DockerImage, *c.Replicas)

		for j, ref := range c.RelatedResources {
			r, err := referenceFor(ref)
			if err != nil {
				return nil, &manifest.FieldError{Field: fmt.Sprintf("resources[%d].related_resources[%d]", i, j), Err: err}
			}

			dep.References = append(dep.References, r)
		}

		resources = append(resources, dep)
		deployments = append(deployments, dep)
		idx.add(dep)

		if c.HasService() {
			dep.ContainerPort = *c.Port

			svc := k8s.NewService(ms, c.ComponentName, *c.Port)
			resources = append(resources, svc)
			idx.add(svc)
		}

		if c.HasSecret() {
			secret := k8s.NewSecret(ms, c.ComponentName, c.DBSecrets)
			resources = append(resources, secret)
			idx.add(secret)
		}

		if c.HasConfigMap() {
			cm := k8s.NewConfigMap(ms, c.ComponentName, c.Config)
			resources = append(resources, cm)
			idx.add(cm)
		}
	}

	d.link(resources)

	if err := d.resolve(deployments, idx); err != nil {
		return nil, err
	}

	d.logger.Debug("generated resources",
		slog.String("microservice", ms),
		slog.Int("components", len(d.cfg.Resources)),
		slog.Int("resources", len(resources)),
	)

	return resources, nil
}

// referenceFor converts a related-resource entry. Exactly one of secret or
// configmap must name a component.
func referenceFor(ref manifest.RelatedResource) (k8s.Reference, error) {
	switch {
	case ref.Secret != "" && ref.ConfigMap == "":
		return k8s.Reference{Kind: k8s.KindSecret, Component: ref.Secret}, nil
	case ref.ConfigMap != "" && ref.Secret == "":
		return k8s.Reference{Kind: k8s.KindConfigMap, Component: ref.ConfigMap}, nil
	default:
		return k8s.Reference{}, fmt.Errorf("%w: exactly one of secret or configmap must be set", manifest.ErrInvalid)
	}
}

// link stamps every resource with the microservice namespace and the name
// derived from the resource's own component.
func (d *Deployer) link(resources []k8s.Resource) {
	ms := d.cfg.MicroserviceName

	for _, r := range resources {
		name := ms
		if c := r.Component(); c != "" {
			name = k8s.QualifiedName(ms, c)
		}

		r.SetMetadata(k8s.MetaNamespace, ms)
		r.SetMetadata(k8s.MetaName, name)
	}
}

// resolve points every deployment reference at the resource it names.
func (d *Deployer) resolve(deployments []*k8s.Deployment, idx *index) error {
	var errs []error

	for _, dep := range deployments {
		for i := range dep.References {
			ref := &dep.References[i]

			target, ok := idx.get(ref.Kind, ref.Component)
			if ok {
				ref.Target = target
				continue
			}

			err := fmt.Errorf("%w: %s references %s of component %q",
				ErrUnresolvedReference, dep.Name(), ref.Kind, ref.Component)

			if d.strict {
				errs = append(errs, err)
				continue
			}

			d.logger.Warn("unresolved related resource",
				slog.String("deployment", dep.Name()),
				slog.String("kind", ref.Kind),
				slog.String("component", ref.Component),
				slog.String("assumedName", ref.TargetName(d.cfg.MicroserviceName)),
			)
		}
	}

	return errors.Join(errs...)
}
