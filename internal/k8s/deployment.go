package k8s

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/utils/ptr"

	"github.com/hupe1980/k8sdeployer/internal/output"
)

// DefaultContainerPort is exposed by the container when the component
// declares no port.
const DefaultContainerPort int32 = 8080

// Reference points a Deployment at another component's Secret or ConfigMap.
// Target is filled in by the deployer once all resources exist.
type Reference struct {
	Kind      string
	Component string
	Target    Resource
}

// TargetName is the object name the reference renders to: the linked
// target's metadata.name, or the name the target would have been given.
func (r Reference) TargetName(microservice string) string {
	if r.Target != nil {
		if n := r.Target.Metadata()[MetaName]; n != "" {
			return n
		}
	}

	return QualifiedName(microservice, r.Component)
}

// Deployment runs a component's image.
type Deployment struct {
	Base

	Image         string
	Replicas      int32
	ContainerPort int32
	References    []Reference
}

// NewDeployment returns the Deployment for a component.
func NewDeployment(microservice, component, image string, replicas int32) *Deployment {
	return &Deployment{
		Base:          NewBase(ResourceName(microservice, component, SuffixDeployment), microservice, component),
		Image:         image,
		Replicas:      replicas,
		ContainerPort: DefaultContainerPort,
	}
}

func (d *Deployment) Kind() string { return KindDeployment }

// EnvFrom lists one source per reference, in declaration order.
func (d *Deployment) EnvFrom() []corev1.EnvFromSource {
	if len(d.References) == 0 {
		return nil
	}

	sources := make([]corev1.EnvFromSource, 0, len(d.References))

	for _, ref := range d.References {
		target := corev1.LocalObjectReference{Name: ref.TargetName(d.microservice)}

		switch ref.Kind {
		case KindSecret:
			sources = append(sources, corev1.EnvFromSource{
				SecretRef: &corev1.SecretEnvSource{LocalObjectReference: target},
			})
		case KindConfigMap:
			sources = append(sources, corev1.EnvFromSource{
				ConfigMapRef: &corev1.ConfigMapEnvSource{LocalObjectReference: target},
			})
		}
	}

	return sources
}

// Object returns the typed apps/v1 Deployment.
func (d *Deployment) Object() *appsv1.Deployment {
	labels := ComponentLabels(d.microservice, d.component, d.Image)

	return &appsv1.Deployment{
		TypeMeta:   typeMeta(deploymentGVK),
		ObjectMeta: d.objectMeta(labels),
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(d.Replicas),
			Selector: &metav1.LabelSelector{
				MatchLabels: SelectorLabels(d.microservice, d.component),
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{Labels: labels},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{{
						Name:  QualifiedName(d.microservice, d.component),
						Image: d.Image,
						Ports: []corev1.ContainerPort{{
							ContainerPort: d.ContainerPort,
							Protocol:      corev1.ProtocolTCP,
						}},
						EnvFrom: d.EnvFrom(),
					}},
				},
			},
		},
	}
}

func (d *Deployment) RenderManifest() ([]byte, error) {
	return output.SerializeObject(d.Object())
}
