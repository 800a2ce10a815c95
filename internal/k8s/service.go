package k8s

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/util/intstr"

	"github.com/hupe1980/k8sdeployer/internal/output"
)

// Service exposes a component on a single TCP port. The listen port and
// the target port are the same.
type Service struct {
	Base

	Port int32
}

// NewService returns the Service for a component.
func NewService(microservice, component string, port int32) *Service {
	return &Service{
		Base: NewBase(ResourceName(microservice, component, SuffixService), microservice, component),
		Port: port,
	}
}

func (s *Service) Kind() string { return KindService }

// Object returns the typed core/v1 Service.
func (s *Service) Object() *corev1.Service {
	return &corev1.Service{
		TypeMeta:   typeMeta(serviceGVK),
		ObjectMeta: s.objectMeta(ComponentLabels(s.microservice, s.component, "")),
		Spec: corev1.ServiceSpec{
			Selector: SelectorLabels(s.microservice, s.component),
			Ports: []corev1.ServicePort{{
				Protocol:   corev1.ProtocolTCP,
				Port:       s.Port,
				TargetPort: intstr.FromInt32(s.Port),
			}},
		},
	}
}

func (s *Service) RenderManifest() ([]byte, error) {
	return output.SerializeObject(s.Object())
}
