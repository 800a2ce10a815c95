package k8s

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// Kinds produced by the generator.
const (
	KindDeployment = "Deployment"
	KindService    = "Service"
	KindNamespace  = "Namespace"
	KindSecret     = "Secret"
	KindConfigMap  = "ConfigMap"
)

// Logical name suffixes per kind.
const (
	SuffixDeployment = "deployment"
	SuffixService    = "service"
	SuffixSecret     = "secret"
	SuffixConfigMap  = "config"
)

var (
	deploymentGVK = appsv1.SchemeGroupVersion.WithKind(KindDeployment)
	serviceGVK    = corev1.SchemeGroupVersion.WithKind(KindService)
	namespaceGVK  = corev1.SchemeGroupVersion.WithKind(KindNamespace)
	secretGVK     = corev1.SchemeGroupVersion.WithKind(KindSecret)
	configMapGVK  = corev1.SchemeGroupVersion.WithKind(KindConfigMap)
)

func typeMeta(gvk schema.GroupVersionKind) metav1.TypeMeta {
	apiVersion, kind := gvk.ToAPIVersionAndKind()

	return metav1.TypeMeta{APIVersion: apiVersion, Kind: kind}
}

// IsNamespaced reports whether objects of kind live inside a namespace.
func IsNamespaced(kind string) bool {
	return kind != KindNamespace
}
