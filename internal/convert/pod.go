package convert

import (
	corev1 "k8s.io/api/core/v1"

	"github.com/kubeplan/kubeplan/pkg/model"
)

// istioSidecarName is the container name the Istio injector uses.
const istioSidecarName = "istio-proxy"

// PodToWorkload converts a Kubernetes Pod to a model.Workload, summing
// container requests and limits across all regular containers.
// Pure function — no side effects, no external calls.
func PodToWorkload(pod *corev1.Pod) model.Workload {
	w := model.Workload{
		Name:      pod.Name,
		Namespace: pod.Namespace,
		NodeName:  pod.Spec.NodeName,
		Phase:     string(pod.Status.Phase),
	}

	for i := range pod.Spec.Containers {
		c := &pod.Spec.Containers[i]
		if c.Name == istioSidecarName {
			w.HasIstioSidecar = true
		}
		w.CPURequestMilli += cpuMilli(c.Resources.Requests, corev1.ResourceCPU)
		w.CPULimitMilli += cpuMilli(c.Resources.Limits, corev1.ResourceCPU)
		w.MemRequestMi += memMi(c.Resources.Requests, corev1.ResourceMemory)
		w.MemLimitMi += memMi(c.Resources.Limits, corev1.ResourceMemory)
	}

	return w
}

// PodRunning reports whether the pod counts toward the live replica count.
func PodRunning(pod *corev1.Pod) bool {
	return pod.Status.Phase == corev1.PodRunning
}
