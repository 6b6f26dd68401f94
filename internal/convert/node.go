package convert

import (
	corev1 "k8s.io/api/core/v1"

	"github.com/kubeplan/kubeplan/pkg/model"
)

// NodeToCapacity converts a Kubernetes Node to a model.NodeCapacity.
// Pure function — no side effects, no time.Now(), no external calls.
// Usage fields are left nil (merged later from the metrics API).
func NodeToCapacity(node *corev1.Node) model.NodeCapacity {
	labels := node.Labels

	zone := labels["topology.kubernetes.io/zone"]

	return model.NodeCapacity{
		Name:         node.Name,
		InstanceType: labels["node.kubernetes.io/instance-type"],
		Zone:         zone,

		CPUCapacityMilli:    cpuMilli(node.Status.Capacity, corev1.ResourceCPU),
		MemCapacityMi:       memMi(node.Status.Capacity, corev1.ResourceMemory),
		CPUAllocatableMilli: cpuMilli(node.Status.Allocatable, corev1.ResourceCPU),
		MemAllocatableMi:    memMi(node.Status.Allocatable, corev1.ResourceMemory),
		PodCapacity:         intValue(node.Status.Allocatable, corev1.ResourcePods),

		Ready:         nodeReady(node.Status.Conditions),
		Unschedulable: node.Spec.Unschedulable,
	}
}

// nodeReady returns true if the node has a Ready condition with status True.
func nodeReady(conditions []corev1.NodeCondition) bool {
	for _, c := range conditions {
		if c.Type == corev1.NodeReady {
			return c.Status == corev1.ConditionTrue
		}
	}
	return false
}
