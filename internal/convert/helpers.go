package convert

import (
	corev1 "k8s.io/api/core/v1"
)

const mi = 1024 * 1024

// cpuMilli extracts a CPU quantity from a ResourceList as millicores.
func cpuMilli(rl corev1.ResourceList, name corev1.ResourceName) int64 {
	q, ok := rl[name]
	if !ok {
		return 0
	}
	return q.MilliValue()
}

// memMi extracts a memory quantity from a ResourceList as Mi.
func memMi(rl corev1.ResourceList, name corev1.ResourceName) int64 {
	q, ok := rl[name]
	if !ok {
		return 0
	}
	return q.Value() / mi
}

// intValue extracts a plain integer quantity (e.g. pods) from a ResourceList.
func intValue(rl corev1.ResourceList, name corev1.ResourceName) int {
	q, ok := rl[name]
	if !ok {
		return 0
	}
	return int(q.Value())
}
