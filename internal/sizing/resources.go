package sizing

import (
	"github.com/kubeplan/kubeplan/internal/errors"
	"github.com/kubeplan/kubeplan/pkg/model"
)

// Footprint is the per-pod and fleet-wide resource demand of a plan.
type Footprint struct {
	PerPodCPURequestMilli int64
	PerPodCPULimitMilli   int64
	PerPodMemRequestMi    int64
	PerPodMemLimitMi      int64

	TotalCPURequestMilli int64
	TotalCPULimitMilli   int64
	TotalMemRequestMi    int64
	TotalMemLimitMi      int64
}

// ResourceFootprint computes the resource demand of requiredPods pods.
// When istioEnabled, the sidecar overhead is added to every pod before
// the totals are taken.
func ResourceFootprint(requiredPods int, istioEnabled bool, spec model.PodSpec, overhead model.SidecarOverhead) (Footprint, error) {
	if requiredPods < 0 {
		return Footprint{}, errors.NewInvalidInput("required_pods", "must be >= 0")
	}
	if spec.CPURequestMilli <= 0 || spec.MemRequestMi <= 0 {
		return Footprint{}, errors.NewInvalidInput("pod_spec", "requests must be > 0")
	}

	fp := Footprint{
		PerPodCPURequestMilli: spec.CPURequestMilli,
		PerPodCPULimitMilli:   spec.CPULimitMilli,
		PerPodMemRequestMi:    spec.MemRequestMi,
		PerPodMemLimitMi:      spec.MemLimitMi,
	}
	if istioEnabled {
		fp.PerPodCPURequestMilli += overhead.CPURequestMilli
		fp.PerPodCPULimitMilli += overhead.CPULimitMilli
		fp.PerPodMemRequestMi += overhead.MemRequestMi
		fp.PerPodMemLimitMi += overhead.MemLimitMi
	}

	pods := int64(requiredPods)
	fp.TotalCPURequestMilli = fp.PerPodCPURequestMilli * pods
	fp.TotalCPULimitMilli = fp.PerPodCPULimitMilli * pods
	fp.TotalMemRequestMi = fp.PerPodMemRequestMi * pods
	fp.TotalMemLimitMi = fp.PerPodMemLimitMi * pods

	return fp, nil
}

// NodesNeeded returns the node count that fits totalRequest, by ceiling
// division against the per-node capacity, with a floor of 1 whenever
// anything at all is requested.
func NodesNeeded(totalRequest, perNodeCapacity int64) (int, error) {
	if perNodeCapacity <= 0 {
		return 0, errors.NewInvalidInput("per_node_capacity", "must be > 0")
	}
	if totalRequest <= 0 {
		return 0, nil
	}
	return int((totalRequest + perNodeCapacity - 1) / perNodeCapacity), nil
}

// EstimateCost converts a buffered core count into a monthly cost band.
// Rates are $/core/month and come from configuration, not constants.
func EstimateCost(bufferedCores, lowRatePerCore, highRatePerCore float64) (float64, float64) {
	return bufferedCores * lowRatePerCore, bufferedCores * highRatePerCore
}
