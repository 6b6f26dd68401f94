// Package sizing maps a traffic forecast to a capacity plan: required
// pods, HPA bounds, node count, and a monthly cost band. Every operation
// is a pure function of its inputs; callers may invoke a Sizer
// concurrently with no synchronization.
package sizing

import (
	"github.com/kubeplan/kubeplan/internal/errors"
	"github.com/kubeplan/kubeplan/pkg/model"
)

// Policy carries the sizing constants that vary between deployments:
// per-pod resource shape, Istio overhead, HPA bounds policy, the CPU
// scheduling buffer, and cost rates.
type Policy struct {
	PodSpec         model.PodSpec
	SidecarOverhead model.SidecarOverhead

	HPAMinFloor    int
	HPAMaxCap      int
	HPABurstFactor float64

	CPUBufferFactor float64

	CostLowPerCoreMonth  float64
	CostHighPerCoreMonth float64
}

// DefaultPolicy returns the baseline policy. Deployments that floor the
// HPA minimum at 3 replicas or run larger memory limits override these.
func DefaultPolicy() Policy {
	return Policy{
		PodSpec: model.PodSpec{
			CPURequestMilli: 100,
			CPULimitMilli:   1000,
			MemRequestMi:    2000,
			MemLimitMi:      2000,
		},
		SidecarOverhead: model.SidecarOverhead{
			CPURequestMilli: 150,
			CPULimitMilli:   500,
			MemRequestMi:    128,
			MemLimitMi:      128,
		},
		HPAMinFloor:          0,
		HPAMaxCap:            64,
		HPABurstFactor:       2.0,
		CPUBufferFactor:      1.3,
		CostLowPerCoreMonth:  18.0,
		CostHighPerCoreMonth: 30.0,
	}
}

// Sizer computes capacity plans under a fixed Policy. It holds no other
// state.
type Sizer struct {
	policy Policy
}

// New creates a Sizer with the given policy.
func New(policy Policy) *Sizer {
	return &Sizer{policy: policy}
}

// Policy returns the policy the Sizer was built with.
func (s *Sizer) Policy() Policy { return s.policy }

// Plan computes a full SizingReport from one input. Validation fails
// fast with an InvalidInput error naming the offending field; a failed
// plan never returns a partial report.
func (s *Sizer) Plan(in model.SizingInput) (*model.SizingReport, error) {
	if in.CurrentPods < 0 {
		return nil, errors.NewInvalidInput("current_pods", "must be >= 0")
	}
	if in.NamespacePodLimit < 0 {
		return nil, errors.NewInvalidInput("namespace_pod_limit", "must be >= 0")
	}
	if in.NodeCPUCapacityMilli <= 0 {
		return nil, errors.NewInvalidInput("node_cpu_capacity_milli", "must be > 0")
	}
	if in.NodeMemCapacityMi <= 0 {
		return nil, errors.NewInvalidInput("node_mem_capacity_mi", "must be > 0")
	}

	tps, err := DeriveTPS(in)
	if err != nil {
		return nil, err
	}

	required, err := RequiredPods(tps, in.TPSPerPod)
	if err != nil {
		return nil, err
	}

	extra := required - in.CurrentPods
	if extra < 0 {
		extra = 0
	}

	// Fleet capacity after scaling: the larger of what runs today and
	// what the forecast requires.
	capacityPods := required
	if in.CurrentPods > capacityPods {
		capacityPods = in.CurrentPods
	}
	totalCapacityTPS := float64(capacityPods) * in.TPSPerPod

	var utilization float64
	if totalCapacityTPS > 0 {
		utilization = tps / totalCapacityTPS * 100
	}

	burst := in.HPABurstFactor
	if burst == 0 {
		burst = s.policy.HPABurstFactor
	}
	minFloor := in.HPAMinFloor
	if minFloor == 0 {
		minFloor = s.policy.HPAMinFloor
	}
	hpaMin, hpaMax, err := HPABounds(required, burst, minFloor, s.policy.HPAMaxCap)
	if err != nil {
		return nil, err
	}

	limitExceeded := false
	if in.NamespacePodLimit > 0 && hpaMax > in.NamespacePodLimit {
		hpaMax = in.NamespacePodLimit
		limitExceeded = true
		if hpaMin > hpaMax {
			hpaMin = hpaMax
		}
	}

	fp, err := ResourceFootprint(required, in.IstioEnabled, s.policy.PodSpec, s.policy.SidecarOverhead)
	if err != nil {
		return nil, err
	}

	totalCores := float64(fp.TotalCPURequestMilli) / 1000
	bufferedCores := totalCores * s.policy.CPUBufferFactor

	nodesByCPU, err := NodesNeeded(fp.TotalCPURequestMilli, in.NodeCPUCapacityMilli)
	if err != nil {
		return nil, err
	}
	nodesByMem, err := NodesNeeded(fp.TotalMemRequestMi, in.NodeMemCapacityMi)
	if err != nil {
		return nil, err
	}

	recommended := nodesByCPU
	limitedBy := ""
	if recommended > 0 {
		limitedBy = "cpu"
	}
	if nodesByMem > recommended {
		recommended = nodesByMem
		limitedBy = "memory"
	}
	if required > 0 && recommended < 1 {
		recommended = 1
	}

	costLow, costHigh := EstimateCost(bufferedCores, s.policy.CostLowPerCoreMonth, s.policy.CostHighPerCoreMonth)

	return &model.SizingReport{
		ForecastTPS:        tps,
		TotalCapacityTPS:   totalCapacityTPS,
		RequiredPods:       required,
		ExtraPodsNeeded:    extra,
		UtilizationPercent: utilization,

		HPAMin:                 hpaMin,
		HPAMax:                 hpaMax,
		NamespaceLimitExceeded: limitExceeded,

		PerPodCPURequestMilli: fp.PerPodCPURequestMilli,
		PerPodCPULimitMilli:   fp.PerPodCPULimitMilli,
		PerPodMemRequestMi:    fp.PerPodMemRequestMi,
		PerPodMemLimitMi:      fp.PerPodMemLimitMi,

		TotalCPURequestCores:    totalCores,
		BufferedCPURequestCores: bufferedCores,
		TotalMemRequestMi:       fp.TotalMemRequestMi,

		NodesNeededByCPU:    nodesByCPU,
		NodesNeededByMemory: nodesByMem,
		RecommendedNodes:    recommended,
		LimitedBy:           limitedBy,

		EstimatedMonthlyCostLow:  costLow,
		EstimatedMonthlyCostHigh: costHigh,

		ReportWindow: string(in.ReportWindow),
		Projections:  ProjectTransactions(tps),
	}, nil
}
