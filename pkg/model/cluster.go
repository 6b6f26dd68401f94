package model

// NodeCapacity represents one node's capacity and allocatable resources
// in the units the planner works in (milli-CPU, Mi memory).
type NodeCapacity struct {
	Name         string `json:"name"`
	InstanceType string `json:"instance_type,omitempty"`
	Zone         string `json:"zone,omitempty"`

	CPUCapacityMilli    int64 `json:"cpu_capacity_milli"`
	MemCapacityMi       int64 `json:"mem_capacity_mi"`
	CPUAllocatableMilli int64 `json:"cpu_allocatable_milli"`
	MemAllocatableMi    int64 `json:"mem_allocatable_mi"`
	PodCapacity         int   `json:"pod_capacity"`

	CPUUsageMilli *int64 `json:"cpu_usage_milli,omitempty"`
	MemUsageMi    *int64 `json:"mem_usage_mi,omitempty"`

	Ready         bool `json:"ready"`
	Unschedulable bool `json:"unschedulable"`
}

// Workload represents one pod with its summed container requests.
type Workload struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`
	NodeName  string `json:"node_name,omitempty"`
	Phase     string `json:"phase"`

	CPURequestMilli int64 `json:"cpu_request_milli"`
	CPULimitMilli   int64 `json:"cpu_limit_milli"`
	MemRequestMi    int64 `json:"mem_request_mi"`
	MemLimitMi      int64 `json:"mem_limit_mi"`

	HasIstioSidecar bool `json:"has_istio_sidecar"`
}

// HPAStatus represents the bounds and current state of a
// HorizontalPodAutoscaler.
type HPAStatus struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace"`

	TargetKind string `json:"target_kind"`
	TargetName string `json:"target_name"`

	MinReplicas     *int32 `json:"min_replicas,omitempty"`
	MaxReplicas     int32  `json:"max_replicas"`
	CurrentReplicas int32  `json:"current_replicas"`
	DesiredReplicas int32  `json:"desired_replicas"`
}

// ClusterState is one observation of the cluster pieces a plan consumes.
type ClusterState struct {
	Nodes     []NodeCapacity `json:"nodes"`
	Workloads []Workload     `json:"workloads"`
	HPAs      []HPAStatus    `json:"hpas"`
}

// ClusterSummary aggregates a ClusterState into the totals a caller
// merges into a SizingInput.
type ClusterSummary struct {
	NodeCount       int `json:"node_count"`
	ReadyNodeCount  int `json:"ready_node_count"`
	PodCount        int `json:"pod_count"`
	RunningPodCount int `json:"running_pod_count"`
	IstioPodCount   int `json:"istio_pod_count"`

	TotalCPUAllocatableMilli int64 `json:"total_cpu_allocatable_milli"`
	TotalMemAllocatableMi    int64 `json:"total_mem_allocatable_mi"`

	// Smallest ready, schedulable node — the conservative choice for
	// per-node capacity when sizing.
	MinNodeCPUAllocatableMilli int64 `json:"min_node_cpu_allocatable_milli"`
	MinNodeMemAllocatableMi    int64 `json:"min_node_mem_allocatable_mi"`
}

// Summarize computes the ClusterSummary for a state.
func (s *ClusterState) Summarize() ClusterSummary {
	sum := ClusterSummary{
		NodeCount: len(s.Nodes),
		PodCount:  len(s.Workloads),
	}

	for i := range s.Nodes {
		n := &s.Nodes[i]
		sum.TotalCPUAllocatableMilli += n.CPUAllocatableMilli
		sum.TotalMemAllocatableMi += n.MemAllocatableMi
		if !n.Ready || n.Unschedulable {
			continue
		}
		sum.ReadyNodeCount++
		if sum.MinNodeCPUAllocatableMilli == 0 || n.CPUAllocatableMilli < sum.MinNodeCPUAllocatableMilli {
			sum.MinNodeCPUAllocatableMilli = n.CPUAllocatableMilli
		}
		if sum.MinNodeMemAllocatableMi == 0 || n.MemAllocatableMi < sum.MinNodeMemAllocatableMi {
			sum.MinNodeMemAllocatableMi = n.MemAllocatableMi
		}
	}

	for i := range s.Workloads {
		w := &s.Workloads[i]
		if w.Phase == "Running" {
			sum.RunningPodCount++
		}
		if w.HasIstioSidecar {
			sum.IstioPodCount++
		}
	}

	return sum
}
