package model

// ForecastMode selects how the forecast TPS is obtained.
type ForecastMode string

const (
	// ForecastDirectTPS uses AdditionalTPS as given.
	ForecastDirectTPS ForecastMode = "direct-tps"
	// ForecastTotalTransactions derives TPS from TotalTransactions over PeriodDays.
	ForecastTotalTransactions ForecastMode = "total-transactions"
)

// DerivationWindow selects the seconds-per-day divisor used when deriving
// TPS from a total transaction count.
type DerivationWindow string

const (
	// WindowTwentyFourBySeven spreads traffic over full 24-hour days.
	WindowTwentyFourBySeven DerivationWindow = "24x7"
	// WindowEightHourDay spreads traffic over 8-hour business days.
	WindowEightHourDay DerivationWindow = "8h-day"
)

// ReportWindow names the projection window highlighted in rendered reports.
type ReportWindow string

const (
	ReportWindowOneMinute  ReportWindow = "1m"
	ReportWindowOneHour    ReportWindow = "1h"
	ReportWindowEightHours ReportWindow = "8h"
)

// SizingInput is the full input to a capacity plan. It is a plain value:
// the planner never reads ambient state, so every knob a caller wants to
// set has to be here.
type SizingInput struct {
	ForecastMode      ForecastMode     `json:"forecast_mode"`
	AdditionalTPS     float64          `json:"additional_tps,omitempty"`
	TotalTransactions float64          `json:"total_transactions,omitempty"`
	PeriodDays        float64          `json:"period_days,omitempty"`
	DerivationWindow  DerivationWindow `json:"derivation_window,omitempty"`

	TPSPerPod         float64 `json:"tps_per_pod"`
	CurrentPods       int     `json:"current_pods"`
	NamespacePodLimit int     `json:"namespace_pod_limit,omitempty"`
	IstioEnabled      bool    `json:"istio_enabled"`

	NodeCPUCapacityMilli int64 `json:"node_cpu_capacity_milli"`
	NodeMemCapacityMi    int64 `json:"node_mem_capacity_mi"`

	HPABurstFactor float64 `json:"hpa_burst_factor,omitempty"`
	HPAMinFloor    int     `json:"hpa_min_floor,omitempty"`

	ReportWindow ReportWindow `json:"report_window,omitempty"`
}

// PodSpec is the per-pod resource policy. Reference deployments disagree
// on the exact defaults, so these are always caller-supplied configuration.
type PodSpec struct {
	CPURequestMilli int64 `json:"cpu_request_milli"`
	CPULimitMilli   int64 `json:"cpu_limit_milli"`
	MemRequestMi    int64 `json:"mem_request_mi"`
	MemLimitMi      int64 `json:"mem_limit_mi"`
}

// SidecarOverhead is the per-pod resource overhead added when the Istio
// sidecar is injected.
type SidecarOverhead struct {
	CPURequestMilli int64 `json:"cpu_request_milli"`
	CPULimitMilli   int64 `json:"cpu_limit_milli"`
	MemRequestMi    int64 `json:"mem_request_mi"`
	MemLimitMi      int64 `json:"mem_limit_mi"`
}

// Projection is one transaction-count projection over a named window.
type Projection struct {
	Window       string  `json:"window"`
	Seconds      int64   `json:"seconds"`
	Transactions float64 `json:"transactions"`
}

// SizingReport is the derived capacity plan. All fields are computed in a
// single pass from one SizingInput; nothing is mutated afterwards.
type SizingReport struct {
	ForecastTPS        float64 `json:"forecast_tps"`
	TotalCapacityTPS   float64 `json:"total_capacity_tps"`
	RequiredPods       int     `json:"required_pods"`
	ExtraPodsNeeded    int     `json:"extra_pods_needed"`
	UtilizationPercent float64 `json:"utilization_percent"`

	HPAMin                 int  `json:"hpa_min"`
	HPAMax                 int  `json:"hpa_max"`
	NamespaceLimitExceeded bool `json:"namespace_limit_exceeded,omitempty"`

	PerPodCPURequestMilli int64 `json:"per_pod_cpu_request_milli"`
	PerPodCPULimitMilli   int64 `json:"per_pod_cpu_limit_milli"`
	PerPodMemRequestMi    int64 `json:"per_pod_mem_request_mi"`
	PerPodMemLimitMi      int64 `json:"per_pod_mem_limit_mi"`

	TotalCPURequestCores    float64 `json:"total_cpu_request_cores"`
	BufferedCPURequestCores float64 `json:"buffered_cpu_request_cores"`
	TotalMemRequestMi       int64   `json:"total_mem_request_mi"`

	NodesNeededByCPU    int    `json:"nodes_needed_by_cpu"`
	NodesNeededByMemory int    `json:"nodes_needed_by_memory"`
	RecommendedNodes    int    `json:"recommended_nodes"`
	LimitedBy           string `json:"limited_by,omitempty"`

	EstimatedMonthlyCostLow  float64 `json:"estimated_monthly_cost_low"`
	EstimatedMonthlyCostHigh float64 `json:"estimated_monthly_cost_high"`

	// ReportWindow echoes the window the caller asked to highlight.
	ReportWindow string       `json:"report_window,omitempty"`
	Projections  []Projection `json:"projections"`
}

// ProjectionFor returns the projection for the named window, if present.
func (r *SizingReport) ProjectionFor(window string) (Projection, bool) {
	for _, p := range r.Projections {
		if p.Window == window {
			return p, true
		}
	}
	return Projection{}, false
}
