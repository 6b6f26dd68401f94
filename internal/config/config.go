package config

import (
	"os"
	"strconv"

	"github.com/kubeplan/kubeplan/internal/sizing"
	"github.com/kubeplan/kubeplan/pkg/model"
)

// Config holds all planner configuration values.
type Config struct {
	// Sizing policy
	PodCPURequestMilli int64 // KUBEPLAN_POD_CPU_REQUEST_MILLI, default: 100
	PodCPULimitMilli   int64 // KUBEPLAN_POD_CPU_LIMIT_MILLI, default: 1000
	PodMemRequestMi    int64 // KUBEPLAN_POD_MEM_REQUEST_MI, default: 2000
	PodMemLimitMi      int64 // KUBEPLAN_POD_MEM_LIMIT_MI, default: 2000

	// Istio sidecar overhead per pod
	IstioCPURequestMilli int64 // KUBEPLAN_ISTIO_CPU_REQUEST_MILLI, default: 150
	IstioCPULimitMilli   int64 // KUBEPLAN_ISTIO_CPU_LIMIT_MILLI, default: 500
	IstioMemRequestMi    int64 // KUBEPLAN_ISTIO_MEM_REQUEST_MI, default: 128
	IstioMemLimitMi      int64 // KUBEPLAN_ISTIO_MEM_LIMIT_MI, default: 128

	// HPA policy
	HPAMinFloor    int     // KUBEPLAN_HPA_MIN_FLOOR, default: 0 (no floor; 3 is common in production)
	HPAMaxCap      int     // KUBEPLAN_HPA_MAX_CAP, default: 64 (0 = uncapped)
	HPABurstFactor float64 // KUBEPLAN_HPA_BURST_FACTOR, default: 2.0

	// Node sizing and cost
	CPUBufferFactor      float64 // KUBEPLAN_CPU_BUFFER_FACTOR, default: 1.3
	CostLowPerCoreMonth  float64 // KUBEPLAN_COST_LOW_PER_CORE_MONTH, default: 18.0
	CostHighPerCoreMonth float64 // KUBEPLAN_COST_HIGH_PER_CORE_MONTH, default: 30.0

	// Serve mode
	ListenPort     int  // KUBEPLAN_LISTEN_PORT, default: 8080
	DebugEndpoints bool // KUBEPLAN_DEBUG_ENDPOINTS, default: false — enables pprof on the listen port
}

// Load reads configuration from environment variables and returns a
// Config with defaults applied for any unset values.
func Load() Config {
	return Config{
		PodCPURequestMilli: parseInt64("KUBEPLAN_POD_CPU_REQUEST_MILLI", 100),
		PodCPULimitMilli:   parseInt64("KUBEPLAN_POD_CPU_LIMIT_MILLI", 1000),
		PodMemRequestMi:    parseInt64("KUBEPLAN_POD_MEM_REQUEST_MI", 2000),
		PodMemLimitMi:      parseInt64("KUBEPLAN_POD_MEM_LIMIT_MI", 2000),

		IstioCPURequestMilli: parseInt64("KUBEPLAN_ISTIO_CPU_REQUEST_MILLI", 150),
		IstioCPULimitMilli:   parseInt64("KUBEPLAN_ISTIO_CPU_LIMIT_MILLI", 500),
		IstioMemRequestMi:    parseInt64("KUBEPLAN_ISTIO_MEM_REQUEST_MI", 128),
		IstioMemLimitMi:      parseInt64("KUBEPLAN_ISTIO_MEM_LIMIT_MI", 128),

		HPAMinFloor:    parseInt("KUBEPLAN_HPA_MIN_FLOOR", 0),
		HPAMaxCap:      parseInt("KUBEPLAN_HPA_MAX_CAP", 64),
		HPABurstFactor: parseFloat("KUBEPLAN_HPA_BURST_FACTOR", 2.0),

		CPUBufferFactor:      parseFloat("KUBEPLAN_CPU_BUFFER_FACTOR", 1.3),
		CostLowPerCoreMonth:  parseFloat("KUBEPLAN_COST_LOW_PER_CORE_MONTH", 18.0),
		CostHighPerCoreMonth: parseFloat("KUBEPLAN_COST_HIGH_PER_CORE_MONTH", 30.0),

		ListenPort:     parseInt("KUBEPLAN_LISTEN_PORT", 8080),
		DebugEndpoints: parseBool("KUBEPLAN_DEBUG_ENDPOINTS", false),
	}
}

// Policy converts the configuration into a sizing.Policy.
func (c Config) Policy() sizing.Policy {
	return sizing.Policy{
		PodSpec: model.PodSpec{
			CPURequestMilli: c.PodCPURequestMilli,
			CPULimitMilli:   c.PodCPULimitMilli,
			MemRequestMi:    c.PodMemRequestMi,
			MemLimitMi:      c.PodMemLimitMi,
		},
		SidecarOverhead: model.SidecarOverhead{
			CPURequestMilli: c.IstioCPURequestMilli,
			CPULimitMilli:   c.IstioCPULimitMilli,
			MemRequestMi:    c.IstioMemRequestMi,
			MemLimitMi:      c.IstioMemLimitMi,
		},
		HPAMinFloor:          c.HPAMinFloor,
		HPAMaxCap:            c.HPAMaxCap,
		HPABurstFactor:       c.HPABurstFactor,
		CPUBufferFactor:      c.CPUBufferFactor,
		CostLowPerCoreMonth:  c.CostLowPerCoreMonth,
		CostHighPerCoreMonth: c.CostHighPerCoreMonth,
	}
}

func parseInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return n
}

func parseInt64(key string, defaultVal int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return defaultVal
	}
	return n
}

func parseFloat(key string, defaultVal float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

func parseBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}
