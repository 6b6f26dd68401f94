package config

import (
	"fmt"
)

// Validate checks that the Config contains valid values.
// Returns an error describing the first invalid field found.
func (c Config) Validate() error {
	if c.PodCPURequestMilli <= 0 {
		return fmt.Errorf("config: PodCPURequestMilli must be > 0, got %d", c.PodCPURequestMilli)
	}
	if c.PodCPULimitMilli < c.PodCPURequestMilli {
		return fmt.Errorf("config: PodCPULimitMilli must be >= request (%d), got %d", c.PodCPURequestMilli, c.PodCPULimitMilli)
	}
	if c.PodMemRequestMi <= 0 {
		return fmt.Errorf("config: PodMemRequestMi must be > 0, got %d", c.PodMemRequestMi)
	}
	if c.PodMemLimitMi < c.PodMemRequestMi {
		return fmt.Errorf("config: PodMemLimitMi must be >= request (%d), got %d", c.PodMemRequestMi, c.PodMemLimitMi)
	}

	if c.IstioCPURequestMilli < 0 || c.IstioCPULimitMilli < 0 || c.IstioMemRequestMi < 0 || c.IstioMemLimitMi < 0 {
		return fmt.Errorf("config: istio overhead values must be >= 0")
	}

	if c.HPAMinFloor < 0 {
		return fmt.Errorf("config: HPAMinFloor must be >= 0, got %d", c.HPAMinFloor)
	}
	if c.HPAMaxCap < 0 {
		return fmt.Errorf("config: HPAMaxCap must be >= 0, got %d", c.HPAMaxCap)
	}
	if c.HPABurstFactor <= 0 {
		return fmt.Errorf("config: HPABurstFactor must be > 0, got %v", c.HPABurstFactor)
	}

	if c.CPUBufferFactor < 1 {
		return fmt.Errorf("config: CPUBufferFactor must be >= 1, got %v", c.CPUBufferFactor)
	}
	if c.CostLowPerCoreMonth < 0 || c.CostHighPerCoreMonth < 0 {
		return fmt.Errorf("config: cost rates must be >= 0")
	}
	if c.CostHighPerCoreMonth < c.CostLowPerCoreMonth {
		return fmt.Errorf("config: CostHighPerCoreMonth must be >= CostLowPerCoreMonth")
	}

	if c.ListenPort < 1 || c.ListenPort > 65535 {
		return fmt.Errorf("config: ListenPort must be 1-65535, got %d", c.ListenPort)
	}

	return nil
}
