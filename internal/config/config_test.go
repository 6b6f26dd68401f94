package config

import (
	"os"
	"testing"
)

// clearEnv unsets all KUBEPLAN_ env vars before a test.
func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"KUBEPLAN_POD_CPU_REQUEST_MILLI",
		"KUBEPLAN_POD_CPU_LIMIT_MILLI",
		"KUBEPLAN_POD_MEM_REQUEST_MI",
		"KUBEPLAN_POD_MEM_LIMIT_MI",
		"KUBEPLAN_ISTIO_CPU_REQUEST_MILLI",
		"KUBEPLAN_ISTIO_CPU_LIMIT_MILLI",
		"KUBEPLAN_ISTIO_MEM_REQUEST_MI",
		"KUBEPLAN_ISTIO_MEM_LIMIT_MI",
		"KUBEPLAN_HPA_MIN_FLOOR",
		"KUBEPLAN_HPA_MAX_CAP",
		"KUBEPLAN_HPA_BURST_FACTOR",
		"KUBEPLAN_CPU_BUFFER_FACTOR",
		"KUBEPLAN_COST_LOW_PER_CORE_MONTH",
		"KUBEPLAN_COST_HIGH_PER_CORE_MONTH",
		"KUBEPLAN_LISTEN_PORT",
		"KUBEPLAN_DEBUG_ENDPOINTS",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.PodCPURequestMilli != 100 {
		t.Errorf("PodCPURequestMilli = %d, want 100", cfg.PodCPURequestMilli)
	}
	if cfg.PodMemRequestMi != 2000 {
		t.Errorf("PodMemRequestMi = %d, want 2000", cfg.PodMemRequestMi)
	}
	if cfg.IstioCPURequestMilli != 150 {
		t.Errorf("IstioCPURequestMilli = %d, want 150", cfg.IstioCPURequestMilli)
	}
	if cfg.HPAMinFloor != 0 {
		t.Errorf("HPAMinFloor = %d, want 0", cfg.HPAMinFloor)
	}
	if cfg.HPAMaxCap != 64 {
		t.Errorf("HPAMaxCap = %d, want 64", cfg.HPAMaxCap)
	}
	if cfg.HPABurstFactor != 2.0 {
		t.Errorf("HPABurstFactor = %v, want 2.0", cfg.HPABurstFactor)
	}
	if cfg.CPUBufferFactor != 1.3 {
		t.Errorf("CPUBufferFactor = %v, want 1.3", cfg.CPUBufferFactor)
	}
	if cfg.ListenPort != 8080 {
		t.Errorf("ListenPort = %d, want 8080", cfg.ListenPort)
	}
	if cfg.DebugEndpoints {
		t.Error("DebugEndpoints should default to false")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("KUBEPLAN_POD_MEM_LIMIT_MI", "4000")
	t.Setenv("KUBEPLAN_HPA_MIN_FLOOR", "3")
	t.Setenv("KUBEPLAN_HPA_BURST_FACTOR", "1.5")
	t.Setenv("KUBEPLAN_DEBUG_ENDPOINTS", "true")

	cfg := Load()

	if cfg.PodMemLimitMi != 4000 {
		t.Errorf("PodMemLimitMi = %d, want 4000", cfg.PodMemLimitMi)
	}
	if cfg.HPAMinFloor != 3 {
		t.Errorf("HPAMinFloor = %d, want 3", cfg.HPAMinFloor)
	}
	if cfg.HPABurstFactor != 1.5 {
		t.Errorf("HPABurstFactor = %v, want 1.5", cfg.HPABurstFactor)
	}
	if !cfg.DebugEndpoints {
		t.Error("DebugEndpoints should be true")
	}
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("KUBEPLAN_LISTEN_PORT", "not-a-number")
	t.Setenv("KUBEPLAN_CPU_BUFFER_FACTOR", "lots")

	cfg := Load()

	if cfg.ListenPort != 8080 {
		t.Errorf("ListenPort = %d, want default 8080", cfg.ListenPort)
	}
	if cfg.CPUBufferFactor != 1.3 {
		t.Errorf("CPUBufferFactor = %v, want default 1.3", cfg.CPUBufferFactor)
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"zero cpu request", func(c *Config) { c.PodCPURequestMilli = 0 }, true},
		{"limit below request", func(c *Config) { c.PodCPULimitMilli = 50 }, true},
		{"zero mem request", func(c *Config) { c.PodMemRequestMi = 0 }, true},
		{"negative istio overhead", func(c *Config) { c.IstioCPURequestMilli = -1 }, true},
		{"negative hpa floor", func(c *Config) { c.HPAMinFloor = -1 }, true},
		{"zero burst factor", func(c *Config) { c.HPABurstFactor = 0 }, true},
		{"buffer below one", func(c *Config) { c.CPUBufferFactor = 0.9 }, true},
		{"high rate below low rate", func(c *Config) { c.CostHighPerCoreMonth = 1 }, true},
		{"port out of range", func(c *Config) { c.ListenPort = 0 }, true},
		{"uncapped hpa max is valid", func(c *Config) { c.HPAMaxCap = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPolicy(t *testing.T) {
	clearEnv(t)
	t.Setenv("KUBEPLAN_HPA_MIN_FLOOR", "3")

	p := Load().Policy()

	if p.PodSpec.CPURequestMilli != 100 {
		t.Errorf("PodSpec.CPURequestMilli = %d, want 100", p.PodSpec.CPURequestMilli)
	}
	if p.SidecarOverhead.CPURequestMilli != 150 {
		t.Errorf("SidecarOverhead.CPURequestMilli = %d, want 150", p.SidecarOverhead.CPURequestMilli)
	}
	if p.HPAMinFloor != 3 {
		t.Errorf("HPAMinFloor = %d, want 3", p.HPAMinFloor)
	}
}
