package render

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kubeplan/kubeplan/pkg/model"
)

func sampleReport() *model.SizingReport {
	return &model.SizingReport{
		ForecastTPS:             1000,
		TotalCapacityTPS:        1200,
		RequiredPods:            3,
		ExtraPodsNeeded:         1,
		UtilizationPercent:      83.33,
		HPAMin:                  3,
		HPAMax:                  6,
		PerPodCPURequestMilli:   100,
		PerPodCPULimitMilli:     1000,
		PerPodMemRequestMi:      2000,
		PerPodMemLimitMi:        2000,
		TotalCPURequestCores:    0.3,
		BufferedCPURequestCores: 0.39,
		TotalMemRequestMi:       6000,
		NodesNeededByCPU:        1,
		NodesNeededByMemory:     1,
		RecommendedNodes:        1,
		LimitedBy:               "cpu",
		EstimatedMonthlyCostLow: 7.02,
		EstimatedMonthlyCostHigh: 11.7,
		Projections: []model.Projection{
			{Window: "1m", Seconds: 60, Transactions: 60000},
			{Window: "1h", Seconds: 3600, Transactions: 3600000},
		},
	}
}

func TestReport_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, sampleReport(), FormatText))

	out := buf.String()
	assert.Contains(t, out, "CAPACITY PLAN")
	assert.Contains(t, out, "Required pods:")
	assert.Contains(t, out, "3")
	assert.Contains(t, out, "limited by cpu")
	assert.Contains(t, out, "PROJECTED TRANSACTIONS")
}

func TestReport_TextIsTheDefault(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, sampleReport(), ""))
	assert.Contains(t, buf.String(), "CAPACITY PLAN")
}

func TestReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, sampleReport(), FormatJSON))

	var decoded model.SizingReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded.RequiredPods)
	assert.Equal(t, 6, decoded.HPAMax)
}

func TestReport_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, sampleReport(), FormatCSV))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Greater(t, len(records), 2)
	assert.Equal(t, []string{"metric", "value"}, records[0])

	byMetric := make(map[string]string, len(records))
	for _, rec := range records[1:] {
		byMetric[rec[0]] = rec[1]
	}
	assert.Equal(t, "3", byMetric["required_pods"])
	assert.Equal(t, "60000", byMetric["projected_1m"])
}

func TestReport_UnknownFormat(t *testing.T) {
	err := Report(&bytes.Buffer{}, sampleReport(), "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yaml")
}

func TestState_Text(t *testing.T) {
	cpu := int64(1500)
	state := &model.ClusterState{
		Nodes: []model.NodeCapacity{
			{Name: "n1", CPUAllocatableMilli: 4000, MemAllocatableMi: 16384, CPUUsageMilli: &cpu, Ready: true},
			{Name: "n2", CPUAllocatableMilli: 2000, MemAllocatableMi: 8192, Ready: false},
		},
		Workloads: []model.Workload{
			{Name: "api-1", Namespace: "payments", Phase: "Running", CPURequestMilli: 250, MemRequestMi: 2128, HasIstioSidecar: true},
		},
		HPAs: []model.HPAStatus{
			{Name: "api-hpa", Namespace: "payments", TargetKind: "Deployment", TargetName: "api", MaxReplicas: 6, CurrentReplicas: 4},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, State(&buf, state, FormatText))

	out := buf.String()
	assert.Contains(t, out, "n1")
	assert.Contains(t, out, "1500")
	// Node without usage renders a dash.
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "n2") {
			assert.Contains(t, line, "-")
		}
	}
	assert.Contains(t, out, "api-hpa")
	assert.Contains(t, out, "Deployment/api")
}

func TestState_CSV(t *testing.T) {
	state := &model.ClusterState{
		Nodes:     []model.NodeCapacity{{Name: "n1", CPUAllocatableMilli: 4000, MemAllocatableMi: 16384, Ready: true}},
		Workloads: []model.Workload{{Name: "api-1", Namespace: "payments", Phase: "Running"}},
	}

	var buf bytes.Buffer
	require.NoError(t, State(&buf, state, FormatCSV))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "node", records[1][0])
	assert.Equal(t, "pod", records[2][0])
}
