package inspect

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	autoscalingv2 "k8s.io/api/autoscaling/v2"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
	metricsv1beta1 "k8s.io/metrics/pkg/apis/metrics/v1beta1"

	"github.com/kubeplan/kubeplan/internal/observability"
)

// stubUsage implements NodeUsageLister with canned node metrics.
type stubUsage struct {
	items []metricsv1beta1.NodeMetrics
	err   error
}

func (s *stubUsage) ListNodeMetrics(context.Context) ([]metricsv1beta1.NodeMetrics, error) {
	return s.items, s.err
}

func testNode(name, cpu, mem string, ready bool) *corev1.Node {
	status := corev1.ConditionFalse
	if ready {
		status = corev1.ConditionTrue
	}
	return &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: name},
		Status: corev1.NodeStatus{
			Allocatable: corev1.ResourceList{
				corev1.ResourceCPU:    resource.MustParse(cpu),
				corev1.ResourceMemory: resource.MustParse(mem),
			},
			Conditions: []corev1.NodeCondition{
				{Type: corev1.NodeReady, Status: status},
			},
		},
	}
}

func testPod(name, namespace string, labels map[string]string, phase corev1.PodPhase, sidecar bool) *corev1.Pod {
	containers := []corev1.Container{{Name: "app"}}
	if sidecar {
		containers = append(containers, corev1.Container{Name: "istio-proxy"})
	}
	return &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace, Labels: labels},
		Spec:       corev1.PodSpec{Containers: containers},
		Status:     corev1.PodStatus{Phase: phase},
	}
}

func TestClusterInspector_CurrentPods(t *testing.T) {
	appLabels := map[string]string{"app": "api"}
	client := fake.NewSimpleClientset(
		testPod("api-1", "payments", appLabels, corev1.PodRunning, false),
		testPod("api-2", "payments", appLabels, corev1.PodRunning, false),
		testPod("api-3", "payments", appLabels, corev1.PodPending, false),
		testPod("worker-1", "payments", map[string]string{"app": "worker"}, corev1.PodRunning, false),
		testPod("api-other-ns", "staging", appLabels, corev1.PodRunning, false),
	)
	insp := New(client, nil, observability.NewMetrics())

	count, err := insp.CurrentPods(context.Background(), "payments", "app=api")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "only running pods matching the selector count")
}

func TestClusterInspector_NodeCapacity(t *testing.T) {
	client := fake.NewSimpleClientset(
		testNode("n1", "4000m", "16Gi", true),
		testNode("n2", "2000m", "8Gi", true),
		testNode("n3", "8000m", "32Gi", false),
	)
	insp := New(client, nil, observability.NewMetrics())

	sum, err := insp.NodeCapacity(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, sum.NodeCount)
	assert.Equal(t, 2, sum.ReadyNodeCount)
	assert.Equal(t, int64(2000), sum.MinNodeCPUAllocatableMilli)
	assert.Equal(t, int64(8*1024), sum.MinNodeMemAllocatableMi)
}

func TestClusterInspector_HPAs(t *testing.T) {
	client := fake.NewSimpleClientset(&autoscalingv2.HorizontalPodAutoscaler{
		ObjectMeta: metav1.ObjectMeta{Name: "api-hpa", Namespace: "payments"},
		Spec: autoscalingv2.HorizontalPodAutoscalerSpec{
			ScaleTargetRef: autoscalingv2.CrossVersionObjectReference{Kind: "Deployment", Name: "api"},
			MaxReplicas:    6,
		},
	})
	insp := New(client, nil, observability.NewMetrics())

	hpas, err := insp.HPAs(context.Background(), "payments")
	require.NoError(t, err)
	require.Len(t, hpas, 1)
	assert.Equal(t, "api-hpa", hpas[0].Name)
	assert.Equal(t, int32(6), hpas[0].MaxReplicas)
}

func TestClusterInspector_Snapshot(t *testing.T) {
	client := fake.NewSimpleClientset(
		testNode("n1", "4000m", "16Gi", true),
		testPod("api-1", "payments", map[string]string{"app": "api"}, corev1.PodRunning, true),
	)
	usage := &stubUsage{items: []metricsv1beta1.NodeMetrics{{
		ObjectMeta: metav1.ObjectMeta{Name: "n1"},
		Usage: corev1.ResourceList{
			corev1.ResourceCPU:    resource.MustParse("1500m"),
			corev1.ResourceMemory: resource.MustParse("4Gi"),
		},
	}}}
	insp := New(client, usage, observability.NewMetrics())

	state, err := insp.Snapshot(context.Background(), "payments", "app=api")
	require.NoError(t, err)

	require.Len(t, state.Nodes, 1)
	require.Len(t, state.Workloads, 1)
	assert.True(t, state.Workloads[0].HasIstioSidecar)

	require.NotNil(t, state.Nodes[0].CPUUsageMilli)
	assert.Equal(t, int64(1500), *state.Nodes[0].CPUUsageMilli)
	require.NotNil(t, state.Nodes[0].MemUsageMi)
	assert.Equal(t, int64(4*1024), *state.Nodes[0].MemUsageMi)
}

func TestClusterInspector_Snapshot_UsageFailureIsNonFatal(t *testing.T) {
	client := fake.NewSimpleClientset(testNode("n1", "4000m", "16Gi", true))
	insp := New(client, &stubUsage{err: fmt.Errorf("metrics-server down")}, observability.NewMetrics())

	state, err := insp.Snapshot(context.Background(), "", "")
	require.NoError(t, err, "usage failure must degrade, not fail, the snapshot")
	require.Len(t, state.Nodes, 1)
	assert.Nil(t, state.Nodes[0].CPUUsageMilli)
}
