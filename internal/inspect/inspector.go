// Package inspect observes the live cluster pieces a capacity plan
// consumes: nodes, pods, and HPAs. The calculator never imports this
// package; callers merge observed values into a SizingInput themselves.
package inspect

import (
	"context"
	"log/slog"
	"time"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	metricsv1beta1 "k8s.io/metrics/pkg/apis/metrics/v1beta1"
	metricsv1beta1client "k8s.io/metrics/pkg/client/clientset/versioned/typed/metrics/v1beta1"

	"github.com/kubeplan/kubeplan/internal/convert"
	kperrors "github.com/kubeplan/kubeplan/internal/errors"
	"github.com/kubeplan/kubeplan/internal/observability"
	"github.com/kubeplan/kubeplan/pkg/model"
)

// Inspector is the narrow cluster-observation surface a planner needs.
type Inspector interface {
	CurrentPods(ctx context.Context, namespace, selector string) (int, error)
	NodeCapacity(ctx context.Context) (model.ClusterSummary, error)
	HPAs(ctx context.Context, namespace string) ([]model.HPAStatus, error)
	Snapshot(ctx context.Context, namespace, selector string) (*model.ClusterState, error)
}

// NodeUsageLister abstracts the metrics-server node API for testability.
type NodeUsageLister interface {
	ListNodeMetrics(ctx context.Context) ([]metricsv1beta1.NodeMetrics, error)
}

// nodeUsageClient wraps the real metrics client to implement NodeUsageLister.
type nodeUsageClient struct {
	client metricsv1beta1client.MetricsV1beta1Interface
}

func (c *nodeUsageClient) ListNodeMetrics(ctx context.Context) ([]metricsv1beta1.NodeMetrics, error) {
	list, err := c.client.NodeMetricses().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, kperrors.Wrap(kperrors.ErrMetricsUnavailable, "failed to list node metrics", err)
	}
	return list.Items, nil
}

// ClusterInspector implements Inspector on a Kubernetes client.
type ClusterInspector struct {
	client  kubernetes.Interface
	usage   NodeUsageLister
	metrics *observability.Metrics
}

// New creates a ClusterInspector. usage may be nil when no metrics-server
// is available; node usage is then left off the snapshot.
func New(client kubernetes.Interface, usage NodeUsageLister, m *observability.Metrics) *ClusterInspector {
	return &ClusterInspector{client: client, usage: usage, metrics: m}
}

// NewWithMetricsClient creates a ClusterInspector backed by a real
// metrics-server client.
func NewWithMetricsClient(client kubernetes.Interface, mc metricsv1beta1client.MetricsV1beta1Interface, m *observability.Metrics) *ClusterInspector {
	return New(client, &nodeUsageClient{client: mc}, m)
}

// CurrentPods counts running pods in the namespace matching the label
// selector. Empty namespace means all namespaces.
func (c *ClusterInspector) CurrentPods(ctx context.Context, namespace, selector string) (int, error) {
	pods, err := c.listPods(ctx, namespace, selector)
	if err != nil {
		return 0, err
	}
	count := 0
	for i := range pods {
		if convert.PodRunning(&pods[i]) {
			count++
		}
	}
	return count, nil
}

// NodeCapacity lists nodes and returns the aggregated summary.
func (c *ClusterInspector) NodeCapacity(ctx context.Context) (model.ClusterSummary, error) {
	defer c.observe(time.Now())

	nodes, err := c.client.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		c.metrics.InspectErrors.Inc()
		return model.ClusterSummary{}, kperrors.Wrap(kperrors.ErrClusterUnreachable, "failed to list nodes", err)
	}

	state := model.ClusterState{Nodes: make([]model.NodeCapacity, 0, len(nodes.Items))}
	for i := range nodes.Items {
		state.Nodes = append(state.Nodes, convert.NodeToCapacity(&nodes.Items[i]))
	}
	return state.Summarize(), nil
}

// HPAs lists HorizontalPodAutoscalers in the namespace (all namespaces
// when empty).
func (c *ClusterInspector) HPAs(ctx context.Context, namespace string) ([]model.HPAStatus, error) {
	list, err := c.client.AutoscalingV2().HorizontalPodAutoscalers(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		c.metrics.InspectErrors.Inc()
		return nil, kperrors.Wrap(kperrors.ErrClusterUnreachable, "failed to list hpas", err)
	}
	out := make([]model.HPAStatus, 0, len(list.Items))
	for i := range list.Items {
		out = append(out, convert.HPAToStatus(&list.Items[i]))
	}
	return out, nil
}

// Snapshot captures nodes, matching pods, and HPAs in one observation,
// merging live node usage when a metrics-server is reachable.
func (c *ClusterInspector) Snapshot(ctx context.Context, namespace, selector string) (*model.ClusterState, error) {
	defer c.observe(time.Now())

	nodes, err := c.client.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		c.metrics.InspectErrors.Inc()
		return nil, kperrors.Wrap(kperrors.ErrClusterUnreachable, "failed to list nodes", err)
	}
	pods, err := c.listPods(ctx, namespace, selector)
	if err != nil {
		return nil, err
	}
	hpas, err := c.HPAs(ctx, namespace)
	if err != nil {
		return nil, err
	}

	state := &model.ClusterState{
		Nodes:     make([]model.NodeCapacity, 0, len(nodes.Items)),
		Workloads: make([]model.Workload, 0, len(pods)),
		HPAs:      hpas,
	}
	for i := range nodes.Items {
		state.Nodes = append(state.Nodes, convert.NodeToCapacity(&nodes.Items[i]))
	}
	for i := range pods {
		state.Workloads = append(state.Workloads, convert.PodToWorkload(&pods[i]))
	}

	c.mergeNodeUsage(ctx, state)

	c.metrics.ClusterNodes.Set(float64(len(state.Nodes)))
	c.metrics.ClusterWorkloads.Set(float64(len(state.Workloads)))

	return state, nil
}

func (c *ClusterInspector) listPods(ctx context.Context, namespace, selector string) ([]corev1.Pod, error) {
	list, err := c.client.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{LabelSelector: selector})
	if err != nil {
		c.metrics.InspectErrors.Inc()
		return nil, kperrors.Wrap(kperrors.ErrClusterUnreachable, "failed to list pods", err)
	}
	return list.Items, nil
}

// mergeNodeUsage attaches live usage to nodes by name. A metrics-server
// failure degrades the snapshot instead of failing it.
func (c *ClusterInspector) mergeNodeUsage(ctx context.Context, state *model.ClusterState) {
	if c.usage == nil {
		return
	}
	items, err := c.usage.ListNodeMetrics(ctx)
	if err != nil {
		slog.Warn("node usage unavailable, snapshot continues without it", "error", err)
		return
	}

	byName := make(map[string]*metricsv1beta1.NodeMetrics, len(items))
	for i := range items {
		byName[items[i].Name] = &items[i]
	}
	for i := range state.Nodes {
		nm, ok := byName[state.Nodes[i].Name]
		if !ok {
			continue
		}
		cpu := nm.Usage.Cpu().MilliValue()
		mem := nm.Usage.Memory().Value() / (1024 * 1024)
		state.Nodes[i].CPUUsageMilli = &cpu
		state.Nodes[i].MemUsageMi = &mem
	}
}

func (c *ClusterInspector) observe(start time.Time) {
	c.metrics.InspectDuration.Observe(time.Since(start).Seconds())
}
