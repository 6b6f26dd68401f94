package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"k8s.io/client-go/kubernetes"
	metricsclientset "k8s.io/metrics/pkg/client/clientset/versioned"

	"github.com/kubeplan/kubeplan/internal/inspect"
	"github.com/kubeplan/kubeplan/internal/observability"
	"github.com/kubeplan/kubeplan/internal/render"
)

type inspectOptions struct {
	namespace string
	selector  string
	output    string
}

func newInspectCmd() *cobra.Command {
	opts := inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Snapshot cluster capacity, workloads, and HPAs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.namespace, "namespace", "", "namespace to inspect (empty = all namespaces)")
	f.StringVar(&opts.selector, "selector", "", "label selector for pods")
	f.StringVar(&opts.output, "output", render.FormatText, "output format (text, json, csv)")

	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	restCfg, err := buildKubeConfig()
	if err != nil {
		return fmt.Errorf("building kubernetes config: %w", err)
	}
	kubeClient, err := kubernetes.NewForConfig(restCfg)
	if err != nil {
		return fmt.Errorf("creating kubernetes client: %w", err)
	}
	metricsClient, err := metricsclientset.NewForConfig(restCfg)
	if err != nil {
		return fmt.Errorf("creating metrics client: %w", err)
	}

	insp := inspect.NewWithMetricsClient(kubeClient, metricsClient.MetricsV1beta1(), observability.NewMetrics())
	state, err := insp.Snapshot(cmd.Context(), opts.namespace, opts.selector)
	if err != nil {
		return err
	}

	return render.State(os.Stdout, state, opts.output)
}
