package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"k8s.io/client-go/kubernetes"
	metricsclientset "k8s.io/metrics/pkg/client/clientset/versioned"

	"github.com/kubeplan/kubeplan/internal/config"
	"github.com/kubeplan/kubeplan/internal/inspect"
	"github.com/kubeplan/kubeplan/internal/observability"
	"github.com/kubeplan/kubeplan/internal/render"
	"github.com/kubeplan/kubeplan/internal/sizing"
	"github.com/kubeplan/kubeplan/pkg/model"
)

type planOptions struct {
	tps               float64
	totalTransactions float64
	periodDays        float64
	window            string
	tpsPerPod         float64
	currentPods       int
	namespacePodLimit int
	istio             bool
	nodeCPUMilli      int64
	nodeMemMi         int64
	burstFactor       float64
	hpaMinFloor       int
	reportWindow      string
	output            string

	fromCluster bool
	namespace   string
	selector    string
}

func newPlanCmd() *cobra.Command {
	opts := planOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute a capacity plan from a traffic forecast",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlan(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.tps, "tps", 0, "forecast transactions per second")
	f.Float64Var(&opts.totalTransactions, "total-transactions", 0, "forecast total transactions over the period (alternative to --tps)")
	f.Float64Var(&opts.periodDays, "period-days", 1, "days the total-transactions forecast covers")
	f.StringVar(&opts.window, "window", string(model.WindowTwentyFourBySeven), "traffic window for TPS derivation (24x7 or 8h-day)")
	f.Float64Var(&opts.tpsPerPod, "tps-per-pod", 0, "sustainable TPS per pod")
	f.IntVar(&opts.currentPods, "current-pods", 0, "pods currently running for the workload")
	f.IntVar(&opts.namespacePodLimit, "namespace-pod-limit", 0, "namespace pod quota (0 = unlimited)")
	f.BoolVar(&opts.istio, "istio", false, "account for Istio sidecar overhead per pod")
	f.Int64Var(&opts.nodeCPUMilli, "node-cpu-milli", 0, "allocatable CPU per node in millicores")
	f.Int64Var(&opts.nodeMemMi, "node-mem-mi", 0, "allocatable memory per node in Mi")
	f.Float64Var(&opts.burstFactor, "burst-factor", 0, "HPA max = ceil(min * burst-factor); 0 uses the policy default")
	f.IntVar(&opts.hpaMinFloor, "hpa-min-floor", 0, "minimum HPA replica floor; 0 uses the policy default")
	f.StringVar(&opts.reportWindow, "report-window", "", "projection window to highlight in text output (1m, 1h, 8h)")
	f.StringVar(&opts.output, "output", render.FormatText, "output format (text, json, csv)")
	f.BoolVar(&opts.fromCluster, "from-cluster", false, "seed unset inputs from the live cluster")
	f.StringVar(&opts.namespace, "namespace", "", "namespace to inspect when seeding from the cluster")
	f.StringVar(&opts.selector, "selector", "", "label selector for the workload's pods when seeding")

	return cmd
}

func runPlan(cmd *cobra.Command, opts planOptions) error {
	in := model.SizingInput{
		ForecastMode:      model.ForecastDirectTPS,
		AdditionalTPS:     opts.tps,
		DerivationWindow:  model.DerivationWindow(opts.window),
		TPSPerPod:         opts.tpsPerPod,
		CurrentPods:       opts.currentPods,
		NamespacePodLimit: opts.namespacePodLimit,
		IstioEnabled:      opts.istio,

		NodeCPUCapacityMilli: opts.nodeCPUMilli,
		NodeMemCapacityMi:    opts.nodeMemMi,

		HPABurstFactor: opts.burstFactor,
		HPAMinFloor:    opts.hpaMinFloor,

		ReportWindow: model.ReportWindow(opts.reportWindow),
	}
	if opts.totalTransactions > 0 {
		in.ForecastMode = model.ForecastTotalTransactions
		in.TotalTransactions = opts.totalTransactions
		in.PeriodDays = opts.periodDays
	}

	if opts.fromCluster {
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
		if err := inspect.Seed(cmd.Context(), insp, &in, opts.namespace, opts.selector); err != nil {
			return err
		}
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	sizer := sizing.New(cfg.Policy())
	report, err := sizer.Plan(in)
	if err != nil {
		return err
	}

	return render.Report(os.Stdout, report, opts.output)
}
