// Package render writes sizing reports and cluster snapshots as human
// text, JSON, or CSV. It never computes anything; formatting only.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/kubeplan/kubeplan/pkg/model"
)

// Formats accepted by Report and State.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Report writes a SizingReport in the given format.
func Report(w io.Writer, r *model.SizingReport, format string) error {
	switch format {
	case FormatText, "":
		return reportText(w, r)
	case FormatJSON:
		return writeJSON(w, r)
	case FormatCSV:
		return reportCSV(w, r)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// State writes a ClusterState in the given format.
func State(w io.Writer, s *model.ClusterState, format string) error {
	switch format {
	case FormatText, "":
		return stateText(w, s)
	case FormatJSON:
		return writeJSON(w, s)
	case FormatCSV:
		return stateCSV(w, s)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func reportText(w io.Writer, r *model.SizingReport) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "CAPACITY PLAN")
	fmt.Fprintf(tw, "Forecast TPS:\t%.2f\n", r.ForecastTPS)
	fmt.Fprintf(tw, "Required pods:\t%d\n", r.RequiredPods)
	fmt.Fprintf(tw, "Extra pods needed:\t%d\n", r.ExtraPodsNeeded)
	fmt.Fprintf(tw, "Fleet capacity TPS:\t%.2f\n", r.TotalCapacityTPS)
	fmt.Fprintf(tw, "Utilization:\t%.1f%%\n", r.UtilizationPercent)
	if p, ok := r.ProjectionFor(r.ReportWindow); ok {
		fmt.Fprintf(tw, "Transactions per %s:\t%.0f\n", p.Window, p.Transactions)
	}

	fmt.Fprintln(tw, "\nHPA")
	fmt.Fprintf(tw, "Min replicas:\t%d\n", r.HPAMin)
	fmt.Fprintf(tw, "Max replicas:\t%d\n", r.HPAMax)
	if r.NamespaceLimitExceeded {
		fmt.Fprintln(tw, "Warning:\tmax clamped by namespace pod limit")
	}

	fmt.Fprintln(tw, "\nRESOURCES")
	fmt.Fprintf(tw, "Per-pod CPU req/lim:\t%dm / %dm\n", r.PerPodCPURequestMilli, r.PerPodCPULimitMilli)
	fmt.Fprintf(tw, "Per-pod mem req/lim:\t%dMi / %dMi\n", r.PerPodMemRequestMi, r.PerPodMemLimitMi)
	fmt.Fprintf(tw, "Total CPU requests:\t%.3f cores\n", r.TotalCPURequestCores)
	fmt.Fprintf(tw, "Buffered CPU:\t%.3f cores\n", r.BufferedCPURequestCores)
	fmt.Fprintf(tw, "Total mem requests:\t%dMi\n", r.TotalMemRequestMi)

	fmt.Fprintln(tw, "\nNODES")
	fmt.Fprintf(tw, "Needed by CPU:\t%d\n", r.NodesNeededByCPU)
	fmt.Fprintf(tw, "Needed by memory:\t%d\n", r.NodesNeededByMemory)
	if r.LimitedBy != "" {
		fmt.Fprintf(tw, "Recommended:\t%d (limited by %s)\n", r.RecommendedNodes, r.LimitedBy)
	} else {
		fmt.Fprintf(tw, "Recommended:\t%d\n", r.RecommendedNodes)
	}

	fmt.Fprintln(tw, "\nCOST")
	fmt.Fprintf(tw, "Estimated monthly:\t$%.2f - $%.2f\n", r.EstimatedMonthlyCostLow, r.EstimatedMonthlyCostHigh)

	fmt.Fprintln(tw, "\nPROJECTED TRANSACTIONS")
	for _, p := range r.Projections {
		fmt.Fprintf(tw, "%s:\t%.0f\n", p.Window, p.Transactions)
	}

	return tw.Flush()
}

func reportCSV(w io.Writer, r *model.SizingReport) error {
	cw := csv.NewWriter(w)
	rows := [][]string{
		{"metric", "value"},
		{"forecast_tps", formatFloat(r.ForecastTPS)},
		{"total_capacity_tps", formatFloat(r.TotalCapacityTPS)},
		{"required_pods", strconv.Itoa(r.RequiredPods)},
		{"extra_pods_needed", strconv.Itoa(r.ExtraPodsNeeded)},
		{"utilization_percent", formatFloat(r.UtilizationPercent)},
		{"hpa_min", strconv.Itoa(r.HPAMin)},
		{"hpa_max", strconv.Itoa(r.HPAMax)},
		{"total_cpu_request_cores", formatFloat(r.TotalCPURequestCores)},
		{"buffered_cpu_request_cores", formatFloat(r.BufferedCPURequestCores)},
		{"total_mem_request_mi", strconv.FormatInt(r.TotalMemRequestMi, 10)},
		{"nodes_needed_by_cpu", strconv.Itoa(r.NodesNeededByCPU)},
		{"nodes_needed_by_memory", strconv.Itoa(r.NodesNeededByMemory)},
		{"recommended_nodes", strconv.Itoa(r.RecommendedNodes)},
		{"estimated_monthly_cost_low", formatFloat(r.EstimatedMonthlyCostLow)},
		{"estimated_monthly_cost_high", formatFloat(r.EstimatedMonthlyCostHigh)},
	}
	for _, p := range r.Projections {
		rows = append(rows, []string{"projected_" + p.Window, formatFloat(p.Transactions)})
	}
	return cw.WriteAll(rows)
}

func stateText(w io.Writer, s *model.ClusterState) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "NODE\tCPU ALLOC (m)\tMEM ALLOC (Mi)\tCPU USED (m)\tREADY")
	for i := range s.Nodes {
		n := &s.Nodes[i]
		used := "-"
		if n.CPUUsageMilli != nil {
			used = strconv.FormatInt(*n.CPUUsageMilli, 10)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%t\n",
			n.Name, n.CPUAllocatableMilli, n.MemAllocatableMi, used, n.Ready)
	}

	fmt.Fprintln(tw, "\nPOD\tNAMESPACE\tPHASE\tCPU REQ (m)\tMEM REQ (Mi)\tISTIO")
	for i := range s.Workloads {
		p := &s.Workloads[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%t\n",
			p.Name, p.Namespace, p.Phase, p.CPURequestMilli, p.MemRequestMi, p.HasIstioSidecar)
	}

	if len(s.HPAs) > 0 {
		fmt.Fprintln(tw, "\nHPA\tNAMESPACE\tTARGET\tMIN\tMAX\tCURRENT")
		for i := range s.HPAs {
			h := &s.HPAs[i]
			min := "-"
			if h.MinReplicas != nil {
				min = strconv.Itoa(int(*h.MinReplicas))
			}
			fmt.Fprintf(tw, "%s\t%s\t%s/%s\t%s\t%d\t%d\n",
				h.Name, h.Namespace, h.TargetKind, h.TargetName, min, h.MaxReplicas, h.CurrentReplicas)
		}
	}

	return tw.Flush()
}

func stateCSV(w io.Writer, s *model.ClusterState) error {
	cw := csv.NewWriter(w)
	rows := [][]string{{"kind", "namespace", "name", "cpu_milli", "mem_mi", "detail"}}
	for i := range s.Nodes {
		n := &s.Nodes[i]
		rows = append(rows, []string{
			"node", "", n.Name,
			strconv.FormatInt(n.CPUAllocatableMilli, 10),
			strconv.FormatInt(n.MemAllocatableMi, 10),
			"ready=" + strconv.FormatBool(n.Ready),
		})
	}
	for i := range s.Workloads {
		p := &s.Workloads[i]
		rows = append(rows, []string{
			"pod", p.Namespace, p.Name,
			strconv.FormatInt(p.CPURequestMilli, 10),
			strconv.FormatInt(p.MemRequestMi, 10),
			p.Phase,
		})
	}
	for i := range s.HPAs {
		h := &s.HPAs[i]
		rows = append(rows, []string{
			"hpa", h.Namespace, h.Name, "", "",
			fmt.Sprintf("max=%d current=%d", h.MaxReplicas, h.CurrentReplicas),
		})
	}
	return cw.WriteAll(rows)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
