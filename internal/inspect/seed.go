package inspect

import (
	"context"
	"fmt"

	"github.com/kubeplan/kubeplan/pkg/model"
)

// Seed fills the observable fields of a SizingInput from a live cluster:
// current running pods, per-node capacity (smallest ready schedulable
// node, the conservative choice), and Istio detection. Fields the caller
// already set explicitly are left alone.
func Seed(ctx context.Context, insp Inspector, in *model.SizingInput, namespace, selector string) error {
	state, err := insp.Snapshot(ctx, namespace, selector)
	if err != nil {
		return fmt.Errorf("failed to seed input from cluster: %w", err)
	}
	sum := state.Summarize()

	if in.CurrentPods == 0 {
		in.CurrentPods = sum.RunningPodCount
	}
	if in.NodeCPUCapacityMilli == 0 {
		in.NodeCPUCapacityMilli = sum.MinNodeCPUAllocatableMilli
	}
	if in.NodeMemCapacityMi == 0 {
		in.NodeMemCapacityMi = sum.MinNodeMemAllocatableMi
	}
	if !in.IstioEnabled && sum.IstioPodCount > 0 {
		in.IstioEnabled = true
	}

	return nil
}
