package convert

import (
	autoscalingv2 "k8s.io/api/autoscaling/v2"

	"github.com/kubeplan/kubeplan/pkg/model"
)

// HPAToStatus converts a HorizontalPodAutoscaler (v2) to a model.HPAStatus.
func HPAToStatus(hpa *autoscalingv2.HorizontalPodAutoscaler) model.HPAStatus {
	return model.HPAStatus{
		Name:      hpa.Name,
		Namespace: hpa.Namespace,

		TargetKind: hpa.Spec.ScaleTargetRef.Kind,
		TargetName: hpa.Spec.ScaleTargetRef.Name,

		MinReplicas:     hpa.Spec.MinReplicas,
		MaxReplicas:     hpa.Spec.MaxReplicas,
		CurrentReplicas: hpa.Status.CurrentReplicas,
		DesiredReplicas: hpa.Status.DesiredReplicas,
	}
}
