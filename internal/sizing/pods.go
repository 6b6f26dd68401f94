package sizing

import (
	"math"

	"github.com/kubeplan/kubeplan/internal/errors"
)

// RequiredPods returns the smallest pod count whose combined per-pod
// throughput meets the forecast TPS (ceiling division).
//
// A non-positive tpsPerPod is a configuration error, not a zero-traffic
// case, and fails instead of silently producing 0 pods.
func RequiredPods(tps, tpsPerPod float64) (int, error) {
	if tpsPerPod <= 0 {
		return 0, errors.NewInvalidInput("tps_per_pod", "must be > 0")
	}
	if tps <= 0 {
		return 0, nil
	}
	return int(math.Ceil(tps / tpsPerPod)), nil
}

// HPABounds derives autoscaler min/max replica counts from the required
// pod count.
//
// min is floored at minFloor (0 meaning no floor; some production
// policies use 3). max is ceil(min * burstFactor), clamped to maxCap when
// maxCap > 0, and never below 1.
func HPABounds(requiredPods int, burstFactor float64, minFloor, maxCap int) (int, int, error) {
	if requiredPods < 0 {
		return 0, 0, errors.NewInvalidInput("required_pods", "must be >= 0")
	}
	if burstFactor <= 0 {
		return 0, 0, errors.NewInvalidInput("hpa_burst_factor", "must be > 0")
	}

	min := requiredPods
	if minFloor > min {
		min = minFloor
	}

	max := int(math.Ceil(float64(min) * burstFactor))
	if max < 1 {
		max = 1
	}
	if maxCap > 0 && max > maxCap {
		max = maxCap
	}

	return min, max, nil
}
