package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvalidInput(t *testing.T) {
	err := NewInvalidInput("tps_per_pod", "must be > 0")

	assert.Equal(t, "invalid input: tps_per_pod: must be > 0", err.Error())
	assert.Equal(t, ErrInvalidInput, err.Code())
}

func TestIsInvalidInput(t *testing.T) {
	err := NewInvalidInput("node_cpu_capacity_milli", "must be > 0")

	assert.True(t, IsInvalidInput(err))
	assert.True(t, IsInvalidInput(fmt.Errorf("plan failed: %w", err)), "wrapped errors should match")
	assert.False(t, IsInvalidInput(fmt.Errorf("some other error")))
	assert.False(t, IsInvalidInput(nil))
}

func TestInvalidField(t *testing.T) {
	err := fmt.Errorf("plan: %w", NewInvalidInput("period_days", "must be >= 0"))

	field, ok := InvalidField(err)
	require.True(t, ok)
	assert.Equal(t, "period_days", field)

	_, ok = InvalidField(fmt.Errorf("unrelated"))
	assert.False(t, ok)
}

func TestWrapAndCodeOf(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(ErrClusterUnreachable, "failed to list nodes", cause)

	assert.Equal(t, "failed to list nodes: connection refused", err.Error())
	assert.Equal(t, ErrClusterUnreachable, CodeOf(err))
	assert.Equal(t, ErrClusterUnreachable, CodeOf(fmt.Errorf("snapshot: %w", err)), "wrapped errors keep their code")
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, ErrInvalidInput, CodeOf(NewInvalidInput("tps_per_pod", "must be > 0")))
	assert.Equal(t, Code(""), CodeOf(fmt.Errorf("uncoded")))
}
