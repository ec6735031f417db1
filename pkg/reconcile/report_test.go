package reconcile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAggregate tests the behavior of Aggregate when merging group results.
//
// It verifies:
//   - Runtime decisions precede development decisions
//   - Counters sum across both groups
//   - HasUpdates reflects the presence of any decision
func TestAggregate(t *testing.T) {
	runtime := GroupResult{
		Group: Runtime,
		Decisions: []Decision{
			{Name: "a", OldConstraint: "^1.0.0", NewConstraint: "^2.0.0", Group: Runtime},
		},
		Examined: 3,
	}
	dev := GroupResult{
		Group: Development,
		Decisions: []Decision{
			{Name: "b", OldConstraint: "~1.0.0", NewConstraint: "~1.1.0", Group: Development},
		},
		Warnings: []Warning{{Package: "c", Err: errors.New("boom")}},
		Examined: 2,
	}

	report := Aggregate(runtime, dev)
	require.Len(t, report.Updates, 2)
	assert.Equal(t, "a", report.Updates[0].Name)
	assert.Equal(t, "b", report.Updates[1].Name)
	assert.Equal(t, 5, report.Examined)
	assert.Equal(t, 1, report.Failed)
	assert.True(t, report.HasUpdates())

	t.Run("empty report", func(t *testing.T) {
		empty := Aggregate(GroupResult{Group: Runtime}, GroupResult{Group: Development})
		assert.False(t, empty.HasUpdates())
		assert.Zero(t, empty.Examined)
	})
}

// TestUpdatesFor tests the per-group filtering of report decisions.
//
// It verifies:
//   - Only decisions of the requested group are returned, in report order
func TestUpdatesFor(t *testing.T) {
	report := Report{Updates: []Decision{
		{Name: "a", Group: Runtime},
		{Name: "b", Group: Development},
		{Name: "c", Group: Runtime},
	}}

	runtime := report.UpdatesFor(Runtime)
	require.Len(t, runtime, 2)
	assert.Equal(t, "a", runtime[0].Name)
	assert.Equal(t, "c", runtime[1].Name)

	dev := report.UpdatesFor(Development)
	require.Len(t, dev, 1)
	assert.Equal(t, "b", dev[0].Name)
}

// TestApply tests the behavior of Apply in apply mode.
//
// It verifies:
//   - Only decided keys are overwritten
//   - Undecided entries keep their values and positions
//   - Decisions for packages absent from the mapping are skipped
func TestApply(t *testing.T) {
	deps := depsMap("left-pad", "^1.0.0", "react", "~17.0.0", "lodash", "4.17.21")

	applied := Apply(deps, []Decision{
		{Name: "left-pad", NewConstraint: "^1.3.0", Group: Runtime},
		{Name: "ghost", NewConstraint: "^9.9.9", Group: Runtime},
	})
	assert.Equal(t, 1, applied)

	val, _ := deps.Get("left-pad")
	assert.Equal(t, "^1.3.0", val)
	val, _ = deps.Get("react")
	assert.Equal(t, "~17.0.0", val)
	val, _ = deps.Get("lodash")
	assert.Equal(t, "4.17.21", val)

	_, exists := deps.Get("ghost")
	assert.False(t, exists)
	assert.Equal(t, []string{"left-pad", "react", "lodash"}, deps.Keys())
}

// TestWarningFormatting tests the user-facing warning strings.
//
// It verifies:
//   - String includes the package name and cause
//   - Reason falls back to "error" for untyped failures
func TestWarningFormatting(t *testing.T) {
	warning := Warning{Package: "left-pad", Err: errors.New("no route to host")}
	assert.Equal(t, "failed to fetch left-pad: no route to host", warning.String())
	assert.Equal(t, "error", warning.Reason())
}
