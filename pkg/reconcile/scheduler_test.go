package reconcile

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/iancoleman/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/depsync/pkg/registry"
)

// fakeFetcher is a VersionFetcher backed by fixed responses, with optional
// per-call delay and in-flight accounting for concurrency assertions.
type fakeFetcher struct {
	versions map[string]string
	errs     map[string]error
	delay    time.Duration

	mu          sync.Mutex
	calls       int
	inFlight    int
	maxInFlight int
}

func (f *fakeFetcher) LatestVersion(ctx context.Context, name string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	if err, ok := f.errs[name]; ok {
		return "", err
	}
	return f.versions[name], nil
}

// depsMap builds an ordered dependency mapping from alternating name/constraint pairs.
func depsMap(pairs ...string) *orderedmap.OrderedMap {
	deps := orderedmap.New()
	for i := 0; i+1 < len(pairs); i += 2 {
		deps.Set(pairs[i], pairs[i+1])
	}
	return deps
}

// TestReconcile tests the behavior of Reconcile for the core decision rules.
//
// It verifies:
//   - No decision is produced when latest equals the declared base
//   - Exactly one decision is produced per differing package
//   - New constraints keep the original range marker
//   - A textually older registry version still produces a decision
func TestReconcile(t *testing.T) {
	t.Run("up to date", func(t *testing.T) {
		fetcher := &fakeFetcher{versions: map[string]string{"react": "18.2.0"}}
		r := &Reconciler{Fetcher: fetcher}
		result := r.Reconcile(context.Background(), depsMap("react", "^18.2.0"), Runtime)
		assert.Empty(t, result.Decisions)
		assert.Empty(t, result.Warnings)
		assert.Equal(t, 1, result.Examined)
	})

	t.Run("update available", func(t *testing.T) {
		fetcher := &fakeFetcher{versions: map[string]string{"left-pad": "1.3.0"}}
		r := &Reconciler{Fetcher: fetcher}
		result := r.Reconcile(context.Background(), depsMap("left-pad", "^1.0.0"), Runtime)
		require.Len(t, result.Decisions, 1)
		decision := result.Decisions[0]
		assert.Equal(t, "left-pad", decision.Name)
		assert.Equal(t, "^1.0.0", decision.OldConstraint)
		assert.Equal(t, "^1.3.0", decision.NewConstraint)
		assert.Equal(t, Runtime, decision.Group)
	})

	t.Run("tilde marker preserved", func(t *testing.T) {
		fetcher := &fakeFetcher{versions: map[string]string{"chalk": "5.4.0"}}
		r := &Reconciler{Fetcher: fetcher}
		result := r.Reconcile(context.Background(), depsMap("chalk", "~5.3.0"), Development)
		require.Len(t, result.Decisions, 1)
		assert.Equal(t, "~5.4.0", result.Decisions[0].NewConstraint)
		assert.Equal(t, Development, result.Decisions[0].Group)
	})

	t.Run("registry behind local", func(t *testing.T) {
		// String inequality, not semver ordering: a locally-ahead version is
		// still reported against the older registry version.
		fetcher := &fakeFetcher{versions: map[string]string{"beta-pkg": "1.0.0"}}
		r := &Reconciler{Fetcher: fetcher}
		result := r.Reconcile(context.Background(), depsMap("beta-pkg", "^2.0.0"), Runtime)
		require.Len(t, result.Decisions, 1)
		assert.Equal(t, "^1.0.0", result.Decisions[0].NewConstraint)
	})

	t.Run("empty group", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		r := &Reconciler{Fetcher: fetcher}
		result := r.Reconcile(context.Background(), orderedmap.New(), Development)
		assert.Empty(t, result.Decisions)
		assert.Zero(t, result.Examined)
		assert.Zero(t, fetcher.calls)
	})
}

// TestReconcileFailureIsolation tests that one failing lookup never affects the rest.
//
// It verifies:
//   - A failing package yields a warning and no decision
//   - Every other package is still evaluated normally
//   - Untyped fetcher errors are wrapped into transport-class warnings
func TestReconcileFailureIsolation(t *testing.T) {
	fetcher := &fakeFetcher{
		versions: map[string]string{"a": "2.0.0", "c": "3.0.0"},
		errs: map[string]error{
			"b": &registry.FetchError{Package: "b", Kind: registry.FetchTimeout},
		},
	}
	r := &Reconciler{Fetcher: fetcher}
	result := r.Reconcile(context.Background(), depsMap("a", "^1.0.0", "b", "^1.0.0", "c", "^1.0.0"), Runtime)

	require.Len(t, result.Decisions, 2)
	assert.Equal(t, "a", result.Decisions[0].Name)
	assert.Equal(t, "c", result.Decisions[1].Name)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "b", result.Warnings[0].Package)
	assert.Equal(t, "timeout", result.Warnings[0].Reason())
	assert.Equal(t, 3, result.Examined)
}

// TestReconcileDeterministicOrder tests the output ordering guarantee.
//
// It verifies:
//   - Decisions follow the input mapping's insertion order even though
//     lookups complete in arbitrary order
//   - Repeated runs produce identical sequences
func TestReconcileDeterministicOrder(t *testing.T) {
	versions := map[string]string{}
	pairs := []string{}
	names := []string{"zeta", "alpha", "mmm", "beta", "qqq", "aaa"}
	for _, name := range names {
		versions[name] = "9.9.9"
		pairs = append(pairs, name, "^1.0.0")
	}
	fetcher := &fakeFetcher{versions: versions, delay: 5 * time.Millisecond}
	r := &Reconciler{Fetcher: fetcher}

	for run := 0; run < 3; run++ {
		result := r.Reconcile(context.Background(), depsMap(pairs...), Runtime)
		require.Len(t, result.Decisions, len(names))
		for i, name := range names {
			assert.Equal(t, name, result.Decisions[i].Name, "run %d position %d", run, i)
		}
	}
}

// TestReconcileConcurrency tests the worker bounding and progress hook.
//
// It verifies:
//   - A positive Concurrency caps simultaneous in-flight lookups
//   - Zero Concurrency fans out without an artificial bound
//   - OnLookup fires exactly once per entry
func TestReconcileConcurrency(t *testing.T) {
	buildDeps := func(n int) *orderedmap.OrderedMap {
		deps := orderedmap.New()
		for i := 0; i < n; i++ {
			deps.Set(string(rune('a'+i)), "^1.0.0")
		}
		return deps
	}

	t.Run("bounded", func(t *testing.T) {
		fetcher := &fakeFetcher{versions: map[string]string{}, delay: 10 * time.Millisecond}
		r := &Reconciler{Fetcher: fetcher, Concurrency: 2}
		r.Reconcile(context.Background(), buildDeps(8), Runtime)
		assert.LessOrEqual(t, fetcher.maxInFlight, 2)
		assert.Equal(t, 8, fetcher.calls)
	})

	t.Run("progress hook", func(t *testing.T) {
		var hooks int64
		fetcher := &fakeFetcher{versions: map[string]string{}}
		r := &Reconciler{
			Fetcher:  fetcher,
			OnLookup: func() { atomic.AddInt64(&hooks, 1) },
		}
		r.Reconcile(context.Background(), buildDeps(5), Runtime)
		assert.Equal(t, int64(5), atomic.LoadInt64(&hooks))
	})
}

// TestReconcileDoesNotMutateInput tests the read-only contract on the input mapping.
//
// It verifies:
//   - The dependency mapping holds its original constraints after reconciliation
func TestReconcileDoesNotMutateInput(t *testing.T) {
	deps := depsMap("left-pad", "^1.0.0", "react", "~17.0.0")
	fetcher := &fakeFetcher{versions: map[string]string{"left-pad": "1.3.0", "react": "18.0.0"}}
	r := &Reconciler{Fetcher: fetcher}
	r.Reconcile(context.Background(), deps, Runtime)

	val, _ := deps.Get("left-pad")
	assert.Equal(t, "^1.0.0", val)
	val, _ = deps.Get("react")
	assert.Equal(t, "~17.0.0", val)
}
