package core

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"debdl/internal/policies"
	"debdl/internal/types"
)

// testIndex builds an index from package name to Depends value; an empty
// value means the package has no Depends field.
func testIndex(records map[string]string) types.PackageIndex {
	index := types.PackageIndex{}
	for name, depends := range records {
		fields := map[string]string{types.FieldPackage: name}
		if depends != "" {
			fields[types.FieldDepends] = depends
		}
		index[name] = types.PackageRecord{Fields: fields}
	}
	return index
}

func TestResolveTransitiveClosure(t *testing.T) {
	index := testIndex(map[string]string{
		"A": "B, C | D",
		"B": "C",
		"C": "",
		"D": "",
	})
	resolver := NewClosureResolver(index, policies.DefaultResolutionPolicy())

	closure, err := resolver.Resolve(t.Context(), "A")
	require.NoError(t, err)

	// dependency-first insertion order, D never considered
	if diff := cmp.Diff([]string{"C", "B", "A"}, closure.Names()); diff != "" {
		t.Fatalf("unexpected closure (-want +got):\n%s", diff)
	}
	assert.False(t, closure.Contains("D"))
}

func TestResolveIsIdempotent(t *testing.T) {
	index := testIndex(map[string]string{
		"A": "B",
		"B": "",
	})
	resolver := NewClosureResolver(index, policies.DefaultResolutionPolicy())

	first, err := resolver.Resolve(t.Context(), "A")
	require.NoError(t, err)
	second, err := resolver.Resolve(t.Context(), "A")
	require.NoError(t, err)
	assert.Equal(t, first.Names(), second.Names())
}

func TestResolveRootMembership(t *testing.T) {
	index := testIndex(map[string]string{"A": ""})
	resolver := NewClosureResolver(index, policies.DefaultResolutionPolicy())

	closure, err := resolver.Resolve(t.Context(), "A")
	require.NoError(t, err)
	assert.True(t, closure.Contains("A"))

	empty, err := resolver.Resolve(t.Context(), "missing")
	require.NoError(t, err)
	assert.Zero(t, empty.Len())
}

func TestResolveCycleTerminates(t *testing.T) {
	index := testIndex(map[string]string{
		"A": "B",
		"B": "A",
	})
	resolver := NewClosureResolver(index, policies.DefaultResolutionPolicy())

	closure, err := resolver.Resolve(t.Context(), "A")
	require.NoError(t, err)
	assert.True(t, closure.Contains("A"))
	assert.True(t, closure.Contains("B"))
	assert.Equal(t, 2, closure.Len())
}

func TestResolveSelfCycle(t *testing.T) {
	index := testIndex(map[string]string{"A": "A"})
	resolver := NewClosureResolver(index, policies.DefaultResolutionPolicy())

	closure, err := resolver.Resolve(t.Context(), "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, closure.Names())
}

func TestResolveMissingDependencySkipped(t *testing.T) {
	index := testIndex(map[string]string{"A": "Z"})
	resolver := NewClosureResolver(index, policies.DefaultResolutionPolicy())

	closure, err := resolver.Resolve(t.Context(), "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, closure.Names())
}

func TestResolveFirstAlternativeOnly(t *testing.T) {
	// C is absent and D available, yet only C is ever attempted
	index := testIndex(map[string]string{
		"A": "C | D",
		"D": "",
	})
	resolver := NewClosureResolver(index, policies.DefaultResolutionPolicy())

	closure, err := resolver.Resolve(t.Context(), "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, closure.Names())
	assert.False(t, closure.Contains("D"))
}

func TestResolveClosureCompleteness(t *testing.T) {
	index := testIndex(map[string]string{
		"A": "B, C",
		"B": "D",
		"C": "D, E",
		"D": "",
		"E": "",
	})
	resolver := NewClosureResolver(index, policies.DefaultResolutionPolicy())

	closure, err := resolver.Resolve(t.Context(), "A")
	require.NoError(t, err)
	for _, name := range closure.Names() {
		depends, ok := index[name].Depends()
		if !ok {
			continue
		}
		for _, group := range ParseDependsField(depends) {
			first := group.First()
			if _, inIndex := index[first]; inIndex {
				assert.True(t, closure.Contains(first), "dependency %s of %s missing from closure", first, name)
			}
		}
	}
}

func TestResolveDeepChain(t *testing.T) {
	records := map[string]string{}
	const depth = 5000
	for i := 0; i < depth; i++ {
		name := fmt.Sprintf("pkg%d", i)
		if i == depth-1 {
			records[name] = ""
		} else {
			records[name] = fmt.Sprintf("pkg%d", i+1)
		}
	}
	resolver := NewClosureResolver(testIndex(records), policies.DefaultResolutionPolicy())

	closure, err := resolver.Resolve(t.Context(), "pkg0")
	require.NoError(t, err)
	require.Equal(t, depth, closure.Len())
	// deepest dependency first
	assert.True(t, strings.HasPrefix(closure.Names()[0], fmt.Sprintf("pkg%d", depth-1)))
}

func TestResolveRejectsUnknownPolicy(t *testing.T) {
	resolver := NewClosureResolver(testIndex(nil), policies.ResolutionPolicy{
		Alternatives: "best-fit",
		Cycles:       policies.CycleCut,
	})
	_, err := resolver.Resolve(t.Context(), "A")
	require.Error(t, err)
}
