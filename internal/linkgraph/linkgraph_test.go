package linkgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOf(order []string, id string) int {
	for i, v := range order {
		if v == id {
			return i
		}
	}
	return -1
}

func TestLinkOrderRespectsDependencies(t *testing.T) {
	g, err := New([]Node{
		{Identifier: "app", Depends: []string{"lib-a", "lib-b"}},
		{Identifier: "lib-a", Depends: []string{"base"}},
		{Identifier: "lib-b", Depends: []string{"base"}},
		{Identifier: "base"},
	})
	require.NoError(t, err)

	order, err := g.LinkOrder()
	require.NoError(t, err)
	require.Len(t, order, 4)

	assert.Less(t, indexOf(order, "base"), indexOf(order, "lib-a"))
	assert.Less(t, indexOf(order, "base"), indexOf(order, "lib-b"))
	assert.Less(t, indexOf(order, "lib-a"), indexOf(order, "app"))
	assert.Less(t, indexOf(order, "lib-b"), indexOf(order, "app"))
}

func TestUnlinkOrderIsReversed(t *testing.T) {
	g, err := New([]Node{
		{Identifier: "app", Depends: []string{"lib"}},
		{Identifier: "lib"},
	})
	require.NoError(t, err)

	link, err := g.LinkOrder()
	require.NoError(t, err)
	unlink, err := g.UnlinkOrder()
	require.NoError(t, err)

	require.Equal(t, len(link), len(unlink))
	assert.Less(t, indexOf(unlink, "app"), indexOf(unlink, "lib"))
}

func TestDetectsCycle(t *testing.T) {
	g, err := New([]Node{
		{Identifier: "a", Depends: []string{"b"}},
		{Identifier: "b", Depends: []string{"a"}},
	})
	require.NoError(t, err)

	_, err = g.LinkOrder()
	assert.ErrorIs(t, err, ErrCycle)
}

func TestIgnoresDependenciesOutsideGraph(t *testing.T) {
	g, err := New([]Node{
		{Identifier: "app", Depends: []string{"preexisting"}},
	})
	require.NoError(t, err)

	order, err := g.LinkOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"app"}, order)
}

func TestDuplicateNodeIsError(t *testing.T) {
	_, err := New([]Node{
		{Identifier: "a"},
		{Identifier: "a"},
	})
	assert.Error(t, err)
}
