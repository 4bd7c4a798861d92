package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flier/cssmatch/pkg/tree"
)

func TestBuildFixtureAndWalk(t *testing.T) {
	sess, root := buildFixture(3)
	require.NotEqual(t, tree.Root, root)

	idx, err := sess.CompileSelector("li.item")
	require.NoError(t, err)
	sess.Freeze()

	var matched int
	walk(sess.Tree(), root, func(node tree.NodeId) {
		if !sess.Tree().IsElement(node) {
			return
		}
		ok, err := sess.Match(idx, node)
		require.NoError(t, err)
		if ok {
			matched++
		}
	})

	assert.Equal(t, 3, matched)
}
