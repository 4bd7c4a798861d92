//go:build !js

package abi

/*
#include <stddef.h>
#include <stdint.h>
*/
import "C"

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func cBytes(s string) (*C.char, C.int) {
	if len(s) == 0 {
		return nil, 0
	}
	return (*C.char)(unsafe.Pointer(&[]byte(s)[0])), C.int(len(s))
}

func TestEngineLifecycle(t *testing.T) {
	require.EqualValues(t, 0, engine_init())

	divPtr, divLen := cBytes("div")
	div := engine_intern_string(divPtr, divLen)
	require.GreaterOrEqual(t, int(div), 0)

	itemPtr, itemLen := cBytes("item")
	item := engine_intern_string(itemPtr, itemLen)
	require.GreaterOrEqual(t, int(item), 0)

	root := engine_add_node(C.uint32_t(div), 0)
	require.GreaterOrEqual(t, int(root), 0)

	classes := []C.uint32_t{C.uint32_t(item)}
	require.EqualValues(t, 0, engine_set_classes(C.uint32_t(root), &classes[0], C.int(len(classes))))

	selPtr, selLen := cBytes(".item")
	sel := engine_compile_selector(selPtr, selLen)
	require.GreaterOrEqual(t, int(sel), 0)

	require.EqualValues(t, 1, engine_match_selector(sel, C.uint32_t(root)))

	// Once matching has started, the lazily-frozen session rejects
	// further build-phase calls.
	require.EqualValues(t, -1, engine_compile_selector(selPtr, selLen))

	require.EqualValues(t, 0, engine_create_dom())
}

func TestEngineRejectsInvalidHostBuffers(t *testing.T) {
	require.EqualValues(t, 0, engine_init())
	require.EqualValues(t, -1, engine_intern_string(nil, 5))
	require.EqualValues(t, 0, engine_intern_string(nil, 0))
}

func TestEngineRejectsUnknownNode(t *testing.T) {
	require.EqualValues(t, 0, engine_init())

	selPtr, selLen := cBytes("div")
	sel := engine_compile_selector(selPtr, selLen)
	require.GreaterOrEqual(t, int(sel), 0)

	// No node was ever created in this session, so node id 7 was never
	// allocated - must be rejected rather than indexed into the tree.
	require.EqualValues(t, -1, engine_match_selector(sel, C.uint32_t(7)))
}
