//go:build !js

// Package abi is the flat, integer-oriented C-ABI surface of spec.md
// §6: a thin cgo layer over a single process-wide [session.Session],
// callable from a native host linking this package as a C archive.
// spec.md §9 calls this kind of global session state out of the
// ordinary - "keep the single-session default for the WASM boundary
// only" - but a native cgo boundary has the same shape of problem (a C
// caller holds no Go handle to pass back in), so the same global-plus-
// mutex pattern is used here too.
//
// Every exported function follows spec.md §6's return convention:
// non-negative on success (an id, an index, or 0/1 for a boolean),
// -1 on error. No function panics: out-of-range indices, an invalid
// (ptr, length) host buffer, and a Session method returning ErrWrongPhase all
// collapse to -1 rather than propagating past the ABI boundary, since
// there is no Go error type a C caller could receive.
package abi

/*
#include <stddef.h>
#include <stdint.h>
*/
import "C"

import (
	"encoding/binary"
	"sync"
	"unsafe"

	"github.com/flier/cssmatch/internal/debug"
	"github.com/flier/cssmatch/pkg/atom"
	"github.com/flier/cssmatch/pkg/session"
	"github.com/flier/cssmatch/pkg/tree"
	"github.com/flier/cssmatch/pkg/untrust"
	"github.com/flier/cssmatch/pkg/xerrors"
)

var (
	mu   sync.Mutex
	sess *session.Session
)

// hostBytes validates a (ptr, length) pair handed across the ABI
// boundary before ever touching it: a negative length, or a nil
// pointer paired with a positive length, is rejected outright instead
// of being passed to unsafe.Slice, which would panic. The returned
// [untrust.Input] is a view over host-owned memory that must not be
// retained past the call - every callee here copies out of it (via
// atom interning or the tree's append-only byte arena) before
// returning.
func hostBytes(ptr unsafe.Pointer, length int) (untrust.Input, bool) {
	if length < 0 {
		return nil, false
	}
	if length == 0 {
		return untrust.Input{}, true
	}
	if ptr == nil {
		return nil, false
	}
	return untrust.Input(unsafe.Slice((*byte)(ptr), length)), true
}

// hostUint32Array validates a host-owned C array of count uint32_t
// values and decodes it into []atom.Id, walking the raw bytes with an
// [untrust.Reader] (via [untrust.ReadAll]) instead of reinterpreting
// the pointer directly as a uint32 array - the one host buffer in this
// package with internal structure, so it's the one that actually needs
// the Reader's "consume exactly n, then require AtEnd" shape rather
// than a single whole-buffer grab.
func hostUint32Array(ptr *C.uint32_t, count int) ([]atom.Id, bool) {
	b, ok := hostBytes(unsafe.Pointer(ptr), count*4)
	if !ok {
		return nil, false
	}

	ids, err := untrust.ReadAll(b, untrust.ErrEndOfInput, func(r *untrust.Reader) ([]atom.Id, error) {
		ids := make([]atom.Id, count)
		for i := range ids {
			word, err := r.ReadBytes(4)
			if err != nil {
				return nil, err
			}
			ids[i] = atom.Id(binary.NativeEndian.Uint32(word.AsSliceLessSafe()))
		}
		return ids, nil
	})
	if err != nil {
		return nil, false
	}

	return ids, true
}

//export engine_init
func engine_init() C.int {
	mu.Lock()
	defer mu.Unlock()

	sess = session.New()
	return 0
}

//export engine_create_dom
func engine_create_dom() C.int {
	mu.Lock()
	defer mu.Unlock()

	if sess == nil {
		return -1
	}
	sess.Reset()
	return 0
}

//export engine_intern_string
func engine_intern_string(ptr *C.char, length C.int) C.int {
	mu.Lock()
	defer mu.Unlock()

	if sess == nil {
		return -1
	}

	b, ok := hostBytes(unsafe.Pointer(ptr), int(length))
	if !ok {
		return -1
	}

	id, err := sess.InternString(string(b.AsSliceLessSafe()))
	if err != nil {
		return -1
	}
	return C.int(id)
}

//export engine_add_node
func engine_add_node(tagAtom C.uint32_t, parentId C.uint32_t) C.int {
	mu.Lock()
	defer mu.Unlock()

	if sess == nil {
		return -1
	}

	node, err := sess.AddNode(atom.Id(tagAtom), tree.NodeId(parentId))
	if err != nil {
		return -1
	}
	return C.int(node)
}

//export engine_create_text_node
func engine_create_text_node(parentId C.uint32_t, ptr *C.char, length C.int) C.int {
	mu.Lock()
	defer mu.Unlock()

	if sess == nil {
		return -1
	}

	b, ok := hostBytes(unsafe.Pointer(ptr), int(length))
	if !ok {
		return -1
	}

	node, err := sess.AddTextNode(tree.NodeId(parentId), b.Clone())
	if err != nil {
		return -1
	}
	return C.int(node)
}

//export engine_set_id
func engine_set_id(nodeId C.uint32_t, idAtom C.uint32_t) C.int {
	mu.Lock()
	defer mu.Unlock()

	if sess == nil {
		return -1
	}
	if err := sess.SetId(tree.NodeId(nodeId), atom.Id(idAtom)); err != nil {
		return -1
	}
	return 0
}

//export engine_set_classes
func engine_set_classes(nodeId C.uint32_t, classAtoms *C.uint32_t, count C.int) C.int {
	mu.Lock()
	defer mu.Unlock()

	if sess == nil {
		return -1
	}
	if count < 0 {
		return -1
	}
	if count == 0 {
		if err := sess.SetClasses(tree.NodeId(nodeId), nil); err != nil {
			return -1
		}
		return 0
	}
	if classAtoms == nil {
		return -1
	}

	classes, ok := hostUint32Array(classAtoms, int(count))
	if !ok {
		return -1
	}

	if err := sess.SetClasses(tree.NodeId(nodeId), classes); err != nil {
		return -1
	}
	return 0
}

//export engine_add_attribute
func engine_add_attribute(nodeId C.uint32_t, nameAtom C.uint32_t, ptr *C.char, length C.int) C.int {
	mu.Lock()
	defer mu.Unlock()

	if sess == nil {
		return -1
	}

	b, ok := hostBytes(unsafe.Pointer(ptr), int(length))
	if !ok {
		return -1
	}

	if err := sess.AddAttribute(tree.NodeId(nodeId), atom.Id(nameAtom), b.Clone()); err != nil {
		return -1
	}
	return 0
}

//export engine_compile_selector
func engine_compile_selector(ptr *C.char, length C.int) C.int {
	mu.Lock()
	defer mu.Unlock()

	if sess == nil {
		return -1
	}

	b, ok := hostBytes(unsafe.Pointer(ptr), int(length))
	if !ok {
		return -1
	}

	idx, err := sess.CompileSelector(string(b.AsSliceLessSafe()))
	if err != nil {
		return -1
	}
	return C.int(idx)
}

//export engine_match_selector
func engine_match_selector(selIdx C.int, nodeId C.uint32_t) C.int {
	mu.Lock()
	defer mu.Unlock()

	if sess == nil {
		return -1
	}

	// The ABI table names no explicit "begin matching" call, so the
	// build/match phase transition happens here, lazily, on first use:
	// once a host starts matching it is not expected to keep building
	// the same document.
	if !sess.Frozen() {
		sess.Freeze()
	}

	if !sess.NodeExists(tree.NodeId(nodeId)) {
		return -1
	}

	ok, err := sess.Match(int(selIdx), tree.NodeId(nodeId))
	if err != nil {
		if idxErr, matched := xerrors.AsA[*session.IndexError](err); matched {
			debug.Log(nil, "match", "selector index %d out of range [0, %d)", idxErr.Index, idxErr.Count)
		}
		return -1
	}
	if ok {
		return 1
	}
	return 0
}
