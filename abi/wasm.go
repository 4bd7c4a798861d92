//go:build js && wasm

// This file exposes the same engine_* surface as abi.go for a
// WebAssembly host (spec.md §6, §9: "keep the single-session default
// for the WASM boundary only") using syscall/js instead of cgo, since
// a js/wasm binary has no C caller to export symbols to - the host is
// JavaScript, and functions are registered as callable globals instead.
package abi

import (
	"sync"
	"syscall/js"

	"github.com/flier/cssmatch/pkg/atom"
	"github.com/flier/cssmatch/pkg/session"
	"github.com/flier/cssmatch/pkg/tree"
)

var (
	mu   sync.Mutex
	sess *session.Session
)

// RegisterWasmExports installs every engine_* function onto the global
// JavaScript object, under the same names the cgo build exports via
// //export. Call this once from a program's main before blocking
// forever (the usual js/wasm entry point shape).
func RegisterWasmExports() {
	global := js.Global()
	global.Set("engine_init", js.FuncOf(engineInit))
	global.Set("engine_create_dom", js.FuncOf(engineCreateDom))
	global.Set("engine_intern_string", js.FuncOf(engineInternString))
	global.Set("engine_add_node", js.FuncOf(engineAddNode))
	global.Set("engine_create_text_node", js.FuncOf(engineCreateTextNode))
	global.Set("engine_set_id", js.FuncOf(engineSetId))
	global.Set("engine_set_classes", js.FuncOf(engineSetClasses))
	global.Set("engine_add_attribute", js.FuncOf(engineAddAttribute))
	global.Set("engine_compile_selector", js.FuncOf(engineCompileSelector))
	global.Set("engine_match_selector", js.FuncOf(engineMatchSelector))
}

// jsBytes copies a JavaScript Uint8Array argument into a Go []byte,
// the js/wasm equivalent of abi.go's hostBytes: the source array is
// backed by the JS heap, not Go's, so it must be copied out before any
// Go code other than js.CopyBytesToGo touches it.
func jsBytes(v js.Value) []byte {
	if v.IsUndefined() || v.IsNull() {
		return nil
	}
	length := v.Get("length").Int()
	buf := make([]byte, length)
	js.CopyBytesToGo(buf, v)
	return buf
}

func engineInit(this js.Value, args []js.Value) any {
	mu.Lock()
	defer mu.Unlock()

	sess = session.New()
	return 0
}

func engineCreateDom(this js.Value, args []js.Value) any {
	mu.Lock()
	defer mu.Unlock()

	if sess == nil {
		return -1
	}
	sess.Reset()
	return 0
}

func engineInternString(this js.Value, args []js.Value) any {
	mu.Lock()
	defer mu.Unlock()

	if sess == nil || len(args) < 1 {
		return -1
	}

	id, err := sess.InternString(string(jsBytes(args[0])))
	if err != nil {
		return -1
	}
	return int(id)
}

func engineAddNode(this js.Value, args []js.Value) any {
	mu.Lock()
	defer mu.Unlock()

	if sess == nil || len(args) < 2 {
		return -1
	}

	node, err := sess.AddNode(atom.Id(args[0].Int()), tree.NodeId(args[1].Int()))
	if err != nil {
		return -1
	}
	return int(node)
}

func engineCreateTextNode(this js.Value, args []js.Value) any {
	mu.Lock()
	defer mu.Unlock()

	if sess == nil || len(args) < 2 {
		return -1
	}

	node, err := sess.AddTextNode(tree.NodeId(args[0].Int()), jsBytes(args[1]))
	if err != nil {
		return -1
	}
	return int(node)
}

func engineSetId(this js.Value, args []js.Value) any {
	mu.Lock()
	defer mu.Unlock()

	if sess == nil || len(args) < 2 {
		return -1
	}
	if err := sess.SetId(tree.NodeId(args[0].Int()), atom.Id(args[1].Int())); err != nil {
		return -1
	}
	return 0
}

func engineSetClasses(this js.Value, args []js.Value) any {
	mu.Lock()
	defer mu.Unlock()

	if sess == nil || len(args) < 2 {
		return -1
	}

	arr := args[1]
	n := arr.Get("length").Int()
	classes := make([]atom.Id, n)
	for i := 0; i < n; i++ {
		classes[i] = atom.Id(arr.Index(i).Int())
	}

	if err := sess.SetClasses(tree.NodeId(args[0].Int()), classes); err != nil {
		return -1
	}
	return 0
}

func engineAddAttribute(this js.Value, args []js.Value) any {
	mu.Lock()
	defer mu.Unlock()

	if sess == nil || len(args) < 3 {
		return -1
	}

	if err := sess.AddAttribute(tree.NodeId(args[0].Int()), atom.Id(args[1].Int()), jsBytes(args[2])); err != nil {
		return -1
	}
	return 0
}

func engineCompileSelector(this js.Value, args []js.Value) any {
	mu.Lock()
	defer mu.Unlock()

	if sess == nil || len(args) < 1 {
		return -1
	}

	idx, err := sess.CompileSelector(string(jsBytes(args[0])))
	if err != nil {
		return -1
	}
	return idx
}

func engineMatchSelector(this js.Value, args []js.Value) any {
	mu.Lock()
	defer mu.Unlock()

	if sess == nil || len(args) < 2 {
		return -1
	}

	if !sess.Frozen() {
		sess.Freeze()
	}

	node := tree.NodeId(args[1].Int())
	if !sess.NodeExists(node) {
		return -1
	}

	ok, err := sess.Match(args[0].Int(), node)
	if err != nil {
		return -1
	}
	if ok {
		return 1
	}
	return 0
}
