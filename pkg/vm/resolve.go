package vm

import (
	"github.com/flier/cssmatch/pkg/atom"
	"github.com/flier/cssmatch/pkg/bloom"
	sel "github.com/flier/cssmatch/pkg/selector"
	"github.com/flier/cssmatch/pkg/tree"
)

// ExecuteCompiled is Execute, but consults docFilter before ever running
// the program: per spec.md §2, a session-wide document filter records
// every tag/id/class hash that occurs anywhere in the document, so a
// program whose subject compound requires a hash the document doesn't
// contain anywhere cannot match any node in it, and running its bytecode
// at all can be skipped. docFilter may be nil (a tree built without
// [tree.FlatTree.WithDocumentFilter]), in which case this is exactly
// Execute.
func ExecuteCompiled(prog sel.CompiledSelector, table *atom.Table, docFilter *bloom.DocumentFilter, t *tree.FlatTree, start tree.NodeId) bool {
	if docFilter != nil && prog.HasRequiredHash && !docFilter.MightContain(prog.RequiredHash) {
		return false
	}
	return Execute(prog.Bytecode, table, t, start)
}

// Resolve evaluates every program in programs against (t, node) and
// returns the index of the highest-specificity match, per spec.md §4.5's
// "Multi-selector resolution": on a specificity tie the later program in
// the list wins (last-rule-wins cascade). ok is false if none match.
// docFilter may be nil; see [ExecuteCompiled].
func Resolve(programs []sel.CompiledSelector, table *atom.Table, docFilter *bloom.DocumentFilter, t *tree.FlatTree, node tree.NodeId) (index int, ok bool) {
	best := -1

	for i, p := range programs {
		if !ExecuteCompiled(p, table, docFilter, t, node) {
			continue
		}
		// >= rather than >: a later program at an equal specificity
		// overwrites the earlier one, giving last-rule-wins on ties.
		if best < 0 || !p.Specificity.Less(programs[best].Specificity) {
			best = i
		}
	}

	return best, best >= 0
}
