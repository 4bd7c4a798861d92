// Command cssmatch is a small end-to-end harness over [pkg/session]:
// it builds a demonstration document, compiles the selectors given on
// the command line, and prints which nodes each one matches.
//
// There is no HTML or CSS source parser here: per spec.md §1, the
// document tree is built node-by-node by the host embedding this
// engine, not parsed from markup by the engine itself, so this harness
// builds its own fixture tree the same way a real embedder would
// through [pkg/session]'s build-phase API.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/flier/cssmatch/internal/xflag"
	"github.com/flier/cssmatch/pkg/atom"
	"github.com/flier/cssmatch/pkg/session"
	"github.com/flier/cssmatch/pkg/tree"
)

var items = xflag.Func("items", "number of <li class=item> children to generate under <ul>", func(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("items: %w", err)
	}
	if n < 0 {
		return 0, fmt.Errorf("items: must be non-negative, got %d", n)
	}
	return n, nil
})

func main() {
	flag.Parse()

	n := 3
	if xflag.Parsed("items") {
		n = *items
	}

	selectors := flag.Args()
	if len(selectors) == 0 {
		selectors = []string{"li.item", "li:first-child", "li:nth-child(2n)"}
	}

	sess, root := buildFixture(n)

	indices := make([]int, len(selectors))
	for i, src := range selectors {
		idx, err := sess.CompileSelector(src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "cssmatch: %q: %v\n", src, err)
			os.Exit(1)
		}
		indices[i] = idx
	}

	sess.Freeze()

	t := sess.Tree()
	walk(t, root, func(node tree.NodeId) {
		if !t.IsElement(node) {
			return
		}
		for i, src := range selectors {
			ok, err := sess.Match(indices[i], node)
			if err != nil {
				fmt.Fprintf(os.Stderr, "cssmatch: match %q: %v\n", src, err)
				continue
			}
			if ok {
				fmt.Printf("node %d matches %q\n", node, src)
			}
		}
	})
}

// buildFixture constructs <div id=main><ul><li class=item>...n times</ul></div>
// through the same session build-phase calls a real embedder would use.
func buildFixture(n int) (*session.Session, tree.NodeId) {
	sess := session.New()

	div, _ := sess.InternString("div")
	ul, _ := sess.InternString("ul")
	li, _ := sess.InternString("li")
	item, _ := sess.InternString("item")
	mainId, _ := sess.InternString("main")

	root, _ := sess.AddNode(div, tree.Root)
	_ = sess.SetId(root, mainId)

	list, _ := sess.AddNode(ul, root)

	for i := 0; i < n; i++ {
		node, _ := sess.AddNode(li, list)
		_ = sess.SetClasses(node, []atom.Id{item})
	}

	return sess, root
}

func walk(t *tree.FlatTree, node tree.NodeId, visit func(tree.NodeId)) {
	visit(node)
	for child := range t.Children(node) {
		walk(t, child, visit)
	}
}
