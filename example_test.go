package graphkeep_test

import (
	"context"
	"fmt"
	"log"

	"github.com/hupe1980/graphkeep"
	"github.com/hupe1980/graphkeep/access"
	"github.com/hupe1980/graphkeep/core"
	"github.com/hupe1980/graphkeep/item"
	"github.com/hupe1980/graphkeep/shell"
	"github.com/hupe1980/graphkeep/testutil"
)

// Example_removal demonstrates how a removal reaches every referrer.
func Example_removal() {
	s := graphkeep.New()
	graphkeep.MustHost[testutil.Node](s)
	graphkeep.MustHost[testutil.Owned](s)

	a, _ := shell.Add(s, testutil.NewNode("a"))
	b, _ := shell.Add(s, testutil.NewNode("b", a))
	_, _ = shell.Add(s, testutil.OwnedBy(a, "label"))

	removed, err := s.RemoveAny(a.Any())
	if err != nil {
		log.Fatal(err)
	}
	e, _ := shell.Get(s, b)

	fmt.Println("removed:", len(removed))
	fmt.Println("b still links a:", e.Item.LinksTo(a))
	// Output:
	// removed: 2
	// b still links a: false
}

// Example_compact demonstrates key renumbering.
func Example_compact() {
	s := graphkeep.New()
	graphkeep.MustHost[testutil.Leaf](s)

	first, _ := shell.Add(s, testutil.Leaf{Value: 1})
	_, _ = shell.Add(s, testutil.Leaf{Value: 2})
	_, _ = s.RemoveAny(first.Any())

	moved, _ := s.Compact()
	for old, next := range moved {
		fmt.Println(old.Index, "->", next.Index)
	}
	// Output: 2 -> 1
}

// Example_split demonstrates parallel work on disjoint types.
func Example_split() {
	s := graphkeep.New()
	graphkeep.MustHost[testutil.Node](s)
	graphkeep.MustHost[testutil.Leaf](s)
	for i := range 3 {
		_, _ = shell.Add(s, testutil.NewNode("n"))
		_, _ = shell.Add(s, testutil.Leaf{Value: i})
	}

	root, err := s.Access()
	if err != nil {
		log.Fatal(err)
	}
	parts, err := access.SplitTypes(root, core.TypeOf[testutil.Node](), core.TypeOf[testutil.Leaf]())
	if err != nil {
		log.Fatal(err)
	}
	err = access.Run(context.Background(), root, parts, 0, func(_ context.Context, a access.Access[*graphkeep.Store]) error {
		for k := range a.IterAny() {
			if err := a.MutateAny(k, func(item.Any) error { return nil }); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(root.Types().IsAll(), len(root.Keys()))
	_ = root.Release()
	// Output: true 6
}
