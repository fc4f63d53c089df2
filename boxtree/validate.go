package boxtree

import (
	"fmt"

	"go.uber.org/multierr"
)

// Validate checks the structural invariants a Document must hold before C5
// can walk it (spec §3: flat pre-order arrays addressed by Skip, and every
// stacking node naming a real block box). It collects every violation
// found rather than stopping at the first, since a malformed Document
// usually has more than one thing wrong with it.
func Validate(doc *Document) (err error) {
	if len(doc.Subtrees) == 0 {
		return fmt.Errorf("boxtree: document has no subtrees")
	}
	if len(doc.Subtrees[0].Nodes) == 0 {
		err = multierr.Append(err, fmt.Errorf("boxtree: subtree 0 has no root node"))
	}

	for i, st := range doc.Subtrees {
		err = multierr.Append(err, validateSubtree(SubtreeId(i), st))
	}

	for i, sn := range doc.Stacking.Nodes {
		if sn.Skip < 1 {
			err = multierr.Append(err, fmt.Errorf("boxtree: stacking node %d has non-positive skip %d", i, sn.Skip))
		} else if i+sn.Skip > len(doc.Stacking.Nodes) {
			err = multierr.Append(err, fmt.Errorf("boxtree: stacking node %d skip %d runs past the end of the array", i, sn.Skip))
		}
		if int(sn.Subtree) < 0 || int(sn.Subtree) >= len(doc.Subtrees) {
			err = multierr.Append(err, fmt.Errorf("boxtree: stacking node %d names unknown subtree %d", i, sn.Subtree))
			continue
		}
		nodes := doc.Subtrees[sn.Subtree].Nodes
		if sn.Index < 0 || sn.Index >= len(nodes) {
			err = multierr.Append(err, fmt.Errorf("boxtree: stacking node %d names out-of-range index %d in subtree %d", i, sn.Index, sn.Subtree))
		}
	}

	return err
}

func validateSubtree(id SubtreeId, st Subtree) (err error) {
	for i, n := range st.Nodes {
		if n.Skip < 1 {
			err = multierr.Append(err, fmt.Errorf("boxtree: subtree %d node %d has non-positive skip %d", id, i, n.Skip))
			continue
		}
		if i+n.Skip > len(st.Nodes) {
			err = multierr.Append(err, fmt.Errorf("boxtree: subtree %d node %d skip %d runs past the end of the array", id, i, n.Skip))
		}
		if n.StackingContext != NoStackingContext && n.StackingContext < 0 {
			err = multierr.Append(err, fmt.Errorf("boxtree: subtree %d node %d has invalid stacking context %d", id, i, n.StackingContext))
		}
	}
	return err
}
