package drawlist_test

import (
	"context"
	"io"
	"testing"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/sloghuman"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cssflow/core/boxtree"
	"github.com/cssflow/core/drawlist"
	"github.com/cssflow/core/unit"
)

func discardLogger() slog.Logger {
	return slog.Make(sloghuman.Sink(io.Discard))
}

func leaf(skip int) boxtree.Node {
	return boxtree.Node{
		Skip: skip,
		Kind: boxtree.KindBlock,
		Offsets: boxtree.BoxOffsets{
			Border: boxtree.EdgeBox{Size: boxtree.Size{W: unit.Unit(10), H: unit.Unit(10)}},
		},
		StackingContext: boxtree.NoStackingContext,
	}
}

// buildScenario5Doc constructs the box/stacking trees of spec §8 scenario
//5: root, with children SC_A (z=-1), SC_B (z=0, itself containing a
// positive-z nested SC_D), and SC_C (z=5).
func buildScenario5Doc() *boxtree.Document {
	nodes := []boxtree.Node{
		leaf(5), // 0: root
		leaf(1), // 1: SC_A root
		leaf(2), // 2: SC_B root
		leaf(1), // 3: SC_D root (nested under SC_B in the box tree)
		leaf(1), // 4: SC_C root
	}

	stacking := []boxtree.StackingNode{
		{Skip: 5, Subtree: 0, Index: 0, ZIndex: 0},  // 0: root's own stacking context
		{Skip: 1, Subtree: 0, Index: 1, ZIndex: -1}, // 1: SC_A
		{Skip: 2, Subtree: 0, Index: 2, ZIndex: 0},  // 2: SC_B
		{Skip: 1, Subtree: 0, Index: 3, ZIndex: 2},  // 3: SC_D (nested under SC_B)
		{Skip: 1, Subtree: 0, Index: 4, ZIndex: 5},  // 4: SC_C
	}

	return &boxtree.Document{
		Subtrees: []boxtree.Subtree{{Nodes: nodes}},
		Stacking: boxtree.StackingTree{Nodes: stacking},
		IFCs:     map[boxtree.IFCId]boxtree.IFC{},
	}
}

// TestStackingContextOrdering is spec §8 scenario 5.
func TestStackingContextOrdering(t *testing.T) {
	t.Parallel()

	doc := buildScenario5Doc()
	list, err := drawlist.Build(context.Background(), discardLogger(), doc)
	require.NoError(t, err)

	refs := list.FindInRect(unit.Rect{X: -1000, Y: -1000, W: 100000, H: 100000})
	byIndex := make(map[int]drawlist.DrawIndex)
	for _, ref := range refs {
		d := list.Entry(ref)
		if d.Kind != drawlist.KindBlockBox {
			continue
		}
		idx := list.DrawIndex(ref)
		// Several refs may point at box index 0 (the root, once from the
		// forest wrapper and once from its own stacking context); keep the
		// smallest draw index seen per box.
		if existing, ok := byIndex[d.Index]; !ok || idx < existing {
			byIndex[d.Index] = idx
		}
	}

	require.Len(t, byIndex, 5)
	assert.Less(t, byIndex[0], byIndex[1], "root before SC_A")
	assert.Less(t, byIndex[1], byIndex[2], "SC_A before SC_B")
	assert.Less(t, byIndex[2], byIndex[3], "SC_B's own content before its nested positive-z child SC_D")
	assert.Less(t, byIndex[3], byIndex[4], "SC_D before SC_C")
}

// TestLineBoxBoundingBox is spec §8 scenario 6.
func TestLineBoxBoundingBox(t *testing.T) {
	t.Parallel()

	const ifcID = boxtree.IFCId(1)

	root := leaf(2)
	ifcContainer := boxtree.Node{
		Skip: 1,
		Kind: boxtree.KindIFCContainer,
		IFC:  ifcID,
		Offsets: boxtree.BoxOffsets{
			Border: boxtree.EdgeBox{
				Pos:  unit.Point{X: unit.Unit(100), Y: unit.Unit(200)},
				Size: boxtree.Size{W: unit.Unit(400)},
			},
		},
		StackingContext: boxtree.NoStackingContext,
	}
	root.StackingContext = boxtree.NoStackingContext

	doc := &boxtree.Document{
		Subtrees: []boxtree.Subtree{{Nodes: []boxtree.Node{root, ifcContainer}}},
		Stacking: boxtree.StackingTree{
			Nodes: []boxtree.StackingNode{
				{Skip: 1, Subtree: 0, Index: 0, ZIndex: 0, IFCs: []boxtree.IFCId{ifcID}},
			},
		},
		IFCs: map[boxtree.IFCId]boxtree.IFC{
			ifcID: {
				Ascender:  unit.Unit(20),
				Descender: unit.Unit(5),
				Lines: []boxtree.LineBox{
					{Baseline: unit.Unit(20)},
					{Baseline: unit.Unit(35)},
				},
			},
		},
	}

	list, err := drawlist.Build(context.Background(), discardLogger(), doc)
	require.NoError(t, err)

	refs := list.FindInRect(unit.Rect{X: -1000, Y: -1000, W: 100000, H: 100000})
	var lines []unit.Rect
	for _, ref := range refs {
		d := list.Entry(ref)
		if d.Kind == drawlist.KindLineBox {
			lines = append(lines, d.BBox)
		}
	}

	require.Len(t, lines, 2)
	assert.Contains(t, lines, unit.Rect{X: unit.Unit(100), Y: unit.Unit(200), W: unit.Unit(400), H: unit.Unit(25)})
	assert.Contains(t, lines, unit.Rect{X: unit.Unit(100), Y: unit.Unit(215), W: unit.Unit(400), H: unit.Unit(25)})
}

// TestDrawIndexMonotonicityWithinSubList is the spec §8 monotonicity
// property, checked directly against scenario 5's built list.
func TestDrawIndexMonotonicityWithinSubList(t *testing.T) {
	t.Parallel()

	doc := buildScenario5Doc()
	list, err := drawlist.Build(context.Background(), discardLogger(), doc)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, list.Len(), 5)

	// Group every drawable by sub-list; within one sub-list, a higher entry
	// index must have a higher draw index.
	refs := list.FindInRect(unit.Rect{X: -1000, Y: -1000, W: 100000, H: 100000})
	require.Len(t, refs, list.Len())
	bySubList := make(map[int32]map[int32]drawlist.DrawIndex)
	for _, ref := range refs {
		if bySubList[ref.SubList] == nil {
			bySubList[ref.SubList] = make(map[int32]drawlist.DrawIndex)
		}
		bySubList[ref.SubList][ref.Entry] = list.DrawIndex(ref)
	}
	for sl, entries := range bySubList {
		for e := int32(1); e < int32(len(entries)); e++ {
			assert.Less(t, entries[e-1], entries[e], "sub-list %d: entry %d before entry %d", sl, e-1, e)
		}
	}
}
