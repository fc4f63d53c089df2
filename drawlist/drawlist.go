// Package drawlist implements C5 (draw-order list construction) and C6
// (drawable enumeration): it linearizes a box tree and stacking-context
// tree into a paint order that respects the CSS stacking-context algorithm,
// indexing every drawable into a quadtree for hit testing (spec §4.4).
package drawlist

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"cdr.dev/slog"

	"github.com/cssflow/core/boxtree"
	"github.com/cssflow/core/cssflowerr"
	"github.com/cssflow/core/quadtree"
	"github.com/cssflow/core/unit"
)

// DrawIndex is a monotone integer: a < b implies a paints before b.
type DrawIndex int32

// DrawableRef identifies one drawable: its owning sub-list and its position
// within that sub-list's entry array. It is also the object type stored in
// the quadtree.
type DrawableRef struct {
	SubList int32
	Entry   int32
}

// Kind discriminates the two drawable variants (spec's glossary: "an atomic
// paintable unit: a block box or a line box").
type Kind uint8

const (
	KindBlockBox Kind = iota
	KindLineBox
)

// Drawable is the painter-facing view of one entry (spec §6): for a
// block_box the painter reads box_offsets/borders/background/border_colors
// from the box tree at (Subtree, Index); for a line_box it reads the IFC's
// line box and glyphs at (IFC, Line).
type Drawable struct {
	Kind Kind

	Subtree boxtree.SubtreeId
	Index   int

	IFC  boxtree.IFCId
	Line int

	BBox unit.Rect
}

type subListEntry struct {
	drawable  Drawable
	drawIndex DrawIndex
}

// subList is one stacking context's drawables plus links to child sub-lists
// (spec §4.4's "sub-list" and "before_and_after"/"midpoint" scheme).
type subList struct {
	entries []subListEntry

	// beforeAndAfter holds child sub-list indices in stacking-tree order;
	// midpoint is the position of the first child with z >= 0. Every child
	// listed after that one goes after the midpoint whatever its z, so the
	// split is by z sign only when a stacking node's children are listed
	// in ascending z-index order.
	beforeAndAfter []int32
	midpoint       int

	rootDrawIndex       DrawIndex
	firstChildDrawIndex DrawIndex
}

// DrawOrderList is the built, immutable draw-order index: a tree of
// sub-lists with monotone DrawIndex values assigned, plus the quadtree
// populated with every drawable's bounding box (spec §4.4).
type DrawOrderList struct {
	subLists []subList
	quad     *quadtree.Tree[DrawableRef]
}

type ifcInfo struct {
	cursor unit.Point
	width  unit.Unit
}

type boxLoc struct {
	subtree boxtree.SubtreeId
	index   int
}

type readyItem struct {
	subList int32
	sc      int
	initial unit.Point
}

type builder struct {
	doc *boxtree.Document

	subLists []subList
	quad     *quadtree.Tree[DrawableRef]

	pending map[int]int32 // stacking-context id -> allocated sub-list index
	ready   []readyItem
	ifcs    map[boxtree.IFCId]ifcInfo
}

// Build walks doc's box tree and stacking-context tree and produces a
// DrawOrderList with a fully populated quadtree (spec §4.4). A build that
// fails (invalid document, or Overflow) releases everything it had built; the returned
// DrawOrderList is always nil on error.
func Build(ctx context.Context, log slog.Logger, doc *boxtree.Document) (*DrawOrderList, error) {
	if err := boxtree.Validate(doc); err != nil {
		return nil, fmt.Errorf("drawlist: invalid document: %w", err)
	}

	b := &builder{
		doc:     doc,
		quad:    quadtree.NewDefault[DrawableRef](),
		pending: make(map[int]int32),
		ifcs:    make(map[boxtree.IFCId]ifcInfo),
	}

	root := doc.Root()
	rootBorderTopLeft := unit.Point{}.Add(root.Insets).Add(root.Offsets.Border.Pos)
	rootSubList, err := b.newSubList()
	if err != nil {
		return nil, err
	}
	if err := b.appendBlockEntry(rootSubList, 0, 0, rootBorderTopLeft, root); err != nil {
		return nil, err
	}

	if len(doc.Stacking.Nodes) > 0 {
		scSubList, err := b.newSubList()
		if err != nil {
			return nil, err
		}
		b.subLists[rootSubList].beforeAndAfter = append(b.subLists[rootSubList].beforeAndAfter, scSubList)
		b.subLists[rootSubList].midpoint = 0
		b.pending[0] = scSubList

		rootContentTopLeft := rootBorderTopLeft.Add(root.Offsets.Content.Pos)
		b.ready = append(b.ready, readyItem{subList: scSubList, sc: 0, initial: rootContentTopLeft})
	}

	for len(b.ready) > 0 {
		item := b.ready[0]
		b.ready = b.ready[1:]
		delete(b.pending, item.sc)
		if err := b.populate(item.subList, item.sc, item.initial); err != nil {
			return nil, err
		}
	}
	if len(b.pending) != 0 {
		panic("drawlist: pending stacking contexts left unpopulated after ready drained")
	}

	assignDrawIndices(b.subLists)

	log.Debug(ctx, "draw order list built",
		slog.F("sub_lists", len(b.subLists)),
		slog.F("stacking_contexts", len(doc.Stacking.Nodes)),
	)

	return &DrawOrderList{subLists: b.subLists, quad: b.quad}, nil
}

func (b *builder) newSubList() (int32, error) {
	if len(b.subLists) >= math.MaxInt32 {
		return 0, cssflowerr.Overflow("drawlist: sub-list count exceeds int32")
	}
	b.subLists = append(b.subLists, subList{})
	return int32(len(b.subLists) - 1), nil
}

func (b *builder) appendBlockEntry(subList int32, subtree boxtree.SubtreeId, index int, borderTopLeft unit.Point, node *boxtree.Node) error {
	sl := &b.subLists[subList]
	if len(sl.entries) >= math.MaxInt32 {
		return cssflowerr.Overflow("drawlist: sub-list entry count exceeds int32")
	}
	bbox := unit.Rect{X: borderTopLeft.X, Y: borderTopLeft.Y, W: node.Offsets.Border.Size.W, H: node.Offsets.Border.Size.H}
	entryIdx := int32(len(sl.entries))
	sl.entries = append(sl.entries, subListEntry{drawable: Drawable{
		Kind:    KindBlockBox,
		Subtree: subtree,
		Index:   index,
		BBox:    bbox,
	}})
	b.quad.Insert(bbox, DrawableRef{SubList: subList, Entry: entryIdx})
	return nil
}

func (b *builder) appendLineEntry(subList int32, ifc boxtree.IFCId, line int, bbox unit.Rect) error {
	sl := &b.subLists[subList]
	if len(sl.entries) >= math.MaxInt32 {
		return cssflowerr.Overflow("drawlist: sub-list entry count exceeds int32")
	}
	entryIdx := int32(len(sl.entries))
	sl.entries = append(sl.entries, subListEntry{drawable: Drawable{
		Kind: KindLineBox,
		IFC:  ifc,
		Line: line,
		BBox: bbox,
	}})
	b.quad.Insert(bbox, DrawableRef{SubList: subList, Entry: entryIdx})
	return nil
}

// populate implements spec §4.4's Populate(sub_list, stacking_context,
// initial_vector).
func (b *builder) populate(subList int32, sc int, initialVector unit.Point) error {
	nodes := b.doc.Stacking.Nodes
	scNode := &nodes[sc]

	childLoc := make(map[boxLoc]int, 4)

	end := sc + scNode.Skip
	midpointSet := false
	c := sc + 1
	for c < end {
		child := &nodes[c]
		if !midpointSet && child.ZIndex >= 0 {
			b.subLists[subList].midpoint = len(b.subLists[subList].beforeAndAfter)
			midpointSet = true
		}
		childSubList, err := b.newSubList()
		if err != nil {
			return err
		}
		b.subLists[subList].beforeAndAfter = append(b.subLists[subList].beforeAndAfter, childSubList)
		b.pending[c] = childSubList
		childLoc[boxLoc{subtree: child.Subtree, index: child.Index}] = c
		c += child.Skip
	}
	if !midpointSet {
		b.subLists[subList].midpoint = len(b.subLists[subList].beforeAndAfter)
	}

	rootNode := &b.doc.Subtrees[scNode.Subtree].Nodes[scNode.Index]
	borderTopLeft := initialVector.Add(rootNode.Insets).Add(rootNode.Offsets.Border.Pos)
	contentTopLeft := borderTopLeft.Add(rootNode.Offsets.Content.Pos)
	if err := b.appendBlockEntry(subList, scNode.Subtree, scNode.Index, borderTopLeft, rootNode); err != nil {
		return err
	}

	childrenEnd := scNode.Index + rootNode.Skip
	if err := b.walkRange(subList, scNode.Subtree, scNode.Index+1, childrenEnd, contentTopLeft, childLoc); err != nil {
		return err
	}

	for _, ifcID := range scNode.IFCs {
		info, ok := b.ifcs[ifcID]
		if !ok {
			continue
		}
		ifc := b.doc.IFCs[ifcID]
		for i, line := range ifc.Lines {
			// Ascender and Descender are both distances from the baseline
			// (above and below it), so a line box spans their sum.
			bbox := unit.Rect{
				X: info.cursor.X,
				Y: info.cursor.Y + line.Baseline - ifc.Ascender,
				W: info.width,
				H: ifc.Ascender + ifc.Descender,
			}
			if err := b.appendLineEntry(subList, ifcID, i, bbox); err != nil {
				return err
			}
		}
	}

	return nil
}

// walkRange traverses box-tree siblings [start,end) within subtreeID in
// pre-order, pruning any subtree that is the root of a pending stacking
// context (those are promoted to ready instead of descended into), per
// spec §4.4 Populate step 4-6.
func (b *builder) walkRange(subList int32, subtreeID boxtree.SubtreeId, start, end int, cursor unit.Point, childLoc map[boxLoc]int) error {
	nodes := b.doc.Subtrees[subtreeID].Nodes
	i := start
	for i < end {
		node := &nodes[i]

		if scID, ok := childLoc[boxLoc{subtree: subtreeID, index: i}]; ok {
			subListIdx := b.pending[scID]
			b.ready = append(b.ready, readyItem{subList: subListIdx, sc: scID, initial: cursor})
			i += node.Skip
			continue
		}

		switch node.Kind {
		case boxtree.KindIFCContainer:
			c := cursor.Add(node.Offsets.Border.Pos).Add(node.Offsets.Content.Pos)
			b.ifcs[node.IFC] = ifcInfo{cursor: c, width: node.Offsets.Border.Size.W}
			i += node.Skip
		case boxtree.KindSubtreeProxy:
			proxied := b.doc.Subtrees[node.SubtreeID].Nodes
			if len(proxied) > 0 {
				if err := b.walkRange(subList, node.SubtreeID, 0, len(proxied), cursor, childLoc); err != nil {
					return err
				}
			}
			i += node.Skip
		default: // KindBlock
			borderTopLeft := cursor.Add(node.Insets).Add(node.Offsets.Border.Pos)
			contentTopLeft := borderTopLeft.Add(node.Offsets.Content.Pos)
			if err := b.appendBlockEntry(subList, subtreeID, i, borderTopLeft, node); err != nil {
				return err
			}
			if err := b.walkRange(subList, subtreeID, i+1, i+node.Skip, contentTopLeft, childLoc); err != nil {
				return err
			}
			i += node.Skip
		}
	}
	return nil
}

// assignDrawIndices implements spec §4.4 step 5: pre-order with a
// mid-phase, reserving one slot for each sub-list's root and a contiguous
// block for its non-root entries, with before/after-midpoint children
// interleaved around that block.
func assignDrawIndices(subLists []subList) {
	idx := DrawIndex(0)
	var visit func(s int32)
	visit = func(s int32) {
		sl := &subLists[s]

		sl.rootDrawIndex = idx
		sl.entries[0].drawIndex = idx
		idx++

		for _, child := range sl.beforeAndAfter[:sl.midpoint] {
			visit(child)
		}

		sl.firstChildDrawIndex = idx
		for i := 1; i < len(sl.entries); i++ {
			sl.entries[i].drawIndex = idx
			idx++
		}

		for _, child := range sl.beforeAndAfter[sl.midpoint:] {
			visit(child)
		}
	}
	visit(0)
}

// FindInRect returns a conservative superset of drawables whose bounding
// box may intersect viewport (spec §6).
func (l *DrawOrderList) FindInRect(viewport unit.Rect) []DrawableRef {
	return l.quad.FindInRect(viewport)
}

// DrawIndex returns ref's paint-order position; the painter sorts results
// by this value (spec §6).
func (l *DrawOrderList) DrawIndex(ref DrawableRef) DrawIndex {
	return l.subLists[ref.SubList].entries[ref.Entry].drawIndex
}

// Entry returns the concrete drawable ref identifies (spec §6).
func (l *DrawOrderList) Entry(ref DrawableRef) Drawable {
	return l.subLists[ref.SubList].entries[ref.Entry].drawable
}

// Len reports the total number of drawables, for tests and diagnostics.
func (l *DrawOrderList) Len() int {
	n := 0
	for _, sl := range l.subLists {
		n += len(sl.entries)
	}
	return n
}

// Dump renders every drawable as one deterministic line, sorted by
// DrawIndex, for golden-snapshot tests (see internal/dumpcodec).
func (l *DrawOrderList) Dump() string {
	type row struct {
		idx DrawIndex
		d   Drawable
	}
	var rows []row
	for _, sl := range l.subLists {
		for _, e := range sl.entries {
			rows = append(rows, row{idx: e.drawIndex, d: e.drawable})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].idx < rows[j].idx })

	var b strings.Builder
	for _, r := range rows {
		switch r.d.Kind {
		case KindBlockBox:
			fmt.Fprintf(&b, "%d block_box subtree=%d index=%d bbox=%v\n", r.idx, r.d.Subtree, r.d.Index, r.d.BBox)
		case KindLineBox:
			fmt.Fprintf(&b, "%d line_box ifc=%d line=%d bbox=%v\n", r.idx, r.d.IFC, r.d.Line, r.d.BBox)
		}
	}
	return b.String()
}
