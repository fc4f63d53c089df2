// Package boxtree defines the external collaborator types C5/C6 consume:
// the laid-out box tree, the stacking-context tree, and inline formatting
// contexts (spec §3, §6). Box generation and layout themselves are
// out-of-scope collaborators (spec §1); this package only names the shapes
// those collaborators hand to the draw-order builder.
package boxtree

import (
	"github.com/cssflow/core/cssvalue"
	"github.com/cssflow/core/unit"
)

// Size is a width/height pair in layout units.
type Size struct {
	W, H unit.Unit
}

// EdgeBox is one of the four nested rectangles box_offsets carries
// (margin, border, padding, content), each a positional delta from the
// box's reference origin plus a size (spec §3).
type EdgeBox struct {
	Pos  unit.Point
	Size Size
}

// BoxOffsets holds the four nested rectangles named in spec §3.
type BoxOffsets struct {
	Margin  EdgeBox
	Border  EdgeBox
	Padding EdgeBox
	Content EdgeBox
}

// Borders holds the four per-side border widths.
type Borders struct {
	Top, Right, Bottom, Left unit.Unit
}

// Side indexes Borders/BorderColors.
type Side uint8

const (
	Top Side = iota
	Right
	Bottom
	Left
)

// Kind discriminates a block box's type (spec §3's `type` discriminator).
type Kind uint8

const (
	KindBlock Kind = iota
	KindIFCContainer
	KindSubtreeProxy
)

// SubtreeId indexes Document.Subtrees.
type SubtreeId int32

// IFCId identifies an inline formatting context.
type IFCId int32

// NoStackingContext marks a Node with no associated stacking context.
const NoStackingContext = -1

// Node is one block box in a Subtree's flat, pre-order array.
type Node struct {
	// Skip is the number of descendants plus one: Nodes[i+Skip] is the
	// next sibling (or past-the-end), so skipping this subtree is O(1)
	// (spec §3).
	Skip int

	Kind      Kind
	IFC       IFCId     // valid iff Kind == KindIFCContainer
	SubtreeID SubtreeId // valid iff Kind == KindSubtreeProxy

	Offsets BoxOffsets
	Borders Borders
	Insets  unit.Point

	Background   cssvalue.Color
	HasBG        bool
	BorderColors [4]cssvalue.Color
	HasBorderCol [4]bool

	// StackingContext indexes StackingTree.Nodes, or NoStackingContext.
	StackingContext int
}

// Subtree is a flat, pre-order array of block boxes (spec §3).
type Subtree struct {
	Nodes []Node
}

// StackingNode is one entry of the flat, pre-order stacking-context tree
// (spec §3).
type StackingNode struct {
	Skip int

	// Subtree/Index locate the block box that roots this stacking
	// context.
	Subtree SubtreeId
	Index   int

	ZIndex int32
	IFCs   []IFCId
}

// StackingTree is the flat, pre-order stacking-context tree (spec §3).
type StackingTree struct {
	Nodes []StackingNode
}

// LineBox is one line of an inline formatting context (spec §3).
type LineBox struct {
	Baseline   unit.Unit
	Begin, End int
}

// IFC is an inline formatting context (spec §3): a sequence of line boxes
// plus aggregate ascender/descender metrics. The glyph/metrics stream is
// for the painter only (spec §6) and is out of scope here.
type IFC struct {
	Ascender, Descender unit.Unit
	Lines               []LineBox
}

// Document bundles everything C5 consumes from layout: the box-tree forest,
// the stacking-context tree, and the set of inline formatting contexts.
type Document struct {
	Subtrees []Subtree
	Stacking StackingTree
	IFCs     map[IFCId]IFC
}

// Root returns the initial containing block: Subtree 0, Node 0. Callers
// build a Document with at least one subtree containing at least a root
// node.
func (d *Document) Root() *Node {
	return &d.Subtrees[0].Nodes[0]
}
