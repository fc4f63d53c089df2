// Package quadtree implements the C4 component: a spatial index over
// axis-aligned rectangles keyed by integer layout units (spec §4.3). Space
// is tiled into fixed-size square patches; each occupied patch owns a node
// that recursively subdivides into quadrants up to MaxDepth. Bounding boxes
// spanning more than one patch go into a separate large-objects list.
package quadtree

import "github.com/cssflow/core/unit"

// MaxDepth bounds quadrant recursion within one patch (spec §4.3's
// invariant); a patch of side P therefore has leaves P/2^MaxDepth on a
// side.
const MaxDepth = 7

// DefaultPatchSize is the patch side length the spec's source uses: 1024
// pixels.
var DefaultPatchSize = unit.FromPixels(1024)

// Tree is the quadtree spatial index, generic over the opaque object type
// callers insert (C5 inserts DrawableRef values).
type Tree[O any] struct {
	patchSize unit.Unit
	maxDepth  int

	patches map[patchKey]int32 // patch -> index of its depth-0 node in nodes
	nodes   []node[O]
	large   []largeEntry[O]
}

type patchKey struct {
	px, py int32
}

type patchSpan struct {
	px0, py0, px1, py1 int32 // half-open: [px0,px1) x [py0,py1)
}

type entry[O any] struct {
	bbox unit.Rect // node-local coordinates
	obj  O
}

type node[O any] struct {
	objects  []entry[O]
	children [4]int32 // -1 = absent, else index into Tree.nodes
}

type largeEntry[O any] struct {
	span patchSpan
	obj  O
}

// New builds an empty tree with the given patch size and max subdivision
// depth. patchSize must be a positive power-of-two multiple of
// unit.UnitsPerPixel (spec §4.3).
func New[O any](patchSize unit.Unit, maxDepth int) *Tree[O] {
	return &Tree[O]{
		patchSize: patchSize,
		maxDepth:  maxDepth,
		patches:   make(map[patchKey]int32),
	}
}

// NewDefault builds a tree using DefaultPatchSize and MaxDepth.
func NewDefault[O any]() *Tree[O] {
	return New[O](DefaultPatchSize, MaxDepth)
}

func (t *Tree[O]) newNode() int32 {
	t.nodes = append(t.nodes, node[O]{children: [4]int32{-1, -1, -1, -1}})
	return int32(len(t.nodes) - 1)
}

func floorDiv(v, d int32) int32 {
	q := v / d
	if v%d != 0 && (v < 0) != (d < 0) {
		q--
	}
	return q
}

func ceilDiv(v, d int32) int32 {
	q := v / d
	if v%d != 0 && (v < 0) == (d < 0) {
		q++
	}
	return q
}

func half(u unit.Unit) unit.Unit {
	return unit.Unit(int32(u) / 2)
}

func (t *Tree[O]) span(bbox unit.Rect) patchSpan {
	p := int32(t.patchSize)
	return patchSpan{
		px0: floorDiv(int32(bbox.X), p),
		py0: floorDiv(int32(bbox.Y), p),
		px1: ceilDiv(int32(bbox.MaxX()), p),
		py1: ceilDiv(int32(bbox.MaxY()), p),
	}
}

func spansIntersect(a, b patchSpan) bool {
	return a.px0 < b.px1 && b.px0 < a.px1 && a.py0 < b.py1 && b.py0 < a.py1
}

// Insert adds bbox/obj to the index (spec §4.3's insert algorithm). bbox
// must have non-negative width and height.
func (t *Tree[O]) Insert(bbox unit.Rect, obj O) {
	sp := t.span(bbox)
	if sp.px1-sp.px0 > 1 || sp.py1-sp.py0 > 1 {
		t.large = append(t.large, largeEntry[O]{span: sp, obj: obj})
		return
	}

	key := patchKey{sp.px0, sp.py0}
	root, ok := t.patches[key]
	if !ok {
		root = t.newNode()
		t.patches[key] = root
	}
	origin := unit.Point{
		X: unit.Unit(sp.px0 * int32(t.patchSize)),
		Y: unit.Unit(sp.py0 * int32(t.patchSize)),
	}
	local := bbox.Translate(unit.Point{X: -origin.X, Y: -origin.Y})
	t.insertInto(root, local, obj, t.patchSize, 0)
}

func (t *Tree[O]) insertInto(idx int32, local unit.Rect, obj O, nodeSize unit.Unit, depth int) {
	quadrantSize := half(nodeSize)
	if depth == t.maxDepth || local.W > quadrantSize || local.H > quadrantSize {
		t.nodes[idx].objects = append(t.nodes[idx].objects, entry[O]{bbox: local, obj: obj})
		return
	}

	quads := quadrants(quadrantSize)
	hit, count := -1, 0
	for i, q := range quads {
		if local.Intersects(q) {
			count++
			hit = i
		}
	}
	if count != 1 {
		t.nodes[idx].objects = append(t.nodes[idx].objects, entry[O]{bbox: local, obj: obj})
		return
	}

	child := t.nodes[idx].children[hit]
	if child < 0 {
		child = t.newNode()
		t.nodes[idx].children[hit] = child
	}
	childLocal := local.Translate(unit.Point{X: -quads[hit].X, Y: -quads[hit].Y})
	t.insertInto(child, childLocal, obj, quadrantSize, depth+1)
}

// quadrants returns the four quadrant rectangles (top-left, top-right,
// bottom-left, bottom-right) of a node-local origin whose quadrants are
// size x size.
func quadrants(size unit.Unit) [4]unit.Rect {
	return [4]unit.Rect{
		{X: 0, Y: 0, W: size, H: size},
		{X: size, Y: 0, W: size, H: size},
		{X: 0, Y: size, W: size, H: size},
		{X: size, Y: size, W: size, H: size},
	}
}

// FindInRect returns every object whose bounding box may intersect query.
// The result is a conservative superset; exact-intersection filtering is
// the caller's job (spec §4.3).
func (t *Tree[O]) FindInRect(query unit.Rect) []O {
	var out []O

	qspan := t.span(query)
	for _, le := range t.large {
		if spansIntersect(le.span, qspan) {
			out = append(out, le.obj)
		}
	}

	for px := qspan.px0; px < qspan.px1; px++ {
		for py := qspan.py0; py < qspan.py1; py++ {
			idx, ok := t.patches[patchKey{px, py}]
			if !ok {
				continue
			}
			origin := unit.Point{
				X: unit.Unit(px * int32(t.patchSize)),
				Y: unit.Unit(py * int32(t.patchSize)),
			}
			localQuery := query.Translate(unit.Point{X: -origin.X, Y: -origin.Y})
			t.queryNode(idx, localQuery, t.patchSize, 0, &out)
		}
	}
	return out
}

// OccupiedPatches returns the patch-grid coordinates of every patch holding
// at least one object, plus the number of large objects stored outside the
// grid. It exists for diagnostics (internal/visualize), not for querying.
func (t *Tree[O]) OccupiedPatches() (patches []PatchCoord, largeCount int) {
	patches = make([]PatchCoord, 0, len(t.patches))
	for k := range t.patches {
		patches = append(patches, PatchCoord{PX: k.px, PY: k.py})
	}
	return patches, len(t.large)
}

// PatchSize reports the tree's configured patch side length.
func (t *Tree[O]) PatchSize() unit.Unit { return t.patchSize }

// PatchCoord is a patch's integer grid coordinate.
type PatchCoord struct {
	PX, PY int32
}

func (t *Tree[O]) queryNode(idx int32, local unit.Rect, nodeSize unit.Unit, depth int, out *[]O) {
	n := &t.nodes[idx]
	for _, e := range n.objects {
		*out = append(*out, e.obj)
	}
	if depth == t.maxDepth {
		return
	}

	quadrantSize := half(nodeSize)
	quads := quadrants(quadrantSize)
	for i, q := range quads {
		child := n.children[i]
		if child < 0 || !local.Intersects(q) {
			continue
		}
		childLocal := local.Translate(unit.Point{X: -q.X, Y: -q.Y})
		t.queryNode(child, childLocal, quadrantSize, depth+1, out)
	}
}
