package fixtures

import (
	"github.com/cssflow/core/boxtree"
	"github.com/cssflow/core/unit"
)

func toUnit(v interface{}) (unit.Unit, bool) {
	switch x := v.(type) {
	case int:
		return unit.Unit(x), true
	case int32:
		return unit.Unit(x), true
	case float64:
		return unit.Unit(int32(x)), true
	default:
		return 0, false
	}
}

// Compile flattens a BoxGraph into a single-subtree boxtree.Document: a
// pre-order block-box array with skip counts, and a stacking-context tree
// rooted at the graph's root box (the root's own stacking context, per the
// same convention drawlist.Build assumes).
//
// A box is a stacking-context root if its "stacking_context" attribute is
// true; the graph's root box always is. "z_index" (int, default 0) sets
// the stacking context's z-index; "ifcs" ([]boxtree.IFCId) lists the IFCs
// painted in that context. A box with "ifc" == true compiles to an
// ifc_container leaf instead of an ordinary block and is not descended
// into.
func Compile(g *BoxGraph) (*boxtree.Document, error) {
	var nodes []boxtree.Node
	idxOf := make(map[string]int, len(g.order))
	isSC := make(map[string]bool, len(g.order))

	var walkBox func(id string)
	walkBox = func(id string) {
		start := len(nodes)
		idxOf[id] = start

		attrs := g.nodes[id].attrs
		w, _ := toUnit(attrs["width"])
		h, _ := toUnit(attrs["height"])
		isIFC, _ := attrs["ifc"].(bool)
		sc, _ := attrs["stacking_context"].(bool)
		isSC[id] = sc || id == g.root

		kind := boxtree.KindBlock
		var ifcID boxtree.IFCId
		if isIFC {
			kind = boxtree.KindIFCContainer
			if id64, ok := attrs["ifc_id"].(int); ok {
				ifcID = boxtree.IFCId(id64)
			}
		}

		nodes = append(nodes, boxtree.Node{
			Kind: kind,
			IFC:  ifcID,
			Offsets: boxtree.BoxOffsets{
				Border: boxtree.EdgeBox{Size: boxtree.Size{W: w, H: h}},
			},
			StackingContext: boxtree.NoStackingContext,
		})

		if !isIFC {
			for _, child := range g.Children(id) {
				walkBox(child)
			}
		}
		nodes[start].Skip = len(nodes) - start
	}
	walkBox(g.root)

	stacking := buildSCSubtree(g, g.root, idxOf, isSC)

	return &boxtree.Document{
		Subtrees: []boxtree.Subtree{{Nodes: nodes}},
		Stacking: boxtree.StackingTree{Nodes: stacking},
		IFCs:     map[boxtree.IFCId]boxtree.IFC{},
	}, nil
}

func childSCs(g *BoxGraph, id string, idxOf map[string]int, isSC map[string]bool) []boxtree.StackingNode {
	var out []boxtree.StackingNode
	for _, c := range g.Children(id) {
		if isSC[c] {
			out = append(out, buildSCSubtree(g, c, idxOf, isSC)...)
		} else {
			out = append(out, childSCs(g, c, idxOf, isSC)...)
		}
	}
	return out
}

func buildSCSubtree(g *BoxGraph, id string, idxOf map[string]int, isSC map[string]bool) []boxtree.StackingNode {
	z, _ := g.Attr(id, "z_index").(int)
	self := boxtree.StackingNode{Subtree: 0, Index: idxOf[id], ZIndex: int32(z)}
	if l, ok := g.Attr(id, "ifcs").([]boxtree.IFCId); ok {
		self.IFCs = l
	}
	rest := childSCs(g, id, idxOf, isSC)
	all := append([]boxtree.StackingNode{self}, rest...)
	all[0].Skip = len(all)
	return all
}
