// Package fixtures builds synthetic box trees and stacking-context trees
// for tests. BoxGraph is adapted from the teacher's compound-graph
// representation (d2dagrelayout/godagre.Graph): a named, parent/child tree
// with a type-erased attribute bag per node, generalized here from graph
// layout to box-tree shape description.
package fixtures

import "fmt"

// BoxGraph describes a box tree before it is compiled into a boxtree.Document
// (see Compile): a named tree of boxes, each with free-form attributes.
type BoxGraph struct {
	nodes    map[string]*BoxNode
	parent   map[string]string
	children map[string][]string
	order    []string // insertion order, for deterministic compilation
	root     string
}

// BoxNode is one node of a BoxGraph.
type BoxNode struct {
	ID    string
	attrs map[string]interface{}
}

// NewBoxGraph creates an empty graph whose root box is named rootID.
func NewBoxGraph(rootID string) *BoxGraph {
	g := &BoxGraph{
		nodes:    make(map[string]*BoxNode),
		parent:   make(map[string]string),
		children: make(map[string][]string),
		root:     rootID,
	}
	g.addNode(rootID, nil)
	return g
}

func (g *BoxGraph) addNode(id string, attrs map[string]interface{}) {
	if _, exists := g.nodes[id]; exists {
		return
	}
	n := &BoxNode{ID: id, attrs: make(map[string]interface{})}
	for k, v := range attrs {
		n.attrs[k] = v
	}
	g.nodes[id] = n
	g.order = append(g.order, id)
}

// AddBox adds a child box under parent with the given attributes
// ("width", "height", "stacking_context", "z_index", "ifcs", "ifc" and
// "ifc_id" are recognized by Compile; anything else is carried but
// ignored).
func (g *BoxGraph) AddBox(parent, id string, attrs map[string]interface{}) error {
	if _, ok := g.nodes[parent]; !ok {
		return fmt.Errorf("fixtures: unknown parent box %q", parent)
	}
	g.addNode(id, attrs)
	g.parent[id] = parent
	g.children[parent] = append(g.children[parent], id)
	return nil
}

// Attr reads one attribute of a box, or nil if unset.
func (g *BoxGraph) Attr(id, key string) interface{} {
	n, ok := g.nodes[id]
	if !ok {
		return nil
	}
	return n.attrs[key]
}

// Children returns id's children in insertion order.
func (g *BoxGraph) Children(id string) []string {
	return g.children[id]
}

// Root returns the graph's root box id.
func (g *BoxGraph) Root() string {
	return g.root
}

// Order returns every box id in the order it was added (root first).
func (g *BoxGraph) Order() []string {
	return g.order
}
