package hangar

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
)

// QueryNode is a node in a dynamic And/Or/Not query tree: anything that
// can decide whether an archetype signature matches.
type QueryNode interface {
	Evaluate(sig Signature) bool
}

// QueryOperation names a composite node's boolean operator.
type QueryOperation int

const (
	OpAnd QueryOperation = iota
	OpOr
	OpNot
)

type compositeNode struct {
	op         QueryOperation
	children   []QueryNode
	components []ComponentID
}

type leafNode struct {
	components []ComponentID
}

func (n *leafNode) Evaluate(sig Signature) bool {
	for _, c := range n.components {
		if !sig.Contains(c) {
			return false
		}
	}
	return true
}

func (n *compositeNode) Evaluate(sig Signature) bool {
	switch n.op {
	case OpAnd:
		for _, c := range n.components {
			if !sig.Contains(c) {
				return false
			}
		}
		for _, child := range n.children {
			if !child.Evaluate(sig) {
				return false
			}
		}
		return true
	case OpOr:
		for _, c := range n.components {
			if sig.Contains(c) {
				return true
			}
		}
		for _, child := range n.children {
			if child.Evaluate(sig) {
				return true
			}
		}
		return false
	case OpNot:
		for _, c := range n.components {
			if sig.Contains(c) {
				return false
			}
		}
		for _, child := range n.children {
			if child.Evaluate(sig) {
				return false
			}
		}
		return true
	}
	return false
}

// DynamicQuery is a composable, reflective And/Or/Not filter over
// archetype signatures, for ad hoc queries the typed arity API (Query0…
// Query4) can't express, such as "has Position but not Dead".
//
// Grounded on the teacher's query.go (query/compositeNode/leafNode):
// same tree shape and item-processing convention, with Evaluate
// re-pointed at a bare Signature instead of an Archetype+Storage pair.
type DynamicQuery struct {
	root QueryNode
	w    *World
}

// NewDynamicQuery creates an empty DynamicQuery bound to w.
func NewDynamicQuery(w *World) *DynamicQuery {
	return &DynamicQuery{w: w}
}

func newCompositeNode(op QueryOperation, components []ComponentID) *compositeNode {
	return &compositeNode{op: op, children: make([]QueryNode, 0), components: components}
}

// And creates an AND node requiring every item. The query's root is set
// to the first node built, matching the teacher's convention.
func (q *DynamicQuery) And(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpAnd, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

// Or creates an OR node matching any item.
func (q *DynamicQuery) Or(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpOr, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

// Not creates a NOT node matching when no item matches.
func (q *DynamicQuery) Not(items ...interface{}) QueryNode {
	components, children := q.processItems(items...)
	node := newCompositeNode(OpNot, components)
	node.children = children
	if q.root == nil {
		q.root = node
	}
	return node
}

func (q *DynamicQuery) validateQueryItems(items ...interface{}) error {
	for _, item := range items {
		switch item.(type) {
		case Component, []Component, QueryNode:
			continue
		default:
			return fmt.Errorf("invalid query item type: %T. Only Component, []Component, or QueryNode are allowed", item)
		}
	}
	return nil
}

func (q *DynamicQuery) processItems(items ...interface{}) ([]ComponentID, []QueryNode) {
	if err := q.validateQueryItems(items...); err != nil {
		panic(bark.AddTrace(err))
	}
	components := make([]ComponentID, 0)
	children := make([]QueryNode, 0)
	for _, item := range items {
		switch v := item.(type) {
		case Component:
			components = append(components, v.ID())
		case []Component:
			for _, c := range v {
				components = append(components, c.ID())
			}
		case QueryNode:
			children = append(children, v)
		}
	}
	return components, children
}

// Evaluate implements QueryNode for the query's root.
func (q *DynamicQuery) Evaluate(sig Signature) bool {
	if q.root == nil {
		return false
	}
	return q.root.Evaluate(sig)
}

// Cursor returns a Cursor over every archetype currently matching this
// query's tree. A flat AND-only tree is routed through the registry's
// indexed planner; any tree using Or/Not falls back to a full scan of
// every registered archetype evaluated through the tree — the same cost
// profile the teacher itself pays, since it has no inverted index at
// all.
func (q *DynamicQuery) Cursor() *Cursor {
	if and, ok := q.root.(*compositeNode); ok && and.op == OpAnd && len(and.children) == 0 {
		return newCursor(q.w.registry, q.w.registry.matchAll(and.components))
	}
	var matched []ArchetypeID
	for _, aid := range q.w.registry.allArchetypeIDs() {
		if q.Evaluate(q.w.registry.archetype(aid).signature) {
			matched = append(matched, aid)
		}
	}
	return newCursor(q.w.registry, matched)
}
