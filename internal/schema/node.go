// Package schema holds the in-memory model of a JSON Schema document and the
// loader which builds it from JSON text.
package schema

import (
	"slices"
)

// Node is one schema within a document: an ordered set of keywords plus the
// metadata used to name it in error messages.
// A Node built from a $ref carries the reference string and delegates its
// keywords to the referenced node.
type Node struct {
	ID    string // $id (or draft-04 id)
	Title string
	Ref   string // the $ref which produced this node, if any

	keywords []Keyword
	target   *Node
}

// NewNode creates a node from the given keywords. Keywords are held in
// evaluation order regardless of the order given; when a keyword appears
// more than once the last one wins.
func NewNode(keywords ...Keyword) *Node {
	n := &Node{}
	n.setKeywords(keywords)
	return n
}

// NewRef creates a node standing for a $ref to target.
func NewRef(ref string, target *Node) *Node {
	return &Node{Ref: ref, target: target}
}

func (n *Node) setKeywords(keywords []Keyword) {
	kws := make([]Keyword, 0, len(keywords))
	for _, k := range keywords {
		if k == nil {
			continue
		}
		i := slices.IndexFunc(kws, func(e Keyword) bool { return e.Name() == k.Name() })
		if i >= 0 {
			kws[i] = k
			continue
		}
		kws = append(kws, k)
	}
	slices.SortStableFunc(kws, func(a, b Keyword) int { return rank(a) - rank(b) })
	n.keywords = kws
}

// WithID returns a copy of n with $id set.
func (n *Node) WithID(id string) *Node {
	cp := *n
	cp.ID = id
	return &cp
}

// WithTitle returns a copy of n with the title set.
func (n *Node) WithTitle(title string) *Node {
	cp := *n
	cp.Title = title
	return &cp
}

// Keywords returns the keywords of the node in evaluation order.
// For a reference node, these are the keywords of the referenced node.
func (n *Node) Keywords() []Keyword {
	t := n.Target()
	if t == nil {
		return nil
	}
	return slices.Clone(t.keywords)
}

// Keyword returns the keyword with the given name, if the node has it.
func (n *Node) Keyword(name string) (Keyword, bool) {
	for _, k := range n.Keywords() {
		if k.Name() == name {
			return k, true
		}
	}
	return nil, false
}

// IsRef reports whether n stands for a $ref.
func (n *Node) IsRef() bool {
	return n.target != nil
}

// Target follows $ref delegation and returns the node holding the keywords.
// It returns nil if the chain of references loops without reaching keywords.
func (n *Node) Target() *Node {
	seen := map[*Node]bool{}
	for cur := n; cur != nil; cur = cur.target {
		if cur.target == nil {
			return cur
		}
		if seen[cur] {
			return nil
		}
		seen[cur] = true
	}
	return nil
}
