// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package unityyaml

import (
	"gopkg.in/yaml.v3"
)

// Node is a read-only view over a decoded YAML value. Scalars are kept as
// written: Unity GUIDs such as 0000000000000000e000000000000000 would be
// mangled by numeric resolution. The zero Node is valid and empty.
type Node struct {
	n *yaml.Node
}

func (n Node) unwrap() Node {
	cur := n.n
	for cur != nil {
		switch cur.Kind {
		case yaml.DocumentNode:
			if len(cur.Content) == 0 {
				return Node{}
			}
			cur = cur.Content[0]
		case yaml.AliasNode:
			cur = cur.Alias
		default:
			return Node{n: cur}
		}
	}
	return Node{}
}

// IsZero reports whether the node is missing.
func (n Node) IsZero() bool {
	return n.n == nil
}

func (n Node) IsMap() bool {
	return n.n != nil && n.n.Kind == yaml.MappingNode
}

func (n Node) IsSeq() bool {
	return n.n != nil && n.n.Kind == yaml.SequenceNode
}

// Has reports whether the mapping holds key.
func (n Node) Has(key string) bool {
	return !n.child(key).IsZero()
}

func (n Node) child(key string) Node {
	if !n.IsMap() {
		return Node{}
	}
	for i := 0; i+1 < len(n.n.Content); i += 2 {
		if n.n.Content[i].Value == key {
			return Node{n: n.n.Content[i+1]}.unwrap()
		}
	}
	return Node{}
}

// Get walks nested mapping keys. Missing keys yield the zero Node.
func (n Node) Get(path ...string) Node {
	cur := n
	for _, key := range path {
		cur = cur.child(key)
		if cur.IsZero() {
			return Node{}
		}
	}
	return cur
}

// Scalar returns the raw text of a scalar node. Null scalars report false.
func (n Node) Scalar() (string, bool) {
	if n.n == nil || n.n.Kind != yaml.ScalarNode || n.n.Tag == "!!null" {
		return "", false
	}
	return n.n.Value, true
}

// String returns the scalar text or "" when absent.
func (n Node) String() string {
	s, _ := n.Scalar()
	return s
}

// Items returns the elements of a sequence node.
func (n Node) Items() []Node {
	if !n.IsSeq() {
		return nil
	}
	items := make([]Node, 0, len(n.n.Content))
	for _, c := range n.n.Content {
		items = append(items, Node{n: c}.unwrap())
	}
	return items
}
