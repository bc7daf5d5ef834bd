package schema

import (
	"math"
)

// Namespace is the XML Schema namespace URI.
const Namespace = "http://www.w3.org/2001/XMLSchema"

// Unbounded is the MaxOccurs value of maxOccurs="unbounded".
const Unbounded = math.MaxUint32

// NodeKind identifies a content model node.
type NodeKind uint8

const (
	NodeElement NodeKind = iota
	NodeSequence
	NodeChoice
	// NodeOther covers particles the converter cannot lay out
	// (all, any, simpleContent, ...). Name holds the XSD tag.
	NodeOther
)

func (k NodeKind) String() string {
	switch k {
	case NodeElement:
		return "element"
	case NodeSequence:
		return "sequence"
	case NodeChoice:
		return "choice"
	default:
		return "other"
	}
}

// Node is one particle of a content model.
type Node struct {
	Type      *Type    // elements only
	Name      string   // element name, or XSD tag for NodeOther
	Children  []*Node  // sequence and choice particles
	Markers   []Marker // extension attributes on elements
	MinOccurs uint32
	MaxOccurs uint32
	Kind      NodeKind
}

// Marker is a non-schema attribute attached to an element declaration.
type Marker struct {
	Space string // namespace URI, or prefix when undeclared
	Name  string
	Value string
}

// Marker returns the marker with the given local name.
func (n *Node) Marker(name string) (Marker, bool) {
	for _, m := range n.Markers {
		if m.Name == name {
			return m, true
		}
	}
	return Marker{}, false
}

// Type is a resolved simple or complex type.
//
// Types are shared between every element that uses them; a complex type may
// reach itself through its own content.
type Type struct {
	Name    string // local name, empty for anonymous types
	Builtin string // underlying XSD datatype of a simple type, e.g. "int"
	Content *Node  // content particle of a complex type, nil when empty
	Facets  Facets
	Simple  bool
}

// Facets holds the restriction facets relevant to fixed-width layouts.
type Facets struct {
	Enumeration  []string
	MaxLength    uint32
	Length       uint32
	HasMaxLength bool
	HasLength    bool
}

func (f Facets) merge(child Facets) Facets {
	out := f
	if child.HasMaxLength {
		out.MaxLength, out.HasMaxLength = child.MaxLength, true
	}
	if child.HasLength {
		out.Length, out.HasLength = child.Length, true
	}
	if len(child.Enumeration) > 0 {
		out.Enumeration = child.Enumeration
	}
	return out
}
