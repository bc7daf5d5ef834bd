package layout

import (
	"github.com/goccy/go-json"
)

// Entry is one row of a flattened layout description.
type Entry struct {
	Path   string   `json:"path"`
	Ident  string   `json:"ident"`
	Kind   string   `json:"kind"`
	Values []string `json:"values,omitempty"`
	Offset uint32   `json:"offset"`
	Size   uint32   `json:"size"`
	Align  uint32   `json:"align"`
	Number uint32   `json:"number"`
	Depth  int      `json:"depth"`
}

// Describe flattens the tree under root into entries in insertion order.
// Offsets stay relative to the enclosing compound.
func Describe(root *Field, rootName string) []Entry {
	var out []Entry
	root.Walk(func(f *Field, depth int) bool {
		out = append(out, Entry{
			Path:   f.Path,
			Ident:  f.Ident(rootName),
			Kind:   f.Kind.String(),
			Values: f.Values,
			Offset: f.Offset,
			Size:   f.Size(),
			Align:  f.Align(),
			Number: f.Number,
			Depth:  depth,
		})
		return true
	})
	return out
}

// DescribeJSON returns the Describe output as indented JSON.
func DescribeJSON(root *Field, rootName string) ([]byte, error) {
	return json.MarshalIndent(Describe(root, rootName), "", "  ")
}
