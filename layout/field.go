package layout

import (
	"strconv"
	"strings"

	"github.com/wippyai/xmlbin/errors"
	"github.com/wippyai/xmlbin/layout/internal/align"
)

// CompoundAlign is the fixed alignment of every compound field.
const CompoundAlign = 4

// Field is a node of the compiled layout tree.
//
// Offsets are relative to the enclosing compound and are assigned by Append.
// A tree is built once by the compiler and must not be modified afterwards;
// all codec operations only read it.
type Field struct {
	Path    string   // dotted element path; synthetic name for padding
	Values  []string // enum values in declaration order
	Pattern string   // datetime storage pattern
	Fields  []*Field // compound children in insertion order
	Offset  uint32
	Length  uint32 // string/hexbinary capacity, padding width
	Number  uint32 // compound repetitions
	Kind    Kind

	used   uint32
	pads   int
	layout string
}

func newLeaf(kind Kind, path string) *Field {
	return &Field{Kind: kind, Path: path, Number: 1}
}

// Scalar leaf constructors. Each takes the dotted element path; size and
// alignment follow from the kind.
func NewInt32(path string) *Field   { return newLeaf(KindInt32, path) }
func NewUInt32(path string) *Field  { return newLeaf(KindUInt32, path) }
func NewInt16(path string) *Field   { return newLeaf(KindInt16, path) }
func NewUInt16(path string) *Field  { return newLeaf(KindUInt16, path) }
func NewInt8(path string) *Field    { return newLeaf(KindInt8, path) }
func NewUInt8(path string) *Field   { return newLeaf(KindUInt8, path) }
func NewInt64(path string) *Field   { return newLeaf(KindInt64, path) }
func NewUInt64(path string) *Field  { return newLeaf(KindUInt64, path) }
func NewBoolean(path string) *Field { return newLeaf(KindBoolean, path) }

// NewString returns a fixed-capacity, NUL-terminated string field.
func NewString(path string, length uint32) *Field {
	f := newLeaf(KindString, path)
	f.Length = length
	return f
}

// NewEnum returns a field storing the position of its text in values.
func NewEnum(path string, values []string) *Field {
	f := newLeaf(KindEnum, path)
	f.Values = append([]string(nil), values...)
	return f
}

// NewHexBinary returns a fixed-length raw byte field.
func NewHexBinary(path string, length uint32) *Field {
	f := newLeaf(KindHexBinary, path)
	f.Length = length
	return f
}

// NewDateTime returns a field storing a timestamp as pattern text followed by
// a NUL byte. The pattern uses yyyy, MM, dd, HH, mm and ss tokens.
func NewDateTime(path, pattern string) (*Field, error) {
	goLayout, err := DateTimeLayout(pattern)
	if err != nil {
		return nil, err
	}
	f := newLeaf(KindDateTime, path)
	f.Pattern = pattern
	f.layout = goLayout
	return f, nil
}

// NewCompound returns an empty compound repeated number times.
func NewCompound(path string, number uint32) *Field {
	if number == 0 {
		number = 1
	}
	return &Field{Kind: KindCompound, Path: path, Number: number}
}

// Size returns the number of bytes the field occupies in its parent.
//
// A compound with Number == 1 is rounded up to CompoundAlign; a repeated
// compound uses its unrounded running size per repetition.
func (f *Field) Size() uint32 {
	switch f.Kind {
	case KindString, KindHexBinary, KindPadding:
		return f.Length
	case KindDateTime:
		return uint32(len(f.Pattern)) + 1
	case KindCompound:
		size := f.used
		if f.Number == 1 {
			size = align.To(size, CompoundAlign)
		}
		return size * f.Number
	default:
		return f.Kind.fixedSize()
	}
}

// Align returns the field's alignment requirement.
func (f *Field) Align() uint32 {
	return f.Kind.Align()
}

// UnitSize returns the unrounded byte size of one repetition of a compound,
// or Size for any other field.
func (f *Field) UnitSize() uint32 {
	if f.Kind == KindCompound {
		return f.used
	}
	return f.Size()
}

// EncodedSize returns the length of the buffer produced when encoding the
// field on its own.
func (f *Field) EncodedSize() int {
	if f.Kind == KindCompound {
		return int(f.used) * int(f.Number)
	}
	return int(f.Size())
}

// IsCompound reports whether the field owns children.
func (f *Field) IsCompound() bool {
	return f.Kind == KindCompound
}

// Append places field after the compound's current content, inserting a
// padding field first when the running size is not a multiple of the
// field's alignment. It must only be called while the tree is being built.
func (f *Field) Append(field *Field) {
	if f.Kind != KindCompound {
		panic("layout: Append on " + f.Kind.String() + " field " + f.Path)
	}

	if skip := align.Padding(f.used, field.Align()); skip != 0 {
		pad := &Field{
			Kind:   KindPadding,
			Path:   "padding_" + strconv.Itoa(f.pads),
			Length: skip,
			Number: 1,
			Offset: f.used,
		}
		f.pads++
		f.Fields = append(f.Fields, pad)
		f.used += pad.Length
	}

	field.Offset = f.used
	f.Fields = append(f.Fields, field)
	f.used += field.Size()
}

// Segments splits the field path into element names.
func (f *Field) Segments() []string {
	if f.Path == "" {
		return nil
	}
	return strings.Split(f.Path, ".")
}

// Ident returns a flat C identifier for the field: path segments joined by
// '_' with a leading root element segment dropped. Fields whose path reduces
// to nothing are named after root.
func (f *Field) Ident(root string) string {
	if f.Kind == KindPadding {
		return f.Path
	}
	segs := f.Segments()
	if len(segs) > 0 && segs[0] == root {
		segs = segs[1:]
	}
	if len(segs) == 0 {
		return root
	}
	return strings.Join(segs, "_")
}

// Walk visits f and its descendants depth-first in insertion order. The
// callback receives the nesting depth; returning false skips children.
func (f *Field) Walk(fn func(field *Field, depth int) bool) {
	f.walk(fn, 0)
}

func (f *Field) walk(fn func(field *Field, depth int) bool, depth int) {
	if !fn(f, depth) {
		return
	}
	for _, child := range f.Fields {
		child.walk(fn, depth+1)
	}
}

func (f *Field) errPath() []string {
	return f.Segments()
}

func (f *Field) checkWindow(phase errors.Phase, b []byte) error {
	if len(b) < int(f.Size()) {
		return errors.OutOfBounds(phase, f.errPath(), int(f.Size()), len(b))
	}
	return nil
}
