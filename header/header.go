package header

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/xmlbin/errors"
	"github.com/wippyai/xmlbin/layout"
)

// Emit returns the C struct declarations mirroring root, one line per
// element. Nested compound types are declared before the struct using them;
// the root type comes last. rootName names the root type and is stripped
// from the front of member identifiers.
func Emit(root *layout.Field, rootName string) ([]string, error) {
	if root == nil || !root.IsCompound() {
		return nil, errors.InvalidInput(errors.PhaseEmit, "root field must be a compound")
	}
	e := &emitter{root: rootName, names: make(map[*layout.Field]string), used: make(map[string]int)}
	e.name(root)
	e.compound(root)
	return e.lines, nil
}

type emitter struct {
	root  string
	lines []string
	names map[*layout.Field]string
	used  map[string]int
}

// name assigns a unique type name to every compound under c, in
// declaration order.
func (e *emitter) name(c *layout.Field) {
	base := c.Ident(e.root) + "_t"
	n := e.used[base]
	e.used[base] = n + 1
	if n > 0 {
		base = strings.TrimSuffix(base, "_t") + "_" + strconv.Itoa(n+1) + "_t"
	}
	e.names[c] = base

	for _, f := range c.Fields {
		if f.IsCompound() {
			e.name(f)
		}
	}
}

func (e *emitter) compound(c *layout.Field) {
	for _, f := range c.Fields {
		if f.IsCompound() {
			e.compound(f)
		}
	}

	e.add(fmt.Sprintf("//! %s size=%d number=%d", c.Path, c.Size()/c.Number, c.Number))
	e.add("typedef struct {")
	for _, f := range c.Fields {
		e.member(f)
	}
	e.add(fmt.Sprintf("} %s;", e.names[c]))
	e.add("")
}

func (e *emitter) member(f *layout.Field) {
	ident := f.Ident(e.root)

	switch f.Kind {
	case layout.KindPadding:
		e.add(fmt.Sprintf("\tuint8_t %s[%d];", ident, f.Size()))
		return
	case layout.KindCompound:
		e.add(fmt.Sprintf("\t//! %s offset=%d size=%d align=%d kind=%s number=%d",
			f.Path, f.Offset, f.Size(), f.Align(), f.Kind, f.Number))
		if f.Number > 1 {
			e.add(fmt.Sprintf("\t%s %s[%d];", e.names[f], ident, f.Number))
		} else {
			e.add(fmt.Sprintf("\t%s %s;", e.names[f], ident))
		}
		return
	}

	e.add(fmt.Sprintf("\t//! %s offset=%d size=%d align=%d kind=%s",
		f.Path, f.Offset, f.Size(), f.Align(), f.Kind))
	switch f.Kind {
	case layout.KindString, layout.KindDateTime, layout.KindHexBinary:
		e.add(fmt.Sprintf("\t%s %s[%d];", f.Kind.CType(), ident, f.Size()))
	default:
		e.add(fmt.Sprintf("\t%s %s;", f.Kind.CType(), ident))
	}
}

func (e *emitter) add(line string) {
	e.lines = append(e.lines, line)
}
