package xmldoc

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/wippyai/xmlbin/errors"
)

// Namespace selects the namespace that addressed elements live in. The
// prefix is only used for elements created by Materialize.
type Namespace struct {
	URI    string
	Prefix string
}

// Step addresses the Index-th child element with the given local name.
// Index is 1-based; zero means the first.
type Step struct {
	Name  string
	Index uint32
}

func (s Step) String() string {
	if s.Index <= 1 {
		return s.Name
	}
	return s.Name + "[" + strconv.FormatUint(uint64(s.Index), 10) + "]"
}

// Steps converts a dotted element path into unindexed steps.
func Steps(path string) []Step {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, ".")
	steps := make([]Step, len(parts))
	for i, p := range parts {
		steps[i] = Step{Name: p}
	}
	return steps
}

// Format renders steps as a slash-separated location for diagnostics.
func Format(steps []Step) string {
	var b strings.Builder
	for _, s := range steps {
		b.WriteByte('/')
		b.WriteString(s.String())
	}
	return b.String()
}

// Document is an XML document addressed by element steps.
type Document struct {
	doc *etree.Document
	ns  Namespace
}

// New returns an empty document with an XML declaration.
func New(ns Namespace) *Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return &Document{doc: doc, ns: ns}
}

// Parse reads a document from r.
func Parse(r io.Reader, ns Namespace) (*Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errors.ParseFailed("document", err)
	}
	if doc.Root() == nil {
		return nil, errors.New(errors.PhaseLoad, errors.KindParse).
			Detail("document has no root element").
			Build()
	}
	return &Document{doc: doc, ns: ns}, nil
}

// ParseString reads a document from a string.
func ParseString(text string, ns Namespace) (*Document, error) {
	return Parse(strings.NewReader(text), ns)
}

// ParseFile reads a document from the named file.
func ParseFile(path string, ns Namespace) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
			Cause(err).
			Detail("open document %s", path).
			Build()
	}
	defer f.Close()
	return Parse(f, ns)
}

// Top returns the node above the root element. Steps resolved from Top
// start with the root element name.
func (d *Document) Top() *etree.Element {
	return &d.doc.Element
}

// Root returns the root element, or nil for an empty document.
func (d *Document) Root() *etree.Element {
	return d.doc.Root()
}

// Namespace returns the namespace the document is addressed in.
func (d *Document) Namespace() Namespace {
	return d.ns
}

// Find resolves steps below base. It returns nil when any step is missing.
func (d *Document) Find(base *etree.Element, steps []Step) *etree.Element {
	cur := base
	for _, s := range steps {
		cur, _ = d.child(cur, s)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Materialize resolves steps below base, creating missing elements. When a
// step's index is past the existing matches, empty siblings are appended
// until it exists.
func (d *Document) Materialize(base *etree.Element, steps []Step) *etree.Element {
	cur := base
	for _, s := range steps {
		next, count := d.child(cur, s)
		want := max(s.Index, 1)
		for next == nil {
			created := d.create(cur, s.Name)
			count++
			if count == want {
				next = created
			}
		}
		cur = next
	}
	return cur
}

// child returns the s.Index-th matching child of parent and the number of
// matches seen.
func (d *Document) child(parent *etree.Element, s Step) (*etree.Element, uint32) {
	want := max(s.Index, 1)
	var count uint32
	for _, e := range parent.ChildElements() {
		if e.Tag != s.Name || e.NamespaceURI() != d.ns.URI {
			continue
		}
		count++
		if count == want {
			return e, count
		}
	}
	return nil, count
}

func (d *Document) create(parent *etree.Element, name string) *etree.Element {
	tag := name
	if d.ns.Prefix != "" {
		tag = d.ns.Prefix + ":" + name
	}
	e := parent.CreateElement(tag)
	if lookupNamespace(parent, d.ns.Prefix) != d.ns.URI {
		if d.ns.Prefix != "" {
			e.CreateAttr("xmlns:"+d.ns.Prefix, d.ns.URI)
		} else {
			e.CreateAttr("xmlns", d.ns.URI)
		}
	}
	return e
}

func lookupNamespace(e *etree.Element, prefix string) string {
	for ; e != nil; e = e.Parent() {
		for _, a := range e.Attr {
			if prefix == "" && a.Space == "" && a.Key == "xmlns" {
				return a.Value
			}
			if prefix != "" && a.Space == "xmlns" && a.Key == prefix {
				return a.Value
			}
		}
	}
	return ""
}

// Text returns the character data of e with surrounding whitespace intact.
func Text(e *etree.Element) string {
	return e.Text()
}

// SetText replaces the character data of e.
func SetText(e *etree.Element, text string) {
	e.SetText(text)
}

// WriteTo writes the document indented by two spaces.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.doc.Indent(2)
	return d.doc.WriteTo(w)
}

// Bytes returns the indented document.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := d.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String returns the indented document, or an empty string on failure.
func (d *Document) String() string {
	b, err := d.Bytes()
	if err != nil {
		return ""
	}
	return string(b)
}
