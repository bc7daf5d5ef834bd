package schema

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/wippyai/xmlbin/errors"
)

// Schema is a parsed XSD document. Elements are resolved on demand; a Schema
// is not safe for concurrent use.
type Schema struct {
	TargetNamespace string

	elements     map[string]*etree.Element
	complexTypes map[string]*etree.Element
	simpleTypes  map[string]*etree.Element
	groups       map[string]*etree.Element
	order        []string

	resolved map[*etree.Element]*Type
	builtins map[string]*Type
}

// Load reads a schema from r.
func Load(r io.Reader) (*Schema, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, errors.ParseFailed("schema", err)
	}
	return fromDocument(doc)
}

// LoadFile reads a schema from the named file.
func LoadFile(path string) (*Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
			Cause(err).
			Detail("open schema %s", path).
			Build()
	}
	defer f.Close()
	return Load(f)
}

// Parse reads a schema from a string.
func Parse(text string) (*Schema, error) {
	return Load(strings.NewReader(text))
}

func fromDocument(doc *etree.Document) (*Schema, error) {
	root := doc.Root()
	if root == nil || root.Tag != "schema" || root.NamespaceURI() != Namespace {
		return nil, errors.New(errors.PhaseLoad, errors.KindParse).
			Detail("document root is not an xs:schema element").
			Build()
	}

	s := &Schema{
		TargetNamespace: root.SelectAttrValue("targetNamespace", ""),
		elements:        make(map[string]*etree.Element),
		complexTypes:    make(map[string]*etree.Element),
		simpleTypes:     make(map[string]*etree.Element),
		groups:          make(map[string]*etree.Element),
		resolved:        make(map[*etree.Element]*Type),
		builtins:        make(map[string]*Type),
	}

	for _, child := range xsdChildren(root) {
		name := child.SelectAttrValue("name", "")
		if name == "" {
			continue
		}
		switch child.Tag {
		case "element":
			if _, dup := s.elements[name]; !dup {
				s.order = append(s.order, name)
			}
			s.elements[name] = child
		case "complexType":
			s.complexTypes[name] = child
		case "simpleType":
			s.simpleTypes[name] = child
		case "group":
			s.groups[name] = child
		}
	}
	return s, nil
}

// Elements returns the names of the global element declarations in document
// order.
func (s *Schema) Elements() []string {
	return append([]string(nil), s.order...)
}

// Element resolves the global element declaration with the given name.
func (s *Schema) Element(name string) (*Node, error) {
	decl, ok := s.elements[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseLoad, "element", name)
	}
	return s.element(decl)
}

func (s *Schema) element(decl *etree.Element) (*Node, error) {
	minOccurs, maxOccurs, err := occurs(decl)
	if err != nil {
		return nil, err
	}

	if ref := decl.SelectAttrValue("ref", ""); ref != "" {
		_, local := s.qname(decl, ref)
		target, ok := s.elements[local]
		if !ok {
			return nil, errors.NotFound(errors.PhaseLoad, "element", ref)
		}
		node, err := s.element(target)
		if err != nil {
			return nil, err
		}
		node.MinOccurs, node.MaxOccurs = minOccurs, maxOccurs
		node.Markers = append(markers(decl), node.Markers...)
		return node, nil
	}

	node := &Node{
		Kind:      NodeElement,
		Name:      decl.SelectAttrValue("name", ""),
		MinOccurs: minOccurs,
		MaxOccurs: maxOccurs,
		Markers:   markers(decl),
	}

	if typeName := decl.SelectAttrValue("type", ""); typeName != "" {
		node.Type, err = s.namedType(decl, typeName)
		if err != nil {
			return nil, err
		}
		return node, nil
	}

	for _, child := range xsdChildren(decl) {
		switch child.Tag {
		case "complexType":
			node.Type, err = s.complexType(child)
		case "simpleType":
			node.Type, err = s.simpleType(child)
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		return node, nil
	}

	node.Type = s.builtin("anyType")
	return node, nil
}

func (s *Schema) namedType(ctx *etree.Element, qname string) (*Type, error) {
	space, local := s.qname(ctx, qname)
	if space == Namespace {
		return s.builtin(local), nil
	}
	if decl, ok := s.complexTypes[local]; ok {
		return s.complexType(decl)
	}
	if decl, ok := s.simpleTypes[local]; ok {
		return s.simpleType(decl)
	}
	return nil, errors.NotFound(errors.PhaseLoad, "type", qname)
}

func (s *Schema) builtin(name string) *Type {
	if t, ok := s.builtins[name]; ok {
		return t
	}
	t := &Type{Name: name, Builtin: name, Simple: name != "anyType"}
	s.builtins[name] = t
	return t
}

func (s *Schema) complexType(decl *etree.Element) (*Type, error) {
	if t, ok := s.resolved[decl]; ok {
		return t, nil
	}
	t := &Type{Name: decl.SelectAttrValue("name", "")}
	s.resolved[decl] = t

	content, err := s.complexContent(decl)
	if err != nil {
		delete(s.resolved, decl)
		return nil, err
	}
	t.Content = content
	return t, nil
}

func (s *Schema) complexContent(decl *etree.Element) (*Node, error) {
	for _, child := range xsdChildren(decl) {
		switch child.Tag {
		case "sequence", "choice", "group", "all":
			return s.particle(child)
		case "simpleContent":
			return &Node{Kind: NodeOther, Name: child.Tag, MinOccurs: 1, MaxOccurs: 1}, nil
		case "complexContent":
			return s.derivedContent(child)
		}
	}
	return nil, nil
}

// derivedContent resolves complexContent. An extension yields the base
// content followed by the extension particle; a restriction replaces it.
func (s *Schema) derivedContent(decl *etree.Element) (*Node, error) {
	for _, child := range xsdChildren(decl) {
		if child.Tag != "extension" && child.Tag != "restriction" {
			continue
		}

		own, err := s.complexContent(child)
		if err != nil {
			return nil, err
		}
		if child.Tag == "restriction" {
			return own, nil
		}

		base, err := s.namedType(child, child.SelectAttrValue("base", ""))
		if err != nil {
			return nil, err
		}
		switch {
		case base.Content == nil:
			return own, nil
		case own == nil:
			return base.Content, nil
		}
		return &Node{
			Kind:      NodeSequence,
			Name:      "sequence",
			MinOccurs: 1,
			MaxOccurs: 1,
			Children:  []*Node{base.Content, own},
		}, nil
	}
	return nil, nil
}

func (s *Schema) particle(decl *etree.Element) (*Node, error) {
	switch decl.Tag {
	case "element":
		return s.element(decl)
	case "group":
		return s.group(decl)
	}

	minOccurs, maxOccurs, err := occurs(decl)
	if err != nil {
		return nil, err
	}
	node := &Node{Name: decl.Tag, MinOccurs: minOccurs, MaxOccurs: maxOccurs}

	switch decl.Tag {
	case "sequence":
		node.Kind = NodeSequence
	case "choice":
		node.Kind = NodeChoice
	default:
		node.Kind = NodeOther
		return node, nil
	}

	for _, child := range xsdChildren(decl) {
		if child.Tag == "annotation" {
			continue
		}
		p, err := s.particle(child)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, p)
	}
	return node, nil
}

// group inlines the model group referenced by decl, carrying the occurrence
// bounds of the reference.
func (s *Schema) group(decl *etree.Element) (*Node, error) {
	ref := decl.SelectAttrValue("ref", "")
	if ref == "" {
		return &Node{Kind: NodeOther, Name: decl.Tag, MinOccurs: 1, MaxOccurs: 1}, nil
	}
	_, local := s.qname(decl, ref)
	target, ok := s.groups[local]
	if !ok {
		return nil, errors.NotFound(errors.PhaseLoad, "group", ref)
	}

	minOccurs, maxOccurs, err := occurs(decl)
	if err != nil {
		return nil, err
	}
	for _, child := range xsdChildren(target) {
		if child.Tag == "annotation" {
			continue
		}
		node, err := s.particle(child)
		if err != nil {
			return nil, err
		}
		node.MinOccurs, node.MaxOccurs = minOccurs, maxOccurs
		return node, nil
	}
	return nil, errors.New(errors.PhaseLoad, errors.KindParse).
		Detail("group %s has no content", ref).
		Build()
}

func (s *Schema) simpleType(decl *etree.Element) (*Type, error) {
	if t, ok := s.resolved[decl]; ok {
		return t, nil
	}
	t := &Type{Name: decl.SelectAttrValue("name", ""), Simple: true}
	s.resolved[decl] = t

	for _, child := range xsdChildren(decl) {
		switch child.Tag {
		case "restriction":
			if err := s.restriction(t, child); err != nil {
				delete(s.resolved, decl)
				return nil, err
			}
			return t, nil
		case "list", "union":
			t.Builtin = child.Tag
			return t, nil
		}
	}
	t.Builtin = "anySimpleType"
	return t, nil
}

func (s *Schema) restriction(t *Type, decl *etree.Element) error {
	var base *Type
	var err error
	if name := decl.SelectAttrValue("base", ""); name != "" {
		base, err = s.namedType(decl, name)
	} else {
		for _, child := range xsdChildren(decl) {
			if child.Tag == "simpleType" {
				base, err = s.simpleType(child)
				break
			}
		}
	}
	if err != nil {
		return err
	}
	if base == nil {
		return errors.New(errors.PhaseLoad, errors.KindParse).
			Detail("restriction of %q has no base type", t.Name).
			Build()
	}

	own, err := facets(decl)
	if err != nil {
		return err
	}
	t.Builtin = base.Builtin
	t.Facets = base.Facets.merge(own)
	return nil
}

func facets(decl *etree.Element) (Facets, error) {
	var f Facets
	for _, child := range xsdChildren(decl) {
		value := child.SelectAttrValue("value", "")
		switch child.Tag {
		case "enumeration":
			f.Enumeration = append(f.Enumeration, value)
		case "maxLength", "length":
			n, err := strconv.ParseUint(strings.TrimSpace(value), 10, 32)
			if err != nil {
				return f, errors.New(errors.PhaseLoad, errors.KindParse).
					Value(value).
					Cause(err).
					Detail("invalid %s facet", child.Tag).
					Build()
			}
			if child.Tag == "length" {
				f.Length, f.HasLength = uint32(n), true
			} else {
				f.MaxLength, f.HasMaxLength = uint32(n), true
			}
		}
	}
	return f, nil
}

func occurs(decl *etree.Element) (uint32, uint32, error) {
	parse := func(attr string) (uint32, error) {
		value := strings.TrimSpace(decl.SelectAttrValue(attr, "1"))
		if attr == "maxOccurs" && value == "unbounded" {
			return Unbounded, nil
		}
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return 0, errors.New(errors.PhaseLoad, errors.KindParse).
				Value(value).
				Cause(err).
				Detail("invalid %s on %s", attr, decl.Tag).
				Build()
		}
		return uint32(n), nil
	}

	minOccurs, err := parse("minOccurs")
	if err != nil {
		return 0, 0, err
	}
	maxOccurs, err := parse("maxOccurs")
	if err != nil {
		return 0, 0, err
	}
	return minOccurs, maxOccurs, nil
}

// markers collects prefixed attributes other than namespace declarations.
func markers(decl *etree.Element) []Marker {
	var out []Marker
	for i := range decl.Attr {
		a := &decl.Attr[i]
		if a.Space == "" || a.Space == "xmlns" || a.Space == "xml" {
			continue
		}
		space := a.NamespaceURI()
		if space == "" {
			space = a.Space
		}
		out = append(out, Marker{Space: space, Name: a.Key, Value: a.Value})
	}
	return out
}

// qname splits a QName attribute value and resolves its prefix in the
// scope of ctx.
func (s *Schema) qname(ctx *etree.Element, value string) (space, local string) {
	value = strings.TrimSpace(value)
	prefix, local, ok := strings.Cut(value, ":")
	if !ok {
		prefix, local = "", value
	}
	return lookupNamespace(ctx, prefix), local
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

func xsdChildren(e *etree.Element) []*etree.Element {
	var out []*etree.Element
	for _, child := range e.ChildElements() {
		if child.NamespaceURI() == Namespace {
			out = append(out, child)
		}
	}
	return out
}
