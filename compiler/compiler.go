package compiler

import (
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/xmlbin/errors"
	"github.com/wippyai/xmlbin/layout"
	"github.com/wippyai/xmlbin/schema"
)

// Extension markers recognised on element declarations, matched by local
// name.
const (
	MarkerSkipBinarization        = "skipBinarization"
	MarkerRestrictToSingleScanner = "restrictToSingleScanner"
)

// Options tunes leaf dispatch.
type Options struct {
	// DateTimePattern is the storage pattern of xs:dateTime leaves.
	// Defaults to layout.DefaultDateTimePattern.
	DateTimePattern string
	// AllowLong maps xs:long to an int64 leaf instead of rejecting it.
	AllowLong bool
}

func (o Options) withDefaults() Options {
	if o.DateTimePattern == "" {
		o.DateTimePattern = layout.DefaultDateTimePattern
	}
	return o
}

// Compile walks the global element named root and returns the root compound
// of its layout. The compound is named after root and its descendants carry
// paths starting at root.
func Compile(s *schema.Schema, root string, opts Options) (*layout.Field, error) {
	node, err := s.Element(root)
	if err != nil {
		if errors.IsKind(err, errors.KindNotFound) {
			return nil, errors.New(errors.PhaseCompile, errors.KindSchemaUnsupportedConstruct).
				Path(root).
				Cause(err).
				Detail("no element named %s in the schema", root).
				Build()
		}
		return nil, err
	}
	return CompileNode(node, opts)
}

// CompileNode compiles an already resolved element declaration.
func CompileNode(node *schema.Node, opts Options) (*layout.Field, error) {
	if node == nil || node.Kind != schema.NodeElement {
		return nil, errors.InvalidInput(errors.PhaseCompile, "root must be an element declaration")
	}

	w := &walker{
		opts:   opts.withDefaults(),
		log:    Logger(),
		active: make(map[*schema.Type]bool),
	}
	if _, err := layout.DateTimeLayout(w.opts.DateTimePattern); err != nil {
		return nil, err
	}

	root := layout.NewCompound(node.Name, 1)
	if err := w.particle(root, "", node); err != nil {
		return nil, err
	}

	w.log.Info("schema compiled",
		zap.String("root", node.Name),
		zap.Int("fields", w.fields),
		zap.Int("size", root.EncodedSize()),
	)
	return root, nil
}

type walker struct {
	opts   Options
	log    *zap.Logger
	active map[*schema.Type]bool
	fields int
}

// particle dispatches one content model node. ancestor is the dotted path
// of the enclosing element relative to the current compound; it is empty at
// the top of a repeated unit.
func (w *walker) particle(c *layout.Field, ancestor string, n *schema.Node) error {
	if n.MaxOccurs == 0 {
		return nil
	}

	switch n.Kind {
	case schema.NodeElement:
		return w.element(c, ancestor, n)
	case schema.NodeSequence:
		return w.sequence(c, ancestor, n)
	case schema.NodeChoice:
		return w.choice(c, ancestor, n)
	default:
		return errors.UnsupportedConstruct(splitPath(ancestor),
			"xs:"+n.Name+" is not supported for schema generation")
	}
}

func (w *walker) element(c *layout.Field, ancestor string, n *schema.Node) error {
	path := n.Name
	if ancestor != "" {
		path = ancestor + "." + n.Name
	}

	var skip, single bool
	for _, m := range n.Markers {
		switch m.Name {
		case MarkerSkipBinarization:
			skip = true
		case MarkerRestrictToSingleScanner:
			single = true
		default:
			return errors.UnsupportedAttribute(splitPath(path), m.Name)
		}
	}
	if skip {
		w.log.Debug("element skipped", zap.String("path", path))
		return nil
	}
	if n.MaxOccurs > 1 && !single {
		return errors.RepeatedElement(splitPath(path), n.MaxOccurs)
	}

	t := n.Type
	if t == nil {
		return errors.UnsupportedType(splitPath(path), "anyType")
	}
	if t.Simple {
		leaf, err := w.leaf(path, t)
		if err != nil {
			return err
		}
		w.append(c, leaf)
		return nil
	}
	if t.Content == nil {
		if t.Builtin != "" {
			return errors.UnsupportedType(splitPath(path), t.Builtin)
		}
		return nil
	}

	if w.active[t] {
		return errors.UnsupportedConstruct(splitPath(path), "recursive type "+t.Name)
	}
	w.active[t] = true
	defer delete(w.active, t)

	return w.particle(c, path, t.Content)
}

func (w *walker) sequence(c *layout.Field, ancestor string, n *schema.Node) error {
	if n.MaxOccurs == 1 {
		return w.items(c, ancestor, n.Children)
	}

	switch {
	case n.MaxOccurs == schema.Unbounded:
		return errors.UnsupportedConstruct(splitPath(ancestor), "unbounded sequence has no fixed size")
	case ancestor == "":
		return errors.UnsupportedConstruct(splitPath(ancestor), "repeated sequence needs an enclosing element")
	}

	unit := layout.NewCompound(ancestor, n.MaxOccurs)
	if err := w.items(unit, "", n.Children); err != nil {
		return err
	}
	w.append(c, unit)
	return nil
}

func (w *walker) choice(c *layout.Field, ancestor string, n *schema.Node) error {
	if n.MaxOccurs > 1 {
		return errors.RepeatedChoice(splitPath(ancestor), n.MaxOccurs)
	}
	return w.items(c, ancestor, n.Children)
}

func (w *walker) items(c *layout.Field, ancestor string, items []*schema.Node) error {
	for _, item := range items {
		if err := w.particle(c, ancestor, item); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) append(c *layout.Field, f *layout.Field) {
	before := len(c.Fields)
	c.Append(f)
	w.fields++

	if ce := w.log.Check(zap.DebugLevel, "field appended"); ce != nil {
		ce.Write(
			zap.String("compound", c.Path),
			zap.String("path", f.Path),
			zap.Stringer("kind", f.Kind),
			zap.Uint32("offset", f.Offset),
			zap.Uint32("size", f.Size()),
			zap.Bool("padded", len(c.Fields)-before > 1),
		)
	}
}

// leaf maps a simple type to its fixed-width field.
func (w *walker) leaf(path string, t *schema.Type) (*layout.Field, error) {
	switch t.Builtin {
	case "string":
		switch {
		case t.Facets.HasMaxLength:
			return layout.NewString(path, t.Facets.MaxLength), nil
		case len(t.Facets.Enumeration) > 0:
			return layout.NewEnum(path, t.Facets.Enumeration), nil
		}
		return nil, errors.New(errors.PhaseCompile, errors.KindUnrestrictedString).
			Path(splitPath(path)...).
			Detail("string has unrestricted length").
			Build()
	case "int":
		return layout.NewInt32(path), nil
	case "unsignedInt":
		return layout.NewUInt32(path), nil
	case "short":
		return layout.NewInt16(path), nil
	case "unsignedShort":
		return layout.NewUInt16(path), nil
	case "byte":
		return layout.NewInt8(path), nil
	case "unsignedByte":
		return layout.NewUInt8(path), nil
	case "unsignedLong":
		return layout.NewUInt64(path), nil
	case "long":
		if w.opts.AllowLong {
			return layout.NewInt64(path), nil
		}
	case "boolean":
		return layout.NewBoolean(path), nil
	case "hexBinary":
		if !t.Facets.HasLength {
			return nil, errors.New(errors.PhaseCompile, errors.KindUnrestrictedHexBinary).
				Path(splitPath(path)...).
				Detail("hexBinary has unrestricted length").
				Build()
		}
		return layout.NewHexBinary(path, t.Facets.Length), nil
	case "dateTime":
		return layout.NewDateTime(path, w.opts.DateTimePattern)
	}

	name := t.Builtin
	if name == "" {
		name = t.Name
	}
	return nil, errors.UnsupportedType(splitPath(path), name)
}

func splitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}
