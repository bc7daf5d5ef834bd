package transcoder

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/wippyai/xmlbin/errors"
	"github.com/wippyai/xmlbin/layout"
	"github.com/wippyai/xmlbin/xmldoc"
)

// Decoder rebuilds documents from flat binary records.
type Decoder struct {
	ns  xmldoc.Namespace
	log *zap.Logger
}

// NewDecoder returns a decoder creating elements in ns.
func NewDecoder(ns xmldoc.Namespace) *Decoder {
	return &Decoder{ns: ns, log: Logger()}
}

// Decode builds a new document from data. Every non-padding field is
// materialized, including fields whose window is all zeros. data must hold
// at least root.EncodedSize() bytes; trailing bytes are ignored.
func (d *Decoder) Decode(root *layout.Field, data []byte) (*xmldoc.Document, error) {
	if root == nil || !root.IsCompound() {
		return nil, errors.InvalidInput(errors.PhaseDecode, "root field must be a compound")
	}

	size := root.EncodedSize()
	if len(data) < size {
		return nil, errors.OutOfBounds(errors.PhaseDecode, root.Segments(), size, len(data))
	}
	if len(data) > size {
		d.log.Debug("trailing bytes ignored", zap.Int("size", size), zap.Int("have", len(data)))
	}

	doc := xmldoc.New(d.ns)
	top := doc.Top()
	if steps := xmldoc.Steps(root.Path); len(steps) > 0 {
		doc.Materialize(top, steps[:1])
	}

	if err := d.compound(root, doc, top, data[:size]); err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *Decoder) compound(c *layout.Field, doc *xmldoc.Document, base *etree.Element, data []byte) error {
	unitSize := int(c.UnitSize())
	for rep := uint32(1); rep <= c.Number; rep++ {
		start := int(rep-1) * unitSize
		unit := data[start : start+unitSize]

		for _, f := range c.Fields {
			if f.Kind == layout.KindPadding {
				continue
			}

			node := doc.Materialize(base, address(f, c.Number, rep))
			if err := d.field(f, doc, node, window(unit, f)); err != nil {
				return withRepetition(err, c, rep)
			}
		}
	}
	return nil
}

func (d *Decoder) field(f *layout.Field, doc *xmldoc.Document, node *etree.Element, src []byte) error {
	if f.IsCompound() {
		return d.compound(f, doc, node, src)
	}

	text, err := f.DecodeText(src)
	if err != nil {
		return err
	}
	xmldoc.SetText(node, text)
	return nil
}
