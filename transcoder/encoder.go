package transcoder

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/wippyai/xmlbin/errors"
	"github.com/wippyai/xmlbin/layout"
	"github.com/wippyai/xmlbin/xmldoc"
)

// Encoder converts documents into flat binary records.
type Encoder struct {
	log *zap.Logger
}

func NewEncoder() *Encoder {
	return &Encoder{log: Logger()}
}

// Encode produces the record for root from doc. The result is
// root.EncodedSize() bytes long. Elements missing from doc leave their
// window zero-filled; any leaf conversion failure aborts the whole call.
func (e *Encoder) Encode(root *layout.Field, doc *xmldoc.Document) ([]byte, error) {
	if root == nil || !root.IsCompound() {
		return nil, errors.InvalidInput(errors.PhaseEncode, "root field must be a compound")
	}
	if doc == nil {
		return nil, errors.InvalidInput(errors.PhaseEncode, "nil document")
	}

	out := make([]byte, root.EncodedSize())
	if err := e.compound(root, doc, doc.Top(), out); err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Encoder) compound(c *layout.Field, doc *xmldoc.Document, base *etree.Element, out []byte) error {
	unitSize := int(c.UnitSize())
	for rep := uint32(1); rep <= c.Number; rep++ {
		start := int(rep-1) * unitSize
		unit := out[start : start+unitSize]

		for _, f := range c.Fields {
			if f.Kind == layout.KindPadding {
				continue
			}

			steps := address(f, c.Number, rep)
			node := doc.Find(base, steps)
			if node == nil {
				if ce := e.log.Check(zap.DebugLevel, "element absent, window left zero"); ce != nil {
					ce.Write(zap.String("address", xmldoc.Format(steps)), zap.Uint32("offset", f.Offset))
				}
				continue
			}

			if err := e.field(f, doc, node, window(unit, f)); err != nil {
				return withRepetition(err, c, rep)
			}
		}
	}
	return nil
}

func (e *Encoder) field(f *layout.Field, doc *xmldoc.Document, node *etree.Element, dst []byte) error {
	if f.IsCompound() {
		return e.compound(f, doc, node, dst)
	}

	b, err := f.EncodeText(xmldoc.Text(node))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}
