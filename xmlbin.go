package xmlbin

import (
	"io"
	"time"

	"github.com/wippyai/xmlbin/compiler"
	"github.com/wippyai/xmlbin/errors"
	"github.com/wippyai/xmlbin/header"
	"github.com/wippyai/xmlbin/layout"
	"github.com/wippyai/xmlbin/metrics"
	"github.com/wippyai/xmlbin/schema"
	"github.com/wippyai/xmlbin/transcoder"
	"github.com/wippyai/xmlbin/xmldoc"
)

// Config selects what a Converter compiles and how decoded documents are
// named. It is passed by value and never modified.
type Config struct {
	// RootElement is the global element declaration the record describes.
	RootElement string
	// NamespaceURI qualifies the elements read and written. Empty means
	// unqualified elements.
	NamespaceURI string
	// Prefix is used for elements created by Decode.
	Prefix string

	Compiler compiler.Options
}

// Validate reports configuration errors before any schema work is done.
func (c Config) Validate() error {
	if c.RootElement == "" {
		return errors.InvalidInput(errors.PhaseValidate, "root element is required")
	}
	if c.Prefix != "" && c.NamespaceURI == "" {
		return errors.InvalidInput(errors.PhaseValidate, "namespace prefix "+c.Prefix+" given without a namespace URI")
	}
	if _, err := layout.DateTimeLayout(c.dateTimePattern()); err != nil {
		return err
	}
	return nil
}

// Namespace returns the namespace documents are read and written in.
func (c Config) Namespace() xmldoc.Namespace {
	return xmldoc.Namespace{URI: c.NamespaceURI, Prefix: c.Prefix}
}

func (c Config) dateTimePattern() string {
	if c.Compiler.DateTimePattern == "" {
		return layout.DefaultDateTimePattern
	}
	return c.Compiler.DateTimePattern
}

type Option func(*Converter)

// WithMetrics records every operation of the converter on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Converter) {
		c.metrics = m
	}
}

// Converter holds one compiled layout and converts records for it.
type Converter struct {
	cfg     Config
	root    *layout.Field
	encoder *transcoder.Encoder
	decoder *transcoder.Decoder
	metrics *metrics.Metrics
}

// New validates cfg and compiles the layout of cfg.RootElement from s.
func New(s *schema.Schema, cfg Config, opts ...Option) (*Converter, error) {
	if s == nil {
		return nil, errors.InvalidInput(errors.PhaseValidate, "nil schema")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Converter{
		cfg:     cfg,
		encoder: transcoder.NewEncoder(),
		decoder: transcoder.NewDecoder(cfg.Namespace()),
	}
	for _, opt := range opts {
		opt(c)
	}

	start := time.Now()
	root, err := compiler.Compile(s, cfg.RootElement, cfg.Compiler)
	c.metrics.Observe(metrics.OpCompile, start, err)
	if err != nil {
		return nil, err
	}
	c.root = root

	fields := 0
	root.Walk(func(*layout.Field, int) bool {
		fields++
		return true
	})
	c.metrics.SetLayout(fields-1, root.EncodedSize())
	return c, nil
}

// NewFromFile loads the schema at path and compiles it like New.
func NewFromFile(path string, cfg Config, opts ...Option) (*Converter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return New(s, cfg, opts...)
}

func (c *Converter) Config() Config {
	return c.cfg
}

func (c *Converter) Namespace() xmldoc.Namespace {
	return c.cfg.Namespace()
}

// Layout returns the compiled root compound. Callers must not modify it.
func (c *Converter) Layout() *layout.Field {
	return c.root
}

// Describe lists every field of the layout in declaration order.
func (c *Converter) Describe() []layout.Entry {
	return layout.Describe(c.root, c.cfg.RootElement)
}

// Size is the length of every record produced by Encode.
func (c *Converter) Size() int {
	return c.root.EncodedSize()
}

// Encode converts doc into a record.
func (c *Converter) Encode(doc *xmldoc.Document) ([]byte, error) {
	start := time.Now()
	out, err := c.encoder.Encode(c.root, doc)
	c.metrics.Observe(metrics.OpEncode, start, err)
	if err != nil {
		return nil, err
	}
	c.metrics.AddBytes(metrics.OpEncode, len(out))
	return out, nil
}

// ParseDocument reads an XML document in the converter's namespace.
func (c *Converter) ParseDocument(r io.Reader) (*xmldoc.Document, error) {
	return xmldoc.Parse(r, c.Namespace())
}

// EncodeReader parses an XML document from r and encodes it.
func (c *Converter) EncodeReader(r io.Reader) ([]byte, error) {
	doc, err := c.ParseDocument(r)
	if err != nil {
		return nil, err
	}
	return c.Encode(doc)
}

// Decode rebuilds a document from a record. Bytes past Size are ignored.
func (c *Converter) Decode(data []byte) (*xmldoc.Document, error) {
	start := time.Now()
	doc, err := c.decoder.Decode(c.root, data)
	c.metrics.Observe(metrics.OpDecode, start, err)
	if err != nil {
		return nil, err
	}
	c.metrics.AddBytes(metrics.OpDecode, c.root.EncodedSize())
	return doc, nil
}

// Header returns the struct declarations describing the record, one line
// per element.
func (c *Converter) Header() ([]string, error) {
	start := time.Now()
	lines, err := header.Emit(c.root, c.cfg.RootElement)
	c.metrics.Observe(metrics.OpHeader, start, err)
	return lines, err
}

// HeaderFile returns a complete C header with include guard.
func (c *Converter) HeaderFile() (string, error) {
	lines, err := c.Header()
	if err != nil {
		return "", err
	}
	return header.File(lines, c.cfg.RootElement), nil
}
