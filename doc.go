// Package xmlbin converts XML documents described by an XSD schema into
// flat, byte-exact binary records and back, and describes those records as
// C struct declarations.
//
// # Architecture Overview
//
//	xmlbin/              Config and the Converter facade
//	├── schema/          XSD reading into an element/particle graph
//	├── compiler/        schema walk producing a layout tree
//	├── layout/          field kinds, alignment, leaf text codecs
//	├── transcoder/      layout-driven encode (XML to bytes) and decode
//	├── xmldoc/          positional XML addressing on top of etree
//	├── header/          C header emission
//	├── metrics/         Prometheus counters for converter operations
//	├── config/          YAML session files for the CLI
//	└── errors/          structured error types
//
// # Quick Start
//
//	s, err := schema.LoadFile("header.xsd")
//	if err != nil {
//		return err
//	}
//	conv, err := xmlbin.New(s, xmlbin.Config{RootElement: "Header"})
//	if err != nil {
//		return err
//	}
//
//	doc, err := xmldoc.ParseFile("header.xml", conv.Namespace())
//	if err != nil {
//		return err
//	}
//	record, err := conv.Encode(doc)
//
//	lines, err := conv.Header()
//
// The layout is compiled once in New; a Converter is safe for concurrent use
// because encode and decode only read it.
//
// # Record Layout
//
// Leaves are laid out in document order, each aligned to its natural
// alignment with explicit padding fields in between. A repeated sequence
// becomes a nested compound whose unit is repeated Number times without
// trailing padding. Strings, hex binaries and date-times are fixed-width.
package xmlbin
