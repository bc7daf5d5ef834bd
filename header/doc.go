// Package header renders a layout tree as C struct declarations.
//
// The output is documentation for native consumers of the binary record; it
// is never parsed back. Each struct member is preceded by a comment giving
// its path, offset, size, alignment and kind, and padding appears as
// explicit uint8_t arrays so the declared struct matches the record byte
// for byte.
package header
