// Package xmldoc wraps an etree document with the positional addressing used
// by the transcoder.
//
// Elements are addressed by a list of steps, each naming a child element by
// local name and 1-based position. Only elements in the configured
// namespace URI match. Materialize creates whatever part of an address is
// missing, using the configured prefix and declaring the namespace on the
// first created element that needs it.
package xmldoc
