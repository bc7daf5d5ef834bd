// Package transcoder converts between XML documents and flat binary records
// described by a compiled layout tree.
//
// # Addressing
//
// Every compound has a base element. The root compound's base is the node
// above the document root, so its children carry absolute paths such as
// Header.Count. A repeated compound's base is the element named by its own
// path, and its children carry paths relative to it. For repetition i
// (1-based) the first step of each child path is indexed:
//
//	Header.Entries (Number 3)
//	  Id   -> /Header/Entries/Id[i]
//	  Name -> /Header/Entries/Name[i]
//
// A compound nested inside a repetition resolves against the indexed
// element of that repetition.
//
// # Encoding
//
// The record for a compound with Number N is N consecutive windows of its
// unrounded size. Padding is never read. An element that cannot be found
// leaves its window zeroed; this is how optional data is represented.
//
//	Encoder.Encode(root, doc) -> []byte
//
// # Decoding
//
// Decoding always creates the element for every field, even when its window
// is zero-filled, so decode(encode(doc)) may contain elements doc did not.
// Missing elements are created in the decoder's namespace.
//
//	Decoder.Decode(root, data) -> *xmldoc.Document
//
// # Thread Safety
//
// Encoder and Decoder hold no per-call state and may be shared. Layout
// trees are read only. Documents must not be shared between concurrent
// calls.
//
// # Error Handling
//
// Errors use the structured types from the errors package. Failures inside
// a repeated compound name the repetition:
//
//	[encode] invalid_enum_value at Header.Entries[2].Level: value "TOP" is not in the restricted values list
package transcoder
