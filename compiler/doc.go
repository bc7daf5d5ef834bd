// Package compiler turns a schema element declaration into a layout tree.
//
// The walk follows these rules:
//
//   - A complex element extends the current path and its content is laid out
//     in the current compound; it does not create a compound of its own.
//   - A simple element becomes a leaf chosen by its XSD datatype and facets.
//   - A sequence with maxOccurs 1 is flattened. A sequence with maxOccurs
//     N > 1 becomes a compound repeated N times whose children carry paths
//     relative to the enclosing element.
//   - A choice must have maxOccurs 1; every alternative gets its own space.
//   - Elements with maxOccurs > 1 are rejected unless they carry the
//     restrictToSingleScanner marker. The skipBinarization marker drops an
//     element from the layout. Any other marker is an error.
//
// Anything else (xs:all, xs:any, simple content, recursive types, unbounded
// sequences) fails with a compile-phase error.
package compiler
