// Package align provides the alignment arithmetic used by the layout engine.
//
// This package is internal to layout.
package align
