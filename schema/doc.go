// Package schema reads XML Schema documents into the object graph consumed
// by the compiler.
//
// Only the parts of XSD that matter for fixed-width layouts are modelled:
// element declarations with their occurrence bounds, sequence and choice
// groups, simple type restrictions with their length, maxLength and
// enumeration facets, and extension attributes (markers) on elements.
// Named types, element references, model group references and
// complexContent derivation are resolved while walking. Any other particle
// is surfaced as NodeOther so callers can reject it.
//
// The schema document is not validated against the XSD meta-schema.
package schema
