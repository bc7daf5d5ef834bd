// Package layout implements the compiled field tree.
//
// A tree is made of leaf fields (fixed-width scalars, strings, enums,
// hex binaries and datetimes), synthetic padding and compound fields. A
// compound assigns each child an offset as it is appended, inserting padding
// so that every child sits on a multiple of its alignment:
//
//	root := layout.NewCompound("Header", 1)
//	root.Append(layout.NewUInt32("Header.Count"))
//	entries := layout.NewCompound("Header.Entries", 3)
//	entries.Append(layout.NewInt16("Id"))
//	entries.Append(layout.NewString("Name", 8))
//	root.Append(entries)
//
// Children of a repeated compound carry paths relative to the compound.
// Compounds are aligned to 4. A compound with Number 1 reports a size
// rounded up to 4; a repeated compound replicates its unrounded size.
//
// Leaf fields convert between XML text and bytes with EncodeText and
// DecodeText. All multi-byte values are little-endian.
package layout
