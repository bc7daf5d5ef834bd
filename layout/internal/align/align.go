package align

// To rounds offset up to the next multiple of align.
// Alignments are powers of two; zero leaves offset unchanged.
func To(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// Padding returns the number of filler bytes needed before a field of the
// given alignment placed at offset.
func Padding(offset, align uint32) uint32 {
	if align == 0 {
		return 0
	}
	skip := offset % align
	if skip == 0 {
		return 0
	}
	return align - skip
}
