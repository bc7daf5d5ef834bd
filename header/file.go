package header

import (
	"io"
	"strings"
	"unicode"
)

// File renders a complete header: an include guard derived from rootName,
// the stdint include and the declarations returned by Emit.
func File(lines []string, rootName string) string {
	guard := Guard(rootName)

	var b strings.Builder
	b.WriteString("#ifndef " + guard + "\n")
	b.WriteString("#define " + guard + "\n\n")
	b.WriteString("#include <stdint.h>\n\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("#endif /* " + guard + " */\n")
	return b.String()
}

// Write renders File to w.
func Write(w io.Writer, lines []string, rootName string) error {
	_, err := io.WriteString(w, File(lines, rootName))
	return err
}

// Guard returns the include guard macro for rootName.
func Guard(rootName string) string {
	var b strings.Builder
	for _, r := range rootName {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteByte('_')
		}
	}
	return b.String() + "_H"
}
