package layout

// Kind is the closed set of field variants. Leaf kinds carry one scalar
// value; KindPadding is a synthetic filler; KindCompound owns children.
type Kind uint8

const (
	KindInt32 Kind = iota
	KindUInt32
	KindInt16
	KindUInt16
	KindInt8
	KindUInt8
	KindInt64
	KindUInt64
	KindBoolean
	KindString
	KindEnum
	KindHexBinary
	KindDateTime
	KindPadding
	KindCompound
)

var kindNames = [...]string{
	KindInt32:     "int32",
	KindUInt32:    "uint32",
	KindInt16:     "int16",
	KindUInt16:    "uint16",
	KindInt8:      "int8",
	KindUInt8:     "uint8",
	KindInt64:     "int64",
	KindUInt64:    "uint64",
	KindBoolean:   "boolean",
	KindString:    "string",
	KindEnum:      "enum",
	KindHexBinary: "hexbinary",
	KindDateTime:  "datetime",
	KindPadding:   "padding",
	KindCompound:  "compound",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsLeaf reports whether the kind carries an XML-visible scalar value.
func (k Kind) IsLeaf() bool {
	return k <= KindDateTime
}

// IsScalar reports whether the kind is a fixed-width integer or boolean.
func (k Kind) IsScalar() bool {
	return k <= KindBoolean
}

// fixedSize returns the byte width of kinds whose width does not depend on
// facets, and 0 for the others.
func (k Kind) fixedSize() uint32 {
	switch k {
	case KindInt8, KindUInt8, KindBoolean:
		return 1
	case KindInt16, KindUInt16:
		return 2
	case KindInt32, KindUInt32, KindEnum:
		return 4
	case KindInt64, KindUInt64:
		return 8
	default:
		return 0
	}
}

// Align returns the alignment requirement of the kind.
func (k Kind) Align() uint32 {
	switch k {
	case KindInt8, KindUInt8, KindBoolean, KindString, KindPadding:
		return 1
	case KindInt16, KindUInt16:
		return 2
	case KindInt64, KindUInt64:
		return 8
	default:
		// int32, uint32, enum, hexbinary, datetime, compound
		return 4
	}
}

// CType returns the C scalar type used to declare the kind.
func (k Kind) CType() string {
	switch k {
	case KindInt32:
		return "int32_t"
	case KindUInt32, KindEnum:
		return "uint32_t"
	case KindInt16:
		return "int16_t"
	case KindUInt16:
		return "uint16_t"
	case KindInt8:
		return "int8_t"
	case KindUInt8, KindBoolean, KindHexBinary, KindPadding:
		return "uint8_t"
	case KindInt64:
		return "int64_t"
	case KindUInt64:
		return "uint64_t"
	case KindString, KindDateTime:
		return "char"
	default:
		return ""
	}
}
