package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindInt32, "int32"},
		{KindUInt64, "uint64"},
		{KindBoolean, "boolean"},
		{KindEnum, "enum"},
		{KindHexBinary, "hexbinary"},
		{KindDateTime, "datetime"},
		{KindPadding, "padding"},
		{KindCompound, "compound"},
		{Kind(200), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.kind.String())
		})
	}
}

func TestKindClassification(t *testing.T) {
	for k := KindInt32; k <= KindCompound; k++ {
		switch k {
		case KindPadding, KindCompound:
			assert.False(t, k.IsLeaf(), k.String())
		default:
			assert.True(t, k.IsLeaf(), k.String())
		}
	}

	assert.True(t, KindBoolean.IsScalar())
	assert.False(t, KindString.IsScalar())
	assert.False(t, KindEnum.IsScalar())
}

func TestKindAlignAndType(t *testing.T) {
	tests := []struct {
		kind  Kind
		align uint32
		size  uint32
		ctype string
	}{
		{KindInt32, 4, 4, "int32_t"},
		{KindUInt32, 4, 4, "uint32_t"},
		{KindInt16, 2, 2, "int16_t"},
		{KindUInt16, 2, 2, "uint16_t"},
		{KindInt8, 1, 1, "int8_t"},
		{KindUInt8, 1, 1, "uint8_t"},
		{KindInt64, 8, 8, "int64_t"},
		{KindUInt64, 8, 8, "uint64_t"},
		{KindBoolean, 1, 1, "uint8_t"},
		{KindEnum, 4, 4, "uint32_t"},
		{KindString, 1, 0, "char"},
		{KindHexBinary, 4, 0, "uint8_t"},
		{KindDateTime, 4, 0, "char"},
		{KindPadding, 1, 0, "uint8_t"},
		{KindCompound, 4, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.align, tt.kind.Align())
			assert.Equal(t, tt.size, tt.kind.fixedSize())
			assert.Equal(t, tt.ctype, tt.kind.CType())
		})
	}
}
