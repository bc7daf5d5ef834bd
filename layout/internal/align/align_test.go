package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTo(t *testing.T) {
	tests := []struct {
		name   string
		offset uint32
		align  uint32
		want   uint32
	}{
		{"zero", 0, 4, 0},
		{"aligned", 8, 4, 8},
		{"one past", 9, 4, 12},
		{"byte align", 7, 1, 7},
		{"align 8", 4, 8, 8},
		{"align 2", 3, 2, 4},
		{"zero align", 5, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, To(tt.offset, tt.align))
		})
	}
}

func TestPadding(t *testing.T) {
	tests := []struct {
		name   string
		offset uint32
		align  uint32
		want   uint32
	}{
		{"aligned", 4, 4, 0},
		{"needs three", 1, 4, 3},
		{"needs one", 3, 2, 1},
		{"u64 after u8", 1, 8, 7},
		{"byte", 5, 1, 0},
		{"zero align", 5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Padding(tt.offset, tt.align)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, To(tt.offset, tt.align), tt.offset+got)
		})
	}
}
