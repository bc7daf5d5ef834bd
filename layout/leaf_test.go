package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/xmlbin/errors"
)

func TestLeaf_RoundTrip(t *testing.T) {
	dt, err := NewDateTime("R.When", DefaultDateTimePattern)
	require.NoError(t, err)

	tests := []struct {
		name  string
		field *Field
		text  string
		bytes []byte
	}{
		{"int32", NewInt32("R.A"), "-2", []byte{0xfe, 0xff, 0xff, 0xff}},
		{"uint32", NewUInt32("R.A"), "258", []byte{0x02, 0x01, 0x00, 0x00}},
		{"int16", NewInt16("R.A"), "-32768", []byte{0x00, 0x80}},
		{"uint16", NewUInt16("R.A"), "65535", []byte{0xff, 0xff}},
		{"int8", NewInt8("R.A"), "-1", []byte{0xff}},
		{"uint8", NewUInt8("R.A"), "200", []byte{0xc8}},
		{"int64", NewInt64("R.A"), "-9223372036854775808", []byte{0, 0, 0, 0, 0, 0, 0, 0x80}},
		{"uint64", NewUInt64("R.A"), "18446744073709551615", []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
		{"bool true", NewBoolean("R.A"), "true", []byte{1}},
		{"bool false", NewBoolean("R.A"), "false", []byte{0}},
		{"string", NewString("R.A", 8), "AB", []byte{0x41, 0x42, 0, 0, 0, 0, 0, 0}},
		{"enum", NewEnum("R.A", []string{"LOW", "MED", "HIGH"}), "MED", []byte{1, 0, 0, 0}},
		{"hex", NewHexBinary("R.A", 4), "0A0B0C0D", []byte{0x0a, 0x0b, 0x0c, 0x0d}},
		{"datetime", dt, "2024-03-05T10:20:30", append([]byte("20240305102030"), 0)},
		{"string at capacity", NewString("R.A", 8), "ABCDEFG", []byte("ABCDEFG\x00")},
		{"empty datetime", dt, "", make([]byte, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.field.EncodeText(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.bytes, got)

			text, err := tt.field.DecodeText(got)
			require.NoError(t, err)
			assert.Equal(t, tt.text, text)
		})
	}
}

func TestLeaf_EncodeNormalizes(t *testing.T) {
	dt, err := NewDateTime("R.When", DefaultDateTimePattern)
	require.NoError(t, err)

	tests := []struct {
		name  string
		field *Field
		text  string
		want  []byte
	}{
		{"trimmed int", NewInt32("R.A"), "  7\n", []byte{7, 0, 0, 0}},
		{"bool digit", NewBoolean("R.A"), "1", []byte{1}},
		{"lower hex", NewHexBinary("R.A", 4), "0a0b0c0d", []byte{0x0a, 0x0b, 0x0c, 0x0d}},
		{"short hex", NewHexBinary("R.A", 4), "ff", []byte{0xff, 0, 0, 0}},
		{"non ascii", NewString("R.A", 4), "é1", []byte{'?', '1', 0, 0}},
		{"zoned datetime", dt, "2024-03-05T12:20:30+02:00", append([]byte("20240305102030"), 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.field.EncodeText(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLeaf_EncodeErrors(t *testing.T) {
	dt, err := NewDateTime("R.When", DefaultDateTimePattern)
	require.NoError(t, err)

	tests := []struct {
		name  string
		field *Field
		text  string
		kind  errors.Kind
	}{
		{"enum value", NewEnum("R.A", []string{"LOW", "MED", "HIGH"}), "TOP", errors.KindInvalidEnumValue},
		{"odd hex", NewHexBinary("R.A", 4), "0a0b0", errors.KindOddHexDigits},
		{"bad hex", NewHexBinary("R.A", 2), "zz00", errors.KindInvalidData},
		{"long hex", NewHexBinary("R.A", 1), "0a0b", errors.KindInvalidData},
		{"int overflow", NewInt8("R.A"), "128", errors.KindInvalidData},
		{"negative unsigned", NewUInt16("R.A"), "-1", errors.KindInvalidData},
		{"not a number", NewInt32("R.A"), "abc", errors.KindInvalidData},
		{"bad bool", NewBoolean("R.A"), "yes", errors.KindInvalidData},
		{"bad date", dt, "yesterday", errors.KindInvalidData},
		{"string fills terminator", NewString("R.A", 8), "ABCDEFGH", errors.KindInvalidData},
		{"string too long", NewString("R.A", 4), "ABCDEF", errors.KindInvalidData},
		{"wide string too long", NewString("R.A", 3), "ééé", errors.KindInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.field.EncodeText(tt.text)
			require.Error(t, err)
			assert.True(t, errors.IsKind(err, tt.kind), err.Error())
		})
	}
}

func TestLeaf_DecodeZeroWindow(t *testing.T) {
	dt, err := NewDateTime("R.When", DefaultDateTimePattern)
	require.NoError(t, err)

	tests := []struct {
		field *Field
		want  string
	}{
		{NewInt32("R.A"), "0"},
		{NewUInt64("R.A"), "0"},
		{NewBoolean("R.A"), "false"},
		{NewString("R.A", 8), ""},
		{NewEnum("R.A", []string{"LOW", "MED"}), "LOW"},
		{NewHexBinary("R.A", 2), "0000"},
		{dt, ""},
	}

	for _, tt := range tests {
		t.Run(tt.field.Kind.String(), func(t *testing.T) {
			got, err := tt.field.DecodeText(make([]byte, tt.field.Size()))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLeaf_DecodeErrors(t *testing.T) {
	t.Run("unterminated string", func(t *testing.T) {
		_, err := NewString("R.A", 8).DecodeText([]byte("ABCDEFGH"))
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.KindUnterminatedString))
	})

	t.Run("enum index", func(t *testing.T) {
		f := NewEnum("R.A", []string{"LOW", "MED", "HIGH"})
		_, err := f.DecodeText([]byte{5, 0, 0, 0})
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.KindInvalidEnumIndex))

		_, err = f.DecodeText([]byte{0xff, 0xff, 0xff, 0xff})
		assert.True(t, errors.IsKind(err, errors.KindInvalidEnumIndex))
	})

	t.Run("short window", func(t *testing.T) {
		_, err := NewUInt32("R.A").DecodeText([]byte{1, 2})
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.KindOutOfBounds))
	})

	t.Run("garbled datetime", func(t *testing.T) {
		dt, err := NewDateTime("R.When", DefaultDateTimePattern)
		require.NoError(t, err)
		_, err = dt.DecodeText(append([]byte("2024xx05102030"), 0))
		require.Error(t, err)
		assert.True(t, errors.IsKind(err, errors.KindInvalidData))
	})
}

func TestDateTimeLayout(t *testing.T) {
	tests := []struct {
		pattern string
		want    string
		wantErr bool
	}{
		{"yyyyMMddHHmmss", "20060102150405", false},
		{"yyyy-MM-dd HH:mm:ss", "2006-01-02 15:04:05", false},
		{"yyyy-MM-ddTHH:mm", "2006-01-02T15:04", false},
		{"", "", true},
		{"yyyy%MM", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := DateTimeLayout(tt.pattern)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, len(tt.pattern))
		})
	}
}
