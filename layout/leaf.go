package layout

import (
	"encoding/binary"
	"encoding/hex"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/xmlbin/errors"
)

// EncodeText converts the text content of an XML element into the field's
// fixed-width little-endian representation. The result is always Size bytes.
// Strings must leave room for their terminator; empty datetime text encodes
// as a zero window, the same window DecodeText maps back to "".
func (f *Field) EncodeText(text string) ([]byte, error) {
	out := make([]byte, f.Size())
	if err := f.encodeTextTo(out, text); err != nil {
		return nil, err
	}
	return out, nil
}

func (f *Field) encodeTextTo(out []byte, text string) error {
	if f.Kind != KindString {
		text = strings.TrimSpace(text)
	}

	switch f.Kind {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		v, err := strconv.ParseInt(text, 10, int(f.Size())*8)
		if err != nil {
			return f.badText(text, err)
		}
		putUint(out, uint64(v))

	case KindUInt8, KindUInt16, KindUInt32, KindUInt64:
		v, err := strconv.ParseUint(text, 10, int(f.Size())*8)
		if err != nil {
			return f.badText(text, err)
		}
		putUint(out, v)

	case KindBoolean:
		switch text {
		case "true", "1":
			out[0] = 1
		case "false", "0":
			out[0] = 0
		default:
			return f.badText(text, nil)
		}

	case KindString:
		// one byte is kept for the terminator
		if n := utf8.RuneCountInString(text); n > len(out)-1 {
			return errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(f.errPath()...).
				Value(text).
				Detail("%d characters exceed capacity %d", n, len(out)-1).
				Build()
		}
		n := 0
		for _, r := range text {
			if r > 0x7f || r == 0 {
				r = '?'
			}
			out[n] = byte(r)
			n++
		}

	case KindEnum:
		for i, v := range f.Values {
			if v == text {
				binary.LittleEndian.PutUint32(out, uint32(int32(i)))
				return nil
			}
		}
		return errors.InvalidEnumValue(f.errPath(), text)

	case KindHexBinary:
		if len(text)%2 != 0 {
			return errors.OddHexDigits(f.errPath(), text)
		}
		if len(text)/2 > len(out) {
			return errors.New(errors.PhaseEncode, errors.KindInvalidData).
				Path(f.errPath()...).
				Value(text).
				Detail("%d bytes exceed length %d", len(text)/2, len(out)).
				Build()
		}
		if _, err := hex.Decode(out, []byte(text)); err != nil {
			return f.badText(text, err)
		}

	case KindDateTime:
		if f.layout == "" {
			return errors.InvalidInput(errors.PhaseEncode, "datetime field "+f.Path+" has no layout")
		}
		if text == "" {
			return nil
		}
		t, err := parseXMLDateTime(text)
		if err != nil {
			return f.badText(text, err)
		}
		copy(out, t.Format(f.layout))

	default:
		return errors.InvalidInput(errors.PhaseEncode, f.Kind.String()+" field has no text form")
	}
	return nil
}

// DecodeText converts the field's window back into XML text. b must hold at
// least Size bytes; only the first Size bytes are read.
//
// A zero-filled window decodes to the type's default value: "0", "false",
// "", the first enum value, or all-zero hex digits.
func (f *Field) DecodeText(b []byte) (string, error) {
	if err := f.checkWindow(errors.PhaseDecode, b); err != nil {
		return "", err
	}
	b = b[:f.Size()]

	switch f.Kind {
	case KindInt8:
		return strconv.FormatInt(int64(int8(b[0])), 10), nil
	case KindInt16:
		return strconv.FormatInt(int64(int16(binary.LittleEndian.Uint16(b))), 10), nil
	case KindInt32:
		return strconv.FormatInt(int64(int32(binary.LittleEndian.Uint32(b))), 10), nil
	case KindInt64:
		return strconv.FormatInt(int64(binary.LittleEndian.Uint64(b)), 10), nil
	case KindUInt8, KindUInt16, KindUInt32, KindUInt64:
		return strconv.FormatUint(getUint(b), 10), nil

	case KindBoolean:
		if b[0] != 0 {
			return "true", nil
		}
		return "false", nil

	case KindString:
		if len(b) == 0 {
			return "", nil
		}
		end := indexNUL(b)
		if end < 0 {
			return "", errors.UnterminatedString(f.errPath(), f.Length)
		}
		return string(b[:end]), nil

	case KindEnum:
		idx := int32(binary.LittleEndian.Uint32(b))
		if idx < 0 || int(idx) >= len(f.Values) {
			return "", errors.InvalidEnumIndex(f.errPath(), idx, len(f.Values))
		}
		return f.Values[idx], nil

	case KindHexBinary:
		return strings.ToUpper(hex.EncodeToString(b)), nil

	case KindDateTime:
		end := indexNUL(b)
		if end < 0 {
			return "", errors.UnterminatedString(f.errPath(), f.Size())
		}
		if end == 0 {
			return "", nil
		}
		t, err := parseStored(f.layout, string(b[:end]))
		if err != nil {
			return "", errors.New(errors.PhaseDecode, errors.KindInvalidData).
				Path(f.errPath()...).
				Value(string(b[:end])).
				Cause(err).
				Detail("stored datetime does not match pattern %s", f.Pattern).
				Build()
		}
		return t.Format(xmlDateTime), nil

	default:
		return "", errors.InvalidInput(errors.PhaseDecode, f.Kind.String()+" field has no text form")
	}
}

func (f *Field) badText(text string, cause error) error {
	return errors.New(errors.PhaseEncode, errors.KindInvalidData).
		Path(f.errPath()...).
		Value(text).
		Cause(cause).
		Detail("invalid %s text %q", f.Kind, text).
		Build()
}

func putUint(out []byte, v uint64) {
	switch len(out) {
	case 1:
		out[0] = byte(v)
	case 2:
		binary.LittleEndian.PutUint16(out, uint16(v))
	case 4:
		binary.LittleEndian.PutUint32(out, uint32(v))
	case 8:
		binary.LittleEndian.PutUint64(out, v)
	}
}

func getUint(b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(b))
	case 4:
		return uint64(binary.LittleEndian.Uint32(b))
	case 8:
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

func indexNUL(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return -1
}
