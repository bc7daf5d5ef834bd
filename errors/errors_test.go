package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseEncode,
				Kind:   KindInvalidData,
				Path:   []string{"Header", "Entries", "Id"},
				Detail: "cannot parse",
			},
			contains: []string{"[encode]", "invalid_data", "Header.Entries.Id", "cannot parse"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseDecode,
				Kind:  KindOutOfBounds,
			},
			contains: []string{"[decode]", "out_of_bounds"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindParse,
				Detail: "parse schema",
				Cause:  errors.New("underlying error"),
			},
			contains: []string{"[load]", "parse", "parse schema", "caused by", "underlying error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				assert.Contains(t, msg, s)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	assert.ErrorIs(t, err.Unwrap(), cause)
	assert.ErrorIs(t, errors.Unwrap(err), cause)
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseEncode,
		Kind:  KindOddHexDigits,
		Path:  []string{"foo"},
	}

	assert.True(t, err.Is(&Error{Phase: PhaseEncode, Kind: KindOddHexDigits}), "same phase and kind")
	assert.False(t, err.Is(&Error{Phase: PhaseDecode, Kind: KindOddHexDigits}), "different phase")
	assert.False(t, err.Is(&Error{Phase: PhaseEncode, Kind: KindOutOfBounds}), "different kind")

	target := &Error{Phase: PhaseEncode, Kind: KindOddHexDigits}
	assert.ErrorIs(t, fmt.Errorf("wrapped: %w", err), target)
}

func TestIsKind(t *testing.T) {
	inner := UnterminatedString([]string{"Name"}, 8)
	outer := New(PhaseDecode, KindInvalidData).Cause(inner).Build()

	assert.True(t, IsKind(inner, KindUnterminatedString), "direct kind")
	assert.True(t, IsKind(outer, KindUnterminatedString), "kind in cause chain")
	assert.True(t, IsKind(fmt.Errorf("ctx: %w", outer), KindInvalidData), "through fmt wrapping")
	assert.False(t, IsKind(outer, KindOddHexDigits), "absent kind")
	assert.False(t, IsKind(errors.New("plain"), KindInvalidData), "plain error")
	assert.False(t, IsKind(nil, KindInvalidData), "nil")
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseEncode, KindInvalidData).
		Path("Header", "Count").
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "uint32", "text").
		Build()

	assert.Equal(t, PhaseEncode, err.Phase)
	assert.Equal(t, KindInvalidData, err.Kind)
	assert.Equal(t, []string{"Header", "Count"}, err.Path)
	assert.Equal(t, 42, err.Value)
	assert.ErrorIs(t, err.Cause, cause)
	assert.Equal(t, "expected uint32, got text", err.Detail)
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name  string
		err   *Error
		phase Phase
		kind  Kind
	}{
		{"UnsupportedConstruct", UnsupportedConstruct([]string{"a"}, "xs:all"), PhaseCompile, KindSchemaUnsupportedConstruct},
		{"RepeatedElement", RepeatedElement([]string{"a"}, 3), PhaseCompile, KindRepeatedElement},
		{"RepeatedChoice", RepeatedChoice([]string{"a"}, 2), PhaseCompile, KindRepeatedChoice},
		{"UnsupportedAttribute", UnsupportedAttribute([]string{"a"}, "foo"), PhaseCompile, KindUnsupportedAttribute},
		{"UnsupportedType", UnsupportedType([]string{"a"}, "xs:float"), PhaseCompile, KindUnsupportedType},
		{"InvalidEnumValue", InvalidEnumValue([]string{"a"}, "X"), PhaseEncode, KindInvalidEnumValue},
		{"InvalidEnumIndex", InvalidEnumIndex([]string{"a"}, 5, 3), PhaseDecode, KindInvalidEnumIndex},
		{"OddHexDigits", OddHexDigits([]string{"a"}, "abc"), PhaseEncode, KindOddHexDigits},
		{"UnterminatedString", UnterminatedString([]string{"a"}, 8), PhaseDecode, KindUnterminatedString},
		{"InvalidData", InvalidData(PhaseEncode, nil, "bad"), PhaseEncode, KindInvalidData},
		{"OutOfBounds", OutOfBounds(PhaseDecode, nil, 10, 5), PhaseDecode, KindOutOfBounds},
		{"InvalidInput", InvalidInput(PhaseValidate, "empty"), PhaseValidate, KindInvalidInput},
		{"NotFound", NotFound(PhaseCompile, "element", "Root"), PhaseCompile, KindNotFound},
		{"ParseFailed", ParseFailed("schema", errors.New("eof")), PhaseLoad, KindParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.phase, tt.err.Phase)
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.NotEmpty(t, tt.err.Error())
		})
	}

	t.Run("OutOfBounds value", func(t *testing.T) {
		err := OutOfBounds(PhaseDecode, []string{"buf"}, 36, 12)
		assert.Equal(t, 12, err.Value)
		assert.Contains(t, err.Detail, "36")
	})
}

func TestWithPath(t *testing.T) {
	base := InvalidEnumValue([]string{"Level"}, "EXTREME")
	got := WithPath(base, "Header", "Status")

	var e *Error
	require.True(t, errors.As(got, &e), "WithPath should keep *Error")
	assert.Equal(t, []string{"Header", "Status", "Level"}, e.Path)
	assert.Equal(t, []string{"Level"}, base.Path, "input path must not change")

	plain := errors.New("plain")
	assert.Equal(t, plain, WithPath(plain, "x"))
}
