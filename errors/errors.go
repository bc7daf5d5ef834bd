package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad     Phase = "load"     // schema/document reading
	PhaseCompile  Phase = "compile"  // schema walk
	PhaseEncode   Phase = "encode"   // XML to binary
	PhaseDecode   Phase = "decode"   // binary to XML
	PhaseEmit     Phase = "emit"     // header generation
	PhaseValidate Phase = "validate" // input checks
)

// Kind categorizes the error
type Kind string

const (
	KindSchemaUnsupportedConstruct Kind = "schema_unsupported_construct"
	KindRepeatedElement            Kind = "repeated_element_unsupported"
	KindRepeatedChoice             Kind = "repeated_choice_unsupported"
	KindUnsupportedAttribute       Kind = "unsupported_attribute"
	KindUnsupportedType            Kind = "unsupported_type"
	KindUnrestrictedString         Kind = "unrestricted_string"
	KindUnrestrictedHexBinary      Kind = "unrestricted_hexbinary"
	KindInvalidEnumValue           Kind = "invalid_enum_value"
	KindInvalidEnumIndex           Kind = "invalid_enum_index"
	KindOddHexDigits               Kind = "odd_hex_digits"
	KindUnterminatedString         Kind = "unterminated_string"
	KindInvalidData                Kind = "invalid_data"
	KindOutOfBounds                Kind = "out_of_bounds"
	KindInvalidInput               Kind = "invalid_input"
	KindParse                      Kind = "parse"
	KindNotFound                   Kind = "not_found"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// IsKind reports whether any *Error in err's chain has the given kind,
// regardless of phase.
func IsKind(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if !stderrors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Cause
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnsupportedConstruct creates an error for a schema node the compiler cannot walk
func UnsupportedConstruct(path []string, what string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindSchemaUnsupportedConstruct,
		Path:   path,
		Detail: what,
	}
}

// RepeatedElement creates an error for an element with maxOccurs > 1
func RepeatedElement(path []string, maxOccurs uint32) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindRepeatedElement,
		Path:   path,
		Detail: fmt.Sprintf("maxOccurs %d is not supported on element nodes", maxOccurs),
		Value:  maxOccurs,
	}
}

// RepeatedChoice creates an error for a choice with maxOccurs > 1
func RepeatedChoice(path []string, maxOccurs uint32) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindRepeatedChoice,
		Path:   path,
		Detail: fmt.Sprintf("maxOccurs %d is not supported on choice nodes", maxOccurs),
		Value:  maxOccurs,
	}
}

// UnsupportedAttribute creates an error for an unknown extension marker
func UnsupportedAttribute(path []string, name string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindUnsupportedAttribute,
		Path:   path,
		Detail: fmt.Sprintf("attribute %q is not supported", name),
		Value:  name,
	}
}

// UnsupportedType creates an error for a datatype without a fixed-width mapping
func UnsupportedType(path []string, typeName string) *Error {
	return &Error{
		Phase:  PhaseCompile,
		Kind:   KindUnsupportedType,
		Path:   path,
		Detail: fmt.Sprintf("unsupported type %s", typeName),
		Value:  typeName,
	}
}

// InvalidEnumValue creates an error for enum text outside the allowed set
func InvalidEnumValue(path []string, value string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindInvalidEnumValue,
		Path:   path,
		Detail: fmt.Sprintf("value %q is not in the restricted values list", value),
		Value:  value,
	}
}

// InvalidEnumIndex creates an error for a stored ordinal out of range
func InvalidEnumIndex(path []string, index int32, count int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindInvalidEnumIndex,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of range (%d values)", index, count),
		Value:  index,
	}
}

// OddHexDigits creates an error for hex text with an odd digit count
func OddHexDigits(path []string, text string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindOddHexDigits,
		Path:   path,
		Detail: fmt.Sprintf("binary value cannot have an odd number of digits: %q", text),
		Value:  text,
	}
}

// UnterminatedString creates an error for a string window without a NUL byte
func UnterminatedString(path []string, capacity uint32) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindUnterminatedString,
		Path:   path,
		Detail: fmt.Sprintf("no terminator within %d bytes", capacity),
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// OutOfBounds creates an error for a buffer shorter than the layout requires
func OutOfBounds(phase Phase, path []string, need, have int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("need %d bytes, have %d", need, have),
		Value:  have,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// ParseFailed creates a parsing error
func ParseFailed(what string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindParse,
		Detail: fmt.Sprintf("parse %s", what),
		Cause:  cause,
	}
}

// WithPath returns a copy of err with prefix prepended to its path when err
// is an *Error; other errors are returned unchanged.
func WithPath(err error, prefix ...string) error {
	var e *Error
	if !stderrors.As(err, &e) || len(prefix) == 0 {
		return err
	}
	cp := *e
	cp.Path = append(append(make([]string, 0, len(prefix)+len(e.Path)), prefix...), e.Path...)
	return &cp
}
