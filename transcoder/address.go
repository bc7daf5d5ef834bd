package transcoder

import (
	"strconv"

	"github.com/wippyai/xmlbin/errors"
	"github.com/wippyai/xmlbin/layout"
	"github.com/wippyai/xmlbin/xmldoc"
)

// address returns the steps locating child f, relative to the base element
// of its compound, for the given 1-based repetition. Repeated compounds
// index the first step of each child.
func address(f *layout.Field, number, rep uint32) []xmldoc.Step {
	steps := xmldoc.Steps(f.Path)
	if number > 1 && len(steps) > 0 {
		steps[0].Index = rep
	}
	return steps
}

// window returns the bytes of child f within one repetition of its
// compound.
func window(unit []byte, f *layout.Field) []byte {
	end := int(f.Offset) + f.EncodedSize()
	return unit[f.Offset:end]
}

// withRepetition prefixes err with the repetition of compound c it
// occurred in.
func withRepetition(err error, c *layout.Field, rep uint32) error {
	if c.Number <= 1 {
		return err
	}
	return errors.WithPath(err, c.Path+"["+strconv.FormatUint(uint64(rep), 10)+"]")
}
