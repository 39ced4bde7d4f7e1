package rename

import (
	"fmt"
	"strconv"
)

// Number formats the sequence value for the given zero-based ordinal,
// left-padded with zeros to the configured width. Values wider than the
// padding are never truncated.
func (o NumberingOptions) Number(ordinal int) string {
	value := o.StartAt + ordinal*o.Increment
	if o.Padding > 0 {
		return fmt.Sprintf("%0*d", o.Padding, value)
	}
	return strconv.Itoa(value)
}

// ApplyNumbering inserts the sequence number for ordinal into name and
// reports the byte span of the inserted digits. It runs on the already
// replaced name, never the original. Disabled numbering passes name through
// with an empty span.
func (c Config) ApplyNumbering(name string, ordinal int) (string, Span) {
	o := c.Numbering
	if !o.Enabled {
		return name, Span{}
	}
	number := o.Number(ordinal)
	switch o.Position {
	case Prefix:
		return number + o.Separator + name, Span{Start: 0, End: len(number)}
	case Insert:
		runes := []rune(name)
		at := o.InsertAt
		if at < 0 {
			at = 0
		}
		if at > len(runes) {
			at = len(runes)
		}
		if at == 0 {
			return number + o.Separator + name, Span{Start: 0, End: len(number)}
		}
		head, tail := string(runes[:at]), string(runes[at:])
		start := len(head) + len(o.Separator)
		return head + o.Separator + number + tail, Span{Start: start, End: start + len(number)}
	default:
		base, ext := name, ""
		if !c.IncludeExtension {
			base = stem(name)
			ext = name[len(base):]
		}
		start := len(base) + len(o.Separator)
		return base + o.Separator + number + ext, Span{Start: start, End: start + len(number)}
	}
}
