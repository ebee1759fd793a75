package capture

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/exp/slog"
)

var (
	// ErrUnsupportedCharset is returned when the formatter is configured
	// with a charset other than UTF-8.
	ErrUnsupportedCharset = errors.New("unsupported charset")

	// ErrInvalidEncoding is returned when a formatted line is not valid
	// in the configured charset.
	ErrInvalidEncoding = errors.New("line is not valid UTF-8")
)

// _defaultDateLayout is used by the date token when no layout is given.
const _defaultDateLayout = "2006-01-02 15:04:05.000"

// Event is a single log record as seen by the sinks.
type Event struct {
	// Time is the time the record was emitted at.
	Time time.Time

	// Level is the record level.
	Level slog.Level

	// Message is the record message.
	Message string

	// Attrs contains the record attributes, including the ones bound to
	// the logger. Group names are already folded into the keys.
	Attrs []slog.Attr

	// Origin identifies the request (or the derived unit of work) that
	// emitted the record.
	Origin string
}

// FormatError is returned when an event cannot be turned into a line.
type FormatError struct {
	Event Event
	Err   error
}

// Error returns the error message.
func (e *FormatError) Error() string {
	return fmt.Sprintf("formatting %s event %q: %v", e.Event.Level, e.Event.Message, e.Err)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Formatter renders events according to a logback-like pattern. It is
// immutable and safe for concurrent use.
type Formatter struct {
	pattern string
	parts   []part
}

// part renders a single pattern piece into the builder.
type part func(b *strings.Builder, e Event)

// NewFormatter compiles the pattern. The supported conversion words are:
//
//	%level, %le, %p       record level
//	%msg, %message, %m    record message
//	%d, %date             time, optionally followed by {Go layout}
//	%thread, %t, %origin  record origin
//	%attrs, %kv           " key=value" pairs, empty when there are none
//	%n                    new line
//	%%                    percent sign
//
// Any word may be preceded by a width, "-" pads on the right.
func NewFormatter(pattern, charset string) (*Formatter, error) {
	switch strings.ToUpper(strings.ReplaceAll(charset, "-", "")) {
	case "", "UTF8":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCharset, charset)
	}

	parts, err := compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling pattern %q: %w", pattern, err)
	}

	return &Formatter{
		pattern: pattern,
		parts:   parts,
	}, nil
}

// Pattern returns the pattern the formatter was compiled from.
func (f *Formatter) Pattern() string {
	return f.pattern
}

// Format renders the event into a single line.
func (f *Formatter) Format(e Event) (string, error) {
	var b strings.Builder

	for _, p := range f.parts {
		p(&b, e)
	}

	line := b.String()
	if !utf8.ValidString(line) {
		return "", &FormatError{Event: e, Err: ErrInvalidEncoding}
	}

	return line, nil
}

// compile turns the pattern into a list of parts.
func compile(pattern string) ([]part, error) {
	var (
		parts   []part
		literal strings.Builder
	)

	flush := func() {
		if literal.Len() == 0 {
			return
		}

		text := literal.String()
		literal.Reset()

		parts = append(parts, func(b *strings.Builder, _ Event) {
			b.WriteString(text)
		})
	}

	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' {
			literal.WriteByte(pattern[i])
			continue
		}

		i++
		if i >= len(pattern) {
			return nil, errors.New("dangling %")
		}

		if pattern[i] == '%' {
			literal.WriteByte('%')
			continue
		}

		leftAlign := false
		if pattern[i] == '-' {
			leftAlign = true
			i++
		}

		start := i
		for i < len(pattern) && pattern[i] >= '0' && pattern[i] <= '9' {
			i++
		}

		width := 0
		if i > start {
			width, _ = strconv.Atoi(pattern[start:i])
		}

		start = i
		for i < len(pattern) && isWordByte(pattern[i]) {
			i++
		}

		word := pattern[start:i]

		var arg string
		if i < len(pattern) && pattern[i] == '{' {
			end := strings.IndexByte(pattern[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unterminated option of %%%s", word)
			}

			arg = pattern[i+1 : i+end]
			i += end + 1
		}

		// NOTE: The loop increments i, so we step back onto the last
		// consumed byte.
		i--

		render, err := conversion(word, arg)
		if err != nil {
			return nil, err
		}

		flush()

		parts = append(parts, pad(render, width, leftAlign))
	}

	flush()

	return parts, nil
}

// conversion returns the renderer of a single conversion word.
func conversion(word, arg string) (func(e Event) string, error) {
	switch word {
	case "level", "le", "p":
		return func(e Event) string { return e.Level.String() }, nil
	case "msg", "message", "m":
		return func(e Event) string { return e.Message }, nil
	case "thread", "t", "origin":
		return func(e Event) string { return e.Origin }, nil
	case "n":
		return func(Event) string { return "\n" }, nil
	case "attrs", "kv":
		return renderAttrs, nil
	case "d", "date":
		layout := arg
		if layout == "" {
			layout = _defaultDateLayout
		}

		return func(e Event) string { return e.Time.Format(layout) }, nil
	case "":
		return nil, errors.New("missing conversion word")
	default:
		return nil, fmt.Errorf("unknown conversion word %q", word)
	}
}

// pad wraps the renderer to honour the requested minimal width.
func pad(render func(e Event) string, width int, leftAlign bool) part {
	return func(b *strings.Builder, e Event) {
		s := render(e)

		fill := width - utf8.RuneCountInString(s)
		if fill <= 0 {
			b.WriteString(s)
			return
		}

		if leftAlign {
			b.WriteString(s)
			b.WriteString(strings.Repeat(" ", fill))

			return
		}

		b.WriteString(strings.Repeat(" ", fill))
		b.WriteString(s)
	}
}

// renderAttrs renders attributes as space prefixed key=value pairs.
func renderAttrs(e Event) string {
	if len(e.Attrs) == 0 {
		return ""
	}

	var b strings.Builder

	for _, a := range e.Attrs {
		writeAttr(&b, "", a)
	}

	return b.String()
}

// writeAttr writes a single attribute, flattening groups.
func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	v := a.Value.Resolve()

	key := a.Key
	if prefix != "" && key != "" {
		key = prefix + "." + key
	} else if key == "" {
		key = prefix
	}

	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			writeAttr(b, key, ga)
		}

		return
	}

	if key == "" {
		return
	}

	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')

	s := v.String()
	if strings.ContainsAny(s, " =\"") {
		s = strconv.Quote(s)
	}

	b.WriteString(s)
}

// isWordByte reports whether the byte may be part of a conversion word.
func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
