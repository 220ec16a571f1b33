package filemap

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Separator splits the source operand from the destination operand.
	Separator = '>'
	// Escape makes the following character literal.
	Escape = '\\'
)

// ErrParse is matched by every *ParseError.
var ErrParse = errors.New("invalid mapping line")

// Pair is one parsed mapping line.
type Pair struct {
	Source string `yaml:"source"`
	Dest   string `yaml:"dest"`
}

// String renders the pair the way it is logged.
func (p Pair) String() string {
	return fmt.Sprintf("'%s' -> '%s'", p.Source, p.Dest)
}

// ParseError reports a malformed mapping line.
type ParseError struct {
	Kind Kind
	Line string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case TooManySeparators:
		return fmt.Sprintf("mapping %q: cannot have 2 '%c' (escape a literal one as '\\%c')", e.Line, Separator, Separator)
	case MissingSeparator:
		return fmt.Sprintf("mapping %q: must have 1 '%c'", e.Line, Separator)
	case EmptyOperand:
		return fmt.Sprintf("mapping %q: source or destination cannot be empty", e.Line)
	default:
		return fmt.Sprintf("mapping %q: %s", e.Line, e.Kind)
	}
}

// Is lets errors.Is(err, ErrParse) match any parse failure.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Parse splits a mapping line into its source and destination operands.
// It is a single pass over the line with no lookahead.
func Parse(line string) (Pair, error) {
	var (
		buf     strings.Builder
		source  string
		escaped bool
		split   bool
	)

	for _, c := range line {
		if escaped {
			escaped = false
			buf.WriteRune(c)

			continue
		}

		switch c {
		case Escape:
			escaped = true
		case Separator:
			if split {
				return Pair{}, &ParseError{Kind: TooManySeparators, Line: line}
			}

			source = buf.String()
			buf.Reset()
			split = true
		default:
			buf.WriteRune(c)
		}
	}

	if !split {
		return Pair{}, &ParseError{Kind: MissingSeparator, Line: line}
	}

	dest := buf.String()
	if strings.TrimSpace(source) == "" || strings.TrimSpace(dest) == "" {
		return Pair{}, &ParseError{Kind: EmptyOperand, Line: line}
	}

	return Pair{Source: source, Dest: dest}, nil
}

// ParseLines splits multi-line input into mapping lines. Each line is
// trimmed and blank lines are dropped.
func ParseLines(text string) []string {
	var lines []string

	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lines = append(lines, line)
	}

	return lines
}
