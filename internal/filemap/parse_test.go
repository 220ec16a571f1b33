package filemap

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected Pair
	}{
		{"simple", "a>b", Pair{Source: "a", Dest: "b"}},
		{"paths", "build/app.bin>release-$tag.bin", Pair{Source: "build/app.bin", Dest: "release-$tag.bin"}},
		{"nested dest", "README.md>docs/readme.txt", Pair{Source: "README.md", Dest: "docs/readme.txt"}},
		{"escaped separator in source", `a\>b>c`, Pair{Source: "a>b", Dest: "c"}},
		{"escaped separator in dest", `a>b\>c`, Pair{Source: "a", Dest: "b>c"}},
		{"escaped backslash", `a\\b>c`, Pair{Source: `a\b`, Dest: "c"}},
		{"escaped ordinary char", `\a>\b`, Pair{Source: "a", Dest: "b"}},
		{"operands keep spaces", " a > b ", Pair{Source: " a ", Dest: " b "}},
		{"trailing lone escape", `a>b\`, Pair{Source: "a", Dest: "b"}},
		{"unicode", "данные.bin>файл-$tag.bin", Pair{Source: "данные.bin", Dest: "файл-$tag.bin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		kind Kind
	}{
		{"two separators", "a>b>c", TooManySeparators},
		{"separator at both ends", ">a>", TooManySeparators},
		{"no separator", "abc", MissingSeparator},
		{"only escaped separator", `a\>b`, MissingSeparator},
		{"empty line", "", MissingSeparator},
		{"blank source", " >dest", EmptyOperand},
		{"blank dest", "src> ", EmptyOperand},
		{"bare separator", ">", EmptyOperand},
		{"dest only escape", `src>\`, EmptyOperand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.line)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.kind, perr.Kind)
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, ">", `\>`)
	return r.Replace(s)
}

func TestParseRoundTrip(t *testing.T) {
	pairs := []Pair{
		{Source: "a", Dest: "b"},
		{Source: "dir/with>arrow", Dest: "x"},
		{Source: `win\path\file.exe`, Dest: `odd>name\.bin`},
		{Source: "$tag/file", Dest: "$tag"},
	}

	for _, p := range pairs {
		line := escape(p.Source) + string(Separator) + escape(p.Dest)

		got, err := Parse(line)
		require.NoError(t, err, line)
		assert.Equal(t, p, got)
	}
}

func TestParseErrorMessages(t *testing.T) {
	_, err := Parse("a>b>c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `'\>'`)

	_, err = Parse("abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must have 1 '>'")

	_, err = Parse(" > ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "TooManySeparators", TooManySeparators.String())
	assert.Equal(t, "MissingSeparator", MissingSeparator.String())
	assert.Equal(t, "EmptyOperand", EmptyOperand.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
}

func TestParseLines(t *testing.T) {
	text := "a>b\n\n  c>d  \r\n   \n"

	assert.Equal(t, []string{"a>b", "c>d"}, ParseLines(text))
	assert.Empty(t, ParseLines(""))
	assert.Empty(t, ParseLines("\n \n"))
}
