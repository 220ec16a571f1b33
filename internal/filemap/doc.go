// Package filemap parses file-mapping lines into (source, destination) pairs
// and substitutes the release tag into them.
//
// # Line syntax
//
// A mapping line names a local file and the asset name it is published as,
// separated by a single '>':
//
//	build/app.bin>release-$tag.bin
//	README.md>docs/readme.txt
//
// A backslash escapes the next character, so a literal '>' in either operand
// is written as '\>' and a literal backslash as '\\':
//
//	out/a\>b.txt>c.txt      (source "out/a>b.txt", destination "c.txt")
//
// Both operands must be non-empty after trimming whitespace. The operands
// themselves are returned as written.
//
// # Tag placeholder
//
// Every literal "$tag" in either operand is replaced by the resolved tag.
// The replacement is verbatim and not recursive.
package filemap
