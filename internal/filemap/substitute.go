package filemap

import "strings"

// TagPlaceholder is replaced by the release tag in both operands.
const TagPlaceholder = "$tag"

// Substitute replaces every TagPlaceholder in p with tag.
func Substitute(p Pair, tag string) Pair {
	return Pair{
		Source: strings.ReplaceAll(p.Source, TagPlaceholder, tag),
		Dest:   strings.ReplaceAll(p.Dest, TagPlaceholder, tag),
	}
}
