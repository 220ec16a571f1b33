package filemap

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind classifies why a mapping line was rejected.
type Kind int

const (
	_ Kind = iota // zero value is reserved for "no error"

	TooManySeparators
	MissingSeparator
	EmptyOperand
)
