package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRepository is returned when no usable repository can be determined.
var ErrRepository = errors.New("invalid repository")

// Repository names an owner/repo pair.
type Repository struct {
	Owner string
	Repo  string
}

func (r Repository) String() string {
	return r.Owner + "/" + r.Repo
}

// ParseRepository splits "owner/repo". Both parts must be non-empty and
// there must be exactly one '/'.
func ParseRepository(s string) (Repository, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Repository{}, fmt.Errorf("%w: %q (expected owner/repo)", ErrRepository, s)
	}

	return Repository{Owner: parts[0], Repo: parts[1]}, nil
}

// ResolveRepository parses explicit, falling back to ambient when explicit
// is empty. ambient may be nil.
func ResolveRepository(explicit string, ambient func() string) (Repository, error) {
	if strings.TrimSpace(explicit) != "" {
		return ParseRepository(explicit)
	}

	if ambient != nil {
		if v := ambient(); strings.TrimSpace(v) != "" {
			return ParseRepository(v)
		}
	}

	return Repository{}, fmt.Errorf("%w: not set and none found in the environment", ErrRepository)
}
