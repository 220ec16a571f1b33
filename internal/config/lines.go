package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"release-uploader/internal/filemap"
)

// Lines is a list of mapping lines. In YAML it accepts either a block
// string with one mapping per line or a sequence of strings.
type Lines []string

// UnmarshalYAML implements custom YAML unmarshaling for Lines.
func (l *Lines) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		if err := node.Decode(&str); err != nil {
			return err
		}

		*l = Lines(filemap.ParseLines(str))
		if *l == nil {
			*l = Lines{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		if err := node.Decode(&arr); err != nil {
			return err
		}

		out := Lines{}
		for _, s := range arr {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}

		*l = out

		return nil

	default:
		return fmt.Errorf("filemap: expected string or list, got %v", node.Kind)
	}
}
