package main

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// writeValue encodes v as json or yaml.
func writeValue(w io.Writer, format, indent string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		if indent != "" {
			enc.SetIndent("", indent)
		}
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(yamlIndent(indent))
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("cannot encode as %q", format)
	}
}

// yamlIndent maps the configured indent string to a yaml.v3 column count.
func yamlIndent(indent string) int {
	if n := len(indent); n >= 2 {
		return n
	}
	return 2
}
