package numjson

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Schema returns the embedded JSON Schema for NumberingsJSON.
func Schema() []byte {
	return append([]byte(nil), schemaJSON...)
}

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("numberings.json", bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("loading numberings schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile("numberings.json")
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compiling numberings schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// ValidateSchema checks a raw payload against the NumberingsJSON schema.
// Unlike decoding, it rejects omitted nullable fields.
func ValidateSchema(data []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding numberings for validation: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("numberings do not match schema: %w", err)
	}
	return nil
}

// Validate checks field rules and cross references: unique ids, unique
// levels per abstract numbering and override, and instance references to
// existing abstract numberings. All problems are reported together.
func (n *Numberings) Validate() error {
	validate := validator.New()
	if err := validate.Struct(n); err != nil {
		return err
	}

	var errs []error

	abstracts := make(map[int]bool, len(n.AbstractNums))
	for _, a := range n.AbstractNums {
		if abstracts[a.ID] {
			errs = append(errs, fmt.Errorf("abstractNum %d: duplicate id", a.ID))
		}
		abstracts[a.ID] = true

		levels := make(map[int]bool, len(a.Levels))
		for _, l := range a.Levels {
			if levels[l.Level] {
				errs = append(errs, fmt.Errorf("abstractNum %d: duplicate level %d", a.ID, l.Level))
			}
			levels[l.Level] = true
		}
	}

	instances := make(map[int]bool, len(n.Numberings))
	for _, num := range n.Numberings {
		if instances[num.ID] {
			errs = append(errs, fmt.Errorf("num %d: duplicate id", num.ID))
		}
		instances[num.ID] = true

		if !abstracts[num.AbstractNumID] {
			errs = append(errs, fmt.Errorf("num %d: unknown abstractNumId %d", num.ID, num.AbstractNumID))
		}

		overrides := make(map[int]bool, len(num.LevelOverrides))
		for _, o := range num.LevelOverrides {
			if overrides[o.Level] {
				errs = append(errs, fmt.Errorf("num %d: duplicate override for level %d", num.ID, o.Level))
			}
			overrides[o.Level] = true
		}
	}

	return errors.Join(errs...)
}
