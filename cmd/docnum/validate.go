package main

import (
	"errors"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/tsawler/docnum/format"
	"github.com/tsawler/docnum/numjson"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check NumberingsJSON files against the schema and field rules",
		Long: `Validate checks each NumberingsJSON payload, or the numberings section
of a JSON document, against the JSON Schema and then against field and
cross-reference rules (unique ids and levels, known abstract numberings).

Exits non-zero when any file is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, file := range args {
				if err := validateFile(file); err != nil {
					failed++
					a.logger.Debug("validation failed", "file", file, "err", err)
					fmt.Fprintf(out, "%s: %v\n", file, err)
					continue
				}
				fmt.Fprintf(out, "%s: ok\n", file)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files invalid", failed, len(args))
			}
			return nil
		},
	}
}

func validateFile(file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	payload, err := numberingsPayload(data)
	if err != nil {
		return err
	}
	if err := numjson.ValidateSchema(payload); err != nil {
		return err
	}

	n, err := numjson.Unmarshal(payload)
	if err != nil {
		return err
	}
	return n.Validate()
}

// numberingsPayload returns the NumberingsJSON part of data.
func numberingsPayload(data []byte) ([]byte, error) {
	switch format.DetectFromMagic(data) {
	case format.Numberings:
		return data, nil
	case format.Document:
		var doc struct {
			Numberings json.RawMessage `json:"numberings"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding document: %w", err)
		}
		return doc.Numberings, nil
	default:
		return nil, errors.New("not a NumberingsJSON payload or JSON document")
	}
}
