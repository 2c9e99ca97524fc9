package main

import (
	"github.com/spf13/cobra"

	"github.com/tsawler/docnum"
)

func newExportCmd(a *app) *cobra.Command {
	var compact bool

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Print a document's numbering definitions as NumberingsJSON",
		Long: `Export converts the numbering definitions of a DOCX or ODT file
(or the numberings section of a JSON document) into a NumberingsJSON payload.

Examples:
  docnum export contract.docx > numbering.json
  docnum export --compact contract.docx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, warnings, err := docnum.Open(args[0]).
				MaxLinkDepth(a.config().Render.MaxLinkDepth).
				Numberings()
			if err != nil {
				return err
			}
			for _, w := range warnings {
				a.logger.Warn("numbering warning", "file", args[0], "err", w.Err)
			}

			indent := a.config().Output.Indent
			if compact {
				indent = ""
			}
			return n.Encode(cmd.OutOrStdout(), indent)
		},
	}

	cmd.Flags().BoolVar(&compact, "compact", false, "print without indentation")
	return cmd
}
