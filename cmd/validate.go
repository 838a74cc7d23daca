package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eykd/adfconv/internal/adf"
	"github.com/eykd/adfconv/internal/convert"
)

// NewValidateCmd creates the validate subcommand.
func NewValidateCmd(fio ConvertIO) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a document against the structural rules of ADF",
		Long: "Check a document against the structural rules of ADF. HTML and Markdown\n" +
			"input is converted first, so structural faults in the markup are reported too.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromName, _ := cmd.Flags().GetString("from")
			jsonMode, _ := cmd.Flags().GetBool("json")

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			if fromName == "" && (path == "" || path == "-") {
				fromName = string(convert.FormatADF)
			}
			from, err := inputFormat(fromName, path)
			if err != nil {
				return err
			}

			input, err := readInput(cmd, fio, path)
			if err != nil {
				return err
			}
			_, log, conv, err := setup(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			doc, err := decodeDocument(cmd.Context(), conv, from, input)
			if err != nil {
				return reportConvertError(cmd, err)
			}

			diags := adf.Validate(doc)
			if jsonMode {
				if diags == nil {
					diags = []adf.Diagnostic{}
				}
				if err := json.NewEncoder(cmd.OutOrStdout()).Encode(diags); err != nil {
					return fmt.Errorf("encoding output: %w", err)
				}
			} else {
				printDiagnostics(cmd.OutOrStdout(), diags)
			}

			if adf.HasErrors(diags) {
				return errors.New("document has validation errors")
			}
			return nil
		},
	}

	cmd.Flags().StringP("from", "f", "", "input format: adf, html or md (default: from the file extension, adf for stdin)")
	cmd.Flags().Bool("json", false, "output diagnostics as JSON array")

	return cmd
}

func decodeDocument(ctx context.Context, conv *convert.Converter, from convert.Format, input []byte) (*adf.Node, error) {
	switch from {
	case convert.FormatHTML:
		return conv.HTMLToADF(ctx, string(input))
	case convert.FormatMarkdown:
		return conv.MarkdownToADF(ctx, string(input))
	}
	return adf.Decode(input)
}
