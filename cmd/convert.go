package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/eykd/adfconv/internal/builder"
	"github.com/eykd/adfconv/internal/convert"
)

// ConvertIO reads and writes documents for the convert and validate
// commands.
type ConvertIO interface {
	ReadFile(path string) ([]byte, error)
	WriteFileAtomic(path string, data []byte) error
}

// NewConvertCmd creates the convert subcommand.
func NewConvertCmd(fio ConvertIO) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a document between adf, html and md",
		Long: "Convert a document between ADF JSON (adf), HTML (html) and Markdown (md).\n" +
			"The input is read from file, or from stdin when file is omitted or \"-\".\n" +
			"The input format defaults to the one implied by the file extension.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromName, _ := cmd.Flags().GetString("from")
			toName, _ := cmd.Flags().GetString("to")
			output, _ := cmd.Flags().GetString("output")

			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			from, err := inputFormat(fromName, path)
			if err != nil {
				return err
			}
			to, err := convert.ParseFormat(toName)
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

			out, err := conv.Convert(cmd.Context(), from, to, input)
			if err != nil {
				return reportConvertError(cmd, err)
			}
			log.Debug("converted", zap.String("from", string(from)), zap.String("to", string(to)), zap.Int("bytes", len(out)))

			if output != "" && output != "-" {
				if err := fio.WriteFileAtomic(output, out); err != nil {
					return fmt.Errorf("writing %s: %w", output, err)
				}
				return nil
			}
			if len(out) > 0 && out[len(out)-1] != '\n' {
				out = append(out, '\n')
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	cmd.Flags().StringP("from", "f", "", "input format: adf, html or md (default: from the file extension)")
	cmd.Flags().StringP("to", "t", "", "output format: adf, html or md")
	cmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

// inputFormat resolves the --from flag, falling back to the extension of
// path.
func inputFormat(name, path string) (convert.Format, error) {
	if name != "" {
		return convert.ParseFormat(name)
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.New("--from is required when reading stdin or a file without extension")
	}
	return convert.ParseFormat(ext)
}

func readInput(cmd *cobra.Command, fio ConvertIO, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := fio.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// reportConvertError prints structural faults in detail before returning
// the error.
func reportConvertError(cmd *cobra.Command, err error) error {
	var se *builder.StructuralError
	if errors.As(err, &se) {
		printFault(cmd.ErrOrStderr(), se)
		return errors.New("conversion aborted")
	}
	return fmt.Errorf("converting: %w", err)
}

// fileConvertIO implements ConvertIO using OS file I/O.
type fileConvertIO struct{}

func newDefaultConvertIO() *fileConvertIO {
	return &fileConvertIO{}
}

func (f *fileConvertIO) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFileAtomic writes data next to path and renames it into place.
func (f *fileConvertIO) WriteFileAtomic(path string, data []byte) error {
	return writeFileAtomic(path, data, 0o644)
}

// writeFileAtomic writes data to path via a temp file in the same directory.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".adfc-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
