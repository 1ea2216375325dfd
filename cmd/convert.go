package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/nikogura/cover-tailor/pkg/renderer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var convertOutputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var convertCmd = &cobra.Command{
	Use:   "convert <file.docx>",
	Short: "Convert an existing .docx to PDF",
	Long: `Convert an existing .docx file to PDF using LibreOffice.

Unlike the generate pipeline, conversion failures here are errors: there is
nothing else for this command to produce.

Example:
  cover-tailor convert output/cover-letter-20250101-120000.docx
  cover-tailor convert letter.docx --output-dir ~/Documents`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVar(&convertOutputDir, "output-dir", "", "Output directory (default is the input file's directory)")
}

func runConvert(cmd *cobra.Command, args []string) (err error) {
	docxPath := args[0]

	outDir := convertOutputDir
	if outDir == "" {
		outDir = filepath.Dir(docxPath)
	}

	var pdfPath string
	pdfPath, err = renderer.ConvertToPDF(docxPath, outDir)
	if err != nil {
		err = errors.Wrapf(err, "failed to convert %s", docxPath)
		return err
	}

	fmt.Printf("Successfully created PDF: %s\n", pdfPath)

	return err
}
