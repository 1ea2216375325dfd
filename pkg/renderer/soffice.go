package renderer

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// ConvertToPDF converts a .docx file to PDF using LibreOffice. The returned
// path is where soffice writes its output: the docx basename with a .pdf
// extension under outputDir.
func ConvertToPDF(docxPath, outputDir string) (pdfPath string, err error) {
	// Validate soffice exists
	err = CheckSoffice()
	if err != nil {
		return pdfPath, err
	}

	// Validate input file exists
	_, err = os.Stat(docxPath)
	if os.IsNotExist(err) {
		err = errors.Errorf("file not found: %s", docxPath)
		return pdfPath, err
	}

	// Ensure output directory exists
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return pdfPath, err
	}

	// Build soffice command
	//nolint:noctx // Context not available for exec.Command - soffice is a long-running subprocess
	cmd := exec.Command(
		"soffice",
		"--headless",
		"--convert-to", "pdf",
		"--outdir", outputDir,
		docxPath,
	)

	// Capture output
	var output []byte
	output, err = cmd.CombinedOutput()
	if err != nil {
		err = errors.Wrapf(err, "soffice conversion failed: %s", string(output))
		return pdfPath, err
	}

	// soffice names its output after the input file, not anything we pass on
	// the command line, so derive the path and verify the file landed.
	pdfPath = ExpectedPDFPath(docxPath, outputDir)
	_, err = os.Stat(pdfPath)
	if os.IsNotExist(err) {
		err = errors.Errorf("expected PDF not found at %s (soffice output: %s)", pdfPath, string(output))
		pdfPath = ""
		return pdfPath, err
	}

	return pdfPath, err
}

// ExpectedPDFPath returns where soffice will write the PDF for the given
// input file.
func ExpectedPDFPath(inputPath, outputDir string) (pdfPath string) {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base)) + ".pdf"
	pdfPath = filepath.Join(outputDir, base)
	return pdfPath
}

// CheckSoffice verifies LibreOffice is installed.
func CheckSoffice() (err error) {
	//nolint:noctx // Context not available for version check
	cmd := exec.Command("soffice", "--version")
	err = cmd.Run()
	if err != nil {
		err = errors.New("soffice not found in PATH (install LibreOffice to generate PDFs)")
		return err
	}
	return err
}
