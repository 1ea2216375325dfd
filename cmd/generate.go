package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/nikogura/cover-tailor/pkg/config"
	"github.com/nikogura/cover-tailor/pkg/docx"
	"github.com/nikogura/cover-tailor/pkg/jd"
	"github.com/nikogura/cover-tailor/pkg/letter"
	"github.com/nikogura/cover-tailor/pkg/llm"
	"github.com/nikogura/cover-tailor/pkg/renderer"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//nolint:gochecknoglobals // Cobra boilerplate
var company string

//nolint:gochecknoglobals // Cobra boilerplate
var outputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var model string

//nolint:gochecknoglobals // Cobra boilerplate
var skipPDF bool

//nolint:gochecknoglobals // Cobra boilerplate
var keepDocx bool

//nolint:gochecknoglobals // Cobra boilerplate
var generateCmd = &cobra.Command{
	Use:   "generate [job-description...]",
	Short: "Generate a cover letter from a job description",
	Long: `Generate a formatted cover letter from a job description.

The job description can be provided as:
- One or more arguments, joined as the description text
- A single argument naming a file (e.g., jd.txt) or URL
- Standard input when no arguments are given (paste, then Ctrl+D)

Example:
  cover-tailor generate jd.txt --company "Acme Corp"
  cover-tailor generate https://example.com/jobs/123
  cat jd.txt | cover-tailor generate`,
	Args: cobra.ArbitraryArgs,
	RunE: runGenerate,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&company, "company", "", "Company name (used in the output filename and to fill company placeholders)")
	generateCmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory (default from config)")
	generateCmd.Flags().StringVar(&model, "model", "", "Generation model (default from config)")
	generateCmd.Flags().BoolVar(&skipPDF, "skip-pdf", false, "Skip PDF conversion (useful when LibreOffice is unavailable)")
	generateCmd.Flags().BoolVar(&keepDocx, "keep-docx", true, "Keep the .docx file after successful PDF conversion")
}

func runGenerate(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	// Load configuration. Validation fails before any network call when the
	// API key is missing.
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	// Resolve job description from args, file, URL, or stdin
	var jobDescription string
	jobDescription, err = resolveJobDescription(args)
	if err != nil {
		return err
	}

	// Generate the letter prose
	client := llm.NewClient(cfg.GroqAPIKey, generationModel(cfg))

	var letterText string
	letterText, err = runGenerationPhase(ctx, client, jobDescription)
	if err != nil {
		return err
	}

	// Substitute applicant placeholders
	now := time.Now()
	replacements := letter.Replacements(cfg.Applicant, now)
	applyCompany(replacements, company)
	letterText = letter.Substitute(letterText, replacements)

	// Assemble the document
	doc := docx.NewDocument()
	doc.SetHeader(cfg.Applicant.Name, letter.ContactLine(cfg.Applicant))
	doc.AddParagraph(now.Format(letter.DateFormat))
	doc.AddParagraph("")
	doc.AddParagraphs(letterText)

	outDir := baseOutputDir(cfg)
	docxPath := uniquePath(buildOutputPath(outDir, company, now))

	err = doc.Save(docxPath)
	if err != nil {
		err = errors.Wrap(err, "failed to save document")
		return err
	}

	fmt.Printf("Successfully created DOCX: %s\n", docxPath)

	if skipPDF {
		return err
	}

	// PDF conversion is best-effort: a missing or failing soffice leaves the
	// docx in place with a warning.
	var pdfPath string
	pdfPath, err = renderer.ConvertToPDF(docxPath, outDir)
	if err != nil {
		fmt.Printf("Warning: PDF conversion failed: %v\n", err)
		fmt.Printf("DOCX saved at: %s\n", docxPath)
		err = nil
		return err
	}

	fmt.Printf("Successfully created PDF: %s\n", pdfPath)

	if !keepDocx {
		err = os.Remove(docxPath)
		if err != nil {
			err = errors.Wrapf(err, "failed to remove docx file: %s", docxPath)
			return err
		}
	}

	return err
}

// resolveJobDescription gets the job description from args or stdin.
func resolveJobDescription(args []string) (jobDescription string, err error) {
	jobDescription, err = jd.Resolve(args)
	if err != nil {
		return jobDescription, err
	}

	if jobDescription == "" {
		jobDescription, err = readJobDescriptionFromStdin()
		if err != nil {
			return jobDescription, err
		}
	}

	if jobDescription == "" {
		err = errors.New("no job description provided")
		return jobDescription, err
	}

	if getVerbose() {
		fmt.Printf("Job description loaded (%d characters)\n", len(jobDescription))
	}

	return jobDescription, err
}

// readJobDescriptionFromStdin reads a pasted job description until EOF.
func readJobDescriptionFromStdin() (jobDescription string, err error) {
	fmt.Println("Paste the full job description below. Press Ctrl+D (or Ctrl+Z on Windows) when done:")

	scanner := bufio.NewScanner(os.Stdin)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if scanner.Err() != nil {
		err = errors.Wrap(scanner.Err(), "failed to read job description from stdin")
		return jobDescription, err
	}

	jobDescription = strings.TrimSpace(strings.Join(lines, "\n"))

	return jobDescription, err
}

// runGenerationPhase calls the Groq API with a spinner unless verbose.
func runGenerationPhase(ctx context.Context, client *llm.Client, jobDescription string) (letterText string, err error) {
	var genSpinner *spinner
	if !getVerbose() {
		genSpinner = newSpinner("Generating cover letter with Groq API...")
		genSpinner.start()
	} else {
		fmt.Println("Generating cover letter with Groq API...")
	}

	letterText, err = client.GenerateCoverLetter(ctx, jobDescription)

	if genSpinner != nil {
		genSpinner.stopSpinner()
	}

	if err != nil {
		err = errors.Wrap(err, "Groq API generation failed")
		return letterText, err
	}

	if !getVerbose() {
		fmt.Println("✓ Generation complete")
	}

	return letterText, err
}

// applyCompany fills company placeholders when a company name was given on
// the command line.
func applyCompany(replacements map[string]string, company string) {
	if company == "" {
		return
	}

	titleCaser := cases.Title(language.English)
	titled := titleCaser.String(company)
	replacements["[Company Name]"] = titled
	replacements["[Organization Name]"] = titled
}

// generationModel returns the model from flag or config.
func generationModel(cfg config.Config) (result string) {
	result = model
	if result == "" {
		result = cfg.GetGenerationModel()
	}
	return result
}

// baseOutputDir returns the output directory from flag or config.
func baseOutputDir(cfg config.Config) (result string) {
	result = outputDir
	if result == "" {
		result = cfg.Defaults.OutputDir
	}
	return result
}

// buildOutputPath generates the timestamped docx path.
func buildOutputPath(outDir, company string, now time.Time) (path string) {
	base := "cover-letter"
	if company != "" {
		base = base + "-" + sanitizeFilename(company)
	}
	base = base + "-" + now.Format("20060102-150405")

	path = filepath.Join(outDir, base+".docx")
	return path
}

// uniquePath appends a counter suffix when path already exists, so rapid
// successive runs within the same second never overwrite each other.
func uniquePath(path string) (unique string) {
	unique = path

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)

	for i := 1; ; i++ {
		_, err := os.Stat(unique)
		if os.IsNotExist(err) {
			return unique
		}
		unique = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}
}

// sanitizeFilename converts a company name into a filesystem-safe slug.
func sanitizeFilename(name string) (sanitized string) {
	// Remove common company suffixes
	suffixes := []string{
		" LLC", " llc",
		" Inc.", " inc.",
		" Inc", " inc",
		" Corporation", " corporation",
		" Corp.", " corp.",
		" Corp", " corp",
		" Limited", " limited",
		" Ltd.", " ltd.",
		" Ltd", " ltd",
		", LLC", ", llc",
		", Inc.", ", inc.",
		", Inc", ", inc",
	}

	sanitized = name
	for _, suffix := range suffixes {
		sanitized = strings.TrimSuffix(sanitized, suffix)
	}

	// Convert to lowercase
	sanitized = strings.ToLower(sanitized)

	// Replace spaces and special chars with hyphens
	sanitized = strings.Map(func(r rune) (result rune) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			result = r
			return result
		}
		result = '-'
		return result
	}, sanitized)

	// Remove consecutive hyphens
	for strings.Contains(sanitized, "--") {
		sanitized = strings.ReplaceAll(sanitized, "--", "-")
	}

	// Trim hyphens from ends
	sanitized = strings.Trim(sanitized, "-")

	return sanitized
}

// spinner provides a simple text-based progress indicator.
type spinner struct {
	message string
	stop    chan bool
	done    chan bool
	mu      sync.Mutex
	active  bool
}

func newSpinner(message string) (s *spinner) {
	s = &spinner{
		message: message,
		stop:    make(chan bool),
		done:    make(chan bool),
	}
	return s
}

func (s *spinner) start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	go func() {
		chars := []string{"|", "/", "-", "\\"}
		i := 0
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		fmt.Printf("%s ", s.message)
		for {
			select {
			case <-s.stop:
				// Clear the line and ensure cursor is at start of new line
				fmt.Printf("\r%s\r", strings.Repeat(" ", len(s.message)+2))
				s.done <- true
				return
			case <-ticker.C:
				fmt.Printf("\r%s %s", s.message, chars[i%len(chars)])
				i++
			}
		}
	}()
}

func (s *spinner) stopSpinner() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.stop <- true
	<-s.done

	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}
