package llm

import (
	"strings"
	"testing"
)

func TestBuildCoverLetterPrompt(t *testing.T) {
	jobDescription := "We need a Go engineer with five years of experience."
	prompt := buildCoverLetterPrompt(jobDescription)

	if !strings.Contains(prompt, jobDescription) {
		t.Error("Prompt doesn't contain the job description")
	}

	// The prompt must instruct the model to preserve the placeholders the
	// letter package substitutes later.
	placeholders := []string{
		"[Your Name]",
		"[Your Address]",
		"[Your City, Postal Code]",
		"[Your Email Address]",
		"[Your Phone Number]",
		"[Your LinkedIn Profile]",
		"[Date]",
		"[Company Name]",
	}

	for _, placeholder := range placeholders {
		if !strings.Contains(prompt, placeholder) {
			t.Errorf("Prompt doesn't mention placeholder %s", placeholder)
		}
	}

	if !strings.Contains(prompt, "Dear Hiring Team,") {
		t.Error("Prompt doesn't specify the salutation")
	}

	if !strings.Contains(prompt, "Best regards,") {
		t.Error("Prompt doesn't specify the closing")
	}
}
