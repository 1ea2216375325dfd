package letter

import (
	"sort"
	"strings"
	"time"

	"github.com/nikogura/cover-tailor/pkg/config"
)

// DateFormat is the long-form date written into the letter.
const DateFormat = "January 2, 2006"

// Replacements builds the placeholder token map from the applicant profile.
// Empty profile fields produce no entry, leaving their tokens in the text for
// manual editing.
func Replacements(applicant config.ApplicantConfig, now time.Time) (replacements map[string]string) {
	replacements = make(map[string]string)

	addReplacement(replacements, applicant.Name, "[Your Name]")
	addReplacement(replacements, applicant.Address, "[Your Address]")
	addReplacement(replacements, applicant.CityPostal, "[Your City, Postal Code]")
	addReplacement(replacements, applicant.Email, "[Your Email Address]", "[Email Address]")
	addReplacement(replacements, applicant.Phone, "[Your Phone Number]", "[Phone Number]")
	addReplacement(replacements, applicant.LinkedIn, "[Your LinkedIn Profile]")
	addReplacement(replacements, now.Format(DateFormat), "[Date]")

	return replacements
}

// addReplacement maps each token to value unless the value is empty.
func addReplacement(replacements map[string]string, value string, tokens ...string) {
	if value == "" {
		return
	}
	for _, token := range tokens {
		replacements[token] = value
	}
}

// Substitute replaces every occurrence of each known token in text. Tokens
// not present in the map are left literally in the output.
func Substitute(text string, replacements map[string]string) (result string) {
	result = text

	// Sort tokens so substitution order is deterministic regardless of map
	// iteration order.
	tokens := make([]string, 0, len(replacements))
	for token := range replacements {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	for _, token := range tokens {
		result = strings.ReplaceAll(result, token, replacements[token])
	}

	return result
}

// ContactLine formats the single-line contact summary for the letter header.
func ContactLine(applicant config.ApplicantConfig) (line string) {
	parts := []string{}

	if applicant.Address != "" || applicant.CityPostal != "" {
		addr := applicant.Address
		if addr != "" && applicant.CityPostal != "" {
			addr = addr + ", " + applicant.CityPostal
		} else if addr == "" {
			addr = applicant.CityPostal
		}
		parts = append(parts, addr)
	}

	if applicant.Email != "" {
		parts = append(parts, applicant.Email)
	}

	if applicant.Phone != "" {
		parts = append(parts, applicant.Phone)
	}

	if applicant.LinkedIn != "" {
		parts = append(parts, applicant.LinkedIn)
	}

	line = strings.Join(parts, " | ")
	return line
}
