package jd

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Resolve turns the generate command's positional arguments into job
// description text. A single argument naming an existing file or an http(s)
// URL is fetched; anything else is treated as literal text joined with
// spaces. An empty result with nil error means the caller should fall back
// to stdin.
func Resolve(args []string) (content string, err error) {
	if len(args) == 0 {
		return content, err
	}

	if len(args) == 1 {
		arg := args[0]
		if isURL(arg) {
			content, err = Fetch(arg)
			return content, err
		}
		if _, statErr := os.Stat(arg); statErr == nil {
			content, err = Fetch(arg)
			return content, err
		}
	}

	content = strings.TrimSpace(strings.Join(args, " "))
	return content, err
}

// Fetch retrieves a job description from a file or URL.
func Fetch(input string) (content string, err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	content, err = FetchWithContext(ctx, input)
	return content, err
}

// FetchWithContext retrieves a job description with context.
func FetchWithContext(ctx context.Context, input string) (content string, err error) {
	if isURL(input) {
		content, err = fetchFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch job description from URL: %s", input)
			return content, err
		}
		return content, err
	}

	content, err = fetchFromFile(input)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch job description from file: %s", input)
		return content, err
	}

	return content, err
}

// isURL reports whether input parses as an http(s) URL.
func isURL(input string) (result bool) {
	parsedURL, err := url.Parse(input)
	result = err == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https")
	return result
}

// fetchFromFile reads a job description from a file.
func fetchFromFile(path string) (content string, err error) {
	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read file: %s", path)
		return content, err
	}

	content = string(data)
	if strings.TrimSpace(content) == "" {
		err = errors.New("file is empty")
		return content, err
	}

	return content, err
}

// fetchFromURL retrieves a job description from a URL.
func fetchFromURL(ctx context.Context, urlStr string) (content string, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return content, err
	}

	// Set a reasonable user agent
	req.Header.Set("User-Agent", "cover-tailor/1.0")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return content, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return content, err
	}

	// Read response body
	var bodyBytes []byte
	bodyBytes, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return content, err
	}

	content = string(bodyBytes)

	// Basic HTML stripping (simple approach - could be enhanced)
	content = stripBasicHTML(content)

	if content == "" {
		err = errors.New("fetched content is empty after processing")
		return content, err
	}

	return content, err
}

// stripBasicHTML removes basic HTML tags (simple implementation).
func stripBasicHTML(html string) (text string) {
	text = html

	// Remove script and style tags with their content
	text = removeTagAndContent(text, "script")
	text = removeTagAndContent(text, "style")

	// Remove HTML tags
	inTag := false
	result := strings.Builder{}
	for _, char := range text {
		if char == '<' {
			inTag = true
			continue
		}
		if char == '>' {
			inTag = false
			continue
		}
		if !inTag {
			result.WriteRune(char)
		}
	}

	text = result.String()

	// Clean up whitespace
	text = strings.TrimSpace(text)

	return text
}

// removeTagAndContent removes a specific HTML tag and its content.
func removeTagAndContent(html, tag string) (result string) {
	result = html
	openTag := "<" + tag
	closeTag := "</" + tag + ">"

	for {
		startIdx := strings.Index(result, openTag)
		if startIdx == -1 {
			break
		}

		endIdx := strings.Index(result[startIdx:], closeTag)
		if endIdx == -1 {
			break
		}

		endIdx += startIdx + len(closeTag)
		result = result[:startIdx] + result[endIdx:]
	}

	return result
}
