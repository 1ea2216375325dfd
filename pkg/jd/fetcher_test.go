package jd

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveJoinsArgs(t *testing.T) {
	content, err := Resolve([]string{"We", "are", "hiring", "a", "Go", "engineer"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if content != "We are hiring a Go engineer" {
		t.Errorf("Expected joined args, got '%s'", content)
	}
}

func TestResolveEmptyArgs(t *testing.T) {
	content, err := Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if content != "" {
		t.Errorf("Expected empty content for no args, got '%s'", content)
	}
}

func TestResolveSingleArgFile(t *testing.T) {
	tmpDir := t.TempDir()
	jdPath := filepath.Join(tmpDir, "jd.txt")

	err := os.WriteFile(jdPath, []byte("Senior Gopher wanted"), 0600)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	content, err := Resolve([]string{jdPath})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if content != "Senior Gopher wanted" {
		t.Errorf("Expected file content, got '%s'", content)
	}
}

func TestResolveSingleArgLiteral(t *testing.T) {
	// A single arg that is neither a file nor a URL is literal text.
	content, err := Resolve([]string{"short job description"})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if content != "short job description" {
		t.Errorf("Expected literal text, got '%s'", content)
	}
}

func TestFetchFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	jdPath := filepath.Join(tmpDir, "jd.txt")

	err := os.WriteFile(jdPath, []byte("Test job description"), 0600)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	content, err := Fetch(jdPath)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if content != "Test job description" {
		t.Errorf("Expected file content, got '%s'", content)
	}
}

func TestFetchFromEmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	jdPath := filepath.Join(tmpDir, "empty.txt")

	err := os.WriteFile(jdPath, []byte("   \n"), 0600)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err = Fetch(jdPath)
	if err == nil {
		t.Error("Expected error for empty file, got nil")
	}
}

func TestFetchFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "cover-tailor/1.0" {
			t.Error("Missing or incorrect user agent")
		}
		_, _ = w.Write([]byte("<html><head><style>p{}</style></head><body><p>Job posting</p><script>x()</script></body></html>"))
	}))
	defer server.Close()

	content, err := Fetch(server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if !strings.Contains(content, "Job posting") {
		t.Errorf("Expected stripped content to contain text, got '%s'", content)
	}

	if strings.Contains(content, "script") || strings.Contains(content, "style") {
		t.Errorf("Expected script/style to be stripped, got '%s'", content)
	}
}

func TestFetchFromURLErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := Fetch(server.URL)
	if err == nil {
		t.Error("Expected error for 404 response, got nil")
	}
}

func TestStripBasicHTML(t *testing.T) {
	html := `<div><h1>Title</h1><p>Body &amp; text</p></div>`
	text := stripBasicHTML(html)

	if strings.Contains(text, "<") || strings.Contains(text, ">") {
		t.Errorf("Expected tags removed, got '%s'", text)
	}

	if !strings.Contains(text, "Title") || !strings.Contains(text, "Body") {
		t.Errorf("Expected text content preserved, got '%s'", text)
	}
}
