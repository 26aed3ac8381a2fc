package googleapi

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	documentIDPattern    = regexp.MustCompile(`/document/d/([a-zA-Z0-9_-]+)`)
	spreadsheetIDPattern = regexp.MustCompile(`/d/([a-zA-Z0-9_-]+)`)
	driveFilePatterns    = []*regexp.Regexp{
		regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]+)`),
		regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]+)`),
		regexp.MustCompile(`/open\?id=([a-zA-Z0-9_-]+)`),
	}
)

// DocumentID extracts the document ID from a Google Docs URL. A bare ID
// passes through unchanged.
func DocumentID(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("empty document url")
	}
	if match := documentIDPattern.FindStringSubmatch(rawURL); match != nil {
		return match[1], nil
	}
	if !strings.Contains(rawURL, "/") {
		return rawURL, nil
	}
	return "", fmt.Errorf("no document id in %q", rawURL)
}

// SpreadsheetID extracts the spreadsheet ID from a Google Sheets URL. A bare
// ID passes through unchanged.
func SpreadsheetID(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("empty spreadsheet url")
	}
	if match := spreadsheetIDPattern.FindStringSubmatch(rawURL); match != nil {
		return match[1], nil
	}
	if !strings.Contains(rawURL, "/") {
		return rawURL, nil
	}
	return "", fmt.Errorf("no spreadsheet id in %q", rawURL)
}

// DriveFileID extracts the file ID from any of the common Drive sharing URL
// shapes.
func DriveFileID(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", fmt.Errorf("empty drive url")
	}
	for _, pattern := range driveFilePatterns {
		if match := pattern.FindStringSubmatch(rawURL); match != nil {
			return match[1], nil
		}
	}
	return "", fmt.Errorf("no drive file id in %q", rawURL)
}

// IsDriveURL reports whether a URL points at Google Drive or Docs hosting.
func IsDriveURL(rawURL string) bool {
	return strings.Contains(rawURL, "drive.google.com") || strings.Contains(rawURL, "docs.google.com")
}
