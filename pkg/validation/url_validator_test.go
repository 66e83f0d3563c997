package validation

import (
	"testing"
)

func TestValidateContentURL_ValidURLs(t *testing.T) {
	validator := NewURLValidator()

	validURLs := []string{
		"http://example.com/document.pdf",
		"https://example.com/scan.jpg",
		"https://cdn.example.com/path/to/page.png?v=1",
		"https://example.com:8443/statement.pdf",
	}

	for _, u := range validURLs {
		if err := validator.ValidateContentURL(u); err != nil {
			t.Errorf("Expected %s to be valid, got %v", u, err)
		}
	}
}

func TestValidateContentURL_InvalidURLs(t *testing.T) {
	validator := NewURLValidator()

	invalidURLs := []string{
		"",
		"   ",
		"ftp://example.com/doc.pdf",
		"file:///etc/passwd",
		"not a url at all",
		"https://",
	}

	for _, u := range invalidURLs {
		if err := validator.ValidateContentURL(u); err == nil {
			t.Errorf("Expected %q to be rejected", u)
		}
	}
}

func TestValidateContentURL_CustomSchemes(t *testing.T) {
	validator := NewURLValidatorWithOptions([]string{"https"}, nil)

	if err := validator.ValidateContentURL("https://example.com/doc.pdf"); err != nil {
		t.Errorf("Expected https to be allowed, got %v", err)
	}
	if err := validator.ValidateContentURL("http://example.com/doc.pdf"); err == nil {
		t.Error("Expected http to be rejected when only https is allowed")
	}
}

func TestValidateContentURL_HostAllowlist(t *testing.T) {
	validator := NewURLValidatorWithOptions(
		[]string{"http", "https"},
		[]string{"trusted.example.com"},
	)

	if err := validator.ValidateContentURL("https://trusted.example.com/doc.pdf"); err != nil {
		t.Errorf("Expected the allowlisted host to pass, got %v", err)
	}
	if err := validator.ValidateContentURL("https://evil.example.com/doc.pdf"); err == nil {
		t.Error("Expected a non-allowlisted host to be rejected")
	}
}
