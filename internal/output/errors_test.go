package output

import (
	"strings"
	"testing"
)

func TestFormatError_AllSections(t *testing.T) {
	p, _, stderr := testPrinter(false)

	p.FormatError(&CLIError{
		Summary:    "API request timed out (check backend status)",
		Detail:     "request timed out: context deadline exceeded",
		Suggestion: "retry, or raise api.timeout",
		ExitCode:   ExitAPIError,
	})

	out := stderr.String()
	if !strings.Contains(out, "[ERROR] API request timed out") {
		t.Errorf("summary missing: %q", out)
	}
	if !strings.Contains(out, "Cause: request timed out") {
		t.Errorf("detail missing: %q", out)
	}
	if !strings.Contains(out, "Suggestion: retry") {
		t.Errorf("suggestion missing: %q", out)
	}
}

func TestFormatError_SummaryOnly(t *testing.T) {
	p, _, stderr := testPrinter(false)

	p.FormatError(&CLIError{Summary: "backend returned 500", ExitCode: ExitAPIError})

	out := stderr.String()
	if !strings.Contains(out, "[ERROR] backend returned 500") {
		t.Errorf("summary missing: %q", out)
	}
	if strings.Contains(out, "Cause:") || strings.Contains(out, "Suggestion:") {
		t.Errorf("empty sections must not render: %q", out)
	}
}

func TestCLIError_Error(t *testing.T) {
	e := &CLIError{Summary: "something failed", ExitCode: ExitAuthError}
	if e.Error() != "something failed" {
		t.Errorf("unexpected error string: %q", e.Error())
	}
}
