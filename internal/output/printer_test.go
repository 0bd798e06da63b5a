package output

import (
	"bytes"
	"strings"
	"testing"
)

func testPrinter(quiet bool) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	p := NewPrinterWithWriters(&stdout, &stderr, false)
	p.quiet = quiet
	return p, &stdout, &stderr
}

func TestPrinter_PlainOutput(t *testing.T) {
	p, stdout, stderr := testPrinter(false)

	p.Info("hello %s", "world")
	p.Success("done")
	p.Warning("careful")
	p.Error("broken")
	p.Print("plain")

	out := stdout.String()
	if !strings.Contains(out, "hello world") {
		t.Errorf("info missing from stdout: %q", out)
	}
	if !strings.Contains(out, "[OK] done") {
		t.Errorf("success missing from stdout: %q", out)
	}
	if !strings.Contains(out, "plain") {
		t.Errorf("plain print missing from stdout: %q", out)
	}

	errOut := stderr.String()
	if !strings.Contains(errOut, "[WARN] careful") {
		t.Errorf("warning missing from stderr: %q", errOut)
	}
	if !strings.Contains(errOut, "[ERROR] broken") {
		t.Errorf("error missing from stderr: %q", errOut)
	}
}

func TestPrinter_QuietSuppressesAllButErrors(t *testing.T) {
	p, stdout, stderr := testPrinter(true)

	p.Info("info")
	p.Success("success")
	p.Warning("warning")
	p.Print("plain")
	p.Header("header")
	p.PrintHints("login")

	if stdout.Len() != 0 {
		t.Errorf("quiet mode must suppress stdout, got: %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Errorf("quiet mode must suppress warnings, got: %q", stderr.String())
	}

	p.Error("broken")
	if !strings.Contains(stderr.String(), "broken") {
		t.Error("errors must print even in quiet mode")
	}
}

func TestPrinter_BadgesWithoutColors(t *testing.T) {
	p, _, _ := testPrinter(false)

	if got := p.RoleBadge("ADMIN"); got != "[ADMIN]" {
		t.Errorf("unexpected role badge: %q", got)
	}
	if got := p.StatusBadge("TODO"); got != "[TODO]" {
		t.Errorf("unexpected status badge: %q", got)
	}
}

func TestPrintHints_KnownCommand(t *testing.T) {
	p, stdout, _ := testPrinter(false)

	p.PrintHints("login")

	out := stdout.String()
	if !strings.Contains(out, "See also") {
		t.Errorf("expected 'See also' in output, got: %q", out)
	}
	if !strings.Contains(out, "taskflowctl whoami") {
		t.Errorf("expected whoami hint for login, got: %q", out)
	}
}

func TestPrintHints_UnknownCommand(t *testing.T) {
	p, stdout, _ := testPrinter(false)

	p.PrintHints("nonexistent")

	if stdout.Len() != 0 {
		t.Errorf("expected no output for unknown command, got: %q", stdout.String())
	}
}
