package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestVersion_Short(t *testing.T) {
	SetVersion("1.2.3")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version", "--short"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "1.2.3" {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestVersion_JSON(t *testing.T) {
	SetVersion("1.2.3")
	SetBuildInfo("abc123", "2026-01-01")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version", "--json", "--short=false"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}

	var info map[string]string
	if err := json.Unmarshal(buf.Bytes(), &info); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if info["version"] != "1.2.3" || info["commit"] != "abc123" {
		t.Errorf("unexpected info: %v", info)
	}
}
