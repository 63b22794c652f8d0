package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zulandar/changetrack/internal/models"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    int32
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"-1", 0, true},
		{"abc", 0, true},
		{"", 0, true},
		{"99999999999", 0, true},
	}
	for _, tt := range tests {
		got, err := parseID(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseID(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestReleaseLabel(t *testing.T) {
	if got := releaseLabel(models.ProductRelease{}); got != "-" {
		t.Errorf("releaseLabel(zero) = %q, want -", got)
	}
	r := models.ProductRelease{Product: models.Product{Name: "Widget"}, ReleaseID: "1.0.0.0", Date: "2026-01-01"}
	if got := releaseLabel(r); got != "1.0.0.0 (2026-01-01)" {
		t.Errorf("releaseLabel = %q", got)
	}
}

func TestPrintItem(t *testing.T) {
	var buf bytes.Buffer
	printItem(&buf, &models.ChangeItem{
		ID:          7,
		Product:     models.Product{Name: "Widget"},
		Description: "Crash on save",
		State:       models.InProgress,
		Priority:    4,
		Reported:    "2026-02-01",
	})
	out := buf.String()
	for _, want := range []string{"ID:          7", "Widget", "Crash on save", "Priority:    4", "Release:     -"} {
		if !strings.Contains(out, want) {
			t.Errorf("printItem output missing %q:\n%s", want, out)
		}
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    int32
		wantErr bool
	}{
		{"1", 1, false},
		{"5", 5, false},
		{"0", 0, true},
		{"6", 0, true},
		{"-1", 0, true},
		{"high", 0, true},
		{"4294967299", 0, true},
		{"-4294967295", 0, true},
	}
	for _, tt := range tests {
		got, err := parsePriority(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parsePriority(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parsePriority(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestTruncate_MultiByte(t *testing.T) {
	// cutting at byte 6 would split the é
	got := truncate("abcdeéfghij", 9)
	if got != "abcde..." {
		t.Errorf("truncate = %q, want %q", got, "abcde...")
	}
}
