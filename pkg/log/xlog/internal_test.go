package xlog

import (
	"strings"
	"testing"

	"github.com/omeyang/logkit/pkg/log/xmeta"
)

func TestDeriveSource(t *testing.T) {
	tests := []struct {
		file string
		want string
	}{
		{"/home/u/go/src/app/billing/invoice.go", "billing"},
		{"billing/invoice.go", "billing"},
		{"invoice.go", "unknown"},
		{"/main.go", "unknown"},
	}
	for _, tt := range tests {
		if got := deriveSource(tt.file); got != tt.want {
			t.Errorf("deriveSource(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}
}

func TestMergeArgs(t *testing.T) {
	if mergeArgs(nil) != nil {
		t.Error("no args should merge to nil")
	}

	single := xmeta.Metadata{"k": xmeta.String("v")}
	if got := mergeArgs([]xmeta.Metadata{single}); !got["k"].Equal(single["k"]) {
		t.Error("single arg should pass through")
	}

	got := mergeArgs([]xmeta.Metadata{
		{"a": xmeta.String("1"), "k": xmeta.String("first")},
		{"k": xmeta.String("second")},
	})
	if !got["k"].Equal(xmeta.String("second")) {
		t.Error("later arg should win")
	}
	if !got["a"].Equal(xmeta.String("1")) {
		t.Error("earlier keys should survive")
	}
}

func TestFallbackHandler_Defaults(t *testing.T) {
	h := newFallbackHandler("boot")
	if h.Level() != LevelInfo {
		t.Errorf("Level() = %v, want info", h.Level())
	}
	h.SetMetadataValue("k", xmeta.String("v"))
	if v, ok := h.MetadataValue("k"); !ok || !v.Equal(xmeta.String("v")) {
		t.Error("stored metadata should round-trip")
	}
}

func TestFallbackHandler_LineShape(t *testing.T) {
	var sb strings.Builder
	h := &fallbackHandler{out: &sb, level: LevelInfo}

	l := NewWithHandler("boot", h)
	l.Error("disk full", xmeta.Metadata{"dev": xmeta.String("sda1")})

	line := sb.String()
	if !strings.Contains(line, "error") || !strings.Contains(line, "[boot]") {
		t.Errorf("line missing level or label: %q", line)
	}
	if !strings.Contains(line, "disk full") || !strings.Contains(line, "dev=sda1") {
		t.Errorf("line missing message or metadata: %q", line)
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("single line expected")
	}
}
