package xlog_test

import (
	"testing"

	"github.com/omeyang/logkit/pkg/log/xlog"
	"github.com/omeyang/logkit/pkg/log/xmeta"
	"github.com/omeyang/logkit/pkg/log/xsink"
)

func TestMultiplex_FanOut(t *testing.T) {
	h1 := xsink.NewCapture()
	h2 := xsink.NewCapture()
	m := xlog.NewMultiplexHandler(h1, h2)

	l := xlog.NewWithHandler("fan", m)
	l.Info("x", xmeta.Metadata{"k": xmeta.String("v")})

	for i, h := range []*xsink.CaptureHandler{h1, h2} {
		entries := h.Entries()
		if len(entries) != 1 {
			t.Fatalf("member %d entries = %d, want 1", i, len(entries))
		}
		if entries[0].Message != "x" {
			t.Errorf("member %d message = %q", i, entries[0].Message)
		}
		if !entries[0].Metadata["k"].Equal(xmeta.String("v")) {
			t.Errorf("member %d metadata mismatch", i)
		}
	}
}

func TestMultiplex_LevelIsMemberMinimum(t *testing.T) {
	h1 := xsink.NewCapture()
	h1.SetLevel(xlog.LevelError)
	h2 := xsink.NewCapture()
	h2.SetLevel(xlog.LevelDebug)

	m := xlog.NewMultiplexHandler(h1, h2)
	if got := m.Level(); got != xlog.LevelDebug {
		t.Errorf("Level() = %v, want debug (minimum)", got)
	}

	// 放行的事件只进想要它的成员
	l := xlog.NewWithHandler("min", m)
	l.Info("only for h2")

	if len(h1.Entries()) != 0 {
		t.Error("info should not reach the error-level member")
	}
	if len(h2.Entries()) != 1 {
		t.Error("info should reach the debug-level member")
	}
}

func TestMultiplex_SetLevelAppliesToAllMembers(t *testing.T) {
	h1 := xsink.NewCapture()
	h1.SetLevel(xlog.LevelError)
	h2 := xsink.NewCapture()
	h2.SetLevel(xlog.LevelDebug)

	m := xlog.NewMultiplexHandler(h1, h2)
	m.SetLevel(xlog.LevelWarning)

	if h1.Level() != xlog.LevelWarning || h2.Level() != xlog.LevelWarning {
		t.Errorf("member levels = %v, %v, want warning for both", h1.Level(), h2.Level())
	}
	if m.Level() != xlog.LevelWarning {
		t.Errorf("Level() = %v, want warning", m.Level())
	}
}

func TestMultiplex_SubscriptSemantics(t *testing.T) {
	h1 := xsink.NewCapture()
	h2 := xsink.NewCapture()
	m := xlog.NewMultiplexHandler(h1, h2)

	// setter 写所有成员
	m.SetMetadataValue("k", xmeta.String("v"))
	for i, h := range []*xsink.CaptureHandler{h1, h2} {
		if v, ok := h.MetadataValue("k"); !ok || !v.Equal(xmeta.String("v")) {
			t.Errorf("member %d missing written key", i)
		}
	}

	// getter 读第一个成员
	h1.SetMetadataValue("only", xmeta.String("first"))
	if v, ok := m.MetadataValue("only"); !ok || !v.Equal(xmeta.String("first")) {
		t.Error("getter should read the first member")
	}
	h2.SetMetadataValue("second-only", xmeta.String("x"))
	if _, ok := m.MetadataValue("second-only"); ok {
		t.Error("getter must not consult later members")
	}
}

func TestMultiplex_EmptyNeverAdmits(t *testing.T) {
	m := xlog.NewMultiplexHandler()
	l := xlog.NewWithHandler("empty", m)
	if l.Enabled(xlog.LevelCritical) {
		t.Error("empty multiplexer should never admit")
	}
}

func TestMultiplex_AttributedDispatchPerMember(t *testing.T) {
	plain := xsink.NewCapture()
	aware := xsink.NewAttributedCapture()
	m := xlog.NewMultiplexHandler(plain, aware)

	l := xlog.NewWithHandler("mixed", m)
	l.LogAttributed(xlog.LevelInfo, "login", xmeta.AttributedMetadata{
		"u": xmeta.Private(xmeta.String("42")),
	})

	plainEntries := plain.Entries()
	if len(plainEntries) != 1 {
		t.Fatalf("plain entries = %d", len(plainEntries))
	}
	if !plainEntries[0].Metadata["u"].Equal(xmeta.String(xmeta.RedactedValue)) {
		t.Error("plain member should see redacted value")
	}

	awareEntries := aware.Entries()
	if len(awareEntries) != 1 {
		t.Fatalf("aware entries = %d", len(awareEntries))
	}
	if awareEntries[0].Attributed["u"].Attributes.Privacy != xmeta.PrivacyPrivate {
		t.Error("aware member should keep the privacy tag")
	}
}

func TestMultiplex_ProviderMergesMembers(t *testing.T) {
	h1 := xsink.NewCapture()
	h1.SetMetadataProvider(func() xmeta.Metadata {
		return xmeta.Metadata{"a": xmeta.String("1"), "shared": xmeta.String("first")}
	})
	h2 := xsink.NewCapture()
	h2.SetMetadataProvider(func() xmeta.Metadata {
		return xmeta.Metadata{"b": xmeta.String("2"), "shared": xmeta.String("second")}
	})

	m := xlog.NewMultiplexHandler(h1, h2)
	p := m.MetadataProvider()
	if p == nil {
		t.Fatal("merged provider expected")
	}
	got := p()
	if !got["a"].Equal(xmeta.String("1")) || !got["b"].Equal(xmeta.String("2")) {
		t.Error("merged provider missing member fields")
	}
	if !got["shared"].Equal(xmeta.String("second")) {
		t.Error("later member should win on shared keys")
	}
}

func TestMultiplex_CloneIndependence(t *testing.T) {
	h := xsink.NewCapture()
	m := xlog.NewMultiplexHandler(h)

	cloned, ok := m.Clone().(*xlog.MultiplexHandler)
	if !ok {
		t.Fatal("clone should be a MultiplexHandler")
	}
	cloned.SetLevel(xlog.LevelCritical)

	if h.Level() != xlog.LevelTrace {
		t.Error("mutating clone changed original member state")
	}
}
