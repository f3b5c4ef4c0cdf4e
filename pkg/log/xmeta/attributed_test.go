package xmeta_test

import (
	"strings"
	"testing"

	"github.com/omeyang/logkit/pkg/log/xmeta"
)

func TestRedact_PrivateNeverLeaks(t *testing.T) {
	am := xmeta.AttributedMetadata{
		"u": xmeta.Private(xmeta.String("42")),
		"a": xmeta.Public(xmeta.String("login")),
	}

	got := am.Redact()

	if !got["u"].Equal(xmeta.String(xmeta.RedactedValue)) {
		t.Errorf("private value = %q, want redaction marker", got["u"].String())
	}
	if !got["a"].Equal(xmeta.String("login")) {
		t.Errorf("public value = %q, want %q", got["a"].String(), "login")
	}
	// 任何渲染形式都不得出现私有原文
	for k, v := range got {
		if strings.Contains(v.String(), "42") {
			t.Errorf("private content leaked via key %q: %q", k, v.String())
		}
	}
}

func TestRedact_EmptyIsNil(t *testing.T) {
	if got := xmeta.AttributedMetadata(nil).Redact(); got != nil {
		t.Errorf("Redact of nil = %v, want nil", got)
	}
}

func TestValues_DropsAttributesOnly(t *testing.T) {
	am := xmeta.AttributedMetadata{"u": xmeta.Private(xmeta.String("42"))}
	got := am.Values()
	if !got["u"].Equal(xmeta.String("42")) {
		t.Errorf("Values() = %q, want raw value", got["u"].String())
	}
}

func TestMergeAttributed_LaterWinsWithAttributes(t *testing.T) {
	lower := xmeta.AttributedMetadata{"k": xmeta.Public(xmeta.String("open"))}
	upper := xmeta.AttributedMetadata{"k": xmeta.Private(xmeta.String("secret"))}

	got := xmeta.MergeAttributed(lower, upper)

	if got["k"].Attributes.Privacy != xmeta.PrivacyPrivate {
		t.Error("attributes should follow the winning layer")
	}
	if !got["k"].Value.Equal(xmeta.String("secret")) {
		t.Errorf("value = %q, want %q", got["k"].Value.String(), "secret")
	}
}

func TestPrivacy_String(t *testing.T) {
	if xmeta.PrivacyPublic.String() != "public" {
		t.Error("PrivacyPublic.String() mismatch")
	}
	if xmeta.PrivacyPrivate.String() != "private" {
		t.Error("PrivacyPrivate.String() mismatch")
	}
}

func TestAttributedClone_Independent(t *testing.T) {
	orig := xmeta.AttributedMetadata{"k": xmeta.Private(xmeta.String("v"))}
	cp := orig.Clone()
	cp["k"] = xmeta.Public(xmeta.String("other"))

	if orig["k"].Attributes.Privacy != xmeta.PrivacyPrivate {
		t.Error("mutating clone changed original attributes")
	}
}

func TestDefaultPrivacyIsPublic(t *testing.T) {
	var av xmeta.AttributedValue
	if av.Attributes.Privacy != xmeta.PrivacyPublic {
		t.Error("zero AttributedValue should default to public")
	}
}
