package xambient_test

import (
	"context"
	"errors"
	"testing"

	"github.com/omeyang/logkit/pkg/log/xambient"
	"github.com/omeyang/logkit/pkg/log/xlog"
	"github.com/omeyang/logkit/pkg/log/xmeta"
	"github.com/omeyang/logkit/pkg/log/xsink"
)

func TestWithFrom_RoundTrip(t *testing.T) {
	l := xlog.NewWithHandler("svc", xsink.NewCapture())
	ctx := xambient.With(context.Background(), l)

	got := xambient.From(ctx)
	if got.Label() != "svc" {
		t.Errorf("Label() = %q, want svc", got.Label())
	}
}

func TestFrom_FallbackOutsideScope(t *testing.T) {
	xlog.ResetBootstrap()
	defer xlog.ResetBootstrap()
	factory, h := xsink.CaptureFactory()
	xlog.Bootstrap(factory)

	l := xambient.From(context.Background())
	if l.Label() != xambient.FallbackLabel {
		t.Errorf("Label() = %q, want %q", l.Label(), xambient.FallbackLabel)
	}

	l.Info("still works")
	found := false
	for _, e := range h.Entries() {
		if e.Message == "still works" {
			found = true
		}
	}
	if !found {
		t.Error("fallback logger should deliver through the bootstrap factory")
	}
}

func TestFrom_NilContext(t *testing.T) {
	l := xambient.From(nil) //nolint:staticcheck // nil 容忍是契约的一部分
	l.Info("no panic")
}

func TestLookup(t *testing.T) {
	if _, ok := xambient.Lookup(context.Background()); ok {
		t.Error("Lookup on bare context should report absence")
	}
	ctx := xambient.With(context.Background(), xlog.NewWithHandler("x", xsink.NewCapture()))
	if _, ok := xambient.Lookup(ctx); !ok {
		t.Error("Lookup should find the ambient logger")
	}
}

func TestRun_ScopeRestoredOnError(t *testing.T) {
	outer := xlog.NewWithHandler("outer", xsink.NewCapture())
	inner := xlog.NewWithHandler("inner", xsink.NewCapture())
	ctx := xambient.With(context.Background(), outer)

	wantErr := errors.New("boom")
	err := xambient.Run(ctx, inner, func(ctx context.Context) error {
		if xambient.From(ctx).Label() != "inner" {
			t.Error("inside the scope the inner logger should be ambient")
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Run error = %v", err)
	}

	// 错误退出后外层作用域不受影响
	if xambient.From(ctx).Label() != "outer" {
		t.Error("outer scope must survive an error exit")
	}
}

func TestWithMetadata_ScopedOverlay(t *testing.T) {
	h := xsink.NewCapture()
	ctx := xambient.With(context.Background(), xlog.NewWithHandler("svc", h))

	child := xambient.WithMetadata(ctx, xmeta.Metadata{"tenant": xmeta.String("acme")})

	xambient.From(child).Info("in scope")
	xambient.From(ctx).Info("out of scope")

	entries := h.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if !entries[0].Metadata["tenant"].Equal(xmeta.String("acme")) {
		t.Error("child scope should carry the overlay")
	}
	if _, ok := entries[1].Metadata["tenant"]; ok {
		t.Error("parent scope must not see the overlay")
	}
}

func TestWithLevel_ScopedOverride(t *testing.T) {
	h := xsink.NewCapture()
	h.SetLevel(xlog.LevelInfo)
	ctx := xambient.With(context.Background(), xlog.NewWithHandler("svc", h))

	child := xambient.WithLevel(ctx, xlog.LevelDebug)

	if !xambient.From(child).Enabled(xlog.LevelDebug) {
		t.Error("child scope should admit debug")
	}
	if xambient.From(ctx).Enabled(xlog.LevelDebug) {
		t.Error("parent scope must keep the handler level")
	}
}

func TestWithProvider_DoesNotLeakToParent(t *testing.T) {
	h := xsink.NewCapture()
	ctx := xambient.With(context.Background(), xlog.NewWithHandler("svc", h))

	child := xambient.WithProvider(ctx, func() xmeta.Metadata {
		return xmeta.Metadata{"trace": xmeta.String("abc")}
	})

	xambient.From(child).Info("traced")
	xambient.From(ctx).Info("plain")

	var traced, plain *xlog.Record
	entries := h.Entries()
	for i := range entries {
		e := entries[i]
		switch e.Message {
		case "traced":
			traced = &e
		case "plain":
			plain = &e
		}
	}
	if traced == nil || plain == nil {
		t.Fatal("both events should be captured by the shared collector")
	}
	if !traced.Metadata["trace"].Equal(xmeta.String("abc")) {
		t.Error("provider metadata missing in child scope")
	}
	if _, ok := plain.Metadata["trace"]; ok {
		t.Error("provider must not leak into the parent scope")
	}
}

func TestEnsureRequestID(t *testing.T) {
	h := xsink.NewCapture()
	ctx := xambient.With(context.Background(), xlog.NewWithHandler("svc", h))

	ctx1 := xambient.EnsureRequestID(ctx)
	id1, ok := xambient.From(ctx1).MetadataValue(xambient.KeyRequestID)
	if !ok || id1.String() == "" {
		t.Fatal("request id should be set")
	}

	// 幂等：已有 request_id 时原样返回
	ctx2 := xambient.EnsureRequestID(ctx1)
	if ctx2 != ctx1 {
		t.Error("ctx should be returned unchanged when the id exists")
	}
	id2, _ := xambient.From(ctx2).MetadataValue(xambient.KeyRequestID)
	if !id1.Equal(id2) {
		t.Error("request id must be stable across calls")
	}
}

func TestDetachedGoroutine_NoInheritance(t *testing.T) {
	inner := xlog.NewWithHandler("inner", xsink.NewCapture())
	_ = xambient.With(context.Background(), inner)

	// 新起点的 context 不会继承别处的环境 Logger
	done := make(chan bool)
	go func() {
		_, ok := xambient.Lookup(context.Background())
		done <- ok
	}()
	if <-done {
		t.Error("a fresh context must not inherit an ambient logger")
	}
}
