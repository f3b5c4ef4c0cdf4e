package xsink_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/logkit/pkg/log/xlog"
	"github.com/omeyang/logkit/pkg/log/xmeta"
	"github.com/omeyang/logkit/pkg/log/xsink"
)

func TestCapture_RecordsDeliveredEvents(t *testing.T) {
	h := xsink.NewCapture()
	l := xlog.NewWithHandler("t", h)

	l.Info("one")
	l.Error("two", xmeta.Metadata{"k": xmeta.String("v")})

	entries := h.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "one", entries[0].Message)
	assert.Equal(t, xlog.LevelError, entries[1].Level)
	assert.True(t, entries[1].Metadata["k"].Equal(xmeta.String("v")))
}

func TestCapture_ResetIdempotent(t *testing.T) {
	h := xsink.NewCapture()
	l := xlog.NewWithHandler("t", h)

	l.Info("before")
	h.Reset()
	h.Reset() // 二次清空无副作用

	assert.Empty(t, h.Entries())

	// 清空后再记一条，恰好返回那一条
	l.Info("after")
	entries := h.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "after", entries[0].Message)
}

func TestCapture_CloneSharesCollector(t *testing.T) {
	h := xsink.NewCapture()
	cloned := h.Clone().(*xsink.CaptureHandler)

	// 状态独立
	cloned.SetLevel(xlog.LevelError)
	assert.Equal(t, xlog.LevelTrace, h.Level())

	// 收集器共享：任一副本写入，双方都能读到
	xlog.NewWithHandler("a", h).Info("from original")
	xlog.NewWithHandler("b", cloned).Error("from clone")

	require.Len(t, h.Entries(), 2)
	require.Len(t, cloned.Entries(), 2)
}

func TestCapture_EntriesSnapshotIsolated(t *testing.T) {
	h := xsink.NewCapture()
	xlog.NewWithHandler("t", h).Info("x")

	snap := h.Entries()
	snap[0].Message = "mutated"

	assert.Equal(t, "x", h.Entries()[0].Message, "snapshot mutation must not reach the collector")
}

func TestAttributedCapture_KeepsPrivacyTags(t *testing.T) {
	h := xsink.NewAttributedCapture()
	l := xlog.NewWithHandler("t", h)

	l.LogAttributed(xlog.LevelInfo, "login", xmeta.AttributedMetadata{
		"user": xmeta.Private(xmeta.String("u-42")),
		"page": xmeta.Public(xmeta.String("/home")),
	})

	entries := h.Entries()
	require.Len(t, entries, 1)
	am := entries[0].Attributed
	require.NotNil(t, am)
	assert.Equal(t, xmeta.PrivacyPrivate, am["user"].Attributes.Privacy)
	assert.Equal(t, xmeta.PrivacyPublic, am["page"].Attributes.Privacy)
	// 感知后端收到原值，是否脱敏由它自己决定
	assert.True(t, am["user"].Value.Equal(xmeta.String("u-42")))
}

func TestNoop_NeverAdmits(t *testing.T) {
	l := xlog.NewWithHandler("t", xsink.NoopHandler{})
	assert.False(t, l.Enabled(xlog.LevelCritical))
	l.Critical("dropped") // 不 panic，无输出可断言
}
