package logging

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		SetLevel("info")
	})
	return &buf
}

func TestLogger_IncludesRequestAndSession(t *testing.T) {
	buf := captureLog(t)

	ctx := WithSessionID(WithRequestID(context.Background(), "rid-1"), "sess-1")
	NewLogger(ctx).LogError("submit", errors.New("boom"))

	assert.Equal(t, "[error] request_id=rid-1 session=sess-1 operation=submit error=boom\n", buf.String())
}

func TestLogger_UnknownRequestID(t *testing.T) {
	buf := captureLog(t)

	NewLogger(context.Background()).LogInfof("load", "count=%d", 3)

	assert.Equal(t, "[info] request_id=unknown operation=load count=3\n", buf.String())
}

func TestLogger_LevelFiltering(t *testing.T) {
	buf := captureLog(t)
	SetLevel("warn")

	l := NewLogger(context.Background())
	l.LogInfo("op", "hidden")
	l.LogDebugf("op", "hidden")
	l.LogWarn("op", "shown")

	assert.Equal(t, "[warn] request_id=unknown operation=op message=shown\n", buf.String())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}

func TestLogger_PercentInIdsIsLiteral(t *testing.T) {
	buf := captureLog(t)

	ctx := WithSessionID(WithRequestID(context.Background(), "abc%d%s"), "s%v")
	l := NewLogger(ctx)
	l.LogInfof("op", "value=%s", "x")
	l.LogWarnf("op", "n=%d", 2)

	assert.Equal(t,
		"[info] request_id=abc%d%s session=s%v operation=op value=x\n"+
			"[warn] request_id=abc%d%s session=s%v operation=op n=2\n",
		buf.String())
}
