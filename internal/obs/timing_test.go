package obs

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
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
	})
	return &buf
}

func TestTime_Success(t *testing.T) {
	buf := captureLog(t)
	ctx := WithSearchID(context.Background(), "abc")

	var err error
	Time(ctx, "search")(&err)

	out := buf.String()
	if !strings.Contains(out, "search_id=abc op=search dur=") {
		t.Errorf("log = %q", out)
	}
	if strings.Contains(out, "err=") {
		t.Errorf("unexpected err field in %q", out)
	}
}

func TestTime_Error(t *testing.T) {
	buf := captureLog(t)

	err := errors.New("boom")
	Time(context.Background(), "fetch_weather")(&err)

	if !strings.Contains(buf.String(), "op=fetch_weather") || !strings.Contains(buf.String(), "err=boom") {
		t.Errorf("log = %q", buf.String())
	}
}

func TestSearchID_Missing(t *testing.T) {
	if got := SearchID(context.Background()); got != "" {
		t.Errorf("SearchID() = %q, want empty", got)
	}
}
