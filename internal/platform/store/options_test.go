package store

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
)

func TestWithLogger_SetsOnStore(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	lg := zerolog.New(&buf)

	opt := WithLogger(lg)

	s := &Store{}
	if err := opt(s); err != nil {
		t.Fatalf("WithLogger returned error: %v", err)
	}

	// the store's logger must write into our buffer
	s.Log.Info().Str("intent", "digital-agencies").Msg("store ready")
	if buf.Len() == 0 {
		t.Fatalf("expected logger to write to buffer, got empty output")
	}

	// reapplying the option keeps a working logger
	prevLen := buf.Len()
	if err := opt(s); err != nil {
		t.Fatalf("WithLogger second apply error: %v", err)
	}
	s.Log.Info().Msg("still logging")
	if buf.Len() == prevLen {
		t.Fatalf("expected additional log output after reapply")
	}
}
