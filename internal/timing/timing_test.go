package timing

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestMeasureReturnsResultAndRecord(t *testing.T) {
	res, tm, err := Measure(func() (int, error) {
		time.Sleep(10 * time.Millisecond)
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != 42 {
		t.Fatalf("result: got %d, want 42", res)
	}
	if tm.Duration < 10*time.Millisecond {
		t.Fatalf("duration too short: %v", tm.Duration)
	}
	if !tm.Finish.After(tm.Start) && tm.Finish != tm.Start {
		t.Fatalf("finish %v before start %v", tm.Finish, tm.Start)
	}
	if got := tm.Seconds(); got != tm.Duration.Seconds() {
		t.Fatalf("Seconds() = %v, want %v", got, tm.Duration.Seconds())
	}
}

func TestMeasurePreservesError(t *testing.T) {
	sentinel := errors.New("boom")
	res, _, err := Measure(func() (string, error) {
		return "partial", sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("error not preserved: %v", err)
	}
	if res != "partial" {
		t.Fatalf("result not preserved: %q", res)
	}
}

func TestLoggedEmitsDuration(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	res, err := Logged(logger, "strip archive", func() (int, error) {
		return 7, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != 7 {
		t.Fatalf("result: got %d, want 7", res)
	}
	out := buf.String()
	if !strings.Contains(out, "strip archive ran in") {
		t.Fatalf("missing timing message: %q", out)
	}
	if !strings.Contains(out, "op=\"strip archive\"") {
		t.Fatalf("missing op attr: %q", out)
	}
}

func TestLoggedPreservesErrorWithoutLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	sentinel := errors.New("no such file")

	_, err := Logged(logger, "dedup", func() (int, error) {
		return 0, sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("error not preserved: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("failed operation should not be logged: %q", buf.String())
	}
}
