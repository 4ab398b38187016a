package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCommandSynthesizerPassesScaledRate(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script")
	}

	dir := t.TempDir()
	out := filepath.Join(dir, "args")
	script := filepath.Join(dir, "fake-espeak")
	body := "#!/bin/sh\nprintf '%s\\n' \"$@\" > " + out + "\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("writing script: %v", err)
	}

	synth := CommandSynthesizer{Path: script, RateFlag: "-s", WPM: DefaultWPM}
	if err := synth.Speak(context.Background(), "Twelve Point Five", Rate); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading args: %v", err)
	}

	got := strings.Split(strings.TrimSpace(string(data)), "\n")
	want := []string{"-s", "158", "Twelve Point Five"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("expected args %q, got %q", want, got)
	}
}

func TestCommandSynthesizerReportsFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script")
	}

	script := filepath.Join(t.TempDir(), "broken")
	body := "#!/bin/sh\necho 'no audio device' >&2\nexit 3\n"
	if err := os.WriteFile(script, []byte(body), 0o755); err != nil {
		t.Fatalf("writing script: %v", err)
	}

	err := CommandSynthesizer{Path: script, RateFlag: "-s"}.Speak(context.Background(), "One", Rate)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "no audio device") {
		t.Fatalf("expected stderr in error, got %v", err)
	}
}

func TestLogSynthesizerLogsUtterance(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	synth := LogSynthesizer{Logger: zap.New(core)}
	if err := synth.Speak(context.Background(), "Zero", Rate); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := logs.FilterMessage("speech requested").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["text"]; got != "Zero" {
		t.Fatalf("expected text field Zero, got %v", got)
	}
}

func TestDetect(t *testing.T) {
	t.Run("prefers first installed program", func(t *testing.T) {
		lookPath := func(name string) (string, error) {
			if name == "say" || name == "espeak" {
				return "/usr/bin/" + name, nil
			}
			return "", errors.New("not found")
		}

		synth, ok := Detect(lookPath, zap.NewNop()).(CommandSynthesizer)
		if !ok {
			t.Fatal("expected a CommandSynthesizer")
		}
		if synth.Path != "/usr/bin/espeak" || synth.RateFlag != "-s" {
			t.Fatalf("expected espeak with -s, got %+v", synth)
		}
	})

	t.Run("falls back to logging", func(t *testing.T) {
		lookPath := func(string) (string, error) { return "", errors.New("not found") }

		if _, ok := Detect(lookPath, zap.NewNop()).(LogSynthesizer); !ok {
			t.Fatal("expected a LogSynthesizer")
		}
	})
}
