package speech

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// blockingSynth holds every utterance until released or cancelled.
type blockingSynth struct {
	mu      sync.Mutex
	texts   []string
	rates   []float64
	started chan struct{}
	release chan struct{}
}

func newBlockingSynth() *blockingSynth {
	return &blockingSynth{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (b *blockingSynth) Speak(ctx context.Context, text string, rate float64) error {
	b.mu.Lock()
	b.texts = append(b.texts, text)
	b.rates = append(b.rates, rate)
	b.mu.Unlock()

	b.started <- struct{}{}

	select {
	case <-b.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func waitStarted(t *testing.T, b *blockingSynth) {
	t.Helper()
	select {
	case <-b.started:
	case <-time.After(2 * time.Second):
		t.Fatal("utterance did not start")
	}
}

func TestSpeakerSpeaksAtFixedRate(t *testing.T) {
	synth := newBlockingSynth()
	s := NewSpeaker(synth)

	var started string
	var ended error = errors.New("not called")
	s.OnStart = func(text string) { started = text }
	s.OnEnd = func(err error) { ended = err }

	done := make(chan error, 1)
	go func() { done <- s.Speak(context.Background(), "Forty-Two") }()

	waitStarted(t, synth)
	if !s.Speaking() {
		t.Fatal("expected speaker to report speaking")
	}
	close(synth.release)

	if err := <-done; err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Speaking() {
		t.Fatal("expected speaker to be idle after playback")
	}
	if started != "Forty-Two" {
		t.Fatalf("expected OnStart with text, got %q", started)
	}
	if ended != nil {
		t.Fatalf("expected OnEnd(nil), got %v", ended)
	}
	if len(synth.rates) != 1 || synth.rates[0] != Rate {
		t.Fatalf("expected one utterance at rate %v, got %v", Rate, synth.rates)
	}
}

func TestSpeakerRejectsOverlappingUtterance(t *testing.T) {
	synth := newBlockingSynth()
	s := NewSpeaker(synth)

	done := make(chan error, 1)
	go func() { done <- s.Speak(context.Background(), "Seven") }()
	waitStarted(t, synth)

	if err := s.Speak(context.Background(), "Eight"); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}

	close(synth.release)
	<-done

	if len(synth.texts) != 1 {
		t.Fatalf("expected a single utterance, got %v", synth.texts)
	}
}

func TestSpeakerCancelStopsPlayback(t *testing.T) {
	synth := newBlockingSynth()
	s := NewSpeaker(synth)

	var ended error
	s.OnEnd = func(err error) { ended = err }

	done := make(chan error, 1)
	go func() { done <- s.Speak(context.Background(), "One Hundred") }()
	waitStarted(t, synth)

	if !s.Cancel() {
		t.Fatal("expected Cancel to report a running utterance")
	}

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Speak did not return after Cancel")
	}

	if !errors.Is(ended, context.Canceled) {
		t.Fatalf("expected OnEnd(context.Canceled), got %v", ended)
	}
	if s.Cancel() {
		t.Fatal("expected Cancel on idle speaker to report false")
	}
}

func TestSpeakerEmptyTextIsNoop(t *testing.T) {
	synth := newBlockingSynth()
	s := NewSpeaker(synth)

	if err := s.Speak(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(synth.texts) != 0 {
		t.Fatalf("expected no utterance, got %v", synth.texts)
	}
}

func TestSpeakerCancelBeforePlay(t *testing.T) {
	synth := newBlockingSynth()
	s := NewSpeaker(synth)

	started := false
	var ended error
	s.OnStart = func(string) { started = true }
	s.OnEnd = func(err error) { ended = err }

	play, err := s.Start(context.Background(), "Nine")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Speaking() {
		t.Fatal("expected Start to reserve the speaker")
	}
	if _, err := s.Start(context.Background(), "Ten"); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy while reserved, got %v", err)
	}

	if !s.Cancel() {
		t.Fatal("expected Cancel to find the reserved utterance")
	}
	if s.Speaking() {
		t.Fatal("expected Cancel to free the speaker")
	}

	if err := play(); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if started {
		t.Fatal("expected OnStart not to run for a cancelled utterance")
	}
	if !errors.Is(ended, context.Canceled) {
		t.Fatalf("expected OnEnd(context.Canceled), got %v", ended)
	}
	if len(synth.texts) != 0 {
		t.Fatalf("expected nothing spoken, got %v", synth.texts)
	}
}

func TestSpeakerStaleReleaseKeepsNewUtterance(t *testing.T) {
	synth := newBlockingSynth()
	s := NewSpeaker(synth)

	stale, err := s.Start(context.Background(), "One")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Cancel()

	if _, err := s.Start(context.Background(), "Two"); err != nil {
		t.Fatalf("expected speaker free after Cancel, got %v", err)
	}

	_ = stale()
	if !s.Speaking() {
		t.Fatal("expected the cancelled utterance not to release the new one")
	}
}
