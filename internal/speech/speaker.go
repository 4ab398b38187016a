// Package speech reads calculator results aloud.
package speech

import (
	"context"
	"errors"
	"sync"
)

// Rate is the speaking rate applied to every utterance, relative to the
// synthesizer's normal speed.
const Rate = 0.9

// ErrBusy is returned by Speak and Start while another utterance is running.
var ErrBusy = errors.New("speech: already speaking")

// Synthesizer turns text into audio. Speak blocks until playback ends or ctx
// is cancelled.
type Synthesizer interface {
	Speak(ctx context.Context, text string, rate float64) error
}

// Speaker runs at most one utterance at a time.
type Speaker struct {
	synth Synthesizer

	// OnStart and OnEnd, when set, are called around every utterance. OnEnd
	// is called even when the utterance was cancelled before it started. Set
	// them before the first Speak.
	OnStart func(text string)
	OnEnd   func(err error)

	mu  sync.Mutex
	cur *utterance
}

type utterance struct {
	cancel context.CancelFunc
}

func NewSpeaker(synth Synthesizer) *Speaker {
	return &Speaker{synth: synth}
}

// Speak reads text aloud and blocks until it finishes. Empty text is a no-op.
// A Cancel during playback makes Speak return context.Canceled.
func (s *Speaker) Speak(ctx context.Context, text string) error {
	play, err := s.Start(ctx, text)
	if err != nil {
		return err
	}
	return play()
}

// Start reserves the speaker for text and returns the blocking func that
// plays it. From the moment Start returns, Speaking reports true and Cancel
// stops the utterance, even if play has not been called yet.
func (s *Speaker) Start(ctx context.Context, text string) (play func() error, err error) {
	if text == "" {
		return func() error { return nil }, nil
	}

	s.mu.Lock()
	if s.cur != nil {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	ctx, cancel := context.WithCancel(ctx)
	u := &utterance{cancel: cancel}
	s.cur = u
	s.mu.Unlock()

	return func() error {
		err := ctx.Err()
		if err == nil {
			if s.OnStart != nil {
				s.OnStart(text)
			}
			err = s.synth.Speak(ctx, text, Rate)
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = ctxErr
			}
		}

		s.release(u)
		cancel()

		if s.OnEnd != nil {
			s.OnEnd(err)
		}
		return err
	}, nil
}

func (s *Speaker) release(u *utterance) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == u {
		s.cur = nil
	}
}

// Cancel stops the running or reserved utterance and frees the speaker. It
// reports whether there was one.
func (s *Speaker) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cur == nil {
		return false
	}
	s.cur.cancel()
	s.cur = nil
	return true
}

// Speaking reports whether an utterance is running or reserved.
func (s *Speaker) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur != nil
}
