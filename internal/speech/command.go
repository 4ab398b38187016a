package speech

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// DefaultWPM is the words-per-minute both espeak and say use at rate 1.
const DefaultWPM = 175

// CommandSynthesizer speaks through an external text-to-speech program that
// takes a words-per-minute flag followed by the text.
type CommandSynthesizer struct {
	Path     string
	RateFlag string
	WPM      int
}

type candidate struct {
	name     string
	rateFlag string
}

var candidates = []candidate{
	{name: "espeak-ng", rateFlag: "-s"},
	{name: "espeak", rateFlag: "-s"},
	{name: "say", rateFlag: "-r"},
}

func (c CommandSynthesizer) Speak(ctx context.Context, text string, rate float64) error {
	wpm := c.WPM
	if wpm <= 0 {
		wpm = DefaultWPM
	}
	speed := int(math.Round(float64(wpm) * rate))

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Path, c.RateFlag, strconv.Itoa(speed), text)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("running %s: %w: %s", c.Path, err, msg)
		}
		return fmt.Errorf("running %s: %w", c.Path, err)
	}
	return nil
}

// LogSynthesizer writes utterances to a logger instead of a sound device.
type LogSynthesizer struct {
	Logger *zap.Logger
}

func (l LogSynthesizer) Speak(ctx context.Context, text string, rate float64) error {
	l.Logger.Info("speech requested",
		zap.String("text", text),
		zap.Float64("rate", rate),
	)
	return ctx.Err()
}

// Detect picks the first speech program found by lookPath and falls back to
// a LogSynthesizer when none is installed. A nil lookPath uses exec.LookPath.
func Detect(lookPath func(string) (string, error), logger *zap.Logger) Synthesizer {
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	for _, c := range candidates {
		path, err := lookPath(c.name)
		if err != nil {
			continue
		}
		logger.Debug("speech synthesizer found", zap.String("path", path))
		return CommandSynthesizer{Path: path, RateFlag: c.rateFlag, WPM: DefaultWPM}
	}

	logger.Info("no speech synthesizer installed, logging utterances instead")
	return LogSynthesizer{Logger: logger}
}
