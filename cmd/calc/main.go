package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"wordcalc/internal/calculator"
	"wordcalc/internal/config"
	"wordcalc/internal/observability"
	"wordcalc/internal/speech"
	"wordcalc/internal/tui"
	"wordcalc/internal/words"
)

var (
	version = "0.1.0"
)

func main() {
	var (
		logFile     string
		mute        bool
		showVersion bool
	)

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	flag.StringVar(&logFile, "log", cfg.LogFile, "write JSON logs to this file (default: discard)")
	flag.BoolVar(&mute, "mute", false, "log utterances instead of playing them")
	flag.BoolVar(&showVersion, "version", false, "show version")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "calc - a calculator that spells its results\n\n")
		fmt.Fprintf(os.Stderr, "Usage: calc [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  0-9 . ( ) + - * /   input\n")
		fmt.Fprintf(os.Stderr, "  enter =             evaluate\n")
		fmt.Fprintf(os.Stderr, "  backspace           delete\n")
		fmt.Fprintf(os.Stderr, "  esc c               clear\n")
		fmt.Fprintf(os.Stderr, "  s                   speak the result\n")
		fmt.Fprintf(os.Stderr, "  q ctrl+c            quit\n")
	}
	flag.Parse()

	if showVersion {
		fmt.Printf("calc %s\n", version)
		os.Exit(0)
	}

	if err := observability.InitFileLogger(logFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer observability.SyncLogger()

	cache, err := words.NewCache(cfg.WordsCacheSize, words.Converter{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var synth speech.Synthesizer = speech.LogSynthesizer{Logger: observability.Logger}
	if !mute {
		synth = speech.Detect(nil, observability.Logger)
	}

	m := tui.New(calculator.New(cache), speech.NewSpeaker(synth))
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		observability.Logger.Sugar().Errorw("calculator exited", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
