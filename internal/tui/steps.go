package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Cached glamour renderer, rebuilt only when the width changes. The last
// rendered step log is memoised as well since most key presses leave it alone.
var (
	cachedRenderer      *glamour.TermRenderer
	cachedRendererWidth int
	lastMarkdown        string
	lastRendered        string
	rendererMu          sync.Mutex
)

// stepsMarkdown formats the step log as a Markdown list. Each step is an
// inline code span so operators are never read as emphasis.
func stepsMarkdown(steps []string) string {
	if len(steps) == 0 {
		return ""
	}

	var md strings.Builder
	md.WriteString("### Steps\n\n")
	for _, step := range steps {
		md.WriteString("- `" + step + "`\n")
	}
	return md.String()
}

// renderSteps renders the step log for the given width, falling back to the
// raw Markdown when glamour fails.
func renderSteps(steps []string, width int) string {
	md := stepsMarkdown(steps)
	if md == "" {
		return ""
	}

	out, err := renderWithGlamour(md, width)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func renderWithGlamour(markdown string, width int) (string, error) {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	if cachedRenderer == nil || cachedRendererWidth != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", err
		}
		cachedRenderer = renderer
		cachedRendererWidth = width
		lastMarkdown = ""
	}

	if markdown == lastMarkdown {
		return lastRendered, nil
	}

	out, err := cachedRenderer.Render(markdown)
	if err != nil {
		return "", err
	}

	lastMarkdown = markdown
	lastRendered = out
	return out, nil
}
