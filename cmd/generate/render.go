package main

import (
	"fmt"
	"strings"

	"github.com/myrjola/wodgen/internal/errors"
	"github.com/myrjola/wodgen/internal/workout"
	"github.com/yuin/goldmark"
)

// renderMarkdown formats a workout as a coach-readable Markdown document.
func renderMarkdown(w workout.GeneratedWorkout) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s workout, %d min\n\n", w.Meta.Style, w.Meta.TotalMinutes)
	fmt.Fprintf(&b, "Estimated intensity %d/10, seed `%s`.\n\n", w.Meta.EstimatedIntensity, w.Meta.Seed)

	for _, note := range w.Meta.Notes {
		fmt.Fprintf(&b, "> %s\n\n", note)
	}

	for _, block := range w.Blocks {
		fmt.Fprintf(&b, "## %s (%d min, %s)\n\n", block.Title, block.Minutes, block.Shape)
		if block.Scheme != "" {
			fmt.Fprintf(&b, "%s\n\n", block.Scheme)
		}
		for _, item := range block.Items {
			fmt.Fprintf(&b, "- **%s**: %s", item.Movement.Name, item.Prescription)
			if item.Notes != "" {
				fmt.Fprintf(&b, " (%s)", item.Notes)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	flags := w.Meta.AcceptanceFlags
	fmt.Fprintf(&b, "Acceptance: timeFit=%t styleOk=%t patternsLocked=%t loadedRatioOk=%t\n",
		flags.TimeFit, flags.StyleOK, flags.PatternsLocked, flags.LoadedRatioOK)

	return b.String()
}

// renderHTML converts the Markdown rendering to an HTML fragment.
func renderHTML(w workout.GeneratedWorkout) (string, error) {
	var out strings.Builder
	if err := goldmark.Convert([]byte(renderMarkdown(w)), &out); err != nil {
		return "", errors.Wrap(err, "convert markdown")
	}
	return out.String(), nil
}
