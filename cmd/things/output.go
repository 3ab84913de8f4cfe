package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pbaille/things/internal/todos"
	"golang.org/x/term"
)

const (
	defaultWidth = 120
	idWidth      = 36
	statusWidth  = 9
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}

func printTable(w io.Writer, items []todos.Listed) {
	nameWidth := terminalWidth(w) - idWidth - 2 - statusWidth - 2
	if nameWidth < 20 {
		nameWidth = 20
	}
	for _, it := range items {
		var id, name, status string
		switch v := it.(type) {
		case *todos.Record:
			id, name, status = v.ID, v.Name, v.Status
			if v.DueDate != nil {
				name += " (due " + *v.DueDate + ")"
			}
		case todos.Summary:
			id, name, status = v.ID, v.Name, v.Status
		}
		fmt.Fprintf(w, "%s  %s  %s\n", padRight(id, idWidth), padRight(status, statusWidth), truncate(name, nameWidth))
	}
}

func padRight(s string, width int) string {
	missing := width - utf8.RuneCountInString(s)
	if missing <= 0 {
		return s
	}
	return s + strings.Repeat(" ", missing)
}

func truncate(s string, max int) string {
	// Replace newlines with spaces for display
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
