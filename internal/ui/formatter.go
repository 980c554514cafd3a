package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/ryo246912/gh-unresolved-comments/internal/models"
)

const (
	authorWidth    = 15
	pathWidth      = 40
	createdWidth   = 20
	minCommentCols = 20
	// DefaultTableWidth is used when the terminal width is unknown
	DefaultTableWidth = 120
)

func PadRight(str string, width int) string {
	w := runewidth.StringWidth(str)
	if w < width {
		return str + strings.Repeat(" ", width-w)
	}
	return str
}

// Fit truncates str to width display columns and pads the rest
func Fit(str string, width int) string {
	return PadRight(runewidth.Truncate(str, width, "..."), width)
}

// FirstLine returns the first non-empty line of a comment body
func FirstLine(body string) string {
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}

// RenderTable writes one row per comment in fixed-width columns
func RenderTable(w io.Writer, comments []models.UnresolvedComment, width int) error {
	if width <= 0 {
		width = DefaultTableWidth
	}
	commentWidth := width - authorWidth - pathWidth - createdWidth - 3
	if commentWidth < minCommentCols {
		commentWidth = minCommentCols
	}

	if _, err := fmt.Fprintf(w, "%s %s %s %s\n",
		PadRight("AUTHOR", authorWidth),
		PadRight("FILE", pathWidth),
		PadRight("CREATED", createdWidth),
		"COMMENT",
	); err != nil {
		return err
	}

	for _, c := range comments {
		line := fmt.Sprintf("%s %s %s %s",
			Fit(c.Author, authorWidth),
			Fit(c.FilePath, pathWidth),
			Fit(c.CreatedAt, createdWidth),
			runewidth.Truncate(FirstLine(c.Body), commentWidth, "..."),
		)
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
