package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/tunelist/internal/formatter"
)

var styles = NewPalette("#1DB954", "#04B575", "#FF5F56", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
	tab   lipgloss.Style
	cover lipgloss.Style
	pane  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
		tab:   NewBold(t).Underline(true),
		cover: NewStyle(h).Border(lipgloss.RoundedBorder()).Padding(0, 1),
		pane:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color(h)).Padding(0, 1),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// renderCover draws the collage as a small box: a 2x2 grid of markers, one marker, or a note glyph.
func renderCover(cover formatter.Cover) string {
	var body string
	switch cover.Kind {
	case formatter.CoverGrid:
		body = "▣ ▣\n▣ ▣"
	case formatter.CoverSingle:
		body = " ▣ \n   "
	default:
		body = " ♪ \n   "
	}
	return styles.cover.Render(strings.TrimRight(body, "\n"))
}
