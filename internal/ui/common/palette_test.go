package common

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/SymphonyNineth/batchren/internal/config"
)

func boolPtr(b bool) *bool { return &b }

func TestPalette_Get_InheritsFromPrefixes(t *testing.T) {
	p := NewPalette()
	p.Update(map[string]config.Color{
		"form label":         {Fg: "1"},
		"form label focused": {Bold: boolPtr(true)},
	})

	style := p.Get("form label focused")

	assert.Equal(t, lipgloss.Color("1"), style.GetForeground())
	assert.True(t, style.GetBold())
}

func TestPalette_Get_MostSpecificWins(t *testing.T) {
	p := NewPalette()
	p.Update(map[string]config.Color{
		"status":       {Fg: "1"},
		"status error": {Fg: "9"},
	})

	assert.Equal(t, lipgloss.Color("9"), p.Get("status error").GetForeground())
	assert.Equal(t, lipgloss.Color("1"), p.Get("status").GetForeground())
}

func TestPalette_Get_UnknownSelector(t *testing.T) {
	style := NewPalette().Get("no such selector")

	assert.Equal(t, lipgloss.NoColor{}, style.GetForeground())
	assert.False(t, style.GetBold())
}

func TestPalette_UpdateDropsCache(t *testing.T) {
	p := NewPalette()
	p.Update(map[string]config.Color{"title": {Fg: "1"}})
	assert.Equal(t, lipgloss.Color("1"), p.Get("title").GetForeground())

	p.Update(map[string]config.Color{"title": {Fg: "2"}})

	assert.Equal(t, lipgloss.Color("2"), p.Get("title").GetForeground())
}

func TestPalette_GetBorder(t *testing.T) {
	p := NewPalette()
	p.Update(map[string]config.Color{"confirmation border": {Fg: "5"}})

	style := p.GetBorder("confirmation border", lipgloss.RoundedBorder())

	assert.Equal(t, lipgloss.Color("5"), style.GetBorderTopForeground())
	assert.Equal(t, lipgloss.Color("5"), style.GetForeground())
}

func TestParseColor(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#ff0000"), parseColor("#ff0000"))
	assert.Equal(t, lipgloss.Color("42"), parseColor("42"))
	assert.Equal(t, lipgloss.Color("9"), parseColor("bright red"))
	assert.Equal(t, lipgloss.Color("17"), parseColor("ansi-color-17"))
	assert.Equal(t, lipgloss.NoColor{}, parseColor("not-a-color"))
}

func TestCreateStyleFrom_Attributes(t *testing.T) {
	style := createStyleFrom(config.Color{
		Fg:            "3",
		Bg:            "0",
		Bold:          boolPtr(true),
		Strikethrough: boolPtr(true),
	})

	assert.Equal(t, lipgloss.Color("3"), style.GetForeground())
	assert.Equal(t, lipgloss.Color("0"), style.GetBackground())
	assert.True(t, style.GetBold())
	assert.True(t, style.GetStrikethrough())
	assert.False(t, style.GetItalic())
}
