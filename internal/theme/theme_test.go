package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexToColor(t *testing.T) {
	assert.Equal(t, tcell.NewRGBColor(0x7a, 0xa2, 0xf7), HexToColor("#7aa2f7"))
	assert.Equal(t, tcell.NewRGBColor(0xff, 0x00, 0xff), HexToColor("#f0f"))
	assert.Equal(t, tcell.ColorDefault, HexToColor("#12345"))
	assert.Equal(t, tcell.ColorDefault, HexToColor("#gggggg"))
}

func TestParseColorString(t *testing.T) {
	assert.Equal(t, tcell.NewRGBColor(1, 2, 3), ParseColorString(" rgb(1, 2, 3) "))
	assert.Equal(t, tcell.ColorDefault, ParseColorString("rgb(1,2)"))
	assert.Equal(t, tcell.ColorDefault, ParseColorString("rgb(300,2,3)"))
	assert.Equal(t, tcell.ColorBlue, ParseColorString("Blue"))
	assert.Equal(t, tcell.ColorDefault, ParseColorString("default"))
}

func TestDefaultUsesTerminalColors(t *testing.T) {
	th := Default()
	for key, c := range th.Colors.fields() {
		assert.Equal(t, tcell.ColorDefault, *c, key)
	}
}

func TestTokyoNightSetsEveryColor(t *testing.T) {
	th := TokyoNight()
	for key, c := range th.Colors.fields() {
		if key == "background" {
			continue
		}
		assert.NotEqual(t, tcell.ColorDefault, *c, key)
	}
}

func TestLanePalette_Blend(t *testing.T) {
	th := TokyoNight()

	assert.Nil(t, th.LanePalette(0))
	assert.Equal(t, []tcell.Color{th.Colors.LaneFirst}, th.LanePalette(1))

	p := th.LanePalette(4)
	require.Len(t, p, 4)
	assert.Equal(t, th.Colors.LaneFirst, p[0])
	assert.Equal(t, th.Colors.LaneLast, p[3])
	assert.NotEqual(t, p[1], p[2])
}

func TestLanePalette_DefaultThemeCycles(t *testing.T) {
	p := Default().LanePalette(len(basicLanes) + 1)
	assert.Equal(t, basicLanes[0], p[0])
	assert.Equal(t, basicLanes[0], p[len(basicLanes)])
}

func TestLoadThemeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mine.toml")
	data := `
name = "mine"

[colors]
calendar_day_text = "#ffffff"
lane_first = "rgb(10, 20, 30)"
no_such_color = "#000000"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	th, err := LoadThemeFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mine", th.Name)
	assert.Equal(t, tcell.NewRGBColor(255, 255, 255), th.Colors.CalendarDayText)
	assert.Equal(t, tcell.NewRGBColor(10, 20, 30), th.Colors.LaneFirst)
	// Unset colors fall back to Tokyo Night
	assert.Equal(t, TokyoNight().Colors.HelpBorder, th.Colors.HelpBorder)
}

func TestLoadThemeFromFile_Errors(t *testing.T) {
	_, err := LoadThemeFromFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "failed to read theme file")

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("colors = ["), 0644))
	_, err = LoadThemeFromFile(path)
	assert.ErrorContains(t, err, "failed to parse theme file")
}

func TestLoadThemeOrDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	assert.Equal(t, "default", LoadThemeOrDefault("default").Name)
	assert.Equal(t, "tokyo-night", LoadThemeOrDefault("no-such-theme").Name)
}
