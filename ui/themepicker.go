package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"gomoku-local/config"
	"gomoku-local/types"
)

type paletteColor struct {
	code int
	name string
}

// Wood-like tones for the board.
var boardPalette = []paletteColor{
	{230, "Light Cream"},
	{229, "Pale Yellow"},
	{222, "Gold"},
	{214, "Orange Gold"},
	{180, "Tan"},
	{179, "Light Brown"},
	{172, "Brown"},
	{136, "Dark Brown"},
	{252, "Light Gray"},
	{248, "Medium Gray"},
	{188, "Light Beige"},
	{223, "Peach"},
}

// Darker tones that contrast with the board.
var linePalette = []paletteColor{
	{94, "Saddle Brown"},
	{130, "Dark Orange"},
	{88, "Dark Red"},
	{22, "Dark Green"},
	{24, "Dark Cyan"},
	{17, "Navy Blue"},
	{54, "Purple"},
	{236, "Dark Gray"},
	{16, "True Black"},
}

// Backgrounds for the winning five.
var winPalette = []paletteColor{
	{1, "Red"},
	{9, "Bright Red"},
	{2, "Green"},
	{3, "Olive"},
	{5, "Magenta"},
	{6, "Teal"},
}

// themeTarget is one theme color the picker can change.
type themeTarget struct {
	name    string
	palette []paletteColor
	field   func(c *config.ConfigColors) *int
}

var themeTargets = []themeTarget{
	{"Board", boardPalette, func(c *config.ConfigColors) *int { return &c.BoardColor }},
	{"Line", linePalette, func(c *config.ConfigColors) *int { return &c.LineColor }},
	{"Win", winPalette, func(c *config.ConfigColors) *int { return &c.WinColorBG }},
}

// previewStones is a finished game: black has five on the diagonal.
var previewStones = map[types.Move]types.Cell{
	{Row: 1, Col: 1}: types.Black, {Row: 2, Col: 2}: types.Black, {Row: 3, Col: 3}: types.Black,
	{Row: 4, Col: 4}: types.Black, {Row: 5, Col: 5}: types.Black,
	{Row: 1, Col: 2}: types.White, {Row: 2, Col: 3}: types.White, {Row: 3, Col: 4}: types.White,
	{Row: 4, Col: 5}: types.White,
}

// ThemePicker edits the board colors with a live preview. Enter saves the
// theme to the config file, Tab moves to the next color.
type ThemePicker struct {
	flex    *tview.Flex
	list    *tview.List
	preview *tview.Box
	cfg     *config.Config
	colors  config.ConfigColors // being edited
	target  int
	onDone  func(err error)
}

// NewThemePicker creates the picker. onDone gets the result of saving.
func NewThemePicker(cfg *config.Config, onDone func(err error)) *ThemePicker {
	tp := &ThemePicker{
		cfg:    cfg,
		colors: cfg.Theme.Colors,
		onDone: onDone,
	}

	tp.list = tview.NewList()
	tp.list.SetBorder(true)
	tp.list.ShowSecondaryText(false)
	tp.list.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		tp.onDone(tp.Apply())
	})

	tp.preview = tview.NewBox()
	tp.preview.SetBorder(true)
	tp.preview.SetTitle(" Board Preview ")
	tp.preview.SetDrawFunc(tp.drawPreview)

	tp.flex = tview.NewFlex().
		AddItem(tp.list, 34, 0, true).
		AddItem(tp.preview, 0, 1, false)

	tp.populate()
	return tp
}

// Reset discards unsaved edits.
func (tp *ThemePicker) Reset() {
	tp.colors = tp.cfg.Theme.Colors
	tp.target = 0
	tp.populate()
}

// Apply copies the edited colors into the config and saves it.
func (tp *ThemePicker) Apply() error {
	tp.cfg.Theme.Colors = tp.colors
	return tp.cfg.Save()
}

// NextTarget switches to editing the next theme color.
func (tp *ThemePicker) NextTarget() {
	tp.target = (tp.target + 1) % len(themeTargets)
	tp.populate()
}

func (tp *ThemePicker) populate() {
	t := themeTargets[tp.target]
	current := *t.field(&tp.colors)

	// Clearing and refilling fires the changed func; keep the edited color.
	tp.list.SetChangedFunc(nil)
	tp.list.Clear()
	tp.list.SetTitle(fmt.Sprintf(" %s Color (Tab: next) ", t.name))
	selected := -1
	for i, c := range t.palette {
		tp.list.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
		if c.code == current {
			selected = i
		}
	}
	if selected >= 0 {
		tp.list.SetCurrentItem(selected)
	}
	tp.list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index >= 0 && index < len(t.palette) {
			*t.field(&tp.colors) = t.palette[index].code
		}
	})
}

func (tp *ThemePicker) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	const size = 7
	startX, startY := x+2, y+1
	if width < size*2+4 || height < size+4 {
		return x, y, width, height
	}

	board := tcell.PaletteColor(tp.colors.BoardColor)
	lineStyle := tcell.StyleDefault.Background(board).Foreground(tcell.PaletteColor(tp.colors.LineColor))
	stoneStyle := map[types.Cell]tcell.Style{
		types.Black: tcell.StyleDefault.Foreground(tcell.PaletteColor(tp.colors.BlackColor)),
		types.White: tcell.StyleDefault.Foreground(tcell.PaletteColor(tp.colors.WhiteColor)),
	}
	win := tcell.PaletteColor(tp.colors.WinColorBG)
	symbols := tp.cfg.Theme.Symbols

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			m := types.Move{Row: row, Col: col}
			style := lineStyle
			r := gridRune(row, col, size)
			stone, ok := previewStones[m]
			if ok {
				r = symbols.BlackStone
				if stone == types.White {
					r = symbols.WhiteStone
				}
				bg := board
				if stone == types.Black {
					bg = win
				}
				style = stoneStyle[stone].Background(bg)
			}
			screen.SetContent(startX+col*2, startY+row, r, nil, style)

			connector := ' '
			_, right := previewStones[types.Move{Row: row, Col: col + 1}]
			if col < size-1 && !ok && !right {
				connector = '─'
			}
			screen.SetContent(startX+col*2+1, startY+row, connector, nil, lineStyle)
		}
	}

	info := fmt.Sprintf("Board: %d  Line: %d  Win: %d", tp.colors.BoardColor, tp.colors.LineColor, tp.colors.WinColorBG)
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+size+1, ch, nil, tcell.StyleDefault)
		}
	}
	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (tp *ThemePicker) Flex() *tview.Flex {
	return tp.flex
}

// SetInputCapture sets the input capture for the color list.
func (tp *ThemePicker) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	tp.list.SetInputCapture(capture)
}
