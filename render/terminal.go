package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/warren/components"
)

// Screen is the part of tcell.Screen the viewer draws through.
type Screen interface {
	Clear()
	Show()
	Fini()
	SetContent(x, y int, mainc rune, combc []rune, style tcell.Style)
	PollEvent() tcell.Event
}

var kindStyles = [components.NumKinds]tcell.Style{
	components.KindEmpty:  tcell.StyleDefault,
	components.KindRabbit: tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	components.KindFox:    tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	components.KindRock:   tcell.StyleDefault.Foreground(tcell.ColorGray),
}

var frameStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)

// Viewer draws successive generations in the terminal.
// Esc, q or Ctrl-C closes the channel returned by Quit.
type Viewer struct {
	screen Screen
	quit   chan struct{}
}

// NewViewer takes over the terminal.
func NewViewer() (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return newViewer(screen), nil
}

func newViewer(s Screen) *Viewer {
	v := &Viewer{
		screen: s,
		quit:   make(chan struct{}),
	}
	go v.pollInput()
	return v
}

// pollInput runs until the user asks to quit or the screen is finalized.
func (v *Viewer) pollInput() {
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		if key, ok := ev.(*tcell.EventKey); ok && isQuitKey(key) {
			close(v.quit)
			return
		}
	}
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// Quit is closed once the user asks to leave.
func (v *Viewer) Quit() <-chan struct{} {
	return v.quit
}

// Draw renders a status line followed by the framed grid.
func (v *Viewer) Draw(generation int, view View) {
	width, height := view.Size()
	var counts [components.NumKinds]int

	v.screen.Clear()

	for x := 0; x < width+2; x++ {
		v.screen.SetContent(x, 1, '-', nil, frameStyle)
		v.screen.SetContent(x, height+2, '-', nil, frameStyle)
	}
	for r := 0; r < height; r++ {
		y := r + 2
		v.screen.SetContent(0, y, '|', nil, frameStyle)
		v.screen.SetContent(width+1, y, '|', nil, frameStyle)
		for c := 0; c < width; c++ {
			k := view.KindAt(r, c)
			counts[k]++
			v.screen.SetContent(c+1, y, k.Symbol(), nil, kindStyles[k])
		}
	}

	status := fmt.Sprintf("gen %d  rabbits %d  foxes %d  (q to quit)",
		generation, counts[components.KindRabbit], counts[components.KindFox])
	for i, ch := range status {
		v.screen.SetContent(i, 0, ch, nil, tcell.StyleDefault)
	}

	v.screen.Show()
}

// Close restores the terminal.
func (v *Viewer) Close() {
	v.screen.Fini()
}
