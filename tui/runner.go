package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// App is the contract between the run loop and an application.
type App interface {
	Run() error
	Stop()
	Resize(cols, rows int)
	Render() [][]Cell
	HandleKey(ev *tcell.EventKey)
	SetRefreshNotifier(ch chan<- bool)
}

// MouseHandler is implemented by apps that consume mouse events.
type MouseHandler interface {
	HandleMouse(ev *tcell.EventMouse)
}

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Run. Passing nil
// restores the default. Tests install a simulation screen through this.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// RunOptions control the outer terminal behaviour.
type RunOptions struct {
	// EchoOnExit prints the final frame as plain text after the screen is
	// torn down, so results stay in the scrollback (inline mode).
	EchoOnExit bool
}

// Run executes an app inside a local tcell screen until the app finishes or
// the user quits with Ctrl+C / Ctrl+Q.
func Run(app App, opts RunOptions) error {
	screen, err := screenFactory()
	if err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}

	var lastFrame [][]Cell
	finished := false
	defer func() {
		if !finished {
			screen.Fini()
		}
	}()

	screen.Clear()
	screen.EnableMouse()
	defer screen.DisableMouse()

	width, height := screen.Size()
	app.Resize(width, height)
	refreshCh := make(chan bool, 1)
	app.SetRefreshNotifier(refreshCh)

	draw := func() {
		screen.Clear()
		buffer := app.Render()
		for y := 0; y < len(buffer); y++ {
			row := buffer[y]
			for x := 0; x < len(row); x++ {
				cell := row[x]
				screen.SetContent(x, y, cell.Ch, nil, cell.Style)
			}
		}
		screen.Show()
		lastFrame = buffer
	}

	draw()

	runErr := make(chan error, 1)
	go func() {
		runErr <- app.Run()
	}()
	defer app.Stop()

	go func() {
		for range refreshCh {
			screen.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}()

	finish := func(err error) error {
		draw()
		screen.Fini()
		finished = true
		if opts.EchoOnExit {
			for _, line := range bufferLines(lastFrame) {
				fmt.Println(line)
			}
		}
		return err
	}

	for {
		select {
		case err := <-runErr:
			return finish(err)
		default:
		}

		ev := screen.PollEvent()
		switch tev := ev.(type) {
		case *tcell.EventInterrupt:
			draw()
		case *tcell.EventResize:
			w, h := tev.Size()
			app.Resize(w, h)
			draw()
		case *tcell.EventKey:
			if tev.Key() == tcell.KeyCtrlC || tev.Key() == tcell.KeyCtrlQ {
				return finish(nil)
			}
			app.HandleKey(tev)
			draw()
		case *tcell.EventMouse:
			if mh, ok := app.(MouseHandler); ok {
				mh.HandleMouse(tev)
				draw()
			}
		}
	}
}
