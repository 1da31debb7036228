package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"cloctui/cloc"
	"cloctui/stats"
	"cloctui/table"
)

type phase int

const (
	phaseScanning phase = iota
	phaseError
	phaseTable
)

// Recorder receives every completed scan, off the render path. Used to wire
// the history store without the UI depending on it.
type Recorder func(target string, startedAt time.Time, res *stats.ScanResult)

// Options tune the table presentation.
type Options struct {
	CellPadding  int
	MinPathWidth int
	ZebraStripes bool
	Recorder     Recorder
}

// ClocApp is the interactive frontend for one scan target. User actions
// (sort, regroup, filter, resize, scroll) are serialized into a single
// consumer queue processed by Run, so sort and layout state is never touched
// concurrently.
type ClocApp struct {
	mu          sync.RWMutex
	width       int
	height      int
	refreshChan chan<- bool
	stop        chan struct{}
	stopOnce    sync.Once
	actions     chan func()

	scanner  cloc.Scanner
	target   string
	recorder Recorder

	phase    phase
	errMsg   string
	lineSpin *spinner
	dotsSpin *spinner

	result  *stats.ScanResult
	dt      *dataTable
	options *optionsBar
	summary *summaryBar
}

// NewClocApp creates the app for a scan of target.
func NewClocApp(target string, scanner cloc.Scanner, opts Options) *ClocApp {
	padding := opts.CellPadding
	if padding <= 0 {
		padding = 1
	}
	return &ClocApp{
		stop:     make(chan struct{}),
		actions:  make(chan func(), 32),
		scanner:  scanner,
		target:   target,
		recorder: opts.Recorder,
		phase:    phaseScanning,
		lineSpin: newLineSpinner(),
		dotsSpin: newDotsSpinner(),
		dt:       newDataTable(padding, opts.MinPathWidth, opts.ZebraStripes),
		options:  newOptionsBar(),
		summary:  newSummaryBar(),
	}
}

func (a *ClocApp) SetRefreshNotifier(refreshChan chan<- bool) {
	a.refreshChan = refreshChan
}

func (a *ClocApp) requestRefresh() {
	if a.refreshChan == nil {
		return
	}
	select {
	case a.refreshChan <- true:
	default:
	}
}

// Run launches the scan in the background and consumes the action queue.
// Tearing the app down cancels the scan; a cancelled scan publishes nothing.
func (a *ClocApp) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := time.Now()
	outcome := a.scanner.Start(ctx, a.target)

	ticker := time.NewTicker(120 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-a.stop:
			return nil

		case o, ok := <-outcome:
			outcome = nil
			if !ok {
				continue
			}
			a.finishScan(o, started)
			a.requestRefresh()

		case <-ticker.C:
			a.mu.Lock()
			scanning := a.phase == phaseScanning
			if scanning {
				a.lineSpin.Advance()
				a.dotsSpin.Advance()
			}
			a.mu.Unlock()
			if scanning {
				a.requestRefresh()
			}

		case fn := <-a.actions:
			fn()
			a.requestRefresh()
		}
	}
}

// Stop signals the Run loop to terminate. Safe to call more than once.
func (a *ClocApp) Stop() {
	a.stopOnce.Do(func() { close(a.stop) })
}

func (a *ClocApp) finishScan(o cloc.Outcome, started time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if o.Err != nil {
		a.phase = phaseError
		a.errMsg = o.Err.Error()
		return
	}

	a.result = o.Result
	a.phase = phaseTable
	a.dt.setRows(table.Rows(a.result, table.ViewFlat))
	// The freshly shown table is sorted by total, largest first.
	a.dt.selectColumn(table.ColTotal)
	a.relayoutLocked()

	if a.recorder != nil {
		go a.recorder(a.target, started, o.Result)
	}
}

func (a *ClocApp) relayoutLocked() {
	a.summary.setWidth(a.dt.relayout(a.width))
}

// do enqueues a state mutation for the single-consumer action queue.
func (a *ClocApp) do(fn func()) {
	action := func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		fn()
	}
	select {
	case a.actions <- action:
	case <-a.stop:
	}
}

// Resize records the new terminal size and reflows the flexible column.
func (a *ClocApp) Resize(cols, rows int) {
	a.do(func() {
		a.width, a.height = cols, rows
		if a.phase == phaseTable {
			a.relayoutLocked()
		}
	})
}

// digit-to-column bindings 1 through 6. Keys whose column is absent from
// the current view are ignored.
var sortBindings = []string{
	table.ColPath, table.ColLanguage, table.ColBlank,
	table.ColComment, table.ColCode, table.ColTotal,
}

func (a *ClocApp) HandleKey(ev *tcell.EventKey) {
	key := ev.Key()
	r := ev.Rune()
	a.do(func() {
		if a.phase != phaseTable {
			return
		}
		switch {
		case key == tcell.KeyTab:
			a.options.cycleFocus()
		case key == tcell.KeyBackspace || key == tcell.KeyBackspace2:
			if a.options.focus == optFilter && a.options.filter != "" {
				runes := []rune(a.options.filter)
				a.options.filter = string(runes[:len(runes)-1])
				a.dt.setFilter(a.options.filter)
				a.relayoutLocked()
			}
		case key == tcell.KeyEscape:
			if a.options.focus == optFilter {
				a.options.filter = ""
				a.dt.setFilter("")
				a.options.focus = optShowFiles
				a.relayoutLocked()
			}
		case key == tcell.KeyEnter:
			if a.options.focus != optFilter {
				a.activateSlot(a.options.focus)
			}
		case key == tcell.KeyUp:
			a.dt.scrollBy(-1)
		case key == tcell.KeyDown:
			a.dt.scrollBy(1)
		case key == tcell.KeyPgUp:
			a.dt.scrollBy(-a.dt.bodyRows)
		case key == tcell.KeyPgDn:
			a.dt.scrollBy(a.dt.bodyRows)
		case key == tcell.KeyRune:
			a.handleRune(r)
		}
	})
}

func (a *ClocApp) handleRune(r rune) {
	if a.options.focus == optFilter {
		a.options.filter += string(r)
		a.dt.setFilter(a.options.filter)
		a.relayoutLocked()
		return
	}
	switch {
	case r >= '1' && r <= '6':
		a.dt.selectColumn(sortBindings[r-'1'])
	case r == ' ':
		a.activateSlot(a.options.focus)
	case r == 'f':
		a.switchMode(table.ViewFlat)
	case r == 'l':
		a.switchMode(table.ViewByLanguage)
	case r == 'd':
		a.switchMode(table.ViewByDirectory)
	}
}

func (a *ClocApp) activateSlot(slot int) {
	switch slot {
	case optShowFiles:
		a.switchMode(table.ViewFlat)
	case optByLanguage:
		a.switchMode(table.ViewByLanguage)
	case optByDir:
		a.switchMode(table.ViewByDirectory)
	case optFilter:
		a.options.focus = optFilter
	}
}

// switchMode swaps the rendered view. The flexible column changes with the
// view, so layout is recomputed as well.
func (a *ClocApp) switchMode(mode table.ViewMode) {
	if a.result == nil {
		return
	}
	a.dt.setMode(mode, table.Rows(a.result, mode))
	a.relayoutLocked()
}

func (a *ClocApp) HandleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	a.do(func() {
		if a.phase != phaseTable {
			return
		}
		switch {
		case buttons&tcell.Button1 != 0:
			if slot, ok := a.options.itemAt(x, y); ok {
				a.options.focus = slot
				a.activateSlot(slot)
				return
			}
			if col, ok := a.dt.columnAt(x, y); ok {
				a.dt.selectColumn(col)
			}
		case buttons&tcell.WheelUp != 0:
			a.dt.scrollBy(-3)
		case buttons&tcell.WheelDown != 0:
			a.dt.scrollBy(3)
		}
	})
}

// Render composes the current frame.
func (a *ClocApp) Render() [][]Cell {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.width <= 0 || a.height <= 0 {
		return [][]Cell{}
	}
	buf := newBuffer(a.width, a.height, tcell.StyleDefault)

	switch a.phase {
	case phaseScanning:
		a.renderScanning(buf)
	case phaseError:
		a.renderError(buf)
	case phaseTable:
		a.renderTable(buf)
	}
	return buf
}

func (a *ClocApp) renderScanning(buf [][]Cell) {
	msg := fmt.Sprintf("%s Counting Lines of Code %s", a.lineSpin.Frame(), a.dotsSpin.Frame())
	y := a.height / 2
	x := (a.width - len(msg)) / 2
	if x < 0 {
		x = 0
	}
	drawText(buf, x, y, msg, tcell.StyleDefault.Foreground(tcell.ColorYellow))
}

func (a *ClocApp) renderError(buf [][]Cell) {
	base := tcell.StyleDefault
	drawText(buf, 0, 0, "Scan failed:", base.Foreground(tcell.ColorRed).Bold(true))
	drawText(buf, 0, 2, a.errMsg, base)
	drawText(buf, 0, a.height-1, "Press ctrl+q to exit", base.Italic(true))
}

func (a *ClocApp) renderTable(buf [][]Cell) {
	base := tcell.StyleDefault

	drawHeaderBar(buf, 0, a.result.Header)
	a.options.draw(buf, 3, a.width)

	tableTop := 4
	tableHeight := a.height - tableTop - 3
	a.dt.draw(buf, tableTop, tableHeight, a.width)

	a.summary.draw(buf, a.height-3, a.width, a.result.Summary, a.dt.cols)
	drawText(buf, 0, a.height-2,
		"1-6 Sort columns | Tab Cycle focus | f/l/d Group | Mouse Supported",
		base.Dim(true))
	drawText(buf, 0, a.height-1, "Press ctrl+q to exit", base.Italic(true))
}
