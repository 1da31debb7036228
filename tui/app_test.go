package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"cloctui/cloc"
	"cloctui/stats"
	"cloctui/table"
)

func testResult() *stats.ScanResult {
	return stats.NewScanResult(
		stats.RunHeader{ToolVersion: "2.04", ElapsedSeconds: 0.12, FileCount: 3, LineCount: 170},
		stats.SummaryStat{FileCount: 3, Blank: 15, Comment: 20, Code: 135},
		[]stats.FileStat{
			{Path: "src/a.go", Language: "Go", Blank: 5, Comment: 10, Code: 100},
			{Path: "src/b.py", Language: "Python", Blank: 8, Comment: 4, Code: 30},
			{Path: "main.go", Language: "Go", Blank: 2, Comment: 6, Code: 5},
		},
	)
}

func rowText(buf [][]Cell, y int) string {
	if y < 0 || y >= len(buf) {
		return ""
	}
	var b strings.Builder
	for _, c := range buf[y] {
		b.WriteRune(c.Ch)
	}
	return strings.TrimRight(b.String(), " ")
}

func TestSpinnerCycles(t *testing.T) {
	s := newLineSpinner()
	first := s.Frame()
	for range s.frames {
		s.Advance()
	}
	if s.Frame() != first {
		t.Errorf("spinner did not wrap: %q vs %q", s.Frame(), first)
	}
}

func TestBufferLinesTrimsTrailingBlanks(t *testing.T) {
	buf := newBuffer(10, 2, tcell.StyleDefault)
	drawText(buf, 0, 0, "hi", tcell.StyleDefault)

	lines := bufferLines(buf)
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if lines[0] != "hi" || lines[1] != "" {
		t.Errorf("lines = %q", lines)
	}
}

func TestDataTableSortAndFilter(t *testing.T) {
	dt := newDataTable(1, 0, false)
	dt.setRows(table.Rows(testResult(), table.ViewFlat))

	dt.selectColumn(table.ColCode)
	if dt.rows[0].Label != "src/a.go" {
		t.Errorf("top row after code sort = %q, want src/a.go", dt.rows[0].Label)
	}

	dt.setFilter("src")
	if len(dt.rows) != 2 {
		t.Fatalf("filtered rows = %d, want 2", len(dt.rows))
	}
	// The active sort survives the filter.
	if dt.rows[0].Label != "src/a.go" {
		t.Errorf("top filtered row = %q, want src/a.go", dt.rows[0].Label)
	}

	dt.setFilter("")
	if len(dt.rows) != 3 {
		t.Errorf("unfiltered rows = %d, want 3", len(dt.rows))
	}
}

func TestDataTableModeSwitchRestrictsSort(t *testing.T) {
	res := testResult()
	dt := newDataTable(1, 0, false)
	dt.setRows(table.Rows(res, table.ViewFlat))
	dt.selectColumn(table.ColPath)

	dt.setMode(table.ViewByLanguage, table.Rows(res, table.ViewByLanguage))
	if dt.sort.Has(table.ColPath) {
		t.Error("path column survived the switch to the language view")
	}
	if col, _ := dt.sort.Active(); col != "" {
		t.Errorf("active sort after switch = %q, want none", col)
	}

	// Keys bound to absent columns are simply ignored.
	dt.selectColumn(table.ColPath)
	if col, _ := dt.sort.Active(); col != "" {
		t.Errorf("selecting an absent column activated %q", col)
	}

	dt.selectColumn(table.ColCode)
	if dt.rows[0].Label != "Go" {
		t.Errorf("top language by code = %q, want Go", dt.rows[0].Label)
	}
}

func TestDataTableScrollClamps(t *testing.T) {
	dt := newDataTable(1, 0, false)
	dt.setRows(table.Rows(testResult(), table.ViewFlat))
	dt.bodyRows = 2

	dt.scrollBy(100)
	if dt.scroll != 1 {
		t.Errorf("scroll = %d, want clamped to 1", dt.scroll)
	}
	dt.scrollBy(-100)
	if dt.scroll != 0 {
		t.Errorf("scroll = %d, want 0", dt.scroll)
	}
}

func TestDataTableHeaderHitTest(t *testing.T) {
	dt := newDataTable(1, 0, false)
	dt.setRows(table.Rows(testResult(), table.ViewFlat))
	dt.relayout(120)

	buf := newBuffer(120, 10, tcell.StyleDefault)
	dt.draw(buf, 0, 10, 120)

	col, ok := dt.columnAt(1, 0)
	if !ok || col != table.ColPath {
		t.Errorf("columnAt(1,0) = %q, %v, want path column", col, ok)
	}
	if _, ok := dt.columnAt(1, 5); ok {
		t.Error("hit test matched a body row")
	}
}

func TestSummaryBarDraw(t *testing.T) {
	res := testResult()
	sb := newSummaryBar()
	dt := newDataTable(1, 0, false)
	dt.setRows(table.Rows(res, table.ViewFlat))
	sb.setWidth(dt.relayout(120))

	buf := newBuffer(120, 1, tcell.StyleDefault)
	sb.draw(buf, 0, 120, res.Summary, dt.cols)

	line := rowText(buf, 0)
	if !strings.HasPrefix(line, "SUM:") {
		t.Errorf("summary = %q, want SUM: prefix", line)
	}
	for _, want := range []string{"3 files", "15", "20", "135", "170"} {
		if !strings.Contains(line, want) {
			t.Errorf("summary %q missing %q", line, want)
		}
	}
}

func TestOptionsBarFocusAndHitTest(t *testing.T) {
	o := newOptionsBar()
	for i := 0; i < optCount; i++ {
		if o.focus != i {
			t.Fatalf("focus = %d, want %d", o.focus, i)
		}
		o.cycleFocus()
	}
	if o.focus != optShowFiles {
		t.Errorf("focus did not wrap, got %d", o.focus)
	}

	buf := newBuffer(80, 1, tcell.StyleDefault)
	o.draw(buf, 0, 80)

	if slot, ok := o.itemAt(1, 0); !ok || slot != optShowFiles {
		t.Errorf("itemAt(1,0) = %d, %v, want first button", slot, ok)
	}
	if slot, ok := o.itemAt(79, 0); !ok || slot != optFilter {
		t.Errorf("itemAt(79,0) = %d, %v, want filter input", slot, ok)
	}
	if _, ok := o.itemAt(1, 3); ok {
		t.Error("hit test matched the wrong row")
	}
}

func writeClocStub(t *testing.T, output string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cloc")
	script := "#!/bin/sh\ncat <<'EOF'\n" + output + "\nEOF\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

const stubOutput = `{
	"header": {"cloc_version": "2.04", "elapsed_seconds": 0.12, "n_files": 2, "n_lines": 157},
	"src/a.go": {"blank": 5, "comment": 10, "code": 100, "language": "Go"},
	"src/b.py": {"blank": 8, "comment": 4, "code": 30, "language": "Python"},
	"SUM": {"blank": 13, "comment": 14, "code": 130, "nFiles": 2}
}`

func (a *ClocApp) currentPhase() phase {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.phase
}

func waitPhase(t *testing.T, a *ClocApp, want phase) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if a.currentPhase() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("phase = %v, want %v", a.currentPhase(), want)
}

func TestClocAppScanToTable(t *testing.T) {
	stub := writeClocStub(t, stubOutput)
	app := NewClocApp(".", cloc.Scanner{Base: stub, Timeout: 5 * time.Second}, Options{})
	defer app.Stop()

	done := make(chan error, 1)
	go func() { done <- app.Run() }()

	app.Resize(120, 30)
	waitPhase(t, app, phaseTable)

	var frame [][]Cell
	waitUntil(t, func() bool {
		frame = app.Render()
		return len(frame) > 0
	}, "resize to be applied")

	app.mu.RLock()
	col, ph := app.dt.sort.Active()
	app.mu.RUnlock()
	if col != table.ColTotal || ph != table.PhaseAscending {
		t.Errorf("default sort = %q/%v, want total ascending", col, ph)
	}
	header := rowText(frame, 0)
	if !strings.Contains(header, "CLOC v2.04") {
		t.Errorf("header = %q, want tool version", header)
	}
	var body string
	for y := range frame {
		body += rowText(frame, y) + "\n"
	}
	if !strings.Contains(body, "src/a.go") || !strings.Contains(body, "SUM:") {
		t.Error("rendered frame is missing the table or the summary row")
	}

	// Regroup by language via the keyboard.
	app.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone))
	waitUntil(t, func() bool {
		app.mu.RLock()
		defer app.mu.RUnlock()
		return app.dt.mode == table.ViewByLanguage
	}, "language grouping to apply")

	app.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not terminate after Stop")
	}
}

func TestClocAppScanFailure(t *testing.T) {
	app := NewClocApp(".", cloc.Scanner{Base: "cloctui-test-no-such-binary"}, Options{})
	defer app.Stop()

	go app.Run()
	app.Resize(80, 24)
	waitPhase(t, app, phaseError)

	var frame [][]Cell
	waitUntil(t, func() bool {
		frame = app.Render()
		return len(frame) > 0
	}, "resize to be applied")
	if !strings.Contains(rowText(frame, 0), "Scan failed") {
		t.Errorf("error screen = %q, want failure banner", rowText(frame, 0))
	}
}

func TestClocAppRecorderReceivesResult(t *testing.T) {
	stub := writeClocStub(t, stubOutput)
	got := make(chan string, 1)
	opts := Options{Recorder: func(target string, _ time.Time, res *stats.ScanResult) {
		if res != nil {
			got <- target
		}
	}}
	app := NewClocApp("/proj", cloc.Scanner{Base: stub, Timeout: 5 * time.Second}, opts)
	defer app.Stop()

	go app.Run()
	select {
	case target := <-got:
		if target != "/proj" {
			t.Errorf("recorded target = %q, want /proj", target)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("recorder was never called")
	}
}

func waitUntil(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", msg)
}
