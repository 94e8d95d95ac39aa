package germinalgtk

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/creack/pty"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/phroun/germinal"
	"github.com/phroun/purfecterm"
	purfectermgtk "github.com/phroun/purfecterm/gtk"
)

// Left padding of the widget's text area, in pixels
const terminalLeftPadding = 8

// Options configures terminal creation
type Options struct {
	Cols           int                    // Terminal width in columns (default: 80)
	Rows           int                    // Terminal height in rows (default: 24)
	ScrollbackSize int                    // Scrollback lines; 0 disables, negative is unlimited
	Scheme         purfecterm.ColorScheme // Color scheme (default: DefaultColorScheme())
	WorkingDir     string                 // Child working directory (default: current dir)
	Logger         *slog.Logger
}

// unlimitedScrollback stands in for "no limit"
const unlimitedScrollback = 1 << 20

// Terminal is the terminal widget plus the child process on its PTY
type Terminal struct {
	mu sync.Mutex

	widget  *purfectermgtk.Widget
	pty     *os.File
	cmd     *exec.Cmd
	options Options
	log     *slog.Logger

	// Cell size in pixels for the current font
	charWidth  int
	charHeight int

	stripBold   atomic.Bool
	audibleBell atomic.Bool

	running bool
	done    chan struct{}
	onExit  func(code int)
}

// New creates a terminal widget. The child is started with Spawn.
func New(opts Options) (*Terminal, error) {
	if opts.Cols <= 0 {
		opts.Cols = 80
	}
	if opts.Rows <= 0 {
		opts.Rows = 24
	}
	if opts.WorkingDir == "" {
		opts.WorkingDir, _ = os.Getwd()
	}
	if opts.Scheme.DarkForeground == (purfecterm.Color{}) {
		opts.Scheme = purfecterm.DefaultColorScheme()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	capacity := opts.ScrollbackSize
	if capacity < 0 {
		capacity = unlimitedScrollback
	}
	widget, err := purfectermgtk.NewWidget(opts.Cols, opts.Rows, capacity)
	if err != nil {
		return nil, fmt.Errorf("creating terminal widget: %w", err)
	}
	widget.SetColorScheme(opts.Scheme)

	t := &Terminal{
		widget:     widget,
		options:    opts,
		log:        opts.Logger,
		charWidth:  10,
		charHeight: 20,
		done:       make(chan struct{}),
	}
	t.SetScrollback(opts.ScrollbackSize)

	widget.SetInputCallback(func(data []byte) {
		t.mu.Lock()
		f := t.pty
		t.mu.Unlock()
		if f != nil {
			f.Write(data)
		}
	})

	widget.SetResizeCallback(func(cols, rows int) {
		t.mu.Lock()
		f := t.pty
		t.mu.Unlock()
		if f != nil {
			pty.Setsize(f, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
		}
	})

	return t, nil
}

// Widget returns the GTK box containing the terminal
func (t *Terminal) Widget() *gtk.Box {
	return t.widget.Box()
}

// DrawingArea returns the widget's text area, which receives input events
func (t *Terminal) DrawingArea() *gtk.DrawingArea {
	return t.widget.DrawingArea()
}

// Buffer returns the underlying terminal buffer
func (t *Terminal) Buffer() *purfecterm.Buffer {
	return t.widget.Buffer()
}

// SetOnExit sets the function called on the GTK main loop when the child
// exits
func (t *Terminal) SetOnExit(fn func(code int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onExit = fn
}

// Spawn starts argv on a new PTY sized to the widget, with env as its
// environment.
func (t *Terminal) Spawn(argv []string, env []string) error {
	if len(argv) == 0 {
		return germinal.ErrEmptyCommand
	}

	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return errors.New("terminal already has a child")
	}
	t.done = make(chan struct{})
	t.mu.Unlock()

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = t.options.WorkingDir
	cmd.Env = env

	cols, rows := t.widget.GetSize()
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: uint16(cols), Rows: uint16(rows)})
	if err != nil {
		return fmt.Errorf("spawning %s: %w", argv[0], err)
	}

	t.mu.Lock()
	t.pty = f
	t.cmd = cmd
	t.running = true
	t.mu.Unlock()

	go t.readLoop(f)
	go t.wait(cmd)
	return nil
}

func (t *Terminal) readLoop(f *os.File) {
	var filter germinal.OutputFilter
	buf := make([]byte, 4096)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			filter.StripBold = t.stripBold.Load()
			out, bells := filter.Filter(buf[:n])
			if len(out) > 0 {
				t.widget.Feed(out)
			}
			if bells > 0 && t.audibleBell.Load() {
				glib.IdleAdd(beep)
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				t.log.Debug("pty read ended", "err", err)
			}
			return
		}
	}
}

func (t *Terminal) wait(cmd *exec.Cmd) {
	code := 0
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		} else {
			code = -1
		}
	}

	t.mu.Lock()
	t.running = false
	onExit := t.onExit
	t.mu.Unlock()
	close(t.done)

	if onExit != nil {
		glib.IdleAdd(func() bool {
			onExit(code)
			return false
		})
	}
}

func beep() bool {
	if display, err := gdk.DisplayGetDefault(); err == nil {
		display.Beep()
	}
	return false
}

// Close kills the child and closes the PTY
func (t *Terminal) Close() error {
	t.mu.Lock()
	f := t.pty
	cmd := t.cmd
	t.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		cmd.Process.Kill()
	}
	if f != nil {
		return f.Close()
	}
	return nil
}

// Wait waits for the child to exit
func (t *Terminal) Wait() {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	<-done
}

// IsRunning returns true if a child is running
func (t *Terminal) IsRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// SetScrollback applies the scrollback-lines setting. The capacity is fixed
// when the widget is created; later changes only switch scrollback on and
// off.
func (t *Terminal) SetScrollback(lines int) {
	t.widget.Buffer().SetScrollbackDisabled(lines == 0)
}

// SetBold enables or suppresses bold text
func (t *Terminal) SetBold(enabled bool) {
	t.stripBold.Store(!enabled)
}

// SetAudibleBell enables or disables beeping on BEL
func (t *Terminal) SetAudibleBell(enabled bool) {
	t.audibleBell.Store(enabled)
}

// SetColorScheme sets the terminal color scheme
func (t *Terminal) SetColorScheme(scheme purfecterm.ColorScheme) {
	t.widget.SetColorScheme(scheme)
}

// ApplyFont sets the terminal font
func (t *Terminal) ApplyFont(f germinal.Font) {
	size := f.Points()
	w, h := cellMetrics(f.Family, size)
	t.mu.Lock()
	if w > 0 {
		t.charWidth = w
	}
	if h > 0 {
		t.charHeight = h
	}
	t.mu.Unlock()
	t.widget.SetFont(f.Family, size)
}

// CellAt maps a position in the text area to a screen cell, following the
// widget's layout: doubled lines draw every cell twice as wide and flex
// cells carry their own width.
func (t *Terminal) CellAt(x, y float64) (col, row int) {
	buf := t.widget.Buffer()
	t.mu.Lock()
	cw := float64(t.charWidth) * buf.GetHorizontalScale()
	ch := int(float64(t.charHeight) * buf.GetVerticalScale())
	t.mu.Unlock()
	if ch < 1 {
		ch = 1
	}

	cols, rows := buf.GetSize()
	row = clamp(int(y)/ch, 0, rows-1)
	if buf.GetVisibleLineAttribute(row) != purfecterm.LineAttrNormal {
		cw *= 2
	}

	widths := make([]float64, cols)
	for i := range widths {
		widths[i] = 1
		if cell := buf.GetVisibleCell(i, row); cell.FlexWidth && cell.CellWidth > 0 {
			widths[i] = cell.CellWidth
		}
	}
	return columnAt(x-terminalLeftPadding, cw, widths), row
}

// columnAt returns the column containing x, given each column's width in
// cells and the pixel width of one cell. Positions left of the text are in
// the first column, positions past the end in the last.
func columnAt(x, cellWidth float64, widths []float64) int {
	if len(widths) == 0 || x < 0 {
		return 0
	}
	edge := 0.0
	for col, w := range widths {
		edge += w * cellWidth
		if x < edge {
			return col
		}
	}
	return len(widths) - 1
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// LineAt returns the visible text of a screen row, one rune per column
func (t *Terminal) LineAt(row int) []rune {
	buf := t.widget.Buffer()
	cols, _ := buf.GetSize()
	line := make([]rune, cols)
	for col := range line {
		r := buf.GetVisibleCell(col, row).Char
		if r == 0 {
			r = ' '
		}
		line[col] = r
	}
	return line
}

// Copy copies the selection to the clipboard
func (t *Terminal) Copy() {
	t.widget.CopySelection()
}

// Paste sends the clipboard to the child
func (t *Terminal) Paste() {
	t.widget.PasteClipboard()
}

// Select selects columns [start, end) of a screen row
func (t *Terminal) Select(row, start, end int) {
	buf := t.widget.Buffer()
	offset := buf.GetHorizOffset()
	buf.StartSelection(start+offset, row)
	buf.UpdateSelection(end-1+offset, row)
	buf.EndSelection()
}

// SetClipboards puts text on the clipboard and the primary selection
func (t *Terminal) SetClipboards(text string) {
	for _, sel := range []gdk.Atom{gdk.SELECTION_CLIPBOARD, gdk.SELECTION_PRIMARY} {
		if cb, err := gtk.ClipboardGet(sel); err == nil {
			cb.SetText(text)
		}
	}
}
