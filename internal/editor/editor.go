package editor

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sergi/go-diff/diffmatchpatch"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"ved/internal/keys"
	"ved/internal/log"
	"ved/internal/tracing"
	"ved/internal/ui/help"
)

// FileChangedMsg reports that the opened file changed on disk. The cmd
// shell sends it into the program when the watcher fires.
type FileChangedMsg struct{}

// diskChangeMsg carries the computed on-disk change summary back into Update.
type diskChangeMsg struct {
	plus  int
	minus int
	err   error
}

// Config configures a new editor model.
type Config struct {
	// Content is the initial document text.
	Content string

	// FilePath is the path of the file being edited; empty for the
	// built-in default document.
	FilePath string

	// Offset and TopLine restore a remembered position. Offset is clamped
	// against the loaded content immediately; TopLine once the terminal
	// size is known.
	Offset  int
	TopLine int

	// MarkdownStyle selects the glamour style for the help view.
	MarkdownStyle string

	// Tracer records a span per input event; nil disables tracing.
	Tracer trace.Tracer

	// OnQuit receives the final cursor position when the user quits.
	OnQuit func(offset, topLine int)
}

// Model is the root editor state: one buffer, one cursor, the viewport and
// the mode machine, driven by the bubbletea runtime. All mutation happens
// in Update; View rebuilds the frame from scratch.
type Model struct {
	buffer   *Buffer
	cursor   Cursor
	viewport Viewport
	mode     Mode
	notice   string

	keymap keys.KeyMap
	help   help.Model

	filePath string
	baseline string

	restoreTop int
	sized      bool

	tracer trace.Tracer
	onQuit func(offset, topLine int)
}

// New creates an editor model over the given content.
func New(cfg Config) Model {
	b := NewBuffer(cfg.Content)

	var c Cursor
	c.SetOffset(cfg.Offset, b)

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}

	return Model{
		buffer:     b,
		cursor:     c,
		mode:       ModeNormal,
		keymap:     keys.DefaultKeyMap(),
		help:       help.New(cfg.MarkdownStyle),
		filePath:   cfg.FilePath,
		baseline:   cfg.Content,
		restoreTop: cfg.TopLine,
		tracer:     tracer,
		onQuit:     cfg.OnQuit,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.help.Init()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height
		if !m.sized {
			// First sizing: clamp the restored scroll position now that
			// the height of the visible band is known
			m.viewport.SetTopLine(m.restoreTop, m.cursor.Row(m.buffer))
			m.sized = true
		}
		m.help.SetSize(msg.Width, msg.Height)
		return m, nil

	case help.CloseMsg:
		return m, nil

	case FileChangedMsg:
		return m, readDiskChange(m.filePath, m.baseline)

	case diskChangeMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatWatcher, "failed to read changed file", msg.err, "path", m.filePath)
			return m, nil
		}
		m.notice = fmt.Sprintf("disk changed (+%d -%d)", msg.plus, msg.minus)
		log.Info(log.CatWatcher, "file changed on disk", "path", m.filePath, "plus", msg.plus, "minus", msg.minus)
		return m, nil

	case tea.KeyMsg:
		// Quit works everywhere, help view included
		if key.Matches(msg, m.keymap.Quit) {
			log.Info(log.CatEditor, "quit", "offset", m.cursor.Offset(), "top_line", m.viewport.TopLine)
			if m.onQuit != nil {
				m.onQuit(m.cursor.Offset(), m.viewport.TopLine)
			}
			return m, tea.Quit
		}

		if m.help.Visible() {
			var cmd tea.Cmd
			m.help, cmd = m.help.Update(msg)
			return m, cmd
		}

		return m.handleKey(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.help.Visible() {
		return m.help.View()
	}
	return m.renderFrame()
}

// handleKey dispatches one key event and records it as a span: mode, key
// and offset before dispatch, operation name and outcome after.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	_, span := m.tracer.Start(context.Background(), tracing.SpanPrefixInput+"input",
		trace.WithAttributes(
			attribute.String(tracing.AttrMode, m.mode.String()),
			attribute.String(tracing.AttrKey, msg.String()),
			attribute.Int(tracing.AttrOffsetBefore, m.cursor.Offset()),
		))

	next, cmd, op, outcome := m.dispatchKey(msg)

	span.SetName(tracing.SpanPrefixInput + op)
	span.SetAttributes(
		attribute.String(tracing.AttrOutcome, outcome),
		attribute.Int(tracing.AttrOffsetAfter, next.cursor.Offset()),
		attribute.Int(tracing.AttrRow, next.cursor.Row(next.buffer)),
		attribute.Int(tracing.AttrCol, next.cursor.Col(next.buffer)),
		attribute.Int(tracing.AttrTopLine, next.viewport.TopLine),
		attribute.Int(tracing.AttrBufferLen, next.buffer.Len()),
	)
	span.End()

	return next, cmd
}

// dispatchKey classifies one key event and applies it: graphic ASCII runes
// go to the mode handlers, every other key resolves identically in both
// modes. Exactly one state transition or one buffer/cursor operation
// happens per event. The previous notice is cleared first so notices stay
// transient.
func (m Model) dispatchKey(msg tea.KeyMsg) (Model, tea.Cmd, string, string) {
	m.notice = ""

	if r, ok := graphicRune(msg); ok {
		if m.mode == ModeNormal {
			return m.handleNormalRune(r)
		}
		return m.handleInsertRune(r)
	}

	switch {
	case key.Matches(msg, m.keymap.Escape):
		m.mode = ModeNormal
		return m, nil, "mode_normal", tracing.OutcomeApplied

	case key.Matches(msg, m.keymap.NextLine):
		res := m.cursor.MoveToNextLine(m.buffer, &m.viewport)
		return m.moveResult("next_line", res)

	case key.Matches(msg, m.keymap.Right):
		res := m.cursor.MoveRight(m.buffer)
		return m.moveResult("move_right", res)

	case key.Matches(msg, m.keymap.Left):
		res := m.cursor.MoveLeft(m.buffer)
		return m.moveResult("move_left", res)

	case key.Matches(msg, m.keymap.Down):
		res := m.cursor.MoveDown(m.buffer, &m.viewport)
		return m.moveResult("move_down", res)

	case key.Matches(msg, m.keymap.Up):
		res := m.cursor.MoveUp(m.buffer, &m.viewport)
		return m.moveResult("move_up", res)

	case key.Matches(msg, m.keymap.Delete):
		return m.deleteResult()
	}

	// Unmapped control key (tab, function keys, page up/down, ...)
	m.notice = fmt.Sprintf("not supported: %s", msg.String())
	log.Warn(log.CatEditor, "unhandled key", "key", msg.String(), "mode", m.mode.String())
	return m, nil, "unsupported", tracing.OutcomeUnsupported
}

// handleNormalRune runs the Normal mode command set: hjkl mirror the
// arrows, x mirrors delete, i enters Insert, ? opens the help view. Any
// other printable is reported as unsupported rather than silently ignored.
func (m Model) handleNormalRune(r rune) (Model, tea.Cmd, string, string) {
	switch r {
	case 'i':
		m.mode = ModeInsert
		log.Debug(log.CatEditor, "entering insert mode", "offset", m.cursor.Offset())
		return m, nil, "mode_insert", tracing.OutcomeApplied
	case 'h':
		res := m.cursor.MoveLeft(m.buffer)
		return m.moveResult("move_left", res)
	case 'j':
		res := m.cursor.MoveDown(m.buffer, &m.viewport)
		return m.moveResult("move_down", res)
	case 'k':
		res := m.cursor.MoveUp(m.buffer, &m.viewport)
		return m.moveResult("move_up", res)
	case 'l':
		res := m.cursor.MoveRight(m.buffer)
		return m.moveResult("move_right", res)
	case 'x':
		return m.deleteResult()
	case '?':
		m.help.Show()
		return m, nil, "help", tracing.OutcomeApplied
	}

	m.notice = fmt.Sprintf("not supported: %c", r)
	log.Warn(log.CatEditor, "unhandled command", "key", string(r), "mode", m.mode.String())
	return m, nil, "unsupported", tracing.OutcomeUnsupported
}

// handleInsertRune inserts the rune at the cursor. The classifier already
// limited r to graphic ASCII. The line may grow past the viewport width;
// truncation happens at render time only.
func (m Model) handleInsertRune(r rune) (Model, tea.Cmd, string, string) {
	m.cursor.InsertRune(m.buffer, r)
	return m, nil, "insert", tracing.OutcomeApplied
}

// moveResult folds a movement outcome into the model. Blocked movement
// surfaces the transient notice; applied movement stays quiet.
func (m Model) moveResult(op string, res Result) (Model, tea.Cmd, string, string) {
	if res == Blocked {
		m.notice = "can't move further"
		return m, nil, op, tracing.OutcomeBlocked
	}
	return m, nil, op, tracing.OutcomeApplied
}

// deleteResult applies delete at the cursor. The delete boundary is a
// silent no-op: the model contract never signals it to the user.
func (m Model) deleteResult() (Model, tea.Cmd, string, string) {
	outcome := tracing.OutcomeApplied
	if m.cursor.DeleteRune(m.buffer) == Blocked {
		outcome = tracing.OutcomeBlocked
	}
	return m, nil, "delete", outcome
}

// graphicRune reports whether the key event is a single graphic ASCII rune
// (alphanumeric or punctuation, '!' through '~'). Space is deliberately
// not graphic: it navigates right in both modes.
func graphicRune(msg tea.KeyMsg) (rune, bool) {
	if msg.Type != tea.KeyRunes || msg.Alt || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '!' || r > '~' {
		return 0, false
	}
	return r, true
}

// readDiskChange reads the opened file and summarizes how it differs from
// the content loaded at startup. The buffer is never reloaded; the summary
// only feeds the notice.
func readDiskChange(path, baseline string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return diskChangeMsg{err: err}
		}
		plus, minus := diffSummary(baseline, string(data))
		return diskChangeMsg{plus: plus, minus: minus}
	}
}

// diffSummary counts runes added and removed between two texts.
func diffSummary(before, after string) (plus, minus int) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			plus += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			minus += utf8.RuneCountInString(d.Text)
		}
	}
	return plus, minus
}
