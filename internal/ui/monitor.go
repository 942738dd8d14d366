package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/overdrivekit/overdrive/internal/vehicle"
	"github.com/overdrivekit/overdrive/internal/wire"
)

// maxEntries is how many recent frames the monitor keeps on screen.
const maxEntries = 12

// Frame is one line of monitor input: raw vehicle bytes, or the error
// from parsing that line.
type Frame struct {
	Line int
	Data []byte
	Err  error
}

// FrameMsg delivers a Frame to the monitor.
type FrameMsg Frame

type sourceDoneMsg struct{}

type monitorEntry struct {
	at      time.Time
	line    int
	title   string
	summary string
	failed  bool
}

type monitorKeyMap struct {
	Clear key.Binding
	Quit  key.Binding
}

func (k monitorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Clear, k.Quit}
}

func (k monitorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Clear, k.Quit}}
}

// MonitorModel is a Bubble Tea model that feeds frames into a vehicle
// and shows the recent messages alongside the vehicle's state.
type MonitorModel struct {
	Vehicle *vehicle.Vehicle
	Order   wire.Endian

	frames     <-chan Frame
	exitOnDone bool

	spinner spinner.Model
	help    help.Model
	keys    monitorKeyMap

	entries []monitorEntry
	Frames  int
	Errors  int
	Done    bool
	Width   int
}

// NewMonitorModel creates a monitor reading from frames. The model stops
// waiting for input once frames is closed.
func NewMonitorModel(v *vehicle.Vehicle, order wire.Endian, frames <-chan Frame) MonitorModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return MonitorModel{
		Vehicle: v,
		Order:   order,
		frames:  frames,
		spinner: s,
		help:    help.New(),
		keys: monitorKeyMap{
			Clear: key.NewBinding(
				key.WithKeys("c"),
				key.WithHelp("c", "clear"),
			),
			Quit: key.NewBinding(
				key.WithKeys("q", "esc", "ctrl+c"),
				key.WithHelp("q", "quit"),
			),
		},
		Width: GetTerminalWidth(),
	}
}

// waitForFrame reads the next frame from the source
func waitForFrame(frames <-chan Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-frames
		if !ok {
			return sourceDoneMsg{}
		}
		return FrameMsg(f)
	}
}

// Init implements tea.Model
func (m MonitorModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForFrame(m.frames))
}

// Update implements tea.Model
func (m MonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = clampWidth(msg.Width)
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Clear):
			m.entries = nil
		}
		return m, nil

	case FrameMsg:
		m.handleFrame(Frame(msg))
		return m, waitForFrame(m.frames)

	case sourceDoneMsg:
		m.Done = true
		if m.exitOnDone {
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if m.Done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *MonitorModel) handleFrame(f Frame) {
	m.Frames++
	entry := monitorEntry{at: time.Now(), line: f.Line}

	if f.Err != nil {
		m.Errors++
		entry.title = "invalid input"
		entry.summary = f.Err.Error()
		entry.failed = true
		m.push(entry)
		return
	}

	msg, err := m.Vehicle.Handle(f.Data, m.Order)
	if err != nil {
		m.Errors++
		entry.title = "decode failed"
		entry.summary = err.Error()
		entry.failed = true
		m.push(entry)
		return
	}

	entry.title = msg.Type().String()
	entry.summary = summarize(MessageFields(msg)[2:])
	m.push(entry)
}

func (m *MonitorModel) push(e monitorEntry) {
	m.entries = append(m.entries, e)
	if len(m.entries) > maxEntries {
		m.entries = m.entries[len(m.entries)-maxEntries:]
	}
}

func summarize(fields []Field) string {
	parts := make([]string, 0, len(fields))
	for _, fl := range fields {
		parts = append(parts, strings.ToLower(fl.Key)+"="+fl.Value)
	}
	return strings.Join(parts, " ")
}

// View implements tea.Model
func (m MonitorModel) View() string {
	header := NewHeader("Monitor", "overdrive monitor", map[string]string{
		"Byte order": m.Order.String(),
		"Vehicle":    m.Vehicle.Name(),
	}).SetWidth(m.Width).Render()

	status := fmt.Sprintf("%s Listening", m.spinner.View())
	if m.Done {
		status = "  Input finished"
	}
	status = StatusStyle.Render(fmt.Sprintf("%s  %d frames, %d errors", status, m.Frames, m.Errors))

	lines := make([]string, 0, len(m.entries))
	for _, e := range m.entries {
		marker := lipgloss.NewStyle().Foreground(SuccessColor).Render(InMarker)
		title := MessageTypeStyle.Render(e.title)
		if e.failed {
			marker = lipgloss.NewStyle().Foreground(ErrorColor).Render(FailureMarker)
			title = ErrorMessageStyle.Render(e.title)
		}
		lines = append(lines, fmt.Sprintf(" %s %s %4d  %s  %s",
			marker, HexStyle.Render(e.at.Format("15:04:05")), e.line, title, e.summary))
	}
	if len(lines) == 0 {
		lines = append(lines, HexStyle.Render("  waiting for frames..."))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		status,
		"",
		strings.Join(lines, "\n"),
		"",
		RenderState(m.Vehicle.Snapshot(), m.Width),
		m.help.View(m.keys),
	)
}

// ReadHexFrames reads one hex encoded frame per line from r and sends it
// on out. Blank lines and lines starting with # are skipped; lines that
// do not parse are sent with Err set. out is closed on return.
func ReadHexFrames(ctx context.Context, r io.Reader, out chan<- Frame) error {
	defer close(out)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		f := Frame{Line: line}
		f.Data, f.Err = ParseHex(text)

		select {
		case out <- f:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return scanner.Err()
}

// RunMonitor runs the monitor over hex frames read from r. When r is
// stdin the keyboard is disabled and the monitor exits at end of input.
func RunMonitor(ctx context.Context, r io.Reader, v *vehicle.Vehicle, order wire.Endian) (MonitorModel, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	frames := make(chan Frame)
	readErr := make(chan error, 1)
	go func() {
		readErr <- ReadHexFrames(ctx, r, frames)
	}()

	model := NewMonitorModel(v, order, frames)
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if f, ok := r.(*os.File); ok && f == os.Stdin {
		model.exitOnDone = true
		opts = append(opts, tea.WithInput(nil))
	}

	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil && ctx.Err() == nil {
		return model, fmt.Errorf("monitor: %w", err)
	}
	if fm, ok := final.(MonitorModel); ok {
		model = fm
	}

	// A reader still blocked on stdin is left behind.
	cancel()
	select {
	case err := <-readErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			return model, fmt.Errorf("read frames: %w", err)
		}
	default:
	}
	return model, nil
}
