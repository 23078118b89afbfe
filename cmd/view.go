package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/secam/internal/core/domain"
	"github.com/kamal-hamza/secam/internal/core/services"
	"github.com/kamal-hamza/secam/pkg/ui"
)

var (
	viewFrom string
	viewTo   string
)

var viewCmd = &cobra.Command{
	Use:   "view [id]",
	Short: "Page through captures",
	Long: `Page through the timeline one capture at a time.

The pager starts at the given capture (or the newest) and walks the
listing filtered by --from/--to.

Keys:
  ←/h, →/l    Previous / next capture
  g, G        First / last capture
  o, enter    Open in the image viewer
  s           Send through the relay
  ?           Toggle help
  q           Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().StringVar(&viewFrom, "from", "", "First day to include (YYYY-MM-DD)")
	viewCmd.Flags().StringVar(&viewTo, "to", "", "Last day to include (YYYY-MM-DD)")
}

func runView(cmd *cobra.Command, args []string) error {
	start, end, err := parseDateFlags(viewFrom, viewTo)
	if err != nil {
		return reportError("Invalid date", err)
	}

	ctx := getContext()
	listing, err := photoRepo.List(ctx)
	if err != nil {
		return reportError("Failed to list captures", err)
	}

	selection := services.FilterByDate(listing, start, end)
	var startID string
	if len(args) > 0 {
		startID = args[0]
	}

	seq, err := services.ResolveSequence(listing, domain.IDs(selection), startID)
	if err != nil {
		fmt.Println(ui.FormatWarning("No captures to show"))
		return nil
	}

	p := tea.NewProgram(newPagerModel(ctx, seq), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running pager: %w", err)
	}
	return nil
}

type pagerKeyMap struct {
	Prev  key.Binding
	Next  key.Binding
	First key.Binding
	Last  key.Binding
	Open  key.Binding
	Send  key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func (k pagerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Open, k.Send, k.Help, k.Quit}
}

func (k pagerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Last},
		{k.Open, k.Send},
		{k.Help, k.Quit},
	}
}

var pagerKeys = pagerKeyMap{
	Prev: key.NewBinding(
		key.WithKeys("left", "h", "k", "up"),
		key.WithHelp("←/h", "previous"),
	),
	Next: key.NewBinding(
		key.WithKeys("right", "l", "j", "down", " "),
		key.WithHelp("→/l", "next"),
	),
	First: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "newest"),
	),
	Last: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "oldest"),
	),
	Open: key.NewBinding(
		key.WithKeys("o", "enter"),
		key.WithHelp("o", "open"),
	),
	Send: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "send"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

type statusMsg struct {
	message string
	style   lipgloss.Style
}

// sendFunc and openFunc are swapped out in tests
type (
	sendFunc func(context.Context, domain.PhotoRecord) (string, error)
	openFunc func(context.Context, domain.PhotoRecord) error
)

type pagerModel struct {
	ctx     context.Context
	photos  []domain.PhotoRecord
	index   int
	keys    pagerKeyMap
	help    help.Model
	width   int
	sending bool
	status  string
	style   lipgloss.Style
	send    sendFunc
	open    openFunc
}

func newPagerModel(ctx context.Context, seq services.Sequence) pagerModel {
	m := pagerModel{
		ctx:    ctx,
		photos: seq.Photos,
		index:  seq.StartIndex,
		keys:   pagerKeys,
		help:   help.New(),
		open: func(ctx context.Context, p domain.PhotoRecord) error {
			return fileOpener.Open(ctx, p.Path)
		},
	}
	if dispatchService != nil {
		m.send = func(ctx context.Context, p domain.PhotoRecord) (string, error) {
			resp, err := dispatchService.Execute(ctx, services.DispatchRequest{Photo: p})
			if err != nil {
				return "", err
			}
			return resp.MessageID, nil
		}
	}
	return m
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) current() domain.PhotoRecord {
	return m.photos[m.index]
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case statusMsg:
		m.sending = false
		m.status = msg.message
		m.style = msg.style
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m pagerModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Prev):
		if m.index > 0 {
			m.index--
			m.status = ""
		}

	case key.Matches(msg, m.keys.Next):
		if m.index < len(m.photos)-1 {
			m.index++
			m.status = ""
		}

	case key.Matches(msg, m.keys.First):
		m.index = 0
		m.status = ""

	case key.Matches(msg, m.keys.Last):
		m.index = len(m.photos) - 1
		m.status = ""

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Open):
		return m, m.openCurrent()

	case key.Matches(msg, m.keys.Send):
		if m.send == nil {
			m.status = "Relay not configured"
			m.style = ui.StyleWarning
			return m, nil
		}
		if m.sending {
			return m, nil
		}
		m.sending = true
		m.status = "Sending " + m.current().ID + "..."
		m.style = ui.StyleInfo
		return m, m.sendCurrent()
	}
	return m, nil
}

func (m pagerModel) sendCurrent() tea.Cmd {
	photo := m.current()
	send := m.send
	ctx := m.ctx
	return func() tea.Msg {
		id, err := send(ctx, photo)
		if err != nil {
			return statusMsg{message: "Send failed: " + err.Error(), style: ui.StyleError}
		}
		return statusMsg{message: ui.IconMail + " Sent " + photo.ID + " (" + id + ")", style: ui.StyleSuccess}
	}
}

func (m pagerModel) openCurrent() tea.Cmd {
	photo := m.current()
	open := m.open
	ctx := m.ctx
	return func() tea.Msg {
		if err := open(ctx, photo); err != nil {
			return statusMsg{message: "Open failed: " + err.Error(), style: ui.StyleError}
		}
		return statusMsg{message: "Opened " + photo.ID, style: ui.StyleMuted}
	}
}

func (m pagerModel) View() string {
	photo := m.current()

	var b strings.Builder
	b.WriteString(ui.StyleHeader.Render(fmt.Sprintf("%s  %d / %d", ui.IconCamera, m.index+1, len(m.photos))))
	b.WriteString("\n\n")

	body := ui.RenderKeyValues([][2]string{
		{"ID", photo.ID},
		{"Captured", photo.GetDisplayDate(displayLayout())},
		{"Age", ageString(photo, time.Now())},
		{"Reference", photo.Path},
	})
	b.WriteString(ui.StyleFrame.Render(strings.TrimRight(body, "\n")))
	b.WriteString("\n\n")

	if m.status != "" {
		b.WriteString(m.style.Render(m.status))
		b.WriteString("\n\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// ageString describes how long ago the capture was taken
func ageString(p domain.PhotoRecord, now time.Time) string {
	if p.CreatedAt == 0 {
		return "-"
	}
	d := now.Sub(p.Time())
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
