package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/pkg/browser"
	"github.com/robby/mosaic/internal/domain"
	"github.com/robby/mosaic/internal/gh"
	"github.com/robby/mosaic/internal/projects"
)

const (
	lookups      = 3
	defaultWidth = 80
	barWidth     = 20
	maxLanguages = 8
)

// Client is the subset of *gh.Client the inspect view needs.
type Client interface {
	GetRepository(ctx context.Context, owner, name string) (*domain.Repository, error)
	GetLanguages(ctx context.Context, owner, repo string) (domain.Languages, error)
	projects.ContentGetter
}

// InspectModel shows a summary of one repository: its metadata, language
// breakdown and mosaic.toml.
type InspectModel struct {
	ctx    context.Context
	client Client
	owner  string
	name   string

	keymap  KeyMap
	help    HelpModel
	spinner spinner.Model
	openURL func(string) error

	pending   int
	repo      *domain.Repository
	repoErr   error
	languages domain.Languages
	langErr   error
	config    *projects.Config
	configErr error

	showHelp   bool
	errorToast string
	width      int
	height     int
}

// NewInspectModel creates an inspect view for owner/name.
func NewInspectModel(ctx context.Context, client Client, owner, name string) InspectModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return InspectModel{
		ctx:     ctx,
		client:  client,
		owner:   owner,
		name:    name,
		keymap:  DefaultKeyMap(),
		help:    NewHelpModel(DefaultKeyMap()),
		spinner: sp,
		openURL: browser.OpenURL,
		pending: lookups,
		width:   defaultWidth,
	}
}

// Init starts the spinner and all loads.
func (m InspectModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.WindowSize(), m.load())
}

// load fires the three lookups concurrently. Each reports back with its
// own message so one failure never hides the others.
func (m InspectModel) load() tea.Cmd {
	ctx, client, owner, name := m.ctx, m.client, m.owner, m.name
	return tea.Batch(
		func() tea.Msg {
			repo, err := client.GetRepository(ctx, owner, name)
			return repositoryLoadedMsg{repo: repo, err: err}
		},
		func() tea.Msg {
			langs, err := client.GetLanguages(ctx, owner, name)
			return languagesLoadedMsg{languages: langs, err: err}
		},
		func() tea.Msg {
			cfg, err := projects.LoadRemote(ctx, client, owner, name, "")
			return configLoadedMsg{config: cfg, err: err}
		},
	)
}

// Loading reports whether any lookup is still in flight.
func (m InspectModel) Loading() bool {
	return m.pending > 0
}

// Update handles messages.
func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case repositoryLoadedMsg:
		m.pending--
		m.repo, m.repoErr = msg.repo, msg.err
		return m, nil

	case languagesLoadedMsg:
		m.pending--
		m.languages, m.langErr = msg.languages, msg.err
		return m, nil

	case configLoadedMsg:
		m.pending--
		m.config, m.configErr = msg.config, msg.err
		return m, nil

	case openedMsg:
		if msg.err != nil {
			m.errorToast = fmt.Sprintf("Open failed: %v", msg.err)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

func (m InspectModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keymap.Open):
		if m.repo == nil || m.repo.URL == "" {
			return m, nil
		}
		url, open := m.repo.URL, m.openURL
		return m, func() tea.Msg {
			return openedMsg{err: open(url)}
		}

	case key.Matches(msg, m.keymap.Refresh):
		if m.Loading() {
			return m, nil
		}
		m.pending = lookups
		m.errorToast = ""
		return m, m.load()
	}

	return m, nil
}

// View renders the summary.
func (m InspectModel) View() string {
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	if m.showHelp {
		return m.help.View(width)
	}

	if m.repo == nil && m.repoErr == nil {
		return PromptStyle.Render(m.spinner.View() + " Loading " + m.owner + "/" + m.name + "...")
	}

	var sections []string
	if m.repoErr != nil {
		sections = append(sections,
			TitleStyle.Render(m.owner+"/"+m.name),
			ErrorStyle.Render(wordwrap.String(m.repoErr.Error(), width)),
		)
	} else {
		sections = append(sections, m.renderRepository(width))
	}

	sections = append(sections, "", m.renderLanguages(width), "", m.renderConfig(width))

	if m.errorToast != "" {
		sections = append(sections, "", ErrorStyle.Render(m.errorToast))
	}
	footer := m.help.ShortView(width)
	if m.Loading() {
		footer = m.spinner.View() + " " + footer
	}
	sections = append(sections, footer)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m InspectModel) renderRepository(width int) string {
	r := m.repo
	var b strings.Builder

	title := r.NameWithOwner
	var flags []string
	if r.IsPrivate {
		flags = append(flags, "private")
	}
	if r.IsFork {
		flags = append(flags, "fork")
	}
	if r.IsArchived {
		flags = append(flags, "archived")
	}
	if len(flags) > 0 {
		title += " " + MutedStyle.Render("("+strings.Join(flags, ", ")+")")
	}
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n")

	if r.Description != "" {
		b.WriteString(NormalItemStyle.Render(wordwrap.String(r.Description, width)))
		b.WriteString("\n")
	}

	stats := fmt.Sprintf("★ %d  ⑂ %d", r.Stars, r.Forks)
	if r.Language != nil {
		stats += "  " + r.Language.Name
	}
	if r.License != "" {
		stats += "  " + r.License
	}
	b.WriteString(MutedStyle.Render(stats))

	if len(r.Topics) > 0 {
		b.WriteString("\n")
		b.WriteString(MutedStyle.Render(wordwrap.String(strings.Join(r.Topics, " · "), width)))
	}
	if r.HomepageURL != "" {
		b.WriteString("\n")
		b.WriteString(NormalItemStyle.Render(r.HomepageURL))
	}
	return b.String()
}

func (m InspectModel) renderLanguages(width int) string {
	var b strings.Builder
	b.WriteString(SectionStyle.Render("Languages"))
	b.WriteString("\n")

	switch {
	case m.langErr != nil:
		b.WriteString(ErrorStyle.Render(wordwrap.String(m.langErr.Error(), width)))
		return b.String()
	case m.languages == nil:
		b.WriteString(MutedStyle.Render("loading..."))
		return b.String()
	case len(m.languages) == 0:
		b.WriteString(MutedStyle.Render("none detected"))
		return b.String()
	}

	shares := m.languages.Shares()
	nameWidth := 0
	for i, s := range shares {
		if i == maxLanguages {
			break
		}
		nameWidth = max(nameWidth, lipgloss.Width(s.Name))
	}

	lines := make([]string, 0, maxLanguages+1)
	for i, s := range shares {
		if i == maxLanguages {
			lines = append(lines, MutedStyle.Render(fmt.Sprintf("and %d more", len(shares)-maxLanguages)))
			break
		}
		filled := int(s.Percent / 100 * barWidth)
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		lines = append(lines, fmt.Sprintf("%-*s %s %5.1f%%", nameWidth, s.Name, bar, s.Percent))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

func (m InspectModel) renderConfig(width int) string {
	var b strings.Builder
	b.WriteString(SectionStyle.Render(projects.DefaultConfigPath))
	b.WriteString("\n")

	switch {
	case m.configErr != nil:
		if isMissing(m.configErr) {
			b.WriteString(MutedStyle.Render("not present"))
		} else {
			b.WriteString(ErrorStyle.Render(wordwrap.String(m.configErr.Error(), width)))
		}
		return b.String()
	case m.config == nil:
		b.WriteString(MutedStyle.Render("loading..."))
		return b.String()
	}

	cfg := m.config
	var lines []string
	if cfg.Project != nil {
		lines = append(lines, "project  "+cfg.Project.Name)
	}
	if cfg.Readme != nil {
		lines = append(lines, "readme   "+cfg.Readme.Path)
	}
	if cfg.Website != nil {
		lines = append(lines, "website  "+cfg.Website.URL)
	}
	for _, p := range cfg.Packages {
		lines = append(lines, fmt.Sprintf("package  %s (%s)", p.Name, p.Type))
	}
	if len(lines) == 0 {
		lines = append(lines, "empty")
	}
	b.WriteString(NormalItemStyle.Render(strings.Join(lines, "\n")))
	return b.String()
}

// isMissing reports whether err means the file does not exist.
func isMissing(err error) bool {
	var ghErr *gh.Error
	return errors.As(err, &ghErr) && ghErr.Status == http.StatusNotFound
}
