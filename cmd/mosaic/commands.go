package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pkg/browser"
	"github.com/robby/mosaic/internal/domain"
	"github.com/robby/mosaic/internal/gh"
	"github.com/robby/mosaic/internal/tui"
	"github.com/spf13/cobra"
)

const timeFormat = "2006-01-02 15:04"

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))

func (a *app) newEventsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "events <username>",
		Short: "List a user's recent public events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			events, err := withRetry(cmd.Context(), a, func() ([]domain.Event, error) {
				return client.GetUserEvents(cmd.Context(), args[0])
			})
			if err != nil {
				return err
			}
			a.logger.Debug("Fetched events", "user", args[0], "count", len(events))

			if a.jsonOut {
				return a.printJSON(events)
			}
			if len(events) == 0 {
				fmt.Fprintf(a.out, "No public events for %s\n", args[0])
				return nil
			}
			rows := make([][]string, 0, len(events))
			for _, e := range events {
				rows = append(rows, []string{e.CreatedAt.Local().Format(timeFormat), e.Type, e.Repo.Name})
			}
			a.printTable([]string{"WHEN", "TYPE", "REPOSITORY"}, rows)
			return nil
		},
	}
}

func (a *app) newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages <owner/repo>",
		Short: "Show a repository's language breakdown",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := splitRepo(args[0])
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			langs, err := withRetry(cmd.Context(), a, func() (domain.Languages, error) {
				return client.GetLanguages(cmd.Context(), owner, name)
			})
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printJSON(langs)
			}
			if len(langs) == 0 {
				fmt.Fprintf(a.out, "No languages detected in %s\n", args[0])
				return nil
			}
			var rows [][]string
			for _, s := range langs.Shares() {
				rows = append(rows, []string{s.Name, strconv.FormatInt(s.Bytes, 10), fmt.Sprintf("%.1f%%", s.Percent)})
			}
			a.printTable([]string{"LANGUAGE", "BYTES", "SHARE"}, rows)
			return nil
		},
	}
}

func (a *app) newContentCmd() *cobra.Command {
	var decode, highlight bool

	cmd := &cobra.Command{
		Use:   "content <owner/repo> <path>",
		Short: "Look up a file or directory in a repository",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := splitRepo(args[0])
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			content, err := withRetry(cmd.Context(), a, func() (*domain.Content, error) {
				return client.GetContentByPath(cmd.Context(), owner, name, args[1])
			})
			if err != nil {
				return err
			}

			if decode {
				text, ok, err := gh.DecodeContent(content)
				if err != nil {
					return fmt.Errorf("failed to decode %s: %w", content.Path, err)
				}
				if !ok {
					return fmt.Errorf("%s is a %s, not a file", content.Path, content.Type)
				}
				if highlight {
					return highlightTo(a.out, content.Path, text)
				}
				fmt.Fprint(a.out, text)
				return nil
			}

			if a.jsonOut {
				return a.printJSON(content)
			}
			a.printFields([][2]string{
				{"Path", content.Path},
				{"Type", string(content.Type)},
				{"Size", strconv.FormatInt(content.Size, 10)},
				{"SHA", content.SHA},
				{"URL", content.HTMLURL},
				{"Download", content.DownloadURL},
			})
			return nil
		},
	}
	cmd.Flags().BoolVar(&decode, "decode", false, "Print the decoded file body instead of its metadata.")
	cmd.Flags().BoolVar(&highlight, "highlight", false, "Syntax-highlight the decoded body. Implies --decode.")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		decode = decode || highlight
	}
	return cmd
}

func (a *app) newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the authenticated user's profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			p, err := withRetry(cmd.Context(), a, func() (*domain.Profile, error) {
				return client.GetUserProfile(cmd.Context())
			})
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printJSON(p)
			}
			a.printFields([][2]string{
				{"Login", p.Login},
				{"Name", p.Name},
				{"Bio", p.Bio},
				{"Company", p.Company},
				{"Location", p.Location},
				{"Website", p.WebsiteURL},
				{"Followers", strconv.Itoa(p.Followers)},
				{"Following", strconv.Itoa(p.Following)},
				{"Joined", p.CreatedAt.Local().Format(timeFormat)},
				{"URL", p.URL},
			})
			return nil
		},
	}
}

func (a *app) newRepoCmd() *cobra.Command {
	var web bool

	cmd := &cobra.Command{
		Use:   "repo <owner/repo>",
		Short: "Show repository metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := splitRepo(args[0])
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			r, err := withRetry(cmd.Context(), a, func() (*domain.Repository, error) {
				return client.GetRepository(cmd.Context(), owner, name)
			})
			if err != nil {
				return err
			}

			if web {
				a.logger.Info("Opening repository", "url", r.URL)
				return browser.OpenURL(r.URL)
			}
			if a.jsonOut {
				return a.printJSON(r)
			}
			a.printFields(repositoryFields(r))
			return nil
		},
	}
	cmd.Flags().BoolVar(&web, "web", false, "Open the repository in the browser.")
	return cmd
}

func repositoryFields(r *domain.Repository) [][2]string {
	language := ""
	if r.Language != nil {
		language = r.Language.Name
	}
	pushed := ""
	if r.PushedAt != nil {
		pushed = r.PushedAt.Local().Format(timeFormat)
	}
	return [][2]string{
		{"Name", r.NameWithOwner},
		{"Description", r.Description},
		{"Homepage", r.HomepageURL},
		{"Stars", strconv.Itoa(r.Stars)},
		{"Forks", strconv.Itoa(r.Forks)},
		{"Language", language},
		{"License", r.License},
		{"Branch", r.DefaultBranch},
		{"Private", strconv.FormatBool(r.IsPrivate)},
		{"Fork", strconv.FormatBool(r.IsFork)},
		{"Archived", strconv.FormatBool(r.IsArchived)},
		{"Pushed", pushed},
		{"URL", r.URL},
	}
}

func (a *app) newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <owner/repo>",
		Short: "Interactive summary of a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := splitRepo(args[0])
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}

			model := tui.NewInspectModel(cmd.Context(), client, owner, name)
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("program error: %w", err)
			}
			return nil
		},
	}
}

// highlightTo writes text to w with terminal colors picked from the file name.
// Unknown file types are written as-is.
func highlightTo(w io.Writer, path, text string) error {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		_, err := io.WriteString(w, text)
		return err
	}
	return quick.Highlight(w, text, lexer.Config().Name, "terminal256", "monokai")
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printTable(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		}).
		Headers(headers...).
		Rows(rows...)
	fmt.Fprintln(a.out, t.Render())
}

// printFields prints label/value pairs, skipping empty values.
func (a *app) printFields(fields [][2]string) {
	width := 0
	for _, f := range fields {
		width = max(width, len(f[0]))
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		fmt.Fprintf(a.out, "%s  %s\n", headerStyle.Render(fmt.Sprintf("%-*s", width, f[0])), f[1])
	}
}
