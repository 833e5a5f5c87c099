// Command smoke runs every GitHub operation once against the live API.
//
//	go run ./cmd/smoke --user octocat --repo cli/cli
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robby/mosaic/internal/auth"
	"github.com/robby/mosaic/internal/gh"
	"github.com/robby/mosaic/internal/projects"
	flag "github.com/spf13/pflag"
)

func main() {
	user := flag.String("user", "octocat", "User whose events to fetch")
	repo := flag.String("repo", "cli/cli", "Repository to inspect, as owner/name")
	path := flag.String("path", "README.md", "File to fetch from the repository")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Level: log.DebugLevel})

	owner, name, ok := strings.Cut(*repo, "/")
	if !ok {
		logger.Fatal("Invalid --repo, expected owner/name", "repo", *repo)
	}

	token, err := auth.GetToken("")
	if err != nil {
		logger.Fatal(err)
	}
	client, err := gh.New(token, gh.WithLogger(logger))
	if err != nil {
		logger.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	profile, err := client.GetUserProfile(ctx)
	if err != nil {
		logger.Fatal(err)
	}
	fmt.Printf("Viewer: %s (%s), %d followers\n\n", profile.Login, profile.Name, profile.Followers)

	events, err := client.GetUserEvents(ctx, *user)
	if err != nil {
		logger.Fatal(err)
	}
	fmt.Printf("Events for %s (%d):\n", *user, len(events))
	for i, e := range events {
		if i == 5 {
			fmt.Printf("  ... and %d more\n", len(events)-5)
			break
		}
		fmt.Printf("  %s %s %s\n", e.CreatedAt.Format(time.RFC3339), e.Type, e.Repo.Name)
	}

	r, err := client.GetRepository(ctx, owner, name)
	if err != nil {
		logger.Fatal(err)
	}
	fmt.Printf("\nRepository: %s, %d stars, default branch %s\n", r.NameWithOwner, r.Stars, r.DefaultBranch)

	langs, err := client.GetLanguages(ctx, owner, name)
	if err != nil {
		logger.Fatal(err)
	}
	fmt.Printf("\nLanguages (%d):\n", len(langs))
	for _, s := range langs.Shares() {
		fmt.Printf("  %-16s %5.1f%%\n", s.Name, s.Percent)
	}

	content, err := client.GetContentByPath(ctx, owner, name, *path)
	if err != nil {
		logger.Fatal(err)
	}
	text, ok, err := gh.DecodeContent(content)
	if err != nil {
		logger.Fatal(err)
	}
	fmt.Printf("\n%s: %s, %d bytes, decoded=%v (%d chars)\n", content.Path, content.Type, content.Size, ok, len(text))

	// A missing repository must come back as not-found.
	_, err = client.GetRepository(ctx, owner, name+"-does-not-exist-"+fmt.Sprint(time.Now().Unix()))
	fmt.Printf("\nMissing repository: kind=%s\n", gh.KindOf(err))

	cfg, err := projects.LoadRemote(ctx, client, owner, name, "")
	if err != nil {
		fmt.Printf("\n%s: %v\n", projects.DefaultConfigPath, err)
		return
	}
	fmt.Printf("\n%s: %d packages\n", projects.DefaultConfigPath, len(cfg.Packages))
}
