// Package tui provides the Bubble Tea model behind `mosaic inspect`.
package tui

import (
	"github.com/robby/mosaic/internal/domain"
	"github.com/robby/mosaic/internal/projects"
)

// repositoryLoadedMsg carries the result of GetRepository.
type repositoryLoadedMsg struct {
	repo *domain.Repository
	err  error
}

// languagesLoadedMsg carries the result of GetLanguages.
type languagesLoadedMsg struct {
	languages domain.Languages
	err       error
}

// configLoadedMsg carries the result of loading the repository's mosaic.toml.
type configLoadedMsg struct {
	config *projects.Config
	err    error
}

// openedMsg reports the outcome of opening the repository in a browser.
type openedMsg struct {
	err error
}
