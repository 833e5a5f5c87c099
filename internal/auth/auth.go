// Package auth finds the GitHub credential mosaic runs with.
// Providers are tried in order and the first non-empty token wins.
package auth

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// TokenProvider obtains a GitHub token from one source.
type TokenProvider interface {
	GetToken() (string, error)
}

// StaticProvider returns a token given on the command line.
type StaticProvider struct {
	Token string
}

// GetToken returns the configured token or an error if it is empty.
func (s StaticProvider) GetToken() (string, error) {
	token := strings.TrimSpace(s.Token)
	if token == "" {
		return "", errors.New("no --token given")
	}
	return token, nil
}

// EnvProvider reads the first non-empty variable in Vars.
type EnvProvider struct {
	Vars []string
}

// DefaultEnvVars are checked when EnvProvider.Vars is empty.
var DefaultEnvVars = []string{"MOSAIC_GITHUB_TOKEN", "GITHUB_TOKEN"}

// GetToken returns the value of the first set variable.
func (e EnvProvider) GetToken() (string, error) {
	vars := e.Vars
	if len(vars) == 0 {
		vars = DefaultEnvVars
	}
	for _, name := range vars {
		if token := strings.TrimSpace(os.Getenv(name)); token != "" {
			return token, nil
		}
	}
	return "", fmt.Errorf("%s not set or empty", strings.Join(vars, " and "))
}

// GhCliProvider shells out to `gh auth token`, reusing the GitHub CLI login.
type GhCliProvider struct {
	Hostname string // defaults to github.com
}

// GetToken runs `gh auth token --hostname <host>`.
// Returns an error if gh is not installed, not authenticated, or the command fails.
func (g GhCliProvider) GetToken() (string, error) {
	host := g.Hostname
	if host == "" {
		host = "github.com"
	}

	output, err := exec.Command("gh", "auth", "token", "--hostname", host).Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", errors.New("gh CLI not found in PATH")
		}
		return "", fmt.Errorf("gh auth token failed: %w", err)
	}

	token := strings.TrimSpace(string(output))
	if token == "" {
		return "", errors.New("gh auth token returned empty token")
	}
	return token, nil
}

// Resolve returns the token of the first provider that succeeds.
// When all fail, the error lists every provider's reason.
func Resolve(providers ...TokenProvider) (string, error) {
	var errs *multierror.Error
	for _, p := range providers {
		token, err := p.GetToken()
		if err == nil {
			return token, nil
		}
		errs = multierror.Append(errs, err)
	}
	if errs == nil {
		errs = multierror.Append(errs, errors.New("no token providers configured"))
	}
	return "", fmt.Errorf("failed to obtain GitHub token:\n%w\n"+
		"Please either:\n"+
		"  1. Pass --token,\n"+
		"  2. Set MOSAIC_GITHUB_TOKEN or GITHUB_TOKEN, or\n"+
		"  3. Run 'gh auth login' to authenticate with GitHub CLI",
		errs.ErrorOrNil())
}

// GetToken resolves a token from flag, environment, then the GitHub CLI.
// flagToken may be empty.
func GetToken(flagToken string) (string, error) {
	providers := []TokenProvider{EnvProvider{}, GhCliProvider{}}
	if flagToken != "" {
		providers = append([]TokenProvider{StaticProvider{Token: flagToken}}, providers...)
	}
	return Resolve(providers...)
}
