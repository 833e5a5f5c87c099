package projects

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/robby/mosaic/internal/domain"
	"github.com/robby/mosaic/internal/gh"
)

// ContentGetter fetches a repository file. *gh.Client implements it.
type ContentGetter interface {
	GetContentByPath(ctx context.Context, owner, repo, path string) (*domain.Content, error)
}

// LoadRemote reads the TOML project config at path in owner/repo.
// Lookup failures are returned as-is; a file that cannot be decoded or
// parsed is reported as gh.KindConfigParse.
func LoadRemote(ctx context.Context, client ContentGetter, owner, repo, path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	content, err := client.GetContentByPath(ctx, owner, repo, path)
	if err != nil {
		return nil, err
	}

	text, ok, err := gh.DecodeContent(content)
	if err != nil {
		return nil, configParseError(err.Error(), err)
	}
	if !ok {
		return nil, configParseError(fmt.Sprintf("%s in %s/%s has no file content", path, owner, repo), nil)
	}

	var cfg Config
	if _, err := toml.Decode(text, &cfg); err != nil {
		return nil, configParseError(fmt.Sprintf("invalid %s: %v", path, err), err)
	}
	return &cfg, nil
}

func configParseError(msg string, err error) *gh.Error {
	return &gh.Error{
		Kind: gh.KindConfigParse,
		Body: gh.ErrorBody{Message: msg},
		Err:  err,
	}
}
