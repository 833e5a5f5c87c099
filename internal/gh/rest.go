package gh

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/robby/mosaic/internal/domain"
)

// eventsPageSize is the size of the single events page that is fetched.
// Callers needing older events must paginate themselves.
const eventsPageSize = 100

const acceptGitHubJSON = "application/vnd.github+json"

// GetUserEvents returns the first page of a user's public events.
// username is interpolated into the URL as-is.
func (c *Client) GetUserEvents(ctx context.Context, username string) ([]domain.Event, error) {
	url := fmt.Sprintf("%s/users/%s/events?per_page=%d&page=1", c.apiURL, username, eventsPageSize)

	resp, err := c.get(ctx, url, false)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		e := upstreamError(resp, ParseErrorBody(readErrorBody(resp.Body)))
		c.logger.Error("Failed to fetch user events", "user", username, "status", resp.StatusCode, "message", e.Body.Message)
		return nil, e
	}

	var events []domain.Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, c.decodeError("user events", err)
	}
	return events, nil
}

// GetLanguages returns the number of bytes per language in a repository.
func (c *Client) GetLanguages(ctx context.Context, owner, repo string) (domain.Languages, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/languages", c.apiURL, owner, repo)

	resp, err := c.get(ctx, url, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		e := upstreamError(resp, statusErrorBody(resp.Status, readErrorBody(resp.Body)))
		c.logger.Error("Failed to fetch languages", "repo", owner+"/"+repo, "status", resp.StatusCode, "message", e.Body.Message)
		return nil, e
	}

	var languages domain.Languages
	if err := json.NewDecoder(resp.Body).Decode(&languages); err != nil {
		return nil, c.decodeError("languages", err)
	}
	return languages, nil
}

// GetContentByPath returns the content entry at path in a repository.
// path is interpolated into the URL as-is; callers escape reserved characters.
// A malformed success body is reported as KindConfigParse.
func (c *Client) GetContentByPath(ctx context.Context, owner, repo, path string) (*domain.Content, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.apiURL, owner, repo, path)

	resp, err := c.get(ctx, url, true)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if !isSuccess(resp) {
		e := upstreamError(resp, statusErrorBody(resp.Status, readErrorBody(resp.Body)))
		c.logger.Error("Failed to fetch content", "repo", owner+"/"+repo, "path", path, "status", resp.StatusCode, "message", e.Body.Message)
		return nil, e
	}

	var content domain.Content
	if err := json.NewDecoder(resp.Body).Decode(&content); err != nil {
		c.logger.Error("Error parsing GitHub content response", "repo", owner+"/"+repo, "path", path, "err", err)
		return nil, &Error{
			Kind:   KindConfigParse,
			Status: resp.StatusCode,
			Body:   ErrorBody{Message: err.Error()},
			Err:    err,
		}
	}
	return &content, nil
}

func (c *Client) get(ctx context.Context, url string, acceptJSON bool) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("Invalid GitHub request", "url", url, "err", err)
		return nil, transportError(err)
	}
	if acceptJSON {
		req.Header.Set("Accept", acceptGitHubJSON)
	}

	c.logger.Debug("Requesting GitHub", "url", url)
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("GitHub request failed", "url", url, "err", err)
		return nil, transportError(err)
	}
	return resp, nil
}

func (c *Client) decodeError(what string, err error) *Error {
	c.logger.Error("Failed to decode GitHub response", "response", what, "err", err)
	return &Error{
		Kind: KindDecode,
		Body: ErrorBody{Message: fmt.Sprintf("could not decode %s", what)},
		Err:  err,
	}
}

func isSuccess(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
