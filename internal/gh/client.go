// Package gh is mosaic's GitHub integration layer. It talks to both the REST
// and the GraphQL API through one credential-bound Client and normalizes every
// failure into an *Error.
package gh

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/machinebox/graphql"
	"github.com/robby/mosaic/internal/config"
	"golang.org/x/net/http/httpguts"
	"golang.org/x/oauth2"
)

// tokenType is the Authorization scheme GitHub accepts for personal and OAuth tokens.
const tokenType = "token"

// Client is a GitHub REST and GraphQL client bound to a single credential.
// It is immutable after New and safe for concurrent use.
type Client struct {
	http   *http.Client
	gql    *graphql.Client
	apiURL string
	logger *log.Logger
}

// Option configures a Client.
type Option func(*options)

type options struct {
	cfg    config.GitHub
	base   http.RoundTripper
	logger *log.Logger
}

// WithConfig sets the endpoints, user agent, timeout and extra headers.
func WithConfig(cfg config.GitHub) Option {
	return func(o *options) {
		o.cfg = cfg
	}
}

// WithTransport sets the RoundTripper that performs the actual HTTP exchange.
// Authentication and identifying headers are layered on top of it.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) {
		o.base = rt
	}
}

// WithLogger sets the logger used to report failures.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates a client that authenticates every request with token.
// It fails only when the credential or a configured header cannot be sent
// as an HTTP header value.
func New(token string, opts ...Option) (*Client, error) {
	o := options{
		cfg:    config.Default().GitHub,
		base:   http.DefaultTransport,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if !httpguts.ValidHeaderFieldValue(tokenType + " " + token) {
		return nil, errors.New("invalid GitHub token: cannot be used as an Authorization header value")
	}

	headers := make(http.Header)
	headers.Set("User-Agent", o.cfg.UserAgent)
	for name, value := range o.cfg.Headers {
		if !httpguts.ValidHeaderFieldName(name) || !httpguts.ValidHeaderFieldValue(value) {
			return nil, fmt.Errorf("invalid header %q in GitHub config", name)
		}
		headers.Set(name, value)
	}

	authed := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: token,
			TokenType:   tokenType,
		}),
		Base: &headerTransport{headers: headers, wrapped: o.base},
	}

	httpClient := &http.Client{
		Transport: authed,
		Timeout:   o.cfg.Timeout.Duration,
	}
	gqlHTTP := &http.Client{
		Transport: &recordingTransport{wrapped: authed},
		Timeout:   o.cfg.Timeout.Duration,
	}

	logger := o.logger
	gql := graphql.NewClient(o.cfg.GraphQLURL, graphql.WithHTTPClient(gqlHTTP))
	gql.Log = func(s string) { logger.Debug(s) }

	return &Client{
		http:   httpClient,
		gql:    gql,
		apiURL: o.cfg.APIURL,
		logger: logger,
	}, nil
}
