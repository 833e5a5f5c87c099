// Package domain defines the value types returned by the GitHub integration layer.
// Every value is owned by the caller once returned; nothing here is shared or mutated
// by the client after a call completes.
package domain

import (
	"encoding/json"
	"time"
)

// Event is a single entry of a user's public event feed.
type Event struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`    // e.g. "PushEvent", "WatchEvent"
	Actor     Actor           `json:"actor"`   // User that triggered the event
	Repo      EventRepo       `json:"repo"`    // Repository the event happened in
	Org       *Actor          `json:"org"`     // Organization, nil for personal repositories
	Payload   json.RawMessage `json:"payload"` // Event-type specific body, left undecoded
	Public    bool            `json:"public"`
	CreatedAt time.Time       `json:"created_at"`
}

// Actor identifies the user or organization attached to an event.
type Actor struct {
	ID           int64  `json:"id"`
	Login        string `json:"login"`
	DisplayLogin string `json:"display_login,omitempty"`
	GravatarID   string `json:"gravatar_id"`
	URL          string `json:"url"`
	AvatarURL    string `json:"avatar_url"`
}

// EventRepo is the compact repository reference embedded in events.
type EventRepo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"` // owner/name
	URL  string `json:"url"`
}

// Languages maps a language name to the number of bytes written in it.
type Languages map[string]int64

// Content describes a single file or directory entry of a repository.
type Content struct {
	Name        string            `json:"name"`
	Path        string            `json:"path"`
	SHA         string            `json:"sha"`
	Size        int64             `json:"size"`
	URL         string            `json:"url"`
	HTMLURL     string            `json:"html_url"`
	GitURL      string            `json:"git_url"`
	DownloadURL string            `json:"download_url"`
	Type        string            `json:"type"`     // See ContentType constants
	Content     *string           `json:"content"`  // Encoded body, nil for directories
	Encoding    string            `json:"encoding"` // Always EncodingBase64 when Content is set
	Links       map[string]string `json:"_links"`
}

// ContentType constants for Content.Type.
const (
	ContentTypeFile      = "file"
	ContentTypeDir       = "dir"
	ContentTypeSymlink   = "symlink"
	ContentTypeSubmodule = "submodule"
)

// EncodingBase64 is the only encoding GitHub uses for inline file bodies.
const EncodingBase64 = "base64"

// Profile is the authenticated viewer as seen through the GraphQL API.
type Profile struct {
	Login      string
	Name       string
	AvatarURL  string
	Bio        string
	Company    string
	Location   string
	WebsiteURL string
	URL        string
	CreatedAt  time.Time
	Followers  int
	Following  int
}

// Repository is a repository as seen through the GraphQL API.
type Repository struct {
	Name          string
	Owner         string
	NameWithOwner string
	Description   string
	URL           string
	HomepageURL   string
	Stars         int
	Forks         int
	IsPrivate     bool
	IsFork        bool
	IsArchived    bool
	Language      *Language // Primary language, nil if GitHub could not detect one
	DefaultBranch string
	Topics        []string
	License       string // SPDX identifier, empty if unlicensed
	CreatedAt     time.Time
	UpdatedAt     time.Time
	PushedAt      *time.Time // nil for empty repositories
}

// Language is a detected repository language.
type Language struct {
	Name  string
	Color string // Hex color GitHub uses for the language, may be empty
}
