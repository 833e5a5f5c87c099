// Package projects serves mosaic project configuration. A project's config
// lives either in the projects table or as a mosaic.toml file in its
// repository.
package projects

// DefaultConfigPath is where LoadRemote looks when no path is given.
const DefaultConfigPath = "mosaic.toml"

// Config is a mosaic project configuration.
type Config struct {
	Project  *ProjectConfig  `json:"project,omitempty" toml:"project"`
	Readme   *ReadmeConfig   `json:"readme,omitempty" toml:"readme"`
	Website  *WebsiteConfig  `json:"website,omitempty" toml:"website"`
	Packages []PackageConfig `json:"packages,omitempty" toml:"packages"`
}

// ProjectConfig describes the project as a whole.
type ProjectConfig struct {
	Name        string `json:"name" toml:"name"`
	Description string `json:"description,omitempty" toml:"description"`
	Repository  string `json:"repository,omitempty" toml:"repository"` // owner/name
}

// ReadmeConfig points at the README rendered on the project page.
type ReadmeConfig struct {
	Path string `json:"path" toml:"path"`
}

// WebsiteConfig describes the project website.
type WebsiteConfig struct {
	URL   string `json:"url" toml:"url"`
	Title string `json:"title,omitempty" toml:"title"`
}

// PackageType is the ecosystem a package is published to.
type PackageType string

const (
	PackageTypeNPM   PackageType = "npm"
	PackageTypeCargo PackageType = "cargo"
	PackageTypeGo    PackageType = "go"
	PackageTypePyPI  PackageType = "pypi"
)

// PackageConfig is one published package of the project.
type PackageConfig struct {
	Name string      `json:"name" toml:"name"`
	Type PackageType `json:"type" toml:"type"`
	Path string      `json:"path,omitempty" toml:"path"` // Directory inside the repository
}
