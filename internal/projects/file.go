package projects

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

// LoadFile reads a TOML project config from path on fs.
// A file that cannot be parsed yields ErrParse.
func LoadFile(fs afero.Fs, path string) (*Config, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var cfg Config
	if _, err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	return &cfg, nil
}
