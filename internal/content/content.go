// internal/content/content.go
//
// Loads the static game content (events, actions, decisions, jobs, endings).
//
// Responsibilities:
//   - Ship a complete default content set embedded from data/*.yaml.
//   - Let an operator override any table from a directory (CONTENT_DIR).
//   - Validate the assembled set before it is handed to the engine.
//
// Override behavior (Load):
//   1. If dir is empty, every table comes from the embedded defaults.
//   2. Otherwise each table is looked up in dir as <name>.yaml, <name>.yml
//      or <name>.json (first found wins). A table missing from dir falls
//      back to the embedded default.
//
// Content is read once at startup and never mutated afterwards.

package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/liferoguelite/internal/game"
)

//go:embed data/*.yaml
var embedded embed.FS

// Table names, also the file base names.
const (
	TableEvents    = "events"
	TableActions   = "actions"
	TableDecisions = "decisions"
	TableJobs      = "jobs"
	TableEndings   = "endings"
)

var extensions = []string{".yaml", ".yml", ".json"}

// Defaults returns the embedded content set.
func Defaults() (*game.Content, error) {
	return Load("")
}

// Load reads content from dir, falling back to the embedded defaults per
// table. An empty dir loads the defaults only.
func Load(dir string) (*game.Content, error) {
	base, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return LoadFS(base)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s: not a directory", dir)
	}
	return LoadFS(overlay{top: os.DirFS(dir), base: base})
}

// LoadFS reads every table from fsys and validates the result.
func LoadFS(fsys fs.FS) (*game.Content, error) {
	c := &game.Content{}
	tables := []struct {
		name string
		dst  any
	}{
		{TableEvents, &c.Events},
		{TableActions, &c.Actions},
		{TableDecisions, &c.Decisions},
		{TableJobs, &c.Jobs},
		{TableEndings, &c.Endings},
	}
	for _, t := range tables {
		if err := readTable(fsys, t.name, t.dst); err != nil {
			return nil, err
		}
	}

	if err := Validate(c); err != nil {
		return nil, err
	}

	log.Info().
		Int("events", len(c.Events)).
		Int("actions", len(c.Actions)).
		Int("decisions", len(c.Decisions)).
		Int("jobs", len(c.Jobs)).
		Int("endings", len(c.Endings)).
		Msg("content loaded")
	return c, nil
}

// readTable decodes the first <name><ext> present in fsys into dst.
func readTable(fsys fs.FS, name string, dst any) error {
	for _, ext := range extensions {
		file := name + ext
		b, err := fs.ReadFile(fsys, file)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", file, err)
		}
		if ext == ".json" {
			err = json.Unmarshal(b, dst)
		} else {
			err = yaml.Unmarshal(b, dst)
		}
		if err != nil {
			return fmt.Errorf("parse %s: %w", file, err)
		}
		return nil
	}
	return fmt.Errorf("content table %q: %w", name, fs.ErrNotExist)
}

// overlay serves a table from top when any of its files exist there, and
// from base otherwise. Mixing extensions across layers for one table is not
// possible: the layer is chosen per table name.
type overlay struct {
	top, base fs.FS
}

func (o overlay) Open(name string) (fs.File, error) {
	if o.hasTable(o.top, name) {
		return o.top.Open(name)
	}
	return o.base.Open(name)
}

func (o overlay) hasTable(fsys fs.FS, name string) bool {
	ext := path.Ext(name)
	stem := name[:len(name)-len(ext)]
	for _, e := range extensions {
		if _, err := fs.Stat(fsys, stem+e); err == nil {
			return true
		}
	}
	return false
}
