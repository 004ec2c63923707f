// Package levels loads puzzle levels from YAML files.
// It depends on puzzle but puzzle does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/snake-puzzle/internal/levels/formats"
	"github.com/vovakirdan/snake-puzzle/internal/puzzle"
)

//go:embed data/*.yaml
var builtin embed.FS

// Level is a validated level definition and where it came from.
type Level struct {
	puzzle.Level
	Metadata map[string]string
	FilePath string
}

// Loader reads levels from a directory tree or an embedded pack.
type Loader struct {
	Root string
	// ExitOpen applies to levels that do not set exit_open.
	ExitOpen bool
	Logger   *log.Logger

	fsys     fs.FS
	dir      string // root inside fsys
	embedded bool
}

// NewLoader creates a loader for the level files under root.
func NewLoader(root string) *Loader {
	return &Loader{
		Root:     root,
		ExitOpen: true,
		Logger:   log.New(io.Discard),
		fsys:     os.DirFS(root),
		dir:      ".",
	}
}

// Builtin creates a loader for the level pack compiled into the binary.
func Builtin() *Loader {
	return &Loader{
		Root:     "builtin",
		ExitOpen: true,
		Logger:   log.New(io.Discard),
		fsys:     builtin,
		dir:      "data",
		embedded: true,
	}
}

// Open returns a directory loader for root, or the built-in pack when root is empty.
func Open(root string) *Loader {
	if root == "" {
		return Builtin()
	}
	return NewLoader(root)
}

// LoadAll recursively scans and loads all level files.
// Invalid files are logged and skipped. Levels are sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	seen := make(map[string]string)

	err := fs.WalkDir(l.fsys, l.dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.load(p)
		if err != nil {
			l.Logger.Warn("skipping level file", "path", level.FilePath, "err", err)
			return nil
		}
		if prev, dup := seen[level.ID]; dup {
			l.Logger.Warn("duplicate level id", "id", level.ID, "path", level.FilePath, "first", prev)
			return nil
		}
		seen[level.ID] = level.FilePath

		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads and validates a single level file from the OS file system.
func (l *Loader) LoadFile(file string) (Level, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", file, err)
	}
	return l.parse(data, file)
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level %s: %w", id, puzzle.ErrNoLevel)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func (l *Loader) load(p string) (Level, error) {
	display := p
	if !l.embedded {
		display = filepath.Join(l.Root, filepath.FromSlash(p))
	}
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{FilePath: display}, fmt.Errorf("reading file %s: %w", display, err)
	}
	lvl, err := l.parse(data, display)
	if err != nil {
		return Level{FilePath: display}, err
	}
	return lvl, nil
}

func (l *Loader) parse(data []byte, file string) (Level, error) {
	parsed, err := parseByExtension(data, strings.ToLower(filepath.Ext(file)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", file, err)
	}
	if !parsed.ExitOpenSet {
		parsed.Level.ExitOpen = l.ExitOpen
	}
	if err := parsed.Level.Validate(); err != nil {
		return Level{}, fmt.Errorf("validating file %s: %w", file, err)
	}
	return Level{Level: parsed.Level, Metadata: parsed.Metadata, FilePath: file}, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}

// Next returns the level after id in pack order.
// Returns false when id is the last level or is not in the pack.
func Next(pack []Level, id string) (Level, bool) {
	for i, lvl := range pack {
		if lvl.ID == id && i+1 < len(pack) {
			return pack[i+1], true
		}
	}
	return Level{}, false
}

// Find returns the level with the given id.
func Find(pack []Level, id string) (Level, error) {
	for _, lvl := range pack {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("level %s: %w", id, puzzle.ErrNoLevel)
}

// IsNotFound reports whether err means a level id is unknown.
func IsNotFound(err error) bool {
	return errors.Is(err, puzzle.ErrNoLevel)
}
