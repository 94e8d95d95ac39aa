package germinal

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Settings keys
const (
	AudibleBellKey        = "audible-bell"
	BackcolorKey          = "backcolor"
	BackgroundImageKey    = "background-image"
	BoldKey               = "bold"
	DecoratedKey          = "decorated"
	FontKey               = "font"
	ForecolorKey          = "forecolor"
	OpacityKey            = "opacity"
	PaletteKey            = "palette"
	ScrollbackKey         = "scrollback-lines"
	StartupCommandKey     = "startup-command"
	TermKey               = "term"
	WordCharExceptionsKey = "word-char-exceptions"
)

// settingsGroup is the TOML table holding the keys
const settingsGroup = "Germinal"

// ErrUnknownKey is returned when a key is not part of the schema
var ErrUnknownKey = errors.New("unknown settings key")

// TangoPalette is the default 16-color palette
var TangoPalette = []string{
	"#2e3436", "#cc0000", "#4e9a06", "#c4a000",
	"#3465a4", "#75507b", "#06989a", "#d3d7cf",
	"#555753", "#ef2929", "#8ae234", "#fce94f",
	"#729fcf", "#ad7fa8", "#34e2e2", "#eeeeec",
}

// DefaultSettings returns the schema: every key with its default value.
// The value types (string, int64, bool, float64, []string) are the types
// stored values are coerced to.
func DefaultSettings() map[string]any {
	return map[string]any{
		AudibleBellKey:        false,
		BackcolorKey:          "#000000",
		BackgroundImageKey:    "",
		BoldKey:               true,
		DecoratedKey:          false,
		FontKey:               "Monospace 12",
		ForecolorKey:          "#dddddd",
		OpacityKey:            1.0,
		PaletteKey:            append([]string(nil), TangoPalette...),
		ScrollbackKey:         int64(10000),
		StartupCommandKey:     "tmux -u -2 -f /usr/share/germinal/tmux.conf",
		TermKey:               "xterm-256color",
		WordCharExceptionsKey: "-,./?%&#:_=+@~",
	}
}

// StoreOptions configures a settings store
type StoreOptions struct {
	UserPath    string   // default: $XDG_CONFIG_HOME/germinal/settings.toml
	SystemPaths []string // default: $XDG_CONFIG_DIRS/germinal/settings.toml
	Logger      *slog.Logger
}

// Store holds the layered settings: schema defaults, then the first
// system-wide file found, then the user file. Only the user layer is
// written back.
type Store struct {
	mu sync.Mutex

	userPath    string
	systemPaths []string
	log         *slog.Logger

	defaults map[string]any
	system   map[string]any
	user     map[string]any

	observers map[string][]func(key string)
}

// UserSettingsPath returns the per-user settings file location
func UserSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "germinal", "settings.toml")
}

// SystemSettingsPaths returns the system-wide settings file candidates
func SystemSettingsPaths() []string {
	dirs := os.Getenv("XDG_CONFIG_DIRS")
	if dirs == "" {
		dirs = "/etc/xdg"
	}
	var paths []string
	for _, dir := range filepath.SplitList(dirs) {
		if dir != "" {
			paths = append(paths, filepath.Join(dir, "germinal", "settings.toml"))
		}
	}
	return paths
}

// OpenStore creates a store and loads its files. Missing files are not an
// error; unreadable or malformed ones are logged and skipped.
func OpenStore(opts StoreOptions) *Store {
	if opts.UserPath == "" {
		opts.UserPath = UserSettingsPath()
	}
	if opts.SystemPaths == nil {
		opts.SystemPaths = SystemSettingsPaths()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	s := &Store{
		userPath:    opts.UserPath,
		systemPaths: opts.SystemPaths,
		log:         opts.Logger,
		defaults:    DefaultSettings(),
		observers:   make(map[string][]func(string)),
	}
	s.mu.Lock()
	s.system, s.user = s.loadLayersLocked()
	s.mu.Unlock()
	return s
}

// UserPath returns the file the user layer is read from and written to
func (s *Store) UserPath() string {
	return s.userPath
}

func (s *Store) loadLayersLocked() (system, user map[string]any) {
	system = make(map[string]any)
	for _, path := range s.systemPaths {
		values, exists, err := s.readFile(path)
		if err != nil {
			s.log.Warn("ignoring system settings", "path", path, "err", err)
			continue
		}
		if exists {
			system = values
			break
		}
	}

	user, _, err := s.readFile(s.userPath)
	if err != nil {
		s.log.Warn("ignoring user settings", "path", s.userPath, "err", err)
	}
	if user == nil {
		user = make(map[string]any)
	}
	return system, user
}

// readFile decodes a settings file, keeping only known keys whose values
// can be coerced to the schema type.
func (s *Store) readFile(path string) (map[string]any, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading settings %s: %w", path, err)
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, true, fmt.Errorf("parsing settings %s: %w", path, err)
	}

	values := make(map[string]any)
	group, _ := doc[settingsGroup].(map[string]any)
	for key, raw := range group {
		def, known := s.defaults[key]
		if !known {
			s.log.Warn("unknown settings key", "path", path, "key", key)
			continue
		}
		v, ok := coerce(raw, def)
		if !ok {
			s.log.Warn("settings value has the wrong type", "path", path, "key", key, "value", raw)
			continue
		}
		values[key] = v
	}
	return values, true, nil
}

// coerce converts a decoded TOML value to the type of def
func coerce(raw, def any) (any, bool) {
	switch def.(type) {
	case string:
		v, ok := raw.(string)
		return v, ok
	case bool:
		v, ok := raw.(bool)
		return v, ok
	case int64:
		switch v := raw.(type) {
		case int64:
			return v, true
		case int:
			return int64(v), true
		case float64:
			if v == float64(int64(v)) {
				return int64(v), true
			}
		}
	case float64:
		switch v := raw.(type) {
		case float64:
			return v, true
		case int64:
			return float64(v), true
		case int:
			return float64(v), true
		}
	case []string:
		switch v := raw.(type) {
		case []string:
			return append([]string(nil), v...), true
		case []any:
			out := make([]string, 0, len(v))
			for _, item := range v {
				str, ok := item.(string)
				if !ok {
					return nil, false
				}
				out = append(out, str)
			}
			return out, true
		}
	}
	return nil, false
}

func (s *Store) valueLocked(key string) any {
	if v, ok := s.user[key]; ok {
		return v
	}
	if v, ok := s.system[key]; ok {
		return v
	}
	return s.defaults[key]
}

// Value returns the effective value of key, or nil for unknown keys
func (s *Store) Value(key string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valueLocked(key)
}

// String returns a string setting
func (s *Store) String(key string) string {
	v, _ := s.Value(key).(string)
	return v
}

// Bool returns a boolean setting
func (s *Store) Bool(key string) bool {
	v, _ := s.Value(key).(bool)
	return v
}

// Int returns an integer setting
func (s *Store) Int(key string) int64 {
	v, _ := s.Value(key).(int64)
	return v
}

// Float returns a floating point setting
func (s *Store) Float(key string) float64 {
	v, _ := s.Value(key).(float64)
	return v
}

// Strings returns a string list setting
func (s *Store) Strings(key string) []string {
	v, _ := s.Value(key).([]string)
	return append([]string(nil), v...)
}

// IsUserSet reports whether the user layer overrides key
func (s *Store) IsUserSet(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.user[key]
	return ok
}

// Set stores a user value and writes the user file
func (s *Store) Set(key string, value any) error {
	s.mu.Lock()
	def, known := s.defaults[key]
	if !known {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	v, ok := coerce(value, def)
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("settings key %s: value %v is not a %T", key, value, def)
	}
	before := s.valueLocked(key)
	s.user[key] = v
	err := s.saveLocked()
	changed := !reflect.DeepEqual(before, v)
	s.mu.Unlock()

	if changed {
		s.notify([]string{key})
	}
	return err
}

// Reset drops the user value of key so the system or default value
// applies again, and writes the user file.
func (s *Store) Reset(key string) error {
	s.mu.Lock()
	if _, known := s.defaults[key]; !known {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if _, ok := s.user[key]; !ok {
		s.mu.Unlock()
		return nil
	}
	before := s.valueLocked(key)
	delete(s.user, key)
	err := s.saveLocked()
	changed := !reflect.DeepEqual(before, s.valueLocked(key))
	s.mu.Unlock()

	if changed {
		s.notify([]string{key})
	}
	return err
}

func (s *Store) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.userPath), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	data, err := toml.Marshal(map[string]any{settingsGroup: s.user})
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	tmp := s.userPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	if err := os.Rename(tmp, s.userPath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// Reload re-reads the settings files and notifies observers of every key
// whose effective value changed. It returns the changed keys.
func (s *Store) Reload() []string {
	s.mu.Lock()
	before := make(map[string]any, len(s.defaults))
	for key := range s.defaults {
		before[key] = s.valueLocked(key)
	}
	s.system, s.user = s.loadLayersLocked()

	var changed []string
	for key, old := range before {
		if !reflect.DeepEqual(old, s.valueLocked(key)) {
			changed = append(changed, key)
		}
	}
	s.mu.Unlock()

	sort.Strings(changed)
	if len(changed) > 0 {
		s.log.Debug("settings changed", "keys", strings.Join(changed, ","))
		s.notify(changed)
	}
	return changed
}

// OnChanged registers fn to run whenever the effective value of key changes
func (s *Store) OnChanged(key string, fn func(key string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers[key] = append(s.observers[key], fn)
}

func (s *Store) notify(keys []string) {
	for _, key := range keys {
		s.mu.Lock()
		fns := append([]func(string){}, s.observers[key]...)
		s.mu.Unlock()
		for _, fn := range fns {
			fn(key)
		}
	}
}
