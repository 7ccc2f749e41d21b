// Package store persists checklist state in a local key-value preferences file.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

const (
	// LockTimeout bounds how long Load and Commit wait for the file lock
	// when the context carries no deadline of its own.
	LockTimeout = 5 * time.Second

	lockRetryDelay = 25 * time.Millisecond
	lockSuffix     = ".lock"
)

// ErrCorrupt indicates the preferences file exists but cannot be decoded.
var ErrCorrupt = errors.New("preferences file corrupt")

// Format is the on-disk encoding of a preferences file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists every supported format.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

// ParseFormat parses a format name (case-insensitive). Empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: json, yaml, toml)", s)
	}
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	return string(f)
}

func (f Format) marshal(v *values) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(v); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return json.MarshalIndent(v, "", "  ")
	}
}

func (f Format) unmarshal(data []byte, v *values) error {
	switch f {
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatTOML:
		return toml.Unmarshal(data, v)
	default:
		return json.Unmarshal(data, v)
	}
}

// values is the file layout: typed maps keyed by preference name.
type values struct {
	Strings map[string]string `json:"strings,omitempty" yaml:"strings,omitempty" toml:"strings,omitempty"`
	Ints    map[string]int64  `json:"ints,omitempty" yaml:"ints,omitempty" toml:"ints,omitempty"`
}

// Values is a read-only view of loaded preferences.
type Values struct {
	v values
}

// String returns the string stored under key, or def if absent.
func (p Values) String(key, def string) string {
	if s, ok := p.v.Strings[key]; ok {
		return s
	}
	return def
}

// Int returns the integer stored under key, or def if absent.
func (p Values) Int(key string, def int64) int64 {
	if n, ok := p.v.Ints[key]; ok {
		return n
	}
	return def
}

// Has reports whether key holds a value of any type.
func (p Values) Has(key string) bool {
	_, s := p.v.Strings[key]
	_, n := p.v.Ints[key]
	return s || n
}

// Prefs is a key-value preferences file guarded by an advisory file lock.
// Writes replace the file atomically, so readers never observe a partial write.
type Prefs struct {
	path   string
	format Format
	lock   *flock.Flock
}

// NewPrefs returns a Prefs for the file at path. The file is created on first commit.
func NewPrefs(path string, format Format) *Prefs {
	return &Prefs{
		path:   path,
		format: format,
		lock:   flock.New(path + lockSuffix),
	}
}

// Path returns the preferences file path.
func (p *Prefs) Path() string {
	return p.path
}

// Load reads the preferences file under a shared lock.
// A missing file yields empty Values. An undecodable file yields an error
// wrapping ErrCorrupt.
func (p *Prefs) Load(ctx context.Context) (Values, error) {
	if _, err := os.Stat(filepath.Dir(p.path)); errors.Is(err, fs.ErrNotExist) {
		return Values{}, nil
	}

	ctx, cancel := withLockTimeout(ctx)
	defer cancel()

	locked, err := p.lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil {
		return Values{}, fmt.Errorf("lock %s: %w", p.path, err)
	}
	if !locked {
		return Values{}, fmt.Errorf("lock %s: timed out", p.path)
	}
	defer func() { _ = p.lock.Unlock() }()

	v, err := p.readLocked()
	if err != nil {
		return Values{}, err
	}
	return Values{v: v}, nil
}

// Edit starts a batch of changes applied together by Commit.
func (p *Prefs) Edit() *Editor {
	return &Editor{prefs: p}
}

func (p *Prefs) readLocked() (values, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values{}, nil
	}
	if err != nil {
		return values{}, fmt.Errorf("read %s: %w", p.path, err)
	}
	var v values
	if len(bytes.TrimSpace(data)) == 0 {
		return v, nil
	}
	if err := p.format.unmarshal(data, &v); err != nil {
		return values{}, fmt.Errorf("%w: %s: %w", ErrCorrupt, p.path, err)
	}
	return v, nil
}

func (p *Prefs) writeLocked(v values) error {
	data, err := p.format.marshal(&v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", p.path, err)
	}

	dir := filepath.Dir(p.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(p.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, p.path); err != nil {
		return fmt.Errorf("replace %s: %w", p.path, err)
	}
	return nil
}

// Editor collects preference changes. Nothing is written until Commit.
type Editor struct {
	prefs *Prefs
	ops   []func(*values)
}

// PutString sets a string preference.
func (e *Editor) PutString(key, value string) *Editor {
	e.ops = append(e.ops, func(v *values) {
		if v.Strings == nil {
			v.Strings = make(map[string]string)
		}
		v.Strings[key] = value
	})
	return e
}

// PutInt sets an integer preference.
func (e *Editor) PutInt(key string, value int64) *Editor {
	e.ops = append(e.ops, func(v *values) {
		if v.Ints == nil {
			v.Ints = make(map[string]int64)
		}
		v.Ints[key] = value
	})
	return e
}

// Remove deletes key from every type map.
func (e *Editor) Remove(key string) *Editor {
	e.ops = append(e.ops, func(v *values) {
		delete(v.Strings, key)
		delete(v.Ints, key)
	})
	return e
}

// Clear drops every stored preference.
func (e *Editor) Clear() *Editor {
	e.ops = append(e.ops, func(v *values) {
		*v = values{}
	})
	return e
}

// Commit applies the collected changes under an exclusive lock and replaces
// the file atomically. Keys not touched by the editor keep their values; a
// corrupt file is replaced rather than merged.
func (e *Editor) Commit(ctx context.Context) error {
	p := e.prefs
	if err := os.MkdirAll(filepath.Dir(p.path), 0700); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	ctx, cancel := withLockTimeout(ctx)
	defer cancel()

	locked, err := p.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock %s: %w", p.path, err)
	}
	if !locked {
		return fmt.Errorf("lock %s: timed out", p.path)
	}
	defer func() { _ = p.lock.Unlock() }()

	v, err := p.readLocked()
	if err != nil && !errors.Is(err, ErrCorrupt) {
		return err
	}
	for _, op := range e.ops {
		op(&v)
	}
	return p.writeLocked(v)
}

func withLockTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, LockTimeout)
}
