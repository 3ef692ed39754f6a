package domain

import (
	"encoding/json"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"
)

// ScopedPath is a slash-separated relative path that never leaves its base directory.
// The zero value is invalid; construct it with NewScopedPath.
type ScopedPath struct {
	rel string
}

// NewScopedPath validates and normalises raw. Leading "./" segments are dropped,
// backslashes are treated as separators, and any path whose components net an
// upward traversal past the root is rejected.
func NewScopedPath(raw string) (ScopedPath, error) {
	s := strings.ReplaceAll(raw, `\`, "/")
	if s == "" || strings.HasPrefix(s, "/") || filepath.IsAbs(raw) || hasVolume(s) {
		return ScopedPath{}, zerr.With(Wrap(ErrPathEscapesRoot, nil), "path", raw)
	}

	depth := 0
	parts := make([]string, 0, strings.Count(s, "/")+1)
	for _, part := range strings.Split(s, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			depth--
			if depth < 0 {
				return ScopedPath{}, zerr.With(Wrap(ErrPathEscapesRoot, nil), "path", raw)
			}
			parts = parts[:len(parts)-1]
		default:
			depth++
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return ScopedPath{}, zerr.With(Wrap(ErrPathEscapesRoot, nil), "path", raw)
	}
	return ScopedPath{rel: path.Join(parts...)}, nil
}

// MustScopedPath is NewScopedPath for literals known to be valid.
func MustScopedPath(raw string) ScopedPath {
	p, err := NewScopedPath(raw)
	if err != nil {
		panic(err)
	}
	return p
}

func hasVolume(s string) bool {
	return len(s) >= 2 && s[1] == ':'
}

// String returns the normalised slash-separated form.
func (p ScopedPath) String() string {
	return p.rel
}

// IsZero reports whether p was never constructed.
func (p ScopedPath) IsZero() bool {
	return p.rel == ""
}

// Join resolves p against base using the host separator.
func (p ScopedPath) Join(base string) string {
	return filepath.Join(base, filepath.FromSlash(p.rel))
}

// Base returns the final path element.
func (p ScopedPath) Base() string {
	return path.Base(p.rel)
}

// Child appends name to p, rejecting escapes.
func (p ScopedPath) Child(name string) (ScopedPath, error) {
	return NewScopedPath(p.rel + "/" + name)
}

// WithBase replaces the last element of p with name.
func (p ScopedPath) WithBase(name string) (ScopedPath, error) {
	return NewScopedPath(path.Join(path.Dir(p.rel), name))
}

// TrimPrefix strips prefix (a directory) from p. It reports false when p is not beneath prefix.
func (p ScopedPath) TrimPrefix(prefix string) (ScopedPath, bool) {
	prefix = strings.Trim(prefix, "/")
	rest, ok := strings.CutPrefix(p.rel, prefix+"/")
	if !ok || rest == "" {
		return ScopedPath{}, false
	}
	return ScopedPath{rel: rest}, true
}

// MarshalJSON encodes p as a JSON string.
func (p ScopedPath) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.rel)
}

// UnmarshalJSON decodes and validates a JSON string.
func (p *ScopedPath) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewScopedPath(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalText lets ScopedPath act as a JSON map key.
func (p ScopedPath) MarshalText() ([]byte, error) {
	return []byte(p.rel), nil
}

// UnmarshalText validates a map key.
func (p *ScopedPath) UnmarshalText(text []byte) error {
	parsed, err := NewScopedPath(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
