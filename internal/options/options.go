// Package options is the configuration accessor regions and the layout read
// from: flat dotted keys such as "taglist.maxwidth" or "infobox.float".
package options

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Per-region option suffixes.
const (
	MaxWidth  = "maxwidth"
	MaxHeight = "maxheight"
	Align     = "align"
	Float     = "float"
	Keys      = "keys"
)

// Global option keys.
const (
	Layout       = "layout"
	SyncInterval = "sync_interval"
)

// Accessor is the read side handed to regions and the layout.
type Accessor interface {
	Opt(key string) (interface{}, bool)
	Int(key string) int
	Bool(key string) bool
	String(key string) string
	KeyBindings(name string) map[string]string
}

// Options is a concurrency-safe flat option map.
type Options struct {
	mu     sync.RWMutex
	values map[string]interface{}
}

// New returns options populated with the built-in defaults.
func New() *Options {
	o := &Options{values: make(map[string]interface{})}
	flatten("", defaults(), o.values)
	return o
}

// Load reads a YAML option file on top of the defaults. A missing file is not
// an error.
func Load(path string) (*Options, error) {
	o := New()
	if strings.TrimSpace(path) == "" {
		return o, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return o, nil
		}
		return nil, fmt.Errorf("failed to read options: %w", err)
	}
	if err := o.Merge(data); err != nil {
		return nil, err
	}
	return o, nil
}

// Merge parses YAML and overlays it on the current values.
func (o *Options) Merge(data []byte) error {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse options: %w", err)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	flatten("", raw, o.values)
	return nil
}

func flatten(prefix string, in map[string]interface{}, out map[string]interface{}) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if k == Keys && prefix != "" {
			out[key] = mergeBindings(out[key], v)
			continue
		}
		if nested, ok := v.(map[string]interface{}); ok {
			flatten(key, nested, out)
			continue
		}
		out[key] = v
	}
}

func mergeBindings(existing, v interface{}) map[string]string {
	merged := make(map[string]string)
	if cur, ok := existing.(map[string]string); ok {
		for k, cmd := range cur {
			merged[k] = cmd
		}
	}
	switch m := v.(type) {
	case map[string]interface{}:
		for k, cmd := range m {
			merged[k] = fmt.Sprint(cmd)
		}
	case map[string]string:
		for k, cmd := range m {
			merged[k] = cmd
		}
	}
	return merged
}

// Set overrides a single option.
func (o *Options) Set(key string, value interface{}) {
	o.mu.Lock()
	o.values[key] = value
	o.mu.Unlock()
}

// Opt returns the raw value for key.
func (o *Options) Opt(key string) (interface{}, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	v, ok := o.values[key]
	return v, ok
}

// Int returns key as an integer; unset or non-numeric values read as zero,
// which callers treat as unbounded.
func (o *Options) Int(key string) int {
	v, _ := o.Opt(key)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0
		}
		return parsed
	}
	return 0
}

func (o *Options) Bool(key string) bool {
	v, _ := o.Opt(key)
	switch b := v.(type) {
	case bool:
		return b
	case string:
		parsed, _ := strconv.ParseBool(strings.TrimSpace(b))
		return parsed
	}
	return false
}

func (o *Options) String(key string) string {
	v, ok := o.Opt(key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// KeyBindings returns a copy of the key map configured for region name.
func (o *Options) KeyBindings(name string) map[string]string {
	v, _ := o.Opt(name + "." + Keys)
	out := make(map[string]string)
	if m, ok := v.(map[string]string); ok {
		for k, cmd := range m {
			out[k] = cmd
		}
	}
	return out
}

// MaxWidth and MaxHeight satisfy layout.Limits.
func (o *Options) MaxWidth(name string) int  { return o.Int(name + "." + MaxWidth) }
func (o *Options) MaxHeight(name string) int { return o.Int(name + "." + MaxHeight) }

// Align returns the configured alignment tag for name.
func (o *Options) Align(name string) string { return o.String(name + "." + Align) }

// Floating reports whether name is configured as a float.
func (o *Options) Floating(name string) bool { return o.Bool(name + "." + Float) }
