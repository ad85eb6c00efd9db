package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/atomicstack/feedterm/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
	Debug    bool
}

const (
	envOptions      = "FEEDTERM_OPTIONS"
	envLayout       = "FEEDTERM_LAYOUT"
	envFeed         = "FEEDTERM_FEED"
	envTick         = "FEEDTERM_TICK"
	envSyncInterval = "FEEDTERM_SYNC_INTERVAL"
	envTrace        = "FEEDTERM_TRACE"
	envDebug        = "FEEDTERM_DEBUG"
	envLogFile      = "FEEDTERM_LOG_FILE"
)

// Flags holds the bound flag values until Resolve turns them into a Config.
type Flags struct {
	options      *string
	layout       *string
	feeds        *[]string
	tick         *time.Duration
	syncInterval *int
	trace        *bool
	debug        *bool
	logFile      *string
}

// Bind registers every flag on fs, using environment values as defaults.
func Bind(fs *pflag.FlagSet, environ []string) *Flags {
	env := parseEnv(environ)
	return &Flags{
		options:      fs.String("options", envOrDefault(env, envOptions, ""), "path to the YAML option file"),
		layout:       fs.String("layout", envOrDefault(env, envLayout, ""), "window layout: default, hstack or vstack (overrides the option file)"),
		feeds:        fs.StringSlice("feed", envOrList(env, envFeed), "item file to track; repeatable"),
		tick:         fs.Duration("tick", envOrDuration(env, envTick, time.Second), "interval between sync countdown ticks"),
		syncInterval: fs.Int("sync-interval", envOrInt(env, envSyncInterval, 0), "ticks between background syncs (0 uses the option file)"),
		trace:        fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging"),
		debug:        fs.Bool("debug", envOrBool(env, envDebug, false), "enable debug level logging"),
		logFile:      fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file"),
	}
}

// Resolve validates the parsed flags and builds the runtime configuration.
func (f *Flags) Resolve(args []string) (Config, error) {
	if *f.tick <= 0 {
		return Config{}, fmt.Errorf("tick must be > 0 (got %s)", *f.tick)
	}
	if *f.syncInterval < 0 {
		return Config{}, fmt.Errorf("sync-interval must be >= 0 (got %d)", *f.syncInterval)
	}
	layout := strings.TrimSpace(*f.layout)
	switch layout {
	case "", "default", "hstack", "vstack":
	default:
		return Config{}, fmt.Errorf("unknown layout %q", layout)
	}

	cfg := Config{
		App: app.Config{
			OptionsPath:  *f.options,
			Layout:       layout,
			Feeds:        append([]string(nil), (*f.feeds)...),
			Tick:         *f.tick,
			SyncInterval: *f.syncInterval,
		},
		Logging: Logging{
			FilePath: *f.logFile,
			Trace:    *f.trace,
			Debug:    *f.debug,
		},
		Flags: map[string]string{
			"options":       *f.options,
			"layout":        layout,
			"feed":          strings.Join(*f.feeds, ","),
			"tick":          f.tick.String(),
			"sync-interval": strconv.Itoa(*f.syncInterval),
			"trace":         strconv.FormatBool(*f.trace),
			"debug":         strconv.FormatBool(*f.debug),
			"logFile":       *f.logFile,
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("feedterm", pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	flags := Bind(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return flags.Resolve(args)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrList(env map[string]string, key string) []string {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, string(os.PathListSeparator)) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	for _, feed := range cfg.App.Feeds {
		if _, err := os.Stat(feed); err != nil {
			return fmt.Errorf("feed %s: %w", feed, err)
		}
	}
	return nil
}
