package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"time"
)

const (
	defaultChatURL         = "http://localhost:8012"
	defaultCanvasURL       = "http://localhost:8000"
	defaultPresentationURL = "ws://localhost:8002"
	defaultUserID          = "default"
	defaultIdleTimeout     = 2 * time.Minute
)

// flags holds raw command-line values. Empty strings mean "not set".
type flags struct {
	chatURL         string
	canvasURL       string
	presentationURL string
	userID          string
	idleTimeout     time.Duration
	sessionPath     string
	verbose         bool
}

func (f *flags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.chatURL, "chat-url", "", "Chat backend URL (env STUDYPAL_CHAT_URL)")
	fs.StringVar(&f.canvasURL, "canvas-url", "", "Canvas solver URL (env STUDYPAL_CANVAS_URL)")
	fs.StringVar(&f.presentationURL, "presentation-url", "", "Presentation WebSocket URL (env STUDYPAL_PRESENTATION_URL)")
	fs.StringVar(&f.userID, "user-id", "", "User identifier (env STUDYPAL_USER_ID)")
	fs.DurationVar(&f.idleTimeout, "idle-timeout", defaultIdleTimeout, "Fail a chat stream that stalls this long (0 disables)")
	fs.StringVar(&f.sessionPath, "session", "", "Path to session file to resume and save")
	fs.BoolVar(&f.verbose, "verbose", false, "Log diagnostics to stderr")
}

// config is the resolved configuration passed down to the commands.
type config struct {
	chatURL         string
	canvasURL       string
	presentationURL string
	userID          string
	idleTimeout     time.Duration
	sessionPath     string
	verbose         bool
	logger          *slog.Logger
}

// resolveConfig applies flag > environment > default precedence. Env vars
// are only read through getenv.
func resolveConfig(f flags, getenv func(string) string) (config, error) {
	cfg := config{
		chatURL:         pick(f.chatURL, getenv("STUDYPAL_CHAT_URL"), defaultChatURL),
		canvasURL:       pick(f.canvasURL, getenv("STUDYPAL_CANVAS_URL"), defaultCanvasURL),
		presentationURL: pick(f.presentationURL, getenv("STUDYPAL_PRESENTATION_URL"), defaultPresentationURL),
		userID:          pick(f.userID, getenv("STUDYPAL_USER_ID"), defaultUserID),
		idleTimeout:     f.idleTimeout,
		sessionPath:     f.sessionPath,
		verbose:         f.verbose,
	}
	if cfg.idleTimeout < 0 {
		return config{}, fmt.Errorf("idle timeout must not be negative, got %s", cfg.idleTimeout)
	}
	for _, c := range []struct{ name, raw string }{
		{"chat URL", cfg.chatURL},
		{"canvas URL", cfg.canvasURL},
		{"presentation URL", cfg.presentationURL},
	} {
		u, err := url.Parse(c.raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return config{}, fmt.Errorf("invalid %s %q", c.name, c.raw)
		}
	}
	return cfg, nil
}

func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
