// Command studypal is a terminal client for the StudyPal study assistant.
//
// Usage:
//
//	studypal [flags] [command] [command flags] [args]
//
// Commands:
//
//	chat                   Interactive chat (default)
//	solve <file.png>       Send a drawn problem to the canvas solver
//	present -topic <text>  Generate a presentation and follow its progress
//	render [-html] <glob>  Render local markdown files
//	health                 Check backend health
//
// Flags:
//
//	-chat-url string          Chat backend URL (env STUDYPAL_CHAT_URL)
//	-canvas-url string        Canvas solver URL (env STUDYPAL_CANVAS_URL)
//	-presentation-url string  Presentation WebSocket URL (env STUDYPAL_PRESENTATION_URL)
//	-user-id string           User identifier (env STUDYPAL_USER_ID)
//	-idle-timeout duration    Fail a chat stream that stalls this long (0 disables)
//	-session string           Path to session file to resume and save
//	-verbose                  Log diagnostics to stderr
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Getenv, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "studypal: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, getenv func(string) string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("studypal", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var f flags
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := resolveConfig(f, getenv)
	if err != nil {
		return err
	}
	cfg.logger = newLogger(cfg.verbose, stderr)

	command, rest := "chat", fs.Args()
	if len(rest) > 0 {
		command, rest = rest[0], rest[1:]
	}

	switch command {
	case "chat":
		return runChat(ctx, cfg)
	case "solve":
		return runSolve(ctx, cfg, rest, stdout)
	case "present":
		return runPresent(ctx, cfg, rest, stdout, stderr)
	case "render":
		return runRender(rest, stdout, stderr)
	case "health":
		return runHealth(ctx, cfg, stdout)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

// newLogger returns a text logger on w when verbose is set and a discarding
// logger otherwise.
func newLogger(verbose bool, w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
