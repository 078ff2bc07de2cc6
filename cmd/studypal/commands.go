package main

import (
	"context"
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/studypal"
	"github.com/fwojciec/studypal/backend"
	bt "github.com/fwojciec/studypal/bubbletea"
	"github.com/fwojciec/studypal/html"
	spjson "github.com/fwojciec/studypal/json"
	"github.com/fwojciec/studypal/markdown"
	"github.com/fwojciec/studypal/terminal"
	"github.com/fwojciec/studypal/websocket"
)

const defaultRenderWidth = 80

func runChat(ctx context.Context, cfg config) error {
	session, err := loadOrCreateSession(cfg.sessionPath)
	if err != nil {
		return err
	}

	client := backend.New(
		backend.WithBaseURL(cfg.chatURL),
		backend.WithUserID(cfg.userID),
		backend.WithIdleTimeout(cfg.idleTimeout),
		backend.WithLogger(cfg.logger),
	)
	send, reset := bt.ChatFuncs(studypal.NewChat(client, cfg.userID))
	m := bt.New(send, &session, studypal.DefaultTheme(), bt.WithReset(reset))

	if err := bt.Run(ctx, m); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}

	if cfg.sessionPath != "" {
		if err := spjson.Save(cfg.sessionPath, session); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
	}
	return nil
}

// loadOrCreateSession resumes the session at path when it exists and starts
// an empty one otherwise.
func loadOrCreateSession(path string) (studypal.Session, error) {
	if path != "" {
		s, err := spjson.Load(path)
		switch {
		case err == nil:
			return s, nil
		case !errors.Is(err, os.ErrNotExist):
			return studypal.Session{}, fmt.Errorf("load session: %w", err)
		}
	}
	now := time.Now()
	return studypal.Session{CreatedAt: now, UpdatedAt: now}, nil
}

func runSolve(ctx context.Context, cfg config, args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return errors.New("usage: studypal solve <file.png>")
	}
	image, err := imageDataURI(args[0])
	if err != nil {
		return err
	}

	client := backend.New(backend.WithBaseURL(cfg.canvasURL), backend.WithLogger(cfg.logger))
	sol, err := client.Solve(ctx, image)
	if err != nil {
		return err
	}
	if !sol.Success {
		msg := sol.Error
		if msg == "" {
			msg = "unknown error"
		}
		return fmt.Errorf("solver failed: %s", msg)
	}
	fmt.Fprintln(stdout, sol.HTML)
	return nil
}

// imageDataURI reads an image file and encodes it as a base64 data URI.
func imageDataURI(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	mime := http.DetectContentType(data)
	uri := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	if err := studypal.ValidateImageSource(uri); err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return uri, nil
}

func runPresent(ctx context.Context, cfg config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("present", flag.ContinueOnError)
	fs.SetOutput(stderr)
	def := studypal.DefaultPresentationRequest("")
	topic := fs.String("topic", "", "Presentation topic")
	slides := fs.Int("slides", def.SlideCount, "Number of slides")
	tone := fs.String("tone", def.Tone, "Tone of voice")
	theme := fs.String("theme", def.Theme, "Visual theme")
	if err := fs.Parse(args); err != nil {
		return err
	}
	req := studypal.PresentationRequest{Topic: *topic, SlideCount: *slides, Tone: *tone, Theme: *theme}
	if err := req.Validate(); err != nil {
		return err
	}

	presenter := websocket.NewPresenter(cfg.presentationURL, websocket.WithLogger(cfg.logger))
	return present(ctx, presenter, req, stdout)
}

// present runs one presentation and prints its progress until the feed
// ends.
func present(ctx context.Context, p studypal.Presenter, req studypal.PresentationRequest, stdout io.Writer) error {
	feed, err := p.Open(ctx, fmt.Sprintf("%d", time.Now().UnixNano()))
	if err != nil {
		return err
	}
	defer feed.Close()

	// Unblock Next when the user interrupts.
	stop := context.AfterFunc(ctx, func() { feed.Close() })
	defer stop()

	if err := feed.Start(ctx, req); err != nil {
		return err
	}

	theme := studypal.DefaultTheme()
	for {
		msg, err := feed.Next()
		if err == io.EOF {
			return ctx.Err()
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		switch m := msg.(type) {
		case studypal.PresentationProgress:
			fmt.Fprintf(stdout, "[%3d%%] %s\n", m.Progress, m.Message)
		case studypal.SlidePreview:
			nodes := []studypal.Node{studypal.NodeSectionHeader{Text: fmt.Sprintf("Slide %d: %s", m.SlideNumber, m.Title)}}
			for _, point := range m.Points {
				nodes = append(nodes, studypal.NodeBullet{Text: point})
			}
			if m.Thumbnail != "" {
				nodes = append(nodes, studypal.NodeImage{Alt: fmt.Sprintf("slide %d", m.SlideNumber), Src: m.Thumbnail})
			}
			fmt.Fprint(stdout, terminal.Render(nodes, defaultRenderWidth, theme))
		case studypal.ImageStatus:
			fmt.Fprintf(stdout, "slide %d image %s\n", m.SlideNumber, m.Status)
		case studypal.SlideCompleted:
			fmt.Fprintf(stdout, "completed slide %q\n", m.Title)
		case studypal.PresentationCreated:
			fmt.Fprintf(stdout, "presentation created: %s\n", m.URL)
		case studypal.PresentationCompleted:
			fmt.Fprintf(stdout, "%s (%d slides)\n%s\n", m.Title, m.TotalSlides, m.URL)
		case studypal.PresentationError:
			return fmt.Errorf("presentation failed: %s", m.Message)
		}
	}
}

func runRender(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asHTML := fs.Bool("html", false, "Render HTML instead of ANSI text")
	width := fs.Int("width", defaultRenderWidth, "Wrap width for ANSI output")
	copied := fs.String("copied", "", "Comma-separated code block ids to show as copied in HTML output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("usage: studypal render [-html] [-copied ids] [-width n] <glob>...")
	}

	var paths []string
	for _, pattern := range fs.Args() {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("glob %q: %w", pattern, err)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no files match %s", strings.Join(fs.Args(), " "))
	}

	theme := studypal.DefaultTheme()
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		nodes := markdown.Parse(string(data))
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		if *asHTML {
			var cs html.CopyState
			for _, id := range strings.Split(*copied, ",") {
				if id = strings.TrimSpace(id); id != "" {
					cs.MarkCopied(id)
				}
			}
			fmt.Fprintln(stdout, html.Render(nodes, &cs))
			continue
		}
		fmt.Fprint(stdout, terminal.Render(nodes, *width, theme))
	}
	return nil
}

func runHealth(ctx context.Context, cfg config, stdout io.Writer) error {
	var unhealthy []string
	for _, svc := range []struct{ name, url string }{
		{"chat", cfg.chatURL},
		{"canvas", cfg.canvasURL},
	} {
		client := backend.New(backend.WithBaseURL(svc.url), backend.WithLogger(cfg.logger))
		ok, err := client.Health(ctx)
		switch {
		case err != nil:
			cfg.logger.Debug("health check failed", "service", svc.name, "error", err)
			fmt.Fprintf(stdout, "%s: unreachable\n", svc.name)
			unhealthy = append(unhealthy, svc.name)
		case !ok:
			fmt.Fprintf(stdout, "%s: unhealthy\n", svc.name)
			unhealthy = append(unhealthy, svc.name)
		default:
			fmt.Fprintf(stdout, "%s: healthy\n", svc.name)
		}
	}
	if len(unhealthy) > 0 {
		return fmt.Errorf("unhealthy services: %s", strings.Join(unhealthy, ", "))
	}
	return nil
}
