// Package sink carries out the side effects dispatched by the action
// executor: launching the browser, mutating the snapshot's tabs and
// bookmarks, and copying text to the system clipboard.
package sink

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/google/shlex"
	"github.com/muesli/termenv"

	"github.com/runger/omnibar/internal/browser"
	"github.com/runger/omnibar/internal/logging"
)

// tabMutator is the slice of the tab store the sink needs.
type tabMutator interface {
	Activate(ctx context.Context, tabID, windowID int) error
	Remove(ctx context.Context, tabID int) error
}

// bookmarkMutator is the slice of the bookmark store the sink needs.
type bookmarkMutator interface {
	Create(ctx context.Context, title, url string) (string, error)
	Remove(ctx context.Context, id string) error
}

// Config wires a Sink.
type Config struct {
	// Command is the browser launch command line, e.g. "firefox --new-tab %s".
	// A "%s" placeholder receives the URL; without one the URL is appended.
	// Empty means use the platform opener (xdg-open / open).
	Command string

	// NewTabURL and NewWindowURL are opened by the new-tab and new-window
	// actions respectively.
	NewTabURL    string
	NewWindowURL string

	Tabs      tabMutator
	Bookmarks bookmarkMutator
	Logger    *slog.Logger
}

// Sink implements browser.ActionSink against a local browser command and
// the snapshot store.
type Sink struct {
	command      string
	newTabURL    string
	newWindowURL string
	tabs         tabMutator
	bookmarks    bookmarkMutator
	logger       *slog.Logger

	// launch and copy are swapped out in tests
	launch func(ctx context.Context, argv []string) error
	copy   func(text string)
}

var _ browser.ActionSink = (*Sink)(nil)

// New builds a Sink from cfg.
func New(cfg Config) *Sink {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &Sink{
		command:      cfg.Command,
		newTabURL:    cfg.NewTabURL,
		newWindowURL: cfg.NewWindowURL,
		tabs:         cfg.Tabs,
		bookmarks:    cfg.Bookmarks,
		logger:       logger,
		launch:       launchDetached,
		copy:         copyOSC52,
	}
}

// OpenURL launches the configured browser command with the URL.
func (s *Sink) OpenURL(ctx context.Context, url string) error {
	if url == "" {
		return fmt.Errorf("no url to open")
	}
	argv, err := s.buildArgv(url)
	if err != nil {
		return err
	}
	s.logger.Debug("opening url", "url", url, "command", argv[0])
	return s.launch(ctx, argv)
}

// NewTab opens the configured new-tab page.
func (s *Sink) NewTab(ctx context.Context) error {
	return s.OpenURL(ctx, s.newTabURL)
}

// NewWindow opens the configured new-window page.
func (s *Sink) NewWindow(ctx context.Context) error {
	return s.OpenURL(ctx, s.newWindowURL)
}

// CloseTab removes the tab from the snapshot.
func (s *Sink) CloseTab(ctx context.Context, tabID int) error {
	if s.tabs == nil {
		return fmt.Errorf("no tab store configured")
	}
	return s.tabs.Remove(ctx, tabID)
}

// FocusTab marks the tab active in the snapshot.
func (s *Sink) FocusTab(ctx context.Context, tabID, windowID int) error {
	if s.tabs == nil {
		return fmt.Errorf("no tab store configured")
	}
	return s.tabs.Activate(ctx, tabID, windowID)
}

// CreateBookmark adds a leaf bookmark to the snapshot.
func (s *Sink) CreateBookmark(ctx context.Context, title, url string) error {
	if s.bookmarks == nil {
		return fmt.Errorf("no bookmark store configured")
	}
	id, err := s.bookmarks.Create(ctx, title, url)
	if err != nil {
		return err
	}
	s.logger.Debug("bookmark created", "id", id, "url", url)
	return nil
}

// RemoveBookmark deletes a bookmark from the snapshot.
func (s *Sink) RemoveBookmark(ctx context.Context, bookmarkID string) error {
	if s.bookmarks == nil {
		return fmt.Errorf("no bookmark store configured")
	}
	return s.bookmarks.Remove(ctx, bookmarkID)
}

// CopyText places text on the system clipboard via OSC 52, which works
// through SSH and terminal multiplexers.
func (s *Sink) CopyText(_ context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("nothing to copy")
	}
	s.copy(text)
	return nil
}

// buildArgv turns the command template and URL into an argv. The command
// is split POSIX-style so quoted arguments survive.
func (s *Sink) buildArgv(url string) ([]string, error) {
	command := s.command
	if command == "" {
		command = platformOpener()
	}
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("splitting browser command: %w", err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty browser command")
	}

	substituted := false
	for i, arg := range argv {
		if strings.Contains(arg, "%s") {
			argv[i] = strings.ReplaceAll(arg, "%s", url)
			substituted = true
		}
	}
	if !substituted {
		argv = append(argv, url)
	}
	return argv, nil
}

func platformOpener() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}

// launchDetached starts the command without waiting for it; a browser
// process outlives the picker.
func launchDetached(ctx context.Context, argv []string) error {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launching %s: %w", argv[0], err)
	}
	return cmd.Process.Release()
}

func copyOSC52(text string) {
	termenv.NewOutput(os.Stdout).Copy(text)
}
