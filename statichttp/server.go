package statichttp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/browser"
	"golang.org/x/sync/errgroup"
)

// DefaultPort is the port used when none is configured.
const DefaultPort = 8888

// shutdownTimeout bounds how long a stopping server waits for in-flight
// requests before closing their connections.
const shutdownTimeout = 5 * time.Second

// Startup validation and bind errors. Callers classify them with errors.Is
// to decide on exit codes and operator hints.
var (
	ErrInvalidPort       = errors.New("port must be between 1 and 65535")
	ErrDirectoryNotFound = errors.New("directory does not exist")
	ErrNotADirectory     = errors.New("not a directory")
	ErrPortInUse         = errors.New("port already in use")
)

// Server serves static files from Root over HTTP on Port. The zero value is
// not usable; Port must be set. Multiple Server values are independent of
// each other: the serving root is passed into the handler rather than held
// in any process-wide state.
type Server struct {
	// Port is the TCP port to listen on. Must be in [1, 65535].
	Port int

	// Root is the directory to serve. Relative paths are resolved against
	// the working directory. Empty means the working directory itself.
	Root string

	// OpenBrowser opens the server URL in the default browser once the
	// listener is bound. Failure to open is a warning, never fatal.
	OpenBrowser bool

	// Out receives the startup banner and operational notices.
	// Defaults to os.Stdout.
	Out io.Writer

	// AccessLog receives one line per handled request.
	// Defaults to os.Stdout.
	AccessLog io.Writer
}

// URL returns the address to browse to once the server is running.
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.Port)
}

// ListenAndServe validates the configuration, binds the listener and serves
// until ctx is cancelled. Cancellation is a clean stop: in-flight requests
// get a grace period, a stop notice is printed, and nil is returned. Any
// validation or bind failure is returned before a single request is served.
func (s *Server) ListenAndServe(ctx context.Context) error {
	root, err := s.resolveRoot()
	if err != nil {
		return err
	}

	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("invalid port %d: %w", s.Port, ErrInvalidPort)
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.Port))
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d: %w", s.Port, ErrPortInUse)
		}
		return fmt.Errorf("binding port %d: %w", s.Port, err)
	}

	s.printBanner(root)

	if s.OpenBrowser {
		if err := browser.OpenURL(s.URL()); err != nil {
			color.New(color.FgYellow).Fprintf(s.out(), "warning: could not open browser: %v\n", err)
		}
	}

	srv := &http.Server{Handler: s.handler(root)}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(s.out(), "[%s] Server stopped\n", time.Now().Format(timeFormat))
	return nil
}

// resolveRoot makes Root absolute and checks that it is an existing
// directory.
func (s *Server) resolveRoot() (string, error) {
	dir := s.Root
	if dir == "" {
		dir = "."
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory %q: %w", dir, err)
	}

	info, err := os.Stat(abs)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("directory %q: %w", abs, ErrDirectoryNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("checking directory %q: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%q: %w", abs, ErrNotADirectory)
	}

	return abs, nil
}

func (s *Server) printBanner(root string) {
	w := s.out()
	color.New(color.FgGreen).Fprintln(w, "Server started")
	fmt.Fprintf(w, "  URL:       %s\n", s.URL())
	fmt.Fprintf(w, "  Directory: %s\n", root)
	fmt.Fprintf(w, "  Port:      %d\n", s.Port)
	fmt.Fprintf(w, "  Started:   %s\n", time.Now().Format(timeFormat))
	fmt.Fprintln(w, "Press Ctrl+C to stop the server")
}

func (s *Server) out() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stdout
}

func (s *Server) accessLog() io.Writer {
	if s.AccessLog != nil {
		return s.AccessLog
	}
	return os.Stdout
}
