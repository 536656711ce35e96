package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"devserver/statichttp"

	"github.com/fatih/color"
)

// Version is the version of the build, overridable with -ldflags.
var Version = "dev"

func main() {
	var (
		port        int
		dir         string
		open        bool
		configPath  string
		showVersion bool
	)
	flag.IntVar(&port, "p", statichttp.DefaultPort, "the localhost port to listen on")
	flag.IntVar(&port, "port", statichttp.DefaultPort, "the localhost port to listen on")
	flag.StringVar(&dir, "d", "", "the directory to serve (default: current directory)")
	flag.StringVar(&dir, "directory", "", "the directory to serve (default: current directory)")
	flag.BoolVar(&open, "o", false, "open the default browser once the server starts")
	flag.BoolVar(&open, "open", false, "open the default browser once the server starts")
	flag.StringVar(&configPath, "c", "", "path to a YAML configuration file")
	flag.StringVar(&configPath, "config", "", "path to a YAML configuration file")
	flag.BoolVar(&showVersion, "version", false, "print the version and exit")
	flag.Parse()

	if showVersion {
		fmt.Println(Version)
		os.Exit(0)
	}

	srv := &statichttp.Server{
		Port:        port,
		Root:        dir,
		OpenBrowser: open,
	}

	if configPath != "" {
		cfg, err := statichttp.LoadConfigFile(configPath)
		if err != nil {
			fatal(err)
		}
		applyConfig(srv, cfg, setFlags())
	}

	if srv.Root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			fatal(fmt.Errorf("could not get current working directory: %w", err))
		}
		srv.Root = cwd
	}

	// Log server configs
	fmt.Println()
	log.Print("Server configs:")
	log.Printf("  port: %v", srv.Port)
	log.Printf("  directory: %v", srv.Root)
	log.Printf("  open browser: %v", srv.OpenBrowser)
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		if errors.Is(err, statichttp.ErrPortInUse) {
			fatal(fmt.Errorf("%w (try another port with -p)", err))
		}
		fatal(err)
	}
}

// setFlags reports which flags were given explicitly on the command line.
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// applyConfig fills srv from cfg for every setting not already given as an
// explicit flag. Zero values in cfg count as unset.
func applyConfig(srv *statichttp.Server, cfg *statichttp.FileConfig, set map[string]bool) {
	if cfg.Port != 0 && !set["p"] && !set["port"] {
		srv.Port = cfg.Port
	}
	if cfg.Directory != "" && !set["d"] && !set["directory"] {
		srv.Root = cfg.Directory
	}
	if cfg.Open && !set["o"] && !set["open"] {
		srv.OpenBrowser = true
	}
}

func fatal(err error) {
	color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
