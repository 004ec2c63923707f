package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-puzzle/internal/levels"
	"github.com/vovakirdan/snake-puzzle/internal/platform/httpapi"
	"github.com/vovakirdan/snake-puzzle/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
	flagServeWatch  bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH and HTTP servers",
	Long: `Start an SSH server for remote terminal play and an HTTP API for
headless sessions. Each SSH connection gets its own level picker; all
players share the run history.

Addresses default to the server section of the config. Pass an empty
address to disable a server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses server.host_key_path from the config

Examples:
  snakepuzzle serve                      # SSH on :23234, HTTP on :8080
  snakepuzzle serve --ssh :2222 --http ""
  snakepuzzle serve --levels ./levels --watch

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP API address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagServeWatch, "watch", false, "Reload level files for new sessions when they change")
}

func runServe(cmd *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		exitf("%v", err)
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		exitf("%v", err)
	}
	if cmd.Flags().Changed("ssh") {
		cfg.Server.SSHAddr = flagSSHAddr
	}
	if cmd.Flags().Changed("http") {
		cfg.Server.HTTPAddr = flagHTTPAddr
	}
	if flagHostKey != "" {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if cfg.Server.SSHAddr == "" && cfg.Server.HTTPAddr == "" {
		exitf("both servers are disabled")
	}

	loader, pack, err := loadPack(cfg, logger)
	if err != nil {
		exitf("%v", err)
	}
	store := openStore(cfg, logger)
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// updaters receive watched level changes.
	var updaters []func(levels.Level)
	var servers []func(context.Context) error

	if cfg.Server.SSHAddr != "" {
		sshCfg := tui.DefaultSSHServerConfig()
		sshCfg.Address = cfg.Server.SSHAddr
		sshCfg.HostKeyPath = cfg.Server.HostKeyPath
		sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		sshCfg.TickRate = flagFPS

		sshServer, err := tui.NewSSHServer(sshCfg, cfg, pack, store, logger.WithPrefix("ssh"))
		if err != nil {
			exitf("creating SSH server: %v", err)
		}
		updaters = append(updaters, sshServer.UpdateLevel)
		servers = append(servers, sshServer.Serve)
		fmt.Printf("SSH: ssh localhost -p %s\n", portOf(cfg.Server.SSHAddr))
	}

	if cfg.Server.HTTPAddr != "" {
		httpServer := httpapi.New(httpapi.Options{
			Config: cfg,
			Pack:   pack,
			Store:  store,
			Logger: logger.WithPrefix("http"),
		})
		addr := cfg.Server.HTTPAddr
		updaters = append(updaters, httpServer.UpdateLevel)
		servers = append(servers, func(ctx context.Context) error {
			return httpServer.Serve(ctx, addr)
		})
		fmt.Printf("HTTP: http://localhost:%s/levels\n", portOf(addr))
	}

	if flagServeWatch {
		go func() {
			err := loader.Watch(ctx, func(c levels.Change) {
				if c.Err != nil || c.Removed {
					return
				}
				for _, update := range updaters {
					update(c.Level)
				}
			})
			if err != nil {
				logger.Warn("level watch stopped", "error", err)
			}
		}()
	}

	fmt.Println("Press Ctrl+C to stop")

	var wg sync.WaitGroup
	errc := make(chan error, len(servers))
	for _, serve := range servers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := serve(ctx); err != nil {
				errc <- err
				stop()
			}
		}()
	}
	wg.Wait()
	close(errc)

	failed := false
	for err := range errc {
		logger.Error("server error", "error", err)
		failed = true
	}
	if failed {
		closeLog()
		os.Exit(1)
	}
}

// portOf returns the port part of a listen address.
func portOf(addr string) string {
	if _, port, err := net.SplitHostPort(addr); err == nil {
		return port
	}
	return addr
}
