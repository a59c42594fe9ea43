package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/text2048/internal/platform/tui"
	"github.com/vovakirdan/text2048/internal/transport/websocket"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagWSAddr      string
	flagWSPath      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host games over SSH and/or WebSocket",
	Long: `Start servers that let remote players play.

Every SSH connection and every WebSocket connection plays its own game.
SSH clients with a terminal get the same prompt as "text2048 play";
clients without one (ssh host < moves.txt) get the plain line protocol.
WebSocket clients send one command per text frame and receive JSON replies.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.text2048/host_key

Examples:
  text2048 serve                         # SSH on :23234
  text2048 serve --ssh :2222             # SSH on port 2222
  text2048 serve --ws :8080              # SSH and WebSocket on :8080/play
  text2048 serve --ssh "" --ws :8080     # WebSocket only

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port), empty to disable")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagWSAddr, "ws", "", "WebSocket server address (host:port), empty to disable")
	serveCmd.Flags().StringVar(&flagWSPath, "ws-path", "/play", "WebSocket endpoint path")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := appConfig
	flags := cmd.Flags()
	if flags.Changed("ssh") {
		cfg.SSH.Address = flagSSHAddr
	}
	if flags.Changed("host-key") {
		cfg.SSH.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		cfg.SSH.IdleTimeoutMinutes = flagIdleTimeout
	}
	if flags.Changed("ws") {
		cfg.WebSocket.Address = flagWSAddr
	}
	if flags.Changed("ws-path") {
		cfg.WebSocket.Path = flagWSPath
	}

	if cfg.SSH.Address == "" && cfg.WebSocket.Address == "" {
		return errors.New("nothing to serve, set --ssh or --ws")
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	sessions := newRegistry(store, logger.WithPrefix("game"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	run := func(serve func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := serve(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
				stop()
			}
		}()
	}

	if cfg.SSH.Address != "" {
		server, err := tui.NewSSHServer(tui.SSHServerConfig{
			Address:     cfg.SSH.Address,
			HostKeyPath: cfg.SSH.HostKeyPath,
			IdleTimeout: cfg.SSH.IdleTimeout(),
			Prompt:      cfg.Prompt,
		}, sessions, logger.WithPrefix("ssh"))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), sshHint(cfg.SSH.Address))
		run(server.ListenAndServe)
	}

	if cfg.WebSocket.Address != "" {
		mux := http.NewServeMux()
		mux.Handle(cfg.WebSocket.Path, websocket.NewHandler(sessions, logger.WithPrefix("ws")))
		httpServer := &http.Server{
			Addr:              cfg.WebSocket.Address,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		}
		fmt.Fprintf(cmd.OutOrStdout(), "WebSocket endpoint: ws://localhost%s%s\n", cfg.WebSocket.Address, cfg.WebSocket.Path)
		run(func(ctx context.Context) error {
			return serveHTTP(ctx, httpServer)
		})
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Press Ctrl+C to stop")
	wg.Wait()

	return errors.Join(errs...)
}

// serveHTTP runs srv until ctx is cancelled, then shuts it down gracefully.
func serveHTTP(ctx context.Context, srv *http.Server) error {
	logger.Info("starting WebSocket server", "address", srv.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("websocket server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down WebSocket server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// sshHint tells players how to reach an SSH listen address.
func sshHint(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "Connect with: ssh " + addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return fmt.Sprintf("Connect with: ssh %s -p %s", host, port)
}
