package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/linkki-framework/linkki-sub003/pkg/buildinfo"
	"github.com/linkki-framework/linkki-sub003/pkg/console"
	"github.com/linkki-framework/linkki-sub003/pkg/formrpc"
	"github.com/linkki-framework/linkki-sub003/pkg/sys"
)

// Runs f with an opened app and a context that is canceled on interrupt.
func (a *app) run(f func(ctx context.Context) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	defer a.profiles.Start(os.Stderr)()
	if err := a.open(ctx); err != nil {
		return err
	}
	defer a.close()
	return f(ctx)
}

func newStdioCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "serve JSON-RPC over stdin and stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sys.IsFileATTY(os.Stdin) {
				fmt.Fprintln(cmd.ErrOrStderr(),
					"formserve: stdin is a terminal; expecting JSON-RPC messages (use \"formserve console\" to edit interactively)")
			}
			return a.run(func(ctx context.Context) error {
				s, err := a.newSession()
				if err != nil {
					return err
				}
				defer a.hub.Remove(s)
				err = formrpc.Serve(ctx, formrpc.StdioStream(os.Stdin, os.Stdout), s)
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})
		},
	}
}

func newListenCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "serve JSON-RPC over websockets",
		Long: `Listen serves JSON-RPC over websockets at the path /form. Each connection
gets its own form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(func(ctx context.Context) error {
				return listen(ctx, a, addr)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "address to listen on")
	return cmd
}

func listen(ctx context.Context, a *app, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/form", formrpc.WebsocketHandler(ctx, a.hub, a.newForm))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
	logger.Println("listening on", addr)
	err := srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func newConsoleCmd(a *app) *cobra.Command {
	var history string
	cmd := &cobra.Command{
		Use:   "console",
		Short: "edit contacts interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !sys.IsFileATTY(os.Stdin) {
				return errors.New("console needs a terminal; use \"formserve stdio\" for JSON-RPC")
			}
			return a.run(func(ctx context.Context) error {
				s, err := a.newSession()
				if err != nil {
					return err
				}
				defer a.hub.Remove(s)
				return console.RunTerminal(s, history)
			})
		},
	}
	cmd.Flags().StringVar(&history, "history", "", "file to keep the command history in")
	return cmd
}

func newBuildInfoCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "buildinfo",
		Short: "show build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !asJSON {
				fmt.Fprint(out, buildinfo.Value)
				return nil
			}
			return json.NewEncoder(out).Encode(buildinfo.Value)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "show build information as JSON")
	return cmd
}
