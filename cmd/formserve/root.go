package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linkki-framework/linkki-sub003/pkg/behavior"
	"github.com/linkki-framework/linkki-sub003/pkg/buildinfo"
	"github.com/linkki-framework/linkki-sub003/pkg/contactform"
	"github.com/linkki-framework/linkki-sub003/pkg/dispatch"
	"github.com/linkki-framework/linkki-sub003/pkg/logutil"
	"github.com/linkki-framework/linkki-sub003/pkg/pprof"
	"github.com/linkki-framework/linkki-sub003/pkg/recordstore"
	"github.com/linkki-framework/linkki-sub003/pkg/session"
)

var logger = logutil.GetLogger("[formserve] ")

// Flags and state shared by all subcommands.
type app struct {
	dbPath     string
	configPath string
	logPath    string
	watch      bool
	profiles   pprof.Flags

	store     *recordstore.Store
	behaviors *behavior.Reloadable
	factory   *dispatch.Factory
	hub       *session.Hub
}

func newRootCmd() *cobra.Command {
	a := &app{}
	stdio := newStdioCmd(a)
	root := &cobra.Command{
		Use:   "formserve",
		Short: "formserve serves the contact form",
		Long: `formserve serves a form for editing contacts stored in a local database.

Without a subcommand it serves JSON-RPC over stdin and stdout, like
"formserve stdio".`,
		Version:      buildinfo.Value.Version,
		SilenceUsage: true,
		RunE:         stdio.RunE,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.dbPath, "db", "contacts.db", "path of the contact database")
	flags.StringVar(&a.configPath, "config", "", "path of the behavior config (YAML)")
	flags.StringVar(&a.logPath, "log", "", "path of the log file; logs are discarded if empty")
	flags.BoolVar(&a.watch, "watch", false, "reload the behavior config when it changes")
	a.profiles.Register(flags)
	root.AddCommand(stdio, newListenCmd(a), newConsoleCmd(a), newBuildInfoCmd())
	return root
}

// Opens the database and loads the behavior config. If watching is enabled,
// the config is reloaded until ctx is done and all sessions in the hub are
// refreshed after each reload.
func (a *app) open(ctx context.Context) error {
	if err := logutil.SetOutputFile(a.logPath); err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	a.hub = session.NewHub()
	a.behaviors = behavior.NewReloadable(nil)
	if a.configPath != "" {
		cfg, err := behavior.LoadConfig(a.configPath)
		if err != nil {
			return err
		}
		a.behaviors.Set(cfg.Provider())
		if a.watch {
			go func() {
				err := behavior.Watch(ctx, a.configPath, a.behaviors, a.hub.RefreshAll)
				if err != nil {
					logger.Printf("watch %s: %v", a.configPath, err)
				}
			}()
		}
	}
	a.factory = &dispatch.Factory{Behaviors: a.behaviors}

	store, err := recordstore.Open(a.dbPath)
	if err != nil {
		return err
	}
	a.store = store
	return nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			logger.Println("close store:", err)
		}
	}
}

func (a *app) newForm() (session.Form, error) {
	contacts := recordstore.NewTable[contactform.Contact](a.store, contactform.Kind)
	return contactform.New(contacts, a.factory)
}

// Creates a form session and adds it to the hub.
func (a *app) newSession() (*session.Session, error) {
	f, err := a.newForm()
	if err != nil {
		return nil, err
	}
	s := session.New(f)
	a.hub.Add(s)
	return s, nil
}
