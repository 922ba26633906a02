// Command gvmd serves the GMP command protocol over TCP. Each
// connection gets its own session; all sessions share one SQLite
// backed core.
package main

import (
	"context"
	"net"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/greenbone/gvmd-sub000/session"
	"github.com/greenbone/gvmd-sub000/sqlcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("GVMD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "gvmd",
		Short:         "Greenbone management protocol server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg, _ := cmd.Flags().GetString("config"); cfg != "" {
				v.SetConfigFile(cfg)
				return v.ReadInConfig()
			}
			return nil
		},
	}
	root.PersistentFlags().String("config", "", "path to a config file")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	v.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newServeCmd(v))
	return root
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept GMP sessions on a TCP listener",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), v)
		},
	}
	cmd.Flags().String("listen", "127.0.0.1:9390", "listen address, or unix:PATH for a socket")
	cmd.Flags().String("db", "gvmd.sqlite", "path to the sqlite database")
	cmd.Flags().StringSlice("disable", nil, "command names to disable")
	cmd.Flags().String("admin-user", "", "create or update this user at startup")
	cmd.Flags().String("admin-password", "", "password for --admin-user")
	for _, name := range []string{"listen", "db", "disable", "admin-user", "admin-password"} {
		v.BindPFlag(name, cmd.Flags().Lookup(name))
	}
	return cmd
}

func newLogger(level string) (*logrus.Logger, error) {
	log := logrus.New()
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log.SetLevel(lvl)
	return log, nil
}

func serve(ctx context.Context, v *viper.Viper) error {
	log, err := newLogger(v.GetString("log-level"))
	if err != nil {
		return err
	}

	core, err := sqlcore.Open(v.GetString("db"),
		sqlcore.WithLogger(logrus.NewEntry(log)))
	if err != nil {
		return err
	}
	defer core.Close()

	if user := v.GetString("admin-user"); user != "" {
		if err := core.EnsureUser(user, v.GetString("admin-password")); err != nil {
			return err
		}
		log.WithField("user", user).Info("admin user ensured")
	}

	network, addr := "tcp", v.GetString("listen")
	if path, ok := strings.CutPrefix(addr, "unix:"); ok {
		network, addr = "unix", path
	}
	ln, err := net.Listen(network, addr)
	if err != nil {
		return err
	}
	defer ln.Close()
	log.WithField("addr", ln.Addr().String()).Info("listening")

	disabled := v.GetStringSlice("disable")
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go handle(ctx, log, core, conn, disabled)
	}
}

func handle(ctx context.Context, log *logrus.Logger, core *sqlcore.Core, conn net.Conn, disabled []string) {
	defer conn.Close()
	entry := log.WithField("remote", conn.RemoteAddr().String())
	entry.Debug("session open")

	s := session.New(core, conn,
		session.WithLogger(entry),
		session.WithDisabledCommands(disabled...))
	if err := s.Run(ctx, conn); err != nil {
		entry.WithError(err).Warn("session ended with error")
		return
	}
	entry.Debug("session closed")
}
