package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

// app carries what PersistentPreRunE prepared for the subcommands.
type app struct {
	envFiles []string
	cfg      Config
	log      *slog.Logger
	closer   io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "inputguard",
		Short:         "Input sanitization and injection detection for the booking platform",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(a.envFiles)
			if err != nil {
				return err
			}
			log, closer, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a.cfg, a.log, a.closer = cfg, log, closer
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}
			return nil
		},
	}
	root.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", nil, "additional .env files to load")

	root.AddCommand(
		newServeCmd(a),
		newCheckCmd(a),
		newDetectCmd(a),
		newPolicyCmd(a),
	)
	return root
}
