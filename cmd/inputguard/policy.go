package main

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/tripnest/inputguard/pkg/sanitizer"
)

func newPolicyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Work with field policy files",
	}
	cmd.AddCommand(newPolicyLintCmd(), newPolicyApplyCmd(a))
	return cmd
}

func newPolicyLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint <file>...",
		Short: "Check that policy files parse and validate",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed int
			for _, path := range args {
				p, err := sanitizer.LoadPolicy(path)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s (%d fields: %v)\n", path, len(p.Fields), slices.Sorted(maps.Keys(p.Fields)))
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d files", sanitizer.ErrInvalidPolicy, failed, len(args))
			}
			return nil
		},
	}
}

func newPolicyApplyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <file>",
		Short: "Apply a policy to a JSON object read from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := sanitizer.LoadPolicy(args[0])
			if err != nil {
				return err
			}

			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			var body map[string]any
			if err := outputJSON.Unmarshal(data, &body); err != nil {
				return fmt.Errorf("%w: stdin must hold a JSON object: %w", errInvalidInput, err)
			}

			out, err := newSanitizer(a.cfg, a.log, nil).ApplyPolicy(p, body)
			var fieldErrs sanitizer.FieldErrors
			if errors.As(err, &fieldErrs) {
				_ = printJSON(cmd.OutOrStdout(), map[string]any{"errors": fieldErrs})
			}
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}
