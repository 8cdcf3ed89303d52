package main

import (
	"fmt"
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/tripnest/inputguard/internal/api"
	"github.com/tripnest/inputguard/pkg/sanitizer"
)

var outputJSON = jsoniter.Config{
	EscapeHTML:    false,
	SortMapKeys:   true,
	UseNumber:     true,
	IndentionStep: 2,
}.Froze()

func newCheckCmd(a *app) *cobra.Command {
	var (
		opts      sanitizer.Options
		typ       string
		noXSS     bool
		noSQL     bool
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "check [input]",
		Short: "Validate and sanitize one input, printing the result as JSON",
		Long: "Runs the length check, both detectors and the typed sanitizer over the input.\n" +
			"Exits non-zero when the input is rejected.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args, fromStdin)
			if err != nil {
				return err
			}

			opts.Type = sanitizer.Context(typ)
			if noXSS {
				opts.CheckXSS = new(bool)
			}
			if noSQL {
				opts.CheckSQL = new(bool)
			}
			if err := (api.ValidateRequest{Input: &input, Options: opts}).Validate(); err != nil {
				return err
			}

			res := newSanitizer(a.cfg, a.log, nil).ValidateAndSanitize(input, sanitizer.WithOptions(opts))
			if err := printJSON(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.Valid {
				return fmt.Errorf("%w: %w", errInvalidInput, res.Err())
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&typ, "type", "t", string(sanitizer.ContextText), "sanitization context: text, email, url, phone, filename, sql, json, richtext")
	f.IntVar(&opts.MaxLength, "max-length", 0, "maximum input length in characters (0 disables)")
	f.BoolVar(&opts.AllowHTML, "allow-html", false, "keep HTML in the text context")
	f.BoolVar(&noXSS, "no-xss", false, "disable the XSS detector")
	f.BoolVar(&noSQL, "no-sql", false, "disable the SQL injection detector")
	f.BoolVar(&fromStdin, "stdin", false, "read the input from stdin")
	return cmd
}

func newDetectCmd(a *app) *cobra.Command {
	var fromStdin bool
	cmd := &cobra.Command{
		Use:   "detect [input]",
		Short: "Report which detectors match the input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args, fromStdin)
			if err != nil {
				return err
			}
			engine := newSanitizer(a.cfg, a.log, nil)
			return printJSON(cmd.OutOrStdout(), api.DetectResponse{
				XSS: engine.ContainsXSS(input),
				SQL: engine.ContainsSQLInjection(input),
			})
		},
	}
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "read the input from stdin")
	return cmd
}

func readInput(cmd *cobra.Command, args []string, fromStdin bool) (string, error) {
	switch {
	case fromStdin:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		return strings.TrimSuffix(string(data), "\n"), nil
	case len(args) == 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: pass the input as an argument or use --stdin", errInvalidInput)
	}
}

func printJSON(w io.Writer, v any) error {
	return outputJSON.NewEncoder(w).Encode(v)
}
