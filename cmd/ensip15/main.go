// Command ensip15 normalizes, beautifies, and tokenizes names from the
// command line, and can self-check the embedded static table bundle.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ensnorm/ensip15"
	"github.com/ensnorm/ensip15/internal/tables"
)

var log zerolog.Logger

func main() {
	log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	root := &cobra.Command{
		Use:   "ensip15",
		Short: "Normalize, beautify, and tokenize ENS names",
	}

	root.AddCommand(
		newNormalizeCmd(),
		newBeautifyCmd(),
		newTokenizeCmd(),
		newVerifyTablesCmd(),
	)

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <name>",
		Short: "Canonicalize a name, or fail with the first validation error",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := ensip15.Normalize(args[0])
			if err != nil {
				log.Error().Err(err).Str("input", args[0]).Msg("normalize rejected input")
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func newBeautifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "beautify <name>",
		Short: "Normalize a name, preserving presentational variants",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := ensip15.Beautify(args[0])
			if err != nil {
				log.Error().Err(err).Str("input", args[0]).Msg("beautify rejected input")
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func newTokenizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize <name>",
		Short: "Print the diagnostic token decomposition of a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for i, lbl := range ensip15.Tokenize(args[0]) {
				fmt.Printf("label %d: %s\n", i, lbl)
			}
			return nil
		},
	}
}

func newVerifyTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-tables",
		Short: "Validate the embedded static table bundle and report its shape",
		RunE: func(cmd *cobra.Command, args []string) error {
			tb, err := tables.DefaultTables()
			if err != nil {
				log.Error().Err(err).Msg("embedded bundle failed validation")
				return err
			}
			log.Info().
				Int("groups", len(tb.Groups)).
				Int("mapped", len(tb.Mapped)).
				Int("valid", len(tb.Valid)).
				Int("emoji_sequences", len(tb.Emoji)).
				Msg("embedded bundle OK")
			return nil
		},
	}
}
