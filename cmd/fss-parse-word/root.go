package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/FSSCoding/fss-parse-word/internal/cli"
	"github.com/FSSCoding/fss-parse-word/internal/cli/config"
	"github.com/FSSCoding/fss-parse-word/pkg/converter"
)

var (
	// Set at build time via -ldflags.
	version = "dev"
	commit  = "none"
	date    = "unknown"

	cfgFile      string
	verbose      bool
	createConfig string
)

var rootCmd = &cobra.Command{
	Use:   "fss-parse-word <input> [output]",
	Short: "Converts between Word documents and Markdown, preserving formatting metadata.",
	Long: `fss-parse-word converts .docx documents to Markdown and back.

Document-to-Markdown runs embed a structured metadata comment recording
headings, lists, tables, and hyperlinks, so a later reverse conversion can
restore formatting the plain markup cannot express. Every write passes a
safety gate: collision detection against unrelated files of the same name,
interactive overwrite confirmation, and versioned backups.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Args:    cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		if createConfig != "" {
			if err := converter.WriteSampleConfig(createConfig); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", createConfig)
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("an input file is required (see --help)")
		}

		opts, logger, err := config.LoadAndValidate(cfgFile, verbose, cmd.Flags())
		if err != nil {
			return err
		}
		opts.SourcePath = args[0]
		if len(args) > 1 {
			opts.TargetPath = args[1]
		}

		return cli.Run(ctx, opts, logger)
	},
	SilenceUsage: true,
}

// Execute runs the root command; cobra prints the error and we exit non-zero.
func Execute() {
	rootCmd.SetVersionTemplate(`{{.Use}} version {{.Version}}` + "\n")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file path (default searches . and $HOME/.config/fss-parse-word/)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug) logging")

	rootCmd.Flags().StringP("direction", "d", string(converter.DirectionAuto), `Conversion direction ("auto", "docx2md", "md2docx")`)
	rootCmd.Flags().StringP("template", "t", "", "Existing .docx whose styles the output document reuses")
	rootCmd.Flags().StringVar(&createConfig, "create-config", "", "Write a sample configuration file to the given path and exit")
	rootCmd.Flags().BoolP("force", "f", false, "Approve overwrite prompts without asking")
	rootCmd.Flags().Bool("no-backup", false, "Skip the pre-overwrite backup copy")
	rootCmd.Flags().Bool("no-hash-check", false, "Skip post-write hash reporting")
	rootCmd.Flags().Bool("verify", false, "Re-parse emitted Markdown as a correctness check")
	rootCmd.Flags().String("default-encoding", "", "Fallback charset for non-UTF-8 Markdown input (e.g. \"windows-1252\")")
}
