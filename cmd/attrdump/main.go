package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		flags      Config
	)

	cmd := &cobra.Command{
		Use:   "attrdump [flags] <file.class|file.jar|dir>...",
		Short: "Decode and print the attributes of JVM class files",
		Long: `attrdump decodes the attributes attached to classes, fields, methods and
method bodies and prints one record per attribute. Jar files and
directories are searched for .class entries.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			cfg.merge(flags, cmd.Flags().Changed)
			configureLogging(cfg)
			return run(cmd.Context(), cmd.OutOrStdout(), cfg, args)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	cmd.Flags().StringVarP(&flags.Format, "format", "f", defaultFormat, "output format (json, line)")
	cmd.Flags().StringSliceVarP(&flags.Kinds, "kinds", "k", nil, "attribute kinds to decode (default all)")
	cmd.Flags().IntVarP(&flags.Workers, "workers", "w", 0, "class files decoded in parallel (default number of CPUs)")
	cmd.Flags().CountVarP(&flags.Verbose, "verbose", "v", "increase log verbosity")
	cmd.Flags().StringVar(&flags.LogFile, "log-file", "", "write logs to this file instead of stderr")

	return cmd
}

func configureLogging(cfg Config) {
	var path *string
	if cfg.LogFile != "" {
		path = &cfg.LogFile
	}
	commonlog.Configure(cfg.Verbose, path)
}
