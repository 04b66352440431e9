package main

import (
	"github.com/spf13/cobra"

	"photorganiser/internal/modes"
)

type organizeFlags struct {
	directory   string
	verbose     bool
	renameFiles bool
	metaType    modes.MetaType
	tagType     modes.TagType
	tagSearch   modes.SearchMode
}

func newRootCommand() *cobra.Command {
	var configFlag string
	flags := organizeFlags{
		metaType:  modes.MetaIPTC,
		tagType:   modes.TagKeywords,
		tagSearch: modes.SearchYear,
	}

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:   "photorganiser",
		Short: "Move images into year folders based on their IPTC keyword tags",
		Long: "Move all image files with tags of interest in their IPTC keyword tags " +
			"into tag-titled folders under the root directory. Files without a tag of " +
			"interest go into the fallback folder.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganize(cmd, ctx, flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	f := rootCmd.Flags()
	f.StringVarP(&flags.directory, "directory", "d", "", "Root image directory. Full path required.")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Print verbose output")
	f.BoolVarP(&flags.renameFiles, "rename-files", "r", false, "Rename moved files (defaults to organize.rename_files)")
	f.VarP(&flags.metaType, "meta-type", "t", "Type of metadata (IPTC)")
	f.Var(&flags.tagType, "tag-type", "Type of metadata tag (KEYWORDS)")
	f.VarP(&flags.tagSearch, "tag-search", "s", "Tag information to search for (YEAR)")
	_ = rootCmd.MarkFlagRequired("directory")

	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newCheckCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))

	return rootCmd
}
