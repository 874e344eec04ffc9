package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the sources that changed since the last build",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := buildOptions(cmd)
			if err != nil {
				return err
			}
			_, err = c.app.Build(cmd.Context(), opts)
			return err
		},
	}
	addBuildFlags(cmd)
	return cmd
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("warnings", "w", string(domain.WarningsShow), "Warning handling: show, error, or hide")
	cmd.Flags().Bool("use-cache", true, "Reuse the build cache; false recompiles every source")
	cmd.Flags().BoolP("verbose", "v", false, "Log the classification of every source")
	cmd.Flags().String("repository", "", "Package repository folder (default ~/.kiln/packages)")
	cmd.Flags().Bool("progress", false, "Show the build phases live in the terminal")
}

func buildOptions(cmd *cobra.Command) (app.BuildOptions, error) {
	folder, _ := cmd.Flags().GetString("folder")
	warnings, _ := cmd.Flags().GetString("warnings")
	useCache, _ := cmd.Flags().GetBool("use-cache")
	verbose, _ := cmd.Flags().GetBool("verbose")
	repository, _ := cmd.Flags().GetString("repository")
	progress, _ := cmd.Flags().GetBool("progress")

	mode, err := domain.ParseWarningsMode(warnings)
	if err != nil {
		return app.BuildOptions{}, err
	}

	return app.BuildOptions{
		Folder:     folder,
		Warnings:   mode,
		UseCache:   useCache,
		Verbose:    verbose,
		Repository: repository,
		Progress:   progress,
	}, nil
}
