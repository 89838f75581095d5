package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/guidebook/internal/progress"
	"github.com/ziadkadry99/guidebook/internal/site"
)

var buildOutput string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Prerender the guides into a static site",
	Long:  `Renders every guide, an index redirect, a 404 page and the stylesheet into the output directory, ready for any static host.`,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "override output directory")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outputDir := cfg.OutputDir
	if buildOutput != "" {
		outputDir = buildOutput
	}

	mode, err := defaultMode(cfg)
	if err != nil {
		return err
	}

	guides, err := loadGuides(cfg)
	if err != nil {
		return err
	}

	generator := site.NewGenerator(outputDir, cfg.SiteTitle, mode)
	generator.Reporter = progress.NewReporter()

	if _, err := generator.Generate(cmd.Context(), guides); err != nil {
		return fmt.Errorf("generating site: %w", err)
	}

	fmt.Printf("Serve %s from any static host; the mode toggle runs in the browser.\n", outputDir)
	return nil
}
