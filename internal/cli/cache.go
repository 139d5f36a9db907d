package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/lifelines/internal/model"
	"github.com/ppiankov/lifelines/internal/pipeline"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the stored page",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every stored page so the next scrape fetches again",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		if err := clearCache(cfg); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared cache: %s\n", cfg.Cache.Dir)
		return nil
	},
}

// clearCache empties cfg.Cache.Dir, even when caching is switched off
// for scrapes
func clearCache(cfg *model.Config) error {
	c := *cfg
	c.Cache.Enabled = true

	p, err := pipeline.NewPipeline(&c, nil)
	if err != nil {
		return err
	}
	if err := p.ClearCache(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
