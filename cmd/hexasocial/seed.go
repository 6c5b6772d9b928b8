package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/davicafu/hexasocial/internal/config"
	"github.com/davicafu/hexasocial/pkg/logger"
)

func newSeedCmd(load func() (*config.Config, error)) *cobra.Command {
	var (
		authorID int64
		count    int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Genera posts de prueba para un autor",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			log := logger.Logger()
			defer log.Sync()

			a, err := newApp(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer a.Close()

			posts, err := a.posts.GeneratePosts(cmd.Context(), authorID, count)
			if err != nil {
				return err
			}
			log.Info("✅ Posts generados", zap.Int64("author", authorID), zap.Int("count", len(posts)))
			return nil
		},
	}
	cmd.Flags().Int64Var(&authorID, "author", 1, "id del autor")
	cmd.Flags().IntVar(&count, "count", 10, "número de posts a generar")
	return cmd
}
