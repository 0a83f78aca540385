package matchmigrations

import (
	"context"

	"github.com/uptrace/bun"

	matchdb "github.com/clearwater-cup/matchplay/app/modules/match/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewCreateTable().Model((*matchdb.Match)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateIndex().
			Model((*matchdb.Match)(nil)).
			Index("idx_matches_round_id").
			Column("round_id").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().Model((*matchdb.Match)(nil)).IfExists().Exec(ctx)
		return err
	})
}
