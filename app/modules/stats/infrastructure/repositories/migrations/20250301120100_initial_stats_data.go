package statsmigrations

import (
	"context"

	"github.com/uptrace/bun"

	statsdb "github.com/clearwater-cup/matchplay/app/modules/stats/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		for _, model := range []interface{}{
			(*statsdb.Round)(nil),
			(*statsdb.Course)(nil),
			(*statsdb.Player)(nil),
			(*statsdb.PlayerMatchFactRow)(nil),
		} {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}

		if _, err := db.NewCreateIndex().
			Model((*statsdb.PlayerMatchFactRow)(nil)).
			Index("idx_player_match_facts_round_id").
			Column("round_id").
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		for _, model := range []interface{}{
			(*statsdb.PlayerMatchFactRow)(nil),
			(*statsdb.Player)(nil),
			(*statsdb.Course)(nil),
			(*statsdb.Round)(nil),
		} {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}
