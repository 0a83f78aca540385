package simulationmigrations

import (
	"context"

	"github.com/uptrace/bun"

	simulationdb "github.com/clearwater-cup/matchplay/app/modules/simulation/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewCreateTable().Model((*simulationdb.RoundVsAll)(nil)).IfNotExists().Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().Model((*simulationdb.RoundVsAll)(nil)).IfExists().Exec(ctx)
		return err
	})
}
