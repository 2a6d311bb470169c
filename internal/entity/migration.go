package entity

import (
	"context"

	"github.com/federation-of-frogs/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Frog{},
		&FotdPeriod{},
		&FotdPayout{},
	)
}
