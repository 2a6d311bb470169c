package xcontext

import (
	"context"

	"github.com/federation-of-frogs/backend/config"
	"github.com/federation-of-frogs/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey       struct{}
	loggerKey        struct{}
	dbKey            struct{}
	dbTransactionKey struct{}
)

func WithConfigs(ctx context.Context, cfg config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, cfg)
}

func Configs(ctx context.Context) config.Configs {
	cfg, ok := ctx.Value(configsKey{}).(config.Configs)
	if !ok {
		panic("no configs in context")
	}

	return cfg
}

func WithLogger(ctx context.Context, l logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func Logger(ctx context.Context) logger.Logger {
	l, ok := ctx.Value(loggerKey{}).(logger.Logger)
	if !ok {
		return logger.NewLogger(logger.INFO)
	}

	return l
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the transaction in context if one began and is still open,
// otherwise the root connection.
func DB(ctx context.Context) *gorm.DB {
	if t, ok := ctx.Value(dbTransactionKey{}).(*dbTransaction); ok && !t.done {
		return t.tx
	}

	db, ok := ctx.Value(dbKey{}).(*gorm.DB)
	if !ok {
		panic("no database in context")
	}

	return db
}

type dbTransaction struct {
	tx   *gorm.DB
	done bool
}

// WithDBTransaction begins a transaction and makes DB() return it until
// WithCommitDBTransaction or WithRollbackDBTransaction is called.
func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbTransactionKey{}, &dbTransaction{tx: DB(ctx).Begin()})
}

func WithCommitDBTransaction(ctx context.Context) context.Context {
	if t, ok := ctx.Value(dbTransactionKey{}).(*dbTransaction); ok && !t.done {
		t.tx.Commit()
		t.done = true
	}

	return ctx
}

// WithRollbackDBTransaction rollbacks the transaction in context. It is a no-op
// if the transaction is already committed, so it is safe to defer.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if t, ok := ctx.Value(dbTransactionKey{}).(*dbTransaction); ok && !t.done {
		t.tx.Rollback()
		t.done = true
	}

	return ctx
}
