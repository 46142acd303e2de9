package testutil

import (
	"context"
	"database/sql"
	"strings"

	"github.com/hidrocoding/cotizador/internal/db"
	"github.com/jmoiron/sqlx"
)

// FailingUoW runs transactions like db.SQLUnitOfWork but makes one write fail:
// the FailOn-th ExecContext whose query contains Statement (any write when
// Statement is empty) returns Err instead of running. Reads are not counted.
//
//	uow := &FailingUoW{DB: database, Statement: "INSERT INTO quotation_lines", FailOn: 2, Err: errDisk}
type FailingUoW struct {
	DB        *sqlx.DB
	Statement string
	FailOn    int
	Err       error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingTx{DBTX: tx, uow: u})
	})
}

type failingTx struct {
	db.DBTX
	uow  *FailingUoW
	seen int
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.Contains(query, f.uow.Statement) {
		f.seen++
		if f.seen == f.uow.FailOn {
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

var _ sqlx.ExtContext = (*failingTx)(nil)
