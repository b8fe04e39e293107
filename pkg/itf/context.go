package itf

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/organigramma/organigramma/pkg/composables"
	"github.com/organigramma/organigramma/pkg/repo"
)

// TestContext provides a fluent API for building test contexts.
//
// The built context carries a marker transaction, so service-level
// composables.InTx calls participate in it instead of demanding a live pool.
// In-memory repositories never touch the transaction, which lets the full
// service stack run without Postgres.
type TestContext struct {
	ctx context.Context
}

func NewTestContext() *TestContext {
	return &TestContext{ctx: context.Background()}
}

func (tc *TestContext) WithContext(ctx context.Context) *TestContext {
	tc.ctx = ctx
	return tc
}

func (tc *TestContext) Build(tb testing.TB) *TestEnvironment {
	tb.Helper()
	return &TestEnvironment{
		Ctx: composables.WithTx(tc.ctx, markerTx{}),
	}
}

type TestEnvironment struct {
	Ctx context.Context
}

// markerTx satisfies repo.Tx but must never reach a SQL path.
type markerTx struct{}

var _ repo.Tx = markerTx{}

func (markerTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	panic("itf: marker transaction used for a SQL query; back the test with a real pool")
}

func (markerTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("itf: marker transaction used for a SQL query; back the test with a real pool")
}

func (markerTx) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("itf: marker transaction used for a SQL query; back the test with a real pool")
}
