// Package repository is the data access layer.
//
// Every method takes the database.Querier of the transaction it runs in,
// so the caller decides whether the statement executes as the
// authenticated user (row-level security applies) or as the system.
package repository

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit well inside a Postgres bigint offset.
	MaxPage = 100000
)

// normalizePage clamps page/limit and returns the row offset.
func normalizePage(page, limit int) (int, int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit, (page - 1) * limit
}

// NormalizePage clamps page and limit the way list queries do, so
// callers can echo them back in a paginated envelope.
func NormalizePage(page, limit int) (int, int) {
	page, limit, _ = normalizePage(page, limit)
	return page, limit
}

// setBuilder collects "column = @column" assignments for partial updates.
type setBuilder struct {
	clauses []string
	args    pgx.NamedArgs
}

func newSetBuilder() *setBuilder {
	return &setBuilder{args: pgx.NamedArgs{}}
}

func (b *setBuilder) set(column string, value any) {
	b.clauses = append(b.clauses, column+" = @"+column)
	b.args[column] = value
}

func (b *setBuilder) empty() bool {
	return len(b.clauses) == 0
}

func (b *setBuilder) sql() string {
	return strings.Join(b.clauses, ", ")
}
