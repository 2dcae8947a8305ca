package repository

import "context"

// TableRepository is record-level access to the registered tables. Every
// method fails with ErrUnknownTable for names outside the registry.
type TableRepository interface {
	// List returns every row ordered by the table's order column, newest first.
	List(ctx context.Context, table string) ([]Record, error)
	// Get returns (nil, nil) when no row has the key.
	Get(ctx context.Context, table string, key any) (Record, error)
	Create(ctx context.Context, table string, rec Record) (Record, error)
	// Update returns (nil, nil) when no row has the key.
	Update(ctx context.Context, table string, key any, rec Record) (Record, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, table string, key any) (bool, error)
	// Count counts rows matching the equality conditions in where.
	Count(ctx context.Context, table string, where Record) (int64, error)
	// Exists reports whether any row has column = value.
	Exists(ctx context.Context, table, column string, value any) (bool, error)
	// Ping checks that the backend answers.
	Ping(ctx context.Context) error
}
