package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dukerupert/addressdata/internal/address"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrAddressNotFound is returned when no address has the requested ID.
var ErrAddressNotFound = errors.New("address not found")

// DBTX is the subset of pgx used by AddressStore.
// *pgxpool.Pool, *pgx.Conn and pgx.Tx all satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// AddressStore persists address.Address values in the addresses table.
// Every field is stored in the column named after it; the street address
// lines go into a TEXT[] column.
type AddressStore struct {
	db DBTX
}

// NewAddressStore creates a new AddressStore instance.
func NewAddressStore(db DBTX) *AddressStore {
	return &AddressStore{db: db}
}

var (
	fieldColumns = columnList()

	selectAddressSQL = fmt.Sprintf(
		"SELECT %s FROM addresses WHERE id = $1",
		strings.Join(fieldColumns, ", "),
	)

	upsertAddressSQL = buildUpsertSQL()

	updateFieldSQL = buildUpdateFieldSQL()
)

const deleteAddressSQL = "DELETE FROM addresses WHERE id = $1"

// columnList returns one column name per field, in field order.
func columnList() []string {
	fields := address.Fields()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.String()
	}
	return cols
}

func buildUpsertSQL() string {
	placeholders := make([]string, len(fieldColumns))
	updates := make([]string, len(fieldColumns))
	for i, col := range fieldColumns {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		updates[i] = fmt.Sprintf("%s = EXCLUDED.%s", col, col)
	}
	return fmt.Sprintf(
		"INSERT INTO addresses (id, %s) VALUES ($1, %s) ON CONFLICT (id) DO UPDATE SET %s, updated_at = NOW()",
		strings.Join(fieldColumns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
	)
}

// buildUpdateFieldSQL returns one single-column UPDATE per field, keyed by field.
func buildUpdateFieldSQL() map[address.Field]string {
	stmts := make(map[address.Field]string, len(fieldColumns))
	for _, f := range address.Fields() {
		stmts[f] = fmt.Sprintf("UPDATE addresses SET %s = $2, updated_at = NOW() WHERE id = $1", f)
	}
	return stmts
}

// Save inserts the address or replaces the stored one with the same ID.
func (s *AddressStore) Save(ctx context.Context, id uuid.UUID, addr address.Address) error {
	args := make([]any, 0, len(fieldColumns)+1)
	args = append(args, id)
	for _, f := range address.Fields() {
		if address.IsRepeated(f) {
			lines := addr.RepeatedValue(f)
			if lines == nil {
				lines = []string{}
			}
			args = append(args, lines)
		} else {
			args = append(args, addr.Value(f))
		}
	}

	if _, err := s.db.Exec(ctx, upsertAddressSQL, args...); err != nil {
		return fmt.Errorf("failed to save address %s: %w", id, err)
	}
	return nil
}

// SaveField writes only the column of field f, taking its value from addr.
// Other columns are left untouched, so concurrent writes to different
// fields of one address do not overwrite each other.
// Returns ErrAddressNotFound if the address does not exist.
func (s *AddressStore) SaveField(ctx context.Context, id uuid.UUID, addr address.Address, f address.Field) error {
	var value any
	if address.IsRepeated(f) {
		lines := addr.RepeatedValue(f)
		if lines == nil {
			lines = []string{}
		}
		value = lines
	} else {
		value = addr.Value(f)
	}

	tag, err := s.db.Exec(ctx, updateFieldSQL[f], id, value)
	if err != nil {
		return fmt.Errorf("failed to save %s of address %s: %w", f, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAddressNotFound
	}
	return nil
}

// Get loads the address with the given ID.
// Returns ErrAddressNotFound if it does not exist.
func (s *AddressStore) Get(ctx context.Context, id uuid.UUID) (address.Address, error) {
	fields := address.Fields()
	scalars := make([]string, len(fields))
	repeated := make([][]string, len(fields))
	dest := make([]any, len(fields))
	for i, f := range fields {
		if address.IsRepeated(f) {
			dest[i] = &repeated[i]
		} else {
			dest[i] = &scalars[i]
		}
	}

	if err := s.db.QueryRow(ctx, selectAddressSQL, id).Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return address.Address{}, ErrAddressNotFound
		}
		return address.Address{}, fmt.Errorf("failed to get address %s: %w", id, err)
	}

	var addr address.Address
	for i, f := range fields {
		if address.IsRepeated(f) {
			addr.SetAddressLines(repeated[i]...)
		} else {
			addr.SetValue(f, scalars[i])
		}
	}
	return addr, nil
}

// Delete removes the address with the given ID.
// Returns ErrAddressNotFound if nothing was deleted.
func (s *AddressStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, deleteAddressSQL, id)
	if err != nil {
		return fmt.Errorf("failed to delete address %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAddressNotFound
	}
	return nil
}
