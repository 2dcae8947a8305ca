package repository

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"time"

	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type tableRepository struct {
	db *gorm.DB
}

// NewTableRepository creates the gorm-backed record repository.
func NewTableRepository(db *gorm.DB) domainRepo.TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) List(ctx context.Context, table string) ([]domainRepo.Record, error) {
	spec, err := domainRepo.LookupTable(table)
	if err != nil {
		return nil, err
	}

	var rows []map[string]interface{}
	err = r.db.WithContext(ctx).Table(spec.Name).Scopes(NewestFirst(spec)).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return normalizeRows(spec, rows), nil
}

func (r *tableRepository) Get(ctx context.Context, table string, key any) (domainRepo.Record, error) {
	spec, err := domainRepo.LookupTable(table)
	if err != nil {
		return nil, err
	}

	var rows []map[string]interface{}
	err = r.db.WithContext(ctx).Table(spec.Name).Scopes(ByKey(spec, key)).Limit(1).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return normalizeRow(spec, rows[0]), nil
}

func (r *tableRepository) Create(ctx context.Context, table string, rec domainRepo.Record) (domainRepo.Record, error) {
	spec, err := domainRepo.LookupTable(table)
	if err != nil {
		return nil, err
	}

	row, tx := insertRow(r.db.WithContext(ctx), spec, rec)
	if err := translate(tx.Error); err != nil {
		return nil, err
	}
	if tx.RowsAffected == 0 {
		return nil, fmt.Errorf("insert into %s returned no row", spec.Name)
	}
	return normalizeRow(spec, row), nil
}

func (r *tableRepository) Update(ctx context.Context, table string, key any, rec domainRepo.Record) (domainRepo.Record, error) {
	spec, err := domainRepo.LookupTable(table)
	if err != nil {
		return nil, err
	}

	tx, ok := updateRow(r.db.WithContext(ctx), spec, key, rec)
	if !ok {
		return r.Get(ctx, table, key)
	}
	if err := translate(tx.Error); err != nil {
		return nil, err
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}
	return r.Get(ctx, table, key)
}

func (r *tableRepository) Delete(ctx context.Context, table string, key any) (bool, error) {
	spec, err := domainRepo.LookupTable(table)
	if err != nil {
		return false, err
	}

	result := deleteRow(r.db.WithContext(ctx), spec, key)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *tableRepository) Count(ctx context.Context, table string, where domainRepo.Record) (int64, error) {
	spec, err := domainRepo.LookupTable(table)
	if err != nil {
		return 0, err
	}

	var total int64
	err = r.db.WithContext(ctx).Table(spec.Name).Scopes(WhereEquals(spec, where)).Count(&total).Error
	return total, err
}

func (r *tableRepository) Exists(ctx context.Context, table, column string, value any) (bool, error) {
	total, err := r.Count(ctx, table, domainRepo.Record{column: value})
	return total > 0, err
}

func (r *tableRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// writableValues keeps the whitelisted columns of rec, encoded for the driver.
func writableValues(spec domainRepo.TableSpec, rec domainRepo.Record) map[string]interface{} {
	filtered, _ := spec.Filter(rec)
	values := make(map[string]interface{}, len(filtered))
	for c, v := range filtered {
		values[c] = encodeValue(v)
	}
	return values
}

// insertRow inserts the writable part of rec. The returned map is filled with
// the stored row by RETURNING.
func insertRow(db *gorm.DB, spec domainRepo.TableSpec, rec domainRepo.Record) (map[string]interface{}, *gorm.DB) {
	row := writableValues(spec, rec)
	return row, db.Table(spec.Name).Clauses(clause.Returning{}).Create(row)
}

// updateRow reports false when rec has nothing the table lets us write.
func updateRow(db *gorm.DB, spec domainRepo.TableSpec, key any, rec domainRepo.Record) (*gorm.DB, bool) {
	values := writableValues(spec, rec)
	if len(values) == 0 {
		return db, false
	}
	return db.Table(spec.Name).Scopes(ByKey(spec, key)).Updates(values), true
}

func deleteRow(db *gorm.DB, spec domainRepo.TableSpec, key any) *gorm.DB {
	return db.Table(spec.Name).Scopes(ByKey(spec, key)).Delete(map[string]interface{}{})
}

// translate maps unique index violations to ErrDuplicate.
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", domainRepo.ErrDuplicate, err)
	}
	return err
}

// encodeValue turns a record value into something the driver binds as a
// single scalar. Slices and maps would otherwise be expanded by gorm.
func encodeValue(v any) any {
	switch val := v.(type) {
	case json.RawMessage:
		return string(val)
	case nil, string, bool, []byte, time.Time:
		return val
	case driver.Valuer:
		out, err := val.Value()
		if err != nil {
			return nil
		}
		if b, ok := out.([]byte); ok {
			return string(b)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return encodeValue(rv.Elem().Interface())
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		b, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return string(b)
	}
	return v
}

func normalizeRows(spec domainRepo.TableSpec, rows []map[string]interface{}) []domainRepo.Record {
	out := make([]domainRepo.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, normalizeRow(spec, row))
	}
	return out
}

// normalizeRow makes a scanned row JSON friendly: jsonb comes back as raw JSON
// and any other byte slice as text.
func normalizeRow(spec domainRepo.TableSpec, row map[string]interface{}) domainRepo.Record {
	rec := make(domainRepo.Record, len(row))
	for k, v := range row {
		switch val := v.(type) {
		case []byte:
			if spec.IsJSON(k) && json.Valid(val) {
				rec[k] = json.RawMessage(append([]byte(nil), val...))
			} else {
				rec[k] = string(val)
			}
		case string:
			if spec.IsJSON(k) && json.Valid([]byte(val)) {
				rec[k] = json.RawMessage(val)
			} else {
				rec[k] = val
			}
		default:
			rec[k] = v
		}
	}
	return rec
}
