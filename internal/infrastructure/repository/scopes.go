package repository

import (
	"fmt"
	"sort"

	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewestFirst orders a registered table by its order column, descending.
func NewestFirst(spec domainRepo.TableSpec) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(clause.OrderByColumn{Column: clause.Column{Name: spec.OrderColumn}, Desc: true})
	}
}

// ByKey restricts a query to the row with the given key.
func ByKey(spec domainRepo.TableSpec, key any) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Eq{Column: clause.Column{Name: spec.KeyColumn}, Value: key})
	}
}

// WhereEquals adds one equality condition per entry. Unknown columns make the
// query fail instead of being silently dropped.
func WhereEquals(spec domainRepo.TableSpec, where domainRepo.Record) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		columns := make([]string, 0, len(where))
		for c := range where {
			columns = append(columns, c)
		}
		sort.Strings(columns)

		for _, c := range columns {
			if !spec.Knows(c) {
				_ = db.AddError(fmt.Errorf("column %q is not part of %s", c, spec.Name))
				return db
			}
			db = db.Where(clause.Eq{Column: clause.Column{Name: c}, Value: encodeValue(where[c])})
		}
		return db
	}
}
