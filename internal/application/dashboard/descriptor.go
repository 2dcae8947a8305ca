// Package dashboard holds the UI-agnostic controllers shared by the HTTP API
// and the terminal shell: one generic list/form pair parameterised by an
// entity descriptor, the module shell and the home statistics.
package dashboard

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/labomak/dashboard/internal/application/gateway"
	"github.com/labomak/dashboard/internal/application/validation"
	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"github.com/labomak/dashboard/pkg/apperror"
)

// Field is one input of an entity form.
type Field struct {
	// Name is the form field name (sirketAdi, fiyat, ...).
	Name string
	// Column is the persisted column; empty when a descriptor hook maps the field.
	Column string
	Label  string
	Rule   validation.Rule
	// Key fields are assigned by the backend and never editable.
	Key bool
	// Immutable fields are editable only while creating.
	Immutable bool
}

// ReadOnly reports whether the field accepts input in the given mode.
func (f Field) ReadOnly(mode Mode) bool {
	return f.Key || (f.Immutable && mode == ModeEdit)
}

// Group is a repeated block of fields such as offer line items. Its inputs
// are named "<Name>[i].<field>".
type Group struct {
	Name   string
	Label  string
	Fields []Field
}

// ItemName is the form name of field in item i of the group.
func (g Group) ItemName(i int, field string) string {
	return fmt.Sprintf("%s[%d].%s", g.Name, i, field)
}

var itemNamePattern = regexp.MustCompile(`^([a-zA-Z]+)\[(\d+)\]\.([a-zA-Z]+)$`)

func parseItemName(name string) (group string, index int, field string, ok bool) {
	m := itemNamePattern.FindStringSubmatch(name)
	if m == nil {
		return "", 0, "", false
	}
	index, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, "", false
	}
	return m[1], index, m[3], true
}

// Column is one column of a rendered list.
type Column[E any] struct {
	Header string
	Width  int
	Value  func(E) string
}

// FilterKind selects how a filter column is compared.
type FilterKind int

const (
	FilterText FilterKind = iota
	FilterEnum
	FilterRange
)

// Filter is a column the list can be narrowed by.
type Filter struct {
	Column  string
	Label   string
	Kind    FilterKind
	Options []string
}

// Descriptor tells the generic controllers everything they need to know
// about one entity type.
type Descriptor[E any] struct {
	Module string
	// Label is the singular display name used in messages.
	Label string
	Table gateway.Table[E]

	Fields []Field
	Group  *Group
	// ImageField, when set, names the URL field that can be probed.
	ImageField string

	Key     func(E) int64
	Columns []Column[E]
	// Search lists the columns matched by free-text search.
	Search  []string
	Filters []Filter

	// Defaults pre-fills a create form.
	Defaults func(ctx context.Context) (map[string]string, error)
	// Abandon gets back the defaults a create form handed out but never stored.
	Abandon func(ctx context.Context, values map[string]string)
	// Check adds form-level rules on top of the per-field ones.
	Check func(values map[string]string) []apperror.FieldError
	// Extend maps fields without a Column into the payload.
	Extend func(values map[string]string, rec domainRepo.Record) error
	// Load fills form values for fields without a Column when editing.
	Load func(e E, values map[string]string)
}

// Field returns the field called name, resolving group item names.
func (d *Descriptor[E]) Field(name string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	if d.Group == nil {
		return Field{}, false
	}
	group, _, field, ok := parseItemName(name)
	if !ok || group != d.Group.Name {
		return Field{}, false
	}
	for _, f := range d.Group.Fields {
		if f.Name == field {
			f.Name = name
			return f, true
		}
	}
	return Field{}, false
}

// Filter returns the filter declared for column.
func (d *Descriptor[E]) Filter(column string) (Filter, bool) {
	for _, f := range d.Filters {
		if f.Column == column {
			return f, true
		}
	}
	return Filter{}, false
}

// Headers lists the column headers in display order.
func (d *Descriptor[E]) Headers() []string {
	out := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		out[i] = c.Header
	}
	return out
}

// Row renders e into display cells.
func (d *Descriptor[E]) Row(e E) []string {
	out := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		out[i] = c.Value(e)
	}
	return out
}
