package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Range is an inclusive numeric bound; a nil end is open.
type Range struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

func (r Range) open() bool { return r.Min == nil && r.Max == nil }

func (r Range) contains(v decimal.Decimal) bool {
	if r.Min != nil && v.LessThan(*r.Min) {
		return false
	}
	if r.Max != nil && v.GreaterThan(*r.Max) {
		return false
	}
	return true
}

// Criteria is a conjunction of per-column checks. The zero value matches everything.
type Criteria struct {
	// Search is a free-text term matched against any search column.
	Search string
	// Text holds case-insensitive substring checks.
	Text map[string]string
	// Equal holds exact enum checks.
	Equal map[string]string
	Range map[string]Range
}

// Empty reports whether c matches every record.
func (c Criteria) Empty() bool {
	if strings.TrimSpace(c.Search) != "" {
		return false
	}
	for _, v := range c.Text {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	for _, v := range c.Equal {
		if v != "" {
			return false
		}
	}
	for _, r := range c.Range {
		if !r.open() {
			return false
		}
	}
	return true
}

// Match applies every check of c to rec. searchColumns are the columns the
// free-text term may hit.
func (c Criteria) Match(rec domainRepo.Record, searchColumns []string) bool {
	if term := foldTR(strings.TrimSpace(c.Search)); term != "" {
		hit := false
		for _, col := range searchColumns {
			if strings.Contains(foldTR(cell(rec[col])), term) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	for col, want := range c.Text {
		want = foldTR(strings.TrimSpace(want))
		if want == "" {
			continue
		}
		if !strings.Contains(foldTR(cell(rec[col])), want) {
			return false
		}
	}

	for col, want := range c.Equal {
		if want == "" {
			continue
		}
		if foldTR(cell(rec[col])) != foldTR(want) {
			return false
		}
	}

	for col, r := range c.Range {
		if r.open() {
			continue
		}
		v, err := decimal.NewFromString(cell(rec[col]))
		if err != nil || !r.contains(v) {
			return false
		}
	}
	return true
}

// With returns a copy of c with the checks of other added; other wins on
// conflicting columns.
func (c Criteria) With(other Criteria) Criteria {
	out := Criteria{
		Search: c.Search,
		Text:   merge(c.Text, other.Text),
		Equal:  merge(c.Equal, other.Equal),
		Range:  merge(c.Range, other.Range),
	}
	if other.Search != "" {
		out.Search = other.Search
	}
	return out
}

func merge[V any](a, b map[string]V) map[string]V {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]V, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// CriteriaFromQuery builds criteria from request style parameters: q for the
// search term, the column name for text and enum filters, and
// <column>_min / <column>_max for ranges.
func CriteriaFromQuery(filters []Filter, get func(string) string) (Criteria, error) {
	c := Criteria{Search: get("q")}
	for _, f := range filters {
		switch f.Kind {
		case FilterText:
			if v := get(f.Column); v != "" {
				if c.Text == nil {
					c.Text = map[string]string{}
				}
				c.Text[f.Column] = v
			}
		case FilterEnum:
			if v := get(f.Column); v != "" {
				if c.Equal == nil {
					c.Equal = map[string]string{}
				}
				c.Equal[f.Column] = v
			}
		case FilterRange:
			var r Range
			for suffix, dst := range map[string]**decimal.Decimal{"_min": &r.Min, "_max": &r.Max} {
				raw := strings.ReplaceAll(strings.TrimSpace(get(f.Column+suffix)), ",", ".")
				if raw == "" {
					continue
				}
				d, err := decimal.NewFromString(raw)
				if err != nil {
					return Criteria{}, fmt.Errorf("%s%s: geçersiz sayı %q", f.Column, suffix, raw)
				}
				*dst = &d
			}
			if !r.open() {
				if c.Range == nil {
					c.Range = map[string]Range{}
				}
				c.Range[f.Column] = r
			}
		}
	}
	return c, nil
}

// foldTR lower-cases with Turkish rules so that "İSTANBUL" matches "istanbul"
// and "IŞIK" matches "ışık".
func foldTR(s string) string {
	return cases.Lower(language.Turkish).String(s)
}

func cell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
