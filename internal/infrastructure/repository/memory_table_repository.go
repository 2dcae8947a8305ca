package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
)

// MemoryTableRepository keeps the registered tables in process memory. It
// backs the offline terminal mode and the application tests.
type MemoryTableRepository struct {
	mu     sync.RWMutex
	rows   map[string]map[int64]domainRepo.Record
	nextID map[string]int64
	now    func() time.Time

	// FailWith, when set, makes every call fail with the returned error.
	FailWith func(op, table string) error
}

// NewMemoryTableRepository creates an empty in-memory store.
func NewMemoryTableRepository() *MemoryTableRepository {
	return &MemoryTableRepository{
		rows:   make(map[string]map[int64]domainRepo.Record),
		nextID: make(map[string]int64),
		now:    time.Now,
	}
}

func (r *MemoryTableRepository) fail(op, table string) error {
	if r.FailWith == nil {
		return nil
	}
	return r.FailWith(op, table)
}

func (r *MemoryTableRepository) List(ctx context.Context, table string) ([]domainRepo.Record, error) {
	spec, err := domainRepo.LookupTable(table)
	if err != nil {
		return nil, err
	}
	if err := r.fail("list", table); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]int64, 0, len(r.rows[spec.Name]))
	for k := range r.rows[spec.Name] {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] > keys[j] })

	out := make([]domainRepo.Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, copyRecord(r.rows[spec.Name][k]))
	}
	return out, nil
}

func (r *MemoryTableRepository) Get(ctx context.Context, table string, key any) (domainRepo.Record, error) {
	spec, err := domainRepo.LookupTable(table)
	if err != nil {
		return nil, err
	}
	if err := r.fail("get", table); err != nil {
		return nil, err
	}
	id, err := toKey(key)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.rows[spec.Name][id]
	if !ok {
		return nil, nil
	}
	return copyRecord(rec), nil
}

func (r *MemoryTableRepository) Create(ctx context.Context, table string, rec domainRepo.Record) (domainRepo.Record, error) {
	spec, err := domainRepo.LookupTable(table)
	if err != nil {
		return nil, err
	}
	if err := r.fail("create", table); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	filtered, _ := spec.Filter(rec)
	if err := r.checkUnique(spec, 0, filtered); err != nil {
		return nil, err
	}
	r.nextID[spec.Name]++
	id := r.nextID[spec.Name]

	stored := make(domainRepo.Record, len(filtered)+2)
	for k, v := range filtered {
		stored[k] = storeValue(v)
	}
	stored[spec.KeyColumn] = id
	if spec.Name != domainRepo.TableOffers && spec.Name != domainRepo.TableUsers {
		stored["created_at"] = r.now()
	}

	if r.rows[spec.Name] == nil {
		r.rows[spec.Name] = make(map[int64]domainRepo.Record)
	}
	r.rows[spec.Name][id] = stored
	return copyRecord(stored), nil
}

func (r *MemoryTableRepository) Update(ctx context.Context, table string, key any, rec domainRepo.Record) (domainRepo.Record, error) {
	spec, err := domainRepo.LookupTable(table)
	if err != nil {
		return nil, err
	}
	if err := r.fail("update", table); err != nil {
		return nil, err
	}
	id, err := toKey(key)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.rows[spec.Name][id]
	if !ok {
		return nil, nil
	}
	filtered, _ := spec.Filter(rec)
	if err := r.checkUnique(spec, id, filtered); err != nil {
		return nil, err
	}
	for k, v := range filtered {
		stored[k] = storeValue(v)
	}
	return copyRecord(stored), nil
}

// checkUnique rejects values of unique columns already held by another row.
// Empty values never collide.
func (r *MemoryTableRepository) checkUnique(spec domainRepo.TableSpec, self int64, rec domainRepo.Record) error {
	for _, column := range spec.Unique {
		v, ok := rec[column]
		if !ok || v == nil {
			continue
		}
		want := fmt.Sprint(storeValue(v))
		if want == "" {
			continue
		}
		for id, row := range r.rows[spec.Name] {
			if id != self && row[column] != nil && fmt.Sprint(row[column]) == want {
				return fmt.Errorf("%w: %s=%s", domainRepo.ErrDuplicate, column, want)
			}
		}
	}
	return nil
}

func (r *MemoryTableRepository) Delete(ctx context.Context, table string, key any) (bool, error) {
	spec, err := domainRepo.LookupTable(table)
	if err != nil {
		return false, err
	}
	if err := r.fail("delete", table); err != nil {
		return false, err
	}
	id, err := toKey(key)
	if err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[spec.Name][id]; !ok {
		return false, nil
	}
	delete(r.rows[spec.Name], id)
	return true, nil
}

func (r *MemoryTableRepository) Count(ctx context.Context, table string, where domainRepo.Record) (int64, error) {
	spec, err := domainRepo.LookupTable(table)
	if err != nil {
		return 0, err
	}
	if err := r.fail("count", table); err != nil {
		return 0, err
	}
	for c := range where {
		if !spec.Knows(c) {
			return 0, fmt.Errorf("column %q is not part of %s", c, spec.Name)
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, rec := range r.rows[spec.Name] {
		if matches(rec, where) {
			total++
		}
	}
	return total, nil
}

func (r *MemoryTableRepository) Exists(ctx context.Context, table, column string, value any) (bool, error) {
	total, err := r.Count(ctx, table, domainRepo.Record{column: value})
	return total > 0, err
}

func (r *MemoryTableRepository) Ping(ctx context.Context) error {
	return r.fail("ping", "")
}

func matches(rec, where domainRepo.Record) bool {
	for c, want := range where {
		if fmt.Sprint(storeValue(rec[c])) != fmt.Sprint(storeValue(want)) {
			return false
		}
	}
	return true
}

// storeValue keeps what a database round trip would keep: scalars as
// written, structured values as raw JSON.
func storeValue(v any) any {
	switch enc := encodeValue(v).(type) {
	case string:
		if _, isString := v.(string); !isString && json.Valid([]byte(enc)) && (len(enc) > 0 && (enc[0] == '[' || enc[0] == '{')) {
			return json.RawMessage(enc)
		}
		return enc
	default:
		return enc
	}
}

func copyRecord(rec domainRepo.Record) domainRepo.Record {
	out := make(domainRepo.Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

func toKey(key any) (int64, error) {
	switch k := key.(type) {
	case int:
		return int64(k), nil
	case int32:
		return int64(k), nil
	case int64:
		return k, nil
	case float64:
		return int64(k), nil
	case string:
		var id int64
		if _, err := fmt.Sscan(k, &id); err != nil {
			return 0, fmt.Errorf("invalid key %q", k)
		}
		return id, nil
	}
	return 0, fmt.Errorf("unsupported key type %T", key)
}
