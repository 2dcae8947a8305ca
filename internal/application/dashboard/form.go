package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/labomak/dashboard/internal/application/gateway"
	"github.com/labomak/dashboard/internal/application/validation"
	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"github.com/labomak/dashboard/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Mode is the purpose of a form.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

var (
	ErrUnknownField = errors.New("bilinmeyen alan")
	ErrReadOnly     = errors.New("bu alan değiştirilemez")
	ErrSubmitting   = errors.New("form zaten gönderiliyor")
	ErrClosed       = errors.New("form kapatıldı")
)

// FormController edits one entity. Values are kept as the raw text the user
// typed so that a failed submit can be retried unchanged.
type FormController[E any] struct {
	desc *Descriptor[E]
	list *ListController[E]

	mu         sync.Mutex
	mode       Mode
	key        int64
	values     map[string]string
	errors     map[string]string
	items      int
	probe      validation.ProbeState
	submitting bool
	closed     bool
	defaulted  map[string]string
}

// NewCreateForm opens an empty form, pre-filled by the descriptor defaults.
// list, when not nil, is refreshed after every successful submit.
func NewCreateForm[E any](ctx context.Context, desc *Descriptor[E], list *ListController[E]) (*FormController[E], error) {
	f := &FormController[E]{desc: desc, list: list, mode: ModeCreate}
	if err := f.reset(ctx); err != nil {
		return nil, err
	}
	return f, nil
}

// NewEditForm loads the entity with key into a form. Key and immutable
// fields cannot be changed.
func NewEditForm[E any](ctx context.Context, desc *Descriptor[E], list *ListController[E], key int64) (*FormController[E], error) {
	e, err := desc.Table.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	f := &FormController[E]{
		desc:   desc,
		list:   list,
		mode:   ModeEdit,
		key:    key,
		values: valuesOf(desc, *e),
		errors: map[string]string{},
	}
	f.items = f.countItems()
	return f, nil
}

func valuesOf[E any](desc *Descriptor[E], e E) map[string]string {
	values := map[string]string{}
	rec, err := gateway.Encode(e)
	if err == nil {
		for _, field := range desc.Fields {
			if field.Column == "" {
				continue
			}
			if v, ok := rec[field.Column]; ok && v != nil {
				values[field.Name] = cell(v)
			}
		}
	}
	if desc.Load != nil {
		desc.Load(e, values)
	}
	return values
}

func (f *FormController[E]) reset(ctx context.Context) error {
	values := map[string]string{}
	if f.desc.Defaults != nil {
		defaults, err := f.desc.Defaults(ctx)
		if err != nil {
			return err
		}
		for k, v := range defaults {
			values[k] = v
		}
		f.defaulted = defaults
	}
	f.values = values
	f.errors = map[string]string{}
	f.items = f.countItems()
	if f.desc.Group != nil && f.items == 0 {
		f.items = 1
	}
	f.probe = validation.ProbeUntested
	return nil
}

func (f *FormController[E]) countItems() int {
	if f.desc.Group == nil {
		return 0
	}
	last := -1
	for name := range f.values {
		if g, i, _, ok := parseItemName(name); ok && g == f.desc.Group.Name && i > last {
			last = i
		}
	}
	return last + 1
}

func (f *FormController[E]) Mode() Mode { return f.mode }

// Key is the backend key of the edited entity, zero while creating.
func (f *FormController[E]) Key() int64 { return f.key }

func (f *FormController[E]) Descriptor() *Descriptor[E] { return f.desc }

// Value returns the current raw value of a field.
func (f *FormController[E]) Value(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[name]
}

// Values returns a copy of every field value.
func (f *FormController[E]) Values() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyValues(f.values)
}

// Errors returns the field errors currently shown.
func (f *FormController[E]) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyValues(f.errors)
}

func copyValues(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// Items is the number of repeated group entries on the form.
func (f *FormController[E]) Items() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items
}

// AddItem appends an empty group entry and returns its index.
func (f *FormController[E]) AddItem() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.desc.Group == nil {
		return -1
	}
	f.items++
	return f.items - 1
}

// RemoveItem deletes group entry i and shifts the following entries down.
func (f *FormController[E]) RemoveItem(i int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := f.desc.Group
	if g == nil || i < 0 || i >= f.items {
		return
	}
	for j := i; j < f.items; j++ {
		for _, field := range g.Fields {
			next, ok := f.values[g.ItemName(j+1, field.Name)]
			if ok && j+1 < f.items {
				f.values[g.ItemName(j, field.Name)] = next
			} else {
				delete(f.values, g.ItemName(j, field.Name))
			}
			delete(f.errors, g.ItemName(j, field.Name))
		}
	}
	f.items--
}

// Set stores a keystroke. A field error already shown is cleared as soon as
// the value becomes valid; new errors wait for Blur or Submit.
func (f *FormController[E]) Set(name, value string) error {
	field, ok := f.desc.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if field.ReadOnly(f.mode) {
		return fmt.Errorf("%w: %s", ErrReadOnly, name)
	}
	if group, i, _, isItem := parseItemName(name); isItem && f.desc.Group != nil && group == f.desc.Group.Name && i >= f.items {
		f.items = i + 1
	}
	f.values[name] = value
	if name == f.desc.ImageField {
		f.probe = validation.ProbeUntested
	}
	if _, shown := f.errors[name]; shown {
		if _, err := field.Rule.Check(value); err == nil {
			delete(f.errors, name)
		}
	}
	return nil
}

// Blur validates one field and rewrites it in its normalised form where the
// rule formats input, as phone numbers do.
func (f *FormController[E]) Blur(name string) (string, error) {
	field, ok := f.desc.Field(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	normalized, err := field.Rule.Check(f.values[name])
	if err != nil {
		f.errors[name] = err.Error()
		return f.values[name], err
	}
	delete(f.errors, name)
	if field.Rule.Kind == validation.KindPhone && normalized != "" {
		f.values[name] = normalized
	}
	return f.values[name], nil
}

// ProbeImage tests the image field and records the outcome. An invalid
// image blocks submit until the field changes.
func (f *FormController[E]) ProbeImage(ctx context.Context, prober *validation.ImageProber) validation.ProbeResult {
	ref := f.Value(f.desc.ImageField)
	result := prober.Probe(ctx, ref)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.values[f.desc.ImageField] != ref {
		return result
	}
	f.probe = result.State
	if result.State == validation.ProbeInvalid {
		f.errors[f.desc.ImageField] = "Görsel yüklenemedi: " + result.Error
	} else {
		delete(f.errors, f.desc.ImageField)
	}
	return result
}

// ProbeState is the last image test outcome for the current image value.
func (f *FormController[E]) ProbeState() validation.ProbeState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.probe
}

// Validate checks every field and the form-level rules without showing errors.
func (f *FormController[E]) Validate() []apperror.FieldError {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *FormController[E]) validateLocked() []apperror.FieldError {
	var errs []apperror.FieldError
	check := func(field Field) {
		if field.Key {
			return
		}
		if _, err := field.Rule.Check(f.values[field.Name]); err != nil {
			errs = append(errs, apperror.FieldError{Field: field.Name, Message: err.Error()})
		}
	}
	for _, field := range f.desc.Fields {
		check(field)
	}
	if g := f.desc.Group; g != nil {
		for i := 0; i < f.items; i++ {
			for _, field := range g.Fields {
				field.Name = g.ItemName(i, field.Name)
				check(field)
			}
		}
	}
	if f.desc.Check != nil {
		errs = append(errs, f.desc.Check(f.values)...)
	}
	if f.desc.ImageField != "" && f.probe == validation.ProbeInvalid {
		errs = append(errs, apperror.FieldError{Field: f.desc.ImageField, Message: "Görsel yüklenemedi"})
	}
	sort.SliceStable(errs, func(i, j int) bool { return errs[i].Field < errs[j].Field })
	return errs
}

// CanSubmit is false while a submit is running or any rule fails.
func (f *FormController[E]) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.submitting && !f.closed && len(f.validateLocked()) == 0
}

// Submitting reports whether a submit is in flight.
func (f *FormController[E]) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Closed reports whether an edit form finished successfully.
func (f *FormController[E]) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Payload builds the record the gateway receives from the current values.
func (f *FormController[E]) Payload() (domainRepo.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.payloadLocked()
}

func (f *FormController[E]) payloadLocked() (domainRepo.Record, error) {
	rec := domainRepo.Record{}
	for _, field := range f.desc.Fields {
		if field.Key || field.Column == "" || field.ReadOnly(f.mode) {
			continue
		}
		normalized, err := field.Rule.Check(f.values[field.Name])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field.Name, err)
		}
		if normalized == "" {
			if f.mode == ModeEdit && (field.Rule.Kind == validation.KindText || field.Rule.Kind == validation.KindEmail ||
				field.Rule.Kind == validation.KindPhone || field.Rule.Kind == validation.KindURL) {
				rec[field.Column] = ""
			}
			continue
		}
		switch field.Rule.Kind {
		case validation.KindPrice:
			price, err := decimal.NewFromString(normalized)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", field.Name, err)
			}
			rec[field.Column] = price
		case validation.KindQuantity:
			q, err := validation.ParseQuantity(normalized)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", field.Name, err)
			}
			rec[field.Column] = q
		default:
			rec[field.Column] = normalized
		}
	}
	if f.desc.Extend != nil {
		if err := f.desc.Extend(f.itemValuesLocked(), rec); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// itemValuesLocked is values restricted to the live group entries.
func (f *FormController[E]) itemValuesLocked() map[string]string {
	out := map[string]string{}
	for k, v := range f.values {
		if g, i, _, ok := parseItemName(k); ok && f.desc.Group != nil && g == f.desc.Group.Name && i >= f.items {
			continue
		}
		out[k] = v
	}
	out[itemCountKey] = fmt.Sprint(f.items)
	return out
}

// itemCountKey carries the group size to Extend hooks.
const itemCountKey = "#items"

// Submit validates, sends the payload and, on success, resets a create form
// or closes an edit form and refreshes the sibling list. On failure the
// values are kept and the form can be submitted again.
func (f *FormController[E]) Submit(ctx context.Context) (*E, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrClosed
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitting
	}
	if errs := f.validateLocked(); len(errs) > 0 {
		for _, fe := range errs {
			f.errors[fe.Field] = fe.Message
		}
		f.mu.Unlock()
		return nil, apperror.NewValidationError(errs)
	}
	payload, err := f.payloadLocked()
	if err != nil {
		f.mu.Unlock()
		return nil, apperror.NewBadRequestError(err.Error())
	}
	f.submitting = true
	mode, key := f.mode, f.key
	submitted := copyValues(f.values)
	f.mu.Unlock()

	var saved *E
	if mode == ModeEdit {
		saved, err = f.desc.Table.Update(ctx, key, payload)
	} else {
		saved, err = f.desc.Table.Create(ctx, payload)
	}

	f.mu.Lock()
	f.submitting = false
	if err != nil {
		f.mu.Unlock()
		return nil, err
	}
	var unused map[string]string
	if mode == ModeEdit {
		f.closed = true
	} else {
		unused = unusedDefaults(f.defaulted, submitted)
		f.defaulted = nil
		if rerr := f.reset(ctx); rerr != nil {
			log.Printf("[dashboard] %s formu sıfırlanamadı: %v", f.desc.Module, rerr)
			f.values = map[string]string{}
			f.errors = map[string]string{}
		}
	}
	f.mu.Unlock()

	if len(unused) > 0 && f.desc.Abandon != nil {
		f.desc.Abandon(ctx, unused)
	}
	if f.list != nil {
		f.list.Refresh(ctx)
	}
	return saved, nil
}

// Cancel discards the form. Create forms give back the defaults they were
// handed, such as a reserved offer number, whatever the fields hold now.
func (f *FormController[E]) Cancel(ctx context.Context) {
	f.mu.Lock()
	defaults := f.defaulted
	f.defaulted = nil
	f.closed = true
	f.mu.Unlock()

	if f.mode == ModeCreate && len(defaults) > 0 && f.desc.Abandon != nil {
		f.desc.Abandon(ctx, defaults)
	}
}

// unusedDefaults lists the defaults a stored record did not keep.
func unusedDefaults(defaults, submitted map[string]string) map[string]string {
	var unused map[string]string
	for k, v := range defaults {
		if submitted[k] == v {
			continue
		}
		if unused == nil {
			unused = map[string]string{}
		}
		unused[k] = v
	}
	return unused
}

// SetAll applies a map of form values, as received from an API request, and
// stops at the first read-only or unknown field.
func (f *FormController[E]) SetAll(values map[string]string) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := f.Set(name, values[name]); err != nil {
			if errors.Is(err, ErrReadOnly) && strings.TrimSpace(values[name]) == f.Value(name) {
				continue
			}
			return err
		}
	}
	return nil
}
