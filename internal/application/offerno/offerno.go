// Package offerno generates TK<yyyymmdd><nnn> offer numbers.
package offerno

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"regexp"
	"time"

	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
)

// ErrExhausted is returned when no free number was found within the attempt budget.
var ErrExhausted = errors.New("no free offer number")

// Pattern matches a well-formed offer number.
var Pattern = regexp.MustCompile(`^TK\d{4}(0[1-9]|1[0-2])(0[1-9]|[12]\d|3[01])\d{3}$`)

const defaultAttempts = 20

// Format renders the number for day t with a three digit suffix.
func Format(t time.Time, suffix int) string {
	return fmt.Sprintf("TK%04d%02d%02d%03d", t.Year(), int(t.Month()), t.Day(), suffix%1000)
}

// Generator hands out offer numbers that are neither stored in teklifler
// nor reserved by another form.
type Generator struct {
	tables   domainRepo.TableRepository
	registry domainRepo.OfferNumberRegistry
	now      func() time.Time
	suffix   func() int
	attempts int
}

func NewGenerator(tables domainRepo.TableRepository, registry domainRepo.OfferNumberRegistry) *Generator {
	return &Generator{
		tables:   tables,
		registry: registry,
		now:      time.Now,
		suffix:   func() int { return rand.IntN(1000) },
		attempts: defaultAttempts,
	}
}

// Candidate returns a formatted number without any uniqueness check.
func (g *Generator) Candidate() string {
	return Format(g.now(), g.suffix())
}

// Next returns a reserved number. Callers release it with Release when the
// offer is abandoned.
func (g *Generator) Next(ctx context.Context) (string, error) {
	for i := 0; i < g.attempts; i++ {
		number := g.Candidate()

		if g.tables != nil {
			taken, err := g.tables.Exists(ctx, domainRepo.TableOffers, "teklif_no", number)
			if err != nil {
				return "", fmt.Errorf("check offer number %s: %w", number, err)
			}
			if taken {
				continue
			}
		}

		if g.registry != nil {
			ok, err := g.registry.Reserve(ctx, number)
			if err != nil {
				log.Printf("[offerno] reservation of %s failed, using it unreserved: %v", number, err)
				return number, nil
			}
			if !ok {
				continue
			}
		}
		return number, nil
	}
	return "", fmt.Errorf("%w after %d attempts", ErrExhausted, g.attempts)
}

// Release frees a reserved number that was never stored.
func (g *Generator) Release(ctx context.Context, number string) {
	if g.registry == nil || number == "" {
		return
	}
	if err := g.registry.Release(ctx, number); err != nil {
		log.Printf("[offerno] release of %s failed: %v", number, err)
	}
}
