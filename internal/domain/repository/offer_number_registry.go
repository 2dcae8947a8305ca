package repository

import "context"

// OfferNumberRegistry reserves generated offer numbers so two concurrent
// forms never hand out the same one.
type OfferNumberRegistry interface {
	// Reserve returns false when number is already taken.
	Reserve(ctx context.Context, number string) (bool, error)
	Release(ctx context.Context, number string) error
}
