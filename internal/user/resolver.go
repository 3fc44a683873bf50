package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Resolver maps an authenticated email to a user id, creating the record on
// first contact.
type Resolver struct {
	repo Repository
}

func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve returns the id of the user with the given email, inserting a new row
// if none exists. Name and image are only written on that first insert;
// existing rows are never updated here (first-write-wins).
//
// Two concurrent first-time requests for the same email can both reach the
// insert; the unique constraint on email decides the winner and the loser
// re-reads the row it lost to.
func (s *Resolver) Resolve(ctx context.Context, email, name, image string) (uuid.UUID, error) {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return uuid.Nil, fmt.Errorf("lookup user: %w", err)
	}

	u := &User{
		Email: email,
		Name:  name,
		Image: image,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if isUniqueViolation(err) {
			winner, lookupErr := s.repo.GetByEmail(ctx, email)
			if lookupErr != nil {
				return uuid.Nil, fmt.Errorf("lookup user after conflict: %w", lookupErr)
			}
			return winner.ID, nil
		}
		return uuid.Nil, fmt.Errorf("create user: %w", err)
	}

	return u.ID, nil
}

// Lookup returns the id for an existing email. Unlike Resolve it never
// creates a row; reads must not register users.
func (s *Resolver) Lookup(ctx context.Context, email string) (uuid.UUID, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return uuid.Nil, ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("lookup user: %w", err)
	}
	return u.ID, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
