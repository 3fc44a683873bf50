package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"healai/internal/auth"
	"healai/internal/user"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidInput    = errors.New("symptoms and assessment are required")
)

// IdentityResolver maps the authenticated email to a user id. Resolve may
// create the user, Lookup never does.
type IdentityResolver interface {
	Resolve(ctx context.Context, email, name, image string) (uuid.UUID, error)
	Lookup(ctx context.Context, email string) (uuid.UUID, error)
}

type Service interface {
	Create(ctx context.Context, p auth.Principal, symptoms, assessment string) (*Summary, error)
	ListForUser(ctx context.Context, p auth.Principal) ([]Report, error)
	GetByID(ctx context.Context, p auth.Principal, id uuid.UUID) (*Report, error)
}

type service struct {
	repo  Repository
	users IdentityResolver
}

func NewService(repo Repository, users IdentityResolver) Service {
	return &service{repo: repo, users: users}
}

func (s *service) Create(ctx context.Context, p auth.Principal, symptoms, assessment string) (*Summary, error) {
	if p.Email == "" {
		return nil, ErrUnauthenticated
	}
	if symptoms == "" || assessment == "" {
		return nil, ErrInvalidInput
	}

	title := DeriveTitle(assessment)

	userID, err := s.users.Resolve(ctx, p.Email, p.Name, p.Image)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	rep := &Report{
		UserID:     userID,
		Title:      title,
		Symptoms:   symptoms,
		Assessment: assessment,
	}
	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}

	return &Summary{ID: rep.ID, Title: rep.Title, CreatedAt: rep.CreatedAt}, nil
}

func (s *service) ListForUser(ctx context.Context, p auth.Principal) ([]Report, error) {
	if p.Email == "" {
		return nil, ErrUnauthenticated
	}

	userID, err := s.users.Lookup(ctx, p.Email)
	if err != nil {
		// A principal we have never seen simply has no reports yet.
		if errors.Is(err, user.ErrNotFound) {
			return []Report{}, nil
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	reports, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return reports, nil
}

func (s *service) GetByID(ctx context.Context, p auth.Principal, id uuid.UUID) (*Report, error) {
	if p.Email == "" {
		return nil, ErrUnauthenticated
	}

	userID, err := s.users.Lookup(ctx, p.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	rep, err := s.repo.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetch report: %w", err)
	}
	return rep, nil
}
