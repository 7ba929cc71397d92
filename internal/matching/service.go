package matching

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("mapping not found")

// Mapping remembers the category chosen for a counterparty pattern.
type Mapping struct {
	Pattern   string    `json:"pattern"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	FindMatch(ctx context.Context, counterparty string) (string, error)
	CreateMapping(ctx context.Context, pattern, categoryKey string) error
	ListMappings(ctx context.Context) ([]Mapping, error)
	DeleteMapping(ctx context.Context, pattern string) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category learned for the given counterparty.
// Returns empty string if no match found.
func (s *Service) Suggest(ctx context.Context, counterparty string) (string, error) {
	return s.repo.FindMatch(ctx, Normalize(counterparty))
}

// Learn remembers a category for a counterparty.
func (s *Service) Learn(ctx context.Context, counterparty, categoryKey string) error {
	pattern := Normalize(counterparty)
	if pattern == "" {
		return nil
	}

	return s.repo.CreateMapping(ctx, pattern, categoryKey)
}

func (s *Service) List(ctx context.Context) ([]Mapping, error) {
	return s.repo.ListMappings(ctx)
}

func (s *Service) Forget(ctx context.Context, counterparty string) error {
	return s.repo.DeleteMapping(ctx, Normalize(counterparty))
}

// Normalize lower-cases a counterparty and collapses white space.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
