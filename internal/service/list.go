package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aminah/showtrack/internal/apperror"
	"github.com/aminah/showtrack/internal/model"
	"github.com/aminah/showtrack/internal/repository"
)

// ListService is the membership toggle engine.
//
// Each (user, show) pair is in exactly one of three states:
//
//	NONE ──add to watchlist──▶ WATCHLISTED
//	NONE ──add to watched────▶ WATCHED
//	WATCHLISTED ◀──add to watchlist / add to watched──▶ WATCHED
//	either ──remove───────────▶ NONE
//
// The two lists are mutually exclusive: adding to one set while the pair
// sits in the other MOVES it. The move is a single atomic store write (the
// membership table holds one status row per pair), so no sequence of
// operations — including a crash mid-toggle — can ever produce a pair that
// is in both lists.
//
// Every transition requires both ids to resolve to existing records first;
// an unknown user or show fails with NotFound and issues no mutation.
type ListService struct {
	users       repository.UserRepository
	shows       repository.ShowRepository
	memberships repository.MembershipRepository
	logger      *slog.Logger
}

// NewListService creates a ListService.
func NewListService(
	users repository.UserRepository,
	shows repository.ShowRepository,
	memberships repository.MembershipRepository,
	logger *slog.Logger,
) *ListService {
	return &ListService{
		users:       users,
		shows:       shows,
		memberships: memberships,
		logger:      logger,
	}
}

// Add puts a show on one of the user's lists, moving it off the other list
// if present. Returns the user's refreshed record so callers can patch
// their local state instead of re-fetching everything.
func (s *ListService) Add(ctx context.Context, userID string, list repository.ListName, showID string) (*model.User, error) {
	if err := s.checkPair(ctx, userID, list, showID); err != nil {
		return nil, err
	}

	if err := s.memberships.AddToSet(ctx, userID, list, showID); err != nil {
		s.logger.Error("failed to add show to list",
			slog.String("userID", userID),
			slog.String("showID", showID),
			slog.String("list", string(list)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("adding show to %s: %w", list, err)
	}

	s.logger.Info("show added to list",
		slog.String("userID", userID),
		slog.String("showID", showID),
		slog.String("list", string(list)),
	)
	return s.users.GetUserByID(ctx, userID)
}

// Remove takes a show off one of the user's lists. Removing a show that is
// not on the list is a no-op success (the store operation is idempotent).
func (s *ListService) Remove(ctx context.Context, userID string, list repository.ListName, showID string) (*model.User, error) {
	if err := s.checkPair(ctx, userID, list, showID); err != nil {
		return nil, err
	}

	if err := s.memberships.RemoveFromSet(ctx, userID, list, showID); err != nil {
		s.logger.Error("failed to remove show from list",
			slog.String("userID", userID),
			slog.String("showID", showID),
			slog.String("list", string(list)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("removing show from %s: %w", list, err)
	}

	s.logger.Info("show removed from list",
		slog.String("userID", userID),
		slog.String("showID", showID),
		slog.String("list", string(list)),
	)
	return s.users.GetUserByID(ctx, userID)
}

// ShowsIn resolves one of the user's lists to full show records.
// Orphaned ids (deleted shows) are silently skipped.
func (s *ListService) ShowsIn(ctx context.Context, userID string, list repository.ListName) ([]model.Show, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, apperror.MissingID("userId")
	}
	if !list.Valid() {
		return nil, apperror.Invalid("list", fmt.Sprintf("list must be %q or %q", repository.Watchlist, repository.Watched))
	}
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	return s.memberships.ShowsInSet(ctx, userID, list)
}

// checkPair enforces the transition precondition: valid list name, both
// ids present, and both records existing in the store. Nothing is mutated
// if any check fails.
func (s *ListService) checkPair(ctx context.Context, userID string, list repository.ListName, showID string) error {
	if strings.TrimSpace(userID) == "" {
		return apperror.MissingID("userId")
	}
	if strings.TrimSpace(showID) == "" {
		return apperror.MissingID("showId")
	}
	if !list.Valid() {
		return apperror.Invalid("list", fmt.Sprintf("list must be %q or %q", repository.Watchlist, repository.Watched))
	}

	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if _, err := s.shows.GetByID(ctx, showID); err != nil {
		return err
	}
	return nil
}
