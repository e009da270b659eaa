package service

import (
	"clubcal/cmd/internal/domain/entity"
	"clubcal/cmd/internal/utils/apierror"
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/labstack/gommon/log"
)

var (
	ErrFeedNotFound  = errors.New("feed not found")
	ErrUpstreamQuery = errors.New("upstream query failed")
)

type AppointmentRepository interface {
	Query(ctx context.Context, filter entity.AppointmentFilter) ([]*entity.Appointment, error)
}

type FeedUserRepository interface {
	FindByFeedID(ctx context.Context, feedID string) (*entity.User, error)
}

type CalendarRenderer interface {
	Render(appts []*entity.Appointment) string
}

// Feed is a rendered calendar document.
type Feed struct {
	Body   string
	Events int
}

type DefaultFeedService struct {
	AppointmentRepo AppointmentRepository
	UserRepo        FeedUserRepository
	Renderer        CalendarRenderer
}

func NewFeedService(apptRepo AppointmentRepository, userRepo FeedUserRepository, renderer CalendarRenderer) *DefaultFeedService {
	return &DefaultFeedService{AppointmentRepo: apptRepo, UserRepo: userRepo, Renderer: renderer}
}

func (f *DefaultFeedService) GetFeed(ctx context.Context, feedID string) (*Feed, apierror.ErrorResponse) {
	appts, err := f.SelectAppointments(ctx, feedID)
	switch {
	case errors.Is(err, ErrFeedNotFound):
		return nil, apierror.FeedNotFoundError
	case err != nil:
		log.Errorf("failed to build feed %s: %v", feedID, err)
		return nil, apierror.InternalServerError
	}

	return &Feed{Body: f.Renderer.Render(appts), Events: len(appts)}, nil
}

// SelectAppointments resolves feedID to its owner and returns the
// appointments their preferences let through, ordered by start date.
//
// An empty IncludeAppointmentTypes selects nothing. An empty
// IncludeResponseTypes disables response filtering altogether.
func (f *DefaultFeedService) SelectAppointments(ctx context.Context, feedID string) ([]*entity.Appointment, error) {
	user, err := f.UserRepo.FindByFeedID(ctx, feedID)
	if err != nil {
		return nil, fmt.Errorf("%w: find user by feed id: %w", ErrUpstreamQuery, err)
	}
	if user == nil {
		return nil, ErrFeedNotFound
	}

	prefs := user.FeedPreferences
	appts := make([]*entity.Appointment, 0)
	if len(prefs.IncludeAppointmentTypes) == 0 {
		return appts, nil
	}

	filter := entity.AppointmentFilter{
		Types:          prefs.IncludeAppointmentTypes,
		ExcludeDeleted: true,
		PublishedOnly:  !prefs.IncludeDraftStatus,
	}

	if len(prefs.IncludeResponseTypes) > 0 {
		ids := respondedAppointmentIDs(user.Responses, prefs.IncludeResponseTypes)
		if len(ids) == 0 {
			return appts, nil
		}
		filter.IDs = ids
	}

	appts, err = f.AppointmentRepo.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: query appointments: %w", ErrUpstreamQuery, err)
	}

	slices.SortStableFunc(appts, func(a, b *entity.Appointment) int {
		return a.StartDate.Compare(b.StartDate)
	})
	return appts, nil
}

// respondedAppointmentIDs returns, in first-seen order, the ids of the
// appointments the user answered with one of the wanted response types.
func respondedAppointmentIDs(responses []entity.Response, wanted []entity.ResponseType) []string {
	ids := make([]string, 0, len(responses))
	seen := make(map[string]struct{}, len(responses))
	for _, r := range responses {
		if !slices.Contains(wanted, r.Type) {
			continue
		}
		if _, ok := seen[r.AppointmentID]; ok {
			continue
		}
		seen[r.AppointmentID] = struct{}{}
		ids = append(ids, r.AppointmentID)
	}
	return ids
}
