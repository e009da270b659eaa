package service

import (
	"clubcal/cmd/internal/domain/entity"
	"clubcal/cmd/internal/utils"
	"clubcal/cmd/internal/utils/apierror"
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

type UserRepository interface {
	FindBySub(ctx context.Context, sub string) (*entity.User, error)
	Save(ctx context.Context, user *entity.User) error
}

type FeedPreferencesRequest struct {
	IncludeAppointmentTypes []string `json:"include_appointment_types" validate:"nodupes,dive,appttype"`
	IncludeResponseTypes    []string `json:"include_response_types" validate:"nodupes,dive,responsetype"`
	IncludeDraftStatus      bool     `json:"include_draft_status"`
}

type FeedPreferencesResponse struct {
	IncludeAppointmentTypes []string `json:"include_appointment_types"`
	IncludeResponseTypes    []string `json:"include_response_types"`
	IncludeDraftStatus      bool     `json:"include_draft_status"`
	UpdatedAt               string   `json:"updated_at"`
}

type FeedURLResponse struct {
	FeedID string `json:"feed_id"`
	URL    string `json:"url"`
}

type DefaultPreferencesService struct {
	UserRepo     UserRepository
	Validate     *validator.Validate
	PublicOrigin string
}

func NewPreferencesService(userRepo UserRepository, validate *validator.Validate, publicOrigin string) *DefaultPreferencesService {
	return &DefaultPreferencesService{UserRepo: userRepo, Validate: validate, PublicOrigin: publicOrigin}
}

func (p *DefaultPreferencesService) GetPreferences(ctx context.Context, sub string) (*FeedPreferencesResponse, apierror.ErrorResponse) {
	user, apierr := p.fetchUser(ctx, sub)
	if apierr != nil {
		return nil, apierr
	}
	return toFeedPreferencesResponse(user), nil
}

// UpdatePreferences replaces all three filters at once. Omitted lists are
// stored as empty sets.
func (p *DefaultPreferencesService) UpdatePreferences(ctx context.Context, sub string, req *FeedPreferencesRequest) (*FeedPreferencesResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if err := p.Validate.Struct(req); err != nil {
		return nil, apierror.FromValidationError(err)
	}

	user, apierr := p.fetchUser(ctx, sub)
	if apierr != nil {
		return nil, apierr
	}

	prefs := entity.FeedPreferences{
		IncludeAppointmentTypes: make([]entity.AppointmentType, len(req.IncludeAppointmentTypes)),
		IncludeResponseTypes:    make([]entity.ResponseType, len(req.IncludeResponseTypes)),
		IncludeDraftStatus:      req.IncludeDraftStatus,
	}
	for i, t := range req.IncludeAppointmentTypes {
		prefs.IncludeAppointmentTypes[i] = entity.AppointmentType(t)
	}
	for i, t := range req.IncludeResponseTypes {
		prefs.IncludeResponseTypes[i] = entity.ResponseType(t)
	}

	user.FeedPreferences = prefs
	if err := p.UserRepo.Save(ctx, user); err != nil {
		log.Errorf("failed to save feed preferences of user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}
	return toFeedPreferencesResponse(user), nil
}

func (p *DefaultPreferencesService) GetFeedURL(ctx context.Context, sub string) (*FeedURLResponse, apierror.ErrorResponse) {
	user, apierr := p.fetchUser(ctx, sub)
	if apierr != nil {
		return nil, apierr
	}
	return p.toFeedURLResponse(user), nil
}

// RotateFeedID gives the user a fresh feed token. The previous feed URL
// stops resolving immediately.
func (p *DefaultPreferencesService) RotateFeedID(ctx context.Context, sub string) (*FeedURLResponse, apierror.ErrorResponse) {
	user, apierr := p.fetchUser(ctx, sub)
	if apierr != nil {
		return nil, apierr
	}

	previous := user.FeedID
	user.FeedID = uuid.NewString()
	if err := p.UserRepo.Save(ctx, user); err != nil {
		user.FeedID = previous
		log.Errorf("failed to rotate feed id of user %d: %v", user.ID, err)
		return nil, apierror.InternalServerError
	}

	log.Infof("rotated feed id of user %d", user.ID)
	return p.toFeedURLResponse(user), nil
}

func (p *DefaultPreferencesService) fetchUser(ctx context.Context, sub string) (*entity.User, apierror.ErrorResponse) {
	user, err := p.UserRepo.FindBySub(ctx, sub)
	if err != nil {
		log.Errorf("failed to find user (%s) by sub: %v", sub, err)
		return nil, apierror.InternalServerError
	}
	if user == nil {
		return nil, apierror.UserNotFoundError
	}
	return user, nil
}

func (p *DefaultPreferencesService) toFeedURLResponse(user *entity.User) *FeedURLResponse {
	return &FeedURLResponse{
		FeedID: user.FeedID,
		URL:    p.PublicOrigin + "/feed/" + user.FeedID,
	}
}

func toFeedPreferencesResponse(user *entity.User) *FeedPreferencesResponse {
	prefs := user.FeedPreferences
	resp := &FeedPreferencesResponse{
		IncludeAppointmentTypes: make([]string, len(prefs.IncludeAppointmentTypes)),
		IncludeResponseTypes:    make([]string, len(prefs.IncludeResponseTypes)),
		IncludeDraftStatus:      prefs.IncludeDraftStatus,
		UpdatedAt:               utils.FormatEpoch(user.UpdatedAt),
	}
	for i, t := range prefs.IncludeAppointmentTypes {
		resp.IncludeAppointmentTypes[i] = string(t)
	}
	for i, t := range prefs.IncludeResponseTypes {
		resp.IncludeResponseTypes[i] = string(t)
	}
	return resp
}
