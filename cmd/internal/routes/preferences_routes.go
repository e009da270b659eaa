package routes

import (
	"clubcal/cmd/internal/service"
	"clubcal/cmd/internal/utils"
	"clubcal/cmd/internal/utils/apierror"
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

type PreferencesService interface {
	GetPreferences(ctx context.Context, sub string) (*service.FeedPreferencesResponse, apierror.ErrorResponse)
	UpdatePreferences(ctx context.Context, sub string, req *service.FeedPreferencesRequest) (*service.FeedPreferencesResponse, apierror.ErrorResponse)
	GetFeedURL(ctx context.Context, sub string) (*service.FeedURLResponse, apierror.ErrorResponse)
	RotateFeedID(ctx context.Context, sub string) (*service.FeedURLResponse, apierror.ErrorResponse)
}

type DefaultPreferencesRoute struct {
	PreferencesService PreferencesService
}

func NewPreferencesDefault(prefsService PreferencesService) *DefaultPreferencesRoute {
	return &DefaultPreferencesRoute{PreferencesService: prefsService}
}

func (p *DefaultPreferencesRoute) GetPreferences(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	prefs, apierr := p.PreferencesService.GetPreferences(c.Request().Context(), data.Sub)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, prefs)
}

func (p *DefaultPreferencesRoute) UpdatePreferences(c echo.Context) error {
	var req service.FeedPreferencesRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	prefs, apierr := p.PreferencesService.UpdatePreferences(c.Request().Context(), data.Sub, &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, prefs)
}

func (p *DefaultPreferencesRoute) GetFeedURL(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	feedURL, apierr := p.PreferencesService.GetFeedURL(c.Request().Context(), data.Sub)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, feedURL)
}

func (p *DefaultPreferencesRoute) RotateFeedID(c echo.Context) error {
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return c.JSON(401, apierror.InvalidAuthTokenError)
	}

	feedURL, apierr := p.PreferencesService.RotateFeedID(c.Request().Context(), data.Sub)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, feedURL)
}
