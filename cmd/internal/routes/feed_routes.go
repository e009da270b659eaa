package routes

import (
	"clubcal/cmd/internal/metrics"
	"clubcal/cmd/internal/service"
	"clubcal/cmd/internal/utils/apierror"
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

const calendarContentType = "text/calendar; charset=utf-8"

type FeedService interface {
	GetFeed(ctx context.Context, feedID string) (*service.Feed, apierror.ErrorResponse)
}

type DefaultFeedRoute struct {
	FeedService FeedService
	Metrics     *metrics.Metrics
	filename    string
}

func NewFeedDefault(feedService FeedService, productID string, m *metrics.Metrics) *DefaultFeedRoute {
	return &DefaultFeedRoute{
		FeedService: feedService,
		Metrics:     m,
		filename:    productID + "-feed.ics",
	}
}

// GetFeed serves GET /feed/:feedId. It is public: the token in the path is
// the only credential. Errors are written as plain text.
func (f *DefaultFeedRoute) GetFeed(c echo.Context) error {
	feedID := c.Param("feedId")
	if feedID == "" {
		f.observe(metrics.OutcomeNotFound, 0)
		return c.String(apierror.FeedNotFoundError.Code(), apierror.FeedNotFoundError.Error())
	}

	feed, apierr := f.FeedService.GetFeed(c.Request().Context(), feedID)
	if apierr != nil {
		outcome := metrics.OutcomeError
		if apierr.Code() == http.StatusNotFound {
			outcome = metrics.OutcomeNotFound
		}
		f.observe(outcome, 0)
		return c.String(apierr.Code(), apierr.Error())
	}

	f.observe(metrics.OutcomeFound, feed.Events)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", f.filename))
	return c.Blob(http.StatusOK, calendarContentType, []byte(feed.Body))
}

func (f *DefaultFeedRoute) observe(outcome string, events int) {
	if f.Metrics == nil {
		return
	}
	f.Metrics.ObserveFeed(outcome, events)
}
