package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Dinesh1441/carstreet-sub002/internal/dto"
	"github.com/Dinesh1441/carstreet-sub002/internal/handler"
)

type stubTimelineService struct {
	lastLeadID uint
	lastParams map[string]string
	response   dto.TimelineResponse
	err        error
}

func (s *stubTimelineService) GetTimeline(_ context.Context, leadID uint, params map[string]string) (dto.TimelineResponse, error) {
	s.lastLeadID = leadID
	s.lastParams = params
	if s.err != nil {
		return dto.TimelineResponse{}, s.err
	}
	return s.response, nil
}

func newTimelineApp(svc *stubTimelineService, exposeErrors bool) *fiber.App {
	app := fiber.New()
	group := app.Group("/api/v1/leads")
	handler.NewTimelineHandler(svc, exposeErrors, zerolog.New(io.Discard)).Register(group)
	return app
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func TestTimelineHandlerReturnsPageEnvelope(t *testing.T) {
	svc := &stubTimelineService{
		response: dto.TimelineResponse{
			Items: []dto.ActivityEventResponse{
				{
					ID:        3,
					EventType: "document_uploaded",
					Summary:   "Document RC Copy was uploaded",
					SubjectID: 9,
					Metadata:  map[string]interface{}{"title": "RC Copy"},
					CreatedAt: time.Now().UTC(),
				},
			},
			Pagination: dto.PaginationMeta{CurrentPage: 1, TotalPages: 1, TotalItems: 1, ItemsPerPage: 10},
		},
	}
	app := newTimelineApp(svc, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/12/timeline?type=document_uploaded&search=rc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Success    bool                        `json:"success"`
		Data       []dto.ActivityEventResponse `json:"data"`
		Pagination dto.PaginationMeta          `json:"pagination"`
		Message    string                      `json:"message"`
	}
	decodeBody(t, resp, &payload)

	require.True(t, payload.Success)
	require.Len(t, payload.Data, 1)
	require.Equal(t, "RC Copy", payload.Data[0].Metadata["title"])
	require.Equal(t, int64(1), payload.Pagination.TotalItems)

	require.Equal(t, uint(12), svc.lastLeadID)
	require.Equal(t, "document_uploaded", svc.lastParams["type"])
	require.Equal(t, "rc", svc.lastParams["search"])
}

func TestTimelineHandlerUnparsableLeadBecomesEmptyScope(t *testing.T) {
	svc := &stubTimelineService{
		response: dto.TimelineResponse{
			Items:      []dto.ActivityEventResponse{},
			Pagination: dto.PaginationMeta{CurrentPage: 1},
		},
	}
	app := newTimelineApp(svc, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/not-a-lead/timeline", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, uint(0), svc.lastLeadID)

	var payload struct {
		Success bool                        `json:"success"`
		Data    []dto.ActivityEventResponse `json:"data"`
	}
	decodeBody(t, resp, &payload)
	require.True(t, payload.Success)
	require.Empty(t, payload.Data)
}

func TestTimelineHandlerHidesErrorDetailWhenNotExposed(t *testing.T) {
	svc := &stubTimelineService{err: context.DeadlineExceeded}
	app := newTimelineApp(svc, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/1/timeline", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &payload)
	require.False(t, payload.Success)
	require.Equal(t, "failed to fetch timeline", payload.Message)
}

func TestTimelineHandlerExposesErrorDetailInDevelopment(t *testing.T) {
	svc := &stubTimelineService{err: context.DeadlineExceeded}
	app := newTimelineApp(svc, true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/leads/1/timeline", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	decodeBody(t, resp, &payload)
	require.False(t, payload.Success)
	require.Equal(t, context.DeadlineExceeded.Error(), payload.Message)
}
