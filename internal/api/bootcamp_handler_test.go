package api

import (
	"campfit/fitness-app/internal/domain"
	"campfit/fitness-app/internal/service"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// stubBootcampService satisfies service.BootcampService with overridable
// functions per method; unset methods fail loudly.
type stubBootcampService struct {
	getActive func(ctx context.Context, now time.Time) (*domain.Bootcamp, error)
	getStatus func(ctx context.Context, id primitive.ObjectID, now time.Time) (*domain.BootcampStatus, error)
	accept    func(ctx context.Context, userID, id primitive.ObjectID, now time.Time) (*domain.Bootcamp, *domain.Workout, error)
	decline   func(ctx context.Context, userID, id primitive.ObjectID) error
	invite    func(ctx context.Context, id primitive.ObjectID, userIDs []primitive.ObjectID) (int, error)
}

var errStubUnset = errors.New("stub method not set")

func (s *stubBootcampService) ListBootcamps(ctx context.Context) ([]service.BootcampWithCreator, error) {
	return nil, errStubUnset
}

func (s *stubBootcampService) GetActive(ctx context.Context, now time.Time) (*domain.Bootcamp, error) {
	if s.getActive == nil {
		return nil, errStubUnset
	}
	return s.getActive(ctx, now)
}

func (s *stubBootcampService) GetUpcoming(ctx context.Context, now time.Time) (*domain.Bootcamp, error) {
	return nil, errStubUnset
}

func (s *stubBootcampService) GetStatus(ctx context.Context, id primitive.ObjectID, now time.Time) (*domain.BootcampStatus, error) {
	if s.getStatus == nil {
		return nil, errStubUnset
	}
	return s.getStatus(ctx, id, now)
}

func (s *stubBootcampService) Create(ctx context.Context, creatorID primitive.ObjectID, params service.CreateBootcampParams) (*domain.Bootcamp, error) {
	return nil, errStubUnset
}

func (s *stubBootcampService) Update(ctx context.Context, callerID primitive.ObjectID, callerIsAdmin bool, id primitive.ObjectID, params service.UpdateBootcampParams) (*domain.Bootcamp, error) {
	return nil, errStubUnset
}

func (s *stubBootcampService) Delete(ctx context.Context, callerID primitive.ObjectID, callerIsAdmin bool, id primitive.ObjectID) error {
	return errStubUnset
}

func (s *stubBootcampService) Accept(ctx context.Context, userID, id primitive.ObjectID, now time.Time) (*domain.Bootcamp, *domain.Workout, error) {
	if s.accept == nil {
		return nil, nil, errStubUnset
	}
	return s.accept(ctx, userID, id, now)
}

func (s *stubBootcampService) Decline(ctx context.Context, userID, id primitive.ObjectID) error {
	if s.decline == nil {
		return errStubUnset
	}
	return s.decline(ctx, userID, id)
}

func (s *stubBootcampService) Invite(ctx context.Context, id primitive.ObjectID, userIDs []primitive.ObjectID) (int, error) {
	if s.invite == nil {
		return 0, errStubUnset
	}
	return s.invite(ctx, id, userIDs)
}

// fakeIdentity injects the context values AuthMiddleware would set.
func fakeIdentity(userID primitive.ObjectID, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextUserIDKey, userID.Hex())
		c.Set(ContextIsAdminKey, isAdmin)
		c.Next()
	}
}

func bootcampRouter(svc service.BootcampService, userID primitive.ObjectID) *gin.Engine {
	handler := NewBootcampHandler(svc)
	router := gin.New()
	router.GET("/bootcamps/active", handler.GetActive)
	router.GET("/bootcamps/status/:id", handler.GetStatus)
	router.POST("/bootcamps/:id/accept", fakeIdentity(userID, false), handler.Accept)
	router.POST("/bootcamps/:id/decline", fakeIdentity(userID, false), handler.Decline)
	router.POST("/bootcamps/:id/invite", fakeIdentity(userID, true), handler.Invite)
	return router
}

func TestGetActive_EmptyObjectWhenNoneRunning(t *testing.T) {
	svc := &stubBootcampService{
		getActive: func(ctx context.Context, now time.Time) (*domain.Bootcamp, error) {
			return nil, nil
		},
	}
	router := bootcampRouter(svc, primitive.NewObjectID())

	req := httptest.NewRequest(http.MethodGet, "/bootcamps/active", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "no active bootcamp is not a 404")
	assert.JSONEq(t, "{}", w.Body.String())
}

func TestGetStatus_ReturnsDerivedSnapshot(t *testing.T) {
	id := primitive.NewObjectID()
	svc := &stubBootcampService{
		getStatus: func(ctx context.Context, gotID primitive.ObjectID, now time.Time) (*domain.BootcampStatus, error) {
			assert.Equal(t, id, gotID)
			return &domain.BootcampStatus{
				IsActive:         true,
				HasStarted:       true,
				TimeUntilEnd:     90000,
				ParticipantCount: 4,
			}, nil
		},
	}
	router := bootcampRouter(svc, primitive.NewObjectID())

	req := httptest.NewRequest(http.MethodGet, "/bootcamps/status/"+id.Hex(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var status domain.BootcampStatus
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.IsActive)
	assert.Equal(t, int64(90000), status.TimeUntilEnd)
	assert.Equal(t, 4, status.ParticipantCount)
}

func TestGetStatus_InvalidID(t *testing.T) {
	router := bootcampRouter(&stubBootcampService{}, primitive.NewObjectID())

	req := httptest.NewRequest(http.MethodGet, "/bootcamps/status/not-an-id", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccept_ReturnsBootcampAndAchievement(t *testing.T) {
	userID := primitive.NewObjectID()
	id := primitive.NewObjectID()
	start := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	svc := &stubBootcampService{
		accept: func(ctx context.Context, gotUser, gotID primitive.ObjectID, now time.Time) (*domain.Bootcamp, *domain.Workout, error) {
			assert.Equal(t, userID, gotUser)
			assert.Equal(t, id, gotID)
			bootcamp := &domain.Bootcamp{
				ID:        id,
				Title:     "Trail Camp",
				StartTime: start,
				EndTime:   start.Add(time.Hour),
				Participants: []domain.Participant{
					{UserID: userID, Status: domain.ParticipantAccepted},
				},
			}
			achievement := &domain.Workout{
				ID:     primitive.NewObjectID(),
				UserID: userID,
				Name:   "Bootcamp: Trail Camp",
			}
			return bootcamp, achievement, nil
		},
	}
	router := bootcampRouter(svc, userID)

	req := httptest.NewRequest(http.MethodPost, "/bootcamps/"+id.Hex()+"/accept", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp AcceptResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, id.Hex(), resp.Bootcamp.ID)
	assert.Equal(t, 1, resp.Bootcamp.ParticipantCount)
	assert.Equal(t, "Bootcamp: Trail Camp", resp.Achievement.Name)
}

func TestAccept_FullAndDuplicateAreBadRequests(t *testing.T) {
	userID := primitive.NewObjectID()
	id := primitive.NewObjectID()

	for _, serviceErr := range []error{service.ErrBootcampFull, service.ErrAlreadyAccepted} {
		svc := &stubBootcampService{
			accept: func(ctx context.Context, _, _ primitive.ObjectID, _ time.Time) (*domain.Bootcamp, *domain.Workout, error) {
				return nil, nil, serviceErr
			},
		}
		router := bootcampRouter(svc, userID)

		req := httptest.NewRequest(http.MethodPost, "/bootcamps/"+id.Hex()+"/accept", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), serviceErr.Error())
	}
}

func TestDecline_Succeeds(t *testing.T) {
	userID := primitive.NewObjectID()
	id := primitive.NewObjectID()
	svc := &stubBootcampService{
		decline: func(ctx context.Context, gotUser, gotID primitive.ObjectID) error {
			assert.Equal(t, userID, gotUser)
			return nil
		},
	}
	router := bootcampRouter(svc, userID)

	req := httptest.NewRequest(http.MethodPost, "/bootcamps/"+id.Hex()+"/decline", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestInvite_DropsUnparseableIDs(t *testing.T) {
	adminID := primitive.NewObjectID()
	id := primitive.NewObjectID()
	valid := primitive.NewObjectID()

	svc := &stubBootcampService{
		invite: func(ctx context.Context, _ primitive.ObjectID, userIDs []primitive.ObjectID) (int, error) {
			assert.Equal(t, []primitive.ObjectID{valid}, userIDs)
			return 1, nil
		},
	}
	router := bootcampRouter(svc, adminID)

	body := `{"userIds":["` + valid.Hex() + `","garbage"]}`
	req := httptest.NewRequest(http.MethodPost, "/bootcamps/"+id.Hex()+"/invite", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"invited":1`)
}

func TestInvite_EmptyListFailsValidation(t *testing.T) {
	router := bootcampRouter(&stubBootcampService{}, primitive.NewObjectID())
	id := primitive.NewObjectID()

	req := httptest.NewRequest(http.MethodPost, "/bootcamps/"+id.Hex()+"/invite", strings.NewReader(`{"userIds":[]}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
