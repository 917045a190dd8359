package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	httpclient "github.com/piresc/triptracker/internal/pkg/http"
	"github.com/piresc/triptracker/internal/pkg/models"
	"github.com/piresc/triptracker/internal/utils"
	"github.com/piresc/triptracker/services/trips/gateway"
	"github.com/piresc/triptracker/services/trips/mocks"
	"github.com/piresc/triptracker/services/trips/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSink struct {
	pushed []models.Location
	denied int
}

func (f *fakeSink) Push(location models.Location) { f.pushed = append(f.pushed, location) }
func (f *fakeSink) Deny()                          { f.denied++ }

func newContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/", nil)
	} else {
		req = httptest.NewRequest(method, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) (utils.Response, models.Snapshot) {
	t.Helper()
	var raw struct {
		utils.Response
		Data *models.Snapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	var snap models.Snapshot
	if raw.Data != nil {
		snap = *raw.Data
	}
	return raw.Response, snap
}

func TestNewTripHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTrackerUC(ctrl)
	handler := NewTripHandler(mockUC, nil)

	assert.NotNil(t, handler)
	assert.Equal(t, mockUC, handler.trackerUC)
}

func TestTripHandler_GetTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTrackerUC(ctrl)
	handler := NewTripHandler(mockUC, nil)

	mockUC.EXPECT().Snapshot(gomock.Any()).
		Return(models.Snapshot{TripID: "trip-1", Status: models.TripStatusGoingToPickupLocation}, nil)

	c, rec := newContext(http.MethodGet, "")
	err := handler.GetTrip(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	resp, snap := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "trip-1", snap.TripID)
	assert.Equal(t, models.TripStatusGoingToPickupLocation, snap.Status)
}

func TestTripHandler_Track(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(m *mocks.MockTrackerUC)
		wantStatus int
	}{
		{
			name: "tracks trip",
			body: `{"trip_id":"trip-1"}`,
			setup: func(m *mocks.MockTrackerUC) {
				m.EXPECT().Track(gomock.Any(), "trip-1").Return(nil)
				m.EXPECT().Snapshot(gomock.Any()).Return(models.Snapshot{TripID: "trip-1", Loading: true}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing trip id",
			body:       `{}`,
			setup:      func(m *mocks.MockTrackerUC) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"trip_id":`,
			setup:      func(m *mocks.MockTrackerUC) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "blank trip id rejected by tracker",
			body: `{"trip_id":"  "}`,
			setup: func(m *mocks.MockTrackerUC) {
				m.EXPECT().Track(gomock.Any(), "  ").Return(usecase.ErrInvalidTripID)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "tracker stopped",
			body: `{"trip_id":"trip-1"}`,
			setup: func(m *mocks.MockTrackerUC) {
				m.EXPECT().Track(gomock.Any(), "trip-1").Return(usecase.ErrTrackerStopped)
			},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUC := mocks.NewMockTrackerUC(ctrl)
			tt.setup(mockUC)
			handler := NewTripHandler(mockUC, nil)
			c, rec := newContext(http.MethodPost, tt.body)

			// Act
			err := handler.Track(c)

			// Assert
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestTripHandler_Advance(t *testing.T) {
	current := models.Snapshot{TripID: "trip-1", Status: models.TripStatusGoingToPickupLocation}

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "advances", body: "", wantStatus: http.StatusOK},
		{name: "advances with amount", body: `{"amount":25000}`, wantStatus: http.StatusOK},
		{name: "blocked by proximity", err: usecase.ErrActionBlocked, wantStatus: http.StatusUnprocessableEntity},
		{name: "no trip", err: usecase.ErrNoActiveTrip, wantStatus: http.StatusConflict},
		{name: "transition in flight", err: usecase.ErrReentrantTransition, wantStatus: http.StatusConflict},
		{
			name:       "backend rejection",
			err:        &httpclient.HTTPError{StatusCode: http.StatusBadRequest, Message: "trip already finished"},
			wantStatus: http.StatusBadGateway,
			wantError:  "trip already finished",
		},
		{name: "transport failure", err: errors.New("connection refused"), wantStatus: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockUC := mocks.NewMockTrackerUC(ctrl)
			var want models.ForwardInput
			if tt.body != "" {
				want.Amount = 25000
			}
			mockUC.EXPECT().Advance(gomock.Any(), want).Return(tt.err)
			mockUC.EXPECT().Snapshot(gomock.Any()).Return(current, nil)

			handler := NewTripHandler(mockUC, nil)
			c, rec := newContext(http.MethodPost, tt.body)

			// Act
			err := handler.Advance(c)

			// Assert
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			resp, snap := decode(t, rec)
			assert.Equal(t, tt.err == nil, resp.Success)
			assert.Equal(t, "trip-1", snap.TripID, "snapshot accompanies every answer")
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, resp.Error)
			}
		})
	}
}

func TestTripHandler_VerifyOTP(t *testing.T) {
	t.Run("verified", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUC := mocks.NewMockTrackerUC(ctrl)
		mockUC.EXPECT().VerifyOTP(gomock.Any(), "1234").Return(nil)
		mockUC.EXPECT().Snapshot(gomock.Any()).Return(models.Snapshot{OTPVerified: true}, nil)

		c, rec := newContext(http.MethodPost, `{"otp":"1234"}`)
		err := NewTripHandler(mockUC, nil).VerifyOTP(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		_, snap := decode(t, rec)
		assert.True(t, snap.OTPVerified)
	})

	t.Run("malformed code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUC := mocks.NewMockTrackerUC(ctrl)
		mockUC.EXPECT().VerifyOTP(gomock.Any(), "12").Return(usecase.ErrInvalidOTP)

		c, rec := newContext(http.MethodPost, `{"otp":"12"}`)
		err := NewTripHandler(mockUC, nil).VerifyOTP(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong code shows backend message", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUC := mocks.NewMockTrackerUC(ctrl)
		mockUC.EXPECT().VerifyOTP(gomock.Any(), "9999").
			Return(&httpclient.HTTPError{StatusCode: http.StatusUnprocessableEntity, Message: "Invalid OTP"})
		mockUC.EXPECT().Snapshot(gomock.Any()).Return(models.Snapshot{LastError: "Invalid OTP"}, nil)

		c, rec := newContext(http.MethodPost, `{"otp":"9999"}`)
		err := NewTripHandler(mockUC, nil).VerifyOTP(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		resp, _ := decode(t, rec)
		assert.Equal(t, "Invalid OTP", resp.Error)
	})
}

func TestTripHandler_RequestPayment(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTrackerUC(ctrl)
	mockUC.EXPECT().RequestPayment(gomock.Any(), 42000.0).Return(nil)
	mockUC.EXPECT().Snapshot(gomock.Any()).Return(models.Snapshot{Status: models.TripStatusWaitingForUserPayment}, nil)

	c, rec := newContext(http.MethodPost, `{"amount":42000}`)
	err := NewTripHandler(mockUC, nil).RequestPayment(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	_, snap := decode(t, rec)
	assert.Equal(t, models.TripStatusWaitingForUserPayment, snap.Status)
}

func TestTripHandler_ExtendRide(t *testing.T) {
	t.Run("extends", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUC := mocks.NewMockTrackerUC(ctrl)
		mockUC.EXPECT().ExtendRide(gomock.Any(), 2.0).Return(nil)
		mockUC.EXPECT().Snapshot(gomock.Any()).Return(models.Snapshot{}, nil)

		c, rec := newContext(http.MethodPost, `{"extra_hours":2}`)
		err := NewTripHandler(mockUC, nil).ExtendRide(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non positive hours", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUC := mocks.NewMockTrackerUC(ctrl)
		mockUC.EXPECT().ExtendRide(gomock.Any(), 0.0).Return(usecase.ErrInvalidAmount)

		c, rec := newContext(http.MethodPost, `{"extra_hours":0}`)
		err := NewTripHandler(mockUC, nil).ExtendRide(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTripHandler_Reset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUC := mocks.NewMockTrackerUC(ctrl)
	gomock.InOrder(
		mockUC.EXPECT().Reset(gomock.Any()).Return(nil),
		mockUC.EXPECT().Snapshot(gomock.Any()).Return(models.Snapshot{Status: models.TripStatusOpenForTrips}, nil),
	)

	c, rec := newContext(http.MethodPost, "")
	err := NewTripHandler(mockUC, nil).Reset(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	_, snap := decode(t, rec)
	assert.Equal(t, models.TripStatusOpenForTrips, snap.Status)
}

func TestTripHandler_PostLocation(t *testing.T) {
	t.Run("position is fed to the tracker and the sink", func(t *testing.T) {
		// Arrange
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		sink := &fakeSink{}
		loc := models.Location{Latitude: -6.2, Longitude: 106.8}
		mockUC := mocks.NewMockTrackerUC(ctrl)
		mockUC.EXPECT().UpdatePosition(gomock.Any(), loc).Return(nil)
		mockUC.EXPECT().Snapshot(gomock.Any()).Return(models.Snapshot{Position: &loc}, nil)

		c, rec := newContext(http.MethodPost, `{"latitude":-6.2,"longitude":106.8}`)

		// Act
		err := NewTripHandler(mockUC, sink).PostLocation(c)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []models.Location{loc}, sink.pushed)
	})

	t.Run("permission denied", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		sink := &fakeSink{}
		mockUC := mocks.NewMockTrackerUC(ctrl)
		mockUC.EXPECT().ReportLocationError(gomock.Any(), gateway.ErrPermissionDenied).Return(nil)
		mockUC.EXPECT().Snapshot(gomock.Any()).Return(models.Snapshot{LocationDenied: true}, nil)

		c, rec := newContext(http.MethodPost, `{"error":"permission_denied"}`)
		err := NewTripHandler(mockUC, sink).PostLocation(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, sink.denied)
		_, snap := decode(t, rec)
		assert.True(t, snap.LocationDenied)
	})

	t.Run("timeout", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUC := mocks.NewMockTrackerUC(ctrl)
		mockUC.EXPECT().ReportLocationError(gomock.Any(), gateway.ErrLocationTimeout).Return(nil)
		mockUC.EXPECT().Snapshot(gomock.Any()).Return(models.Snapshot{}, nil)

		c, rec := newContext(http.MethodPost, `{"error":"timeout"}`)
		err := NewTripHandler(mockUC, nil).PostLocation(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing coordinates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		c, rec := newContext(http.MethodPost, `{"latitude":-6.2}`)
		err := NewTripHandler(mocks.NewMockTrackerUC(ctrl), nil).PostLocation(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("out of range", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		c, rec := newContext(http.MethodPost, `{"latitude":91,"longitude":0}`)
		err := NewTripHandler(mocks.NewMockTrackerUC(ctrl), nil).PostLocation(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTripHandler_PostAppState(t *testing.T) {
	t.Run("background", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockUC := mocks.NewMockTrackerUC(ctrl)
		mockUC.EXPECT().SetForeground(gomock.Any(), false).Return(nil)
		mockUC.EXPECT().Snapshot(gomock.Any()).Return(models.Snapshot{Foreground: false}, nil)

		c, rec := newContext(http.MethodPost, `{"foreground":false}`)
		err := NewTripHandler(mockUC, nil).PostAppState(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("flag required", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		c, rec := newContext(http.MethodPost, `{}`)
		err := NewTripHandler(mocks.NewMockTrackerUC(ctrl), nil).PostAppState(c)

		assert.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
