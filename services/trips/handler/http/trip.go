package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	httpclient "github.com/piresc/triptracker/internal/pkg/http"
	"github.com/piresc/triptracker/internal/pkg/logger"
	"github.com/piresc/triptracker/internal/pkg/models"
	nrpkg "github.com/piresc/triptracker/internal/pkg/newrelic"
	"github.com/piresc/triptracker/internal/utils"
	"github.com/piresc/triptracker/services/trips"
	"github.com/piresc/triptracker/services/trips/gateway"
	"github.com/piresc/triptracker/services/trips/usecase"
)

// PositionSink receives device fixes for the own-location poll
type PositionSink interface {
	Push(location models.Location)
	Deny()
}

// TripHandler exposes the tracker to the screens of this device
type TripHandler struct {
	trackerUC trips.TrackerUC
	positions PositionSink
}

// NewTripHandler creates a trip HTTP handler. positions may be nil.
func NewTripHandler(trackerUC trips.TrackerUC, positions PositionSink) *TripHandler {
	return &TripHandler{
		trackerUC: trackerUC,
		positions: positions,
	}
}

type trackRequest struct {
	TripID string `json:"trip_id"`
}

type advanceRequest struct {
	Amount float64 `json:"amount"`
}

type otpRequest struct {
	OTP string `json:"otp"`
}

type paymentRequest struct {
	Amount float64 `json:"amount"`
}

type extendRequest struct {
	ExtraHours float64 `json:"extra_hours"`
}

type locationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Error     string   `json:"error"`
}

type appStateRequest struct {
	Foreground *bool `json:"foreground"`
}

// Location error codes accepted by PostLocation
const (
	LocationErrorPermissionDenied = "permission_denied"
	LocationErrorTimeout          = "timeout"
)

// GetTrip returns the current snapshot
func (h *TripHandler) GetTrip(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Trip.Get")

	snap, err := h.trackerUC.Snapshot(c.Request().Context())
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Trip snapshot", snap)
}

// Track starts tracking a trip
func (h *TripHandler) Track(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Trip.Track")

	var req trackRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	if req.TripID == "" {
		return utils.BadRequestResponse(c, "trip_id is required")
	}

	logger.Info("Received track request",
		logger.String("trip_id", req.TripID),
		logger.String("client_ip", c.RealIP()))

	return h.run(c, "Tracking trip", func(ctx context.Context) error {
		return h.trackerUC.Track(ctx, req.TripID)
	})
}

// Advance performs the driver's forward action
func (h *TripHandler) Advance(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Trip.Advance")

	var req advanceRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	return h.run(c, "Trip advanced", func(ctx context.Context) error {
		return h.trackerUC.Advance(ctx, models.ForwardInput{Amount: req.Amount})
	})
}

// VerifyOTP checks the customer's code at car rent pickup
func (h *TripHandler) VerifyOTP(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Trip.VerifyOTP")

	var req otpRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	return h.run(c, "OTP verified", func(ctx context.Context) error {
		return h.trackerUC.VerifyOTP(ctx, req.OTP)
	})
}

// RequestPayment asks the customer to pay for picked items
func (h *TripHandler) RequestPayment(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Trip.RequestPayment")

	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	return h.run(c, "Payment requested", func(ctx context.Context) error {
		return h.trackerUC.RequestPayment(ctx, req.Amount)
	})
}

// ExtendRide books extra hours
func (h *TripHandler) ExtendRide(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Trip.ExtendRide")

	var req extendRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	return h.run(c, "Ride extended", func(ctx context.Context) error {
		return h.trackerUC.ExtendRide(ctx, req.ExtraHours)
	})
}

// Reset stops tracking
func (h *TripHandler) Reset(c echo.Context) error {
	nrpkg.SetTransactionName(nrpkg.FromEchoContext(c), "Trip.Reset")

	return h.run(c, "Tracking reset", func(ctx context.Context) error {
		return h.trackerUC.Reset(ctx)
	})
}

// PostLocation feeds a device fix, or reports why there is none
func (h *TripHandler) PostLocation(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Trip.PostLocation")

	var req locationRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	if req.Error != "" {
		locErr := locationError(req.Error)
		if errors.Is(locErr, gateway.ErrPermissionDenied) && h.positions != nil {
			h.positions.Deny()
		}
		return h.run(c, "Location error recorded", func(ctx context.Context) error {
			return h.trackerUC.ReportLocationError(ctx, locErr)
		})
	}

	if req.Latitude == nil || req.Longitude == nil {
		return utils.BadRequestResponse(c, "latitude and longitude are required")
	}
	loc := models.Location{Latitude: *req.Latitude, Longitude: *req.Longitude}
	if loc.Latitude < -90 || loc.Latitude > 90 || loc.Longitude < -180 || loc.Longitude > 180 {
		return utils.BadRequestResponse(c, "coordinates out of range")
	}

	if h.positions != nil {
		h.positions.Push(loc)
	}
	return h.run(c, "Location updated", func(ctx context.Context) error {
		return h.trackerUC.UpdatePosition(ctx, loc)
	})
}

// PostAppState switches between foreground and background polling
func (h *TripHandler) PostAppState(c echo.Context) error {
	txn := nrpkg.FromEchoContext(c)
	nrpkg.SetTransactionName(txn, "Trip.PostAppState")

	var req appStateRequest
	if err := c.Bind(&req); err != nil {
		nrpkg.NoticeTransactionError(txn, err)
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}
	if req.Foreground == nil {
		return utils.BadRequestResponse(c, "foreground is required")
	}

	return h.run(c, "App state updated", func(ctx context.Context) error {
		return h.trackerUC.SetForeground(ctx, *req.Foreground)
	})
}

// run executes op and answers with the resulting snapshot
func (h *TripHandler) run(c echo.Context, message string, op func(ctx context.Context) error) error {
	ctx := c.Request().Context()
	if err := op(ctx); err != nil {
		return h.fail(c, err)
	}

	snap, err := h.trackerUC.Snapshot(ctx)
	if err != nil {
		return h.fail(c, err)
	}
	return utils.SuccessResponse(c, http.StatusOK, message, snap)
}

// fail maps tracker errors to HTTP statuses. Rejections carry the current
// snapshot so the screen can re-render next to the message.
func (h *TripHandler) fail(c echo.Context, err error) error {
	nrpkg.NoticeTransactionError(nrpkg.FromEchoContext(c), err)

	var httpErr *httpclient.HTTPError
	switch {
	case errors.Is(err, usecase.ErrInvalidTripID),
		errors.Is(err, usecase.ErrInvalidOTP),
		errors.Is(err, usecase.ErrInvalidAmount):
		return utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, usecase.ErrActionBlocked):
		return utils.UnprocessableResponse(c, err.Error(), h.currentSnapshot(c))
	case errors.Is(err, usecase.ErrNoActiveTrip),
		errors.Is(err, usecase.ErrInvalidAction),
		errors.Is(err, usecase.ErrReentrantTransition):
		return utils.ConflictResponse(c, err.Error(), h.currentSnapshot(c))
	case errors.As(err, &httpErr):
		return utils.ErrorResponseHandler(c, http.StatusBadGateway, httpErr.Message, h.currentSnapshot(c))
	case errors.Is(err, usecase.ErrTrackerStopped),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return utils.ServiceUnavailableResponse(c, "Tracker unavailable")
	}

	logger.Error("Tracker operation failed",
		logger.String("path", c.Path()),
		logger.Err(err))
	return utils.ErrorResponseHandler(c, http.StatusBadGateway, "Failed to reach the trip service: "+err.Error(), h.currentSnapshot(c))
}

func (h *TripHandler) currentSnapshot(c echo.Context) interface{} {
	snap, err := h.trackerUC.Snapshot(c.Request().Context())
	if err != nil {
		return nil
	}
	return snap
}

func locationError(code string) error {
	switch code {
	case LocationErrorPermissionDenied:
		return gateway.ErrPermissionDenied
	case LocationErrorTimeout:
		return gateway.ErrLocationTimeout
	}
	return errors.New(code)
}
