package gateway_http

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	httpclient "github.com/piresc/triptracker/internal/pkg/http"
	"github.com/piresc/triptracker/internal/pkg/models"
	"github.com/piresc/triptracker/internal/pkg/retry"
	"github.com/piresc/triptracker/internal/utils"
)

// Backend endpoints
const (
	EndpointGetTrip           = "/getTrip"
	EndpointDidDriverAccept   = "/didDriverAccept"
	EndpointGetDriverLocation = "/getDriverLocation"
	EndpointGetNearByDrivers  = "/getNearByDrivers"
	EndpointDirections        = "/directions"
	EndpointUpdateTripStatus  = "/updateTripStatus"
	EndpointUpdateLocation    = "/driverUpdateLocation"
	EndpointVerifyOTP         = "/verifyOtp"
	EndpointDidUserPay        = "/didUserPay"
	EndpointExtraHoursAdd     = "/extraHoursAdd"
)

var (
	ErrTripNotFound = errors.New("trip not found")
	ErrInvalidOTP   = errors.New("otp must be numeric")
)

// HTTPGateway implements trips.BackendGW against the trip REST API
type HTTPGateway struct {
	client  *httpclient.Client
	retrier *retry.Retrier
}

// NewHTTPGateway creates a backend gateway. Commands are retried with
// retrier; polls are not.
func NewHTTPGateway(client *httpclient.Client, retrier *retry.Retrier) *HTTPGateway {
	if retrier == nil {
		retrier = retry.New(retry.DefaultConfig())
	}
	return &HTTPGateway{client: client, retrier: retrier}
}

// FetchTrip loads the current state of a trip
func (g *HTTPGateway) FetchTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	var resp tripEnvelope
	if err := g.client.PostJSON(ctx, EndpointGetTrip, tripIDRequest{TripID: tripID}, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch trip %s: %w", tripID, err)
	}
	dto, err := resp.first()
	if err != nil {
		return nil, fmt.Errorf("failed to decode trip %s: %w", tripID, err)
	}
	if dto == nil {
		return nil, fmt.Errorf("%w: %s", ErrTripNotFound, tripID)
	}
	return dto.toModel(), nil
}

// FetchAcceptedDriver returns the driver that accepted the trip, or nil
func (g *HTTPGateway) FetchAcceptedDriver(ctx context.Context, tripID string) (*models.DriverInfo, error) {
	var resp struct {
		DriverInfo []driverDTO `json:"driverInfo"`
	}
	if err := g.client.PostJSON(ctx, EndpointDidDriverAccept, tripIDRequest{TripID: tripID}, &resp); err != nil {
		return nil, fmt.Errorf("failed to check driver acceptance: %w", err)
	}
	if len(resp.DriverInfo) == 0 {
		return nil, nil
	}
	driver := resp.DriverInfo[0].toModel()
	return &driver, nil
}

// FetchDriverLocation returns the last reported position of the trip's driver
func (g *HTTPGateway) FetchDriverLocation(ctx context.Context, tripID string) (*models.Location, error) {
	var resp struct {
		Location *geoPointDTO `json:"location"`
	}
	if err := g.client.PostJSON(ctx, EndpointGetDriverLocation, tripIDRequest{TripID: tripID}, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch driver location: %w", err)
	}
	loc, ok := resp.Location.toModel()
	if !ok || loc.IsZero() {
		return nil, nil
	}
	return &loc, nil
}

// FetchNearbyDrivers lists candidate drivers around a point
func (g *HTTPGateway) FetchNearbyDrivers(ctx context.Context, tripID string, around models.Location) ([]models.DriverInfo, error) {
	var resp struct {
		Drivers []driverDTO `json:"drivers"`
	}
	req := nearbyRequest{Latitude: around.Latitude, Longitude: around.Longitude, TripID: tripID}
	if err := g.client.PostJSON(ctx, EndpointGetNearByDrivers, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch nearby drivers: %w", err)
	}
	drivers := make([]models.DriverInfo, 0, len(resp.Drivers))
	for _, d := range resp.Drivers {
		drivers = append(drivers, d.toModel())
	}
	return drivers, nil
}

// FetchDirections returns the route polyline between two points with
// duplicate points removed
func (g *HTTPGateway) FetchDirections(ctx context.Context, origin, destination models.Location) ([]models.Location, error) {
	var resp struct {
		Polyline []locationDTO `json:"polyline"`
	}
	req := directionsRequest{Origin: latLng(origin), Destination: latLng(destination)}
	if err := g.client.PostJSON(ctx, EndpointDirections, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch directions: %w", err)
	}
	route := make([]models.Location, 0, len(resp.Polyline))
	for _, p := range resp.Polyline {
		route = append(route, models.Location{Latitude: p.Latitude, Longitude: p.Longitude})
	}
	return utils.DedupePoints(route), nil
}

// UpdateTripStatus writes a new status; the backend answers with the trip
func (g *HTTPGateway) UpdateTripStatus(ctx context.Context, update models.StatusUpdate) (*models.Trip, error) {
	code := update.Status.Code()
	if code < 0 {
		return nil, fmt.Errorf("unknown trip status %q", update.Status)
	}
	req := statusUpdateRequest{
		Amount: update.Amount,
		Num:    code,
		TripID: update.TripID,
	}
	if update.Location != nil {
		req.Location = &locationDTO{Latitude: update.Location.Latitude, Longitude: update.Location.Longitude}
	}

	var resp tripEnvelope
	if err := g.client.PostJSONWithRetry(ctx, g.retrier, EndpointUpdateTripStatus, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to update trip status to %s: %w", update.Status, err)
	}
	dto, err := resp.first()
	if err != nil || dto == nil {
		// the write went through; the next poll brings the trip
		return nil, nil
	}
	return dto.toModel(), nil
}

// UpdateOwnLocation reports the driver's position
func (g *HTTPGateway) UpdateOwnLocation(ctx context.Context, location models.Location) error {
	req := ownLocationRequest{Location: locationDTO{Latitude: location.Latitude, Longitude: location.Longitude}}
	if err := g.client.PostJSON(ctx, EndpointUpdateLocation, req, nil); err != nil {
		return fmt.Errorf("failed to update driver location: %w", err)
	}
	return nil
}

// VerifyOTP submits the OTP the customer showed the driver
func (g *HTTPGateway) VerifyOTP(ctx context.Context, tripID, otp string) error {
	n, err := strconv.ParseInt(strings.TrimSpace(otp), 10, 64)
	if err != nil {
		return ErrInvalidOTP
	}
	if err := g.client.PostJSON(ctx, EndpointVerifyOTP, verifyOTPRequest{OTP: n, TripID: tripID}, nil); err != nil {
		return fmt.Errorf("failed to verify otp: %w", err)
	}
	return nil
}

// CheckPayment reports whether the customer has paid
func (g *HTTPGateway) CheckPayment(ctx context.Context, tripID string) (bool, error) {
	var resp struct {
		Success bool `json:"success"`
	}
	if err := g.client.PostJSON(ctx, EndpointDidUserPay, tripIDRequest{TripID: tripID}, &resp); err != nil {
		return false, fmt.Errorf("failed to check payment: %w", err)
	}
	return resp.Success, nil
}

// ExtendRide books extra hours on a car-rent trip
func (g *HTTPGateway) ExtendRide(ctx context.Context, tripID string, extraHours float64) error {
	req := extendRideRequest{ExtraHour: extraHours, TripID: tripID}
	if err := g.client.PostJSONWithRetry(ctx, g.retrier, EndpointExtraHoursAdd, req, nil); err != nil {
		return fmt.Errorf("failed to extend ride: %w", err)
	}
	return nil
}
