package gateway_http

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/piresc/triptracker/internal/pkg/models"
)

type placeDTO struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	AddressName string  `json:"address_name"`
	Name        string  `json:"name"`
}

func (p placeDTO) toModel() models.Place {
	return models.Place{
		Location: models.Location{Latitude: p.Latitude, Longitude: p.Longitude},
		Name:     p.Name,
		Address:  p.AddressName,
	}
}

// geoPointDTO is a GeoJSON point: coordinates are [longitude, latitude]
type geoPointDTO struct {
	Coordinates []float64 `json:"coordinates"`
}

func (g *geoPointDTO) toModel() (models.Location, bool) {
	if g == nil || len(g.Coordinates) < 2 {
		return models.Location{}, false
	}
	return models.Location{Latitude: g.Coordinates[1], Longitude: g.Coordinates[0]}, true
}

type driverDTO struct {
	ID              string       `json:"_id"`
	Name            string       `json:"name"`
	VehicleNumber   string       `json:"vehicleNumber"`
	CurrentLocation *geoPointDTO `json:"currentLocation"`
}

func (d driverDTO) toModel() models.DriverInfo {
	info := models.DriverInfo{ID: d.ID, Name: d.Name, VehicleNumber: d.VehicleNumber}
	if loc, ok := d.CurrentLocation.toModel(); ok {
		info.CurrentLocation = loc
	}
	return info
}

type fareDTO struct {
	ItemsBill       float64 `json:"itemsBill"`
	DeliveryCharges struct {
		X         float64 `json:"X"`
		Y         float64 `json:"Y"`
		Z         float64 `json:"Z"`
		TotalFare float64 `json:"totalFare"`
	} `json:"deliveryCharges"`
}

type itemDTO struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// flexString accepts both JSON strings and numbers
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

type tripDTO struct {
	ID                   string     `json:"_id"`
	Type                 string     `json:"type"`
	TripStatus           string     `json:"tripStatus"`
	PickupLocation       placeDTO   `json:"pickup_Location"`
	DropoffLocation      *placeDTO  `json:"dropoff_Location"`
	OTP                  flexString `json:"otp"`
	DidDriverVerifyOtp   bool       `json:"didDriverVerifyOtp"`
	UserPaid             bool       `json:"userPaid"`
	Fare                 fareDTO    `json:"Fare"`
	Items                []itemDTO  `json:"items"`
	VehicleType          string     `json:"vehicleType"`
	TotalHour            float64    `json:"totalHour"`
	BookingHours         float64    `json:"bookingHours"`
	CarRentTripCreatedAt *time.Time `json:"carRentTripCreatedAt"`
	Driver               *driverDTO `json:"driver"`
}

func (t tripDTO) toModel() *models.Trip {
	trip := &models.Trip{
		ID:                t.ID,
		Type:              models.ParseTripType(t.Type),
		Status:            models.ParseTripStatus(t.TripStatus),
		Pickup:            t.PickupLocation.toModel(),
		OTP:               string(t.OTP),
		DriverVerifiedOTP: t.DidDriverVerifyOtp,
		UserPaid:          t.UserPaid,
		Fare: models.Fare{
			ItemsBill: t.Fare.ItemsBill,
			Base:      t.Fare.DeliveryCharges.X,
			Tax:       t.Fare.DeliveryCharges.Y,
			Service:   t.Fare.DeliveryCharges.Z,
			Total:     t.Fare.ItemsBill + t.Fare.DeliveryCharges.TotalFare,
		},
	}
	if t.Driver != nil {
		d := t.Driver.toModel()
		trip.Driver = &d
	}

	if trip.Type.Flow() == models.FlowCarRent {
		details := &models.CarRentDetails{
			VehicleType: t.VehicleType,
			TotalHours:  t.TotalHour,
		}
		if details.TotalHours == 0 {
			details.TotalHours = t.BookingHours
		}
		if t.CarRentTripCreatedAt != nil {
			details.CreatedAt = *t.CarRentTripCreatedAt
		}
		trip.Details = details
		return trip
	}

	details := &models.DeliveryDetails{}
	if t.DropoffLocation != nil {
		details.Dropoff = t.DropoffLocation.toModel()
	}
	for _, it := range t.Items {
		details.Items = append(details.Items, models.OrderItem{Name: it.Name, Quantity: it.Quantity})
	}
	trip.Details = details
	return trip
}

// tripEnvelope tolerates both {trip: {...}} and {trip: [{...}]}
type tripEnvelope struct {
	Trip json.RawMessage `json:"trip"`
}

func (e tripEnvelope) first() (*tripDTO, error) {
	raw := strings.TrimSpace(string(e.Trip))
	if raw == "" || raw == "null" {
		return nil, nil
	}
	if strings.HasPrefix(raw, "[") {
		var list []tripDTO
		if err := json.Unmarshal(e.Trip, &list); err != nil {
			return nil, err
		}
		if len(list) == 0 {
			return nil, nil
		}
		return &list[0], nil
	}
	var one tripDTO
	if err := json.Unmarshal(e.Trip, &one); err != nil {
		return nil, err
	}
	return &one, nil
}

type tripIDRequest struct {
	TripID string `json:"tripId"`
}

type locationDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type nearbyRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	TripID    string  `json:"tripId"`
}

type statusUpdateRequest struct {
	Amount   float64      `json:"amount"`
	Location *locationDTO `json:"location,omitempty"`
	Num      int          `json:"num"`
	Tip      float64      `json:"tip"`
	TripID   string       `json:"trip_id"`
}

type ownLocationRequest struct {
	Location locationDTO `json:"location"`
}

type directionsRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

func latLng(l models.Location) string {
	return strconv.FormatFloat(l.Latitude, 'f', -1, 64) + ", " + strconv.FormatFloat(l.Longitude, 'f', -1, 64)
}

type verifyOTPRequest struct {
	OTP    int64  `json:"OTP"`
	TripID string `json:"tripId"`
}

type extendRideRequest struct {
	ExtraHour float64 `json:"extraHour"`
	TripID    string  `json:"tripId"`
}
