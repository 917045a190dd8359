package models

import (
	"encoding/json"
	"strings"
	"time"
)

// TripStatus represents the lifecycle stage of a delivery or car-rent trip
type TripStatus string

const (
	TripStatusFindingDrivers           TripStatus = "FindingDrivers"
	TripStatusWaitingForDriverToAccept TripStatus = "WaitingForADriverToAccept"
	TripStatusTripAccepted             TripStatus = "TripAccepted"
	TripStatusGoingToPickupLocation    TripStatus = "GoingToPickupLocation"
	TripStatusReachedPickupLocation    TripStatus = "ReachedPickupLocation"
	TripStatusRideStarted              TripStatus = "RideStarted"
	TripStatusPickingItems             TripStatus = "PickingItems"
	TripStatusWaitingForUserPayment    TripStatus = "WaitingForUserPayment"
	TripStatusGoingToDeliveryLocation  TripStatus = "GoingToDeliveryLocation"
	TripStatusReachedDeliveryLocation  TripStatus = "ReachedDeliveryLocation"
	TripStatusDelivered                TripStatus = "Delivered"
	TripStatusRideCompleted            TripStatus = "RideCompleted"
	TripStatusOpenForTrips             TripStatus = "OpenForTrips"
)

// statusCodes are the numeric codes the backend synchronizes on
var statusCodes = map[TripStatus]int{
	TripStatusFindingDrivers:           0,
	TripStatusWaitingForDriverToAccept: 100,
	TripStatusTripAccepted:             200,
	TripStatusGoingToPickupLocation:    300,
	TripStatusReachedPickupLocation:    400,
	TripStatusRideStarted:              450,
	TripStatusPickingItems:             500,
	TripStatusWaitingForUserPayment:    600,
	TripStatusGoingToDeliveryLocation:  700,
	TripStatusReachedDeliveryLocation:  800,
	TripStatusDelivered:                900,
	TripStatusRideCompleted:            950,
	TripStatusOpenForTrips:             1000,
}

// Code returns the numeric backend code of the status, or -1 if unknown
func (s TripStatus) Code() int {
	code, ok := statusCodes[s]
	if !ok {
		return -1
	}
	return code
}

// Valid reports whether s is a known status
func (s TripStatus) Valid() bool {
	_, ok := statusCodes[s]
	return ok
}

// Active reports whether s belongs to a trip lifecycle (anything but the idle sentinel)
func (s TripStatus) Active() bool {
	return s.Valid() && s != TripStatusOpenForTrips
}

// Terminal reports whether the trip is finished from the client's point of view
func (s TripStatus) Terminal() bool {
	return s == TripStatusDelivered || s == TripStatusRideCompleted
}

// AppliesTo reports whether the status is reachable in the given flow
func (s TripStatus) AppliesTo(flow Flow) bool {
	switch s {
	case TripStatusRideStarted, TripStatusRideCompleted:
		return flow == FlowCarRent
	case TripStatusPickingItems, TripStatusGoingToDeliveryLocation,
		TripStatusReachedDeliveryLocation, TripStatusDelivered:
		return flow == FlowDelivery
	default:
		return s.Valid()
	}
}

// ParseTripStatus matches a status name regardless of case and surrounding
// spaces. Unknown names are returned as given so callers can log them.
func ParseTripStatus(s string) TripStatus {
	s = strings.TrimSpace(s)
	for status := range statusCodes {
		if strings.EqualFold(string(status), s) {
			return status
		}
	}
	return TripStatus(s)
}

// TripStatusFromCode maps a backend code back to its status
func TripStatusFromCode(code int) (TripStatus, bool) {
	for status, c := range statusCodes {
		if c == code {
			return status, true
		}
	}
	return "", false
}

// TripType is the product a trip was requested for
type TripType string

const (
	TripTypeMailDelivery    TripType = "Mail Delivery"
	TripTypeGroceryDelivery TripType = "Grocery Delivery"
	TripTypeCarRent         TripType = "Car Rent"
)

// ParseTripType matches a trip type name regardless of case
func ParseTripType(s string) TripType {
	s = strings.TrimSpace(s)
	for _, tt := range []TripType{TripTypeMailDelivery, TripTypeGroceryDelivery, TripTypeCarRent} {
		if strings.EqualFold(string(tt), s) {
			return tt
		}
	}
	return TripType(s)
}

// Flow returns which lifecycle variant the trip type follows
func (t TripType) Flow() Flow {
	if t == TripTypeCarRent {
		return FlowCarRent
	}
	return FlowDelivery
}

// Flow distinguishes the delivery lifecycle from the car-rent lifecycle
type Flow string

const (
	FlowDelivery Flow = "delivery"
	FlowCarRent  Flow = "car_rent"
)

// Place is a named location such as a pickup shop or a dropoff address
type Place struct {
	Location
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

// Fare represents the pricing breakdown of a trip
type Fare struct {
	ItemsBill float64 `json:"items_bill,omitempty"`
	Base      float64 `json:"base"`
	Tax       float64 `json:"tax"`
	Service   float64 `json:"service,omitempty"`
	Total     float64 `json:"total"`
	Currency  string  `json:"currency,omitempty"`
}

// OrderItem is one line of a grocery or parcel order
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// TripDetails holds the flow specific part of a trip.
// Implemented by *DeliveryDetails and *CarRentDetails only.
type TripDetails interface {
	Flow() Flow
}

// DeliveryDetails is the part of a trip specific to mail and grocery delivery
type DeliveryDetails struct {
	Dropoff Place       `json:"dropoff"`
	Items   []OrderItem `json:"items,omitempty"`
}

// Flow implements TripDetails
func (d *DeliveryDetails) Flow() Flow { return FlowDelivery }

// CarRentDetails is the part of a trip specific to car rental
type CarRentDetails struct {
	VehicleType string    `json:"vehicle_type,omitempty"`
	TotalHours  float64   `json:"total_hours"`
	CreatedAt   time.Time `json:"created_at"`
}

// Flow implements TripDetails
func (d *CarRentDetails) Flow() Flow { return FlowCarRent }

// Trip is the client-side view of a trip as last reported by the backend
type Trip struct {
	ID                string      `json:"id"`
	Type              TripType    `json:"type"`
	Status            TripStatus  `json:"status"`
	Pickup            Place       `json:"pickup"`
	OTP               string      `json:"otp,omitempty"`
	DriverVerifiedOTP bool        `json:"driver_verified_otp"`
	UserPaid          bool        `json:"user_paid"`
	Fare              Fare        `json:"fare"`
	Driver            *DriverInfo `json:"driver,omitempty"`
	Details           TripDetails `json:"-"`
}

// Flow returns the lifecycle variant of the trip
func (t *Trip) Flow() Flow {
	if t.Details != nil {
		return t.Details.Flow()
	}
	return t.Type.Flow()
}

// Dropoff returns the delivery destination, if the trip has one
func (t *Trip) Dropoff() (Place, bool) {
	if d, ok := t.Details.(*DeliveryDetails); ok {
		return d.Dropoff, true
	}
	return Place{}, false
}

// Clone returns a deep copy so snapshots never alias tracker state
func (t *Trip) Clone() *Trip {
	if t == nil {
		return nil
	}
	c := *t
	if t.Driver != nil {
		d := *t.Driver
		c.Driver = &d
	}
	switch d := t.Details.(type) {
	case *DeliveryDetails:
		dc := *d
		dc.Items = append([]OrderItem(nil), d.Items...)
		c.Details = &dc
	case *CarRentDetails:
		dc := *d
		c.Details = &dc
	}
	return &c
}

type tripJSON struct {
	tripAlias
	Delivery *DeliveryDetails `json:"delivery,omitempty"`
	CarRent  *CarRentDetails  `json:"car_rent,omitempty"`
}

type tripAlias Trip

// MarshalJSON flattens the flow specific details next to the common fields
func (t Trip) MarshalJSON() ([]byte, error) {
	out := tripJSON{tripAlias: tripAlias(t)}
	switch d := t.Details.(type) {
	case *DeliveryDetails:
		out.Delivery = d
	case *CarRentDetails:
		out.CarRent = d
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the flow specific details written by MarshalJSON
func (t *Trip) UnmarshalJSON(data []byte) error {
	var in tripJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*t = Trip(in.tripAlias)
	switch {
	case in.Delivery != nil:
		t.Details = in.Delivery
	case in.CarRent != nil:
		t.Details = in.CarRent
	}
	return nil
}

// StatusUpdate is a status write sent by the driver side
type StatusUpdate struct {
	TripID   string     `json:"trip_id"`
	Status   TripStatus `json:"status"`
	Location *Location  `json:"location,omitempty"`
	Amount   float64    `json:"amount,omitempty"`
}
