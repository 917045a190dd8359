package usecase

import (
	"context"

	"github.com/piresc/triptracker/internal/pkg/models"
	"github.com/piresc/triptracker/internal/pkg/poller"
	"github.com/piresc/triptracker/internal/utils"
)

// Snapshot returns the current state as seen by the loop
func (t *Tracker) Snapshot(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	err := t.do(ctx, func() error {
		snap = t.snapshot()
		snap.Version = t.version
		return nil
	})
	return snap, err
}

// Subscribe returns a channel that always holds the newest snapshot. Slow
// readers skip intermediate versions. cancel closes the channel.
func (t *Tracker) Subscribe() (<-chan models.Snapshot, func()) {
	t.subsMu.Lock()
	defer t.subsMu.Unlock()

	id := t.nextSub
	t.nextSub++
	ch := make(chan models.Snapshot, 1)
	ch <- t.latest
	t.subs[id] = ch

	cancel := func() {
		t.subsMu.Lock()
		defer t.subsMu.Unlock()
		if c, ok := t.subs[id]; ok {
			delete(t.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

func (t *Tracker) publish() {
	t.version++
	snap := t.snapshot()
	snap.Version = t.version

	t.subsMu.Lock()
	t.latest = snap
	for _, ch := range t.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
	t.subsMu.Unlock()

	t.persist.saveSnapshot(snap)
}

// snapshot copies the state; nothing in it aliases tracker memory
func (t *Tracker) snapshot() models.Snapshot {
	st := &t.st
	snap := models.Snapshot{
		Role:           t.cfg.Role,
		TripID:         st.tripID,
		Status:         st.status,
		Loading:        st.tripID != "" && st.trip == nil,
		Trip:           st.trip.Clone(),
		Heading:        st.heading,
		Foreground:     st.foreground,
		LocationDenied: st.locationDenied,
		UserPaid:       st.userPaid,
		OTPVerified:    st.otpVerified,
		Banner:         st.banner,
		LastError:      st.lastError,
		ActiveTimers:   concernNames(t.coord.Active()),
		UpdatedAt:      t.clk.Now().UTC(),
	}
	if st.tripID == "" {
		snap.Status = models.TripStatusOpenForTrips
	}
	snap.StatusCode = snap.Status.Code()

	if st.driver != nil {
		d := *st.driver
		snap.Driver = &d
	}
	if len(st.candidates) > 0 {
		snap.Candidates = append([]models.DriverInfo(nil), st.candidates...)
		if around, ok := t.candidateOrigin(); ok {
			snap.NearestCandidate = nearestCandidate(st.candidates, around)
		}
	}

	snap.Route = st.route.Route()
	snap.LegComplete = st.leg != LegNone && st.route.Len() > 0 && st.route.Complete()
	if st.tracked != nil {
		p := *st.tracked
		snap.Position = &p
		snap.PositionCell = utils.EncodeLocation(p, utils.CellPrecision)
	}
	if region, ok := t.region(); ok {
		snap.Region = &region
	}

	if rt, ok := t.remainingTime(); ok {
		snap.RemainingTime = &rt
		snap.RideEndingSoon = rt.Total > 0 && rt.Total <= t.cfg.RideEndingThreshold
		snap.RideShouldEnd = rt.Expired()
	}

	if t.cfg.Role == models.RoleDriver && st.trip != nil {
		g := t.gate()
		snap.PrimaryAction = PrimaryAction(g)
		snap.SecondaryAction = SecondaryAction(g)
	}
	return snap
}

func concernNames(concerns []poller.Concern) []string {
	names := make([]string, len(concerns))
	for i, c := range concerns {
		names[i] = string(c)
	}
	return names
}

func (t *Tracker) candidateOrigin() (models.Location, bool) {
	switch {
	case t.st.device != nil:
		return *t.st.device, true
	case t.st.trip != nil:
		return t.st.trip.Pickup.Location, true
	}
	return models.Location{}, false
}

// region frames the vehicle and the destination of the current leg
func (t *Tracker) region() (models.Region, bool) {
	points := []*models.Location{copyLocation(t.st.tracked)}
	if dest, ok := t.st.route.Destination(); ok {
		points = append(points, &dest)
	} else if dest, ok := t.legDestination(t.st.leg); ok {
		points = append(points, &dest)
	}
	region, err := utils.BoundingRegion(points)
	if err != nil {
		return models.Region{}, false
	}
	return region, true
}

// remainingTime is only meaningful for a car rent that has started
func (t *Tracker) remainingTime() (models.RemainingTime, bool) {
	if t.st.trip == nil {
		return models.RemainingTime{}, false
	}
	details, ok := t.st.trip.Details.(*models.CarRentDetails)
	if !ok || details.CreatedAt.IsZero() {
		return models.RemainingTime{}, false
	}
	if t.st.status.Code() < models.TripStatusRideStarted.Code() {
		return models.RemainingTime{}, false
	}
	return models.RemainingRideTime(details.CreatedAt, details.TotalHours, t.clk.Now()), true
}

func (t *Tracker) gate() Gate {
	g := Gate{
		Flow:        t.flow(),
		Status:      t.st.status,
		Position:    copyLocation(t.st.tracked),
		PickupKm:    t.cfg.PickupThresholdKm,
		DropoffKm:   t.cfg.DropoffThresholdKm,
		UserPaid:    t.st.userPaid,
		OTPVerified: t.st.otpVerified,
	}
	if t.st.trip != nil {
		g.Pickup = t.st.trip.Pickup.Location
		if dropoff, ok := t.st.trip.Dropoff(); ok {
			loc := dropoff.Location
			g.Dropoff = &loc
		}
	}
	// a denied device has no usable position, whatever was seen last
	if t.st.locationDenied {
		g.Position = nil
	}
	return g
}
