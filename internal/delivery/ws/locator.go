package ws

import (
	"context"
	"time"

	"cafefinder/internal/domain/entity"
	domainerrors "cafefinder/internal/domain/errors"
	"cafefinder/internal/domain/service"
	"cafefinder/internal/errors"

	"github.com/google/uuid"
)

// locator asks the browser for a fresh position over the socket.
type locator struct {
	client       *client
	highAccuracy bool
	timeout      time.Duration
	grace        time.Duration
}

var _ service.Locator = (*locator)(nil)

// Locate sends a geolocate command and waits for the matching reply. The
// browser applies timeout itself; grace covers the trip back.
func (l *locator) Locate(ctx context.Context) (entity.Point, error) {
	requestID := uuid.NewString()
	reply := l.client.expect(requestID)
	defer l.client.forget(requestID)

	l.client.send(geolocateCommand{
		Type:         CommandGeolocate,
		RequestID:    requestID,
		HighAccuracy: l.highAccuracy,
		TimeoutMs:    l.timeout.Milliseconds(),
		MaximumAge:   0,
	})

	timer := time.NewTimer(l.timeout + l.grace)
	defer timer.Stop()

	select {
	case r := <-reply:
		if r.err != nil {
			return entity.Point{}, r.err
		}

		return r.point, nil
	case <-timer.C:
		return entity.Point{}, domainerrors.ErrLocationUnavailable.WithDetails("geolocation timed out")
	case <-ctx.Done():
		return entity.Point{}, errors.Wrap(ctx.Err(), "locate")
	case <-l.client.done:
		return entity.Point{}, domainerrors.ErrLocationUnavailable.WithDetails("connection closed")
	}
}
