// Package ws serves the live session: browser events in, render commands out.
package ws

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"cafefinder/config"
	deliverycontext "cafefinder/internal/delivery/context"
	domainerrors "cafefinder/internal/domain/errors"
	"cafefinder/internal/session"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// HandlerParams holds dependencies for the live session handler, injected by Fx.
type HandlerParams struct {
	fx.In

	Factory *session.Factory
	Config  *config.Config
	Logger  *slog.Logger
}

// Handler upgrades requests and runs one session per connection.
type Handler struct {
	upgrader    websocket.Upgrader
	factory     *session.Factory
	geolocation config.GeolocationConfig
	logger      *slog.Logger
}

// NewHandler is the constructor for Handler
func NewHandler(params HandlerParams) *Handler {
	wsCfg := params.Config.Websocket

	return &Handler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  wsCfg.ReadBufferSize,
			WriteBufferSize: wsCfg.WriteBufferSize,
			CheckOrigin:     checkOrigin(wsCfg.AllowedOrigins),
		},
		factory:     params.Factory,
		geolocation: *params.Config.Geolocation,
		logger:      params.Logger,
	}
}

// Serve handles GET /ws/session?client=<id>. It returns when the connection
// closes and all session work started from it has finished.
func (h *Handler) Serve(c echo.Context) error {
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// The upgrader has already written the HTTP error.
		h.logger.Warn("Websocket upgrade failed", slog.Any("error", err))

		return nil
	}

	scope := c.QueryParam("client")
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
		With(slog.String("client", scope))
	ctx, cancel := context.WithCancel(deliverycontext.WithLogger(c.Request().Context(), logger))
	defer cancel()

	cl := newClient(conn, logger)
	sess := h.factory.New(scope, &presenter{client: cl}, &locator{
		client:       cl,
		highAccuracy: h.geolocation.HighAccuracy,
		timeout:      h.geolocation.Timeout,
		grace:        h.geolocation.Grace,
	})

	logger.Info("Live session opened")
	go cl.writeLoop()

	var wg sync.WaitGroup
	background := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}

	cl.readLoop(func(event Event) {
		dispatch(ctx, cl, sess, event, background, logger)
	})

	cancel()
	wg.Wait()
	logger.Info("Live session closed")

	return nil
}

// dispatch routes one event. Anything that may block on the network runs
// in the background so the read loop stays free to deliver location replies.
func dispatch(ctx context.Context, cl *client, sess *session.Session, event Event, background func(func()), logger *slog.Logger) {
	switch event.Type {
	case EventStart:
		background(func() { sess.Start(ctx) })
	case EventLocate:
		background(func() { sess.Locate(ctx) })
	case EventLocation:
		point, ok := event.Point()
		if !ok {
			cl.resolve(event.RequestID, locationReply{
				err: domainerrors.ErrLocationUnavailable.WithDetails("invalid coordinates"),
			})

			return
		}
		cl.resolve(event.RequestID, locationReply{point: point})
	case EventLocationError:
		cl.resolve(event.RequestID, locationReply{
			err: domainerrors.ErrLocationUnavailable.WithDetails(event.Message),
		})
	case EventPick:
		point, ok := event.Point()
		if !ok {
			logger.Warn("Ignoring pick with invalid coordinates")

			return
		}
		background(func() { sess.PickLocation(ctx, point) })
	case EventRadius:
		radius := event.Radius
		background(func() {
			if err := sess.SetRadius(ctx, radius); err != nil {
				logger.Warn("Rejected radius", slog.Int("radius", radius), slog.Any("error", err))
			}
		})
	case EventQuery:
		sess.SetQuery(event.Query)
	case EventSelectList:
		sess.SelectFromList(event.ID)
	case EventSelectMarker:
		sess.SelectFromMarker(event.ID)
	case EventReset:
		sess.Reset()
	default:
		logger.Warn("Ignoring unknown event", slog.String("type", event.Type))
	}
}

// checkOrigin returns nil for an empty allow list, which keeps the
// upgrader's same-origin check. "*" allows any origin.
func checkOrigin(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}

		for _, candidate := range allowed {
			if candidate == "*" || strings.EqualFold(candidate, origin) {
				return true
			}
		}

		return false
	}
}
