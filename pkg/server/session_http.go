package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/events"
)

// sessionHeader and lastEventHeader are the MCP streamable-HTTP
// transport's session-affinity and resumption headers (spec.md §6:
// "responses carry a session identifier; subsequent client requests
// echo it" and "the client supplies its last received event id").
const (
	sessionHeader   = "Mcp-Session-Id"
	lastEventHeader = "Last-Event-ID"
)

// sessionMiddleware bridges the HTTP transport with pkg/session and
// pkg/events: it assigns/touches a SessionStore entry per connection
// keyed by the transport's own session header, and — when the client
// presents a last-event id — walks the pkg/events backlog after that id
// and logs how many events it holds. The backlog events are not written
// to the response; the underlying handler serves the request as usual.
// Store failures degrade the
// request rather than failing it, matching spec.md §7's "SessionStore
// failures cause the affected request to proceed without shared
// state; EventStore failures suppress resumability... but do not fail
// the tool call."
func (b *Bundle) sessionMiddleware(next http.Handler) http.Handler {
	log := b.Log.Named("session_http")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sessionID := r.Header.Get(sessionHeader)
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		if b.Sessions != nil {
			if ok, err := b.Sessions.Touch(ctx, sessionID); err != nil {
				log.Warn("session touch failed, proceeding without shared state", zap.Error(err))
			} else if !ok {
				if _, err := b.Sessions.Create(ctx, sessionID, map[string]any{
					"remote_addr": r.RemoteAddr,
					"user_agent":  r.UserAgent(),
				}); err != nil {
					log.Warn("session create failed, proceeding without shared state", zap.Error(err))
				}
			}
		}
		w.Header().Set(sessionHeader, sessionID)

		if lastEventID := r.Header.Get(lastEventHeader); lastEventID != "" && b.Events != nil {
			replayed := 0
			_, err := b.Events.ReplayEventsAfter(ctx, lastEventID, func(_ context.Context, _ events.Record) error {
				replayed++
				return nil
			})
			if err != nil {
				log.Info("event replay suppressed for this connection", zap.Error(err))
			} else if replayed > 0 {
				log.Info("replayed backlog events", zap.Int("count", replayed), zap.String("last_event_id", lastEventID))
			}
		}

		next.ServeHTTP(w, r)
	})
}
