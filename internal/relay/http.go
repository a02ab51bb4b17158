package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vkuznecovs/minutekeeper/internal/logging"
	"github.com/vkuznecovs/minutekeeper/internal/models"
	"github.com/vkuznecovs/minutekeeper/internal/relay/store"
	"github.com/vkuznecovs/minutekeeper/internal/shared"
	"github.com/vkuznecovs/minutekeeper/internal/wire"
)

// HTTPServer exposes the relay wire protocol: push, pull, status, health.
// Every route except /health requires the static bearer token.
type HTTPServer struct {
	store      store.Store
	token      string
	corsOrigin string
	logger     logging.Logger
}

func NewHTTPServer(st store.Store, token, corsOrigin string, logger logging.Logger) *HTTPServer {
	return &HTTPServer{store: st, token: token, corsOrigin: corsOrigin, logger: logger}
}

func (s *HTTPServer) Handler() http.Handler {
	return s.withMiddleware(http.HandlerFunc(s.handle))
}

func (s *HTTPServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		writeJSON(w, http.StatusNoContent, map[string]any{})
		return
	}

	if (r.Method == http.MethodGet || r.Method == http.MethodHead) && r.URL.Path == "/health" {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := s.store.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "store unreachable")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	}

	if bearerToken(r) != s.token {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/push":
		s.handlePush(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/pull":
		s.handlePull(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/status":
		s.handleStatus(w, r)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (s *HTTPServer) handlePush(w http.ResponseWriter, r *http.Request) {
	var body wire.PushRequest
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := wire.PushResponse{}
	for _, change := range body.Changes {
		if err := validateChange(change); err != nil {
			resp.Skipped++
			continue
		}

		applied, err := s.store.Upsert(r.Context(), store.Record{
			Entity:    change.Entity,
			EntityID:  change.EntityID,
			Payload:   change.Payload,
			UpdatedAt: change.Timestamp,
		})
		if err != nil {
			s.logger.Error(r.Context(), "push upsert failed", "entity", change.Entity, "entityId", change.EntityID, "error", err.Error())
			writeError(w, http.StatusInternalServerError, "failed to store change")
			return
		}

		if applied {
			resp.Processed++
		} else {
			// Stale timestamp: an older device pushed a row this relay has
			// already seen newer.
			resp.Skipped++
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *HTTPServer) handlePull(w http.ResponseWriter, r *http.Request) {
	since, err := parseSince(r.URL.Query().Get("since"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	records, err := s.store.List(r.Context(), since)
	if err != nil {
		s.logger.Error(r.Context(), "pull list failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to list records")
		return
	}

	writeJSON(w, http.StatusOK, s.buildSnapshot(r.Context(), records))
}

// buildSnapshot groups flat rows into the snapshot schema. Rows whose payload
// does not parse as its entity kind, or parses to a record without an id, are
// dropped, not reported.
func (s *HTTPServer) buildSnapshot(ctx context.Context, records []store.Record) *wire.Snapshot {
	snap := &wire.Snapshot{
		Version:               wire.SnapshotVersion,
		ExportedAt:            time.Now().UTC(),
		Meetings:              []models.Meeting{},
		Stakeholders:          []models.Stakeholder{},
		StakeholderCategories: []models.StakeholderCategory{},
		Transcripts:           []models.Transcript{},
		MeetingAnalyses:       []models.MeetingAnalysis{},
	}

	for _, rec := range records {
		ok := false
		switch rec.Entity {
		case models.KindMeeting:
			var m models.Meeting
			if err := json.Unmarshal(rec.Payload, &m); err == nil && m.ID != "" {
				snap.Meetings = append(snap.Meetings, m)
				ok = true
			}
		case models.KindStakeholder:
			var sh models.Stakeholder
			if err := json.Unmarshal(rec.Payload, &sh); err == nil && sh.ID != "" {
				snap.Stakeholders = append(snap.Stakeholders, sh)
				ok = true
			}
		case models.KindCategory:
			var c models.StakeholderCategory
			if err := json.Unmarshal(rec.Payload, &c); err == nil && c.ID != "" {
				snap.StakeholderCategories = append(snap.StakeholderCategories, c)
				ok = true
			}
		case models.KindTranscript:
			var t models.Transcript
			if err := json.Unmarshal(rec.Payload, &t); err == nil && t.ID != "" {
				snap.Transcripts = append(snap.Transcripts, t)
				ok = true
			}
		case models.KindAnalysis:
			var a models.MeetingAnalysis
			if err := json.Unmarshal(rec.Payload, &a); err == nil && a.ID != "" {
				snap.MeetingAnalyses = append(snap.MeetingAnalyses, a)
				ok = true
			}
		}
		if !ok {
			s.logger.Warn(ctx, "dropping unparseable payload", "entity", rec.Entity, "entityId", rec.EntityID)
		}
	}

	return snap
}

func (s *HTTPServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	counts, last, err := s.store.Status(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "status failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "failed to read status")
		return
	}

	writeJSON(w, http.StatusOK, wire.StatusResponse{Counts: counts, LastUpdatedAt: last})
}

func validateChange(c wire.Change) error {
	if !c.Entity.Valid() {
		return fmt.Errorf("%w: %s", shared.ErrUnknownKind, c.Entity)
	}
	if c.EntityID == "" {
		return errors.New("missing entityId")
	}
	// A nil RawMessage arrives as the JSON literal null, not as an empty slice.
	if len(c.Payload) == 0 || string(bytes.TrimSpace(c.Payload)) == "null" {
		return errors.New("missing payload")
	}
	if c.Timestamp.IsZero() {
		return errors.New("missing timestamp")
	}
	return nil
}

func parseSince(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid since parameter: %s", raw)
	}
	return &t, nil
}

func (s *HTTPServer) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID, _ = shared.MakeRandHexString(8)
		}

		started := time.Now()
		writer := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		setCORSHeaders(writer.Header(), s.corsOrigin)
		writer.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(writer, r)

		s.logger.Info(r.Context(), "request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", writer.status,
			"duration_ms", time.Since(started).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func setCORSHeaders(header http.Header, corsOrigin string) {
	header.Set("Access-Control-Allow-Origin", corsOrigin)
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
	header.Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
	header.Set("Cache-Control", "no-store")
	header.Set("Content-Type", "application/json")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

func decodeBody(r *http.Request, target any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
