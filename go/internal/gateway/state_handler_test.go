package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/courtday/go/internal/models"
	"github.com/mcdev12/courtday/go/internal/session"
)

type stubEngine struct {
	sess *models.Session
}

func (e *stubEngine) Snapshot() *models.Session { return e.sess }

func (e *stubEngine) HandlePresenceToggle(ctx context.Context, playerID uuid.UUID) (*models.Session, error) {
	return e.sess, nil
}

func (e *stubEngine) HandleResultSubmission(ctx context.Context, ordinal int, winners []uuid.UUID) (*models.Session, error) {
	return e.sess, nil
}

func (e *stubEngine) Reset(ctx context.Context, reason string) (*models.Session, error) {
	return e.sess, nil
}

type stubStats struct {
	history []models.AuditEntry
	stats   *models.StatsResponse
	err     error
}

func (s *stubStats) History(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	return s.history, s.err
}

func (s *stubStats) Stats(ctx context.Context) (*models.StatsResponse, error) {
	return s.stats, s.err
}

func TestHandleGetState(t *testing.T) {
	sess := &models.Session{ID: uuid.New(), Date: "Sunday, 1 June 2025"}
	h := NewStateHandler(&stubEngine{sess: sess}, &stubStats{})

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rec := httptest.NewRecorder()
	h.HandleGetState(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var got models.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.ID != sess.ID || got.Date != sess.Date {
		t.Errorf("body session = %+v, want %+v", got, sess)
	}
}

func TestHandleGetStateMethodNotAllowed(t *testing.T) {
	h := NewStateHandler(&stubEngine{sess: &models.Session{}}, &stubStats{})

	req := httptest.NewRequest(http.MethodPost, "/api/state", nil)
	rec := httptest.NewRecorder()
	h.HandleGetState(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleGetHistory(t *testing.T) {
	entries := []models.AuditEntry{
		{ID: 2, Action: "CHECK_IN", Details: "Ana checked in. Penalty: 0"},
		{ID: 1, Action: "SESSION_START", Details: "4th Player arrived. Clock started."},
	}
	h := NewStateHandler(&stubEngine{sess: &models.Session{}}, &stubStats{history: entries})

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()
	h.HandleGetHistory(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got struct {
		Logs []models.AuditEntry `json:"logs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got.Logs) != 2 || got.Logs[0].Action != "CHECK_IN" {
		t.Errorf("logs = %+v", got.Logs)
	}
}

func TestHandleGetHistoryError(t *testing.T) {
	h := NewStateHandler(&stubEngine{sess: &models.Session{}}, &stubStats{err: errors.New("db down")})

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	rec := httptest.NewRecorder()
	h.HandleGetHistory(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestHandleGetStats(t *testing.T) {
	champ := models.PlayerStats{ID: uuid.New(), Name: "Champ", TotalGames: 10, Wins: 8, WinRate: 80}
	h := NewStateHandler(&stubEngine{sess: &models.Session{}}, &stubStats{
		stats: &models.StatsResponse{
			Leaderboard: []models.PlayerStats{champ},
			Highlights:  models.Highlights{Champion: &champ},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	rec := httptest.NewRecorder()
	h.HandleGetStats(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got models.StatsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(got.Leaderboard) != 1 || got.Leaderboard[0].Name != "Champ" {
		t.Errorf("leaderboard = %+v", got.Leaderboard)
	}
	if got.Highlights.Champion == nil || got.Highlights.Champion.Name != "Champ" {
		t.Errorf("highlights = %+v", got.Highlights)
	}
}

func TestRejectionMessage(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantRejected bool
	}{
		{"unknown player", session.ErrUnknownPlayer, true},
		{"unknown slot", session.ErrUnknownSlot, true},
		{"slot not ready", session.ErrSlotNotReady, true},
		{"already completed", session.ErrAlreadyCompleted, true},
		{"invalid winners", session.ErrInvalidWinners, true},
		{"wrapped rejection", errors.Join(errors.New("ctx"), session.ErrInvalidWinners), true},
		{"persistence failure", errors.New("db down"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, rejected := rejectionMessage(tt.err)
			if rejected != tt.wantRejected {
				t.Errorf("rejected = %v, want %v", rejected, tt.wantRejected)
			}
			if rejected && msg == "" {
				t.Error("rejection with empty message")
			}
		})
	}
}

func TestParseWinners(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	got, err := parseWinners([]string{a.String(), b.String()})
	if err != nil {
		t.Fatalf("parseWinners() error = %v", err)
	}
	if got[0] != a || got[1] != b {
		t.Errorf("parseWinners() = %v", got)
	}

	if _, err := parseWinners([]string{"not-a-uuid"}); err == nil {
		t.Error("parseWinners accepted garbage")
	}
}
