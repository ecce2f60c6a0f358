package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"peuchre/internal/app"
	"peuchre/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRun struct {
	stats  app.Stats
	recent []app.Event
}

func (f fakeRun) Stats() app.Stats    { return f.stats }
func (f fakeRun) Recent() []app.Event { return f.recent }

type fakeSummary struct {
	data []byte
	err  error
}

func (f fakeSummary) SummaryJSON() ([]byte, error) { return f.data, f.err }

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	s := NewServer(fakeRun{}, nil, logging.Nop())
	rec := get(t, s, "/ping")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestStats(t *testing.T) {
	run := fakeRun{stats: app.Stats{Started: 3, Finished: 2, Aborted: 1, Stalled: 1}}
	s := NewServer(run, fakeSummary{data: []byte(`{"games":2,"hands":17}`)}, logging.Nop())

	rec := get(t, s, "/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Run    app.Stats      `json:"run"`
		Record map[string]int `json:"record"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, run.stats, got.Run)
	assert.Equal(t, 17, got.Record["hands"])
}

func TestStatsSummaryFailure(t *testing.T) {
	s := NewServer(fakeRun{}, fakeSummary{err: errors.New("bad clock")}, logging.Nop())
	rec := get(t, s, "/stats")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestEvents(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	run := fakeRun{recent: []app.Event{
		{Kind: app.EventGameStarted, At: at, Payload: app.GameStartedPayload{GameID: "g1", Number: 1}},
		{Kind: app.EventGameAborted, At: at, Payload: app.GameAbortedPayload{GameID: "g1", Reason: "game stalled"}},
	}}
	s := NewServer(run, nil, logging.Nop())

	rec := get(t, s, "/events")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "game_started", got[0]["kind"])
	assert.Equal(t, "game stalled", got[1]["payload"].(map[string]any)["reason"])
}
