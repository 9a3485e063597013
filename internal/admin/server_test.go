package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"autoresolve-sim/internal/battle"
	"autoresolve-sim/internal/telemetry"
	"autoresolve-sim/internal/unit"
)

type staticSource struct {
	snap battle.Snapshot
	ok   bool
}

func (s staticSource) Snapshot() (battle.Snapshot, bool) { return s.snap, s.ok }

func testServer(t *testing.T) *Server {
	t.Helper()
	state := battle.New()
	state.AddPlayer(battle.Player{ID: 1, Team: 1})
	a := state.AddUnit(unit.NewMek(unit.Spec{Name: "Hunchback", Owner: 1}))
	b := state.AddUnit(unit.NewTank(unit.Spec{Name: "Vedette", Owner: 1}))
	state.AddFormation(&battle.Formation{Name: "Blue Lance", Owner: 1, UnitIDs: []int{a, b}, Deployed: true})
	state.AddUnitToGraveyard(b, unit.RemovalDevastated)
	state.SetPhase(battle.PhaseFiring)
	return NewServer(staticSource{snap: state.Snapshot(), ok: true}, telemetry.NewGenerator("b-1"))
}

func TestHandleStatus(t *testing.T) {
	server := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	server.handleStatus(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status OK, got %v", resp.StatusCode)
	}
	var st Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !st.Ready || st.Phase != "firing" || st.BattleID != "b-1" {
		t.Errorf("unexpected status: %+v", st)
	}
	if st.Active != 1 || st.Removed != 1 {
		t.Errorf("unexpected unit counts: %+v", st)
	}
	if len(st.Formations) != 1 || st.Formations[0].Units != 1 || st.Formations[0].Morale != "normal" {
		t.Errorf("unexpected formations: %+v", st.Formations)
	}
}

func TestHandleStatusBeforeFirstPhase(t *testing.T) {
	server := NewServer(staticSource{}, telemetry.NewGenerator("b-2"))
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/status", nil))
	var st Status
	if err := json.NewDecoder(w.Body).Decode(&st); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if st.Ready || len(st.Formations) != 0 {
		t.Errorf("expected empty status, got %+v", st)
	}
}

func TestHandleUnits(t *testing.T) {
	server := testServer(t)
	w := httptest.NewRecorder()
	server.handleUnits(w, httptest.NewRequest(http.MethodGet, "/units", nil))

	var rows []telemetry.UnitStateRow
	if err := json.NewDecoder(w.Result().Body).Decode(&rows); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Hunchback" || rows[0].FormationID != 1 {
		t.Errorf("unexpected unit rows: %+v", rows)
	}
}

func TestHandleGraveyard(t *testing.T) {
	server := testServer(t)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/graveyard", nil))

	var recs []struct {
		UnitID  int    `json:"unit_id"`
		Removal string `json:"removal"`
	}
	if err := json.NewDecoder(w.Body).Decode(&recs); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(recs) != 1 || recs[0].Removal != "devastated" {
		t.Errorf("unexpected graveyard: %+v", recs)
	}
}

func TestHandleIndex(t *testing.T) {
	server := testServer(t)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	body := w.Body.String()
	if !strings.Contains(body, "Blue Lance") || !strings.Contains(body, "phase firing") {
		t.Errorf("index missing battle data: %s", body)
	}

	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
