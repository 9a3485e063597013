package admin

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"autoresolve-sim/internal/battle"
	"autoresolve-sim/internal/telemetry"
)

// Source publishes the latest battle snapshot. The bool is false until the
// first phase has completed.
type Source interface {
	Snapshot() (battle.Snapshot, bool)
}

type Server struct {
	Source Source
	gen    *telemetry.Generator
	tpl    *template.Template
	mux    *http.ServeMux
}

//go:embed templates/index.html
var content embed.FS

// FormationStatus is one formation's line on the status page.
type FormationStatus struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Owner     int    `json:"owner"`
	Position  int    `json:"position"`
	Morale    string `json:"morale"`
	Deployed  bool   `json:"deployed"`
	Withdrawn bool   `json:"withdrawn"`
	Units     int    `json:"units"`
}

// Status is the JSON body of /status.
type Status struct {
	BattleID   string            `json:"battle_id"`
	Ready      bool              `json:"ready"`
	Round      int               `json:"round"`
	Phase      string            `json:"phase"`
	Active     int               `json:"active_units"`
	Removed    int               `json:"removed_units"`
	Formations []FormationStatus `json:"formations"`
}

func NewServer(src Source, gen *telemetry.Generator) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	s := &Server{Source: src, gen: gen, tpl: tpl, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/status", s.handleStatus)
	s.mux.HandleFunc("/units", s.handleUnits)
	s.mux.HandleFunc("/graveyard", s.handleGraveyard)
}

// Handler exposes the routes for embedding or tests.
func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) Start(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) status() Status {
	snap, ok := s.Source.Snapshot()
	st := Status{BattleID: s.gen.BattleID, Ready: ok}
	if !ok {
		return st
	}
	st.Round = snap.Round
	st.Phase = snap.Phase.String()
	st.Active = len(snap.Units)
	st.Removed = len(snap.Removed)
	active := make(map[int]bool, len(snap.Units))
	for _, u := range snap.Units {
		active[u.ID] = true
	}
	for _, f := range snap.Formations {
		fs := FormationStatus{
			ID: f.ID, Name: f.Name, Owner: f.Owner, Position: f.Position,
			Morale: f.Morale.String(), Deployed: f.Deployed, Withdrawn: f.Withdrawn,
		}
		for _, id := range f.UnitIDs {
			if active[id] {
				fs.Units++
			}
		}
		st.Formations = append(st.Formations, fs)
	}
	return st
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.tpl.Execute(w, s.status())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.status())
}

func (s *Server) handleUnits(w http.ResponseWriter, r *http.Request) {
	rows := []telemetry.UnitStateRow{}
	if snap, ok := s.Source.Snapshot(); ok {
		owner := make(map[int]int)
		for _, f := range snap.Formations {
			for _, id := range f.UnitIDs {
				owner[id] = f.ID
			}
		}
		for _, u := range snap.Units {
			rows = append(rows, s.gen.UnitState(u, owner[u.ID], snap.Round))
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rows)
}

func (s *Server) handleGraveyard(w http.ResponseWriter, r *http.Request) {
	type record struct {
		UnitID  int    `json:"unit_id"`
		Round   int    `json:"round"`
		Removal string `json:"removal"`
	}
	out := []record{}
	if snap, ok := s.Source.Snapshot(); ok {
		for _, g := range snap.Graveyard {
			out = append(out, record{UnitID: g.UnitID, Round: g.Round, Removal: g.Removal.String()})
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}
