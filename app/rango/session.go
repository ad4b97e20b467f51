package rango

import (
	"github.com/dmitrymomot/rango/internal/visit"
)

// SessionData is the per-visitor state kept in the server-side session.
type SessionData struct {
	Visits    int    `json:"visits"`
	LastVisit string `json:"last_visit"`
	ClientID  string `json:"client_id,omitempty"`
	AuthToken string `json:"authToken,omitempty"`
}

func (d SessionData) visitState() visit.State {
	return visit.State{Visits: d.Visits, LastVisit: d.LastVisit}
}

func (d *SessionData) applyVisit(s visit.State) {
	d.Visits = s.Visits
	d.LastVisit = s.LastVisit
}
