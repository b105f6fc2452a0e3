package session

import (
	"time"

	"loot-splitter/core/settlement"
)

// Member is one participant of a live session.
type Member struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Log      string    `json:"log"`
	JoinedAt time.Time `json:"joined_at"`
}

// Session is a shared workspace where a party collects its logs and the leader
// publishes the settlement.
type Session struct {
	ID        string             `json:"id"`
	LeaderID  string             `json:"leader_id"`
	PartyLog  string             `json:"party_log"`
	Members   []Member           `json:"members"`
	Result    *settlement.Result `json:"result,omitempty"`
	Version   int64              `json:"version"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	ExpiresAt time.Time          `json:"expires_at"`
}

// Member returns the member with id.
func (s *Session) Member(id string) (*Member, bool) {
	for i := range s.Members {
		if s.Members[i].ID == id {
			return &s.Members[i], true
		}
	}
	return nil, false
}

// IsLeader reports whether memberID leads the session.
func (s *Session) IsLeader(memberID string) bool {
	return s.LeaderID != "" && s.LeaderID == memberID
}

// Players converts the members into settlement inputs, in join order.
func (s *Session) Players() []settlement.PlayerInput {
	out := make([]settlement.PlayerInput, 0, len(s.Members))
	for _, m := range s.Members {
		out = append(out, settlement.PlayerInput{Name: m.Name, Log: m.Log})
	}
	return out
}

// clone returns a deep copy so callers never share the stored value.
func (s *Session) clone() *Session {
	c := *s
	c.Members = append([]Member(nil), s.Members...)
	return &c
}
