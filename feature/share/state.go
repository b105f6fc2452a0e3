package share

import (
	"encoding/json"
	"fmt"
	"strings"

	"loot-splitter/core/settlement"
)

// minPlayers is the number of player slots a decoded state always offers.
const minPlayers = 2

// State is everything needed to reproduce a settlement: the party summary log and the
// players' session logs.
type State struct {
	PartyLog string                   `json:"party_log"`
	Players  []settlement.PlayerInput `json:"players"`
}

// compact drops players whose name and log are both blank.
func (s State) compact() State {
	out := State{PartyLog: s.PartyLog, Players: make([]settlement.PlayerInput, 0, len(s.Players))}
	for _, p := range s.Players {
		if strings.TrimSpace(p.Name) == "" && strings.TrimSpace(p.Log) == "" {
			continue
		}
		out.Players = append(out.Players, p)
	}
	return out
}

// padded returns s with empty player slots appended up to minPlayers.
func (s State) padded() State {
	for len(s.Players) < minPlayers {
		s.Players = append(s.Players, settlement.PlayerInput{})
	}
	return s
}

// marshalTuple encodes s in the minified [partyLog, [[name, log], ...]] shape.
func marshalTuple(s State) ([]byte, error) {
	players := make([][2]string, 0, len(s.Players))
	for _, p := range s.Players {
		players = append(players, [2]string{p.Name, p.Log})
	}
	return json.Marshal([]any{s.PartyLog, players})
}

// unmarshalTuple decodes the minified shape written by marshalTuple.
func unmarshalTuple(data []byte) (State, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return State{}, err
	}
	if len(raw) != 2 {
		return State{}, fmt.Errorf("expected 2 elements, got %d", len(raw))
	}

	var s State
	if err := json.Unmarshal(raw[0], &s.PartyLog); err != nil {
		return State{}, fmt.Errorf("party log: %w", err)
	}

	var players [][]string
	if err := json.Unmarshal(raw[1], &players); err != nil {
		return State{}, fmt.Errorf("players: %w", err)
	}
	for i, p := range players {
		if len(p) != 2 {
			return State{}, fmt.Errorf("player %d: expected [name, log]", i)
		}
		s.Players = append(s.Players, settlement.PlayerInput{Name: p[0], Log: p[1]})
	}
	return s, nil
}
