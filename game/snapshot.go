/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/Seednode/clueless/board"
)

type Phase string

const (
	PhaseMove    Phase = "move"
	PhaseSuggest Phase = "suggest"
	PhaseAccuse  Phase = "accuse"
)

func ParsePhase(s string) (Phase, error) {
	switch p := Phase(s); p {
	case PhaseMove, PhaseSuggest, PhaseAccuse:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPhase, s)
}

// Victory states reported by the server.
const (
	InProgress = 0
	NoWinner   = 1
	Solved     = 2
)

type Turn struct {
	Player board.Slot `json:"player"`
	Phase  Phase      `json:"phase"`
}

// Snapshot is one complete copy of the server's game state. A new fetch
// replaces it wholesale; nothing in the client modifies a Snapshot after it
// has been decoded.
type Snapshot struct {
	Turn              Turn                             `json:"turn"`
	VictoryState      int                              `json:"victory_state"`
	Characters        map[board.Slot]board.Character   `json:"characters"`
	Usernames         map[board.Slot]string            `json:"usernames"`
	MovedBySuggestion map[board.Character]bool         `json:"moved_by_suggestion"`
	Board             map[board.Cell][]board.Character `json:"board"`
	Logs              []string                         `json:"logs"`
	Chat              []string                         `json:"chat"`
	Hands             map[board.Slot][]string          `json:"hands,omitempty"`
}

type wireSnapshot struct {
	GamePhase struct {
		Player json.RawMessage `json:"player"`
		Phase  Phase           `json:"phase"`
	} `json:"game_phase"`
	VictoryState      int                            `json:"victory_state"`
	Characters        map[board.Slot]board.Character `json:"player_character_mapping"`
	Usernames         map[board.Slot]string          `json:"player_username_mapping"`
	MovedBySuggestion map[board.Character]bool       `json:"moved_by_suggestion"`
	Map               map[string]json.RawMessage     `json:"map"`
	Logs              []string                       `json:"logs"`
	Chat              []string                       `json:"chat"`
}

// DecodeSnapshot parses the server's /State document.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	var w wireSnapshot
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decoding game state: %w", err)
	}

	snap := &Snapshot{
		Turn:              Turn{Phase: w.GamePhase.Phase},
		VictoryState:      w.VictoryState,
		Characters:        w.Characters,
		Usernames:         make(map[board.Slot]string, len(w.Usernames)),
		MovedBySuggestion: w.MovedBySuggestion,
		Board:             make(map[board.Cell][]board.Character, len(w.Map)),
		Logs:              w.Logs,
		Chat:              w.Chat,
	}

	if snap.Characters == nil {
		snap.Characters = map[board.Slot]board.Character{}
	}
	if snap.MovedBySuggestion == nil {
		snap.MovedBySuggestion = map[board.Character]bool{}
	}

	for slot := range snap.Characters {
		if _, err := board.ParseSlot(string(slot)); err != nil {
			return nil, fmt.Errorf("decoding game state: %w", err)
		}
	}

	// An empty username means the seat has not claimed one yet.
	for slot, name := range w.Usernames {
		if name != "" {
			snap.Usernames[slot] = name
		}
	}

	player, err := decodeActivePlayer(w.GamePhase.Player, snap.Characters)
	if err != nil {
		return nil, err
	}
	snap.Turn.Player = player

	for key, raw := range w.Map {
		cell, err := board.ParseCell(key)
		if err != nil {
			return nil, fmt.Errorf("decoding game state: %w", err)
		}

		occupants, err := decodeOccupants(raw)
		if err != nil {
			return nil, fmt.Errorf("decoding game state: cell %s: %w", cell, err)
		}
		snap.Board[cell] = occupants
	}

	hands, err := decodeHands(data)
	if err != nil {
		return nil, err
	}
	snap.Hands = hands

	return snap, nil
}

// decodeActivePlayer accepts the seat name, a zero-based seat index, or the
// active character's name.
func decodeActivePlayer(raw json.RawMessage, characters map[board.Slot]board.Character) (board.Slot, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var index int
	if err := json.Unmarshal(raw, &index); err == nil {
		if index < 0 || index >= len(board.Slots) {
			return "", fmt.Errorf("decoding game state: %w: index %d", board.ErrInvalidSlot, index)
		}
		return board.Slots[index], nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("decoding game state: active player: %w", err)
	}
	if s == "" {
		return "", nil
	}

	if slot, err := board.ParseSlot(s); err == nil {
		return slot, nil
	}
	for slot, c := range characters {
		if string(c) == s {
			return slot, nil
		}
	}

	return "", fmt.Errorf("decoding game state: %w: %q", board.ErrInvalidSlot, s)
}

// decodeOccupants reads a room's list of characters, or a hallway's single
// occupant where "" means nobody is there.
func decodeOccupants(raw json.RawMessage) ([]board.Character, error) {
	var list []board.Character
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var single board.Character
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, err
	}
	if single == "" {
		return nil, nil
	}
	return []board.Character{single}, nil
}

// decodeHands picks up each seat's dealt cards, which the server lists at the
// top level of the document under the seat name.
func decodeHands(data []byte) (map[board.Slot][]string, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("decoding game state: %w", err)
	}

	var hands map[board.Slot][]string
	for _, slot := range board.Slots {
		raw, ok := top[string(slot)]
		if !ok {
			continue
		}

		var cards []string
		if err := json.Unmarshal(raw, &cards); err != nil {
			return nil, fmt.Errorf("decoding game state: hand of %s: %w", slot, err)
		}
		if hands == nil {
			hands = make(map[board.Slot][]string)
		}
		hands[slot] = cards
	}

	return hands, nil
}

// Username returns the display name claimed for slot, if any.
func (s *Snapshot) Username(slot board.Slot) (string, bool) {
	name, ok := s.Usernames[slot]
	return name, ok
}

func (s *Snapshot) Character(slot board.Slot) (board.Character, bool) {
	c, ok := s.Characters[slot]
	return c, ok
}

// Locate finds the cell a character stands in.
func (s *Snapshot) Locate(c board.Character) (board.Cell, bool) {
	for _, cell := range board.Cells() {
		if slices.Contains(s.Board[cell], c) {
			return cell, true
		}
	}
	return board.Cell{}, false
}

func (s *Snapshot) GameOver() bool {
	return s.VictoryState != InProgress
}

// Winner returns the seat that solved the case. It is empty while the game is
// running and when every player accused wrongly.
func (s *Snapshot) Winner() board.Slot {
	if s.VictoryState != Solved {
		return ""
	}
	return s.Turn.Player
}

// Seats returns the seats with an assigned character, in seat order.
func (s *Snapshot) Seats() []board.Slot {
	seats := make([]board.Slot, 0, len(s.Characters))
	for _, slot := range board.Slots {
		if _, ok := s.Characters[slot]; ok {
			seats = append(seats, slot)
		}
	}
	return seats
}
