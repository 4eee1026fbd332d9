/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Seednode/clueless/api"
	"github.com/Seednode/clueless/board"
)

type testLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *testLogger) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

// fakeServer records requests and replays canned replies.
type fakeServer struct {
	mu sync.Mutex

	state    json.RawMessage
	stateErr error
	fetches  int

	moveErr       error
	suggestion    api.SuggestionResponse
	suggestionErr error
	accusationErr error

	moves       []api.MoveRequest
	suggestions []api.StatementRequest
	accusations []api.StatementRequest
	phases      []api.PhaseRequest
	chats       []api.ChatRequest
	usernames   []api.UsernameRequest
	newGames    []int
}

func (f *fakeServer) State(_ context.Context, _ string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fetches++
	return f.state, f.stateErr
}

func (f *fakeServer) setState(doc string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = json.RawMessage(doc)
}

func (f *fakeServer) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.fetches
}

func (f *fakeServer) Username(_ context.Context, req api.UsernameRequest) error {
	f.usernames = append(f.usernames, req)
	return nil
}

func (f *fakeServer) Move(_ context.Context, req api.MoveRequest) error {
	f.moves = append(f.moves, req)
	return f.moveErr
}

func (f *fakeServer) Suggestion(_ context.Context, req api.StatementRequest) (api.SuggestionResponse, error) {
	f.suggestions = append(f.suggestions, req)
	return f.suggestion, f.suggestionErr
}

func (f *fakeServer) Accusation(_ context.Context, req api.StatementRequest) error {
	f.accusations = append(f.accusations, req)
	return f.accusationErr
}

func (f *fakeServer) Phase(_ context.Context, req api.PhaseRequest) error {
	f.phases = append(f.phases, req)
	return nil
}

func (f *fakeServer) Chat(_ context.Context, req api.ChatRequest) error {
	f.chats = append(f.chats, req)
	return nil
}

func (f *fakeServer) NewGame(_ context.Context, numPlayers int) (string, error) {
	f.newGames = append(f.newGames, numPlayers)
	return "G1", nil
}

// stateDoc builds a /State document in the server's wire format.
type stateDoc struct {
	player     string
	phase      string
	victory    int
	characters map[string]string
	usernames  map[string]string
	moved      map[string]bool
	cells      map[string]any
	logs       []string
	chat       []string
}

func (d stateDoc) JSON() string {
	cells := map[string]any{}
	for _, r := range board.Rooms {
		cells[string(r)] = []string{}
	}
	for i := 0; i < board.Hallways; i++ {
		cells[fmt.Sprint(i)] = ""
	}
	for k, v := range d.cells {
		cells[k] = v
	}

	doc := map[string]any{
		"game_phase":               map[string]string{"player": d.player, "phase": d.phase},
		"victory_state":            d.victory,
		"player_character_mapping": orEmpty(d.characters),
		"player_username_mapping":  orEmpty(d.usernames),
		"moved_by_suggestion":      d.moved,
		"map":                      cells,
		"logs":                     d.logs,
		"chat":                     d.chat,
	}

	data, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return string(data)
}

func orEmpty(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func (d stateDoc) snapshot() *Snapshot {
	snap, err := DecodeSnapshot([]byte(d.JSON()))
	if err != nil {
		panic(err)
	}
	return snap
}

// twoPlayerGame is player1 (Miss Scarlet, "Alice") in the lounge and
// player2 (Mr. Green, "Bob") in hallway 10.
func twoPlayerGame() stateDoc {
	return stateDoc{
		player:     "player1",
		phase:      "move",
		characters: map[string]string{"player1": "Miss Scarlet", "player2": "Mr. Green"},
		usernames:  map[string]string{"player1": "Alice", "player2": "Bob"},
		moved:      map[string]bool{"Miss Scarlet": false, "Mr. Green": false},
		cells: map[string]any{
			"lounge": []string{"Miss Scarlet"},
			"10":     "Mr. Green",
		},
		logs: []string{"Game started"},
	}
}
