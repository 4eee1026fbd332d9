/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

const testGameID = "6f9619ff-8b86-d011-b42d-00cf4fc964ff"

// loungeState is player1 (Miss Scarlet) in the lounge on their move.
func loungeState(moved bool) string {
	return fmt.Sprintf(`{
		"game_phase": {"player": "player1", "phase": "move"},
		"victory_state": 0,
		"player_character_mapping": {"player1": "Miss Scarlet", "player2": "Mr. Green"},
		"player_username_mapping": {"player1": "Alice", "player2": "Bob"},
		"moved_by_suggestion": {"Miss Scarlet": %t, "Mr. Green": false},
		"map": {"lounge": ["Miss Scarlet"], "study": [], "10": "Mr. Green", "1": "", "4": ""},
		"logs": ["Game started"],
		"chat": [],
		"player1": ["rope", "study"],
		"player2": ["knife"]
	}`, moved)
}

// fakeGame plays the game server for one game.
type fakeGame struct {
	mu sync.Mutex

	state      string
	rejectMove string
	paths      []string
}

func newFakeGame(t *testing.T, moved bool) (*fakeGame, *httptest.Server) {
	t.Helper()

	fg := &fakeGame{state: loungeState(moved)}

	srv := httptest.NewServer(fg)
	t.Cleanup(srv.Close)

	return fg, srv
}

func (f *fakeGame) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_, _ = io.ReadAll(r.Body)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.paths = append(f.paths, r.URL.Path)

	w.Header().Set("Content-Type", "application/json")

	switch r.URL.Path {
	case "/State":
		if r.URL.Query().Get("gameKey") != testGameID {
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"detail": "Game not found"}`)
			return
		}
		io.WriteString(w, f.state)
	case "/new_game":
		io.WriteString(w, `"`+testGameID+`"`)
	case "/move":
		if f.rejectMove != "" {
			w.WriteHeader(http.StatusBadRequest)
			fmt.Fprintf(w, `{"detail": %q}`, f.rejectMove)
			return
		}
		io.WriteString(w, "null")
	case "/suggestion":
		io.WriteString(w, `{"player": "player2", "response": "rope"}`)
	default:
		io.WriteString(w, "null")
	}
}

func (f *fakeGame) count(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, p := range f.paths {
		if p == path {
			n++
		}
	}
	return n
}

func (f *fakeGame) reject(detail string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rejectMove = detail
}
