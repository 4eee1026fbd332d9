/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package session

import (
	"github.com/Seednode/clueless/board"
)

// Identity is the local player's seat in one game. A zero field means the
// value was never stored, or could not be read back.
type Identity struct {
	GameID string
	Slot   board.Slot
}

// Load reads the identity from store. An unparseable slot is treated as
// unset so the player is asked to choose again.
func Load(store Store, logger Logger) Identity {
	id := Identity{GameID: store.Get(KeyGameID)}

	if raw := store.Get(KeyPlayer); raw != "" {
		slot, err := board.ParseSlot(raw)
		if err != nil {
			logger.Printf("SESSION: Ignoring stored player %q: %v", raw, err)
		} else {
			id.Slot = slot
		}
	}

	return id
}

// Joined reports whether the player has picked a game.
func (id Identity) Joined() bool {
	return id.GameID != ""
}

// Seated reports whether the player has picked both a game and a seat.
func (id Identity) Seated() bool {
	return id.GameID != "" && id.Slot != ""
}

// SaveGame stores the game id. Failures are logged and swallowed; the id can
// be entered again on the next run.
func SaveGame(store Store, logger Logger, gameID string) {
	if err := store.Set(KeyGameID, gameID); err != nil {
		logger.Printf("SESSION: Unable to remember game %s: %v", gameID, err)
	}
}

// SaveSlot stores the chosen seat, with the same failure policy as SaveGame.
func SaveSlot(store Store, logger Logger, slot board.Slot) {
	if err := store.Set(KeyPlayer, string(slot)); err != nil {
		logger.Printf("SESSION: Unable to remember player %s: %v", slot, err)
	}
}
