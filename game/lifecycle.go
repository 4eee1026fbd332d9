/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"context"
	"fmt"

	"github.com/Seednode/clueless/board"
	"github.com/google/uuid"
)

type GameCreator interface {
	NewGame(ctx context.Context, numPlayers int) (string, error)
}

// NewGame asks the server to start a game for numPlayers players.
func NewGame(ctx context.Context, creator GameCreator, numPlayers int) (string, error) {
	if numPlayers < 2 || numPlayers > board.MaxPlayers {
		return "", fmt.Errorf("%w: got %d", ErrPlayerCount, numPlayers)
	}

	return creator.NewGame(ctx, numPlayers)
}

// ValidateGameID checks that id looks like a game id the server hands out.
func ValidateGameID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidGameID, id)
	}
	return parsed.String(), nil
}

// Join looks up a game and returns it along with the seats that have a
// character assigned. A game whose characters have not been dealt yet has
// no seats to choose from.
func Join(ctx context.Context, fetcher StateFetcher, id string) (string, *Snapshot, []board.Slot, error) {
	gameID, err := ValidateGameID(id)
	if err != nil {
		return "", nil, nil, err
	}

	raw, err := fetcher.State(ctx, gameID)
	if err != nil {
		return "", nil, nil, err
	}

	snap, err := DecodeSnapshot(raw)
	if err != nil {
		return "", nil, nil, err
	}

	return gameID, snap, snap.Seats(), nil
}
