/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"errors"
)

// Validation errors are returned before anything is sent to the server.
var (
	ErrPlayerCount   = errors.New("a game needs between 2 and 6 players")
	ErrInvalidGameID = errors.New("not a valid game id")
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrEmptyMessage  = errors.New("message cannot be empty")
	ErrNotAdjacent   = errors.New("destination is not reachable in one move")
	ErrNotInRoom     = errors.New("suggestions can only be made from inside a room")
	ErrUnknownPhase  = errors.New("unknown turn phase")
	ErrInvalidChoice = errors.New("choice must be suggest or move")
)

// State errors mean the local view cannot support the request.
var (
	ErrNotSeated         = errors.New("no game joined or no player chosen")
	ErrNoSnapshot        = errors.New("game state has not been fetched yet")
	ErrGameOver          = errors.New("the game is over")
	ErrNoDisplacedChoice = errors.New("there is no pending displaced choice")
)

// Precondition violations mean the snapshot disagrees with itself, which
// usually means the client has fallen out of sync with the server.
var (
	ErrNoCharacter       = errors.New("no character assigned to this player")
	ErrNoCurrentLocation = errors.New("character is not on the board")
)

// IsPrecondition reports whether err signals a desynchronized snapshot.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrNoCharacter) || errors.Is(err, ErrNoCurrentLocation)
}

type Logger interface {
	Printf(format string, args ...any)
}
