/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/Seednode/clueless/api"
	"github.com/Seednode/clueless/board"
	"github.com/Seednode/clueless/game"
)

var errBadRequest = errors.New("malformed request body")

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s | ERROR: %v\n", time.Now().Format(logDate), err)
}

// logger hands logf to the library packages.
type logger struct {
	cfg *Config
}

func (l logger) Printf(format string, args ...any) {
	logf(l.cfg, format, args...)
}

// statusFor maps an error from an intent or lookup to the companion's reply
// status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, game.ErrPlayerCount),
		errors.Is(err, game.ErrInvalidGameID),
		errors.Is(err, game.ErrEmptyUsername),
		errors.Is(err, game.ErrEmptyMessage),
		errors.Is(err, game.ErrNotAdjacent),
		errors.Is(err, game.ErrNotInRoom),
		errors.Is(err, game.ErrUnknownPhase),
		errors.Is(err, game.ErrInvalidChoice),
		errors.Is(err, board.ErrUnknownCell),
		errors.Is(err, board.ErrUnknownCharacter),
		errors.Is(err, board.ErrUnknownWeapon),
		errors.Is(err, board.ErrInvalidSlot):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrNoSnapshot):
		return http.StatusServiceUnavailable
	case errors.Is(err, api.ErrGameNotFound):
		return http.StatusNotFound
	case api.IsRejection(err),
		errors.Is(err, game.ErrGameOver),
		errors.Is(err, game.ErrNoDisplacedChoice),
		errors.Is(err, game.ErrNotSeated),
		game.IsPrecondition(err):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
