/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Seednode/clueless/board"
	"github.com/Seednode/clueless/game"
	"github.com/julienschmidt/httprouter"
)

type moveBody struct {
	Location board.Cell `json:"location"`
}

type suggestBody struct {
	Person string `json:"person"`
	Weapon string `json:"weapon"`
}

type accuseBody struct {
	Person  string `json:"person"`
	Weapon  string `json:"weapon"`
	Room    string `json:"room"`
	Decline bool   `json:"decline"`
}

type choiceBody struct {
	Choice string `json:"choice"`
}

type chatBody struct {
	Message string `json:"message"`
}

type usernameBody struct {
	Username string `json:"username"`
}

type phaseBody struct {
	Phase string `json:"phase"`
}

// intentReply acknowledges an accepted intent. Refresh is the refresh
// counter after the intent.
type intentReply struct {
	Message string `json:"message,omitempty"`
	Refresh uint64 `json:"refresh"`
}

// serveIntent decodes a T from the request body, runs do with it and reports
// the outcome. Rejections keep the game server's wording.
func serveIntent[T any](cfg *Config, seat *game.Seat, name string, errs chan<- error, do func(ctx context.Context, body T) (string, error)) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		var body T

		err := decodeBody(r, &body)

		var message string
		if err == nil {
			message, err = do(r.Context(), body)
		}

		var written int
		var werr error
		if err != nil {
			written, werr = writeError(cfg, w, err)
		} else {
			written, werr = writeJSON(cfg, w, http.StatusOK, intentReply{
				Message: message,
				Refresh: seat.Syncer.RefreshCount(),
			})
		}
		if werr != nil {
			errs <- werr

			return
		}

		status := "accepted"
		if err != nil {
			status = "refused: " + err.Error()
		}

		logf(cfg, "SERVE: %s %s (%s) for %s in %s",
			name,
			status,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveView(cfg *Config, seat *game.Seat, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		if _, err := writeJSON(cfg, w, http.StatusOK, currentView(seat, nil)); err != nil {
			errs <- err
		}
	}
}

func serveSnapshot(cfg *Config, seat *game.Seat, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var err error

		snap := seat.Syncer.Snapshot()
		if snap == nil {
			_, err = writeError(cfg, w, game.ErrNoSnapshot)
		} else {
			_, err = writeJSON(cfg, w, http.StatusOK, snap)
		}
		if err != nil {
			errs <- err
		}
	}
}

func registerCompanion(cfg *Config, seat *game.Seat, h *hub, mux *httprouter.Router, errs chan<- error) {
	sub := seat.Submitter

	mux.GET(cfg.prefix+"/api/view", serveView(cfg, seat, errs))

	mux.GET(cfg.prefix+"/api/snapshot", serveSnapshot(cfg, seat, errs))

	mux.GET(cfg.prefix+"/api/ws", serveWS(cfg, h))

	mux.POST(cfg.prefix+"/api/refresh", serveIntent(cfg, seat, "refresh", errs,
		func(_ context.Context, _ struct{}) (string, error) {
			seat.Syncer.Trigger()
			return "", nil
		}))

	mux.POST(cfg.prefix+"/api/move", serveIntent(cfg, seat, "move", errs,
		func(ctx context.Context, body moveBody) (string, error) {
			return "", sub.Move(ctx, body.Location)
		}))

	mux.POST(cfg.prefix+"/api/suggest", serveIntent(cfg, seat, "suggestion", errs,
		func(ctx context.Context, body suggestBody) (string, error) {
			person, err := board.ParseCharacter(body.Person)
			if err != nil {
				return "", err
			}
			weapon, err := board.ParseWeapon(body.Weapon)
			if err != nil {
				return "", err
			}

			result, err := sub.Suggest(ctx, person, weapon)
			if err != nil {
				return "", err
			}
			return result.Message(), nil
		}))

	mux.POST(cfg.prefix+"/api/accuse", serveIntent(cfg, seat, "accusation", errs,
		func(ctx context.Context, body accuseBody) (string, error) {
			if body.Decline {
				return "", sub.Decline(ctx)
			}

			accusation, err := parseAccusation(body.Person, body.Weapon, body.Room)
			if err != nil {
				return "", err
			}
			return "", sub.Accuse(ctx, accusation)
		}))

	mux.POST(cfg.prefix+"/api/displaced", serveIntent(cfg, seat, "displaced choice", errs,
		func(_ context.Context, body choiceBody) (string, error) {
			if err := sub.AnswerDisplaced(game.DisplacedChoice(body.Choice)); err != nil {
				return "", err
			}
			h.notify()
			return "", nil
		}))

	mux.POST(cfg.prefix+"/api/chat", serveIntent(cfg, seat, "chat", errs,
		func(ctx context.Context, body chatBody) (string, error) {
			return "", sub.Chat(ctx, body.Message)
		}))

	mux.POST(cfg.prefix+"/api/username", serveIntent(cfg, seat, "username", errs,
		func(ctx context.Context, body usernameBody) (string, error) {
			return "", sub.ClaimUsername(ctx, body.Username)
		}))

	mux.POST(cfg.prefix+"/api/phase", serveIntent(cfg, seat, "phase", errs,
		func(ctx context.Context, body phaseBody) (string, error) {
			phase, err := game.ParsePhase(body.Phase)
			if err != nil {
				return "", err
			}
			return "", sub.SetPhase(ctx, phase)
		}))
}
