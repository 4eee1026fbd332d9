/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/Seednode/clueless/board"
)

type NewGameRequest struct {
	NumPlayers int `json:"num_players"`
}

type UsernameRequest struct {
	GameID   string     `json:"game_id"`
	Player   board.Slot `json:"player"`
	Username string     `json:"username"`
}

type MoveRequest struct {
	Player   board.Slot `json:"player"`
	Location board.Cell `json:"location"`
	ID       string     `json:"id"`
}

// StatementDetails is the person/weapon/room triple of a suggestion or
// accusation. All three nil is an accusation the player declined to make.
type StatementDetails struct {
	Person *board.Character `json:"person"`
	Weapon *board.Weapon    `json:"weapon"`
	Room   *board.Room      `json:"room"`
}

type StatementRequest struct {
	Player           board.Slot       `json:"player"`
	GameKey          string           `json:"gameKey"`
	StatementDetails StatementDetails `json:"statementDetails"`
}

// SuggestionResponse names who disproved a suggestion and with which card.
// Both fields are empty when nobody could.
type SuggestionResponse struct {
	Player   board.Slot `json:"player,omitempty"`
	Response string     `json:"response,omitempty"`
}

type PhaseRequest struct {
	Key    string     `json:"key"`
	Phase  string     `json:"phase"`
	Player board.Slot `json:"player"`
}

type ChatRequest struct {
	Key     string     `json:"key"`
	Player  board.Slot `json:"player"`
	Message string     `json:"message"`
}

// NewGame asks the server for a fresh game and returns its id.
func (c *Client) NewGame(ctx context.Context, numPlayers int) (string, error) {
	var id string
	if err := c.post(ctx, "/new_game", nil, NewGameRequest{NumPlayers: numPlayers}, &id); err != nil {
		return "", err
	}
	if id == "" {
		return "", errors.New("/new_game: empty game id")
	}

	return id, nil
}

// State fetches the raw game state document. Any non-200 reply means the
// server does not know this game.
func (c *Client) State(ctx context.Context, gameID string) (json.RawMessage, error) {
	var raw json.RawMessage
	err := c.post(ctx, "/State", url.Values{"gameKey": {gameID}}, nil, &raw)

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return nil, fmt.Errorf("%w: %s (%d)", ErrGameNotFound, gameID, statusErr.Status)
	}
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("/State: empty response for %s", gameID)
	}

	return raw, nil
}

func (c *Client) Username(ctx context.Context, req UsernameRequest) error {
	return c.post(ctx, "/username", nil, req, nil)
}

func (c *Client) Move(ctx context.Context, req MoveRequest) error {
	return c.post(ctx, "/move", nil, req, nil)
}

func (c *Client) Suggestion(ctx context.Context, req StatementRequest) (SuggestionResponse, error) {
	var resp SuggestionResponse
	if err := c.post(ctx, "/suggestion", nil, req, &resp); err != nil {
		return SuggestionResponse{}, err
	}
	return resp, nil
}

func (c *Client) Accusation(ctx context.Context, req StatementRequest) error {
	return c.post(ctx, "/accusation", nil, req, nil)
}

func (c *Client) Phase(ctx context.Context, req PhaseRequest) error {
	return c.post(ctx, "/phase", nil, req, nil)
}

func (c *Client) Chat(ctx context.Context, req ChatRequest) error {
	return c.post(ctx, "/chat", nil, req, nil)
}

// IsRejection reports whether err is the server refusing a request, as
// opposed to the request never arriving.
func IsRejection(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr)
}
