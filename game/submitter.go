/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/Seednode/clueless/api"
	"github.com/Seednode/clueless/board"
	"github.com/Seednode/clueless/session"
)

// Server is the part of the game server a seated player talks to.
type Server interface {
	StateFetcher
	Username(ctx context.Context, req api.UsernameRequest) error
	Move(ctx context.Context, req api.MoveRequest) error
	Suggestion(ctx context.Context, req api.StatementRequest) (api.SuggestionResponse, error)
	Accusation(ctx context.Context, req api.StatementRequest) error
	Phase(ctx context.Context, req api.PhaseRequest) error
	Chat(ctx context.Context, req api.ChatRequest) error
}

// SuggestionResult is the server's answer to a suggestion.
type SuggestionResult struct {
	Player board.Slot `json:"player,omitempty"`
	Card   string     `json:"card,omitempty"`
}

func (r SuggestionResult) Disproved() bool {
	return r.Card != ""
}

// Message is what the suggesting player is told: who showed which card, or
// that nobody could.
func (r SuggestionResult) Message() string {
	if !r.Disproved() {
		return "Nobody could disprove your suggestion."
	}

	player := string(r.Player)
	if player == "" {
		player = someoneElse
	}
	return fmt.Sprintf("%s had %s", player, r.Card)
}

// Accusation is a full person/weapon/room triple.
type Accusation struct {
	Person board.Character
	Weapon board.Weapon
	Room   board.Room
}

// Submitter sends the local player's intents. Each successful request bumps
// the syncer's refresh counter; a rejected one does not.
type Submitter struct {
	server       Server
	syncer       *Syncer
	displacement *Displacement
	identity     session.Identity
	logger       Logger
}

func NewSubmitter(server Server, syncer *Syncer, displacement *Displacement, identity session.Identity, logger Logger) *Submitter {
	return &Submitter{
		server:       server,
		syncer:       syncer,
		displacement: displacement,
		identity:     identity,
		logger:       logger,
	}
}

// current returns the latest snapshot, refusing once the game is over.
func (s *Submitter) current() (*Snapshot, error) {
	if !s.identity.Seated() {
		return nil, ErrNotSeated
	}

	snap := s.syncer.Snapshot()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	if snap.GameOver() {
		return nil, ErrGameOver
	}

	return snap, nil
}

func (s *Submitter) succeeded(intent string) {
	n := s.syncer.Trigger()
	s.logger.Printf("INTENT: %s by %s in %s accepted (refresh %d)", intent, s.identity.Slot, s.identity.GameID, n)
}

func (s *Submitter) rejected(intent string, err error) error {
	s.logger.Printf("INTENT: %s by %s in %s failed: %v", intent, s.identity.Slot, s.identity.GameID, err)
	return err
}

// location finds the local character on the board.
func (s *Submitter) location(snap *Snapshot) (board.Character, board.Cell, error) {
	character, ok := snap.Character(s.identity.Slot)
	if !ok {
		return "", board.Cell{}, fmt.Errorf("%w: %s", ErrNoCharacter, s.identity.Slot)
	}

	cell, ok := snap.Locate(character)
	if !ok {
		return "", board.Cell{}, fmt.Errorf("%w: %s", ErrNoCurrentLocation, character)
	}

	return character, cell, nil
}

// Move walks the local character to dest, which must be one step from where
// it stands now.
func (s *Submitter) Move(ctx context.Context, dest board.Cell) error {
	snap, err := s.current()
	if err != nil {
		return err
	}

	_, from, err := s.location(snap)
	if err != nil {
		return err
	}

	ok, err := board.IsNeighbor(from, dest)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s to %s", ErrNotAdjacent, from, dest)
	}

	err = s.server.Move(ctx, api.MoveRequest{
		Player:   s.identity.Slot,
		Location: dest,
		ID:       s.identity.GameID,
	})
	if err != nil {
		return s.rejected("move", err)
	}

	s.displacement.Moved()
	s.succeeded("move")

	return nil
}

// Suggest names a suspect and weapon; the room is always the one the local
// character stands in.
func (s *Submitter) Suggest(ctx context.Context, person board.Character, weapon board.Weapon) (SuggestionResult, error) {
	snap, err := s.current()
	if err != nil {
		return SuggestionResult{}, err
	}

	_, cell, err := s.location(snap)
	if err != nil {
		return SuggestionResult{}, err
	}

	room, ok := cell.Room()
	if !ok {
		return SuggestionResult{}, fmt.Errorf("%w: standing in hallway %s", ErrNotInRoom, cell)
	}

	resp, err := s.server.Suggestion(ctx, api.StatementRequest{
		Player:  s.identity.Slot,
		GameKey: s.identity.GameID,
		StatementDetails: api.StatementDetails{
			Person: &person,
			Weapon: &weapon,
			Room:   &room,
		},
	})
	if err != nil {
		return SuggestionResult{}, s.rejected("suggestion", err)
	}

	s.succeeded("suggestion")

	return SuggestionResult{Player: resp.Player, Card: resp.Response}, nil
}

// Accuse submits an accusation. A nil accusation declines to accuse, which
// the server records as a turn passed rather than a wrong guess.
func (s *Submitter) Accuse(ctx context.Context, accusation *Accusation) error {
	if _, err := s.current(); err != nil {
		return err
	}

	req := api.StatementRequest{
		Player:  s.identity.Slot,
		GameKey: s.identity.GameID,
	}

	intent := "decline to accuse"
	if accusation != nil {
		intent = "accusation"
		req.StatementDetails = api.StatementDetails{
			Person: &accusation.Person,
			Weapon: &accusation.Weapon,
			Room:   &accusation.Room,
		}
	}

	if err := s.server.Accusation(ctx, req); err != nil {
		return s.rejected(intent, err)
	}

	s.succeeded(intent)

	return nil
}

func (s *Submitter) Decline(ctx context.Context) error {
	return s.Accuse(ctx, nil)
}

// Chat posts a message to the shared chat feed.
func (s *Submitter) Chat(ctx context.Context, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return ErrEmptyMessage
	}

	if _, err := s.current(); err != nil {
		return err
	}

	err := s.server.Chat(ctx, api.ChatRequest{
		Key:     s.identity.GameID,
		Player:  s.identity.Slot,
		Message: message,
	})
	if err != nil {
		return s.rejected("chat", err)
	}

	s.succeeded("chat")

	return nil
}

// ClaimUsername binds a display name to the local seat. It does not need a
// snapshot, since it is usually the first thing a new player does.
func (s *Submitter) ClaimUsername(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}

	if !s.identity.Seated() {
		return ErrNotSeated
	}
	if snap := s.syncer.Snapshot(); snap != nil && snap.GameOver() {
		return ErrGameOver
	}

	err := s.server.Username(ctx, api.UsernameRequest{
		GameID:   s.identity.GameID,
		Player:   s.identity.Slot,
		Username: username,
	})
	if err != nil {
		return s.rejected("username", err)
	}

	s.succeeded("username")

	return nil
}

// SetPhase asks the server to move the local turn to phase, such as skipping
// the suggestion and going straight to the accusation step.
func (s *Submitter) SetPhase(ctx context.Context, phase Phase) error {
	if _, err := ParsePhase(string(phase)); err != nil {
		return err
	}

	if _, err := s.current(); err != nil {
		return err
	}

	err := s.server.Phase(ctx, api.PhaseRequest{
		Key:    s.identity.GameID,
		Phase:  string(phase),
		Player: s.identity.Slot,
	})
	if err != nil {
		return s.rejected("phase", err)
	}

	s.succeeded("phase " + string(phase))

	return nil
}

// AnswerDisplaced records the reply to the displaced prompt. Nothing is sent;
// the choice only changes which affordance Resolve offers.
func (s *Submitter) AnswerDisplaced(choice DisplacedChoice) error {
	if _, err := ParseDisplacedChoice(string(choice)); err != nil {
		return err
	}

	snap, err := s.current()
	if err != nil {
		return err
	}

	view, err := Resolve(snap, s.identity.Slot, s.displacement.Current())
	if err != nil {
		return err
	}
	if view.State != DisplacedChoicePending {
		return ErrNoDisplacedChoice
	}

	s.logger.Printf("INTENT: %s chose to %s after being displaced in %s", s.identity.Slot, choice, s.identity.GameID)

	return s.displacement.Answer(choice)
}
