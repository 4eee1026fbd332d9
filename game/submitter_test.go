/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package game

import (
	"context"
	"errors"
	"testing"

	"github.com/Seednode/clueless/api"
	"github.com/Seednode/clueless/board"
	"github.com/Seednode/clueless/session"
)

var alice = session.Identity{GameID: "G1", Slot: "player1"}

// seated returns a seat for player1 whose snapshot was fetched from doc.
func seated(t *testing.T, doc stateDoc) (*Seat, *fakeServer) {
	t.Helper()

	server := &fakeServer{}
	server.setState(doc.JSON())

	seat := NewSeat(server, alice, &testLogger{})
	if _, err := seat.Syncer.FetchNow(context.Background()); err != nil {
		t.Fatal(err)
	}

	return seat, server
}

func TestMoveToNeighbor(t *testing.T) {
	seat, server := seated(t, twoPlayerGame())

	if err := seat.Submitter.Move(context.Background(), board.Hallway(4)); err != nil {
		t.Fatal(err)
	}

	if len(server.moves) != 1 {
		t.Fatalf("moves sent = %d", len(server.moves))
	}
	want := api.MoveRequest{Player: "player1", Location: board.Hallway(4), ID: "G1"}
	if server.moves[0] != want {
		t.Errorf("move request = %+v", server.moves[0])
	}
	if seat.Syncer.RefreshCount() != 1 {
		t.Errorf("refresh count = %d, want 1", seat.Syncer.RefreshCount())
	}
}

func TestMoveRejectsNonNeighbor(t *testing.T) {
	seat, server := seated(t, twoPlayerGame())

	err := seat.Submitter.Move(context.Background(), board.RoomCell(board.Study))
	if !errors.Is(err, ErrNotAdjacent) {
		t.Fatalf("error = %v", err)
	}
	if len(server.moves) != 0 {
		t.Errorf("request sent for an unreachable cell")
	}
}

func TestServerRejectionIsReportedVerbatim(t *testing.T) {
	seat, server := seated(t, twoPlayerGame())
	server.moveErr = &api.StatusError{Endpoint: "/move", Status: 400, Detail: "Cannot move to an occupied hallway."}

	err := seat.Submitter.Move(context.Background(), board.Hallway(1))
	if err == nil || err.Error() != "Cannot move to an occupied hallway." {
		t.Fatalf("error = %v", err)
	}
	if !api.IsRejection(err) {
		t.Errorf("rejection not recognised")
	}
	if seat.Syncer.RefreshCount() != 0 {
		t.Errorf("rejected move bumped the refresh counter")
	}
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name     string
		response api.SuggestionResponse
		want     string
	}{
		{name: "disproved", response: api.SuggestionResponse{Player: "player3", Response: "rope"}, want: "player3 had rope"},
		{name: "not disproved", response: api.SuggestionResponse{}, want: "Nobody could disprove your suggestion."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := twoPlayerGame()
			doc.phase = "suggest"
			seat, server := seated(t, doc)
			server.suggestion = tt.response

			result, err := seat.Submitter.Suggest(context.Background(), board.ColonelMustard, board.Rope)
			if err != nil {
				t.Fatal(err)
			}
			if result.Message() != tt.want {
				t.Errorf("message = %q, want %q", result.Message(), tt.want)
			}

			req := server.suggestions[0]
			if req.StatementDetails.Room == nil || *req.StatementDetails.Room != board.Lounge {
				t.Errorf("suggestion room = %v", req.StatementDetails.Room)
			}
			if *req.StatementDetails.Person != board.ColonelMustard || *req.StatementDetails.Weapon != board.Rope {
				t.Errorf("suggestion = %+v", req.StatementDetails)
			}
		})
	}
}

func TestSuggestFromHallway(t *testing.T) {
	doc := twoPlayerGame()
	doc.cells = map[string]any{"1": "Miss Scarlet", "10": "Mr. Green"}
	seat, server := seated(t, doc)

	_, err := seat.Submitter.Suggest(context.Background(), board.MrGreen, board.Knife)
	if !errors.Is(err, ErrNotInRoom) {
		t.Fatalf("error = %v", err)
	}
	if len(server.suggestions) != 0 {
		t.Errorf("suggestion sent from a hallway")
	}
}

func TestAccuseAndDecline(t *testing.T) {
	doc := twoPlayerGame()
	doc.phase = "accuse"
	seat, server := seated(t, doc)

	accusation := &Accusation{Person: board.ProfessorPlum, Weapon: board.Wrench, Room: board.Study}
	if err := seat.Submitter.Accuse(context.Background(), accusation); err != nil {
		t.Fatal(err)
	}
	if err := seat.Submitter.Decline(context.Background()); err != nil {
		t.Fatal(err)
	}

	if len(server.accusations) != 2 {
		t.Fatalf("accusations sent = %d", len(server.accusations))
	}
	if *server.accusations[0].StatementDetails.Room != board.Study {
		t.Errorf("accusation room = %v", server.accusations[0].StatementDetails.Room)
	}

	declined := server.accusations[1].StatementDetails
	if declined.Person != nil || declined.Weapon != nil || declined.Room != nil {
		t.Errorf("decline sent details: %+v", declined)
	}
	if seat.Syncer.RefreshCount() != 2 {
		t.Errorf("refresh count = %d, want 2", seat.Syncer.RefreshCount())
	}
}

func TestChat(t *testing.T) {
	seat, server := seated(t, twoPlayerGame())

	if err := seat.Submitter.Chat(context.Background(), "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Errorf("blank message error = %v", err)
	}
	if len(server.chats) != 0 {
		t.Fatalf("blank message was sent")
	}

	if err := seat.Submitter.Chat(context.Background(), " I think it was Plum "); err != nil {
		t.Fatal(err)
	}
	want := api.ChatRequest{Key: "G1", Player: "player1", Message: "I think it was Plum"}
	if server.chats[0] != want {
		t.Errorf("chat request = %+v", server.chats[0])
	}
}

func TestClaimUsername(t *testing.T) {
	server := &fakeServer{}
	seat := NewSeat(server, alice, &testLogger{})

	if err := seat.Submitter.ClaimUsername(context.Background(), ""); !errors.Is(err, ErrEmptyUsername) {
		t.Errorf("empty username error = %v", err)
	}

	// A username can be claimed before the first snapshot arrives.
	if err := seat.Submitter.ClaimUsername(context.Background(), " Alice "); err != nil {
		t.Fatal(err)
	}
	want := api.UsernameRequest{GameID: "G1", Player: "player1", Username: "Alice"}
	if len(server.usernames) != 1 || server.usernames[0] != want {
		t.Errorf("username requests = %+v", server.usernames)
	}

	unseated := NewSeat(server, session.Identity{GameID: "G1"}, &testLogger{})
	if err := unseated.Submitter.ClaimUsername(context.Background(), "Bob"); !errors.Is(err, ErrNotSeated) {
		t.Errorf("unseated error = %v", err)
	}
}

func TestIntentsRefusedAfterGameOver(t *testing.T) {
	doc := twoPlayerGame()
	doc.victory = Solved
	seat, server := seated(t, doc)
	ctx := context.Background()

	if err := seat.Submitter.Move(ctx, board.Hallway(4)); !errors.Is(err, ErrGameOver) {
		t.Errorf("move error = %v", err)
	}
	if err := seat.Submitter.Decline(ctx); !errors.Is(err, ErrGameOver) {
		t.Errorf("decline error = %v", err)
	}
	if err := seat.Submitter.Chat(ctx, "gg"); !errors.Is(err, ErrGameOver) {
		t.Errorf("chat error = %v", err)
	}
	if err := seat.Submitter.ClaimUsername(ctx, "Alice"); !errors.Is(err, ErrGameOver) {
		t.Errorf("username error = %v", err)
	}

	if len(server.moves)+len(server.accusations)+len(server.chats)+len(server.usernames) != 0 {
		t.Errorf("requests sent after game over")
	}
}

func TestIntentsNeedSnapshot(t *testing.T) {
	seat := NewSeat(&fakeServer{}, alice, &testLogger{})

	if err := seat.Submitter.Move(context.Background(), board.Hallway(4)); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("error = %v", err)
	}
}

func TestMoveWithoutLocation(t *testing.T) {
	doc := twoPlayerGame()
	doc.cells = map[string]any{"10": "Mr. Green"}
	seat, server := seated(t, doc)

	err := seat.Submitter.Move(context.Background(), board.Hallway(4))
	if !errors.Is(err, ErrNoCurrentLocation) {
		t.Fatalf("error = %v", err)
	}
	if len(server.moves) != 0 {
		t.Errorf("move sent without a known location")
	}
}

func TestSetPhase(t *testing.T) {
	doc := twoPlayerGame()
	doc.phase = "suggest"
	seat, server := seated(t, doc)

	if err := seat.Submitter.SetPhase(context.Background(), "nap"); !errors.Is(err, ErrUnknownPhase) {
		t.Errorf("unknown phase error = %v", err)
	}

	if err := seat.Submitter.SetPhase(context.Background(), PhaseAccuse); err != nil {
		t.Fatal(err)
	}
	want := api.PhaseRequest{Key: "G1", Phase: "accuse", Player: "player1"}
	if len(server.phases) != 1 || server.phases[0] != want {
		t.Errorf("phase requests = %+v", server.phases)
	}
}

func TestAnswerDisplaced(t *testing.T) {
	seat, _ := seated(t, twoPlayerGame())

	if err := seat.Submitter.AnswerDisplaced(ChooseMove); !errors.Is(err, ErrNoDisplacedChoice) {
		t.Errorf("answer without prompt error = %v", err)
	}

	seat, _ = seated(t, displacedDoc(true))

	view, err := seat.View()
	if err != nil {
		t.Fatal(err)
	}
	if view.State != DisplacedChoicePending {
		t.Fatalf("state = %s", view.State)
	}

	if err := seat.Submitter.AnswerDisplaced("stay"); !errors.Is(err, ErrInvalidChoice) {
		t.Errorf("invalid choice error = %v", err)
	}

	if err := seat.Submitter.AnswerDisplaced(ChooseSuggest); err != nil {
		t.Fatal(err)
	}

	view, _ = seat.View()
	if view.State != ActionableSuggest || view.Room != board.Lounge {
		t.Errorf("after answering: %s in %q", view.State, view.Room)
	}

	if err := seat.Submitter.AnswerDisplaced(ChooseMove); !errors.Is(err, ErrNoDisplacedChoice) {
		t.Errorf("second answer error = %v", err)
	}
	if seat.Syncer.RefreshCount() != 0 {
		t.Errorf("answering the prompt contacted the server")
	}
}

func TestNewGameJoinAndClaim(t *testing.T) {
	ctx := context.Background()
	server := &fakeServer{}

	id, err := NewGame(ctx, server, 3)
	if err != nil || id != "G1" {
		t.Fatalf("NewGame = %q, %v", id, err)
	}

	doc := twoPlayerGame()
	doc.characters = map[string]string{}
	doc.usernames = map[string]string{}
	doc.cells = nil
	server.setState(doc.JSON())

	seat := NewSeat(server, alice, &testLogger{})
	if err := seat.Submitter.ClaimUsername(ctx, "Alice"); err != nil {
		t.Fatal(err)
	}
	if seat.Syncer.RefreshCount() != 1 {
		t.Errorf("refresh count = %d, want 1", seat.Syncer.RefreshCount())
	}

	if _, err := seat.Syncer.FetchNow(ctx); err != nil {
		t.Fatal(err)
	}
	if view, _ := seat.View(); view.State != UsernameRequired {
		t.Errorf("view before the username lands = %s", view.State)
	}

	// Characters are not dealt until every seat has a username.
	doc.usernames = map[string]string{"player1": "Alice"}
	server.setState(doc.JSON())
	if _, err := seat.Syncer.FetchNow(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := seat.View(); !errors.Is(err, ErrNoCharacter) {
		t.Errorf("view before characters are dealt: %v", err)
	}

	server.setState(twoPlayerGame().JSON())
	if _, err := seat.Syncer.FetchNow(ctx); err != nil {
		t.Fatal(err)
	}

	view, err := seat.View()
	if err != nil {
		t.Fatal(err)
	}
	if view.State != ActionableMove || view.Character != board.MissScarlet {
		t.Errorf("view after dealing = %s as %q", view.State, view.Character)
	}
}

func TestMoveThenResync(t *testing.T) {
	seat, server := seated(t, twoPlayerGame())
	ctx := context.Background()

	if err := seat.Submitter.Move(ctx, board.Hallway(1)); err != nil {
		t.Fatal(err)
	}

	after := twoPlayerGame()
	after.phase = "accuse"
	after.cells = map[string]any{"1": "Miss Scarlet", "10": "Mr. Green"}
	server.setState(after.JSON())

	if _, err := seat.Syncer.FetchNow(ctx); err != nil {
		t.Fatal(err)
	}

	view, err := seat.View()
	if err != nil {
		t.Fatalf("view after move: %v", err)
	}
	if view.Location == nil || *view.Location != board.Hallway(1) {
		t.Errorf("location after move = %v", view.Location)
	}
}

func TestDisplacedSuggestThenAccuse(t *testing.T) {
	seat, server := seated(t, displacedDoc(true))
	ctx := context.Background()

	if err := seat.Submitter.AnswerDisplaced(ChooseSuggest); err != nil {
		t.Fatal(err)
	}
	if _, err := seat.Submitter.Suggest(ctx, board.ColonelMustard, board.Rope); err != nil {
		t.Fatal(err)
	}

	after := displacedDoc(false)
	after.phase = "accuse"
	server.setState(after.JSON())
	if _, err := seat.Syncer.FetchNow(ctx); err != nil {
		t.Fatal(err)
	}

	view, err := seat.View()
	if err != nil {
		t.Fatal(err)
	}
	if view.State != ActionableAccuse || view.Message != "Do you want to make an accusation?" {
		t.Errorf("after suggesting: %s %q", view.State, view.Message)
	}
}

func TestDisplacedMoveThenFullTurn(t *testing.T) {
	seat, server := seated(t, displacedDoc(true))
	ctx := context.Background()

	if err := seat.Submitter.AnswerDisplaced(ChooseMove); err != nil {
		t.Fatal(err)
	}
	if view, _ := seat.View(); view.State != ActionableMove {
		t.Fatalf("after answering move: %s", view.State)
	}
	if err := seat.Submitter.Move(ctx, board.RoomCell(board.Conservatory)); err != nil {
		t.Fatal(err)
	}

	doc := displacedDoc(false)
	doc.phase = "suggest"
	doc.cells = map[string]any{"conservatory": []string{"Miss Scarlet"}, "10": "Mr. Green"}
	server.setState(doc.JSON())
	if _, err := seat.Syncer.FetchNow(ctx); err != nil {
		t.Fatal(err)
	}
	if view, _ := seat.View(); view.State != ActionableSuggest || view.Room != board.Conservatory {
		t.Fatalf("after moving: %s in %q", view.State, view.Room)
	}

	if _, err := seat.Submitter.Suggest(ctx, board.ColonelMustard, board.Rope); err != nil {
		t.Fatal(err)
	}

	doc.phase = "accuse"
	server.setState(doc.JSON())
	if _, err := seat.Syncer.FetchNow(ctx); err != nil {
		t.Fatal(err)
	}

	view, err := seat.View()
	if err != nil {
		t.Fatal(err)
	}
	if view.State != ActionableAccuse || view.Message == noValidMoves {
		t.Errorf("after a full turn: %s %q", view.State, view.Message)
	}
}
