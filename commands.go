/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/Seednode/clueless/api"
	"github.com/Seednode/clueless/board"
	"github.com/Seednode/clueless/game"
	"github.com/Seednode/clueless/session"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const tailLength = 5

var errNotJoined = errors.New("join a game and choose a player first (clueless join ID --player SLOT)")

// app is what every subcommand needs: a server client and the session file.
type app struct {
	cfg    *Config
	log    logger
	client *api.Client
	store  session.Store
}

func newApp(cfg *Config) (*app, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	l := logger{cfg: cfg}

	client, err := api.NewClient(cfg.server, cfg.timeout, l)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		log:    l,
		client: client,
		store:  session.NewFileStore(afero.NewOsFs(), cfg.sessionFile, l),
	}, nil
}

func (a *app) identity() session.Identity {
	return session.Load(a.store, a.log)
}

// seat loads the stored identity and fetches the game once.
func (a *app) seat(ctx context.Context) (*game.Seat, error) {
	id := a.identity()
	if !id.Seated() {
		return nil, errNotJoined
	}

	seat := game.NewSeat(a.client, id, a.log)
	if _, err := seat.Syncer.FetchNow(ctx); err != nil {
		return nil, err
	}

	return seat, nil
}

// intentCmd builds a subcommand that acts from the stored seat.
func intentCmd(cfg *Config, use, short string, args cobra.PositionalArgs, run func(ctx context.Context, w io.Writer, seat *game.Seat, args []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cfg)
			if err != nil {
				return err
			}

			seat, err := a.seat(cmd.Context())
			if err != nil {
				return err
			}

			return run(cmd.Context(), cmd.OutOrStdout(), seat, args)
		},
	}
}

func newGameCmd(cfg *Config) *cobra.Command {
	var players int

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game and remember it.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cfg)
			if err != nil {
				return err
			}

			id, err := game.NewGame(cmd.Context(), a.client, players)
			if err != nil {
				return err
			}

			session.SaveGame(a.store, a.log, id)
			session.SaveSlot(a.store, a.log, "")

			w := cmd.OutOrStdout()

			fmt.Fprintf(w, "Created game %s for %d players\n", id, players)

			qr, err := terminalQR(id)
			if err != nil {
				logf(cfg, "GAMES: Unable to draw QR code for %s: %v", id, err)
			} else {
				fmt.Fprint(w, qr)
			}

			fmt.Fprintf(w, "Choose your seat with: clueless join %s --player player1\n", id)

			return nil
		},
	}

	cmd.Flags().IntVarP(&players, "players", "n", 3, "number of players, between 2 and 6 (env: CLUELESS_PLAYERS)")

	return cmd
}

func joinCmd(cfg *Config) *cobra.Command {
	var player string

	cmd := &cobra.Command{
		Use:   "join ID",
		Short: "Join an existing game, and optionally choose a seat.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cfg)
			if err != nil {
				return err
			}

			gameID, snap, seats, err := game.Join(cmd.Context(), a.client, args[0])
			if err != nil {
				return err
			}

			session.SaveGame(a.store, a.log, gameID)

			w := cmd.OutOrStdout()

			if player == "" {
				session.SaveSlot(a.store, a.log, "")

				fmt.Fprintf(w, "Joined game %s\n", gameID)
				if len(seats) == 0 {
					fmt.Fprintln(w, "Characters have not been dealt yet; pick a seat with --player player1..player6")
					return nil
				}
				for _, slot := range seats {
					character, _ := snap.Character(slot)
					name, ok := snap.Username(slot)
					if !ok {
						name = "no username"
					}
					fmt.Fprintf(w, "  %s  %-16s (%s)\n", slot, character, name)
				}
				return nil
			}

			slot, err := board.ParseSlot(player)
			if err != nil {
				return err
			}
			if len(seats) > 0 && !slices.Contains(seats, slot) {
				return fmt.Errorf("%w: %s is not playing in game %s", board.ErrInvalidSlot, slot, gameID)
			}

			session.SaveSlot(a.store, a.log, slot)

			fmt.Fprintf(w, "Joined game %s as %s\n", gameID, slot)

			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", "", "seat to play, player1 to player6 (env: CLUELESS_PLAYER)")

	return cmd
}

func usernameCmd(cfg *Config) *cobra.Command {
	return intentCmd(cfg, "username NAME", "Choose the name other players see.", cobra.ExactArgs(1),
		func(ctx context.Context, w io.Writer, seat *game.Seat, args []string) error {
			if err := seat.Submitter.ClaimUsername(ctx, args[0]); err != nil {
				return err
			}

			fmt.Fprintf(w, "You are now %s\n", strings.TrimSpace(args[0]))

			return nil
		})
}

func statusCmd(cfg *Config) *cobra.Command {
	return intentCmd(cfg, "status", "Show whose turn it is and what you can do.", cobra.ExactArgs(0),
		func(_ context.Context, w io.Writer, seat *game.Seat, _ []string) error {
			return printStatus(w, seat)
		})
}

func moveCmd(cfg *Config) *cobra.Command {
	return intentCmd(cfg, "move CELL", "Move to an adjacent room or hallway (0-11).", cobra.ExactArgs(1),
		func(ctx context.Context, w io.Writer, seat *game.Seat, args []string) error {
			dest, err := board.ParseCell(args[0])
			if err != nil {
				return err
			}

			if err := seat.Submitter.Move(ctx, dest); err != nil {
				return err
			}

			fmt.Fprintf(w, "Moved to %s\n", dest)

			return nil
		})
}

func suggestCmd(cfg *Config) *cobra.Command {
	return intentCmd(cfg, "suggest PERSON WEAPON", "Suggest a suspect and weapon in your current room.", cobra.ExactArgs(2),
		func(ctx context.Context, w io.Writer, seat *game.Seat, args []string) error {
			person, err := board.ParseCharacter(args[0])
			if err != nil {
				return err
			}
			weapon, err := board.ParseWeapon(args[1])
			if err != nil {
				return err
			}

			result, err := seat.Submitter.Suggest(ctx, person, weapon)
			if err != nil {
				return err
			}

			fmt.Fprintln(w, result.Message())

			return nil
		})
}

func accuseCmd(cfg *Config) *cobra.Command {
	var decline bool

	cmd := intentCmd(cfg, "accuse PERSON WEAPON ROOM", "Make an accusation, or pass with --decline.", cobra.RangeArgs(0, 3),
		func(ctx context.Context, w io.Writer, seat *game.Seat, args []string) error {
			if decline {
				if len(args) != 0 {
					return errors.New("--decline takes no arguments")
				}
				if err := seat.Submitter.Decline(ctx); err != nil {
					return err
				}
				fmt.Fprintln(w, "You chose not to accuse.")
				return nil
			}

			if len(args) != 3 {
				return errors.New("an accusation needs a person, a weapon and a room")
			}

			accusation, err := parseAccusation(args[0], args[1], args[2])
			if err != nil {
				return err
			}

			if err := seat.Submitter.Accuse(ctx, accusation); err != nil {
				return err
			}

			fmt.Fprintf(w, "You accused %s with the %s in the %s.\n", accusation.Person, accusation.Weapon, accusation.Room)

			return nil
		})

	cmd.Flags().BoolVar(&decline, "decline", false, "pass on accusing this turn (env: CLUELESS_DECLINE)")

	return cmd
}

func parseAccusation(person, weapon, room string) (*game.Accusation, error) {
	p, err := board.ParseCharacter(person)
	if err != nil {
		return nil, err
	}
	wp, err := board.ParseWeapon(weapon)
	if err != nil {
		return nil, err
	}
	r, err := board.ParseRoom(room)
	if err != nil {
		return nil, err
	}

	return &game.Accusation{Person: p, Weapon: wp, Room: r}, nil
}

func chatCmd(cfg *Config) *cobra.Command {
	return intentCmd(cfg, "chat MESSAGE...", "Send a message to the other players.", cobra.MinimumNArgs(1),
		func(ctx context.Context, _ io.Writer, seat *game.Seat, args []string) error {
			return seat.Submitter.Chat(ctx, strings.Join(args, " "))
		})
}

func phaseCmd(cfg *Config) *cobra.Command {
	return intentCmd(cfg, "phase PHASE", "Skip ahead to the move, suggest or accuse step.", cobra.ExactArgs(1),
		func(ctx context.Context, w io.Writer, seat *game.Seat, args []string) error {
			phase, err := game.ParsePhase(args[0])
			if err != nil {
				return err
			}

			if err := seat.Submitter.SetPhase(ctx, phase); err != nil {
				return err
			}

			fmt.Fprintf(w, "Phase set to %s\n", phase)

			return nil
		})
}

func printStatus(w io.Writer, seat *game.Seat) error {
	snap := seat.Syncer.Snapshot()

	view, err := seat.View()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Game %s, playing as %s\n", seat.Identity.GameID, seat.Identity.Slot)
	if view.Character != "" {
		fmt.Fprintf(w, "Character: %s\n", view.Character)
	}
	if view.Location != nil {
		fmt.Fprintf(w, "Location:  %s\n", view.Location)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, view.Message)

	switch view.State {
	case game.ActionableMove:
		cells := make([]string, len(view.Destinations))
		for i, c := range view.Destinations {
			cells[i] = c.String()
		}
		fmt.Fprintf(w, "You can move to: %s\n", strings.Join(cells, ", "))
	case game.DisplacedChoicePending:
		fmt.Fprintln(w, "Run clueless suggest PERSON WEAPON to stay, or clueless move CELL to leave.")
	}

	if hand := snap.Hands[seat.Identity.Slot]; len(hand) > 0 {
		fmt.Fprintf(w, "\nYour cards: %s\n", strings.Join(hand, ", "))
	}

	printTail(w, "Log", snap.Logs)
	printTail(w, "Chat", snap.Chat)

	return nil
}

func printTail(w io.Writer, title string, lines []string) {
	if len(lines) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s:\n", title)
	for _, line := range lines[max(0, len(lines)-tailLength):] {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
