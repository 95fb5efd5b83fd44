package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"rinklog/pkg/config"
	"rinklog/pkg/model"

	"github.com/spf13/cobra"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Print the current snapshot as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, err := openRepository(cmd.Context())
		if err != nil {
			return err
		}
		snap, err := repo.Load(cmd.Context())
		if err != nil {
			return err
		}
		snap.Normalize()
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	},
}

var saveFile string

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Replace all three tables with a JSON snapshot",
	Long: `Read a snapshot ({"players":[],"games":[],"events":[]}) from --file, or
stdin when no file is given, and rewrite the roster, games and events tables
with it. Tables are written independently; a failure can leave some updated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if saveFile != "" && saveFile != "-" {
			f, err := os.Open(saveFile)
			if err != nil {
				return err
			}
			defer f.Close()
			r = f
		}
		var snap model.Snapshot
		if err := json.NewDecoder(r).Decode(&snap); err != nil {
			return fmt.Errorf("decode snapshot: %w", err)
		}
		snap.Normalize()

		repo, err := openRepository(cmd.Context())
		if err != nil {
			return err
		}
		if err := repo.Save(cmd.Context(), snap); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %d players, %d games, %d events\n",
			len(snap.Players), len(snap.Games), len(snap.Events))
		return nil
	},
}

var (
	playerNumber   int
	playerName     string
	playerPosition string
)

var addPlayerCmd = &cobra.Command{
	Use:   "add-player",
	Short: "Add a player to the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := model.NewPlayer(playerNumber, playerName, playerPosition)
		if err != nil {
			return err
		}
		return update(cmd, func(snap *model.Snapshot) {
			snap.Players = append(snap.Players, p)
		}, p.ID)
	},
}

var (
	gameOpponent string
	gameDate     string
	gameStatus   string
)

var addGameCmd = &cobra.Command{
	Use:   "add-game",
	Short: "Add a game to the schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		date := time.Now()
		if gameDate != "" {
			d, err := time.Parse(time.RFC3339, gameDate)
			if err != nil {
				return fmt.Errorf("--date: %w", err)
			}
			date = d
		}
		g, err := model.NewGame(gameOpponent, date, model.GameStatus(gameStatus))
		if err != nil {
			return err
		}
		return update(cmd, func(snap *model.Snapshot) {
			snap.Games = append(snap.Games, g)
		}, g.ID)
	},
}

var (
	eventFields   model.GameEvent
	eventType     string
	eventStrength string
	eventSeverity string
	eventMinutes  int
)

var addEventCmd = &cobra.Command{
	Use:   "add-event",
	Short: "Log a goal or penalty in a game",
	RunE: func(cmd *cobra.Command, args []string) error {
		e := eventFields
		e.Type = model.EventType(eventType)
		e.Strength = model.Strength(eventStrength)
		e.PenaltySeverity = model.PenaltySeverity(eventSeverity)
		if cmd.Flags().Changed("minutes") {
			e.PenaltyMinutes = model.IntPtr(eventMinutes)
		}
		e, err := model.NewEvent(e, time.Now())
		if err != nil {
			return err
		}
		return update(cmd, func(snap *model.Snapshot) {
			snap.Events = append(snap.Events, e)
		}, e.ID)
	},
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Write a config file with default settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configFile); err == nil {
			return fmt.Errorf("%s already exists", configFile)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if err := config.Default().Save(configFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", configFile)
		return nil
	},
}

// update loads the snapshot, applies change and saves it back.
func update(cmd *cobra.Command, change func(*model.Snapshot), id string) error {
	repo, err := openRepository(cmd.Context())
	if err != nil {
		return err
	}
	snap, err := repo.Load(cmd.Context())
	if err != nil {
		return err
	}
	change(snap)
	if err := repo.Save(cmd.Context(), *snap); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

func init() {
	saveCmd.Flags().StringVarP(&saveFile, "file", "f", "", "Snapshot JSON file (default stdin)")

	addPlayerCmd.Flags().IntVar(&playerNumber, "number", 0, "Jersey number")
	addPlayerCmd.Flags().StringVar(&playerName, "name", "", "Player name (required)")
	addPlayerCmd.Flags().StringVar(&playerPosition, "position", "", "Position, e.g. C, LW, D")
	_ = addPlayerCmd.MarkFlagRequired("name")

	addGameCmd.Flags().StringVar(&gameOpponent, "opponent", "", "Opponent name (required)")
	addGameCmd.Flags().StringVar(&gameDate, "date", "", "Game date, RFC 3339 (default now)")
	addGameCmd.Flags().StringVar(&gameStatus, "status", string(model.GameScheduled), "live, final or scheduled")
	_ = addGameCmd.MarkFlagRequired("opponent")

	f := addEventCmd.Flags()
	f.StringVar(&eventFields.GameID, "game", "", "Game id (required)")
	f.StringVar(&eventType, "type", string(model.EventGoalFor), "goalFor, goalAgainst or penalty")
	f.StringVar(&eventStrength, "strength", string(model.StrengthEven), "EVEN, PP or SH")
	f.IntVar(&eventFields.Period, "period", 1, "Period number")
	f.StringVar(&eventFields.Clock, "clock", "", "Game clock, e.g. 12:34")
	f.StringVar(&eventFields.GoalPlayerID, "goal", "", "Scoring player id")
	f.StringSliceVar(&eventFields.AssistIDs, "assists", nil, "Assisting player ids")
	f.StringSliceVar(&eventFields.PlusPlayerIDs, "plus", nil, "Player ids on ice for a plus")
	f.StringSliceVar(&eventFields.MinusPlayerIDs, "minus", nil, "Player ids on ice for a minus")
	f.StringVar(&eventFields.PenaltyPlayerID, "penalty-player", "", "Penalised player id")
	f.StringVar(&eventFields.PenaltyInfraction, "infraction", "", "Penalty infraction")
	f.StringVar(&eventSeverity, "severity", "", "Minor, Major or Misconduct")
	f.IntVar(&eventMinutes, "minutes", 0, "Penalty minutes")
	f.StringVar(&eventFields.Notes, "notes", "", "Free-form notes")
	_ = addEventCmd.MarkFlagRequired("game")
}
