package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/weftui/weft"
	"github.com/weftui/weft/internal/logging"
	"github.com/weftui/weft/pkg/actions"
	"github.com/weftui/weft/pkg/adapters/tui"
	"github.com/weftui/weft/pkg/ids"
	"github.com/weftui/weft/pkg/signals"
)

var countersCmd = &cobra.Command{
	Use:   "counters",
	Short: "A small list-of-counters application",
	Long: `counters runs a terminal application managing a list of named counters.

Keys: up/down select, +/- adjust the selected counter, a adds a counter,
d deletes the selected one, q quits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := buildLogger(cmd)
		if err != nil {
			return err
		}
		themePath, _ := cmd.Flags().GetString("theme")
		opts, err := loadTheme(themePath)
		if err != nil {
			return err
		}
		opts = append(opts,
			tui.WithTitle("counters"),
			tui.WithFooter("up/down select · +/- adjust · a add · d delete · q quit"),
		)

		sys := weft.New(countersController, weft.WithLogger(logger))
		return tui.Run(sys, opts...)
	},
}

func init() {
	rootCmd.AddCommand(countersCmd)
}

// buildLogger translates the --log-level flag into a configured logger.
func buildLogger(cmd *cobra.Command) (*slog.Logger, error) {
	name, _ := cmd.Flags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return logging.New(level), nil
}

type counter struct {
	ID    int
	Count int
}

func countersController(ctx weft.Context) {
	rows := weft.GetStateFunc(ctx, func() []counter {
		return []counter{{ID: 1}, {ID: 2}, {ID: 3}}
	})
	selected := weft.GetState(ctx, 0)
	nextID := weft.GetState(ctx, 4)

	// Selection clamps rather than wrapping; an empty list pins it to 0.
	clamp := func(i int) int {
		if n := len(rows.Read()); i >= n {
			i = n - 1
		}
		if i < 0 {
			i = 0
		}
		return i
	}

	selectedCount := signals.Field(
		signals.Index(rows, clamp(selected.Read())),
		"Count",
		func(c *counter) *int { return &c.Count },
	)

	weft.OnEvent(ctx, func(e tui.KeyEvent) {
		switch e.Key {
		case "up":
			selected.Write(clamp(selected.Read() - 1))
		case "down":
			selected.Write(clamp(selected.Read() + 1))
		case "+", "=", "right":
			if signals.HasValue(selectedCount) {
				actions.Perform(actions.Assign(selectedCount, selectedCount.Read()+1))
			}
		case "-", "left":
			if signals.HasValue(selectedCount) {
				actions.Perform(actions.Assign(selectedCount, selectedCount.Read()-1))
			}
		case "a":
			actions.Perform(actions.Seq(
				actions.Assign(rows, append(rows.Read(), counter{ID: nextID.Read()})),
				actions.Assign(nextID, nextID.Read()+1),
			))
		case "d":
			if list := rows.Read(); len(list) > 0 {
				i := clamp(selected.Read())
				trimmed := make([]counter, 0, len(list)-1)
				trimmed = append(trimmed, list[:i]...)
				trimmed = append(trimmed, list[i+1:]...)
				actions.Perform(actions.Assign(rows, trimmed))
				selected.Write(clamp(i))
			}
		}
	})

	weft.OnEvent(ctx, func(frame *tui.RenderEvent) {
		if len(rows.Read()) == 0 {
			frame.Print("(no counters; press a to add one)")
		}
	})

	weft.ForEach(ctx, rows.Read(),
		func(_ int, c counter) ids.ID { return ids.NewValue(c.ID) },
		func(ctx weft.Context, i int, c counter) {
			// Per-row state survives reordering and deletion of siblings.
			peak := weft.GetState(ctx, 0)
			if c.Count > peak.Read() {
				weft.OnRefresh(ctx, func() { peak.Write(c.Count) })
			}
			weft.OnEvent(ctx, func(frame *tui.RenderEvent) {
				cursor := "  "
				if i == clamp(selected.Read()) {
					cursor = "> "
				}
				frame.Print(fmt.Sprintf("%scounter %d: %s (peak %s)",
					cursor, c.ID, weft.ToString(c.Count), weft.ToString(peak.Read())))
			})
		})
}
