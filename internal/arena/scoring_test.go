package arena

import (
	"testing"

	"github.com/doctornein/dynasty-tokens/internal/model"
)

func TestScore(t *testing.T) {
	logs := []model.GameLogEntry{
		{Date: "2024-01-02", Pts: 30, Reb: 10, Ast: 5, Stl: 2, Blk: 1},
		{Date: "2024-01-04", Pts: 20, Reb: 8, Ast: 7},
		{Date: "2024-02-01", Pts: 50, Reb: 15, Ast: 12}, // outside every test window
	}

	cases := []struct {
		name       string
		logs       []model.GameLogEntry
		start, end string
		cats       []model.ArenaStatCategory
		want       float64
	}{
		{"empty logs", nil, "2024-01-01", "2024-01-31", []model.ArenaStatCategory{model.CategoryPoints}, 0},
		{"single game pts+reb", logs[:1], "2024-01-01", "2024-01-31", []model.ArenaStatCategory{model.CategoryPoints, model.CategoryRebounds}, 40},
		{"window excludes february", logs, "2024-01-01", "2024-01-31", []model.ArenaStatCategory{model.CategoryPoints}, 50},
		{"inclusive bounds", logs, "2024-01-02", "2024-01-04", []model.ArenaStatCategory{model.CategoryPoints}, 50},
		{"non-overlapping window", logs, "2023-11-01", "2023-11-30", []model.ArenaStatCategory{model.CategoryPoints}, 0},
		{"all categories", logs[:1], "2024-01-01", "2024-01-31", []model.ArenaStatCategory{model.CategoryPoints, model.CategoryRebounds, model.CategoryAssists, model.CategorySteals, model.CategoryBlocks}, 48},
		{"unknown category contributes zero", logs[:1], "2024-01-01", "2024-01-31", []model.ArenaStatCategory{model.CategoryPoints, "fgm"}, 30},
		{"no categories", logs, "2024-01-01", "2024-01-31", nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.logs, tc.start, tc.end, tc.cats); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHasDNP(t *testing.T) {
	cases := []struct {
		name       string
		team       []string
		player     []string
		start, end string
		want       bool
	}{
		{
			"missing one team date",
			[]string{"2024-01-01", "2024-01-03"},
			[]string{"2024-01-01"},
			"2024-01-01", "2024-01-03",
			true,
		},
		{
			"player logged every game",
			[]string{"2024-01-01", "2024-01-03"},
			[]string{"2024-01-01", "2024-01-03"},
			"2024-01-01", "2024-01-03",
			false,
		},
		{
			"missing date outside window",
			[]string{"2024-01-01", "2024-01-09"},
			[]string{"2024-01-01"},
			"2024-01-01", "2024-01-03",
			false,
		},
		{
			"no team games",
			nil,
			[]string{"2024-01-01"},
			"2024-01-01", "2024-01-31",
			false,
		},
		{
			"player never played",
			[]string{"2024-01-02"},
			nil,
			"2024-01-01", "2024-01-03",
			true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasDNP(tc.team, tc.player, tc.start, tc.end); got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}
