package store

import (
	"context"
	"testing"

	domaingames "github.com/preston-bernstein/season-weeks-service/internal/domain/games"
)

func TestMemoryStoreSetAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	games := []domaingames.Game{
		{ID: 1, Week: 1, Network: "NBC"},
		{ID: 2, Week: 1, Network: "CBS"},
	}

	if err := s.SetGames(ctx, 7, games); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list, _ := s.ListGames(ctx, 7)
	if got := len(list); got != 2 {
		t.Fatalf("expected 2 games, got %d", got)
	}

	game, ok, _ := s.GetGame(ctx, 1)
	if !ok {
		t.Fatalf("expected to find game with id 1")
	}
	if game.Network != "NBC" || game.SeasonID != 7 {
		t.Fatalf("unexpected game %+v", game)
	}
}

func TestMemoryStoreGetNotFound(t *testing.T) {
	s := NewMemoryStore()
	if _, ok, err := s.GetGame(context.Background(), 99); ok || err != nil {
		t.Fatalf("expected missing id to return false without error, got ok=%v err=%v", ok, err)
	}
}

func TestMemoryStoreSetReplacesSeasonOnly(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.SetGames(ctx, 1, []domaingames.Game{{ID: 10}})
	_ = s.SetGames(ctx, 2, []domaingames.Game{{ID: 20}})

	_ = s.SetGames(ctx, 1, []domaingames.Game{{ID: 11}})

	if _, ok, _ := s.GetGame(ctx, 10); ok {
		t.Fatalf("expected old game to be removed after replace")
	}
	if _, ok, _ := s.GetGame(ctx, 11); !ok {
		t.Fatalf("expected new game to be present")
	}
	if _, ok, _ := s.GetGame(ctx, 20); !ok {
		t.Fatalf("expected other season untouched")
	}
	seasons, _ := s.Seasons(ctx)
	if len(seasons) != 2 || seasons[0] != 1 || seasons[1] != 2 {
		t.Fatalf("unexpected seasons %v", seasons)
	}
}

func TestMemoryStoreListReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	score := 21
	_ = s.SetGames(ctx, 1, []domaingames.Game{{ID: 1, Network: "original", HomeScore: &score}})

	list, _ := s.ListGames(ctx, 1)
	if len(list) != 1 {
		t.Fatalf("expected 1 game, got %d", len(list))
	}

	list[0].Network = "mutated"
	*list[0].HomeScore = 0

	game, _, _ := s.GetGame(ctx, 1)
	if game.Network != "original" || *game.HomeScore != 21 {
		t.Fatalf("expected store to remain unchanged, got %+v", game)
	}
}

func TestMemoryStoreOrdersByWeekThenStart(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.SetGames(ctx, 1, []domaingames.Game{
		{ID: 3, Week: 2, StartTime: "2025-09-11T20:15:00Z"},
		{ID: 2, Week: 1, StartTime: "2025-09-07T17:00:00Z"},
		{ID: 1, Week: 1, StartTime: "2025-09-04T20:20:00Z"},
	})

	list, _ := s.ListGames(ctx, 1)
	for i, want := range []int64{1, 2, 3} {
		if list[i].ID != want {
			t.Fatalf("expected id %d at %d, got %d", want, i, list[i].ID)
		}
	}
}

func TestMemoryStoreUnknownSeasonIsEmpty(t *testing.T) {
	list, err := NewMemoryStore().ListGames(context.Background(), 404)
	if err != nil || list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %v err=%v", list, err)
	}
}
