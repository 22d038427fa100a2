package services

import (
	"context"
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Plays int `json:"plays"`
	}
	cache.Set(ctx, "stats:user:u1", payload{Plays: 3}, UserStatsTTL)

	var got payload
	if !cache.Get(ctx, "stats:user:u1", &got) {
		t.Fatal("expected hit")
	}
	if got.Plays != 3 {
		t.Fatalf("got %+v", got)
	}
}

func TestCacheMissOnAbsentKey(t *testing.T) {
	cache, _ := newTestCache(t)
	var dest map[string]int
	if cache.Get(context.Background(), "nope", &dest) {
		t.Fatal("expected miss")
	}
}

func TestCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, "rankings:wins:10", []int{1, 2}, RankingsTTL)
	mr.FastForward(RankingsTTL + time.Second)

	var dest []int
	if cache.Get(ctx, "rankings:wins:10", &dest) {
		t.Fatal("expired entry must be a miss")
	}
}

func TestCacheInvalidateByPrefix(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	cache.Set(ctx, RankingsKey("wins", 10), 1, RankingsTTL)
	cache.Set(ctx, RankingsKey("score", 25), 2, RankingsTTL)
	cache.Set(ctx, UserStatsKey("u1"), 3, UserStatsTTL)

	cache.InvalidateByPrefix(ctx, "rankings:*")

	if mr.Exists(RankingsKey("wins", 10)) || mr.Exists(RankingsKey("score", 25)) {
		t.Fatal("ranking keys survived prefix invalidation")
	}
	if !mr.Exists(UserStatsKey("u1")) {
		t.Fatal("unrelated key was invalidated")
	}
}

func TestCacheDisabledAlwaysMisses(t *testing.T) {
	cache := NewCache(nil)
	ctx := context.Background()

	cache.Set(ctx, "k", 1, time.Minute)
	var dest int
	if cache.Get(ctx, "k", &dest) {
		t.Fatal("disabled cache must miss")
	}
	cache.Invalidate(ctx, "k")
	cache.InvalidateByPrefix(ctx, "*")
}

func TestCacheUnreachableDegradesToMiss(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()
	cache.Set(ctx, "k", 1, time.Minute)
	mr.Close()

	var dest int
	if cache.Get(ctx, "k", &dest) {
		t.Fatal("unreachable redis must be a miss, not an error")
	}
	// Writes and invalidations must not panic or fail the caller either.
	cache.Set(ctx, "k", 2, time.Minute)
	cache.Invalidate(ctx, "k")
	cache.InvalidateByPrefix(ctx, "rankings:*")
}

func TestCacheCorruptEntryDropped(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	if err := mr.Set("bad", "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	var dest map[string]int
	if cache.Get(ctx, "bad", &dest) {
		t.Fatal("corrupt entry must be a miss")
	}
	if mr.Exists("bad") {
		t.Fatal("corrupt entry should be deleted")
	}
}

func TestRankingsKeyShape(t *testing.T) {
	if got := RankingsKey("wins", 10); got != "rankings:wins:10" {
		t.Fatalf("key = %q", got)
	}
	if got := UserStatsKey("u1"); got != "stats:user:u1" {
		t.Fatalf("key = %q", got)
	}
}
