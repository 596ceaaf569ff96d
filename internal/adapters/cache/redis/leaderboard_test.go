package redis

import (
	"context"
	"errors"
	"sort"
	"testing"

	"clan-points-tracker/internal/core/domain"

	"github.com/redis/go-redis/v9"
)

// fakeClient is an in-memory sorted set and hash.
type fakeClient struct {
	scores   map[string]float64
	names    map[string]string
	zaddErr  error
	hmgetErr error
	closed   bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{scores: map[string]float64{}, names: map[string]string{}}
}

func (f *fakeClient) ZAdd(ctx context.Context, key string, members ...redis.Z) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.zaddErr != nil {
		cmd.SetErr(f.zaddErr)
		return cmd
	}
	for _, m := range members {
		f.scores[m.Member.(string)] = m.Score
	}
	cmd.SetVal(int64(len(members)))
	return cmd
}

func (f *fakeClient) ZRevRangeWithScores(ctx context.Context, key string, start, stop int64) *redis.ZSliceCmd {
	all := make([]redis.Z, 0, len(f.scores))
	for member, score := range f.scores {
		all = append(all, redis.Z{Member: member, Score: score})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		return all[i].Member.(string) < all[j].Member.(string)
	})
	if stop >= int64(len(all)) {
		stop = int64(len(all)) - 1
	}

	cmd := redis.NewZSliceCmd(ctx)
	if start <= stop {
		cmd.SetVal(all[start : stop+1])
	}
	return cmd
}

func (f *fakeClient) HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	for i := 0; i+1 < len(values); i += 2 {
		f.names[values[i].(string)] = values[i+1].(string)
	}
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(int64(len(values) / 2))
	return cmd
}

func (f *fakeClient) HMGet(ctx context.Context, key string, fields ...string) *redis.SliceCmd {
	cmd := redis.NewSliceCmd(ctx)
	if f.hmgetErr != nil {
		cmd.SetErr(f.hmgetErr)
		return cmd
	}
	values := make([]interface{}, len(fields))
	for i, field := range fields {
		if name, ok := f.names[field]; ok {
			values[i] = name
		}
	}
	cmd.SetVal(values)
	return cmd
}

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}

func TestLeaderboard_RecordAndTop(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	board := &Leaderboard{client: client}

	entries := []domain.LeaderboardEntry{
		{ExternalID: "u1", DisplayName: "Zezima", Value: 500},
		{ExternalID: "u2", DisplayName: "Lynx Titan", Value: 900},
		{ExternalID: "u3", Value: 100},
	}
	for _, e := range entries {
		if err := board.Record(ctx, e); err != nil {
			t.Fatalf("Record(%s): %v", e.ExternalID, err)
		}
	}

	// A later record replaces the score.
	if err := board.Record(ctx, domain.LeaderboardEntry{ExternalID: "u1", Value: 950}); err != nil {
		t.Fatalf("Record: %v", err)
	}

	top, err := board.Top(ctx, 2)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(top))
	}
	if top[0].ExternalID != "u1" || top[0].Value != 950 || top[0].DisplayName != "Zezima" {
		t.Errorf("unexpected first entry: %+v", top[0])
	}
	if top[1].ExternalID != "u2" || top[1].DisplayName != "Lynx Titan" {
		t.Errorf("unexpected second entry: %+v", top[1])
	}

	all, err := board.Top(ctx, 10)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if len(all) != 3 || all[2].DisplayName != "u3" {
		t.Errorf("expected nameless entry to fall back to its id, got %+v", all)
	}
}

func TestLeaderboard_Top_Empty(t *testing.T) {
	board := &Leaderboard{client: newFakeClient()}

	for _, limit := range []int{0, 5} {
		entries, err := board.Top(context.Background(), limit)
		if err != nil {
			t.Fatalf("Top(%d): %v", limit, err)
		}
		if len(entries) != 0 {
			t.Errorf("Top(%d) expected no entries, got %v", limit, entries)
		}
	}
}

func TestLeaderboard_Top_NamesUnavailable(t *testing.T) {
	client := newFakeClient()
	client.hmgetErr = errors.New("timeout")
	board := &Leaderboard{client: client}
	board.Record(context.Background(), domain.LeaderboardEntry{ExternalID: "u1", DisplayName: "Zezima", Value: 1})

	entries, err := board.Top(context.Background(), 1)
	if err != nil {
		t.Fatalf("Top: %v", err)
	}
	if entries[0].DisplayName != "u1" {
		t.Errorf("expected id as display name, got %q", entries[0].DisplayName)
	}
}

func TestLeaderboard_RecordError(t *testing.T) {
	client := newFakeClient()
	client.zaddErr = errors.New("READONLY")
	board := &Leaderboard{client: client}

	if err := board.Record(context.Background(), domain.LeaderboardEntry{ExternalID: "u1"}); err == nil {
		t.Fatal("expected error")
	}
	if err := board.Seed(context.Background(), []domain.LeaderboardEntry{{ExternalID: "u1"}}); err == nil {
		t.Fatal("expected seed to surface record error")
	}
}

func TestLeaderboard_SeedAndClose(t *testing.T) {
	client := newFakeClient()
	board := &Leaderboard{client: client}

	err := board.Seed(context.Background(), []domain.LeaderboardEntry{
		{ExternalID: "a", DisplayName: "A", Value: 3},
		{ExternalID: "b", DisplayName: "B", Value: 7},
	})
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if client.scores["b"] != 7 || client.names["a"] != "A" {
		t.Errorf("unexpected state: %v %v", client.scores, client.names)
	}

	board.Close()
	if !client.closed {
		t.Error("expected client to be closed")
	}
}
