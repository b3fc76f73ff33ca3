package providers

import (
	"context"
	"testing"

	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
)

type testProvider struct{}

func (t *testProvider) FetchSchedule(ctx context.Context, date string, tz string) ([]games.Snapshot, error) {
	_ = ctx
	_ = date
	_ = tz
	return nil, nil
}

func (t *testProvider) FetchLiveGame(ctx context.Context, gameID int) (games.Snapshot, error) {
	_ = ctx
	return games.Snapshot{GameID: gameID}, nil
}

func TestGameProviderInterfaceImplemented(t *testing.T) {
	var _ GameProvider = (*testProvider)(nil)
}
