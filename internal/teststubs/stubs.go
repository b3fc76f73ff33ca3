package teststubs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
)

// StubProvider is a test double for providers.GameProvider.
type StubProvider struct {
	Games     []games.Snapshot
	Live      map[int]games.Snapshot
	Err       error
	LiveErr   error
	Calls     atomic.Int32
	LiveCalls atomic.Int32
	Notify    chan struct{}
}

// FetchSchedule returns configured games and error while tracking calls.
func (s *StubProvider) FetchSchedule(ctx context.Context, date string, tz string) ([]games.Snapshot, error) {
	_ = ctx
	_ = date
	_ = tz
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Games, s.Err
}

// FetchLiveGame returns the configured live view for the game, or an error when none is set.
func (s *StubProvider) FetchLiveGame(ctx context.Context, gameID int) (games.Snapshot, error) {
	_ = ctx
	s.LiveCalls.Add(1)
	if s.LiveErr != nil {
		return games.Snapshot{}, s.LiveErr
	}
	snap, ok := s.Live[gameID]
	if !ok {
		return games.Snapshot{}, errors.New("live game not found")
	}
	return snap, nil
}

// StubPublisher is a test double for social.Publisher.
// Errs are returned in order, one per call; once exhausted calls succeed.
type StubPublisher struct {
	mu     sync.Mutex
	Errs   []error
	Posted []string
	Calls  int
}

// Post records the text when the call succeeds.
func (p *StubPublisher) Post(ctx context.Context, text string) error {
	_ = ctx
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Calls++
	if len(p.Errs) > 0 {
		err := p.Errs[0]
		p.Errs = p.Errs[1:]
		if err != nil {
			return err
		}
	}
	p.Posted = append(p.Posted, text)
	return nil
}

// PostedCount returns how many posts went through.
func (p *StubPublisher) PostedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Posted)
}
