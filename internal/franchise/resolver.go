package franchise

import (
	"context"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/scorigami-service/internal/domain/franchises"
	"github.com/preston-bernstein/scorigami-service/internal/logging"
)

// Resolver maps provider team ids to canonical franchises.
// It is immutable after construction and safe for concurrent use.
type Resolver struct {
	all          []franchises.Franchise
	byProviderID map[int]franchises.Franchise
	byName       map[string]franchises.Franchise
	byCode       map[string]franchises.Franchise
	byLineage    map[string]franchises.Franchise
	logger       *slog.Logger
}

// NewResolver indexes the given franchise table.
func NewResolver(table []franchises.Franchise, logger *slog.Logger) *Resolver {
	r := &Resolver{
		all:          make([]franchises.Franchise, 0, len(table)),
		byProviderID: make(map[int]franchises.Franchise),
		byName:       make(map[string]franchises.Franchise),
		byCode:       make(map[string]franchises.Franchise),
		byLineage:    make(map[string]franchises.Franchise),
		logger:       logger,
	}
	for _, f := range table {
		f.Known = true
		r.all = append(r.all, f)
		for _, id := range f.ProviderIDs {
			r.byProviderID[id] = f
		}
		r.byName[strings.ToLower(f.Name)] = f
		r.byCode[strings.ToUpper(f.Code)] = f
		for _, code := range f.Lineage {
			r.byLineage[strings.ToUpper(code)] = f
		}
	}
	return r
}

// Resolve returns the franchise a provider team id maps to.
// Unknown ids resolve to a fallback franchise with no lineage and a warning; this never fails.
func (r *Resolver) Resolve(ctx context.Context, providerTeamID int, displayName string) franchises.Franchise {
	if f, ok := r.byProviderID[providerTeamID]; ok {
		return f
	}
	logging.Warn(logging.FromContext(ctx, r.logger), "no franchise mapping for provider team",
		slog.Int(logging.FieldTeamID, providerTeamID),
		slog.String(logging.FieldTeam, displayName),
	)
	return franchises.Fallback(providerTeamID, displayName)
}

// ByName looks a franchise up by its full display name, case-insensitively.
func (r *Resolver) ByName(name string) (franchises.Franchise, bool) {
	f, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// ByCode looks a franchise up by its canonical code.
func (r *Resolver) ByCode(code string) (franchises.Franchise, bool) {
	f, ok := r.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return f, ok
}

// ByLineageCode finds the franchise that used a historical team code.
func (r *Resolver) ByLineageCode(code string) (franchises.Franchise, bool) {
	f, ok := r.byLineage[strings.ToUpper(strings.TrimSpace(code))]
	return f, ok
}

// All returns the franchise table in load order.
func (r *Resolver) All() []franchises.Franchise {
	out := make([]franchises.Franchise, len(r.all))
	copy(out, r.all)
	return out
}
