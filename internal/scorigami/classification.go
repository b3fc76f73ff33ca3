package scorigami

import (
	"github.com/preston-bernstein/scorigami-service/internal/domain/franchises"
	"github.com/preston-bernstein/scorigami-service/internal/domain/games"
)

// Kind is the outcome of classifying a final score.
type Kind string

const (
	KindTie             Kind = "tie"
	KindTrueUnique      Kind = "true_unique"
	KindFranchiseUnique Kind = "franchise_unique"
	KindNotUnique       Kind = "not_unique"
	KindNoHistory       Kind = "no_history"
)

// FranchiseHit is a franchise for which the final score is new.
type FranchiseHit struct {
	Franchise franchises.Franchise `json:"franchise"`
	Key       games.OrientedKey    `json:"key"`
	// Ordinal is the franchise's distinct-score count including this one; 0 when the count failed.
	Ordinal int `json:"ordinal"`
}

// Classification is everything the composer needs to describe a final.
type Classification struct {
	Kind       Kind                   `json:"kind"`
	Key        games.ScoreKey         `json:"key"`
	Home       franchises.Franchise   `json:"home"`
	Away       franchises.Franchise   `json:"away"`
	Ordinal    int                    `json:"ordinal,omitempty"`
	Franchises []FranchiseHit         `json:"franchises,omitempty"`
	History    games.HistoricalRecord `json:"history"`
	HasHistory bool                   `json:"hasHistory"`
	LowValue   bool                   `json:"lowValue"`
}
