// Package engine evaluates batch actions against a catalog: commands mutate
// user state, queries rank catalog entities and recommendations pick unseen
// shows for a user.
package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Clark-Hu/catalog-engine/internal/catalog"
	"github.com/Clark-Hu/catalog-engine/internal/domain"
	"github.com/Clark-Hu/catalog-engine/internal/metrics"
)

const invalidActionMessage = "Invalid action!"

// Result is the outcome of one action. Err is nil on success; Message is
// always set.
type Result struct {
	ActionID  int
	Operation domain.Operation
	Message   string
	Err       error
}

type handlerFunc func(domain.Action) (string, error)

// Engine evaluates actions sequentially against one catalog it owns for the
// duration of a batch.
type Engine struct {
	catalog  *catalog.Catalog
	logger   zerolog.Logger
	handlers map[domain.Operation]handlerFunc
}

// New wires every operation to its handler.
func New(cat *catalog.Catalog, logger zerolog.Logger) *Engine {
	e := &Engine{catalog: cat, logger: logger}
	e.handlers = map[domain.Operation]handlerFunc{
		domain.OpView:                   e.view,
		domain.OpFavorite:               e.favorite,
		domain.OpRating:                 e.rate,
		domain.OpQueryUsers:             e.queryUsers,
		domain.OpQueryActorsAverage:     e.queryActorsAverage,
		domain.OpQueryActorsAwards:      e.queryActorsAwards,
		domain.OpQueryActorsDescription: e.queryActorsDescription,
		domain.OpQueryShowsLongest:      e.queryShowsLongest,
		domain.OpQueryShowsRatings:      e.queryShowsRatings,
		domain.OpQueryShowsFavorite:     e.queryShowsFavorite,
		domain.OpQueryShowsMostViewed:   e.queryShowsMostViewed,
		domain.OpRecommendStandard:      e.recommendStandard,
		domain.OpRecommendBestUnseen:    e.recommendBestUnseen,
		domain.OpRecommendSearch:        e.recommendSearch,
		domain.OpRecommendFavorite:      e.recommendFavorite,
		domain.OpRecommendPopular:       e.recommendPopular,
	}
	return e
}

// Run evaluates actions in order. Every action yields exactly one result and
// observes the mutations of all actions before it.
func (e *Engine) Run(actions []domain.Action) []Result {
	start := time.Now()
	results := make([]Result, 0, len(actions))
	failures := 0
	for _, a := range actions {
		res := e.Evaluate(a)
		if res.Err != nil {
			failures++
		}
		results = append(results, res)
	}
	metrics.ObserveBatch(len(actions), time.Since(start))
	e.logger.Info().
		Int("actions", len(actions)).
		Int("failures", failures).
		Dur("elapsed", time.Since(start)).
		Msg("batch evaluated")
	return results
}

// Evaluate runs a single action.
func (e *Engine) Evaluate(a domain.Action) Result {
	res := Result{ActionID: a.ID, Operation: a.Operation}

	handler, ok := e.handlers[a.Operation]
	if !ok {
		res.Err = fmt.Errorf("%w: %s/%s", ErrUnsupportedAction, a.Category, a.Type)
	} else {
		res.Message, res.Err = handler(a)
	}
	if res.Err != nil {
		res.Message = failureMessage(a, res.Err)
	}

	metrics.ObserveAction(a.Operation.String(), outcome(res.Err))
	e.logger.Debug().
		Int("action_id", a.ID).
		Str("operation", a.Operation.String()).
		Str("username", a.Username).
		Str("outcome", outcome(res.Err)).
		Msg(res.Message)
	return res
}

// Messages extracts the result strings in order.
func Messages(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Message
	}
	return out
}

var recommendationNames = map[domain.Operation]string{
	domain.OpRecommendStandard:   "StandardRecommendation",
	domain.OpRecommendBestUnseen: "BestRatedUnseenRecommendation",
	domain.OpRecommendSearch:     "SearchRecommendation",
	domain.OpRecommendFavorite:   "FavoriteRecommendation",
	domain.OpRecommendPopular:    "PopularRecommendation",
}

func failureMessage(a domain.Action, err error) string {
	if errors.Is(err, ErrUnsupportedAction) {
		return invalidActionMessage
	}
	if name, ok := recommendationNames[a.Operation]; ok {
		return name + " cannot be applied!"
	}

	switch {
	case errors.Is(err, ErrUserNotFound):
		return "User not found!"
	case errors.Is(err, ErrNotSeen):
		return "error -> " + a.Title + " is not seen"
	case errors.Is(err, ErrAlreadyFavorited):
		return "error -> " + a.Title + " is already in favourite list"
	case errors.Is(err, ErrAlreadyRated):
		return "error -> " + a.Title + " has been already rated"
	case errors.Is(err, ErrInvalidGrade):
		return "error -> " + a.Title + " cannot be rated with " + formatGrade(a.Grade)
	case errors.Is(err, ErrUnknownVideo):
		return "error -> " + a.Title + " is not a rateable video"
	}
	return "error -> " + err.Error()
}

func (e *Engine) user(name string) (*domain.User, error) {
	u, ok := e.catalog.User(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUserNotFound, name)
	}
	return u, nil
}
