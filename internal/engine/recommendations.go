package engine

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Clark-Hu/catalog-engine/internal/catalog"
	"github.com/Clark-Hu/catalog-engine/internal/domain"
)

func (e *Engine) premiumUser(name string) (*domain.User, error) {
	u, err := e.user(name)
	if err != nil {
		return nil, err
	}
	if !u.Premium() {
		return nil, fmt.Errorf("%w: %s", ErrSubscriptionRequired, name)
	}
	return u, nil
}

func recommendation(op domain.Operation, result string) string {
	return recommendationNames[op] + " result: " + result
}

func (e *Engine) recommendStandard(a domain.Action) (string, error) {
	u, err := e.user(a.Username)
	if err != nil {
		return "", err
	}
	unseen := e.catalog.Unseen(u)
	if len(unseen) == 0 {
		return "", ErrNoCandidates
	}
	return recommendation(a.Operation, unseen[0].Title()), nil
}

// recommendBestUnseen sorts by rating alone, so among equally rated shows the
// one latest in catalog order wins.
func (e *Engine) recommendBestUnseen(a domain.Action) (string, error) {
	u, err := e.user(a.Username)
	if err != nil {
		return "", err
	}
	unseen := e.catalog.Unseen(u)
	if len(unseen) == 0 {
		return "", ErrNoCandidates
	}
	rank(unseen, domain.SortAsc, by(catalog.ShowRating))
	return recommendation(a.Operation, unseen[len(unseen)-1].Title()), nil
}

func (e *Engine) recommendSearch(a domain.Action) (string, error) {
	u, err := e.premiumUser(a.Username)
	if err != nil {
		return "", err
	}
	var matches []domain.Show
	for _, s := range e.catalog.Unseen(u) {
		if domain.HasGenre(s, a.Genre) {
			matches = append(matches, s)
		}
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: genre %q", ErrNoCandidates, a.Genre)
	}
	rank(matches, domain.SortAsc, by(catalog.ShowRating), by(domain.Show.Title))
	return recommendation(a.Operation, formatList(names(matches, domain.Show.Title))), nil
}

// recommendFavorite picks the unseen show favorited by the most users. A show
// must beat the running maximum strictly, so the earliest one wins ties and a
// show nobody favorited never qualifies.
func (e *Engine) recommendFavorite(a domain.Action) (string, error) {
	u, err := e.premiumUser(a.Username)
	if err != nil {
		return "", err
	}
	best, most := "", 0
	for _, s := range e.catalog.Unseen(u) {
		if n := e.catalog.FavoriteCount(s.Title()); n > most {
			best, most = s.Title(), n
		}
	}
	if best == "" {
		return "", ErrNoCandidates
	}
	return recommendation(a.Operation, best), nil
}

type genreViews struct {
	genre string
	views int
}

// genreRanking totals views per genre and orders genres by views descending.
// Equal totals keep the order in which the genres were first met.
func (e *Engine) genreRanking() []genreViews {
	var ranking []genreViews
	index := make(map[string]int)
	for _, s := range e.catalog.Shows() {
		views := e.catalog.TotalViews(s.Title())
		for _, g := range s.Genres() {
			i, ok := index[g]
			if !ok {
				i = len(ranking)
				index[g] = i
				ranking = append(ranking, genreViews{genre: g})
			}
			ranking[i].views += views
		}
	}
	slices.SortStableFunc(ranking, func(x, y genreViews) int {
		return cmp.Compare(y.views, x.views)
	})
	return ranking
}

func (e *Engine) recommendPopular(a domain.Action) (string, error) {
	u, err := e.premiumUser(a.Username)
	if err != nil {
		return "", err
	}
	unseen := e.catalog.Unseen(u)
	for _, g := range e.genreRanking() {
		for _, s := range unseen {
			if domain.HasGenre(s, g.genre) {
				return recommendation(a.Operation, s.Title()), nil
			}
		}
	}
	return "", ErrNoCandidates
}
