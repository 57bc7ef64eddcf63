package engine

import (
	"github.com/Clark-Hu/catalog-engine/internal/catalog"
	"github.com/Clark-Hu/catalog-engine/internal/domain"
)

const queryPrefix = "Query result: "

func queryResult(titles []string) string {
	return queryPrefix + formatList(titles)
}

// queryUsers ranks users by how many items they rated. There is no secondary
// key: equal counts keep input order.
func (e *Engine) queryUsers(a domain.Action) (string, error) {
	var users []*domain.User
	for _, u := range e.catalog.Users() {
		if len(u.Rated) > 0 {
			users = append(users, u)
		}
	}
	rank(users, a.Sort, by(func(u *domain.User) int { return len(u.Rated) }))
	users = limit(users, a.Number)
	return queryResult(names(users, func(u *domain.User) string { return u.Username })), nil
}

func (e *Engine) filterActors(f domain.Filters) []*domain.Actor {
	var actors []*domain.Actor
	for _, actor := range e.catalog.Actors() {
		if actor.DescriptionContainsAll(f.Words) && actor.HasAwards(f.Awards) {
			actors = append(actors, actor)
		}
	}
	return actors
}

func actorName(a *domain.Actor) string { return a.Name }

func actorsResult(actors []*domain.Actor, a domain.Action, keys ...compareFunc[*domain.Actor]) string {
	rank(actors, a.Sort, keys...)
	actors = limit(actors, a.Number)
	return queryResult(names(actors, actorName))
}

func (e *Engine) queryActorsAverage(a domain.Action) (string, error) {
	e.catalog.RefreshActorRatings()
	var rated []*domain.Actor
	for _, actor := range e.filterActors(a.Filters) {
		if actor.Rating > 0 {
			rated = append(rated, actor)
		}
	}
	return actorsResult(rated, a,
		by(func(x *domain.Actor) float64 { return x.Rating }),
		by(actorName),
	), nil
}

// queryActorsAwards orders by how many distinct award kinds an actor holds.
func (e *Engine) queryActorsAwards(a domain.Action) (string, error) {
	return actorsResult(e.filterActors(a.Filters), a,
		by(func(x *domain.Actor) int { return len(x.Awards) }),
		by(actorName),
	), nil
}

func (e *Engine) queryActorsDescription(a domain.Action) (string, error) {
	return actorsResult(e.filterActors(a.Filters), a, by(actorName)), nil
}

// filterShows keeps shows carrying the requested genre. A missing genre
// matches nothing; a zero year matches every year.
func (e *Engine) filterShows(f domain.Filters) []domain.Show {
	var shows []domain.Show
	for _, s := range e.catalog.Shows() {
		if f.Year != 0 && s.Year() != f.Year {
			continue
		}
		if !domain.HasGenre(s, f.Genre) {
			continue
		}
		shows = append(shows, s)
	}
	return shows
}

// showsBy drops shows whose metric is zero and ranks the rest by
// (metric, title). The metric is computed once per show.
func (e *Engine) showsBy(a domain.Action, metric func(domain.Show) float64) string {
	values := make(map[string]float64)
	var shows []domain.Show
	for _, s := range e.filterShows(a.Filters) {
		v := metric(s)
		if v == 0 {
			continue
		}
		values[s.Title()] = v
		shows = append(shows, s)
	}
	rank(shows, a.Sort,
		by(func(s domain.Show) float64 { return values[s.Title()] }),
		by(domain.Show.Title),
	)
	shows = limit(shows, a.Number)
	return queryResult(names(shows, domain.Show.Title))
}

func (e *Engine) queryShowsLongest(a domain.Action) (string, error) {
	return e.showsBy(a, func(s domain.Show) float64 { return float64(s.Duration()) }), nil
}

func (e *Engine) queryShowsRatings(a domain.Action) (string, error) {
	return e.showsBy(a, catalog.ShowRating), nil
}

func (e *Engine) queryShowsFavorite(a domain.Action) (string, error) {
	return e.showsBy(a, func(s domain.Show) float64 {
		return float64(e.catalog.FavoriteCount(s.Title()))
	}), nil
}

func (e *Engine) queryShowsMostViewed(a domain.Action) (string, error) {
	return e.showsBy(a, func(s domain.Show) float64 {
		return float64(e.catalog.TotalViews(s.Title()))
	}), nil
}
