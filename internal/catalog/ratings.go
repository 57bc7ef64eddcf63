package catalog

import "github.com/Clark-Hu/catalog-engine/internal/domain"

// positiveMean averages the strictly positive values; 0 when there are none.
func positiveMean(values []float64) float64 {
	var sum float64
	var n int
	for _, v := range values {
		if v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// MovieRating is the mean of the movie's positive grades.
func MovieRating(m *domain.Movie) float64 {
	return positiveMean(m.Ratings)
}

// SeasonRating is the mean of the season's positive grades.
func SeasonRating(s *domain.Season) float64 {
	return positiveMean(s.Ratings)
}

// SerialRating sums the positive season ratings and divides by the number of
// seasons, so unrated seasons pull the average down.
func SerialRating(s *domain.Serial) float64 {
	if len(s.Seasons) == 0 {
		return 0
	}
	var sum float64
	for _, season := range s.Seasons {
		if r := SeasonRating(season); r > 0 {
			sum += r
		}
	}
	if sum == 0 {
		return 0
	}
	return sum / float64(len(s.Seasons))
}

// ShowRating dispatches on the show kind.
func ShowRating(s domain.Show) float64 {
	switch v := s.(type) {
	case *domain.Movie:
		return MovieRating(v)
	case *domain.Serial:
		return SerialRating(v)
	default:
		return 0
	}
}

// ActorRating averages the ratings of every rated show the actor appears in.
func (c *Catalog) ActorRating(a *domain.Actor) float64 {
	var sum float64
	var n int
	for _, s := range c.Shows() {
		if !domain.HasCastMember(s, a.Name) {
			continue
		}
		if r := ShowRating(s); r > 0 {
			sum += r
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// RefreshActorRatings recomputes and stores the derived rating of every actor.
func (c *Catalog) RefreshActorRatings() {
	for _, a := range c.actors {
		a.Rating = c.ActorRating(a)
	}
}
