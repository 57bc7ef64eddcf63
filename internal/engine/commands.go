package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Clark-Hu/catalog-engine/internal/domain"
)

const maxGrade = 5.0

func (e *Engine) view(a domain.Action) (string, error) {
	u, err := e.user(a.Username)
	if err != nil {
		return "", err
	}
	views := u.View(a.Title)
	return fmt.Sprintf("success -> %s was viewed with total views of %d", a.Title, views), nil
}

func (e *Engine) favorite(a domain.Action) (string, error) {
	u, err := e.user(a.Username)
	if err != nil {
		return "", err
	}
	if u.IsFavorite(a.Title) {
		return "", fmt.Errorf("%w: %s", ErrAlreadyFavorited, a.Title)
	}
	if !u.HasSeen(a.Title) {
		return "", fmt.Errorf("%w: %s", ErrNotSeen, a.Title)
	}
	u.Favorites = append(u.Favorites, a.Title)
	return fmt.Sprintf("success -> %s was added as favourite", a.Title), nil
}

// rate records a grade for a movie, or for one season when SeasonNumber > 0.
// State is only touched once every check has passed.
func (e *Engine) rate(a domain.Action) (string, error) {
	u, err := e.user(a.Username)
	if err != nil {
		return "", err
	}
	if !u.HasSeen(a.Title) {
		return "", fmt.Errorf("%w: %s", ErrNotSeen, a.Title)
	}
	key := domain.RatedKey{Title: a.Title, Season: a.SeasonNumber}
	if u.HasRated(key) {
		return "", fmt.Errorf("%w: %s", ErrAlreadyRated, a.Title)
	}
	if a.Grade <= 0 || a.Grade > maxGrade {
		return "", fmt.Errorf("%w: %v", ErrInvalidGrade, a.Grade)
	}

	addRating, err := e.ratingTarget(a.Title, a.SeasonNumber)
	if err != nil {
		return "", err
	}
	u.Rated = append(u.Rated, key)
	addRating(a.Grade)
	return fmt.Sprintf("success -> %s was rated with %s by %s", a.Title, formatGrade(a.Grade), a.Username), nil
}

func (e *Engine) ratingTarget(title string, season int) (func(float64), error) {
	if season > 0 {
		serial, ok := e.catalog.Serial(title)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not a serial", ErrUnknownVideo, title)
		}
		s, ok := serial.Season(season)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no season %d", ErrUnknownVideo, title, season)
		}
		return s.AddRating, nil
	}
	movie, ok := e.catalog.Movie(title)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a movie", ErrUnknownVideo, title)
	}
	return movie.AddRating, nil
}

// formatGrade always prints a fractional part: 5 -> "5.0", 4.25 -> "4.25".
func formatGrade(g float64) string {
	s := strconv.FormatFloat(g, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
