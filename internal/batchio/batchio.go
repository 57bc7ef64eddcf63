package batchio

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/Clark-Hu/catalog-engine/internal/catalog"
	"github.com/Clark-Hu/catalog-engine/internal/domain"
	"github.com/Clark-Hu/catalog-engine/internal/engine"
)

// ErrInvalidInput wraps every decoding and validation failure.
var ErrInvalidInput = errors.New("batchio: invalid input")

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("award_kind", func(fl validator.FieldLevel) bool {
			for _, k := range domain.AwardKinds {
				if fl.Field().String() == string(k) {
					return true
				}
			}
			return false
		})
	})
	return validate
}

// Decode reads and validates one batch document.
func Decode(r io.Reader) (Input, error) {
	var in Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return Input{}, fmt.Errorf("%w: decode: %w", ErrInvalidInput, err)
	}
	if err := in.Validate(); err != nil {
		return Input{}, err
	}
	return in, nil
}

// Validate checks field-level constraints on every record.
func (in *Input) Validate() error {
	err := getValidator().Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
}

// Build turns the records into a fresh catalog and the ordered action list.
// Each call yields independent entities, so one Input can be evaluated many
// times.
func (in *Input) Build() (*catalog.Catalog, []domain.Action, error) {
	contents := catalog.Contents{
		Users:   make([]*domain.User, 0, len(in.Users)),
		Movies:  make([]*domain.Movie, 0, len(in.Movies)),
		Serials: make([]*domain.Serial, 0, len(in.Serials)),
		Actors:  make([]*domain.Actor, 0, len(in.Actors)),
	}
	for _, u := range in.Users {
		contents.Users = append(contents.Users, u.toDomain())
	}
	for _, m := range in.Movies {
		contents.Movies = append(contents.Movies, m.toDomain())
	}
	for _, s := range in.Serials {
		contents.Serials = append(contents.Serials, s.toDomain())
	}
	for _, a := range in.Actors {
		contents.Actors = append(contents.Actors, a.toDomain())
	}

	cat, err := catalog.New(contents)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	actions := make([]domain.Action, 0, len(in.Actions))
	for i, rec := range in.Actions {
		a, err := rec.toDomain()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: action %d: %v", ErrInvalidInput, i, err)
		}
		actions = append(actions, a)
	}
	return cat, actions, nil
}

func (u UserRecord) toDomain() *domain.User {
	history := make(map[string]int, len(u.History))
	for title, n := range u.History {
		history[title] = n
	}
	return &domain.User{
		Username:     u.Username,
		Subscription: domain.Subscription(u.Subscription),
		History:      history,
		Favorites:    append([]string(nil), u.FavoriteMovies...),
	}
}

func (m MovieRecord) toDomain() *domain.Movie {
	movie := domain.NewMovie(m.Title, m.Year, m.Cast, m.Genres, m.Duration)
	movie.Ratings = append([]float64(nil), m.Ratings...)
	return movie
}

func (s SerialRecord) toDomain() *domain.Serial {
	seasons := make([]*domain.Season, 0, len(s.Seasons))
	for _, rec := range s.Seasons {
		seasons = append(seasons, &domain.Season{
			Number:  rec.CurrentSeason,
			Minutes: rec.Duration,
			Ratings: append([]float64(nil), rec.Ratings...),
		})
	}
	return domain.NewSerial(s.Title, s.Year, s.Cast, s.Genres, seasons)
}

func (a ActorRecord) toDomain() *domain.Actor {
	awards := make(map[domain.AwardKind]int, len(a.Awards))
	for kind, n := range a.Awards {
		awards[domain.AwardKind(kind)] = n
	}
	return &domain.Actor{
		Name:              a.Name,
		CareerDescription: a.CareerDescription,
		Filmography:       a.Filmography,
		Awards:            awards,
	}
}

func (r ActionRecord) toDomain() (domain.Action, error) {
	filters, err := r.filters()
	if err != nil {
		return domain.Action{}, err
	}
	return domain.Action{
		ID:           r.ActionID,
		Operation:    domain.ResolveOperation(r.ActionType, r.Type, r.ObjectType, r.Criteria),
		Category:     r.ActionType,
		Type:         r.Type,
		Username:     r.Username,
		Title:        r.Title,
		SeasonNumber: r.SeasonNumber,
		Grade:        r.Grade,
		Filters:      filters,
		Sort:         domain.SortOrder(r.SortType),
		Number:       r.Number,
		Genre:        r.Genre,
	}, nil
}

// filters reads the positional slots {year, genre, words, awards}. Missing
// slots and empty entries place no constraint.
func (r ActionRecord) filters() (domain.Filters, error) {
	var f domain.Filters
	if year := firstNonEmpty(slot(r.Filters, filterYear)); year != "" {
		y, err := strconv.Atoi(strings.TrimSpace(year))
		if err != nil {
			return f, fmt.Errorf("invalid year filter %q", year)
		}
		f.Year = y
	}
	f.Genre = firstNonEmpty(slot(r.Filters, filterGenre))
	f.Words = nonEmpty(slot(r.Filters, filterWords))
	for _, award := range nonEmpty(slot(r.Filters, filterAwards)) {
		f.Awards = append(f.Awards, domain.AwardKind(award))
	}
	return f, nil
}

func slot(filters [][]string, i int) []string {
	if i < len(filters) {
		return filters[i]
	}
	return nil
}

func firstNonEmpty(values []string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Records converts engine results into output records.
func Records(results []engine.Result) []ResultRecord {
	out := make([]ResultRecord, len(results))
	for i, r := range results {
		out[i] = ResultRecord{ID: r.ActionID, Message: r.Message}
	}
	return out
}

// EncodeResults writes the results as an indented JSON array.
func EncodeResults(w io.Writer, results []engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Records(results)); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}
