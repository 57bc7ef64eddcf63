// Package batchio decodes batch documents into a catalog plus actions and
// encodes evaluation results.
package batchio

// Input is the on-disk / over-the-wire batch document.
type Input struct {
	Users   []UserRecord   `json:"users" validate:"dive"`
	Movies  []MovieRecord  `json:"movies" validate:"dive"`
	Serials []SerialRecord `json:"serials" validate:"dive"`
	Actors  []ActorRecord  `json:"actors" validate:"dive"`
	Actions []ActionRecord `json:"actions" validate:"dive"`
}

type UserRecord struct {
	Username       string         `json:"username" validate:"required"`
	Subscription   string         `json:"subscription" validate:"oneof=REGULAR PREMIUM"`
	History        map[string]int `json:"history" validate:"dive,keys,required,endkeys,gte=1"`
	FavoriteMovies []string       `json:"favoriteMovies" validate:"dive,required"`
}

type MovieRecord struct {
	Title    string    `json:"title" validate:"required"`
	Year     int       `json:"year" validate:"gte=0"`
	Cast     []string  `json:"cast"`
	Genres   []string  `json:"genres"`
	Duration int       `json:"duration" validate:"gte=0"`
	Ratings  []float64 `json:"ratings,omitempty" validate:"dive,gte=0,lte=5"`
}

type SeasonRecord struct {
	CurrentSeason int       `json:"currentSeason" validate:"gte=1"`
	Duration      int       `json:"duration" validate:"gte=0"`
	Ratings       []float64 `json:"ratings,omitempty" validate:"dive,gte=0,lte=5"`
}

type SerialRecord struct {
	Title         string         `json:"title" validate:"required"`
	Year          int            `json:"year" validate:"gte=0"`
	Cast          []string       `json:"cast"`
	Genres        []string       `json:"genres"`
	NumberSeasons int            `json:"numberSeason" validate:"gte=0"`
	Seasons       []SeasonRecord `json:"seasons" validate:"dive"`
}

type ActorRecord struct {
	Name              string         `json:"name" validate:"required"`
	CareerDescription string         `json:"career_description"`
	Filmography       []string       `json:"filmography"`
	Awards            map[string]int `json:"awards" validate:"dive,keys,award_kind,endkeys,gte=0"`
}

// ActionRecord keeps the raw descriptors; they are resolved to an operation
// only when the batch is built, so unknown kinds survive decoding.
type ActionRecord struct {
	ActionID     int        `json:"action_id"`
	ActionType   string     `json:"action_type"`
	Type         string     `json:"type,omitempty"`
	Username     string     `json:"username,omitempty"`
	Title        string     `json:"title,omitempty"`
	Grade        float64    `json:"grade,omitempty"`
	SeasonNumber int        `json:"season_number,omitempty" validate:"gte=0"`
	ObjectType   string     `json:"object_type,omitempty"`
	SortType     string     `json:"sort_type,omitempty" validate:"omitempty,oneof=asc desc"`
	Criteria     string     `json:"criteria,omitempty"`
	Number       int        `json:"number,omitempty" validate:"gte=0"`
	Filters      [][]string `json:"filters,omitempty"`
	Genre        string     `json:"genre,omitempty"`
}

// Positions inside ActionRecord.Filters.
const (
	filterYear = iota
	filterGenre
	filterWords
	filterAwards
)

// ResultRecord is one entry of the output array.
type ResultRecord struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}
