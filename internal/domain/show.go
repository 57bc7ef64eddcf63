package domain

// ShowKind discriminates the two catalog show variants.
type ShowKind int

const (
	KindMovie ShowKind = iota + 1
	KindSerial
)

func (k ShowKind) String() string {
	switch k {
	case KindMovie:
		return "movie"
	case KindSerial:
		return "serial"
	default:
		return "unknown"
	}
}

// Show is the capability set shared by movies and serials.
type Show interface {
	Title() string
	Year() int
	Cast() []string
	Genres() []string
	// Duration is the running time in minutes; for a serial it sums its seasons.
	Duration() int
	Kind() ShowKind
}

// Base carries the fields common to every show.
type Base struct {
	Name       string
	Released   int
	CastNames  []string
	GenreNames []string
}

func (b *Base) Title() string    { return b.Name }
func (b *Base) Year() int        { return b.Released }
func (b *Base) Cast() []string   { return b.CastNames }
func (b *Base) Genres() []string { return b.GenreNames }

// HasGenre reports whether genre is one of the show's genres.
func HasGenre(s Show, genre string) bool {
	for _, g := range s.Genres() {
		if g == genre {
			return true
		}
	}
	return false
}

// HasCastMember reports whether name appears in the show's cast.
func HasCastMember(s Show, name string) bool {
	for _, c := range s.Cast() {
		if c == name {
			return true
		}
	}
	return false
}

// Movie is a single-part show with its own rating list.
type Movie struct {
	Base
	Minutes int
	Ratings []float64
}

func (m *Movie) Duration() int  { return m.Minutes }
func (m *Movie) Kind() ShowKind { return KindMovie }

// AddRating appends a raw grade.
func (m *Movie) AddRating(grade float64) {
	m.Ratings = append(m.Ratings, grade)
}

// Season belongs to exactly one serial and is rated independently.
type Season struct {
	Number  int
	Minutes int
	Ratings []float64
}

// AddRating appends a raw grade.
func (s *Season) AddRating(grade float64) {
	s.Ratings = append(s.Ratings, grade)
}

// Serial is an ordered sequence of seasons.
type Serial struct {
	Base
	Seasons []*Season
}

func (s *Serial) Kind() ShowKind { return KindSerial }

func (s *Serial) Duration() int {
	total := 0
	for _, season := range s.Seasons {
		total += season.Minutes
	}
	return total
}

// Season returns the season at the 1-based position number.
func (s *Serial) Season(number int) (*Season, bool) {
	if number < 1 || number > len(s.Seasons) {
		return nil, false
	}
	return s.Seasons[number-1], true
}

// NewMovie builds a movie with an empty rating list.
func NewMovie(title string, year int, cast, genres []string, minutes int) *Movie {
	return &Movie{
		Base:    Base{Name: title, Released: year, CastNames: cast, GenreNames: genres},
		Minutes: minutes,
	}
}

// NewSerial builds a serial from its seasons.
func NewSerial(title string, year int, cast, genres []string, seasons []*Season) *Serial {
	return &Serial{
		Base:    Base{Name: title, Released: year, CastNames: cast, GenreNames: genres},
		Seasons: seasons,
	}
}
