// Package catalog is the in-memory store a batch is evaluated against.
package catalog

import (
	"errors"
	"fmt"

	"github.com/Clark-Hu/catalog-engine/internal/domain"
)

// ErrDuplicate indicates two entities share a key that must be unique.
var ErrDuplicate = errors.New("catalog: duplicate key")

// Catalog owns every show, actor and user of one batch. It is not safe for
// concurrent use; a batch is evaluated by exactly one engine.
type Catalog struct {
	movies  []*domain.Movie
	serials []*domain.Serial
	actors  []*domain.Actor
	users   []*domain.User

	usersByName  map[string]*domain.User
	showsByTitle map[string]domain.Show
}

// Contents is the constructor payload, each slice in input order.
type Contents struct {
	Users   []*domain.User
	Movies  []*domain.Movie
	Serials []*domain.Serial
	Actors  []*domain.Actor
}

// New indexes the contents and rejects duplicate usernames, titles or actor names.
func New(c Contents) (*Catalog, error) {
	cat := &Catalog{
		movies:       c.Movies,
		serials:      c.Serials,
		actors:       c.Actors,
		users:        c.Users,
		usersByName:  make(map[string]*domain.User, len(c.Users)),
		showsByTitle: make(map[string]domain.Show, len(c.Movies)+len(c.Serials)),
	}

	for _, u := range c.Users {
		if _, ok := cat.usersByName[u.Username]; ok {
			return nil, fmt.Errorf("%w: user %q", ErrDuplicate, u.Username)
		}
		if u.History == nil {
			u.History = make(map[string]int)
		}
		cat.usersByName[u.Username] = u
	}
	for _, m := range c.Movies {
		if err := cat.indexShow(m); err != nil {
			return nil, err
		}
	}
	for _, s := range c.Serials {
		if err := cat.indexShow(s); err != nil {
			return nil, err
		}
	}

	names := make(map[string]struct{}, len(c.Actors))
	for _, a := range c.Actors {
		if _, ok := names[a.Name]; ok {
			return nil, fmt.Errorf("%w: actor %q", ErrDuplicate, a.Name)
		}
		names[a.Name] = struct{}{}
	}
	return cat, nil
}

func (c *Catalog) indexShow(s domain.Show) error {
	if _, ok := c.showsByTitle[s.Title()]; ok {
		return fmt.Errorf("%w: show %q", ErrDuplicate, s.Title())
	}
	c.showsByTitle[s.Title()] = s
	return nil
}

// User looks up a user by username.
func (c *Catalog) User(name string) (*domain.User, bool) {
	u, ok := c.usersByName[name]
	return u, ok
}

// Show looks up a movie or serial by title.
func (c *Catalog) Show(title string) (domain.Show, bool) {
	s, ok := c.showsByTitle[title]
	return s, ok
}

// Movie looks up a movie by title.
func (c *Catalog) Movie(title string) (*domain.Movie, bool) {
	m, ok := c.showsByTitle[title].(*domain.Movie)
	return m, ok
}

// Serial looks up a serial by title.
func (c *Catalog) Serial(title string) (*domain.Serial, bool) {
	s, ok := c.showsByTitle[title].(*domain.Serial)
	return s, ok
}

func (c *Catalog) Users() []*domain.User     { return c.users }
func (c *Catalog) Movies() []*domain.Movie   { return c.movies }
func (c *Catalog) Serials() []*domain.Serial { return c.serials }
func (c *Catalog) Actors() []*domain.Actor   { return c.actors }

// Shows returns movies followed by serials, each in input order. The slice is
// freshly allocated so callers may sort it.
func (c *Catalog) Shows() []domain.Show {
	shows := make([]domain.Show, 0, len(c.movies)+len(c.serials))
	for _, m := range c.movies {
		shows = append(shows, m)
	}
	for _, s := range c.serials {
		shows = append(shows, s)
	}
	return shows
}

// Unseen returns the shows absent from u's history, in Shows order.
func (c *Catalog) Unseen(u *domain.User) []domain.Show {
	var unseen []domain.Show
	for _, s := range c.Shows() {
		if !u.HasSeen(s.Title()) {
			unseen = append(unseen, s)
		}
	}
	return unseen
}
