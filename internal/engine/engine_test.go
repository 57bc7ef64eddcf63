package engine

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Clark-Hu/catalog-engine/internal/catalog"
	"github.com/Clark-Hu/catalog-engine/internal/domain"
)

type fixture struct {
	cat    *catalog.Catalog
	engine *Engine
}

func newFixture(t testing.TB, contents catalog.Contents) *fixture {
	t.Helper()
	cat, err := catalog.New(contents)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return &fixture{cat: cat, engine: New(cat, zerolog.Nop())}
}

func (f *fixture) run(t testing.TB, a domain.Action) Result {
	t.Helper()
	return f.engine.Evaluate(a)
}

func (f *fixture) expect(t testing.TB, a domain.Action, want string) {
	t.Helper()
	if got := f.engine.Evaluate(a).Message; got != want {
		t.Fatalf("%s: got %q, want %q", a.Operation, got, want)
	}
}

func command(op domain.Operation, user, title string) domain.Action {
	return domain.Action{Operation: op, Category: "command", Username: user, Title: title}
}

func ratingAction(user, title string, grade float64, season int) domain.Action {
	a := command(domain.OpRating, user, title)
	a.Grade = grade
	a.SeasonNumber = season
	return a
}

func TestRunPreservesOrderAndLength(t *testing.T) {
	f := newFixture(t, catalog.Contents{
		Users:  []*domain.User{{Username: "ana", Subscription: domain.SubscriptionRegular}},
		Movies: []*domain.Movie{domain.NewMovie("Matrix", 1999, nil, []string{"Action"}, 136)},
	})

	actions := []domain.Action{
		{ID: 1, Operation: domain.OpView, Username: "ana", Title: "Matrix"},
		{ID: 2, Operation: domain.OpUnknown, Category: "bogus"},
		{ID: 3, Operation: domain.OpRating, Username: "ana", Title: "Matrix", Grade: 5},
		{ID: 4, Operation: domain.OpRecommendPopular, Username: "ana"},
		{ID: 5, Operation: domain.OpView, Username: "ana", Title: "Matrix"},
	}
	results := f.engine.Run(actions)
	if len(results) != len(actions) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(actions))
	}
	for i, r := range results {
		if r.ActionID != actions[i].ID {
			t.Fatalf("results[%d].ActionID = %d, want %d", i, r.ActionID, actions[i].ID)
		}
	}

	want := []string{
		"success -> Matrix was viewed with total views of 1",
		"Invalid action!",
		"success -> Matrix was rated with 5.0 by ana",
		"PopularRecommendation cannot be applied!",
		"success -> Matrix was viewed with total views of 2",
	}
	got := Messages(results)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("message[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !errors.Is(results[1].Err, ErrUnsupportedAction) {
		t.Fatalf("unknown action err = %v, want ErrUnsupportedAction", results[1].Err)
	}
}

func TestEveryOperationHasHandler(t *testing.T) {
	f := newFixture(t, catalog.Contents{})
	for _, op := range domain.Operations() {
		if _, ok := f.engine.handlers[op]; !ok {
			t.Fatalf("operation %s has no handler", op)
		}
	}
	if _, ok := f.engine.handlers[domain.OpUnknown]; ok {
		t.Fatalf("OpUnknown must not be routable")
	}
}

func TestOutcomeLabels(t *testing.T) {
	if got := outcome(nil); got != "ok" {
		t.Fatalf("outcome(nil) = %q", got)
	}
	if got := outcome(ErrNoCandidates); got != "no_candidates" {
		t.Fatalf("outcome(ErrNoCandidates) = %q", got)
	}
	if got := outcome(errors.New("boom")); got != "error" {
		t.Fatalf("outcome(other) = %q", got)
	}
}

func BenchmarkRun(b *testing.B) {
	users := make([]*domain.User, 0, 50)
	for i := 0; i < 50; i++ {
		users = append(users, &domain.User{Username: string(rune('a'+i%26)) + string(rune('a'+i/26)), Subscription: domain.SubscriptionPremium})
	}
	movies := make([]*domain.Movie, 0, 100)
	for i := 0; i < 100; i++ {
		movies = append(movies, domain.NewMovie("movie-"+string(rune('A'+i%26))+string(rune('A'+i/26)), 2000+i%20, nil, []string{"Drama"}, 90+i))
	}
	actions := make([]domain.Action, 0, 300)
	for i := 0; i < 100; i++ {
		u := users[i%len(users)].Username
		actions = append(actions,
			domain.Action{ID: 3 * i, Operation: domain.OpView, Username: u, Title: movies[i].Title()},
			domain.Action{ID: 3*i + 1, Operation: domain.OpQueryShowsMostViewed, Filters: domain.Filters{Genre: "Drama"}, Number: 10},
			domain.Action{ID: 3*i + 2, Operation: domain.OpRecommendPopular, Username: u},
		)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		for _, u := range users {
			u.History = map[string]int{}
		}
		cat, err := catalog.New(catalog.Contents{Users: users, Movies: movies})
		if err != nil {
			b.Fatalf("catalog.New: %v", err)
		}
		eng := New(cat, zerolog.Nop())
		b.StartTimer()
		eng.Run(actions)
	}
}
