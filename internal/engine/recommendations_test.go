package engine

import (
	"errors"
	"testing"

	"github.com/Clark-Hu/catalog-engine/internal/catalog"
	"github.com/Clark-Hu/catalog-engine/internal/domain"
)

func recommend(op domain.Operation, user string) domain.Action {
	return domain.Action{Operation: op, Category: "recommendation", Username: user}
}

func ratedMovie(title string, genres []string, grades ...float64) *domain.Movie {
	m := domain.NewMovie(title, 2000, nil, genres, 100)
	m.Ratings = grades
	return m
}

func recommendationFixture(t testing.TB) *fixture {
	t.Helper()
	return newFixture(t, catalog.Contents{
		Users: []*domain.User{
			{Username: "pam", Subscription: domain.SubscriptionPremium, History: map[string]int{"Seen": 1}},
			{Username: "reg", Subscription: domain.SubscriptionRegular},
			{
				Username:     "fan",
				Subscription: domain.SubscriptionRegular,
				History:      map[string]int{"B": 4, "Show": 2},
				Favorites:    []string{"B", "Show"},
			},
			{
				Username:     "fan2",
				Subscription: domain.SubscriptionRegular,
				History:      map[string]int{"Show": 1, "C": 1},
				Favorites:    []string{"Show", "C"},
			},
		},
		Movies: []*domain.Movie{
			ratedMovie("Seen", []string{"Drama"}, 5),
			ratedMovie("A", []string{"Comedy"}, 4),
			ratedMovie("B", []string{"Horror"}),
			ratedMovie("C", []string{"Comedy", "Horror"}, 4),
		},
		Serials: []*domain.Serial{
			domain.NewSerial("Show", 2010, nil, []string{"Horror"}, []*domain.Season{{Number: 1, Ratings: []float64{2}}}),
		},
	})
}

func TestRecommendStandard(t *testing.T) {
	f := recommendationFixture(t)
	f.expect(t, recommend(domain.OpRecommendStandard, "pam"), "StandardRecommendation result: A")
	f.expect(t, recommend(domain.OpRecommendStandard, "reg"), "StandardRecommendation result: Seen")
	f.expect(t, recommend(domain.OpRecommendStandard, "ghost"), "StandardRecommendation cannot be applied!")
}

func TestRecommendBestUnseenPicksLastMaximal(t *testing.T) {
	f := newFixture(t, catalog.Contents{
		Users: []*domain.User{{Username: "reg", Subscription: domain.SubscriptionRegular}},
		Movies: []*domain.Movie{
			ratedMovie("Movie A", nil, 4),
			ratedMovie("Movie B", nil),
			ratedMovie("Movie C", nil, 4),
		},
	})
	f.expect(t, recommend(domain.OpRecommendBestUnseen, "reg"), "BestRatedUnseenRecommendation result: Movie C")
}

func TestRecommendBestUnseenNoCandidates(t *testing.T) {
	f := newFixture(t, catalog.Contents{
		Users:  []*domain.User{{Username: "reg", History: map[string]int{"Only": 1}}},
		Movies: []*domain.Movie{ratedMovie("Only", nil, 3)},
	})
	res := f.run(t, recommend(domain.OpRecommendBestUnseen, "reg"))
	if !errors.Is(res.Err, ErrNoCandidates) || res.Message != "BestRatedUnseenRecommendation cannot be applied!" {
		t.Fatalf("got (%q, %v)", res.Message, res.Err)
	}
}

func TestRecommendSearch(t *testing.T) {
	f := recommendationFixture(t)

	a := recommend(domain.OpRecommendSearch, "pam")
	a.Genre = "Horror"
	// B unrated, Show 2.0, C 4.0
	f.expect(t, a, "SearchRecommendation result: [B, Show, C]")

	a.Genre = "Western"
	f.expect(t, a, "SearchRecommendation cannot be applied!")

	regular := recommend(domain.OpRecommendSearch, "reg")
	regular.Genre = "Horror"
	res := f.run(t, regular)
	if !errors.Is(res.Err, ErrSubscriptionRequired) || res.Message != "SearchRecommendation cannot be applied!" {
		t.Fatalf("got (%q, %v)", res.Message, res.Err)
	}
}

func TestRecommendFavorite(t *testing.T) {
	f := recommendationFixture(t)
	// Show is favorited twice, B and C once each.
	f.expect(t, recommend(domain.OpRecommendFavorite, "pam"), "FavoriteRecommendation result: Show")

	f.run(t, command(domain.OpView, "pam", "Show"))
	// B and C tie at one; B comes first.
	f.expect(t, recommend(domain.OpRecommendFavorite, "pam"), "FavoriteRecommendation result: B")

	f.run(t, command(domain.OpView, "pam", "B"))
	f.run(t, command(domain.OpView, "pam", "C"))
	f.expect(t, recommend(domain.OpRecommendFavorite, "pam"), "FavoriteRecommendation cannot be applied!")
	f.expect(t, recommend(domain.OpRecommendFavorite, "reg"), "FavoriteRecommendation cannot be applied!")
}

func TestRecommendPopular(t *testing.T) {
	f := recommendationFixture(t)
	// Views: Horror = B 4 + C 1 + Show 3 = 8, Comedy = A 0 + C 1 = 1, Drama = Seen 1.
	f.expect(t, recommend(domain.OpRecommendPopular, "pam"), "PopularRecommendation result: B")

	for _, title := range []string{"B", "C", "Show"} {
		f.run(t, command(domain.OpView, "pam", title))
	}
	// Horror exhausted; Comedy still has A.
	f.expect(t, recommend(domain.OpRecommendPopular, "pam"), "PopularRecommendation result: A")

	f.run(t, command(domain.OpView, "pam", "A"))
	f.expect(t, recommend(domain.OpRecommendPopular, "pam"), "PopularRecommendation cannot be applied!")
}

func TestRecommendPopularRegularAlwaysFails(t *testing.T) {
	f := recommendationFixture(t)
	res := f.run(t, recommend(domain.OpRecommendPopular, "reg"))
	if !errors.Is(res.Err, ErrSubscriptionRequired) {
		t.Fatalf("err = %v, want ErrSubscriptionRequired", res.Err)
	}
	if res.Message != "PopularRecommendation cannot be applied!" {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestGenreRankingTiesKeepFirstSeen(t *testing.T) {
	f := newFixture(t, catalog.Contents{
		Users: []*domain.User{{Username: "u", History: map[string]int{"X": 2, "Y": 2}}},
		Movies: []*domain.Movie{
			ratedMovie("X", []string{"Sci-Fi"}),
			ratedMovie("Y", []string{"Noir"}),
			ratedMovie("Z", []string{"Mystery"}),
		},
	})
	ranking := f.engine.genreRanking()
	want := []genreViews{{"Sci-Fi", 2}, {"Noir", 2}, {"Mystery", 0}}
	if len(ranking) != len(want) {
		t.Fatalf("ranking = %v, want %v", ranking, want)
	}
	for i := range want {
		if ranking[i] != want[i] {
			t.Fatalf("ranking[%d] = %v, want %v", i, ranking[i], want[i])
		}
	}
}
