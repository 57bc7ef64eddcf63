package domain

import "testing"

func TestResolveOperation(t *testing.T) {
	tests := []struct {
		category, typ, objectType, criteria string
		want                                Operation
	}{
		{"command", "view", "", "", OpView},
		{"command", "rating", "", "", OpRating},
		{"command", "delete", "", "", OpUnknown},
		{"query", "", "users", "num_ratings", OpQueryUsers},
		{"query", "", "actors", "average", OpQueryActorsAverage},
		{"query", "", "actors", "filter_description", OpQueryActorsDescription},
		{"query", "", "actors", "longest", OpUnknown},
		{"query", "", "shows", "most_viewed", OpQueryShowsMostViewed},
		{"query", "", "movies", "ratings", OpQueryShowsRatings},
		{"query", "", "songs", "ratings", OpUnknown},
		{"recommendation", "best_unseen", "", "", OpRecommendBestUnseen},
		{"recommendation", "popular", "", "", OpRecommendPopular},
		{"recommendation", "random", "", "", OpUnknown},
		{"", "view", "", "", OpUnknown},
	}
	for _, tt := range tests {
		got := ResolveOperation(tt.category, tt.typ, tt.objectType, tt.criteria)
		if got != tt.want {
			t.Fatalf("ResolveOperation(%q,%q,%q,%q) = %s, want %s", tt.category, tt.typ, tt.objectType, tt.criteria, got, tt.want)
		}
	}
}

func TestOperationsAreNamed(t *testing.T) {
	ops := Operations()
	if len(ops) != 16 {
		t.Fatalf("len(Operations()) = %d, want 16", len(ops))
	}
	for _, op := range ops {
		if op.String() == "unknown" {
			t.Fatalf("operation %d has no name", op)
		}
	}
}

func TestSerialSeasonBounds(t *testing.T) {
	s := NewSerial("S", 2000, nil, nil, []*Season{{Number: 1, Minutes: 10}, {Number: 2, Minutes: 20}})
	if _, ok := s.Season(0); ok {
		t.Fatalf("season 0 must not exist")
	}
	if got, ok := s.Season(2); !ok || got.Minutes != 20 {
		t.Fatalf("Season(2) = %v, %v", got, ok)
	}
	if _, ok := s.Season(3); ok {
		t.Fatalf("season 3 must not exist")
	}
	if s.Duration() != 30 {
		t.Fatalf("Duration() = %d, want 30", s.Duration())
	}
}

func TestUserState(t *testing.T) {
	u := &User{Username: "ana"}
	if u.HasSeen("X") {
		t.Fatalf("empty history reports X as seen")
	}
	if n := u.View("X"); n != 1 {
		t.Fatalf("View = %d, want 1", n)
	}
	if !u.HasSeen("X") {
		t.Fatalf("X not seen after View")
	}
	u.Rated = append(u.Rated, RatedKey{Title: "S", Season: 1})
	if !u.HasRated(RatedKey{Title: "S", Season: 1}) || u.HasRated(RatedKey{Title: "S", Season: 2}) {
		t.Fatalf("HasRated mismatch: %v", u.Rated)
	}
}

func TestActorFilters(t *testing.T) {
	a := &Actor{
		CareerDescription: "Born in Texas, starred in westerns.",
		Awards:            map[AwardKind]int{AwardBestDirector: 1},
	}
	if !a.DescriptionContainsAll([]string{"Texas", "western"}) {
		t.Fatalf("expected description match")
	}
	if a.DescriptionContainsAll([]string{"texas"}) {
		t.Fatalf("match must be case sensitive")
	}
	if !a.HasAwards(nil) || !a.HasAwards([]AwardKind{AwardBestDirector}) {
		t.Fatalf("expected award match")
	}
	if a.HasAwards([]AwardKind{AwardBestDirector, AwardBestScreenplay}) {
		t.Fatalf("unexpected award match")
	}
}
