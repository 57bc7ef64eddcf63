package batchio

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/Clark-Hu/catalog-engine/internal/domain"
	"github.com/Clark-Hu/catalog-engine/internal/engine"
)

func loadBasic(t testing.TB) Input {
	t.Helper()
	f, err := os.Open("testdata/basic.json")
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	defer f.Close()
	in, err := Decode(f)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return in
}

func TestDecodeAndEvaluateBasic(t *testing.T) {
	in := loadBasic(t)

	cat, actions, err := in.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(actions) != 8 {
		t.Fatalf("len(actions) = %d, want 8", len(actions))
	}
	if actions[7].Operation != domain.OpUnknown {
		t.Fatalf("unknown action resolved to %s", actions[7].Operation)
	}

	results := engine.New(cat, zerolog.Nop()).Run(actions)
	want := []string{
		"success -> Matrix was viewed with total views of 1",
		"success -> Matrix was rated with 5.0 by ana",
		"error -> Matrix has been already rated",
		"Query result: [Matrix]",
		"Query result: [Al Pacino]",
		"PopularRecommendation cannot be applied!",
		"SearchRecommendation result: [Dark]",
		"Invalid action!",
	}
	got := engine.Messages(results)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("result[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuildIsRepeatable(t *testing.T) {
	in := loadBasic(t)

	cat1, actions, err := in.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	engine.New(cat1, zerolog.Nop()).Run(actions)

	cat2, _, err := in.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ana, _ := cat2.User("ana")
	if ana.HasSeen("Matrix") {
		t.Fatalf("second build observed mutations of the first run")
	}
	if m, _ := cat2.Movie("Matrix"); len(m.Ratings) != 0 {
		t.Fatalf("second build shares rating list: %v", m.Ratings)
	}
}

func TestFilters(t *testing.T) {
	tests := []struct {
		name    string
		raw     [][]string
		want    domain.Filters
		wantErr bool
	}{
		{name: "empty", raw: nil, want: domain.Filters{}},
		{name: "null slots", raw: [][]string{{""}, {""}, nil, nil}, want: domain.Filters{}},
		{
			name: "all slots",
			raw:  [][]string{{"2010"}, {"Drama"}, {"actor", ""}, {"BEST_DIRECTOR"}},
			want: domain.Filters{Year: 2010, Genre: "Drama", Words: []string{"actor"}, Awards: []domain.AwardKind{domain.AwardBestDirector}},
		},
		{name: "bad year", raw: [][]string{{"twenty"}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ActionRecord{Filters: tt.raw}.filters()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("filters(): %v", err)
			}
			if got.Year != tt.want.Year || got.Genre != tt.want.Genre ||
				strings.Join(got.Words, ",") != strings.Join(tt.want.Words, ",") ||
				len(got.Awards) != len(tt.want.Awards) {
				t.Fatalf("filters() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"malformed", `{"users": [`, "decode"},
		{"missing username", `{"users":[{"subscription":"PREMIUM"}]}`, "Username"},
		{"bad subscription", `{"users":[{"username":"a","subscription":"GOLD"}]}`, "Subscription"},
		{"bad award", `{"actors":[{"name":"a","awards":{"BEST_CATERING":1}}]}`, "award_kind"},
		{"rating out of range", `{"movies":[{"title":"m","ratings":[7]}]}`, "Ratings"},
		{"bad sort", `{"actions":[{"action_id":1,"action_type":"query","sort_type":"up"}]}`, "SortType"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.body))
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestBuildRejectsDuplicateTitles(t *testing.T) {
	in, err := Decode(strings.NewReader(`{"movies":[{"title":"X"}],"serials":[{"title":"X"}]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, _, err := in.Build(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Build() err = %v, want ErrInvalidInput", err)
	}
}

func TestEncodeResults(t *testing.T) {
	var buf bytes.Buffer
	results := []engine.Result{
		{ActionID: 1, Message: "success -> X was viewed with total views of 1"},
		{ActionID: 2, Message: "Query result: []"},
	}
	if err := EncodeResults(&buf, results); err != nil {
		t.Fatalf("EncodeResults: %v", err)
	}

	var decoded []ResultRecord
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(decoded) != 2 || decoded[0].ID != 1 || decoded[1].Message != "Query result: []" {
		t.Fatalf("decoded = %+v", decoded)
	}
}
