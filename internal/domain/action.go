package domain

// Category is the top-level action family.
type Category string

const (
	CategoryCommand        Category = "command"
	CategoryQuery          Category = "query"
	CategoryRecommendation Category = "recommendation"
)

// Operation is the resolved handler tag for an action.
type Operation int

const (
	OpUnknown Operation = iota
	OpView
	OpFavorite
	OpRating
	OpQueryUsers
	OpQueryActorsAverage
	OpQueryActorsAwards
	OpQueryActorsDescription
	OpQueryShowsLongest
	OpQueryShowsRatings
	OpQueryShowsFavorite
	OpQueryShowsMostViewed
	OpRecommendStandard
	OpRecommendBestUnseen
	OpRecommendSearch
	OpRecommendFavorite
	OpRecommendPopular
)

var operationNames = map[Operation]string{
	OpUnknown:                "unknown",
	OpView:                   "command/view",
	OpFavorite:               "command/favorite",
	OpRating:                 "command/rating",
	OpQueryUsers:             "query/users",
	OpQueryActorsAverage:     "query/actors/average",
	OpQueryActorsAwards:      "query/actors/awards",
	OpQueryActorsDescription: "query/actors/filter_description",
	OpQueryShowsLongest:      "query/shows/longest",
	OpQueryShowsRatings:      "query/shows/ratings",
	OpQueryShowsFavorite:     "query/shows/favorite",
	OpQueryShowsMostViewed:   "query/shows/most_viewed",
	OpRecommendStandard:      "recommendation/standard",
	OpRecommendBestUnseen:    "recommendation/best_unseen",
	OpRecommendSearch:        "recommendation/search",
	OpRecommendFavorite:      "recommendation/favorite",
	OpRecommendPopular:       "recommendation/popular",
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return operationNames[OpUnknown]
}

// Operations lists every resolvable operation.
func Operations() []Operation {
	ops := make([]Operation, 0, len(operationNames)-1)
	for op := OpView; op <= OpRecommendPopular; op++ {
		ops = append(ops, op)
	}
	return ops
}

var commandOps = map[string]Operation{
	"view":     OpView,
	"favorite": OpFavorite,
	"rating":   OpRating,
}

var recommendationOps = map[string]Operation{
	"standard":    OpRecommendStandard,
	"best_unseen": OpRecommendBestUnseen,
	"search":      OpRecommendSearch,
	"favorite":    OpRecommendFavorite,
	"popular":     OpRecommendPopular,
}

var actorCriteria = map[string]Operation{
	"average":            OpQueryActorsAverage,
	"awards":             OpQueryActorsAwards,
	"filter_description": OpQueryActorsDescription,
}

var showCriteria = map[string]Operation{
	"longest":     OpQueryShowsLongest,
	"ratings":     OpQueryShowsRatings,
	"favorite":    OpQueryShowsFavorite,
	"most_viewed": OpQueryShowsMostViewed,
}

// ResolveOperation maps the raw action descriptors onto an Operation.
// Anything it does not recognise resolves to OpUnknown.
func ResolveOperation(category, typ, objectType, criteria string) Operation {
	switch Category(category) {
	case CategoryCommand:
		return commandOps[typ]
	case CategoryRecommendation:
		return recommendationOps[typ]
	case CategoryQuery:
		switch objectType {
		case "users":
			return OpQueryUsers
		case "actors":
			return actorCriteria[criteria]
		case "shows", "movies":
			return showCriteria[criteria]
		}
	}
	return OpUnknown
}

// SortOrder is the requested result direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Filters narrows query candidates. Zero values place no constraint.
type Filters struct {
	Year   int
	Genre  string
	Words  []string
	Awards []AwardKind
}

// Action is one entry of a batch.
type Action struct {
	ID           int
	Operation    Operation
	Category     string
	Type         string
	Username     string
	Title        string
	SeasonNumber int
	Grade        float64
	Filters      Filters
	Sort         SortOrder
	Number       int
	Genre        string
}
