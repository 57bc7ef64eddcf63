package domain

// Subscription is the plan a user is on.
type Subscription string

const (
	SubscriptionRegular Subscription = "REGULAR"
	SubscriptionPremium Subscription = "PREMIUM"
)

// RatedKey identifies something a user rated: a movie, or one serial season.
type RatedKey struct {
	Title  string
	Season int
}

// User holds per-user viewing state.
type User struct {
	Username     string
	Subscription Subscription
	History      map[string]int
	Favorites    []string
	Rated        []RatedKey
}

// Premium reports whether the user has a premium subscription.
func (u *User) Premium() bool {
	return u.Subscription == SubscriptionPremium
}

// HasSeen reports whether title is in the user's history.
func (u *User) HasSeen(title string) bool {
	_, ok := u.History[title]
	return ok
}

// View records one more view of title and returns the new count.
func (u *User) View(title string) int {
	if u.History == nil {
		u.History = make(map[string]int)
	}
	u.History[title]++
	return u.History[title]
}

// IsFavorite reports whether title is already in the favorites list.
func (u *User) IsFavorite(title string) bool {
	for _, f := range u.Favorites {
		if f == title {
			return true
		}
	}
	return false
}

// HasRated reports whether key is already in the rated list.
func (u *User) HasRated(key RatedKey) bool {
	for _, r := range u.Rated {
		if r == key {
			return true
		}
	}
	return false
}
