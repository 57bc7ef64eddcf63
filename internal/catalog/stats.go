package catalog

// TotalViews sums the history count for title across all users.
func (c *Catalog) TotalViews(title string) int {
	total := 0
	for _, u := range c.users {
		total += u.History[title]
	}
	return total
}

// FavoriteCount is the number of users with title in their favorites.
func (c *Catalog) FavoriteCount(title string) int {
	count := 0
	for _, u := range c.users {
		if u.IsFavorite(title) {
			count++
		}
	}
	return count
}
