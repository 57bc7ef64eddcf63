package engine

import "errors"

// Action failures. Handlers wrap these; the dispatcher renders the message.
var (
	ErrUserNotFound         = errors.New("engine: user not found")
	ErrNotSeen              = errors.New("engine: video not seen")
	ErrAlreadyFavorited     = errors.New("engine: already favorited")
	ErrAlreadyRated         = errors.New("engine: already rated")
	ErrUnknownVideo         = errors.New("engine: video not rateable")
	ErrInvalidGrade         = errors.New("engine: grade out of range")
	ErrUnsupportedAction    = errors.New("engine: unsupported action")
	ErrSubscriptionRequired = errors.New("engine: premium subscription required")
	ErrNoCandidates         = errors.New("engine: no candidates")
)

var outcomeLabels = []struct {
	err   error
	label string
}{
	{ErrUserNotFound, "user_not_found"},
	{ErrNotSeen, "not_seen"},
	{ErrAlreadyFavorited, "already_favorited"},
	{ErrAlreadyRated, "already_rated"},
	{ErrUnknownVideo, "unknown_video"},
	{ErrInvalidGrade, "invalid_grade"},
	{ErrUnsupportedAction, "unsupported"},
	{ErrSubscriptionRequired, "subscription_required"},
	{ErrNoCandidates, "no_candidates"},
}

// outcome is a low-cardinality label for err, "ok" when nil.
func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	for _, o := range outcomeLabels {
		if errors.Is(err, o.err) {
			return o.label
		}
	}
	return "error"
}
