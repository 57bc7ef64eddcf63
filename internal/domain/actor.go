package domain

import "strings"

// AwardKind names an award an actor can hold.
type AwardKind string

const (
	AwardBestPerformance     AwardKind = "BEST_PERFORMANCE"
	AwardBestDirector        AwardKind = "BEST_DIRECTOR"
	AwardPeopleChoice        AwardKind = "PEOPLE_CHOICE_AWARD"
	AwardBestScreenplay      AwardKind = "BEST_SCREENPLAY"
	AwardBestSupportingActor AwardKind = "BEST_SUPPORTING_ACTOR"
)

// AwardKinds lists every known award in declaration order.
var AwardKinds = []AwardKind{
	AwardBestPerformance,
	AwardBestDirector,
	AwardPeopleChoice,
	AwardBestScreenplay,
	AwardBestSupportingActor,
}

// Actor is a cast member. Rating is derived and refreshed by the catalog.
type Actor struct {
	Name              string
	CareerDescription string
	Filmography       []string
	Awards            map[AwardKind]int
	Rating            float64
}

// DescriptionContainsAll reports whether every word occurs in the career description.
func (a *Actor) DescriptionContainsAll(words []string) bool {
	for _, w := range words {
		if !strings.Contains(a.CareerDescription, w) {
			return false
		}
	}
	return true
}

// HasAwards reports whether the actor holds every listed award kind.
func (a *Actor) HasAwards(kinds []AwardKind) bool {
	for _, k := range kinds {
		if _, ok := a.Awards[k]; !ok {
			return false
		}
	}
	return true
}
