package services

import "quill/app/models"

// Outcome classifies the result of a mutation attempt. A Denied mutation
// is a no-op that callers render as a redirect to the matching read view,
// never as an error page.
type Outcome int

const (
	Applied Outcome = iota
	Denied
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case Denied:
		return "denied"
	case NotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// CanMutate reports whether the viewer owns the resource with the given
// author. Anonymous viewers can never mutate.
func CanMutate(authorID int, viewer *models.User) bool {
	return viewer != nil && viewer.ID == authorID
}
