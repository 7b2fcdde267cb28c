package session

// DefaultReviewLength is the number of answers in a review session.
const DefaultReviewLength = 15

// ReviewState is the review-session state machine: inactive, or active
// with a number of answers remaining.
type ReviewState struct {
	Active    bool
	Remaining int
}

func startReview(length int) ReviewState {
	return ReviewState{Active: true, Remaining: length}
}

// afterAnswer applies one submitted answer. The session ends on the answer
// submitted with one or fewer remaining.
func (r ReviewState) afterAnswer() (next ReviewState, ended bool) {
	if !r.Active {
		return r, false
	}
	if r.Remaining <= 1 {
		return ReviewState{}, true
	}
	return ReviewState{Active: true, Remaining: r.Remaining - 1}, false
}
