package mastery

// State is an item's position in the learning lifecycle.
type State string

const (
	StateNew      State = "new"
	StateLearning State = "learning"
	StateLearned  State = "learned"
)

// Transition records a state change caused by one answer, for logging and
// display.
type Transition struct {
	Key  string
	From State
	To   State
}
