// Package question maps (question, answer, context) triples into SDF
// shapes describing where the hider could still be, and classifies the
// ways that mapping can fail.
package question

// Question is the closed set of question kinds. Each kind exposes a
// ToShape method taking its own answer type and the context to query
// (PhotoQuestion has no answer type and takes only the context);
// construction failures are *ShapeError values.
type Question interface {
	// Template returns the fill-in text template the UI renders the
	// question with.
	Template() Template

	question()
}

func (MatchingQuestion) question()    {}
func (MeasuringQuestion) question()   {}
func (ThermometerQuestion) question() {}
func (RadarQuestion) question()       {}
func (TentacleQuestion) question()    {}
func (PhotoQuestion) question()       {}
