package models

// Exercise is a stored SQL practice problem: a question prompt and the
// reference query whose output counts as the correct answer.
type Exercise struct {
	ID           int64  `json:"id"`
	Question     string `json:"question"`
	CorrectQuery string `json:"-"`
}

// TableName returns the name of the database table
// associated with the Exercise model.
func (e Exercise) TableName() string {
	return "exercises"
}
