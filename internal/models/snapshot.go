package models

// Snapshot is the full aggregate of user data exchanged with the server.
// Pushes and pulls always carry every collection.
type Snapshot struct {
	Categories    []string            `json:"categories"`
	Tricks        []Trick             `json:"tricks"`
	Templates     []TrainingTemplate  `json:"templates"`
	Challenges    []Challenge         `json:"challenges"`
	TrainingPlans []DailyTrainingPlan `json:"trainingPlans"`
}

// Normalize replaces nil collections with empty ones so they encode as [].
func (s *Snapshot) Normalize() {
	if s.Categories == nil {
		s.Categories = []string{}
	}
	if s.Tricks == nil {
		s.Tricks = []Trick{}
	}
	if s.Templates == nil {
		s.Templates = []TrainingTemplate{}
	}
	if s.Challenges == nil {
		s.Challenges = []Challenge{}
	}
	if s.TrainingPlans == nil {
		s.TrainingPlans = []DailyTrainingPlan{}
	}
}

// Counts returns collection sizes for logging.
func (s Snapshot) Counts() map[string]int {
	return map[string]int{
		"categories":    len(s.Categories),
		"tricks":        len(s.Tricks),
		"templates":     len(s.Templates),
		"challenges":    len(s.Challenges),
		"trainingPlans": len(s.TrainingPlans),
	}
}
