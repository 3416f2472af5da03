package exam

import (
	"time"

	"github.com/google/uuid"
)

// Exam mode values
const (
	ModeOnline  = "Online"
	ModeOffline = "Offline"
	ModeHybrid  = "Hybrid"
)

// Exam level values
const (
	LevelNational = "National"
	LevelState    = "State"
	LevelEntrance = "Entrance"
	LevelRegional = "Regional"
)

// CategoryNames is the fixed set of allowed category names.
var CategoryNames = []string{
	"Board Exams",
	"Engineering & Pharmacy Entrance",
	"Law Entrance",
	"Defence Exams",
	"Government Job Exams",
	"Banking & RBI Exams",
	"MBA & Management",
	"Maritime Exams",
}

// IsValidCategoryName reports whether name belongs to the fixed set.
func IsValidCategoryName(name string) bool {
	for _, n := range CategoryNames {
		if n == name {
			return true
		}
	}
	return false
}

// Category groups an ordered list of exam subcategories under one of the
// fixed category names.
type Category struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Icon          string
	Subcategories []Subcategory
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Subcategory describes a single exam within a category.
type Subcategory struct {
	ID               uuid.UUID
	CategoryID       uuid.UUID
	Name             string
	Eligibility      string
	Courses          []string
	Subjects         []string
	ExamMode         string
	Frequency        string
	ConductingBody   string
	Level            string
	AgeMin           *int
	AgeMax           *int
	SelectionProcess []string
	Purpose          string
	SortOrder        int
}
