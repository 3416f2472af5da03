package exam

import (
	domainExam "smartiq-backend/internal/domain/exam"
)

// defaultCategories mirrors the catalog the platform ships with.
func defaultCategories() []domainExam.Category {
	return []domainExam.Category{
		{
			Name:        "Board Exams",
			Description: "Exams for 11th and 12th Standard",
			Subcategories: []domainExam.Subcategory{
				{
					Name:           "CBSE Boards",
					Eligibility:    "After completing Class 10 (for 11th), Class 11 (for 12th)",
					Courses:        []string{"Science (PCM)", "Science (PCB)"},
					ExamMode:       domainExam.ModeOffline,
					Frequency:      "Once a year (March-April)",
					ConductingBody: "CBSE",
					Level:          domainExam.LevelNational,
					Purpose:        "Qualifying for higher education & competitive exams",
				},
			},
		},
		{
			Name:        "Engineering & Pharmacy Entrance",
			Description: "Entrance exams for technical and medical courses",
			Subcategories: []domainExam.Subcategory{
				{
					Name:           "MHT CET",
					Eligibility:    "12th pass (Science with PCM/PCB)",
					Courses:        []string{"Engineering (B.E/B.Tech)", "Pharmacy (B.Pharm)", "Agriculture"},
					Subjects:       []string{"Physics", "Chemistry", "Maths/Biology"},
					ExamMode:       domainExam.ModeOnline,
					Frequency:      "Once a year (May)",
					ConductingBody: "State CET Cell, Maharashtra",
					Level:          domainExam.LevelState,
					SortOrder:      0,
				},
			},
		},
		{
			Name:        "Law Entrance",
			Description: "Entrance exams for law programs",
			Subcategories: []domainExam.Subcategory{
				{
					Name:           "LLB (5-year Integrated)",
					Eligibility:    "12th pass",
					Courses:        []string{"Integrated LLB"},
					Subjects:       []string{"Legal Aptitude", "GK", "English", "Reasoning", "Maths"},
					ExamMode:       domainExam.ModeOnline,
					ConductingBody: "Various Institutions",
					Level:          domainExam.LevelNational,
					SortOrder:      0,
				},
				{
					Name:           "LLB (3-year)",
					Eligibility:    "Graduation",
					Courses:        []string{"LLB"},
					ExamMode:       domainExam.ModeOnline,
					ConductingBody: "Various Institutions",
					Level:          domainExam.LevelNational,
					SortOrder:      1,
				},
			},
		},
	}
}
