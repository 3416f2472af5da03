package exam

import (
	"time"

	"github.com/google/uuid"

	domainExam "smartiq-backend/internal/domain/exam"
)

type SubcategoryRequest struct {
	Name             string   `json:"name" validate:"required,min=2,max=255"`
	Eligibility      string   `json:"eligibility" validate:"required"`
	Courses          []string `json:"courses"`
	Subjects         []string `json:"subjects"`
	ExamMode         string   `json:"examMode" validate:"omitempty,exam_mode"`
	Frequency        string   `json:"frequency"`
	ConductingBody   string   `json:"conductingBody"`
	Level            string   `json:"level" validate:"omitempty,exam_level"`
	AgeMin           *int     `json:"ageMin" validate:"omitempty,min=0"`
	AgeMax           *int     `json:"ageMax" validate:"omitempty,min=0"`
	SelectionProcess []string `json:"selectionProcess"`
	Purpose          string   `json:"purpose"`
}

type CategoryRequest struct {
	Name          string               `json:"name" validate:"required"`
	Description   string               `json:"description"`
	Icon          string               `json:"icon"`
	Subcategories []SubcategoryRequest `json:"subcategories" validate:"dive"`
}

type SearchRequest struct {
	Query    string `form:"query"`
	Level    string `form:"level" validate:"omitempty,exam_level"`
	ExamMode string `form:"examMode" validate:"omitempty,exam_mode"`
}

type SubcategoryResponse struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Eligibility      string    `json:"eligibility"`
	Courses          []string  `json:"courses,omitempty"`
	Subjects         []string  `json:"subjects,omitempty"`
	ExamMode         string    `json:"examMode,omitempty"`
	Frequency        string    `json:"frequency,omitempty"`
	ConductingBody   string    `json:"conductingBody,omitempty"`
	Level            string    `json:"level,omitempty"`
	AgeMin           *int      `json:"ageMin,omitempty"`
	AgeMax           *int      `json:"ageMax,omitempty"`
	SelectionProcess []string  `json:"selectionProcess,omitempty"`
	Purpose          string    `json:"purpose,omitempty"`
}

// CategorySummary is the listing projection: identity fields only.
type CategorySummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
}

type CategoryResponse struct {
	ID            uuid.UUID             `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description,omitempty"`
	Icon          string                `json:"icon,omitempty"`
	Subcategories []SubcategoryResponse `json:"subcategories"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

func ToCategorySummary(c *domainExam.Category) *CategorySummary {
	if c == nil {
		return nil
	}
	return &CategorySummary{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
	}
}

func ToCategoryResponse(c *domainExam.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	resp := &CategoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		Description:   c.Description,
		Icon:          c.Icon,
		Subcategories: make([]SubcategoryResponse, 0, len(c.Subcategories)),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	for i := range c.Subcategories {
		sub := &c.Subcategories[i]
		resp.Subcategories = append(resp.Subcategories, SubcategoryResponse{
			ID:               sub.ID,
			Name:             sub.Name,
			Eligibility:      sub.Eligibility,
			Courses:          sub.Courses,
			Subjects:         sub.Subjects,
			ExamMode:         sub.ExamMode,
			Frequency:        sub.Frequency,
			ConductingBody:   sub.ConductingBody,
			Level:            sub.Level,
			AgeMin:           sub.AgeMin,
			AgeMax:           sub.AgeMax,
			SelectionProcess: sub.SelectionProcess,
			Purpose:          sub.Purpose,
		})
	}
	return resp
}

func toCategoryEntity(req *CategoryRequest) *domainExam.Category {
	c := &domainExam.Category{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	}
	for i := range req.Subcategories {
		sub := &req.Subcategories[i]
		level := sub.Level
		if level == "" {
			level = domainExam.LevelNational
		}
		c.Subcategories = append(c.Subcategories, domainExam.Subcategory{
			Name:             sub.Name,
			Eligibility:      sub.Eligibility,
			Courses:          sub.Courses,
			Subjects:         sub.Subjects,
			ExamMode:         sub.ExamMode,
			Frequency:        sub.Frequency,
			ConductingBody:   sub.ConductingBody,
			Level:            level,
			AgeMin:           sub.AgeMin,
			AgeMax:           sub.AgeMax,
			SelectionProcess: sub.SelectionProcess,
			Purpose:          sub.Purpose,
			SortOrder:        i,
		})
	}
	return c
}
