package dto

import (
	"time"

	"github.com/yigit/unicatalog/internal/app/models"
)

// ModalityRequest is the body of modality create and replace requests.
// Course carries the code of an existing course.
type ModalityRequest struct {
	Code        string `json:"code" form:"code"`
	Name        string `json:"name" form:"name"`
	CreditLimit *int   `json:"creditLimit" form:"creditLimit"`
	Course      string `json:"course" form:"course"`
}

// ModalityResponse represents a modality with its course expanded
type ModalityResponse struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	CreditLimit int             `json:"creditLimit"`
	Course      *CourseResponse `json:"course"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func NewModalityResponse(m *models.Modality) *ModalityResponse {
	resp := &ModalityResponse{
		Code:      m.Code,
		Name:      m.Name,
		Course:    NewCourseResponse(m.Course),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.CreditLimit != nil {
		resp.CreditLimit = *m.CreditLimit
	}
	return resp
}

// BlockRequest is the body of block create and replace requests.
type BlockRequest struct {
	Code    string `json:"code" form:"code"`
	Type    string `json:"type" form:"type"`
	Credits *int   `json:"credits" form:"credits"`
}

// BlockResponse represents a block
type BlockResponse struct {
	Code      string    `json:"code"`
	Type      string    `json:"type"`
	Credits   *int      `json:"credits,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewBlockResponse(b *models.Block) *BlockResponse {
	return &BlockResponse{
		Code:      b.Code,
		Type:      b.Type,
		Credits:   b.Credits,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// RequirementRequest is the body of requirement create and replace
// requests. One of Discipline (a discipline code) or Mask is expected.
type RequirementRequest struct {
	Discipline        string `json:"discipline" form:"discipline"`
	Mask              string `json:"mask" form:"mask"`
	SuggestedSemester string `json:"suggestedSemester" form:"suggestedSemester"`
}

// RequirementResponse represents a requirement with its discipline expanded
type RequirementResponse struct {
	Code              string              `json:"code"`
	Mask              string              `json:"mask,omitempty"`
	SuggestedSemester string              `json:"suggestedSemester,omitempty"`
	Discipline        *DisciplineResponse `json:"discipline,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	UpdatedAt         time.Time           `json:"updatedAt"`
}

func NewRequirementResponse(r *models.Requirement) *RequirementResponse {
	return &RequirementResponse{
		Code:              r.Code,
		Mask:              r.Mask,
		SuggestedSemester: r.SuggestedSemester,
		Discipline:        NewDisciplineResponse(r.Discipline),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
