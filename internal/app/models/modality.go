package models

import "time"

// Modality is a degree track of a course within a catalog. CourseCode
// mirrors the course's code and is kept in step when the course is renamed.
type Modality struct {
	ID          string    `json:"-"`
	CatalogID   string    `json:"-" field:"catalog" validate:"required"`
	CourseID    string    `json:"-" field:"course" validate:"required"`
	CourseCode  string    `json:"-" field:"course" validate:"required"`
	Code        string    `json:"code" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	CreditLimit *int      `json:"creditLimit" validate:"required"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Populated on read
	Course *Course `json:"-" validate:"-"`
}

// Block groups requirements inside a modality.
type Block struct {
	ID         string    `json:"-"`
	ModalityID string    `json:"-" field:"modality" validate:"required"`
	Code       string    `json:"code" validate:"required"`
	Type       string    `json:"type" validate:"required"`
	Credits    *int      `json:"credits"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Requirement is one slot of a block, satisfied either by a specific
// discipline or by any discipline matching Mask. Code is the discipline's
// code when DisciplineID is set, otherwise the mask.
type Requirement struct {
	ID                string    `json:"-"`
	BlockID           string    `json:"-" field:"block" validate:"required"`
	DisciplineID      *string   `json:"-" field:"discipline"`
	Code              string    `json:"code" validate:"required"`
	Mask              string    `json:"mask" validate:"mask"`
	SuggestedSemester string    `json:"suggestedSemester"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`

	// Populated on read
	Discipline *Discipline `json:"-" validate:"-"`
}
