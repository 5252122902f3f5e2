package models

import "time"

// Discipline is a subject taught by the institution.
type Discipline struct {
	ID          string    `json:"-"`
	Code        string    `json:"code" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Credits     *int      `json:"credits" validate:"required"`
	Department  string    `json:"department"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Prerequisites, in declaration order. IDs are what is stored;
	// codes are populated on read.
	PrerequisiteIDs   []string `json:"-" validate:"-"`
	PrerequisiteCodes []string `json:"-" validate:"-"`
}

// Offering is a scheduled class of a discipline in a given term.
type Offering struct {
	ID           string        `json:"-"`
	DisciplineID string        `json:"-" field:"discipline" validate:"required"`
	Code         string        `json:"code" validate:"required"`
	Year         int           `json:"year" validate:"required"`
	Period       string        `json:"period" validate:"required,nodash"`
	Vacancy      *int          `json:"vacancy" validate:"required"`
	Schedules    []Schedule    `json:"schedules" validate:"dive"`
	Reservations []Reservation `json:"reservations" validate:"dive"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Schedule is one weekly meeting of an offering.
type Schedule struct {
	Weekday *int   `json:"weekday" validate:"required"`
	Hour    *int   `json:"hour" validate:"required"`
	Room    string `json:"room,omitempty"`
}

// Reservation holds seats of an offering for students of a course,
// optionally restricted to one catalog year.
type Reservation struct {
	CourseID    string `json:"courseId" field:"course" validate:"required"`
	CatalogYear *int   `json:"catalogYear,omitempty"`

	// Populated on read; nil when the course no longer exists
	Course *Course `json:"-" validate:"-"`
}
