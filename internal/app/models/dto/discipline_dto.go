package dto

import (
	"time"

	"github.com/yigit/unicatalog/internal/app/models"
)

// DisciplineRequest is the body of discipline create and replace requests.
// Requirements lists prerequisite discipline codes.
type DisciplineRequest struct {
	Code         string   `json:"code" form:"code"`
	Name         string   `json:"name" form:"name"`
	Credits      *int     `json:"credits" form:"credits"`
	Department   string   `json:"department" form:"department"`
	Description  string   `json:"description" form:"description"`
	Requirements []string `json:"requirements" form:"requirements"`
}

// DisciplineResponse represents a discipline
type DisciplineResponse struct {
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	Credits      int       `json:"credits"`
	Department   string    `json:"department,omitempty"`
	Description  string    `json:"description,omitempty"`
	Requirements []string  `json:"requirements"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewDisciplineResponse(d *models.Discipline) *DisciplineResponse {
	if d == nil {
		return nil
	}
	resp := &DisciplineResponse{
		Code:         d.Code,
		Name:         d.Name,
		Department:   d.Department,
		Description:  d.Description,
		Requirements: d.PrerequisiteCodes,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if d.Credits != nil {
		resp.Credits = *d.Credits
	}
	if resp.Requirements == nil {
		resp.Requirements = []string{}
	}
	return resp
}

// ScheduleRequest is one weekly meeting in an offering body.
type ScheduleRequest struct {
	Weekday *int   `json:"weekday"`
	Hour    *int   `json:"hour"`
	Room    string `json:"room"`
}

// ReservationRequest reserves seats for a course, identified by code.
type ReservationRequest struct {
	Course      string `json:"course"`
	CatalogYear *int   `json:"catalogYear"`
}

// OfferingRequest is the body of offering create and replace requests.
type OfferingRequest struct {
	Code         string               `json:"code" form:"code"`
	Year         *int                 `json:"year" form:"year"`
	Period       string               `json:"period" form:"period"`
	Vacancy      *int                 `json:"vacancy" form:"vacancy"`
	Schedules    []ScheduleRequest    `json:"schedules"`
	Reservations []ReservationRequest `json:"reservations"`
}

// ScheduleResponse represents one weekly meeting
type ScheduleResponse struct {
	Weekday int    `json:"weekday"`
	Hour    int    `json:"hour"`
	Room    string `json:"room,omitempty"`
}

// ReservationResponse represents reserved seats. Course is null when the
// course has since been removed.
type ReservationResponse struct {
	Course      *CourseResponse `json:"course"`
	CatalogYear *int            `json:"catalogYear,omitempty"`
}

// OfferingResponse represents an offering with reservation courses expanded
type OfferingResponse struct {
	Code         string                `json:"code"`
	Year         int                   `json:"year"`
	Period       string                `json:"period"`
	Vacancy      int                   `json:"vacancy"`
	Schedules    []ScheduleResponse    `json:"schedules"`
	Reservations []ReservationResponse `json:"reservations"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

func NewOfferingResponse(o *models.Offering) *OfferingResponse {
	resp := &OfferingResponse{
		Code:         o.Code,
		Year:         o.Year,
		Period:       o.Period,
		Schedules:    make([]ScheduleResponse, 0, len(o.Schedules)),
		Reservations: make([]ReservationResponse, 0, len(o.Reservations)),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	if o.Vacancy != nil {
		resp.Vacancy = *o.Vacancy
	}
	for _, s := range o.Schedules {
		sr := ScheduleResponse{Room: s.Room}
		if s.Weekday != nil {
			sr.Weekday = *s.Weekday
		}
		if s.Hour != nil {
			sr.Hour = *s.Hour
		}
		resp.Schedules = append(resp.Schedules, sr)
	}
	for _, r := range o.Reservations {
		resp.Reservations = append(resp.Reservations, ReservationResponse{
			Course:      NewCourseResponse(r.Course),
			CatalogYear: r.CatalogYear,
		})
	}
	return resp
}
