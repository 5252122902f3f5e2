package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/unicatalog/internal/app/cascade"
	"github.com/yigit/unicatalog/internal/app/models"
	"github.com/yigit/unicatalog/internal/app/models/dto"
	"github.com/yigit/unicatalog/internal/app/repositories"
	"github.com/yigit/unicatalog/internal/pkg/apperrors"
	"github.com/yigit/unicatalog/internal/pkg/helpers"
)

// OfferingService handles offering-related operations
type OfferingService struct {
	offeringRepo *repositories.OfferingRepository
	courseRepo   *repositories.CourseRepository
	graph        *cascade.Registry
}

// NewOfferingService creates a new offering service instance
func NewOfferingService(offeringRepo *repositories.OfferingRepository, courseRepo *repositories.CourseRepository, graph *cascade.Registry) *OfferingService {
	return &OfferingService{offeringRepo: offeringRepo, courseRepo: courseRepo, graph: graph}
}

// apply copies the request onto o. Reservations naming an unknown course
// keep an empty course reference, reported as
// "reservations[i].course": "required".
func (s *OfferingService) apply(ctx context.Context, o *models.Offering, req dto.OfferingRequest) error {
	o.Code = helpers.Code(req.Code)
	o.Year = 0
	if req.Year != nil {
		o.Year = *req.Year
	}
	o.Period = strings.TrimSpace(req.Period)
	o.Vacancy = req.Vacancy

	o.Schedules = make([]models.Schedule, 0, len(req.Schedules))
	for _, sch := range req.Schedules {
		o.Schedules = append(o.Schedules, models.Schedule{
			Weekday: sch.Weekday,
			Hour:    sch.Hour,
			Room:    strings.TrimSpace(sch.Room),
		})
	}

	o.Reservations = make([]models.Reservation, 0, len(req.Reservations))
	for _, res := range req.Reservations {
		r := models.Reservation{CatalogYear: res.CatalogYear}
		if code := helpers.Code(res.Course); code != "" {
			course, err := s.courseRepo.FindByCode(ctx, code)
			switch {
			case errors.Is(err, apperrors.ErrResourceNotFound):
			case err != nil:
				return fmt.Errorf("error resolving reserved course: %w", err)
			default:
				r.CourseID, r.Course = course.ID, course
			}
		}
		o.Reservations = append(o.Reservations, r)
	}
	return nil
}

func (s *OfferingService) Create(ctx context.Context, discipline *models.Discipline, req dto.OfferingRequest) (*models.Offering, error) {
	o := &models.Offering{DisciplineID: discipline.ID}
	if err := s.apply(ctx, o, req); err != nil {
		return nil, err
	}
	if err := s.offeringRepo.Insert(ctx, o); err != nil {
		return nil, fmt.Errorf("error creating offering: %w", err)
	}
	return o, nil
}

func (s *OfferingService) List(ctx context.Context, discipline *models.Discipline, filter repositories.OfferingFilter, page helpers.Page) ([]*models.Offering, error) {
	offerings, err := s.offeringRepo.ListByDiscipline(ctx, discipline.ID, filter, page)
	if err != nil {
		return nil, fmt.Errorf("error listing offerings: %w", err)
	}
	if err := s.populate(ctx, offerings...); err != nil {
		return nil, err
	}
	return offerings, nil
}

// GetByKey resolves "<year>-<period>-<code>" within a discipline.
func (s *OfferingService) GetByKey(ctx context.Context, discipline *models.Discipline, year int, period, code string) (*models.Offering, error) {
	o, err := s.offeringRepo.FindByKey(ctx, discipline.ID, year, period, code)
	if err != nil {
		return nil, err
	}
	if err := s.populate(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OfferingService) Replace(ctx context.Context, o *models.Offering, req dto.OfferingRequest) error {
	updated := *o
	if err := s.apply(ctx, &updated, req); err != nil {
		return err
	}
	if err := s.offeringRepo.Update(ctx, &updated); err != nil {
		return fmt.Errorf("error updating offering: %w", err)
	}
	*o = updated
	return nil
}

func (s *OfferingService) Delete(ctx context.Context, o *models.Offering) error {
	if err := s.graph.Remove(ctx, cascade.Offering, o.ID); err != nil {
		return fmt.Errorf("error deleting offering: %w", err)
	}
	return nil
}

// populate attaches reservation courses; removed courses stay nil.
func (s *OfferingService) populate(ctx context.Context, offerings ...*models.Offering) error {
	var ids []string
	for _, o := range offerings {
		for _, r := range o.Reservations {
			ids = append(ids, r.CourseID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	courses, err := s.courseRepo.ByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("error loading reserved courses: %w", err)
	}
	for _, o := range offerings {
		for i := range o.Reservations {
			o.Reservations[i].Course = courses[o.Reservations[i].CourseID]
		}
	}
	return nil
}
