package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/unicatalog/internal/app/models"
	"github.com/yigit/unicatalog/internal/app/models/dto"
	"github.com/yigit/unicatalog/internal/pkg/apperrors"
	"github.com/yigit/unicatalog/internal/pkg/helpers"
)

const (
	defaultModalityCode = "sm"
	defaultModalityName = "No modality"
)

func notFound(err error) bool {
	return errors.Is(err, apperrors.ErrResourceNotFound)
}

// splitCodes splits a prerequisite list; codes are separated by spaces,
// "*" or "/".
func splitCodes(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == '*' || r == '/'
	})
}

func (im *Importer) catalog(ctx context.Context, year int) (*models.Catalog, error) {
	c, err := im.svc.Catalogs.GetByYear(ctx, year)
	if notFound(err) {
		c, err = im.svc.Catalogs.Create(ctx, dto.CatalogRequest{Year: &year})
		if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			return im.svc.Catalogs.GetByYear(ctx, year)
		}
	}
	return c, err
}

func (im *Importer) modality(ctx context.Context, rec record) (*models.Modality, error) {
	year, err := rec.requiredInt("catalogYear")
	if err != nil {
		return nil, err
	}
	c, err := im.catalog(ctx, year)
	if err != nil {
		return nil, err
	}
	code := rec.get("modalityCode")
	if code == "" {
		code = defaultModalityCode
	}
	return im.svc.Modalities.GetByKey(ctx, c, helpers.Code(rec.get("courseCode")), helpers.Code(code))
}

func (im *Importer) importCourse(ctx context.Context, rec record) error {
	year, err := rec.requiredInt("catalogYear")
	if err != nil {
		return err
	}
	if _, err := im.catalog(ctx, year); err != nil {
		return fmt.Errorf("catalog %d: %w", year, err)
	}

	req := dto.CourseRequest{Code: rec.get("courseCode"), Name: rec.get("name"), Level: rec.get("level")}
	course, err := im.svc.Courses.GetByCode(ctx, helpers.Code(req.Code))
	switch {
	case notFound(err):
		_, err = im.svc.Courses.Create(ctx, req)
		return err
	case err != nil:
		return err
	}
	return im.svc.Courses.Replace(ctx, course, req)
}

func (im *Importer) importDiscipline(ctx context.Context, rec record) error {
	credits, err := rec.optionalInt("credits")
	if err != nil {
		return err
	}
	req := dto.DisciplineRequest{
		Code:        rec.get("code"),
		Name:        rec.get("name"),
		Credits:     credits,
		Department:  rec.get("department"),
		Description: rec.get("description"),
	}

	d, err := im.svc.Disciplines.GetByCode(ctx, helpers.Code(req.Code))
	switch {
	case notFound(err):
		_, err = im.svc.Disciplines.Create(ctx, req)
		return err
	case err != nil:
		return err
	}
	req.Requirements = d.PrerequisiteCodes
	return im.svc.Disciplines.Replace(ctx, d, req)
}

// importPrerequisites replaces a discipline's prerequisite links. Codes
// that name no discipline are dropped with a warning.
func (im *Importer) importPrerequisites(ctx context.Context, rec record) error {
	d, err := im.svc.Disciplines.GetByCode(ctx, helpers.Code(rec.get("code")))
	if err != nil {
		return fmt.Errorf("discipline %q: %w", rec.get("code"), err)
	}

	var codes []string
	for _, code := range splitCodes(rec.get("prerequisites")) {
		_, err := im.svc.Disciplines.GetByCode(ctx, helpers.Code(code))
		switch {
		case notFound(err):
			im.logger.Warn().Str("discipline", d.Code).Str("prerequisite", code).Int("line", rec.line).
				Msg("Unknown prerequisite, skipping")
		case err != nil:
			return err
		default:
			codes = append(codes, code)
		}
	}

	return im.svc.Disciplines.Replace(ctx, d, dto.DisciplineRequest{
		Code:         d.Code,
		Name:         d.Name,
		Credits:      d.Credits,
		Department:   d.Department,
		Description:  d.Description,
		Requirements: codes,
	})
}

func (im *Importer) importModality(ctx context.Context, rec record) error {
	year, err := rec.requiredInt("catalogYear")
	if err != nil {
		return err
	}
	limit, err := rec.optionalInt("creditLimit")
	if err != nil {
		return err
	}
	c, err := im.catalog(ctx, year)
	if err != nil {
		return err
	}

	req := dto.ModalityRequest{
		Code:        rec.get("modalityCode"),
		Name:        rec.get("name"),
		CreditLimit: limit,
		Course:      rec.get("courseCode"),
	}
	if req.Code == "" {
		req.Code = defaultModalityCode
	}
	if req.Name == "" {
		req.Name = defaultModalityName
	}

	m, err := im.svc.Modalities.GetByKey(ctx, c, helpers.Code(req.Course), helpers.Code(req.Code))
	switch {
	case notFound(err):
		_, err = im.svc.Modalities.Create(ctx, c, req)
		return err
	case err != nil:
		return err
	}
	return im.svc.Modalities.Replace(ctx, m, req)
}

// importCurriculum upserts the row's block and then its requirement. A
// requirement containing a dash is a mask; anything else names a
// discipline.
func (im *Importer) importCurriculum(ctx context.Context, rec record) error {
	m, err := im.modality(ctx, rec)
	if err != nil {
		return fmt.Errorf("modality: %w", err)
	}
	credits, err := rec.optionalInt("credits")
	if err != nil {
		return err
	}

	blockReq := dto.BlockRequest{Code: rec.get("blockCode"), Type: rec.get("blockType"), Credits: credits}
	b, err := im.svc.Blocks.GetByCode(ctx, m, helpers.Code(blockReq.Code))
	switch {
	case notFound(err):
		if b, err = im.svc.Blocks.Create(ctx, m, blockReq); err != nil {
			return fmt.Errorf("block: %w", err)
		}
	case err != nil:
		return err
	case b.Type != blockReq.Type || !sameInt(b.Credits, blockReq.Credits):
		if err := im.svc.Blocks.Replace(ctx, b, blockReq); err != nil {
			return fmt.Errorf("block: %w", err)
		}
	}

	value := rec.get("requirement")
	if value == "" {
		return nil
	}
	req := dto.RequirementRequest{SuggestedSemester: rec.get("suggestedSemester")}
	code := value
	if strings.Contains(value, "-") {
		req.Mask = value
	} else {
		req.Discipline = value
		code = helpers.Code(value)
	}

	r, err := im.svc.Requirements.GetByCode(ctx, b, code)
	switch {
	case notFound(err):
		_, err = im.svc.Requirements.Create(ctx, b, req)
		return err
	case err != nil:
		return err
	}
	return im.svc.Requirements.Replace(ctx, r, req)
}

func (im *Importer) offering(ctx context.Context, rec record) (*models.Discipline, *models.Offering, error) {
	year, err := rec.requiredInt("year")
	if err != nil {
		return nil, nil, err
	}
	d, err := im.svc.Disciplines.GetByCode(ctx, helpers.Code(rec.get("disciplineCode")))
	if err != nil {
		return nil, nil, fmt.Errorf("discipline %q: %w", rec.get("disciplineCode"), err)
	}
	o, err := im.svc.Offerings.GetByKey(ctx, d, year, rec.get("period"), helpers.Code(rec.get("class")))
	return d, o, err
}

func (im *Importer) importOffering(ctx context.Context, rec record) error {
	year, err := rec.requiredInt("year")
	if err != nil {
		return err
	}
	vacancy, err := rec.optionalInt("vacancy")
	if err != nil {
		return err
	}

	req := dto.OfferingRequest{Code: rec.get("class"), Year: &year, Period: rec.get("period"), Vacancy: vacancy}
	d, o, err := im.offering(ctx, rec)
	switch {
	case d == nil:
		return err
	case notFound(err):
		_, err = im.svc.Offerings.Create(ctx, d, req)
		return err
	case err != nil:
		return err
	}
	current := offeringRequest(o)
	req.Schedules, req.Reservations = current.Schedules, current.Reservations
	return im.svc.Offerings.Replace(ctx, o, req)
}

// importSchedule appends a weekly meeting to an existing offering unless
// the same meeting is already listed.
func (im *Importer) importSchedule(ctx context.Context, rec record) error {
	weekday, err := rec.requiredInt("weekday")
	if err != nil {
		return err
	}
	hour, err := rec.requiredInt("hour")
	if err != nil {
		return err
	}
	_, o, err := im.offering(ctx, rec)
	if err != nil {
		return fmt.Errorf("offering: %w", err)
	}

	s := dto.ScheduleRequest{Weekday: &weekday, Hour: &hour, Room: rec.get("room")}
	req := offeringRequest(o)
	for _, existing := range req.Schedules {
		if *existing.Weekday == weekday && *existing.Hour == hour && existing.Room == s.Room {
			return nil
		}
	}
	req.Schedules = append(req.Schedules, s)
	return im.svc.Offerings.Replace(ctx, o, req)
}

// offeringRequest rebuilds the request that would produce o. Reservations
// whose course has been removed are left out.
func offeringRequest(o *models.Offering) dto.OfferingRequest {
	year := o.Year
	req := dto.OfferingRequest{Code: o.Code, Year: &year, Period: o.Period, Vacancy: o.Vacancy}
	for _, s := range o.Schedules {
		req.Schedules = append(req.Schedules, dto.ScheduleRequest{Weekday: s.Weekday, Hour: s.Hour, Room: s.Room})
	}
	for _, r := range o.Reservations {
		if r.Course == nil {
			continue
		}
		req.Reservations = append(req.Reservations, dto.ReservationRequest{Course: r.Course.Code, CatalogYear: r.CatalogYear})
	}
	return req
}

func sameInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
