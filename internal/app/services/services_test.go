package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/yigit/unicatalog/internal/app/cascade"
	"github.com/yigit/unicatalog/internal/app/models"
	"github.com/yigit/unicatalog/internal/app/models/dto"
	"github.com/yigit/unicatalog/internal/app/repositories"
	"github.com/yigit/unicatalog/internal/pkg/apperrors"
	"github.com/yigit/unicatalog/internal/pkg/helpers"
	"github.com/yigit/unicatalog/internal/pkg/metrics"
	"github.com/yigit/unicatalog/internal/testutil"
)

var firstPage = helpers.Page{Number: 0, Size: helpers.DefaultPageSize}

func newServices(t *testing.T) *Services {
	t.Helper()
	repos := repositories.NewRepositories(testutil.NewDB(t))
	return NewServices(repos, cascade.NewGraph(repos, 4, metrics.New(), zerolog.Nop()))
}

type fixture struct {
	course   *models.Course
	catalog  *models.Catalog
	modality *models.Modality
	block    *models.Block
}

// seed creates course 42, catalog 2014, modality 42-AA and block B1.
func seed(t *testing.T, svc *Services) fixture {
	t.Helper()
	ctx := context.Background()

	course, err := svc.Courses.Create(ctx, dto.CourseRequest{Code: "42", Name: "Computer Science", Level: "undergraduate"})
	if err != nil {
		t.Fatalf("course: %v", err)
	}
	catalog, err := svc.Catalogs.Create(ctx, dto.CatalogRequest{Year: testutil.IntPtr(2014)})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	modality, err := svc.Modalities.Create(ctx, catalog, dto.ModalityRequest{
		Code: "AA", Name: "Computer Systems", CreditLimit: testutil.IntPtr(200), Course: "42",
	})
	if err != nil {
		t.Fatalf("modality: %v", err)
	}
	block, err := svc.Blocks.Create(ctx, modality, dto.BlockRequest{Code: "B1", Type: "required"})
	if err != nil {
		t.Fatalf("block: %v", err)
	}
	return fixture{course: course, catalog: catalog, modality: modality, block: block}
}

func TestCodesAreSlugged(t *testing.T) {
	svc := newServices(t)
	f := seed(t, svc)

	if f.modality.Code != "aa" || f.block.Code != "b1" {
		t.Fatalf("codes = %q, %q", f.modality.Code, f.block.Code)
	}
	if _, err := svc.Modalities.GetByKey(context.Background(), f.catalog, "42", "AA"); err != nil {
		t.Errorf("lookup by upper-case key: %v", err)
	}
}

func TestModalityWithUnknownCourse(t *testing.T) {
	svc := newServices(t)
	f := seed(t, svc)

	_, err := svc.Modalities.Create(context.Background(), f.catalog, dto.ModalityRequest{
		Code: "BB", Name: "x", CreditLimit: testutil.IntPtr(10), Course: "99",
	})
	v, ok := apperrors.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if v.Fields["course"] != apperrors.ReasonRequired {
		t.Errorf("fields = %v", v.Fields)
	}
}

func TestCourseRenamePropagatesToModalities(t *testing.T) {
	svc := newServices(t)
	f := seed(t, svc)
	ctx := context.Background()

	err := svc.Courses.Replace(ctx, f.course, dto.CourseRequest{Code: "43", Name: "Computer Science", Level: "undergraduate"})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	m, err := svc.Modalities.GetByKey(ctx, f.catalog, "43", "aa")
	if err != nil {
		t.Fatalf("modality under new key: %v", err)
	}
	if m.Course == nil || m.Course.Code != "43" {
		t.Errorf("modality course = %+v", m.Course)
	}
	if _, err := svc.Modalities.GetByKey(ctx, f.catalog, "42", "aa"); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("old key still resolves: %v", err)
	}
}

func TestRequirementIdentity(t *testing.T) {
	svc := newServices(t)
	f := seed(t, svc)
	ctx := context.Background()

	if _, err := svc.Disciplines.Create(ctx, dto.DisciplineRequest{Code: "MC001", Name: "Algorithms", Credits: testutil.IntPtr(4)}); err != nil {
		t.Fatalf("discipline: %v", err)
	}

	byDiscipline, err := svc.Requirements.Create(ctx, f.block, dto.RequirementRequest{Discipline: "MC001"})
	if err != nil {
		t.Fatalf("requirement: %v", err)
	}
	if byDiscipline.Code != "mc001" {
		t.Errorf("code = %q", byDiscipline.Code)
	}

	byMask, err := svc.Requirements.Create(ctx, f.block, dto.RequirementRequest{Mask: "MC---"})
	if err != nil {
		t.Fatalf("mask requirement: %v", err)
	}
	if byMask.Code != "MC---" || byMask.DisciplineID != nil {
		t.Errorf("mask requirement = %+v", byMask)
	}

	got, err := svc.Requirements.GetByCode(ctx, f.block, "MC001")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Discipline == nil || got.Discipline.Name != "Algorithms" {
		t.Errorf("discipline not expanded: %+v", got.Discipline)
	}

	if _, err := svc.Requirements.Create(ctx, f.block, dto.RequirementRequest{Discipline: "mc001"}); !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
		t.Errorf("duplicate: got %v", err)
	}
}

func TestRequirementReferenceErrors(t *testing.T) {
	svc := newServices(t)
	f := seed(t, svc)

	_, err := svc.Requirements.Create(context.Background(), f.block, dto.RequirementRequest{Discipline: "nope"})
	v, ok := apperrors.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := map[string]string{"discipline": "required", "code": "required"}
	if !reflect.DeepEqual(v.Fields, want) {
		t.Errorf("fields = %v, want %v", v.Fields, want)
	}

	_, err = svc.Requirements.Create(context.Background(), f.block, dto.RequirementRequest{Mask: "abc"})
	if v, ok := apperrors.AsValidation(err); !ok || v.Fields["mask"] != apperrors.ReasonInvalid {
		t.Errorf("bad mask: got %v", err)
	}
}

func TestDisciplineRenamePropagatesToRequirements(t *testing.T) {
	svc := newServices(t)
	f := seed(t, svc)
	ctx := context.Background()

	d, err := svc.Disciplines.Create(ctx, dto.DisciplineRequest{Code: "MC001", Name: "Algorithms", Credits: testutil.IntPtr(4)})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Requirements.Create(ctx, f.block, dto.RequirementRequest{Discipline: "MC001"}); err != nil {
		t.Fatal(err)
	}

	if err := svc.Disciplines.Replace(ctx, d, dto.DisciplineRequest{Code: "MC010", Name: "Algorithms", Credits: testutil.IntPtr(4)}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if _, err := svc.Requirements.GetByCode(ctx, f.block, "mc010"); err != nil {
		t.Errorf("requirement under new code: %v", err)
	}
}

func TestDisciplinePrerequisiteResolution(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	for _, code := range []string{"MC001", "MC002"} {
		if _, err := svc.Disciplines.Create(ctx, dto.DisciplineRequest{Code: code, Name: code, Credits: testutil.IntPtr(4)}); err != nil {
			t.Fatal(err)
		}
	}

	d, err := svc.Disciplines.Create(ctx, dto.DisciplineRequest{
		Code: "MC202", Name: "Data Structures", Credits: testutil.IntPtr(6), Requirements: []string{"MC002", "mc001"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !reflect.DeepEqual(d.PrerequisiteCodes, []string{"mc002", "mc001"}) {
		t.Errorf("prerequisites = %v", d.PrerequisiteCodes)
	}

	_, err = svc.Disciplines.Create(ctx, dto.DisciplineRequest{
		Code: "MC303", Name: "x", Credits: testutil.IntPtr(2), Requirements: []string{"MC999"},
	})
	if v, ok := apperrors.AsValidation(err); !ok || v.Fields["requirements"] != apperrors.ReasonRequired {
		t.Errorf("unknown prerequisite: got %v", err)
	}
}

func TestCatalogRemovalCascades(t *testing.T) {
	svc := newServices(t)
	f := seed(t, svc)
	ctx := context.Background()

	if _, err := svc.Requirements.Create(ctx, f.block, dto.RequirementRequest{Mask: "MC---"}); err != nil {
		t.Fatal(err)
	}

	if err := svc.Catalogs.Delete(ctx, f.catalog); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Catalogs.GetByYear(ctx, 2014); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("catalog still present: %v", err)
	}
	if _, err := svc.Blocks.GetByCode(ctx, f.modality, "b1"); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("block still present: %v", err)
	}
	if _, err := svc.Requirements.GetByCode(ctx, f.block, "MC---"); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("requirement still present: %v", err)
	}
	if _, err := svc.Courses.GetByCode(ctx, "42"); err != nil {
		t.Errorf("course should survive: %v", err)
	}
}

func TestDisciplineRemovalCascades(t *testing.T) {
	svc := newServices(t)
	f := seed(t, svc)
	ctx := context.Background()

	d, err := svc.Disciplines.Create(ctx, dto.DisciplineRequest{Code: "MC102", Name: "Programming", Credits: testutil.IntPtr(6)})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Requirements.Create(ctx, f.block, dto.RequirementRequest{Discipline: "mc102"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Offerings.Create(ctx, d, dto.OfferingRequest{
		Code: "A", Year: testutil.IntPtr(2014), Period: "1", Vacancy: testutil.IntPtr(60),
	}); err != nil {
		t.Fatal(err)
	}

	if err := svc.Disciplines.Delete(ctx, d); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Requirements.GetByCode(ctx, f.block, "mc102"); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("requirement still present: %v", err)
	}
	if _, err := svc.Offerings.GetByKey(ctx, d, 2014, "1", "a"); !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("offering still present: %v", err)
	}
}

func TestOfferingReservations(t *testing.T) {
	svc := newServices(t)
	seed(t, svc)
	ctx := context.Background()

	d, err := svc.Disciplines.Create(ctx, dto.DisciplineRequest{Code: "MC102", Name: "Programming", Credits: testutil.IntPtr(6)})
	if err != nil {
		t.Fatal(err)
	}

	o, err := svc.Offerings.Create(ctx, d, dto.OfferingRequest{
		Code: "A", Year: testutil.IntPtr(2014), Period: "1", Vacancy: testutil.IntPtr(60),
		Schedules:    []dto.ScheduleRequest{{Weekday: testutil.IntPtr(2), Hour: testutil.IntPtr(10), Room: "CB01"}},
		Reservations: []dto.ReservationRequest{{Course: "42", CatalogYear: testutil.IntPtr(2014)}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if o.Code != "a" {
		t.Errorf("code = %q", o.Code)
	}

	got, err := svc.Offerings.GetByKey(ctx, d, 2014, "1", "A")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Reservations) != 1 || got.Reservations[0].Course == nil || got.Reservations[0].Course.Code != "42" {
		t.Errorf("reservations = %+v", got.Reservations)
	}

	_, err = svc.Offerings.Create(ctx, d, dto.OfferingRequest{
		Code: "B", Year: testutil.IntPtr(2014), Period: "1", Vacancy: testutil.IntPtr(30),
		Schedules:    []dto.ScheduleRequest{{Hour: testutil.IntPtr(8)}},
		Reservations: []dto.ReservationRequest{{Course: "99"}},
	})
	v, ok := apperrors.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	want := map[string]string{"schedules[0].weekday": "required", "reservations[0].course": "required"}
	if !reflect.DeepEqual(v.Fields, want) {
		t.Errorf("fields = %v, want %v", v.Fields, want)
	}
}
