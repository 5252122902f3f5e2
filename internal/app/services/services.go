package services

import (
	"github.com/yigit/unicatalog/internal/app/cascade"
	"github.com/yigit/unicatalog/internal/app/repositories"
	"github.com/yigit/unicatalog/internal/pkg/apperrors"
	"github.com/yigit/unicatalog/internal/pkg/validation"
)

// Services bundles the catalog services sharing one store and one
// cascade graph.
type Services struct {
	Courses      CourseService
	Catalogs     *CatalogService
	Modalities   *ModalityService
	Blocks       *BlockService
	Requirements *RequirementService
	Disciplines  *DisciplineService
	Offerings    *OfferingService
}

// NewServices builds every service.
func NewServices(repos *repositories.Repositories, graph *cascade.Registry) *Services {
	return &Services{
		Courses:      NewCourseService(repos.Courses, graph),
		Catalogs:     NewCatalogService(repos.Catalogs, graph),
		Modalities:   NewModalityService(repos.Modalities, repos.Courses, graph),
		Blocks:       NewBlockService(repos.Blocks, graph),
		Requirements: NewRequirementService(repos.Requirements, repos.Disciplines, graph),
		Disciplines:  NewDisciplineService(repos.Disciplines, graph),
		Offerings:    NewOfferingService(repos.Offerings, repos.Courses, graph),
	}
}

// withReferences folds unresolved references into the entity's own field
// validation, so a single 400 lists every problem.
func withReferences(entity interface{}, refs *apperrors.ValidationError) error {
	if refs.Empty() {
		return nil
	}
	if v, ok := apperrors.AsValidation(validation.Struct(entity)); ok {
		refs.Merge(v)
	}
	return refs
}
