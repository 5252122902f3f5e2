package cascade

import (
	"github.com/rs/zerolog"

	"github.com/yigit/unicatalog/internal/app/repositories"
	"github.com/yigit/unicatalog/internal/pkg/metrics"
)

// NewGraph wires the catalog's dependency rules onto the repositories.
func NewGraph(repos *repositories.Repositories, limit int, m *metrics.Metrics, logger zerolog.Logger) *Registry {
	r := NewRegistry(limit, m, logger)

	r.Handle(Course, repos.Courses.Delete)
	r.Handle(Catalog, repos.Catalogs.Delete)
	r.Handle(Modality, repos.Modalities.Delete)
	r.Handle(Block, repos.Blocks.Delete)
	r.Handle(Requirement, repos.Requirements.Delete)
	r.Handle(Discipline, repos.Disciplines.Remove)
	r.Handle(Offering, repos.Offerings.Delete)

	r.Cascade(Catalog, Modality, repos.Modalities.IDsByCatalog)
	r.Cascade(Course, Modality, repos.Modalities.IDsByCourse)
	r.Cascade(Modality, Block, repos.Blocks.IDsByModality)
	r.Cascade(Block, Requirement, repos.Requirements.IDsByBlock)
	r.Cascade(Discipline, Offering, repos.Offerings.IDsByDiscipline)
	r.Cascade(Discipline, Requirement, repos.Requirements.IDsByDiscipline)

	r.Propagate(Course, Modality, repos.Modalities.IDsByCourse, repos.Modalities.SetCourseCode)
	r.Propagate(Discipline, Requirement, repos.Requirements.IDsByDiscipline, repos.Requirements.SetCode)

	return r
}
