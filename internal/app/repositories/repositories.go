package repositories

import "github.com/yigit/unicatalog/internal/db"

// Repositories holds all the repository instances
type Repositories struct {
	Courses      *CourseRepository
	Catalogs     *CatalogRepository
	Modalities   *ModalityRepository
	Blocks       *BlockRepository
	Requirements *RequirementRepository
	Disciplines  *DisciplineRepository
	Offerings    *OfferingRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.DB) *Repositories {
	return &Repositories{
		Courses:      NewCourseRepository(database),
		Catalogs:     NewCatalogRepository(database),
		Modalities:   NewModalityRepository(database),
		Blocks:       NewBlockRepository(database),
		Requirements: NewRequirementRepository(database),
		Disciplines:  NewDisciplineRepository(database),
		Offerings:    NewOfferingRepository(database),
	}
}
