// Package resolvers turns path segments into entities. Each resolver is a
// gin middleware that looks its entity up by natural key under the
// ancestors already in the Scope, and aborts with 404 when nothing matches.
package resolvers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unicatalog/internal/app/services"
	"github.com/yigit/unicatalog/internal/middleware"
)

// Path parameter names
const (
	ParamCourse      = "course"
	ParamCatalog     = "catalog"
	ParamModality    = "modality"
	ParamBlock       = "block"
	ParamRequirement = "requirement"
	ParamDiscipline  = "discipline"
	ParamOffering    = "offering"
)

// Resolvers builds the resolver middleware over the catalog services
type Resolvers struct {
	svc *services.Services
}

// New creates resolvers backed by svc
func New(svc *services.Services) *Resolvers {
	return &Resolvers{svc: svc}
}

func notFound(c *gin.Context) {
	c.AbortWithStatus(http.StatusNotFound)
}

// Course resolves :course by code.
func (r *Resolvers) Course() gin.HandlerFunc {
	return func(c *gin.Context) {
		course, err := r.svc.Courses.GetByCode(c.Request.Context(), c.Param(ParamCourse))
		if err != nil {
			middleware.HandleAPIError(c, err)
			return
		}
		ScopeFrom(c).Course = course
		c.Next()
	}
}

// Catalog resolves :catalog by year.
func (r *Resolvers) Catalog() gin.HandlerFunc {
	return func(c *gin.Context) {
		year, err := strconv.Atoi(c.Param(ParamCatalog))
		if err != nil {
			notFound(c)
			return
		}
		catalog, err := r.svc.Catalogs.GetByYear(c.Request.Context(), year)
		if err != nil {
			middleware.HandleAPIError(c, err)
			return
		}
		ScopeFrom(c).Catalog = catalog
		c.Next()
	}
}

// Modality resolves :modality as "<courseCode>-<code>" within the catalog.
func (r *Resolvers) Modality() gin.HandlerFunc {
	return func(c *gin.Context) {
		courseCode, code, ok := ParseModalityKey(c.Param(ParamModality))
		if !ok {
			notFound(c)
			return
		}
		scope := ScopeFrom(c)
		modality, err := r.svc.Modalities.GetByKey(c.Request.Context(), scope.Catalog, courseCode, code)
		if err != nil {
			middleware.HandleAPIError(c, err)
			return
		}
		scope.Modality = modality
		c.Next()
	}
}

// Block resolves :block by code within the modality.
func (r *Resolvers) Block() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := ScopeFrom(c)
		block, err := r.svc.Blocks.GetByCode(c.Request.Context(), scope.Modality, c.Param(ParamBlock))
		if err != nil {
			middleware.HandleAPIError(c, err)
			return
		}
		scope.Block = block
		c.Next()
	}
}

// Requirement resolves :requirement by code within the block.
func (r *Resolvers) Requirement() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := ScopeFrom(c)
		requirement, err := r.svc.Requirements.GetByCode(c.Request.Context(), scope.Block, c.Param(ParamRequirement))
		if err != nil {
			middleware.HandleAPIError(c, err)
			return
		}
		scope.Requirement = requirement
		c.Next()
	}
}

// Discipline resolves :discipline by code.
func (r *Resolvers) Discipline() gin.HandlerFunc {
	return func(c *gin.Context) {
		discipline, err := r.svc.Disciplines.GetByCode(c.Request.Context(), c.Param(ParamDiscipline))
		if err != nil {
			middleware.HandleAPIError(c, err)
			return
		}
		ScopeFrom(c).Discipline = discipline
		c.Next()
	}
}

// Offering resolves :offering as "<year>-<period>-<code>" within the
// discipline.
func (r *Resolvers) Offering() gin.HandlerFunc {
	return func(c *gin.Context) {
		year, period, code, ok := ParseOfferingKey(c.Param(ParamOffering))
		if !ok {
			notFound(c)
			return
		}
		scope := ScopeFrom(c)
		offering, err := r.svc.Offerings.GetByKey(c.Request.Context(), scope.Discipline, year, period, code)
		if err != nil {
			middleware.HandleAPIError(c, err)
			return
		}
		scope.Offering = offering
		c.Next()
	}
}
