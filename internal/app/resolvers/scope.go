package resolvers

import (
	"github.com/gin-gonic/gin"

	"github.com/yigit/unicatalog/internal/app/models"
)

const scopeKey = "catalog.scope"

// Scope holds the entities resolved from the path so far. Resolvers fill
// it outermost first, so a handler sees every ancestor of its resource.
type Scope struct {
	Course      *models.Course
	Catalog     *models.Catalog
	Modality    *models.Modality
	Block       *models.Block
	Requirement *models.Requirement
	Discipline  *models.Discipline
	Offering    *models.Offering
}

// ScopeFrom returns the request's scope, creating it on first use.
func ScopeFrom(c *gin.Context) *Scope {
	if v, ok := c.Get(scopeKey); ok {
		if s, ok := v.(*Scope); ok {
			return s
		}
	}
	s := &Scope{}
	c.Set(scopeKey, s)
	return s
}
