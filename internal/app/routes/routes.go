package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unicatalog/internal/app/auth"
	"github.com/yigit/unicatalog/internal/app/controllers"
	"github.com/yigit/unicatalog/internal/app/resolvers"
	"github.com/yigit/unicatalog/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Course      *controllers.CourseController
	Catalog     *controllers.CatalogController
	Modality    *controllers.ModalityController
	Block       *controllers.BlockController
	Requirement *controllers.RequirementController
	Discipline  *controllers.DisciplineController
	Offering    *controllers.OfferingController
}

// SetupRouter configures all application routes. Path segments are
// resolved before the handler runs, so an unknown ancestor answers 404;
// mutating routes additionally require their capability.
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	res *resolvers.Resolvers,
	authMiddleware *middleware.AuthMiddleware,
) {
	status := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/", status)
	router.GET("/health", status)

	// Courses
	courses := router.Group("/courses")
	{
		courses.POST("", authMiddleware.Can(auth.ChangeCourse), ctrl.Course.CreateCourse)
		courses.GET("", ctrl.Course.GetAllCourses)

		course := courses.Group("/:"+resolvers.ParamCourse, res.Course())
		course.GET("", ctrl.Course.GetCourse)
		course.PUT("", authMiddleware.Can(auth.ChangeCourse), ctrl.Course.UpdateCourse)
		course.DELETE("", authMiddleware.Can(auth.ChangeCourse), ctrl.Course.DeleteCourse)
	}

	// Catalogs and the curriculum nested below them
	catalogs := router.Group("/catalogs")
	{
		catalogs.POST("", authMiddleware.Can(auth.ChangeCatalog), ctrl.Catalog.CreateCatalog)
		catalogs.GET("", ctrl.Catalog.GetAllCatalogs)

		catalog := catalogs.Group("/:"+resolvers.ParamCatalog, res.Catalog())
		catalog.GET("", ctrl.Catalog.GetCatalog)
		catalog.PUT("", authMiddleware.Can(auth.ChangeCatalog), ctrl.Catalog.UpdateCatalog)
		catalog.DELETE("", authMiddleware.Can(auth.ChangeCatalog), ctrl.Catalog.DeleteCatalog)

		modalities := catalog.Group("/modalities")
		modalities.POST("", authMiddleware.Can(auth.ChangeModality), ctrl.Modality.CreateModality)
		modalities.GET("", ctrl.Modality.GetAllModalities)

		modality := modalities.Group("/:"+resolvers.ParamModality, res.Modality())
		modality.GET("", ctrl.Modality.GetModality)
		modality.PUT("", authMiddleware.Can(auth.ChangeModality), ctrl.Modality.UpdateModality)
		modality.DELETE("", authMiddleware.Can(auth.ChangeModality), ctrl.Modality.DeleteModality)

		blocks := modality.Group("/blocks")
		blocks.POST("", authMiddleware.Can(auth.ChangeBlock), ctrl.Block.CreateBlock)
		blocks.GET("", ctrl.Block.GetAllBlocks)

		block := blocks.Group("/:"+resolvers.ParamBlock, res.Block())
		block.GET("", ctrl.Block.GetBlock)
		block.PUT("", authMiddleware.Can(auth.ChangeBlock), ctrl.Block.UpdateBlock)
		block.DELETE("", authMiddleware.Can(auth.ChangeBlock), ctrl.Block.DeleteBlock)

		requirements := block.Group("/requirements")
		requirements.POST("", authMiddleware.Can(auth.ChangeRequirement), ctrl.Requirement.CreateRequirement)
		requirements.GET("", ctrl.Requirement.GetAllRequirements)

		requirement := requirements.Group("/:"+resolvers.ParamRequirement, res.Requirement())
		requirement.GET("", ctrl.Requirement.GetRequirement)
		requirement.PUT("", authMiddleware.Can(auth.ChangeRequirement), ctrl.Requirement.UpdateRequirement)
		requirement.DELETE("", authMiddleware.Can(auth.ChangeRequirement), ctrl.Requirement.DeleteRequirement)
	}

	// Disciplines and their offerings
	disciplines := router.Group("/disciplines")
	{
		disciplines.POST("", authMiddleware.Can(auth.ChangeDiscipline), ctrl.Discipline.CreateDiscipline)
		disciplines.GET("", ctrl.Discipline.GetAllDisciplines)

		discipline := disciplines.Group("/:"+resolvers.ParamDiscipline, res.Discipline())
		discipline.GET("", ctrl.Discipline.GetDiscipline)
		discipline.PUT("", authMiddleware.Can(auth.ChangeDiscipline), ctrl.Discipline.UpdateDiscipline)
		discipline.DELETE("", authMiddleware.Can(auth.ChangeDiscipline), ctrl.Discipline.DeleteDiscipline)

		offerings := discipline.Group("/offerings")
		offerings.POST("", authMiddleware.Can(auth.ChangeOffering), ctrl.Offering.CreateOffering)
		offerings.GET("", ctrl.Offering.GetAllOfferings)

		offering := offerings.Group("/:"+resolvers.ParamOffering, res.Offering())
		offering.GET("", ctrl.Offering.GetOffering)
		offering.PUT("", authMiddleware.Can(auth.ChangeOffering), ctrl.Offering.UpdateOffering)
		offering.DELETE("", authMiddleware.Can(auth.ChangeOffering), ctrl.Offering.DeleteOffering)
	}
}
