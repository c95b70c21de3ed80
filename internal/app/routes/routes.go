package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gesapp/ges-backend/internal/app/controllers"
	"github.com/gesapp/ges-backend/internal/app/models"
	"github.com/gesapp/ges-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	programController *controllers.ProgramController,
	subjectController *controllers.SubjectController,
	scheduleController *controllers.ScheduleController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Public auth routes ---
	v1.POST("/students/register/", authController.RegisterStudent)
	v1.POST("/students/login/", authController.LoginStudent)
	v1.POST("/teachers/login/", authController.LoginTeacher)
	v1.POST("/auth/refresh", authController.Refresh)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		me := authenticated.Group("/users/me")
		{
			me.GET("/", userController.GetProfile)
			me.PUT("/", userController.UpdateProfile)
			me.POST("/avatar", userController.UpdateAvatar)
		}

		// Management routes for teachers and admins. Superusers pass
		// the gate regardless of role.
		management := authenticated.Group("")
		management.Use(authMiddleware.RolesRequired(models.RoleTeacher, models.RoleAdmin))
		{
			programs := management.Group("/programs")
			{
				programs.GET("/", programController.ListPrograms)
				programs.POST("/", programController.CreateProgram)
				programs.GET("/:id/", programController.GetProgram)
				programs.PUT("/:id/", programController.UpdateProgram)
				programs.DELETE("/:id/", programController.DeleteProgram)
				programs.GET("/:id/students/", programController.ListStudents)
				programs.POST("/:id/students/", programController.EnrollStudent)
			}

			subjects := management.Group("/subjects")
			{
				subjects.GET("/", subjectController.ListSubjects)
				subjects.POST("/", subjectController.CreateSubject)
				subjects.GET("/:id/", subjectController.GetSubject)
				subjects.PUT("/:id/", subjectController.UpdateSubject)
				subjects.DELETE("/:id/", subjectController.DeleteSubject)
				subjects.PUT("/:id/teachers/", subjectController.AssignTeachers)
			}

			schedules := management.Group("/schedules")
			{
				schedules.GET("/", scheduleController.ListSchedules)
				schedules.POST("/", scheduleController.CreateSchedule)
				schedules.GET("/:id/", scheduleController.GetSchedule)
				schedules.PUT("/:id/", scheduleController.UpdateSchedule)
				schedules.DELETE("/:id/", scheduleController.DeleteSchedule)
			}
		}

		// Account provisioning is admin-only
		admin := authenticated.Group("")
		admin.Use(authMiddleware.RolesRequired(models.RoleAdmin))
		{
			admin.POST("/users/", userController.CreateUser)
		}
	}
}
