package v1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Yogabut/task-management/internal/api/v1/handlers"
	"github.com/Yogabut/task-management/internal/middleware"
)

func RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)
	auth.Get("/profile", middleware.UseToken, handlers.GetProfile)
	auth.Put("/profile", middleware.UseToken, handlers.UpdateProfile)
	auth.Post("/upload-image", middleware.UseToken, handlers.UploadProfileImage)

	// Users
	users := api.Group("/users", middleware.UseToken, middleware.AdminOnly)
	users.Get("/", handlers.GetAllUsers)
	users.Get("/:id", handlers.GetUser)

	// Projects
	projects := api.Group("/projects", middleware.UseToken)
	projects.Get("/", handlers.GetProjects)
	projects.Post("/", middleware.AdminOnly, handlers.CreateProject)
	projects.Get("/:id", handlers.GetProjectByID)
	projects.Put("/:id", middleware.AdminOnly, handlers.UpdateProject)
	projects.Delete("/:id", middleware.AdminOnly, handlers.DeleteProject)
	projects.Get("/:id/tasks", handlers.GetProjectTasks)
	projects.Get("/:id/stats", handlers.GetProjectStats)

	// Tasks
	tasks := api.Group("/tasks", middleware.UseToken)
	tasks.Get("/dashboard-data", middleware.AdminOnly, handlers.GetDashboardData)
	tasks.Get("/user-dashboard-data", handlers.GetUserDashboardData)
	tasks.Get("/", handlers.GetTasks)
	tasks.Post("/", middleware.AdminOnly, handlers.CreateTask)
	tasks.Get("/:id", handlers.GetTaskByID)
	tasks.Put("/:id", middleware.AdminOnly, handlers.UpdateTask)
	tasks.Delete("/:id", middleware.AdminOnly, handlers.DeleteTask)
	tasks.Put("/:id/status", handlers.UpdateTaskStatus)
	tasks.Put("/:id/todo", handlers.UpdateTaskChecklist)

	// Reports
	reports := api.Group("/reports", middleware.UseToken)
	reports.Get("/export/tasks", middleware.AdminOnly, handlers.ExportTasksReport)
	reports.Get("/export/user", handlers.ExportUserReport)
}
