package handlers

import (
	"database/sql"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Yogabut/task-management/internal/config"
	"github.com/Yogabut/task-management/internal/models"
	"github.com/Yogabut/task-management/pkg/logger"
)

// loadProject reads a project row and resolves its creator and team
// member joins. Returns sql.ErrNoRows when the id does not exist.
func loadProject(projectID int) (models.Project, error) {
	var (
		project   models.Project
		createdBy int
	)
	err := config.DB.QueryRow(`
		SELECT id, name, description, status, priority, start_date, end_date, budget, progress,
			created_by, created_at, updated_at
		FROM projects WHERE id = $1`, projectID).Scan(
		&project.ID, &project.Name, &project.Description, &project.Status, &project.Priority,
		&project.StartDate, &project.EndDate, &project.Budget, &project.Progress,
		&createdBy, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return models.Project{}, err
	}
	project.CreatedBy, err = loadUserSummary(createdBy)
	if err != nil {
		return models.Project{}, err
	}
	project.TeamMembers, err = loadTeamMembers(projectID)
	if err != nil {
		return models.Project{}, err
	}
	return project, nil
}

// GetProjects lists projects visible to the principal, each enriched
// with its task stats. Admins see everything; members only projects they
// are a team member of.
func GetProjects(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)
	role := c.Locals("role").(string)
	status := c.Query("status")

	var (
		rows *sql.Rows
		err  error
	)
	if role == models.RoleAdmin {
		if status != "" {
			rows, err = config.DB.Query(
				"SELECT id FROM projects WHERE status = $1 ORDER BY created_at DESC", status)
		} else {
			rows, err = config.DB.Query("SELECT id FROM projects ORDER BY created_at DESC")
		}
	} else {
		if status != "" {
			rows, err = config.DB.Query(`
				SELECT p.id FROM projects p
				JOIN project_members pm ON pm.project_id = p.id
				WHERE pm.user_id = $1 AND p.status = $2
				ORDER BY p.created_at DESC`, userID, status)
		} else {
			rows, err = config.DB.Query(`
				SELECT p.id FROM projects p
				JOIN project_members pm ON pm.project_id = p.id
				WHERE pm.user_id = $1
				ORDER BY p.created_at DESC`, userID)
		}
	}
	if err != nil {
		logger.ErrorLogger.Error("Error fetching projects", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			logger.ErrorLogger.Error("Error scanning projects", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		logger.ErrorLogger.Error("Error iterating over projects", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	projects := []models.ProjectWithStats{}
	for _, id := range ids {
		project, err := loadProject(id)
		if err != nil {
			logger.ErrorLogger.Error("Error loading project", zap.Int("project_id", id), zap.Error(err))
			return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
		}
		stats, err := projectTaskStats(id)
		if err != nil {
			logger.ErrorLogger.Error("Error counting project tasks", zap.Int("project_id", id), zap.Error(err))
			return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
		}
		projects = append(projects, models.ProjectWithStats{Project: project, TaskStats: stats})
	}

	logger.AuditLogger.Info("Projects fetched", zap.Int("count", len(projects)), zap.String("role", role))
	return c.JSON(fiber.Map{"success": true, "count": len(projects), "data": projects})
}

// GetProjectByID returns a project with its full task list and stats.
// Existence is checked before authorization: missing ids are 404 for
// everyone, real ids are 403 for non-members.
func GetProjectByID(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)
	role := c.Locals("role").(string)

	projectID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid project ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Invalid project ID"})
	}

	project, err := loadProject(projectID)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{"message": "Project not found"})
	}
	if err != nil {
		logger.ErrorLogger.Error("Error fetching project", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	if role != models.RoleAdmin {
		member, err := isTeamMember(projectID, userID)
		if err != nil {
			logger.ErrorLogger.Error("Error checking membership", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
		}
		if !member {
			logger.SecurityLogger.Warn("Project access denied",
				zap.Int("user_id", userID), zap.Int("project_id", projectID))
			return c.Status(403).JSON(fiber.Map{"message": "Not authorized to access this project"})
		}
	}

	tasks, err := fetchTasks(
		"SELECT "+taskColumns+" FROM tasks t WHERE t.project_id = $1 ORDER BY t.created_at DESC",
		projectID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching project tasks", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	stats, err := projectTaskStats(projectID)
	if err != nil {
		logger.ErrorLogger.Error("Error counting project tasks", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	detail := models.ProjectDetail{Project: project, Tasks: tasks, TaskStats: stats}
	return c.JSON(fiber.Map{"success": true, "data": detail})
}

// CreateProject creates a project with defaulted status, priority,
// budget and progress. Admin only (route middleware).
func CreateProject(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	type CreateProjectRequest struct {
		Name        string   `json:"name" validate:"required"`
		Description string   `json:"description" validate:"required"`
		StartDate   string   `json:"startDate" validate:"required"`
		EndDate     string   `json:"endDate" validate:"required"`
		TeamMembers []int    `json:"teamMembers"`
		Priority    string   `json:"priority" validate:"omitempty,oneof=Low Medium High"`
		Status      string   `json:"status" validate:"omitempty,oneof=Planning Active 'On Hold' Completed Cancelled"`
		Budget      *float64 `json:"budget"`
	}

	var req CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create project", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error in create project", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Please provide name, description, start date, and end date",
			"error":   err.Error(),
		})
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid start date"})
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid end date"})
	}
	if startDate.After(endDate) {
		return c.Status(400).JSON(fiber.Map{"message": "End date must be after start date"})
	}

	status := req.Status
	if status == "" {
		status = models.ProjectPlanning
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	budget := 0.0
	if req.Budget != nil {
		budget = *req.Budget
	}
	if budget < 0 {
		return c.Status(400).JSON(fiber.Map{"message": "Budget must not be negative"})
	}

	var projectID int
	err = config.DB.QueryRow(`
		INSERT INTO projects (name, description, status, priority, start_date, end_date, budget, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		req.Name, req.Description, status, priority, startDate, endDate, budget, userID).Scan(&projectID)
	if err != nil {
		logger.ErrorLogger.Error("Error creating project", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	for _, memberID := range req.TeamMembers {
		_, err = config.DB.Exec(
			"INSERT INTO project_members (project_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			projectID, memberID)
		if err != nil {
			logger.ErrorLogger.Error("Error adding team member", zap.Int("member_id", memberID), zap.Error(err))
			return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
		}
	}

	project, err := loadProject(projectID)
	if err != nil {
		logger.ErrorLogger.Error("Error loading created project", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	logger.AuditLogger.Info("Project created", zap.Int("project_id", projectID), zap.Int("user_id", userID))
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Project created successfully",
		"data":    project,
	})
}

// UpdateProject applies a field-by-field patch. Pointer fields
// distinguish "not provided" from zero values: budget 0 and progress 0
// are valid updates. Dates are re-validated on the merged result.
func UpdateProject(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid project ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Invalid project ID"})
	}

	project, err := loadProject(projectID)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{"message": "Project not found"})
	}
	if err != nil {
		logger.ErrorLogger.Error("Error fetching project", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	type UpdateProjectRequest struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Status      *string  `json:"status"`
		StartDate   *string  `json:"startDate"`
		EndDate     *string  `json:"endDate"`
		TeamMembers *[]int   `json:"teamMembers"`
		Priority    *string  `json:"priority"`
		Budget      *float64 `json:"budget"`
		Progress    *int     `json:"progress"`
	}

	var req UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update project", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Status != nil {
		if !models.ValidProjectStatus(*req.Status) {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid status"})
		}
		project.Status = *req.Status
	}
	if req.Priority != nil {
		if !models.ValidPriority(*req.Priority) {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid priority"})
		}
		project.Priority = *req.Priority
	}
	if req.StartDate != nil {
		project.StartDate, err = parseDate(*req.StartDate)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid start date"})
		}
	}
	if req.EndDate != nil {
		project.EndDate, err = parseDate(*req.EndDate)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid end date"})
		}
	}
	if req.Budget != nil {
		if *req.Budget < 0 {
			return c.Status(400).JSON(fiber.Map{"message": "Budget must not be negative"})
		}
		project.Budget = *req.Budget
	}
	if req.Progress != nil {
		if *req.Progress < 0 || *req.Progress > 100 {
			return c.Status(400).JSON(fiber.Map{"message": "Progress must be between 0 and 100"})
		}
		project.Progress = *req.Progress
	}

	// Merged-date invariant
	if project.StartDate.After(project.EndDate) {
		return c.Status(400).JSON(fiber.Map{"message": "End date must be after start date"})
	}

	_, err = config.DB.Exec(`
		UPDATE projects
		SET name = $1, description = $2, status = $3, priority = $4, start_date = $5,
			end_date = $6, budget = $7, progress = $8, updated_at = CURRENT_TIMESTAMP
		WHERE id = $9`,
		project.Name, project.Description, project.Status, project.Priority,
		project.StartDate, project.EndDate, project.Budget, project.Progress, projectID)
	if err != nil {
		logger.ErrorLogger.Error("Error updating project", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	if req.TeamMembers != nil {
		if _, err = config.DB.Exec("DELETE FROM project_members WHERE project_id = $1", projectID); err != nil {
			logger.ErrorLogger.Error("Error clearing team members", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
		}
		for _, memberID := range *req.TeamMembers {
			_, err = config.DB.Exec(
				"INSERT INTO project_members (project_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
				projectID, memberID)
			if err != nil {
				logger.ErrorLogger.Error("Error adding team member", zap.Int("member_id", memberID), zap.Error(err))
				return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
			}
		}
	}

	updated, err := loadProject(projectID)
	if err != nil {
		logger.ErrorLogger.Error("Error loading updated project", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	logger.AuditLogger.Info("Project updated", zap.Int("project_id", projectID))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Project updated successfully",
		"data":    updated,
	})
}

// DeleteProject removes a project only when it owns zero tasks. The
// count check and the delete are not transactional.
func DeleteProject(c *fiber.Ctx) error {
	projectID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid project ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Invalid project ID"})
	}

	var exists bool
	err = config.DB.QueryRow("SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)", projectID).Scan(&exists)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching project", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}
	if !exists {
		return c.Status(404).JSON(fiber.Map{"message": "Project not found"})
	}

	var taskCount int
	err = config.DB.QueryRow("SELECT COUNT(*) FROM tasks WHERE project_id = $1", projectID).Scan(&taskCount)
	if err != nil {
		logger.ErrorLogger.Error("Error counting project tasks", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}
	if taskCount > 0 {
		return c.Status(400).JSON(fiber.Map{
			"message": fmt.Sprintf("Cannot delete project. It has %d task(s). Please delete or reassign tasks first.", taskCount),
		})
	}

	if _, err = config.DB.Exec("DELETE FROM projects WHERE id = $1", projectID); err != nil {
		logger.ErrorLogger.Error("Error deleting project", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	logger.AuditLogger.Info("Project deleted", zap.Int("project_id", projectID))
	return c.JSON(fiber.Map{"success": true, "message": "Project deleted successfully"})
}

// GetProjectTasks lists a project's tasks with an optional status
// filter. Visibility follows GetProjectByID.
func GetProjectTasks(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)
	role := c.Locals("role").(string)

	projectID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid project ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Invalid project ID"})
	}

	var exists bool
	err = config.DB.QueryRow("SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)", projectID).Scan(&exists)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching project", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}
	if !exists {
		return c.Status(404).JSON(fiber.Map{"message": "Project not found"})
	}

	if role != models.RoleAdmin {
		member, err := isTeamMember(projectID, userID)
		if err != nil {
			logger.ErrorLogger.Error("Error checking membership", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
		}
		if !member {
			logger.SecurityLogger.Warn("Project tasks access denied",
				zap.Int("user_id", userID), zap.Int("project_id", projectID))
			return c.Status(403).JSON(fiber.Map{"message": "Not authorized to access this project"})
		}
	}

	status := c.Query("status")
	var tasks []models.Task
	if status != "" {
		tasks, err = fetchTasks(
			"SELECT "+taskColumns+" FROM tasks t WHERE t.project_id = $1 AND t.status = $2 ORDER BY t.created_at DESC",
			projectID, status)
	} else {
		tasks, err = fetchTasks(
			"SELECT "+taskColumns+" FROM tasks t WHERE t.project_id = $1 ORDER BY t.created_at DESC",
			projectID)
	}
	if err != nil {
		logger.ErrorLogger.Error("Error fetching project tasks", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "count": len(tasks), "data": tasks})
}

// GetProjectStats returns the four status counts plus completion
// percentage for one project.
func GetProjectStats(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)
	role := c.Locals("role").(string)

	projectID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid project ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Invalid project ID"})
	}

	var exists bool
	err = config.DB.QueryRow("SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)", projectID).Scan(&exists)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching project", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}
	if !exists {
		return c.Status(404).JSON(fiber.Map{"message": "Project not found"})
	}

	if role != models.RoleAdmin {
		member, err := isTeamMember(projectID, userID)
		if err != nil {
			logger.ErrorLogger.Error("Error checking membership", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
		}
		if !member {
			logger.SecurityLogger.Warn("Project stats access denied",
				zap.Int("user_id", userID), zap.Int("project_id", projectID))
			return c.Status(403).JSON(fiber.Map{"message": "Not authorized to access this project"})
		}
	}

	stats, err := projectTaskStats(projectID)
	if err != nil {
		logger.ErrorLogger.Error("Error counting project tasks", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": models.ProjectStats{
			TotalTasks:           stats.Total,
			CompletedTasks:       stats.Completed,
			PendingTasks:         stats.Pending,
			InProgressTasks:      stats.InProgress,
			CompletionPercentage: completionPercentage(stats.Completed, stats.Total),
		},
	})
}
