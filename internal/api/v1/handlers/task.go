package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Yogabut/task-management/internal/config"
	"github.com/Yogabut/task-management/internal/models"
	"github.com/Yogabut/task-management/pkg/logger"
)

func taskCacheKey(taskID int) string {
	return fmt.Sprintf("task:%d", taskID)
}

func invalidateTaskCache(taskID int) {
	config.RedisClient.Del(config.Ctx, taskCacheKey(taskID))
}

// canTouchTask reports whether the principal may read or mutate the
// task: admins always, members when assigned or when they created it.
func canTouchTask(taskID, userID int, role string, createdBy int) (bool, error) {
	if role == models.RoleAdmin {
		return true, nil
	}
	if createdBy == userID {
		return true, nil
	}
	return isTaskAssignee(taskID, userID)
}

// GetTasks lists tasks visible to the principal with an optional status
// filter. Admins see all tasks; members only those assigned to them or
// created by them.
func GetTasks(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)
	role := c.Locals("role").(string)
	status := c.Query("status")

	var (
		tasks []models.Task
		err   error
	)
	if role == models.RoleAdmin {
		if status != "" {
			tasks, err = fetchTasks(
				"SELECT "+taskColumns+" FROM tasks t WHERE t.status = $1 ORDER BY t.created_at DESC", status)
		} else {
			tasks, err = fetchTasks(
				"SELECT " + taskColumns + " FROM tasks t ORDER BY t.created_at DESC")
		}
	} else {
		memberQuery := `
			SELECT DISTINCT ` + taskColumns + `
			FROM tasks t
			LEFT JOIN task_assignees ta ON ta.task_id = t.id
			WHERE (ta.user_id = $1 OR t.created_by = $1)`
		if status != "" {
			tasks, err = fetchTasks(memberQuery+" AND t.status = $2 ORDER BY t.created_at DESC", userID, status)
		} else {
			tasks, err = fetchTasks(memberQuery+" ORDER BY t.created_at DESC", userID)
		}
	}
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	logger.AuditLogger.Info("Tasks fetched", zap.Int("count", len(tasks)), zap.String("role", role))
	return c.JSON(fiber.Map{"success": true, "count": len(tasks), "data": tasks})
}

// GetTaskByID returns one task. Read-through cached; existence checked
// before authorization.
func GetTaskByID(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)
	role := c.Locals("role").(string)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Invalid task ID"})
	}

	cacheKey := taskCacheKey(taskID)
	if cached, err := config.RedisClient.Get(config.Ctx, cacheKey).Result(); err == nil {
		var task models.Task
		if err = json.Unmarshal([]byte(cached), &task); err == nil {
			creatorID := 0
			if task.CreatedBy != nil {
				creatorID = task.CreatedBy.ID
			}
			allowed, err := canTouchTask(taskID, userID, role, creatorID)
			if err == nil && allowed {
				return c.JSON(fiber.Map{"success": true, "data": task})
			}
			if err == nil {
				logger.SecurityLogger.Warn("Task access denied",
					zap.Int("user_id", userID), zap.Int("task_id", taskID))
				return c.Status(403).JSON(fiber.Map{"message": "Not authorized to access this task"})
			}
		}
	}

	row := config.DB.QueryRow(
		"SELECT "+taskColumns+" FROM tasks t WHERE t.id = $1", taskID)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{"message": "Task not found"})
	}
	if err != nil {
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	allowed, err := canTouchTask(taskID, userID, role, task.CreatedBy.ID)
	if err != nil {
		logger.ErrorLogger.Error("Error checking task access", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}
	if !allowed {
		logger.SecurityLogger.Warn("Task access denied",
			zap.Int("user_id", userID), zap.Int("task_id", taskID))
		return c.Status(403).JSON(fiber.Map{"message": "Not authorized to access this task"})
	}

	if taskJSON, err := json.Marshal(task); err == nil {
		config.RedisClient.SetEX(config.Ctx, cacheKey, taskJSON, time.Hour)
	}

	return c.JSON(fiber.Map{"success": true, "data": task})
}

// CreateTask creates a task, optionally scoped to a project and with an
// initial assignee set and checklist. Admin only (route middleware).
func CreateTask(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	type CreateTaskRequest struct {
		Title         string                 `json:"title" validate:"required"`
		Description   string                 `json:"description"`
		Status        string                 `json:"status" validate:"omitempty,oneof=Pending In-Progress Completed"`
		Priority      string                 `json:"priority" validate:"omitempty,oneof=Low Medium High"`
		DueDate       string                 `json:"dueDate" validate:"required"`
		ProjectID     *int                   `json:"projectId"`
		AssignedTo    []int                  `json:"assignedTo"`
		TodoChecklist []models.ChecklistItem `json:"todoChecklist"`
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}

	if err := config.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error in create task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"error":   err.Error(),
		})
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid due date"})
	}

	status := req.Status
	if status == "" {
		status = models.TaskPending
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	if req.ProjectID != nil {
		var exists bool
		err = config.DB.QueryRow("SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)", *req.ProjectID).Scan(&exists)
		if err != nil {
			logger.ErrorLogger.Error("Error fetching project", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
		}
		if !exists {
			return c.Status(404).JSON(fiber.Map{"message": "Project not found"})
		}
	}

	checklist := req.TodoChecklist
	if checklist == nil {
		checklist = []models.ChecklistItem{}
	}
	checklistJSON, err := json.Marshal(checklist)
	if err != nil {
		logger.ErrorLogger.Error("Error encoding checklist", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	var taskID int
	err = config.DB.QueryRow(`
		INSERT INTO tasks (title, description, status, priority, due_date, project_id, created_by, todo_checklist)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		req.Title, req.Description, status, priority, dueDate, req.ProjectID, userID, checklistJSON).Scan(&taskID)
	if err != nil {
		logger.ErrorLogger.Error("Error creating task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	for _, assigneeID := range req.AssignedTo {
		_, err = config.DB.Exec(
			"INSERT INTO task_assignees (task_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			taskID, assigneeID)
		if err != nil {
			logger.ErrorLogger.Error("Error adding assignee", zap.Int("assignee_id", assigneeID), zap.Error(err))
			return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
		}
	}

	row := config.DB.QueryRow("SELECT "+taskColumns+" FROM tasks t WHERE t.id = $1", taskID)
	task, err := scanTask(row)
	if err != nil {
		logger.ErrorLogger.Error("Error loading created task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	logger.AuditLogger.Info("Task created", zap.Int("task_id", taskID), zap.Int("user_id", userID))
	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"message": "Task created successfully",
		"data":    task,
	})
}

// UpdateTask applies a field-by-field patch. Admin only (route
// middleware).
func UpdateTask(c *fiber.Ctx) error {
	taskID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Invalid task ID"})
	}

	row := config.DB.QueryRow("SELECT "+taskColumns+" FROM tasks t WHERE t.id = $1", taskID)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{"message": "Task not found"})
	}
	if err != nil {
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	type UpdateTaskRequest struct {
		Title         *string                 `json:"title"`
		Description   *string                 `json:"description"`
		Status        *string                 `json:"status"`
		Priority      *string                 `json:"priority"`
		DueDate       *string                 `json:"dueDate"`
		ProjectID     *int                    `json:"projectId"`
		AssignedTo    *[]int                  `json:"assignedTo"`
		TodoChecklist *[]models.ChecklistItem `json:"todoChecklist"`
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		if !models.ValidTaskStatus(*req.Status) {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid status"})
		}
		task.Status = *req.Status
	}
	if req.Priority != nil {
		if !models.ValidPriority(*req.Priority) {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid priority"})
		}
		task.Priority = *req.Priority
	}
	if req.DueDate != nil {
		task.DueDate, err = parseDate(*req.DueDate)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"message": "Invalid due date"})
		}
	}
	if req.ProjectID != nil {
		var exists bool
		err = config.DB.QueryRow("SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)", *req.ProjectID).Scan(&exists)
		if err != nil {
			logger.ErrorLogger.Error("Error fetching project", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
		}
		if !exists {
			return c.Status(404).JSON(fiber.Map{"message": "Project not found"})
		}
		task.ProjectID = req.ProjectID
	}
	if req.TodoChecklist != nil {
		task.Checklist = *req.TodoChecklist
	}

	checklistJSON, err := json.Marshal(task.Checklist)
	if err != nil {
		logger.ErrorLogger.Error("Error encoding checklist", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	_, err = config.DB.Exec(`
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4, due_date = $5,
			project_id = $6, todo_checklist = $7, updated_at = CURRENT_TIMESTAMP
		WHERE id = $8`,
		task.Title, task.Description, task.Status, task.Priority, task.DueDate,
		task.ProjectID, checklistJSON, taskID)
	if err != nil {
		logger.ErrorLogger.Error("Error updating task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	if req.AssignedTo != nil {
		if _, err = config.DB.Exec("DELETE FROM task_assignees WHERE task_id = $1", taskID); err != nil {
			logger.ErrorLogger.Error("Error clearing assignees", zap.Error(err))
			return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
		}
		for _, assigneeID := range *req.AssignedTo {
			_, err = config.DB.Exec(
				"INSERT INTO task_assignees (task_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
				taskID, assigneeID)
			if err != nil {
				logger.ErrorLogger.Error("Error adding assignee", zap.Int("assignee_id", assigneeID), zap.Error(err))
				return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
			}
		}
	}

	invalidateTaskCache(taskID)

	row = config.DB.QueryRow("SELECT "+taskColumns+" FROM tasks t WHERE t.id = $1", taskID)
	updated, err := scanTask(row)
	if err != nil {
		logger.ErrorLogger.Error("Error loading updated task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	logger.AuditLogger.Info("Task updated", zap.Int("task_id", taskID))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Task updated successfully",
		"data":    updated,
	})
}

// UpdateTaskStatus sets the task status. Allowed for admins and
// assignees; transitions within the enum are unconstrained.
func UpdateTaskStatus(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)
	role := c.Locals("role").(string)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Invalid task ID"})
	}

	var createdBy int
	err = config.DB.QueryRow("SELECT created_by FROM tasks WHERE id = $1", taskID).Scan(&createdBy)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{"message": "Task not found"})
	}
	if err != nil {
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	allowed, err := canTouchTask(taskID, userID, role, createdBy)
	if err != nil {
		logger.ErrorLogger.Error("Error checking task access", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}
	if !allowed {
		logger.SecurityLogger.Warn("Task status change denied",
			zap.Int("user_id", userID), zap.Int("task_id", taskID))
		return c.Status(403).JSON(fiber.Map{"message": "Not authorized to update this task"})
	}

	type StatusRequest struct {
		Status string `json:"status" validate:"required,oneof=Pending In-Progress Completed"`
	}

	var req StatusRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update task status", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}
	if err := config.Validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid status", "error": err.Error()})
	}

	_, err = config.DB.Exec(
		"UPDATE tasks SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		req.Status, taskID)
	if err != nil {
		logger.ErrorLogger.Error("Error updating task status", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	invalidateTaskCache(taskID)

	logger.AuditLogger.Info("Task status updated",
		zap.Int("task_id", taskID), zap.String("status", req.Status))
	return c.JSON(fiber.Map{"success": true, "message": "Task status updated successfully"})
}

// UpdateTaskChecklist replaces the ordered checklist. Allowed for
// admins and assignees.
func UpdateTaskChecklist(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)
	role := c.Locals("role").(string)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Invalid task ID"})
	}

	var createdBy int
	err = config.DB.QueryRow("SELECT created_by FROM tasks WHERE id = $1", taskID).Scan(&createdBy)
	if err == sql.ErrNoRows {
		return c.Status(404).JSON(fiber.Map{"message": "Task not found"})
	}
	if err != nil {
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	allowed, err := canTouchTask(taskID, userID, role, createdBy)
	if err != nil {
		logger.ErrorLogger.Error("Error checking task access", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}
	if !allowed {
		logger.SecurityLogger.Warn("Task checklist change denied",
			zap.Int("user_id", userID), zap.Int("task_id", taskID))
		return c.Status(403).JSON(fiber.Map{"message": "Not authorized to update this task"})
	}

	type ChecklistRequest struct {
		TodoChecklist []models.ChecklistItem `json:"todoChecklist"`
	}

	var req ChecklistRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update task checklist", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}

	checklist := req.TodoChecklist
	if checklist == nil {
		checklist = []models.ChecklistItem{}
	}
	checklistJSON, err := json.Marshal(checklist)
	if err != nil {
		logger.ErrorLogger.Error("Error encoding checklist", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	_, err = config.DB.Exec(
		"UPDATE tasks SET todo_checklist = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2",
		checklistJSON, taskID)
	if err != nil {
		logger.ErrorLogger.Error("Error updating task checklist", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	invalidateTaskCache(taskID)

	logger.AuditLogger.Info("Task checklist updated", zap.Int("task_id", taskID))
	return c.JSON(fiber.Map{"success": true, "message": "Task checklist updated successfully"})
}

// DeleteTask removes a task. Admin only (route middleware).
func DeleteTask(c *fiber.Ctx) error {
	taskID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task ID", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Invalid task ID"})
	}

	var exists bool
	err = config.DB.QueryRow("SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)", taskID).Scan(&exists)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}
	if !exists {
		return c.Status(404).JSON(fiber.Map{"message": "Task not found"})
	}

	if _, err = config.DB.Exec("DELETE FROM tasks WHERE id = $1", taskID); err != nil {
		logger.ErrorLogger.Error("Error deleting task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	invalidateTaskCache(taskID)

	logger.AuditLogger.Info("Task deleted", zap.Int("task_id", taskID))
	return c.JSON(fiber.Map{"success": true, "message": "Task deleted successfully"})
}

// dashboardAggregate gathers the dashboard counts, either over all
// tasks (scopedUserID nil) or over one user's assigned tasks.
func dashboardAggregate(scopedUserID *int) (models.DashboardData, error) {
	var data models.DashboardData
	g, ctx := errgroup.WithContext(config.Ctx)

	if scopedUserID == nil {
		g.Go(func() error {
			return config.DB.QueryRowContext(ctx,
				"SELECT COUNT(*) FROM tasks").Scan(&data.TotalTasks)
		})
		g.Go(func() error {
			return config.DB.QueryRowContext(ctx,
				"SELECT COUNT(*) FROM tasks WHERE status = $1", models.TaskPending).Scan(&data.ByStatus.Pending)
		})
		g.Go(func() error {
			return config.DB.QueryRowContext(ctx,
				"SELECT COUNT(*) FROM tasks WHERE status = $1", models.TaskInProgress).Scan(&data.ByStatus.InProgress)
		})
		g.Go(func() error {
			return config.DB.QueryRowContext(ctx,
				"SELECT COUNT(*) FROM tasks WHERE status = $1", models.TaskCompleted).Scan(&data.ByStatus.Completed)
		})
		g.Go(func() error {
			return config.DB.QueryRowContext(ctx,
				"SELECT COUNT(*) FROM tasks WHERE due_date < CURRENT_DATE AND status != $1",
				models.TaskCompleted).Scan(&data.OverdueTasks)
		})
	} else {
		userID := *scopedUserID
		scoped := "SELECT COUNT(*) FROM task_assignees ta JOIN tasks t ON t.id = ta.task_id WHERE ta.user_id = $1"
		g.Go(func() error {
			return config.DB.QueryRowContext(ctx, scoped, userID).Scan(&data.TotalTasks)
		})
		g.Go(func() error {
			return config.DB.QueryRowContext(ctx, scoped+" AND t.status = $2",
				userID, models.TaskPending).Scan(&data.ByStatus.Pending)
		})
		g.Go(func() error {
			return config.DB.QueryRowContext(ctx, scoped+" AND t.status = $2",
				userID, models.TaskInProgress).Scan(&data.ByStatus.InProgress)
		})
		g.Go(func() error {
			return config.DB.QueryRowContext(ctx, scoped+" AND t.status = $2",
				userID, models.TaskCompleted).Scan(&data.ByStatus.Completed)
		})
		g.Go(func() error {
			return config.DB.QueryRowContext(ctx, scoped+" AND t.due_date < CURRENT_DATE AND t.status != $2",
				userID, models.TaskCompleted).Scan(&data.OverdueTasks)
		})
	}

	if err := g.Wait(); err != nil {
		return models.DashboardData{}, err
	}
	data.ByStatus.Total = data.TotalTasks

	var (
		recent []models.Task
		err    error
	)
	if scopedUserID != nil {
		recent, err = fetchTasks(`
			SELECT DISTINCT `+taskColumns+`
			FROM tasks t
			JOIN task_assignees ta ON ta.task_id = t.id
			WHERE ta.user_id = $1
			ORDER BY t.created_at DESC LIMIT 10`, *scopedUserID)
	} else {
		recent, err = fetchTasks(
			"SELECT " + taskColumns + " FROM tasks t ORDER BY t.created_at DESC LIMIT 10")
	}
	if err != nil {
		return models.DashboardData{}, err
	}
	data.RecentTasks = recent
	return data, nil
}

// GetDashboardData aggregates all tasks. Admin only (route middleware).
func GetDashboardData(c *fiber.Ctx) error {
	data, err := dashboardAggregate(nil)
	if err != nil {
		logger.ErrorLogger.Error("Error building dashboard data", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// GetUserDashboardData aggregates the principal's assigned tasks.
func GetUserDashboardData(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	data, err := dashboardAggregate(&userID)
	if err != nil {
		logger.ErrorLogger.Error("Error building user dashboard data", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}
	return c.JSON(fiber.Map{"success": true, "data": data})
}
