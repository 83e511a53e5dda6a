package handlers

import (
	"database/sql"
	"encoding/json"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Yogabut/task-management/internal/config"
	"github.com/Yogabut/task-management/internal/models"
)

// parseDate accepts plain dates and full RFC3339 timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// completionPercentage is round(completed/total*100), 0 for an empty
// project.
func completionPercentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func loadUserSummary(userID int) (*models.UserSummary, error) {
	var u models.UserSummary
	err := config.DB.QueryRow(
		"SELECT id, name, email, COALESCE(profile_image_url, '') FROM users WHERE id = $1",
		userID).Scan(&u.ID, &u.Name, &u.Email, &u.ProfileImageURL)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func loadTeamMembers(projectID int) ([]models.UserSummary, error) {
	rows, err := config.DB.Query(`
		SELECT u.id, u.name, u.email, COALESCE(u.profile_image_url, '')
		FROM project_members pm
		JOIN users u ON u.id = pm.user_id
		WHERE pm.project_id = $1
		ORDER BY u.id`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	members := []models.UserSummary{}
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.ProfileImageURL); err != nil {
			return nil, err
		}
		members = append(members, u)
	}
	return members, rows.Err()
}

func loadAssignees(taskID int) ([]models.UserSummary, error) {
	rows, err := config.DB.Query(`
		SELECT u.id, u.name, u.email, COALESCE(u.profile_image_url, '')
		FROM task_assignees ta
		JOIN users u ON u.id = ta.user_id
		WHERE ta.task_id = $1
		ORDER BY u.id`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignees := []models.UserSummary{}
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.ProfileImageURL); err != nil {
			return nil, err
		}
		assignees = append(assignees, u)
	}
	return assignees, rows.Err()
}

// isTeamMember reports whether the user appears in the project's member
// set. Admins never reach this check.
func isTeamMember(projectID, userID int) (bool, error) {
	var exists bool
	err := config.DB.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM project_members WHERE project_id = $1 AND user_id = $2)",
		projectID, userID).Scan(&exists)
	return exists, err
}

// isTaskAssignee reports whether the user is assigned to the task.
func isTaskAssignee(taskID, userID int) (bool, error) {
	var exists bool
	err := config.DB.QueryRow(
		"SELECT EXISTS (SELECT 1 FROM task_assignees WHERE task_id = $1 AND user_id = $2)",
		taskID, userID).Scan(&exists)
	return exists, err
}

// projectTaskStats runs the four per-project status counts as a
// scatter/gather; all counts complete before the stats are returned.
func projectTaskStats(projectID int) (models.TaskStats, error) {
	var stats models.TaskStats
	g, ctx := errgroup.WithContext(config.Ctx)

	g.Go(func() error {
		return config.DB.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM tasks WHERE project_id = $1", projectID).Scan(&stats.Total)
	})
	g.Go(func() error {
		return config.DB.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM tasks WHERE project_id = $1 AND status = $2",
			projectID, models.TaskCompleted).Scan(&stats.Completed)
	})
	g.Go(func() error {
		return config.DB.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM tasks WHERE project_id = $1 AND status = $2",
			projectID, models.TaskPending).Scan(&stats.Pending)
	})
	g.Go(func() error {
		return config.DB.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM tasks WHERE project_id = $1 AND status = $2",
			projectID, models.TaskInProgress).Scan(&stats.InProgress)
	})

	if err := g.Wait(); err != nil {
		return models.TaskStats{}, err
	}
	return stats, nil
}

const taskColumns = `t.id, t.title, COALESCE(t.description, ''), t.status, t.priority,
	t.due_date, t.project_id, t.created_by, t.todo_checklist, t.created_at, t.updated_at`

// scanTask reads one task row (taskColumns order) and resolves its
// assignee and creator joins.
func scanTask(scanner interface{ Scan(...interface{}) error }) (models.Task, error) {
	var (
		task      models.Task
		projectID sql.NullInt64
		createdBy int
		checklist []byte
	)
	err := scanner.Scan(&task.ID, &task.Title, &task.Description, &task.Status, &task.Priority,
		&task.DueDate, &projectID, &createdBy, &checklist, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return models.Task{}, err
	}
	if projectID.Valid {
		id := int(projectID.Int64)
		task.ProjectID = &id
	}
	task.Checklist = []models.ChecklistItem{}
	if len(checklist) > 0 {
		if err := json.Unmarshal(checklist, &task.Checklist); err != nil {
			return models.Task{}, err
		}
	}
	task.AssignedTo, err = loadAssignees(task.ID)
	if err != nil {
		return models.Task{}, err
	}
	task.CreatedBy, err = loadUserSummary(createdBy)
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// fetchTasks runs a task query (taskColumns select list expected) and
// materializes the result with joins resolved.
func fetchTasks(query string, args ...interface{}) ([]models.Task, error) {
	rows, err := config.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}
