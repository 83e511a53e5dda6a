package models

import "time"

// Roles form a closed set; authorization never compares ad-hoc strings
// outside these constants.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Project status values.
const (
	ProjectPlanning  = "Planning"
	ProjectActive    = "Active"
	ProjectOnHold    = "On Hold"
	ProjectCompleted = "Completed"
	ProjectCancelled = "Cancelled"
)

// Task status values.
const (
	TaskPending    = "Pending"
	TaskInProgress = "In-Progress"
	TaskCompleted  = "Completed"
)

// Priority values shared by projects and tasks.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

type User struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Password        string    `json:"-"`
	Role            string    `json:"role"`
	ProfileImageURL string    `json:"profileImageUrl"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// UserSummary is the read-time join shape embedded in project and task
// responses instead of a bare foreign key.
type UserSummary struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// UserWithTaskCounts augments a user with per-status counts of their
// assigned tasks, used by the admin user listing.
type UserWithTaskCounts struct {
	User
	PendingTasks    int `json:"pendingTasks"`
	InProgressTasks int `json:"inProgressTasks"`
	CompletedTasks  int `json:"completedTasks"`
}

type Project struct {
	ID          int           `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	Priority    string        `json:"priority"`
	StartDate   time.Time     `json:"startDate"`
	EndDate     time.Time     `json:"endDate"`
	Budget      float64       `json:"budget"`
	Progress    int           `json:"progress"`
	CreatedBy   *UserSummary  `json:"createdBy"`
	TeamMembers []UserSummary `json:"teamMembers"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// TaskStats holds derived per-status counts. Never persisted.
type TaskStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
}

// ProjectWithStats is a project list entry enriched with task counts.
type ProjectWithStats struct {
	Project
	TaskStats TaskStats `json:"taskStats"`
}

// ProjectDetail is the single-project response: the project, its full
// task list and the same stats.
type ProjectDetail struct {
	Project
	Tasks     []Task    `json:"tasks"`
	TaskStats TaskStats `json:"taskStats"`
}

// ProjectStats is the /stats endpoint payload.
type ProjectStats struct {
	TotalTasks           int `json:"totalTasks"`
	CompletedTasks       int `json:"completedTasks"`
	PendingTasks         int `json:"pendingTasks"`
	InProgressTasks      int `json:"inProgressTasks"`
	CompletionPercentage int `json:"completionPercentage"`
}

type ChecklistItem struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Task struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Priority    string          `json:"priority"`
	DueDate     time.Time       `json:"dueDate"`
	ProjectID   *int            `json:"projectId"`
	AssignedTo  []UserSummary   `json:"assignedTo"`
	CreatedBy   *UserSummary    `json:"createdBy"`
	Checklist   []ChecklistItem `json:"todoChecklist"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// DashboardData aggregates task counts for the admin and member
// dashboards.
type DashboardData struct {
	TotalTasks   int       `json:"totalTasks"`
	ByStatus     TaskStats `json:"byStatus"`
	OverdueTasks int       `json:"overdueTasks"`
	RecentTasks  []Task    `json:"recentTasks"`
}

func ValidProjectStatus(status string) bool {
	switch status {
	case ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled:
		return true
	default:
		return false
	}
}

func ValidTaskStatus(status string) bool {
	switch status {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	default:
		return false
	}
}

func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}
