package handlers

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Yogabut/task-management/internal/models"
	"github.com/Yogabut/task-management/pkg/logger"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// buildTasksWorkbook renders tasks into a single-sheet xlsx workbook.
func buildTasksWorkbook(sheet string, tasks []models.Task) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Title", "Description", "Status", "Priority", "Due Date", "Project ID", "Assigned To", "Created By"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, task := range tasks {
		projectID := ""
		if task.ProjectID != nil {
			projectID = fmt.Sprintf("%d", *task.ProjectID)
		}
		assignees := make([]string, 0, len(task.AssignedTo))
		for _, u := range task.AssignedTo {
			assignees = append(assignees, u.Name)
		}
		createdBy := ""
		if task.CreatedBy != nil {
			createdBy = task.CreatedBy.Name
		}

		values := []interface{}{
			task.ID,
			task.Title,
			task.Description,
			task.Status,
			task.Priority,
			task.DueDate.Format("2006-01-02"),
			projectID,
			strings.Join(assignees, ", "),
			createdBy,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}
	return f, nil
}

func sendWorkbook(c *fiber.Ctx, f *excelize.File, filename string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.ErrorLogger.Error("Error writing workbook", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}

// ExportTasksReport exports every task as an xlsx download. Admin only
// (route middleware).
func ExportTasksReport(c *fiber.Ctx) error {
	tasks, err := fetchTasks("SELECT " + taskColumns + " FROM tasks t ORDER BY t.created_at DESC")
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks for export", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	f, err := buildTasksWorkbook("Tasks Report", tasks)
	if err != nil {
		logger.ErrorLogger.Error("Error building tasks workbook", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	logger.AuditLogger.Info("Tasks report exported", zap.Int("count", len(tasks)))
	return sendWorkbook(c, f, "tasks_report.xlsx")
}

// ExportUserReport exports the principal's assigned tasks as an xlsx
// download.
func ExportUserReport(c *fiber.Ctx) error {
	userID := c.Locals("userID").(int)

	tasks, err := fetchTasks(`
		SELECT DISTINCT `+taskColumns+`
		FROM tasks t
		JOIN task_assignees ta ON ta.task_id = t.id
		WHERE ta.user_id = $1
		ORDER BY t.created_at DESC`, userID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching user tasks for export", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	f, err := buildTasksWorkbook("My Tasks", tasks)
	if err != nil {
		logger.ErrorLogger.Error("Error building user tasks workbook", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Server Error", "error": err.Error()})
	}

	logger.AuditLogger.Info("User report exported", zap.Int("user_id", userID), zap.Int("count", len(tasks)))
	return sendWorkbook(c, f, "user_tasks_report.xlsx")
}
