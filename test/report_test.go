package test

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func TestExportTasksReport(t *testing.T) {
	app := CreateTestApp()
	adminToken, _ := CreateTestAdmin(app, t)

	createTask(t, app, adminToken, map[string]interface{}{
		"title":   "Reported task",
		"dueDate": "2024-06-01",
	})

	req := httptest.NewRequest("GET", "/api/reports/export/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Export request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 but got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != xlsxContentType {
		t.Errorf("Expected xlsx content type, got %q", got)
	}
	if resp.Header.Get("Content-Disposition") == "" {
		t.Errorf("Expected attachment content disposition")
	}
}

func TestExportTasksReportRequiresAdmin(t *testing.T) {
	app := CreateTestApp()
	memberToken, _ := CreateTestMember(app, t)

	req := httptest.NewRequest("GET", "/api/reports/export/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+memberToken)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Export request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403 for member, got %d", resp.StatusCode)
	}
}

func TestExportUserReport(t *testing.T) {
	app := CreateTestApp()
	adminToken, _ := CreateTestAdmin(app, t)
	memberToken, memberID := CreateTestMember(app, t)

	createTask(t, app, adminToken, map[string]interface{}{
		"title":      "My exported task",
		"dueDate":    "2024-06-01",
		"assignedTo": []int{memberID},
	})

	req := httptest.NewRequest("GET", "/api/reports/export/user", nil)
	req.Header.Set("Authorization", "Bearer "+memberToken)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Export request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 but got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Type"); got != xlsxContentType {
		t.Errorf("Expected xlsx content type, got %q", got)
	}
}
