package test

import (
	"fmt"
	"net/http"
	"testing"
)

func TestCreateTask(t *testing.T) {
	app := CreateTestApp()
	adminToken, _ := CreateTestAdmin(app, t)

	resp, result := doJSON(t, app, "POST", "/api/tasks/", adminToken, map[string]interface{}{
		"title":       "Standalone task",
		"description": "no project",
		"dueDate":     "2024-06-01",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Expected status 201 but got %d: %v", resp.StatusCode, result["message"])
	}
	data := result["data"].(map[string]interface{})
	if data["status"] != "Pending" {
		t.Errorf("Expected default status Pending, got %v", data["status"])
	}
	if data["priority"] != "Medium" {
		t.Errorf("Expected default priority Medium, got %v", data["priority"])
	}
}

func TestCreateTaskRequiresAdmin(t *testing.T) {
	app := CreateTestApp()
	memberToken, _ := CreateTestMember(app, t)

	resp, _ := doJSON(t, app, "POST", "/api/tasks/", memberToken, map[string]interface{}{
		"title":   "Forbidden task",
		"dueDate": "2024-06-01",
	})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403 for member but got %d", resp.StatusCode)
	}
}

func TestCreateTaskUnknownProject(t *testing.T) {
	app := CreateTestApp()
	adminToken, _ := CreateTestAdmin(app, t)

	resp, _ := doJSON(t, app, "POST", "/api/tasks/", adminToken, map[string]interface{}{
		"title":     "Orphan",
		"dueDate":   "2024-06-01",
		"projectId": 9999999,
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown project, got %d", resp.StatusCode)
	}
}

func TestUpdateTaskStatusByAssignee(t *testing.T) {
	app := CreateTestApp()
	adminToken, _ := CreateTestAdmin(app, t)
	memberToken, memberID := CreateTestMember(app, t)

	taskID := createTask(t, app, adminToken, map[string]interface{}{
		"title":      "Assigned task",
		"dueDate":    "2024-06-01",
		"assignedTo": []int{memberID},
	})

	resp, _ := doJSON(t, app, "PUT", fmt.Sprintf("/api/tasks/%d/status", taskID), memberToken,
		map[string]string{"status": "In-Progress"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 for assignee, got %d", resp.StatusCode)
	}

	resp, result := doJSON(t, app, "GET", fmt.Sprintf("/api/tasks/%d", taskID), memberToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 but got %d", resp.StatusCode)
	}
	data := result["data"].(map[string]interface{})
	if data["status"] != "In-Progress" {
		t.Errorf("Expected status In-Progress, got %v", data["status"])
	}
}

func TestUpdateTaskStatusDeniedForOutsider(t *testing.T) {
	app := CreateTestApp()
	adminToken, _ := CreateTestAdmin(app, t)
	outsiderToken, _ := CreateTestMember(app, t)

	taskID := createTask(t, app, adminToken, map[string]interface{}{
		"title":   "Unshared task",
		"dueDate": "2024-06-01",
	})

	resp, _ := doJSON(t, app, "PUT", fmt.Sprintf("/api/tasks/%d/status", taskID), outsiderToken,
		map[string]string{"status": "Completed"})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403 for outsider, got %d", resp.StatusCode)
	}
}

func TestUpdateTaskStatusRejectsUnknownValue(t *testing.T) {
	app := CreateTestApp()
	adminToken, _ := CreateTestAdmin(app, t)

	taskID := createTask(t, app, adminToken, map[string]interface{}{
		"title":   "Status task",
		"dueDate": "2024-06-01",
	})

	resp, _ := doJSON(t, app, "PUT", fmt.Sprintf("/api/tasks/%d/status", taskID), adminToken,
		map[string]string{"status": "Archived"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown status, got %d", resp.StatusCode)
	}
}

func TestUpdateTaskChecklist(t *testing.T) {
	app := CreateTestApp()
	adminToken, _ := CreateTestAdmin(app, t)
	memberToken, memberID := CreateTestMember(app, t)

	taskID := createTask(t, app, adminToken, map[string]interface{}{
		"title":      "Checklist task",
		"dueDate":    "2024-06-01",
		"assignedTo": []int{memberID},
		"todoChecklist": []map[string]interface{}{
			{"text": "first step", "completed": false},
			{"text": "second step", "completed": false},
		},
	})

	resp, _ := doJSON(t, app, "PUT", fmt.Sprintf("/api/tasks/%d/todo", taskID), memberToken,
		map[string]interface{}{
			"todoChecklist": []map[string]interface{}{
				{"text": "first step", "completed": true},
				{"text": "second step", "completed": false},
			},
		})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 for assignee, got %d", resp.StatusCode)
	}

	resp, result := doJSON(t, app, "GET", fmt.Sprintf("/api/tasks/%d", taskID), memberToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 but got %d", resp.StatusCode)
	}
	data := result["data"].(map[string]interface{})
	checklist := data["todoChecklist"].([]interface{})
	if len(checklist) != 2 {
		t.Fatalf("Expected 2 checklist items, got %d", len(checklist))
	}
	first := checklist[0].(map[string]interface{})
	if first["completed"] != true {
		t.Errorf("Expected first checklist item completed")
	}
}

func TestMemberTaskVisibility(t *testing.T) {
	app := CreateTestApp()
	adminToken, _ := CreateTestAdmin(app, t)
	memberToken, memberID := CreateTestMember(app, t)

	assignedID := createTask(t, app, adminToken, map[string]interface{}{
		"title":      "Mine",
		"dueDate":    "2024-06-01",
		"assignedTo": []int{memberID},
	})
	foreignID := createTask(t, app, adminToken, map[string]interface{}{
		"title":   "Not mine",
		"dueDate": "2024-06-01",
	})

	resp, result := doJSON(t, app, "GET", "/api/tasks/", memberToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 but got %d", resp.StatusCode)
	}
	seen := map[int]bool{}
	for _, item := range result["data"].([]interface{}) {
		task := item.(map[string]interface{})
		seen[int(task["id"].(float64))] = true
	}
	if !seen[assignedID] {
		t.Errorf("Expected assigned task %d in member listing", assignedID)
	}
	if seen[foreignID] {
		t.Errorf("Did not expect foreign task %d in member listing", foreignID)
	}

	resp, _ = doJSON(t, app, "GET", fmt.Sprintf("/api/tasks/%d", foreignID), memberToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403 for foreign task, got %d", resp.StatusCode)
	}
}

func TestDeleteTask(t *testing.T) {
	app := CreateTestApp()
	adminToken, _ := CreateTestAdmin(app, t)

	taskID := createTask(t, app, adminToken, map[string]interface{}{
		"title":   "Doomed",
		"dueDate": "2024-06-01",
	})

	resp, _ := doJSON(t, app, "DELETE", fmt.Sprintf("/api/tasks/%d", taskID), adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 but got %d", resp.StatusCode)
	}

	resp, _ = doJSON(t, app, "GET", fmt.Sprintf("/api/tasks/%d", taskID), adminToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected status 404 after delete, got %d", resp.StatusCode)
	}
}

func TestDashboardData(t *testing.T) {
	app := CreateTestApp()
	adminToken, _ := CreateTestAdmin(app, t)

	createTask(t, app, adminToken, map[string]interface{}{
		"title":   "Dashboard seed",
		"dueDate": "2024-06-01",
	})

	resp, result := doJSON(t, app, "GET", "/api/tasks/dashboard-data", adminToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 but got %d", resp.StatusCode)
	}
	data := result["data"].(map[string]interface{})
	if data["totalTasks"].(float64) < 1 {
		t.Errorf("Expected at least one task in dashboard data")
	}
	if data["byStatus"] == nil {
		t.Errorf("Expected byStatus in dashboard data")
	}
}

func TestDashboardDataRequiresAdmin(t *testing.T) {
	app := CreateTestApp()
	memberToken, _ := CreateTestMember(app, t)

	resp, _ := doJSON(t, app, "GET", "/api/tasks/dashboard-data", memberToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("Expected status 403 for member, got %d", resp.StatusCode)
	}
}

func TestUserDashboardData(t *testing.T) {
	app := CreateTestApp()
	adminToken, _ := CreateTestAdmin(app, t)
	memberToken, memberID := CreateTestMember(app, t)

	createTask(t, app, adminToken, map[string]interface{}{
		"title":      "Member dashboard seed",
		"dueDate":    "2024-06-01",
		"assignedTo": []int{memberID},
	})
	createTask(t, app, adminToken, map[string]interface{}{
		"title":   "Unrelated",
		"dueDate": "2024-06-01",
	})

	resp, result := doJSON(t, app, "GET", "/api/tasks/user-dashboard-data", memberToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 but got %d", resp.StatusCode)
	}
	data := result["data"].(map[string]interface{})
	if data["totalTasks"].(float64) != 1 {
		t.Errorf("Expected exactly 1 assigned task, got %v", data["totalTasks"])
	}
}
