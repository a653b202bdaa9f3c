//go:build staging

package staging

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"
)

func TestHealthz(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/healthz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}
}

func TestReadyz(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/readyz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d: %s", resp.StatusCode, body)
	}
}

// TestTaskLifecycle registers a throwaway user, creates a todo, completes it
// and verifies the XP landed.
func TestTaskLifecycle(t *testing.T) {
	userID := fmt.Sprintf("staging-%d", time.Now().UnixNano())

	resp, body := makeRequest(t, "POST", "/api/v1/stats/register", map[string]string{
		"user_id": userID,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Register failed: %d %s", resp.StatusCode, body)
	}

	resp, body = makeRequest(t, "POST", "/api/v1/tasks", map[string]interface{}{
		"user_id": userID,
		"title":   "Staging smoke task",
		"type":    "todo",
		"xp":      25,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Create task failed: %d %s", resp.StatusCode, body)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("Failed to unmarshal task: %v", err)
	}

	resp, body = makeRequest(t, "POST", "/api/v1/tasks/complete", map[string]string{
		"user_id": userID,
		"task_id": created.ID,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Complete task failed: %d %s", resp.StatusCode, body)
	}

	resp, body = makeRequest(t, "GET", "/api/v1/stats?user_id="+userID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Get stats failed: %d %s", resp.StatusCode, body)
	}

	var stats struct {
		CurrentXP int `json:"current_xp"`
	}
	if err := json.Unmarshal(body, &stats); err != nil {
		t.Fatalf("Failed to unmarshal stats: %v", err)
	}
	if stats.CurrentXP != 25 {
		t.Errorf("Expected 25 XP after completion, got %d", stats.CurrentXP)
	}

	// Double completion must be rejected without granting again
	resp, _ = makeRequest(t, "POST", "/api/v1/tasks/complete", map[string]string{
		"user_id": userID,
		"task_id": created.ID,
	})
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("Expected 409 on double completion, got %d", resp.StatusCode)
	}
}

func TestQuestRollover(t *testing.T) {
	userID := fmt.Sprintf("staging-%d", time.Now().UnixNano())

	resp, body := makeRequest(t, "POST", "/api/v1/stats/register", map[string]string{
		"user_id": userID,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Register failed: %d %s", resp.StatusCode, body)
	}

	resp, body = makeRequest(t, "GET", "/api/v1/quests?user_id="+userID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("List quests failed: %d %s", resp.StatusCode, body)
	}

	var quests []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &quests); err != nil {
		t.Fatalf("Failed to unmarshal quests: %v", err)
	}
	if len(quests) == 0 {
		t.Error("Expected a fresh quest set after first read of the day")
	}
}

func TestUnauthorizedWithoutAPIKey(t *testing.T) {
	req, err := http.NewRequest("GET", stagingURL+"/api/v1/stats?user_id=nobody", nil)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Failed to make request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 without API key, got %d", resp.StatusCode)
	}
}
