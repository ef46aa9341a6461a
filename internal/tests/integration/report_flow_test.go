package integration

import (
	"encoding/json"
	"net/http"
	"testing"
)

// TestReportLifecycle drives Generate -> History -> Delete -> Stats against SQLite
func TestReportLifecycle(t *testing.T) {
	ts := setupTestServer(t, nil)
	owner := signup(t, ts.URL, "owner@example.com")
	intruder := signup(t, ts.URL, "intruder@example.com")

	generate := map[string]interface{}{
		"inputData": map[string]interface{}{
			"fullName":    "Ada Lovelace",
			"dateOfBirth": "1815-12-10",
			"birthPlace":  "London",
		},
	}

	var ids []string
	t.Run("Generate Until Quota", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			status, resp := doJSON(t, http.MethodPost, ts.URL+"/api/tool/generate", owner, generate)
			if status != http.StatusCreated {
				t.Fatalf("Generate %d returned status %d: %+v", i+1, status, resp.Error)
			}
			var rep struct {
				ID        string                 `json:"id"`
				InputData map[string]interface{} `json:"inputData"`
				Result    struct {
					LifePathNumber int `json:"lifePathNumber"`
				} `json:"result"`
			}
			if err := json.Unmarshal(resp.Data, &rep); err != nil {
				t.Fatalf("Failed to decode report: %v", err)
			}
			if rep.InputData["birthPlace"] != "London" {
				t.Errorf("Extra input not kept: %v", rep.InputData)
			}
			if rep.Result.LifePathNumber < 1 || rep.Result.LifePathNumber > 9 {
				t.Errorf("Life path number %d out of range", rep.Result.LifePathNumber)
			}
			ids = append(ids, rep.ID)
		}

		status, resp := doJSON(t, http.MethodPost, ts.URL+"/api/tool/generate", owner, generate)
		if status != http.StatusTooManyRequests || resp.Error == nil || resp.Error.Code != "QUOTA_EXCEEDED" {
			t.Fatalf("Generate past quota returned %d %+v", status, resp.Error)
		}
	})

	t.Run("History Newest First", func(t *testing.T) {
		status, resp := doJSON(t, http.MethodGet, ts.URL+"/api/v1/dashboard/history?limit=2", owner, nil)
		if status != http.StatusOK {
			t.Fatalf("History returned status %d", status)
		}
		var page []struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(resp.Data, &page); err != nil {
			t.Fatalf("Failed to decode history: %v", err)
		}
		if len(page) != 2 || page[0].ID != ids[2] || page[1].ID != ids[1] {
			t.Errorf("History page = %+v, want %v then %v", page, ids[2], ids[1])
		}

		var pagination struct {
			Total int `json:"total"`
			Pages int `json:"pages"`
		}
		if err := json.Unmarshal(resp.Pagination, &pagination); err != nil {
			t.Fatalf("Failed to decode pagination: %v", err)
		}
		if pagination.Total != 3 || pagination.Pages != 2 {
			t.Errorf("Pagination = %+v, want total 3 over 2 pages", pagination)
		}
	})

	t.Run("Delete Is Owner Scoped", func(t *testing.T) {
		status, _ := doJSON(t, http.MethodDelete, ts.URL+"/api/dashboard/history/"+ids[0], intruder, nil)
		if status != http.StatusForbidden {
			t.Errorf("Foreign delete returned %d, want 403", status)
		}

		status, _ = doJSON(t, http.MethodDelete, ts.URL+"/api/dashboard/history/"+ids[0], owner, nil)
		if status != http.StatusOK {
			t.Errorf("Owner delete returned %d, want 200", status)
		}
	})

	t.Run("Stats Keep Usage", func(t *testing.T) {
		status, resp := doJSON(t, http.MethodGet, ts.URL+"/api/dashboard/stats", owner, nil)
		if status != http.StatusOK {
			t.Fatalf("Stats returned status %d", status)
		}
		var stats struct {
			TotalReports   int `json:"totalReports"`
			UsedQueries    int `json:"usedQueries"`
			RemainingUsage int `json:"remainingUsage"`
		}
		if err := json.Unmarshal(resp.Data, &stats); err != nil {
			t.Fatalf("Failed to decode stats: %v", err)
		}
		if stats.TotalReports != 2 || stats.UsedQueries != 3 || stats.RemainingUsage != 0 {
			t.Errorf("Stats = %+v", stats)
		}
	})
}

func TestReadiness(t *testing.T) {
	ts := setupTestServer(t, nil)

	status, _ := doJSON(t, http.MethodGet, ts.URL+"/readyz", "", nil)
	if status != http.StatusOK {
		t.Errorf("Readyz returned %d, want 200", status)
	}
}
