package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"kraeval/internal/app/server"
	"kraeval/internal/domain/identity"
	"kraeval/internal/platform/config"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error any             `json:"error"`
}

func testConfig(dbURL string) config.Config {
	return config.Config{
		DatabaseURL:        dbURL,
		JWTSecret:          "test-secret",
		DataEncryptionKey:  "0123456789abcdef0123456789abcdef",
		Environment:        "test",
		SeedOrgName:        "Test Organization",
		RunMigrations:      true,
		RunSeed:            true,
		MigrationsDir:      "../../../../migrations",
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 1000,
	}
}

func TestRatingJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	cfg.ReportsDir = t.TempDir()

	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ctx := context.Background()
	var orgID string
	if err := app.DB.QueryRow(ctx, "SELECT id FROM organizations WHERE name = $1", cfg.SeedOrgName).Scan(&orgID); err != nil {
		t.Fatalf("failed to load organization: %v", err)
	}

	title := fmt.Sprintf("Journey Responsibility %d", time.Now().UnixNano())
	var responsibilityID string
	if err := app.DB.QueryRow(ctx, `
    INSERT INTO responsibilities (organization_id, title)
    VALUES ($1, $2)
    RETURNING id
  `, orgID, title).Scan(&responsibilityID); err != nil {
		t.Fatalf("failed to create responsibility: %v", err)
	}

	var participantID string
	if err := app.DB.QueryRow(ctx, "SELECT gen_random_uuid()").Scan(&participantID); err != nil {
		t.Fatalf("failed to generate participant id: %v", err)
	}

	participantToken := issueToken(t, cfg.JWTSecret, participantID, orgID, identity.RoleParticipant)
	managerToken := issueToken(t, cfg.JWTSecret, "", orgID, identity.RoleManager)

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	firstKRA := createKRA(t, client, ts.URL, managerToken, responsibilityID, "Delivery Quality", 60)
	createKRA(t, client, ts.URL, managerToken, responsibilityID, "Collaboration", 40)

	validation := getJSON(t, client, ts.URL+"/api/v1/responsibilities/"+responsibilityID+"/kras/validate-weights", managerToken)
	var weightCheck map[string]any
	if err := json.Unmarshal(validation.Data, &weightCheck); err != nil {
		t.Fatalf("failed to decode weight validation: %v", err)
	}
	if valid, _ := weightCheck["isValid"].(bool); !valid {
		t.Fatalf("expected weights 60+40 to validate, got %v", weightCheck)
	}

	selfResp := postJSON(t, client, ts.URL+"/api/v1/ratings/self", participantToken, map[string]any{
		"responsibilityKraId": firstKRA,
		"responsibilityId":    responsibilityID,
		"rating":              3,
	})
	var selfSub map[string]any
	if err := json.Unmarshal(selfResp.Data, &selfSub); err != nil {
		t.Fatalf("failed to decode self submission: %v", err)
	}
	if status, _ := selfSub["status"].(string); status != "self_rated" {
		t.Fatalf("expected status self_rated after self rating, got %q", status)
	}

	managerResp := postJSON(t, client, ts.URL+"/api/v1/ratings/manager", managerToken, map[string]any{
		"participantId":       participantID,
		"responsibilityKraId": firstKRA,
		"responsibilityId":    responsibilityID,
		"rating":              5,
	})
	var managerSub map[string]any
	if err := json.Unmarshal(managerResp.Data, &managerSub); err != nil {
		t.Fatalf("failed to decode manager submission: %v", err)
	}
	if status, _ := managerSub["status"].(string); status != "completed" {
		t.Fatalf("expected status completed after both ratings, got %q", status)
	}
	if final, _ := managerSub["finalScore"].(float64); final != 4 {
		t.Fatalf("expected blended final score 4, got %v", final)
	}

	sheet := getJSON(t, client, ts.URL+"/api/v1/responsibilities/"+responsibilityID+"/rating-sheet?participantId="+participantID, managerToken)
	var rows []map[string]any
	if err := json.Unmarshal(sheet.Data, &rows); err != nil {
		t.Fatalf("failed to decode rating sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rating sheet rows, got %d", len(rows))
	}

	rollupResp := getJSON(t, client, ts.URL+"/api/v1/responsibilities/"+responsibilityID+"/rollup?participantId="+participantID, managerToken)
	var rollupPayload map[string]float64
	if err := json.Unmarshal(rollupResp.Data, &rollupPayload); err != nil {
		t.Fatalf("failed to decode rollup: %v", err)
	}
	// Only the 60-weight KRA is rated, so its weight is the whole
	// denominator and the rollup equals its blended final score.
	if rollupPayload["rollup"] != 4 {
		t.Fatalf("expected rollup 4 over rated weight, got %v", rollupPayload["rollup"])
	}

	summary := getJSON(t, client, ts.URL+"/api/v1/reports/appraisal?participantId="+participantID, managerToken)
	var summaryPayload map[string]any
	if err := json.Unmarshal(summary.Data, &summaryPayload); err != nil {
		t.Fatalf("failed to decode appraisal summary: %v", err)
	}
	if rated, _ := summaryPayload["ratedKras"].(float64); rated != 1 {
		t.Fatalf("expected 1 rated kra in summary, got %v", rated)
	}
}

func TestParticipantCannotSubmitManagerRating(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ctx := context.Background()
	var orgID string
	if err := app.DB.QueryRow(ctx, "SELECT id FROM organizations WHERE name = $1", cfg.SeedOrgName).Scan(&orgID); err != nil {
		t.Fatalf("failed to load organization: %v", err)
	}

	ts := httptest.NewServer(app.Router)
	defer ts.Close()

	token := issueToken(t, cfg.JWTSecret, "", orgID, identity.RoleParticipant)
	postJSONStatus(t, ts.Client(), ts.URL+"/api/v1/ratings/manager", token, map[string]any{
		"participantId":       "00000000-0000-0000-0000-000000000001",
		"responsibilityKraId": "00000000-0000-0000-0000-000000000002",
		"rating":              3,
	}, http.StatusForbidden)
}

func issueToken(t *testing.T, secret, userID, orgID, role string) string {
	t.Helper()
	if userID == "" {
		userID = fmt.Sprintf("00000000-0000-4000-8000-%012d", time.Now().UnixNano()%1e12)
	}
	token, err := identity.IssueToken(secret, identity.UserContext{
		UserID:         userID,
		OrganizationID: orgID,
		Role:           role,
	}, time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return token
}

func createKRA(t *testing.T, client *http.Client, baseURL, token, responsibilityID, name string, weight int) string {
	t.Helper()
	resp := postJSON(t, client, baseURL+"/api/v1/responsibilities/"+responsibilityID+"/kras", token, map[string]any{
		"name":   name,
		"weight": weight,
	})
	var payload map[string]any
	if err := json.Unmarshal(resp.Data, &payload); err != nil {
		t.Fatalf("failed to decode kra response: %v", err)
	}
	id, _ := payload["id"].(string)
	if id == "" {
		t.Fatal("expected kra id")
	}
	return id
}

func postJSON(t *testing.T, client *http.Client, url, token string, body any) envelope {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(http.MethodPost, url, reader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.StatusCode >= 400 {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}
	return env
}

func postJSONStatus(t *testing.T, client *http.Client, url, token string, body any, want int) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(raw))
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != want {
		t.Fatalf("expected status %d, got %d", want, resp.StatusCode)
	}
}

func getJSON(t *testing.T, client *http.Client, url, token string) envelope {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.StatusCode >= 400 {
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}
	return env
}
