package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic test data generation and must match expected results.
// DO NOT MODIFY: Changing these will break the test's deterministic behavior.
const (
	zoneCount        = 3  // Zones z1..z3
	rowsPerZone      = 4  // Rows 1..4 per zone
	positionsPerRow  = 8  // Positions 1..8 per row
	sessionsPerHost  = 5  // Non-overlapping sessions per computer
	sessionGapMillis = 60 * 60 * 1000
)

// ### End - fixed configs

type sessionRecord struct {
	Host      string `json:"host"`
	StartTime int64  `json:"startTime"`
	EndTime   int64  `json:"endTime,omitempty"`
}

type snapshotPayload struct {
	Sessions []sessionRecord `json:"sessions"`
}

// main runs the e2e scenario: 001_snapshot_report
//
// This scenario tests the end-to-end flow of session snapshot ingestion,
// cluster construction, and statistics report computation. It sends a
// deterministic snapshot covering every computer in a 3-zone cluster, resends
// it under the same idempotency key to verify duplicate rejection, then polls
// the report endpoint until the computed report appears.
//
// What it tests:
//   - Snapshot ingestion via POST /v1/sessions endpoint
//   - Idempotency key handling for duplicate snapshot detection
//   - Cluster rebuild event production and consumption
//   - Full report computation (windows, weekday stats, concurrency graphs)
//   - Report retrieval via GET /v1/report
//
// Expected results:
//   - The original snapshot returns 202 Accepted
//   - Duplicate sends return 409 Conflict (idempotency working)
//   - The report lists 3 zones, 4 rows each, 8 computers per row
//   - Every computer carries 5 sessions and all four stats windows
//   - weeks_stats contains all 7 weekdays with 144-bucket session graphs
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080"    // Base URL of the cluster analytics API server
	dateUTC := "2025-12-22"               // Monday used as the first session day (UTC)
	duplicateSends := 3                   // Number of duplicate snapshot sends to test idempotency
	parallel := 2                         // Number of concurrent duplicate requests to send
	fileStorageDir := ".tmp/file-storage" // File storage directory path relative to project root
	wantCleanFileStorage := true          // If true, clean up file storage directory before running scenario
	reportWaitSeconds := 10               // How long to poll for the computed report

	// Get project root directory by looking for go.mod file
	// Start from current working directory and walk up until we find go.mod
	projectRoot, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to get current working directory: %v\n", err)
		os.Exit(1)
	}

	// Walk up the directory tree to find go.mod
	for i := 0; i < 10; i++ {
		goModPath := filepath.Join(projectRoot, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			break
		}
		parent := filepath.Dir(projectRoot)
		if parent == projectRoot {
			fmt.Fprintf(os.Stderr, "ERROR: Could not find go.mod file. Please run from project root\n")
			os.Exit(1)
		}
		projectRoot = parent
	}

	// Resolve file storage directory relative to project root
	storagePath := filepath.Join(projectRoot, fileStorageDir)
	storagePath, err = filepath.Abs(storagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to resolve file storage path: %v\n", err)
		os.Exit(1)
	}

	// Clean up file storage if requested
	if wantCleanFileStorage {
		fmt.Printf("Cleaning file storage directory: %s\n", storagePath)
		if err := os.RemoveAll(storagePath); err != nil {
			fmt.Fprintf(os.Stderr, "WARNING: Failed to clean file storage directory: %v\n", err)
		} else {
			fmt.Printf("File storage directory cleaned\n")
		}
		fmt.Println()
	}

	fmt.Println("Starting e2e scenario: 001_snapshot_report")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("DATE_UTC: %s\n", dateUTC)
	fmt.Printf("DUPLICATE_SENDS: %d\n", duplicateSends)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Printf("FILE_STORAGE_DIR: %s\n", fileStorageDir)
	fmt.Printf("FILE_STORAGE_PATH: %s\n", storagePath)
	fmt.Printf("WANT_CLEAN_FILE_STORAGE: %v\n", wantCleanFileStorage)
	fmt.Println()

	// Generate the deterministic snapshot
	baseTime, err := time.Parse("2006-01-02", dateUTC)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Invalid DATE_UTC %q: %v\n", dateUTC, err)
		os.Exit(1)
	}
	payload := generateSnapshot(baseTime)
	jsonData, err := json.Marshal(payload)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to marshal snapshot: %v\n", err)
		os.Exit(1)
	}
	expectedComputers := zoneCount * rowsPerZone * positionsPerRow
	fmt.Printf("Generated snapshot: %d sessions across %d computers\n", len(payload.Sessions), expectedComputers)
	fmt.Println()

	idempotencyKey := "e2e-001-snapshot"

	// Send the original snapshot
	statusCode, err := sendSnapshot(baseURL, idempotencyKey, jsonData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Original snapshot send failed: %v\n", err)
		os.Exit(1)
	}
	if statusCode != http.StatusAccepted {
		fmt.Fprintf(os.Stderr, "ERROR: Expected 202 for original snapshot, got %d\n", statusCode)
		os.Exit(1)
	}
	fmt.Printf("Original snapshot accepted (status %d)\n", statusCode)

	// Send duplicates concurrently; every one must be rejected with 409
	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var conflictedRequest int64
	var unexpectedStatus int64

	for i := 0; i < duplicateSends; i++ {
		wg.Add(1)
		workerChan <- struct{}{} // Acquire worker slot

		go func(sendIndex int) {
			defer wg.Done()
			defer func() { <-workerChan }() // Release worker slot

			statusCode, err := sendSnapshot(baseURL, idempotencyKey, jsonData)
			if err != nil {
				fmt.Fprintf(os.Stderr, "ERROR: Duplicate send %d failed: %v\n", sendIndex, err)
				atomic.AddInt64(&unexpectedStatus, 1)
				return
			}
			if statusCode == http.StatusConflict {
				atomic.AddInt64(&conflictedRequest, 1)
			} else {
				atomic.AddInt64(&unexpectedStatus, 1)
			}
			fmt.Printf("Duplicate send %d completed (status %d)\n", sendIndex, statusCode)
		}(i + 1)
	}
	wg.Wait()
	fmt.Println()

	if atomic.LoadInt64(&unexpectedStatus) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d duplicate sends did not return 409\n", unexpectedStatus)
		os.Exit(1)
	}

	// Poll for the computed report
	report, err := waitForReport(baseURL, idempotencyKey, reportWaitSeconds)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}

	// Verify report shape
	if err := verifyReport(report, expectedComputers); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Report verification failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("=== Statistics ===")
	fmt.Printf("Duplicate sends rejected: %d\n", atomic.LoadInt64(&conflictedRequest))
	fmt.Printf("Computers in report: %d\n", expectedComputers)
	fmt.Println("Scenario completed successfully")
}

// generateSnapshot builds non-overlapping sessions for every computer. The
// last session of the last computer is left open to exercise the open-session
// path end to end.
func generateSnapshot(baseTime time.Time) snapshotPayload {
	sessions := make([]sessionRecord, 0, zoneCount*rowsPerZone*positionsPerRow*sessionsPerHost)

	hostIndex := 0
	totalHosts := zoneCount * rowsPerZone * positionsPerRow
	for zone := 1; zone <= zoneCount; zone++ {
		for row := 1; row <= rowsPerZone; row++ {
			for position := 1; position <= positionsPerRow; position++ {
				host := fmt.Sprintf("z%dr%dp%d", zone, row, position)
				hostStart := baseTime.Add(time.Duration(hostIndex) * time.Minute)

				for s := 0; s < sessionsPerHost; s++ {
					startMillis := hostStart.UnixMilli() + int64(s)*2*sessionGapMillis
					endMillis := startMillis + sessionGapMillis

					record := sessionRecord{
						Host:      host,
						StartTime: startMillis,
						EndTime:   endMillis,
					}
					isLastHost := hostIndex == totalHosts-1
					if isLastHost && s == sessionsPerHost-1 {
						record.EndTime = 0 // open session
					}
					sessions = append(sessions, record)
				}
				hostIndex++
			}
		}
	}

	return snapshotPayload{Sessions: sessions}
}

func sendSnapshot(baseURL, idempotencyKey string, jsonData []byte) (int, error) {
	req, err := http.NewRequest("POST", baseURL+"/v1/sessions", bytes.NewReader(jsonData))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("idempotency-key", idempotencyKey)

	client := &http.Client{
		Timeout: 30 * time.Second,
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	// 409 Conflict is expected for duplicates; other 4xx/5xx are failures
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusConflict {
		return resp.StatusCode, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	return resp.StatusCode, nil
}

func waitForReport(baseURL, snapshotID string, waitSeconds int) (map[string]any, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	deadline := time.Now().Add(time.Duration(waitSeconds) * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(baseURL + "/v1/report")
		if err != nil {
			return nil, fmt.Errorf("report request failed: %w", err)
		}

		if resp.StatusCode == http.StatusNotFound {
			resp.Body.Close()
			time.Sleep(200 * time.Millisecond)
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected report status %d", resp.StatusCode)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read report body: %w", err)
		}

		var report map[string]any
		if err := json.Unmarshal(body, &report); err != nil {
			return nil, fmt.Errorf("failed to decode report: %w", err)
		}

		// The report may still reflect an older snapshot; keep polling until
		// ours shows up.
		if id, ok := report["snapshotId"].(string); ok && id == snapshotID {
			fmt.Printf("Report for snapshot %s available\n", snapshotID)
			return report, nil
		}
		time.Sleep(200 * time.Millisecond)
	}

	return nil, fmt.Errorf("report for snapshot %s not available after %ds", snapshotID, waitSeconds)
}

func verifyReport(report map[string]any, expectedComputers int) error {
	zones, ok := report["zones"].([]any)
	if !ok {
		return fmt.Errorf("report has no zones array")
	}
	if len(zones) != zoneCount {
		return fmt.Errorf("expected %d zones, got %d", zoneCount, len(zones))
	}

	computers := 0
	for _, zoneAny := range zones {
		zone := zoneAny.(map[string]any)
		rows, ok := zone["rows"].([]any)
		if !ok {
			return fmt.Errorf("zone %v has no rows array", zone["zone_name"])
		}
		if len(rows) != rowsPerZone {
			return fmt.Errorf("zone %v: expected %d rows, got %d", zone["zone_name"], rowsPerZone, len(rows))
		}
		for _, rowAny := range rows {
			row := rowAny.(map[string]any)
			rowComputers, ok := row["computers"].([]any)
			if !ok {
				return fmt.Errorf("row %v has no computers array", row["row_number"])
			}
			computers += len(rowComputers)
		}
	}
	if computers != expectedComputers {
		return fmt.Errorf("expected %d computers, got %d", expectedComputers, computers)
	}

	weekStats, ok := report["weeks_stats"].(map[string]any)
	if !ok {
		return fmt.Errorf("report has no weeks_stats object")
	}
	if len(weekStats) != 7 {
		return fmt.Errorf("expected 7 weekdays in weeks_stats, got %d", len(weekStats))
	}
	for day, statsAny := range weekStats {
		stats := statsAny.(map[string]any)
		graph, ok := stats["sessions_graph"].(map[string]any)
		if !ok {
			return fmt.Errorf("weekday %s has no sessions_graph", day)
		}
		if len(graph) != 144 {
			return fmt.Errorf("weekday %s: expected 144 graph buckets, got %d", day, len(graph))
		}
	}

	fmt.Println("Report shape verified")
	return nil
}
