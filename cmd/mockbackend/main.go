// Command mockbackend is a stand-in for the legacy medication backend,
// used for local development and demos of the gateway. It deliberately
// answers with the OLD field names (medication_name, strength, nested
// schedule objects) so the gateway's normalization path gets exercised
// against realistic drift, and it persists to a flat JSON file the same
// way the real legacy system does.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
)

type dataStore struct {
	Medications []map[string]any `json:"medications"`
	Reminders   []map[string]any `json:"reminders"`
	NextID      int              `json:"next_id"`
}

var (
	dataFile string
	store    dataStore
	mu       sync.Mutex
)

func loadData() error {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(dataFile)
	if err != nil {
		if os.IsNotExist(err) {
			store = seedData()
			return saveLocked()
		}
		return err
	}
	return json.Unmarshal(file, &store)
}

func saveLocked() error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(dataFile, data, 0644)
}

// seedData mirrors what a long-lived legacy install looks like: records
// written by different backend versions side by side.
func seedData() dataStore {
	return dataStore{
		NextID: 100,
		Medications: []map[string]any{
			{
				"medication_id":   "1",
				"medication_name": "Atorvastatin",
				"strength":        "20mg",
				"icon_type":       "general",
				"schedule":        map[string]any{"frequency": "Once daily", "time": "08:00"},
			},
			{
				"id":        "2",
				"name":      "Lisinopril",
				"dosage":    "10mg",
				"pill_type": "orange",
				"inventory": map[string]any{"remaining": 24, "unit": "tablet"},
			},
		},
		Reminders: []map[string]any{
			{
				"id":   "10",
				"date": "2025-06-10",
				"time": "08:00",
				"reminder_medications": []any{
					map[string]any{"id": "10-1", "medication_id": "1", "schedule_time": "08:00", "status": "pending"},
					map[string]any{"id": "10-2", "medication_id": "2", "schedule_time": "08:00", "status": "pending"},
				},
			},
		},
	}
}

func nextID() string {
	store.NextID++
	return strconv.Itoa(store.NextID)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleMedications(w http.ResponseWriter, r *http.Request) {
	mu.Lock()
	defer mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"medications": store.Medications})
	case http.MethodPost:
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		// The legacy schema predates these fields; reject them the way
		// the real backend does, so the gateway's simplified retry runs.
		if strings.HasSuffix(r.URL.Path, "/medications") {
			for _, field := range []string{"pill_type", "when_to_take", "side_effects"} {
				if _, ok := req[field]; ok {
					http.Error(w, fmt.Sprintf("unknown field %s", field), http.StatusBadRequest)
					return
				}
			}
		}
		req["medication_id"] = nextID()
		store.Medications = append(store.Medications, req)
		saveLocked()
		writeJSON(w, http.StatusCreated, map[string]any{"medication": req})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func handleMedicationByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/medications/")

	mu.Lock()
	defer mu.Unlock()

	idx := -1
	for i, med := range store.Medications {
		if medID(med) == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		http.Error(w, "medication not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		req["medication_id"] = id
		store.Medications[idx] = req
		saveLocked()
		writeJSON(w, http.StatusOK, map[string]any{"medication": req})
	case http.MethodDelete:
		store.Medications = append(store.Medications[:idx], store.Medications[idx+1:]...)
		saveLocked()
		writeJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func medID(med map[string]any) string {
	for _, key := range []string{"medication_id", "id"} {
		if v, ok := med[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

func handleReminders(w http.ResponseWriter, r *http.Request) {
	mu.Lock()
	defer mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		date := r.URL.Query().Get("date")
		matched := make([]map[string]any, 0)
		for _, rem := range store.Reminders {
			if d, _ := rem["date"].(string); d == date {
				matched = append(matched, rem)
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"reminders": matched})
	case http.MethodPost:
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req["date"] == nil || req["date"] == "" {
			http.Error(w, "date is required", http.StatusBadRequest)
			return
		}
		remID := nextID()
		req["id"] = remID
		if meds, ok := req["medications"].([]any); ok {
			links := make([]any, 0, len(meds))
			for i, m := range meds {
				input, _ := m.(map[string]any)
				links = append(links, map[string]any{
					"id":            fmt.Sprintf("%s-%d", remID, i+1),
					"medication_id": input["medicationId"],
					"schedule_time": input["scheduleTime"],
					"status":        "pending",
				})
			}
			req["reminder_medications"] = links
			delete(req, "medications")
		}
		store.Reminders = append(store.Reminders, req)
		saveLocked()
		writeJSON(w, http.StatusCreated, req)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handleDoseStatus handles PUT /reminders/medications/{id}/{action}.
func handleDoseStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rest := strings.TrimPrefix(r.URL.Path, "/reminders/medications/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 {
		http.Error(w, "bad path", http.StatusBadRequest)
		return
	}
	doseID, action := parts[0], parts[1]

	status := map[string]string{"taken": "taken", "skipped": "skipped", "reset": "pending"}[action]
	if status == "" {
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}

	mu.Lock()
	defer mu.Unlock()

	for _, rem := range store.Reminders {
		links, _ := rem["reminder_medications"].([]any)
		for _, l := range links {
			link, _ := l.(map[string]any)
			if link["id"] == doseID {
				link["status"] = status
				saveLocked()
				writeJSON(w, http.StatusOK, map[string]string{"status": status})
				return
			}
		}
	}
	http.Error(w, "reminder medication not found", http.StatusNotFound)
}

func main() {
	addr := flag.String("addr", ":3000", "listen address")
	flag.StringVar(&dataFile, "data", "mockbackend.json", "data file path")
	flag.Parse()

	if err := loadData(); err != nil {
		log.Fatalf("load data: %v", err)
	}

	http.HandleFunc("/health", handleHealth)
	http.HandleFunc("/medications", handleMedications)
	http.HandleFunc("/medications/simple", handleMedications)
	http.HandleFunc("/medications/", handleMedicationByID)
	http.HandleFunc("/reminders", handleReminders)
	http.HandleFunc("/reminders/medications/", handleDoseStatus)

	log.Printf("mock legacy backend listening on %s (data: %s)", *addr, dataFile)
	log.Fatal(http.ListenAndServe(*addr, nil))
}
