package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

type statusSnapshot struct {
	Location    string  `json:"location"`
	Online      bool    `json:"online"`
	UptimePct   float64 `json:"uptime_24h"`
	Disconnects int     `json:"disconnects_24h"`
	Speed       struct {
		AvgDownloadMbps float64 `json:"avg_download_mbps"`
		AvgUploadMbps   float64 `json:"avg_upload_mbps"`
		Samples         int     `json:"samples"`
	} `json:"speed"`
	LastUpdate *time.Time `json:"last_update"`
}

func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}

	req, err := http.NewRequest(http.MethodGet, api+"/api/status", nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Bad API_BASE:", err)
		os.Exit(1)
	}
	if key := os.Getenv("API_KEY"); key != "" {
		req.Header.Set("X-API-Key", key)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error contacting API:", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintln(os.Stderr, "API returned status:", resp.Status)
		os.Exit(1)
	}

	var snap statusSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		fmt.Fprintln(os.Stderr, "Bad response:", err)
		os.Exit(1)
	}

	state := "ONLINE"
	if !snap.Online {
		state = "OFFLINE"
	}
	if snap.Location != "" {
		fmt.Printf("%s: %s\n", snap.Location, state)
	} else {
		fmt.Println(state)
	}
	fmt.Printf("Uptime (24h):      %.1f%%\n", snap.UptimePct)
	fmt.Printf("Disconnects (24h): %d\n", snap.Disconnects)
	if snap.Speed.Samples > 0 {
		fmt.Printf("Download:          %.1f Mbps (avg of %d tests)\n",
			snap.Speed.AvgDownloadMbps, snap.Speed.Samples)
		fmt.Printf("Upload:            %.1f Mbps\n", snap.Speed.AvgUploadMbps)
	} else {
		fmt.Println("Download:          no speed tests in window")
	}
	if snap.LastUpdate != nil {
		fmt.Printf("Last update:       %s\n", snap.LastUpdate.Format(time.RFC3339))
	} else {
		fmt.Println("Last update:       never")
	}
}
