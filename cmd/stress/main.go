// README: Stress generator; fires concurrent ride requests at the intake API.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"ridedispatch/internal/modules/zone"
)

type cliConfig struct {
	BaseURL     string
	Requests    int
	Concurrency int
	Timeout     time.Duration
}

func loadConfig() cliConfig {
	var cfg cliConfig
	flag.StringVar(&cfg.BaseURL, "base-url", envOrDefault("DISPATCH_STRESS_BASE_URL", "http://localhost:8080"), "API base URL")
	flag.IntVar(&cfg.Requests, "requests", 1000, "total ride requests to send")
	flag.IntVar(&cfg.Concurrency, "concurrency", 50, "concurrent senders")
	flag.DurationVar(&cfg.Timeout, "timeout", 5*time.Second, "per-request timeout")
	flag.Parse()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return cfg
}

func main() {
	cfg := loadConfig()
	client := &http.Client{Timeout: cfg.Timeout}
	endpoint := cfg.BaseURL + "/api/request-ride"
	zones := zone.Names()

	jobs := make(chan int)
	var ok, failed atomic.Int64
	var wg sync.WaitGroup

	start := time.Now()
	for w := 0; w < cfg.Concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				if err := sendRequest(client, endpoint, zones); err != nil {
					failed.Add(1)
					fmt.Fprintf(os.Stderr, "request failed: %v\n", err)
					continue
				}
				ok.Add(1)
			}
		}()
	}
	for i := 0; i < cfg.Requests; i++ {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	elapsed := time.Since(start)
	fmt.Printf("sent %d requests in %s (%d ok, %d failed, %.1f req/s)\n",
		cfg.Requests, elapsed.Round(time.Millisecond), ok.Load(), failed.Load(),
		float64(cfg.Requests)/elapsed.Seconds())
	if failed.Load() > 0 {
		os.Exit(1)
	}
}

func sendRequest(client *http.Client, endpoint string, zones []string) error {
	source := zones[rand.Intn(len(zones))]
	destination := zones[rand.Intn(len(zones))]
	payload, err := json.Marshal(map[string]string{
		"user_id":              fmt.Sprintf("STRESS-%08X", rand.Int63n(1<<32)),
		"source_location":      source,
		"destination_location": destination,
	})
	if err != nil {
		return err
	}
	resp, err := client.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
