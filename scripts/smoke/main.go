// Command smoke probes a running API instance and reports per-endpoint
// status. It is meant for post-deploy verification, not load testing.
package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type target struct {
	method   string
	path     string
	authed   bool
	expected int
}

func main() {
	var (
		base    string
		token   string
		timeout time.Duration
	)

	flag.StringVar(&base, "base", "http://localhost:8080", "API base URL")
	flag.StringVar(&token, "token", os.Getenv("SMOKE_TOKEN"), "Bearer token for authenticated endpoints")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	targets := []target{
		{method: http.MethodGet, path: "/health", expected: http.StatusOK},
		{method: http.MethodGet, path: "/ready", expected: http.StatusOK},
		{method: http.MethodGet, path: "/metrics", expected: http.StatusOK},
		{method: http.MethodGet, path: "/api/v1/courses", authed: true, expected: http.StatusOK},
		{method: http.MethodGet, path: "/api/v1/me/schedule", authed: true, expected: http.StatusOK},
		{method: http.MethodGet, path: "/api/v1/me/dashboard", authed: true, expected: http.StatusOK},
	}

	client := &http.Client{Timeout: timeout}
	failures := 0

	for _, tgt := range targets {
		status, duration, err := probe(client, base, token, tgt)
		if err != nil {
			fmt.Printf("FAIL %-6s %-28s error: %v\n", tgt.method, tgt.path, err)
			failures++
			continue
		}
		if status != tgt.expected {
			fmt.Printf("FAIL %-6s %-28s got %d want %d (%s)\n", tgt.method, tgt.path, status, tgt.expected, duration)
			failures++
			continue
		}
		fmt.Printf("ok   %-6s %-28s %d (%s)\n", tgt.method, tgt.path, status, duration)
	}

	if failures > 0 {
		fmt.Printf("%d endpoint(s) failing\n", failures)
		os.Exit(1)
	}
}

func probe(client *http.Client, base, token string, tgt target) (int, time.Duration, error) {
	req, err := http.NewRequest(tgt.method, base+tgt.path, nil)
	if err != nil {
		return 0, 0, err
	}
	if tgt.authed {
		if token == "" {
			return 0, 0, fmt.Errorf("no token provided for authenticated endpoint")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := client.Do(req)
	duration := time.Since(start)
	if err != nil {
		return 0, duration, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, duration, nil
}
