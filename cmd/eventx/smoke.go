package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"eventx/internal/shared/constants"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// SmokeResult is one request made by the smoke command.
type SmokeResult struct {
	Name         string        `json:"name"`
	Endpoint     string        `json:"endpoint"`
	Attempt      int           `json:"attempt"`
	Status       int           `json:"status"`
	ResponseTime time.Duration `json:"response_time"`
	DataSize     int           `json:"data_size"`
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
}

// SmokeReport aggregates a smoke run.
type SmokeReport struct {
	Total         int           `json:"total"`
	Successful    int           `json:"successful"`
	ImageCached   *bool         `json:"image_cached,omitempty"`
	Results       []SmokeResult `json:"results"`
	AverageFirst  time.Duration `json:"average_first"`
	AverageRepeat time.Duration `json:"average_repeat"`
}

type smokeCase struct {
	name     string
	endpoint string
}

func smokeCases(eventID uint64) []smokeCase {
	return []smokeCase{
		{"Event list", "/events?limit=10"},
		{"Upcoming events", "/events/upcoming?limit=5"},
		{"Event detail", fmt.Sprintf("/events/%d", eventID)},
	}
}

// SmokeRunner hits the public read endpoints twice each so the repeat latency
// reflects the image cache.
type SmokeRunner struct {
	BaseURL string
	Client  *http.Client
	Redis   *redis.Client
}

func (p *SmokeRunner) Run(ctx context.Context, eventID uint64) SmokeReport {
	var report SmokeReport
	var firstTotal, repeatTotal time.Duration

	for _, tc := range smokeCases(eventID) {
		for attempt := 1; attempt <= 2; attempt++ {
			res := p.hit(ctx, tc, attempt)
			report.Results = append(report.Results, res)
			report.Total++
			if res.Success {
				report.Successful++
			}
			if attempt == 1 {
				firstTotal += res.ResponseTime
			} else {
				repeatTotal += res.ResponseTime
			}
		}
	}
	if n := len(report.Results) / 2; n > 0 {
		report.AverageFirst = firstTotal / time.Duration(n)
		report.AverageRepeat = repeatTotal / time.Duration(n)
	}

	if p.Redis != nil {
		n, err := p.Redis.Exists(ctx, constants.BuildEventImageKey(eventID)).Result()
		if err == nil {
			cached := n > 0
			report.ImageCached = &cached
		}
	}
	return report
}

func (p *SmokeRunner) hit(ctx context.Context, tc smokeCase, attempt int) SmokeResult {
	res := SmokeResult{Name: tc.name, Endpoint: tc.endpoint, Attempt: attempt}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+tc.endpoint, nil)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	start := time.Now()
	resp, err := p.Client.Do(req)
	if err != nil {
		res.ResponseTime = time.Since(start)
		res.Error = err.Error()
		return res
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	res.ResponseTime = time.Since(start)
	res.Status = resp.StatusCode
	res.DataSize = len(body)
	res.Success = err == nil && resp.StatusCode >= 200 && resp.StatusCode < 400
	if !res.Success {
		res.Error = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}
	return res
}

func newSmokeCmd() *cobra.Command {
	var (
		baseURL   string
		redisAddr string
		eventID   uint64
		outFile   string
	)
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Smoke-test the public read endpoints of a running API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := &SmokeRunner{
				BaseURL: baseURL,
				Client:  &http.Client{Timeout: 30 * time.Second},
			}
			if redisAddr != "" {
				p.Redis = redis.NewClient(&redis.Options{Addr: redisAddr})
				defer p.Redis.Close()
			}

			report := p.Run(cmd.Context(), eventID)
			printReport(cmd.OutOrStdout(), report)

			if outFile != "" {
				data, err := json.MarshalIndent(report, "", "  ")
				if err != nil {
					return err
				}
				if err := os.WriteFile(outFile, data, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Detailed results saved to %s\n", outFile)
			}
			if report.Successful < report.Total {
				return fmt.Errorf("%d of %d requests failed", report.Total-report.Successful, report.Total)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:8080/api/v1", "API base URL")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address to inspect the image cache (optional)")
	cmd.Flags().Uint64Var(&eventID, "event", 1, "event id to fetch")
	cmd.Flags().StringVar(&outFile, "out", "", "write the JSON report to this file")
	return cmd
}

func printReport(w io.Writer, r SmokeReport) {
	for _, res := range r.Results {
		mark := "ok  "
		if !res.Success {
			mark = "FAIL"
		}
		fmt.Fprintf(w, "%s %-16s #%d %4d %v (%d bytes)\n", mark, res.Name, res.Attempt, res.Status, res.ResponseTime, res.DataSize)
	}
	fmt.Fprintf(w, "Successful: %d/%d\n", r.Successful, r.Total)
	fmt.Fprintf(w, "Average first: %v, repeat: %v\n", r.AverageFirst, r.AverageRepeat)
	if r.ImageCached != nil {
		fmt.Fprintf(w, "Image cached: %t\n", *r.ImageCached)
	}
}
