package main

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numUsers     = 200
	numDays      = 28
)

var firstDay = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== fitscore Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", numWorkers, testDuration)
	fmt.Printf("Users: %d | Days: %d\n\n", numUsers, numDays)

	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	fmt.Println("\n--- Phase 1: Ingesting activity (POST /activity/*) ---")
	runPhase(testDuration, doIngest)

	fmt.Println("\n--- Phase 2: Scoring (60% calculate, 40% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.60:
			return doCalculate(rng)
		case r < 0.80:
			return doGetInsights(rng)
		default:
			return doGetStreak(rng)
		}
	})

	fmt.Println("\n--- Phase 3: Read-heavy (10% calculate, 90% reads) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.10:
			return doCalculate(rng)
		case r < 0.55:
			return doGetInsights(rng)
		case r < 0.80:
			return doGetScores(rng)
		default:
			return doGetStreak(rng)
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					results <- workFn(rng)
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-28s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + strings.Repeat("-", 94))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		fmt.Printf("  %-28s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors,
			fmtDur(avgDuration(s.latencies)),
			fmtDur(percentile(s.latencies, 0.50)),
			fmtDur(percentile(s.latencies, 0.95)),
			fmtDur(percentile(s.latencies, 0.99)))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + strings.Repeat("-", 94))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(max(totalOps, 1))*100, rps)
}

func randomUser(rng *rand.Rand) string {
	return fmt.Sprintf("user_%d", rng.Intn(numUsers))
}

func randomDate(rng *rand.Rand) string {
	return firstDay.AddDate(0, 0, rng.Intn(numDays)).Format("2006-01-02")
}

func do(method, path string, body any, want int) result {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	endpoint := method + " " + strings.SplitN(path, "?", 2)[0]

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return result{endpoint, 0, 0, true}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	lat := time.Since(start)
	if err != nil {
		return result{endpoint, 0, lat, true}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{endpoint, resp.StatusCode, lat, resp.StatusCode != want}
}

func doIngest(rng *rand.Rand) result {
	user, date := randomUser(rng), randomDate(rng)
	switch rng.Intn(5) {
	case 0:
		return do(http.MethodPost, "/activity/targets", map[string]any{
			"user_id": user, "date": date, "calories": 1800 + rng.Intn(800),
		}, http.StatusCreated)
	case 1:
		return do(http.MethodPost, "/activity/food", map[string]any{
			"user_id": user, "date": date, "time": fmt.Sprintf("%02d:%02d", 7+rng.Intn(14), rng.Intn(60)),
			"calories": 200 + rng.Intn(700), "protein_g": rng.Intn(40), "sugar_g": rng.Intn(30), "sodium_mg": rng.Intn(1200),
		}, http.StatusCreated)
	case 2:
		return do(http.MethodPost, "/activity/sleep", map[string]any{
			"user_id": user, "date": date, "duration_min": 300 + rng.Intn(330),
		}, http.StatusCreated)
	case 3:
		return do(http.MethodPost, "/activity/water", map[string]any{
			"user_id": user, "date": date, "amount_oz": 8 + rng.Intn(24),
		}, http.StatusCreated)
	default:
		return do(http.MethodPost, "/activity/workout", map[string]any{
			"user_id": user, "date": date, "name": "Session",
			"completed_at": firstDay.Add(time.Duration(rng.Intn(numDays*24)) * time.Hour).Format(time.RFC3339),
		}, http.StatusCreated)
	}
}

func doCalculate(rng *rand.Rand) result {
	return do(http.MethodPost, "/compliance/calculate", map[string]string{
		"user_id": randomUser(rng), "date": randomDate(rng),
	}, http.StatusCreated)
}

func doGetInsights(rng *rand.Rand) result {
	return do(http.MethodGet, fmt.Sprintf("/compliance/insights?user=%s&date=%s", randomUser(rng), randomDate(rng)), nil, http.StatusOK)
}

func doGetScores(rng *rand.Rand) result {
	return do(http.MethodGet, fmt.Sprintf("/compliance/scores?user=%s&date=%s&days=14", randomUser(rng), randomDate(rng)), nil, http.StatusOK)
}

func doGetStreak(rng *rand.Rand) result {
	return do(http.MethodGet, "/streak?user="+randomUser(rng), nil, http.StatusOK)
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dus", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}
