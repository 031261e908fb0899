package main

import (
	"flag"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

type initiateRequest struct {
	Gateway string `json:"gateway"`
	Amount  int64  `json:"amount"`
}

type initiateResponse struct {
	TransactionID string `json:"transactionId"`
	RefID         string `json:"refId"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// result is the outcome of one initiate plus lookup round trip
type result struct {
	Gateway      string
	Success      bool
	InitiateTime time.Duration
	LookupTime   time.Duration
	Error        string
}

type stats struct {
	mu            sync.Mutex
	total         int
	successful    int
	initiateTimes []time.Duration
	lookupTimes   []time.Duration
	perGateway    map[string]int
	errors        map[string]int
}

func (s *stats) add(r result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.perGateway[r.Gateway]++
	if r.Success {
		s.successful++
		s.initiateTimes = append(s.initiateTimes, r.InitiateTime)
		s.lookupTimes = append(s.lookupTimes, r.LookupTime)
		return
	}
	s.errors[r.Error]++
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent workers")
	totalRequests := flag.Int("n", 100, "Total number of payments to initiate")
	gatewaysFlag := flag.String("g", "mellat,sadad", "Comma-separated gateways to spread payments across")
	baseURL := flag.String("url", "http://localhost:8080", "Base URL for the API")
	delayMs := flag.Int("delay", 100, "Delay between requests in milliseconds")
	maxAmount := flag.Int64("max-amount", 500000, "Upper bound of the random amount in rials")
	flag.Parse()

	var gateways []string
	for _, g := range strings.Split(*gatewaysFlag, ",") {
		if g = strings.TrimSpace(g); g != "" {
			gateways = append(gateways, g)
		}
	}
	if len(gateways) == 0 {
		gateways = []string{"mellat"}
	}

	fmt.Printf("Initiating %d payments across %v with %d workers (%d ms delay)\n",
		*totalRequests, gateways, *concurrency, *delayMs)

	client := resty.New().
		SetBaseURL(*baseURL).
		SetTimeout(30*time.Second).
		SetHeader("Accept-Language", "en")

	s := &stats{
		total:      *totalRequests,
		perGateway: make(map[string]int),
		errors:     make(map[string]int),
	}

	jobs := make(chan int, *totalRequests)
	for i := 0; i < *totalRequests; i++ {
		jobs <- i
	}
	close(jobs)

	start := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				if *delayMs > 0 {
					time.Sleep(time.Duration(*delayMs) * time.Millisecond)
				}
				gateway := gateways[rand.Intn(len(gateways))]
				amount := 1000 + rand.Int63n(max(*maxAmount-1000, 1))
				s.add(roundTrip(client, gateway, amount))
			}
		}()
	}
	wg.Wait()

	printResults(s, time.Since(start))
}

// roundTrip initiates a payment and reads the record back
func roundTrip(client *resty.Client, gateway string, amount int64) result {
	r := result{Gateway: gateway}

	var created initiateResponse
	var failure errorResponse
	began := time.Now()
	resp, err := client.R().
		SetBody(initiateRequest{Gateway: gateway, Amount: amount}).
		SetResult(&created).
		SetError(&failure).
		Post("/payments")
	r.InitiateTime = time.Since(began)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	if resp.IsError() {
		r.Error = fmt.Sprintf("initiate %d: code %d %s", resp.StatusCode(), failure.Code, failure.Kind)
		return r
	}

	began = time.Now()
	resp, err = client.R().Get("/payments/" + created.TransactionID)
	r.LookupTime = time.Since(began)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	if resp.IsError() {
		r.Error = fmt.Sprintf("lookup %d", resp.StatusCode())
		return r
	}

	r.Success = true
	return r
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)*p/100]
}

func summarize(label string, times []time.Duration) {
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })
	var total time.Duration
	for _, t := range times {
		total += t
	}
	var avg time.Duration
	if len(times) > 0 {
		avg = total / time.Duration(len(times))
	}
	fmt.Printf("%-9s avg %v  p50 %v  p90 %v  p99 %v\n", label, avg,
		percentile(times, 50), percentile(times, 90), percentile(times, 99))
}

func printResults(s *stats, elapsed time.Duration) {
	failed := s.total - s.successful

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Payments:            %d\n", s.total)
	fmt.Printf("Successful:          %d (%.1f%%)\n", s.successful, float64(s.successful)/float64(s.total)*100)
	fmt.Printf("Failed:              %d (%.1f%%)\n", failed, float64(failed)/float64(s.total)*100)
	fmt.Printf("Total Test Time:     %.2f seconds\n", elapsed.Seconds())
	fmt.Printf("Initiations/second:  %.2f\n", float64(s.successful)/elapsed.Seconds())

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	summarize("initiate", s.initiateTimes)
	summarize("lookup", s.lookupTimes)

	fmt.Println("\n----------------- GATEWAY DISTRIBUTION -----------------")
	for gateway, count := range s.perGateway {
		fmt.Printf("%-10s: %d payments\n", gateway, count)
	}

	if failed > 0 {
		fmt.Println("\n----------------- ERROR DISTRIBUTION -----------------")
		for msg, count := range s.errors {
			fmt.Printf("%-40s: %d\n", msg, count)
		}
	}
}
