// Package audit runs contrast analyses over scanned pairs in parallel
// and aggregates the results.
package audit

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/jmylchreest/albedo/internal/colour"
	"github.com/jmylchreest/albedo/internal/scan"
)

// Item is one audited pair. Result is set on success; Error carries
// the message plus the original inputs when the pair could not be
// analyzed.
type Item struct {
	scan.Pair
	Result *colour.Result `json:"result,omitempty"`

	Error     string `json:"error,omitempty"`
	TextInput string `json:"text_input,omitempty"`
	BgInput   string `json:"bg_input,omitempty"`
}

// Summary holds the bucket counts for a finished audit. The CVD
// counts stay zero unless CVD analysis ran.
type Summary struct {
	Total   int `json:"total"`
	Errors  int `json:"errors"`
	FailAA  int `json:"fail_aa"`
	AAOnly  int `json:"aa_only"`
	PassAAA int `json:"pass_aaa"`

	CVDCritical int `json:"cvd_critical,omitempty"`
	CVDHigh     int `json:"cvd_high,omitempty"`
	CVDWarning  int `json:"cvd_warning,omitempty"`
}

// Options controls an audit run.
type Options struct {
	// Workers is the analysis goroutine count. Zero or negative
	// means runtime.NumCPU(). Always capped at the pair count.
	Workers int

	// IncludeCVD adds colour-vision-deficiency analysis per pair.
	IncludeCVD bool
}

// Result is the output of one audit run. Items preserves the input
// pair order.
type Result struct {
	Items     []Item  `json:"items"`
	Summary   Summary `json:"summary"`
	ElapsedMS int64   `json:"elapsed_ms"`
}

// Run analyzes every pair and returns the collected items with a
// summary. Invalid colour literals become error items, never a run
// failure; the only error returned is the context's, checked between
// jobs.
func Run(ctx context.Context, pairs []scan.Pair, opts Options) (*Result, error) {
	start := time.Now()

	out := make([]Item, len(pairs))

	nw := opts.Workers
	if nw <= 0 {
		nw = runtime.NumCPU()
	}
	if nw > len(pairs) {
		nw = len(pairs)
	}
	if nw < 1 {
		nw = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(nw)
	for i := 0; i < nw; i++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				out[idx] = analyzeOne(pairs[idx], opts)
			}
		}()
	}

	var cancelled error
feed:
	for i := range pairs {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break feed
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if cancelled != nil {
		return nil, cancelled
	}

	return &Result{
		Items:     out,
		Summary:   summarize(out),
		ElapsedMS: time.Since(start).Milliseconds(),
	}, nil
}

func analyzeOne(p scan.Pair, opts Options) Item {
	it := Item{Pair: p}

	aopts := colour.Options{IncludeCVD: opts.IncludeCVD}
	// Non-text elements are judged against the 3.0 minimum from
	// SC 1.4.11 on top of the usual flags.
	switch p.Role {
	case scan.RoleGraphic, scan.RoleBorder, scan.RoleStroke:
		aopts.MinRatio = colour.AALargeRatio
	}

	result, err := colour.AnalyzePair(p.Foreground, p.Background, aopts)
	if err != nil {
		it.Error = err.Error()
		it.TextInput = p.Foreground
		it.BgInput = p.Background
		return it
	}
	it.Result = result
	return it
}

func summarize(items []Item) Summary {
	s := Summary{Total: len(items)}
	for _, it := range items {
		if it.Result == nil {
			s.Errors++
			continue
		}
		switch {
		case !it.Result.AABody:
			s.FailAA++
		case !it.Result.AAABody:
			s.AAOnly++
		default:
			s.PassAAA++
		}
		for _, cvd := range it.Result.CVD {
			switch cvd.Risk {
			case colour.RiskCritical:
				s.CVDCritical++
			case colour.RiskHigh:
				s.CVDHigh++
			case colour.RiskWarning:
				s.CVDWarning++
			}
		}
	}
	return s
}
