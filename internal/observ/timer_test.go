package observ

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("load")
	time.Sleep(2 * time.Millisecond)
	tm.End(idx, "3 lines")
	if err := tm.Measure("write", func() error { return errors.New("disk full") }); err == nil {
		t.Fatal("Measure swallowed the error")
	}
	tm.End(99, "ignored")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d", len(report.Phases))
	}
	if report.Phases[0].DurationMS < 2 || report.Phases[0].Note != "3 lines" {
		t.Fatalf("load = %+v", report.Phases[0])
	}
	if report.Phases[1].Note != "failed" {
		t.Fatalf("write = %+v", report.Phases[1])
	}
	if report.TotalMS < report.Phases[0].DurationMS {
		t.Fatalf("total %.2f < load %.2f", report.TotalMS, report.Phases[0].DurationMS)
	}

	summary := tm.Summary()
	for _, want := range []string{"timings:", "load", "// 3 lines", "write", "total"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestTimerConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = tm.Measure("file", func() error { return nil })
		}()
	}
	wg.Wait()
	if got := len(tm.Report().Phases); got != 8 {
		t.Fatalf("phases = %d", got)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	if len(tm.Report().Phases) != 0 {
		t.Fatal("nil timer reported phases")
	}
}
