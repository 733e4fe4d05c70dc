package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func sampleEvents(base time.Time) []Event {
	d := 3 * time.Millisecond
	return []Event{
		{
			Timestamp: base,
			Interface: "wlan0",
			Direction: DirectionIn,
			Layer:     LayerLink,
			Category:  CategoryDispatch,
			State:     "Disconnected",
			NetworkID: intPtr(5),
			Dispatch:  &DispatchEvent{What: "NETWORK_CONNECTED", Outcome: OutcomeHandled, ProcessingTime: &d},
		},
		{
			Timestamp:   base.Add(time.Second),
			Interface:   "wlan0",
			Layer:       LayerCore,
			Category:    CategoryState,
			StateChange: &StateChangeEvent{Entity: StateEntityMachine, OldState: "Disconnecting", NewState: "ObtainingIp"},
		},
		{
			Timestamp: base.Add(2 * time.Second),
			Interface: "wlan0",
			Layer:     LayerCore,
			Category:  CategoryError,
			Error:     &ErrorEventData{Layer: LayerCore, Message: "event with what 0", Defect: true},
		},
	}
}

func TestEncodeDecodeEvent(t *testing.T) {
	ev := sampleEvents(time.Date(2026, 3, 1, 10, 0, 0, 123456789, time.UTC))[0]

	data, err := EncodeEvent(ev)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !decoded.Timestamp.Equal(ev.Timestamp) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, ev.Timestamp)
	}
	if decoded.Dispatch == nil || decoded.Dispatch.What != "NETWORK_CONNECTED" {
		t.Fatalf("Dispatch: got %+v", decoded.Dispatch)
	}
	if decoded.Dispatch.ProcessingTime == nil || *decoded.Dispatch.ProcessingTime != 3*time.Millisecond {
		t.Errorf("ProcessingTime: got %v", decoded.Dispatch.ProcessingTime)
	}
	if decoded.NetworkID == nil || *decoded.NetworkID != 5 {
		t.Errorf("NetworkID: got %v, want 5", decoded.NetworkID)
	}
}

func TestDecodeEventRejectsTrailingBytes(t *testing.T) {
	data, err := EncodeEvent(sampleEvents(time.Now())[1])
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	if _, err := DecodeEvent(append(data, 0x00)); err == nil {
		t.Error("expected error for trailing bytes")
	}
	if _, err := DecodeEvent(data[:len(data)-1]); !errors.Is(err, ErrTruncated) {
		t.Errorf("got %v, want ErrTruncated", err)
	}
}

func TestReaderReportsTruncatedTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wlan0.stlog")
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, ev := range sampleEvents(time.Now()) {
		if err := enc.Encode(ev); err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
	}
	// Simulate a writer killed halfway through the last event.
	if err := os.WriteFile(path, buf.Bytes()[:buf.Len()-4], 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()
	events, err := r.ReadAll()
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("got %v, want ErrTruncated", err)
	}
	if len(events) != 2 {
		t.Errorf("got %d complete events, want 2", len(events))
	}
}

func TestFileLoggerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wlan0.stlog")
	base := time.Now()

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for _, ev := range sampleEvents(base) {
		logger.Log(ev)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	logger.Log(Event{}) // ignored after close

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	events, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[1].StateChange == nil || events[1].StateChange.NewState != "ObtainingIp" {
		t.Errorf("second event: got %+v", events[1].StateChange)
	}
	if logger.Dropped() != 0 {
		t.Errorf("Dropped: got %d, want 0", logger.Dropped())
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wlan0.stlog")
	for i := 0; i < 2; i++ {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(sampleEvents(time.Now())[0])
		logger.Close()
	}

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()
	events, _ := r.ReadAll()
	if len(events) != 2 {
		t.Errorf("got %d events, want 2", len(events))
	}
}

func TestFileLoggerConcurrentWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wlan0.stlog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				logger.Log(sampleEvents(time.Now())[1])
			}
		}()
	}
	wg.Wait()
	logger.Close()

	r, _ := NewReader(path)
	defer r.Close()
	events, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 200 {
		t.Errorf("got %d events, want 200", len(events))
	}
}

func TestFilteredReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wlan0.stlog")
	base := time.Now()
	logger, _ := NewFileLogger(path)
	for _, ev := range sampleEvents(base) {
		logger.Log(ev)
	}
	logger.Close()

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 3},
		{"layer", Filter{Layer: func() *Layer { l := LayerLink; return &l }()}, 1},
		{"category", Filter{Category: func() *Category { c := CategoryState; return &c }()}, 1},
		{"network", Filter{NetworkID: intPtr(5)}, 1},
		{"defects", Filter{DefectsOnly: true}, 1},
		{"time window", Filter{TimeStart: ptrTime(base.Add(time.Second)), TimeEnd: ptrTime(base.Add(2 * time.Second))}, 1},
		{"state", Filter{State: "Disconnected"}, 1},
		{"interface", Filter{Interface: "wlan1"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer r.Close()
			n := 0
			for {
				_, err := r.Next()
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("Next failed: %v", err)
				}
				n++
			}
			if n != tt.want {
				t.Errorf("got %d events, want %d", n, tt.want)
			}
		})
	}
}

func ptrTime(t time.Time) *time.Time { return &t }

func TestNewReaderMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "missing.stlog"))
	if !os.IsNotExist(err) {
		t.Errorf("got %v, want not-exist error", err)
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	slogger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adapter := NewSlogAdapter(slogger)

	adapter.Log(sampleEvents(time.Now())[0])

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	if entry["what"] != "NETWORK_CONNECTED" {
		t.Errorf("what: got %v", entry["what"])
	}
	if entry["outcome"] != "HANDLED" {
		t.Errorf("outcome: got %v", entry["outcome"])
	}
	if entry["network_id"] != float64(5) {
		t.Errorf("network_id: got %v", entry["network_id"])
	}
	if entry["level"] != "DEBUG" {
		t.Errorf("level: got %v", entry["level"])
	}
}

func TestSlogAdapterDefectsAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	slogger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	NewSlogAdapter(slogger).Log(sampleEvents(time.Now())[2])

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("defect was filtered out: %v", err)
	}
	if entry["level"] != "ERROR" {
		t.Errorf("level: got %v, want ERROR", entry["level"])
	}
}

func TestMultiAndMemoryLoggers(t *testing.T) {
	a := NewMemoryLogger(0)
	b := NewMemoryLogger(2)
	m := NewMultiLogger(a, nil, b, NoopLogger{})

	for _, ev := range sampleEvents(time.Now()) {
		m.Log(ev)
	}

	if got := len(a.Events(Filter{})); got != 3 {
		t.Errorf("unbounded logger: got %d events, want 3", got)
	}
	kept := b.Events(Filter{})
	if len(kept) != 2 {
		t.Fatalf("bounded logger: got %d events, want 2", len(kept))
	}
	if kept[0].StateChange == nil {
		t.Errorf("bounded logger should drop the oldest event first")
	}
}

func TestEnumStrings(t *testing.T) {
	if LayerConnectivity.String() != "CONNECTIVITY" {
		t.Errorf("LayerConnectivity: got %s", LayerConnectivity)
	}
	if OutcomeStale.String() != "STALE" {
		t.Errorf("OutcomeStale: got %s", OutcomeStale)
	}
	if Category(99).String() != "UNKNOWN" {
		t.Errorf("unknown category: got %s", Category(99))
	}
}
