package diag

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLogAppendsJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagnostics.jsonl")
	logger, err := Open(path)
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	defer logger.Close()

	if err := logger.Log(Event{Line: 12, Kind: KindUndefinedFlag, Detail: "flag 'Z' not defined"}); err != nil {
		t.Fatalf("log error: %v", err)
	}
	if err := logger.Log(Event{Kind: KindDictCountMismatch, Detail: "advisory count does not match"}); err != nil {
		t.Fatalf("log error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var events []Event
	for scanner.Scan() {
		var e Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		events = append(events, e)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Kind != KindUndefinedFlag || events[0].Line != 12 {
		t.Fatalf("got %+v", events[0])
	}
}
