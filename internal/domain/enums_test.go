package domain

import (
	"encoding/json"
	"testing"
)

func TestRecordJSONUsesNames(t *testing.T) {
	b, err := json.Marshal(RecordMeta{ID: "g", Status: EndedLoss})
	if err != nil {
		t.Fatal(err)
	}
	if want := `{"id":"g","size":0,"bombs":0,"status":"lost","finishedAt":0}`; string(b) != want {
		t.Fatalf("json = %s, want %s", b, want)
	}

	var h Hint
	if err := json.Unmarshal([]byte(`{"action":"flag"}`), &h); err != nil || h.Action != ActionFlag {
		t.Fatalf("Unmarshal action = %v, %v", h.Action, err)
	}
}

func TestUnknownNamesRejected(t *testing.T) {
	var s Status
	if err := s.UnmarshalText([]byte("paused")); err == nil {
		t.Fatal("unknown status accepted")
	}
	var a Action
	if err := a.UnmarshalText([]byte("dig")); err == nil {
		t.Fatal("unknown action accepted")
	}
}
