package games

import (
	"reflect"
	"testing"
)

func TestStatLineJSONTags(t *testing.T) {
	lineType := reflect.TypeOf(StatLine{})
	expected := map[string]string{
		"PlayerID":   "playerId",
		"PlayerName": "playerName",
		"Minutes":    "minutes",
	}
	for name, tag := range expected {
		f, ok := lineType.FieldByName(name)
		if !ok {
			t.Fatalf("missing field %s", name)
		}
		if got := f.Tag.Get("json"); got != tag {
			t.Fatalf("field %s expected tag %s, got %s", name, tag, got)
		}
	}
}

func TestDedupeKeepsFirstOccurrenceOrder(t *testing.T) {
	got := Dedupe([]ID{"3", "1", "3", "2", "1"})
	want := []ID{"3", "1", "2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if out := Dedupe(nil); len(out) != 0 {
		t.Fatalf("expected empty result for nil input, got %v", out)
	}
}
