package players

import (
	"reflect"
	"testing"
)

func TestPlaytimeJSONTags(t *testing.T) {
	type fieldCheck struct {
		name string
		tag  string
	}
	playtimeType := reflect.TypeOf(Playtime{})
	fields := []fieldCheck{
		{"PlayerID", "playerId"},
		{"PlayerName", "playerName"},
		{"AvgMinutes", "avgMinutes"},
		{"GamesPlayed", "gamesPlayed"},
	}
	for _, fc := range fields {
		f, ok := playtimeType.FieldByName(fc.name)
		if !ok {
			t.Fatalf("missing field %s", fc.name)
		}
		if tag := f.Tag.Get("json"); tag != fc.tag {
			t.Fatalf("field %s expected tag %s, got %s", fc.name, fc.tag, tag)
		}
	}
}

func TestIDsPreservesOrder(t *testing.T) {
	got := IDs([]Playtime{{PlayerID: 7}, {PlayerID: 3}, {PlayerID: 9}})
	if !reflect.DeepEqual(got, []int{7, 3, 9}) {
		t.Fatalf("unexpected ids %v", got)
	}
}
