package schema

import "testing"

func TestGet(t *testing.T) {
	f, ok := Get("trade_date")
	if !ok {
		t.Fatal("Expected trade_date to exist")
	}
	if f.Label != "Date" {
		t.Errorf("Expected label Date, got %s", f.Label)
	}
	if f.ValueType != TypeDate {
		t.Errorf("Expected value type date, got %s", f.ValueType)
	}
	if !f.Required {
		t.Error("Expected trade_date to be required")
	}

	if _, ok := Get("no_such_field"); ok {
		t.Error("Expected lookup miss for unknown key")
	}
}

func TestUniqueKeys(t *testing.T) {
	seen := make(map[string]bool)
	for _, f := range Fields() {
		if seen[f.Key] {
			t.Errorf("Duplicate field key %q", f.Key)
		}
		seen[f.Key] = true
	}
}

func TestRequiredSet(t *testing.T) {
	want := map[string]bool{
		KeyTradeDate:       true,
		KeyTradeTime:       true,
		KeyMarket:          true,
		KeyDirection:       true,
		KeyTradeOutcome:    true,
		KeyRiskPerTrade:    true,
		KeyRiskRewardRatio: true,
	}
	req := Required()
	if len(req) != len(want) {
		t.Fatalf("Expected %d required fields, got %d", len(want), len(req))
	}
	for _, f := range req {
		if !want[f.Key] {
			t.Errorf("Unexpected required field %q", f.Key)
		}
	}
}

func TestEveryFieldHasSynonyms(t *testing.T) {
	for _, f := range Fields() {
		if len(f.Synonyms) == 0 {
			t.Errorf("Field %q has no synonyms", f.Key)
		}
		if f.Label == "" {
			t.Errorf("Field %q has no label", f.Key)
		}
	}
}
