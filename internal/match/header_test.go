package match

import (
	"testing"

	"github.com/DragosCt10/trading-tracker/internal/schema"
)

func TestScoreSynonymExactMatch(t *testing.T) {
	if s := ScoreSynonym("Date", "date"); s != 1.0 {
		t.Errorf("Expected exact match to score 1.0, got %f", s)
	}
}

func TestScoreSynonymCoveragePenalty(t *testing.T) {
	short := ScoreSynonym("rr", "rr potential")
	exact := ScoreSynonym("rr potential", "rr potential")
	if short >= exact {
		t.Errorf("Expected short-in-long %f to score below exact %f", short, exact)
	}
	if short <= 0 {
		t.Error("Expected containment to keep a positive score")
	}
}

func TestScoreSynonymOrderInsensitive(t *testing.T) {
	a := ScoreSynonym("trade outcome", "outcome trade")
	if a != 1.0 {
		t.Errorf("Expected reordered tokens to score 1.0, got %f", a)
	}
}

func TestScoreSynonymNormalization(t *testing.T) {
	if s := ScoreSynonym("📅 Date", "date"); s != 1.0 {
		t.Errorf("Expected emoji-decorated header to score 1.0, got %f", s)
	}
	if s := ScoreSynonym("Risk %", "risk"); s != 1.0 {
		t.Errorf("Expected punctuation-stripped header to score 1.0, got %f", s)
	}
}

func TestScoreSynonymEmpty(t *testing.T) {
	if s := ScoreSynonym("", "date"); s != 0 {
		t.Errorf("Expected empty header to score 0, got %f", s)
	}
	if s := ScoreSynonym("date", ""); s != 0 {
		t.Errorf("Expected empty synonym to score 0, got %f", s)
	}
	if s := ScoreSynonym("🔥🔥", "date"); s != 0 {
		t.Errorf("Expected punctuation-only header to score 0, got %f", s)
	}
}

func TestScoreSynonymTypoTolerance(t *testing.T) {
	s := ScoreSynonym("direcion", "direction")
	if s < 0.7 {
		t.Errorf("Expected typo to stay a strong match, got %f", s)
	}
}

func TestScoreFieldTakesBestSynonym(t *testing.T) {
	f, _ := schema.Get(schema.KeyRiskRewardRatio)
	s := ScoreField("R:R", f, nil)
	if s != 1.0 {
		t.Errorf("Expected R:R header to hit a synonym exactly, got %f", s)
	}
}

func TestScoreFieldExtraSynonyms(t *testing.T) {
	f, _ := schema.Get(schema.KeyMarket)
	base := ScoreField("instrumento", f, nil)
	extended := ScoreField("instrumento", f, []string{"instrumento"})
	if extended != 1.0 {
		t.Errorf("Expected extra synonym to score 1.0, got %f", extended)
	}
	if base >= extended {
		t.Errorf("Expected extra synonym to improve score (%f -> %f)", base, extended)
	}
}
