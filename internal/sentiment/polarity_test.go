package sentiment

import (
	"math"
	"testing"
)

func TestPolarityDirection(t *testing.T) {
	if p := Polarity("Massive rally, bullish breakout ahead"); p <= 0 {
		t.Fatalf("expected positive polarity, got %f", p)
	}
	if p := Polarity("Total crash, everyone is selling into the dump"); p >= 0 {
		t.Fatalf("expected negative polarity, got %f", p)
	}
	if p := Polarity("The meeting is on Tuesday"); p != 0 {
		t.Fatalf("expected zero polarity for neutral text, got %f", p)
	}
	if p := Polarity(""); p != 0 {
		t.Fatalf("expected zero polarity for empty text, got %f", p)
	}
}

func TestPostPolarityBlendsComments(t *testing.T) {
	p := Post{
		Title:    "Huge rally incoming",
		Comments: []string{"total scam, this will crash", "I agree, bullish"},
	}
	got := PostPolarity(p)
	want := (Polarity(p.Title) + Polarity(p.Comments[0]) + Polarity(p.Comments[1])) / 3.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %f, got %f", want, got)
	}
}

func TestAveragePolarityEmpty(t *testing.T) {
	if _, err := AveragePolarity(nil); err == nil {
		t.Fatal("expected error for empty post set")
	}
}

func TestAveragePolarityMean(t *testing.T) {
	posts := []Post{
		{Title: "bullish rally"},
		{Title: "bearish crash"},
	}
	got, err := AveragePolarity(posts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (PostPolarity(posts[0]) + PostPolarity(posts[1])) / 2.0
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected %f, got %f", want, got)
	}
}
