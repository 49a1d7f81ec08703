package models

import (
	"encoding/json"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestRankingJSONString(t *testing.T) {
	var r Ranking
	if err := json.Unmarshal([]byte(`"#12 in Germany"`), &r); err != nil {
		t.Fatalf("unmarshal string ranking: %v", err)
	}
	if r.Simple != "#12 in Germany" || r.Detailed != nil {
		t.Fatalf("got %+v, want simple string variant", r)
	}

	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `"#12 in Germany"` {
		t.Errorf("marshal = %s, want the original string form", out)
	}
}

func TestRankingJSONDetailed(t *testing.T) {
	in := `{"country_ranking":"4","world_ranking":"88","accreditation":["AACSB"]}`
	var r Ranking
	if err := json.Unmarshal([]byte(in), &r); err != nil {
		t.Fatalf("unmarshal detailed ranking: %v", err)
	}
	if r.Detailed == nil {
		t.Fatal("expected detailed variant")
	}
	if r.Detailed.CountryRanking != "4" || r.Detailed.WorldRanking != "88" {
		t.Errorf("got %+v", r.Detailed)
	}

	out, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Ranking
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}
	if back.Detailed == nil || back.Detailed.WorldRanking != "88" {
		t.Errorf("round trip lost the detailed form: %+v", back)
	}
}

func TestCollegeJSONOmitsZeroRanking(t *testing.T) {
	out, err := json.Marshal(College{ID: "col-1", Name: "Plain College"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatal(err)
	}
	if _, present := doc["ranking"]; present {
		t.Errorf("an unranked college must not serialize a ranking key, got %s", doc["ranking"])
	}

	out, err = json.Marshal(College{ID: "col-2", Ranking: Ranking{Simple: "#3"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatal(err)
	}
	if string(doc["ranking"]) != `"#3"` {
		t.Errorf("ranking = %s, want the stored string form", doc["ranking"])
	}
}

func TestRankingJSONNull(t *testing.T) {
	var r Ranking
	if err := json.Unmarshal([]byte(`null`), &r); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !r.IsZero() {
		t.Errorf("null should decode to the zero ranking, got %+v", r)
	}
}

func TestRankingBSONRoundTrip(t *testing.T) {
	type doc struct {
		Ranking Ranking `bson:"ranking"`
	}

	// string-encoded documents still decode
	raw, err := bson.Marshal(doc{Ranking: Ranking{Simple: "Top 50"}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var simple doc
	if err := bson.Unmarshal(raw, &simple); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if simple.Ranking.Simple != "Top 50" || simple.Ranking.Detailed != nil {
		t.Errorf("got %+v, want string variant", simple.Ranking)
	}

	raw, err = bson.Marshal(doc{Ranking: Ranking{Detailed: &RankingDetails{CountryRanking: "2"}}})
	if err != nil {
		t.Fatalf("marshal detailed: %v", err)
	}
	var detailed doc
	if err := bson.Unmarshal(raw, &detailed); err != nil {
		t.Fatalf("unmarshal detailed: %v", err)
	}
	if detailed.Ranking.Detailed == nil || detailed.Ranking.Detailed.CountryRanking != "2" {
		t.Errorf("got %+v, want detailed variant", detailed.Ranking)
	}
}

func TestCollegeDescriptionFallback(t *testing.T) {
	c := College{AboutContent: "legacy text"}
	if c.Description() != "legacy text" {
		t.Errorf("expected legacy about_content fallback, got %q", c.Description())
	}

	c.Overview = &Overview{Description: "structured text"}
	if c.Description() != "structured text" {
		t.Errorf("expected structured overview to win, got %q", c.Description())
	}

	c.Overview = &Overview{}
	if c.Description() != "legacy text" {
		t.Errorf("empty overview description should fall back, got %q", c.Description())
	}
}
