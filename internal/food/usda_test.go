package food

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestUSDASearchPrefersRaw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("dataType"); got != "SR Legacy" {
			t.Errorf("expected dataType=SR Legacy, got %q", got)
		}
		w.Write([]byte(`{"foods":[
			{"description":"Banana chips","foodNutrients":[{"nutrientName":"Energy","unitName":"KCAL","value":519}]},
			{"description":"Bananas, raw","foodNutrients":[{"nutrientName":"Energy","unitName":"KCAL","value":89}]}
		]}`))
	}))
	defer srv.Close()

	c := NewUSDAClient("test-key", PassthroughTranslator{}, WithBaseURL(srv.URL))
	info, err := c.Search(context.Background(), "banana")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if info == nil || info.Name != "Bananas, raw" || info.CaloriesPer100g != 89 {
		t.Errorf("expected raw candidate at 89 kcal, got %+v", info)
	}
}

func TestUSDASearchFirstWhenNoRaw(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"foods":[
			{"description":"Banana chips","foodNutrients":[{"nutrientName":"Energy","unitName":"KCAL","value":519}]},
			{"description":"Banana bread","foodNutrients":[{"nutrientName":"Energy","unitName":"KCAL","value":326}]}
		]}`))
	}))
	defer srv.Close()

	c := NewUSDAClient("test-key", PassthroughTranslator{}, WithBaseURL(srv.URL))
	info, err := c.Search(context.Background(), "banana")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if info == nil || info.Name != "Banana chips" {
		t.Errorf("expected first candidate, got %+v", info)
	}
}

func TestUSDASearchNoEnergyNutrient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"foods":[{"description":"Water","foodNutrients":[{"nutrientName":"Sodium","unitName":"MG","value":2}]}]}`))
	}))
	defer srv.Close()

	c := NewUSDAClient("test-key", PassthroughTranslator{}, WithBaseURL(srv.URL))
	info, err := c.Search(context.Background(), "water")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if info != nil {
		t.Errorf("expected no result without an energy nutrient, got %+v", info)
	}
}

func TestUSDASearchSkippedWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request sent despite missing API key")
	}))
	defer srv.Close()

	c := NewUSDAClient("", PassthroughTranslator{}, WithBaseURL(srv.URL))
	info, err := c.Search(context.Background(), "banana")
	if err != nil || info != nil {
		t.Errorf("expected silent skip, got %+v, %v", info, err)
	}
}

// staticTranslator returns a fixed translation.
type staticTranslator struct{ out string }

func (s staticTranslator) Translate(ctx context.Context, text string) (string, error) {
	return s.out, nil
}

func TestUSDASearchTranslatesNonASCIIOnly(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`{"foods":[]}`))
	}))
	defer srv.Close()

	c := NewUSDAClient("test-key", staticTranslator{out: "banana"}, WithBaseURL(srv.URL))

	if _, err := c.Search(context.Background(), "банан"); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotQuery != "banana" {
		t.Errorf("expected translated query, got %q", gotQuery)
	}

	if _, err := c.Search(context.Background(), "apple"); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if gotQuery != "apple" {
		t.Errorf("ASCII query must not be translated, got %q", gotQuery)
	}
}
