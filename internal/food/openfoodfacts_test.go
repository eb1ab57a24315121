package food

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenFoodFactsSearchFirstResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search_terms"); got != "kefir" {
			t.Errorf("expected search_terms=kefir, got %q", got)
		}
		w.Write([]byte(`{"products":[
			{"product_name":"Kefir 2.5%","nutriments":{"energy-kcal_100g":50}},
			{"product_name":"Kefir 0%","nutriments":{"energy-kcal_100g":30}}
		]}`))
	}))
	defer srv.Close()

	c := NewOpenFoodFactsClient(WithBaseURL(srv.URL))
	info, err := c.Search(context.Background(), "kefir")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if info == nil || info.Name != "Kefir 2.5%" || info.CaloriesPer100g != 50 {
		t.Errorf("expected first product at 50 kcal, got %+v", info)
	}
}

func TestOpenFoodFactsSearchZeroEnergy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[{"product_name":"Mystery","nutriments":{}}]}`))
	}))
	defer srv.Close()

	c := NewOpenFoodFactsClient(WithBaseURL(srv.URL))
	info, err := c.Search(context.Background(), "mystery")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if info != nil {
		t.Errorf("expected zero energy to resolve as not-found, got %+v", info)
	}
}

func TestOpenFoodFactsSearchNameFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[{"product_name":"","nutriments":{"energy-kcal_100g":42}}]}`))
	}))
	defer srv.Close()

	c := NewOpenFoodFactsClient(WithBaseURL(srv.URL))
	info, err := c.Search(context.Background(), "snack")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if info == nil || info.Name != "snack" {
		t.Errorf("expected query echoed as name, got %+v", info)
	}
}

func TestOpenFoodFactsSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewOpenFoodFactsClient(WithBaseURL(srv.URL))
	if _, err := c.Search(context.Background(), "kefir"); err == nil {
		t.Errorf("expected error on bad gateway")
	}
}

func TestMyMemoryTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "банан" {
			t.Errorf("expected q=банан, got %q", got)
		}
		w.Write([]byte(`{"responseData":{"translatedText":"banana"}}`))
	}))
	defer srv.Close()

	tr := NewMyMemoryTranslator(WithBaseURL(srv.URL))
	out, err := tr.Translate(context.Background(), "банан")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "banana" {
		t.Errorf("expected banana, got %q", out)
	}
}

func TestMyMemoryTranslateEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"responseData":{"translatedText":""}}`))
	}))
	defer srv.Close()

	tr := NewMyMemoryTranslator(WithBaseURL(srv.URL))
	if _, err := tr.Translate(context.Background(), "банан"); err == nil {
		t.Errorf("expected error for empty translation")
	}
}
