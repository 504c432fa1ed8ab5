package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGeocodeFirstResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q != "Hackney Marshes, London" {
			t.Errorf("unexpected query %q", q)
		}
		if f := r.URL.Query().Get("format"); f != "json" {
			t.Errorf("unexpected format %q", f)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"51.5580","lon":"-0.0235"},{"lat":"0","lon":"0"}]`))
	}))
	defer srv.Close()

	svc := NewGeocodeService(srv.URL)
	lat, lng, err := svc.Geocode(context.Background(), "Hackney Marshes, London")
	if err != nil {
		t.Fatalf("Geocode failed: %v", err)
	}
	if lat != 51.5580 || lng != -0.0235 {
		t.Errorf("unexpected coordinates %v, %v", lat, lng)
	}
}

func TestGeocodeNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	svc := NewGeocodeService(srv.URL)
	_, _, err := svc.Geocode(context.Background(), "nowhere at all")
	if !errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected ErrAddressNotFound, got %v", err)
	}
}

func TestGeocodeUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := NewGeocodeService(srv.URL)
	_, _, err := svc.Geocode(context.Background(), "anywhere")
	if err == nil || errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected an upstream error, got %v", err)
	}
}

func TestGeocodeMalformedCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"fifty-one","lon":"-0.0235"}]`))
	}))
	defer srv.Close()

	svc := NewGeocodeService(srv.URL)
	_, _, err := svc.Geocode(context.Background(), "anywhere")
	if err == nil || errors.Is(err, ErrAddressNotFound) {
		t.Fatalf("expected a parse error, got %v", err)
	}
}
