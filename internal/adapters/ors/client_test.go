package ors_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mfarias/rutasur/internal/adapters/ors"
	"github.com/mfarias/rutasur/internal/core/domain"
)

func TestClient_Directions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/directions/driving-car" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("api_key") != "test-key" {
			t.Errorf("unexpected api_key %q", q.Get("api_key"))
		}
		// Longitude first, no trailing zero padding.
		if q.Get("start") != "-72.94,-41.47" {
			t.Errorf("expected start=-72.94,-41.47, got %q", q.Get("start"))
		}
		if q.Get("end") != "-73.11,-40.57" {
			t.Errorf("expected end=-73.11,-40.57, got %q", q.Get("end"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"features":[{"geometry":{"coordinates":[[-72.94,-41.47],[-73.0,-41.0],[-73.11,-40.57]]}}]}`))
	}))
	defer server.Close()

	client := ors.NewClient(server.URL, "test-key", 5*time.Second)
	polyline, err := client.Directions(context.Background(),
		domain.GeoPoint{Lat: -41.47, Lon: -72.94},
		domain.GeoPoint{Lat: -40.57, Lon: -73.11})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(polyline) != 3 {
		t.Fatalf("expected 3 coordinates, got %d", len(polyline))
	}
	if polyline[0].Lon() != -72.94 || polyline[0].Lat() != -41.47 {
		t.Errorf("coordinates must keep the provider's longitude-first order, got %v", polyline[0])
	}
}

func TestClient_Directions_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"quota exceeded"}`))
	}))
	defer server.Close()

	client := ors.NewClient(server.URL, "k", time.Second)
	_, err := client.Directions(context.Background(), domain.GeoPoint{}, domain.GeoPoint{})
	if err == nil {
		t.Fatal("expected an error for a 403 response")
	}
}

func TestClient_Directions_NoGeometry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	}))
	defer server.Close()

	client := ors.NewClient(server.URL, "k", time.Second)
	_, err := client.Directions(context.Background(), domain.GeoPoint{}, domain.GeoPoint{})
	if !errors.Is(err, domain.ErrNoRouteGeometry) {
		t.Errorf("expected ErrNoRouteGeometry, got %v", err)
	}
}
