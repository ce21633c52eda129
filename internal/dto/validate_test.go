package dto

import (
	"strings"
	"testing"
)

func TestValidateRegisterRequest(t *testing.T) {
	ok := RegisterRequest{Email: "a@b.ru", Password: "longenough", FullName: "Anna"}
	if err := Validate(&ok); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	bad := RegisterRequest{Email: "not-an-email", Password: "short"}
	err := Validate(&bad)
	if err == nil {
		t.Fatal("invalid request accepted")
	}
	msg := err.Error()
	if !strings.Contains(msg, "email must be a valid email") {
		t.Errorf("message %q missing email complaint", msg)
	}
	if !strings.Contains(msg, "password must be at least 8 characters") {
		t.Errorf("message %q missing password complaint", msg)
	}
}

func TestValidateChatRequest(t *testing.T) {
	if err := Validate(&ChatRequest{}); err == nil {
		t.Error("empty conversation accepted")
	}
	bad := ChatRequest{Messages: []ChatMessage{{Role: "system", Content: "x"}}}
	if err := Validate(&bad); err == nil {
		t.Error("client-supplied system role accepted")
	}
	ok := ChatRequest{Messages: []ChatMessage{{Role: "user", Content: "hi"}}}
	if err := Validate(&ok); err != nil {
		t.Errorf("valid conversation rejected: %v", err)
	}
}

func TestValidateZeroCoordinates(t *testing.T) {
	// Zero is a valid coordinate (equator, prime meridian); the validator
	// must not treat it as a missing field.
	if err := Validate(&ReverseGeocodeRequest{Lat: 0, Lng: 15.5}); err != nil {
		t.Errorf("latitude 0 rejected: %v", err)
	}
	if err := Validate(&ReverseGeocodeRequest{Lat: 51.4779, Lng: 0}); err != nil {
		t.Errorf("longitude 0 rejected: %v", err)
	}
	if err := Validate(&ReverseGeocodeRequest{Lat: 0, Lng: 0}); err != nil {
		t.Errorf("null island rejected: %v", err)
	}
	if err := Validate(&ReverseGeocodeRequest{Lat: 91, Lng: 0}); err == nil {
		t.Error("latitude 91 accepted")
	}
}

func TestValidateCoordinates(t *testing.T) {
	lat, lng := 91.0, 37.6
	bad := CreatePostRequest{Title: "abc", Description: "abc", Category: "road", Lat: &lat, Lng: &lng}
	if err := Validate(&bad); err == nil {
		t.Error("latitude 91 accepted")
	}

	lat = 55.75
	ok := CreatePostRequest{Title: "abc", Description: "abc", Category: "road", Lat: &lat, Lng: &lng}
	if err := Validate(&ok); err != nil {
		t.Errorf("valid coordinates rejected: %v", err)
	}
}
