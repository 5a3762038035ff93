// Discograph - Music Catalog Analytics and Discovery
// Copyright 2026 Discograph Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/discograph/discograph

package api

import (
	"errors"
	"net/http/httptest"
	"testing"
)

var errTest = errors.New("test failure")

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "user-42", "user-42"},
		{"newline injection", "user\nFORGED LINE", "user\\x0aFORGED LINE"},
		{"carriage return", "a\rb", "a\\x0db"},
		{"tab", "a\tb", "a\\x09b"},
		{"delete char", "a\x7fb", "a\\x7fb"},
		{"unicode preserved", "ärtist", "ärtist"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := sanitizeLogValue(tt.input); got != tt.want {
				t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateETag(t *testing.T) {
	t.Parallel()

	a := generateETag([]byte(`{"status":"success"}`))
	b := generateETag([]byte(`{"status":"success"}`))
	c := generateETag([]byte(`{"status":"error"}`))

	if a != b {
		t.Errorf("same payload produced different ETags: %q vs %q", a, b)
	}
	if a == c {
		t.Errorf("different payloads produced the same ETag %q", a)
	}
}

func TestGetIntParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		key  string
		def  int
		want int
	}{
		{"present", "/x?limit=5", "limit", 10, 5},
		{"missing", "/x", "limit", 10, 10},
		{"non-numeric", "/x?limit=abc", "limit", 10, 10},
		{"negative", "/x?limit=-3", "limit", 10, -3},
		{"empty value", "/x?limit=", "limit", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest("GET", tt.url, nil)
			if got := getIntParam(r, tt.key, tt.def); got != tt.want {
				t.Errorf("getIntParam(%q, %d) = %d, want %d", tt.key, tt.def, got, tt.want)
			}
		})
	}
}
