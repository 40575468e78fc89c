package shared

import (
	"net/http/httptest"
	"testing"
)

func TestStringParamDistinguishesAbsentFromEmpty(t *testing.T) {
	r := httptest.NewRequest("GET", "/?search=&sort=name", nil)

	if got := StringParam(r, "department"); got != nil {
		t.Fatalf("absent parameter = %q", *got)
	}
	if got := StringParam(r, "search"); got == nil || *got != "" {
		t.Fatal("empty parameter should be present")
	}
	if got := StringParam(r, "sort"); got == nil || *got != "name" {
		t.Fatalf("sort = %v", got)
	}
}

func TestIntParam(t *testing.T) {
	r := httptest.NewRequest("GET", "/?page=3&bad=x", nil)

	if got := IntParam(r, "page"); got == nil || *got != 3 {
		t.Fatalf("page = %v", got)
	}
	if got := IntParam(r, "bad"); got != nil {
		t.Fatalf("non-numeric parameter = %d", *got)
	}
	if got := IntParam(r, "missing"); got != nil {
		t.Fatalf("absent parameter = %d", *got)
	}
}

func TestLimit(t *testing.T) {
	tests := []struct {
		url  string
		want int
	}{
		{"/", 4},
		{"/?limit=2", 2},
		{"/?limit=100", 20},
		{"/?limit=0", 4},
		{"/?limit=-3", 4},
		{"/?limit=abc", 4},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", tt.url, nil)
		if got := Limit(r, "limit", 4, 20); got != tt.want {
			t.Errorf("Limit(%q) = %d, want %d", tt.url, got, tt.want)
		}
	}
}
