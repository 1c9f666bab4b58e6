package scheduling

import (
	"testing"

	"mediconnect/models"
)

func TestResolveLocation(t *testing.T) {
	t.Run("empty name falls back to the default", func(t *testing.T) {
		loc, err := ResolveLocation("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if loc.String() != "Asia/Kolkata" {
			t.Errorf("got %s, want Asia/Kolkata", loc)
		}
	})

	t.Run("IST alias maps to Asia/Kolkata", func(t *testing.T) {
		loc, err := ResolveLocation("IST")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if loc.String() != "Asia/Kolkata" {
			t.Errorf("got %s, want Asia/Kolkata", loc)
		}
	})

	t.Run("IANA name resolves directly", func(t *testing.T) {
		loc, err := ResolveLocation("Europe/Berlin")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if loc.String() != "Europe/Berlin" {
			t.Errorf("got %s, want Europe/Berlin", loc)
		}
	})

	t.Run("unknown zone is an input error", func(t *testing.T) {
		_, err := ResolveLocation("Mars/Olympus")
		if CodeOf(err) != CodeInvalidInput {
			t.Fatalf("got %v, want %s", err, CodeInvalidInput)
		}
	})
}

func TestValidateAvailability(t *testing.T) {
	valid := models.Availability{
		WorkingHours: models.WorkingHours{Start: "09:00", End: "17:00"},
		Timezone:     "Asia/Kolkata",
	}
	if err := ValidateAvailability(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name  string
		avail models.Availability
	}{
		{"malformed start", models.Availability{
			WorkingHours: models.WorkingHours{Start: "9am", End: "17:00"}, Timezone: "Asia/Kolkata"}},
		{"malformed end", models.Availability{
			WorkingHours: models.WorkingHours{Start: "09:00", End: "25:00"}, Timezone: "Asia/Kolkata"}},
		{"start after end", models.Availability{
			WorkingHours: models.WorkingHours{Start: "17:00", End: "09:00"}, Timezone: "Asia/Kolkata"}},
		{"start equal to end", models.Availability{
			WorkingHours: models.WorkingHours{Start: "09:00", End: "09:00"}, Timezone: "Asia/Kolkata"}},
		{"bad timezone", models.Availability{
			WorkingHours: models.WorkingHours{Start: "09:00", End: "17:00"}, Timezone: "Nowhere/Here"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := ValidateAvailability(tc.avail); CodeOf(err) != CodeInvalidInput {
				t.Fatalf("got %v, want %s", err, CodeInvalidInput)
			}
		})
	}
}
