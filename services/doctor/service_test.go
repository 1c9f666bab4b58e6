package doctor

import (
	"testing"
	"time"

	appointmentRepo "mediconnect/database/repository/appointment"
	doctorRepo "mediconnect/database/repository/doctor"
	"mediconnect/models"
)

type fakeDoctorRepo struct {
	doctorRepo.DoctorRepository
	doc       *models.Doctor
	updated   *models.Doctor
	availSet  *models.Availability
	reviewSet *models.Review
}

func (f *fakeDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	if f.doc == nil {
		return nil, doctorRepo.ErrNotFound
	}
	cp := *f.doc
	return &cp, nil
}

func (f *fakeDoctorRepo) Update(doc *models.Doctor) error {
	f.updated = doc
	return nil
}

func (f *fakeDoctorRepo) UpdateAvailability(id string, avail models.Availability) error {
	f.availSet = &avail
	return nil
}

func (f *fakeDoctorRepo) AddReview(id string, review models.Review) error {
	f.reviewSet = &review
	return nil
}

type fakeAppointmentRepo struct {
	appointmentRepo.AppointmentRepository
	completed []models.Appointment
	total     int64
	patients  int64
	cancelled int64
}

func (f *fakeAppointmentRepo) ListCompleted(q appointmentRepo.CompletedQuery) ([]models.Appointment, int64, error) {
	return f.completed, f.total, nil
}

func (f *fakeAppointmentRepo) CountDistinctPatients(doctorID string, from, to *time.Time) (int64, error) {
	return f.patients, nil
}

func (f *fakeAppointmentRepo) CountCancelled(doctorID string, from, to *time.Time) (int64, error) {
	return f.cancelled, nil
}

func testDoctor() *models.Doctor {
	return &models.Doctor{
		ID:     "doc1",
		Name:   "Dr. Rao",
		Fee:    500,
		Rating: 4.5,
	}
}

func TestPerformance(t *testing.T) {
	doctors := &fakeDoctorRepo{doc: testDoctor()}
	appts := &fakeAppointmentRepo{
		completed: []models.Appointment{{ID: "a1"}, {ID: "a2"}},
		total:     23,
		patients:  17,
		cancelled: 3,
	}
	svc := NewDefaultDoctorService(doctors, appts)

	report, err := svc.Performance("doc1", nil, nil, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Earnings follow the full completed total, not the page size.
	if report.Earnings != 23*500 {
		t.Errorf("earnings %v, want %v", report.Earnings, 23*500)
	}
	if report.PatientsTreated != 17 {
		t.Errorf("patients %d, want 17", report.PatientsTreated)
	}
	if report.Cancellations != 3 {
		t.Errorf("cancellations %d, want 3", report.Cancellations)
	}
	if report.AverageRating != 4.5 {
		t.Errorf("rating %v, want 4.5", report.AverageRating)
	}
	if report.Total != 23 || len(report.Appointments) != 2 {
		t.Errorf("page shape total=%d len=%d", report.Total, len(report.Appointments))
	}
}

func TestAddReview(t *testing.T) {
	t.Run("rating bounds are enforced", func(t *testing.T) {
		svc := NewDefaultDoctorService(&fakeDoctorRepo{doc: testDoctor()}, &fakeAppointmentRepo{})
		for _, rating := range []int{0, -1, 6} {
			if err := svc.AddReview("doc1", "pat1", rating, ""); CodeOf(err) != CodeInvalidReview {
				t.Errorf("rating %d: got %v, want %s", rating, err, CodeInvalidReview)
			}
		}
	})

	t.Run("valid review reaches the repository", func(t *testing.T) {
		doctors := &fakeDoctorRepo{doc: testDoctor()}
		svc := NewDefaultDoctorService(doctors, &fakeAppointmentRepo{})
		if err := svc.AddReview("doc1", "pat1", 4, "helpful"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doctors.reviewSet == nil || doctors.reviewSet.Rating != 4 || doctors.reviewSet.PatientID != "pat1" {
			t.Errorf("stored review %+v", doctors.reviewSet)
		}
	})
}

func TestUpdateAvailability(t *testing.T) {
	t.Run("empty timezone gets the default", func(t *testing.T) {
		doctors := &fakeDoctorRepo{doc: testDoctor()}
		svc := NewDefaultDoctorService(doctors, &fakeAppointmentRepo{})
		avail := models.Availability{WorkingHours: models.WorkingHours{Start: "10:00", End: "18:00"}}
		if err := svc.UpdateAvailability("doc1", avail); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doctors.availSet == nil || doctors.availSet.Timezone != "Asia/Kolkata" {
			t.Errorf("stored availability %+v", doctors.availSet)
		}
	})

	t.Run("inverted hours are rejected", func(t *testing.T) {
		svc := NewDefaultDoctorService(&fakeDoctorRepo{doc: testDoctor()}, &fakeAppointmentRepo{})
		avail := models.Availability{
			WorkingHours: models.WorkingHours{Start: "18:00", End: "10:00"},
			Timezone:     "Asia/Kolkata",
		}
		if err := svc.UpdateAvailability("doc1", avail); err == nil {
			t.Fatal("expected rejection")
		}
	})
}

func TestUpdateProfile(t *testing.T) {
	doctors := &fakeDoctorRepo{doc: testDoctor()}
	svc := NewDefaultDoctorService(doctors, &fakeAppointmentRepo{})

	name := "Dr. Meena Rao"
	fee := 750.0
	updated, err := svc.UpdateProfile("doc1", ProfileUpdate{Name: &name, Fee: &fee})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != name || updated.Fee != fee {
		t.Errorf("got name %q fee %v", updated.Name, updated.Fee)
	}
	// Untouched fields survive a partial update.
	if updated.Rating != 4.5 {
		t.Errorf("rating clobbered: %v", updated.Rating)
	}

	badFee := -10.0
	if _, err := svc.UpdateProfile("doc1", ProfileUpdate{Fee: &badFee}); CodeOf(err) != CodeInvalidInput {
		t.Errorf("negative fee: got %v, want %s", err, CodeInvalidInput)
	}
}
