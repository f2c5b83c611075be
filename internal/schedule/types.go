package schedule

import "context"

// Appointment is the central scheduling entity as the client sees it. The
// client never owns a durable copy; records are fetched fresh per screen.
type Appointment struct {
	ID          int64     `json:"id"`
	PatientID   string    `json:"id_paciente"`
	DoctorID    string    `json:"id_doctor"`
	Date        Date      `json:"fecha"`
	Time        TimeOfDay `json:"hora"`
	Description string    `json:"descripcion,omitempty"`
	Status      Status    `json:"estado"`
}

// Verdict is the availability answer for one (doctor, date, time) tuple.
// Message is shown to the user verbatim, so it is never empty.
type Verdict struct {
	Available bool   `json:"disponible"`
	Message   string `json:"mensaje"`
}

// CreateRequest is the wire payload for booking an appointment. Status is set
// by the lifecycle manager; self-service and receptionist bookings both start
// pending.
type CreateRequest struct {
	PatientID   string    `json:"id_paciente"`
	DoctorID    string    `json:"id_doctor"`
	Date        Date      `json:"fecha"`
	Time        TimeOfDay `json:"hora"`
	Status      Status    `json:"estado"`
	Description string    `json:"descripcion,omitempty"`
}

// ListScope selects which appointment listing a role sees.
type ListScope string

const (
	// ScopeMine lists the signed-in patient's own appointments.
	ScopeMine ListScope = "mine"
	// ScopeToday lists all of today's appointments (staff dashboards).
	ScopeToday ListScope = "today"
	// ScopeAll lists everything the role may see.
	ScopeAll ListScope = "all"
)

// ListQuery narrows an appointment listing.
type ListQuery struct {
	Scope  ListScope
	Status Status // optional; zero value means any status
}

// Backend is the slice of the clinic API the scheduling core depends on.
// *api.Client satisfies it; tests substitute fakes.
type Backend interface {
	VerifyAvailability(ctx context.Context, doctorID string, date Date, t TimeOfDay) (Verdict, error)
	AvailableTimes(ctx context.Context, doctorID string) ([]AvailableSlot, error)
	CreateAppointment(ctx context.Context, req CreateRequest) (Appointment, error)
	GetAppointment(ctx context.Context, id int64) (Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id int64, status Status) (Appointment, error)
	RescheduleAppointment(ctx context.Context, id int64, date Date, t TimeOfDay) (Appointment, error)
	ListAppointments(ctx context.Context, q ListQuery) ([]Appointment, error)
}
