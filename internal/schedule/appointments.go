package schedule

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/citasalud/mobile-core/internal/session"
	"github.com/citasalud/mobile-core/pkg/logging"
)

var scheduleTracer = otel.Tracer("citasalud.internal.schedule")

// User-facing outcome messages. The screen layer shows Result.Message as-is.
const (
	msgCreated          = "Cita creada correctamente"
	msgRescheduled      = "Cita reagendada correctamente"
	msgStatusUpdated    = "Estado de la cita actualizado"
	msgCancelled        = "Cita cancelada"
	msgConfirmCancel    = "Confirma la cancelación de la cita"
	msgAlreadyCancelled = "La cita ya está cancelada"
	msgBadTransition    = "El estado de la cita no permite ese cambio"
	msgStaffOnly        = "Solo el personal de la clínica puede actualizar el estado de una cita"
	msgPatientCreate    = "Solo pacientes y recepcionistas pueden agendar citas"
	msgMissingPatient   = "Selecciona un paciente para agendar la cita"
	msgMissingSlot      = "Selecciona fecha y hora para la cita"
	msgSessionExpired   = "La sesión expiró, inicia sesión nuevamente"
	msgGenericFailure   = "No se pudo completar la operación, intenta de nuevo"
	msgListFailure      = "No se pudieron cargar las citas"
)

// Result is the normalized outcome of every lifecycle operation. Transport
// errors never escape as raw errors: the caller always gets a displayable
// Message, and SessionExpired tells it to route back to login.
type Result struct {
	Success        bool
	Message        string
	SessionExpired bool
	Appointment    *Appointment
}

// userMessage is implemented by boundary errors that already carry a
// displayable message (api.APIError does).
type userMessage interface {
	UserMessage() string
}

// Manager drives the appointment lifecycle: create, cancel, reschedule,
// staff status transitions, and role-scoped listings. Availability is
// re-verified before any date/time mutation; a negative verdict blocks the
// write and its message is returned verbatim.
type Manager struct {
	backend Backend
	checker *Checker
	session *session.Manager
	logger  *logging.Logger
}

func NewManager(backend Backend, checker *Checker, sess *session.Manager, logger *logging.Logger) *Manager {
	if backend == nil {
		panic("schedule: backend required")
	}
	if checker == nil {
		panic("schedule: checker required")
	}
	if sess == nil {
		panic("schedule: session manager required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Manager{backend: backend, checker: checker, session: sess, logger: logger}
}

// CreateInput carries everything the booking form collected.
type CreateInput struct {
	PatientID   string
	DoctorID    string
	Date        Date
	Time        TimeOfDay
	Description string
}

// Create books a new appointment. It always starts pending; confirmation is a
// later staff action.
func (m *Manager) Create(ctx context.Context, in CreateInput) Result {
	ctx, span := scheduleTracer.Start(ctx, "schedule.create")
	defer span.End()
	span.SetAttributes(
		attribute.String("citasalud.doctor_id", in.DoctorID),
		attribute.String("citasalud.fecha", in.Date.String()),
	)

	if role := m.session.Role(); role == session.RoleDoctor {
		return Result{Message: msgPatientCreate}
	}
	if strings.TrimSpace(in.PatientID) == "" {
		return Result{Message: msgMissingPatient}
	}
	if in.Date.IsZero() || in.Time.IsZero() {
		return Result{Message: msgMissingSlot}
	}

	check := m.checker.Check(ctx, in.DoctorID, in.Date, in.Time)
	if !check.Available {
		return Result{Message: check.Message}
	}

	created, err := m.backend.CreateAppointment(ctx, CreateRequest{
		PatientID:   in.PatientID,
		DoctorID:    in.DoctorID,
		Date:        in.Date,
		Time:        in.Time,
		Status:      StatusPending,
		Description: in.Description,
	})
	if err != nil {
		span.RecordError(err)
		return m.failure("create appointment", err)
	}

	m.logger.Info("appointment created",
		"cita_id", created.ID, "doctor_id", created.DoctorID, "fecha", created.Date.String())
	return Result{Success: true, Message: msgCreated, Appointment: &created}
}

// Cancel transitions an appointment to cancelled. The flow is two-step:
// callers must pass confirmed=true after the user acknowledged the prompt,
// otherwise no network call is made. Cancelling an already cancelled
// appointment is rejected, not silently accepted.
func (m *Manager) Cancel(ctx context.Context, id int64, confirmed bool) Result {
	ctx, span := scheduleTracer.Start(ctx, "schedule.cancel")
	defer span.End()
	span.SetAttributes(attribute.Int64("citasalud.cita_id", id))

	if !confirmed {
		return Result{Message: msgConfirmCancel}
	}

	current, err := m.backend.GetAppointment(ctx, id)
	if err != nil {
		span.RecordError(err)
		return m.failure("load appointment", err)
	}
	if current.Status == StatusCancelled {
		return Result{Message: msgAlreadyCancelled}
	}
	if !CanTransition(current.Status, StatusCancelled) {
		return Result{Message: msgBadTransition}
	}

	updated, err := m.backend.UpdateAppointmentStatus(ctx, id, StatusCancelled)
	if err != nil {
		span.RecordError(err)
		return m.failure("cancel appointment", err)
	}

	m.logger.Info("appointment cancelled", "cita_id", id)
	return Result{Success: true, Message: msgCancelled, Appointment: &updated}
}

// Reschedule moves an appointment to a new slot. Availability is re-verified
// for the new tuple first; the server stays the final arbiter of conflicts.
// Status is untouched.
func (m *Manager) Reschedule(ctx context.Context, id int64, newDate Date, newTime TimeOfDay) Result {
	ctx, span := scheduleTracer.Start(ctx, "schedule.reschedule")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("citasalud.cita_id", id),
		attribute.String("citasalud.fecha", newDate.String()),
	)

	if newDate.IsZero() || newTime.IsZero() {
		return Result{Message: msgMissingSlot}
	}

	current, err := m.backend.GetAppointment(ctx, id)
	if err != nil {
		span.RecordError(err)
		return m.failure("load appointment", err)
	}
	if current.Status == StatusCancelled {
		return Result{Message: msgAlreadyCancelled}
	}

	check := m.checker.Check(ctx, current.DoctorID, newDate, newTime)
	if !check.Available {
		return Result{Message: check.Message}
	}

	updated, err := m.backend.RescheduleAppointment(ctx, id, newDate, newTime)
	if err != nil {
		span.RecordError(err)
		return m.failure("reschedule appointment", err)
	}

	m.logger.Info("appointment rescheduled",
		"cita_id", id, "fecha", newDate.String(), "hora", newTime.String())
	return Result{Success: true, Message: msgRescheduled, Appointment: &updated}
}

// UpdateStatus performs the staff-only pending→confirmed / →cancelled
// transition. Illegal transitions are rejected before any network call.
func (m *Manager) UpdateStatus(ctx context.Context, id int64, to Status) Result {
	ctx, span := scheduleTracer.Start(ctx, "schedule.update_status")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("citasalud.cita_id", id),
		attribute.String("citasalud.estado", string(to)),
	)

	if !m.session.Role().Staff() {
		return Result{Message: msgStaffOnly}
	}

	current, err := m.backend.GetAppointment(ctx, id)
	if err != nil {
		span.RecordError(err)
		return m.failure("load appointment", err)
	}
	if !CanTransition(current.Status, to) {
		return Result{Message: msgBadTransition}
	}

	updated, err := m.backend.UpdateAppointmentStatus(ctx, id, to)
	if err != nil {
		span.RecordError(err)
		return m.failure("update status", err)
	}

	m.logger.Info("appointment status updated", "cita_id", id, "estado", string(to))
	return Result{Success: true, Message: msgStatusUpdated, Appointment: &updated}
}

// MyAppointments is the patient dashboard split. Cancelled records are
// filtered out; the patient history screen is out of scope here.
type MyAppointments struct {
	Pending   []Appointment
	Confirmed []Appointment
}

// Mine lists the signed-in patient's appointments split pending/confirmed.
func (m *Manager) Mine(ctx context.Context) (MyAppointments, Result) {
	ctx, span := scheduleTracer.Start(ctx, "schedule.list_mine")
	defer span.End()

	all, err := m.backend.ListAppointments(ctx, ListQuery{Scope: ScopeMine})
	if err != nil {
		span.RecordError(err)
		return MyAppointments{}, m.listFailure("list own appointments", err)
	}

	var out MyAppointments
	for _, appt := range all {
		switch appt.Status {
		case StatusPending:
			out.Pending = append(out.Pending, appt)
		case StatusConfirmed:
			out.Confirmed = append(out.Confirmed, appt)
		}
	}
	return out, Result{Success: true, Message: ""}
}

// Today lists all of today's appointments for staff dashboards.
func (m *Manager) Today(ctx context.Context) ([]Appointment, Result) {
	ctx, span := scheduleTracer.Start(ctx, "schedule.list_today")
	defer span.End()

	appts, err := m.backend.ListAppointments(ctx, ListQuery{Scope: ScopeToday})
	if err != nil {
		span.RecordError(err)
		return nil, m.listFailure("list today", err)
	}
	return appts, Result{Success: true}
}

// PendingQueue lists the staff work queue of unconfirmed appointments.
func (m *Manager) PendingQueue(ctx context.Context) ([]Appointment, Result) {
	ctx, span := scheduleTracer.Start(ctx, "schedule.list_pending")
	defer span.End()

	appts, err := m.backend.ListAppointments(ctx, ListQuery{Scope: ScopeAll, Status: StatusPending})
	if err != nil {
		span.RecordError(err)
		return nil, m.listFailure("list pending", err)
	}
	return appts, Result{Success: true}
}

func (m *Manager) failure(op string, err error) Result {
	return m.normalize(op, err, msgGenericFailure)
}

func (m *Manager) listFailure(op string, err error) Result {
	return m.normalize(op, err, msgListFailure)
}

func (m *Manager) normalize(op string, err error, fallback string) Result {
	if errors.Is(err, session.ErrExpired) {
		m.logger.Warn(op+" rejected: session expired", "error", err)
		return Result{Message: msgSessionExpired, SessionExpired: true}
	}
	var um userMessage
	if errors.As(err, &um) && strings.TrimSpace(um.UserMessage()) != "" {
		m.logger.Warn(op+" failed", "error", err)
		return Result{Message: um.UserMessage()}
	}
	m.logger.Error(op+" failed", "error", err)
	return Result{Message: fallback}
}
