package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/citasalud/mobile-core/internal/schedule"
)

// The appointment wire calls below make *Client satisfy schedule.Backend.
var _ schedule.Backend = (*Client)(nil)

// VerifyAvailability asks whether the (doctor, date, time) tuple is free.
func (c *Client) VerifyAvailability(ctx context.Context, doctorID string, date schedule.Date, t schedule.TimeOfDay) (schedule.Verdict, error) {
	payload := map[string]string{
		"id_doctor": doctorID,
		"fecha":     date.String(),
		"hora":      t.String(),
	}
	var out schedule.Verdict
	if err := c.do(ctx, http.MethodPost, "/citas/verificar-disponibilidad", "/citas/verificar-disponibilidad", payload, &out); err != nil {
		return schedule.Verdict{}, err
	}
	return out, nil
}

// AvailableTimes fetches the (fecha, hora) pairs a doctor's schedule offers.
func (c *Client) AvailableTimes(ctx context.Context, doctorID string) ([]schedule.AvailableSlot, error) {
	var out []schedule.AvailableSlot
	path := "/citas/available-times/" + url.PathEscape(doctorID)
	if err := c.do(ctx, http.MethodGet, "/citas/available-times/{doctorId}", path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAppointment books an appointment. The backend answers 201 with the
// created record.
func (c *Client) CreateAppointment(ctx context.Context, req schedule.CreateRequest) (schedule.Appointment, error) {
	var out schedule.Appointment
	if err := c.do(ctx, http.MethodPost, "/citas", "/citas", req, &out); err != nil {
		return schedule.Appointment{}, err
	}
	return out, nil
}

// GetAppointment fetches one appointment record.
func (c *Client) GetAppointment(ctx context.Context, id int64) (schedule.Appointment, error) {
	var out schedule.Appointment
	path := fmt.Sprintf("/citas/%d", id)
	if err := c.do(ctx, http.MethodGet, "/citas/{id}", path, nil, &out); err != nil {
		return schedule.Appointment{}, err
	}
	return out, nil
}

// UpdateAppointmentStatus performs the status transition call.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, id int64, status schedule.Status) (schedule.Appointment, error) {
	payload := map[string]string{"estado": string(status)}
	var out schedule.Appointment
	path := fmt.Sprintf("/citas/%d/estado", id)
	if err := c.do(ctx, http.MethodPut, "/citas/{id}/estado", path, payload, &out); err != nil {
		return schedule.Appointment{}, err
	}
	return out, nil
}

// RescheduleAppointment moves an appointment to a new date/time. Status is
// not part of the payload; rescheduling never changes it.
func (c *Client) RescheduleAppointment(ctx context.Context, id int64, date schedule.Date, t schedule.TimeOfDay) (schedule.Appointment, error) {
	payload := map[string]string{
		"fecha": date.String(),
		"hora":  t.String(),
	}
	var out schedule.Appointment
	path := fmt.Sprintf("/citas/%d/reagendar", id)
	if err := c.do(ctx, http.MethodPut, "/citas/{id}/reagendar", path, payload, &out); err != nil {
		return schedule.Appointment{}, err
	}
	return out, nil
}

// ListAppointments fetches a role-scoped appointment listing.
func (c *Client) ListAppointments(ctx context.Context, q schedule.ListQuery) ([]schedule.Appointment, error) {
	params := url.Values{}
	switch q.Scope {
	case schedule.ScopeMine:
		params.Set("propias", "1")
	case schedule.ScopeToday:
		params.Set("fecha", "hoy")
	}
	if q.Status != "" {
		params.Set("estado", string(q.Status))
	}

	path := "/citas"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var out []schedule.Appointment
	if err := c.do(ctx, http.MethodGet, "/citas", path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
