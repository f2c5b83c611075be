package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Specialty is a medical specialty offered by the clinic.
type Specialty struct {
	ID   string `json:"id"`
	Name string `json:"nombre"`
}

// Doctor is a doctor profile as listed by the directory endpoints.
type Doctor struct {
	ID          string `json:"id"`
	Name        string `json:"nombre"`
	SpecialtyID string `json:"id_especialidad,omitempty"`
	Office      string `json:"consultorio,omitempty"`
}

// Patient is the subset of a patient profile the scheduling screens display.
// Full profile attributes stay opaque foreign data.
type Patient struct {
	ID       string `json:"id"`
	Name     string `json:"nombre"`
	Document string `json:"documento,omitempty"`
}

// Specialties lists the clinic's medical specialties.
func (c *Client) Specialties(ctx context.Context) ([]Specialty, error) {
	var out []Specialty
	if err := c.do(ctx, http.MethodGet, "/especialidades", "/especialidades", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DoctorsBySpecialty lists the doctors attending a specialty.
func (c *Client) DoctorsBySpecialty(ctx context.Context, specialtyID string) ([]Doctor, error) {
	var out []Doctor
	path := "/doctores/especialidad/" + url.PathEscape(specialtyID)
	if err := c.do(ctx, http.MethodGet, "/doctores/especialidad/{id}", path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Doctors returns the flat doctor list used by the quick-schedule flows.
func (c *Client) Doctors(ctx context.Context) ([]Doctor, error) {
	var out []Doctor
	if err := c.do(ctx, http.MethodGet, "/listardoc", "/listardoc", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchPatients looks patients up by name or document. Receptionist flows
// call this behind the search debouncer.
func (c *Client) SearchPatients(ctx context.Context, query string) ([]Patient, error) {
	var out []Patient
	path := fmt.Sprintf("/pacientes/buscar?q=%s", url.QueryEscape(query))
	if err := c.do(ctx, http.MethodGet, "/pacientes/buscar", path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
