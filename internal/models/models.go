// package models defines the data model for the salon client
package models

import "strings"

// Service is an entry of the salon's service catalog.
type Service struct {
	ID       string  `json:"id"`
	Name     string  `json:"nombre"`
	Price    float64 `json:"precio"`
	Duration int     `json:"duracion,omitempty"` // minutes
	Category string  `json:"categoria,omitempty"`
}

// Stylist is a professional working at a venue.
type Stylist struct {
	ID          string   `json:"profesional_id"`
	AlternateID string   `json:"_id,omitempty"`
	Name        string   `json:"nombre"`
	Email       string   `json:"email"`
	VenueID     string   `json:"sede_id,omitempty"`
	Specialties []string `json:"especialidades"`
}

// HasSpecialty reports whether serviceID is in the stylist's specialty set.
func (s Stylist) HasSpecialty(serviceID string) bool {
	for _, id := range s.Specialties {
		if id == serviceID {
			return true
		}
	}
	return false
}

// SpecialtySet returns the specialty ids as a set.
func (s Stylist) SpecialtySet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Specialties))
	for _, id := range s.Specialties {
		set[id] = struct{}{}
	}
	return set
}

// MatchesEmail compares emails case-insensitively, ignoring surrounding whitespace.
func (s Stylist) MatchesEmail(email string) bool {
	return strings.EqualFold(strings.TrimSpace(s.Email), strings.TrimSpace(email))
}

// Venue is a salon location.
type Venue struct {
	ID      string `json:"_id"`
	Code    string `json:"sede_id"`
	Name    string `json:"nombre"`
	Address string `json:"direccion,omitempty"`
}

// Block reserves a time range on a stylist's agenda.
type Block struct {
	ID        string `json:"_id"`
	StylistID string `json:"profesional_id"`
	Date      string `json:"fecha"`
	StartTime string `json:"hora_inicio"`
	EndTime   string `json:"hora_fin"`
	Reason    string `json:"motivo,omitempty"`
}

// NewBlock is the request body for creating a block.
type NewBlock struct {
	StylistID string `json:"profesional_id"`
	Date      string `json:"fecha"`
	StartTime string `json:"hora_inicio"`
	EndTime   string `json:"hora_fin"`
	Reason    string `json:"motivo,omitempty"`
}

// Ficha is a client service record.
type Ficha struct {
	ID           string   `json:"_id"`
	ClientID     string   `json:"cliente_id"`
	StylistID    string   `json:"profesional_id"`
	ServiceID    string   `json:"servicio_id"`
	Date         string   `json:"fecha"`
	Notes        string   `json:"notas,omitempty"`
	PhotosBefore []string `json:"fotos_antes,omitempty"`
	PhotosAfter  []string `json:"fotos_despues,omitempty"`
}

// Photo is an image attached to a new ficha.
type Photo struct {
	Name string
	Data []byte
}

// NewFicha is the multipart request for creating a ficha.
type NewFicha struct {
	ClientID     string
	StylistID    string
	ServiceID    string
	Date         string
	Notes        string
	PhotosBefore []Photo
	PhotosAfter  []Photo
}

// Fields returns the non-file form fields, skipping empty values.
func (f NewFicha) Fields() map[string]string {
	all := map[string]string{
		"cliente_id":     f.ClientID,
		"profesional_id": f.StylistID,
		"servicio_id":    f.ServiceID,
		"fecha":          f.Date,
		"notas":          f.Notes,
	}
	for k, v := range all {
		if v == "" {
			delete(all, k)
		}
	}
	return all
}
