package services

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/salonx/internal/models"
	"github.com/desertthunder/salonx/internal/shared"
	tu "github.com/desertthunder/salonx/internal/testing"
)

func quietLogger() *log.Logger { return log.New(io.Discard) }

func newTestClient(b *tu.Backend, session models.Session) *Client {
	return NewClient(b.URL, ClientOpts{Session: session, Logger: quietLogger()})
}

func TestClient(t *testing.T) {
	ctx := context.Background()

	t.Run("New", func(t *testing.T) {
		t.Run("With Empty BaseURL", func(t *testing.T) {
			c := NewClient("", ClientOpts{Logger: quietLogger()})
			if c.BaseURL() != defaultBaseURL {
				t.Errorf("expected default base URL, got %s", c.BaseURL())
			}
		})

		t.Run("Trims Trailing Slash", func(t *testing.T) {
			c := NewClient("http://example.com/api/", ClientOpts{Logger: quietLogger()})
			if c.BaseURL() != "http://example.com/api" {
				t.Errorf("expected trimmed base URL, got %s", c.BaseURL())
			}
		})
	})

	t.Run("Headers", func(t *testing.T) {
		b := tu.NewBackend(t)
		b.Handle(http.MethodGet, "/servicios", http.StatusOK, []models.Service{})

		c := newTestClient(b, models.Session{Token: "abc123", Locale: "es-CO", Currency: "COP"})
		if err := c.Get(ctx, "/servicios", nil, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		req := b.LastRequest(http.MethodGet, "/servicios")
		if got := req.Header.Get("Authorization"); got != "Bearer abc123" {
			t.Errorf("expected bearer token, got %q", got)
		}
		if got := req.Header.Get("Accept-Language"); got != "es-CO" {
			t.Errorf("expected Accept-Language es-CO, got %q", got)
		}
		if got := req.Header.Get("X-Currency"); got != "COP" {
			t.Errorf("expected X-Currency COP, got %q", got)
		}
		if req.Header.Get("X-Request-ID") == "" {
			t.Error("expected X-Request-ID")
		}
	})

	t.Run("No Token No Authorization", func(t *testing.T) {
		b := tu.NewBackend(t)
		b.Handle(http.MethodGet, "/sedes", http.StatusOK, []models.Venue{})

		c := newTestClient(b, models.Session{})
		c.Get(ctx, "/sedes", nil, nil)

		if got := b.LastRequest(http.MethodGet, "/sedes").Header.Get("Authorization"); got != "" {
			t.Errorf("expected no Authorization header, got %q", got)
		}
	})

	t.Run("SetSession", func(t *testing.T) {
		b := tu.NewBackend(t)
		b.Handle(http.MethodGet, "/sedes", http.StatusOK, []models.Venue{})

		c := newTestClient(b, models.Session{Token: "old"})
		c.SetSession(models.Session{Token: "new"})
		c.Get(ctx, "/sedes", nil, nil)

		if got := b.LastRequest(http.MethodGet, "/sedes").Header.Get("Authorization"); got != "Bearer new" {
			t.Errorf("expected new token, got %q", got)
		}
		if c.Session().Token != "new" {
			t.Error("expected session to be replaced")
		}
	})

	t.Run("Get Query", func(t *testing.T) {
		b := tu.NewBackend(t)
		b.Handle(http.MethodGet, "/citas", http.StatusOK, []any{})

		c := newTestClient(b, models.Session{})
		q := url.Values{"profesional_id": {"p1"}, "fecha": {"2025-03-01"}}
		if err := c.Get(ctx, "/citas", q, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		req := b.LastRequest(http.MethodGet, "/citas")
		if req.Query.Get("profesional_id") != "p1" || req.Query.Get("fecha") != "2025-03-01" {
			t.Errorf("unexpected query %v", req.Query)
		}
	})

	t.Run("Post", func(t *testing.T) {
		b := tu.NewBackend(t)
		b.Handle(http.MethodPost, "/bloqueos", http.StatusCreated, models.Block{ID: "b1"})

		c := newTestClient(b, models.Session{})
		var out models.Block
		if err := c.Post(ctx, "/bloqueos", models.NewBlock{StylistID: "p1"}, &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.ID != "b1" {
			t.Errorf("expected decoded block, got %+v", out)
		}

		req := b.LastRequest(http.MethodPost, "/bloqueos")
		if req.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected JSON content type, got %s", req.Header.Get("Content-Type"))
		}
		if !strings.Contains(string(req.Body), `"profesional_id":"p1"`) {
			t.Errorf("unexpected body %s", req.Body)
		}
	})

	t.Run("PostMultipart", func(t *testing.T) {
		b := tu.NewBackend(t)
		var fields map[string]string
		var files map[string]string
		b.HandleFunc(http.MethodPost, "/fichas", func(w http.ResponseWriter, r *http.Request) {
			_, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil {
				t.Errorf("bad content type: %v", err)
				return
			}
			fields, files = map[string]string{}, map[string]string{}
			mr := multipart.NewReader(r.Body, params["boundary"])
			for {
				part, err := mr.NextPart()
				if err != nil {
					break
				}
				data, _ := io.ReadAll(part)
				if part.FileName() != "" {
					files[part.FormName()] = part.FileName() + ":" + string(data)
				} else {
					fields[part.FormName()] = string(data)
				}
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"_id":"f1"}`))
		})

		c := newTestClient(b, models.Session{})
		var out models.Ficha
		err := c.PostMultipart(ctx, "/fichas",
			map[string]string{"cliente_id": "c1", "notas": "ok"},
			[]FormFile{{Field: "fotos_antes", Filename: "a.jpg", Data: []byte("img")}},
			&out,
		)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.ID != "f1" {
			t.Errorf("expected f1, got %s", out.ID)
		}
		if fields["cliente_id"] != "c1" || fields["notas"] != "ok" {
			t.Errorf("unexpected fields %v", fields)
		}
		if files["fotos_antes"] != "a.jpg:img" {
			t.Errorf("unexpected files %v", files)
		}
	})

	t.Run("Errors", func(t *testing.T) {
		tests := []struct {
			name   string
			status int
			body   string
			want   string
			is     error
		}{
			{"string detail", http.StatusBadRequest, `{"detail":"Horario no disponible"}`, "Horario no disponible", shared.ErrAPIRequest},
			{"list detail", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"},{"msg":"bad date"}]}`, "field required; bad date", shared.ErrAPIRequest},
			{"no body", http.StatusInternalServerError, ``, "HTTP 500", shared.ErrAPIRequest},
			{"non json body", http.StatusBadGateway, `<html>`, "HTTP 502", shared.ErrAPIRequest},
			{"not found", http.StatusNotFound, `{"detail":"Cita no encontrada"}`, "Cita no encontrada", shared.ErrNotFound},
			{"unauthorized", http.StatusUnauthorized, ``, "HTTP 401", shared.ErrNotAuthenticated},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				b := tu.NewBackend(t)
				b.HandleFunc(http.MethodGet, "/x", func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
					w.Write([]byte(tt.body))
				})

				err := newTestClient(b, models.Session{}).Get(ctx, "/x", nil, nil)

				var apiErr *APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("expected *APIError, got %T %v", err, err)
				}
				if apiErr.Status != tt.status {
					t.Errorf("expected status %d, got %d", tt.status, apiErr.Status)
				}
				if err.Error() != tt.want {
					t.Errorf("expected %q, got %q", tt.want, err.Error())
				}
				if !errors.Is(err, tt.is) {
					t.Errorf("expected error to match %v", tt.is)
				}
			})
		}
	})

	t.Run("Network Failure", func(t *testing.T) {
		c := NewClient("http://example.com", ClientOpts{
			HTTPClient: &http.Client{Transport: tu.FailingTransport(errors.New("connection refused"))},
			Logger:     quietLogger(),
		})

		err := c.Get(ctx, "/servicios", nil, nil)
		if err == nil || !strings.Contains(err.Error(), "request failed") {
			t.Errorf("expected wrapped network error, got %v", err)
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			t.Error("network failures are not API errors")
		}
	})

	t.Run("Malformed Response", func(t *testing.T) {
		b := tu.NewBackend(t)
		b.HandleFunc(http.MethodGet, "/sedes", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		})

		var out []models.Venue
		err := newTestClient(b, models.Session{}).Get(ctx, "/sedes", nil, &out)
		if err == nil || !strings.Contains(err.Error(), "failed to decode response") {
			t.Errorf("expected decode error, got %v", err)
		}
	})
}
