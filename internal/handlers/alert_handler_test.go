package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/myville/backend/internal/dto"
	"github.com/myville/backend/internal/models"
)

type stubAlertService struct {
	alerts []models.Alert
	err    error
}

func (s *stubAlertService) List(activeOnly bool) ([]models.Alert, error) {
	if s.err != nil {
		return nil, s.err
	}
	if !activeOnly {
		return s.alerts, nil
	}
	active := make([]models.Alert, 0)
	for _, a := range s.alerts {
		if a.Active {
			active = append(active, a)
		}
	}
	return active, nil
}

func (s *stubAlertService) Create(createdBy uuid.UUID, req *dto.CreateAlertRequest) (*models.Alert, error) {
	return nil, s.err
}

func (s *stubAlertService) Toggle(id uuid.UUID) (*models.Alert, error) { return nil, s.err }

func (s *stubAlertService) Delete(id uuid.UUID) error { return s.err }

func alertApp(svc AlertService) *fiber.App {
	h := NewAlertHandler(svc)
	app := fiber.New()
	app.Get("/alerts", h.List)
	return app
}

func TestAlertListDegradesToEmptyOnStoreFailure(t *testing.T) {
	app := alertApp(&stubAlertService{err: errStoreDown})

	status, body := getBody(t, app, "/alerts")
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if body != "[]" {
		t.Errorf("body = %q, want []", body)
	}
}

func TestAlertListFiltersInactive(t *testing.T) {
	svc := &stubAlertService{alerts: []models.Alert{
		{ID: uuid.New(), Title: "Roadworks", Active: true, CreatedAt: time.Now()},
		{ID: uuid.New(), Title: "Old notice", Active: false, CreatedAt: time.Now()},
	}}
	app := alertApp(svc)

	status, body := getBody(t, app, "/alerts")
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if !strings.Contains(body, "Roadworks") || strings.Contains(body, "Old notice") {
		t.Errorf("body = %q, want active alerts only", body)
	}
}
