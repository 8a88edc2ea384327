package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Nitingarg01/Major-project-sub001/internal/config"
	"github.com/Nitingarg01/Major-project-sub001/internal/utils"
)

const readinessTimeout = 2 * time.Second

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status  string                    `json:"status"` // "ready" | "not_ready"
	Service string                    `json:"service"`
	Checks  map[string]ReadinessCheck `json:"checks"`
}

// Probe reports whether one dependency is usable.
type Probe func(ctx context.Context) error

type HealthHandler struct {
	config *config.Config
	probes map[string]Probe
}

// NewHealthHandler takes named probes; optional backends that are not
// configured should simply be left out.
func NewHealthHandler(cfg *config.Config, probes map[string]Probe) *HealthHandler {
	if probes == nil {
		probes = map[string]Probe{}
	}
	return &HealthHandler{config: cfg, probes: probes}
}

func (handler *HealthHandler) HealthzHandler(writer http.ResponseWriter, request *http.Request) {
	utils.JSON(writer, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "interview",
		"version": "1.0.0",
	})
}

func (handler *HealthHandler) ReadyzHandler(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), readinessTimeout)
	defer cancel()

	checks := make(map[string]ReadinessCheck, len(handler.probes)+1)
	allChecksPass := true

	if handler.config == nil {
		checks["configuration"] = ReadinessCheck{Status: "failed", Message: "Configuration not loaded"}
		allChecksPass = false
	} else {
		checks["configuration"] = ReadinessCheck{Status: "ok"}
	}

	for name, probe := range handler.probes {
		if err := probe(ctx); err != nil {
			checks[name] = ReadinessCheck{Status: "failed", Message: err.Error()}
			allChecksPass = false
			continue
		}
		checks[name] = ReadinessCheck{Status: "ok"}
	}

	response := ReadinessResponse{
		Service: "interview",
		Checks:  checks,
	}

	if allChecksPass {
		response.Status = "ready"
		utils.JSON(writer, http.StatusOK, response)
	} else {
		response.Status = "not_ready"
		utils.JSON(writer, http.StatusServiceUnavailable, response)
	}
}
