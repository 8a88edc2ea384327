package handlers

import (
	"net/http"

	"github.com/Nitingarg01/Major-project-sub001/internal/company"
	"github.com/Nitingarg01/Major-project-sub001/internal/models"
	"github.com/Nitingarg01/Major-project-sub001/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CompanyHandler struct {
	source company.Source
	logger *zap.Logger
}

func NewCompanyHandler(source company.Source, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{source: source, logger: logger}
}

// GetCompany handles GET /api/v1/companies/{name}
func (h *CompanyHandler) GetCompany(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	intel, err := h.source.Lookup(r.Context(), name)
	if err != nil {
		h.logger.Error("company lookup failed", zap.String("company", name), zap.Error(err))
		utils.JSON(w, http.StatusBadGateway, models.ErrorResponse{
			Code:    "lookup_failed",
			Message: "company lookup failed",
		})
		return
	}
	if intel == nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "not_found",
			Message: "no profile for company " + name,
		})
		return
	}
	utils.JSON(w, http.StatusOK, intel)
}
