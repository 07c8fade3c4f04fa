package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/vocabtracker/backend/internal/auth"
	"github.com/vocabtracker/backend/internal/models"
	"go.uber.org/zap"
)

// VocabService is the interface that wraps methods for vocabulary business logic
type VocabService interface {
	// Method List retrieves the user's entries for the given date and search filters.
	//
	// "dateStr" parameter filters entries by day (YYYY-MM-DD); empty means all dates.
	// "search" parameter filters by word or meaning substring; empty means no filter.
	//
	// If some error occurs during retrieval, the error will be returned together with "nil" value.
	List(ctx context.Context, userID int, dateStr, search string) ([]models.Vocabulary, error)
	// Method Create validates and stores a new entry.
	//
	// "req" parameter contains the entry fields and the target date.
	//
	// If validation fails or some error occurs during creation, the error will be returned together with "nil" value.
	Create(ctx context.Context, userID int, req *models.CreateVocabRequest) (*models.Vocabulary, error)
	// Method Update applies a partial update to an existing entry.
	//
	// "req" parameter contains any subset of the mutable entry fields; empty fields are kept unchanged.
	//
	// If such entry does not exist or some error occurs, the error will be returned together with "nil" value.
	Update(ctx context.Context, userID, id int, req *models.UpdateVocabRequest) (*models.Vocabulary, error)
	// Method Delete removes an entry by id.
	//
	// If such entry does not exist or some error occurs, the error will be returned.
	Delete(ctx context.Context, userID, id int) error
}

// ExportService is the interface that wraps methods for vocabulary export
type ExportService interface {
	// Method Export builds an xlsx workbook with all entries of the user.
	//
	// If some error occurs during export, the error will be returned together with "nil" value.
	Export(ctx context.Context, userID int) ([]byte, error)
}

// VocabHandler handles vocabulary-related HTTP requests
type VocabHandler struct {
	BaseHandler
	vocabService  VocabService
	exportService ExportService
}

// NewVocabHandler creates a new vocabulary handler
func NewVocabHandler(vocabService VocabService, exportService ExportService, logger *zap.Logger) *VocabHandler {
	return &VocabHandler{
		BaseHandler:   BaseHandler{Logger: logger},
		vocabService:  vocabService,
		exportService: exportService,
	}
}

// RegisterRoutes registers all vocabulary handler routes
func (h *VocabHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/vocab", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/export", h.Export)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List handles GET /vocab
// @Summary List vocabulary entries
// @Description List the authenticated user's entries, optionally filtered by date and search term. An empty date returns all entries.
// @Tags vocab
// @Produce json
// @Security ApiKeyAuth
// @Param date query string false "Calendar day filter (YYYY-MM-DD)"
// @Param search query string false "Substring filter over word and meaning"
// @Success 200 {object} models.VocabListResponse "Matching entries"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /vocab [get]
func (h *VocabHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	dateStr := r.URL.Query().Get("date")
	search := r.URL.Query().Get("search")

	vocabularies, err := h.vocabService.List(r.Context(), userID, dateStr, search)
	if err != nil {
		h.Logger.Error("failed to list vocabularies", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to fetch vocabulary")
		return
	}

	h.RespondJSON(w, http.StatusOK, models.VocabListResponse{
		Vocabularies: vocabularies,
		Count:        len(vocabularies),
	})
}

// Create handles POST /vocab
// @Summary Create a vocabulary entry
// @Description Create an entry for the given calendar day. Status defaults to review_needed.
// @Tags vocab
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param entry body models.CreateVocabRequest true "Entry fields"
// @Success 201 {object} models.Vocabulary "Created entry"
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /vocab [post]
func (h *VocabHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.CreateVocabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("failed to decode request body", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vocab, err := h.vocabService.Create(r.Context(), userID, &req)
	if err != nil {
		h.Logger.Error("failed to create vocabulary", zap.Error(err))
		statusCode := http.StatusInternalServerError
		errMsg := err.Error()
		if strings.Contains(errMsg, "required") ||
			strings.Contains(errMsg, "invalid date") ||
			strings.Contains(errMsg, "invalid status") {
			statusCode = http.StatusBadRequest
		}
		h.RespondError(w, statusCode, errMsg)
		return
	}

	h.RespondJSON(w, http.StatusCreated, vocab)
}

// Update handles PUT /vocab/{id}
// @Summary Update a vocabulary entry
// @Description Apply a partial update; omitted fields keep their stored values.
// @Tags vocab
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Entry ID"
// @Param entry body models.UpdateVocabRequest true "Fields to update"
// @Success 200 {object} models.Vocabulary "Updated entry"
// @Failure 400 {object} map[string]string "Invalid id or validation error"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /vocab/{id} [put]
func (h *VocabHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid vocabulary ID")
		return
	}

	var req models.UpdateVocabRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Error("failed to decode request body", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	vocab, err := h.vocabService.Update(r.Context(), userID, id, &req)
	if err != nil {
		h.Logger.Error("failed to update vocabulary", zap.Error(err), zap.Int("vocabId", id))
		statusCode := http.StatusInternalServerError
		errMsg := err.Error()
		if strings.Contains(errMsg, "not found") {
			statusCode = http.StatusNotFound
		} else if strings.Contains(errMsg, "invalid status") {
			statusCode = http.StatusBadRequest
		}
		h.RespondError(w, statusCode, errMsg)
		return
	}

	h.RespondJSON(w, http.StatusOK, vocab)
}

// Delete handles DELETE /vocab/{id}
// @Summary Delete a vocabulary entry
// @Tags vocab
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Entry ID"
// @Success 200 {object} map[string]string "Entry deleted"
// @Failure 400 {object} map[string]string "Invalid id"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /vocab/{id} [delete]
func (h *VocabHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid vocabulary ID")
		return
	}

	if err := h.vocabService.Delete(r.Context(), userID, id); err != nil {
		h.Logger.Error("failed to delete vocabulary", zap.Error(err), zap.Int("vocabId", id))
		statusCode := http.StatusInternalServerError
		if strings.Contains(err.Error(), "not found") {
			statusCode = http.StatusNotFound
		}
		h.RespondError(w, statusCode, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "vocabulary deleted successfully"})
}

// Export handles GET /vocab/export
// @Summary Export vocabulary as xlsx
// @Description Download all of the authenticated user's entries as an Excel workbook.
// @Tags vocab
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Success 200 {file} binary "Workbook"
// @Failure 401 {object} map[string]string "Unauthorized - authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /vocab/export [get]
func (h *VocabHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	data, err := h.exportService.Export(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to export vocabulary", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to export vocabulary")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="vocabulary.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.Logger.Error("failed to write export response", zap.Error(err))
	}
}
