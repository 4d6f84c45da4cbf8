package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/hairizuanbinnoorazman/script-tracker/logger"
	"github.com/hairizuanbinnoorazman/script-tracker/script"
)

const (
	msgNotFound      = "Script no encontrado"
	msgNameCategory  = "Nombre y categoría son requeridos"
	msgNoData        = "No se proporcionaron datos"
	msgExpectedArray = "Se esperaba un array de scripts"
	msgInternal      = "Error interno del servidor"
	msgInvalidBody   = "Cuerpo de la solicitud inválido"
	msgInvalidPrio   = "Prioridad inválida"
	msgInvalidStatus = "Estado inválido"
)

// ScriptHandler handles script-related requests.
type ScriptHandler struct {
	scriptStore script.Store
	logger      logger.Logger
	now         func() time.Time
}

// NewScriptHandler creates a new script handler.
func NewScriptHandler(scriptStore script.Store, log logger.Logger) *ScriptHandler {
	return &ScriptHandler{
		scriptStore: scriptStore,
		logger:      log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// RegisterRoutes mounts the script endpoints on r.
func (h *ScriptHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/scripts", h.List).Methods(http.MethodGet)
	r.HandleFunc("/scripts", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/scripts/stats", h.Stats).Methods(http.MethodGet)
	r.HandleFunc("/scripts/categories", h.Categories).Methods(http.MethodGet)
	r.HandleFunc("/scripts/export", h.Export).Methods(http.MethodGet)
	r.HandleFunc("/scripts/import", h.Import).Methods(http.MethodPost)
	r.HandleFunc("/scripts/sample-data", h.LoadSampleData).Methods(http.MethodPost)
	r.HandleFunc("/scripts/{id:[0-9]+}", h.GetByID).Methods(http.MethodGet)
	r.HandleFunc("/scripts/{id:[0-9]+}", h.Update).Methods(http.MethodPut)
	r.HandleFunc("/scripts/{id:[0-9]+}", h.Delete).Methods(http.MethodDelete)
	r.HandleFunc("/scripts/{id:[0-9]+}/apply", h.Apply).Methods(http.MethodPost)
}

// CreateScriptRequest is the body of a create call: the form fields plus
// the optional file metadata.
type CreateScriptRequest struct {
	script.Input
	FileSize      *int64   `json:"file_size"`
	Checksum      string   `json:"checksum"`
	ExecutionTime *int     `json:"execution_time"`
	Dependencies  []string `json:"dependencies"`
}

func (req CreateScriptRequest) toScript() *script.Script {
	s := req.Input.ToScript()
	s.FileSize = req.FileSize
	s.Checksum = req.Checksum
	s.ExecutionTime = req.ExecutionTime
	if len(req.Dependencies) > 0 {
		s.Dependencies = script.Dependencies(req.Dependencies)
	}
	return s
}

// UpdateScriptRequest represents a partial script update; absent fields are kept.
type UpdateScriptRequest struct {
	Name          *string          `json:"name,omitempty"`
	Path          *string          `json:"path,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Priority      *script.Priority `json:"priority,omitempty"`
	Status        *script.Status   `json:"status,omitempty"`
	Responsible   *string          `json:"responsible,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
	FileSize      *int64           `json:"file_size,omitempty"`
	Checksum      *string          `json:"checksum,omitempty"`
	ExecutionTime *int             `json:"execution_time,omitempty"`
	Dependencies  *[]string        `json:"dependencies,omitempty"`
}

func (req UpdateScriptRequest) setters() []script.UpdateSetter {
	var setters []script.UpdateSetter
	if req.Name != nil {
		setters = append(setters, script.SetName(*req.Name))
	}
	if req.Path != nil {
		setters = append(setters, script.SetPath(*req.Path))
	}
	if req.Category != nil {
		setters = append(setters, script.SetCategory(*req.Category))
	}
	if req.Priority != nil {
		setters = append(setters, script.SetPriority(*req.Priority))
	}
	if req.Status != nil {
		setters = append(setters, script.SetStatus(*req.Status))
	}
	if req.Responsible != nil {
		setters = append(setters, script.SetResponsible(*req.Responsible))
	}
	if req.Notes != nil {
		setters = append(setters, script.SetNotes(*req.Notes))
	}
	if req.FileSize != nil {
		setters = append(setters, script.SetFileSize(*req.FileSize))
	}
	if req.Checksum != nil {
		setters = append(setters, script.SetChecksum(*req.Checksum))
	}
	if req.ExecutionTime != nil {
		setters = append(setters, script.SetExecutionTime(*req.ExecutionTime))
	}
	if req.Dependencies != nil {
		setters = append(setters, script.SetDependencies(*req.Dependencies))
	}
	return setters
}

// validationMessage maps store validation errors to user-facing messages.
func validationMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, script.ErrInvalidName), errors.Is(err, script.ErrInvalidCategory):
		return msgNameCategory, true
	case errors.Is(err, script.ErrInvalidPriority):
		return msgInvalidPrio, true
	case errors.Is(err, script.ErrInvalidStatus):
		return msgInvalidStatus, true
	}
	return "", false
}

// List handles listing scripts with optional filters.
func (h *ScriptHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := script.ListFilter{
		Search:   q.Get("search"),
		Status:   q.Get("status"),
		Category: q.Get("category"),
		Priority: q.Get("priority"),
	}

	scripts, err := h.scriptStore.List(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if scripts == nil {
		scripts = []*script.Script{}
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: scripts, Count: intPtr(len(scripts))})
}

// Create handles creating a new script.
func (h *ScriptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateScriptRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Category) == "" {
		respondError(w, http.StatusBadRequest, msgNameCategory)
		return
	}

	s := req.toScript()
	if err := h.scriptStore.Create(r.Context(), s); err != nil {
		if msg, ok := validationMessage(err); ok {
			respondError(w, http.StatusBadRequest, msg)
			return
		}
		respondError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	respondData(w, http.StatusCreated, s, "Script creado exitosamente")
}

// GetByID handles getting a single script.
func (h *ScriptHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDOrRespond(w, r)
	if !ok {
		return
	}

	s, err := h.scriptStore.GetByID(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	respondData(w, http.StatusOK, s, "")
}

// Update handles partially updating a script.
func (h *ScriptHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDOrRespond(w, r)
	if !ok {
		return
	}

	if _, err := h.scriptStore.GetByID(r.Context(), id); err != nil {
		h.respondStoreError(w, err)
		return
	}

	var req UpdateScriptRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, msgNoData)
		return
	}
	setters := req.setters()
	if len(setters) == 0 {
		respondError(w, http.StatusBadRequest, msgNoData)
		return
	}

	if err := h.scriptStore.Update(r.Context(), id, setters...); err != nil {
		h.respondStoreError(w, err)
		return
	}

	s, err := h.scriptStore.GetByID(r.Context(), id)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	respondData(w, http.StatusOK, s, "Script actualizado exitosamente")
}

// Delete handles permanently deleting a script.
func (h *ScriptHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDOrRespond(w, r)
	if !ok {
		return
	}

	if err := h.scriptStore.Delete(r.Context(), id); err != nil {
		h.respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Script eliminado exitosamente"})
}

// Apply handles marking a script as applied.
func (h *ScriptHandler) Apply(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDOrRespond(w, r)
	if !ok {
		return
	}

	s, err := h.scriptStore.MarkApplied(r.Context(), id, h.now())
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	respondData(w, http.StatusOK, s, "Script marcado como aplicado")
}

// Stats handles counting scripts per status.
func (h *ScriptHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.scriptStore.Stats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	respondData(w, http.StatusOK, stats, "")
}

// Categories handles listing the categories in use.
func (h *ScriptHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.scriptStore.Categories(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	respondData(w, http.StatusOK, categories, "")
}

// Export handles dumping every script.
func (h *ScriptHandler) Export(w http.ResponseWriter, r *http.Request) {
	scripts, err := h.scriptStore.List(r.Context(), script.ListFilter{})
	if err != nil {
		respondError(w, http.StatusInternalServerError, msgInternal)
		return
	}
	if scripts == nil {
		scripts = []*script.Script{}
	}

	respondJSON(w, http.StatusOK, Response{
		Success:    true,
		Data:       scripts,
		Count:      intPtr(len(scripts)),
		ExportedAt: h.now().Format(time.RFC3339),
	})
}

// Import handles upserting an array of scripts by name.
func (h *ScriptHandler) Import(w http.ResponseWriter, r *http.Request) {
	var scripts []script.Script
	if err := parseJSON(r, &scripts, h.logger); err != nil || scripts == nil {
		respondError(w, http.StatusBadRequest, msgExpectedArray)
		return
	}

	h.respondImport(w, r, scripts, "%d scripts importados exitosamente")
}

// LoadSampleData handles upserting the embedded sample scripts.
func (h *ScriptHandler) LoadSampleData(w http.ResponseWriter, r *http.Request) {
	samples, err := script.SampleScripts()
	if err != nil {
		h.logger.Error(r.Context(), "failed to read sample scripts", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	h.respondImport(w, r, samples, "%d scripts de ejemplo cargados")
}

func (h *ScriptHandler) respondImport(w http.ResponseWriter, r *http.Request, scripts []script.Script, messageFormat string) {
	result, err := h.scriptStore.Import(r.Context(), scripts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success:       true,
		Message:       fmt.Sprintf(messageFormat, result.Imported),
		ImportedCount: intPtr(result.Imported),
		Errors:        result.Errors,
	})
}

// respondStoreError maps store errors to HTTP responses. The store has
// already logged unexpected failures.
func (h *ScriptHandler) respondStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, script.ErrScriptNotFound) {
		respondError(w, http.StatusNotFound, msgNotFound)
		return
	}
	if msg, ok := validationMessage(err); ok {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	respondError(w, http.StatusInternalServerError, msgInternal)
}
