package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	appanalysis "github.com/bryanwahyu/greenwash-radar/internal/application/analysis"
	appassistant "github.com/bryanwahyu/greenwash-radar/internal/application/assistant"
	appreports "github.com/bryanwahyu/greenwash-radar/internal/application/reports"
	appsections "github.com/bryanwahyu/greenwash-radar/internal/application/sections"
	domai "github.com/bryanwahyu/greenwash-radar/internal/domain/ai"
	domanalysis "github.com/bryanwahyu/greenwash-radar/internal/domain/analysis"
	domreports "github.com/bryanwahyu/greenwash-radar/internal/domain/reports"
	domsections "github.com/bryanwahyu/greenwash-radar/internal/domain/sections"
	"github.com/bryanwahyu/greenwash-radar/internal/middleware"
)

// maxUploadBytes caps multipart uploads (PDF reports are rarely over a
// few tens of MB).
const maxUploadBytes = 64 << 20

type Router struct {
	reportsSvc   *appreports.Service
	analysisSvc  *appanalysis.Service
	sectionsSvc  *appsections.Service
	assistantSvc *appassistant.Service
}

func NewRouter(reportsSvc *appreports.Service, analysisSvc *appanalysis.Service, sectionsSvc *appsections.Service, assistantSvc *appassistant.Service) http.Handler {
	r := &Router{
		reportsSvc:   reportsSvc,
		analysisSvc:  analysisSvc,
		sectionsSvc:  sectionsSvc,
		assistantSvc: assistantSvc,
	}
	mux := chi.NewRouter()

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/reports", r.wrap(r.handleUpload))
		rt.Get("/reports", r.wrap(r.handleListReports))
		rt.Get("/reports/{id}", r.wrap(r.handleGetReport))
		rt.Get("/reports/{id}/download", r.wrap(r.handleDownload))
		rt.Delete("/reports/{id}", r.wrap(r.handleDeleteReport))

		rt.Post("/reports/{id}/analyze", r.wrap(r.handleAnalyze))
		rt.Get("/reports/{id}/analysis", r.wrap(r.handleGetAnalysis))
		rt.Get("/analysis", r.wrap(r.handleListAnalyses))
		rt.Post("/analysis/reset", r.wrap(r.handleResetAnalyses))

		rt.Post("/sections", r.wrap(r.handleCreateSection))
		rt.Get("/sections", r.wrap(r.handleListSections))
		rt.Patch("/sections/{id}", r.wrap(r.handleRenameSection))
		rt.Delete("/sections/{id}", r.wrap(r.handleDeleteSection))
		rt.Put("/sections/{id}/reports/{reportID}", r.wrap(r.handleAssignReport))
		rt.Delete("/sections/reports/{reportID}", r.wrap(r.handleUnassignReport))

		rt.Post("/reports/{id}/chat", r.wrap(r.handleChat))
		rt.Post("/reports/{id}/translate", r.wrap(r.handleTranslate))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, domreports.ErrNotFound), errors.Is(err, domsections.ErrNotFound):
				http.Error(w, err.Error(), http.StatusNotFound)
			case errors.Is(err, domai.ErrQuotaExceeded):
				http.Error(w, "ai quota exceeded", http.StatusTooManyRequests)
			case errors.Is(err, domai.ErrNotConfigured):
				http.Error(w, "ai assistant is not configured", http.StatusServiceUnavailable)
			case errors.Is(err, domai.ErrBadModelOutput):
				http.Error(w, "model returned an unparseable result, try again", http.StatusBadGateway)
			case errors.Is(err, domanalysis.ErrStoreWrite):
				http.Error(w, "failed to save analysis", http.StatusBadGateway)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// reportID pulls and validates the {id} URL parameter.
func reportID(w http.ResponseWriter, req *http.Request) (domreports.ReportID, bool) {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateReportID(id); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return domreports.ReportID(id), true
}

// reportView is the card-list shape: metadata plus the reconciled
// analysis record, nil while the report is unanalyzed.
type reportView struct {
	*domreports.Report
	Analysis *domanalysis.Record `json:"analysis,omitempty"`
}

// POST /v1/reports (multipart: file, title)
func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, maxUploadBytes)
	if err := req.ParseMultipartForm(8 << 20); err != nil {
		http.Error(w, "invalid multipart body", http.StatusBadRequest)
		return nil
	}
	file, header, err := req.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return nil
	}
	defer file.Close()

	rep, err := r.reportsSvc.Upload(req.Context(), appreports.UploadCommand{
		FileName:    header.Filename,
		Title:       middleware.SanitizeString(req.FormValue("title")),
		ContentType: header.Header.Get("Content-Type"),
		SizeBytes:   header.Size,
		Body:        file,
	})
	if err != nil {
		return err
	}
	middleware.IncrementUploads()
	w.WriteHeader(http.StatusCreated)
	return writeJSON(w, rep)
}

// GET /v1/reports
// Dashboard-load read: every report joined with its reconciled analysis.
func (r *Router) handleListReports(w http.ResponseWriter, req *http.Request) error {
	list, err := r.reportsSvc.List(req.Context())
	if err != nil {
		return err
	}
	records, err := r.analysisSvc.GetAll(req.Context())
	if err != nil {
		return err
	}
	out := make([]reportView, 0, len(list))
	for _, rep := range list {
		out = append(out, reportView{Report: rep, Analysis: records[string(rep.ID)]})
	}
	return writeJSON(w, out)
}

// GET /v1/reports/{id}
func (r *Router) handleGetReport(w http.ResponseWriter, req *http.Request) error {
	id, ok := reportID(w, req)
	if !ok {
		return nil
	}
	rep, err := r.reportsSvc.Get(req.Context(), id)
	if err != nil {
		return err
	}
	rec, err := r.analysisSvc.Get(req.Context(), string(id))
	if err != nil {
		return err
	}
	return writeJSON(w, reportView{Report: rep, Analysis: rec})
}

// GET /v1/reports/{id}/download
func (r *Router) handleDownload(w http.ResponseWriter, req *http.Request) error {
	id, ok := reportID(w, req)
	if !ok {
		return nil
	}
	rc, rep, err := r.reportsSvc.Open(req.Context(), id)
	if err != nil {
		return err
	}
	defer rc.Close()

	w.Header().Set("Content-Type", rep.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", rep.FileName))
	_, err = io.Copy(w, rc)
	return err
}

// DELETE /v1/reports/{id}
func (r *Router) handleDeleteReport(w http.ResponseWriter, req *http.Request) error {
	id, ok := reportID(w, req)
	if !ok {
		return nil
	}
	if err := r.reportsSvc.Delete(req.Context(), id); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// POST /v1/reports/{id}/analyze
// Runs extraction + model + scoring synchronously and returns the record.
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	id, ok := reportID(w, req)
	if !ok {
		return nil
	}
	text, err := r.reportsSvc.Text(req.Context(), id)
	if err != nil {
		return err
	}
	middleware.IncrementAnalyses()
	rec, err := r.analysisSvc.AnalyzeReport(req.Context(), string(id), text)
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}
	return writeJSON(w, rec)
}

// GET /v1/reports/{id}/analysis
func (r *Router) handleGetAnalysis(w http.ResponseWriter, req *http.Request) error {
	id, ok := reportID(w, req)
	if !ok {
		return nil
	}
	rec, err := r.analysisSvc.Get(req.Context(), string(id))
	if err != nil {
		return err
	}
	if rec == nil {
		http.Error(w, "report not analyzed yet", http.StatusNotFound)
		return nil
	}
	return writeJSON(w, rec)
}

// GET /v1/analysis
func (r *Router) handleListAnalyses(w http.ResponseWriter, req *http.Request) error {
	records, err := r.analysisSvc.GetAll(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, records)
}

// POST /v1/analysis/reset
// Destructive: every report reverts to "unanalyzed" until reanalysis.
func (r *Router) handleResetAnalyses(w http.ResponseWriter, req *http.Request) error {
	if err := r.analysisSvc.ResetAll(req.Context()); err != nil {
		return err
	}
	return writeJSON(w, map[string]any{"status": "reset"})
}

// POST /v1/sections {"name": "..."}
func (r *Router) handleCreateSection(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	sec, err := r.sectionsSvc.Create(req.Context(), body.Name)
	if err != nil {
		return err
	}
	w.WriteHeader(http.StatusCreated)
	return writeJSON(w, sec)
}

// GET /v1/sections
func (r *Router) handleListSections(w http.ResponseWriter, req *http.Request) error {
	list, err := r.sectionsSvc.List(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, list)
}

// PATCH /v1/sections/{id} {"name": "..."}
func (r *Router) handleRenameSection(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	sec, err := r.sectionsSvc.Rename(req.Context(), chi.URLParam(req, "id"), body.Name)
	if err != nil {
		return err
	}
	return writeJSON(w, sec)
}

// DELETE /v1/sections/{id}
func (r *Router) handleDeleteSection(w http.ResponseWriter, req *http.Request) error {
	if err := r.sectionsSvc.Delete(req.Context(), chi.URLParam(req, "id")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// PUT /v1/sections/{id}/reports/{reportID}
// Move semantics: the report leaves any other section first.
func (r *Router) handleAssignReport(w http.ResponseWriter, req *http.Request) error {
	repID := chi.URLParam(req, "reportID")
	if err := middleware.ValidateReportID(repID); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}
	// reject assignments of nonexistent reports
	if _, err := r.reportsSvc.Get(req.Context(), domreports.ReportID(repID)); err != nil {
		return err
	}
	sec, err := r.sectionsSvc.AssignReport(req.Context(), chi.URLParam(req, "id"), repID)
	if err != nil {
		return err
	}
	return writeJSON(w, sec)
}

// DELETE /v1/sections/reports/{reportID}
func (r *Router) handleUnassignReport(w http.ResponseWriter, req *http.Request) error {
	if err := r.sectionsSvc.RemoveReportEverywhere(req.Context(), chi.URLParam(req, "reportID")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// POST /v1/reports/{id}/chat {"question": "...", "history": [...]}
func (r *Router) handleChat(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Question string              `json:"question"`
		History  []domai.ChatMessage `json:"history"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	id, ok := reportID(w, req)
	if !ok {
		return nil
	}
	text, err := r.reportsSvc.Text(req.Context(), id)
	if err != nil {
		return err
	}
	answer, err := r.assistantSvc.Chat(req.Context(), text, body.History, body.Question)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]string{"answer": answer})
}

// POST /v1/reports/{id}/translate {"target_lang": "id", "text": "..."}
// When text is omitted the whole report text is translated.
func (r *Router) handleTranslate(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		TargetLang string `json:"target_lang"`
		Text       string `json:"text"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return err
	}
	if err := middleware.ValidateTargetLang(body.TargetLang); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil
	}
	id, ok := reportID(w, req)
	if !ok {
		return nil
	}
	text := body.Text
	if text == "" {
		var err error
		text, err = r.reportsSvc.Text(req.Context(), id)
		if err != nil {
			return err
		}
	}
	translated, err := r.assistantSvc.Translate(req.Context(), text, body.TargetLang)
	if err != nil {
		return err
	}
	return writeJSON(w, map[string]string{"translation": translated})
}
