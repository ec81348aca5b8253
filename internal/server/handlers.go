package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/nadim/adgm-agent/internal/db"
	"github.com/nadim/adgm-agent/internal/pipeline"
	"github.com/nadim/adgm-agent/internal/report"
	"github.com/nadim/adgm-agent/internal/types"
	"github.com/nadim/adgm-agent/internal/validation"
)

// UploadRequest represents the request body for POST /documents
type UploadRequest struct {
	Filename     string `json:"filename"`
	Content      string `json:"content"`
	DocumentType string `json:"document_type,omitempty"`
}

// UploadResponse represents the response for POST /documents
type UploadResponse struct {
	AnalysisID string `json:"analysis_id"`
	Status     string `json:"status"`
}

// ChecklistRequest represents the request body for POST /checklist
type ChecklistRequest struct {
	DocumentType      string   `json:"document_type"`
	Content           string   `json:"content,omitempty"`
	UploadedDocuments []string `json:"uploaded_documents,omitempty"`
}

// ChecklistResponse represents the response for POST /checklist
type ChecklistResponse struct {
	DocumentType     string                 `json:"document_type"`
	Checklist        *types.ChecklistResult `json:"checklist,omitempty"`
	MissingDocuments []string               `json:"missing_documents"`
}

// decodeUpload parses and validates an upload-style request body.
func (s *Server) decodeUpload(w http.ResponseWriter, r *http.Request) (*UploadRequest, bool) {
	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return nil, false
	}
	if strings.TrimSpace(req.Content) == "" {
		s.errorResponse(w, http.StatusBadRequest, "content is required")
		return nil, false
	}
	if req.Filename == "" {
		req.Filename = "document.txt"
	}
	if req.DocumentType != "" && !types.DocumentType(req.DocumentType).Known() {
		s.errorResponse(w, http.StatusBadRequest, "Unknown document_type: "+req.DocumentType)
		return nil, false
	}
	return &req, true
}

// handleUploadDocument accepts a document and starts analysis in the
// background. Clients poll GET /documents/{id} for the result.
func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeUpload(w, r)
	if !ok {
		return
	}

	analysisID := uuid.New().String()
	opts := pipeline.RunOptions{
		AnalysisID:   analysisID,
		Text:         req.Content,
		Filename:     req.Filename,
		DocumentType: types.DocumentType(req.DocumentType),
	}

	log.Printf("Starting document analysis %s (%s)", analysisID, req.Filename)

	go func() {
		if _, err := s.runner.Analyze(context.Background(), opts); err != nil {
			log.Printf("Analysis %s failed: %v", analysisID, err)
		}
	}()

	s.jsonResponse(w, http.StatusAccepted, UploadResponse{
		AnalysisID: analysisID,
		Status:     "processing",
	})
}

// handleUploadDocumentStream accepts a document and streams analysis
// progress via SSE, finishing with the completed record ID.
func (s *Server) handleUploadDocumentStream(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeUpload(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	opts := pipeline.RunOptions{
		Text:         req.Content,
		Filename:     req.Filename,
		DocumentType: types.DocumentType(req.DocumentType),
		OnProgress: func(event pipeline.ProgressEvent) {
			if err := sse.WriteEvent("step", event); err != nil {
				log.Printf("Error writing SSE event: %v", err)
			}
		},
	}

	analysis, err := s.runner.Analyze(r.Context(), opts)
	if err != nil {
		log.Printf("Streaming analysis failed: %v", err)
		sse.WriteError(err.Error())
		return
	}

	sse.WriteComplete(analysis.ID, string(analysis.Status))
}

// handleValidate runs a full analysis synchronously and returns the
// complete record without persisting intent beyond the registry entry.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeUpload(w, r)
	if !ok {
		return
	}

	analysis, err := s.runner.Analyze(r.Context(), pipeline.RunOptions{
		Text:         req.Content,
		Filename:     req.Filename,
		DocumentType: types.DocumentType(req.DocumentType),
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleGetDocument returns the analysis record for one document
func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, "Analysis ID is required")
		return
	}

	analysis, err := s.store.GetAnalysis(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if analysis == nil {
		s.errorResponse(w, http.StatusNotFound, "Analysis not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, analysis)
}

// handleListDocuments returns analysis records, newest first. Supports
// status, type, and limit query parameters.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	filters := db.AnalysisFilters{
		Status:       types.ProcessingStatus(r.URL.Query().Get("status")),
		DocumentType: types.DocumentType(r.URL.Query().Get("type")),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 0 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		filters.Limit = limit
	}

	analyses, err := s.store.ListAnalyses(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if analyses == nil {
		analyses = []types.DocumentAnalysis{}
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"documents": analyses,
		"count":     len(analyses),
	})
}

// handleDeleteDocument removes an analysis record
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, "Analysis ID is required")
		return
	}

	if err := s.store.DeleteAnalysis(r.Context(), id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			s.errorResponse(w, http.StatusNotFound, "Analysis not found")
			return
		}
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// handleGetReport assembles the compliance report for a completed
// analysis. ?format=text returns the console rendering.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		s.errorResponse(w, http.StatusBadRequest, "Analysis ID is required")
		return
	}

	analysis, err := s.store.GetAnalysis(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if analysis == nil {
		s.errorResponse(w, http.StatusNotFound, "Analysis not found")
		return
	}
	if analysis.Status != types.StatusCompleted {
		s.errorResponse(w, http.StatusConflict, "Analysis not completed: "+string(analysis.Status))
		return
	}

	rep := report.Build(analysis)

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(report.Format(rep))); err != nil {
			log.Printf("Error writing report: %v", err)
		}
		return
	}

	s.jsonResponse(w, http.StatusOK, rep)
}

// handleChecklist matches content against the regulatory checklist for a
// document type and lists companion documents still to be uploaded.
func (s *Server) handleChecklist(w http.ResponseWriter, r *http.Request) {
	var req ChecklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	docType := types.DocumentType(req.DocumentType)
	if !docType.Known() {
		s.errorResponse(w, http.StatusBadRequest, "Unknown document_type: "+req.DocumentType)
		return
	}

	resp := ChecklistResponse{
		DocumentType:     string(docType),
		MissingDocuments: validation.MissingDocuments(docType, req.UploadedDocuments),
	}

	if req.Content != "" {
		validator := validation.NewValidator(s.kb)
		result, err := validator.MatchChecklist(r.Context(), req.Content, docType)
		if err != nil {
			s.errorResponse(w, http.StatusServiceUnavailable, "Checklist matching unavailable: "+err.Error())
			return
		}
		resp.Checklist = result
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleKnowledgeStats reports per-collection counts for the knowledge base
func (s *Server) handleKnowledgeStats(w http.ResponseWriter, r *http.Request) {
	if s.kb == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Knowledge base not configured")
		return
	}

	s.jsonResponse(w, http.StatusOK, s.kb.Stats(r.Context()))
}

// handleSummaryStats aggregates statistics across completed analyses
func (s *Server) handleSummaryStats(w http.ResponseWriter, r *http.Request) {
	analyses, err := s.store.ListAnalyses(r.Context(), db.AnalysisFilters{
		Status: types.StatusCompleted,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, report.Summarize(analyses))
}
