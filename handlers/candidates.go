package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/talentgraph/backend/config"
	"github.com/talentgraph/backend/gemini"
	"github.com/talentgraph/backend/models"
	"github.com/talentgraph/backend/storage"
	"github.com/talentgraph/backend/utils"
)

// ingestWorkers bounds concurrent resume downloads during bulk ingestion
const ingestWorkers = 5

// CandidateHandler handles candidate ingestion and retrieval requests
type CandidateHandler struct {
	firestoreClient *storage.FirestoreClient
	storageClient   *storage.CloudStorageClient
	geminiClient    *gemini.Client
	extractor       *utils.DocumentExtractor
	httpClient      *http.Client
	cfg             *config.Config
}

// NewCandidateHandler creates a new candidate handler
func NewCandidateHandler(
	firestoreClient *storage.FirestoreClient,
	storageClient *storage.CloudStorageClient,
	geminiClient *gemini.Client,
	cfg *config.Config,
) *CandidateHandler {
	return &CandidateHandler{
		firestoreClient: firestoreClient,
		storageClient:   storageClient,
		geminiClient:    geminiClient,
		extractor:       utils.NewDocumentExtractor(),
		httpClient:      utils.NewHTTPClient(time.Duration(cfg.HTTPTimeoutSeconds) * time.Second),
		cfg:             cfg,
	}
}

// Upload ingests a single resume file
// @Summary Upload a resume
// @Description Upload a resume (PDF, TXT, DOC, DOCX), extract a structured profile and store it
// @Tags Candidates
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Resume file"
// @Success 201 {object} models.CandidateUploadResponse "Candidate created"
// @Failure 400 {object} models.ErrorResponse "Invalid file"
// @Failure 500 {object} models.ErrorResponse "Extraction or storage failed"
// @Router /candidates/upload [post]
func (h *CandidateHandler) Upload(c *gin.Context) {
	start := time.Now()

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Resume file is required",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	if !h.extractor.IsSupportedFormat(header.Filename) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "Unsupported file format, use PDF, TXT, DOC or DOCX",
			Code:  http.StatusBadRequest,
		})
		return
	}

	content, err := h.extractor.ReadUpload(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Failed to read resume file",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	cand, err := h.extractCandidate(c.Request.Context(), content, header.Filename)
	if err != nil {
		log.Printf("[CandidateHandler] Extraction failed for %s: %v", header.Filename, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Resume extraction failed",
			Code:    http.StatusInternalServerError,
			Details: err.Error(),
		})
		return
	}

	if err := h.firestoreClient.CreateCandidate(c.Request.Context(), cand); err != nil {
		log.Printf("[CandidateHandler] Failed to store candidate: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to store candidate",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	// Archive the original document; the profile is already stored, so a
	// failed archive only costs the resume_url field.
	if url, err := h.storageClient.UploadDocumentFromBytes(c.Request.Context(), "resumes", cand.ID, content, header.Filename); err != nil {
		log.Printf("[CandidateHandler] Failed to archive resume for %s: %v", cand.ID, err)
	} else {
		cand.ResumeURL = url
	}

	log.Printf("[CandidateHandler] Candidate created: %s (%s)", cand.ID, cand.Name)
	c.JSON(http.StatusCreated, models.CandidateUploadResponse{
		Success: true,
		Message: "Resume processed successfully",
		Data: models.CandidateUploadData{
			CandidateID:    cand.ID,
			Name:           cand.Name,
			Location:       cand.Location,
			Skills:         cand.Skills,
			Status:         cand.Status,
			ProcessingTime: time.Since(start).Seconds(),
		},
	})
}

// BulkIngest ingests a batch of externally hosted resumes
// @Summary Bulk ingest resumes
// @Description Download, extract and store a batch of resumes referenced by URL
// @Tags Candidates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.BulkIngestRequest true "Bulk ingestion request"
// @Success 200 {object} models.BulkIngestResponse "Per-record ingestion results"
// @Failure 400 {object} models.ErrorResponse "Invalid request body or batch too large"
// @Router /candidates/bulk-ingest [post]
func (h *CandidateHandler) BulkIngest(c *gin.Context) {
	start := time.Now()

	var req models.BulkIngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Code:    http.StatusBadRequest,
			Details: err.Error(),
		})
		return
	}

	if len(req.Candidates) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: "At least one candidate record is required",
			Code:  http.StatusBadRequest,
		})
		return
	}
	if len(req.Candidates) > h.cfg.MaxBulkIngest {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: fmt.Sprintf("Batch exceeds the limit of %d records", h.cfg.MaxBulkIngest),
			Code:  http.StatusBadRequest,
		})
		return
	}

	results := make([]models.IngestResult, len(req.Candidates))

	var wg sync.WaitGroup
	sem := make(chan struct{}, ingestWorkers)

	for i, record := range req.Candidates {
		wg.Add(1)
		go func(i int, record models.CandidateS3Record) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = h.ingestOne(c.Request.Context(), record)
		}(i, record)
	}
	wg.Wait()

	successful := 0
	for _, r := range results {
		if r.Status == "success" {
			successful++
		}
	}

	log.Printf("[CandidateHandler] Bulk ingest finished: %d/%d successful in %.2fs",
		successful, len(req.Candidates), time.Since(start).Seconds())

	c.JSON(http.StatusOK, models.BulkIngestResponse{
		TotalSubmitted:        len(req.Candidates),
		Successful:            successful,
		Failed:                len(req.Candidates) - successful,
		Results:               results,
		ProcessingTimeSeconds: time.Since(start).Seconds(),
	})
}

func (h *CandidateHandler) ingestOne(ctx context.Context, record models.CandidateS3Record) models.IngestResult {
	result := models.IngestResult{CandidateID: record.CandidateID, Status: "failed"}

	content, err := utils.DownloadFile(ctx, h.httpClient, record.ResumeLink)
	if err != nil {
		result.Message = "Download failed"
		result.Error = err.Error()
		return result
	}

	cand, err := h.extractCandidate(ctx, content, record.ResumeLink)
	if err != nil {
		result.Message = "Extraction failed"
		result.Error = err.Error()
		return result
	}

	if err := h.firestoreClient.CreateCandidate(ctx, cand); err != nil {
		result.Message = "Storage failed"
		result.Error = err.Error()
		return result
	}

	if url, err := h.storageClient.UploadDocumentFromBytes(ctx, "resumes", cand.ID, content, record.ResumeLink); err != nil {
		log.Printf("[CandidateHandler] Failed to archive resume for %s: %v", cand.ID, err)
	} else {
		cand.ResumeURL = url
	}

	result.Status = "success"
	result.Message = "Candidate ingested"
	result.StoredCandidateID = cand.ID
	return result
}

// extractCandidate routes PDF content through the multimodal path and
// everything else through text extraction.
func (h *CandidateHandler) extractCandidate(ctx context.Context, content []byte, filename string) (*models.Candidate, error) {
	if h.extractor.IsPDF(content) {
		return h.geminiClient.ExtractCandidateFromPDF(ctx, content, filename)
	}

	text, err := h.extractor.ExtractText(content, filename)
	if err != nil {
		return nil, err
	}
	return h.geminiClient.ExtractCandidate(ctx, text)
}

// List returns a page of stored candidates
// @Summary List candidates
// @Description List stored candidates ordered by creation time
// @Tags Candidates
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param page_size query int false "Page size" default(100)
// @Success 200 {object} models.CandidateListResponse "Page of candidates"
// @Failure 500 {object} models.ErrorResponse "Storage failure"
// @Router /candidates [get]
func (h *CandidateHandler) List(c *gin.Context) {
	page, pageSize := paginationParams(c)

	candidates, err := h.firestoreClient.ListCandidates(c.Request.Context(), (page-1)*pageSize, pageSize)
	if err != nil {
		log.Printf("[CandidateHandler] Failed to list candidates: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to list candidates",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	total, err := h.firestoreClient.CountCandidates(c.Request.Context())
	if err != nil {
		log.Printf("[CandidateHandler] Failed to count candidates: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to count candidates",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, models.CandidateListResponse{
		Candidates: candidates,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
	})
}

// Get returns one candidate by id
// @Summary Get a candidate
// @Description Get a stored candidate by id
// @Tags Candidates
// @Produce json
// @Param id path string true "Candidate id"
// @Success 200 {object} models.Candidate "Candidate profile"
// @Failure 404 {object} models.ErrorResponse "Candidate not found"
// @Router /candidates/{id} [get]
func (h *CandidateHandler) Get(c *gin.Context) {
	cand, err := h.firestoreClient.GetCandidate(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Candidate not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to get candidate",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, cand)
}

// Delete removes one candidate by id
// @Summary Delete a candidate
// @Description Delete a stored candidate by id
// @Tags Candidates
// @Produce json
// @Security BearerAuth
// @Param id path string true "Candidate id"
// @Success 200 {object} models.DeleteResponse "Candidate deleted"
// @Failure 404 {object} models.ErrorResponse "Candidate not found"
// @Router /candidates/{id} [delete]
func (h *CandidateHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.firestoreClient.GetCandidate(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Candidate not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to get candidate",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	if err := h.firestoreClient.DeleteCandidate(c.Request.Context(), id); err != nil {
		log.Printf("[CandidateHandler] Failed to delete candidate %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to delete candidate",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	log.Printf("[CandidateHandler] Candidate deleted: %s", id)
	c.JSON(http.StatusOK, models.DeleteResponse{
		Success: true,
		Message: "Candidate deleted",
	})
}

// paginationParams parses the shared page/page_size query parameters
func paginationParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "100"))
	if pageSize < 1 || pageSize > 500 {
		pageSize = 100
	}
	return page, pageSize
}
