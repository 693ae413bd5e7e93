package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/talentgraph/backend/gemini"
	"github.com/talentgraph/backend/models"
	"github.com/talentgraph/backend/storage"
	"github.com/talentgraph/backend/utils"
)

// JobHandler handles job ingestion and retrieval requests
type JobHandler struct {
	firestoreClient *storage.FirestoreClient
	storageClient   *storage.CloudStorageClient
	geminiClient    *gemini.Client
	extractor       *utils.DocumentExtractor
}

// NewJobHandler creates a new job handler
func NewJobHandler(
	firestoreClient *storage.FirestoreClient,
	storageClient *storage.CloudStorageClient,
	geminiClient *gemini.Client,
) *JobHandler {
	return &JobHandler{
		firestoreClient: firestoreClient,
		storageClient:   storageClient,
		geminiClient:    geminiClient,
		extractor:       utils.NewDocumentExtractor(),
	}
}

// Upload ingests a job description, either as a file upload or as a
// structured JSON payload
// @Summary Upload a job description
// @Description Upload a JD file or a structured job payload and store the extracted requirement
// @Tags Jobs
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file false "Job description file"
// @Param request body models.JobCreate false "Structured job payload (JSON)"
// @Success 201 {object} models.JobUploadResponse "Job created"
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 500 {object} models.ErrorResponse "Extraction or storage failed"
// @Router /jobs/upload [post]
func (h *JobHandler) Upload(c *gin.Context) {
	start := time.Now()

	var job *models.Job
	var original []byte
	var filename string

	if strings.Contains(c.ContentType(), "multipart/form-data") {
		file, header, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Job description file is required",
				Code:    http.StatusBadRequest,
				Details: err.Error(),
			})
			return
		}
		defer file.Close()

		content, err := h.extractor.ReadUpload(file)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Failed to read job description file",
				Code:    http.StatusBadRequest,
				Details: err.Error(),
			})
			return
		}

		text, err := h.extractor.ExtractText(content, header.Filename)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Failed to extract job description text",
				Code:    http.StatusBadRequest,
				Details: err.Error(),
			})
			return
		}

		job, err = h.geminiClient.ExtractJob(c.Request.Context(), text)
		if err != nil {
			log.Printf("[JobHandler] Extraction failed for %s: %v", header.Filename, err)
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Job description extraction failed",
				Code:    http.StatusBadRequest,
				Details: err.Error(),
			})
			return
		}

		original = content
		filename = header.Filename
	} else {
		var req models.JobCreate
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Invalid request body",
				Code:    http.StatusBadRequest,
				Details: err.Error(),
			})
			return
		}

		job = &models.Job{
			Title:               req.Title,
			Company:             req.Company,
			Location:            req.Location,
			ExperienceRequired:  req.ExperienceRequired,
			MinExperienceMonths: req.MinExperienceMonths,
			Description:         req.Description,
			MustHaveSkills:      req.MustHaveSkills,
			OptionalSkills:      req.OptionalSkills,
			JobType:             req.JobType,
			Salary:              req.Salary,
			EducationRequired:   req.EducationRequired,
			Responsibilities:    req.Responsibilities,
			Benefits:            req.Benefits,
		}
	}

	if err := h.firestoreClient.CreateJob(c.Request.Context(), job); err != nil {
		log.Printf("[JobHandler] Failed to store job: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to store job",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	if len(original) > 0 {
		if _, err := h.storageClient.UploadDocumentFromBytes(c.Request.Context(), "jobs", job.ID, original, filename); err != nil {
			log.Printf("[JobHandler] Failed to archive job description for %s: %v", job.ID, err)
		}
	}

	log.Printf("[JobHandler] Job created: %s (%s at %s)", job.ID, job.Title, job.Company)
	c.JSON(http.StatusCreated, models.JobUploadResponse{
		Success: true,
		Message: "Job description processed successfully",
		Data: models.JobUploadData{
			JobID:          job.ID,
			Title:          job.Title,
			Company:        job.Company,
			Location:       job.Location,
			Skills:         job.MustHaveSkills,
			Status:         job.Status,
			ProcessingTime: time.Since(start).Seconds(),
		},
	})
}

// List returns a page of stored jobs
// @Summary List jobs
// @Description List stored jobs ordered by creation time
// @Tags Jobs
// @Produce json
// @Param page query int false "Page number (1-based)" default(1)
// @Param page_size query int false "Page size" default(100)
// @Success 200 {object} models.JobListResponse "Page of jobs"
// @Failure 500 {object} models.ErrorResponse "Storage failure"
// @Router /jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	page, pageSize := paginationParams(c)

	jobs, err := h.firestoreClient.ListJobs(c.Request.Context(), (page-1)*pageSize, pageSize)
	if err != nil {
		log.Printf("[JobHandler] Failed to list jobs: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to list jobs",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	total, err := h.firestoreClient.CountJobs(c.Request.Context())
	if err != nil {
		log.Printf("[JobHandler] Failed to count jobs: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to count jobs",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, models.JobListResponse{
		Jobs:     jobs,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Get returns one job by id
// @Summary Get a job
// @Description Get a stored job by id
// @Tags Jobs
// @Produce json
// @Param id path string true "Job id"
// @Success 200 {object} models.Job "Job requirement"
// @Failure 404 {object} models.ErrorResponse "Job not found"
// @Router /jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.firestoreClient.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Job not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to get job",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// Delete removes one job by id
// @Summary Delete a job
// @Description Delete a stored job by id
// @Tags Jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job id"
// @Success 200 {object} models.DeleteResponse "Job deleted"
// @Failure 404 {object} models.ErrorResponse "Job not found"
// @Router /jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.firestoreClient.GetJob(c.Request.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error: "Job not found",
				Code:  http.StatusNotFound,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to get job",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	if err := h.firestoreClient.DeleteJob(c.Request.Context(), id); err != nil {
		log.Printf("[JobHandler] Failed to delete job %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: "Failed to delete job",
			Code:  http.StatusInternalServerError,
		})
		return
	}

	log.Printf("[JobHandler] Job deleted: %s", id)
	c.JSON(http.StatusOK, models.DeleteResponse{
		Success: true,
		Message: "Job deleted",
	})
}
