package echo

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/rental-import/internal/application/importing"
	domain "github.com/mohammadpnp/rental-import/internal/domain/importing"
)

type ImportHandler struct {
	startImport app.StartImport
	getJob      app.GetImportJob
	listJobs    app.ListImportJobs
	stats       app.GetImportStats
	poller      *app.Poller
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiResponse struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

func NewImportHandler(startImport app.StartImport, getJob app.GetImportJob, listJobs app.ListImportJobs, stats app.GetImportStats, poller *app.Poller) *ImportHandler {
	return &ImportHandler{
		startImport: startImport,
		getJob:      getJob,
		listJobs:    listJobs,
		stats:       stats,
		poller:      poller,
	}
}

// StartImport accepts a multipart form with the raw file and its
// import type, stages the file and returns the pending job id.
func (h *ImportHandler) StartImport(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "file is required",
		}})
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "could not read uploaded file",
		}})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "bad_request",
			Message: "could not read uploaded file",
		}})
	}

	out, err := h.startImport.Execute(c.Request().Context(), app.StartImportInput{
		FileName: fileHeader.Filename,
		Kind:     c.FormValue("import_type"),
		Data:     data,
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidImportFile) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_file",
				Message: "file must be a non-empty .csv",
			}})
		}
		if errors.Is(err, app.ErrInvalidImportKind) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_import_type",
				Message: "import_type must be one of agreement, payment, installment, transaction",
			}})
		}
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to start import",
		}})
	}

	return c.JSON(http.StatusAccepted, apiResponse{Data: out})
}

func (h *ImportHandler) GetImportJob(c echo.Context) error {
	out, err := h.getJob.Execute(c.Request().Context(), app.GetImportJobInput{ID: c.Param("id")})
	if err != nil {
		return h.jobError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

// WaitImportJob blocks until the job reaches a terminal state or the
// poll ceiling elapses. A timeout produces a response distinct from a
// job that finished with status "error".
func (h *ImportHandler) WaitImportJob(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	out, err := h.getJob.Execute(ctx, app.GetImportJobInput{ID: id})
	if err != nil {
		return h.jobError(c, err)
	}
	if domain.Status(out.Status).Terminal() {
		return c.JSON(http.StatusOK, apiResponse{Data: out})
	}

	var watchErr error
	h.poller.Watch(ctx, id, func(domain.ImportJob) {}, func(err error) { watchErr = err })

	if watchErr != nil && errors.Is(watchErr, app.ErrPollTimeout) {
		return c.JSON(http.StatusGatewayTimeout, apiResponse{Error: &errorBody{
			Code:    "timeout",
			Message: "Import timed out",
		}})
	}

	out, err = h.getJob.Execute(ctx, app.GetImportJobInput{ID: id})
	if err != nil {
		return h.jobError(c, err)
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) ListImportJobs(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	out, err := h.listJobs.Execute(c.Request().Context(), app.ListImportJobsInput{Limit: limit})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to list import jobs",
		}})
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

func (h *ImportHandler) GetImportStats(c echo.Context) error {
	out, err := h.stats.Execute(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to load import stats",
		}})
	}
	return c.JSON(http.StatusOK, apiResponse{Data: out})
}

// DownloadTemplate serves the expected header row for an import kind.
func (h *ImportHandler) DownloadTemplate(c echo.Context) error {
	kind, err := domain.KindFrom(c.Param("kind"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "invalid_import_type",
			Message: "unknown import type",
		}})
	}

	schema, err := domain.SchemaFor(kind)
	if err != nil {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "invalid_import_type",
			Message: "unknown import type",
		}})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s_import_template.csv", kind))
	return c.Blob(http.StatusOK, "text/csv", []byte(strings.Join(schema.RequiredHeaders(), ",")+"\n"))
}

func (h *ImportHandler) jobError(c echo.Context, err error) error {
	if errors.Is(err, app.ErrInvalidJobID) {
		return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
			Code:    "invalid_job_id",
			Message: "id must be a valid UUID",
		}})
	}
	if errors.Is(err, app.ErrJobNotFound) {
		return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
			Code:    "not_found",
			Message: "import job not found",
		}})
	}
	return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
		Code:    "internal_error",
		Message: "failed to get import job",
	}})
}
