package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/canvas-companion-api/internal/service"
	appErrors "github.com/noah-isme/canvas-companion-api/pkg/errors"
	"github.com/noah-isme/canvas-companion-api/pkg/export"
)

type fakeExporter struct {
	lastFormat export.Format
	result     *service.ExportResult
	err        error
}

func (f *fakeExporter) Grades(_ context.Context, format export.Format) (*service.ExportResult, error) {
	f.lastFormat = format
	return f.result, f.err
}

func (f *fakeExporter) Assignments(_ context.Context, format export.Format) (*service.ExportResult, error) {
	f.lastFormat = format
	return f.result, f.err
}

func getExport(t *testing.T, handler *ExportHandler, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)

	handler.Grades(c)
	return rec
}

func TestExportGradesStreamsAttachment(t *testing.T) {
	exporterSrv := &fakeExporter{result: &service.ExportResult{
		Filename:    "grades-2026-03-01.csv",
		ContentType: "text/csv",
		Content:     []byte("Course ID,Course\n101,Biology\n"),
	}}

	rec := getExport(t, NewExportHandler(exporterSrv), "/api/export/grades")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.FormatCSV, exporterSrv.lastFormat)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="grades-2026-03-01.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "Biology")
}

func TestExportGradesHonorsFormatQuery(t *testing.T) {
	exporterSrv := &fakeExporter{result: &service.ExportResult{
		Filename:    "grades-2026-03-01.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.4"),
	}}

	rec := getExport(t, NewExportHandler(exporterSrv), "/api/export/grades?format=pdf")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.FormatPDF, exporterSrv.lastFormat)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
}

func TestExportGradesSurfacesValidationError(t *testing.T) {
	exporterSrv := &fakeExporter{err: appErrors.Clone(appErrors.ErrValidation, `unsupported export format "xlsx"`)}

	rec := getExport(t, NewExportHandler(exporterSrv), "/api/export/grades?format=xlsx")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported export format")
}
