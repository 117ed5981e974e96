package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/bobimat/workshop-tasks/internal/constants"
	apperrors "github.com/bobimat/workshop-tasks/internal/errors"
	model "github.com/bobimat/workshop-tasks/internal/models"
)

func sampleEntries() []model.LogEntry {
	return []model.LogEntry{
		{
			TaskReference:  "T-100",
			PreviousStatus: constants.StatusWorkshop.Ptr(),
			NewStatus:      constants.StatusAwaitingPart,
			UserEmail:      "ana@bobimat.es",
			Timestamp:      time.Date(2024, 9, 5, 14, 7, 0, 0, time.UTC),
		},
		{
			TaskReference: "T-200",
			NewStatus:     constants.StatusWorkshop,
			UserEmail:     "luis@bobimat.es",
			Timestamp:     time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC),
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("xlsx")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	_, err = ParseFormat("docx")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "5 sept 2024 14:07", FormatTimestamp(time.Date(2024, 9, 5, 14, 7, 0, 0, time.UTC)))
	assert.Equal(t, "31 dic 2023 23:59", FormatTimestamp(time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC)))
}

func TestRenderCSV(t *testing.T) {
	artifact, err := NewRenderer(time.UTC).Render(sampleEntries(), FormatCSV, constants.RangeLast30Days)
	require.NoError(t, err)

	assert.Equal(t, "logs_last30days.csv", artifact.FileName)
	assert.Equal(t, "text/csv; charset=utf-8", artifact.ContentType)

	want := strings.Join([]string{
		"Referencia,Estado Anterior,Estado Nuevo,Usuario,Fecha",
		"T-100,Taller,Pendiente de repuesto,ana@bobimat.es,5 sept 2024 14:07",
		"T-200,-,Taller,luis@bobimat.es,15 ene 2024 08:30",
		"",
	}, "\n")
	assert.Equal(t, want, string(artifact.Body))
}

func TestRenderUsesLocation(t *testing.T) {
	madrid := time.FixedZone("CEST", 2*60*60)

	rows := NewRenderer(madrid).Rows(sampleEntries()[:1])
	assert.Equal(t, "5 sept 2024 16:07", rows[1][4])
}

func TestRenderXLSX(t *testing.T) {
	artifact, err := NewRenderer(nil).Render(sampleEntries(), FormatXLSX, constants.RangeLast7Days)
	require.NoError(t, err)
	assert.Equal(t, "logs_last7days.xlsx", artifact.FileName)

	f, err := excelize.OpenReader(bytes.NewReader(artifact.Body))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "-", rows[2][1])
}

func TestRenderPDF(t *testing.T) {
	entries := make([]model.LogEntry, 0, 120)
	for i := 0; i < 60; i++ {
		entries = append(entries, sampleEntries()...)
	}

	artifact, err := NewRenderer(time.UTC).Render(entries, FormatPDF, constants.RangeLastYear)
	require.NoError(t, err)

	assert.Equal(t, "logs_lastYear.pdf", artifact.FileName)
	assert.True(t, bytes.HasPrefix(artifact.Body, []byte("%PDF-")))
}
