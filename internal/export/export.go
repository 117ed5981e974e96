// Package export renders audit log entries as downloadable artifacts.
package export

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/bobimat/workshop-tasks/internal/constants"
	apperrors "github.com/bobimat/workshop-tasks/internal/errors"
	model "github.com/bobimat/workshop-tasks/internal/models"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatCSV, FormatXLSX, FormatPDF:
		return f, nil
	}
	return "", apperrors.Validation("unsupported export format %q", s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// Columns is the fixed header of every artifact.
var Columns = []string{"Referencia", "Estado Anterior", "Estado Nuevo", "Usuario", "Fecha"}

type Artifact struct {
	FileName    string
	ContentType string
	Body        []byte
}

func FileName(dateRange constants.DateRange, f Format) string {
	return fmt.Sprintf("logs_%s.%s", dateRange, f)
}

// Renderer turns entries into artifacts, printing timestamps in Location.
type Renderer struct {
	Location *time.Location
}

func NewRenderer(loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{Location: loc}
}

func (r *Renderer) Render(entries []model.LogEntry, f Format, dateRange constants.DateRange) (*Artifact, error) {
	var write func(io.Writer, [][]string) error
	switch f {
	case FormatCSV:
		write = writeCSV
	case FormatXLSX:
		write = writeXLSX
	case FormatPDF:
		write = writePDF
	default:
		return nil, apperrors.Validation("unsupported export format %q", f)
	}

	var buf bytes.Buffer
	if err := write(&buf, r.Rows(entries)); err != nil {
		return nil, fmt.Errorf("render %s: %w", f, err)
	}

	return &Artifact{
		FileName:    FileName(dateRange, f),
		ContentType: f.ContentType(),
		Body:        buf.Bytes(),
	}, nil
}

// Rows returns the header followed by one row per entry.
func (r *Renderer) Rows(entries []model.LogEntry) [][]string {
	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, Columns)

	for _, entry := range entries {
		previous := "-"
		if entry.PreviousStatus != nil {
			previous = string(*entry.PreviousStatus)
		}

		rows = append(rows, []string{
			entry.TaskReference,
			previous,
			string(entry.NewStatus),
			entry.UserEmail,
			FormatTimestamp(entry.Timestamp.In(r.Location)),
		})
	}

	return rows
}

var monthsES = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

// FormatTimestamp prints t as "d MMM yyyy HH:mm" with Spanish month names.
func FormatTimestamp(t time.Time) string {
	return fmt.Sprintf("%d %s %d %02d:%02d", t.Day(), monthsES[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
