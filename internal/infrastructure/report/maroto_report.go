// Package report renders the admin's filtered attendance view as a PDF.
//
// A4 layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  Laporan Kehadiran — Portal Queenify Official               │
//	│  filter aktif + jumlah baris                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABEL: Tanggal | Jam | Nama | User ID | Event | Kategori | │
//	│         Catatan                                             │
//	└─────────────────────────────────────────────────────────────┘
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appattendance "github.com/queenify/attendance-portal/internal/application/attendance"
	domattendance "github.com/queenify/attendance-portal/internal/domain/attendance"
	"github.com/queenify/attendance-portal/internal/domain/entity"
)

var _ appattendance.ReportGenerator = (*MarotoGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 88, Green: 24, Blue: 105}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoGenerator implements attendance.ReportGenerator using Maroto v2.
type MarotoGenerator struct{}

// NewMarotoGenerator builds the generator.
func NewMarotoGenerator() *MarotoGenerator { return &MarotoGenerator{} }

// GenerateLogReport renders the filtered logs and returns the PDF bytes.
func (g *MarotoGenerator) GenerateLogReport(
	_ context.Context,
	view appattendance.FilteredView,
	criteria domattendance.FilterCriteria,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Laporan Kehadiran", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(text.NewRow(10, "Laporan Kehadiran — Portal Queenify Official", props.Text{
		Size: 14, Style: fontstyle.Bold, Align: align.Center, Color: colorPrimary,
	}))
	m.AddRows(text.NewRow(6, summaryLine(view, criteria), props.Text{
		Size: 8, Align: align.Center, Color: colorGray,
	}))
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, l := range view.Logs {
		m.AddRows(logRow(l, view.Directory))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate attendance report: %w", err)
	}
	return doc.GetBytes(), nil
}

func summaryLine(view appattendance.FilteredView, criteria domattendance.FilterCriteria) string {
	var active []string
	if criteria.Date != "" {
		active = append(active, "tanggal="+criteria.Date)
	}
	if criteria.UserID != "" {
		active = append(active, "user_id~"+criteria.UserID)
	}
	if criteria.Name != "" {
		active = append(active, "nama~"+criteria.Name)
	}
	filter := "tanpa filter"
	if len(active) > 0 {
		filter = strings.Join(active, ", ")
	}
	return fmt.Sprintf("%s — %d dari %d log", filter, len(view.Logs), view.Total)
}

func tableHeaderRow() core.Row {
	header := props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary}
	return row.New(7).Add(
		col.New(2).Add(text.New("Tanggal", header)),
		col.New(1).Add(text.New("Jam", header)),
		col.New(3).Add(text.New("Nama", header)),
		col.New(2).Add(text.New("User ID", header)),
		col.New(1).Add(text.New("Event", header)),
		col.New(1).Add(text.New("Kategori", header)),
		col.New(2).Add(text.New("Catatan", header)),
	)
}

func logRow(l entity.AttendanceLog, directory []entity.UserProfile) core.Row {
	cell := props.Text{Size: 8}
	date, clock := formatTimestamp(l.Timestamp)
	return row.New(6).Add(
		col.New(2).Add(text.New(date, cell)),
		col.New(1).Add(text.New(clock, cell)),
		col.New(3).Add(text.New(domattendance.ResolveName(l.UserIDString(), directory), cell)),
		col.New(2).Add(text.New(l.UserIDString(), cell)),
		col.New(1).Add(text.New(shortEvent(l.EventType), cell)),
		col.New(1).Add(text.New(l.Category, cell)),
		col.New(2).Add(text.New(l.Notes, cell)),
	)
}

// formatTimestamp splits an ISO timestamp into date and clock parts; a broken
// timestamp is printed as-is so the row is still traceable.
func formatTimestamp(ts string) (string, string) {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts, ""
	}
	lt := t.UTC()
	return lt.Format("2 Jan 2006"), lt.Format("15:04")
}

func shortEvent(eventType string) string {
	switch eventType {
	case entity.EventCheckIn:
		return "IN"
	case entity.EventCheckOut:
		return "OUT"
	}
	return eventType
}
