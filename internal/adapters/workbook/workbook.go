// Package workbook reads seed catalogs from and exports enquiries to .xlsx files.
package workbook

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"travel_agency/internal/domain"
)

var ErrNoSheet = errors.New("sheet not found")

type Book struct{ f *excelize.File }

func Open(path string) (*Book, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Book{f: f}, nil
}

func OpenReader(r io.Reader) (*Book, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Book{f: f}, nil
}

func (b *Book) Close() error { return b.f.Close() }

// Rows returns the data rows of sheet keyed by the header row. Blank rows
// are skipped and short rows are padded with "".
func (b *Book) Rows(sheet string) ([]map[string]string, error) {
	if idx, err := b.f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoSheet, sheet)
	}
	rows, err := b.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		m := make(map[string]string, len(header))
		for i, h := range header {
			h = strings.TrimSpace(h)
			if h == "" {
				continue
			}
			if i < len(row) {
				m[h] = row[i]
			} else {
				m[h] = ""
			}
		}
		out = append(out, m)
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

var enquiryHeader = []any{"ID", "Received", "Name", "Email", "Phone", "Subject", "Message", "Resolved", "Resolution note"}

// WriteEnquiries renders es as a single-sheet workbook.
func WriteEnquiries(w io.Writer, es []domain.Enquiry) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Enquiries"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, "A1", &enquiryHeader); err != nil {
		return err
	}
	for i, e := range es {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			e.ID,
			e.CreatedAt.UTC().Format(time.RFC3339),
			e.Name,
			e.Email,
			deref(e.Phone),
			deref(e.Subject),
			e.Message,
			yesNo(e.IsResolved),
			deref(e.ResolutionNote),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}
	_, err := f.WriteTo(w)
	return err
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
