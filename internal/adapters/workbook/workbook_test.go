package workbook_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"travel_agency/internal/adapters/workbook"
	"travel_agency/internal/domain"
)

func TestRows_KeyedByHeader(t *testing.T) {
	f := excelize.NewFile()
	_ = f.SetSheetName("Sheet1", "Hotels")
	_ = f.SetSheetRow("Hotels", "A1", &[]any{"Name", " Destination ", "Price"})
	_ = f.SetSheetRow("Hotels", "A2", &[]any{"Caldera Suites", "Santorini", "310"})
	_ = f.SetSheetRow("Hotels", "A4", &[]any{"Riad Noor", "Marrakech"})
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	b, err := workbook.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer b.Close()

	rows, err := b.Rows("Hotels")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want 2 rows (blank skipped), got %d", len(rows))
	}
	if rows[0]["Destination"] != "Santorini" || rows[0]["Price"] != "310" {
		t.Fatalf("row 0: %v", rows[0])
	}
	if v, ok := rows[1]["Price"]; !ok || v != "" {
		t.Fatalf("short row not padded: %v", rows[1])
	}

	if _, err := b.Rows("FAQs"); !errors.Is(err, workbook.ErrNoSheet) {
		t.Fatalf("missing sheet: %v", err)
	}
}

func TestWriteEnquiries(t *testing.T) {
	phone := "+30 210 000 0000"
	es := []domain.Enquiry{
		{ID: 1, Name: "Alice", Email: "alice@example.com", Message: "Hello",
			CreatedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)},
		{ID: 2, Name: "Bob", Email: "bob@example.com", Phone: &phone, Message: "Rooms?", IsResolved: true},
	}
	var buf bytes.Buffer
	if err := workbook.WriteEnquiries(&buf, es); err != nil {
		t.Fatalf("write: %v", err)
	}

	b, err := workbook.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer b.Close()
	rows, err := b.Rows("Enquiries")
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("want 2 rows, got %d", len(rows))
	}
	if rows[0]["Email"] != "alice@example.com" || rows[0]["Received"] != "2024-03-01T09:30:00Z" || rows[0]["Resolved"] != "no" {
		t.Fatalf("row 0: %v", rows[0])
	}
	if rows[1]["Phone"] != phone || rows[1]["Resolved"] != "yes" {
		t.Fatalf("row 1: %v", rows[1])
	}
}
