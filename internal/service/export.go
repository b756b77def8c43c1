package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/andresuchdata/autoorder/internal/domain"
)

const candidatesSheet = "Pending Orders"

var candidateHeader = []string{
	"Product ID", "Name", "Category", "Supplier", "Current Stock", "Par Level",
	"Reorder Point", "Order Quantity", "Unit", "Unit Price", "Estimated Cost",
}

// ExportCandidatesCSV writes the pending orders for the criteria as CSV.
func (s *ReplenishmentService) ExportCandidatesCSV(ctx context.Context, criteria domain.FilterCriteria, w io.Writer) (int, error) {
	candidates, err := s.GetCandidates(ctx, criteria)
	if err != nil {
		return 0, err
	}
	return len(candidates), WriteCandidatesCSV(w, candidates)
}

// ExportCandidatesXLSX writes the pending orders for the criteria as a workbook.
func (s *ReplenishmentService) ExportCandidatesXLSX(ctx context.Context, criteria domain.FilterCriteria, w io.Writer) (int, error) {
	candidates, err := s.GetCandidates(ctx, criteria)
	if err != nil {
		return 0, err
	}
	return len(candidates), WriteCandidatesXLSX(w, candidates)
}

func WriteCandidatesCSV(w io.Writer, candidates []domain.OrderCandidate) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(candidateHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, c := range candidates {
		if err := writer.Write(candidateRecord(c)); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", c.ID, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func WriteCandidatesXLSX(w io.Writer, candidates []domain.OrderCandidate) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", candidatesSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(candidateHeader))
	for i, h := range candidateHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(candidatesSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}

	for i, c := range candidates {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			c.ID, c.Name, c.Category, c.Supplier,
			c.CurrentStock, c.ParLevel, c.ReorderPoint, c.OrderQuantity,
			c.UnitOfMeasure, c.UnitPrice.InexactFloat64(), c.EstimatedCost.InexactFloat64(),
		}
		if err := f.SetSheetRow(candidatesSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write xlsx row for %s: %w", c.ID, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

// Quantities are written unchanged, negative values included.
func candidateRecord(c domain.OrderCandidate) []string {
	return []string{
		c.ID,
		c.Name,
		c.Category,
		c.Supplier,
		formatQuantity(c.CurrentStock),
		formatQuantity(c.ParLevel),
		formatQuantity(c.ReorderPoint),
		formatQuantity(c.OrderQuantity),
		c.UnitOfMeasure,
		c.UnitPrice.StringFixed(2),
		c.EstimatedCost.StringFixed(2),
	}
}

func formatQuantity(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
