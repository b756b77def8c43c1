package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/andresuchdata/autoorder/internal/domain"
)

const (
	colID            = "id"
	colName          = "name"
	colCategory      = "category"
	colSupplier      = "supplier"
	colCurrentStock  = "currentstock"
	colParLevel      = "parlevel"
	colReorderPoint  = "reorderpoint"
	colUnitPrice     = "unitprice"
	colUnitOfMeasure = "unitofmeasure"
	colAutoOrder     = "autoorderenabled"
	colLastOrderDate = "lastorderdate"
)

var requiredColumns = []string{
	colID, colName, colCategory, colSupplier,
	colCurrentStock, colParLevel, colReorderPoint, colUnitPrice,
}

// Header aliases seen in exported spreadsheets.
var columnAliases = map[string]string{
	"sku":          colID,
	"productid":    colID,
	"productname":  colName,
	"product":      colName,
	"stock":        colCurrentStock,
	"onhand":       colCurrentStock,
	"par":          colParLevel,
	"reorder":      colReorderPoint,
	"reorderlevel": colReorderPoint,
	"price":        colUnitPrice,
	"unitcost":     colUnitPrice,
	"uom":          colUnitOfMeasure,
	"unit":         colUnitOfMeasure,
	"autoorder":    colAutoOrder,
	"lastordered":  colLastOrderDate,
}

var dateLayouts = []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05", "01/02/2006"}

// ParseCSV reads a catalog from CSV. The first row must be a header.
func ParseCSV(r io.Reader) ([]domain.Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return []domain.Product{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	dec, err := newRowDecoder(header)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0)
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record on line %d: %w", line, err)
		}
		if isBlank(record) {
			continue
		}

		p, err := dec.decode(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		products = append(products, p)
	}

	return products, nil
}

// ParseXLSX reads a catalog from the first sheet of an XLSX workbook.
func ParseXLSX(r io.Reader) ([]domain.Product, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx workbook has no sheets")
	}
	sheet := sheets[0]

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return []domain.Product{}, nil
	}

	dec, err := newRowDecoder(rows[0])
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(rows)-1)
	for i, record := range rows[1:] {
		if isBlank(record) {
			continue
		}
		p, err := dec.decode(record)
		if err != nil {
			return nil, fmt.Errorf("sheet %s row %d: %w", sheet, i+2, err)
		}
		products = append(products, p)
	}

	return products, nil
}

type rowDecoder struct {
	colMap map[string]int
}

func newRowDecoder(header []string) (*rowDecoder, error) {
	colMap := make(map[string]int, len(header))
	for i, col := range header {
		key := canonicalColumn(col)
		if key == "" {
			continue
		}
		if _, dup := colMap[key]; !dup {
			colMap[key] = i
		}
	}

	for _, col := range requiredColumns {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return &rowDecoder{colMap: colMap}, nil
}

func (d *rowDecoder) field(record []string, col string) string {
	i, ok := d.colMap[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func (d *rowDecoder) decode(record []string) (domain.Product, error) {
	p := domain.Product{
		ID:            d.field(record, colID),
		Name:          d.field(record, colName),
		Category:      d.field(record, colCategory),
		Supplier:      d.field(record, colSupplier),
		UnitOfMeasure: d.field(record, colUnitOfMeasure),
	}
	if p.ID == "" {
		return p, fmt.Errorf("empty %s", colID)
	}

	var err error
	if p.CurrentStock, err = parseQuantity(d.field(record, colCurrentStock), "current_stock"); err != nil {
		return p, err
	}
	if p.ParLevel, err = parseQuantity(d.field(record, colParLevel), "par_level"); err != nil {
		return p, err
	}
	if p.ReorderPoint, err = parseQuantity(d.field(record, colReorderPoint), "reorder_point"); err != nil {
		return p, err
	}

	price := strings.TrimPrefix(d.field(record, colUnitPrice), "$")
	if p.UnitPrice, err = decimal.NewFromString(strings.ReplaceAll(price, ",", "")); err != nil {
		return p, fmt.Errorf("invalid unit_price %q: %w", price, err)
	}

	if p.AutoOrderEnabled, err = parseFlag(d.field(record, colAutoOrder)); err != nil {
		return p, err
	}

	if raw := d.field(record, colLastOrderDate); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return p, err
		}
		p.LastOrderDate = &t
	}

	return p, nil
}

func parseQuantity(raw, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return v, nil
}

func parseFlag(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "", "0", "n", "no", "false", "off":
		return false, nil
	case "1", "y", "yes", "true", "on":
		return true, nil
	}
	return false, fmt.Errorf("invalid auto_order_enabled %q", raw)
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid last_order_date %q", raw)
}

// canonicalColumn lowercases a header and drops everything but letters and digits,
// so "Current Stock", "current_stock" and "currentStock" all match.
func canonicalColumn(col string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(col) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	key := b.String()
	if alias, ok := columnAliases[key]; ok {
		return alias
	}
	return key
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
