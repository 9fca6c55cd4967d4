package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
	catalogsvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/catalog"
)

type CatalogWriter interface {
	Create(ctx context.Context, in catalogsvc.CreateInput) (*domain.Sweet, error)
}

// CSVImporter reads a catalog CSV export and inserts the sweets it describes.
// Rows whose name already exists are skipped, which makes re-running the
// importer over the same file harmless.
type CSVImporter struct {
	reader  *csv.Reader
	catalog CatalogWriter
}

func NewCSVImporter(r io.Reader, catalog CatalogWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:  csvr,
		catalog: catalog,
	}
}

// Run parses CSV rows and creates sweets. It returns how many rows were
// imported and how many were skipped as duplicates.
func (i *CSVImporter) Run(ctx context.Context) (imported, skipped int, err error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, skipped, fmt.Errorf("read row: %w", err)
		}

		in, err := parseRow(record, index)
		if err != nil {
			return imported, skipped, err
		}
		if in == nil {
			continue
		}

		if _, err := i.catalog.Create(ctx, *in); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				skipped++
				continue
			}
			return imported, skipped, fmt.Errorf("create sweet %q: %w", in.Name, err)
		}
		imported++
	}

	return imported, skipped, nil
}

func parseRow(record []string, index map[string]int) (*catalogsvc.CreateInput, error) {
	name := field(record, index, "name")
	if name == "" {
		return nil, nil
	}

	price, err := intField(record, index, "pricePerKgPaise")
	if err != nil {
		return nil, fmt.Errorf("row %q: %w", name, err)
	}
	cost, err := intField(record, index, "costPerKgPaise")
	if err != nil {
		return nil, fmt.Errorf("row %q: %w", name, err)
	}
	stock, err := intField(record, index, "stockGrams")
	if err != nil {
		return nil, fmt.Errorf("row %q: %w", name, err)
	}
	threshold, err := intField(record, index, "lowStockThresholdGrams")
	if err != nil {
		return nil, fmt.Errorf("row %q: %w", name, err)
	}

	var tags []string
	if raw := field(record, index, "tags"); raw != "" {
		for _, t := range strings.Split(raw, "|") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}

	return &catalogsvc.CreateInput{
		Name:                   name,
		Category:               field(record, index, "category"),
		Description:            field(record, index, "description"),
		PricePerKgPaise:        price,
		CostPerKgPaise:         cost,
		StockGrams:             stock,
		LowStockThresholdGrams: threshold,
		Tags:                   tags,
	}, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func field(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func intField(record []string, index map[string]int, name string) (int64, error) {
	raw := field(record, index, name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return n, nil
}
