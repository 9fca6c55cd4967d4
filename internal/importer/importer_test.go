package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/masoombaba16/Sweet-Shop-Management/internal/domain"
	catalogsvc "github.com/masoombaba16/Sweet-Shop-Management/internal/service/catalog"
)

type stubCatalog struct {
	created  []catalogsvc.CreateInput
	existing map[string]bool
}

func (s *stubCatalog) Create(_ context.Context, in catalogsvc.CreateInput) (*domain.Sweet, error) {
	if s.existing[in.Name] {
		return nil, domain.ErrAlreadyExists
	}
	s.created = append(s.created, in)
	return &domain.Sweet{Name: in.Name}, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `name,category,description,pricePerKgPaise,costPerKgPaise,stockGrams,lowStockThresholdGrams,tags
Kaju Katli,dry-fruit,Cashew diamonds,120000,80000,20000,5000,bestseller|festive
Rasgulla,bengali,Chhena in syrup,45000,25000,15000,,syrup
,,,,,,,
Kalakand,milk,Milk cake,55000,32000,10000,4000,`

	catalog := &stubCatalog{}
	imp := NewCSVImporter(strings.NewReader(csvData), catalog)

	imported, skipped, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if imported != 3 || skipped != 0 {
		t.Fatalf("expected 3 imported, got imported=%d skipped=%d", imported, skipped)
	}

	first := catalog.created[0]
	if first.Name != "Kaju Katli" || first.PricePerKgPaise != 120000 || first.StockGrams != 20000 {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if len(first.Tags) != 2 || first.Tags[0] != "bestseller" || first.Tags[1] != "festive" {
		t.Fatalf("tags not split: %v", first.Tags)
	}
	if len(catalog.created[2].Tags) != 0 {
		t.Fatalf("expected no tags, got %v", catalog.created[2].Tags)
	}
}

func TestCSVImporter_SkipsDuplicates(t *testing.T) {
	csvData := `name,category,pricePerKgPaise,stockGrams
Kaju Katli,dry-fruit,120000,20000
Rasgulla,bengali,45000,15000`

	catalog := &stubCatalog{existing: map[string]bool{"Kaju Katli": true}}
	imp := NewCSVImporter(strings.NewReader(csvData), catalog)

	imported, skipped, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if imported != 1 || skipped != 1 {
		t.Fatalf("expected 1 imported 1 skipped, got %d/%d", imported, skipped)
	}
}

func TestCSVImporter_BadNumber(t *testing.T) {
	csvData := `name,pricePerKgPaise
Kaju Katli,not-a-number`

	imp := NewCSVImporter(strings.NewReader(csvData), &stubCatalog{})
	if _, _, err := imp.Run(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
}
