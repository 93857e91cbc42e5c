package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"balaji-storefront/internal/domain"
)

// Header is the column layout shared by the importer and WriteCSV.
var Header = []string{
	"id", "name", "description", "price", "originalPrice", "image", "category",
	"rating", "reviews", "inStock", "featured", "badge", "spec.name", "spec.value",
}

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) error
}

// CSVImporter reads catalog CSV files. A row with an id starts a product;
// following rows with an empty id add more specs to it.
type CSVImporter struct {
	reader   *csv.Reader
	products ProductWriter
}

func NewCSVImporter(r io.Reader, products ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:   csvr,
		products: products,
	}
}

type csvRow struct {
	product   domain.Product
	specName  string
	specValue string
	line      int
}

// Run parses CSV rows and upserts products grouped by id.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["id"]; !ok {
		return 0, fmt.Errorf("%w: missing id column", domain.ErrInvalidInput)
	}

	var (
		current  *domain.Product
		imported int
	)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)

		row, err := parseRow(record, index, line)
		if err != nil {
			return imported, err
		}
		if row == nil {
			continue
		}

		if row.product.ID != 0 {
			if current != nil {
				if err := i.save(ctx, current); err != nil {
					return imported, err
				}
				imported++
			}
			p := row.product
			addSpec(&p, row.specName, row.specValue)
			current = &p
			continue
		}

		// Continuation rows (specs) belong to the current product.
		if current == nil {
			return imported, fmt.Errorf("%w: line %d: spec row before any product", domain.ErrInvalidInput, row.line)
		}
		addSpec(current, row.specName, row.specValue)
	}

	if current != nil {
		if err := i.save(ctx, current); err != nil {
			return imported, err
		}
		imported++
	}

	return imported, nil
}

func (i *CSVImporter) save(ctx context.Context, p *domain.Product) error {
	if err := Validate(*p); err != nil {
		return err
	}
	if err := i.products.Upsert(ctx, *p); err != nil {
		return fmt.Errorf("upsert product %d: %w", p.ID, err)
	}
	return nil
}

// Validate checks the fields every catalog product needs.
func Validate(p domain.Product) error {
	switch {
	case p.ID <= 0:
		return fmt.Errorf("%w: product id must be positive", domain.ErrInvalidInput)
	case p.Name == "" || p.Category == "":
		return fmt.Errorf("%w: product %d: name and category are required", domain.ErrInvalidInput, p.ID)
	case p.Price <= 0:
		return fmt.Errorf("%w: product %d: price must be positive", domain.ErrInvalidInput, p.ID)
	case p.OriginalPrice != nil && *p.OriginalPrice < p.Price:
		return fmt.Errorf("%w: product %d: original price below price", domain.ErrInvalidInput, p.ID)
	case p.Rating < 0 || p.Rating > 5:
		return fmt.Errorf("%w: product %d: rating out of range", domain.ErrInvalidInput, p.ID)
	}
	switch p.Badge {
	case "", domain.BadgeNew, domain.BadgeSale, domain.BadgeHot:
	default:
		return fmt.Errorf("%w: product %d: unknown badge %q", domain.ErrInvalidInput, p.ID, p.Badge)
	}
	return nil
}

func addSpec(p *domain.Product, name, value string) {
	if name == "" {
		return
	}
	if p.Specs == nil {
		p.Specs = map[string]string{}
	}
	p.Specs[name] = value
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int, line int) (*csvRow, error) {
	idStr := pick(record, index, "id")
	specName := pick(record, index, "spec.name")
	specValue := pick(record, index, "spec.value")

	if idStr == "" && specName == "" {
		return nil, nil
	}
	row := &csvRow{specName: specName, specValue: specValue, line: line}
	if idStr == "" {
		return row, nil
	}

	bad := func(field string, err error) (*csvRow, error) {
		return nil, fmt.Errorf("%w: line %d: %s: %v", domain.ErrInvalidInput, line, field, err)
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return bad("id", err)
	}
	p := domain.Product{
		ID:          id,
		Name:        pick(record, index, "name"),
		Description: pick(record, index, "description"),
		Image:       pick(record, index, "image"),
		Category:    pick(record, index, "category"),
		Badge:       pick(record, index, "badge"),
	}
	if p.Price, err = parseInt(pick(record, index, "price")); err != nil {
		return bad("price", err)
	}
	if v := pick(record, index, "originalPrice"); v != "" {
		orig, err := parseInt(v)
		if err != nil {
			return bad("originalPrice", err)
		}
		p.OriginalPrice = &orig
	}
	if v := pick(record, index, "rating"); v != "" {
		if p.Rating, err = strconv.ParseFloat(v, 64); err != nil {
			return bad("rating", err)
		}
	}
	if v := pick(record, index, "reviews"); v != "" {
		if p.Reviews, err = strconv.Atoi(v); err != nil {
			return bad("reviews", err)
		}
	}
	if p.InStock, err = parseBool(pick(record, index, "inStock"), true); err != nil {
		return bad("inStock", err)
	}
	if p.Featured, err = parseBool(pick(record, index, "featured"), false); err != nil {
		return bad("featured", err)
	}
	row.product = p
	return row, nil
}

func parseInt(v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

func parseBool(v string, def bool) (bool, error) {
	if v == "" {
		return def, nil
	}
	return strconv.ParseBool(v)
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
