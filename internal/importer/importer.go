package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"storefront-bff/internal/commercetools"
	"storefront-bff/internal/domain"
)

type ProductCreator interface {
	CreateProduct(ctx context.Context, in domain.ProductInput) (*commercetools.Product, error)
}

// CSVImporter reads commercetools-like CSV exports and creates the products upstream.
type CSVImporter struct {
	reader   *csv.Reader
	creator  ProductCreator
	typeKey  string
	dryRun   bool
	products []domain.ProductInput
}

func NewCSVImporter(r io.Reader, creator ProductCreator, productTypeKey string) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:  csvr,
		creator: creator,
		typeKey: productTypeKey,
	}
}

// DryRun parses and validates without creating anything. Parsed products are
// available from Parsed afterwards.
func (i *CSVImporter) DryRun() *CSVImporter {
	i.dryRun = true
	return i
}

func (i *CSVImporter) Parsed() []domain.ProductInput {
	return i.products
}

type csvRow struct {
	Key       string
	Name      string
	Desc      string
	Slug      string
	SKU       string
	Cents     *int64
	Currency  string
	ImageURLs []string
}

// Run parses CSV rows grouped by product key and creates one product per group.
// Continuation rows carrying a sku add a variant; rows with only an image
// attach it to the latest variant.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	var (
		current  *domain.ProductInput
		imported int
	)

	flush := func() error {
		if current == nil {
			return nil
		}
		if err := i.save(ctx, current); err != nil {
			return err
		}
		imported++
		return nil
	}

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}

		row := parseRow(record, index)
		if row == nil {
			continue
		}

		if row.Key != "" {
			if err := flush(); err != nil {
				return imported, err
			}
			current = i.newProduct(row)
			continue
		}
		if current == nil {
			continue
		}

		if row.SKU != "" {
			current.Variants = append(current.Variants, domain.VariantInput{
				SKU:          row.SKU,
				CentAmount:   row.Cents,
				CurrencyCode: row.Currency,
				Images:       images(row.ImageURLs),
			})
			continue
		}
		if n := len(current.Variants); n > 0 {
			current.Variants[n-1].Images = append(current.Variants[n-1].Images, images(row.ImageURLs)...)
		} else {
			current.Images = append(current.Images, images(row.ImageURLs)...)
		}
	}

	if err := flush(); err != nil {
		return imported, err
	}
	return imported, nil
}

func (i *CSVImporter) newProduct(row *csvRow) *domain.ProductInput {
	return &domain.ProductInput{
		Key:            row.Key,
		Name:           row.Name,
		Description:    row.Desc,
		Slug:           row.Slug,
		SKU:            row.SKU,
		CentAmount:     row.Cents,
		CurrencyCode:   row.Currency,
		Locale:         "en",
		ProductTypeKey: i.typeKey,
		Images:         images(row.ImageURLs),
	}
}

func (i *CSVImporter) save(ctx context.Context, in *domain.ProductInput) error {
	if in.Name == "" || in.SKU == "" || in.CentAmount == nil || in.CurrencyCode == "" {
		return fmt.Errorf("invalid product row (missing required fields) for key %q", in.Key)
	}
	i.products = append(i.products, *in)
	if i.dryRun {
		return nil
	}
	if _, err := i.creator.CreateProduct(ctx, *in); err != nil {
		return fmt.Errorf("create product %q: %w", in.Key, err)
	}
	return nil
}

func images(urls []string) []domain.ImageInput {
	if len(urls) == 0 {
		return nil
	}
	out := make([]domain.ImageInput, 0, len(urls))
	for _, u := range urls {
		out = append(out, domain.ImageInput{URL: u})
	}
	return out
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) *csvRow {
	key := pick(record, index, "key")
	sku := pick(record, index, "variants.sku")
	imageURL := pick(record, index, "variants.images.url")

	if key == "" && sku == "" && imageURL == "" {
		return nil
	}

	row := &csvRow{
		Key:      key,
		Name:     pick(record, index, "name.en"),
		Desc:     pick(record, index, "description.en"),
		Slug:     pick(record, index, "slug.en"),
		SKU:      sku,
		Currency: pick(record, index, "variants.prices.value.currencyCode"),
	}
	if centStr := pick(record, index, "variants.prices.value.centAmount"); centStr != "" {
		if cents, err := strconv.ParseInt(centStr, 10, 64); err == nil {
			row.Cents = &cents
		}
	}
	if imageURL != "" {
		row.ImageURLs = []string{imageURL}
	}
	return row
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
