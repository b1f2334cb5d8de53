// Package excel seeds the problem catalog from spreadsheet exports. The
// catalog is read-only at runtime; this is the only writer.
package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/codereps/pkg/models"
)

// Expected columns, in order: slug, title, official difficulty,
// comma-separated tags.
const expectedColumns = 2 // slug and title are required

// ImportConfig controls where catalog rows are read from.
type ImportConfig struct {
	FilePath  string
	SheetName string
	StartRow  int // 1-based; rows before it are skipped
}

// DefaultImportConfig reads "Sheet1" and skips a single header row.
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:  path,
		SheetName: "Sheet1",
		StartRow:  2,
	}
}

// ImportResult summarizes an import run.
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// Store is the catalog access the importer needs.
type Store interface {
	Catalog(ctx context.Context) ([]models.Problem, error)
	UpsertProblem(ctx context.Context, p *models.Problem) error
}

// ImportProblems loads catalog entries from an .xlsx or .csv file,
// creating new problems and refreshing existing ones by slug.
func ImportProblems(ctx context.Context, store Store, config ImportConfig) (*ImportResult, error) {
	rows, err := readRows(config)
	if err != nil {
		return nil, err
	}

	existing, err := store.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing catalog: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, p := range existing {
		known[p.Slug] = true
	}

	result := &ImportResult{Errors: []string{}}
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++

		problem, err := parseRow(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		if err := store.UpsertProblem(ctx, problem); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		if known[problem.Slug] {
			result.Updated++
		} else {
			result.Created++
			known[problem.Slug] = true
		}
	}

	return result, nil
}

func readRows(config ImportConfig) ([][]string, error) {
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		return readCSV(config.FilePath)
	}
	return readExcel(config)
}

func readExcel(config ImportConfig) ([][]string, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(row []string) (*models.Problem, error) {
	if len(row) < expectedColumns {
		return nil, fmt.Errorf("expected at least %d columns, got %d", expectedColumns, len(row))
	}

	slug := strings.TrimSpace(row[0])
	title := strings.TrimSpace(row[1])
	if slug == "" || title == "" {
		return nil, fmt.Errorf("slug and title are required")
	}

	problem := &models.Problem{Slug: slug, Title: title, Tags: models.Tags{}}
	if len(row) > 2 {
		problem.OfficialDifficulty = strings.TrimSpace(row[2])
	}
	if len(row) > 3 {
		for _, tag := range strings.Split(row[3], ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				problem.Tags = append(problem.Tags, tag)
			}
		}
	}
	return problem, nil
}
