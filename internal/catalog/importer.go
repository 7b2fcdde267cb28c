package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportConfig describes where word fields live in a spreadsheet or CSV file.
type ImportConfig struct {
	FilePath            string
	SheetName           string // empty = first sheet
	GreekColumn         string
	EnglishColumn       string
	PronunciationColumn string
	GroupColumn         string
	StartRow            int // 1-based; rows before it are headers
}

// DefaultImportConfig returns the column layout greek | english | pronunciation | group
// with one header row.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		GreekColumn:         "A",
		EnglishColumn:       "B",
		PronunciationColumn: "C",
		GroupColumn:         "D",
		StartRow:            2,
	}
}

// ImportResult summarizes an import run.
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// ImportWords reads vocabulary rows from an .xlsx or .csv file.
// Rows with bad fields are reported in ImportResult.Errors and skipped.
func ImportWords(cfg ImportConfig) ([]Word, *ImportResult, error) {
	cols, err := cfg.columnIndexes()
	if err != nil {
		return nil, nil, err
	}

	var rows [][]string
	if strings.ToLower(filepath.Ext(cfg.FilePath)) == ".csv" {
		rows, err = readCSV(cfg.FilePath)
	} else {
		rows, err = readSheet(cfg.FilePath, cfg.SheetName)
	}
	if err != nil {
		return nil, nil, err
	}

	start := cfg.StartRow
	if start < 1 {
		start = 1
	}

	res := &ImportResult{}
	var words []Word
	for i, row := range rows {
		if i < start-1 {
			continue
		}
		if isBlank(row) {
			continue
		}
		res.TotalProcessed++

		w, err := parseRow(row, cols)
		if err != nil {
			res.Skipped++
			res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		words = append(words, w)
		res.Imported++
	}
	return words, res, nil
}

type columnIndexes struct {
	greek, english, pronunciation, group int
}

func (cfg ImportConfig) columnIndexes() (columnIndexes, error) {
	var ci columnIndexes
	for _, c := range []struct {
		name string
		dst  *int
	}{
		{cfg.GreekColumn, &ci.greek},
		{cfg.EnglishColumn, &ci.english},
		{cfg.PronunciationColumn, &ci.pronunciation},
		{cfg.GroupColumn, &ci.group},
	} {
		n, err := excelize.ColumnNameToNumber(c.name)
		if err != nil {
			return ci, fmt.Errorf("column %q: %w", c.name, err)
		}
		*c.dst = n - 1
	}
	return ci, nil
}

func readSheet(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("spreadsheet has no sheets")
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func parseRow(row []string, ci columnIndexes) (Word, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	w := Word{
		Greek:         cell(ci.greek),
		English:       cell(ci.english),
		Pronunciation: cell(ci.pronunciation),
	}
	if w.Greek == "" {
		return Word{}, errors.New("greek spelling is empty")
	}
	if w.Pronunciation == "" {
		return Word{}, errors.New("pronunciation is empty")
	}
	g, err := strconv.Atoi(cell(ci.group))
	if err != nil || g < 1 {
		return Word{}, fmt.Errorf("invalid group %q", cell(ci.group))
	}
	w.Group = g
	return w, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
