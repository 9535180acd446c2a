// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tabular

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// Formats are the file formats raw input can be loaded from.
type Formats int32

const (
	JSON Formats = iota
	YAML
	CSV
	XLSX
)

var formatNames = [...]string{"json", "yaml", "csv", "xlsx"}

func (ft Formats) String() string {
	if ft >= 0 && int(ft) < len(formatNames) {
		return formatNames[ft]
	}
	return fmt.Sprintf("Formats(%d)", int32(ft))
}

// FormatFromPath returns the format implied by the file extension.
func FormatFromPath(path string) (Formats, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".csv":
		return CSV, nil
	case ".xlsx", ".xlsm":
		return XLSX, nil
	}
	return JSON, fmt.Errorf("tabular: unknown data file type %q", filepath.Ext(path))
}

// sniffSize is how much of a file [Sniff] looks at. Office documents
// are zip archives whose telling entries can sit a few KiB in.
const sniffSize = 8192

// Sniff guesses the format of raw input from its first bytes.
// Spreadsheets are recognized by their zip container, a leading
// brace or bracket means JSON, a comma in the first line means CSV,
// and anything else is read as YAML.
func Sniff(head []byte) (Formats, error) {
	kind, _ := filetype.Match(head)
	switch kind.Extension {
	case "xlsx", "zip":
		return XLSX, nil
	}
	if kind != filetype.Unknown {
		return JSON, fmt.Errorf("tabular: unsupported data file type %s", kind.MIME.Value)
	}
	text := bytes.TrimSpace(head)
	if len(text) > 0 && (text[0] == '{' || text[0] == '[') {
		return JSON, nil
	}
	line, _, _ := bytes.Cut(text, []byte("\n"))
	if bytes.ContainsRune(line, ',') {
		return CSV, nil
	}
	return YAML, nil
}

func sniffFile(path string) (Formats, error) {
	f, err := os.Open(path)
	if err != nil {
		return JSON, err
	}
	defer f.Close()
	head := make([]byte, sniffSize)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return JSON, err
	}
	return Sniff(head[:n])
}

// LoadFile reads raw input for [Normalize] from a JSON, YAML, CSV or
// XLSX file, chosen by extension. Files with an unknown extension are
// sniffed with [Sniff].
func LoadFile(path string) (any, error) {
	ft, err := FormatFromPath(path)
	if err != nil {
		ft, err = sniffFile(path)
		if err != nil {
			return nil, err
		}
	}
	if ft == XLSX {
		return loadXLSX(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	raw, err := Decode(f, ft)
	if err != nil {
		return nil, fmt.Errorf("tabular: %s: %w", path, err)
	}
	return raw, nil
}

// Decode reads raw input in the given format. CSV and spreadsheet
// input gives an array of records keyed by the header row.
func Decode(r io.Reader, ft Formats) (any, error) {
	var raw any
	switch ft {
	case JSON:
		err := json.NewDecoder(r).Decode(&raw)
		if err == io.EOF {
			return nil, nil
		}
		return raw, err
	case YAML:
		err := yaml.NewDecoder(r).Decode(&raw)
		if err == io.EOF {
			return nil, nil
		}
		return raw, err
	case CSV:
		rows, err := csv.NewReader(r).ReadAll()
		if err != nil {
			return nil, err
		}
		return rowsToRecords(rows), nil
	case XLSX:
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return sheetRecords(f)
	}
	return nil, fmt.Errorf("tabular: unsupported format %v", ft)
}

func loadXLSX(path string) (any, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return sheetRecords(f)
}

// sheetRecords returns the records of the first sheet.
func sheetRecords(f *excelize.File) (any, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return rowsToRecords(rows), nil
}

// rowsToRecords turns a header row plus data rows into an array of
// records keyed by header. Missing cells are left out of the record.
func rowsToRecords(rows [][]string) []any {
	if len(rows) == 0 {
		return nil
	}
	header := rows[0]
	recs := make([]any, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(map[string]any, len(header))
		for i, h := range header {
			if i < len(row) {
				rec[strings.TrimSpace(h)] = row[i]
			}
		}
		recs = append(recs, rec)
	}
	return recs
}
