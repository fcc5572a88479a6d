package storage

import (
	"encoding/json"
	"io"
	"os"
)

type ExportData struct {
	Meta  RunMetadata `json:"meta"`
	Steps int         `json:"steps"`
	Trace []TraceRow  `json:"trace"`
}

func ExportJSON(path string, meta RunMetadata, rows []TraceRow) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, rows)
}

func WriteJSON(w io.Writer, meta RunMetadata, rows []TraceRow) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Meta: meta, Steps: len(rows), Trace: rows})
}
