// Copyright © 2025 Cloctui contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cloc/parse.go
// Summary: Parses cloc's JSON output into header, summary and file records.

package cloc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"cloctui/stats"
)

// Reserved top-level keys. Every other key is a file path. cloc itself
// emits "SUM"; "summary-total" is accepted for forks that rename it.
const (
	keyHeader = "header"
	keySum    = "SUM"
	keySumAlt = "summary-total"
)

type rawHeader struct {
	ClocVersion    string  `json:"cloc_version"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	NFiles         int     `json:"n_files"`
	NLines         int     `json:"n_lines"`
}

type rawSummary struct {
	Blank   *int `json:"blank"`
	Comment *int `json:"comment"`
	Code    *int `json:"code"`
	NFiles  *int `json:"nFiles"`
}

type rawFile struct {
	Blank    *int   `json:"blank"`
	Comment  *int   `json:"comment"`
	Code     *int   `json:"code"`
	Language string `json:"language"`
}

// Parse decodes raw cloc output into a complete ScanResult. File entries
// are consumed in emission order, which the result preserves. An output
// with no file entries is valid: scanning an empty directory is not an
// error. Anything structurally off is a MalformedResultError.
func Parse(raw []byte) (*stats.ScanResult, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, &MalformedResultError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &MalformedResultError{Reason: "top-level value is not an object"}
	}

	var (
		header  *rawHeader
		summary *rawSummary
		files   []stats.FileStat
	)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, &MalformedResultError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, &MalformedResultError{Reason: "non-string object key"}
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, &MalformedResultError{Reason: fmt.Sprintf("entry %q: %v", key, err)}
		}

		switch key {
		case keyHeader:
			var h rawHeader
			if err := json.Unmarshal(value, &h); err != nil {
				return nil, &MalformedResultError{Reason: fmt.Sprintf("header: %v", err)}
			}
			header = &h
		case keySum, keySumAlt:
			if summary != nil && key == keySumAlt {
				continue // SUM already seen, it wins
			}
			var s rawSummary
			if err := json.Unmarshal(value, &s); err != nil {
				return nil, &MalformedResultError{Reason: fmt.Sprintf("summary: %v", err)}
			}
			if s.Blank == nil || s.Comment == nil || s.Code == nil {
				return nil, &MalformedResultError{Reason: "summary entry is missing numeric fields"}
			}
			summary = &s
		default:
			var f rawFile
			if err := json.Unmarshal(value, &f); err != nil {
				return nil, &MalformedResultError{Reason: fmt.Sprintf("file entry %q: %v", key, err)}
			}
			if f.Blank == nil || f.Comment == nil || f.Code == nil {
				return nil, &MalformedResultError{
					Reason: fmt.Sprintf("file entry %q is missing numeric fields", key),
				}
			}
			files = append(files, stats.FileStat{
				Path:     key,
				Language: f.Language,
				Blank:    *f.Blank,
				Comment:  *f.Comment,
				Code:     *f.Code,
			})
		}
	}

	if tok, err := dec.Token(); err != nil && err != io.EOF {
		return nil, &MalformedResultError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	} else if delim, ok := tok.(json.Delim); err == nil && (!ok || delim != '}') {
		return nil, &MalformedResultError{Reason: "trailing data after result object"}
	}

	if header == nil {
		return nil, &MalformedResultError{Reason: "reserved key \"header\" is absent"}
	}
	if summary == nil {
		return nil, &MalformedResultError{Reason: "reserved summary key is absent"}
	}

	runHeader := stats.RunHeader{
		ToolVersion:    header.ClocVersion,
		ElapsedSeconds: header.ElapsedSeconds,
		FileCount:      header.NFiles,
		LineCount:      header.NLines,
	}
	sum := stats.SummaryStat{
		Blank:   *summary.Blank,
		Comment: *summary.Comment,
		Code:    *summary.Code,
	}
	if summary.NFiles != nil {
		sum.FileCount = *summary.NFiles
	}
	return stats.NewScanResult(runHeader, sum, files), nil
}
