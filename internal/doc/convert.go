package doc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/logicossoftware/go-odf/internal/office"
)

// ConversionResult reports a single conversion attempt. Failures are
// data, not errors: a batch run keeps going past files the office suite
// rejects, and the caller reads Success per file.
type ConversionResult struct {
	SourcePath   string `json:"source_path"`
	TargetPath   string `json:"target_path"`
	SourceFormat string `json:"source_format"`
	TargetFormat string `json:"target_format"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// DefaultBatchExtensions are the source formats batch conversion picks
// up when the caller does not narrow them.
var DefaultBatchExtensions = []string{
	".odt", ".ods", ".odp", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
}

// ConvertFile converts source into target using the office suite. The
// converter writes into target's directory under the source stem; the
// produced file is renamed onto target when the names differ.
func ConvertFile(ctx context.Context, conv office.Converter, source, target, targetFormat string) ConversionResult {
	res := ConversionResult{
		SourcePath:   source,
		TargetPath:   target,
		SourceFormat: format(source),
		TargetFormat: targetFormat,
	}

	if _, err := os.Stat(source); err != nil {
		res.ErrorMessage = fmt.Sprintf("source file not found: %s", source)
		return res
	}
	outDir := filepath.Dir(target)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		res.ErrorMessage = err.Error()
		return res
	}

	produced, err := conv.Convert(ctx, source, outDir, targetFormat)
	if err != nil {
		res.ErrorMessage = err.Error()
		return res
	}
	if produced != target {
		if err := os.Rename(produced, target); err != nil {
			res.ErrorMessage = err.Error()
			return res
		}
	}
	res.Success = true
	return res
}

// BatchConvert converts every matching document directly under srcDir
// into dstDir. Per-file failures are recorded in their results; only a
// missing source directory fails the batch as a whole.
func BatchConvert(ctx context.Context, conv office.Converter, srcDir, dstDir, targetFormat string, extensions []string) ([]ConversionResult, error) {
	if fi, err := os.Stat(srcDir); err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("source directory not found: %s", srcDir)
	}
	if len(extensions) == 0 {
		extensions = DefaultBatchExtensions
	}
	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		wanted[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}

	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, err
	}

	var results []ConversionResult
	for _, entry := range entries {
		if entry.IsDir() || !wanted[format(entry.Name())] {
			continue
		}
		src := filepath.Join(srcDir, entry.Name())
		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		target := filepath.Join(dstDir, stem+"."+targetFormat)
		results = append(results, ConvertFile(ctx, conv, src, target, targetFormat))
		if ctx.Err() != nil {
			break
		}
	}
	return results, nil
}
