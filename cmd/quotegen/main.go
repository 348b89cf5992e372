package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"bitbucket.org/mmdatafocus/quotes_backend/models"
	"bitbucket.org/mmdatafocus/quotes_backend/pdfs"
	"bitbucket.org/mmdatafocus/quotes_backend/tpl"
)

// quotegen turns saved form-snapshot JSON files into PDF quotes without the
// server: quotegen form.json [form.json ...]
func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: quotegen <form.json> [form.json ...]")
		flag.PrintDefaults()
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	exporter := pdfs.NewExporter(tpl.NewRenderer())

	failed := 0
	for _, path := range paths {
		outPath, err := exportFile(exporter, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stderr, "%s -> %s\n", path, outPath)
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func exportFile(exporter *pdfs.Exporter, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	var form models.QuoteFormData
	if err := json.Unmarshal(data, &form); err != nil {
		return "", fmt.Errorf("parsing form snapshot: %w", err)
	}

	quote, err := models.BuildQuote(&form)
	if err != nil {
		return "", err
	}

	result, err := exporter.Export(context.Background(), quote)
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(filepath.Dir(path), result.Filename)
	if err := os.WriteFile(outPath, result.Bytes, 0o644); err != nil {
		return "", err
	}
	return outPath, nil
}
