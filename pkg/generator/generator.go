// Package generator stores exported card files on disk.
package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Writer struct {
	OutputDir string
}

// NewWriter resolves relative output directories against the working
// directory.
func NewWriter(outputDir string) *Writer {
	if !filepath.IsAbs(outputDir) {
		wd, _ := os.Getwd()
		outputDir = filepath.Join(wd, outputDir)
	}
	return &Writer{OutputDir: outputDir}
}

// Write stores data as name inside the output directory and returns its path.
func (w *Writer) Write(name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if err := w.ensureOutputDir(); err != nil {
		return "", err
	}

	filePath := filepath.Join(w.OutputDir, name)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %v", name, err)
	}
	return filePath, nil
}

func (w *Writer) ensureOutputDir() error {
	if _, err := os.Stat(w.OutputDir); os.IsNotExist(err) {
		err = os.MkdirAll(w.OutputDir, os.ModePerm)
		if err != nil {
			return fmt.Errorf("failed to create output directory: %v", err)
		}
	}
	return nil
}

func (w *Writer) Delete(filePath string) error {
	err := os.Remove(filePath)
	if err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}
	return nil
}
