package qr

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// Matrix is an immutable square module grid.
type Matrix struct {
	bits [][]bool
}

// NewMatrix encodes payload at the medium recovery level without a quiet zone,
// so the grid is exactly N×N.
func NewMatrix(payload string) (Matrix, error) {
	if payload == "" {
		return Matrix{}, ErrEmptyPayload
	}

	code, err := qrcode.New(payload, qrcode.Medium)
	if err != nil {
		return Matrix{}, fmt.Errorf("encode payload: %w", err)
	}
	code.DisableBorder = true

	return Matrix{bits: code.Bitmap()}, nil
}

func (m Matrix) Size() int {
	return len(m.bits)
}

// Dark reports whether the module at (row, col) is dark. Cells outside the
// grid are light.
func (m Matrix) Dark(row, col int) bool {
	if row < 0 || row >= len(m.bits) || col < 0 || col >= len(m.bits[row]) {
		return false
	}
	return m.bits[row][col]
}
