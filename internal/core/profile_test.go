package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileDataset(t *testing.T) {
	d := mustReadCSV(t, "A,B,C\n1,,x\n1,,x\n2,5,\n")
	p := ProfileDataset(d)

	assert.Equal(t, 3, p.Rows)
	assert.Equal(t, 3, p.Columns)
	assert.Equal(t, 1, p.DuplicateRows)
	assert.Equal(t, 3, p.TotalMissing())
	assert.Equal(t, []ColumnProfile{
		{Name: "A", Kind: "int64", Missing: 0, Numeric: true},
		{Name: "B", Kind: "float64", Missing: 2, Numeric: true},
		{Name: "C", Kind: "object", Missing: 1, Numeric: false},
	}, p.Missing)
}

func TestProfileDataset_Empty(t *testing.T) {
	d := mustReadCSV(t, "A,B\n")
	p := ProfileDataset(d)

	assert.Zero(t, p.Rows)
	assert.Equal(t, 2, p.Columns)
	assert.Zero(t, p.DuplicateRows)
	assert.Zero(t, p.TotalMissing())
}

func TestDuplicateCount_DistinguishesKinds(t *testing.T) {
	// "1" and "1.0" are the same float once parsed.
	d := mustReadCSV(t, "A\n1\n1.0\n")
	assert.Equal(t, 1, DuplicateCount(d))

	// Text keeps the spelling, so these differ.
	d = mustReadCSV(t, "A\n1\n1.0\nx\n")
	assert.Equal(t, 0, DuplicateCount(d))
}

func TestDuplicateCount_SignedZero(t *testing.T) {
	d := mustReadCSV(t, "A,B\n0.0,x\n-0.0,x\n")
	assert.Equal(t, 1, DuplicateCount(d))

	cleaned := Deduplicate(d)
	assert.Equal(t, 1, cleaned.NumRows())
}
