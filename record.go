package lasso

import (
	"sync/atomic"
)

// Field names a numeric column of a dataset. The set of fields a dataset
// carries is closed at load time by its Schema; values are validated
// against the schema when records are constructed.
type Field string

// Schema is the ordered list of fields every record in a dataset carries.
type Schema []Field

// Record is an immutable row of numeric field values plus its stable index
// into the dataset. Records are created once at load time and never
// mutated; they are destroyed only when the dataset is replaced wholesale.
type Record struct {
	index  int
	values []float64
}

// Index returns the record's stable position in the dataset.
func (r *Record) Index() int { return r.index }

// datasetGen hands out dataset identity generations. A wholesale dataset
// replacement produces a new generation, which downstream caches use to
// detect replacement without deep comparison.
var datasetGen atomic.Uint64

// Dataset is an immutable collection of records sharing one schema.
// It is loaded once and replaced wholesale on reload; the engine treats it
// as a read-only input.
type Dataset struct {
	schema   Schema
	fieldIdx map[Field]int
	records  []Record
	gen      uint64
	rejected int
}

// NewDataset builds a dataset from rows of field values in schema order.
// Rows whose length does not match the schema are excluded (counted in
// Rejected), not coerced. Non-finite values are admitted; they are handled
// per axis binding at projection time.
func NewDataset(schema Schema, rows [][]float64) (*Dataset, error) {
	if len(schema) == 0 {
		return nil, ErrSchemaMismatch
	}
	fieldIdx := make(map[Field]int, len(schema))
	for i, f := range schema {
		if _, dup := fieldIdx[f]; dup {
			return nil, ErrSchemaMismatch
		}
		fieldIdx[f] = i
	}

	ds := &Dataset{
		schema:   schema,
		fieldIdx: fieldIdx,
		gen:      datasetGen.Add(1),
	}
	ds.records = make([]Record, 0, len(rows))
	for _, row := range rows {
		if len(row) != len(schema) {
			ds.rejected++
			continue
		}
		vals := make([]float64, len(row))
		copy(vals, row)
		ds.records = append(ds.records, Record{index: len(ds.records), values: vals})
	}
	if ds.rejected > 0 {
		Logger().Debug("dataset rows excluded at load",
			"rejected", ds.rejected, "kept", len(ds.records))
	}
	return ds, nil
}

// Len returns the number of records.
func (ds *Dataset) Len() int { return len(ds.records) }

// Record returns the record at index i.
func (ds *Dataset) Record(i int) *Record { return &ds.records[i] }

// Schema returns the dataset's schema.
func (ds *Dataset) Schema() Schema { return ds.schema }

// Generation returns the dataset's identity generation. Two datasets never
// share a generation, so caches keyed on it detect wholesale replacement.
func (ds *Dataset) Generation() uint64 { return ds.gen }

// Rejected returns the number of rows excluded at load time.
func (ds *Dataset) Rejected() int { return ds.rejected }

// Value returns the named field of record i. The second result is false
// when the field is not part of the schema.
func (ds *Dataset) Value(i int, f Field) (float64, bool) {
	idx, ok := ds.fieldIdx[f]
	if !ok {
		return 0, false
	}
	return ds.records[i].values[idx], true
}
