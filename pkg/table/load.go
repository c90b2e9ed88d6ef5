package table

import (
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ReadCSV loads a feature table from CSV. Column roles are inferred from the
// parsed types: int and float columns become numeric, everything else
// categorical.
func ReadCSV(r io.Reader) (*FeatureTable, error) {
	df := dataframe.ReadCSV(r)
	if df.Err != nil {
		return nil, df.Err
	}
	names := df.Names()
	types := df.Types()
	cols := make([]Column, 0, len(names))
	for i, name := range names {
		s := df.Col(name)
		switch types[i] {
		case series.Int, series.Float:
			cols = append(cols, NumericColumn(name, s.Float()))
		default:
			cols = append(cols, CategoricalColumn(name, s.Records()))
		}
	}
	return New(cols...)
}

// ReadCSVFile loads a feature table from a CSV file on disk.
func ReadCSVFile(path string) (*FeatureTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}
