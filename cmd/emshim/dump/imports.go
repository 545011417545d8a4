package dump

import (
	"encoding/csv"
	"io"

	"github.com/jszwec/csvutil"

	"github.com/wasmlab/emshim/wasm"
)

func dumpImports(w io.Writer, m *wasm.Module) error {
	type row struct {
		Index     int    `csv:"index"`
		Module    string `csv:"module"`
		Field     string `csv:"field"`
		Kind      string `csv:"kind"`
		Signature string `csv:"signature"`
	}

	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	encoder := csvutil.NewEncoder(csvWriter)

	if m.Import == nil {
		return nil
	}
	for idx, entry := range m.Import.Entries {
		r := row{
			Index:  idx,
			Module: entry.ModuleName,
			Field:  entry.FieldName,
			Kind:   entry.Type.Kind().String(),
		}
		if fi, ok := entry.Type.(wasm.FuncImport); ok && m.Types != nil && fi.Type < uint32(len(m.Types.Entries)) {
			r.Signature = m.Types.Entries[fi.Type].String()
		}
		if err := encoder.Encode(&r); err != nil {
			return err
		}
	}
	return nil
}
