package csvtemplate

import (
	"bytes"
	"encoding/csv"
	"testing"
)

func TestBytes(t *testing.T) {
	data := Bytes()

	if !bytes.HasPrefix(data, []byte(BOM)) {
		t.Fatal("expected BOM prefix")
	}

	records, err := csv.NewReader(bytes.NewReader(data[len(BOM):])).ReadAll()
	if err != nil {
		t.Fatalf("template is not valid CSV: %v", err)
	}
	if len(records) != 1+len(Samples) {
		t.Fatalf("expected %d records, got %d", 1+len(Samples), len(records))
	}
	if records[0][0] != "コード" || records[0][len(Header)-1] != "欠品状態" {
		t.Errorf("header = %v", records[0])
	}
	for i, row := range records[1:] {
		if len(row) != len(Header) {
			t.Errorf("row %d has %d fields, want %d", i, len(row), len(Header))
		}
	}
	if records[1][0] != "TIP-12-EG-1" || records[2][0] != "NOZUR-20-DB-1" {
		t.Errorf("unexpected sample codes")
	}
}
