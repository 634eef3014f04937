package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/steven-jacovitch/506-Final/internal/record"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	return path
}

func TestReadCSV(t *testing.T) {
	csvData := "name,system,region,sector\n" +
		"Dagobah,Dagobah system,Outer Rim Territories,Sluis sector\n" +
		"Haruun Kal,Al'Har system,Mid Rim,\"Al'Har sector, south\"\n"

	records, err := ReadCSV(writeFixture(t, "planets.csv", csvData))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("ReadCSV() returned %d records, want 2", len(records))
	}

	wantKeys := []string{"name", "system", "region", "sector"}
	if got := records[0].Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Errorf("Keys() = %v, want header order %v", got, wantKeys)
	}

	system, _ := records[1].Get("system")
	if system != "Al'Har system" {
		t.Errorf("system = %v, want Al'Har system", system)
	}

	sector, _ := records[1].Get("sector")
	if sector != "Al'Har sector, south" {
		t.Errorf("sector = %v, want quoted field intact", sector)
	}
}

func TestReadCSVByteOrderMark(t *testing.T) {
	csvData := "\uFEFFname,diameter\nTatooine,10465\n"

	records, err := ReadCSV(writeFixture(t, "planets.csv", csvData))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	if _, ok := records[0].Get("name"); !ok {
		t.Errorf("Keys() = %v, want BOM stripped from first column", records[0].Keys())
	}
}

func TestReadCSVShortRow(t *testing.T) {
	csvData := "name,system,region\nDagobah,Dagobah system\n"

	records, err := ReadCSV(writeFixture(t, "planets.csv", csvData))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	region, ok := records[0].Get("region")
	if !ok || region != nil {
		t.Errorf("region = %v, want nil padding for short row", region)
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("ReadCSV() error = nil, want ErrReadFile")
	}
	if !errors.Is(err, ErrReadFile) {
		t.Errorf("ReadCSV() error = %v, want ErrReadFile", err)
	}
}

func TestReadJSONRecords(t *testing.T) {
	jsonData := `[
  {"name": "Mace Windu", "force_sensitive": "High"},
  {"name": "Plo Koon", "force_sensitive": "High"}
]`

	records, err := ReadJSONRecords(writeFixture(t, "jedi.json", jsonData))
	if err != nil {
		t.Fatalf("ReadJSONRecords() error = %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("ReadJSONRecords() returned %d records, want 2", len(records))
	}

	name, _ := records[1].Get("name")
	if name != "Plo Koon" {
		t.Errorf("name = %v, want Plo Koon", name)
	}
}

func TestReadJSONRecordsNotAList(t *testing.T) {
	_, err := ReadJSONRecords(writeFixture(t, "doc.json", `{"name": "Yoda"}`))
	if err == nil {
		t.Fatal("ReadJSONRecords() error = nil, want ErrParseFile")
	}
	if !errors.Is(err, ErrParseFile) {
		t.Errorf("ReadJSONRecords() error = %v, want ErrParseFile", err)
	}
}

func TestReadJSONRecordsScalarElement(t *testing.T) {
	_, err := ReadJSONRecords(writeFixture(t, "doc.json", `[{"name": "Yoda"}, 506]`))
	if err == nil {
		t.Fatal("ReadJSONRecords() error = nil, want ErrParseFile")
	}
	if !errors.Is(err, ErrParseFile) {
		t.Errorf("ReadJSONRecords() error = %v, want ErrParseFile", err)
	}
}

func TestReadJSONValueKeyOrder(t *testing.T) {
	value, err := ReadJSONValue(writeFixture(t, "doc.json", `{"zulu": 1, "alpha": 2}`))
	if err != nil {
		t.Fatalf("ReadJSONValue() error = %v", err)
	}

	rec, ok := value.(*record.Record)
	if !ok {
		t.Fatalf("ReadJSONValue() = %T, want *record.Record", value)
	}

	if got := rec.Keys(); !reflect.DeepEqual(got, []string{"zulu", "alpha"}) {
		t.Errorf("Keys() = %v, want document order", got)
	}
}

func TestReadJSONInto(t *testing.T) {
	type jedi struct {
		Name string `json:"name"`
	}

	var loaded []jedi

	err := ReadJSONInto(writeFixture(t, "jedi.json", `[{"name": "Shaak Ti"}]`), &loaded)
	if err != nil {
		t.Fatalf("ReadJSONInto() error = %v", err)
	}

	if len(loaded) != 1 || loaded[0].Name != "Shaak Ti" {
		t.Errorf("loaded = %v, want single Shaak Ti entry", loaded)
	}
}

func TestWriteJSON(t *testing.T) {
	rec := record.New()
	rec.Set("name", "Naboo")
	rec.Set("diameter_km", int64(12120))

	path := filepath.Join(t.TempDir(), "naboo.json")

	if err := WriteJSON(path, rec); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	want := "{\n  \"name\": \"Naboo\",\n  \"diameter_km\": 12120\n}"
	if string(data) != want {
		t.Errorf("WriteJSON() output = %s, want %s", data, want)
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	nested := record.New()
	nested.Set("year", int64(896))
	nested.Set("era", "BBY")

	rec := record.New()
	rec.Set("name", "Yoda")
	rec.Set("birth_date", nested)

	path := filepath.Join(t.TempDir(), "yoda.json")

	if err := WriteJSON(path, []*record.Record{rec}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	records, err := ReadJSONRecords(path)
	if err != nil {
		t.Fatalf("ReadJSONRecords() error = %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("round trip returned %d records, want 1", len(records))
	}

	birthDate, _ := records[0].Get("birth_date")
	year, _ := birthDate.(*record.Record).Get("year")
	if year != float64(896) {
		t.Errorf("year = %v (%T), want 896 as JSON number", year, year)
	}
}
