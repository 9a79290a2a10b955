package load

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nic-ch/hierlint/internal/model"
)

const jsonUnit = `{
  "name": "shapes",
  "classes": [
    {
      "name": "IShape",
      "location": {"file": "shape.hpp", "line": 12, "column": 1},
      "bases": [{"name": "IObject", "visibility": "public"}],
      "members": [
        {"name": "~IShape", "kind": "destructor", "visibility": "public", "virtuality": "virtual", "noexcept": true, "defaulted": true},
        {"name": "Area", "kind": "method", "visibility": "public", "virtuality": "pure_virtual"}
      ]
    }
  ],
  "call_sites": [
    {"template": "std::max", "args": ["int", "int"], "location": {"file": "main.cpp", "line": 4}}
  ]
}`

const yamlUnit = `name: shapes
classes:
  - name: IShape
    location: {file: shape.hpp, line: 12, column: 1}
    bases:
      - {name: IObject, visibility: public}
    members:
      - {name: "~IShape", kind: destructor, visibility: public, virtuality: virtual, noexcept: true, defaulted: true}
      - {name: Area, kind: method, visibility: public, virtuality: pure_virtual}
call_sites:
  - {template: "std::max", args: [int, int], location: {file: main.cpp, line: 4}}
`

func checkShapesUnit(t *testing.T, unit *model.Unit) {
	t.Helper()
	if unit.Name != "shapes" {
		t.Errorf("Name = %q, want shapes", unit.Name)
	}
	if len(unit.Classes) != 1 {
		t.Fatalf("Classes = %d, want 1", len(unit.Classes))
	}

	decl := unit.Classes[0]
	if decl.Name != "IShape" {
		t.Errorf("class name = %q, want IShape", decl.Name)
	}
	if decl.Location.File != "shape.hpp" || decl.Location.Line != 12 {
		t.Errorf("location = %+v, want shape.hpp:12", decl.Location)
	}
	if len(decl.Bases) != 1 || decl.Bases[0].Name != "IObject" || decl.Bases[0].Visibility != model.VisibilityPublic {
		t.Errorf("bases = %+v, want public IObject", decl.Bases)
	}

	dtor := decl.Destructor()
	if dtor == nil {
		t.Fatal("Destructor() = nil")
	}
	if dtor.Virtuality != model.VirtualityVirtual || !dtor.Noexcept || !dtor.Defaulted {
		t.Errorf("destructor = %+v, want virtual noexcept defaulted", dtor)
	}

	if len(unit.CallSites) != 1 {
		t.Fatalf("CallSites = %d, want 1", len(unit.CallSites))
	}
	site := unit.CallSites[0]
	if site.Template != "std::max" || len(site.Args) != 2 {
		t.Errorf("call site = %+v, want std::max with 2 args", site)
	}
}

func TestDecodeJSON(t *testing.T) {
	unit, err := DecodeJSON([]byte(jsonUnit))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	checkShapesUnit(t, unit)
}

func TestDecodeYAML(t *testing.T) {
	unit, err := DecodeYAML([]byte(yamlUnit))
	if err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}
	checkShapesUnit(t, unit)
}

func TestDecodeJSON_Invalid(t *testing.T) {
	if _, err := DecodeJSON([]byte(`{"classes": [`)); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func TestDecode_PicksFormatByExtension(t *testing.T) {
	unit, err := Decode("shapes.json", []byte(jsonUnit))
	if err != nil {
		t.Fatalf("Decode json: %v", err)
	}
	checkShapesUnit(t, unit)

	unit, err = Decode("shapes.yaml", []byte(yamlUnit))
	if err != nil {
		t.Fatalf("Decode yaml: %v", err)
	}
	checkShapesUnit(t, unit)
}

func TestDecode_NameDefaultsToFileName(t *testing.T) {
	unit, err := Decode("geometry.json", []byte(`{"classes": []}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if unit.Name != "geometry" {
		t.Errorf("Name = %q, want geometry", unit.Name)
	}
}

func TestDecodeJSON_OmittedVirtualityStaysEmpty(t *testing.T) {
	// Non-virtual members omit the virtuality field on the wire; the
	// decoded empty value is valid and means "none" downstream.
	unit, err := DecodeJSON([]byte(`{
	  "classes": [
	    {
	      "name": "Widget",
	      "members": [
	        {"name": "~Widget", "kind": "destructor", "visibility": "public", "noexcept": true, "defaulted": true}
	      ]
	    }
	  ]
	}`))
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}

	dtor := unit.Classes[0].Destructor()
	if dtor == nil {
		t.Fatal("Destructor() = nil")
	}
	if dtor.Virtuality != "" {
		t.Errorf("Virtuality = %q, want empty", dtor.Virtuality)
	}
	if !dtor.NonVirtual() {
		t.Error("NonVirtual() = false for omitted virtuality")
	}

	if violations, _ := Vet(unit); len(violations) != 0 {
		t.Errorf("Vet rejected omitted virtuality: %v", violations)
	}
}

func TestReadUnit_PicksFormatByExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "shapes.json")
	if err := os.WriteFile(jsonPath, []byte(jsonUnit), 0o644); err != nil {
		t.Fatal(err)
	}
	yamlPath := filepath.Join(dir, "shapes.yaml")
	if err := os.WriteFile(yamlPath, []byte(yamlUnit), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{jsonPath, yamlPath} {
		unit, err := ReadUnit(path)
		if err != nil {
			t.Fatalf("ReadUnit(%s): %v", path, err)
		}
		checkShapesUnit(t, unit)
	}
}

func TestReadUnit_NameDefaultsToFileName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "geometry.json")
	if err := os.WriteFile(path, []byte(`{"classes": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	unit, err := ReadUnit(path)
	if err != nil {
		t.Fatalf("ReadUnit: %v", err)
	}
	if unit.Name != "geometry" {
		t.Errorf("Name = %q, want geometry", unit.Name)
	}
}

func TestReadUnit_MissingFile(t *testing.T) {
	if _, err := ReadUnit(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
