// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/askap/vodeposit/pkg/errors"
)

type testField struct {
	Name     string `json:"name" yaml:"name"`
	Datatype string `json:"datatype" yaml:"datatype"`
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected Format
	}{
		{"json lowercase", "report.json", FormatJSON},
		{"json uppercase", "REPORT.JSON", FormatJSON},
		{"yaml extension", "island.yaml", FormatYAML},
		{"yml extension", "island.yml", FormatYAML},
		{"mixed case", "Island.YaMl", FormatYAML},
		{"table extension", "summary.table", FormatTable},
		{"txt extension", "summary.txt", FormatTable},
		{"unknown extension defaults to json", "catalogue.xml", FormatJSON},
		{"no extension defaults to json", "catalogue", FormatJSON},
		{"multiple dots", "island.backup.yaml", FormatYAML},
		{"path with directories", "/data/constraints/island.yaml", FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.expected {
				t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestNewReader(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		wantErr string
	}{
		{"json", FormatJSON, ""},
		{"yaml", FormatYAML, ""},
		{"table", FormatTable, "does not support deserialization"},
		{"unknown", Format("xml"), "unknown format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewReader(tt.format, strings.NewReader("{}"))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewReader failed: %v", err)
			}
			if reader.format != tt.format {
				t.Errorf("format = %v, want %v", reader.format, tt.format)
			}
		})
	}
}

func TestReader_Deserialize(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"json", FormatJSON, `{"name":"flux_peak","datatype":"float"}`},
		{"yaml", FormatYAML, "name: flux_peak\ndatatype: float\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader, err := NewReader(tt.format, strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("NewReader failed: %v", err)
			}
			var got testField
			if err := reader.Deserialize(&got); err != nil {
				t.Fatalf("Deserialize failed: %v", err)
			}
			if got.Name != "flux_peak" || got.Datatype != "float" {
				t.Errorf("unexpected result: %+v", got)
			}
		})
	}
}

func TestReader_StrictFields(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{"json", FormatJSON, `{"name":"x","datatype":"char","unit":"deg"}`},
		{"yaml", FormatYAML, "name: x\ndatatype: char\nunit: deg\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lenient testField
			reader, _ := NewReader(tt.format, strings.NewReader(tt.input))
			if err := reader.Deserialize(&lenient); err != nil {
				t.Fatalf("lenient Deserialize failed: %v", err)
			}

			var strict testField
			reader, _ = NewReader(tt.format, strings.NewReader(tt.input), WithStrictFields())
			if err := reader.Deserialize(&strict); err == nil {
				t.Fatal("expected strict Deserialize to reject unknown field")
			}
		})
	}
}

func TestReader_DeserializeNilChecks(t *testing.T) {
	var nilReader *Reader
	if err := nilReader.Deserialize(&testField{}); err == nil {
		t.Error("expected error from nil reader")
	}
	if err := nilReader.Close(); err != nil {
		t.Errorf("Close on nil reader: %v", err)
	}

	reader, err := NewReader(FormatJSON, nil)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	err = reader.Deserialize(&testField{})
	if err == nil || !strings.Contains(err.Error(), "input source is nil") {
		t.Errorf("expected nil input error, got %v", err)
	}
}

func TestNewFileReader(t *testing.T) {
	t.Run("existing file", func(t *testing.T) {
		path := writeTemp(t, "field.yaml", "name: ra_deg_cont\ndatatype: double\n")
		reader, err := NewFileReaderAuto(path)
		if err != nil {
			t.Fatalf("NewFileReaderAuto failed: %v", err)
		}
		defer reader.Close()

		var got testField
		if err := reader.Deserialize(&got); err != nil {
			t.Fatalf("Deserialize failed: %v", err)
		}
		if got.Datatype != "double" {
			t.Errorf("datatype = %q, want double", got.Datatype)
		}
	})

	t.Run("missing file is NOT_FOUND", func(t *testing.T) {
		_, err := NewFileReader(FormatYAML, filepath.Join(t.TempDir(), "absent.yaml"))
		if err == nil {
			t.Fatal("expected error for missing file")
		}
		if code := errors.CodeOf(err); code != errors.ErrCodeNotFound {
			t.Errorf("code = %s, want %s", code, errors.ErrCodeNotFound)
		}
	})

	t.Run("table format rejected", func(t *testing.T) {
		path := writeTemp(t, "out.txt", "x")
		if _, err := NewFileReader(FormatTable, path); err == nil {
			t.Fatal("expected error for table format")
		}
	})
}

func TestReader_Close(t *testing.T) {
	path := writeTemp(t, "field.json", `{"name":"x"}`)
	reader, err := NewFileReader(FormatJSON, path)
	if err != nil {
		t.Fatalf("NewFileReader failed: %v", err)
	}
	if err := reader.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := reader.Close(); err != nil {
		t.Fatalf("second Close should be a no-op: %v", err)
	}
}

func TestFromFile(t *testing.T) {
	t.Run("yaml slice", func(t *testing.T) {
		path := writeTemp(t, "fields.yaml", "- name: island_id\n  datatype: char\n- name: n_pix\n  datatype: int\n")
		got, err := FromFile[[]testField](path)
		if err != nil {
			t.Fatalf("FromFile failed: %v", err)
		}
		if len(*got) != 2 || (*got)[1].Name != "n_pix" {
			t.Errorf("unexpected result: %+v", *got)
		}
	})

	t.Run("json map", func(t *testing.T) {
		path := writeTemp(t, "counts.json", `{"island":3,"component":5}`)
		got, err := FromFile[map[string]int](path)
		if err != nil {
			t.Fatalf("FromFile failed: %v", err)
		}
		if (*got)["component"] != 5 {
			t.Errorf("unexpected result: %+v", *got)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := FromFile[testField](filepath.Join(t.TempDir(), "absent.json"))
		if err == nil || !strings.Contains(err.Error(), "failed to create serializer") {
			t.Fatalf("expected serializer creation error, got %v", err)
		}
		if code := errors.CodeOf(err); code != errors.ErrCodeNotFound {
			t.Errorf("code = %s, want %s", code, errors.ErrCodeNotFound)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		path := writeTemp(t, "bad.json", "{invalid json}")
		_, err := FromFile[testField](path)
		if err == nil || !strings.Contains(err.Error(), "failed to deserialize") {
			t.Fatalf("expected deserialization error, got %v", err)
		}
	})

	t.Run("strict rejects unknown keys", func(t *testing.T) {
		path := writeTemp(t, "field.yaml", "name: x\nucd: pos.eq.ra\n")
		if _, err := FromFile[testField](path, WithStrictFields()); err == nil {
			t.Fatal("expected strict decode error")
		}
	})
}
