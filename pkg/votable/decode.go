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

package votable

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/askap/vodeposit/pkg/errors"
)

type xmlVOTable struct {
	XMLName   xml.Name      `xml:"VOTABLE"`
	Version   string        `xml:"version,attr"`
	Resources []xmlResource `xml:"RESOURCE"`
}

type xmlResource struct {
	Name      string        `xml:"name,attr"`
	Tables    []xmlTable    `xml:"TABLE"`
	Resources []xmlResource `xml:"RESOURCE"`
}

type xmlDescriptor struct {
	Name      string `xml:"name,attr"`
	ID        string `xml:"ID,attr"`
	UCD       string `xml:"ucd,attr"`
	Ref       string `xml:"ref,attr"`
	Datatype  string `xml:"datatype,attr"`
	Unit      string `xml:"unit,attr"`
	Arraysize string `xml:"arraysize,attr"`
	Width     string `xml:"width,attr"`
	Precision string `xml:"precision,attr"`
}

type xmlParam struct {
	xmlDescriptor
	Value string `xml:"value,attr"`
}

type xmlTable struct {
	Name   string          `xml:"name,attr"`
	Params []xmlParam      `xml:"PARAM"`
	Fields []xmlDescriptor `xml:"FIELD"`
	Data   *xmlData        `xml:"DATA"`
}

type xmlData struct {
	TableData *struct {
		Rows []struct {
			Cells []struct {
				Value string `xml:",chardata"`
			} `xml:"TD"`
		} `xml:"TR"`
	} `xml:"TABLEDATA"`
	Binary  *struct{} `xml:"BINARY"`
	Binary2 *struct{} `xml:"BINARY2"`
	FITS    *struct{} `xml:"FITS"`
}

// Decode reads a VOTABLE document. Only TABLEDATA serialization is supported.
func Decode(r io.Reader) (*VOTable, error) {
	var doc xmlVOTable
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "failed to decode VOTABLE", err)
	}

	out := &VOTable{Version: doc.Version}
	for i := range doc.Resources {
		res, err := convertResource(&doc.Resources[i])
		if err != nil {
			return nil, err
		}
		out.Resources = append(out.Resources, res)
	}
	return out, nil
}

// DecodeFile opens and decodes the VOTABLE at path.
func DecodeFile(path string) (*VOTable, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "VOTABLE file not found", err,
				map[string]any{"path": path})
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to open VOTABLE file", err,
			map[string]any{"path": path})
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func convertResource(x *xmlResource) (*Resource, error) {
	res := &Resource{Name: x.Name}
	for i := range x.Tables {
		t, err := convertTable(&x.Tables[i])
		if err != nil {
			return nil, err
		}
		res.Tables = append(res.Tables, t)
	}
	for i := range x.Resources {
		child, err := convertResource(&x.Resources[i])
		if err != nil {
			return nil, err
		}
		res.Resources = append(res.Resources, child)
	}
	return res, nil
}

func convertTable(x *xmlTable) (*Table, error) {
	t := &Table{Name: x.Name}
	for _, p := range x.Params {
		t.Params = append(t.Params, Param{Descriptor: p.descriptor(), Value: p.Value})
	}
	for _, f := range x.Fields {
		t.Fields = append(t.Fields, Field{Descriptor: f.descriptor()})
	}
	if x.Data == nil {
		return t, nil
	}
	if x.Data.Binary != nil || x.Data.Binary2 != nil || x.Data.FITS != nil {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"only TABLEDATA serialization is supported", map[string]any{"table": x.Name})
	}
	if x.Data.TableData == nil {
		return t, nil
	}
	t.Rows = make([]Row, 0, len(x.Data.TableData.Rows))
	for _, tr := range x.Data.TableData.Rows {
		row := Row{Cells: make([]Cell, 0, len(tr.Cells))}
		for _, td := range tr.Cells {
			row.Cells = append(row.Cells, Cell{Value: td.Value})
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func (d xmlDescriptor) descriptor() Descriptor {
	return Descriptor{
		Name:      d.Name,
		ID:        d.ID,
		UCD:       d.UCD,
		Ref:       d.Ref,
		Datatype:  d.Datatype,
		Unit:      d.Unit,
		Arraysize: d.Arraysize,
		Width:     d.Width,
		Precision: d.Precision,
	}
}
