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

// Package catalogue validates and assembles ASKAP source catalogues.
//
// Each catalogue Type has an embedded YAML constraint registry listing the
// PARAMs and FIELDs its VOTABLE files must declare:
//
//	params:
//	  - name: imageFile
//	    datatype: char
//	    maxarraysize: "255*"
//	fields:
//	  - name: ra_deg_cont
//	    datatype: double
//	    unit: deg
//	    maxprecision: "9"
//	  - name: flux_peak
//	    datatype: float
//	    optional: true
//
// All keys are read as text. A malformed entry fails the whole registry
// with INVALID_CONFIG.
//
// # Importing
//
// Importer.Import validates a file in fail-fast mode and returns the
// assembled Catalogue: one Entry per row plus PARAM metadata, the image file
// name and the wavelength range covered by the frequency column.
// Importer.Validate runs in collect-all mode and returns a report with every
// error message instead.
//
//	imp, err := catalogue.NewImporter(catalogue.WithImporterVersion(version))
//	if err != nil {
//	    return err
//	}
//	cat, err := imp.Import(ctx, catalogue.TypeContinuumIsland, "selavy-islands.xml")
//
// Both calls update the vodeposit_* Prometheus metrics; WriteMetrics dumps
// them to a textfile.
package catalogue
