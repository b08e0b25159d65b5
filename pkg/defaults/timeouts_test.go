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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		{"ImportTimeout", ImportTimeout, 1 * time.Minute, 60 * time.Minute},
		{"ValidateTimeout", ValidateTimeout, 5 * time.Minute, 120 * time.Minute},
		{"DecodeTimeout", DecodeTimeout, 10 * time.Second, 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) is above maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestDecodeTimeoutLessThanImport(t *testing.T) {
	if DecodeTimeout >= ImportTimeout {
		t.Errorf("DecodeTimeout (%v) should be less than ImportTimeout (%v)",
			DecodeTimeout, ImportTimeout)
	}
}

func TestImportTimeoutWithinValidate(t *testing.T) {
	// A single file must fit inside the whole-command budget.
	if ImportTimeout > ValidateTimeout {
		t.Errorf("ImportTimeout (%v) should not exceed ValidateTimeout (%v)",
			ImportTimeout, ValidateTimeout)
	}
}

func TestLimits(t *testing.T) {
	if MaxConcurrentFiles < 1 {
		t.Errorf("MaxConcurrentFiles (%d) must be positive", MaxConcurrentFiles)
	}
	if MaxReportedErrors < 1 {
		t.Errorf("MaxReportedErrors (%d) must be positive", MaxReportedErrors)
	}
}
