// Copyright 2026 The ILP Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package foil

import (
	"math"
	"testing"
)

func TestFoilGain(t *testing.T) {
	tests := []struct {
		name                   string
		pOld, nOld, pNew, nNew float64
		wantNegInf             bool
		wantPositive           bool
	}{
		{name: "no new positives", pOld: 2, nOld: 2, pNew: 0, nNew: 0, wantNegInf: true},
		{name: "no old positives", pOld: 0, nOld: 2, pNew: 1, nNew: 0, wantNegInf: true},
		{name: "pure improving refinement", pOld: 2, nOld: 2, pNew: 2, nNew: 0, wantPositive: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gain := foilGain(tc.pOld, tc.nOld, tc.pNew, tc.nNew)
			if tc.wantNegInf && !math.IsInf(gain, -1) {
				t.Errorf("foilGain(%v,%v,%v,%v) = %v, want -Inf", tc.pOld, tc.nOld, tc.pNew, tc.nNew, gain)
			}
			if tc.wantPositive && gain <= 0 {
				t.Errorf("foilGain(%v,%v,%v,%v) = %v, want > 0", tc.pOld, tc.nOld, tc.pNew, tc.nNew, gain)
			}
		})
	}
}
