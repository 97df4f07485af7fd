// Copyright 2024 The swaggergen Authors.
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
package util

import (
	"errors"
	"testing"
)

func TestAppendErr(t *testing.T) {
	var errs []error
	if got := AppendErr(errs, nil); got != nil {
		t.Errorf("AppendErr(nil, nil): got %v, want nil", got)
	}
	errs = AppendErr(errs, errors.New("first"))
	errs = AppendErr(errs, nil)
	errs = AppendErr(errs, errors.New("second"))
	if len(errs) != 3 {
		t.Fatalf("AppendErr: got %d elements, want 3", len(errs))
	}
}

func TestAppendErrs(t *testing.T) {
	if got := AppendErrs(nil, nil); got != nil {
		t.Errorf("AppendErrs(nil, nil): got %v, want nil", got)
	}
	got := AppendErrs([]error{errors.New("a")}, []error{errors.New("b")})
	if len(got) != 2 {
		t.Errorf("AppendErrs: got %d elements, want 2", len(got))
	}
}

func TestNewErrs(t *testing.T) {
	if got := NewErrs(nil); got != nil {
		t.Errorf("NewErrs(nil): got %v, want nil", got)
	}
	if got := NewErrs(errors.New("boom")); len(got) != 1 {
		t.Errorf("NewErrs: got %d elements, want 1", len(got))
	}
}

func TestErrorsString(t *testing.T) {
	errs := Errors{errors.New("a"), nil, errors.New("b")}
	if got, want := errs.Error(), "a, b"; got != want {
		t.Errorf("Error: got %q, want %q", got, want)
	}
}
