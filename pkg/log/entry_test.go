// Copyright 2026 The Glimpse Authors. All rights reserved.
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestFatalfExits(t *testing.T) {
	a := assert.New(t)

	logger := logrus.StandardLogger()
	oldOut := logger.Out
	oldExit := logger.ExitFunc
	defer func() {
		logger.Out = oldOut
		logger.ExitFunc = oldExit
	}()

	var buf bytes.Buffer
	logger.Out = &buf
	exitCode := -1
	logger.ExitFunc = func(code int) { exitCode = code }

	WithFields(Fields{"reason": "bad input"}).Fatalf("cannot continue: %s", "no target")

	a.Equal(1, exitCode)
	a.Contains(buf.String(), "cannot continue: no target")
	a.Contains(buf.String(), "bad input")
}
