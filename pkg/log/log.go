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
	"io/ioutil"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLogger sets the log output destination.
// filename="/var/log/glimpse.log": write the log to a rotated file
// filename="": write the log to stdout
// filename="/dev/null": discard log messages
func InitLogger(filename string) {
	filename = strings.Trim(filename, " ")
	if filename == "/dev/null" {
		logrus.SetOutput(ioutil.Discard)
	} else if filename == "" {
		logrus.SetOutput(os.Stdout)
	} else {
		logrus.SetOutput(&lumberjack.Logger{
			Filename:   filename,
			MaxSize:    32, // megabytes
			MaxBackups: 64,
			MaxAge:     15, // days
			Compress:   true,
		})
	}
}
