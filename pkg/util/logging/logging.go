// This Source Code Form is subject to the terms of the MIT License.
// If a copy of the MIT License was not distributed with this
// file, you can obtain one at https://opensource.org/licenses/MIT.
//
// Copyright (c) DUSK NETWORK. All rights reserved.

// Package logging configures the process-wide logrus logger used by every
// mempool component (they all call logrus.WithFields directly, following
// the teacher's own per-package "prefix" field idiom). It wires the
// teacher's full logging stack: a prefixed-formatter for readable console
// output, go-isatty to decide whether that formatter gets colour, and
// lumberjack for rotation when logging to a file.
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	lg "github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Configure sets logrus's global level and output according to level and
// output ("stdout" or a file path). It is the single place the process
// touches logrus's package-level state; everywhere else only ever calls
// logrus.WithFields.
func Configure(level, output string) error {
	parsed, err := lg.ParseLevel(level)
	if err != nil {
		return err
	}
	lg.SetLevel(parsed)

	formatter := &prefixed.TextFormatter{
		ForceColors:     false,
		TimestampFormat: "2006-01-02 15:04:05.000",
	}

	var out io.Writer
	switch output {
	case "", "stdout":
		if isatty.IsTerminal(os.Stdout.Fd()) {
			formatter.ForceColors = true
			out = colorable.NewColorableStdout()
		} else {
			out = os.Stdout
		}
	default:
		out = &lumberjack.Logger{
			Filename:   output,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
	}

	lg.SetFormatter(formatter)
	lg.SetOutput(out)
	return nil
}
