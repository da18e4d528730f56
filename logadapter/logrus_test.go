// Copyright (c) 2025 srfrog - https://srfrog.dev
// Use of this source code is governed by the license in the LICENSE file.

package logadapter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/go-waypost/waypost"
)

func TestLogrusPrintf(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})

	l := NewLogrus(base)
	l.Printf(waypost.LogErr, "boom: %d", 42)

	if !strings.Contains(buf.String(), "boom: 42") {
		t.Fatalf("expected log output to contain message, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "level=error") {
		t.Fatalf("expected error level, got %q", buf.String())
	}
}

func TestLogrusSetLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)

	l := NewLogrus(base)
	l.SetLevel(waypost.LogWarn)
	l.Printf(waypost.LogDebug, "should not appear")

	if buf.Len() != 0 {
		t.Fatalf("expected debug message to be filtered out, got %q", buf.String())
	}
}
