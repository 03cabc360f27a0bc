package logging

import (
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestCustomFormatter(t *testing.T) {
	f := &CustomFormatter{SystemName: "tasks-service"}
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "Event ID: TASK_NOT_FOUND, Description: missing",
		Data:    logrus.Fields{"taskId": "42", "method": "GET"},
	}

	out, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format returned error: %v", err)
	}
	line := string(out)

	for _, want := range []string{
		"Date: 2024-05-01, Time: 12:00:00, ",
		"Event Source: tasks-service, ",
		"Event Type: WARNING, ",
		"Message: Event ID: TASK_NOT_FOUND, Description: missing",
		", method: GET, taskId: 42",
	} {
		if !strings.Contains(line, want) {
			t.Errorf("formatted line %q does not contain %q", line, want)
		}
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("formatted line should end with a newline")
	}
}
