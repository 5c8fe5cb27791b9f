package utils

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, WARN, false)

	l.Info("hidden")
	l.Warn("shown %d", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("INFO message should be filtered at WARN level: %q", out)
	}
	if !strings.Contains(out, "WARN shown 1") {
		t.Errorf("WARN message missing: %q", out)
	}
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, DEBUG, true)

	l.Error("storage failed")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("JSON 로그 파싱 실패: %v (%q)", err, buf.String())
	}
	if entry["level"] != "ERROR" || entry["msg"] != "storage failed" {
		t.Errorf("unexpected entry: %v", entry)
	}
}

func TestFilterSensitiveInfo(t *testing.T) {
	l := newLogger(&bytes.Buffer{}, INFO, false)

	got := l.filterSensitiveInfo("discord token=abc.def.ghi")
	if strings.Contains(got, "abc.def.ghi") {
		t.Errorf("token should be masked: %q", got)
	}

	plain := "Loaded 3 submissions"
	if l.filterSensitiveInfo(plain) != plain {
		t.Errorf("plain message should be unchanged")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug": DEBUG,
		"INFO":  INFO,
		"Warn":  WARN,
		"ERROR": ERROR,
		"":      INFO,
		"bogus": INFO,
	}
	for input, expected := range tests {
		if got := ParseLogLevel(input); got != expected {
			t.Errorf("ParseLogLevel(%q) = %v, expected %v", input, got, expected)
		}
	}
}
