package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	testCases := map[string]struct {
		level   log.Level
		logFunc func(*log.Logger)
		expLog  bool
	}{
		"infoAtInfo":   {level: log.InfoLevel, logFunc: func(l *log.Logger) { l.Info("test") }, expLog: true},
		"debugAtInfo":  {level: log.InfoLevel, logFunc: func(l *log.Logger) { l.Debug("test") }, expLog: false},
		"debugAtDebug": {level: log.DebugLevel, logFunc: func(l *log.Logger) { l.Debug("test") }, expLog: true},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			tc.logFunc(newLogger(&buf, tc.level))

			if got := buf.Len() > 0; got != tc.expLog {
				t.Errorf("exp log output %t, got %t", tc.expLog, got)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var out, logs bytes.Buffer
	c := New(&out, &logs, LogInfo)

	c.Logger.Debug("hidden")
	if logs.Len() != 0 {
		t.Fatalf("exp no debug output at info level, got %q", logs.String())
	}

	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !strings.Contains(logs.String(), "shown") {
		t.Errorf("exp debug output after SetLogLevel, got %q", logs.String())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))

	time.Sleep(10 * time.Millisecond)
	prog.done("Fetched 3 definitions")

	if !strings.Contains(buf.String(), "Fetched 3 definitions (") {
		t.Errorf("exp message with elapsed time, got %q", buf.String())
	}
}
