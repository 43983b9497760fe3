package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		level   string
		want    zapcore.Level
		wantErr bool
	}{
		{level: "", want: zapcore.WarnLevel},
		{level: "debug", want: zapcore.DebugLevel},
		{level: "ERROR", want: zapcore.ErrorLevel},
		{level: "chatty", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			l, err := New(tc.level)
			if tc.wantErr {
				if err == nil {
					t.Errorf("New(%q) expected an error", tc.level)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q) unexpected error: %v", tc.level, err)
			}
			if !l.Core().Enabled(tc.want) || (tc.want > zapcore.DebugLevel && l.Core().Enabled(tc.want-1)) {
				t.Errorf("New(%q) is not at level %v", tc.level, tc.want)
			}
		})
	}
}

func TestNamed(t *testing.T) {
	if l := Named(nil, "book"); l == nil {
		t.Error("Named(nil) returned nil")
	}
}
