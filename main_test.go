package main

import (
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestConfigureLogLevelFromEnv(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.Disabled) })

	tests := []struct {
		value string
		want  zerolog.Level
	}{
		{"", zerolog.Disabled},
		{"0", zerolog.Disabled},
		{"false", zerolog.Disabled},
		{"1", zerolog.DebugLevel},
		{"true", zerolog.DebugLevel},
		{"verbose", zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run("DEBUG_CONFLUX="+tt.value, func(t *testing.T) {
			t.Setenv("DEBUG_CONFLUX", tt.value)
			configureLogLevelFromEnv()
			if got := zerolog.GlobalLevel(); got != tt.want {
				t.Errorf("expected log level %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSetupInterruptListener(t *testing.T) {
	stopChan := setupInterruptListener()
	if stopChan == nil {
		t.Fatal("expected non-nil channel from setupInterruptListener")
	}
	if cap(stopChan) != 1 {
		t.Errorf("expected a buffered channel of size 1, got %d", cap(stopChan))
	}

	stopChan <- os.Interrupt
	select {
	case sig := <-stopChan:
		if sig != os.Interrupt {
			t.Errorf("expected os.Interrupt, got %v", sig)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("did not receive signal on channel")
	}
}

func TestHandleInterrupt(t *testing.T) {
	stopChan := make(chan os.Signal, 1)
	exitCode := make(chan int, 1)
	logged := make(chan string, 1)

	go handleInterrupt(stopChan, func(msg string) { logged <- msg }, func(code int) { exitCode <- code })

	select {
	case <-exitCode:
		t.Fatal("exit called before any signal")
	case <-time.After(20 * time.Millisecond):
	}

	stopChan <- os.Interrupt

	select {
	case code := <-exitCode:
		if code != 1 {
			t.Errorf("expected exit code 1, got %d", code)
		}
		if msg := <-logged; msg != "Interrupt signal received. Exiting..." {
			t.Errorf("unexpected log message %q", msg)
		}
	case <-time.After(time.Second):
		t.Error("exit function was not called on interrupt")
	}
}
