package main

import "testing"

func TestMainWiring(t *testing.T) {
	origSetVersion := setVersionInfo
	origExecute := executeCmd
	origCloseLogging := closeLogging
	origExit := exit
	t.Cleanup(func() {
		setVersionInfo = origSetVersion
		executeCmd = origExecute
		closeLogging = origCloseLogging
		exit = origExit
	})

	calls := struct {
		version bool
		exec    bool
		close   bool
		code    int
	}{code: -1}

	setVersionInfo = func(v, c, d string) {
		calls.version = true
		if v == "" || c == "" || d == "" {
			t.Fatalf("expected version info to be set")
		}
	}
	executeCmd = func() int {
		calls.exec = true
		return 3
	}
	closeLogging = func() error {
		calls.close = true
		return nil
	}
	exit = func(code int) { calls.code = code }

	main()

	if !calls.version || !calls.exec || !calls.close {
		t.Fatalf("expected all wiring calls, got %+v", calls)
	}
	if calls.code != 3 {
		t.Fatalf("expected exit code 3, got %d", calls.code)
	}
}
