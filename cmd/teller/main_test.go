package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/iho/goteller/internal/domain"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func resetFlags() {
	demoMode = false
	jsonOut = false
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("expected short unchanged, got %q", got)
	}

	if got := truncate("longerstring", 6); got != "lon..." {
		t.Fatalf("expected lon..., got %q", got)
	}

	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("expected hard cut for tiny max, got %q", got)
	}
}

func TestPrintJSON(t *testing.T) {
	out := captureOutput(t, func() {
		printJSON(struct {
			A int `json:"a"`
		}{A: 1})
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrAccountNotFound, exitNotFound},
		{domain.ErrTransactionNotFound, exitNotFound},
		{domain.ErrCardNotSupported, exitBadRequest},
		{domain.ErrInvalidAmount, exitBadRequest},
		{domain.ErrTransactionAlreadyPosted, exitUnprocessable},
		{domain.ErrTransactionPosted, exitConflict},
		{errors.New("boom"), exitInternal},
	}

	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Fatalf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestDemoCommand(t *testing.T) {
	resetFlags()

	root := newRootCmd()
	root.SetArgs([]string{"demo"})

	var execErr error
	out := captureOutput(t, func() {
		execErr = root.Execute()
	})
	if execErr != nil {
		t.Fatalf("demo failed: %v", execErr)
	}

	for _, want := range []string{
		"APPROVED",
		"DENIED",
		"delete refused",
		"950.00",
		"Coffee Shop",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("demo output missing %q:\n%s", want, out)
		}
	}
}

func TestTxCreateInDemoMode(t *testing.T) {
	resetFlags()

	root := newRootCmd()
	root.SetArgs([]string{
		"tx", "create", "--demo",
		"--account", demoCheckingNumber,
		"--type", "deposit",
		"--method", "ach",
		"--amount", "2500",
		"--desc", "paycheck",
	})

	var execErr error
	out := captureOutput(t, func() {
		execErr = root.Execute()
	})
	if execErr != nil {
		t.Fatalf("create failed: %v", execErr)
	}

	for _, want := range []string{"DEPOSIT via ACH", "25.00", "CREATED/PENDING", "paycheck"} {
		if !strings.Contains(out, want) {
			t.Fatalf("create output missing %q:\n%s", want, out)
		}
	}
}

func TestTxCreateRejectsCardNumbers(t *testing.T) {
	resetFlags()

	root := newRootCmd()
	root.SetArgs([]string{
		"tx", "create", "--demo",
		"--account", demoCheckingNumber,
		"--type", "PURCHASE",
		"--method", "CARD",
		"--amount", "100",
		"--card", "4111111111111111",
	})

	err := root.Execute()
	if !errors.Is(err, domain.ErrCardNotSupported) {
		t.Fatalf("expected ErrCardNotSupported, got %v", err)
	}
	if exitCode(err) != exitBadRequest {
		t.Fatalf("expected exit code %d, got %d", exitBadRequest, exitCode(err))
	}
}

func TestAccountsShowNotFound(t *testing.T) {
	resetFlags()

	root := newRootCmd()
	root.SetArgs([]string{"accounts", "show", "9999999999", "--demo"})

	err := root.Execute()
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
	if exitCode(err) != exitNotFound {
		t.Fatalf("expected exit code %d, got %d", exitNotFound, exitCode(err))
	}
}

func TestAccountsOpenJSONOutput(t *testing.T) {
	resetFlags()

	root := newRootCmd()
	root.SetArgs([]string{
		"accounts", "open", "--demo", "--json",
		"--kind", "savings",
		"--owner", "Grace Hopper",
		"--balance", "12345",
	})

	var execErr error
	out := captureOutput(t, func() {
		execErr = root.Execute()
	})
	if execErr != nil {
		t.Fatalf("open failed: %v", execErr)
	}

	var view map[string]any
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", out, err)
	}

	if view["formattedBalance"] != "123.45" {
		t.Fatalf("expected formattedBalance 123.45, got %v", view["formattedBalance"])
	}
	if view["kind"] != "SAVINGS" {
		t.Fatalf("expected kind SAVINGS, got %v", view["kind"])
	}
	if _, ok := view["availableBalance"]; ok {
		t.Fatalf("savings accounts must not expose an available balance")
	}

	number, _ := view["accountNumber"].(string)
	if len(number) != 10 {
		t.Fatalf("expected a generated 10-digit account number, got %q", number)
	}
}

func TestTxListEmptyAccount(t *testing.T) {
	resetFlags()

	root := newRootCmd()
	root.SetArgs([]string{"tx", "list", "--demo", "--account", demoSavingsNumber})

	var execErr error
	out := captureOutput(t, func() {
		execErr = root.Execute()
	})
	if execErr != nil {
		t.Fatalf("list failed: %v", execErr)
	}

	if !strings.Contains(out, "no transactions") {
		t.Fatalf("expected empty listing, got %q", out)
	}
}
