package lsp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func frame(bodies ...string) string {
	var sb strings.Builder
	for _, body := range bodies {
		fmt.Fprintf(&sb, "Content-Length: %d\r\n\r\n%s", len(body), body)
	}
	return sb.String()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func serve(t *testing.T, input string) ([]string, error) {
	t.Helper()

	var out bytes.Buffer
	err := NewServer(strings.NewReader(input), &out, discardLogger(), "test").Serve(context.Background())

	var messages []string
	r := bufio.NewReader(&out)
	for {
		body, readErr := readMsg(r)
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			t.Fatalf("server wrote a malformed frame: %v", readErr)
		}
		messages = append(messages, string(body))
	}

	return messages, err
}

func TestServe(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
		err      error
	}{
		{
			name: "full lifecycle",
			input: []string{
				`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"capabilities":{}}}`,
				`{"jsonrpc":"2.0","method":"initialized","params":{}}`,
				`{"jsonrpc":"2.0","id":2,"method":"shutdown"}`,
				`{"jsonrpc":"2.0","method":"exit"}`,
			},
			expected: []string{
				`{"jsonrpc":"2.0","id":1,"result":{"capabilities":{},"serverInfo":{"name":"ranni","version":"test"}}}`,
				`{"jsonrpc":"2.0","method":"window/logMessage","params":{"type":3,"message":"server initialized!"}}`,
				`{"jsonrpc":"2.0","id":2,"result":null}`,
			},
		},
		{
			name: "exit without shutdown",
			input: []string{
				`{"jsonrpc":"2.0","method":"exit"}`,
			},
			err: ErrExitWithoutShutdown,
		},
		{
			name: "unknown methods",
			input: []string{
				`{"jsonrpc":"2.0","id":"a","method":"textDocument/hover","params":{}}`,
				`{"jsonrpc":"2.0","method":"$/cancelRequest","params":{"id":1}}`,
			},
			expected: []string{
				`{"jsonrpc":"2.0","id":"a","error":{"code":-32601,"message":"method not found"}}`,
			},
		},
		{
			name: "requests after shutdown",
			input: []string{
				`{"jsonrpc":"2.0","id":1,"method":"shutdown"}`,
				`{"jsonrpc":"2.0","id":2,"method":"initialize","params":{}}`,
				`{"jsonrpc":"2.0","method":"initialized","params":{}}`,
				`{"jsonrpc":"2.0","method":"exit"}`,
			},
			expected: []string{
				`{"jsonrpc":"2.0","id":1,"result":null}`,
				`{"jsonrpc":"2.0","id":2,"error":{"code":-32600,"message":"server is shutting down"}}`,
			},
		},
		{
			name: "malformed json",
			input: []string{
				`{"jsonrpc":`,
				`{"jsonrpc":"2.0","id":7,"method":"shutdown"}`,
			},
			expected: []string{
				`{"jsonrpc":"2.0","id":null,"error":{"code":-32700,"message":"parse error"}}`,
				`{"jsonrpc":"2.0","id":7,"result":null}`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages, err := serve(t, frame(tt.input...))
			if !errors.Is(err, tt.err) {
				t.Fatalf("Serve returned %v, expected %v", err, tt.err)
			}
			if len(messages) != len(tt.expected) {
				t.Fatalf("got %d messages, expected %d: %q", len(messages), len(tt.expected), messages)
			}
			for i := range tt.expected {
				if messages[i] != tt.expected[i] {
					t.Errorf("message %d:\n  got      %s\n  expected %s", i, messages[i], tt.expected[i])
				}
			}
		})
	}
}

func TestServeTruncatedInput(t *testing.T) {
	_, err := serve(t, "Content-Length: 40\r\n\r\n{\"jsonrpc\"")
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("Serve returned %v, expected %v", err, io.ErrUnexpectedEOF)
	}
}

func TestServeOversizedFrame(t *testing.T) {
	_, err := serve(t, "Content-Length: 9223372036854775807\r\n\r\n{}")
	if !errors.Is(err, errContentLengthTooLarge) {
		t.Fatalf("Serve returned %v, expected %v", err, errContentLengthTooLarge)
	}
}

func TestServeCancelled(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewServer(r, io.Discard, discardLogger(), "test").Serve(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Serve returned %v, expected %v", err, context.Canceled)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

func TestReadMsg(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		err      error
	}{
		{
			name:     "extra headers",
			input:    "Content-Type: application/vscode-jsonrpc\r\ncontent-length: 2\r\n\r\n{}",
			expected: "{}",
		},
		{
			name:  "missing length",
			input: "Content-Type: x\r\n\r\n{}",
			err:   errMissingContentLength,
		},
		{
			name:  "length above limit",
			input: "Content-Length: 67108865\r\n\r\n{}",
			err:   errContentLengthTooLarge,
		},
		{
			name:  "negative length",
			input: "Content-Length: -1\r\n\r\n{}",
			err:   errMissingContentLength,
		},
		{
			name:  "clean end",
			input: "",
			err:   io.EOF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := readMsg(bufio.NewReader(strings.NewReader(tt.input)))
			if !errors.Is(err, tt.err) {
				t.Fatalf("readMsg returned %v, expected %v", err, tt.err)
			}
			if string(body) != tt.expected {
				t.Errorf("body = %q, expected %q", body, tt.expected)
			}
		})
	}
}
