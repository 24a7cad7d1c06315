package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

const serverName = "ranni"

var ErrExitWithoutShutdown = errors.New("lsp: exit received before shutdown")

var nullID = json.RawMessage("null")

// Server implements the language server lifecycle. It answers initialize and
// shutdown, and otherwise only rejects what it does not understand.
type Server struct {
	in      *bufio.Reader
	out     io.Writer
	log     *slog.Logger
	version string

	shutdown bool
}

type incoming struct {
	body []byte
	err  error
}

func NewServer(in io.Reader, out io.Writer, logger *slog.Logger, version string) *Server {
	return &Server{
		in:      bufio.NewReader(in),
		out:     out,
		log:     logger,
		version: version,
	}
}

// Serve handles messages one at a time until the client sends exit, the
// input ends, or ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	msgs := make(chan incoming)
	go s.readLoop(ctx, msgs)

	s.log.Info("language server started", "version", s.version)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var msg incoming
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg = <-msgs:
		}

		if msg.err != nil {
			if errors.Is(msg.err, io.EOF) {
				s.log.Info("input closed")
				return nil
			}
			return fmt.Errorf("failed to read message: %w", msg.err)
		}

		var req Request
		if err := json.Unmarshal(msg.body, &req); err != nil {
			s.log.Warn("malformed message", "error", err)
			if err := s.sendError(nullID, CodeParseError, "parse error"); err != nil {
				return err
			}
			continue
		}

		exit, err := s.handle(req)
		if err != nil {
			return fmt.Errorf("failed to answer %s: %w", req.Method, err)
		}
		if exit {
			if !s.shutdown {
				return ErrExitWithoutShutdown
			}
			s.log.Info("language server stopped")
			return nil
		}
	}
}

func (s *Server) readLoop(ctx context.Context, msgs chan<- incoming) {
	for {
		body, err := readMsg(s.in)

		select {
		case msgs <- incoming{body: body, err: err}:
		case <-ctx.Done():
			return
		}

		if err != nil {
			return
		}
	}
}

func (s *Server) handle(req Request) (bool, error) {
	s.log.Debug("received", "method", req.Method, "notification", req.IsNotification())

	if s.shutdown && req.Method != "exit" {
		if req.IsNotification() {
			return false, nil
		}
		return false, s.sendError(req.ID, CodeInvalidRequest, "server is shutting down")
	}

	switch req.Method {
	case "initialize":
		return false, s.sendResponse(req.ID, InitializeResult{
			ServerInfo: &ServerInfo{
				Name:    serverName,
				Version: s.version,
			},
		})
	case "initialized":
		return false, s.notify("window/logMessage", LogMessageParams{
			Type:    MessageTypeInfo,
			Message: "server initialized!",
		})
	case "shutdown":
		s.shutdown = true
		return false, s.sendResponse(req.ID, nil)
	case "exit":
		return true, nil
	}

	if req.IsNotification() {
		return false, nil
	}
	return false, s.sendError(req.ID, CodeMethodNotFound, "method not found")
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	if result == nil {
		result = json.RawMessage("null")
	}
	return writeMsg(s.out, Response{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	return writeMsg(s.out, Response{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &ResponseError{Code: code, Message: message},
	})
}

func (s *Server) notify(method string, params any) error {
	return writeMsg(s.out, Notification{JSONRPC: "2.0", Method: method, Params: params})
}
