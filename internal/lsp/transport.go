package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxContentLength bounds a single message body.
const maxContentLength = 64 << 20

var (
	errMissingContentLength  = errors.New("missing Content-Length header")
	errContentLengthTooLarge = fmt.Errorf("Content-Length exceeds %d bytes", maxContentLength)
)

// readMsg reads one Content-Length framed message body. It returns io.EOF
// only when the stream ends cleanly between messages.
func readMsg(r *bufio.Reader) ([]byte, error) {
	contentLen := -1
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && line != "" {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}

		key, value, found := strings.Cut(line, ":")
		if !found || !strings.EqualFold(strings.TrimSpace(key), "Content-Length") {
			continue
		}
		contentLen, err = strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid Content-Length %q: %w", value, err)
		}
	}

	if contentLen < 0 {
		return nil, errMissingContentLength
	}
	if contentLen > maxContentLength {
		return nil, errContentLengthTooLarge
	}

	body := make([]byte, contentLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	return body, nil
}

func writeMsg(w io.Writer, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "Content-Length: %d\r\n\r\n", len(body))
	b.Write(body)

	_, err = w.Write(b.Bytes())
	return err
}
