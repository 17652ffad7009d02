package logging

import (
	"bytes"
	"io"
	"regexp"
)

const redacted = "[REDACTED]"

// secretPattern matches base58 extended private keys (xprv/tprv) and WIF keys.
var secretPattern = regexp.MustCompile(
	`\b(?:xprv|tprv)[1-9A-HJ-NP-Za-km-z]{107}\b|\b[5KLc9][1-9A-HJ-NP-Za-km-z]{50,51}\b`,
)

// PrefixWriter prefixes every complete line written to it and masks
// serialized private keys before the line reaches the underlying writer.
type PrefixWriter struct {
	prefix  []byte
	writer  io.Writer
	pending bytes.Buffer
}

// NewPrefixWriter creates a new PrefixWriter.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	return &PrefixWriter{
		prefix: []byte(prefix),
		writer: w,
	}
}

// Write buffers p and emits each complete line as one write of
// prefix || masked line. Incomplete lines wait for more data or Flush.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	pw.pending.Write(p)

	for {
		i := bytes.IndexByte(pw.pending.Bytes(), '\n')
		if i < 0 {
			break
		}
		if err := pw.emit(pw.pending.Next(i + 1)); err != nil {
			return 0, err
		}
	}

	return len(p), nil
}

// Flush writes a pending partial line, newline terminated.
func (pw *PrefixWriter) Flush() error {
	if pw.pending.Len() == 0 {
		return nil
	}
	line := append(bytes.Clone(pw.pending.Bytes()), '\n')
	pw.pending.Reset()
	return pw.emit(line)
}

func (pw *PrefixWriter) emit(line []byte) error {
	out := make([]byte, 0, len(pw.prefix)+len(line))
	out = append(out, pw.prefix...)
	out = append(out, Redact(line)...)
	_, err := pw.writer.Write(out)
	return err
}

// Redact replaces every serialized private key in b with a marker.
func Redact(b []byte) []byte {
	return secretPattern.ReplaceAll(b, []byte(redacted))
}
