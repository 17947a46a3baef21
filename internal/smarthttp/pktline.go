package smarthttp

import "fmt"

// pktLine frames s as a Git pkt-line: a 4-hex-digit length prefix (counting
// itself) followed by the payload. Used only for the "# service=…" preamble
// that info/refs advertisement responses require; everything past that is
// the child process's own pkt-line-framed output, passed through untouched.
func pktLine(s string) []byte {
	return []byte(fmt.Sprintf("%04x%s", len(s)+4, s))
}

// flushPkt is the pkt-line "flush" packet terminating the preamble.
const flushPkt = "0000"
