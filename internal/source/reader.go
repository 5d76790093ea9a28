package source

import (
	"bufio"
	"fmt"
	"os"
)

// LineScanner streams text lines from an ordered list of files as one
// logical sequence, in the same Scan/Text/Err shape as bufio.Scanner.
// Each file is opened, fully drained and closed before the next one is
// touched. Trailing line terminators are stripped by the underlying
// bufio.Scanner. A file that vanished or became unreadable between
// resolution and read stops the scan and surfaces through Err; unreadable
// files are never skipped silently.
type LineScanner struct {
	paths   []string
	next    int
	file    *os.File
	scanner *bufio.Scanner
	line    string
	err     error
}

// NewLineScanner returns a scanner over the given file paths.
func NewLineScanner(paths []string) *LineScanner {
	return &LineScanner{paths: paths}
}

// Scan advances to the next line, crossing file boundaries transparently.
// It returns false at the end of the last file or on the first error.
func (s *LineScanner) Scan() bool {
	if s.err != nil {
		return false
	}
	for {
		if s.scanner == nil {
			if s.next >= len(s.paths) {
				return false
			}
			file, err := os.Open(s.paths[s.next])
			if err != nil {
				s.err = fmt.Errorf("opening log file: %w", err)
				return false
			}
			s.next++
			s.file = file
			s.scanner = bufio.NewScanner(file)
			// Log lines can be long; allow up to 1MiB per line.
			s.scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		}

		if s.scanner.Scan() {
			s.line = s.scanner.Text()
			return true
		}

		scanErr := s.scanner.Err()
		closeErr := s.file.Close()
		s.file = nil
		s.scanner = nil
		if scanErr != nil {
			s.err = fmt.Errorf("reading %s: %w", s.paths[s.next-1], scanErr)
			return false
		}
		if closeErr != nil {
			s.err = fmt.Errorf("closing %s: %w", s.paths[s.next-1], closeErr)
			return false
		}
	}
}

// Text returns the line produced by the last successful Scan, without its
// line terminator.
func (s *LineScanner) Text() string {
	return s.line
}

// Err reports the first error encountered while opening or reading files.
func (s *LineScanner) Err() error {
	return s.err
}
