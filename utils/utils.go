package utils

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"

	gzip "github.com/klauspost/pgzip"
	log "github.com/sirupsen/logrus"
)

func Check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func Abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

// OutputJSON writes the json representation of stats to an io.Writer
func OutputJSON(writer io.Writer, stats interface{}) error {
	b, err := json.MarshalIndent(stats, "", "\t")
	if err != nil {
		return err
	}
	_, err = writer.Write(append(b, '\n'))
	return err
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

type fileWriter struct {
	*bufio.Writer
	closers []io.Closer
}

func (w *fileWriter) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	for _, c := range w.closers {
		if err := c.Close(); err != nil {
			return err
		}
	}
	return nil
}

// NewWriter returns a new io.WriteCloser given an output file name. If the file name is '-' os.Stdout is returned.
// Files ending in .gz are gzip compressed.
func NewWriter(output string) (io.WriteCloser, error) {
	if output == "-" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(output)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(output, ".gz") {
		gz := gzip.NewWriter(f)
		return &fileWriter{bufio.NewWriter(gz), []io.Closer{gz, f}}, nil
	}
	return &fileWriter{bufio.NewWriter(f), []io.Closer{f}}, nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (r *readCloser) Close() error {
	var err error
	for _, c := range r.closers {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// NewReader returns a new io.ReadCloser given an input file name. If the file name is '-' os.Stdin is returned.
// Files ending in .gz are decompressed.
func NewReader(input string) (io.ReadCloser, error) {
	if input == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(input, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &readCloser{gz, []io.Closer{gz, f}}, nil
	}
	return &readCloser{f, []io.Closer{f}}, nil
}
