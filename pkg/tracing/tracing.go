package tracing

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

type TracingService[T any] struct {
	OutputFile   string
	InputChannel chan T

	Header        string
	WriteFunction func(io.Writer, T) error

	done chan struct{}
}

func NewTracingService[T any](outputFile, header string, writeFunction func(io.Writer, T) error) *TracingService[T] {
	return &TracingService[T]{
		OutputFile:    outputFile,
		InputChannel:  make(chan T, 100),
		Header:        header,
		WriteFunction: writeFunction,
		done:          make(chan struct{}),
	}
}

// StartTracingService truncates the output file, writes the header and then
// drains InputChannel in the background until Stop is called.
func (ts *TracingService[T]) StartTracingService() error {
	f, err := CreateFileIfNotExist(ts.OutputFile)
	if err != nil {
		return err
	}

	_, err = f.WriteString(ts.Header)
	f.Close()
	if err != nil {
		return fmt.Errorf("writing trace header to %s: %w", ts.OutputFile, err)
	}

	go ts.drain()

	return nil
}

func (ts *TracingService[T]) drain() {
	defer close(ts.done)

	for msg := range ts.InputChannel {
		// Reopened per entry so the file is complete up to the last tick if
		// the process is killed.
		f, err := os.OpenFile(ts.OutputFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			logrus.Errorf("Failed to open trace file %s - %v", ts.OutputFile, err)
			continue
		}

		if err := ts.WriteFunction(f, msg); err != nil {
			logrus.Errorf("Failed to write trace entry - %v", err)
		}

		if err := f.Close(); err != nil {
			logrus.Errorf("Failed to close trace file %s - %v", ts.OutputFile, err)
		}
	}
}

// Stop flushes pending entries. The service cannot be restarted.
func (ts *TracingService[T]) Stop() {
	close(ts.InputChannel)
	<-ts.done
}

func CreateFileIfNotExist(path string) (*os.File, error) {
	directory := filepath.Dir(path)
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		if err = os.MkdirAll(directory, 0700); err != nil {
			return nil, fmt.Errorf("creating trace directory %s: %w", directory, err)
		}
	}

	os.Remove(path) // We don't want previous values
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open output log file %s: %w", path, err)
	}

	return f, nil
}
