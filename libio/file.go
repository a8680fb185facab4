package libio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
)

// IOError is returned by [WriteFile] when the file itself could not be
// created, written or closed.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// WriteFile creates or truncates path and hands a buffered writer to encode.
// The file is closed on every path; a failed write removes the partial file.
func WriteFile(path string, encode func(w io.Writer) error) (err error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	if err != nil {
		return &IOError{Op: "create", Path: path, Err: err}
	}

	defer func() {
		cerr := file.Close()
		if err == nil && cerr != nil {
			err = &IOError{Op: "close", Path: path, Err: cerr}
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	bw := bufio.NewWriter(file)
	if err = encode(bw); err != nil {
		var ioErr *IOError
		if errors.As(err, &ioErr) {
			return err
		}
		return &IOError{Op: "write", Path: path, Err: err}
	}
	if err = bw.Flush(); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}
