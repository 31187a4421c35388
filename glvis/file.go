package glvis

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// FileName returns the per-process file name GLVis expects: prefix
// followed by the six-digit zero-padded id.
func FileName(prefix string, id int) string {
	return fmt.Sprintf("%s.%06d", prefix, id)
}

// WriteFile creates (or truncates) path and runs write against a buffered
// writer on it. The file is flushed and closed even when write fails; the
// first error wins.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(f)
	if err = write(bw); err != nil {
		return err
	}

	return bw.Flush()
}

// PrintData writes the companion data file listing the number of
// processes that wrote mesh and solution files.
func PrintData(w io.Writer, numProcs int) error {
	if numProcs < 1 {
		return fmt.Errorf("glvis.PrintData(%d): %w", numProcs, ErrInvalidMesh)
	}
	_, err := fmt.Fprintf(w, "np %d\n", numProcs)

	return err
}
