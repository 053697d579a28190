package cmd

import (
	"io"
	"os"
)

var (
	outWriterFunc = func() io.Writer { return os.Stdout }
	errWriterFunc = func() io.Writer { return os.Stderr }
	inReaderFunc  = func() io.Reader { return os.Stdin }
)

func init() {
	outWriterFunc = func() io.Writer { return rootCmd.OutOrStdout() }
	errWriterFunc = func() io.Writer { return rootCmd.ErrOrStderr() }
	inReaderFunc = func() io.Reader { return rootCmd.InOrStdin() }
}

func outWriter() io.Writer {
	return outWriterFunc()
}

func errWriter() io.Writer {
	return errWriterFunc()
}

func inReader() io.Reader {
	return inReaderFunc()
}
