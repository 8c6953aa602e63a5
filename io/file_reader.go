package io

import (
	"errors"
	stdio "io"
	"os"
)

var ErrFileNotOpened = errors.New("file not opened")

type FileReader struct {
	path   string
	file   *os.File
	opened bool
}

func NewFileReader(path string) *FileReader {
	return &FileReader{path: path}
}

// Open opens the file for reading, or truncates it for writing.
func (f *FileReader) Open(readOnly bool) (topErr error) {

	var perm os.FileMode = 0644

	if readOnly {
		f.file, topErr = os.OpenFile(f.path, os.O_RDONLY, perm)
	} else {
		f.file, topErr = os.OpenFile(f.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	}

	if topErr == nil {
		f.opened = true
	}

	return topErr
}

func (f *FileReader) Close() error {
	if !f.opened {
		return nil
	}

	f.opened = false
	return f.file.Close()
}

func (f *FileReader) ReadAll() ([]byte, error) {
	if !f.opened {
		return nil, ErrFileNotOpened
	}

	return stdio.ReadAll(f.file)
}

func (f *FileReader) Write(in []byte) error {
	if !f.opened {
		return ErrFileNotOpened
	}

	writtenBytes, err := f.file.Write(in)
	if err != nil {
		return err
	}

	if writtenBytes != len(in) {
		return errors.New("written bytes mismatch")
	}

	return f.file.Sync()
}

// WriteFile replaces the file contents with data.
func WriteFile(path string, data []byte) error {
	fw := NewFileReader(path)

	if openErr := fw.Open(false); openErr != nil {
		return openErr
	}
	defer fw.Close()

	return fw.Write(data)
}

// ReadFile reads a whole file, os.ErrNotExist is returned untouched.
func ReadFile(path string) ([]byte, error) {
	fr := NewFileReader(path)

	if openErr := fr.Open(true); openErr != nil {
		return nil, openErr
	}
	defer fr.Close()

	return fr.ReadAll()
}
