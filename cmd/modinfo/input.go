package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dhamidi/modinfo/classfile"
	"github.com/dhamidi/modinfo/java/module"
)

// readSource reads path, or standard input when path is "-".
func readSource(in io.Reader, path string) ([]byte, string, error) {
	if path == "-" {
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, "<stdin>", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read module declaration: %w", err)
	}
	return data, path, nil
}

// parseModel builds the model of a module-info.java source, or of a
// compiled module-info.class when path ends in .class.
func (a *app) parseModel(in io.Reader, path string) (*module.Model, error) {
	if filepath.Ext(path) == ".class" {
		return classfile.ReadModuleFile(path)
	}
	data, name, err := readSource(in, path)
	if err != nil {
		return nil, err
	}
	listener, err := a.listener()
	if err != nil {
		return nil, err
	}
	return module.Parse(bytes.NewReader(data), module.WithFile(name), module.WithListener(listener))
}
