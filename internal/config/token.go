package config

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

// TokenSource supplies the bearer token for the API.
type TokenSource interface {
	Token() (string, error)
}

type StaticToken string

func (t StaticToken) Token() (string, error) {
	if t == "" {
		return "", fmt.Errorf("token is empty")
	}
	return string(t), nil
}

// FileToken reads the token from a file, ignoring surrounding whitespace.
type FileToken struct {
	Fs   afero.Fs
	Path string
}

func (f FileToken) Token() (string, error) {
	data, err := afero.ReadFile(f.Fs, f.Path)
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", f.Path)
	}
	return token, nil
}
