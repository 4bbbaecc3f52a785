package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	// ErrConfigExists is returned when the target configuration is already present.
	ErrConfigExists = errors.New("configuration file already exists")

	// ErrTemplateMissing is returned when the template to copy cannot be found.
	ErrTemplateMissing = errors.New("template not found")
)

// CheckTarget fails with ErrConfigExists when path exists.
func CheckTarget(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}
	return nil
}

// CheckTemplate fails with ErrTemplateMissing unless path is a regular file.
func CheckTemplate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrTemplateMissing, path)
		}
		return fmt.Errorf("failed to check %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrTemplateMissing, path)
	}
	return nil
}

// CopyTemplate copies the template verbatim to target, creating parent
// directories. It never overwrites an existing target.
func CopyTemplate(template, target string) error {
	if err := CheckTemplate(template); err != nil {
		return err
	}

	// #nosec G304 - template path comes from operator settings
	src, err := os.Open(template)
	if err != nil {
		return fmt.Errorf("failed to open template: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(target), err)
	}

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrConfigExists, target)
		}
		return fmt.Errorf("failed to create %s: %w", target, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("failed to copy template: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", target, err)
	}

	return nil
}
