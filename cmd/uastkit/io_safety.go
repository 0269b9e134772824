package main

import (
	"bufio"
	"errors"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/dustin/go-humanize"
	"github.com/pierrec/lz4/v4"

	"github.com/Sumatoshi-tech/uastkit/pkg/safeconv"
)

// lz4Ext marks dump files stored as LZ4 frames.
const lz4Ext = ".lz4"

var (
	// ErrDirectoryPath indicates a file operation was attempted on a directory.
	ErrDirectoryPath = errors.New("path points to a directory")
	// ErrEmptyPath indicates a path argument was empty.
	ErrEmptyPath = errors.New("path is empty")
	// ErrPathContainsNUL indicates the path contains a NUL byte.
	ErrPathContainsNUL = errors.New("path contains NUL byte")
	// ErrFileTooLarge indicates the file exceeds convert.max_file_size.
	ErrFileTooLarge = errors.New("file too large")
)

func safeReadFile(path string, maxSize int64) (content []byte, resolvedPath string, err error) {
	resolvedPath, info, err := resolveUserFilePath(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolve path %q: %w", path, err)
	}

	if maxSize > 0 && info.Size() > maxSize {
		return nil, "", fmt.Errorf("%w: %s is %s, limit %s", ErrFileTooLarge, resolvedPath,
			humanize.Bytes(safeconv.MustInt64ToUint64(info.Size())),
			humanize.Bytes(safeconv.MustInt64ToUint64(maxSize)))
	}

	//nolint:gosec // resolvedPath is normalized and existence/type checked in resolveUserFilePath.
	content, err = os.ReadFile(resolvedPath)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", resolvedPath, err)
	}

	return content, resolvedPath, nil
}

func resolveUserFilePath(path string) (string, os.FileInfo, error) {
	if strings.TrimSpace(path) == "" {
		return "", nil, ErrEmptyPath
	}

	if strings.ContainsRune(path, '\x00') {
		return "", nil, fmt.Errorf("%w: %q", ErrPathContainsNUL, path)
	}

	cleanPath := filepath.Clean(path)

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return "", nil, fmt.Errorf("resolve absolute path for %q: %w", path, err)
	}

	//nolint:gosec // absPath is normalized by filepath.Clean + filepath.Abs.
	info, err := os.Stat(absPath)
	if err != nil {
		return "", nil, fmt.Errorf("stat %s: %w", absPath, err)
	}

	if info.IsDir() {
		return "", nil, fmt.Errorf("%w: %s", ErrDirectoryPath, absPath)
	}

	return absPath, info, nil
}

// readDump reads a dump from path, or stdin for "-". Files ending in .lz4
// are decompressed.
func readDump(path string, stdin io.Reader) ([]byte, string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}

		return data, "stdin", nil
	}

	resolved, _, err := resolveUserFilePath(path)
	if err != nil {
		return nil, "", fmt.Errorf("resolve path %q: %w", path, err)
	}

	//nolint:gosec // resolved is normalized and existence/type checked in resolveUserFilePath.
	f, err := os.Open(resolved)
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", resolved, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(filepath.Ext(resolved), lz4Ext) {
		r = lz4.NewReader(f)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", resolved, err)
	}

	return data, path, nil
}

// outputFile is a buffered, optionally LZ4-compressed output file.
type outputFile struct {
	file *os.File
	buf  *bufio.Writer
	zw   *lz4.Writer
	w    io.Writer
}

// createOutput creates path. Paths ending in .lz4 are written as LZ4 frames.
func createOutput(path string) (*outputFile, error) {
	if dir := filepath.Dir(path); dir != "." {
		err := os.MkdirAll(dir, 0o750)
		if err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	//nolint:gosec // output path is chosen by the user.
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	out := &outputFile{file: f, buf: bufio.NewWriter(f)}
	out.w = out.buf

	if strings.EqualFold(filepath.Ext(path), lz4Ext) {
		out.zw = lz4.NewWriter(out.buf)
		out.w = out.zw
	}

	return out, nil
}

func (o *outputFile) Write(p []byte) (int, error) {
	n, err := o.w.Write(p)
	if err != nil {
		return n, fmt.Errorf("write %s: %w", o.file.Name(), err)
	}

	return n, nil
}

// Close flushes the compressor and buffer, then closes the file.
func (o *outputFile) Close() error {
	var zerr error
	if o.zw != nil {
		zerr = o.zw.Close()
	}

	return errors.Join(zerr, o.buf.Flush(), o.file.Close())
}

func sanitizeForTerminal(input string) string {
	escaped := html.EscapeString(input)

	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, escaped)
}
