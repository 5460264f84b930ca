// Package lifefile reads and writes patterns in the Life 1.06 format: a
// "#Life 1.06" header followed by one "x y" line per alive cell.
//
// Files whose name ends in ".zst" are zstd compressed.
package lifefile

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/sparse-gol/model"
)

// Header is the required first non-empty line
const Header = "#Life 1.06"

const zstdExt = ".zst"

var (
	// ErrInvalidFormat is returned for input that is not Life 1.06
	ErrInvalidFormat = errors.New("invalid Life 1.06 input")
	// ErrBadExtension is returned for file names without .life or .lif
	ErrBadExtension = errors.New("pattern files must use the .life or .lif extension")
)

// Parse reads a Life 1.06 pattern. Blank lines and trailing whitespace are
// ignored; anything else after the header must be two int64 values.
func Parse(r io.Reader) (model.AliveSet, error) {
	cells := model.NewAliveSet()
	scanner := bufio.NewScanner(r)
	headerFound := false

	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimRight(scanner.Text(), " \t\r\n")
		if line == "" {
			continue
		}

		if !headerFound {
			if line != Header {
				return nil, errors.Wrapf(ErrInvalidFormat,
					"[Parse] line %d: missing or invalid header (expected %q)", lineNo, Header)
			}
			headerFound = true
			continue
		}

		c, err := parseCell(line)
		if err != nil {
			return nil, errors.Wrapf(err, "[Parse] line %d", lineNo)
		}
		cells.Add(c)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "[Parse] failed to read input")
	}
	if !headerFound {
		return nil, errors.Wrap(ErrInvalidFormat, "[Parse] empty or missing header")
	}

	return cells, nil
}

func parseCell(line string) (model.Cell, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return model.Cell{}, errors.Wrapf(ErrInvalidFormat, "malformed coordinate line %q", line)
	}
	x, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return model.Cell{}, errors.Wrapf(ErrInvalidFormat, "malformed x in %q: %v", line, err)
	}
	y, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return model.Cell{}, errors.Wrapf(ErrInvalidFormat, "malformed y in %q: %v", line, err)
	}
	return model.Cell{X: x, Y: y}, nil
}

// Write emits cells in Life 1.06 format, in lexicographic order when sorted
// is set and in set order otherwise.
func Write(w io.Writer, cells model.AliveSet, sorted bool) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 48)

	if _, err := bw.WriteString(Header + "\n"); err != nil {
		return errors.Wrap(err, "[Write] failed to write header")
	}

	writeCell := func(c model.Cell) error {
		buf = strconv.AppendInt(buf[:0], c.X, 10)
		buf = append(buf, ' ')
		buf = strconv.AppendInt(buf, c.Y, 10)
		buf = append(buf, '\n')
		_, err := bw.Write(buf)
		return err
	}

	if sorted {
		for _, c := range cells.Sorted() {
			if err := writeCell(c); err != nil {
				return errors.Wrap(err, "[Write] failed to write cell")
			}
		}
	} else {
		for c := range cells {
			if err := writeCell(c); err != nil {
				return errors.Wrap(err, "[Write] failed to write cell")
			}
		}
	}

	return errors.Wrap(bw.Flush(), "[Write] failed to flush")
}

// Format renders cells as a Life 1.06 string in lexicographic order
func Format(cells model.AliveSet) string {
	var sb strings.Builder
	_ = Write(&sb, cells, true)
	return sb.String()
}

// HasValidExtension reports whether name ends in .life or .lif, optionally
// followed by .zst
func HasValidExtension(name string) bool {
	name = strings.TrimSuffix(name, zstdExt)
	ext := filepath.Ext(name)
	return ext == ".life" || ext == ".lif"
}

// ReadFile parses the pattern stored at path
func ReadFile(path string) (model.AliveSet, error) {
	if !HasValidExtension(path) {
		return nil, errors.Wrapf(ErrBadExtension, "[ReadFile] %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[ReadFile] failed to open file: %+v", path)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, zstdExt) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, errors.Wrapf(err, "[ReadFile] failed to open zstd stream: %+v", path)
		}
		defer dec.Close()
		r = dec
	}

	cells, err := Parse(r)
	if err != nil {
		return nil, errors.Wrapf(err, "[ReadFile] %s", path)
	}
	return cells, nil
}

// WriteFile stores cells at path, compressing when path ends in .zst
func WriteFile(path string, cells model.AliveSet, sorted bool) (err error) {
	if !HasValidExtension(path) {
		return errors.Wrapf(ErrBadExtension, "[WriteFile] %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "[WriteFile] failed to create file: %+v", path)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrapf(cerr, "[WriteFile] failed to close file: %+v", path)
		}
	}()

	if !strings.HasSuffix(path, zstdExt) {
		return Write(f, cells, sorted)
	}

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return errors.Wrapf(err, "[WriteFile] failed to open zstd stream: %+v", path)
	}
	if err := Write(enc, cells, sorted); err != nil {
		enc.Close()
		return err
	}
	return errors.Wrapf(enc.Close(), "[WriteFile] failed to finish zstd stream: %+v", path)
}
