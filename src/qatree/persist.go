package qatree

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/ulikunitz/xz"

	"github.com/thought-machine/objectguess/src/tree"
)

// CompressedSuffix is the file extension that marks a tree file as xz-compressed.
const CompressedSuffix = ".xz"

// Serialize writes the tree to the given writer, one line per node in level order.
// Each line is the node's key, a space, then its text.
func Serialize(w io.Writer, qa *QATree) error {
	bw := bufio.NewWriter(w)
	var err error
	qa.tree.LevelOrder(func(n *tree.Node) {
		if err == nil {
			_, err = fmt.Fprintf(bw, "%d %s\n", n.Key, n.Text)
		}
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

// Deserialize reads a tree previously written by Serialize.
// Blank lines are ignored; any other line that can't be parsed or inserted is an error.
func Deserialize(r io.Reader) (*QATree, error) {
	qa := New()
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		key, text, ok, err := parseRecord(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		} else if !ok {
			continue
		}
		if err := qa.tree.Insert(text, key); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := qa.tree.Validate(); err != nil {
		return nil, err
	}
	log.Debug("Read %d nodes", qa.Len())
	return qa, nil
}

// parseRecord parses a single line into a key and text. It returns false for blank lines.
func parseRecord(line string) (int, string, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, "", false, nil
	}
	keyStr, text := line, ""
	if idx := strings.IndexFunc(line, unicode.IsSpace); idx != -1 {
		keyStr, text = line[:idx], line[idx:]
	}
	key, err := strconv.Atoi(keyStr)
	if err != nil {
		return 0, "", false, fmt.Errorf("invalid key %q", keyStr)
	}
	return key, strings.TrimSpace(text), true, nil
}

// Load reads a tree from the given file, decompressing it if its name ends in .xz.
func Load(filename string) (*QATree, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(filename, CompressedSuffix) {
		xr, err := xz.NewReader(bufio.NewReader(f))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filename, err)
		}
		r = xr
	}
	qa, err := Deserialize(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	log.Notice("Loaded %d questions and answers from %s", qa.Len(), filename)
	return qa, nil
}

// Save writes the tree to the given file, compressing it if compress is true or its
// name ends in .xz. The file is replaced atomically.
func Save(filename string, qa *QATree, compress bool) error {
	dir, base := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}
	mode := os.FileMode(0644)
	if info, err := os.Stat(filename); err == nil {
		mode = info.Mode().Perm()
	}
	f, err := os.CreateTemp(dir, "."+base+".tmp")
	if err != nil {
		return err
	}
	// Cleans up the temp file on failure; after a successful rename it's a no-op.
	defer os.Remove(f.Name())
	if err := write(f, qa, compress || strings.HasSuffix(filename, CompressedSuffix)); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", filename, err)
	} else if err := f.Chmod(mode); err != nil {
		f.Close()
		return err
	} else if err := f.Close(); err != nil {
		return err
	} else if err := os.Rename(f.Name(), filename); err != nil {
		return err
	}
	log.Notice("Saved %d questions and answers to %s", qa.Len(), filename)
	return nil
}

func write(w io.Writer, qa *QATree, compress bool) error {
	if !compress {
		return Serialize(w, qa)
	}
	xw, err := xz.NewWriter(w)
	if err != nil {
		return err
	} else if err := Serialize(xw, qa); err != nil {
		xw.Close()
		return err
	}
	return xw.Close()
}
