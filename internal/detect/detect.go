// Package detect decides whether a tracked file is eligible for
// sanitization: text files are eligible, binary files and files under
// excluded directories are skipped.
package detect

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type Class int

const (
	Eligible Class = iota
	Binary
	Excluded
)

func (c Class) String() string {
	switch c {
	case Binary:
		return "binary"
	case Excluded:
		return "excluded"
	default:
		return "eligible"
	}
}

// probeSize is how many leading bytes are inspected for the binary check.
const probeSize = 1024

const defaultCacheSize = 4096

// textBytes marks the byte values allowed in text content: BEL, BS, TAB,
// LF, FF, CR, ESC, plus all of [0x20,0xFF] except DEL.
var textBytes [256]bool

func init() {
	for _, b := range []byte{0x07, 0x08, 0x09, 0x0A, 0x0C, 0x0D, 0x1B} {
		textBytes[b] = true
	}
	for b := 0x20; b <= 0xFF; b++ {
		textBytes[b] = true
	}
	textBytes[0x7F] = false
}

type cacheEntry struct {
	modTime time.Time
	size    int64
	class   Class
}

// Classifier classifies repository-relative paths. Probe results are cached
// by path and stat identity so repeated passes (watch mode) do not re-read
// unchanged files.
type Classifier struct {
	root    string
	exclude []string
	cache   *lru.Cache[string, cacheEntry]
}

func NewClassifier(root string, exclude []string) (*Classifier, error) {
	cache, err := lru.New[string, cacheEntry](defaultCacheSize)
	if err != nil {
		return nil, err
	}
	return &Classifier{
		root:    root,
		exclude: exclude,
		cache:   cache,
	}, nil
}

// Classify reports whether path is eligible for sanitization. Exclusion is
// checked first so excluded files are never opened; any probe error is
// treated as binary so the file is skipped.
func (c *Classifier) Classify(path string) Class {
	if c.IsExcluded(path) {
		return Excluded
	}

	abs := filepath.Join(c.root, path)
	info, err := os.Stat(abs)
	if err != nil || info.IsDir() {
		return Binary
	}

	if entry, ok := c.cache.Get(path); ok {
		if entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
			return entry.class
		}
	}

	class := Eligible
	if probeBinary(abs) {
		class = Binary
	}

	c.cache.Add(path, cacheEntry{
		modTime: info.ModTime(),
		size:    info.Size(),
		class:   class,
	})

	return class
}

// IsExcluded reports whether path contains any configured exclusion
// substring. Checked independently of content.
func (c *Classifier) IsExcluded(path string) bool {
	for _, sub := range c.exclude {
		if strings.Contains(path, sub) {
			return true
		}
	}
	return false
}

func probeBinary(abs string) bool {
	f, err := os.Open(abs)
	if err != nil {
		return true
	}
	defer f.Close()

	buf := make([]byte, probeSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return true
	}

	return isBinaryData(buf[:n])
}

func isBinaryData(data []byte) bool {
	for _, b := range data {
		if !textBytes[b] {
			return true
		}
	}
	return false
}
