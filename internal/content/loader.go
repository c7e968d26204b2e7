package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/p-n-ai/codelearn/internal/platform/logger"
)

//go:embed bundle
var bundleFS embed.FS

// Embedded returns the content bundle compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(bundleFS, "bundle")
	if err != nil {
		panic(err) // the directory is part of the build
	}
	return sub
}

// LoadEmbedded loads the compiled-in bundle.
func LoadEmbedded() (*Catalog, error) {
	return Load(Embedded())
}

// LoadDir loads a bundle from a directory on disk. An empty dir selects
// the embedded bundle.
func LoadDir(dir string) (*Catalog, error) {
	if dir == "" {
		return LoadEmbedded()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("content directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content path %s is not a directory", dir)
	}
	return Load(os.DirFS(dir))
}

// Load walks fsys in lexical order, decodes every .yaml/.yml file into
// the bundle and builds a validated Catalog. Any malformed file aborts
// the load.
func Load(fsys fs.FS) (*Catalog, error) {
	b, err := ReadBundle(fsys)
	if err != nil {
		return nil, err
	}
	c, err := NewCatalog(b)
	if err != nil {
		return nil, err
	}

	logger.Info("content loaded",
		"topics", len(b.Topics),
		"lessons", len(b.Lessons),
		"exercises", len(b.Exercises),
		"digest", c.Digest(),
	)
	return c, nil
}

// ReadBundle decodes all content files in fsys without validating
// cross-file invariants.
func ReadBundle(fsys fs.FS) (Bundle, error) {
	var b Bundle
	var errs []error

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		switch path.Ext(p) {
		case ".yaml", ".yml":
		default:
			return nil
		}

		part, err := readFile(fsys, p)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p, err))
			return nil
		}
		b.merge(part)
		return nil
	})
	if err != nil {
		return Bundle{}, fmt.Errorf("walking content: %w", err)
	}
	if len(errs) > 0 {
		return Bundle{}, fmt.Errorf("reading content: %w", errors.Join(errs...))
	}
	return b, nil
}

func readFile(fsys fs.FS, p string) (Bundle, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return Bundle{}, err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Bundle{}, fmt.Errorf("parsing YAML: %w", err)
	}
	if doc == nil {
		logger.Warn("skipping empty content file", "path", p)
		return Bundle{}, nil
	}
	if err := checkSchema(doc); err != nil {
		return Bundle{}, err
	}

	var part Bundle
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&part); err != nil && !errors.Is(err, io.EOF) {
		return Bundle{}, fmt.Errorf("decoding content: %w", err)
	}
	return part, nil
}
