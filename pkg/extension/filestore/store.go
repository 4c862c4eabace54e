// Package filestore serves extensions from a directory of YAML documents.
//
// Each *.yaml or *.yml file may hold several documents separated by "---". A
// document belongs to a kind through its top-level "kind" field:
//
//	apiVersion: content.folio.dev/v1alpha1
//	kind: Category
//	metadata:
//	  name: golang
//	spec:
//	  displayName: Go
//	  priority: 2
//
// The store is read-only. Watch reloads the directory whenever files change.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/platinummonkey/folio/pkg/extension"
	"github.com/platinummonkey/folio/pkg/extension/memory"
)

// Store is a read-only extension client over a YAML directory
type Store[T extension.Object] struct {
	dir string
	typ *extension.Type[T]
	mem *memory.Store[T]
	log logrus.FieldLogger
}

// NewStore loads every document of typ's kind from dir
func NewStore[T extension.Object](dir string, typ *extension.Type[T], log logrus.FieldLogger) (*Store[T], error) {
	if log == nil {
		log = logrus.New()
	}
	s := &Store[T]{
		dir: dir,
		typ: typ,
		mem: memory.NewStore(typ),
		log: log.WithField("kind", typ.Kind),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the directory and atomically replaces the served content
func (s *Store[T]) Reload() error {
	objs, err := LoadDir(s.dir, s.typ)
	if err != nil {
		return err
	}
	if err := s.mem.Replace(objs); err != nil {
		return err
	}
	s.log.Debugf("Loaded %d documents from %s", len(objs), s.dir)
	return nil
}

// Fetch implements extension.Client
func (s *Store[T]) Fetch(ctx context.Context, name string) (T, error) {
	return s.mem.Fetch(ctx, name)
}

// ListAll implements extension.Client
func (s *Store[T]) ListAll(ctx context.Context, opts extension.ListOptions, sort extension.Sort) ([]T, error) {
	return s.mem.ListAll(ctx, opts, sort)
}

// ListBy implements extension.Client
func (s *Store[T]) ListBy(ctx context.Context, opts extension.ListOptions, page extension.PageRequest) (*extension.ListResult[T], error) {
	return s.mem.ListBy(ctx, opts, page)
}

// Watch reloads the store when YAML files in the directory change. It returns
// once the watcher is running; watching stops when ctx is cancelled.
func (s *Store[T]) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", s.dir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isDocument(event.Name) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				s.log.Infof("Detected change in %s, reloading", event.Name)
				if err := s.Reload(); err != nil {
					s.log.WithError(err).Warn("Failed to reload documents")
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.WithError(err).Warn("Watcher error")
			}
		}
	}()

	return nil
}

func isDocument(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadDir decodes every document of typ's kind found in dir. Files are read in
// name order; a later document with the same name replaces an earlier one.
func LoadDir[T extension.Object](dir string, typ *extension.Type[T]) ([]T, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && isDocument(entry.Name()) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)

	byName := make(map[string]int)
	var objs []T
	for _, file := range files {
		docs, err := ReadDocuments(file, typ.Kind)
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			obj, err := typ.Decode(doc)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			name := obj.GetMetadata().Name
			if name == "" {
				return nil, fmt.Errorf("%s: %s document without metadata.name", file, typ.Kind)
			}
			if i, ok := byName[name]; ok {
				objs[i] = obj
				continue
			}
			byName[name] = len(objs)
			objs = append(objs, obj)
		}
	}
	return objs, nil
}

// ReadDocuments returns the documents of the given kind in a YAML file, converted to JSON
func ReadDocuments(path, kind string) ([][]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var docs [][]byte
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc map[string]interface{}
		err := decoder.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if doc == nil || doc["kind"] != kind {
			continue
		}

		encoded, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s: %w", path, err)
		}
		docs = append(docs, encoded)
	}
	return docs, nil
}
