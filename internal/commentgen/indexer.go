package commentgen

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileRecord describes a candidate source file under the scan root.
type FileRecord struct {
	AbsPath  string
	RelPath  string // slash-separated, relative to the scan root
	Language string
}

// FileIndex is the flat list of candidate files found under a root.
type FileIndex struct {
	Root  string
	Files []FileRecord
}

// BuildFileIndex walks root and keeps every file whose extension is in
// extensions. Directories are always descended into; ignore rules are
// applied by the caller. Files are returned in walk (lexical) order.
func BuildFileIndex(ctx context.Context, root string, extensions []string) (*FileIndex, error) {
	byExt, err := resolveExtensions(extensions)
	if err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", absRoot, ErrNotDirectory)
	}

	idx := &FileIndex{Root: absRoot}
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		language, ok := byExt[filepath.Ext(path)]
		if !ok {
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			relPath = path
		}

		idx.Files = append(idx.Files, FileRecord{
			AbsPath:  path,
			RelPath:  filepath.ToSlash(relPath),
			Language: language,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	return idx, nil
}
