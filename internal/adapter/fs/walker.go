package fs

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
	"unitoken/internal/port"
)

// Walker collects text files under a root, filtered by doublestar globs.
type Walker struct {
	includes []string
	excludes []string
}

func NewWalker(includes, excludes []string) *Walker {
	if len(includes) == 0 {
		includes = []string{"**/*"}
	}
	return &Walker{
		includes: includes,
		excludes: excludes,
	}
}

// Walk returns matching files sorted by path, so batch order is stable.
func (w *Walker) Walk(root string) ([]port.FileInfo, error) {
	var files []port.FileInfo

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if relPath != "." && w.shouldExclude(relPath+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if w.shouldInclude(relPath) && !w.shouldExclude(relPath) {
			files = append(files, port.FileInfo{
				Path:    path,
				ModTime: info.ModTime().Unix(),
				Size:    info.Size(),
			})
		}

		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}

func (w *Walker) shouldInclude(path string) bool {
	for _, pattern := range w.includes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Walker) shouldExclude(path string) bool {
	for _, pattern := range w.excludes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadFiles reads files concurrently with at most limit reads in flight.
// texts and errs are indexed like files; a failed read leaves its text empty.
func ReadFiles(ctx context.Context, files []port.FileInfo, limit int) (texts []string, errs []error) {
	texts = make([]string, len(files))
	errs = make([]error, len(files))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, f := range files {
		i, path := i, f.Path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			texts[i], errs[i] = ReadFile(path)
			return nil
		})
	}
	_ = g.Wait()

	return texts, errs
}

// ReadLines reads one text per line, skipping blank lines.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
