package port

// FileWalker collects the files a batch run reads its texts from.
type FileWalker interface {
	Walk(root string) ([]FileInfo, error)
}

type FileInfo struct {
	Path    string
	ModTime int64
	Size    int64
}
