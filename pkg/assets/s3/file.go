package s3

import (
	"io/fs"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
)

type File struct {
	obj  *minio.Object
	info *fileInfo
}

// Read implements fs.File.
func (f *File) Read(p []byte) (int, error) {
	return f.obj.Read(p)
}

// Seek implements io.Seeker, http.FileServer relies on it for range requests.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.obj.Seek(offset, whence)
}

// Stat implements fs.File.
func (f *File) Stat() (fs.FileInfo, error) {
	return f.info, nil
}

// Close implements fs.File.
func (f *File) Close() error {
	return f.obj.Close()
}

var _ fs.File = &File{}

type fileInfo struct {
	name    string
	size    int64
	modTime time.Time
}

func newFileInfo(name string, info minio.ObjectInfo) *fileInfo {
	return &fileInfo{
		name:    path.Base(name),
		size:    info.Size,
		modTime: info.LastModified,
	}
}

func (i *fileInfo) Name() string       { return i.name }
func (i *fileInfo) Size() int64        { return i.size }
func (i *fileInfo) Mode() fs.FileMode  { return 0o444 }
func (i *fileInfo) ModTime() time.Time { return i.modTime }
func (i *fileInfo) IsDir() bool        { return false }
func (i *fileInfo) Sys() any           { return nil }

var _ fs.FileInfo = &fileInfo{}
