package s3

import (
	"context"
	"io/fs"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/navanexis/site/pkg/assets"
	"github.com/pkg/errors"
)

const Type assets.Type = "s3"

func init() {
	assets.Register(Type, CreateSourceFromOptions)
}

type Options struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	User     string `mapstructure:"user" yaml:"user"`
	Secret   string `mapstructure:"secret" yaml:"secret"`
	Token    string `mapstructure:"token" yaml:"token"`
	Secure   bool   `mapstructure:"secure" yaml:"secure"`
	Bucket   string `mapstructure:"bucket" yaml:"bucket"`
	Region   string `mapstructure:"region" yaml:"region"`
	Prefix   string `mapstructure:"prefix" yaml:"prefix"`
}

func CreateSourceFromOptions(options any) (fs.FS, error) {
	opts := Options{}

	if err := assets.DecodeOptions(Type, options, &opts); err != nil {
		return nil, errors.WithStack(err)
	}

	if opts.Bucket == "" {
		return nil, errors.Errorf("'%s' assets source: bucket is required", Type)
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.User, opts.Secret, opts.Token),
		Secure: opts.Secure,
		Region: opts.Region,
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not create s3 client")
	}

	return NewFileSystem(context.Background(), client, opts.Bucket, opts.Prefix), nil
}

// FileSystem exposes the objects of a bucket as a read-only fs.FS.
// Directories are not listable.
type FileSystem struct {
	ctx    context.Context
	client *minio.Client
	bucket string
	prefix string
}

// Open implements fs.FS.
func (f *FileSystem) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	if name == "." {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	key := f.key(name)

	info, err := f.client.StatObject(f.ctx, f.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
		}

		return nil, errors.WithStack(err)
	}

	obj, err := f.client.GetObject(f.ctx, f.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &File{obj: obj, info: newFileInfo(name, info)}, nil
}

func (f *FileSystem) key(name string) string {
	prefix := strings.Trim(f.prefix, "/")
	if prefix == "" {
		return name
	}

	return prefix + "/" + name
}

func NewFileSystem(ctx context.Context, client *minio.Client, bucket, prefix string) *FileSystem {
	return &FileSystem{
		ctx:    ctx,
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

var _ fs.FS = &FileSystem{}

func isNotFound(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NoSuchBucket" || code == "NotFound"
}
