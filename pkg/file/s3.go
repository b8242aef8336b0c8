package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Client is the subset of *s3.Client used by S3Storage.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	CopyObject(ctx context.Context, params *s3.CopyObjectInput, optFns ...func(*s3.Options)) (*s3.CopyObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// S3ListObjectsV2Paginator is satisfied by *s3.ListObjectsV2Paginator.
type S3ListObjectsV2Paginator interface {
	HasMorePages() bool
	NextPage(ctx context.Context, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type PaginatorFactory func(client S3Client, params *s3.ListObjectsV2Input) S3ListObjectsV2Paginator

// S3Config configures S3Storage from the environment.
type S3Config struct {
	Bucket         string        `env:"S3_BUCKET"`
	Region         string        `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string        `env:"S3_ACCESS_KEY_ID"`
	SecretKey      string        `env:"S3_SECRET_KEY"`
	Endpoint       string        `env:"S3_ENDPOINT"`         // S3 compatible services
	BaseURL        string        `env:"S3_BASE_URL"`         // public URL prefix
	ForcePathStyle bool          `env:"S3_FORCE_PATH_STYLE"` // MinIO and friends
	UploadTimeout  time.Duration `env:"S3_UPLOAD_TIMEOUT" envDefault:"0s"`
}

// S3Storage stores files as objects of one bucket. Directories are key
// prefixes ending in "/".
type S3Storage struct {
	client        S3Client
	bucket        string
	baseURL       string
	uploadTimeout time.Duration
	paginator     PaginatorFactory
}

var _ Storage = (*S3Storage)(nil)

type S3Option func(*s3Options)

type s3Options struct {
	httpClient    *http.Client
	client        S3Client
	configOptions []func(*config.LoadOptions) error
	clientOptions []func(*s3.Options)
	paginator     PaginatorFactory
}

// WithS3Client skips AWS config loading and uses client as is.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) { o.client = client }
}

func WithHTTPClient(client *http.Client) S3Option {
	return func(o *s3Options) { o.httpClient = client }
}

func WithS3ConfigOption(option func(*config.LoadOptions) error) S3Option {
	return func(o *s3Options) { o.configOptions = append(o.configOptions, option) }
}

func WithS3ClientOption(option func(*s3.Options)) S3Option {
	return func(o *s3Options) { o.clientOptions = append(o.clientOptions, option) }
}

func WithPaginatorFactory(factory PaginatorFactory) S3Option {
	return func(o *s3Options) { o.paginator = factory }
}

func NewS3Storage(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}
	o := &s3Options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		loadOpts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			loadOpts = append(loadOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}
		if o.httpClient != nil {
			loadOpts = append(loadOpts, config.WithHTTPClient(o.httpClient))
		}
		awsCfg, err := config.LoadDefaultConfig(ctx, append(loadOpts, o.configOptions...)...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
		}
		client = s3.NewFromConfig(awsCfg, func(so *s3.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
			for _, fn := range o.clientOptions {
				fn(so)
			}
		})
	}

	baseURL := cfg.BaseURL
	switch {
	case baseURL != "":
	case cfg.Endpoint != "":
		baseURL = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	default:
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	paginator := o.paginator
	if paginator == nil {
		paginator = func(c S3Client, params *s3.ListObjectsV2Input) S3ListObjectsV2Paginator {
			if sc, ok := c.(*s3.Client); ok {
				return s3.NewListObjectsV2Paginator(sc, params)
			}
			return nil
		}
	}

	return &S3Storage{
		client:        client,
		bucket:        cfg.Bucket,
		baseURL:       baseURL,
		uploadTimeout: cfg.UploadTimeout,
		paginator:     paginator,
	}, nil
}

// objectKey normalises a storage path into an object key.
func objectKey(p string) (string, error) {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "", fmt.Errorf("%w: empty key", ErrInvalidPath)
	}
	for seg := range strings.SplitSeq(p, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: %s", ErrInvalidPath, p)
		}
	}
	return p, nil
}

func dirPrefix(dir string) (string, error) {
	dir = strings.TrimPrefix(dir, "/")
	if dir == "" {
		return "", nil
	}
	if _, err := objectKey(dir); err != nil {
		return "", err
	}
	return strings.TrimSuffix(dir, "/") + "/", nil
}

// classifyS3Error maps SDK errors onto the package sentinels.
func classifyS3Error(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", ErrOperationTimeout, op)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s", ErrOperationCanceled, op)
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return fmt.Errorf("%w: %v", ErrFileNotFound, err)
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return fmt.Errorf("%w: %v", ErrFileNotFound, err)
	}
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch code := apiErr.ErrorCode(); code {
		case "AccessDenied":
			return fmt.Errorf("%w: %s", ErrAccessDenied, op)
		case "RequestTimeout":
			return fmt.Errorf("%w: %s", ErrRequestTimeout, op)
		case "SlowDown", "ServiceUnavailable":
			return fmt.Errorf("%w: %s", ErrServiceUnavailable, op)
		case "InvalidObjectState":
			return fmt.Errorf("%w: %s", ErrInvalidObjectState, op)
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %v", ErrFileNotFound, err)
		case "NoSuchBucket":
			return ErrBucketNotFound
		default:
			return fmt.Errorf("%s failed (code: %s): %w", op, code, err)
		}
	}
	return fmt.Errorf("%s failed: %w", op, err)
}

// Put buffers non-seekable readers so the SDK can sign the payload.
func (s *S3Storage) Put(ctx context.Context, p string, r io.Reader) (*File, error) {
	if r == nil {
		return nil, ErrNilReader
	}
	key, err := objectKey(p)
	if err != nil {
		return nil, err
	}
	if s.uploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.uploadTimeout)
		defer cancel()
	}

	mimeType, body, err := sniff(r)
	if err != nil {
		return nil, err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(b),
		ContentLength: aws.Int64(int64(len(b))),
		ContentType:   aws.String(mimeType),
	})
	if err != nil {
		return nil, classifyS3Error(err, "upload file")
	}

	return &File{
		Filename:     path.Base(key),
		Size:         int64(len(b)),
		MIMEType:     mimeType,
		Extension:    path.Ext(key),
		RelativePath: key,
	}, nil
}

func (s *S3Storage) Save(ctx context.Context, fh *multipart.FileHeader, p string) (*File, error) {
	if fh == nil {
		return nil, ErrNilFileHeader
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = src.Close() }()

	f, err := s.Put(ctx, uploadPath(fh, p), src)
	if err != nil {
		return nil, err
	}
	f.Filename = SanitizeFilename(fh.Filename)
	f.Extension = GetExtension(fh)
	return f, nil
}

func (s *S3Storage) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	key, err := objectKey(p)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyS3Error(err, "get file")
	}
	return out.Body, nil
}

func (s *S3Storage) Get(ctx context.Context, p string) ([]byte, error) {
	rc, err := s.Open(ctx, p)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	return b, nil
}

func (s *S3Storage) head(ctx context.Context, p string) (*s3.HeadObjectOutput, error) {
	key, err := objectKey(p)
	if err != nil {
		return nil, err
	}
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classifyS3Error(err, "check file")
	}
	return out, nil
}

func (s *S3Storage) Size(ctx context.Context, p string) (int64, error) {
	out, err := s.head(ctx, p)
	if err != nil {
		return 0, err
	}
	return aws.ToInt64(out.ContentLength), nil
}

func (s *S3Storage) LastModified(ctx context.Context, p string) (time.Time, error) {
	out, err := s.head(ctx, p)
	if err != nil {
		return time.Time{}, err
	}
	return aws.ToTime(out.LastModified), nil
}

func (s *S3Storage) Exists(ctx context.Context, p string) bool {
	_, err := s.head(ctx, p)
	return err == nil
}

// Delete checks the object exists first so a missing key reports
// ErrFileNotFound, matching LocalStorage.
func (s *S3Storage) Delete(ctx context.Context, p string) error {
	if _, err := s.head(ctx, p); err != nil {
		return err
	}
	key, _ := objectKey(p)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return classifyS3Error(err, "delete file")
}

func (s *S3Storage) DeleteDir(ctx context.Context, dir string) error {
	prefix, err := dirPrefix(dir)
	if err != nil {
		return err
	}
	if prefix == "" {
		return fmt.Errorf("%w: refusing to delete the bucket root", ErrInvalidPath)
	}

	pager := s.paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	if pager == nil {
		return ErrPaginatorNil
	}

	var objects []types.ObjectIdentifier
	for pager.HasMorePages() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return classifyS3Error(err, "list directory")
		}
		for _, obj := range page.Contents {
			objects = append(objects, types.ObjectIdentifier{Key: obj.Key})
		}
	}
	if len(objects) == 0 {
		return fmt.Errorf("%w: %s", ErrDirectoryNotFound, dir)
	}

	// DeleteObjects accepts at most 1000 keys per call
	for chunk := range slices.Chunk(objects, 1000) {
		_, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
			Bucket: aws.String(s.bucket),
			Delete: &types.Delete{Objects: chunk},
		})
		if err != nil {
			return classifyS3Error(err, "delete directory")
		}
	}
	return nil
}

func (s *S3Storage) List(ctx context.Context, dir string) ([]Entry, error) {
	prefix, err := dirPrefix(dir)
	if err != nil {
		return nil, err
	}
	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:    aws.String(s.bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})
	if err != nil {
		return nil, classifyS3Error(err, "list directory")
	}

	entries := make([]Entry, 0, len(out.CommonPrefixes)+len(out.Contents))
	for _, cp := range out.CommonPrefixes {
		p := aws.ToString(cp.Prefix)
		entries = append(entries, Entry{
			Name:  strings.TrimSuffix(strings.TrimPrefix(p, prefix), "/"),
			Path:  p,
			IsDir: true,
		})
	}
	for _, obj := range out.Contents {
		key := aws.ToString(obj.Key)
		name := strings.TrimPrefix(key, prefix)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		entries = append(entries, Entry{Name: name, Path: key, Size: aws.ToInt64(obj.Size)})
	}
	return entries, nil
}

func (s *S3Storage) Copy(ctx context.Context, from, to string) error {
	src, err := objectKey(from)
	if err != nil {
		return err
	}
	dst, err := objectKey(to)
	if err != nil {
		return err
	}
	_, err = s.client.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(s.bucket),
		CopySource: aws.String(url.PathEscape(s.bucket) + "/" + escapeKey(src)),
		Key:        aws.String(dst),
	})
	return classifyS3Error(err, "copy file")
}

// Move is a copy followed by a delete of the source.
func (s *S3Storage) Move(ctx context.Context, from, to string) error {
	if err := s.Copy(ctx, from, to); err != nil {
		return err
	}
	return s.Delete(ctx, from)
}

func (s *S3Storage) URL(p string) string {
	return s.baseURL + strings.TrimPrefix(p, "/")
}

func escapeKey(key string) string {
	segs := strings.Split(key, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}
	return strings.Join(segs, "/")
}
