// Package s3store keeps uploaded files in an S3 compatible bucket.
package s3store

import (
	"context"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"

	"github.com/bouncebacklearning/backend/core"
	"github.com/bouncebacklearning/backend/storage/files"
)

const keyPrefix = "papers/"

// API is the subset of the S3 client the Store uses.
type API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var (
	loadDefaultAWSConfig  = config.LoadDefaultConfig // mockable
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) API {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type Store struct {
	client API
	bucket string
}

var _ core.FileStore = (*Store)(nil)

// New builds an S3 client from conf. Static credentials are used when an access key is set,
// otherwise the default AWS credential chain applies.
func New(ctx context.Context, conf core.S3Config) (*Store, error) {
	if conf.Bucket == "" {
		return nil, errors.New("s3store: bucket is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(conf.Region)}
	if conf.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.AccessKey, conf.SecretKey, ""),
		))
	}
	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "loading AWS config")
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if conf.Endpoint != "" {
			o.BaseEndpoint = aws.String(conf.Endpoint)
			o.UsePathStyle = true
		}
	})
	return NewWithClient(client, conf.Bucket), nil
}

func NewWithClient(client API, bucket string) *Store {
	return &Store{client: client, bucket: bucket}
}

func (s *Store) Save(ctx context.Context, name string, r io.Reader) (core.StoredFile, error) {
	key := keyPrefix + files.StorageKey(name)
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   r,
	}
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		in.ContentType = aws.String(ct)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return core.StoredFile{}, errors.Wrap(err, "s3.PutObject()")
	}
	return core.StoredFile{Name: name, Path: s.objectPath(key)}, nil
}

func (s *Store) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	key, err := s.objectKey(p)
	if err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, core.ErrFileNotFound
		}
		return nil, errors.Wrap(err, "s3.GetObject()")
	}
	return out.Body, nil
}

func (s *Store) Remove(ctx context.Context, p string) error {
	key, err := s.objectKey(p)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return errors.Wrap(err, "s3.DeleteObject()")
}

func (s *Store) objectPath(key string) string {
	return "s3://" + s.bucket + "/" + key
}

func (s *Store) objectKey(p string) (string, error) {
	prefix := "s3://" + s.bucket + "/"
	if !strings.HasPrefix(p, prefix) {
		return "", core.ErrFileNotFound
	}
	return strings.TrimPrefix(p, prefix), nil
}
