package zipfile

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alec-rabold/zipclean/pkg/reader"
	log "github.com/sirupsen/logrus"
)

// ObjectStore is the slice of the S3 surface remote scanning needs; it is
// satisfied by *aws.Client.
type ObjectStore interface {
	ObjectSize(ctx context.Context, bucket, key string) (int64, error)
	GetObjectRange(ctx context.Context, bucket, key string, from, to int64) ([]byte, error)
}

// remoteWindow is how many bytes each ranged GET fetches. Fetches are aligned
// to multiples of it so the backward end-record scan and the forward
// directory walk both stay within a handful of requests.
const remoteWindow = 64 * 1024

// ScanObject reports unsafe entry names in a zip object stored in S3 without
// downloading the whole archive. Remote scanning never writes.
func ScanObject(ctx context.Context, store ObjectStore, bucket, key string) (*Result, error) {
	size, err := store.ObjectSize(ctx, bucket, key)
	if err != nil {
		return &Result{}, err
	}
	log.Debugf("s3://%s/%s: %d bytes", bucket, key, size)

	r := &remoteFile{
		store:  store,
		ctx:    ctx,
		bucket: bucket,
		key:    key,
		size:   size,
	}
	s, err := reader.NewStream(r)
	if err != nil {
		return &Result{}, err
	}
	return Clean(s, nil)
}

// remoteFile adapts ranged S3 reads to io.ReadSeeker so the zip reader can
// treat the object like a local file. One aligned window is cached at a time.
type remoteFile struct {
	store  ObjectStore
	ctx    context.Context
	bucket string
	key    string
	size   int64
	pos    int64
	buf    []byte
	bufOff int64
}

func (r *remoteFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		offset += r.pos
	case io.SeekEnd:
		offset += r.size
	default:
		return 0, fmt.Errorf("seek s3://%s/%s: invalid whence %d", r.bucket, r.key, whence)
	}
	if offset < 0 {
		return 0, errors.New("seek before start of object")
	}
	r.pos = offset
	return offset, nil
}

func (r *remoteFile) Read(p []byte) (int, error) {
	if r.pos >= r.size {
		return 0, io.EOF
	}
	if r.buf == nil || r.pos < r.bufOff || r.pos >= r.bufOff+int64(len(r.buf)) {
		from := r.pos &^ int64(remoteWindow-1)
		to := from + remoteWindow - 1
		if to >= r.size {
			to = r.size - 1
		}
		buf, err := r.store.GetObjectRange(r.ctx, r.bucket, r.key, from, to)
		if err != nil {
			return 0, err
		}
		if int64(len(buf)) != to-from+1 {
			return 0, fmt.Errorf("get s3://%s/%s: short range read", r.bucket, r.key)
		}
		r.buf, r.bufOff = buf, from
	}
	n := copy(p, r.buf[r.pos-r.bufOff:])
	r.pos += int64(n)
	return n, nil
}
