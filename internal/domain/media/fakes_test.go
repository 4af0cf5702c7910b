package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/emerginginv/media-api/internal/utils/platformerrors"
)

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	calls   []string

	putFn    func(bucket, key string) error
	deleteFn func(bucket, key string) error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Put(_ context.Context, bucket, key string, body io.Reader, size int64, opts PutOptions) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, "put")
	f.mu.Unlock()

	if f.putFn != nil {
		if err := f.putFn(bucket, key); err != nil {
			return "", err
		}
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	name := bucket + "/" + key
	if _, exists := f.objects[name]; exists && !opts.Overwrite {
		return "", ErrObjectExists
	}
	f.objects[name] = data
	return key, nil
}

func (f *fakeStorage) PublicURL(bucket, key string) string {
	return "https://cdn.test/" + bucket + "/" + key
}

func (f *fakeStorage) Delete(_ context.Context, bucket, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "delete")
	if f.deleteFn != nil {
		if err := f.deleteFn(bucket, key); err != nil {
			return err
		}
	}
	name := bucket + "/" + key
	if _, ok := f.objects[name]; !ok {
		return ErrObjectNotFound
	}
	delete(f.objects, name)
	return nil
}

func (f *fakeStorage) Open(_ context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, ObjectInfo{}, ErrObjectNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), ObjectInfo{Size: int64(len(data))}, nil
}

func (f *fakeStorage) Health(context.Context) error { return nil }

func (f *fakeStorage) object(bucket, key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[bucket+"/"+key]
	return data, ok
}

func (f *fakeStorage) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

func (f *fakeStorage) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

type fakeRepository struct {
	mu      sync.Mutex
	rows    map[string]Asset
	seq     int
	now     time.Time
	creates int

	createErr error
	deleteErr error
	listErr   error
	getErr    error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		rows: make(map[string]Asset),
		now:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *fakeRepository) Create(_ context.Context, asset *Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	r.seq++
	r.now = r.now.Add(time.Second)
	asset.ID = fmt.Sprintf("med_%03d", r.seq)
	asset.CreatedAt = r.now
	asset.UpdatedAt = r.now
	stored := *asset
	stored.PublicURL = ""
	r.rows[asset.ID] = stored
	return nil
}

func (r *fakeRepository) GetByID(ctx context.Context, id string) (*Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	asset, ok := r.rows[id]
	if !ok {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "media record not found", nil, "")
	}
	return &asset, nil
}

func (r *fakeRepository) List(_ context.Context, filter ListFilter) ([]Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []Asset
	for _, asset := range r.rows {
		if filter.Category != "" && asset.Category != filter.Category {
			continue
		}
		if filter.FeaturedOnly && !asset.IsFeatured {
			continue
		}
		out = append(out, asset)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *fakeRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.rows[id]; !ok {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "media record not found", nil, "")
	}
	delete(r.rows, id)
	return nil
}

func (r *fakeRepository) CountByCategory(context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	counts := map[string]int64{}
	for _, asset := range r.rows {
		counts[asset.Category]++
	}
	return counts, nil
}

func (r *fakeRepository) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

var errBackend = errors.New("backend unavailable")
