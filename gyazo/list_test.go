package gyazo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pagedServer serves total images in pages and records requested page numbers
type pagedServer struct {
	mu    sync.Mutex
	total int
	pages []int
}

func (s *pagedServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	s.mu.Lock()
	s.pages = append(s.pages, page)
	s.mu.Unlock()

	images := []Image{}
	for i := (page - 1) * perPage; i < page*perPage && i < s.total; i++ {
		images = append(images, Image{ImageID: fmt.Sprintf("img%03d", i), Type: "png"})
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(s.total))
	json.NewEncoder(w).Encode(images)
}

func (s *pagedServer) requested() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.pages...)
}

func TestList(t *testing.T) {
	paged := &pagedServer{total: 250}
	server := httptest.NewServer(paged)
	defer server.Close()

	client := newTestClient(server, Credentials{Key: "test-key"})

	var ids []string
	for file, err := range client.List(context.Background()) {
		require.NoError(t, err)
		ids = append(ids, file.ID)
	}

	require.Len(t, ids, 250)
	for i, id := range ids {
		assert.Equal(t, fmt.Sprintf("img%03d", i), id)
	}
	assert.Equal(t, []int{1, 2, 3}, paged.requested())
}

func TestListEarlyStop(t *testing.T) {
	paged := &pagedServer{total: 250}
	server := httptest.NewServer(paged)
	defer server.Close()

	client := newTestClient(server, Credentials{Key: "test-key"})

	taken := 0
	for _, err := range client.List(context.Background()) {
		require.NoError(t, err)
		taken++
		if taken == 5 {
			break
		}
	}

	assert.Equal(t, 5, taken)
	assert.Equal(t, []int{1}, paged.requested())
}

func TestListEmptyAccount(t *testing.T) {
	paged := &pagedServer{total: 0}
	server := httptest.NewServer(paged)
	defer server.Close()

	client := newTestClient(server, Credentials{Key: "test-key"})

	count := 0
	for _, err := range client.List(context.Background()) {
		require.NoError(t, err)
		count++
	}
	assert.Zero(t, count)
	assert.Equal(t, []int{1}, paged.requested())
}

func TestListMissingTotalCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"image_id": "a", "type": "png"}]`))
	}))
	defer server.Close()

	client := newTestClient(server, Credentials{Key: "test-key"})

	var errs []error
	for _, err := range client.List(context.Background()) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	require.Len(t, errs, 1)
	var protoErr *ProtocolError
	assert.True(t, errors.As(errs[0], &protoErr))
}

func TestListShortPagesAreAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Total-Count", "10")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := newTestClient(server, Credentials{Key: "test-key"})

	var last error
	for _, err := range client.List(context.Background()) {
		last = err
	}
	var protoErr *ProtocolError
	require.True(t, errors.As(last, &protoErr))
	assert.Contains(t, last.Error(), "empty page")
}

func TestListInternal(t *testing.T) {
	var mu sync.Mutex
	var pages []int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/internal/images", r.URL.Path)
		assert.Equal(t, "Gyazo_session=session-value", r.Header.Get("Cookie"))
		assert.Empty(t, r.URL.Query().Get("access_token"))

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		mu.Lock()
		pages = append(pages, page)
		mu.Unlock()

		switch page {
		case 1:
			w.Write([]byte(`[{"image_id": "a", "extra": [1, 2]}, {"image_id": "b"}]`))
		case 2:
			w.Write([]byte(`[{"image_id": "c"}]`))
		default:
			w.Write([]byte(`[]`))
		}
	}))
	defer server.Close()

	client := newTestClient(server, Credentials{Cookie: "session-value"})

	var entries []string
	for entry, err := range client.ListInternal(context.Background()) {
		require.NoError(t, err)
		entries = append(entries, string(entry))
	}

	assert.Equal(t, []string{
		`{"image_id": "a", "extra": [1, 2]}`,
		`{"image_id": "b"}`,
		`{"image_id": "c"}`,
	}, entries)
	assert.Equal(t, []int{1, 2, 3}, pages)
}

func TestListInternalWithoutCookie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	}))
	defer server.Close()

	client := newTestClient(server, Credentials{Key: "test-key"})
	for _, err := range client.ListInternal(context.Background()) {
		assert.ErrorIs(t, err, ErrMissingCredential)
	}
}
