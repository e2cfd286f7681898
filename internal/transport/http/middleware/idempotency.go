package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"hrconnect/internal/platform/storage"
	"hrconnect/internal/transport/http/api"
)

const (
	IdempotencyHeader = "Idempotency-Key"

	idempotencyTTL      = 24 * time.Hour
	idempotencyIndexKey = "idempotency:index"
	maxIdempotencyKeys  = 256
)

type IdempotencyStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type idempotentResponse struct {
	Hash        string    `json:"hash"`
	Status      int       `json:"status"`
	ContentType string    `json:"contentType"`
	Body        []byte    `json:"body"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// indexEntry tracks one stored response so old ones can be pruned on
// backends without native expiry.
type indexEntry struct {
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type bufferedWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (b *bufferedWriter) WriteHeader(code int) { b.status = code }

func (b *bufferedWriter) Write(p []byte) (int, error) { return b.buf.Write(p) }

func RequestHash(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// responseKeeper stores replayable responses. Records expire after ttl and
// at most max are kept; the oldest go first.
type responseKeeper struct {
	store IdempotencyStore
	now   func() time.Time
	ttl   time.Duration
	max   int
	mu    sync.Mutex
}

func (k *responseKeeper) lookup(ctx context.Context, key string) (idempotentResponse, bool, error) {
	raw, err := k.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return idempotentResponse{}, false, nil
	}
	if err != nil {
		return idempotentResponse{}, false, err
	}
	var saved idempotentResponse
	if json.Unmarshal(raw, &saved) != nil {
		return idempotentResponse{}, false, nil
	}
	if !k.now().Before(saved.ExpiresAt) {
		_ = k.store.Delete(ctx, key)
		return idempotentResponse{}, false, nil
	}
	return saved, true, nil
}

func (k *responseKeeper) remember(ctx context.Context, key string, resp idempotentResponse) error {
	now := k.now()
	resp.ExpiresAt = now.Add(k.ttl)
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if err := k.store.Set(ctx, key, raw); err != nil {
		return err
	}

	var index []indexEntry
	if raw, err := k.store.Get(ctx, idempotencyIndexKey); err == nil {
		_ = json.Unmarshal(raw, &index)
	}
	kept := index[:0]
	for _, e := range index {
		switch {
		case e.Key == key:
		case !now.Before(e.ExpiresAt):
			_ = k.store.Delete(ctx, e.Key)
		default:
			kept = append(kept, e)
		}
	}
	kept = append(kept, indexEntry{Key: key, ExpiresAt: resp.ExpiresAt})
	if over := len(kept) - k.max; over > 0 {
		for _, e := range kept[:over] {
			_ = k.store.Delete(ctx, e.Key)
		}
		kept = kept[over:]
	}
	raw, err = json.Marshal(kept)
	if err != nil {
		return err
	}
	return k.store.Set(ctx, idempotencyIndexKey, raw)
}

// Idempotency replays the stored response of a POST carrying an
// Idempotency-Key header that was already answered successfully. Reusing a
// key with a different payload is a conflict. Stored responses expire after
// a day.
func Idempotency(store IdempotencyStore) func(http.Handler) http.Handler {
	return idempotency(&responseKeeper{store: store, now: time.Now, ttl: idempotencyTTL, max: maxIdempotencyKeys})
}

func idempotency(keeper *responseKeeper) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(IdempotencyHeader)
			if r.Method != http.MethodPost || key == "" {
				next.ServeHTTP(w, r)
				return
			}
			requestID := GetRequestID(r.Context())

			body, err := io.ReadAll(r.Body)
			if err != nil {
				api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))
			hash := RequestHash(append([]byte(r.URL.Path+"\n"), body...))

			actor := "anonymous"
			if user, ok := GetUser(r.Context()); ok {
				actor = strconv.FormatInt(user.ID, 10)
			}
			storeKey := "idempotency:" + actor + ":" + r.URL.Path + ":" + key

			keeper.mu.Lock()
			defer keeper.mu.Unlock()

			saved, found, err := keeper.lookup(r.Context(), storeKey)
			if err != nil {
				api.Fail(w, http.StatusInternalServerError, "idempotency_error", "idempotency check failed", requestID)
				return
			}
			if found {
				if saved.Hash != hash {
					api.Fail(w, http.StatusConflict, "idempotency_conflict", "idempotency key reused with a different payload", requestID)
					return
				}
				w.Header().Set("Content-Type", saved.ContentType)
				w.Header().Set("Idempotent-Replayed", "true")
				w.WriteHeader(saved.Status)
				_, _ = w.Write(saved.Body)
				return
			}

			buffered := &bufferedWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(buffered, r)

			if buffered.status >= 200 && buffered.status < 300 {
				_ = keeper.remember(r.Context(), storeKey, idempotentResponse{
					Hash:        hash,
					Status:      buffered.status,
					ContentType: w.Header().Get("Content-Type"),
					Body:        buffered.buf.Bytes(),
				})
			}
			w.WriteHeader(buffered.status)
			_, _ = w.Write(buffered.buf.Bytes())
		})
	}
}
