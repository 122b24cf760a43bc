package persistence

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/valyala/bytebufferpool"

	"github.com/fbsn11/team-management-app/internal/platform/logging"
)

// Encode renders v as JSON using a pooled buffer and returns an owned copy.
func Encode(v any) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigStd.NewEncoder(buf).Encode(v); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}

// LoadDocument decodes the value stored under key into out.
// A missing key leaves out untouched and returns false. A value that
// cannot be decoded is logged and treated as missing.
func LoadDocument(ctx context.Context, store KVStore, key string, out any, logger *logging.Logger) (bool, error) {
	if logger == nil {
		logger = logging.Default()
	}

	raw, found, err := store.Load(ctx, key)
	if err != nil {
		return false, fmt.Errorf("%w: load %s: %v", ErrPersistence, key, err)
	}
	if !found || len(raw) == 0 {
		logger.InfoContext(ctx, "no stored document, starting empty", "key", key)
		return false, nil
	}

	if err := sonic.ConfigStd.Unmarshal(raw, out); err != nil {
		logger.ErrorContext(ctx, "stored document is corrupt, starting empty",
			"key", key,
			"bytes", len(raw),
			"error", err,
		)
		return false, nil
	}
	return true, nil
}
