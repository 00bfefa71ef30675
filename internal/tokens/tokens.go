// Package tokens estimates token counts for stored content using the
// cl100k_base encoding, the same tokenizer family the catalog's consumers
// budget against.
package tokens

import (
	"fmt"
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

// Counter counts tokens in text. The codec is loaded once and reused; it
// is safe for concurrent use.
type Counter struct {
	once  sync.Once
	codec tokenizer.Codec
	err   error
}

// NewCounter creates a Counter. The underlying codec loads lazily on the
// first Count call.
func NewCounter() *Counter {
	return &Counter{}
}

// Count returns the number of tokens in text. Empty text counts as zero
// without touching the codec.
func (c *Counter) Count(text string) (int64, error) {
	if text == "" {
		return 0, nil
	}

	c.once.Do(func() {
		c.codec, c.err = tokenizer.Get(tokenizer.Cl100kBase)
	})
	if c.err != nil {
		return 0, fmt.Errorf("failed to load tokenizer: %w", c.err)
	}

	ids, _, err := c.codec.Encode(text)
	if err != nil {
		return 0, fmt.Errorf("failed to tokenize: %w", err)
	}
	return int64(len(ids)), nil
}
