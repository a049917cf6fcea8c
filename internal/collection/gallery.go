package collection

import (
	"context"

	"github.com/keepsake-app/keepsake/internal/codec"
	"github.com/keepsake-app/keepsake/internal/gate"
	"github.com/keepsake-app/keepsake/internal/log"
	"github.com/keepsake-app/keepsake/internal/store"
)

// Gallery is the ordered list of compressed images. Identity is position.
type Gallery struct {
	images *store.Collection[codec.Payload]
	logger *log.Logger
}

// OpenGallery loads the gallery from backend.
func OpenGallery(ctx context.Context, backend store.Backend, logger *log.Logger) *Gallery {
	return &Gallery{
		images: store.Open[codec.Payload](ctx, backend, store.KeyGalleryImages, logger),
		logger: logger,
	}
}

// Images returns the images in display order.
func (g *Gallery) Images() []codec.Payload {
	return g.images.Items()
}

// Len returns the number of images.
func (g *Gallery) Len() int {
	return g.images.Len()
}

// Add appends payloads in order. Any role may add.
func (g *Gallery) Add(ctx context.Context, payloads ...codec.Payload) error {
	if len(payloads) == 0 {
		return nil
	}
	err := g.images.Mutate(ctx, func(items []codec.Payload) []codec.Payload {
		return append(items, payloads...)
	})
	if err != nil {
		return err
	}
	_ = g.logger.Append(log.LogEvent{
		Event: log.EventImageAdded,
		Count: len(payloads),
	})
	return nil
}

// Delete removes the image at index. Only the elevated role may delete; an
// out-of-range index is a no-op.
func (g *Gallery) Delete(ctx context.Context, role gate.Role, index int) error {
	if !role.CanDelete() {
		_ = g.logger.Append(log.LogEvent{
			Event: log.EventPermissionDenied,
			Key:   g.images.Key(),
			Role:  role.String(),
			Index: log.IntPtr(index),
		})
		return ErrPermissionDenied
	}
	if index < 0 || index >= g.images.Len() {
		return nil
	}
	err := g.images.Mutate(ctx, func(items []codec.Payload) []codec.Payload {
		return append(items[:index], items[index+1:]...)
	})
	if err != nil {
		return err
	}
	_ = g.logger.Append(log.LogEvent{
		Event: log.EventImageDeleted,
		Index: log.IntPtr(index),
	})
	return nil
}
