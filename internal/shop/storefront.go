package shop

import (
	"context"
	"errors"
	"io"

	"printbazar/m/domain"
	"printbazar/m/internal/printjob"
	"printbazar/m/internal/storage"
	"printbazar/m/internal/store"
)

type CartView struct {
	Lines    []domain.LineItem `json:"lines"`
	Subtotal domain.Money      `json:"subtotal"`
	Count    int               `json:"count"`
}

func (s *Shop) cartViewLocked() CartView {
	return CartView{Lines: s.cart.Lines(), Subtotal: s.cart.Subtotal(), Count: s.cart.Len()}
}

func (s *Shop) Cart() CartView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cartViewLocked()
}

// AddToCart adds one unit of an in-stock catalog product.
func (s *Shop) AddToCart(ctx context.Context, productID string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.product(productID)
	if !ok || p.Category == domain.CustomPrintCategory {
		return CartView{}, notFound(ErrProduct)
	}
	if !p.InStock {
		return CartView{}, invalid(ErrOutOfStock, "product_id")
	}
	if _, err := s.cart.AddOrIncrement(domain.CatalogLine(p, 1)); err != nil {
		return CartView{}, invalid(err, "product_id")
	}
	return s.cartViewLocked(), s.persistLocked(ctx, store.KeyCart)
}

// ChangeQuantity moves a line by delta. Quantities stay at 1 or above, except
// that a single-step decrement of a line at 1 removes it.
func (s *Shop) ChangeQuantity(ctx context.Context, key string, delta int64) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ok bool
	if delta == -1 {
		ok = s.cart.Decrement(key)
	} else {
		ok = s.cart.UpdateQuantity(key, delta)
	}
	if !ok {
		return CartView{}, notFound(ErrLineNotFound)
	}
	return s.cartViewLocked(), s.persistLocked(ctx, store.KeyCart)
}

func (s *Shop) RemoveFromCart(ctx context.Context, key string) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cart.Remove(key) {
		return CartView{}, notFound(ErrLineNotFound)
	}
	return s.cartViewLocked(), s.persistLocked(ctx, store.KeyCart)
}

func (s *Shop) ClearCart(ctx context.Context) (CartView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	return s.cartViewLocked(), s.persistLocked(ctx, store.KeyCart)
}

// UploadPrintFile stores the document and starts page detection. The
// returned snapshot is usually still Uploading.
func (s *Shop) UploadPrintFile(ctx context.Context, r io.Reader, in storage.PutInput) (printjob.Snapshot, error) {
	if s.deps.Files == nil {
		return printjob.Snapshot{}, errors.New("shop: file storage is not configured")
	}
	res, err := s.deps.Files.Put(ctx, r, in)
	if errors.Is(err, storage.ErrUnsupportedType) {
		return printjob.Snapshot{}, invalid(err, "file")
	}
	if err != nil {
		return printjob.Snapshot{}, err
	}
	if _, err := s.job.Upload(ctx, printjob.File{Name: in.Filename, Ref: res.Key}); err != nil {
		return printjob.Snapshot{}, invalid(err, "file")
	}
	return s.job.Snapshot(), nil
}

func (s *Shop) PrintJob() printjob.Snapshot {
	return s.job.Snapshot()
}

// WaitPrintJob blocks until page detection for the current upload settles.
func (s *Shop) WaitPrintJob(ctx context.Context) (printjob.Snapshot, error) {
	return s.job.Wait(ctx)
}

func (s *Shop) ConfigurePrintJob(opts printjob.Options) (printjob.Snapshot, error) {
	snap, err := s.job.Configure(opts)
	if err != nil {
		return printjob.Snapshot{}, invalid(err, "options")
	}
	return snap, nil
}

// CommitPrintJob adds the configured job to the cart as a new line.
func (s *Shop) CommitPrintJob(ctx context.Context) (CartView, error) {
	line, err := s.job.Commit()
	if err != nil {
		return CartView{}, invalid(err, "file")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.cart.AddOrIncrement(line); err != nil {
		return CartView{}, invalid(err, "file")
	}
	return s.cartViewLocked(), s.persistLocked(ctx, store.KeyCart)
}

func (s *Shop) ResetPrintJob() {
	s.job.Reset()
}
