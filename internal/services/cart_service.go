package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/furnikart/api/internal/domain"
)

// ErrCartInvalidInput indicates the caller supplied invalid input.
var ErrCartInvalidInput = errors.New("cart service: invalid input")

// CartServiceDeps wires the optional logger for cart operations.
type CartServiceDeps struct {
	Logger func(context.Context, string, map[string]any)
}

type cartService struct {
	mu     sync.Mutex
	carts  map[string]*domain.Cart
	logger func(context.Context, string, map[string]any)
}

// NewCartService constructs a CartService holding one cart per session.
func NewCartService(deps CartServiceDeps) (CartService, error) {
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &cartService{
		carts:  make(map[string]*domain.Cart),
		logger: logger,
	}, nil
}

// Cart returns a snapshot of the session's cart, empty when none exists yet.
func (s *cartService) Cart(ctx context.Context, uid string) (domain.Cart, error) {
	uid, err := normaliseUID(uid)
	if err != nil {
		return domain.Cart{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneCart(s.cart(uid)), nil
}

// AddItem admits one unit of the item. An existing line gains quantity; the
// running amount always grows by the price supplied with this call, not the
// price stored on the line.
func (s *cartService) AddItem(ctx context.Context, uid string, cmd AddItemCommand) (domain.Cart, error) {
	uid, err := normaliseUID(uid)
	if err != nil {
		return domain.Cart{}, err
	}
	itemID := strings.TrimSpace(cmd.ID)
	if itemID == "" {
		return domain.Cart{}, fmt.Errorf("%w: item id is required", ErrCartInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart(uid)
	found := false
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			cart.Items[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, domain.CartItem{
			ID:       itemID,
			Name:     cmd.Name,
			Price:    cmd.Price,
			Image:    cmd.Image,
			Category: cmd.Category,
			Quantity: 1,
		})
	}
	cart.TotalQuantity++
	cart.TotalAmount += cmd.Price

	s.logger(ctx, "cart.item_added", map[string]any{
		"item_id":        itemID,
		"total_quantity": cart.TotalQuantity,
	})
	return cloneCart(cart), nil
}

// RemoveItem drops the whole line and its contribution to the totals. An
// unknown item id leaves the cart untouched.
func (s *cartService) RemoveItem(ctx context.Context, uid, itemID string) (domain.Cart, error) {
	uid, err := normaliseUID(uid)
	if err != nil {
		return domain.Cart{}, err
	}
	itemID = strings.TrimSpace(itemID)

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart(uid)
	for i := range cart.Items {
		if cart.Items[i].ID != itemID {
			continue
		}
		item := cart.Items[i]
		cart.TotalQuantity -= item.Quantity
		cart.TotalAmount -= item.Price * int64(item.Quantity)
		cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		s.logger(ctx, "cart.item_removed", map[string]any{
			"item_id":        itemID,
			"total_quantity": cart.TotalQuantity,
		})
		break
	}
	return cloneCart(cart), nil
}

// UpdateQuantity sets the line's quantity and adjusts the totals by the
// difference. Unknown ids and non-positive quantities leave the cart untouched.
func (s *cartService) UpdateQuantity(ctx context.Context, uid, itemID string, quantity int) (domain.Cart, error) {
	uid, err := normaliseUID(uid)
	if err != nil {
		return domain.Cart{}, err
	}
	itemID = strings.TrimSpace(itemID)

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart(uid)
	if quantity > 0 {
		for i := range cart.Items {
			if cart.Items[i].ID != itemID {
				continue
			}
			delta := quantity - cart.Items[i].Quantity
			cart.TotalQuantity += delta
			cart.TotalAmount += cart.Items[i].Price * int64(delta)
			cart.Items[i].Quantity = quantity
			break
		}
	}
	return cloneCart(cart), nil
}

// ClearCart resets the session's cart to empty.
func (s *cartService) ClearCart(ctx context.Context, uid string) (domain.Cart, error) {
	uid, err := normaliseUID(uid)
	if err != nil {
		return domain.Cart{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.cart(uid)
	cart.Items = cart.Items[:0]
	cart.TotalAmount = 0
	cart.TotalQuantity = 0
	s.logger(ctx, "cart.cleared", nil)
	return cloneCart(cart), nil
}

func (s *cartService) cart(uid string) *domain.Cart {
	cart, ok := s.carts[uid]
	if !ok {
		cart = &domain.Cart{Items: []domain.CartItem{}}
		s.carts[uid] = cart
	}
	return cart
}

func normaliseUID(uid string) (string, error) {
	uid = strings.TrimSpace(uid)
	if uid == "" {
		return "", fmt.Errorf("%w: session id is required", ErrCartInvalidInput)
	}
	return uid, nil
}

func cloneCart(cart *domain.Cart) domain.Cart {
	items := make([]domain.CartItem, len(cart.Items))
	copy(items, cart.Items)
	return domain.Cart{
		Items:         items,
		TotalAmount:   cart.TotalAmount,
		TotalQuantity: cart.TotalQuantity,
	}
}
