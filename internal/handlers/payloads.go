package handlers

import (
	"github.com/furnikart/api/internal/domain"
)

type productPayload struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"`
	InStock     bool     `json:"inStock"`
	Images      []string `json:"images"`
}

type cartItemPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Image    string `json:"image"`
	Category string `json:"category"`
	Quantity int    `json:"quantity"`
}

type cartPayload struct {
	Items         []cartItemPayload `json:"items"`
	TotalAmount   int64             `json:"totalAmount"`
	TotalQuantity int               `json:"totalQuantity"`
}

type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func buildProductPayload(product domain.Product) productPayload {
	images := product.Images
	if images == nil {
		images = []string{}
	}
	return productPayload{
		ID:          product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Image:       product.Image,
		Category:    product.Category,
		Description: product.Description,
		Rating:      product.Rating,
		InStock:     product.InStock,
		Images:      images,
	}
}

func buildProductListPayload(products []domain.Product) []productPayload {
	payload := make([]productPayload, 0, len(products))
	for _, product := range products {
		payload = append(payload, buildProductPayload(product))
	}
	return payload
}

func buildCartPayload(cart domain.Cart) cartPayload {
	items := make([]cartItemPayload, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, cartItemPayload{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Image:    item.Image,
			Category: item.Category,
			Quantity: item.Quantity,
		})
	}
	return cartPayload{
		Items:         items,
		TotalAmount:   cart.TotalAmount,
		TotalQuantity: cart.TotalQuantity,
	}
}

func buildUserPayload(user domain.User) userPayload {
	return userPayload{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}
