package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/digitalshop-api/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InvoiceResponse is the external view of an invoice.
type InvoiceResponse struct {
	ID            uuid.UUID             `json:"id"`
	User          *InvoiceUserResponse  `json:"user"`
	Products      []ProductResponse     `json:"products"`
	SubTotal      decimal.Decimal       `json:"subTotal"`
	Tax           decimal.Decimal       `json:"tax"`
	TotalPrice    decimal.Decimal       `json:"totalPrice"`
	PaymentStatus domain.PaymentStatus  `json:"paymentStatus"`
	PaymentMethod *domain.PaymentMethod `json:"paymentMethod"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// InvoiceUserResponse is the public subset of the invoice owner.
type InvoiceUserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
}

// ProductResponse is the external view of a purchased product.
type ProductResponse struct {
	ID          uuid.UUID                `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Price       decimal.Decimal          `json:"price"`
	ImageURL    string                   `json:"imageUrl"`
	Category    *CategoryProductResponse `json:"category"`
}

// CategoryProductResponse is the category summary embedded in a product.
type CategoryProductResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// NewInvoiceResponse projects a domain invoice to its response shape.
// Products keep their stored order. A nil invoice yields nil.
func NewInvoiceResponse(inv *domain.Invoice) *InvoiceResponse {
	if inv == nil {
		return nil
	}

	resp := &InvoiceResponse{
		ID:            inv.ID,
		User:          NewInvoiceUserResponse(inv.User),
		Products:      lo.Map(inv.Products, func(p *domain.Product, _ int) ProductResponse { return NewProductResponse(p) }),
		SubTotal:      inv.SubTotal,
		Tax:           inv.Tax,
		TotalPrice:    inv.TotalPrice,
		PaymentStatus: inv.PaymentStatus,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
	if inv.PaymentMethod.IsSet() {
		method := inv.PaymentMethod
		resp.PaymentMethod = &method
	}
	return resp
}

// NewInvoiceUserResponse drops everything but the identity fields of u.
func NewInvoiceUserResponse(u *domain.User) *InvoiceUserResponse {
	if u == nil {
		return nil
	}
	return &InvoiceUserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// NewProductResponse projects p together with its category summary.
func NewProductResponse(p *domain.Product) ProductResponse {
	if p == nil {
		return ProductResponse{}
	}

	resp := ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
	}
	if p.Category != nil {
		resp.Category = &CategoryProductResponse{
			ID:   p.Category.ID,
			Name: p.Category.Name,
			Slug: p.Category.Slug,
		}
	}
	return resp
}
