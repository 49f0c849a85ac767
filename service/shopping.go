package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/HoneyKnight/foodgram-project-react/repository"
)

// ShoppingService renders the aggregated shopping list. Pure read: it
// never mutates the cart.
type ShoppingService struct {
	shopping *repository.ShoppingRepository
	header   string
}

// NewShoppingService creates and returns a new ShoppingService.
func NewShoppingService(shopping *repository.ShoppingRepository, header string) *ShoppingService {
	return &ShoppingService{shopping: shopping, header: header}
}

// Export produces the plain-text shopping list for the user's cart. An
// empty cart yields just the header.
func (s *ShoppingService) Export(ctx context.Context, userID uint) (string, error) {
	rows, err := s.shopping.Aggregate(ctx, userID)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(s.header)
	for _, row := range rows {
		fmt.Fprintf(&b, "%s - %d/%s \n", row.Name, row.Total, row.MeasurementUnit)
	}
	return b.String(), nil
}
