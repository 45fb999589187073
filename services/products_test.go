package services

import (
	"testing"
)

func TestCreateProductValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   ProductInput
		wantErr string
	}{
		{
			name:    "missing name",
			input:   ProductInput{Name: " ", Price: 9.99},
			wantErr: "Product name is required.",
		},
		{
			name:    "zero price",
			input:   ProductInput{Name: "Widget", Price: 0},
			wantErr: "Price must be a positive number.",
		},
		{
			name:    "negative price",
			input:   ProductInput{Name: "Widget", Price: -1},
			wantErr: "Price must be a positive number.",
		},
		{
			name:    "negative stock",
			input:   ProductInput{Name: "Widget", Price: 1, Stock: intPtr(-5)},
			wantErr: "Stock cannot be negative.",
		},
		{
			name:  "valid with stock",
			input: ProductInput{Name: "Widget", Price: 19.99, Stock: intPtr(3)},
		},
		{
			name:  "valid without stock",
			input: ProductInput{Name: "Widget", Price: 19.99},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setupTest(t)
			product, err := CreateProduct(tc.input)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if tc.input.Stock == nil && product.Stock != 0 {
					t.Fatalf("expected stock to default to 0, got %d", product.Stock)
				}
				return
			}
			if err == nil || err.Error() != tc.wantErr {
				t.Fatalf("expected error %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestListProductsFilters(t *testing.T) {
	setupTest(t)

	seed := []ProductInput{
		{Name: "Cheap Cable", Price: 4.99, Stock: intPtr(100)},
		{Name: "Laptop", Price: 999.99, Stock: intPtr(4)},
		{Name: "Mouse", Price: 24.99, Stock: intPtr(50)},
	}
	for _, p := range seed {
		if _, err := CreateProduct(p); err != nil {
			t.Fatalf("seed product %q: %v", p.Name, err)
		}
	}

	low, err := ListProducts(ProductFilter{LowStock: true})
	if err != nil {
		t.Fatalf("list low stock: %v", err)
	}
	if len(low) != 1 || low[0].Name != "Laptop" {
		t.Fatalf("expected only the laptop to be low stock, got %+v", low)
	}

	min := 10.0
	max := 100.0
	ranged, err := ListProducts(ProductFilter{PriceGte: &min, PriceLte: &max})
	if err != nil {
		t.Fatalf("list price range: %v", err)
	}
	if len(ranged) != 1 || ranged[0].Name != "Mouse" {
		t.Fatalf("expected only the mouse in [10,100], got %+v", ranged)
	}

	named, err := ListProducts(ProductFilter{Name: "lap"})
	if err != nil {
		t.Fatalf("list by name: %v", err)
	}
	if len(named) != 1 || named[0].Name != "Laptop" {
		t.Fatalf("expected the laptop by name, got %+v", named)
	}
}

func intPtr(v int) *int {
	return &v
}
