package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stokledger/backend/internal/application/common"
	"github.com/stokledger/backend/internal/domain/catalog"
	"github.com/stokledger/backend/internal/domain/shared"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(req.StockCode, req.Name, catalog.Unit(req.Unit))
	if err != nil {
		return nil, err
	}
	if err := product.SetBarcode(req.Barcode); err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsByStockCode(ctx, product.StockCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this stock code already exists")
	}
	if product.Barcode != "" {
		exists, err = s.productRepo.ExistsByBarcode(ctx, product.Barcode)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this barcode already exists")
		}
	}

	if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByBarcode retrieves a product by barcode
func (s *ProductService) GetByBarcode(ctx context.Context, barcode string) (*ProductResponse, error) {
	if barcode == "" {
		return nil, shared.InvalidInput("Barcode is required")
	}
	product, err := s.productRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List retrieves a page of products
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (*shared.Paginated[ProductResponse], error) {
	f := shared.DefaultFilter()
	f.OrderBy = "stock_code"
	f.OrderDir = "asc"
	f.Search = filter.Search
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}

	products, total, err := s.productRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToProductResponses(products), total, f.Page, f.PageSize)
	return &page, nil
}

// Update changes a product's name, category or barcode
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := product.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Barcode != nil && *req.Barcode != product.Barcode {
		if *req.Barcode != "" {
			exists, err := s.productRepo.ExistsByBarcode(ctx, *req.Barcode)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this barcode already exists")
			}
		}
		if err := product.SetBarcode(*req.Barcode); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		if err := s.ensureCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		product.SetCategory(req.CategoryID)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

func (s *ProductService) ensureCategory(ctx context.Context, id uuid.UUID) error {
	_, err := s.categoryRepo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewDomainError("INVALID_CATEGORY", "Category not found")
	}
	return err
}
