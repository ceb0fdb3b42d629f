package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const maxProductName = 200

// ProductDeleter elimina un producto con la verificación de saldo (motor de inventario).
type ProductDeleter interface {
	DeleteProduct(ctx context.Context, productID int64) error
}

// ProductUseCase casos de uso CRUD para productos. El saldo solo cambia vía movimientos.
type ProductUseCase struct {
	repo    repository.ProductRepository
	deleter ProductDeleter
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, deleter ProductDeleter) *ProductUseCase {
	return &ProductUseCase{repo: repo, deleter: deleter}
}

// Create crea un producto con saldo 0. El nombre se normaliza (NFC, sin espacios en los extremos).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	product := &entity.Product{
		Name:        name,
		Unit:        strings.TrimSpace(in.Unit),
		Description: strings.TrimSpace(in.Description),
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List lista productos por nombre; search filtra por nombre o unidad.
func (uc *ProductUseCase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		Search: norm.NFC.String(strings.TrimSpace(search)),
		Limit:  page.Limit,
		Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Update actualiza nombre, unidad y/o descripción. ErrNoOp si no llega ningún campo.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == nil && in.Unit == nil && in.Description == nil {
		return nil, domain.ErrNoOp
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name, err := normalizeName(*in.Name)
		if err != nil {
			return nil, err
		}
		if name != product.Name {
			other, err := uc.repo.GetByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrDuplicate
			}
		}
		product.Name = name
	}
	if in.Unit != nil {
		product.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina el producto solo si su saldo es 0 (junto con sus movimientos).
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.deleter.DeleteProduct(ctx, id)
}

func normalizeName(name string) (string, error) {
	name = norm.NFC.String(strings.TrimSpace(name))
	if name == "" {
		return "", fmt.Errorf("%w: el nombre es obligatorio", domain.ErrInvalidInput)
	}
	if len([]rune(name)) > maxProductName {
		return "", fmt.Errorf("%w: el nombre supera %d caracteres", domain.ErrInvalidInput, maxProductName)
	}
	return name, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Unit:        p.Unit,
		Description: p.Description,
		Quantity:    p.Quantity,
		CreatedAt:   p.CreatedAt,
	}
}
