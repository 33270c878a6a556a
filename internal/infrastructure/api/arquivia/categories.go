package arquivia

import (
	"context"
	"fmt"
	"net/http"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
)

func (c *Client) ListLinkedCategories(ctx context.Context, documentID int) ([]domain.Category, error) {
	var categories []domain.Category
	path := fmt.Sprintf("/documento/categoria/listar/%d/", documentID)
	if _, err := c.fetch(ctx, get("categories.linked", path), nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// LinkCategories replaces the full set of categories linked to a document.
func (c *Client) LinkCategories(ctx context.Context, documentID int, categoryIDs []int) error {
	ids := domain.NormalizeIDs(categoryIDs)
	if ids == nil {
		ids = []int{}
	}
	path := fmt.Sprintf("/documento/categoria/vincular/%d/", documentID)
	_, err := c.send(ctx, http.MethodPost, "categories.link", path, linkCategoriesPayload{CategoriesID: ids}, nil)
	return err
}

func (c *Client) ListSectorCategories(ctx context.Context, sectorID int) ([]domain.Category, error) {
	var categories []domain.Category
	path := fmt.Sprintf("/categoria/listar/%d/", sectorID)
	if _, err := c.fetch(ctx, get("categories.list", path), nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, in domain.NewCategory) (*domain.Category, error) {
	var category domain.Category
	if _, err := c.send(ctx, http.MethodPost, "categories.create", "/categoria/criar/", in, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) UpdateCategory(ctx context.Context, categoryID int, in domain.NewCategory) (*domain.Category, error) {
	var category domain.Category
	path := fmt.Sprintf("/categoria/alterar/%d/", categoryID)
	if _, err := c.send(ctx, http.MethodPut, "categories.update", path, in, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (c *Client) DeleteCategory(ctx context.Context, categoryID int) error {
	path := fmt.Sprintf("/categoria/excluir/%d/", categoryID)
	_, err := c.send(ctx, http.MethodDelete, "categories.delete", path, nil, nil)
	return err
}
