package arquivia

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
)

func (c *Client) ListDocuments(ctx context.Context, page int) (domain.SearchPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(max(page, 1)))
	return c.fetchPage(ctx, get("documents.list", "/documento/listar/").withQuery(query))
}

// SearchDocuments sends the full filter bag; unset filters travel as empty values.
func (c *Client) SearchDocuments(ctx context.Context, filters domain.DocumentFilters, page int) (domain.SearchPage, error) {
	return c.fetchPage(ctx, get("documents.search", "/documento/pesquisar/").withQuery(searchQuery(filters, page)))
}

func searchQuery(filters domain.DocumentFilters, page int) url.Values {
	query := url.Values{}
	query.Set("searchTerm", filters.SearchTerm)
	query.Set("isReviewed", "")
	if filters.IsReviewed != nil {
		query.Set("isReviewed", strconv.FormatBool(*filters.IsReviewed))
	}
	query.Set("statusId", "")
	if filters.StatusID != nil {
		query.Set("statusId", strconv.Itoa(int(*filters.StatusID)))
	}
	query.Set("privacityId", "")
	if filters.PrivacityID != nil {
		query.Set("privacityId", strconv.Itoa(int(*filters.PrivacityID)))
	}
	query.Set("reviewer", filters.Reviewer)
	query.Set("categories", filters.CategoriesParam())
	query.Set("page", strconv.Itoa(max(page, 1)))
	return query
}

func (c *Client) GetDocument(ctx context.Context, documentID int) (*domain.Document, error) {
	var doc domain.Document
	path := fmt.Sprintf("/documento/consultar/%d/", documentID)
	if _, err := c.fetch(ctx, get("documents.get", path), nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) CreateDocument(ctx context.Context, in domain.NewDocument) (*domain.Document, error) {
	var doc domain.Document
	if _, err := c.send(ctx, http.MethodPost, "documents.create", "/documento/criar/", in, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) UpdateDocument(ctx context.Context, documentID int, in domain.DocumentUpdate) (*domain.Document, error) {
	var doc domain.Document
	path := fmt.Sprintf("/documento/alterar/%d/", documentID)
	if _, err := c.send(ctx, http.MethodPut, "documents.update", path, in, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) ToggleDocumentActive(ctx context.Context, documentID int) (*domain.Document, error) {
	var doc domain.Document
	path := fmt.Sprintf("/documento/ativar-desativar/%d/", documentID)
	if _, err := c.send(ctx, http.MethodPatch, "documents.toggle", path, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) DeleteDocument(ctx context.Context, documentID int) error {
	path := fmt.Sprintf("/documento/excluir/%d/", documentID)
	_, err := c.send(ctx, http.MethodDelete, "documents.delete", path, nil, nil)
	return err
}
