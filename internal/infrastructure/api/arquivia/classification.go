package arquivia

import (
	"context"
	"fmt"
	"net/http"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
)

func (c *Client) GetClassification(ctx context.Context, documentID int) (domain.Classification, error) {
	var dto classificationDTO
	path := fmt.Sprintf("/documento/classificacao/consultar/%d/", documentID)
	if _, err := c.fetch(ctx, get("classification.get", path), nil, &dto); err != nil {
		return domain.Classification{}, err
	}
	return dto.toDomain(), nil
}

// UpdateClassification replaces the whole classification; the backend takes no patches.
func (c *Client) UpdateClassification(ctx context.Context, documentID int, cls domain.Classification) error {
	path := fmt.Sprintf("/documento/classificacao/alterar/%d/", documentID)
	_, err := c.send(ctx, http.MethodPut, "classification.update", path, newClassificationPayload(cls), nil)
	return err
}
