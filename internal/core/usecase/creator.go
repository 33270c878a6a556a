package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/ports"
)

type DocumentCreator struct {
	documents ports.DocumentAPI
}

func NewDocumentCreator(documents ports.DocumentAPI) *DocumentCreator {
	return &DocumentCreator{documents: documents}
}

// Create validates the draft document locally and only then posts it.
func (c *DocumentCreator) Create(ctx context.Context, in domain.NewDocument) (*domain.Document, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, &domain.ValidationError{Field: "title", Message: "Informe o título do documento."}
	}
	if in.SectorID <= 0 {
		return nil, &domain.ValidationError{Field: "sector_id", Message: "Selecione o setor do documento."}
	}
	if in.Privacity != nil && *in.Privacity == domain.PrivacityExclusive {
		in.ExclusiveUsers = domain.NormalizeIDs(in.ExclusiveUsers)
		if len(in.ExclusiveUsers) == 0 {
			return nil, &domain.ValidationError{Field: "exclusive_users", Message: domain.ExclusiveWithoutUsersMessage}
		}
	} else {
		in.ExclusiveUsers = nil
	}
	in.CategoryIDs = domain.NormalizeIDs(in.CategoryIDs)

	doc, err := c.documents.CreateDocument(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return doc, nil
}
