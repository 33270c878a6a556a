package ports

import (
	"context"
	"time"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
)

// ClassificationAPI reads and fully replaces a document classification.
type ClassificationAPI interface {
	GetClassification(ctx context.Context, documentID int) (domain.Classification, error)
	UpdateClassification(ctx context.Context, documentID int, cls domain.Classification) error
}

// CategoryLinkAPI reads and fully replaces the categories linked to a document.
type CategoryLinkAPI interface {
	ListLinkedCategories(ctx context.Context, documentID int) ([]domain.Category, error)
	LinkCategories(ctx context.Context, documentID int, categoryIDs []int) error
}

// CategoryCatalogAPI administers the category catalogue of a sector.
type CategoryCatalogAPI interface {
	ListSectorCategories(ctx context.Context, sectorID int) ([]domain.Category, error)
	CreateCategory(ctx context.Context, in domain.NewCategory) (*domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID int, in domain.NewCategory) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID int) error
}

// DocumentSearchAPI serves the two listing endpoints.
type DocumentSearchAPI interface {
	ListDocuments(ctx context.Context, page int) (domain.SearchPage, error)
	SearchDocuments(ctx context.Context, filters domain.DocumentFilters, page int) (domain.SearchPage, error)
}

// DocumentAPI covers single-document endpoints.
type DocumentAPI interface {
	GetDocument(ctx context.Context, documentID int) (*domain.Document, error)
	CreateDocument(ctx context.Context, in domain.NewDocument) (*domain.Document, error)
	UpdateDocument(ctx context.Context, documentID int, in domain.DocumentUpdate) (*domain.Document, error)
	ToggleDocumentActive(ctx context.Context, documentID int) (*domain.Document, error)
	DeleteDocument(ctx context.Context, documentID int) error
}

type EnterpriseAPI interface {
	ListEnterprises(ctx context.Context) ([]domain.Enterprise, error)
	GetEnterprise(ctx context.Context, enterpriseID int) (*domain.Enterprise, error)
	CreateEnterprise(ctx context.Context, in domain.EnterpriseInput) (*domain.Enterprise, error)
	UpdateEnterprise(ctx context.Context, enterpriseID int, in domain.EnterpriseInput) (*domain.Enterprise, error)
	ToggleEnterpriseActive(ctx context.Context, enterpriseID int) (*domain.Enterprise, error)
	DeleteEnterprise(ctx context.Context, enterpriseID int) error
}

type SectorAPI interface {
	ListSectors(ctx context.Context, enterpriseID int) ([]domain.Sector, error)
	GetSector(ctx context.Context, sectorID int) (*domain.Sector, error)
	CreateSector(ctx context.Context, in domain.SectorInput) (*domain.Sector, error)
	UpdateSector(ctx context.Context, sectorID int, in domain.SectorInput) (*domain.Sector, error)
	DeleteSector(ctx context.Context, sectorID int) error
	ListSectorUsers(ctx context.Context, sectorID int) ([]domain.SectorUser, error)
	AddSectorUser(ctx context.Context, sectorID int, email string) error
	RemoveSectorUser(ctx context.Context, sectorID, userID int) error
}

type UserAPI interface {
	CurrentUser(ctx context.Context) (*domain.User, error)
	ListUsers(ctx context.Context, sectorID int) ([]domain.User, error)
}

type DashboardAPI interface {
	Dashboard(ctx context.Context) (*domain.DashboardSummary, error)
}

// DraftStore persists classification edits between invocations.
type DraftStore interface {
	Get(ctx context.Context, documentID int) (*domain.Draft, error)
	Put(ctx context.Context, draft domain.Draft) error
	Delete(ctx context.Context, documentID int) error
	List(ctx context.Context) ([]domain.Draft, error)
}

// EventPublisher announces committed classification saves.
type EventPublisher interface {
	PublishClassificationSaved(ctx context.Context, event domain.ClassificationSaved) error
}

// RequestObserver records one API call outcome.
type RequestObserver interface {
	ObserveRequest(operation string, statusCode int, duration time.Duration, err error)
}

// Clock is injected where timestamps are persisted.
type Clock func() time.Time

// SaveRecorder counts save outcomes per reconciled domain.
type SaveRecorder interface {
	RecordSave(domain string, err error)
}

// BrowseRecorder counts document list loads per mode.
type BrowseRecorder interface {
	RecordBrowse(mode string, err error)
}
