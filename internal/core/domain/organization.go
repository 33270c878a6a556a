package domain

import "time"

type Enterprise struct {
	ID        int       `json:"enterprise_id"`
	Name      string    `json:"name"`
	CNPJ      string    `json:"cnpj,omitempty"`
	ImageURL  string    `json:"image,omitempty"`
	IsActive  bool      `json:"is_active"`
	Owner     string    `json:"owner,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type EnterpriseInput struct {
	Name     string `json:"name"`
	CNPJ     string `json:"cnpj,omitempty"`
	ImageURL string `json:"image,omitempty"`
}

type Sector struct {
	ID           int       `json:"sector_id"`
	Name         string    `json:"name"`
	EnterpriseID int       `json:"enterprise_id"`
	Enterprise   string    `json:"enterprise,omitempty"`
	Manager      string    `json:"manager,omitempty"`
	ImageURL     string    `json:"image,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type SectorInput struct {
	EnterpriseID int    `json:"enterprise_id"`
	Name         string `json:"name"`
	ImageURL     string `json:"image,omitempty"`
}

type User struct {
	ID       int    `json:"user_id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_adm,omitempty"`
	IsActive bool   `json:"is_active"`
}

// Ref returns the identity used by classification reviewers and exclusive lists.
func (u User) Ref() UserRef {
	name := u.Name
	if name == "" {
		name = u.Username
	}
	return UserRef{ID: u.ID, Name: name}
}

// SectorUser is a membership row of a sector.
type SectorUser struct {
	User
	IsManager  bool `json:"is_manager"`
	IsReviewer bool `json:"is_reviewer"`
}

type DashboardSummary struct {
	TotalDocuments    int               `json:"total_documents"`
	ReviewedDocuments int               `json:"reviewed_documents"`
	PendingReview     int               `json:"pending_review"`
	TotalEnterprises  int               `json:"total_enterprises"`
	TotalSectors      int               `json:"total_sectors"`
	TotalCategories   int               `json:"total_categories"`
	ByStatus          map[string]int    `json:"by_status"`
	ByPrivacity       map[string]int    `json:"by_privacity"`
	RecentDocuments   []DocumentSummary `json:"recent_documents"`
}

// Session is the explicit acting-user identity passed to components that need it.
type Session struct {
	Token string
	User  UserRef
}

func (s Session) Authenticated() bool {
	return s.Token != "" && s.User.ID != 0
}
