package arquivia

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
)

func (c *Client) ListEnterprises(ctx context.Context) ([]domain.Enterprise, error) {
	var enterprises []domain.Enterprise
	if _, err := c.fetch(ctx, get("enterprises.list", "/empresa/listar/"), nil, &enterprises); err != nil {
		return nil, err
	}
	return enterprises, nil
}

func (c *Client) GetEnterprise(ctx context.Context, enterpriseID int) (*domain.Enterprise, error) {
	var enterprise domain.Enterprise
	path := fmt.Sprintf("/empresa/consultar/%d/", enterpriseID)
	if _, err := c.fetch(ctx, get("enterprises.get", path), nil, &enterprise); err != nil {
		return nil, err
	}
	return &enterprise, nil
}

func (c *Client) CreateEnterprise(ctx context.Context, in domain.EnterpriseInput) (*domain.Enterprise, error) {
	var enterprise domain.Enterprise
	if _, err := c.send(ctx, http.MethodPost, "enterprises.create", "/empresa/criar/", in, &enterprise); err != nil {
		return nil, err
	}
	return &enterprise, nil
}

func (c *Client) UpdateEnterprise(ctx context.Context, enterpriseID int, in domain.EnterpriseInput) (*domain.Enterprise, error) {
	var enterprise domain.Enterprise
	path := fmt.Sprintf("/empresa/alterar/%d/", enterpriseID)
	if _, err := c.send(ctx, http.MethodPut, "enterprises.update", path, in, &enterprise); err != nil {
		return nil, err
	}
	return &enterprise, nil
}

func (c *Client) ToggleEnterpriseActive(ctx context.Context, enterpriseID int) (*domain.Enterprise, error) {
	var enterprise domain.Enterprise
	path := fmt.Sprintf("/empresa/ativar-desativar/%d/", enterpriseID)
	if _, err := c.send(ctx, http.MethodPatch, "enterprises.toggle", path, nil, &enterprise); err != nil {
		return nil, err
	}
	return &enterprise, nil
}

func (c *Client) DeleteEnterprise(ctx context.Context, enterpriseID int) error {
	path := fmt.Sprintf("/empresa/excluir/%d/", enterpriseID)
	_, err := c.send(ctx, http.MethodDelete, "enterprises.delete", path, nil, nil)
	return err
}

func (c *Client) ListSectors(ctx context.Context, enterpriseID int) ([]domain.Sector, error) {
	var sectors []domain.Sector
	path := fmt.Sprintf("/setor/listar/%d/", enterpriseID)
	if _, err := c.fetch(ctx, get("sectors.list", path), nil, &sectors); err != nil {
		return nil, err
	}
	return sectors, nil
}

func (c *Client) GetSector(ctx context.Context, sectorID int) (*domain.Sector, error) {
	var sector domain.Sector
	path := fmt.Sprintf("/setor/consultar/%d/", sectorID)
	if _, err := c.fetch(ctx, get("sectors.get", path), nil, &sector); err != nil {
		return nil, err
	}
	return &sector, nil
}

func (c *Client) CreateSector(ctx context.Context, in domain.SectorInput) (*domain.Sector, error) {
	var sector domain.Sector
	if _, err := c.send(ctx, http.MethodPost, "sectors.create", "/setor/criar/", in, &sector); err != nil {
		return nil, err
	}
	return &sector, nil
}

func (c *Client) UpdateSector(ctx context.Context, sectorID int, in domain.SectorInput) (*domain.Sector, error) {
	var sector domain.Sector
	path := fmt.Sprintf("/setor/alterar/%d/", sectorID)
	if _, err := c.send(ctx, http.MethodPut, "sectors.update", path, in, &sector); err != nil {
		return nil, err
	}
	return &sector, nil
}

func (c *Client) DeleteSector(ctx context.Context, sectorID int) error {
	path := fmt.Sprintf("/setor/excluir/%d/", sectorID)
	_, err := c.send(ctx, http.MethodDelete, "sectors.delete", path, nil, nil)
	return err
}

func (c *Client) ListSectorUsers(ctx context.Context, sectorID int) ([]domain.SectorUser, error) {
	var users []domain.SectorUser
	path := fmt.Sprintf("/setor/usuarios/%d/", sectorID)
	if _, err := c.fetch(ctx, get("sectors.users", path), nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) AddSectorUser(ctx context.Context, sectorID int, email string) error {
	path := fmt.Sprintf("/setor/adicionar-usuario/%d/", sectorID)
	payload := map[string]string{"email": email}
	_, err := c.send(ctx, http.MethodPost, "sectors.add_user", path, payload, nil)
	return err
}

func (c *Client) RemoveSectorUser(ctx context.Context, sectorID, userID int) error {
	path := fmt.Sprintf("/setor/remover-usuario/%d/%d/", sectorID, userID)
	_, err := c.send(ctx, http.MethodDelete, "sectors.remove_user", path, nil, nil)
	return err
}

func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if _, err := c.fetch(ctx, get("users.current", "/usuario/consultar/"), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListUsers(ctx context.Context, sectorID int) ([]domain.User, error) {
	ep := get("users.list", "/usuario/listar/")
	if sectorID > 0 {
		ep = ep.withQuery(url.Values{"sector_id": {strconv.Itoa(sectorID)}})
	}
	var users []domain.User
	if _, err := c.fetch(ctx, ep, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) Dashboard(ctx context.Context) (*domain.DashboardSummary, error) {
	var summary domain.DashboardSummary
	if _, err := c.fetch(ctx, get("dashboard.get", "/dashboard/"), nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
