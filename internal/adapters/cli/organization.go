package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/BraceroInSabot/ArquiVia-sub000/internal/core/domain"
)

func (c *CLI) categoriesList(ctx context.Context, args []string) error {
	sectorID, _, err := leadingID("categories list", args)
	if err != nil {
		return err
	}
	categories, err := c.svc.Catalog.ListSectorCategories(ctx, sectorID)
	if err != nil {
		return err
	}
	return c.render(categories)
}

func (c *CLI) categoriesLinked(ctx context.Context, args []string) error {
	documentID, _, err := leadingID("categories linked", args)
	if err != nil {
		return err
	}
	categories, err := c.svc.Links.ListLinkedCategories(ctx, documentID)
	if err != nil {
		return err
	}
	return c.render(categories)
}

func (c *CLI) categoryInput(name string, args []string) (domain.NewCategory, error) {
	fs := newFlags(name)
	sector := fs.Int("sector", 0, "sector id")
	label := fs.String("name", "", "category name")
	description := fs.String("description", "", "description")
	public := fs.Bool("public", false, "visible to every sector")
	color := fs.String("color", "#607D8B", "hex color")
	if err := parseFlags(fs, args); err != nil {
		return domain.NewCategory{}, err
	}
	if strings.TrimSpace(*label) == "" {
		return domain.NewCategory{}, &domain.ValidationError{Field: "category", Message: "Informe o nome da categoria."}
	}
	return domain.NewCategory{
		SectorID:    *sector,
		Name:        strings.TrimSpace(*label),
		Description: *description,
		IsPublic:    *public,
		Color:       *color,
	}, nil
}

func (c *CLI) categoriesCreate(ctx context.Context, args []string) error {
	in, err := c.categoryInput("categories create", args)
	if err != nil {
		return err
	}
	if in.SectorID <= 0 {
		return &domain.ValidationError{Field: "sector_id", Message: "Selecione o setor da categoria."}
	}
	category, err := c.svc.Catalog.CreateCategory(ctx, in)
	if err != nil {
		return err
	}
	return c.render(category)
}

func (c *CLI) categoriesUpdate(ctx context.Context, args []string) error {
	id, rest, err := leadingID("categories update", args)
	if err != nil {
		return err
	}
	in, err := c.categoryInput("categories update", rest)
	if err != nil {
		return err
	}
	category, err := c.svc.Catalog.UpdateCategory(ctx, id, in)
	if err != nil {
		return err
	}
	return c.render(category)
}

func (c *CLI) categoriesDelete(ctx context.Context, args []string) error {
	id, _, err := leadingID("categories delete", args)
	if err != nil {
		return err
	}
	if err := c.svc.Catalog.DeleteCategory(ctx, id); err != nil {
		return err
	}
	return c.render(fmt.Sprintf("Categoria %d excluída.", id))
}

func (c *CLI) enterprisesList(ctx context.Context, _ []string) error {
	enterprises, err := c.svc.Enterprises.ListEnterprises(ctx)
	if err != nil {
		return err
	}
	return c.render(enterprises)
}

func (c *CLI) enterprisesGet(ctx context.Context, args []string) error {
	id, _, err := leadingID("enterprises get", args)
	if err != nil {
		return err
	}
	enterprise, err := c.svc.Enterprises.GetEnterprise(ctx, id)
	if err != nil {
		return err
	}
	return c.render(enterprise)
}

func enterpriseInput(name string, args []string) (domain.EnterpriseInput, error) {
	fs := newFlags(name)
	label := fs.String("name", "", "enterprise name")
	cnpj := fs.String("cnpj", "", "CNPJ")
	image := fs.String("image", "", "logo url")
	if err := parseFlags(fs, args); err != nil {
		return domain.EnterpriseInput{}, err
	}
	if strings.TrimSpace(*label) == "" {
		return domain.EnterpriseInput{}, &domain.ValidationError{Field: "name", Message: "Informe o nome da empresa."}
	}
	return domain.EnterpriseInput{Name: strings.TrimSpace(*label), CNPJ: *cnpj, ImageURL: *image}, nil
}

func (c *CLI) enterprisesCreate(ctx context.Context, args []string) error {
	in, err := enterpriseInput("enterprises create", args)
	if err != nil {
		return err
	}
	enterprise, err := c.svc.Enterprises.CreateEnterprise(ctx, in)
	if err != nil {
		return err
	}
	return c.render(enterprise)
}

func (c *CLI) enterprisesUpdate(ctx context.Context, args []string) error {
	id, rest, err := leadingID("enterprises update", args)
	if err != nil {
		return err
	}
	in, err := enterpriseInput("enterprises update", rest)
	if err != nil {
		return err
	}
	enterprise, err := c.svc.Enterprises.UpdateEnterprise(ctx, id, in)
	if err != nil {
		return err
	}
	return c.render(enterprise)
}

func (c *CLI) enterprisesToggle(ctx context.Context, args []string) error {
	id, _, err := leadingID("enterprises toggle", args)
	if err != nil {
		return err
	}
	enterprise, err := c.svc.Enterprises.ToggleEnterpriseActive(ctx, id)
	if err != nil {
		return err
	}
	return c.render(enterprise)
}

func (c *CLI) enterprisesDelete(ctx context.Context, args []string) error {
	id, _, err := leadingID("enterprises delete", args)
	if err != nil {
		return err
	}
	if err := c.svc.Enterprises.DeleteEnterprise(ctx, id); err != nil {
		return err
	}
	return c.render(fmt.Sprintf("Empresa %d excluída.", id))
}

func (c *CLI) sectorsList(ctx context.Context, args []string) error {
	enterpriseID, _, err := leadingID("sectors list", args)
	if err != nil {
		return err
	}
	sectors, err := c.svc.Sectors.ListSectors(ctx, enterpriseID)
	if err != nil {
		return err
	}
	return c.render(sectors)
}

func (c *CLI) sectorsGet(ctx context.Context, args []string) error {
	id, _, err := leadingID("sectors get", args)
	if err != nil {
		return err
	}
	sector, err := c.svc.Sectors.GetSector(ctx, id)
	if err != nil {
		return err
	}
	return c.render(sector)
}

func sectorInput(name string, args []string) (domain.SectorInput, error) {
	fs := newFlags(name)
	enterprise := fs.Int("enterprise", 0, "enterprise id")
	label := fs.String("name", "", "sector name")
	image := fs.String("image", "", "image url")
	if err := parseFlags(fs, args); err != nil {
		return domain.SectorInput{}, err
	}
	if strings.TrimSpace(*label) == "" {
		return domain.SectorInput{}, &domain.ValidationError{Field: "name", Message: "Informe o nome do setor."}
	}
	return domain.SectorInput{EnterpriseID: *enterprise, Name: strings.TrimSpace(*label), ImageURL: *image}, nil
}

func (c *CLI) sectorsCreate(ctx context.Context, args []string) error {
	in, err := sectorInput("sectors create", args)
	if err != nil {
		return err
	}
	if in.EnterpriseID <= 0 {
		return &domain.ValidationError{Field: "enterprise_id", Message: "Selecione a empresa do setor."}
	}
	sector, err := c.svc.Sectors.CreateSector(ctx, in)
	if err != nil {
		return err
	}
	return c.render(sector)
}

func (c *CLI) sectorsUpdate(ctx context.Context, args []string) error {
	id, rest, err := leadingID("sectors update", args)
	if err != nil {
		return err
	}
	in, err := sectorInput("sectors update", rest)
	if err != nil {
		return err
	}
	sector, err := c.svc.Sectors.UpdateSector(ctx, id, in)
	if err != nil {
		return err
	}
	return c.render(sector)
}

func (c *CLI) sectorsDelete(ctx context.Context, args []string) error {
	id, _, err := leadingID("sectors delete", args)
	if err != nil {
		return err
	}
	if err := c.svc.Sectors.DeleteSector(ctx, id); err != nil {
		return err
	}
	return c.render(fmt.Sprintf("Setor %d excluído.", id))
}

func (c *CLI) sectorsUsers(ctx context.Context, args []string) error {
	id, _, err := leadingID("sectors users", args)
	if err != nil {
		return err
	}
	users, err := c.svc.Sectors.ListSectorUsers(ctx, id)
	if err != nil {
		return err
	}
	return c.render(users)
}

func (c *CLI) sectorsAddUser(ctx context.Context, args []string) error {
	id, rest, err := leadingID("sectors add-user", args)
	if err != nil {
		return err
	}
	if len(rest) != 1 || !strings.Contains(rest[0], "@") {
		return &domain.ValidationError{Field: "email", Message: "Informe o email do usuário."}
	}
	if err := c.svc.Sectors.AddSectorUser(ctx, id, strings.TrimSpace(rest[0])); err != nil {
		return err
	}
	return c.render(fmt.Sprintf("Usuário %s adicionado ao setor %d.", rest[0], id))
}

func (c *CLI) sectorsRemoveUser(ctx context.Context, args []string) error {
	id, rest, err := leadingID("sectors remove-user", args)
	if err != nil {
		return err
	}
	userID, _, err := leadingID("sectors remove-user", rest)
	if err != nil {
		return err
	}
	if err := c.svc.Sectors.RemoveSectorUser(ctx, id, userID); err != nil {
		return err
	}
	return c.render(fmt.Sprintf("Usuário %d removido do setor %d.", userID, id))
}

func (c *CLI) usersMe(ctx context.Context, _ []string) error {
	user, err := c.svc.Users.CurrentUser(ctx)
	if err != nil {
		return err
	}
	return c.render(user)
}

func (c *CLI) usersList(ctx context.Context, args []string) error {
	fs := newFlags("users list")
	sector := fs.Int("sector", 0, "only members of this sector")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	users, err := c.svc.Users.ListUsers(ctx, *sector)
	if err != nil {
		return err
	}
	return c.render(users)
}

func (c *CLI) dashboardShow(ctx context.Context, _ []string) error {
	summary, err := c.svc.Dashboard.Dashboard(ctx)
	if err != nil {
		return err
	}
	return c.render(summary)
}
