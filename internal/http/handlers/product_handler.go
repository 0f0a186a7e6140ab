package handlers

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	"shopfront/internal/catalogapi"
	"shopfront/internal/domain"
	"shopfront/internal/draft"
	applog "shopfront/internal/log"
	"shopfront/internal/services"
)

type ProductHandler struct {
	Catalog  *services.CatalogService
	Sessions *Sessions
	PageSize int
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	sid := h.Sessions.ensureSID(c)
	mode := h.Sessions.viewMode(c, sid).Resolve()

	data := fiber.Map{"Mode": string(mode), "Products": []domain.Product{}}
	products, err := h.Catalog.ListProducts(h.PageSize)
	if err != nil {
		applog.Error(c, "products.list.fail", err, nil)
		data["Err"] = bannerMessage(err, catalogapi.MsgListFailed)
	} else {
		data["Products"] = products
	}
	return render(c, "products", data)
}

func (h *ProductHandler) NewForm(c *fiber.Ctx) error {
	return h.form(c, draft.Draft{}, nil, "")
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var d draft.Draft
	if err := c.BodyParser(&d); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"form": "product"})
		return c.Status(fiber.StatusBadRequest).Render("notfound", fiber.Map{"Message": "Invalid form submission."})
	}

	res := draft.Validate(d)
	v, ok := res.Validated()
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"fields": fieldNames(res.Errors)})
		c.Status(fiber.StatusUnprocessableEntity)
		return h.form(c, d, res.Errors, "")
	}

	created, err := h.Catalog.CreateProduct(draft.BuildRequest(v))
	if err != nil {
		applog.Error(c, "product.create.fail", err, nil)
		c.Status(fiber.StatusBadGateway)
		return h.form(c, d, nil, bannerMessage(err, catalogapi.MsgCreateFailed))
	}
	applog.Audit(c, "product.create", map[string]any{"id": created.ID, "brand": string(created.Brand)})
	c.Set("Refresh", "1;url=/products")
	return render(c, "product_created", fiber.Map{"P": created, "Redirect": true})
}

// FinalPrice feeds the live price box while the form is being filled in.
func (h *ProductHandler) FinalPrice(c *fiber.Ctx) error {
	return c.JSON(draft.Summarize(c.Query("price"), c.Query("discount")))
}

func (h *ProductHandler) form(c *fiber.Ctx, d draft.Draft, errs draft.FieldErrors, banner string) error {
	data := fiber.Map{
		"Form":     d,
		"Errors":   errs,
		"Brands":   domain.Brands(),
		"Summary":  draft.Summarize(d.Price, d.DiscountPercentage),
		"MaxTitle": draft.MaxTitleLen,
	}
	if banner != "" {
		data["Err"] = banner
	}
	return render(c, "product_new", data)
}

func fieldNames(errs draft.FieldErrors) []string {
	names := make([]string, 0, len(errs))
	for k := range errs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
