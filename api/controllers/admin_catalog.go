package controllers

import (
	"net/http"

	"github.com/davidmarquez/tastebite-backend/api/responses"
	"github.com/davidmarquez/tastebite-backend/api/validators"
	"github.com/davidmarquez/tastebite-backend/internal/catalog"
	"github.com/davidmarquez/tastebite-backend/pkg/logger"
	"github.com/google/uuid"
)

type sizeRequest struct {
	Name               string `json:"name" validate:"required"`
	PriceModifierCents int    `json:"price_modifier_cents"`
}

type ingredientLinkRequest struct {
	IngredientID    uuid.UUID `json:"ingredient_id" validate:"required"`
	IsDefault       bool      `json:"is_default"`
	IsRemovable     bool      `json:"is_removable"`
	IsRequired      bool      `json:"is_required"`
	MaxQuantity     int       `json:"max_quantity" validate:"min=1"`
	ExtraPriceCents int       `json:"extra_price_cents" validate:"min=0"`
}

type createProductRequest struct {
	Name           string                  `json:"name" validate:"required"`
	Description    *string                 `json:"description,omitempty"`
	BasePriceCents int                     `json:"base_price_cents" validate:"required,min=1"`
	IsCombo        bool                    `json:"is_combo"`
	IsAvailable    bool                    `json:"is_available"`
	ImagePath      *string                 `json:"image_path,omitempty"`
	Sizes          []sizeRequest           `json:"sizes,omitempty" validate:"dive"`
	Ingredients    []ingredientLinkRequest `json:"ingredients,omitempty" validate:"dive"`
}

type updateProductRequest struct {
	Name           *string                  `json:"name,omitempty"`
	Description    *string                  `json:"description,omitempty"`
	BasePriceCents *int                     `json:"base_price_cents,omitempty"`
	IsCombo        *bool                    `json:"is_combo,omitempty"`
	IsAvailable    *bool                    `json:"is_available,omitempty"`
	ImagePath      *string                  `json:"image_path,omitempty"`
	Sizes          *[]sizeRequest           `json:"sizes,omitempty" validate:"omitempty,dive"`
	Ingredients    *[]ingredientLinkRequest `json:"ingredients,omitempty" validate:"omitempty,dive"`
}

type addOnRequest struct {
	Name            string `json:"name" validate:"required"`
	ExtraPriceCents int    `json:"extra_price_cents" validate:"min=0"`
	IsAvailable     bool   `json:"is_available"`
}

type updateAddOnRequest struct {
	Name            *string `json:"name,omitempty"`
	ExtraPriceCents *int    `json:"extra_price_cents,omitempty"`
	IsAvailable     *bool   `json:"is_available,omitempty"`
}

type createIngredientRequest struct {
	Name string `json:"name" validate:"required"`
}

func AdminProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.ListProducts(r.Context(), true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toProductResponses(products))
	}
}

func AdminProductCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), catalog.CreateProductInput{
			Name:           req.Name,
			Description:    req.Description,
			BasePriceCents: req.BasePriceCents,
			IsCombo:        req.IsCombo,
			IsAvailable:    req.IsAvailable,
			ImagePath:      req.ImagePath,
			Sizes:          toSizeInputs(req.Sizes),
			Ingredients:    toIngredientLinkInputs(req.Ingredients),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toProductResponse(product))
	}
}

func AdminProductUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateProductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.UpdateProductInput{
			Name:           req.Name,
			Description:    req.Description,
			BasePriceCents: req.BasePriceCents,
			IsCombo:        req.IsCombo,
			IsAvailable:    req.IsAvailable,
			ImagePath:      req.ImagePath,
		}
		if req.Sizes != nil {
			sizes := toSizeInputs(*req.Sizes)
			input.Sizes = &sizes
		}
		if req.Ingredients != nil {
			links := toIngredientLinkInputs(*req.Ingredients)
			input.Ingredients = &links
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toProductResponse(product))
	}
}

func AdminProductDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func AdminSideList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sides, err := svc.ListSides(r.Context(), true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toSideResponses(sides))
	}
}

func AdminSideCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addOnRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		side, err := svc.CreateSide(r.Context(), catalog.SideInput{
			Name:            req.Name,
			ExtraPriceCents: req.ExtraPriceCents,
			IsAvailable:     req.IsAvailable,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, addOnResponse{ID: side.ID, Name: side.Name, ExtraPriceCents: side.ExtraPriceCents, IsAvailable: side.IsAvailable})
	}
}

func AdminSideUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "sideId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateAddOnRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		side, err := svc.UpdateSide(r.Context(), id, catalog.UpdateSideInput{
			Name:            req.Name,
			ExtraPriceCents: req.ExtraPriceCents,
			IsAvailable:     req.IsAvailable,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, addOnResponse{ID: side.ID, Name: side.Name, ExtraPriceCents: side.ExtraPriceCents, IsAvailable: side.IsAvailable})
	}
}

func AdminSideDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "sideId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteSide(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func AdminDrinkList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		drinks, err := svc.ListDrinks(r.Context(), true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toDrinkResponses(drinks))
	}
}

func AdminDrinkCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addOnRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		drink, err := svc.CreateDrink(r.Context(), catalog.DrinkInput{
			Name:            req.Name,
			ExtraPriceCents: req.ExtraPriceCents,
			IsAvailable:     req.IsAvailable,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, addOnResponse{ID: drink.ID, Name: drink.Name, ExtraPriceCents: drink.ExtraPriceCents, IsAvailable: drink.IsAvailable})
	}
}

func AdminDrinkUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "drinkId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateAddOnRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		drink, err := svc.UpdateDrink(r.Context(), id, catalog.UpdateDrinkInput{
			Name:            req.Name,
			ExtraPriceCents: req.ExtraPriceCents,
			IsAvailable:     req.IsAvailable,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, addOnResponse{ID: drink.ID, Name: drink.Name, ExtraPriceCents: drink.ExtraPriceCents, IsAvailable: drink.IsAvailable})
	}
}

func AdminDrinkDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseUUIDParam(r, "drinkId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteDrink(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func AdminIngredientList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ingredients, err := svc.ListIngredients(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toIngredientResponses(ingredients))
	}
}

func AdminIngredientCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createIngredientRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ingredient, err := svc.CreateIngredient(r.Context(), req.Name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, ingredientResponse{ID: ingredient.ID, Name: ingredient.Name})
	}
}

func toSizeInputs(sizes []sizeRequest) []catalog.SizeInput {
	out := make([]catalog.SizeInput, 0, len(sizes))
	for _, size := range sizes {
		out = append(out, catalog.SizeInput{Name: size.Name, PriceModifierCents: size.PriceModifierCents})
	}
	return out
}

func toIngredientLinkInputs(links []ingredientLinkRequest) []catalog.IngredientLinkInput {
	out := make([]catalog.IngredientLinkInput, 0, len(links))
	for _, link := range links {
		out = append(out, catalog.IngredientLinkInput{
			IngredientID:    link.IngredientID,
			IsDefault:       link.IsDefault,
			IsRemovable:     link.IsRemovable,
			IsRequired:      link.IsRequired,
			MaxQuantity:     link.MaxQuantity,
			ExtraPriceCents: link.ExtraPriceCents,
		})
	}
	return out
}
