package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"storefront/internal/media"
	"storefront/internal/models"
	"storefront/internal/pricing"
)

// newProductFromForm validates a create request and returns the product
// without images.
func newProductFromForm(form productForm, now time.Time) (models.Product, error) {
	missing := make([]string, 0)
	if form.Name == "" {
		missing = append(missing, "name")
	}
	if !form.PriceSet || form.Price <= 0 {
		missing = append(missing, "price")
	}
	if len(form.Size) == 0 {
		missing = append(missing, "size")
	}
	if len(form.Category) == 0 {
		missing = append(missing, "category")
	}
	if len(form.AgeCategory) == 0 {
		missing = append(missing, "ageCategory")
	}
	if len(missing) > 0 {
		return models.Product{}, fmt.Errorf("Missing required fields: %s", strings.Join(missing, ", "))
	}

	p := models.Product{
		Name:           form.Name,
		Description:    form.Description,
		Price:          form.Price,
		Offer:          form.Offer,
		OfferStartDate: form.OfferStartDate,
		OfferEndDate:   form.OfferEndDate,
		Category:       form.Category,
		Size:           form.Size,
		AgeCategory:    form.AgeCategory,
		Tags:           form.Tags,
		IsActive:       true,
		BestSeller:     form.BestSeller,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if form.IsActiveSet {
		p.IsActive = form.IsActive
	}

	if err := finalizeProduct(&p); err != nil {
		return models.Product{}, err
	}

	switch {
	case len(form.Images) == 0:
		return models.Product{}, errors.New("Please upload at least one image.")
	case len(form.Images) > media.MaxImages:
		return models.Product{}, media.ErrTooManyImages
	}
	return p, nil
}

// applyProductForm merges the fields present in form into p and returns the
// image plan. New uploads are not part of p yet.
func applyProductForm(p models.Product, form productForm, now time.Time) (models.Product, media.Plan, error) {
	if form.NameSet {
		if form.Name == "" {
			return p, media.Plan{}, errors.New("name cannot be empty")
		}
		p.Name = form.Name
	}
	if form.DescriptionSet {
		p.Description = form.Description
	}
	if form.PriceSet {
		if form.Price <= 0 {
			return p, media.Plan{}, errors.New("price must be greater than 0")
		}
		p.Price = form.Price
	}
	for _, field := range []struct {
		name   string
		set    bool
		values models.StringList
		target *models.StringList
	}{
		{"size", form.SizeSet, form.Size, &p.Size},
		{"category", form.CategorySet, form.Category, &p.Category},
		{"ageCategory", form.AgeCategorySet, form.AgeCategory, &p.AgeCategory},
	} {
		if !field.set {
			continue
		}
		if len(field.values) == 0 {
			return p, media.Plan{}, fmt.Errorf("%s cannot be empty", field.name)
		}
		*field.target = field.values
	}
	if form.TagsSet {
		p.Tags = form.Tags
	}
	if form.IsActiveSet {
		p.IsActive = form.IsActive
	}
	if form.BestSellerSet {
		p.BestSeller = form.BestSeller
	}
	if form.OfferSet {
		p.Offer = form.Offer
	}
	if form.OfferStartDateSet {
		p.OfferStartDate = form.OfferStartDate
	}
	if form.OfferEndDateSet {
		p.OfferEndDate = form.OfferEndDate
	}

	if err := finalizeProduct(&p); err != nil {
		return p, media.Plan{}, err
	}

	keep := p.Images
	if form.ExistingImagesSet {
		keep = form.ExistingImages
	}
	plan := media.PlanUpdate(p.Images, p.ImagePublicIDs, keep)

	total := len(plan.KeptURLs) + len(form.Images)
	switch {
	case total == 0:
		return p, media.Plan{}, errors.New("A product needs at least one image")
	case total > media.MaxImages:
		return p, media.Plan{}, media.ErrTooManyImages
	}

	p.Images = plan.KeptURLs
	p.ImagePublicIDs = plan.KeptPublicIDs
	p.UpdatedAt = now
	return p, plan, nil
}

// finalizeProduct checks enum fields and the offer, then derives
// offerPrice. Without an offer the window is dropped.
func finalizeProduct(p *models.Product) error {
	if err := models.CheckEnum("size", p.Size, models.Sizes); err != nil {
		return err
	}
	if err := models.CheckEnum("category", p.Category, models.Categories); err != nil {
		return err
	}
	if err := models.CheckEnum("ageCategory", p.AgeCategory, models.AgeCategories); err != nil {
		return err
	}
	if err := pricing.ValidateOffer(p.Offer, p.OfferStartDate, p.OfferEndDate); err != nil {
		return err
	}

	if p.Offer == nil || *p.Offer == 0 {
		p.Offer = nil
		p.OfferStartDate = nil
		p.OfferEndDate = nil
	}
	p.OfferPrice = pricing.OfferPrice(p.Price, p.Offer)
	if p.Tags == nil {
		p.Tags = models.StringList{}
	}
	return nil
}

func productUpdateSet(p models.Product) bson.M {
	return bson.M{
		"name":           p.Name,
		"description":    p.Description,
		"price":          p.Price,
		"offer":          p.Offer,
		"offerPrice":     p.OfferPrice,
		"offerStartDate": p.OfferStartDate,
		"offerEndDate":   p.OfferEndDate,
		"category":       p.Category,
		"size":           p.Size,
		"ageCategory":    p.AgeCategory,
		"tags":           p.Tags,
		"images":         p.Images,
		"imagePublicIds": p.ImagePublicIDs,
		"isActive":       p.IsActive,
		"bestSeller":     p.BestSeller,
		"updatedAt":      p.UpdatedAt,
	}
}
