package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
)

const maxMultipartMemory = 32 << 20

// productForm is the multipart body of a product create or update. The Set
// flags tell an update which fields the admin actually sent.
type productForm struct {
	Name              string
	NameSet           bool
	Description       string
	DescriptionSet    bool
	Price             float64
	PriceSet          bool
	Offer             *float64
	OfferSet          bool
	OfferStartDate    *time.Time
	OfferStartDateSet bool
	OfferEndDate      *time.Time
	OfferEndDateSet   bool
	Size              models.StringList
	SizeSet           bool
	Category          models.StringList
	CategorySet       bool
	AgeCategory       models.StringList
	AgeCategorySet    bool
	Tags              models.StringList
	TagsSet           bool
	IsActive          bool
	IsActiveSet       bool
	BestSeller        bool
	BestSellerSet     bool
	ExistingImages    []string
	ExistingImagesSet bool
	Images            []*multipart.FileHeader
}

func parseProductForm(c *gin.Context) (productForm, error) {
	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		log.Println("[PRODUCT] multipart parse error:", err)
		return productForm{}, fmt.Errorf("multipart/form-data body required")
	}

	form := productForm{}

	if value, ok := lastPostForm(c, "name"); ok {
		form.Name = strings.TrimSpace(value)
		form.NameSet = true
	}

	if value, ok := lastPostForm(c, "description"); ok {
		form.Description = strings.TrimSpace(value)
		form.DescriptionSet = true
	}

	if value, ok := lastPostForm(c, "price"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return productForm{}, fmt.Errorf("price must be a number")
		}
		form.Price = parsed
		form.PriceSet = true
	}

	if value, ok := lastPostForm(c, "offer"); ok {
		form.OfferSet = true
		if value = strings.TrimSpace(value); value != "" && value != "null" {
			parsed, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return productForm{}, fmt.Errorf("offer must be a number")
			}
			if parsed != 0 {
				form.Offer = &parsed
			}
		}
	}

	if value, ok := lastPostForm(c, "offerStartDate"); ok {
		parsed, err := parseFormDate(value, false)
		if err != nil {
			return productForm{}, fmt.Errorf("invalid offerStartDate: %s", value)
		}
		form.OfferStartDate = parsed
		form.OfferStartDateSet = true
	}

	if value, ok := lastPostForm(c, "offerEndDate"); ok {
		parsed, err := parseFormDate(value, true)
		if err != nil {
			return productForm{}, fmt.Errorf("invalid offerEndDate: %s", value)
		}
		form.OfferEndDate = parsed
		form.OfferEndDateSet = true
	}

	if values, ok := c.GetPostFormArray("size"); ok {
		form.Size = models.ParseStringList(values...)
		form.SizeSet = true
	}

	if values, ok := c.GetPostFormArray("category"); ok {
		form.Category = models.ParseStringList(values...)
		form.CategorySet = true
	}

	if values, ok := c.GetPostFormArray("ageCategory"); ok {
		form.AgeCategory = models.ParseStringList(values...)
		form.AgeCategorySet = true
	}

	if values, ok := c.GetPostFormArray("tags"); ok {
		form.Tags = models.ParseStringList(values...)
		form.TagsSet = true
	}

	if value, ok := lastPostForm(c, "isActive"); ok {
		parsed, err := parseBoolValue(value)
		if err != nil {
			return productForm{}, fmt.Errorf("isActive must be boolean")
		}
		form.IsActive = parsed
		form.IsActiveSet = true
	}

	if value, ok := lastPostForm(c, "bestSeller"); ok {
		parsed, err := parseBoolValue(value)
		if err != nil {
			return productForm{}, fmt.Errorf("bestSeller must be boolean")
		}
		form.BestSeller = parsed
		form.BestSellerSet = true
	}

	if value, ok := lastPostForm(c, "existingImages"); ok {
		form.ExistingImagesSet = true
		if value = strings.TrimSpace(value); value != "" {
			if err := json.Unmarshal([]byte(value), &form.ExistingImages); err != nil {
				return productForm{}, fmt.Errorf("existingImages must be a JSON array of URLs")
			}
		}
	}

	if c.Request.MultipartForm != nil {
		form.Images = c.Request.MultipartForm.File["images"]
	}

	return form, nil
}

// lastPostForm returns the last value sent for key so a repeated field
// behaves like an overwrite.
func lastPostForm(c *gin.Context, key string) (string, bool) {
	values, ok := c.GetPostFormArray(key)
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[len(values)-1], true
}

var formDateLayouts = []string{time.RFC3339, "2006-01-02"}

// parseFormDate accepts RFC 3339 timestamps and plain dates. A plain
// end date covers the whole day. Empty clears the date.
func parseFormDate(value string, endOfDay bool) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "null" {
		return nil, nil
	}
	for _, layout := range formDateLayouts {
		parsed, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		if layout == "2006-01-02" && endOfDay {
			parsed = parsed.Add(24*time.Hour - time.Millisecond)
		}
		return &parsed, nil
	}
	return nil, fmt.Errorf("unsupported date %q", value)
}

func parseBoolValue(value string) (bool, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "on" {
		return true, nil
	}
	return strconv.ParseBool(value)
}
