package handlers

import (
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

var exportHeaders = []string{
	"ID", "Name", "Price", "Offer", "OfferPrice", "OfferStart", "OfferEnd", "OnOffer",
	"Category", "Size", "AgeCategory", "Tags", "Active", "BestSeller", "Images", "CreatedAt",
}

// ExportProducts downloads the full catalog as an xlsx workbook.
func ExportProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/admin/export"
		defer handlePanic(c, route)

		ctx, cancel := requestContext(c)
		defer cancel()

		products, _, err := findProducts(ctx, db, bson.M{}, options.Find().SetSort(productSort("-createdAt")))
		if err != nil {
			respondInternal(c, route, "Failed to fetch products", err)
			return
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := writeProductWorkbook(c.Writer, products); err != nil {
			respondInternal(c, route, "Failed to write Excel file", err)
			return
		}
	}
}

func writeProductWorkbook(w io.Writer, products []models.Product) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return err
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()

		row.AddCell().SetValue(p.ID.Hex())
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Price)
		row.AddCell().SetValue(optionalFloat(p.Offer))
		row.AddCell().SetValue(optionalFloat(p.OfferPrice))
		row.AddCell().SetValue(optionalDate(p.OfferStartDate))
		row.AddCell().SetValue(optionalDate(p.OfferEndDate))
		row.AddCell().SetValue(p.OnOffer)
		row.AddCell().SetValue(strings.Join(p.Category, ","))
		row.AddCell().SetValue(strings.Join(p.Size, ","))
		row.AddCell().SetValue(strings.Join(p.AgeCategory, ","))
		row.AddCell().SetValue(strings.Join(p.Tags, ","))
		row.AddCell().SetValue(p.IsActive)
		row.AddCell().SetValue(p.BestSeller)
		row.AddCell().SetValue(strings.Join(p.Images, "\n"))
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return file.Write(w)
}

func optionalFloat(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func optionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
