package tool

import (
	"time"

	"github.com/toolvault/toolvault/internal/warranty"
)

// Category of a registered tool
type Category string

const (
	CategoryDrill    Category = "drill"
	CategorySaw      Category = "saw"
	CategoryGrinder  Category = "grinder"
	CategoryDriver   Category = "driver"
	CategoryChainsaw Category = "chainsaw"
	CategoryHandTool Category = "hand_tool"
	CategoryBattery  Category = "battery"
	CategoryOther    Category = "other"
)

// WarrantyType distinguishes how the warranty was obtained
type WarrantyType string

const (
	WarrantyStandard WarrantyType = "standard"
	WarrantyExtended WarrantyType = "extended"
	WarrantyDealer   WarrantyType = "dealer"
)

// Tool is a registered tool with its purchase and warranty details
type Tool struct {
	ID                 string       `json:"id"`
	Brand              string       `json:"brand"`
	Name               string       `json:"name"`
	Model              string       `json:"model"`
	SerialNumber       string       `json:"serial_number"`
	Category           Category     `json:"category"`
	PurchaseDate       time.Time    `json:"purchase_date"`
	PurchaseStore      string       `json:"purchase_store"`
	PurchasePrice      int          `json:"purchase_price"` // Price in cents
	ReceiptFilename    string       `json:"receipt_filename,omitempty"`
	ReceiptContentType string       `json:"receipt_content_type,omitempty"`
	WarrantyType       WarrantyType `json:"warranty_type"`
	WarrantyCardNumber string       `json:"warranty_card_number,omitempty"`
	WarrantyStartDate  time.Time    `json:"warranty_start_date"`
	WarrantyEndDate    time.Time    `json:"warranty_end_date"`
	MatchConfidence    int          `json:"match_confidence"`
	Notes              string       `json:"notes,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
}

// Status derives the warranty status for this tool at the given time
func (t *Tool) Status(now time.Time) warranty.Status {
	return warranty.StatusOf(t.WarrantyEndDate, now)
}

// DefaultTools is the built-in dataset used when the store is empty or
// unreadable. Dates are anchored to now so the seeded warranties show a mix
// of active and expiring statuses.
func DefaultTools(now time.Time) []*Tool {
	milwaukeePurchase := now.AddDate(-1, -2, 0)
	makitaPurchase := now.AddDate(0, -11, 0)
	stihlPurchase := now.AddDate(-1, -11, -10)

	return []*Tool{
		{
			ID:                "tool-seed-milwaukee",
			Brand:             "milwaukee",
			Name:              "M18 FUEL Hammer Drill",
			Model:             "M18FPD2-502C",
			SerialNumber:      "M18FPD2G412204187",
			Category:          CategoryDrill,
			PurchaseDate:      milwaukeePurchase,
			PurchaseStore:     "Total Tools Brendale",
			PurchasePrice:     54900,
			WarrantyType:      WarrantyStandard,
			WarrantyStartDate: milwaukeePurchase,
			WarrantyEndDate:   milwaukeePurchase.AddDate(5, 0, 0),
			MatchConfidence:   80,
			CreatedAt:         milwaukeePurchase,
		},
		{
			ID:                 "tool-seed-makita",
			Brand:              "makita",
			Name:               "18V LXT Circular Saw",
			Model:              "DHS680Z",
			SerialNumber:       "DHS680Z118837",
			Category:           CategorySaw,
			PurchaseDate:       makitaPurchase,
			PurchaseStore:      "Sydney Tools Geebung",
			PurchasePrice:      32900,
			WarrantyType:       WarrantyStandard,
			WarrantyCardNumber: "MA-2025-482913",
			WarrantyStartDate:  makitaPurchase,
			WarrantyEndDate:    makitaPurchase.AddDate(3, 0, 0),
			MatchConfidence:    74,
			CreatedAt:          makitaPurchase,
		},
		{
			ID:                "tool-seed-stihl",
			Brand:             "stihl",
			Name:              "MS 181 Chainsaw",
			Model:             "MS 181",
			SerialNumber:      "MS181C512873390",
			Category:          CategoryChainsaw,
			PurchaseDate:      stihlPurchase,
			PurchaseStore:     "Bunnings Stafford",
			PurchasePrice:     44500,
			WarrantyType:      WarrantyDealer,
			WarrantyStartDate: stihlPurchase,
			WarrantyEndDate:   stihlPurchase.AddDate(2, 0, 0),
			MatchConfidence:   68,
			CreatedAt:         stihlPurchase,
		},
	}
}
