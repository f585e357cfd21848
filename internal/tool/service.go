package tool

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/toolvault/toolvault/internal/brand"
	"github.com/toolvault/toolvault/internal/claim"
	"github.com/toolvault/toolvault/internal/receipt"
	"github.com/toolvault/toolvault/internal/recognition"
	"github.com/toolvault/toolvault/internal/warranty"
)

// IDGenerator generates unique IDs for tools
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// defaultIDGenerator combines a millisecond timestamp with a short random
// base36 suffix
type defaultIDGenerator struct{}

func (g *defaultIDGenerator) Generate() string {
	suffix := strconv.FormatUint(rand.Uint64()%(36*36*36*36*36), 36)
	for len(suffix) < 5 {
		suffix = "0" + suffix
	}
	return fmt.Sprintf("tool-%d-%s", time.Now().UnixMilli(), suffix)
}

// defaultTimeSource provides the current time
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// MatchingSteps are the staged progress labels shown while a tool match is
// presented. Cosmetic only: the match itself is computed immediately.
var MatchingSteps = []string{
	"Reading serial number",
	"Extracting receipt data",
	"Matching warranty information",
	"Verifying match",
}

// Service handles tool registration, lookup and claim operations
type Service struct {
	db          DB
	recognizer  recognition.Recognizer
	storage     Storage
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, recognizer recognition.Recognizer, storage Storage) *Service {
	return &Service{
		db:          db,
		recognizer:  recognizer,
		storage:     storage,
		idGenerator: &defaultIDGenerator{},
		timeSource:  &defaultTimeSource{},
	}
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, recognizer recognition.Recognizer, storage Storage, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		recognizer:  recognizer,
		storage:     storage,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

// ScanReceipt runs the recognition provider over a receipt image and parses
// the recognized text into structured fields. An empty recognition result is
// not an error: the caller receives an empty parse and the user completes
// the form manually.
func (s *Service) ScanReceipt(imageData []byte, contentType string) (receipt.Parsed, error) {
	text, err := s.recognizer.RecognizeText(imageData, contentType)
	if err != nil {
		slog.Error("Failed to recognize receipt text",
			"content_type", contentType,
			"image_size", len(imageData),
			"error", err,
		)
		return receipt.Parsed{}, fmt.Errorf("recognizing receipt text: %w", err)
	}

	return receipt.Parse(text), nil
}

// CreateToolParams carries the confirmed form fields for a new tool
type CreateToolParams struct {
	SerialNumber       string
	Brand              string // empty means detect from the serial number
	Name               string
	Model              string
	Category           Category
	PurchaseDate       time.Time
	PurchaseStore      string
	PurchasePrice      int // cents
	WarrantyType       WarrantyType
	WarrantyCardNumber string
	IsRegistered       bool
	ParseConfidence    *receipt.Confidence
	ReceiptImage       []byte
	ReceiptContentType string
	Notes              string
}

// CreateTool registers a tool: resolves the brand, computes the warranty
// window, stores the receipt image if provided, and persists the record.
func (s *Service) CreateTool(params CreateToolParams) (*Tool, error) {
	id := s.idGenerator.Generate()
	now := s.timeSource.Now()

	brandID := params.Brand
	if brandID == "" {
		if m, ok := brand.MatchSerial(params.SerialNumber); ok {
			brandID = m.BrandID
		}
	}

	purchaseDate := params.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = now
	}

	warrantyType := params.WarrantyType
	if warrantyType == "" {
		warrantyType = WarrantyStandard
	}
	category := params.Category
	if category == "" {
		category = CategoryOther
	}

	calc := warranty.Calculate(brandID, string(category), purchaseDate, params.IsRegistered, now)
	for _, w := range calc.Warnings {
		slog.Info("Warranty advisory", "tool", id, "warning", w)
	}

	var savedPath string
	if len(params.ReceiptImage) > 0 {
		filename := id + "_receipt" + extensionFor(params.ReceiptContentType)
		var err error
		savedPath, err = s.storage.Save(filename, params.ReceiptImage)
		if err != nil {
			return nil, fmt.Errorf("saving receipt image: %w", err)
		}
	}

	t := &Tool{
		ID:                 id,
		Brand:              brandID,
		Name:               params.Name,
		Model:              params.Model,
		SerialNumber:       strings.ToUpper(strings.TrimSpace(params.SerialNumber)),
		Category:           category,
		PurchaseDate:       purchaseDate,
		PurchaseStore:      params.PurchaseStore,
		PurchasePrice:      params.PurchasePrice,
		ReceiptFilename:    savedPath,
		ReceiptContentType: params.ReceiptContentType,
		WarrantyType:       warrantyType,
		WarrantyCardNumber: params.WarrantyCardNumber,
		WarrantyStartDate:  purchaseDate,
		WarrantyEndDate:    calc.WarrantyEndDate,
		MatchConfidence:    deriveMatchConfidence(params.ParseConfidence),
		Notes:              params.Notes,
		CreatedAt:          now,
	}

	if err := s.db.SaveTool(t); err != nil {
		if savedPath != "" {
			s.storage.Delete(savedPath)
		}
		return nil, fmt.Errorf("saving tool to database: %w", err)
	}

	return t, nil
}

// deriveMatchConfidence turns the four OCR field confidences into a single
// score. The date drives the warranty window so it weighs heaviest.
func deriveMatchConfidence(c *receipt.Confidence) int {
	if c == nil {
		return 0
	}
	return (c.Store*25 + c.Date*30 + c.Price*25 + c.Item*20) / 100
}

// GetTool retrieves a tool by ID
func (s *Service) GetTool(id string) (*Tool, error) {
	t, err := s.db.GetTool(id)
	if err != nil {
		return nil, fmt.Errorf("getting tool: %w", err)
	}
	return t, nil
}

// ListTools returns all tools. An empty or unreadable store falls back to
// the built-in default dataset, which is persisted for subsequent lookups.
func (s *Service) ListTools() ([]*Tool, error) {
	tools, err := s.db.ListTools()
	if err != nil || len(tools) == 0 {
		if err != nil {
			slog.Warn("Falling back to default dataset", "error", err)
		}
		defaults := DefaultTools(s.timeSource.Now())
		for _, t := range defaults {
			if saveErr := s.db.SaveTool(t); saveErr != nil {
				slog.Warn("Failed to persist default tool", "tool", t.ID, "error", saveErr)
			}
		}
		return defaults, nil
	}
	return tools, nil
}

// UpdateTool replaces a tool record wholesale, preserving its identity
func (s *Service) UpdateTool(id string, updated *Tool) (*Tool, error) {
	existing, err := s.db.GetTool(id)
	if err != nil {
		return nil, fmt.Errorf("getting tool for update: %w", err)
	}

	if updated.WarrantyEndDate.Before(updated.WarrantyStartDate) {
		return nil, fmt.Errorf("warranty end date precedes start date")
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := s.db.SaveTool(updated); err != nil {
		return nil, fmt.Errorf("updating tool: %w", err)
	}
	return updated, nil
}

// DeleteTool removes a tool and its stored receipt image
func (s *Service) DeleteTool(id string) error {
	t, err := s.db.GetTool(id)
	if err != nil {
		return fmt.Errorf("getting tool for deletion: %w", err)
	}

	if t.ReceiptFilename != "" {
		if err := s.storage.Delete(t.ReceiptFilename); err != nil {
			slog.Warn("Failed to delete receipt image", "filename", t.ReceiptFilename, "error", err)
		}
	}

	if err := s.db.DeleteTool(id); err != nil {
		return fmt.Errorf("deleting tool from database: %w", err)
	}
	return nil
}

// GetReceiptImage retrieves the stored receipt image for a tool
func (s *Service) GetReceiptImage(id string) ([]byte, string, error) {
	t, err := s.db.GetTool(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting tool: %w", err)
	}
	if t.ReceiptFilename == "" {
		return nil, "", fmt.Errorf("tool has no stored receipt")
	}

	data, err := s.storage.Get(t.ReceiptFilename)
	if err != nil {
		return nil, "", fmt.Errorf("getting receipt image: %w", err)
	}

	return data, t.ReceiptContentType, nil
}

// ClaimResult packages a claim analysis with its reference and the
// warranty status it was derived from
type ClaimResult struct {
	Reference string          `json:"reference"`
	Status    warranty.Status `json:"status"`
	Analysis  claim.Analysis  `json:"analysis"`
	Steps     []string        `json:"steps"`
}

// AnalyzeClaim runs the claim verdict engine for a tool and an issue
// description
func (s *Service) AnalyzeClaim(toolID, issueText string) (*ClaimResult, error) {
	t, err := s.db.GetTool(toolID)
	if err != nil {
		return nil, fmt.Errorf("getting tool: %w", err)
	}

	now := s.timeSource.Now()
	status := t.Status(now)

	brandName := ""
	if b, ok := brand.Get(t.Brand); ok {
		brandName = b.Name
	}
	policy, _ := warranty.PolicyFor(t.Brand)

	analysis := claim.BuildAnalysis(brandName, policy, status, issueText)

	return &ClaimResult{
		Reference: claim.NewReference(now),
		Status:    status,
		Analysis:  analysis,
		Steps:     claim.AnalysisSteps,
	}, nil
}

// PreviewWarranty computes the warranty window for a prospective
// registration without persisting anything
func (s *Service) PreviewWarranty(brandID string, category Category, purchaseDate time.Time, isRegistered bool) warranty.Calculation {
	return warranty.Calculate(brandID, string(category), purchaseDate, isRegistered, s.timeSource.Now())
}
