package tool

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/toolvault/toolvault/internal/brand"
	"github.com/toolvault/toolvault/internal/receipt"
)

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// corsError writes an error response with CORS headers set
func corsError(w http.ResponseWriter, message string, code int) {
	setCORSHeaders(w)
	http.Error(w, message, code)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	setCORSHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}

// parseFormDate accepts the AU receipt format first, then ISO
func parseFormDate(s string) time.Time {
	for _, layout := range []string{"02/01/2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// handleListTools returns all registered tools
func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	tools, err := s.service.ListTools()
	if err != nil {
		slog.Error("Error listing tools", "error", err)
		corsError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, tools)
}

type createToolRequest struct {
	SerialNumber       string              `json:"serial_number"`
	Brand              string              `json:"brand"`
	Name               string              `json:"name"`
	Model              string              `json:"model"`
	Category           string              `json:"category"`
	PurchaseDate       string              `json:"purchase_date"` // DD/MM/YYYY or YYYY-MM-DD
	PurchaseStore      string              `json:"purchase_store"`
	PurchasePrice      int                 `json:"purchase_price"` // cents
	WarrantyType       string              `json:"warranty_type"`
	WarrantyCardNumber string              `json:"warranty_card_number"`
	IsRegistered       bool                `json:"is_registered"`
	Confidence         *receipt.Confidence `json:"confidence"`
	ReceiptImage       string              `json:"receipt_image"` // base64, optional data-URL prefix
	ReceiptContentType string              `json:"receipt_content_type"`
	Notes              string              `json:"notes"`
}

// handleCreateTool registers a tool from the confirmed form fields
func (s *Server) handleCreateTool(w http.ResponseWriter, r *http.Request) {
	var req createToolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var imageData []byte
	if req.ReceiptImage != "" {
		var err error
		imageData, err = decodeBase64Image(req.ReceiptImage)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, "Invalid receipt image encoding")
			return
		}
	}

	created, err := s.service.CreateTool(CreateToolParams{
		SerialNumber:       req.SerialNumber,
		Brand:              req.Brand,
		Name:               req.Name,
		Model:              req.Model,
		Category:           Category(req.Category),
		PurchaseDate:       parseFormDate(req.PurchaseDate),
		PurchaseStore:      req.PurchaseStore,
		PurchasePrice:      req.PurchasePrice,
		WarrantyType:       WarrantyType(req.WarrantyType),
		WarrantyCardNumber: req.WarrantyCardNumber,
		IsRegistered:       req.IsRegistered,
		ParseConfidence:    req.Confidence,
		ReceiptImage:       imageData,
		ReceiptContentType: req.ReceiptContentType,
		Notes:              req.Notes,
	})
	if err != nil {
		slog.Error("Error creating tool", "error", err)
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// handleGetTool returns a single tool
func (s *Server) handleGetTool(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Tool ID required", http.StatusBadRequest)
		return
	}
	t, err := s.service.GetTool(id)
	if err != nil {
		corsError(w, "Tool not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, t)
}

// handleUpdateTool replaces a tool record
func (s *Server) handleUpdateTool(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Tool ID required", http.StatusBadRequest)
		return
	}

	var updated Tool
	if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	t, err := s.service.UpdateTool(id, &updated)
	if err != nil {
		slog.Error("Error updating tool", "id", id, "error", err)
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, t)
}

// handleDeleteTool deletes a tool
func (s *Server) handleDeleteTool(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Tool ID required", http.StatusBadRequest)
		return
	}
	if err := s.service.DeleteTool(id); err != nil {
		corsError(w, "Error deleting tool", http.StatusInternalServerError)
		return
	}

	setCORSHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleGetToolReceipt returns the stored receipt image for a tool
func (s *Server) handleGetToolReceipt(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Tool ID required", http.StatusBadRequest)
		return
	}
	data, contentType, err := s.service.GetReceiptImage(id)
	if err != nil {
		corsError(w, "Receipt not found", http.StatusNotFound)
		return
	}

	setCORSHeaders(w)
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// handleAnalyzeClaim runs the claim verdict engine for a tool
func (s *Server) handleAnalyzeClaim(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		corsError(w, "Tool ID required", http.StatusBadRequest)
		return
	}

	var req struct {
		IssueDescription string `json:"issue_description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := s.service.AnalyzeClaim(id, req.IssueDescription)
	if err != nil {
		corsError(w, "Tool not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleListBrands returns the brand catalogue
func (s *Server) handleListBrands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, brand.All())
}

type serialMatchResponse struct {
	Matched bool         `json:"matched"`
	BrandID string       `json:"brand_id,omitempty"`
	Prefix  string       `json:"prefix,omitempty"`
	Brand   *brand.Brand `json:"brand,omitempty"`
	Steps   []string     `json:"steps,omitempty"`
}

// handleMatchSerial detects the brand for a serial number. No match is a
// regular response, not an error: the client prompts for manual selection.
func (s *Server) handleMatchSerial(w http.ResponseWriter, r *http.Request) {
	serial := r.URL.Query().Get("serial")

	m, ok := brand.MatchSerial(serial)
	if !ok {
		writeJSON(w, http.StatusOK, serialMatchResponse{Matched: false})
		return
	}

	resp := serialMatchResponse{Matched: true, BrandID: m.BrandID, Prefix: m.Prefix, Steps: MatchingSteps}
	if b, found := brand.Get(m.BrandID); found {
		resp.Brand = &b
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleWarrantyPreview computes the warranty window for a prospective tool
func (s *Server) handleWarrantyPreview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Brand        string `json:"brand"`
		Category     string `json:"category"`
		PurchaseDate string `json:"purchase_date"`
		IsRegistered bool   `json:"is_registered"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		corsError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	purchaseDate := parseFormDate(req.PurchaseDate)
	if purchaseDate.IsZero() {
		writeJSONError(w, http.StatusBadRequest, "A purchase date is required")
		return
	}

	calc := s.service.PreviewWarranty(req.Brand, Category(req.Category), purchaseDate, req.IsRegistered)
	writeJSON(w, http.StatusOK, calc)
}

type ocrResponse struct {
	Success bool            `json:"success"`
	Parsed  *receipt.Parsed `json:"parsed,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// handleOCR accepts a base64-encoded receipt image, recognizes its text and
// returns the structured parse. Recognition failures degrade to an error
// payload the client answers with manual entry; they never crash the form.
func (s *Server) handleOCR(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Image string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ocrResponse{Success: false, Error: "Invalid request body"})
		return
	}
	if req.Image == "" {
		writeJSON(w, http.StatusBadRequest, ocrResponse{Success: false, Error: "No image provided"})
		return
	}

	imageData, err := decodeBase64Image(req.Image)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ocrResponse{Success: false, Error: "Invalid image encoding"})
		return
	}

	contentType := http.DetectContentType(imageData)

	parsed, err := s.service.ScanReceipt(imageData, contentType)
	if err != nil {
		slog.Error("Error scanning receipt", "error", err)
		writeJSON(w, http.StatusInternalServerError, ocrResponse{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, ocrResponse{Success: true, Parsed: &parsed})
}

// decodeBase64Image decodes base64 image payloads, tolerating data-URL
// prefixes like "data:image/png;base64,"
func decodeBase64Image(s string) ([]byte, error) {
	if idx := strings.Index(s, ","); idx != -1 {
		s = s[idx+1:]
	}
	return base64.StdEncoding.DecodeString(s)
}
