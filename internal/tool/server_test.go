package tool

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/ghttp"

	"github.com/toolvault/toolvault/internal/brand"
)

var _ = Describe("Server", func() {
	var (
		db          *mockDB
		storage     *mockStorage
		recognizer  *mockRecognizer
		service     *Service
		server      *Server
		ghttpServer *ghttp.Server
	)

	BeforeEach(func() {
		db = newMockDB()
		storage = newMockStorage()
		recognizer = newMockRecognizer()
		service = NewServiceWithDeps(db, recognizer, storage,
			&mockIDGenerator{id: "tool-test-123"},
			&mockTimeSource{now: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)},
		)
		server = NewServerWithMux(service, http.NewServeMux())

		ghttpServer = ghttp.NewServer()
		ghttpServer.AppendHandlers(server.ServeHTTP)
	})

	AfterEach(func() {
		if ghttpServer != nil {
			ghttpServer.Close()
		}
	})

	postJSON := func(path string, body any) *http.Response {
		data, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		resp, err := http.Post(ghttpServer.URL()+path, "application/json", bytes.NewReader(data))
		Expect(err).NotTo(HaveOccurred())
		return resp
	}

	decodeBody := func(resp *http.Response, v any) {
		defer resp.Body.Close()
		Expect(json.NewDecoder(resp.Body).Decode(v)).To(Succeed())
	}

	Describe("handleListTools", func() {
		When("tools exist", func() {
			BeforeEach(func() {
				db.tools["id-1"] = &Tool{ID: "id-1", Name: "Drill"}
			})

			It("should return them as JSON", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/tools")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				var tools []Tool
				decodeBody(resp, &tools)
				Expect(tools).To(HaveLen(1))
				Expect(tools[0].Name).To(Equal("Drill"))
			})
		})

		When("the store is empty", func() {
			It("should return the default dataset", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/tools")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				var tools []Tool
				decodeBody(resp, &tools)
				Expect(tools).To(HaveLen(3))
			})
		})
	})

	Describe("handleCreateTool", func() {
		var reqBody map[string]any

		BeforeEach(func() {
			reqBody = map[string]any{
				"serial_number":  "M18FPD2G412204187",
				"name":           "M18 FUEL Hammer Drill",
				"model":          "M18FPD2-502C",
				"category":       "drill",
				"purchase_date":  "15/03/2024",
				"purchase_store": "Bunnings Warehouse",
				"purchase_price": 54900,
			}
		})

		When("the request is valid", func() {
			It("should create the tool and return 201", func() {
				resp := postJSON("/api/tools", reqBody)
				Expect(resp.StatusCode).To(Equal(http.StatusCreated))

				var created Tool
				decodeBody(resp, &created)
				Expect(created.ID).To(Equal("tool-test-123"))
				Expect(created.Brand).To(Equal("milwaukee"))
				Expect(created.WarrantyEndDate.Year()).To(Equal(2029))
				Expect(db.tools).To(HaveKey("tool-test-123"))
			})
		})

		When("a receipt image is attached", func() {
			BeforeEach(func() {
				encoded := base64.StdEncoding.EncodeToString([]byte("image bytes"))
				reqBody["receipt_image"] = "data:image/jpeg;base64," + encoded
				reqBody["receipt_content_type"] = "image/jpeg"
			})

			It("should store the image", func() {
				resp := postJSON("/api/tools", reqBody)
				Expect(resp.StatusCode).To(Equal(http.StatusCreated))
				Expect(storage.files).To(HaveKey("tool-test-123_receipt.jpg"))
				resp.Body.Close()
			})
		})

		When("the receipt image encoding is invalid", func() {
			BeforeEach(func() {
				reqBody["receipt_image"] = "not base64 at all!!!"
			})

			It("should return 400 with an error payload", func() {
				resp := postJSON("/api/tools", reqBody)
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))

				var body map[string]string
				decodeBody(resp, &body)
				Expect(body).To(HaveKey("error"))
			})
		})

		When("the request body is not JSON", func() {
			It("should return 400", func() {
				resp, err := http.Post(ghttpServer.URL()+"/api/tools", "application/json", bytes.NewReader([]byte("not json")))
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
				resp.Body.Close()
			})
		})
	})

	Describe("handleGetTool", func() {
		When("the tool exists", func() {
			BeforeEach(func() {
				db.tools["tool-1"] = &Tool{ID: "tool-1", Name: "Circular Saw"}
			})

			It("should return it", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/tools/tool-1")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				var t Tool
				decodeBody(resp, &t)
				Expect(t.Name).To(Equal("Circular Saw"))
			})
		})

		When("the tool does not exist", func() {
			It("should return 404", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/tools/missing")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
				resp.Body.Close()
			})
		})
	})

	Describe("handleUpdateTool", func() {
		BeforeEach(func() {
			db.tools["tool-1"] = &Tool{
				ID:        "tool-1",
				Name:      "Old Name",
				CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			}
		})

		When("the update is valid", func() {
			It("should replace the record", func() {
				body, _ := json.Marshal(Tool{
					Name:              "New Name",
					WarrantyStartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
					WarrantyEndDate:   time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
				})
				req, err := http.NewRequest(http.MethodPut, ghttpServer.URL()+"/api/tools/tool-1", bytes.NewReader(body))
				Expect(err).NotTo(HaveOccurred())
				resp, err := http.DefaultClient.Do(req)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))
				resp.Body.Close()

				Expect(db.tools["tool-1"].Name).To(Equal("New Name"))
			})
		})

		When("the warranty window is inverted", func() {
			It("should return 400", func() {
				body, _ := json.Marshal(Tool{
					WarrantyStartDate: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
					WarrantyEndDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
				})
				req, err := http.NewRequest(http.MethodPut, ghttpServer.URL()+"/api/tools/tool-1", bytes.NewReader(body))
				Expect(err).NotTo(HaveOccurred())
				resp, err := http.DefaultClient.Do(req)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
				resp.Body.Close()
			})
		})
	})

	Describe("handleDeleteTool", func() {
		When("the tool exists", func() {
			BeforeEach(func() {
				db.tools["tool-1"] = &Tool{ID: "tool-1"}
			})

			It("should return 204 and remove it", func() {
				req, err := http.NewRequest(http.MethodDelete, ghttpServer.URL()+"/api/tools/tool-1", nil)
				Expect(err).NotTo(HaveOccurred())
				resp, err := http.DefaultClient.Do(req)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
				resp.Body.Close()

				Expect(db.tools).NotTo(HaveKey("tool-1"))
			})
		})

		When("the tool does not exist", func() {
			It("should return 500", func() {
				req, err := http.NewRequest(http.MethodDelete, ghttpServer.URL()+"/api/tools/missing", nil)
				Expect(err).NotTo(HaveOccurred())
				resp, err := http.DefaultClient.Do(req)
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))
				resp.Body.Close()
			})
		})
	})

	Describe("handleGetToolReceipt", func() {
		When("the receipt exists", func() {
			BeforeEach(func() {
				db.tools["tool-1"] = &Tool{
					ID:                 "tool-1",
					ReceiptFilename:    "tool-1_receipt.jpg",
					ReceiptContentType: "image/jpeg",
				}
				storage.files["tool-1_receipt.jpg"] = []byte("image data")
			})

			It("should serve it with the stored content type", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/tools/tool-1/receipt")
				Expect(err).NotTo(HaveOccurred())
				defer resp.Body.Close()
				Expect(resp.StatusCode).To(Equal(http.StatusOK))
				Expect(resp.Header.Get("Content-Type")).To(Equal("image/jpeg"))

				body, err := io.ReadAll(resp.Body)
				Expect(err).NotTo(HaveOccurred())
				Expect(string(body)).To(Equal("image data"))
			})
		})

		When("the tool has no receipt", func() {
			BeforeEach(func() {
				db.tools["tool-1"] = &Tool{ID: "tool-1"}
			})

			It("should return 404", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/tools/tool-1/receipt")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
				resp.Body.Close()
			})
		})
	})

	Describe("handleAnalyzeClaim", func() {
		BeforeEach(func() {
			db.tools["tool-1"] = &Tool{
				ID:              "tool-1",
				Brand:           "milwaukee",
				WarrantyEndDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			}
		})

		When("the tool exists", func() {
			It("should return the analysis", func() {
				resp := postJSON("/api/tools/tool-1/claim", map[string]string{
					"issue_description": "motor won't start",
				})
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				var result ClaimResult
				decodeBody(resp, &result)
				Expect(result.Reference).To(MatchRegexp(`^TV-2024-\d{4}$`))
				Expect(string(result.Status)).To(Equal("active"))
				Expect(string(result.Analysis.Verdict)).To(Equal("likely_covered"))
				Expect(result.Analysis.ExclusionsCheck).To(HaveLen(4))
			})
		})

		When("the tool does not exist", func() {
			It("should return 404", func() {
				resp := postJSON("/api/tools/missing/claim", map[string]string{
					"issue_description": "motor won't start",
				})
				Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
				resp.Body.Close()
			})
		})
	})

	Describe("handleListBrands", func() {
		It("should return the brand catalogue", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/brands")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(http.StatusOK))

			var brands []brand.Brand
			decodeBody(resp, &brands)
			Expect(len(brands)).To(Equal(6))
		})
	})

	Describe("handleMatchSerial", func() {
		When("the serial matches a brand", func() {
			It("should return the match with brand details", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/brands/match?serial=M18FPD2-502C")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				var match serialMatchResponse
				decodeBody(resp, &match)
				Expect(match.Matched).To(BeTrue())
				Expect(match.BrandID).To(Equal("milwaukee"))
				Expect(match.Prefix).To(Equal("M18"))
				Expect(match.Brand).NotTo(BeNil())
				Expect(match.Brand.Name).To(Equal("Milwaukee"))
				Expect(match.Steps).To(Equal(MatchingSteps))
			})
		})

		When("the serial matches nothing", func() {
			It("should return 200 with matched false", func() {
				resp, err := http.Get(ghttpServer.URL() + "/api/brands/match?serial=XYZ999")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				var match serialMatchResponse
				decodeBody(resp, &match)
				Expect(match.Matched).To(BeFalse())
				Expect(match.Brand).To(BeNil())
			})
		})
	})

	Describe("handleWarrantyPreview", func() {
		When("the request is valid", func() {
			It("should return the computed window", func() {
				resp := postJSON("/api/warranty/preview", map[string]any{
					"brand":         "milwaukee",
					"category":      "drill",
					"purchase_date": "01/01/2024",
				})
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				var calc struct {
					WarrantyEndDate time.Time `json:"warranty_end_date"`
					DurationYears   int       `json:"duration_years"`
					Warnings        []string  `json:"warnings"`
				}
				decodeBody(resp, &calc)
				Expect(calc.DurationYears).To(Equal(5))
				Expect(calc.WarrantyEndDate.Year()).To(Equal(2029))
				Expect(calc.Warnings).NotTo(BeNil())
			})
		})

		When("the purchase date is missing", func() {
			It("should return 400", func() {
				resp := postJSON("/api/warranty/preview", map[string]any{
					"brand": "milwaukee",
				})
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
				resp.Body.Close()
			})
		})
	})

	Describe("handleOCR", func() {
		// Minimal valid PNG header so content type detection sees an image
		pngPayload := func() string {
			data := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)
			return base64.StdEncoding.EncodeToString(data)
		}

		When("recognition succeeds", func() {
			It("should return the parsed receipt", func() {
				resp := postJSON("/api/ocr", map[string]string{"image": pngPayload()})
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				var ocr ocrResponse
				decodeBody(resp, &ocr)
				Expect(ocr.Success).To(BeTrue())
				Expect(ocr.Parsed).NotTo(BeNil())
				Expect(ocr.Parsed.StoreName).To(Equal("Bunnings Warehouse"))
				Expect(ocr.Parsed.PurchaseDate).To(Equal("15/03/2024"))
			})
		})

		When("a data-URL prefix is present", func() {
			It("should still decode the image", func() {
				resp := postJSON("/api/ocr", map[string]string{
					"image": "data:image/png;base64," + pngPayload(),
				})
				Expect(resp.StatusCode).To(Equal(http.StatusOK))

				var ocr ocrResponse
				decodeBody(resp, &ocr)
				Expect(ocr.Success).To(BeTrue())
			})
		})

		When("no image is provided", func() {
			It("should return 400", func() {
				resp := postJSON("/api/ocr", map[string]string{})
				Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))

				var ocr ocrResponse
				decodeBody(resp, &ocr)
				Expect(ocr.Success).To(BeFalse())
				Expect(ocr.Error).To(Equal("No image provided"))
			})
		})

		When("the recognizer fails", func() {
			BeforeEach(func() {
				recognizer.scanErr = errors.New("provider unreachable")
			})

			It("should return 500 with an error payload", func() {
				resp := postJSON("/api/ocr", map[string]string{"image": pngPayload()})
				Expect(resp.StatusCode).To(Equal(http.StatusInternalServerError))

				var ocr ocrResponse
				decodeBody(resp, &ocr)
				Expect(ocr.Success).To(BeFalse())
				Expect(ocr.Error).To(ContainSubstring("provider unreachable"))
			})
		})
	})

	Describe("CORS", func() {
		It("should set CORS headers on responses", func() {
			resp, err := http.Get(ghttpServer.URL() + "/api/brands")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Header.Get("Access-Control-Allow-Origin")).To(Equal("*"))
			resp.Body.Close()
		})
	})
})
