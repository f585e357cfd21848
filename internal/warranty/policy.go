package warranty

// Clause is a single numbered section of a brand's warranty policy
type Clause struct {
	Section string `json:"section"`
	Text    string `json:"text"`
}

// Policy is the static warranty policy for one brand
type Policy struct {
	BrandID         string   `json:"brand_id"`
	Title           string   `json:"title"`
	DurationYears   int      `json:"duration_years"`
	Clauses         []Clause `json:"clauses"`
	Exclusions      []string `json:"exclusions"`
	CommonIssues    []string `json:"common_issues"`
	ConsumerLawNote string   `json:"consumer_law_note"`
}

// PolicyFor returns the static policy for a brand
func PolicyFor(brandID string) (Policy, bool) {
	p, ok := policies[brandID]
	return p, ok
}

var policies = map[string]Policy{
	"milwaukee": {
		BrandID:       "milwaukee",
		Title:         "Milwaukee 5-Year Limited Warranty",
		DurationYears: 5,
		Clauses: []Clause{
			{
				Section: "Section 3.1 — Coverage",
				Text:    "Milwaukee warrants to the original purchaser that each power tool will be free from defects in material and workmanship for a period of five (5) years from date of purchase.",
			},
			{
				Section: "Section 3.2 — Repair or Replacement",
				Text:    "Defects in materials or workmanship within the warranty period are covered for repair or replacement at manufacturer's discretion.",
			},
			{
				Section: "Section 3.3 — Battery Warranty",
				Text:    "Milwaukee M18 and M12 REDLITHIUM batteries are covered for defects for a period of two (2) years from date of purchase.",
			},
			{
				Section: "Section 4.1 — Proof of Purchase",
				Text:    "A valid proof of purchase (receipt or tax invoice) showing date of purchase and retailer is required for all warranty claims.",
			},
		},
		Exclusions: []string{
			"Damage resulting from misuse, abuse, neglect, or unauthorized modification",
			"Normal wear and tear including brushes, blades, bits, and other consumable parts",
			"Damage caused by use of non-Milwaukee accessories or attachments",
		},
		CommonIssues: []string{
			"Won't start", "Overheating", "Chuck/blade issue", "Battery problem", "Unusual noise", "Loss of power",
		},
		ConsumerLawNote: "This warranty is in addition to your rights under the Australian Consumer Law. Our goods come with guarantees that cannot be excluded under the Australian Consumer Law. You are entitled to a replacement or refund for a major failure and compensation for any other reasonably foreseeable loss or damage.",
	},
	"makita": {
		BrandID:       "makita",
		Title:         "Makita 3-Year Warranty (Registered)",
		DurationYears: 3,
		Clauses: []Clause{
			{
				Section: "Section 2.1 — Standard Coverage",
				Text:    "Makita Australia warrants this product against defects in material and workmanship for three (3) years from date of purchase when registered within 30 days, otherwise one (1) year.",
			},
			{
				Section: "Section 2.2 — Scope of Warranty",
				Text:    "This warranty covers the repair or replacement of the product or any part found to be defective in material or workmanship under normal use.",
			},
			{
				Section: "Section 2.3 — Warranty Service",
				Text:    "Warranty service must be carried out by a Makita Authorised Service Centre. The product must be presented with valid proof of purchase.",
			},
		},
		Exclusions: []string{
			"Damage caused by misuse, abuse, abnormal conditions, or unauthorized repair",
			"Normal wear of consumable parts such as carbon brushes, blades, and drill bits",
			"Products used for hire or commercial rental purposes beyond normal trade use",
		},
		CommonIssues: []string{
			"Won't start", "Overheating", "Chuck/blade issue", "Battery problem", "Unusual noise", "Loss of power",
		},
		ConsumerLawNote: "This warranty is provided in addition to statutory rights under the Australian Consumer Law. Makita Australia Pty Ltd guarantees this product against defects as required by law.",
	},
	"husqvarna": {
		BrandID:       "husqvarna",
		Title:         "Husqvarna 2-Year Consumer Warranty",
		DurationYears: 2,
		Clauses: []Clause{
			{
				Section: "Section 1.1 — Warranty Period",
				Text:    "Husqvarna warrants this product to the original purchaser for a period of two (2) years from date of purchase for domestic consumer use.",
			},
			{
				Section: "Section 1.2 — Extended Registration",
				Text:    "The warranty may be extended up to five (5) years for eligible products when registered online within 30 days of purchase.",
			},
			{
				Section: "Section 1.3 — Coverage",
				Text:    "This warranty covers defects in material and workmanship. Husqvarna will, at its discretion, repair or replace the defective product or component.",
			},
		},
		Exclusions: []string{
			"Damage resulting from improper maintenance, misuse, or unauthorized modification",
			"Normal wear on consumable items including chains, bars, spark plugs, and filters",
			"Products used for commercial or professional purposes beyond domestic use",
		},
		CommonIssues: []string{
			"Chain tension", "Starting issues", "Oil leak", "Bar wear", "Vibration", "Loss of power",
		},
		ConsumerLawNote: "This warranty does not exclude or limit the application of any condition or warranty implied by the Australian Consumer Law. You are entitled to a replacement or refund for a major failure.",
	},
	"stihl": {
		BrandID:       "stihl",
		Title:         "Stihl 2-Year Domestic Warranty",
		DurationYears: 2,
		Clauses: []Clause{
			{
				Section: "Section 1 — Warranty Coverage",
				Text:    "Stihl warrants to the original purchaser that this product will be free from defects in material and workmanship for a period of two (2) years for domestic consumer use.",
			},
			{
				Section: "Section 2 — Warranty Claims",
				Text:    "All warranty claims must be submitted through an authorised Stihl dealer with valid proof of purchase showing date and place of purchase.",
			},
			{
				Section: "Section 3 — Remedies",
				Text:    "Stihl will, at its sole discretion, repair or replace any product or component found to be defective under this warranty.",
			},
		},
		Exclusions: []string{
			"Damage caused by misuse, neglect, accident, or unauthorized modification or repair",
			"Normal wear and tear on consumable parts including chains, bars, spark plugs, air filters, and fuel filters",
			"Failure resulting from use of non-Stihl replacement parts or accessories",
		},
		CommonIssues: []string{
			"Chain tension", "Starting issues", "Oil leak", "Bar wear", "Vibration", "Loss of power",
		},
		ConsumerLawNote: "Stihl products come with guarantees that cannot be excluded under the Australian Consumer Law. You are entitled to a replacement or refund for a major failure and compensation for any other reasonably foreseeable loss.",
	},
	"dewalt": {
		BrandID:       "dewalt",
		Title:         "DeWalt 3-Year Limited Warranty",
		DurationYears: 3,
		Clauses: []Clause{
			{
				Section: "Section A — Coverage Period",
				Text:    "DeWalt will repair or replace, at DeWalt's option, any product that is defective in material or workmanship for a period of three (3) years from date of purchase.",
			},
			{
				Section: "Section B — Free Service",
				Text:    "DeWalt will maintain the tool and replace worn parts caused by normal use, free of charge, for a period of one (1) year from date of purchase.",
			},
			{
				Section: "Section C — Proof of Purchase",
				Text:    "Original proof of purchase (receipt or tax invoice) is required for all warranty claims. The product must be returned to a DeWalt authorised service centre.",
			},
		},
		Exclusions: []string{
			"Damage caused by misuse, abuse, negligence, or unauthorized modification",
			"Normal wear of consumable accessories and parts",
			"Products that have been used in rental or commercial hire operations",
		},
		CommonIssues: []string{
			"Won't start", "Overheating", "Chuck/blade issue", "Battery problem", "Unusual noise", "Loss of power",
		},
		ConsumerLawNote: "This warranty is in addition to rights and remedies available under the Australian Consumer Law. Our goods come with guarantees that cannot be excluded under the ACL.",
	},
	"bosch": {
		BrandID:       "bosch",
		Title:         "Bosch 3-Year Professional Warranty",
		DurationYears: 3,
		Clauses: []Clause{
			{
				Section: "Section 1 — Warranty",
				Text:    "Bosch warrants this professional power tool against defects in materials and workmanship for a period of three (3) years from the date of purchase.",
			},
			{
				Section: "Section 2 — Service",
				Text:    "Warranty service is available through any Bosch Authorised Service Agent. Products must be accompanied by proof of purchase.",
			},
		},
		Exclusions: []string{
			"Damage from misuse, abuse, negligence, or failure to follow operating instructions",
			"Normal wear on consumable parts and accessories",
			"Unauthorized modification or repair by non-Bosch service agents",
		},
		CommonIssues: []string{
			"Won't start", "Overheating", "Chuck/blade issue", "Battery problem", "Unusual noise", "Loss of power",
		},
		ConsumerLawNote: "This warranty is provided in addition to your rights under the Australian Consumer Law. Robert Bosch (Australia) Pty Ltd guarantees its products as required by law.",
	},
}
