// File path: internal/persona/prompt.go
package persona

import (
	"fmt"
	"strings"

	"github.com/sgci-marketing/persona-studio/internal/segment"
)

// CatalogPromptBudget is the hard character slice of catalog text embedded
// in a generation prompt. The cut is a plain slice, not sentence-aware.
const CatalogPromptBudget = 10000

const segmentBlockTemplate = `Generate a complete and detailed description of a marketing persona for a banking segment with the following characteristics:

Segment name: %s
Average age: %s years
Number of products used: %s
Monthly income (Men): %s
Monthly income (Women): %s
Mobile accessibility: %s
Email accessibility: %s
Main characteristics: %s`

const methodologyTemplate = `

AVAILABLE BANKING PRODUCTS CATALOG:
%s

RECOMMENDATION METHODOLOGY:
To recommend the most suitable products for this segment, analyze ALL the following criteria:

1. DEMOGRAPHIC PROFILE:
   - Average age (%s years) -> Needs according to life stage
   - Men/women income -> Financial capacity AND gender disparities

2. BANKING BEHAVIOR:
   - Current number of products (%s) -> Banking sophistication
   - If low (< 5) -> Under-banked segment, needs simple products
   - If high (> 8) -> Mature segment, needs premium services

3. DIGITAL CONNECTIVITY:
   - Mobile accessibility (%s) -> Digital appetite
   - Email accessibility (%s) -> Preferred communication channels
   - If > 95%% mobile -> Favor digital services (Mobile app, online banking)
   - If < 80%% mobile -> Favor traditional services (branch, phone)

4. SOCIO-PROFESSIONAL CHARACTERISTICS:
   - %s
   - Identify: professional status, stability, specific needs

5. PRODUCT RECOMMENDATION LOGIC (DO NOT BASE ONLY ON PRICE):
   - Match products with ACTUAL NEEDS based on the detailed catalog
   - Consider target segments mentioned in the catalog
   - Analyze product characteristics vs segment profile
   - Justify recommendations with specific catalog details

IMPORTANT:
- NEVER recommend a product only because it is expensive or prestigious
- ALWAYS justify based on REAL NEEDS of the segment
- Consider QUALITY-PRICE RATIO and ADEQUACY to uses
- Identify GAPS (missing products despite the need)
- Reference specific product details from the catalog`

const noCatalogNote = "\n\nNote: No product catalog loaded. Make general recommendations based on segment characteristics."

const outputInstructions = `

Provide a professional description in FRENCH including:

1. DETAILED DEMOGRAPHIC PROFILE
2. BANKING BEHAVIORS AND PATTERNS
3. NEEDS AND PREFERENCES
4. MOTIVATIONS AND PAIN POINTS
5. RECOMMENDED MARKETING STRATEGY
6. ADAPTED BANKING PRODUCT RECOMMENDATIONS

   For EACH recommended product, justify by citing:
   - Segment characteristics that justify it
   - Specific need covered
   - Adequacy with profile (age, income, connectivity, etc.)
   - Exact price from catalog
   - Why this product matches vs alternatives

   Structure:
   A. Priority Products (High priority)
   B. Complementary Products (Medium priority)
   C. Development Products (Long term)

7. UNIQUE VALUE PROPOSITION

Format: Use clear sections with bold titles. Write everything in FRENCH.`

// BuildPrompt renders the generation instruction for one segment. Pure and
// deterministic: identical inputs yield byte-identical output. The catalog
// excerpt is the exact first CatalogPromptBudget characters of the text.
func BuildPrompt(seg segment.Segment, catalogText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, segmentBlockTemplate,
		segment.Display(seg.Name),
		segment.Display(seg.Age),
		segment.Display(seg.NbProducts),
		segment.Display(seg.RevenueHommes),
		segment.Display(seg.RevenueFemmes),
		segment.Display(seg.MobileAccess),
		segment.Display(seg.EmailAccess),
		segment.Display(seg.Characteristics),
	)
	if catalogText != "" {
		fmt.Fprintf(&b, methodologyTemplate,
			truncate(catalogText, CatalogPromptBudget),
			segment.Display(seg.Age),
			segment.Display(seg.NbProducts),
			segment.Display(seg.MobileAccess),
			segment.Display(seg.EmailAccess),
			segment.Display(seg.Characteristics),
		)
	} else {
		b.WriteString(noCatalogNote)
	}
	b.WriteString(outputInstructions)
	return b.String()
}

// truncate returns at most limit characters of s. The slice is exact,
// never rounded to a sentence or word boundary.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
