package repository

import "fmt"

// BuildExtractRatingsPrompt builds the single extraction prompt sent to
// every provider in the chain. The output contract is a raw JSON list of
// {stock_name, rating, target_price} objects.
func BuildExtractRatingsPrompt(broker, title, description string) string {
	return fmt.Sprintf(`You are a financial news analyzer.
Analyze the following news snippet related to '%s' and extract structured data about stock ratings.

News Snippet:
Title: %s
Description: %s

Extract the following for each stock mentioned:
1. Stock Name (e.g. Tata Motors, HDFC Bank).
   IMPORTANT: Do NOT extract generic SECTOR names like 'Hotels'. Only specific COMPANY names.
   IMPORTANT: Do NOT extract days (e.g. Monday), months (e.g. January), or time references.
   Normalize names: Remove 'Ltd', 'Limited', 'India' suffixes. Use 'Tata Steel' not 'Tata Steel Ltd'.
2. Rating (Buy, Sell, Hold, Underperform, Outperform). If not explicitly stated, infer decisively:
   'top pick', 'upgrade' or 'favorite' mean Buy; 'downgrade' or 'caution' mean Sell.
   Use "Unknown" ONLY when the snippet carries no sentiment at all.
3. Target Price (Numeric value in INR, PER SHARE) - if not stated, set null.
   IMPORTANT: Do NOT extract aggregate figures like market capitalization or deal sizes.

Return the output strictly as a JSON list of objects.
Example:
[
    {"stock_name": "Tata Motors", "rating": "Buy", "target_price": 1000.0}
]

If no specific company stock is found, return [].
Do not add any markdown formatting like `+"```json ... ```"+`. Just return the raw JSON string.`,
		broker, title, description)
}
