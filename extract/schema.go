// Package extract holds the data contract of the import pipeline: the
// response schema handed to a structured-extraction model call, reading its
// answer back, and converting inputs to text the call can consume.
//
// Calling the model is left to the caller.
package extract

import (
	"errors"
	"strings"

	"google.golang.org/genai"
)

// MIMEType is the response MIME type requested from the model.
const MIMEType = "application/json"

// Instruction is the system instruction sent with the schema.
const Instruction = `Extract the personal finances described in the provided document.
Answer with a single JSON object following the response schema.
Use plain numbers for amounts, without currency symbols or grouping separators.
Leave out what the document does not mention; never invent values.`

// ErrEmptyResponse is returned by ResponseText when the model produced no text.
var ErrEmptyResponse = errors.New("empty model response")

func str(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func num(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeNumber, Description: description}
}

func listOf(description string, props map[string]*genai.Schema, order ...string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Description: description,
		Items: &genai.Schema{
			Type:             genai.TypeObject,
			Properties:       props,
			PropertyOrdering: order,
		},
	}
}

// Schema returns the response schema of a financial record. Its property
// names are the JSON keys of wealth.Record.
func Schema() *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeObject,
		Description: "Personal financial record.",
		Properties: map[string]*genai.Schema{
			"user_id":           str("Identifier of the user, if the document has one."),
			"profile_name":      str("Full name."),
			"profile_age":       {Type: genai.TypeInteger, Description: "Age in years."},
			"employment_status": str("Salaried, self-employed, retired..."),
			"monthly_income":    num("Net monthly income."),
			"profile_currency":  str("ISO 4217 code of the currency used by the document."),
			"assets": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"bank_accounts": listOf("Bank and savings accounts.", map[string]*genai.Schema{
						"bank":    str("Name of the bank."),
						"balance": num("Current balance."),
					}, "bank", "balance"),
					"mutual_funds": listOf("Mutual fund holdings.", map[string]*genai.Schema{
						"name":          str("Fund name."),
						"current_value": num("Current market value."),
					}, "name", "current_value"),
					"stocks": listOf("Listed shares.", map[string]*genai.Schema{
						"ticker":        str("Ticker symbol."),
						"shares":        num("Number of shares held."),
						"current_price": num("Current price of one share."),
					}, "ticker", "shares", "current_price"),
					"real_estate": listOf("Real estate and other physical assets.", map[string]*genai.Schema{
						"type":  str("Kind of asset."),
						"value": num("Estimated value."),
					}, "type", "value"),
					"epf_balance": num("Retirement fund balance."),
				},
				PropertyOrdering: []string{"bank_accounts", "mutual_funds", "stocks", "real_estate", "epf_balance"},
			},
			"liabilities": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"loans": listOf("Outstanding loans.", map[string]*genai.Schema{
						"type":   str("Kind of loan."),
						"amount": num("Outstanding principal."),
					}, "type", "amount"),
					"credit_cards": listOf("Credit card balances.", map[string]*genai.Schema{
						"issuer":  str("Card issuer."),
						"balance": num("Amount owed."),
					}, "issuer", "balance"),
				},
				PropertyOrdering: []string{"loans", "credit_cards"},
			},
			"sip_investments": listOf("Recurring monthly investments.", map[string]*genai.Schema{
				"name":           str("Investment name."),
				"monthly_amount": num("Amount invested each month."),
			}, "name", "monthly_amount"),
			"net_worth":    num("Net worth, only if the document states it."),
			"credit_score": {Type: genai.TypeInteger, Description: "Credit score between 300 and 850."},
			"transactions": listOf("Individual cash movements.", map[string]*genai.Schema{
				"id":          str("Transaction reference."),
				"description": str("Label of the transaction."),
				"amount":      num("Signed amount: positive for money in, negative for money out."),
				"date":        str("Date, formatted YYYY-MM-DD."),
				"category":    str("Spending or income category."),
			}, "id", "description", "amount", "date", "category"),
		},
		PropertyOrdering: []string{
			"user_id", "profile_name", "profile_age", "employment_status", "monthly_income", "profile_currency",
			"assets", "liabilities", "sip_investments", "net_worth", "credit_score", "transactions",
		},
	}
}

// Config returns the generation config of the extraction call.
func Config() *genai.GenerateContentConfig {
	var temperature float32
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: Instruction}}},
		ResponseMIMEType:  MIMEType,
		ResponseSchema:    Schema(),
		Temperature:       &temperature,
	}
}

// ResponseText returns the JSON text answered by the first candidate of resp,
// without any markdown code fence around it.
func ResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	text := strings.TrimSpace(sb.String())
	if rest, ok := strings.CutPrefix(text, "```"); ok {
		rest = strings.TrimPrefix(rest, "json")
		text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest), "```"))
	}
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
